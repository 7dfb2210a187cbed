// Package lib holds integrations that do not fit strictly into a layer:
// the Redis property cache (cache), background jobs on asynq (job) and
// transactional email through Resend (email).
package lib
