package service

import (
	"context"
	"fmt"

	"github.com/deppfellow/booking-api/internal/lib/job"
	"github.com/deppfellow/booking-api/internal/logger"
	"github.com/deppfellow/booking-api/internal/model"
	"github.com/deppfellow/booking-api/internal/repository"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"
)

// HostStore is the persistence the host service needs.
// *repository.HostRepository implements it.
type HostStore interface {
	GetAll(ctx context.Context, filter repository.HostFilter) ([]model.Host, error)
	GetByID(ctx context.Context, id uuid.UUID) (*model.Host, error)
	GetByUsername(ctx context.Context, username string) (*model.Host, error)
	Exists(ctx context.Context, id uuid.UUID) (bool, error)
	Create(ctx context.Context, host *model.Host) error
	Update(ctx context.Context, id uuid.UUID, changes map[string]any) (*model.Host, error)
	Delete(ctx context.Context, id uuid.UUID) (bool, error)
}

// HostWelcomeEnqueuer schedules the welcome email. *job.JobService implements it.
type HostWelcomeEnqueuer interface {
	EnqueueHostWelcome(ctx context.Context, p job.HostWelcomePayload) error
}

type HostService struct {
	hosts   HostStore
	welcome HostWelcomeEnqueuer
	logger  *zerolog.Logger
}

// NewHostService builds the host service. welcome may be nil, in which case
// no welcome email is scheduled.
func NewHostService(hosts HostStore, welcome HostWelcomeEnqueuer, logger *zerolog.Logger) *HostService {
	return &HostService{
		hosts:   hosts,
		welcome: welcome,
		logger:  logger,
	}
}

// GetHosts lists hosts, optionally filtered by a name substring.
func (s *HostService) GetHosts(ctx context.Context, query *model.GetHostsQuery) ([]model.Host, error) {
	return s.hosts.GetAll(ctx, repository.HostFilter{Name: query.Name})
}

// GetHost returns one host with its listings.
func (s *HostService) GetHost(ctx context.Context, id uuid.UUID) (*model.Host, error) {
	host, err := s.hosts.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if host == nil {
		return nil, errHostNotFound
	}
	return host, nil
}

// CreateHost registers a host.
//
// The username is checked before inserting; a taken username is a 409.
// The unique constraint still catches a concurrent duplicate, which is
// reported as the same 409.
func (s *HostService) CreateHost(ctx context.Context, payload *model.CreateHostPayload) (*model.Host, error) {
	log := logger.FromContext(ctx, s.logger)

	existing, err := s.hosts.GetByUsername(ctx, payload.Username)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		log.Info().Str("username", payload.Username).Msg("host username already taken")
		return nil, errHostExists
	}

	hash, err := hashPassword(payload.Password)
	if err != nil {
		return nil, err
	}

	host := &model.Host{
		Username:       payload.Username,
		Password:       hash,
		Name:           payload.Name,
		Email:          payload.Email,
		PhoneNumber:    payload.PhoneNumber,
		ProfilePicture: payload.ProfilePicture,
		AboutMe:        payload.AboutMe,
	}

	if err := s.hosts.Create(ctx, host); err != nil {
		return nil, hostWriteError(err)
	}

	log.Info().
		Str("host_id", host.ID.String()).
		Str("username", host.Username).
		Msg("host created")

	s.scheduleWelcome(ctx, host)

	return host, nil
}

// scheduleWelcome is best-effort: the host exists already, so a queue
// failure is logged and swallowed.
func (s *HostService) scheduleWelcome(ctx context.Context, host *model.Host) {
	if s.welcome == nil {
		return
	}

	err := s.welcome.EnqueueHostWelcome(ctx, job.HostWelcomePayload{
		To:       host.Email,
		Name:     host.Name,
		Username: host.Username,
	})
	if err != nil {
		logger.FromContext(ctx, s.logger).Warn().
			Err(err).
			Str("host_id", host.ID.String()).
			Msg("failed to schedule host welcome email")
	}
}

// UpdateHost applies a partial update.
func (s *HostService) UpdateHost(ctx context.Context, payload *model.UpdateHostPayload) (*model.Host, error) {
	id := payload.UUID()
	changes := payload.Changes()

	if payload.Username != nil {
		owner, err := s.hosts.GetByUsername(ctx, *payload.Username)
		if err != nil {
			return nil, err
		}
		if owner != nil && owner.ID != id {
			return nil, errHostExists
		}
	}

	if payload.Password != nil {
		hash, err := hashPassword(*payload.Password)
		if err != nil {
			return nil, err
		}
		changes["password"] = hash
	}

	host, err := s.hosts.Update(ctx, id, changes)
	if err != nil {
		return nil, hostWriteError(err)
	}
	if host == nil {
		return nil, errHostNotFound
	}

	logger.FromContext(ctx, s.logger).Info().
		Str("host_id", id.String()).
		Int("fields", len(changes)).
		Msg("host updated")

	return host, nil
}

// DeleteHost removes a host and, through the foreign key, its listings.
func (s *HostService) DeleteHost(ctx context.Context, id uuid.UUID) error {
	deleted, err := s.hosts.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return errHostNotFound
	}

	logger.FromContext(ctx, s.logger).Info().
		Str("host_id", id.String()).
		Msg("host deleted")
	return nil
}

func hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}
