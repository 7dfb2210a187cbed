package model

import (
	"github.com/deppfellow/booking-api/internal/validation"
	"github.com/google/uuid"
)

// GetHostsQuery filters GET /hosts. Name is a substring match.
type GetHostsQuery struct {
	Name string `query:"name" validate:"omitempty,max=255"`
}

func (q *GetHostsQuery) Validate() error {
	return validation.Struct(q)
}

// HostIDParam is bound from the :id path segment.
type HostIDParam struct {
	ID string `param:"id" validate:"required,uuid"`
}

func (p *HostIDParam) Validate() error {
	return validation.Struct(p)
}

// UUID returns the parsed id. Only call it after Validate succeeded.
func (p *HostIDParam) UUID() uuid.UUID {
	return uuid.MustParse(p.ID)
}

// CreateHostPayload is the body of POST /hosts.
type CreateHostPayload struct {
	Username       string `json:"username" validate:"required,min=3,max=100"`
	Password       string `json:"password" validate:"required,min=8,max=72"`
	Name           string `json:"name" validate:"required,max=255"`
	Email          string `json:"email" validate:"required,email,max=255"`
	PhoneNumber    string `json:"phoneNumber" validate:"omitempty,max=50"`
	ProfilePicture string `json:"profilePicture" validate:"omitempty,url,max=2048"`
	AboutMe        string `json:"aboutMe"`
}

func (p *CreateHostPayload) Validate() error {
	return validation.Struct(p)
}

// UpdateHostPayload is the body of PUT /hosts/:id. Nil fields are left untouched.
type UpdateHostPayload struct {
	ID             string  `param:"id" json:"-" validate:"required,uuid"`
	Username       *string `json:"username" validate:"omitempty,min=3,max=100"`
	Password       *string `json:"password" validate:"omitempty,min=8,max=72"`
	Name           *string `json:"name" validate:"omitempty,max=255"`
	Email          *string `json:"email" validate:"omitempty,email,max=255"`
	PhoneNumber    *string `json:"phoneNumber" validate:"omitempty,max=50"`
	ProfilePicture *string `json:"profilePicture" validate:"omitempty,url,max=2048"`
	AboutMe        *string `json:"aboutMe"`
}

func (p *UpdateHostPayload) Validate() error {
	return validation.Struct(p)
}

// UUID returns the parsed path id. Only call it after Validate succeeded.
func (p *UpdateHostPayload) UUID() uuid.UUID {
	return uuid.MustParse(p.ID)
}

// Changes returns the column/value pairs to write. Password is handled by
// the service because it must be hashed first.
func (p *UpdateHostPayload) Changes() map[string]any {
	changes := make(map[string]any)
	if p.Username != nil {
		changes["username"] = *p.Username
	}
	if p.Name != nil {
		changes["name"] = *p.Name
	}
	if p.Email != nil {
		changes["email"] = *p.Email
	}
	if p.PhoneNumber != nil {
		changes["phone_number"] = *p.PhoneNumber
	}
	if p.ProfilePicture != nil {
		changes["profile_picture"] = *p.ProfilePicture
	}
	if p.AboutMe != nil {
		changes["about_me"] = *p.AboutMe
	}
	return changes
}
