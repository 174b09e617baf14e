package domain

import (
	"time"

	"github.com/google/uuid"
)

type Student struct {
	ID              uuid.UUID `json:"id"`
	Name            string    `json:"name"`
	DateOfBirth     time.Time `json:"dob"`
	Email           string    `json:"email"`
	Country         string    `json:"country"`
	ProfilePhotoKey *string   `json:"profile_photo_key,omitempty"`
	PasswordHash    string    `json:"-"`
	CreatedAt       time.Time `json:"created_at"`
}

// PublicStudent is the view returned from signup and signin responses.
// It carries only what a client needs to display the session owner.
type PublicStudent struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Email string    `json:"email"`
}

func (s *Student) Public() PublicStudent {
	return PublicStudent{ID: s.ID, Name: s.Name, Email: s.Email}
}
