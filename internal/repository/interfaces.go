package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/studenthq/enroll/internal/domain"
)

// ErrDuplicateEmail is returned by Create when the email's unique
// constraint rejects the insert.
var ErrDuplicateEmail = errors.New("email already registered")

type StudentRepository interface {
	// Create persists the student. The storage layer enforces email
	// uniqueness atomically; a constraint hit surfaces as ErrDuplicateEmail.
	Create(ctx context.Context, student *domain.Student) error

	// GetByEmail does a case-sensitive exact match and returns
	// (nil, nil) when no record exists.
	GetByEmail(ctx context.Context, email string) (*domain.Student, error)

	GetByID(ctx context.Context, id uuid.UUID) (*domain.Student, error)
}
