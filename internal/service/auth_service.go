package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/studenthq/enroll/internal/auth"
	"github.com/studenthq/enroll/internal/domain"
	"github.com/studenthq/enroll/internal/repository"
)

var (
	ErrDuplicateEmail  = errors.New("email already registered")
	ErrInvalidCreds    = errors.New("invalid email or password")
	ErrStudentNotFound = errors.New("student not found")
)

// tokenTTL is the fixed validity window for issued tokens. There is no
// refresh path; an expired token means signing in again.
const tokenTTL = time.Hour

type AuthService struct {
	students repository.StudentRepository
	hasher   *auth.PasswordHasher
	tokens   *auth.TokenManager
}

func NewAuthService(students repository.StudentRepository, hasher *auth.PasswordHasher, tokens *auth.TokenManager) *AuthService {
	return &AuthService{
		students: students,
		hasher:   hasher,
		tokens:   tokens,
	}
}

type RegisterInput struct {
	Name        string
	DateOfBirth time.Time
	Email       string
	Country     string
	Password    string
	// PhotoKey is set by the transport layer after the blob store has
	// accepted the upload; the flow only records it.
	PhotoKey *string
}

type LoginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type AuthResponse struct {
	Token   string               `json:"token"`
	Student domain.PublicStudent `json:"student"`
}

func (s *AuthService) Register(ctx context.Context, input RegisterInput) (*AuthResponse, error) {
	// Fast path for the common case; the unique index on email is what
	// actually decides a race between two concurrent signups.
	existing, err := s.students.GetByEmail(ctx, input.Email)
	if err != nil {
		return nil, fmt.Errorf("checking email: %w", err)
	}
	if existing != nil {
		return nil, ErrDuplicateEmail
	}

	hash, err := s.hasher.Hash(input.Password)
	if err != nil {
		return nil, fmt.Errorf("hashing password: %w", err)
	}

	student := &domain.Student{
		ID:              uuid.New(),
		Name:            input.Name,
		DateOfBirth:     input.DateOfBirth,
		Email:           input.Email,
		Country:         input.Country,
		ProfilePhotoKey: input.PhotoKey,
		PasswordHash:    hash,
		CreatedAt:       time.Now(),
	}

	if err := s.students.Create(ctx, student); err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return nil, ErrDuplicateEmail
		}
		return nil, fmt.Errorf("creating student: %w", err)
	}

	token, err := s.tokens.Issue(student.ID, student.Email, tokenTTL)
	if err != nil {
		return nil, fmt.Errorf("issuing token: %w", err)
	}

	return &AuthResponse{Token: token, Student: student.Public()}, nil
}

func (s *AuthService) Login(ctx context.Context, input LoginInput) (*AuthResponse, error) {
	student, err := s.students.GetByEmail(ctx, input.Email)
	if err != nil {
		return nil, fmt.Errorf("looking up email: %w", err)
	}
	// An unknown email and a wrong password fail identically so the
	// response does not reveal which emails are registered.
	if student == nil {
		return nil, ErrInvalidCreds
	}

	if !s.hasher.Verify(input.Password, student.PasswordHash) {
		return nil, ErrInvalidCreds
	}

	token, err := s.tokens.Issue(student.ID, student.Email, tokenTTL)
	if err != nil {
		return nil, fmt.Errorf("issuing token: %w", err)
	}

	return &AuthResponse{Token: token, Student: student.Public()}, nil
}

// Profile returns the authenticated student's own record.
func (s *AuthService) Profile(ctx context.Context, id uuid.UUID) (*domain.Student, error) {
	student, err := s.students.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("looking up student: %w", err)
	}
	if student == nil {
		return nil, ErrStudentNotFound
	}
	return student, nil
}
