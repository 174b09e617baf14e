package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/studenthq/enroll/internal/domain"
	"github.com/studenthq/enroll/internal/repository"
)

// SQLSTATE for unique constraint violations.
const uniqueViolation = "23505"

type StudentRepo struct {
	pool *pgxpool.Pool
}

func NewStudentRepo(pool *pgxpool.Pool) *StudentRepo {
	return &StudentRepo{pool: pool}
}

func (r *StudentRepo) Create(ctx context.Context, student *domain.Student) error {
	query := `
		INSERT INTO students (id, name, date_of_birth, email, country, profile_photo_key, password_hash, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	_, err := r.pool.Exec(ctx, query,
		student.ID, student.Name, student.DateOfBirth, student.Email,
		student.Country, student.ProfilePhotoKey, student.PasswordHash, student.CreatedAt,
	)

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return repository.ErrDuplicateEmail
	}
	return err
}

func (r *StudentRepo) GetByEmail(ctx context.Context, email string) (*domain.Student, error) {
	return r.scanStudent(ctx, "SELECT id, name, date_of_birth, email, country, profile_photo_key, password_hash, created_at FROM students WHERE email = $1", email)
}

func (r *StudentRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Student, error) {
	return r.scanStudent(ctx, "SELECT id, name, date_of_birth, email, country, profile_photo_key, password_hash, created_at FROM students WHERE id = $1", id)
}

func (r *StudentRepo) scanStudent(ctx context.Context, query string, arg any) (*domain.Student, error) {
	var s domain.Student
	err := r.pool.QueryRow(ctx, query, arg).Scan(
		&s.ID, &s.Name, &s.DateOfBirth, &s.Email,
		&s.Country, &s.ProfilePhotoKey, &s.PasswordHash, &s.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}
