package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/studenthq/enroll/internal/auth"
	"github.com/studenthq/enroll/internal/domain"
	"github.com/studenthq/enroll/internal/repository"
)

// memStudentRepo enforces email uniqueness atomically under a mutex,
// standing in for the database's unique index.
type memStudentRepo struct {
	mu       sync.Mutex
	byEmail  map[string]*domain.Student
	failWith error
}

func newMemStudentRepo() *memStudentRepo {
	return &memStudentRepo{byEmail: make(map[string]*domain.Student)}
}

func (r *memStudentRepo) Create(ctx context.Context, student *domain.Student) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failWith != nil {
		return r.failWith
	}
	if _, ok := r.byEmail[student.Email]; ok {
		return repository.ErrDuplicateEmail
	}
	copied := *student
	r.byEmail[student.Email] = &copied
	return nil
}

func (r *memStudentRepo) GetByEmail(ctx context.Context, email string) (*domain.Student, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if s, ok := r.byEmail[email]; ok {
		copied := *s
		return &copied, nil
	}
	return nil, nil
}

func (r *memStudentRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Student, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, s := range r.byEmail {
		if s.ID == id {
			copied := *s
			return &copied, nil
		}
	}
	return nil, nil
}

func newTestService(repo repository.StudentRepository) (*AuthService, *auth.TokenManager) {
	hasher := auth.NewPasswordHasher(auth.Argon2Params{Time: 1, Memory: 1024, Threads: 1, SaltLen: 16, KeyLen: 32})
	tokens := auth.NewTokenManager("test-secret")
	return NewAuthService(repo, hasher, tokens), tokens
}

func registerInput(email string) RegisterInput {
	return RegisterInput{
		Name:        "Ada",
		DateOfBirth: time.Date(1990, 1, 1, 0, 0, 0, 0, time.UTC),
		Email:       email,
		Country:     "UK",
		Password:    "secret1",
	}
}

func TestRegister_Success(t *testing.T) {
	t.Parallel()

	repo := newMemStudentRepo()
	svc, tokens := newTestService(repo)

	resp, err := svc.Register(context.Background(), registerInput("ada@x.com"))
	require.NoError(t, err)

	assert.Equal(t, "ada@x.com", resp.Student.Email)
	assert.Equal(t, "Ada", resp.Student.Name)

	claims, err := tokens.Verify(resp.Token)
	require.NoError(t, err)
	assert.Equal(t, "ada@x.com", claims.Email)

	id, err := claims.SubjectID()
	require.NoError(t, err)
	assert.Equal(t, resp.Student.ID, id)

	stored, err := repo.GetByEmail(context.Background(), "ada@x.com")
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.NotEqual(t, "secret1", stored.PasswordHash)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	t.Parallel()

	svc, _ := newTestService(newMemStudentRepo())

	_, err := svc.Register(context.Background(), registerInput("ada@x.com"))
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), registerInput("ada@x.com"))
	assert.ErrorIs(t, err, ErrDuplicateEmail)
}

func TestRegister_ConcurrentSameEmail(t *testing.T) {
	t.Parallel()

	repo := newMemStudentRepo()
	svc, _ := newTestService(repo)

	results := make(chan error, 2)
	for i := 0; i < 2; i++ {
		go func() {
			_, err := svc.Register(context.Background(), registerInput("race@x.com"))
			results <- err
		}()
	}

	var successes, duplicates int
	for i := 0; i < 2; i++ {
		switch err := <-results; {
		case err == nil:
			successes++
		default:
			assert.ErrorIs(t, err, ErrDuplicateEmail)
			duplicates++
		}
	}

	assert.Equal(t, 1, successes)
	assert.Equal(t, 1, duplicates)
	assert.Len(t, repo.byEmail, 1)
}

func TestLogin_Success(t *testing.T) {
	t.Parallel()

	svc, tokens := newTestService(newMemStudentRepo())

	reg, err := svc.Register(context.Background(), registerInput("ada@x.com"))
	require.NoError(t, err)

	resp, err := svc.Login(context.Background(), LoginInput{Email: "ada@x.com", Password: "secret1"})
	require.NoError(t, err)
	assert.Equal(t, reg.Student.ID, resp.Student.ID)

	_, err = tokens.Verify(resp.Token)
	assert.NoError(t, err)
}

func TestLogin_UnknownEmailAndWrongPasswordIndistinguishable(t *testing.T) {
	t.Parallel()

	svc, _ := newTestService(newMemStudentRepo())

	_, err := svc.Register(context.Background(), registerInput("ada@x.com"))
	require.NoError(t, err)

	_, errUnknown := svc.Login(context.Background(), LoginInput{Email: "nobody@x.com", Password: "secret1"})
	_, errWrongPw := svc.Login(context.Background(), LoginInput{Email: "ada@x.com", Password: "wrong"})

	assert.ErrorIs(t, errUnknown, ErrInvalidCreds)
	assert.ErrorIs(t, errWrongPw, ErrInvalidCreds)
	assert.Equal(t, errUnknown.Error(), errWrongPw.Error())
}

func TestProfile(t *testing.T) {
	t.Parallel()

	svc, _ := newTestService(newMemStudentRepo())

	reg, err := svc.Register(context.Background(), registerInput("ada@x.com"))
	require.NoError(t, err)

	student, err := svc.Profile(context.Background(), reg.Student.ID)
	require.NoError(t, err)
	assert.Equal(t, "ada@x.com", student.Email)

	_, err = svc.Profile(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrStudentNotFound)
}

func TestRegister_RepoFault(t *testing.T) {
	t.Parallel()

	repo := newMemStudentRepo()
	repo.failWith = context.DeadlineExceeded
	svc, _ := newTestService(repo)

	_, err := svc.Register(context.Background(), registerInput("ada@x.com"))
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrDuplicateEmail)
}
