package auth

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIssueAndVerify_RoundTrip(t *testing.T) {
	t.Parallel()

	m := NewTokenManager("super-secret")
	id := uuid.New()

	tok, err := m.Issue(id, "ada@x.com", time.Hour)
	require.NoError(t, err)

	claims, err := m.Verify(tok)
	require.NoError(t, err)
	assert.Equal(t, "ada@x.com", claims.Email)

	gotID, err := claims.SubjectID()
	require.NoError(t, err)
	assert.Equal(t, id, gotID)
}

func TestVerify_ExpiryWindow(t *testing.T) {
	t.Parallel()

	issued := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	m := NewTokenManager("super-secret")
	m.now = func() time.Time { return issued }

	tok, err := m.Issue(uuid.New(), "ada@x.com", time.Hour)
	require.NoError(t, err)

	m.now = func() time.Time { return issued.Add(59 * time.Minute) }
	_, err = m.Verify(tok)
	assert.NoError(t, err)

	m.now = func() time.Time { return issued.Add(61 * time.Minute) }
	_, err = m.Verify(tok)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestVerify_WrongSecret(t *testing.T) {
	t.Parallel()

	tok, err := NewTokenManager("right-secret").Issue(uuid.New(), "ada@x.com", time.Hour)
	require.NoError(t, err)

	_, err = NewTokenManager("wrong-secret").Verify(tok)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestVerify_Malformed(t *testing.T) {
	t.Parallel()

	m := NewTokenManager("super-secret")

	for _, tok := range []string{"", "not.a.jwt", "a.b"} {
		_, err := m.Verify(tok)
		assert.ErrorIs(t, err, ErrTokenInvalid, "token=%q", tok)
	}
}
