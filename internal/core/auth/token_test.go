package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/librarium/library-api/internal/core/domain"
)

type fakeClock struct{ t time.Time }

func (c *fakeClock) Now() time.Time { return c.t }

func newManager(secret string, clock *fakeClock) *TokenManager {
	return NewTokenManager(secret, time.Hour, WithClock(clock.Now))
}

func TestTokenManager_IssueAndVerify(t *testing.T) {
	clock := &fakeClock{t: time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)}
	m := newManager("secret", clock)

	token, issued, err := m.Issue("user-1", "alice@example.com")
	require.NoError(t, err)
	require.NotEmpty(t, token)
	assert.Equal(t, clock.t.Add(time.Hour), issued.ExpiresAt)

	clock.t = clock.t.Add(59 * time.Minute)
	id, err := m.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", id.Subject)
	assert.Equal(t, "alice@example.com", id.Email)
	assert.Equal(t, issued.IssuedAt, id.IssuedAt)
	assert.Equal(t, issued.ExpiresAt, id.ExpiresAt)
}

func TestTokenManager_Expired(t *testing.T) {
	clock := &fakeClock{t: time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)}
	m := newManager("secret", clock)

	token, _, err := m.Issue("user-1", "alice@example.com")
	require.NoError(t, err)

	clock.t = clock.t.Add(time.Hour)
	id, err := m.Verify(token)
	assert.ErrorIs(t, err, domain.ErrTokenExpired)
	assert.Equal(t, domain.Identity{}, id)
}

func TestTokenManager_WrongSecret(t *testing.T) {
	clock := &fakeClock{t: time.Now()}
	token, _, err := newManager("right-secret", clock).Issue("user-1", "a@example.com")
	require.NoError(t, err)

	id, err := newManager("wrong-secret", clock).Verify(token)
	assert.ErrorIs(t, err, domain.ErrInvalidToken)
	assert.Equal(t, domain.Identity{}, id)
}

func TestTokenManager_Malformed(t *testing.T) {
	m := newManager("secret", &fakeClock{t: time.Now()})

	for _, token := range []string{"", "not-a-token", "not.a.jwt", "a.b"} {
		_, err := m.Verify(token)
		assert.ErrorIs(t, err, domain.ErrInvalidToken, "token %q", token)
	}
}

func TestTokenManager_RejectsOtherAlgorithms(t *testing.T) {
	m := newManager("secret", &fakeClock{t: time.Now()})

	unsigned := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{
		"sub": "user-1",
		"exp": time.Now().Add(time.Hour).Unix(),
	})
	token, err := unsigned.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = m.Verify(token)
	assert.ErrorIs(t, err, domain.ErrInvalidToken)

	hs512 := jwt.NewWithClaims(jwt.SigningMethodHS512, jwt.MapClaims{
		"sub": "user-1",
		"exp": time.Now().Add(time.Hour).Unix(),
	})
	token, err = hs512.SignedString([]byte("secret"))
	require.NoError(t, err)

	_, err = m.Verify(token)
	assert.ErrorIs(t, err, domain.ErrInvalidToken)
}

func TestTokenManager_RequiresExpiry(t *testing.T) {
	m := newManager("secret", &fakeClock{t: time.Now()})

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"sub": "user-1"}).
		SignedString([]byte("secret"))
	require.NoError(t, err)

	_, err = m.Verify(token)
	assert.True(t, errors.Is(err, domain.ErrInvalidToken))
}

func TestTokenManager_AcceptsLegacyUserIDClaim(t *testing.T) {
	m := newManager("secret", &fakeClock{t: time.Now()})

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"userId": "legacy-7",
		"email":  "old@example.com",
		"exp":    time.Now().Add(time.Hour).Unix(),
	}).SignedString([]byte("secret"))
	require.NoError(t, err)

	id, err := m.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "legacy-7", id.Subject)
	assert.Equal(t, "old@example.com", id.Email)
}
