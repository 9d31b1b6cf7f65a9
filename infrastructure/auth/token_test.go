package auth

import (
	"testing"
	"time"

	"horseadmin/domain/shared"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVerifier_RoundTrip(t *testing.T) {
	v := NewVerifier("secret", "horseadmin")
	raw, err := v.Mint(shared.Principal{
		ID: "u1", Email: "jane@example.com", Name: "Jane Rider", AvatarURL: "https://x/a.png",
	}, time.Hour)
	require.NoError(t, err)

	p, err := v.Verify(raw)

	require.NoError(t, err)
	assert.Equal(t, "u1", p.ID)
	assert.Equal(t, "jane@example.com", p.Email)
	assert.Equal(t, "Jane Rider", p.DisplayName())
	assert.Equal(t, "https://x/a.png", p.Metadata["avatar_url"])
}

func TestVerifier_Rejects(t *testing.T) {
	v := NewVerifier("secret", "")

	_, err := v.Verify("")
	assert.ErrorIs(t, err, ErrMissingToken)

	expired, err := v.Mint(shared.Principal{ID: "u1"}, -time.Minute)
	require.NoError(t, err)
	_, err = v.Verify(expired)
	assert.ErrorIs(t, err, ErrInvalidToken)

	foreign, err := NewVerifier("other", "").Mint(shared.Principal{ID: "u1"}, time.Hour)
	require.NoError(t, err)
	_, err = v.Verify(foreign)
	assert.ErrorIs(t, err, ErrInvalidToken)

	none := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{"sub": "u1", "exp": time.Now().Add(time.Hour).Unix()})
	unsigned, err := none.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)
	_, err = v.Verify(unsigned)
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = v.Mint(shared.Principal{}, time.Hour)
	assert.Error(t, err)
}

func TestVerifier_Issuer(t *testing.T) {
	raw, err := NewVerifier("secret", "elsewhere").Mint(shared.Principal{ID: "u1"}, time.Hour)
	require.NoError(t, err)

	_, err = NewVerifier("secret", "horseadmin").Verify(raw)

	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifier_MissingSubject(t *testing.T) {
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"exp": time.Now().Add(time.Hour).Unix()})
	raw, err := tok.SignedString([]byte("secret"))
	require.NoError(t, err)

	_, err = NewVerifier("secret", "").Verify(raw)

	assert.ErrorIs(t, err, ErrInvalidToken)
}
