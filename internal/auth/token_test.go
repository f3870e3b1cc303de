package auth

import (
	"testing"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/membership-service/internal/domain"
)

func testUser() *domain.UserAuth {
	org := "Cardiology"
	return &domain.UserAuth{
		ID:           "8a9f0c1e-0000-0000-0000-000000000001",
		Email:        "cardiology@medicare.com",
		Role:         domain.RoleOrgAdmin,
		Organization: &org,
	}
}

func TestTokenRoundTrip(t *testing.T) {
	tm := NewTokenManager("test-secret", 1)

	token, exp, err := tm.Generate(testUser())
	require.NoError(t, err)
	require.NotEmpty(t, token)
	assert.WithinDuration(t, time.Now().Add(time.Hour), exp, 5*time.Second)

	claims, err := tm.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, "8a9f0c1e-0000-0000-0000-000000000001", claims.UserID)
	assert.Equal(t, "cardiology@medicare.com", claims.Email)
	assert.Equal(t, domain.RoleOrgAdmin, claims.Role)
	require.NotNil(t, claims.Organization)
	assert.Equal(t, "Cardiology", *claims.Organization)

	principal := claims.Principal()
	assert.Equal(t, claims.UserID, principal.ID)
	assert.Equal(t, claims.Email, principal.Email)
}

func TestTokenSuperAdminHasNoOrganization(t *testing.T) {
	tm := NewTokenManager("test-secret", 1)

	token, _, err := tm.Generate(&domain.UserAuth{
		ID:    "u1",
		Email: "admin@medicare.com",
		Role:  domain.RoleSuperAdmin,
	})
	require.NoError(t, err)

	claims, err := tm.Parse(token)
	require.NoError(t, err)
	assert.Nil(t, claims.Organization)
}

func TestParseRejectsExpiredToken(t *testing.T) {
	tm := NewTokenManager("test-secret", 1)

	claims := &Claims{
		UserID: "u1",
		Email:  "admin@medicare.com",
		Role:   domain.RoleSuperAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(time.Now().Add(-2 * time.Hour)),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)

	_, err = tm.Parse(token)
	assert.Error(t, err, "correct signature must not rescue an expired token")
}

func TestParseRejectsTamperedToken(t *testing.T) {
	tm := NewTokenManager("test-secret", 1)

	token, _, err := tm.Generate(testUser())
	require.NoError(t, err)

	// Flip one character at a time across the token; every mutation must fail.
	for i := 0; i < len(token); i += 7 {
		if token[i] == '.' {
			continue
		}
		mutated := []byte(token)
		if mutated[i] == 'A' {
			mutated[i] = 'B'
		} else {
			mutated[i] = 'A'
		}
		if string(mutated) == token {
			continue
		}
		_, err := tm.Parse(string(mutated))
		assert.Errorf(t, err, "tampered token at offset %d was accepted", i)
	}
}

func TestParseRejectsWrongSecret(t *testing.T) {
	token, _, err := NewTokenManager("secret-a", 1).Generate(testUser())
	require.NoError(t, err)

	_, err = NewTokenManager("secret-b", 1).Parse(token)
	assert.Error(t, err)
}
