package auth

import (
	"testing"
	"time"

	"tripdesk/internal/config"
	"tripdesk/internal/domain"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testGuard() *Guard {
	return NewGuard(config.AdminConfig{
		Username:  "admin",
		Password:  "Sup3r$ecret",
		JWTSecret: "test-secret",
	})
}

func TestLoginAndVerify(t *testing.T) {
	g := testGuard()

	token, err := g.Login("admin", "Sup3r$ecret")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	identity, err := g.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, AdminIdentity, identity)
}

func TestLoginRejectsWithGenericError(t *testing.T) {
	g := testGuard()

	_, err1 := g.Login("admin", "wrong")
	_, err2 := g.Login("wrong", "Sup3r$ecret")
	require.Error(t, err1)
	require.Error(t, err2)
	assert.True(t, domain.IsAuth(err1))
	// Same message either way, no field enumeration.
	assert.Equal(t, err1.Error(), err2.Error())
}

func TestVerifyRejectsExpired(t *testing.T) {
	g := testGuard()

	claims := jwt.MapClaims{
		"sub":     AdminIdentity,
		"purpose": "session",
		"iat":     time.Now().Add(-2 * time.Hour).Unix(),
		"exp":     time.Now().Add(-time.Hour).Unix(),
	}
	expired, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)

	_, err = g.Verify(expired)
	require.Error(t, err)
	assert.True(t, domain.IsAuth(err))
}

func TestVerifyRejectsGarbageAndMissing(t *testing.T) {
	g := testGuard()

	_, err := g.Verify("")
	assert.True(t, domain.IsAuth(err))

	_, err = g.Verify("not.a.token")
	assert.True(t, domain.IsAuth(err))
}

func TestVerifyRejectsWrongSecret(t *testing.T) {
	other := NewGuard(config.AdminConfig{Username: "admin", Password: "x", JWTSecret: "different"})
	token, err := other.Login("admin", "x")
	require.NoError(t, err)

	_, err = testGuard().Verify(token)
	assert.True(t, domain.IsAuth(err))
}

func TestResetTokenPurposeIsolation(t *testing.T) {
	g := testGuard()

	reset, err := g.IssueResetToken()
	require.NoError(t, err)
	require.NoError(t, g.VerifyResetToken(reset))

	// A session token is not a reset token and vice versa.
	session, err := g.Login("admin", "Sup3r$ecret")
	require.NoError(t, err)
	assert.Error(t, g.VerifyResetToken(session))
	_, err = g.Verify(reset)
	assert.Error(t, err)
}

func TestCheckPasswordStrength(t *testing.T) {
	cases := []struct {
		pw string
		ok bool
	}{
		{"short1A$", true},
		{"NoDigits$here", false},
		{"nouppercase1$", false},
		{"NOLOWERCASE1$", false},
		{"NoSymbols123a", false},
		{"aB1$", false},
		{"Val1d-Passw0rd!", true},
	}

	for _, tc := range cases {
		err := CheckPasswordStrength(tc.pw)
		if tc.ok {
			assert.NoError(t, err, tc.pw)
		} else {
			assert.Error(t, err, tc.pw)
			assert.True(t, domain.IsValidation(err), tc.pw)
		}
	}
}
