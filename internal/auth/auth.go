// Package auth implements the admin session guard: a single configured
// identity, HMAC-signed time-limited credentials, and the password policy for
// resets.
package auth

import (
	"crypto/subtle"
	"time"
	"unicode"

	"tripdesk/internal/config"
	"tripdesk/internal/domain"

	"github.com/golang-jwt/jwt/v5"
)

const (
	// AdminIdentity is the fixed subject embedded in every credential.
	AdminIdentity = "admin"

	purposeSession = "session"
	purposeReset   = "reset"
)

type Guard struct {
	cfg config.AdminConfig
}

func NewGuard(cfg config.AdminConfig) *Guard {
	return &Guard{cfg: cfg}
}

// Login compares the supplied credentials against the configured pair and
// issues a 24h session token. The error never reveals which field was wrong.
func (g *Guard) Login(username, password string) (string, error) {
	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(g.cfg.Username)) == 1
	passOK := subtle.ConstantTimeCompare([]byte(password), []byte(g.cfg.Password)) == 1
	if !userOK || !passOK {
		return "", domain.Auth("invalid credentials")
	}
	return g.issue(purposeSession, 24*time.Hour)
}

// Verify checks a session credential and returns the embedded identity.
func (g *Guard) Verify(token string) (string, error) {
	return g.verify(token, purposeSession)
}

// IssueResetToken creates a reset-purpose credential expiring in one hour.
func (g *Guard) IssueResetToken() (string, error) {
	return g.issue(purposeReset, time.Hour)
}

// VerifyResetToken checks a reset-purpose credential. Session tokens are
// rejected, so a stolen session cannot drive a password reset.
func (g *Guard) VerifyResetToken(token string) error {
	_, err := g.verify(token, purposeReset)
	return err
}

func (g *Guard) issue(purpose string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":     AdminIdentity,
		"purpose": purpose,
		"iat":     now.Unix(),
		"exp":     now.Add(ttl).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(g.cfg.JWTSecret))
	if err != nil {
		return "", err
	}
	return signed, nil
}

func (g *Guard) verify(raw, wantPurpose string) (string, error) {
	if raw == "" {
		return "", domain.Auth("missing credential")
	}

	token, err := jwt.Parse(raw, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, domain.Auth("unexpected signing method")
		}
		return []byte(g.cfg.JWTSecret), nil
	})
	if err != nil || !token.Valid {
		return "", domain.Auth("invalid or expired credential")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", domain.Auth("invalid credential")
	}
	if purpose, _ := claims["purpose"].(string); purpose != wantPurpose {
		return "", domain.Auth("invalid credential")
	}

	sub, _ := claims["sub"].(string)
	if sub != AdminIdentity {
		return "", domain.Auth("invalid credential")
	}
	return sub, nil
}

// CheckPasswordStrength enforces the composed policy: length >= 8 with at
// least one uppercase, one lowercase, one digit and one symbol.
func CheckPasswordStrength(pw string) error {
	if len(pw) < 8 {
		return domain.Validation("password must be at least 8 characters")
	}

	var upper, lower, digit, symbol bool
	for _, r := range pw {
		switch {
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsLower(r):
			lower = true
		case unicode.IsDigit(r):
			digit = true
		default:
			symbol = true
		}
	}
	if !upper || !lower || !digit || !symbol {
		return domain.Validation("password must contain uppercase, lowercase, digit and symbol characters")
	}
	return nil
}
