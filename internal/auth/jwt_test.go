package auth_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"casino-bot-backend/internal/auth"
	"casino-bot-backend/internal/config"
	"casino-bot-backend/internal/models"
)

func newService(secret string, expiration time.Duration) *auth.TokenService {
	return auth.NewTokenService(config.JWTConfig{Secret: secret, Expiration: expiration})
}

func TestIssueAndValidateRoundTrip(t *testing.T) {
	svc := newService("test-secret", time.Hour)
	userID := models.NewUserID(models.PlatformDiscord, "12345")

	token, err := svc.IssueToken(userID, models.PlatformDiscord, "gambler")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "discord:12345", claims.UserID)
	assert.Equal(t, "discord", claims.Platform)
	assert.Equal(t, "gambler", claims.Username)
	assert.Equal(t, "discord:12345", claims.Subject)
}

func TestValidateRejectsWrongSecret(t *testing.T) {
	issuer := newService("secret-a", time.Hour)
	verifier := newService("secret-b", time.Hour)
	userID := models.NewUserID(models.PlatformTelegram, "9")

	token, err := issuer.IssueToken(userID, models.PlatformTelegram, "bob")
	require.NoError(t, err)

	_, err = verifier.ValidateToken(token)
	assert.Error(t, err)
}

func TestValidateRejectsExpiredToken(t *testing.T) {
	svc := newService("test-secret", -time.Minute)
	userID := models.NewUserID(models.PlatformDiscord, "1")

	token, err := svc.IssueToken(userID, models.PlatformDiscord, "alice")
	require.NoError(t, err)

	_, err = svc.ValidateToken(token)
	assert.Error(t, err)
}

func TestValidateRejectsGarbage(t *testing.T) {
	svc := newService("test-secret", time.Hour)

	_, err := svc.ValidateToken("not.a.token")
	assert.Error(t, err)
}
