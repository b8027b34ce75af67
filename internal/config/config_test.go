package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("TOKEN_SECRET", "test-secret")
	t.Setenv("APP_ENV", "")
	t.Setenv("STORE_DRIVER", "")
	t.Setenv("TOKEN_STRATEGY", "")
	t.Setenv("OTP_TTL", "")
	t.Setenv("SESSION_TOKEN_DURATION", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, StoreDriverPostgres, cfg.Store.Driver)
	assert.Equal(t, TokenStrategyPaseto, cfg.Auth.TokenStrategy)
	assert.Equal(t, 10*time.Minute, cfg.Auth.LoginCodeTTL)
	assert.Equal(t, 7*24*time.Hour, cfg.Auth.SessionTokenDuration)
	assert.Equal(t, []byte("test-secret"), cfg.Auth.TokenSecret)
}

func TestLoad_ProductionRequiresSMTP(t *testing.T) {
	t.Setenv("TOKEN_SECRET", "s")
	t.Setenv("APP_ENV", "prod")
	t.Setenv("SMTP_HOST", "")

	_, err := Load()
	assert.ErrorIs(t, err, ErrSMTPRequired)

	t.Setenv("SMTP_HOST", "smtp.example.com")
	cfg, err := Load()
	require.NoError(t, err)
	assert.True(t, cfg.Email.SMTPEnabled())
}

func TestLoad_DevelopmentAllowsLogSender(t *testing.T) {
	t.Setenv("TOKEN_SECRET", "s")
	t.Setenv("APP_ENV", "dev")
	t.Setenv("SMTP_HOST", "")

	cfg, err := Load()
	require.NoError(t, err)
	assert.False(t, cfg.Email.SMTPEnabled())
}

func TestLoad_MissingSecret(t *testing.T) {
	t.Setenv("TOKEN_SECRET", "")

	_, err := Load()
	assert.ErrorIs(t, err, ErrTokenSecretRequired)
}

func TestLoad_RejectsUnknownDriver(t *testing.T) {
	t.Setenv("TOKEN_SECRET", "s")
	t.Setenv("STORE_DRIVER", "cassandra")

	_, err := Load()
	assert.ErrorContains(t, err, "STORE_DRIVER")
}

func TestLoad_RejectsUnknownTokenStrategy(t *testing.T) {
	t.Setenv("TOKEN_SECRET", "s")
	t.Setenv("TOKEN_STRATEGY", "saml")

	_, err := Load()
	assert.ErrorContains(t, err, "TOKEN_STRATEGY")
}

func TestGetDurationEnv(t *testing.T) {
	t.Setenv("D_SECONDS", "90")
	t.Setenv("D_STRING", "15m")
	t.Setenv("D_BAD", "soon")

	assert.Equal(t, 90*time.Second, getDurationEnv("D_SECONDS", time.Hour))
	assert.Equal(t, 15*time.Minute, getDurationEnv("D_STRING", time.Hour))
	assert.Equal(t, time.Hour, getDurationEnv("D_BAD", time.Hour))
	assert.Equal(t, time.Hour, getDurationEnv("D_UNSET", time.Hour))
}

func TestGetSliceEnv(t *testing.T) {
	t.Setenv("ORIGINS", " http://a.test , ,http://b.test")

	assert.Equal(t, []string{"http://a.test", "http://b.test"}, getSliceEnv("ORIGINS", nil))
	assert.Equal(t, []string{"x"}, getSliceEnv("ORIGINS_UNSET", []string{"x"}))
}

func TestConnectionString(t *testing.T) {
	db := DatabaseConfig{Host: "h", Port: "1", User: "u", Password: "p", DBName: "d", SSLMode: "disable"}
	assert.Equal(t, "host=h port=1 user=u password=p dbname=d sslmode=disable", db.ConnectionString())

	db.ChannelBinding = "require"
	assert.Contains(t, db.ConnectionString(), "channel_binding=require")
}
