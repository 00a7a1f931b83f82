package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadConfig(t *testing.T) {
	content := `PORT=4000
ENVIRONMENT=development
POSTGRES_HOST=localhost
POSTGRES_PORT=5432
POSTGRES_USER=inkwell
POSTGRES_PASSWORD=secret
POSTGRES_DB=inkwell
RABBITMQ_HOST=localhost
RABBITMQ_PORT=5672
RABBITMQ_USER=guest
RABBITMQ_PASSWORD=guest
MAIL_HOST=smtp.example.com
MAIL_PORT=25
MAIL_USER=mailer
MAIL_PASSWORD=secret
MAIL_SENDER=noreply@example.com
MAIL_OWNER=owner@example.com
ADMIN_NAME=Site Owner
ADMIN_EMAIL=owner@example.com
ADMIN_PASSWORD=AdminPass1!
`

	path := filepath.Join(t.TempDir(), ".env")
	err := os.WriteFile(path, []byte(content), 0o644)
	assert.NoError(t, err)

	cfg, err := loadConfig(path)
	assert.NoError(t, err)

	assert.Equal(t, "4000", cfg.Port)
	assert.Equal(t, "development", cfg.Environment)
	assert.Equal(t, "localhost", cfg.DBHost)
	assert.Equal(t, "inkwell", cfg.DBName)
	assert.Equal(t, "guest", cfg.RabbitUser)
	assert.Equal(t, 25, cfg.MailPort)
	assert.Equal(t, "owner@example.com", cfg.MailOwner)
	assert.Equal(t, "Site Owner", cfg.AdminName)
	assert.True(t, cfg.LimiterEnabled)
}

func TestLoadConfigMissingFile(t *testing.T) {
	_, err := loadConfig(filepath.Join(t.TempDir(), "does_not_exist.env"))
	assert.Error(t, err)
}
