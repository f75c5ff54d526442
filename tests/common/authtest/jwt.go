//go:build unit || e2e

package authtest

import (
	"testing"
	"time"

	"freight-core/internal/pkg/config"
	"freight-core/internal/pkg/jwt"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

// JWTHelper mints tokens the way the identity service would.
type JWTHelper struct {
	cfg config.JWTConfig
}

func NewJWTHelper(cfg config.JWTConfig) *JWTHelper {
	return &JWTHelper{cfg: cfg}
}

func (h *JWTHelper) GenerateToken(t *testing.T, userID uuid.UUID, role jwt.Role) string {
	t.Helper()
	service := jwt.NewService(h.cfg.Secret, h.cfg.Issuer, h.cfg.TTL)
	token, err := service.GenerateToken(userID, role)
	require.NoError(t, err)
	return token
}

func (h *JWTHelper) CreateExpiredToken(t *testing.T, userID uuid.UUID, role jwt.Role) string {
	t.Helper()
	service := jwt.NewService(h.cfg.Secret, h.cfg.Issuer, time.Millisecond)
	token, err := service.GenerateToken(userID, role)
	require.NoError(t, err)
	time.Sleep(10 * time.Millisecond)
	return token
}
