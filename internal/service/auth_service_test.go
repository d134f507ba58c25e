package service_test

import (
	"testing"
	"time"

	"github.com/dom/league-matchmaker/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthService_IssueAndValidate(t *testing.T) {
	svc := service.NewAuthService("test-jwt-secret")
	require.True(t, svc.Enabled())

	token, err := svc.IssueToken("simulator", time.Minute)
	require.NoError(t, err)

	subject, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "simulator", subject)
}

func TestAuthService_ValidateToken(t *testing.T) {
	svc := service.NewAuthService("test-jwt-secret")
	other := service.NewAuthService("another-secret")

	expired, err := svc.IssueToken("simulator", -time.Minute)
	require.NoError(t, err)
	foreign, err := other.IssueToken("simulator", time.Minute)
	require.NoError(t, err)

	tests := []struct {
		name  string
		token string
	}{
		{name: "garbage", token: "not-a-token"},
		{name: "expired", token: expired},
		{name: "wrong secret", token: foreign},
		{name: "empty", token: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.ValidateToken(tt.token)
			assert.ErrorIs(t, err, service.ErrInvalidToken)
		})
	}
}

func TestAuthService_Disabled(t *testing.T) {
	svc := service.NewAuthService("")
	assert.False(t, svc.Enabled())

	_, err := svc.IssueToken("simulator", time.Minute)
	assert.ErrorIs(t, err, service.ErrAuthDisabled)

	_, err = svc.ValidateToken("anything")
	assert.ErrorIs(t, err, service.ErrAuthDisabled)
}
