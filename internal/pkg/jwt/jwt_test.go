package jwt

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/worktrack/worktrack-backend-go/internal/domain/user"
)

func TestGenerateAccessToken_RoundTrip(t *testing.T) {
	svc := NewJWTService("test-secret-key-for-jwt", time.Hour)
	empID := "emp-1"

	token, expiresAt, err := svc.GenerateAccessToken("user-1", "a@example.com", &empID, user.RoleManager)
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Greater(t, expiresAt, time.Now().Unix())

	decoded, err := svc.JWTAuth().Decode(token)
	require.NoError(t, err)
	claims, err := decoded.AsMap(context.Background())
	require.NoError(t, err)

	actor, err := ActorFromClaims(claims)
	require.NoError(t, err)
	assert.Equal(t, "user-1", actor.UserID)
	assert.Equal(t, user.RoleManager, actor.Role)
	require.NotNil(t, actor.EmployeeID)
	assert.Equal(t, "emp-1", *actor.EmployeeID)
}

func TestActorFromClaims_Rejects(t *testing.T) {
	tests := []struct {
		name   string
		claims map[string]interface{}
	}{
		{"wrong type", map[string]interface{}{"type": "refresh", "user_id": "u", "role": "admin"}},
		{"missing user", map[string]interface{}{"type": "access", "role": "admin"}},
		{"unknown role", map[string]interface{}{"type": "access", "user_id": "u", "role": "root"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ActorFromClaims(tt.claims)
			assert.ErrorIs(t, err, ErrInvalidClaims)
		})
	}
}

func TestActorFromClaims_NoEmployee(t *testing.T) {
	actor, err := ActorFromClaims(map[string]interface{}{
		"type":        "access",
		"user_id":     "u",
		"role":        "admin",
		"employee_id": nil,
	})
	require.NoError(t, err)
	assert.Nil(t, actor.EmployeeID)
}

func TestRevokeToken(t *testing.T) {
	svc := NewJWTService("secret", time.Hour)
	assert.False(t, svc.IsTokenRevoked("tok"))
	svc.RevokeToken("tok")
	assert.True(t, svc.IsTokenRevoked("tok"))
}
