package firebase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestIdentityFromClaims(t *testing.T) {
	id, err := identityFromClaims("uid-1", map[string]interface{}{
		"email":          "ada@example.com",
		"name":           "Ada",
		"picture":        "https://example.com/a.png",
		"email_verified": true,
	})
	require.NoError(t, err)
	assert.Equal(t, &Identity{UID: "uid-1", Email: "ada@example.com", Name: "Ada", Picture: "https://example.com/a.png", EmailVerified: true}, id)

	id, err = identityFromClaims("uid-3", map[string]interface{}{"email": "eve@example.com"})
	require.NoError(t, err)
	assert.False(t, id.EmailVerified)

	_, err = identityFromClaims("uid-2", map[string]interface{}{"name": "No Email"})
	assert.ErrorIs(t, err, ErrMissingEmail)
}

func TestInitFirebaseRequiresCredentials(t *testing.T) {
	_, err := InitFirebase(context.Background(), "", zap.NewNop())
	assert.Error(t, err)

	_, err = InitFirebase(context.Background(), "/nonexistent/creds.json", zap.NewNop())
	assert.ErrorContains(t, err, "not found")
}
