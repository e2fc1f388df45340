package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/guc1/A-Piece-Of-Cake-sub000/internal/types"
)

type stubValidator struct {
	claims *types.TokenClaims
	err    error
}

func (s *stubValidator) ValidateToken(token string) (*types.TokenClaims, error) {
	return s.claims, s.err
}

func runAuth(t *testing.T, validator TokenValidator, header string) (*httptest.ResponseRecorder, *gin.Context) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	if header != "" {
		c.Request.Header.Set("Authorization", header)
	}
	AuthMiddleware(validator)(c)
	return w, c
}

func TestAuthMiddlewareSetsIdentity(t *testing.T) {
	userID := uuid.New()
	validator := &stubValidator{claims: &types.TokenClaims{UserID: userID, Handle: "alice"}}

	w, c := runAuth(t, validator, "Bearer some-token")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, userID, c.MustGet("user_id"))
	assert.Equal(t, "alice", c.MustGet("handle"))
}

func TestAuthMiddlewareRejections(t *testing.T) {
	valid := &stubValidator{claims: &types.TokenClaims{UserID: uuid.New()}}
	invalid := &stubValidator{err: errors.New("expired")}

	tests := []struct {
		name      string
		validator TokenValidator
		header    string
	}{
		{"missing header", valid, ""},
		{"not bearer", valid, "Basic abc"},
		{"invalid token", invalid, "Bearer bad-token"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, c := runAuth(t, tt.validator, tt.header)
			assert.Equal(t, http.StatusUnauthorized, w.Code)
			assert.True(t, c.IsAborted())
		})
	}
}
