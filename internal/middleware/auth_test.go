package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/aura-events/venues/internal/auth"
	"github.com/aura-events/venues/internal/models"
)

func newAuthRouter(tokens *auth.JWTService, extra ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(Errors(zap.NewNop()))
	handlers := append([]gin.HandlerFunc{JWT(tokens)}, extra...)
	handlers = append(handlers, func(c *gin.Context) {
		p, _ := PrincipalFrom(c)
		c.JSON(http.StatusOK, gin.H{"id": p.ID, "type": p.Type})
	})
	r.GET("/", handlers...)
	return r
}

func doAuthRequest(r *gin.Engine, authHeader string) (int, map[string]any) {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	r.ServeHTTP(w, req)
	var body map[string]any
	_ = json.Unmarshal(w.Body.Bytes(), &body)
	return w.Code, body
}

func TestJWT_Rejects(t *testing.T) {
	tokens := auth.NewJWTService("test-secret", 1)
	foreign, err := auth.NewJWTService("other-secret", 1).Generate(1, models.PrincipalOrganizer)
	require.NoError(t, err)

	tests := []struct {
		name   string
		header string
		msg    string
	}{
		{"missing header", "", "Missing authorization header"},
		{"basic scheme", "Basic dXNlcjpwYXNz", "Invalid authorization header"},
		{"empty bearer", "Bearer   ", "Invalid authorization header"},
		{"garbage token", "Bearer abc.def.ghi", "Invalid or expired token"},
		{"foreign signature", "Bearer " + foreign, "Invalid or expired token"},
	}
	r := newAuthRouter(tokens)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, body := doAuthRequest(r, tt.header)
			assert.Equal(t, http.StatusUnauthorized, code)
			assert.Equal(t, tt.msg, body["error_message"])
		})
	}
}

func TestJWT_SetsPrincipal(t *testing.T) {
	tokens := auth.NewJWTService("test-secret", 1)
	token, err := tokens.Generate(7, "Attendee")
	require.NoError(t, err)

	code, body := doAuthRequest(newAuthRouter(tokens), "Bearer "+token)
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, float64(7), body["id"])
	assert.Equal(t, "Attendee", body["type"])
}

func TestRequirePrincipalType(t *testing.T) {
	tokens := auth.NewJWTService("test-secret", 1)
	r := newAuthRouter(tokens, RequirePrincipalType(models.PrincipalOrganizer))

	attendee, err := tokens.Generate(7, "Attendee")
	require.NoError(t, err)
	code, body := doAuthRequest(r, "Bearer "+attendee)
	assert.Equal(t, http.StatusUnauthorized, code)
	assert.Equal(t, "Invalid token", body["error_message"])

	organizer, err := tokens.Generate(7, models.PrincipalOrganizer)
	require.NoError(t, err)
	code, _ = doAuthRequest(r, "Bearer "+organizer)
	assert.Equal(t, http.StatusOK, code)
}

func TestRequirePrincipalType_WithoutJWT(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(Errors(zap.NewNop()))
	r.GET("/", RequirePrincipalType(models.PrincipalOrganizer), func(c *gin.Context) { c.Status(http.StatusOK) })

	code, _ := doAuthRequest(r, "")
	assert.Equal(t, http.StatusUnauthorized, code)
}
