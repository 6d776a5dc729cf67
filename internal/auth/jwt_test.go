package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"libraryhub/pkg/models"
)

func testTokens() TokenService {
	return TokenService{
		Secret:   []byte("test-secret"),
		Issuer:   "libraryhub-test",
		Duration: time.Hour,
	}
}

func TestTokenService_RoundTripKeepsRole(t *testing.T) {
	ts := testTokens()
	u := &models.User{ID: "u1", Username: "head-librarian", Role: models.RoleLibrarian}

	token, exp, err := ts.Sign(u)
	require.NoError(t, err)
	assert.True(t, exp.After(time.Now()))

	claims, err := ts.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, "u1", claims.UserID)
	assert.Equal(t, "head-librarian", claims.Username)
	assert.Equal(t, models.RoleLibrarian, claims.Role)
}

func TestTokenService_WrongSecretRejected(t *testing.T) {
	ts := testTokens()
	token, _, err := ts.Sign(&models.User{ID: "u1", Username: "alice", Role: models.RolePatron})
	require.NoError(t, err)

	other := TokenService{Secret: []byte("different"), Issuer: ts.Issuer, Duration: ts.Duration}
	_, err = other.Parse(token)
	assert.Error(t, err)
}

func TestRequireUser_AnonymousRedirectsToLogin(t *testing.T) {
	gin.SetMode(gin.TestMode)
	ts := testTokens()

	r := gin.New()
	r.GET("/catalog", RequireUser(ts), func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/catalog", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/login", w.Header().Get("Location"))
}

func TestRequireRole_WrongRoleBounced(t *testing.T) {
	gin.SetMode(gin.TestMode)
	ts := testTokens()

	token, _, err := ts.Sign(&models.User{ID: "u1", Username: "alice", Role: models.RolePatron})
	require.NoError(t, err)

	r := gin.New()
	r.GET("/librarian/dashboard", RequireUser(ts), RequireRole(models.RoleLibrarian), func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/librarian/dashboard", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookie, Value: token})
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/catalog", w.Header().Get("Location"))
}
