package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/notes-api/internal/utils"
)

func echoIdentity(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{
		"user_id": c.Get("user_id"),
		"email":   c.Get("email"),
	})
}

func doRequest(t *testing.T, secret, authHeader string) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	e.GET("/protected", echoIdentity, JWTAuth(secret))

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestJWTAuthValidToken(t *testing.T) {
	t.Parallel()

	tok, err := utils.NewAccessToken("secret", "u1", "u1@x.com", 60)
	require.NoError(t, err)

	rec := doRequest(t, "secret", "Bearer "+tok.Token)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), `"user_id":"u1"`)
	require.Contains(t, rec.Body.String(), `"email":"u1@x.com"`)
}

func TestJWTAuthMissingHeader(t *testing.T) {
	t.Parallel()
	rec := doRequest(t, "secret", "")
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestJWTAuthGarbageToken(t *testing.T) {
	t.Parallel()
	rec := doRequest(t, "secret", "Bearer garbage")
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestJWTAuthWrongSecret(t *testing.T) {
	t.Parallel()

	tok, err := utils.NewAccessToken("other-secret", "u1", "u1@x.com", 60)
	require.NoError(t, err)

	rec := doRequest(t, "secret", "Bearer "+tok.Token)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestJWTAuthExpiredToken(t *testing.T) {
	t.Parallel()

	tok, err := utils.NewAccessToken("secret", "u1", "u1@x.com", -1)
	require.NoError(t, err)

	rec := doRequest(t, "secret", "Bearer "+tok.Token)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}
