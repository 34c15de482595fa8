package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/krizhnx/internyx/pkg/config"
	"github.com/krizhnx/internyx/pkg/jwtutil"

	"github.com/labstack/echo/v4"
)

func runAuth(t *testing.T, authorization string) (*httptest.ResponseRecorder, echo.Context) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/applications", nil)
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	next := func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	}
	if err := AuthMiddleware(next)(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}
	return rec, c
}

func TestAuthMiddlewareSetsOwner(t *testing.T) {
	jwtutil.Initialize(&config.JWTConfig{SigningKey: "test-signing-key"})
	token, err := jwtutil.GenerateToken("user-42", "dev@example.com", time.Hour)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	rec, c := runAuth(t, "Bearer "+token)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}
	ownerID, ok := OwnerIDFromContext(c)
	if !ok || ownerID != "user-42" {
		t.Errorf("owner = %q, %v", ownerID, ok)
	}
}

func TestAuthMiddlewareRejections(t *testing.T) {
	jwtutil.Initialize(&config.JWTConfig{SigningKey: "test-signing-key"})

	cases := []struct {
		name          string
		authorization string
	}{
		{"missing header", ""},
		{"not bearer", "Basic dXNlcjpwYXNz"},
		{"garbage token", "Bearer not.a.token"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec, _ := runAuth(t, tc.authorization)
			if rec.Code != http.StatusUnauthorized {
				t.Errorf("status = %d, want 401", rec.Code)
			}
		})
	}
}

func TestOwnerIDFromContext(t *testing.T) {
	e := echo.New()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())

	if _, ok := OwnerIDFromContext(c); ok {
		t.Error("owner reported on an empty context")
	}
	c.Set("owner_id", "")
	if _, ok := OwnerIDFromContext(c); ok {
		t.Error("empty owner id accepted")
	}
	c.Set("owner_id", "user-42")
	if id, ok := OwnerIDFromContext(c); !ok || id != "user-42" {
		t.Errorf("owner = %q, %v", id, ok)
	}
}
