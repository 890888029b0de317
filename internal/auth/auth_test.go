package auth

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func testVerifier() *EnvVerifier {
	return &EnvVerifier{Name: "مدیر", Username: "admin", Password: "secret"}
}

func TestEnvVerifier(t *testing.T) {
	v := testVerifier()

	p, ok, err := v.Verify(context.Background(), "admin", "secret")
	if err != nil || !ok {
		t.Fatalf("Verify(valid) = %v, %v, %v", p, ok, err)
	}
	if p.Username != "admin" || p.Name != "مدیر" || p.ID != "1" {
		t.Errorf("principal = %+v", p)
	}

	for _, tt := range [][2]string{{"admin", "wrong"}, {"other", "secret"}, {"", ""}} {
		p, ok, err := v.Verify(context.Background(), tt[0], tt[1])
		if err != nil {
			t.Fatalf("Verify(%q,%q) err = %v", tt[0], tt[1], err)
		}
		if ok || p != nil {
			t.Errorf("Verify(%q,%q) matched", tt[0], tt[1])
		}
	}
}

func TestTokenRoundTrip(t *testing.T) {
	principal := &Principal{ID: "1", Name: "مدیر", Username: "admin"}

	token, err := GenerateToken(testSecret, principal)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	claims, err := ParseToken(testSecret, token)
	if err != nil {
		t.Fatalf("ParseToken: %v", err)
	}
	if claims.UserID != "1" || claims.Username != "admin" || claims.Name != "مدیر" {
		t.Errorf("claims = %+v", claims)
	}

	if _, err := ParseToken("another-secret-another-secret-00", token); err == nil {
		t.Error("token accepted under a different secret")
	}
	if _, err := ParseToken(testSecret, token+"x"); err == nil {
		t.Error("tampered token accepted")
	}
}

func newAuthRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := NewHandler(testVerifier(), testSecret, false)

	r.POST("/auth/login", h.Login)
	r.POST("/auth/register", h.Register)

	protected := r.Group("", Middleware(testSecret))
	protected.GET("/auth/me", h.Me)
	return r
}

func TestLoginSetsSessionCookie(t *testing.T) {
	r := newAuthRouter()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/auth/login",
		strings.NewReader(`{"userName":"admin","password":"secret"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d (body %s)", w.Code, w.Body.String())
	}

	var sessionCookie *http.Cookie
	for _, c := range w.Result().Cookies() {
		if c.Name == SessionCookie {
			sessionCookie = c
		}
	}
	if sessionCookie == nil {
		t.Fatal("session cookie not set")
	}
	if !sessionCookie.HttpOnly {
		t.Error("session cookie is not HTTP-only")
	}

	// The issued cookie authenticates a protected request.
	w2 := httptest.NewRecorder()
	req2 := httptest.NewRequest(http.MethodGet, "/auth/me", nil)
	req2.AddCookie(sessionCookie)
	r.ServeHTTP(w2, req2)

	if w2.Code != http.StatusOK {
		t.Fatalf("/auth/me status = %d", w2.Code)
	}
	var resp struct {
		User Principal `json:"user"`
	}
	if err := json.Unmarshal(w2.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.User.Username != "admin" {
		t.Errorf("principal = %+v", resp.User)
	}
}

func TestLoginSecureCookieFlag(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := NewHandler(testVerifier(), testSecret, true)
	r.POST("/auth/login", h.Login)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/auth/login",
		strings.NewReader(`{"userName":"admin","password":"secret"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d (body %s)", w.Code, w.Body.String())
	}
	for _, c := range w.Result().Cookies() {
		if c.Name == SessionCookie && !c.Secure {
			t.Error("session cookie not marked Secure")
		}
	}
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	r := newAuthRouter()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/auth/login",
		strings.NewReader(`{"userName":"admin","password":"nope"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", w.Code)
	}
	for _, c := range w.Result().Cookies() {
		if c.Name == SessionCookie {
			t.Error("session cookie set for failed login")
		}
	}
}

func TestMiddlewareRejectsMissingOrInvalidToken(t *testing.T) {
	r := newAuthRouter()

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/auth/me", nil))
	if w.Code != http.StatusUnauthorized {
		t.Errorf("no token: status = %d, want 401", w.Code)
	}

	w2 := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/auth/me", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookie, Value: "garbage"})
	r.ServeHTTP(w2, req)
	if w2.Code != http.StatusUnauthorized {
		t.Errorf("invalid token: status = %d, want 401", w2.Code)
	}
}

func TestMiddlewareAcceptsBearerHeader(t *testing.T) {
	r := newAuthRouter()

	token, err := GenerateToken(testSecret, &Principal{ID: "1", Name: "مدیر", Username: "admin"})
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/auth/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
}

func TestRegisterDisabled(t *testing.T) {
	r := newAuthRouter()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/auth/register",
		strings.NewReader(`{"userName":"new","password":"pass"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusForbidden {
		t.Fatalf("status = %d, want 403", w.Code)
	}
}
