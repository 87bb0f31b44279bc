package delivery

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	authdomain "redalert-backend/internal/auth/domain"
	authdto "redalert-backend/internal/auth/dto"

	"github.com/gin-gonic/gin"
)

type fakeAuth struct {
	enabled bool
}

func (f *fakeAuth) Enabled() bool { return f.enabled }

func (f *fakeAuth) Login(req *authdto.LoginRequest) (*authdto.TokenResponse, error) {
	if req.Password != "pw" {
		return nil, authdomain.ErrInvalidCredentials
	}
	return &authdto.TokenResponse{AccessToken: "good", TokenType: "Bearer"}, nil
}

func (f *fakeAuth) ValidateToken(token string) (*authdomain.Admin, error) {
	if token != "good" {
		return nil, authdomain.ErrInvalidToken
	}
	return &authdomain.Admin{Username: "admin"}, nil
}

func TestAuthMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	tests := []struct {
		name       string
		enabled    bool
		header     string
		wantStatus int
	}{
		{name: "disabled passes through", enabled: false, wantStatus: http.StatusOK},
		{name: "missing header", enabled: true, wantStatus: http.StatusUnauthorized},
		{name: "bad scheme", enabled: true, header: "Basic good", wantStatus: http.StatusUnauthorized},
		{name: "bad token", enabled: true, header: "Bearer bad", wantStatus: http.StatusUnauthorized},
		{name: "good token", enabled: true, header: "Bearer good", wantStatus: http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := gin.New()
			r.POST("/protected", AuthMiddleware(&fakeAuth{enabled: tt.enabled}), func(c *gin.Context) {
				c.Status(http.StatusOK)
			})
			req := httptest.NewRequest(http.MethodPost, "/protected", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)
			if w.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", w.Code, tt.wantStatus)
			}
		})
	}
}

func TestLoginHandler(t *testing.T) {
	gin.SetMode(gin.TestMode)
	tests := []struct {
		name       string
		enabled    bool
		body       string
		wantStatus int
	}{
		{name: "disabled", enabled: false, body: `{"username":"admin","password":"pw"}`, wantStatus: http.StatusNotFound},
		{name: "ok", enabled: true, body: `{"username":"admin","password":"pw"}`, wantStatus: http.StatusOK},
		{name: "wrong password", enabled: true, body: `{"username":"admin","password":"x"}`, wantStatus: http.StatusUnauthorized},
		{name: "missing fields", enabled: true, body: `{}`, wantStatus: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := gin.New()
			r.POST("/login", NewAuthHandler(&fakeAuth{enabled: tt.enabled}).Login)
			req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(tt.body))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)
			if w.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", w.Code, tt.wantStatus)
			}
		})
	}
}
