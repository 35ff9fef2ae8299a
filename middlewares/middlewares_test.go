package middlewares

import (
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/sudaisamin20/Food-Delivery-Website-Backend/configs"
	"github.com/sudaisamin20/Food-Delivery-Website-Backend/entity"
	"github.com/sudaisamin20/Food-Delivery-Website-Backend/pkg/logger"
	"github.com/sudaisamin20/Food-Delivery-Website-Backend/repository"
	"github.com/sudaisamin20/Food-Delivery-Website-Backend/utils"

	"github.com/gin-gonic/gin"
)

const testSecret = "test-secret"

func init() { gin.SetMode(gin.TestMode) }

func token(t *testing.T, id uint, role string) string {
	t.Helper()
	tok, err := utils.GenerateToken(id, role, testSecret, time.Hour)
	if err != nil {
		t.Fatalf("token: %v", err)
	}
	return tok
}

func echoRouter(mw ...gin.HandlerFunc) *gin.Engine {
	r := gin.New()
	handlers := append(mw, func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"id": utils.CurrentUserID(c), "role": utils.CurrentRole(c)})
	})
	r.GET("/x", handlers...)
	return r
}

func TestAuthMiddleware(t *testing.T) {
	r := echoRouter(AuthMiddleware(testSecret, entity.RoleUser, entity.RoleSuperAdmin))

	tests := []struct {
		name   string
		header map[string]string
		want   int
	}{
		{"no token", nil, http.StatusUnauthorized},
		{"garbage", map[string]string{"auth-token": "nope"}, http.StatusUnauthorized},
		{"user via auth-token", map[string]string{"auth-token": token(t, 1, entity.RoleUser)}, http.StatusOK},
		{"user via bearer", map[string]string{"Authorization": "Bearer " + token(t, 1, entity.RoleUser)}, http.StatusOK},
		{"wrong role", map[string]string{"auth-token": token(t, 1, entity.RoleOwner)}, http.StatusForbidden},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/x", nil)
			for k, v := range tt.header {
				req.Header.Set(k, v)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)
			if w.Code != tt.want {
				t.Fatalf("status = %d, want %d (%s)", w.Code, tt.want, w.Body.String())
			}
		})
	}
}

func TestWSAuthMiddlewareReadsQuery(t *testing.T) {
	r := echoRouter(WSAuthMiddleware(testSecret))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/x?token="+token(t, 5, entity.RoleDeliveryBoy), nil))
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/x", nil))
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("missing token: status = %d", w.Code)
	}
}

func TestRequireSuperAdmin(t *testing.T) {
	db, err := configs.OpenDB("sqlite", filepath.Join(t.TempDir(), "mw.db"))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if err := configs.Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	admin := &entity.User{Email: "root@test", Role: entity.RoleSuperAdmin}
	plain := &entity.User{Email: "joe@test", Role: entity.RoleUser}
	db.Create(admin)
	db.Create(plain)

	r := echoRouter(
		AuthMiddleware(testSecret, entity.RoleUser, entity.RoleSuperAdmin),
		RequireSuperAdmin(repository.NewUserRepository(db)),
	)
	tests := []struct {
		name string
		tok  string
		want int
	}{
		{"super admin", token(t, admin.ID, entity.RoleSuperAdmin), http.StatusOK},
		// a stale token still claiming the role is checked against the row
		{"demoted", token(t, plain.ID, entity.RoleSuperAdmin), http.StatusForbidden},
		{"plain user", token(t, plain.ID, entity.RoleUser), http.StatusForbidden},
		{"deleted account", token(t, 999, entity.RoleSuperAdmin), http.StatusUnauthorized},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/x", nil)
			req.Header.Set("auth-token", tt.tok)
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)
			if w.Code != tt.want {
				t.Fatalf("status = %d, want %d", w.Code, tt.want)
			}
		})
	}
}

func TestRequestLoggerSetsRequestID(t *testing.T) {
	r := gin.New()
	r.Use(RequestLogger(logger.Discard()))
	r.GET("/x", func(c *gin.Context) { c.String(http.StatusOK, utils.RequestID(c)) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/x", nil))
	if w.Body.String() == "" || w.Header().Get("X-Request-ID") != w.Body.String() {
		t.Fatalf("generated id missing: body=%q header=%q", w.Body.String(), w.Header().Get("X-Request-ID"))
	}

	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set("X-Request-ID", "abc")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Body.String() != "abc" {
		t.Fatalf("incoming id should be kept, got %q", w.Body.String())
	}
}

func TestCORSPreflight(t *testing.T) {
	r := gin.New()
	r.Use(CORSMiddleware([]string{"https://shop.example"}))
	r.GET("/x", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodOptions, "/x", nil)
	req.Header.Set("Origin", "https://shop.example")
	req.Header.Set("Access-Control-Request-Method", "GET")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "https://shop.example" {
		t.Fatalf("allow origin = %q", got)
	}
}
