package routes

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/sudaisamin20/Food-Delivery-Website-Backend/configs"
	"github.com/sudaisamin20/Food-Delivery-Website-Backend/entity"
	"github.com/sudaisamin20/Food-Delivery-Website-Backend/pkg/logger"
	"github.com/sudaisamin20/Food-Delivery-Website-Backend/pkg/storage"
	"github.com/sudaisamin20/Food-Delivery-Website-Backend/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	r, _, _ := newTestEnv(t)
	return r
}

// newTestEnv also hands back the database, for seeding rows directly, and the
// local upload directory.
func newTestEnv(t *testing.T) (*gin.Engine, *gorm.DB, string) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	dir := t.TempDir()
	db, err := configs.OpenDB("sqlite", filepath.Join(dir, "routes.db")+"?_busy_timeout=5000")
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

	cfg := &configs.Config{
		JWTSecret:     "routes-secret",
		JWTTTL:        time.Hour,
		CORSOrigins:   []string{"*"},
		ClientSiteURL: "http://localhost:5173",
	}
	uploads := filepath.Join(dir, "uploads")
	r := gin.New()
	RegisterRoutes(r, Deps{
		DB:      db,
		Config:  cfg,
		Log:     logger.Discard(),
		Storage: storage.NewLocal(uploads),
	})
	return r, db, uploads
}

func do(r http.Handler, method, path, token string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("auth-token", token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRoutes_CustomerSmoke(t *testing.T) {
	r := newTestRouter(t)

	if w := do(r, http.MethodGet, "/health", "", nil); w.Code != http.StatusOK {
		t.Fatalf("health = %d", w.Code)
	}

	w := do(r, http.MethodPost, "/api/v1/auth/user/register", "", map[string]string{
		"fullname": "Sara", "email": "sara@test.example", "phoneno": "0300", "password": "secret123",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("register = %d %s", w.Code, w.Body.String())
	}
	var reg struct {
		Data struct {
			Token string `json:"token"`
			User  struct {
				ID uint `json:"ID"`
			} `json:"user"`
		} `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &reg); err != nil || reg.Data.Token == "" {
		t.Fatalf("register body: %v %s", err, w.Body.String())
	}
	tok, uid := reg.Data.Token, reg.Data.User.ID

	tests := []struct {
		name   string
		method string
		path   string
		token  string
		body   any
		want   int
	}{
		{"wrong password", http.MethodPost, "/api/v1/auth/user/login", "", map[string]string{"email": "sara@test.example", "password": "nope"}, http.StatusNotFound},
		{"login", http.MethodPost, "/api/v1/auth/user/login", "", map[string]string{"email": "sara@test.example", "password": "secret123"}, http.StatusOK},
		{"own cart", http.MethodGet, fmt.Sprintf("/api/v1/cart/get-user-cart/%d/1", uid), tok, nil, http.StatusOK},
		{"someone else's cart", http.MethodGet, fmt.Sprintf("/api/v1/cart/get-user-cart/%d/1", uid+1), tok, nil, http.StatusForbidden},
		{"cart needs auth", http.MethodGet, fmt.Sprintf("/api/v1/cart/get-user-cart/%d/1", uid), "", nil, http.StatusUnauthorized},
		{"order history", http.MethodGet, "/api/v1/order/get-user-orders", tok, nil, http.StatusOK},
		{"missing order", http.MethodGet, "/api/v1/order/get-order-details/999", tok, nil, http.StatusNotFound},
		{"super admin only", http.MethodGet, "/api/v1/superadmin/get-all-users", tok, nil, http.StatusForbidden},
		{"owner only", http.MethodGet, "/api/v1/category/getallcategories", tok, nil, http.StatusForbidden},
		{"assistant needs a query", http.MethodPost, "/api/v1/rag/ask", "", map[string]string{}, http.StatusBadRequest},
		{"assistant disabled", http.MethodPost, "/api/v1/rag/ask", "", map[string]string{"query": "best biryani"}, http.StatusServiceUnavailable},
		{"no cities yet", http.MethodGet, "/api/v1/superadmin/get-all-cities", "", nil, http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if w := do(r, tt.method, tt.path, tt.token, tt.body); w.Code != tt.want {
				t.Fatalf("%s %s = %d, want %d (%s)", tt.method, tt.path, w.Code, tt.want, w.Body.String())
			}
		})
	}
}

func errorOf(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var body struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode %s: %v", w.Body.String(), err)
	}
	return body.Error
}

func TestRoutes_DuplicateRegister(t *testing.T) {
	r := newTestRouter(t)
	const path = "/api/v1/auth/user/register"

	first := map[string]string{"fullname": "Ali", "email": "ali@test.example", "phoneno": "0300", "password": "secret123"}
	if w := do(r, http.MethodPost, path, "", first); w.Code != http.StatusCreated {
		t.Fatalf("first register = %d %s", w.Code, w.Body.String())
	}

	tests := []struct {
		name  string
		email string
	}{
		{"same email", "ali@test.example"},
		{"email differs only in case", "Ali@TEST.example"},
		{"padded email", "  ali@test.example "},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(r, http.MethodPost, path, "", map[string]string{
				"fullname": "Other", "email": tt.email, "phoneno": "0311", "password": "another1",
			})
			if w.Code != http.StatusBadRequest {
				t.Fatalf("register = %d, want 400 (%s)", w.Code, w.Body.String())
			}
			if msg := errorOf(t, w); msg != "User with this email already exists" {
				t.Fatalf("error = %q", msg)
			}
		})
	}
}

// seedOwner stores an owner, with an approved restaurant when withRestaurant
// is set, and returns a token for them.
func seedOwner(t *testing.T, db *gorm.DB, email string, withRestaurant bool) (string, *entity.Restaurant) {
	t.Helper()
	owner := &entity.Owner{Fullname: "Sara", BusinessEmail: email, Password: "x", Role: entity.RoleOwner}
	if err := db.Create(owner).Error; err != nil {
		t.Fatalf("seed owner: %v", err)
	}
	var rest *entity.Restaurant
	if withRestaurant {
		rest = &entity.Restaurant{Name: "Grill", City: "Lahore", Status: entity.RestaurantApproved, OwnerID: owner.ID}
		if err := db.Create(rest).Error; err != nil {
			t.Fatalf("seed restaurant: %v", err)
		}
		db.Model(owner).Update("restaurant_id", rest.ID)
	}
	tok, err := utils.GenerateToken(owner.ID, entity.RoleOwner, "routes-secret", time.Hour)
	if err != nil {
		t.Fatalf("token: %v", err)
	}
	return tok, rest
}

func TestRoutes_CategoryConflicts(t *testing.T) {
	r, db, _ := newTestEnv(t)
	tok, rest := seedOwner(t, db, "sara@grill.test", true)

	w := do(r, http.MethodPost, "/api/v1/category/create-category", tok, map[string]string{"name": "Mains"})
	if w.Code != http.StatusCreated {
		t.Fatalf("create = %d %s", w.Code, w.Body.String())
	}
	var created struct {
		Data struct {
			Category struct {
				ID uint `json:"ID"`
			} `json:"category"`
		} `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &created); err != nil || created.Data.Category.ID == 0 {
		t.Fatalf("create body: %v %s", err, w.Body.String())
	}
	mainsID := created.Data.Category.ID
	if w := do(r, http.MethodPost, "/api/v1/category/create-category", tok, map[string]string{"name": "Drinks"}); w.Code != http.StatusCreated {
		t.Fatalf("create drinks = %d %s", w.Code, w.Body.String())
	}
	item := &entity.Item{ItemName: "Burger", Price: 450, Available: true, RestaurantID: rest.ID, CategoryID: &mainsID}
	if err := db.Create(item).Error; err != nil {
		t.Fatalf("seed item: %v", err)
	}

	tests := []struct {
		name    string
		method  string
		path    string
		body    any
		want    int
		wantMsg string
	}{
		{"duplicate name", http.MethodPost, "/api/v1/category/create-category", map[string]string{"name": "Mains"}, http.StatusConflict, "Category already exists"},
		{"duplicate name in another case", http.MethodPost, "/api/v1/category/create-category", map[string]string{"name": "MAINS"}, http.StatusConflict, "Category already exists"},
		{"rename onto a sibling", http.MethodPut, fmt.Sprintf("/api/v1/category/update-category/%d", mainsID), map[string]string{"name": "drinks"}, http.StatusConflict, "Category already exists"},
		{"delete with items", http.MethodDelete, fmt.Sprintf("/api/v1/category/delete-category/%d", mainsID), nil, http.StatusConflict, "Can't delete this category because it has items."},
		{"delete unknown", http.MethodDelete, "/api/v1/category/delete-category/999", nil, http.StatusNotFound, "Category not found"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(r, tt.method, tt.path, tok, tt.body)
			if w.Code != tt.want {
				t.Fatalf("%s %s = %d, want %d (%s)", tt.method, tt.path, w.Code, tt.want, w.Body.String())
			}
			if msg := errorOf(t, w); msg != tt.wantMsg {
				t.Fatalf("error = %q, want %q", msg, tt.wantMsg)
			}
		})
	}
}

// multipartForm encodes fields plus an "image" file part when image is non-empty.
func multipartForm(t *testing.T, fields map[string]string, image string) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range fields {
		if err := mw.WriteField(k, v); err != nil {
			t.Fatalf("write field: %v", err)
		}
	}
	if image != "" {
		fw, err := mw.CreateFormFile("image", image)
		if err != nil {
			t.Fatalf("create file part: %v", err)
		}
		fw.Write([]byte("\x89PNG\r\n\x1a\n"))
	}
	if err := mw.Close(); err != nil {
		t.Fatalf("close form: %v", err)
	}
	return &buf, mw.FormDataContentType()
}

func doForm(t *testing.T, r http.Handler, path, token string, fields map[string]string, image string) *httptest.ResponseRecorder {
	t.Helper()
	body, ctype := multipartForm(t, fields, image)
	req := httptest.NewRequest(http.MethodPost, path, body)
	req.Header.Set("Content-Type", ctype)
	req.Header.Set("auth-token", token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func countFiles(t *testing.T, dir string) int {
	t.Helper()
	n := 0
	err := filepath.WalkDir(dir, func(_ string, d fs.DirEntry, err error) error {
		if errors.Is(err, fs.ErrNotExist) {
			return filepath.SkipDir
		}
		if err != nil {
			return err
		}
		if !d.IsDir() {
			n++
		}
		return nil
	})
	if err != nil {
		t.Fatalf("walk uploads: %v", err)
	}
	return n
}

func TestRoutes_CreateValidatesBeforeUpload(t *testing.T) {
	r, db, uploads := newTestEnv(t)
	newOwner, _ := seedOwner(t, db, "new@owner.test", false)
	tok, rest := seedOwner(t, db, "sara@grill.test", true)
	mains := &entity.Category{Name: "Mains", Slug: "mains", RestaurantID: rest.ID}
	if err := db.Create(mains).Error; err != nil {
		t.Fatalf("seed category: %v", err)
	}

	restaurant := map[string]string{
		"name": "Wok", "description": "Noodles", "openingTime": "10:00", "closingTime": "22:00",
		"cuisines": "Chinese", "address": "Mall Road", "phoneno": "0300", "city": "Lahore",
	}
	without := func(m map[string]string, key string) map[string]string {
		out := map[string]string{}
		for k, v := range m {
			if k != key {
				out[k] = v
			}
		}
		return out
	}
	item := map[string]string{"itemName": "Burger", "description": "Beef", "price": "450", "category": fmt.Sprint(mains.ID)}
	withPrice := func(p string) map[string]string {
		out := without(item, "price")
		out["price"] = p
		return out
	}

	rejected := []struct {
		name   string
		path   string
		token  string
		fields map[string]string
		want   int
	}{
		{"restaurant without city", "/api/v1/auth/restaurant/create", newOwner, without(restaurant, "city"), http.StatusBadRequest},
		{"second restaurant for an owner", "/api/v1/auth/restaurant/create", tok, restaurant, http.StatusConflict},
		{"item with a bad price", "/api/v1/item/create-item", tok, withPrice("free"), http.StatusBadRequest},
		{"item in an unknown category", "/api/v1/item/create-item", tok, map[string]string{"itemName": "Burger", "description": "Beef", "price": "450", "category": "999"}, http.StatusNotFound},
	}
	for _, tt := range rejected {
		t.Run(tt.name, func(t *testing.T) {
			w := doForm(t, r, tt.path, tt.token, tt.fields, "photo.png")
			if w.Code != tt.want {
				t.Fatalf("status = %d, want %d (%s)", w.Code, tt.want, w.Body.String())
			}
			if n := countFiles(t, uploads); n != 0 {
				t.Fatalf("rejected request left %d stored files", n)
			}
		})
	}

	if w := doForm(t, r, "/api/v1/item/create-item", tok, item, ""); w.Code != http.StatusBadRequest || errorOf(t, w) != "image is required" {
		t.Fatalf("item without image = %d %s", w.Code, w.Body.String())
	}
	if w := doForm(t, r, "/api/v1/item/create-item", tok, item, "burger.png"); w.Code != http.StatusCreated {
		t.Fatalf("create item = %d %s", w.Code, w.Body.String())
	}
	if w := doForm(t, r, "/api/v1/auth/restaurant/create", newOwner, restaurant, "wok.png"); w.Code != http.StatusCreated {
		t.Fatalf("create restaurant = %d %s", w.Code, w.Body.String())
	}
	if n := countFiles(t, uploads); n != 2 {
		t.Fatalf("stored files = %d, want 2", n)
	}
}

func TestRoutes_CreateOrderAnswers200(t *testing.T) {
	r, db, _ := newTestEnv(t)
	_, rest := seedOwner(t, db, "sara@grill.test", true)
	burger := &entity.Item{ItemName: "Burger", Price: 450, Available: true, RestaurantID: rest.ID}
	if err := db.Create(burger).Error; err != nil {
		t.Fatalf("seed item: %v", err)
	}
	user := &entity.User{Fullname: "Ali", Email: "ali@test.example", Password: "x", Role: entity.RoleUser}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("seed user: %v", err)
	}
	tok, err := utils.GenerateToken(user.ID, entity.RoleUser, "routes-secret", time.Hour)
	if err != nil {
		t.Fatalf("token: %v", err)
	}

	w := do(r, http.MethodPost, "/api/v1/order/create-order", tok, map[string]any{
		"restaurantId":  rest.ID,
		"paymentMethod": "cash",
		"items":         []map[string]any{{"itemId": burger.ID, "quantity": 2}},
	})
	if w.Code != http.StatusOK {
		t.Fatalf("create order = %d, want 200 (%s)", w.Code, w.Body.String())
	}
	var out struct {
		Data struct {
			OrderID uint `json:"orderId"`
		} `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil || out.Data.OrderID == 0 {
		t.Fatalf("order body: %v %s", err, w.Body.String())
	}
}
