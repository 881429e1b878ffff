package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/nutrimize/backend/config"
	"github.com/nutrimize/backend/internal/domain"
	"github.com/nutrimize/backend/internal/usecase"
)

// TestMain sets up test environment before running tests
func TestMain(m *testing.M) {
	// Set Gin to test mode once for all tests
	gin.SetMode(gin.TestMode)

	os.Exit(m.Run())
}

// --- Mock repositories ---

type stubProductRepo struct {
	global []domain.Product
	user   []domain.Product
}

func (s *stubProductRepo) GlobalProducts(ctx context.Context) ([]domain.Product, error) {
	return s.global, nil
}

func (s *stubProductRepo) UserProducts(ctx context.Context, userID uuid.UUID) ([]domain.Product, error) {
	return s.user, nil
}

type stubMenuRepo struct {
	menus map[string]*domain.SavedMenu
}

func newStubMenuRepo() *stubMenuRepo {
	return &stubMenuRepo{menus: make(map[string]*domain.SavedMenu)}
}

func (s *stubMenuRepo) key(userID uuid.UUID, name string) string {
	return userID.String() + "/" + strings.ToLower(name)
}

func (s *stubMenuRepo) Save(ctx context.Context, menu *domain.SavedMenu) error {
	copied := *menu
	s.menus[s.key(menu.UserID, menu.Name)] = &copied
	return nil
}

func (s *stubMenuRepo) FindByName(ctx context.Context, userID uuid.UUID, name string) (*domain.SavedMenu, error) {
	menu, ok := s.menus[s.key(userID, name)]
	if !ok {
		return nil, domain.ErrMenuNotFound
	}
	return menu, nil
}

func (s *stubMenuRepo) ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.SavedMenu, error) {
	out := []domain.SavedMenu{}
	for _, menu := range s.menus {
		if menu.UserID == userID {
			out = append(out, *menu)
		}
	}
	return out, nil
}

func (s *stubMenuRepo) ListNames(ctx context.Context, userID uuid.UUID) ([]string, error) {
	out := []string{}
	for _, menu := range s.menus {
		if menu.UserID == userID {
			out = append(out, menu.Name)
		}
	}
	return out, nil
}

func (s *stubMenuRepo) DeleteByName(ctx context.Context, userID uuid.UUID, name string) error {
	k := s.key(userID, name)
	if _, ok := s.menus[k]; !ok {
		return domain.ErrMenuNotFound
	}
	delete(s.menus, k)
	return nil
}

// setupTestRouter wires real services over stub repositories.
func setupTestRouter(products []domain.Product) *gin.Engine {
	cfg := &config.Config{
		Server: config.ServerConfig{
			Port:           "8080",
			Environment:    "test",
			AllowedOrigins: []string{"http://localhost:5173"},
		},
		RateLimit: config.RateLimitConfig{PerIP: 100, Burst: 100},
	}

	planner := usecase.NewPlannerService(&stubProductRepo{global: products}, nil, usecase.PlannerConfig{})
	menus := usecase.NewMenuService(newStubMenuRepo())
	handler := NewHandler(planner, menus)

	return SetupRouter(cfg, handler)
}

func testUserID() string {
	return "a2b6f1be-2f34-4bb8-8b6a-7e1d2c3f4a55"
}

// sampleProduct is a minimal vegan catalog entry for routing tests.
func sampleProduct(name string) domain.Product {
	return domain.Product{
		ID:        domain.GlobalID(1),
		Name:      name,
		Kcal:      100,
		Fat:       3,
		SatFat:    1,
		Carbs:     12,
		Sugars:    2,
		Protein:   5,
		PlantProt: 5,
		Salt:      0.2,
		Price100g: 0.9,
		Vegan:     true, Vegetarian: true, DairyFree: true,
	}
}

func validTargetJSON(extra string) string {
	body := `{"kcal":2000,"protein":100,"fat":70,"satFat":20,"carbs":250,"sugars":50,"salt":5`
	if extra != "" {
		body += "," + extra
	}
	return body + `}`
}

func TestHealthCheckEndpoint(t *testing.T) {
	t.Run("returns healthy status", func(t *testing.T) {
		router := setupTestRouter(nil)

		req, _ := http.NewRequest("GET", "/health", nil)
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Errorf("Status = %d, want %d", w.Code, http.StatusOK)
		}

		var response map[string]interface{}
		if err := json.Unmarshal(w.Body.Bytes(), &response); err != nil {
			t.Fatalf("Failed to unmarshal response: %v", err)
		}

		if response["status"] != "healthy" {
			t.Errorf("status = %v, want healthy", response["status"])
		}
		if response["service"] != "nutrimize-backend" {
			t.Errorf("service = %v, want nutrimize-backend", response["service"])
		}
	})

	t.Run("accepts GET requests only", func(t *testing.T) {
		router := setupTestRouter(nil)

		for _, method := range []string{"POST", "PUT", "DELETE", "PATCH"} {
			req, _ := http.NewRequest(method, "/health", nil)
			w := httptest.NewRecorder()

			router.ServeHTTP(w, req)

			if w.Code != http.StatusNotFound {
				t.Errorf("Method %s: Status = %d, want %d", method, w.Code, http.StatusNotFound)
			}
		}
	})
}

func TestUserIdentityRequired(t *testing.T) {
	routes := []struct {
		method string
		path   string
	}{
		{"POST", "/api/v1/menu/generate"},
		{"POST", "/api/v1/menus"},
		{"GET", "/api/v1/menus"},
		{"GET", "/api/v1/menus/names"},
		{"GET", "/api/v1/menus/breakfast"},
		{"DELETE", "/api/v1/menus/breakfast"},
	}

	t.Run("missing header", func(t *testing.T) {
		router := setupTestRouter(nil)

		for _, route := range routes {
			req, _ := http.NewRequest(route.method, route.path, nil)
			w := httptest.NewRecorder()

			router.ServeHTTP(w, req)

			if w.Code != http.StatusUnauthorized {
				t.Errorf("%s %s: Status = %d, want %d", route.method, route.path, w.Code, http.StatusUnauthorized)
			}
		}
	})

	t.Run("malformed header", func(t *testing.T) {
		router := setupTestRouter(nil)

		req, _ := http.NewRequest("GET", "/api/v1/menus", nil)
		req.Header.Set("X-User-ID", "not-a-uuid")
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		if w.Code != http.StatusUnauthorized {
			t.Errorf("Status = %d, want %d", w.Code, http.StatusUnauthorized)
		}
	})
}

func TestGenerateMenuEndpoint(t *testing.T) {
	post := func(router *gin.Engine, body string) *httptest.ResponseRecorder {
		req, _ := http.NewRequest("POST", "/api/v1/menu/generate", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("X-User-ID", testUserID())
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w
	}

	t.Run("returns 400 for invalid JSON", func(t *testing.T) {
		router := setupTestRouter(nil)

		w := post(router, `{invalid json}`)
		if w.Code != http.StatusBadRequest {
			t.Errorf("Status = %d, want %d", w.Code, http.StatusBadRequest)
		}
	})

	t.Run("accepts zero-valued targets", func(t *testing.T) {
		router := setupTestRouter(nil)

		// Zero is a valid target value, not a missing field; binding must
		// let it through to the pipeline (which reports the empty catalog).
		w := post(router, `{"kcal":2000,"protein":100,"fat":70,"satFat":20,"carbs":250,"sugars":50,"salt":0}`)
		if w.Code != http.StatusOK {
			t.Errorf("Status = %d, want %d, body %s", w.Code, http.StatusOK, w.Body.String())
		}

		var response map[string]interface{}
		if err := json.Unmarshal(w.Body.Bytes(), &response); err != nil {
			t.Fatalf("Failed to unmarshal response: %v", err)
		}
		if response["error"] != "no products found" {
			t.Errorf("error = %v, want 'no products found'", response["error"])
		}
	})

	t.Run("returns 400 for negative target", func(t *testing.T) {
		router := setupTestRouter(nil)

		w := post(router, `{"kcal":2000,"protein":100,"fat":-70,"satFat":20,"carbs":250,"sugars":50,"salt":5}`)
		if w.Code != http.StatusBadRequest {
			t.Errorf("Status = %d, want %d", w.Code, http.StatusBadRequest)
		}
	})

	t.Run("returns 400 for vegan without dairy-free", func(t *testing.T) {
		router := setupTestRouter([]domain.Product{sampleProduct("oats")})

		w := post(router, validTargetJSON(`"vegan":true`))
		if w.Code != http.StatusBadRequest {
			t.Errorf("Status = %d, want %d", w.Code, http.StatusBadRequest)
		}

		var response map[string]interface{}
		if err := json.Unmarshal(w.Body.Bytes(), &response); err != nil {
			t.Fatalf("Failed to unmarshal response: %v", err)
		}
		if response["error"] == nil {
			t.Error("expected error field in response")
		}
	})

	t.Run("empty catalog is reported, not a server fault", func(t *testing.T) {
		router := setupTestRouter(nil)

		w := post(router, validTargetJSON(""))
		if w.Code != http.StatusOK {
			t.Errorf("Status = %d, want %d", w.Code, http.StatusOK)
		}

		var response map[string]interface{}
		if err := json.Unmarshal(w.Body.Bytes(), &response); err != nil {
			t.Fatalf("Failed to unmarshal response: %v", err)
		}
		if response["error"] != "no products found" {
			t.Errorf("error = %v, want 'no products found'", response["error"])
		}
	})

	t.Run("filtered-out catalog is reported, not a server fault", func(t *testing.T) {
		meaty := sampleProduct("chicken")
		meaty.Vegan = false
		meaty.Vegetarian = false
		router := setupTestRouter([]domain.Product{meaty})

		w := post(router, validTargetJSON(`"vegetarian":true`))
		if w.Code != http.StatusOK {
			t.Errorf("Status = %d, want %d", w.Code, http.StatusOK)
		}

		var response map[string]interface{}
		if err := json.Unmarshal(w.Body.Bytes(), &response); err != nil {
			t.Fatalf("Failed to unmarshal response: %v", err)
		}
		if response["error"] != "no products match dietary preferences" {
			t.Errorf("error = %v, want 'no products match dietary preferences'", response["error"])
		}
	})

	t.Run("unknown restriction names yield an InvalidProducts plan", func(t *testing.T) {
		router := setupTestRouter([]domain.Product{sampleProduct("oats")})

		w := post(router, validTargetJSON(`"restrictions":[{"type":"exclude","product":"unicorn"}]`))
		if w.Code != http.StatusOK {
			t.Errorf("Status = %d, want %d", w.Code, http.StatusOK)
		}

		var plan domain.MenuPlan
		if err := json.Unmarshal(w.Body.Bytes(), &plan); err != nil {
			t.Fatalf("Failed to unmarshal response: %v", err)
		}
		if plan.Status != domain.StatusInvalidProducts {
			t.Errorf("status = %q, want %q", plan.Status, domain.StatusInvalidProducts)
		}
		if len(plan.InvalidProducts) != 1 || plan.InvalidProducts[0] != "unicorn" {
			t.Errorf("invalidProducts = %v, want [unicorn]", plan.InvalidProducts)
		}
	})

	t.Run("returns 400 for malformed restriction", func(t *testing.T) {
		router := setupTestRouter([]domain.Product{sampleProduct("oats")})

		// min_weight without a gram value is rejected at the JSON boundary.
		w := post(router, validTargetJSON(`"restrictions":[{"type":"min_weight","product":"oats"}]`))
		if w.Code != http.StatusBadRequest {
			t.Errorf("Status = %d, want %d", w.Code, http.StatusBadRequest)
		}
	})
}

func TestSavedMenusEndpoints(t *testing.T) {
	do := func(router *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
		var req *http.Request
		if body != "" {
			req, _ = http.NewRequest(method, path, strings.NewReader(body))
			req.Header.Set("Content-Type", "application/json")
		} else {
			req, _ = http.NewRequest(method, path, nil)
		}
		req.Header.Set("X-User-ID", testUserID())
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w
	}

	t.Run("save, list, fetch and delete round trip", func(t *testing.T) {
		router := setupTestRouter(nil)

		payload := `{"name":"Bulk week","plan":[{"productName":"oats","grams":200,"kcal":200,"cost":1.8}],"vegan":false}`
		if w := do(router, "POST", "/api/v1/menus", payload); w.Code != http.StatusCreated {
			t.Fatalf("save: Status = %d, want %d, body %s", w.Code, http.StatusCreated, w.Body.String())
		}

		w := do(router, "GET", "/api/v1/menus", "")
		if w.Code != http.StatusOK {
			t.Fatalf("list: Status = %d, want %d", w.Code, http.StatusOK)
		}
		var listResp struct {
			Menus []domain.SavedMenu `json:"menus"`
		}
		if err := json.Unmarshal(w.Body.Bytes(), &listResp); err != nil {
			t.Fatalf("Failed to unmarshal list response: %v", err)
		}
		if len(listResp.Menus) != 1 || listResp.Menus[0].Name != "Bulk Week" {
			t.Errorf("menus = %+v, want one menu named 'Bulk Week'", listResp.Menus)
		}

		w = do(router, "GET", "/api/v1/menus/names", "")
		if w.Code != http.StatusOK {
			t.Fatalf("names: Status = %d, want %d", w.Code, http.StatusOK)
		}
		var namesResp struct {
			Menus []string `json:"menus"`
		}
		if err := json.Unmarshal(w.Body.Bytes(), &namesResp); err != nil {
			t.Fatalf("Failed to unmarshal names response: %v", err)
		}
		if len(namesResp.Menus) != 1 || namesResp.Menus[0] != "Bulk Week" {
			t.Errorf("names = %v, want [Bulk Week]", namesResp.Menus)
		}

		w = do(router, "GET", "/api/v1/menus/Bulk week", "")
		if w.Code != http.StatusOK {
			t.Fatalf("get: Status = %d, want %d", w.Code, http.StatusOK)
		}
		var menu domain.SavedMenu
		if err := json.Unmarshal(w.Body.Bytes(), &menu); err != nil {
			t.Fatalf("Failed to unmarshal menu: %v", err)
		}
		if menu.Name != "Bulk Week" || len(menu.Plan) != 1 {
			t.Errorf("menu = %+v, want name 'Bulk Week' with one allocation", menu)
		}

		if w := do(router, "DELETE", "/api/v1/menus/Bulk week", ""); w.Code != http.StatusOK {
			t.Fatalf("delete: Status = %d, want %d", w.Code, http.StatusOK)
		}
		if w := do(router, "GET", "/api/v1/menus/Bulk week", ""); w.Code != http.StatusNotFound {
			t.Errorf("get after delete: Status = %d, want %d", w.Code, http.StatusNotFound)
		}
	})

	t.Run("duplicate name is rejected", func(t *testing.T) {
		router := setupTestRouter(nil)

		payload := `{"name":"Cutting","plan":[]}`
		if w := do(router, "POST", "/api/v1/menus", payload); w.Code != http.StatusCreated {
			t.Fatalf("first save: Status = %d, want %d", w.Code, http.StatusCreated)
		}

		w := do(router, "POST", "/api/v1/menus", `{"name":"cutting","plan":[]}`)
		if w.Code != http.StatusBadRequest {
			t.Errorf("second save: Status = %d, want %d", w.Code, http.StatusBadRequest)
		}
	})

	t.Run("blank name is rejected", func(t *testing.T) {
		router := setupTestRouter(nil)

		w := do(router, "POST", "/api/v1/menus", `{"name":"   ","plan":[]}`)
		if w.Code != http.StatusBadRequest {
			t.Errorf("Status = %d, want %d", w.Code, http.StatusBadRequest)
		}
	})

	t.Run("empty list is OK, not 404", func(t *testing.T) {
		router := setupTestRouter(nil)

		w := do(router, "GET", "/api/v1/menus", "")
		if w.Code != http.StatusOK {
			t.Errorf("Status = %d, want %d", w.Code, http.StatusOK)
		}

		w = do(router, "DELETE", "/api/v1/menus/nothing", "")
		if w.Code != http.StatusNotFound {
			t.Errorf("delete missing: Status = %d, want %d", w.Code, http.StatusNotFound)
		}
	})
}
