package controllers

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/angelmondragon/friendsofall-backend/internal/catalog"
	"github.com/angelmondragon/friendsofall-backend/pkg/config"
	"github.com/angelmondragon/friendsofall-backend/pkg/ids"
	"github.com/angelmondragon/friendsofall-backend/pkg/kvstore"
	"github.com/angelmondragon/friendsofall-backend/pkg/logger"
)

type stubPinger struct {
	err error
}

func (s stubPinger) Ping(context.Context) error {
	return s.err
}

func newCatalog(t *testing.T) catalog.Service {
	t.Helper()
	slot := kvstore.NewSlot(kvstore.KeyMenu, kvstore.NewMemoryMedium(), catalog.SeedMenu, nil, nil)
	if err := slot.Load(context.Background()); err != nil {
		t.Fatalf("load: %v", err)
	}
	svc, err := catalog.NewService(slot, ids.NewSequence(1000), logger.Nop())
	if err != nil {
		t.Fatalf("new catalog: %v", err)
	}
	return svc
}

func withItemID(req *http.Request, id string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("itemId", id)
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
}

func TestHealthReady(t *testing.T) {
	cfg := &config.Config{}
	cfg.App.Env = "test"

	rec := httptest.NewRecorder()
	HealthReady(cfg, logger.Nop(), stubPinger{}).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health/ready", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if rec.Header().Get(envHeader) != "test" {
		t.Fatal("expected env header")
	}

	rec = httptest.NewRecorder()
	HealthReady(cfg, logger.Nop(), stubPinger{err: errors.New("down")}).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health/ready", nil))
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", rec.Code)
	}
}

func TestMenuListFilters(t *testing.T) {
	svc := newCatalog(t)
	rec := httptest.NewRecorder()
	MenuList(svc, logger.Nop()).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/menu?category=Sides&q=fries", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "French Fries") || strings.Contains(rec.Body.String(), "Onion Rings") {
		t.Fatalf("unexpected body %s", rec.Body.String())
	}

	rec = httptest.NewRecorder()
	MenuList(svc, logger.Nop()).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/menu?available=maybe", nil))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestAdminMenuCreatePermissivePrice(t *testing.T) {
	svc := newCatalog(t)
	body := `{"name":"Garlic Bread","description":"Toasted","price":"abc","category":"Sides"}`
	rec := httptest.NewRecorder()
	AdminMenuCreate(svc, logger.Nop()).ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body)))
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), `"price":0`) {
		t.Fatalf("malformed price should become zero, got %s", rec.Body.String())
	}

	rec = httptest.NewRecorder()
	AdminMenuCreate(svc, logger.Nop()).ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"X","description":"Y","category":"Soups"}`)))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("unknown category should be rejected, got %d", rec.Code)
	}
}

func TestAdminMenuDeleteAndImage(t *testing.T) {
	svc := newCatalog(t)

	rec := httptest.NewRecorder()
	AdminMenuDelete(svc, logger.Nop()).ServeHTTP(rec, withItemID(httptest.NewRequest(http.MethodDelete, "/", nil), "999"))
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), `"deleted":false`) {
		t.Fatalf("unexpected delete response %d %s", rec.Code, rec.Body.String())
	}

	rec = httptest.NewRecorder()
	req := withItemID(httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"image":"data:image/png;base64,AAAA"}`)), "new")
	AdminMenuImage(svc, logger.Nop()).ServeHTTP(rec, req)
	if rec.Code != http.StatusAccepted {
		t.Fatalf("expected 202 for staged image, got %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	req = withItemID(httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"image":"data:image/png;base64,AAAA"}`)), "3")
	AdminMenuImage(svc, logger.Nop()).ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}
