package orders

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	internalorders "github.com/angelmondragon/friendsofall-backend/internal/orders"
	"github.com/angelmondragon/friendsofall-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/friendsofall-backend/pkg/errors"
	"github.com/angelmondragon/friendsofall-backend/pkg/logger"
)

type stubOrdersService struct {
	orders       []internalorders.Order
	updateStatus func(ctx context.Context, id int64, status string) (internalorders.Order, error)
}

func (s *stubOrdersService) PlaceOrder(context.Context, internalorders.PlaceOrderInput) (internalorders.Order, error) {
	panic("not implemented")
}

func (s *stubOrdersService) UpdateStatus(ctx context.Context, id int64, status string) (internalorders.Order, error) {
	return s.updateStatus(ctx, id, status)
}

func (s *stubOrdersService) ListByStatus(_ context.Context, status enums.OrderStatus) []internalorders.Order {
	var out []internalorders.Order
	for _, o := range s.orders {
		if o.Status == status {
			out = append(out, o)
		}
	}
	return out
}

func (s *stubOrdersService) ListAll(context.Context) []internalorders.Order {
	return s.orders
}

func (s *stubOrdersService) Get(_ context.Context, id int64) (internalorders.Order, error) {
	for _, o := range s.orders {
		if o.ID == id {
			return o, nil
		}
	}
	return internalorders.Order{}, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
}

func (s *stubOrdersService) QRCode(ctx context.Context, id int64) ([]byte, error) {
	if _, err := s.Get(ctx, id); err != nil {
		return nil, err
	}
	return []byte("\x89PNG"), nil
}

func (s *stubOrdersService) Subscribe(func([]internalorders.Order)) func() {
	return func() {}
}

func withOrderID(req *http.Request, id string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("orderId", id)
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
}

func newStub() *stubOrdersService {
	return &stubOrdersService{orders: []internalorders.Order{
		{ID: 1, Status: enums.OrderStatusPreparing},
		{ID: 2, Status: enums.OrderStatusPending},
	}}
}

func TestDetail(t *testing.T) {
	svc := newStub()

	rec := httptest.NewRecorder()
	Detail(svc, logger.Nop()).ServeHTTP(rec, withOrderID(httptest.NewRequest(http.MethodGet, "/", nil), "2"))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	Detail(svc, logger.Nop()).ServeHTTP(rec, withOrderID(httptest.NewRequest(http.MethodGet, "/", nil), "9"))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	Detail(svc, logger.Nop()).ServeHTTP(rec, withOrderID(httptest.NewRequest(http.MethodGet, "/", nil), "abc"))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestQRCodeWritesPNG(t *testing.T) {
	rec := httptest.NewRecorder()
	QRCode(newStub(), logger.Nop()).ServeHTTP(rec, withOrderID(httptest.NewRequest(http.MethodGet, "/", nil), "1"))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "image/png" {
		t.Fatalf("unexpected content type %q", ct)
	}
}

func TestAdminListFiltersByStatus(t *testing.T) {
	rec := httptest.NewRecorder()
	AdminList(newStub(), logger.Nop()).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/?status=pending", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var envelope struct {
		Data []internalorders.Order `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(envelope.Data) != 1 || envelope.Data[0].ID != 2 {
		t.Fatalf("unexpected orders %+v", envelope.Data)
	}

	rec = httptest.NewRecorder()
	AdminList(newStub(), logger.Nop()).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/?status=lost", nil))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestAdminUpdateStatusMapsErrors(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want int
	}{
		{"ok", nil, http.StatusOK},
		{"missing", pkgerrors.New(pkgerrors.CodeNotFound, "order not found"), http.StatusNotFound},
		{"conflict", pkgerrors.New(pkgerrors.CodeStateConflict, "invalid status transition"), http.StatusUnprocessableEntity},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc := newStub()
			var gotStatus string
			svc.updateStatus = func(_ context.Context, id int64, status string) (internalorders.Order, error) {
				gotStatus = status
				if tc.err != nil {
					return internalorders.Order{}, tc.err
				}
				return internalorders.Order{ID: id, Status: enums.OrderStatus(status)}, nil
			}
			req := withOrderID(httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"status":"Ready"}`)), "1")
			rec := httptest.NewRecorder()
			AdminUpdateStatus(svc, logger.Nop()).ServeHTTP(rec, req)
			if rec.Code != tc.want {
				t.Fatalf("expected %d, got %d", tc.want, rec.Code)
			}
			if gotStatus != "ready" {
				t.Fatalf("expected lowercased status, got %q", gotStatus)
			}
		})
	}
}
