package http_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	httpadapter "runners/internal/adapters/in/http"
	"runners/internal/core/application/usecases/commands"
	"runners/internal/core/application/usecases/queries"
	"runners/internal/core/domain/model/pendingorder"
	"runners/internal/core/domain/model/timeslot"
	"runners/internal/core/ports"
	"runners/internal/pkg/errs"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testLocation = time.FixedZone("SGT", 8*60*60)

// stubPendingOrderRepo serves canned orders and records the window bounds it
// was queried with.
type stubPendingOrderRepo struct {
	orders      []*pendingorder.PendingOrder
	windowStart time.Time
	windowEnd   time.Time
}

func (s *stubPendingOrderRepo) Upsert(context.Context, *pendingorder.PendingOrder) error { return nil }
func (s *stubPendingOrderRepo) Update(context.Context, *pendingorder.PendingOrder) error { return nil }

func (s *stubPendingOrderRepo) Get(_ context.Context, orderID int64) (*pendingorder.PendingOrder, error) {
	for _, order := range s.orders {
		if order.OrderID() == orderID {
			return order, nil
		}
	}
	return nil, errs.NewObjectNotFoundError("orderId", orderID)
}

func (s *stubPendingOrderRepo) GetUnassignedBySlot(
	_ context.Context, slot timeslot.Timeslot,
) ([]*pendingorder.PendingOrder, error) {
	matched := make([]*pendingorder.PendingOrder, 0)
	for _, order := range s.orders {
		if order.Slot() == slot && !order.Assigned() {
			matched = append(matched, order)
		}
	}
	return matched, nil
}

func (s *stubPendingOrderRepo) GetUnassignedBetween(
	_ context.Context, start, end time.Time,
) ([]*pendingorder.PendingOrder, error) {
	s.windowStart, s.windowEnd = start, end
	matched := make([]*pendingorder.PendingOrder, 0)
	for _, order := range s.orders {
		if order.Assigned() {
			continue
		}
		if order.DeliveryTime().Before(start) || order.DeliveryTime().After(end) {
			continue
		}
		matched = append(matched, order)
	}
	return matched, nil
}

func (s *stubPendingOrderRepo) GetByOrderIDs(
	_ context.Context, orderIDs []int64,
) ([]*pendingorder.PendingOrder, error) {
	matched := make([]*pendingorder.PendingOrder, 0)
	for _, order := range s.orders {
		for _, id := range orderIDs {
			if order.OrderID() == id {
				matched = append(matched, order)
			}
		}
	}
	return matched, nil
}

func (s *stubPendingOrderRepo) UnassignAll(context.Context) error { return nil }

type stubUnitOfWork struct{ repo *stubPendingOrderRepo }

func (u stubUnitOfWork) Begin(context.Context) error    { return nil }
func (u stubUnitOfWork) Commit(context.Context) error   { return nil }
func (u stubUnitOfWork) Rollback(context.Context) error { return nil }

func (u stubUnitOfWork) PendingOrderRepository() ports.PendingOrderRepository { return u.repo }
func (u stubUnitOfWork) AvailabilityRepository() ports.AvailabilityRepository { return nil }
func (u stubUnitOfWork) AssignmentRepository() ports.AssignmentRepository     { return nil }

type stubUoWFactory struct{ repo *stubPendingOrderRepo }

func (f stubUoWFactory) Create() ports.UnitOfWork { return stubUnitOfWork{repo: f.repo} }

type fixedClock struct {
	now time.Time
	loc *time.Location
}

func (c fixedClock) Now() time.Time           { return c.now }
func (c fixedClock) Location() *time.Location { return c.loc }

func newTestServer(repo *stubPendingOrderRepo) *echo.Echo {
	clock := fixedClock{
		now: time.Date(2025, 3, 10, 9, 0, 0, 0, testLocation),
		loc: testLocation,
	}
	server := httpadapter.NewServer(
		commands.DispatchOrdersCommandHandler{},
		commands.RegisterAvailabilityCommandHandler{},
		commands.RemoveAvailabilityCommandHandler{},
		commands.ResetAssignmentsCommandHandler{},
		queries.GetRunnerOrdersQueryHandler{},
		queries.GetRunnerAvailabilityQueryHandler{},
		queries.NewGetPendingOrdersQueryHandler(stubUoWFactory{repo: repo}),
		queries.NewGetPendingOrderQueryHandler(stubUoWFactory{repo: repo}),
		clock,
	)

	e := echo.New()
	server.RegisterRoutes(e)
	return e
}

func storedOrder(t *testing.T, orderID int64, hour, minute int, assigned bool) *pendingorder.PendingOrder {
	t.Helper()

	deliveryTime := time.Date(2025, 3, 10, hour, minute, 0, 0, testLocation)
	slot, err := timeslot.Classify(deliveryTime)
	require.NoError(t, err)

	order, err := pendingorder.RestorePendingOrder(
		orderID, deliveryTime, slot,
		"SOB", "Seminar Room", "2-1",
		5, "customer@example.com",
		150, 1350,
		[]pendingorder.Item{{Qty: 1, Name: "Laksa", MenuItemID: 11, UnitPriceCents: 850}},
		assigned,
	)
	require.NoError(t, err)
	return order
}

func doRequest(e *echo.Echo, method, target string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestGetPendingOrdersBySlot_Route(t *testing.T) {
	repo := &stubPendingOrderRepo{orders: []*pendingorder.PendingOrder{
		storedOrder(t, 1, 11, 15, false),
		storedOrder(t, 2, 11, 30, true),
		storedOrder(t, 3, 18, 30, false),
	}}
	e := newTestServer(repo)

	rec := doRequest(e, http.MethodGet, "/api/v1/orders/pending/SLOT_2")
	require.Equal(t, http.StatusOK, rec.Code)

	var body []map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body, 1)
	assert.Equal(t, float64(1), body[0]["orderId"])
	assert.Equal(t, "SLOT_2", body[0]["slot"])
	assert.Equal(t, "2025-03-10T11:15:00", body[0]["deliveryTime"])
	assert.Equal(t, false, body[0]["assigned"])
}

func TestGetPendingOrdersBySlot_InvalidSlot(t *testing.T) {
	e := newTestServer(&stubPendingOrderRepo{})

	rec := doRequest(e, http.MethodGet, "/api/v1/orders/pending/SLOT_9")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetPendingOrdersByWindow_Route(t *testing.T) {
	repo := &stubPendingOrderRepo{orders: []*pendingorder.PendingOrder{
		storedOrder(t, 1, 11, 15, false),
		storedOrder(t, 3, 18, 30, false),
	}}
	e := newTestServer(repo)

	rec := doRequest(e, http.MethodGet,
		"/api/v1/orders/pending/delivery-time?start=2025-03-10T11:00:00&end=2025-03-10T12:00:00")
	require.Equal(t, http.StatusOK, rec.Code)

	var body []map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body, 1)
	assert.Equal(t, float64(1), body[0]["orderId"])

	// Window bounds are delivery-local wall-clock times.
	assert.True(t, repo.windowStart.Equal(time.Date(2025, 3, 10, 11, 0, 0, 0, testLocation)))
	assert.True(t, repo.windowEnd.Equal(time.Date(2025, 3, 10, 12, 0, 0, 0, testLocation)))
}

func TestGetPendingOrdersByWindow_InvalidBounds(t *testing.T) {
	e := newTestServer(&stubPendingOrderRepo{})

	rec := doRequest(e, http.MethodGet, "/api/v1/orders/pending/delivery-time?start=tomorrow&end=later")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetPendingOrdersByIDs_Route(t *testing.T) {
	repo := &stubPendingOrderRepo{orders: []*pendingorder.PendingOrder{
		storedOrder(t, 1, 11, 15, false),
		storedOrder(t, 2, 11, 30, true),
		storedOrder(t, 3, 18, 30, false),
	}}
	e := newTestServer(repo)

	rec := doRequest(e, http.MethodGet, "/api/v1/orders/pending?ids=1,2")
	require.Equal(t, http.StatusOK, rec.Code)

	var body []map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body, 2)
	assert.Equal(t, true, body[1]["assigned"])
}

func TestGetPendingOrdersByIDs_MissingParam(t *testing.T) {
	e := newTestServer(&stubPendingOrderRepo{})

	rec := doRequest(e, http.MethodGet, "/api/v1/orders/pending")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetPendingOrder_Route(t *testing.T) {
	repo := &stubPendingOrderRepo{orders: []*pendingorder.PendingOrder{
		storedOrder(t, 42, 11, 30, true),
	}}
	e := newTestServer(repo)

	rec := doRequest(e, http.MethodGet, "/api/v1/orders/42")
	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, float64(42), body["orderId"])
	assert.Equal(t, "customer@example.com", body["customerEmail"])
}

func TestGetPendingOrder_NotFound(t *testing.T) {
	e := newTestServer(&stubPendingOrderRepo{})

	rec := doRequest(e, http.MethodGet, "/api/v1/orders/404")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
