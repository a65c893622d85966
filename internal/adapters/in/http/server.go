// Package http exposes the runner-facing REST surface over echo.
package http

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"runners/internal/core/application/usecases/commands"
	"runners/internal/core/application/usecases/queries"
	"runners/internal/core/domain/model/kernel"
	"runners/internal/core/domain/model/timeslot"
	"runners/internal/core/domain/services"
	"runners/internal/core/ports"
	"runners/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// deliveryTimeLayout is the wall-clock timestamp format used in responses and
// in the delivery-time window parameters.
const deliveryTimeLayout = "2006-01-02T15:04:05"

// Error is the JSON error body returned by every failing endpoint.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// Message is the JSON body of endpoints that only report an outcome.
type Message struct {
	Message string `json:"message"`
}

// AvailabilityRequest is the body of availability registration and removal
// requests.
type AvailabilityRequest struct {
	RunnerID    int64    `json:"runnerId"`
	RunnerEmail string   `json:"runnerEmail"`
	Slots       []string `json:"slots"`
}

// RunnerOrder is one assigned order in the my-orders response.
type RunnerOrder struct {
	OrderID      int64    `json:"orderId"`
	Slot         string   `json:"slot"`
	DeliveryTime string   `json:"deliveryTime"`
	Building     string   `json:"building"`
	RoomType     string   `json:"roomType"`
	RoomNumber   string   `json:"roomNumber"`
	Items        []string `json:"items"`
	TotalAmount  float64  `json:"totalAmount"`
}

// Availability is the response body of the availability lookup.
type Availability struct {
	Date  string   `json:"date"`
	Slots []string `json:"slots"`
}

// PendingOrder is one entry in the pending pool responses.
type PendingOrder struct {
	OrderID       int64    `json:"orderId"`
	Slot          string   `json:"slot"`
	DeliveryTime  string   `json:"deliveryTime"`
	Building      string   `json:"building"`
	RoomType      string   `json:"roomType"`
	RoomNumber    string   `json:"roomNumber"`
	MerchantID    int64    `json:"merchantId"`
	CustomerEmail string   `json:"customerEmail"`
	Items         []string `json:"items"`
	TotalAmount   float64  `json:"totalAmount"`
	Assigned      bool     `json:"assigned"`
}

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	// Command handlers
	dispatchOrdersHandler       commands.DispatchOrdersCommandHandler
	registerAvailabilityHandler commands.RegisterAvailabilityCommandHandler
	removeAvailabilityHandler   commands.RemoveAvailabilityCommandHandler
	resetAssignmentsHandler     commands.ResetAssignmentsCommandHandler

	// Query handlers
	getRunnerOrdersHandler       queries.GetRunnerOrdersQueryHandler
	getRunnerAvailabilityHandler queries.GetRunnerAvailabilityQueryHandler
	getPendingOrdersHandler      queries.GetPendingOrdersQueryHandler
	getPendingOrderHandler       queries.GetPendingOrderQueryHandler

	clock ports.Clock
}

// NewServer creates an HTTP server with the required command and query
// handlers.
func NewServer(
	dispatchOrdersHandler commands.DispatchOrdersCommandHandler,
	registerAvailabilityHandler commands.RegisterAvailabilityCommandHandler,
	removeAvailabilityHandler commands.RemoveAvailabilityCommandHandler,
	resetAssignmentsHandler commands.ResetAssignmentsCommandHandler,
	getRunnerOrdersHandler queries.GetRunnerOrdersQueryHandler,
	getRunnerAvailabilityHandler queries.GetRunnerAvailabilityQueryHandler,
	getPendingOrdersHandler queries.GetPendingOrdersQueryHandler,
	getPendingOrderHandler queries.GetPendingOrderQueryHandler,
	clock ports.Clock,
) *Server {
	return &Server{
		dispatchOrdersHandler:        dispatchOrdersHandler,
		registerAvailabilityHandler:  registerAvailabilityHandler,
		removeAvailabilityHandler:    removeAvailabilityHandler,
		resetAssignmentsHandler:      resetAssignmentsHandler,
		getRunnerOrdersHandler:       getRunnerOrdersHandler,
		getRunnerAvailabilityHandler: getRunnerAvailabilityHandler,
		getPendingOrdersHandler:      getPendingOrdersHandler,
		getPendingOrderHandler:       getPendingOrderHandler,
		clock:                        clock,
	}
}

// RegisterRoutes mounts all runner endpoints on the echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	assign := e.Group("/api/v1/runners/assign")
	assign.POST("", s.DispatchOrders)
	assign.GET("/my-orders", s.GetRunnerOrders)
	assign.DELETE("/reset", s.ResetAssignments)

	availability := e.Group("/api/v1/runners/availability")
	availability.POST("", s.RegisterAvailabilityTomorrow)
	availability.POST("/today", s.RegisterAvailabilityToday)
	availability.PATCH("/remove", s.RemoveAvailabilityTomorrow)
	availability.PATCH("/remove/today", s.RemoveAvailabilityToday)
	availability.GET("/:date", s.GetAvailability)

	orders := e.Group("/api/v1/orders")
	orders.GET("/:orderId", s.GetPendingOrder)
	orders.GET("/pending", s.GetPendingOrdersByIDs)
	orders.GET("/pending/delivery-time", s.GetPendingOrdersByWindow)
	orders.GET("/pending/:timeslot", s.GetPendingOrdersBySlot)
}

// DispatchOrders handles POST /api/v1/runners/assign - runs a dispatch cycle
// for one slot and date. The date defaults to today.
func (s *Server) DispatchOrders(ctx echo.Context) error {
	slot, err := timeslot.FromString(ctx.QueryParam("timeslot"))
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid timeslot: " + err.Error(),
		})
	}

	date := kernel.DateFromTime(s.clock.Now())
	if raw := ctx.QueryParam("date"); raw != "" {
		if date, err = kernel.DateFromString(raw); err != nil {
			return ctx.JSON(http.StatusBadRequest, Error{
				Code:    http.StatusBadRequest,
				Message: "Invalid date: " + err.Error(),
			})
		}
	}

	cmd, err := commands.NewDispatchOrdersCommand(slot, date)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid dispatch request: " + err.Error(),
		})
	}

	err = s.dispatchOrdersHandler.Handle(ctx.Request().Context(), cmd)
	switch {
	case errors.Is(err, commands.ErrNoPendingOrders):
		return ctx.JSON(http.StatusOK, Message{
			Message: "No pending orders to assign for " + slot.String(),
		})
	case errors.Is(err, services.ErrNoAvailableRunners):
		return ctx.JSON(http.StatusConflict, Error{
			Code:    http.StatusConflict,
			Message: "No available runners for " + slot.String() + " on " + date.String(),
		})
	case err != nil:
		return ctx.JSON(http.StatusInternalServerError, Error{
			Code:    http.StatusInternalServerError,
			Message: "Failed to assign orders",
		})
	}

	return ctx.JSON(http.StatusOK, Message{
		Message: "Assigned pending orders for " + slot.String(),
	})
}

// GetRunnerOrders handles GET /api/v1/runners/assign/my-orders - returns a
// runner's assigned orders for a date. The date defaults to today.
func (s *Server) GetRunnerOrders(ctx echo.Context) error {
	runnerID, badParam := parseRunnerID(ctx.QueryParam("runnerId"))
	if badParam != nil {
		return ctx.JSON(http.StatusBadRequest, *badParam)
	}

	date := kernel.DateFromTime(s.clock.Now())
	if raw := ctx.QueryParam("date"); raw != "" {
		var err error
		if date, err = kernel.DateFromString(raw); err != nil {
			return ctx.JSON(http.StatusBadRequest, Error{
				Code:    http.StatusBadRequest,
				Message: "Invalid date: " + err.Error(),
			})
		}
	}

	query, err := queries.NewGetRunnerOrdersQuery(runnerID, date)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid request: " + err.Error(),
		})
	}

	orders, err := s.getRunnerOrdersHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return ctx.JSON(http.StatusInternalServerError, Error{
			Code:    http.StatusInternalServerError,
			Message: "Failed to retrieve assigned orders",
		})
	}

	response := make([]RunnerOrder, len(orders))
	for i, order := range orders {
		response[i] = RunnerOrder{
			OrderID:      order.OrderID,
			Slot:         order.Slot,
			DeliveryTime: order.DeliveryTime.Format(deliveryTimeLayout),
			Building:     order.Building,
			RoomType:     order.RoomType,
			RoomNumber:   order.RoomNumber,
			Items:        order.Items,
			TotalAmount:  order.TotalAmount,
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

// ResetAssignments handles DELETE /api/v1/runners/assign/reset - clears the
// assignment ledger and returns every pending order to the unassigned pool.
func (s *Server) ResetAssignments(ctx echo.Context) error {
	cmd := commands.NewResetAssignmentsCommand()

	if err := s.resetAssignmentsHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return ctx.JSON(http.StatusInternalServerError, Error{
			Code:    http.StatusInternalServerError,
			Message: "Failed to reset assignments",
		})
	}

	return ctx.JSON(http.StatusOK, Message{
		Message: "All assignments cleared and pending orders reset",
	})
}

// RegisterAvailabilityTomorrow handles POST /api/v1/runners/availability -
// registers a runner's slots for tomorrow.
func (s *Server) RegisterAvailabilityTomorrow(ctx echo.Context) error {
	return s.registerAvailability(ctx, kernel.DateFromTime(s.clock.Now()).Next())
}

// RegisterAvailabilityToday handles POST /api/v1/runners/availability/today -
// registers a runner's slots for today.
func (s *Server) RegisterAvailabilityToday(ctx echo.Context) error {
	return s.registerAvailability(ctx, kernel.DateFromTime(s.clock.Now()))
}

func (s *Server) registerAvailability(ctx echo.Context, date kernel.Date) error {
	request, slots, badRequest := bindAvailabilityRequest(ctx)
	if badRequest != nil {
		return ctx.JSON(http.StatusBadRequest, *badRequest)
	}

	cmd, err := commands.NewRegisterAvailabilityCommand(request.RunnerID, date, slots, request.RunnerEmail)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid availability data: " + err.Error(),
		})
	}

	err = s.registerAvailabilityHandler.Handle(ctx.Request().Context(), cmd)
	switch {
	case errors.Is(err, commands.ErrAlreadyRegistered):
		return ctx.JSON(http.StatusConflict, Error{
			Code:    http.StatusConflict,
			Message: "Availability already registered for " + date.String(),
		})
	case err != nil:
		return ctx.JSON(http.StatusInternalServerError, Error{
			Code:    http.StatusInternalServerError,
			Message: "Failed to register availability",
		})
	}

	return ctx.JSON(http.StatusCreated, Message{
		Message: "Availability registered for " + date.String(),
	})
}

// RemoveAvailabilityTomorrow handles PATCH /api/v1/runners/availability/remove
// - removes a runner's slots for tomorrow.
func (s *Server) RemoveAvailabilityTomorrow(ctx echo.Context) error {
	return s.removeAvailability(ctx, kernel.DateFromTime(s.clock.Now()).Next())
}

// RemoveAvailabilityToday handles PATCH
// /api/v1/runners/availability/remove/today - removes a runner's slots for
// today.
func (s *Server) RemoveAvailabilityToday(ctx echo.Context) error {
	return s.removeAvailability(ctx, kernel.DateFromTime(s.clock.Now()))
}

func (s *Server) removeAvailability(ctx echo.Context, date kernel.Date) error {
	request, slots, badRequest := bindAvailabilityRequest(ctx)
	if badRequest != nil {
		return ctx.JSON(http.StatusBadRequest, *badRequest)
	}

	cmd, err := commands.NewRemoveAvailabilityCommand(request.RunnerID, date, slots)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid availability data: " + err.Error(),
		})
	}

	if err = s.removeAvailabilityHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return ctx.JSON(http.StatusInternalServerError, Error{
			Code:    http.StatusInternalServerError,
			Message: "Failed to remove availability",
		})
	}

	return ctx.JSON(http.StatusOK, Message{
		Message: "Availability removed for " + date.String(),
	})
}

// GetAvailability handles GET /api/v1/runners/availability/:date - returns a
// runner's registered slots for a date.
func (s *Server) GetAvailability(ctx echo.Context) error {
	runnerID, badParam := parseRunnerID(ctx.QueryParam("runnerId"))
	if badParam != nil {
		return ctx.JSON(http.StatusBadRequest, *badParam)
	}

	date, err := kernel.DateFromString(ctx.Param("date"))
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid date: " + err.Error(),
		})
	}

	query, err := queries.NewGetRunnerAvailabilityQuery(runnerID, date)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid request: " + err.Error(),
		})
	}

	availability, err := s.getRunnerAvailabilityHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return ctx.JSON(http.StatusInternalServerError, Error{
			Code:    http.StatusInternalServerError,
			Message: "Failed to retrieve availability",
		})
	}

	return ctx.JSON(http.StatusOK, Availability{
		Date:  availability.Date,
		Slots: availability.Slots,
	})
}

// GetPendingOrdersBySlot handles GET /api/v1/orders/pending/:timeslot -
// returns the unassigned orders of one timeslot.
func (s *Server) GetPendingOrdersBySlot(ctx echo.Context) error {
	slot, err := timeslot.FromString(ctx.Param("timeslot"))
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid timeslot: " + err.Error(),
		})
	}

	query, err := queries.NewGetPendingOrdersBySlotQuery(slot)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid request: " + err.Error(),
		})
	}

	return s.respondPendingOrders(ctx, query)
}

// GetPendingOrdersByWindow handles GET
// /api/v1/orders/pending/delivery-time?start=...&end=... - returns the
// unassigned orders whose local delivery time falls in the window. Bounds use
// the 2006-01-02T15:04:05 layout and are interpreted as delivery-local
// wall-clock times.
func (s *Server) GetPendingOrdersByWindow(ctx echo.Context) error {
	start, err := time.ParseInLocation(deliveryTimeLayout, ctx.QueryParam("start"), s.clock.Location())
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid start: " + err.Error(),
		})
	}

	end, err := time.ParseInLocation(deliveryTimeLayout, ctx.QueryParam("end"), s.clock.Location())
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid end: " + err.Error(),
		})
	}

	query, err := queries.NewGetPendingOrdersByWindowQuery(start, end)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid window: " + err.Error(),
		})
	}

	return s.respondPendingOrders(ctx, query)
}

// GetPendingOrdersByIDs handles GET /api/v1/orders/pending?ids=1,2,3 - returns
// the orders with the given ids, assigned or not. Missing ids are skipped.
func (s *Server) GetPendingOrdersByIDs(ctx echo.Context) error {
	orderIDs, badParam := parseOrderIDs(ctx.QueryParam("ids"))
	if badParam != nil {
		return ctx.JSON(http.StatusBadRequest, *badParam)
	}

	query, err := queries.NewGetPendingOrdersByIDsQuery(orderIDs)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid request: " + err.Error(),
		})
	}

	return s.respondPendingOrders(ctx, query)
}

// GetPendingOrder handles GET /api/v1/orders/:orderId - returns one order.
func (s *Server) GetPendingOrder(ctx echo.Context) error {
	orderID, err := strconv.ParseInt(ctx.Param("orderId"), 10, 64)
	if err != nil || orderID <= 0 {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid orderId",
		})
	}

	query, err := queries.NewGetPendingOrderQuery(orderID)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid request: " + err.Error(),
		})
	}

	order, err := s.getPendingOrderHandler.Handle(ctx.Request().Context(), query)
	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		return ctx.JSON(http.StatusNotFound, Error{
			Code:    http.StatusNotFound,
			Message: "Order " + strconv.FormatInt(orderID, 10) + " not found",
		})
	case err != nil:
		return ctx.JSON(http.StatusInternalServerError, Error{
			Code:    http.StatusInternalServerError,
			Message: "Failed to retrieve order",
		})
	}

	return ctx.JSON(http.StatusOK, toPendingOrder(order))
}

func (s *Server) respondPendingOrders(ctx echo.Context, query queries.GetPendingOrdersQuery) error {
	orders, err := s.getPendingOrdersHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return ctx.JSON(http.StatusInternalServerError, Error{
			Code:    http.StatusInternalServerError,
			Message: "Failed to retrieve pending orders",
		})
	}

	response := make([]PendingOrder, len(orders))
	for i, order := range orders {
		response[i] = toPendingOrder(order)
	}

	return ctx.JSON(http.StatusOK, response)
}

func toPendingOrder(order queries.GetPendingOrdersQueryResponse) PendingOrder {
	return PendingOrder{
		OrderID:       order.OrderID,
		Slot:          order.Slot,
		DeliveryTime:  order.DeliveryTime.Format(deliveryTimeLayout),
		Building:      order.Building,
		RoomType:      order.RoomType,
		RoomNumber:    order.RoomNumber,
		MerchantID:    order.MerchantID,
		CustomerEmail: order.CustomerEmail,
		Items:         order.Items,
		TotalAmount:   order.TotalAmount,
		Assigned:      order.Assigned,
	}
}

func parseOrderIDs(raw string) ([]int64, *Error) {
	if raw == "" {
		return nil, &Error{
			Code:    http.StatusBadRequest,
			Message: "Missing ids",
		}
	}

	parts := strings.Split(raw, ",")
	orderIDs := make([]int64, 0, len(parts))
	for _, part := range parts {
		id, err := strconv.ParseInt(strings.TrimSpace(part), 10, 64)
		if err != nil || id <= 0 {
			return nil, &Error{
				Code:    http.StatusBadRequest,
				Message: "Invalid ids",
			}
		}
		orderIDs = append(orderIDs, id)
	}

	return orderIDs, nil
}

func bindAvailabilityRequest(ctx echo.Context) (AvailabilityRequest, []timeslot.Timeslot, *Error) {
	var request AvailabilityRequest
	if err := ctx.Bind(&request); err != nil {
		return request, nil, &Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid request body",
		}
	}

	slots := make([]timeslot.Timeslot, 0, len(request.Slots))
	for _, name := range request.Slots {
		slot, err := timeslot.FromString(name)
		if err != nil {
			return request, nil, &Error{
				Code:    http.StatusBadRequest,
				Message: "Invalid timeslot: " + err.Error(),
			}
		}
		slots = append(slots, slot)
	}

	return request, slots, nil
}

func parseRunnerID(raw string) (int64, *Error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, &Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid runnerId",
		}
	}
	return id, nil
}
