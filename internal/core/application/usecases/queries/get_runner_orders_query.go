// Package queries contains read-only operations in the CQRS architecture.
// Query handlers bypass the domain model and read the database directly,
// returning lightweight response structs shaped for their callers.
package queries

import (
	"errors"
	"fmt"
	"time"

	"runners/internal/core/domain/model/kernel"
	"runners/internal/pkg/errs"
	"runners/internal/pkg/guard"
)

var ErrGetRunnerOrdersQueryIsNotConstructed = errors.New(
	"GetRunnerOrdersQuery must be created via NewGetRunnerOrdersQuery constructor",
)

// GetRunnerOrdersQuery retrieves the orders assigned to a runner on a date,
// the runner's delivery manifest for the day.
//
// Example:
//
//	query, _ := NewGetRunnerOrdersQuery(runnerID, date)
//	handler := NewGetRunnerOrdersQueryHandler(db)
//	orders, err := handler.Handle(ctx, query)
type GetRunnerOrdersQuery struct {
	runnerID int64
	date     kernel.Date

	guard guard.ConstructorGuard
}

// NewGetRunnerOrdersQuery creates a validated runner orders query.
func NewGetRunnerOrdersQuery(runnerID int64, date kernel.Date) (GetRunnerOrdersQuery, error) {
	if runnerID <= 0 {
		return GetRunnerOrdersQuery{}, errs.NewValueIsInvalidErrorWithCause("runnerId",
			fmt.Errorf("%d is not a positive runner id", runnerID))
	}
	if err := date.Validate(); err != nil {
		return GetRunnerOrdersQuery{}, err
	}

	return GetRunnerOrdersQuery{
		runnerID: runnerID,
		date:     date,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetRunnerOrdersQuery) Validate() error {
	return q.guard.Validate(ErrGetRunnerOrdersQueryIsNotConstructed)
}

// RunnerID returns the runner whose manifest is requested.
func (q GetRunnerOrdersQuery) RunnerID() int64 { return q.runnerID }

// Date returns the service date of the manifest.
func (q GetRunnerOrdersQuery) Date() kernel.Date { return q.date }

// GetRunnerOrdersQueryResponse is one assigned order in a runner's manifest.
type GetRunnerOrdersQueryResponse struct {
	OrderID      int64
	Slot         string
	DeliveryTime time.Time
	Building     string
	RoomType     string
	RoomNumber   string
	Items        []string
	TotalAmount  float64
}
