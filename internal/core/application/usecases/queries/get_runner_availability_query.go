package queries

import (
	"errors"
	"fmt"

	"runners/internal/core/domain/model/kernel"
	"runners/internal/pkg/errs"
	"runners/internal/pkg/guard"
)

var ErrGetRunnerAvailabilityQueryIsNotConstructed = errors.New(
	"GetRunnerAvailabilityQuery must be created via NewGetRunnerAvailabilityQuery constructor",
)

// GetRunnerAvailabilityQuery retrieves the slots a runner registered for a
// date.
type GetRunnerAvailabilityQuery struct {
	runnerID int64
	date     kernel.Date

	guard guard.ConstructorGuard
}

// NewGetRunnerAvailabilityQuery creates a validated availability query.
func NewGetRunnerAvailabilityQuery(runnerID int64, date kernel.Date) (GetRunnerAvailabilityQuery, error) {
	if runnerID <= 0 {
		return GetRunnerAvailabilityQuery{}, errs.NewValueIsInvalidErrorWithCause("runnerId",
			fmt.Errorf("%d is not a positive runner id", runnerID))
	}
	if err := date.Validate(); err != nil {
		return GetRunnerAvailabilityQuery{}, err
	}

	return GetRunnerAvailabilityQuery{
		runnerID: runnerID,
		date:     date,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetRunnerAvailabilityQuery) Validate() error {
	return q.guard.Validate(ErrGetRunnerAvailabilityQueryIsNotConstructed)
}

// RunnerID returns the runner whose registration is requested.
func (q GetRunnerAvailabilityQuery) RunnerID() int64 { return q.runnerID }

// Date returns the service date of the registration.
func (q GetRunnerAvailabilityQuery) Date() kernel.Date { return q.date }

// GetRunnerAvailabilityQueryResponse is a runner's registration for a date.
// Slots is empty when the runner has not registered.
type GetRunnerAvailabilityQueryResponse struct {
	Date  string
	Slots []string
}
