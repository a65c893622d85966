package queries

import (
	"context"

	"gorm.io/gorm"
)

// GetRunnerAvailabilityQueryHandler reads a runner's slot registration for a
// date straight from the availability table.
type GetRunnerAvailabilityQueryHandler struct {
	db *gorm.DB
}

// NewGetRunnerAvailabilityQueryHandler creates a handler for availability
// queries.
func NewGetRunnerAvailabilityQueryHandler(db *gorm.DB) GetRunnerAvailabilityQueryHandler {
	return GetRunnerAvailabilityQueryHandler{db: db}
}

// Handle executes the availability query.
// Returns the registered slot names in chronological order; an unregistered
// runner gets an empty slice.
func (h GetRunnerAvailabilityQueryHandler) Handle(
	ctx context.Context,
	query GetRunnerAvailabilityQuery,
) (GetRunnerAvailabilityQueryResponse, error) {
	response := GetRunnerAvailabilityQueryResponse{
		Date:  query.Date().String(),
		Slots: make([]string, 0),
	}

	if err := query.Validate(); err != nil {
		return response, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT timeslot
		FROM runner_availability
		WHERE runner_id = ? AND date = ?
		ORDER BY timeslot
	`, query.RunnerID(), query.Date().String()).Rows()
	if err != nil {
		return response, err
	}
	defer rows.Close()

	for rows.Next() {
		var slot string
		if err = rows.Scan(&slot); err != nil {
			return response, err
		}
		response.Slots = append(response.Slots, slot)
	}

	if err = rows.Err(); err != nil {
		return response, err
	}

	return response, nil
}
