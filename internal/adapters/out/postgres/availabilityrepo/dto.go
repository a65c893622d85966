// Package availabilityrepo persists the runner availability registry. One row
// per (runner, date, slot); the email travels on every row so dispatch can
// resolve a runner's address without a separate runner table.
package availabilityrepo

import (
	"runners/internal/core/domain/model/availability"
	"runners/internal/core/domain/model/kernel"
	"runners/internal/core/domain/model/timeslot"
)

// AvailabilityDTO is the database row for one registered slot. The composite
// unique index enforces at most one row per runner, date and slot.
type AvailabilityDTO struct {
	ID          int64  `gorm:"primaryKey"`
	RunnerID    int64  `gorm:"uniqueIndex:idx_runner_date_slot"`
	Date        string `gorm:"type:varchar(10);uniqueIndex:idx_runner_date_slot;index"`
	Timeslot    string `gorm:"type:varchar(16);uniqueIndex:idx_runner_date_slot"`
	RunnerEmail string
}

// TableName specifies the database table name for availability rows.
func (AvailabilityDTO) TableName() string {
	return "runner_availability"
}

// fromDomain converts an Availability record to its database row.
func fromDomain(record *availability.Availability) AvailabilityDTO {
	return AvailabilityDTO{
		RunnerID:    record.RunnerID(),
		Date:        record.Date().String(),
		Timeslot:    record.Slot().String(),
		RunnerEmail: record.RunnerEmail(),
	}
}

// toDomain reconstructs an Availability record from its database row.
func toDomain(dto AvailabilityDTO) (*availability.Availability, error) {
	date, err := kernel.DateFromString(dto.Date)
	if err != nil {
		return nil, err
	}

	slot, err := timeslot.FromString(dto.Timeslot)
	if err != nil {
		return nil, err
	}

	return availability.NewAvailability(dto.RunnerID, slot, date, dto.RunnerEmail)
}
