// Package assignmentrepo persists the assignment ledger. One row per
// dispatched order; the unique index on order id is the database-level
// enforcement that an order is assigned to at most one runner.
package assignmentrepo

import (
	"runners/internal/core/domain/model/assignment"
	"runners/internal/core/domain/model/kernel"
	"runners/internal/core/domain/model/timeslot"
)

// AssignmentDTO is the database row for one ledger entry.
type AssignmentDTO struct {
	ID       int64  `gorm:"primaryKey"`
	RunnerID int64  `gorm:"index:idx_assignment_runner_date"`
	OrderID  int64  `gorm:"uniqueIndex"`
	Date     string `gorm:"type:varchar(10);index:idx_assignment_runner_date"`
	Timeslot string `gorm:"type:varchar(16)"`
}

// TableName specifies the database table name for ledger entries.
func (AssignmentDTO) TableName() string {
	return "runner_assignments"
}

// fromDomain converts an Assignment to its database row. The ID is left to
// the database sequence on insert.
func fromDomain(record *assignment.Assignment) AssignmentDTO {
	return AssignmentDTO{
		ID:       record.ID(),
		RunnerID: record.RunnerID(),
		OrderID:  record.OrderID(),
		Date:     record.Date().String(),
		Timeslot: record.Slot().String(),
	}
}

// toDomain reconstructs an Assignment from its database row.
func toDomain(dto AssignmentDTO) (*assignment.Assignment, error) {
	date, err := kernel.DateFromString(dto.Date)
	if err != nil {
		return nil, err
	}

	slot, err := timeslot.FromString(dto.Timeslot)
	if err != nil {
		return nil, err
	}

	return assignment.RestoreAssignment(dto.ID, dto.RunnerID, dto.OrderID, date, slot)
}
