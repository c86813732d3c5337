package model

import "time"

// Routine types. Each user has at most one routine per type.
const (
	RoutineMorning = "MORNING"
	RoutineEvening = "EVENING"
)

// ValidRoutineType reports whether s names a known routine slot.
func ValidRoutineType(s string) bool {
	return s == RoutineMorning || s == RoutineEvening
}

// Routine is a user's ordered checklist for one slot of the day. Items
// are a typed list here; the repository serializes them for storage.
//
// Fields:
//
//	ID          – primary key identifier.
//	UserID      – owning user.
//	RoutineType – MORNING or EVENING.
//	Items       – ordered checklist item labels.
//	CreatedAt   – creation timestamp.
//	UpdatedAt   – last update timestamp.
type Routine struct {
	ID          uint64    // routines.id
	UserID      uint64    // routines.user_id
	RoutineType string    // routines.routine_type
	Items       []string  // routines.routine_items (JSON text column)
	CreatedAt   time.Time // routines.created_at
	UpdatedAt   time.Time // routines.updated_at
}

// RoutineCheck records which items of a routine the user completed on
// one day. One row per (user, date, routine type), upserted.
//
// Fields:
//
//	ID           – primary key identifier.
//	UserID       – owning user.
//	CheckDate    – calendar date of the check.
//	RoutineType  – MORNING or EVENING.
//	CheckedItems – labels of completed items.
//	CreatedAt    – creation timestamp.
//	UpdatedAt    – last update timestamp.
type RoutineCheck struct {
	ID           uint64    // routine_checks.id
	UserID       uint64    // routine_checks.user_id
	CheckDate    time.Time // routine_checks.check_date
	RoutineType  string    // routine_checks.routine_type
	CheckedItems []string  // routine_checks.checked_items (JSON text column)
	CreatedAt    time.Time // routine_checks.created_at
	UpdatedAt    time.Time // routine_checks.updated_at
}
