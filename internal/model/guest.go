package model

import "time"

// TableStatus is the state of a dining table.
type TableStatus string

const (
	TableStatusAvailable TableStatus = "Available"
	TableStatusHidden    TableStatus = "Hidden"
	TableStatusReserved  TableStatus = "Reserved"
)

// Table represents a dining table.
type Table struct {
	Number    int         `json:"number" db:"number"`
	Capacity  int         `json:"capacity" db:"capacity"`
	Status    TableStatus `json:"status" db:"status"`
	CreatedAt time.Time   `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time   `json:"updatedAt" db:"updated_at"`
}

// Guest represents a checked-in guest.
type Guest struct {
	ID          int64     `json:"id" db:"id"`
	Name        string    `json:"name" db:"name"`
	TableNumber *int      `json:"tableNumber" db:"table_number"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time `json:"updatedAt" db:"updated_at"`
}
