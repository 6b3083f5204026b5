package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// DishStatus is the availability of a dish in the catalogue.
type DishStatus string

const (
	DishStatusAvailable   DishStatus = "Available"
	DishStatusUnavailable DishStatus = "Unavailable"
	DishStatusHidden      DishStatus = "Hidden"
)

// Valid reports whether s is a known dish status.
func (s DishStatus) Valid() bool {
	switch s {
	case DishStatusAvailable, DishStatusUnavailable, DishStatusHidden:
		return true
	}
	return false
}

// Orderable reports whether a dish in this status may be added to an order.
func (s DishStatus) Orderable() bool {
	return s == DishStatusAvailable
}

// Dish represents a dish in the catalogue.
type Dish struct {
	ID          int64           `json:"id" db:"id"`
	Name        string          `json:"name" db:"name"`
	Price       decimal.Decimal `json:"price" db:"price"`
	Description string          `json:"description" db:"description"`
	Image       string          `json:"image" db:"image"`
	Status      DishStatus      `json:"status" db:"status"`
	CreatedAt   time.Time       `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time       `json:"updatedAt" db:"updated_at"`
}

// DishSnapshot is an immutable copy of a dish's priced attributes taken when
// an order references it.
type DishSnapshot struct {
	ID          int64           `json:"id" db:"id"`
	DishID      *int64          `json:"dishId" db:"dish_id"`
	Name        string          `json:"name" db:"name"`
	Price       decimal.Decimal `json:"price" db:"price"`
	Description string          `json:"description" db:"description"`
	Image       string          `json:"image" db:"image"`
	Status      DishStatus      `json:"status" db:"status"`
	CreatedAt   time.Time       `json:"createdAt" db:"created_at"`
}

// DishSeed is one catalogue entry read from a seed file.
type DishSeed struct {
	Name        string          `json:"name"`
	Price       decimal.Decimal `json:"price"`
	Description string          `json:"description"`
	Image       string          `json:"image"`
	Status      DishStatus      `json:"status"`
}

// DishSortKey names a column the catalogue listing may be sorted by.
type DishSortKey string

const (
	DishSortByName      DishSortKey = "name"
	DishSortByPrice     DishSortKey = "price"
	DishSortByCreatedAt DishSortKey = "createdAt"
	DishSortByUpdatedAt DishSortKey = "updatedAt"
)

// SortOrder is the direction of a sort.
type SortOrder string

const (
	SortAsc  SortOrder = "asc"
	SortDesc SortOrder = "desc"
)

// DishListQuery holds the filters and paging for the catalogue listing.
type DishListQuery struct {
	Page      int
	Limit     int
	SortBy    DishSortKey
	SortOrder SortOrder
	Search    string
	Statuses  []DishStatus
	FromPrice *decimal.Decimal
	ToPrice   *decimal.Decimal
}

// DishPage is one page of the catalogue listing.
type DishPage struct {
	Items     []Dish `json:"items"`
	TotalItem int    `json:"totalItem"`
	Page      int    `json:"page"`
	Limit     int    `json:"limit"`
	TotalPage int    `json:"totalPage"`
}
