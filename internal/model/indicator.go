package model

import "github.com/shopspring/decimal"

// DishIndicator is a catalogue dish with the number of paid orders for it.
type DishIndicator struct {
	Dish
	SuccessOrders int `json:"successOrders"`
}

// RevenueByDate is the paid revenue for one calendar day.
type RevenueByDate struct {
	Date    string          `json:"date"`
	Revenue decimal.Decimal `json:"revenue"`
}

// DashboardIndicator summarises orders over a date window.
type DashboardIndicator struct {
	Revenue           decimal.Decimal `json:"revenue"`
	Currency          string          `json:"currency"`
	GuestCount        int             `json:"guestCount"`
	OrderCount        int             `json:"orderCount"`
	ServingTableCount int             `json:"servingTableCount"`
	DishIndicator     []DishIndicator `json:"dishIndicator"`
	RevenueByDate     []RevenueByDate `json:"revenueByDate"`
}
