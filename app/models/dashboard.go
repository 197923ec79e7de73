package models

import "github.com/shopspring/decimal"

// PropertyOccupancy is the per-property slice of the occupancy summary, derived
// entirely from room/tenant/payment rows at query time.
type PropertyOccupancy struct {
	PropertyID    string          `json:"propertyId"`
	PropertyName  string          `json:"propertyName"`
	RoomCount     int             `json:"roomCount"`
	OccupiedCount int             `json:"occupiedCount"`
	OccupancyRate float64         `json:"occupancyRate"`
	ExpectedRent  decimal.Decimal `json:"expectedRent"`
	Collected     decimal.Decimal `json:"collected"`
}

// OccupancySummary is the single read-model all dashboard consumers share.
type OccupancySummary struct {
	TotalProperties int             `json:"totalProperties"`
	TotalRooms      int             `json:"totalRooms"`
	OccupiedRooms   int             `json:"occupiedRooms"`
	OccupancyRate   float64         `json:"occupancyRate"`
	TotalTenants    int             `json:"totalTenants"`
	ExpectedRent    decimal.Decimal `json:"expectedRent"`
	Collected       decimal.Decimal `json:"collected"`
	PendingApproval int             `json:"pendingApproval"`

	Properties []PropertyOccupancy `json:"properties"`
}
