// Package domain defines the marketplace types consumed by the auction monitor.
package domain

import "time"

// AuctionState is the numeric lifecycle state reported by the marketplace.
type AuctionState int

// Auction state constants.
const (
	AuctionDrafted                 AuctionState = 0
	AuctionReadyToPublish          AuctionState = 1
	AuctionActive                  AuctionState = 2
	AuctionClosedWaitingForPayment AuctionState = 3
	AuctionClosedWaitingForPickup  AuctionState = 4
	AuctionFinished                AuctionState = 5
	AuctionClosedBelowMinAsk       AuctionState = 6
	AuctionClosedNoBids            AuctionState = 7
	AuctionDisabled                AuctionState = 8
)

// BuyerAuctions is the listing returned by the buyer auction endpoint.
type BuyerAuctions struct {
	Items []Auction `json:"items"`
	Page  int       `json:"page"`
	Total int       `json:"total"`
}

// Auction is a single running or closed auction as seen by a buyer.
// Only the fields the monitor reads or displays are decoded.
type Auction struct {
	ID                     int          `json:"id"`
	UUID                   string       `json:"uuid,omitempty"`
	Label                  string       `json:"label"`
	State                  AuctionState `json:"state"`
	EndingTime             *time.Time   `json:"endingTime,omitempty"`
	RemainingTimeInSeconds float64      `json:"remainingTimeInSeconds"`
	StartedAt              *time.Time   `json:"startedAt,omitempty"`

	// Pricing
	StartingBidValue       float64 `json:"startingBidValue"`
	CurrentHighestBidValue float64 `json:"currentHighestBidValue"`
	MinimumRequiredAsk     float64 `json:"minimumRequiredAsk"`
	NumBids                int     `json:"numBids"`
	PurchasePrice          float64 `json:"purchasePrice"`
	InstantPurchasePrice   float64 `json:"instantPurchasePrice,omitempty"`
	HotBid                 bool    `json:"hotBid"`

	// Location
	LocationCountryCode string `json:"locationCountryCode,omitempty"`
	LocationCity        string `json:"locationCity,omitempty"`
	LocationZip         string `json:"locationZip,omitempty"`

	AssociatedVehicle *Vehicle `json:"associatedVehicle,omitempty"`
}

// IsActive reports whether the auction is currently running.
func (a *Auction) IsActive() bool {
	return a.State == AuctionActive
}

// Vehicle describes the car offered in an auction.
type Vehicle struct {
	ID             int            `json:"id"`
	VIN            string         `json:"vin,omitempty"`
	Make           string         `json:"make"`
	Model          string         `json:"model"`
	EZ             string         `json:"ez,omitempty"` // first registration, e.g. "04/2016"
	MileageInKm    float64        `json:"mileageInKm"`
	FuelType       int            `json:"fuelType"`
	Transmission   int            `json:"transmission"`
	EnginePowerHP  float64        `json:"enginePowerInHp,omitempty"`
	HadAccident    bool           `json:"hadAccident"`
	HasDamages     bool           `json:"hasDamages"`
	EstimatedValue float64        `json:"estimatedValue,omitempty"`
	VehicleImages  []VehicleImage `json:"vehicleImages,omitempty"`
}

// VehicleImage is a single photo of a vehicle.
type VehicleImage struct {
	UUID        string `json:"uuid"`
	Perspective int    `json:"perspective"`
	MimeType    string `json:"mimeType,omitempty"`
	URL         string `json:"url"`
}
