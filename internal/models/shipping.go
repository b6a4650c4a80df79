package models

import "time"

type Location struct {
	Latitude  float64 `json:"latitude" validate:"latitude"`
	Longitude float64 `json:"longitude" validate:"longitude"`
}

type ShippingQuote struct {
	DistanceKm float64   `json:"distanceKm"`
	Fee        int64     `json:"fee"`
	Label      string    `json:"label"`
	Location   Location  `json:"location"`
	ResolvedAt time.Time `json:"resolvedAt"`
}

// GeolocationOptions mirrors what a client passes to its position API.
type GeolocationOptions struct {
	EnableHighAccuracy bool  `json:"enableHighAccuracy"`
	TimeoutMs          int64 `json:"timeout"`
	MaximumAgeMs       int64 `json:"maximumAge"`
}
