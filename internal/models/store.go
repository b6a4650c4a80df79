package models

import "time"

type DayHours struct {
	Open   string `json:"open" validate:"required,datetime=15:04"`
	Close  string `json:"close" validate:"required,datetime=15:04"`
	IsOpen bool   `json:"isOpen"`
}

type StoreHours struct {
	Monday    DayHours `json:"monday"`
	Tuesday   DayHours `json:"tuesday"`
	Wednesday DayHours `json:"wednesday"`
	Thursday  DayHours `json:"thursday"`
	Friday    DayHours `json:"friday"`
	Saturday  DayHours `json:"saturday"`
	Sunday    DayHours `json:"sunday"`
}

func (h *StoreHours) Day(d time.Weekday) DayHours {
	switch d {
	case time.Monday:
		return h.Monday
	case time.Tuesday:
		return h.Tuesday
	case time.Wednesday:
		return h.Wednesday
	case time.Thursday:
		return h.Thursday
	case time.Friday:
		return h.Friday
	case time.Saturday:
		return h.Saturday
	default:
		return h.Sunday
	}
}

type UpdateStoreHoursRequest struct {
	Hours StoreHours `json:"hours" validate:"required"`
}

type NextOpen struct {
	Day  string    `json:"day"`
	Time string    `json:"time"`
	Date time.Time `json:"date"`
}

type StoreStatus struct {
	IsOpen   bool      `json:"isOpen"`
	Today    DayHours  `json:"today"`
	NextOpen *NextOpen `json:"nextOpen,omitempty"`
}

type StoreInfo struct {
	Name        string             `json:"name"`
	WhatsApp    string             `json:"whatsapp"`
	Location    Location           `json:"location"`
	Geolocation GeolocationOptions `json:"geolocation"`
}

type PageRequest struct {
	Page string `json:"page" validate:"required,oneof=home cart orders"`
}
