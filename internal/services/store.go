package service

import (
	"context"
	stdErrors "errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/sayuryunur/storefront/internal/api/middleware"
	"github.com/sayuryunur/storefront/internal/errors"
	"github.com/sayuryunur/storefront/internal/models"
	repository "github.com/sayuryunur/storefront/internal/repositories"
)

const clockLayout = "15:04"

var dayNames = map[time.Weekday]string{
	time.Monday:    "Senin",
	time.Tuesday:   "Selasa",
	time.Wednesday: "Rabu",
	time.Thursday:  "Kamis",
	time.Friday:    "Jumat",
	time.Saturday:  "Sabtu",
	time.Sunday:    "Minggu",
}

// DefaultStoreHours is 09:00 to 17:00, open every day.
func DefaultStoreHours() *models.StoreHours {
	day := models.DayHours{Open: "09:00", Close: "17:00", IsOpen: true}

	return &models.StoreHours{
		Monday: day, Tuesday: day, Wednesday: day, Thursday: day,
		Friday: day, Saturday: day, Sunday: day,
	}
}

type StoreHoursService interface {
	Hours(ctx context.Context) *models.StoreHours
	Save(ctx context.Context, hours *models.StoreHours) error
	Status(ctx context.Context, now time.Time) *models.StoreStatus
}

type storeHoursService struct {
	repo     repository.SettingsRepository
	location *time.Location
}

func NewStoreHoursService(repo repository.SettingsRepository, timezone string) (StoreHoursService, error) {

	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return nil, fmt.Errorf("loading store timezone %q: %w", timezone, err)
	}

	return &storeHoursService{repo: repo, location: loc}, nil
}

// Hours never fails: missing or unreadable settings yield the defaults.
func (s *storeHoursService) Hours(ctx context.Context) *models.StoreHours {

	hours, err := s.repo.GetStoreHours(ctx)
	if err != nil {
		if !stdErrors.Is(err, repository.ErrSettingNotFound) {
			middleware.LoggerFromContext(ctx).Warn("Store hours unavailable, using defaults", slog.Any("error", err))
		}
		return DefaultStoreHours()
	}

	return hours
}

func (s *storeHoursService) Save(ctx context.Context, hours *models.StoreHours) error {

	fields := map[string]string{}

	for d := time.Sunday; d <= time.Saturday; d++ {
		day := hours.Day(d)
		key := dayKey(d)

		open, errOpen := time.Parse(clockLayout, day.Open)
		closing, errClose := time.Parse(clockLayout, day.Close)

		switch {
		case errOpen != nil:
			fields[key+".open"] = "Jam buka harus berformat HH:MM"
		case errClose != nil:
			fields[key+".close"] = "Jam tutup harus berformat HH:MM"
		case open.After(closing):
			fields[key] = "Jam buka harus sebelum jam tutup"
		}
	}

	if len(fields) > 0 {
		return errors.ValidationFailed(fields)
	}

	if err := s.repo.SaveStoreHours(ctx, hours); err != nil {
		return errors.DatabaseError("Failed to save store hours").WithError(err)
	}

	return nil
}

// Status reports whether the store is open at now, in the store's timezone,
// and when it opens next if it is closed.
func (s *storeHoursService) Status(ctx context.Context, now time.Time) *models.StoreStatus {

	hours := s.Hours(ctx)
	local := now.In(s.location)
	today := hours.Day(local.Weekday())
	clock := local.Format(clockLayout)

	status := &models.StoreStatus{
		IsOpen: today.IsOpen && clock >= today.Open && clock <= today.Close,
		Today:  today,
	}

	if !status.IsOpen {
		status.NextOpen = nextOpen(hours, local)
	}

	return status
}

// nextOpen scans forward a week. Today only counts before opening time.
func nextOpen(hours *models.StoreHours, local time.Time) *models.NextOpen {

	clock := local.Format(clockLayout)

	for i := 0; i <= 7; i++ {
		date := local.AddDate(0, 0, i)
		day := hours.Day(date.Weekday())

		if !day.IsOpen || (i == 0 && clock >= day.Open) {
			continue
		}

		at, err := time.Parse(clockLayout, day.Open)
		if err != nil {
			continue
		}

		return &models.NextOpen{
			Day:  dayNames[date.Weekday()],
			Time: day.Open,
			Date: time.Date(date.Year(), date.Month(), date.Day(), at.Hour(), at.Minute(), 0, 0, local.Location()),
		}
	}

	return nil
}

func dayKey(d time.Weekday) string {
	return [...]string{"sunday", "monday", "tuesday", "wednesday", "thursday", "friday", "saturday"}[d]
}
