package service_test

import (
	"context"
	"errors"
	"testing"
	"time"
	_ "time/tzdata"

	appErrors "github.com/sayuryunur/storefront/internal/errors"
	"github.com/sayuryunur/storefront/internal/models"
	repository "github.com/sayuryunur/storefront/internal/repositories"
	"github.com/sayuryunur/storefront/internal/repositories/mocks"
	service "github.com/sayuryunur/storefront/internal/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newStoreHoursService(t *testing.T, repo repository.SettingsRepository) service.StoreHoursService {
	t.Helper()

	s, err := service.NewStoreHoursService(repo, "Asia/Jakarta")
	require.NoError(t, err)

	return s
}

// jakarta builds a wall-clock time in the store timezone.
func jakarta(t *testing.T, year int, month time.Month, day, hour, min int) time.Time {
	t.Helper()

	loc, err := time.LoadLocation("Asia/Jakarta")
	require.NoError(t, err)

	return time.Date(year, month, day, hour, min, 0, 0, loc)
}

func TestNewStoreHoursService_BadTimezone(t *testing.T) {
	_, err := service.NewStoreHoursService(new(mocks.SettingsRepository), "Mars/Olympus")

	assert.Error(t, err)
}

func TestStoreHoursService_Hours(t *testing.T) {
	ctx := context.Background()

	t.Run("Defaults when missing", func(t *testing.T) {
		mockRepo := new(mocks.SettingsRepository)
		mockRepo.On("GetStoreHours", mock.Anything).Return(nil, repository.ErrSettingNotFound).Once()

		hours := newStoreHoursService(t, mockRepo).Hours(ctx)

		assert.Equal(t, service.DefaultStoreHours(), hours)
		assert.Equal(t, models.DayHours{Open: "09:00", Close: "17:00", IsOpen: true}, hours.Sunday)
	})

	t.Run("Defaults on error", func(t *testing.T) {
		mockRepo := new(mocks.SettingsRepository)
		mockRepo.On("GetStoreHours", mock.Anything).Return(nil, errors.New("db down")).Once()

		assert.Equal(t, service.DefaultStoreHours(), newStoreHoursService(t, mockRepo).Hours(ctx))
	})
}

func TestStoreHoursService_Save(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		mockRepo := new(mocks.SettingsRepository)
		hours := service.DefaultStoreHours()
		hours.Sunday.IsOpen = false
		mockRepo.On("SaveStoreHours", mock.Anything, hours).Return(nil).Once()

		err := newStoreHoursService(t, mockRepo).Save(ctx, hours)

		require.NoError(t, err)
		mockRepo.AssertExpectations(t)
	})

	t.Run("Failure - Open after close and bad format", func(t *testing.T) {
		// Arrange
		mockRepo := new(mocks.SettingsRepository)
		hours := service.DefaultStoreHours()
		hours.Monday.Open = "18:00"
		hours.Tuesday.Close = "5pm"

		// Act
		err := newStoreHoursService(t, mockRepo).Save(ctx, hours)

		// Assert
		var appErr *appErrors.AppError
		require.True(t, errors.As(err, &appErr))
		assert.Equal(t, appErrors.ErrCodeValidationFailed, appErr.Code)
		assert.Contains(t, appErr.Fields, "monday")
		assert.Contains(t, appErr.Fields, "tuesday.close")
		mockRepo.AssertNotCalled(t, "SaveStoreHours", mock.Anything, mock.Anything)
	})
}

func TestStoreHoursService_Status(t *testing.T) {
	ctx := context.Background()

	// 2025-03-10 is a Monday
	weekdaysOnly := service.DefaultStoreHours()
	weekdaysOnly.Saturday.IsOpen = false
	weekdaysOnly.Sunday.IsOpen = false

	tests := []struct {
		name     string
		hours    *models.StoreHours
		now      time.Time
		open     bool
		nextDay  string
		nextTime string
		nextDate int
	}{
		{name: "Open inside hours", hours: service.DefaultStoreHours(), now: jakarta(t, 2025, 3, 10, 10, 0), open: true},
		{name: "Open at exactly closing minute", hours: service.DefaultStoreHours(), now: jakarta(t, 2025, 3, 10, 17, 0), open: true},
		{name: "Before opening opens today", hours: service.DefaultStoreHours(), now: jakarta(t, 2025, 3, 10, 7, 30), nextDay: "Senin", nextTime: "09:00", nextDate: 10},
		{name: "After closing opens tomorrow", hours: service.DefaultStoreHours(), now: jakarta(t, 2025, 3, 10, 18, 0), nextDay: "Selasa", nextTime: "09:00", nextDate: 11},
		{name: "Friday evening skips the weekend", hours: weekdaysOnly, now: jakarta(t, 2025, 3, 14, 20, 0), nextDay: "Senin", nextTime: "09:00", nextDate: 17},
		{name: "Closed day before opening time", hours: weekdaysOnly, now: jakarta(t, 2025, 3, 15, 8, 0), nextDay: "Senin", nextTime: "09:00", nextDate: 17},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			// Arrange
			mockRepo := new(mocks.SettingsRepository)
			mockRepo.On("GetStoreHours", mock.Anything).Return(tc.hours, nil).Once()

			// Act
			status := newStoreHoursService(t, mockRepo).Status(ctx, tc.now)

			// Assert
			assert.Equal(t, tc.open, status.IsOpen)

			if tc.open {
				assert.Nil(t, status.NextOpen)
				return
			}

			require.NotNil(t, status.NextOpen)
			assert.Equal(t, tc.nextDay, status.NextOpen.Day)
			assert.Equal(t, tc.nextTime, status.NextOpen.Time)
			assert.Equal(t, tc.nextDate, status.NextOpen.Date.Day())
		})
	}

	t.Run("UTC input is read in store time", func(t *testing.T) {
		mockRepo := new(mocks.SettingsRepository)
		mockRepo.On("GetStoreHours", mock.Anything).Return(service.DefaultStoreHours(), nil).Once()

		// 03:00 UTC is 10:00 in Jakarta
		status := newStoreHoursService(t, mockRepo).Status(ctx, time.Date(2025, 3, 10, 3, 0, 0, 0, time.UTC))

		assert.True(t, status.IsOpen)
	})

	t.Run("Never open has no next opening", func(t *testing.T) {
		closed := service.DefaultStoreHours()
		for _, d := range []*models.DayHours{&closed.Monday, &closed.Tuesday, &closed.Wednesday, &closed.Thursday, &closed.Friday, &closed.Saturday, &closed.Sunday} {
			d.IsOpen = false
		}

		mockRepo := new(mocks.SettingsRepository)
		mockRepo.On("GetStoreHours", mock.Anything).Return(closed, nil).Once()

		status := newStoreHoursService(t, mockRepo).Status(ctx, jakarta(t, 2025, 3, 10, 10, 0))

		assert.False(t, status.IsOpen)
		assert.Nil(t, status.NextOpen)
	})
}
