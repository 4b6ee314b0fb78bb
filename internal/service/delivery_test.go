package service

import (
	"context"
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dukerupert/cakekiosk/internal/domain"
	"github.com/dukerupert/cakekiosk/internal/service/servicetest"
)

func TestDeliveryScheduler_Ranges(t *testing.T) {
	ctx := context.Background()
	scheduler := NewDeliveryScheduler(servicetest.NewCatalog())

	ranges := scheduler.Ranges(ctx, time.Date(2026, time.November, 3, 0, 0, 0, 0, time.UTC))

	assert.Equal(t, []string{
		"09:00 AM - 10:00 AM",
		"10:00 AM - 11:00 AM",
		"11:00 AM - 12:00 PM",
		"12:00 PM - 01:00 PM",
		"01:00 PM - 02:00 PM",
		"02:00 PM - 03:00 PM",
		"03:00 PM - 04:00 PM",
		"04:00 PM - 05:00 PM",
		"05:00 PM - 06:00 PM",
	}, ranges)
}

func TestDeliveryScheduler_HolidayUsesTwoHourRanges(t *testing.T) {
	ctx := context.Background()
	scheduler := NewDeliveryScheduler(servicetest.NewCatalog())

	ranges := scheduler.Ranges(ctx, time.Date(2026, time.December, 24, 15, 30, 0, 0, time.UTC))

	assert.Equal(t, []string{
		"09:00 AM - 11:00 AM",
		"11:00 AM - 01:00 PM",
		"01:00 PM - 03:00 PM",
		"03:00 PM - 05:00 PM",
		"05:00 PM - 06:00 PM",
	}, ranges)
}

func TestDeliveryScheduler_PartialHours(t *testing.T) {
	ctx := context.Background()
	catalog := servicetest.NewCatalog()
	catalog.Hours = &domain.OperatingHours{Start: 9*time.Hour + 30*time.Minute, End: 11*time.Hour + 45*time.Minute}
	scheduler := NewDeliveryScheduler(catalog)

	ranges := scheduler.Ranges(ctx, time.Date(2026, time.November, 3, 0, 0, 0, 0, time.UTC))

	assert.Equal(t, []string{
		"09:30 AM - 10:30 AM",
		"10:30 AM - 11:30 AM",
		"11:30 AM - 11:45 AM",
	}, ranges)
}

func TestDeliveryScheduler_NoOperatingHours(t *testing.T) {
	ctx := context.Background()
	catalog := servicetest.NewCatalog()
	catalog.Hours = nil
	scheduler := NewDeliveryScheduler(catalog)

	ranges := scheduler.Ranges(ctx, time.Date(2026, time.November, 3, 0, 0, 0, 0, time.UTC))

	assert.NotNil(t, ranges)
	assert.Empty(t, ranges)
}

func TestDeliveryScheduler_ClosedDay(t *testing.T) {
	ctx := context.Background()
	catalog := servicetest.NewCatalog()
	catalog.Hours = &domain.OperatingHours{Start: 18 * time.Hour, End: 9 * time.Hour}
	scheduler := NewDeliveryScheduler(catalog)

	assert.Empty(t, scheduler.Ranges(ctx, time.Date(2026, time.November, 3, 0, 0, 0, 0, time.UTC)))
}

func TestDeliveryScheduler_DaylightSavingDays(t *testing.T) {
	ctx := context.Background()
	scheduler := NewDeliveryScheduler(servicetest.NewCatalog())

	loc, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)

	days := []time.Time{
		time.Date(2026, time.March, 8, 0, 0, 0, 0, loc),
		time.Date(2026, time.November, 1, 0, 0, 0, 0, loc),
	}
	for _, day := range days {
		t.Run(day.Format(time.DateOnly), func(t *testing.T) {
			ranges := scheduler.Ranges(ctx, day)

			require.Len(t, ranges, 9)
			assert.Equal(t, "09:00 AM - 10:00 AM", ranges[0])
			assert.Equal(t, "05:00 PM - 06:00 PM", ranges[8])
		})
	}
}
