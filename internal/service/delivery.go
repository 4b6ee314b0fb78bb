package service

import (
	"context"
	"time"

	"github.com/dukerupert/cakekiosk/internal/domain"
)

const (
	deliveryStep        = time.Hour
	holidayDeliveryStep = 2 * time.Hour
	deliveryClockLayout = "03:04 PM"
)

// DeliveryScheduler offers delivery time ranges inside the shop's operating
// hours. Holidays use coarser two-hour ranges.
type DeliveryScheduler struct {
	catalog domain.Catalog
}

// NewDeliveryScheduler creates a new DeliveryScheduler.
func NewDeliveryScheduler(catalog domain.Catalog) *DeliveryScheduler {
	return &DeliveryScheduler{catalog: catalog}
}

// Ranges returns the selectable ranges for date, formatted like
// "09:00 AM - 10:00 AM", in chronological order. The last range ends at
// closing time even when that makes it shorter. Without configured operating
// hours the list is empty.
func (s *DeliveryScheduler) Ranges(ctx context.Context, date time.Time) []string {
	hours, ok := s.catalog.OperatingHours(ctx)
	if !ok {
		return []string{}
	}

	step := deliveryStep
	if s.catalog.IsHoliday(ctx, date) {
		step = holidayDeliveryStep
	}

	closing := wallClock(date, hours.End)

	ranges := []string{}
	for start := wallClock(date, hours.Start); start.Before(closing); {
		end := start.Add(step)
		if end.After(closing) {
			end = closing
		}
		ranges = append(ranges, start.Format(deliveryClockLayout)+" - "+end.Format(deliveryClockLayout))
		start = end
	}
	return ranges
}

// wallClock returns the clock time offset from midnight on date's calendar
// day. Hours and minutes are set directly so a daylight saving change earlier
// in the day does not shift the result.
func wallClock(date time.Time, offset time.Duration) time.Time {
	hour := int(offset / time.Hour)
	minute := int(offset % time.Hour / time.Minute)
	return time.Date(date.Year(), date.Month(), date.Day(), hour, minute, 0, 0, date.Location())
}
