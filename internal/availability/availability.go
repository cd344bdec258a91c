package availability

import (
	"context"
	"fmt"
	"time"
)

// slotLayout parses the human-readable business-hour slots ("9:00 AM").
const slotLayout = "3:04 PM"

// businessHourSlots is the fixed set of bookable time-of-day slots. Bookings
// start on the hour between 9 AM and 5 PM regardless of date.
var businessHourSlots = []string{
	"9:00 AM", "10:00 AM", "11:00 AM", "12:00 PM",
	"1:00 PM", "2:00 PM", "3:00 PM", "4:00 PM", "5:00 PM",
}

// BookedSlotLister reports which slots are already taken for a provider on a
// given date. The booking repository implements it.
type BookedSlotLister interface {
	BookedSlots(ctx context.Context, providerID string, date time.Time) ([]string, error)
}

// Slots returns the full business-hours slot list, in chronological order.
func Slots() []string {
	out := make([]string, len(businessHourSlots))
	copy(out, businessHourSlots)
	return out
}

// ValidSlot reports whether s is one of the enumerated business-hour slots.
func ValidSlot(s string) bool {
	for _, slot := range businessHourSlots {
		if slot == s {
			return true
		}
	}
	return false
}

// IsDateSelectable reports whether date can be booked as of now: strictly
// after today (date-only comparison) and a weekday.
func IsDateSelectable(date, now time.Time) bool {
	d := truncateToDay(date)
	today := truncateToDay(now)

	if !d.After(today) {
		return false
	}
	wd := d.Weekday()
	return wd != time.Saturday && wd != time.Sunday
}

// SlotEnd computes the end-of-appointment display time for a slot and a
// service duration.
func SlotEnd(slot string, durationMinutes int) (string, error) {
	t, err := time.Parse(slotLayout, slot)
	if err != nil {
		return "", fmt.Errorf("invalid time slot %q: %w", slot, err)
	}
	return t.Add(time.Duration(durationMinutes) * time.Minute).Format(slotLayout), nil
}

func truncateToDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Filter narrows schedule choices to what is actually bookable.
type Filter struct {
	booked BookedSlotLister
}

func NewFilter(booked BookedSlotLister) *Filter {
	return &Filter{booked: booked}
}

// SlotsFor returns the business-hour slots still open for the provider on the
// given date: the fixed list minus slots with an existing non-cancelled
// booking.
func (f *Filter) SlotsFor(ctx context.Context, providerID string, date time.Time) ([]string, error) {
	taken, err := f.booked.BookedSlots(ctx, providerID, date)
	if err != nil {
		return nil, fmt.Errorf("list booked slots failed: %w", err)
	}

	takenSet := make(map[string]struct{}, len(taken))
	for _, s := range taken {
		takenSet[s] = struct{}{}
	}

	open := make([]string, 0, len(businessHourSlots))
	for _, s := range businessHourSlots {
		if _, ok := takenSet[s]; !ok {
			open = append(open, s)
		}
	}
	return open, nil
}
