package availability

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubLister struct {
	booked []string
	err    error
}

func (s *stubLister) BookedSlots(ctx context.Context, providerID string, date time.Time) ([]string, error) {
	return s.booked, s.err
}

func TestIsDateSelectable(t *testing.T) {
	// Reference "now": Wednesday 2026-09-02.
	now := time.Date(2026, 9, 2, 14, 30, 0, 0, time.UTC)

	tests := []struct {
		name string
		date time.Time
		want bool
	}{
		{"tomorrow (Thursday)", time.Date(2026, 9, 3, 0, 0, 0, 0, time.UTC), true},
		{"next Monday", time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC), true},
		{"today is not selectable", time.Date(2026, 9, 2, 23, 59, 0, 0, time.UTC), false},
		{"yesterday", time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC), false},
		{"upcoming Saturday", time.Date(2026, 9, 5, 0, 0, 0, 0, time.UTC), false},
		{"upcoming Sunday", time.Date(2026, 9, 6, 0, 0, 0, 0, time.UTC), false},
		{"far future weekday", time.Date(2027, 3, 10, 0, 0, 0, 0, time.UTC), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsDateSelectable(tt.date, now))
		})
	}
}

func TestValidSlot(t *testing.T) {
	assert.True(t, ValidSlot("9:00 AM"))
	assert.True(t, ValidSlot("12:00 PM"))
	assert.True(t, ValidSlot("5:00 PM"))

	assert.False(t, ValidSlot("8:00 AM"), "before opening")
	assert.False(t, ValidSlot("6:00 PM"), "after closing")
	assert.False(t, ValidSlot("9:30 AM"), "not on the hour")
	assert.False(t, ValidSlot("09:00 AM"), "zero-padded format is not canonical")
	assert.False(t, ValidSlot(""))
}

func TestSlots(t *testing.T) {
	slots := Slots()
	require.Len(t, slots, 9)
	assert.Equal(t, "9:00 AM", slots[0])
	assert.Equal(t, "5:00 PM", slots[len(slots)-1])

	// Callers must not be able to mutate the canonical list.
	slots[0] = "bogus"
	assert.Equal(t, "9:00 AM", Slots()[0])
}

func TestSlotEnd(t *testing.T) {
	end, err := SlotEnd("9:00 AM", 60)
	require.NoError(t, err)
	assert.Equal(t, "10:00 AM", end)

	end, err = SlotEnd("4:00 PM", 90)
	require.NoError(t, err)
	assert.Equal(t, "5:30 PM", end)

	_, err = SlotEnd("not a slot", 60)
	assert.Error(t, err)
}

func TestFilterSlotsFor(t *testing.T) {
	ctx := context.Background()
	date := time.Date(2026, 9, 3, 0, 0, 0, 0, time.UTC)

	t.Run("no bookings leaves the full day open", func(t *testing.T) {
		f := NewFilter(&stubLister{})
		open, err := f.SlotsFor(ctx, "1", date)
		require.NoError(t, err)
		assert.Equal(t, Slots(), open)
	})

	t.Run("booked slots are excluded", func(t *testing.T) {
		f := NewFilter(&stubLister{booked: []string{"9:00 AM", "1:00 PM"}})
		open, err := f.SlotsFor(ctx, "1", date)
		require.NoError(t, err)
		assert.NotContains(t, open, "9:00 AM")
		assert.NotContains(t, open, "1:00 PM")
		assert.Len(t, open, 7)
		// Remaining slots keep chronological order.
		assert.Equal(t, "10:00 AM", open[0])
	})

	t.Run("lister failure propagates", func(t *testing.T) {
		f := NewFilter(&stubLister{err: assert.AnError})
		_, err := f.SlotsFor(ctx, "1", date)
		assert.Error(t, err)
	})
}
