package dates

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDay(t *testing.T) {
	loc := time.FixedZone("WAT", 3600)

	d, err := ParseDay("2024-05-14", loc)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 5, 14, 0, 0, 0, 0, loc), d)

	d, err = ParseDay("2024-05-14T23:30:00Z", loc)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 5, 15, 0, 0, 0, 0, loc), d)

	_, err = ParseDay("14/05/2024", loc)
	assert.Error(t, err)
}

func TestStartOfISOWeek(t *testing.T) {
	sunday := time.Date(2024, 6, 2, 15, 0, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2024, 5, 27, 0, 0, 0, 0, time.UTC), StartOfISOWeek(sunday))

	monday := time.Date(2024, 5, 27, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, monday, StartOfISOWeek(monday))
}

func TestISOWeekLabel(t *testing.T) {
	assert.Equal(t, "2024-W01", ISOWeekLabel(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, "2020-W53", ISOWeekLabel(time.Date(2021, 1, 3, 0, 0, 0, 0, time.UTC)))
}

func TestEndOfDay(t *testing.T) {
	d := time.Date(2024, 2, 29, 18, 45, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), EndOfDay(d))
	assert.Equal(t, time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC), StartOfMonth(d))
}

func TestCalendar(t *testing.T) {
	tests := []struct {
		name string
		in   time.Time
	}{
		{"east of UTC", time.Date(2024, 5, 14, 0, 0, 0, 0, time.FixedZone("UTC+1", 3600))},
		{"west of UTC", time.Date(2024, 5, 14, 23, 0, 0, 0, time.FixedZone("UTC-5", -5*3600))},
		{"UTC", time.Date(2024, 5, 14, 12, 0, 0, 0, time.UTC)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, err := Calendar(tt.in).Value()
			require.NoError(t, err)
			stored, ok := v.(time.Time)
			require.True(t, ok)
			assert.Equal(t, "2024-05-14", stored.In(time.UTC).Format(DayLayout))
		})
	}
}
