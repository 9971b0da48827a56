package dates

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKey_UsesOwnLocation(t *testing.T) {
	saoPaulo := time.FixedZone("BRT", -3*60*60)

	late := time.Date(2024, 3, 15, 23, 59, 0, 0, saoPaulo)
	assert.Equal(t, "2024-03-15", Key(late))
	assert.Equal(t, "2024-03-16", Key(late.UTC()), "same instant is already the next day in UTC")

	assert.Equal(t, "2024-03-16", Key(time.Date(2024, 3, 16, 0, 0, 0, 0, saoPaulo)))
}

func TestWeekday(t *testing.T) {
	tests := []struct {
		date string
		want string
	}{
		{"2024-03-17", Sunday},
		{"2024-03-18", Monday},
		{"2024-03-19", Tuesday},
		{"2024-03-20", Wednesday},
		{"2024-03-21", Thursday},
		{"2024-03-22", Friday},
		{"2024-03-23", Saturday},
	}

	for _, tt := range tests {
		t.Run(tt.date, func(t *testing.T) {
			d, err := Parse(tt.date)
			require.NoError(t, err)
			assert.Equal(t, tt.want, Weekday(d))
		})
	}
}

func TestParse(t *testing.T) {
	d, err := Parse(" 2024-02-29 ")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC), d)

	for _, bad := range []string{"", "2023-02-29", "2024-3-1", "15/03/2024", "2024-03-15T10:00"} {
		_, err := Parse(bad)
		assert.ErrorIs(t, err, ErrInvalidDate, bad)
	}
}

func TestNormalizeTime(t *testing.T) {
	got, err := NormalizeTime("07:30")
	require.NoError(t, err)
	assert.Equal(t, "07:30", got)

	got, err = NormalizeTime("7:05")
	require.NoError(t, err)
	assert.Equal(t, "07:05", got)

	for _, bad := range []string{"", "24:00", "12:60", "noon"} {
		_, err := NormalizeTime(bad)
		assert.ErrorIs(t, err, ErrInvalidTime, bad)
	}
}

func TestNormalizeWeekdays(t *testing.T) {
	got, err := NormalizeWeekdays([]string{"friday", " MONDAY", "Friday", "wednesday"})
	require.NoError(t, err)
	assert.Equal(t, []string{Monday, Wednesday, Friday}, got)

	got, err = NormalizeWeekdays(nil)
	require.NoError(t, err)
	assert.Empty(t, got)

	_, err = NormalizeWeekdays([]string{"MONDAY", "FUNDAY"})
	assert.ErrorIs(t, err, ErrInvalidWeekday)
}

func TestToday(t *testing.T) {
	loc := time.FixedZone("X", 5*60*60)
	today := Today(loc)
	assert.Equal(t, loc, today.Location())
	assert.Zero(t, today.Hour())
	assert.Zero(t, today.Minute())
	assert.Equal(t, Key(time.Now().In(loc)), Key(today))
}
