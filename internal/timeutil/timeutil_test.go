package timeutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSecondsSinceMidnight(t *testing.T) {
	tests := []struct {
		name string
		t    TimeOfDay
		want int
	}{
		{"midnight", TimeOfDay{0, 0, 0}, 0},
		{"one minute", TimeOfDay{0, 1, 0}, 60},
		{"one hour", TimeOfDay{1, 0, 0}, 3600},
		{"end of day", TimeOfDay{23, 59, 59}, 86399},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SecondsSinceMidnight(tt.t))
		})
	}
}

func TestTimeFromSeconds(t *testing.T) {
	assert.Equal(t, TimeOfDay{0, 0, 0}, TimeFromSeconds(0))
	assert.Equal(t, TimeOfDay{1, 1, 1}, TimeFromSeconds(3661))
	assert.Equal(t, TimeOfDay{23, 59, 59}, TimeFromSeconds(86399))

	// No wraparound clamp: out-of-range input spills into the hour field.
	assert.Equal(t, TimeOfDay{24, 0, 0}, TimeFromSeconds(86400))
}

func TestTimeRoundTrip(t *testing.T) {
	for h := 0; h < 24; h++ {
		for _, m := range []int{0, 1, 30, 59} {
			for _, s := range []int{0, 1, 30, 59} {
				in := TimeOfDay{Hour: h, Minute: m, Second: s}
				require.Equal(t, in, TimeFromSeconds(SecondsSinceMidnight(in)))
			}
		}
	}
}

func TestInterval(t *testing.T) {
	tests := []struct {
		name       string
		start, end TimeOfDay
		want       int
	}{
		{"zero", TimeOfDay{0, 0, 0}, TimeOfDay{0, 0, 0}, 0},
		{"fifty seconds", TimeOfDay{0, 0, 0}, TimeOfDay{0, 0, 50}, 50},
		{"working day", TimeOfDay{9, 0, 0}, TimeOfDay{17, 30, 0}, 30600},
		{"negative when end precedes start", TimeOfDay{1, 0, 0}, TimeOfDay{0, 0, 0}, -3600},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Interval(tt.start, tt.end))
		})
	}
}

func TestMean(t *testing.T) {
	assert.Equal(t, 0.0, Mean(nil))
	assert.Equal(t, 0.0, Mean([]int{}))
	assert.Equal(t, 1.5, Mean([]int{1, 2}))
	assert.Equal(t, 3.0, Mean([]int{1, 2, 3, 4, 5}))
	assert.Equal(t, -3600.0, Mean([]int{-3600}))
}

func TestParseTimeOfDay(t *testing.T) {
	got, err := ParseTimeOfDay("09:05:59")
	require.NoError(t, err)
	assert.Equal(t, TimeOfDay{9, 5, 59}, got)

	for _, bad := range []string{"", "9:00", "24:00:00", "12:60:00", "garbage"} {
		_, err := ParseTimeOfDay(bad)
		assert.Error(t, err, "input %q", bad)
	}
}

func TestParseDate(t *testing.T) {
	got, err := ParseDate("2013-09-10")
	require.NoError(t, err)
	assert.Equal(t, Date{Year: 2013, Month: 9, Day: 10}, got)

	for _, bad := range []string{"", "2013-13-01", "2013-09-31", "10/09/2013"} {
		_, err := ParseDate(bad)
		assert.Error(t, err, "input %q", bad)
	}
}

func TestDateWeekday(t *testing.T) {
	tests := []struct {
		date string
		want int
	}{
		{"2013-09-09", 0}, // Monday
		{"2013-09-12", 3}, // Thursday
		{"2013-09-14", 5}, // Saturday
		{"2013-09-08", 6}, // Sunday
	}

	for _, tt := range tests {
		d, err := ParseDate(tt.date)
		require.NoError(t, err)
		assert.Equal(t, tt.want, d.Weekday(), "date %s", tt.date)
	}
}

func TestDateMonthIndex(t *testing.T) {
	jan, _ := ParseDate("2013-01-15")
	dec, _ := ParseDate("2013-12-15")
	assert.Equal(t, 0, jan.MonthIndex())
	assert.Equal(t, 11, dec.MonthIndex())
}

func TestStringFormats(t *testing.T) {
	d, _ := ParseDate("2013-09-08")
	assert.Equal(t, "2013-09-08", d.String())
	assert.Equal(t, "07:30:05", TimeOfDay{7, 30, 5}.String())
}
