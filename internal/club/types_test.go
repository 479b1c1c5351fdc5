package club

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompetition_IsPast(t *testing.T) {
	now := time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		date string
		want bool
	}{
		{"future date is open", "2027-03-27 10:00:00", false},
		{"past date is closed", "2020-01-01 12:00:00", true},
		{"exactly now is closed", "2026-06-01 12:00:00", true},
		{"one second ahead is open", "2026-06-01 12:00:01", false},
		{"missing date is closed", "", true},
		{"unparseable date is closed", "next tuesday", true},
		{"date without time is closed", "2027-03-27", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := Competition{Name: "c", Date: tt.date}
			assert.Equal(t, tt.want, c.IsPast(now))
		})
	}
}

func TestCompetition_IsPastUsesLocationOfNow(t *testing.T) {
	loc := time.FixedZone("UTC+2", 2*60*60)
	now := time.Date(2026, 6, 1, 12, 0, 0, 0, loc)

	// 11:00 UTC is 13:00 in loc, but the stored date is wall-clock time in loc.
	c := Competition{Date: "2026-06-01 11:00:00"}
	assert.True(t, c.IsPast(now))
	assert.Equal(t, StateClosed, c.State(now))

	c.Date = "2026-06-01 13:00:00"
	assert.False(t, c.IsPast(now))
	assert.Equal(t, StateOpen, c.State(now))
}

func TestCompetition_BookingCategory(t *testing.T) {
	assert.Equal(t, "Senior", Competition{Category: "Senior"}.BookingCategory())
	assert.Equal(t, UnknownCategory, Competition{}.BookingCategory())
	assert.Equal(t, UnknownCategory, Competition{Category: "  "}.BookingCategory())
}

func TestCount_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		in      string
		want    Count
		wantErr bool
	}{
		{`13`, 13, false},
		{`"13"`, 13, false},
		{`" 7 "`, 7, false},
		{`"many"`, 0, false},
		{`-3`, 0, false},
		{`"-3"`, 0, false},
		{`0`, 0, false},
		{`null`, 0, false},
		{`true`, 0, true},
		{`[1]`, 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			var c Count
			err := json.Unmarshal([]byte(tt.in), &c)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, c)
		})
	}
}

func TestCompetitionView_JSON(t *testing.T) {
	view := CompetitionView{
		Competition: Competition{Name: "Spring Festival", Date: "2027-03-27 10:00:00", NumberOfPlaces: 25},
		IsPast:      false,
	}
	data, err := json.Marshal(view)
	require.NoError(t, err)
	assert.JSONEq(t, `{"name":"Spring Festival","date":"2027-03-27 10:00:00","numberOfPlaces":25,"isPast":false}`, string(data))
}
