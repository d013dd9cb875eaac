package timewin

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTimeHHMM(t *testing.T) {
	tests := []struct {
		in      string
		want    int
		wantErr bool
	}{
		{"00:00", 0, false},
		{"08:05", 485, false},
		{"8:5", 485, false},
		{"23:59", 1439, false},
		{" 11:30 ", 690, false},
		{"", 0, true},
		{"24:00", 0, true},
		{"12:60", 0, true},
		{"noon", 0, true},
		{"12", 0, true},
	}
	for _, tt := range tests {
		got, err := ParseTimeHHMM(tt.in)
		if tt.wantErr {
			assert.Error(t, err, "input %q", tt.in)
			continue
		}
		require.NoError(t, err, "input %q", tt.in)
		assert.Equal(t, tt.want, got, "input %q", tt.in)
	}
}

func TestParseWindow(t *testing.T) {
	w, err := ParseWindow("11:30-14:00")
	require.NoError(t, err)
	assert.Equal(t, Window{Start: 690, End: 840}, w)

	// En dash and em dash normalize to a hyphen
	w, err = ParseWindow("17:30–20:30")
	require.NoError(t, err)
	assert.Equal(t, Window{Start: 1050, End: 1230}, w)

	_, err = ParseWindow("")
	assert.Error(t, err)
	_, err = ParseWindow("14:00-11:30")
	assert.Error(t, err, "non-increasing window")
	_, err = ParseWindow("11:30")
	assert.Error(t, err)
}

func TestOverlapMinutes(t *testing.T) {
	a := Window{Start: 600, End: 720}
	assert.Equal(t, 60, OverlapMinutes(a, Window{Start: 660, End: 780}))
	assert.Equal(t, 0, OverlapMinutes(a, Window{Start: 720, End: 780}))
	assert.Equal(t, 120, OverlapMinutes(a, Window{Start: 0, End: 1440}))
}

func TestIsOpenForWindow(t *testing.T) {
	assert.True(t, IsOpenForWindow("11:30-14:00", LunchWindow))
	assert.True(t, IsOpenForWindow("13:59-18:00", LunchWindow))
	assert.False(t, IsOpenForWindow("14:00-17:00", LunchWindow))
	assert.False(t, IsOpenForWindow("", DinnerWindow))
	assert.False(t, IsOpenForWindow("garbage", DinnerWindow))
	assert.True(t, IsOpenForWindow("17:30-20:30", DinnerWindow))
}
