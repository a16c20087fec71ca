package frame

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNumberValue(t *testing.T) {
	tests := []struct {
		name string
		in   float64
		want any
	}{
		{"whole", 42, int64(42)},
		{"negative whole", -3, int64(-3)},
		{"zero", 0, int64(0)},
		{"fraction", 3.6, 3.6},
		{"beyond int64", 1e19, 1e19},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NumberValue(tt.in))
		})
	}
}

func TestToTime_TextLayouts(t *testing.T) {
	want := time.Date(2022, 9, 30, 0, 0, 0, 0, time.UTC)
	for _, s := range []string{"2022-09-30", "09-30-22", "9/30/2022", "30-Sep-22"} {
		got, err := ToTime(s, DefaultDateLayouts)
		require.NoError(t, err, s)
		assert.True(t, want.Equal(got), s)
	}
}

func TestIsMissing(t *testing.T) {
	assert.True(t, IsMissing(nil))
	assert.True(t, IsMissing(math.NaN()))
	assert.False(t, IsMissing(0.0))
	assert.False(t, IsMissing("NaN"))
	assert.False(t, IsMissing(""))
}

func TestToInt(t *testing.T) {
	tests := []struct {
		name    string
		in      any
		want    int64
		wantErr bool
	}{
		{"int64", int64(7), 7, false},
		{"whole float", 7.0, 7, false},
		{"numeric text", "12", 12, false},
		{"fractional float", 7.5, 0, true},
		{"NaN text", "NaN", 0, true},
		{"free text", "closed", 0, true},
		{"missing", nil, 0, true},
		{"float NaN", math.NaN(), 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ToInt(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestToTime(t *testing.T) {
	want := time.Date(2022, 9, 30, 0, 0, 0, 0, time.UTC)
	got, err := ToTime("2022-09-30", DefaultDateLayouts)
	require.NoError(t, err)
	assert.Equal(t, want, got)

	got, err = ToTime(want, nil)
	require.NoError(t, err)
	assert.Equal(t, want, got)

	_, err = ToTime("someday", DefaultDateLayouts)
	assert.Error(t, err)
	_, err = ToTime(int64(5), DefaultDateLayouts)
	assert.Error(t, err)
}

func TestKeyOf(t *testing.T) {
	assert.Equal(t, KeyOf(int64(1)), KeyOf(1.0))
	assert.Equal(t, KeyOf(nil), KeyOf(math.NaN()))
	assert.NotEqual(t, KeyOf("1"), KeyOf(int64(1)))
	assert.NotEqual(t, KeyOf(true), KeyOf(int64(1)))
}

func TestFormat(t *testing.T) {
	assert.Equal(t, "", Format(nil))
	assert.Equal(t, "", Format(math.NaN()))
	assert.Equal(t, "12", Format(int64(12)))
	assert.Equal(t, "2.5", Format(2.5))
	assert.Equal(t, "2022-09-01", Format(time.Date(2022, 9, 1, 0, 0, 0, 0, time.UTC)))
}
