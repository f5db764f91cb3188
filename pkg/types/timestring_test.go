package types_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/EMS-ReservationService/pkg/types"
)

func TestNewTimeStringFromString(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{name: "valid time", input: "10:30", want: "10:30"},
		{name: "midnight", input: "00:00", want: "00:00"},
		{name: "end of day", input: "23:59", want: "23:59"},
		{name: "missing minutes", input: "10", wantErr: true},
		{name: "out of range hour", input: "25:00", wantErr: true},
		{name: "with seconds", input: "10:30:00", wantErr: true},
		{name: "empty string", input: "", wantErr: true},
		{name: "garbage", input: "abc", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := types.NewTimeStringFromString(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, types.ErrInvalidTimeString)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.String())
		})
	}
}

func TestTimeString_Comparisons(t *testing.T) {
	a, err := types.NewTimeStringFromString("10:00")
	require.NoError(t, err)
	b, err := types.NewTimeStringFromString("12:00")
	require.NoError(t, err)

	assert.True(t, a.IsBefore(b))
	assert.False(t, b.IsBefore(a))
	assert.True(t, b.IsAfter(a))
	assert.False(t, a.IsAfter(b))
	assert.False(t, a.IsBefore(a))
	assert.False(t, a.IsAfter(a))
}

func TestTimeString_AddMinutes(t *testing.T) {
	ts, err := types.NewTimeStringFromString("10:30")
	require.NoError(t, err)

	shifted, err := ts.AddMinutes(45)
	require.NoError(t, err)
	assert.Equal(t, "11:15", shifted.String())
}

func TestTimeString_Scan(t *testing.T) {
	t.Run("scans time.Time", func(t *testing.T) {
		var ts types.TimeString
		value := time.Date(2026, 9, 15, 14, 30, 0, 0, time.UTC)

		require.NoError(t, ts.Scan(value))
		assert.Equal(t, "14:30", ts.String())
	})

	t.Run("scans HH:MM:SS string and drops seconds", func(t *testing.T) {
		var ts types.TimeString

		require.NoError(t, ts.Scan("14:30:00"))
		assert.Equal(t, "14:30", ts.String())
	})

	t.Run("scans bytes", func(t *testing.T) {
		var ts types.TimeString

		require.NoError(t, ts.Scan([]byte("09:15:00")))
		assert.Equal(t, "09:15", ts.String())
	})

	t.Run("nil resets value", func(t *testing.T) {
		ts := types.TimeString("10:00")

		require.NoError(t, ts.Scan(nil))
		assert.Equal(t, "", ts.String())
	})
}

func TestTimeString_Value(t *testing.T) {
	ts, err := types.NewTimeStringFromString("10:00")
	require.NoError(t, err)

	v, err := ts.Value()
	require.NoError(t, err)
	assert.Equal(t, "10:00", v)

	empty := types.TimeString("")
	v, err = empty.Value()
	require.NoError(t, err)
	assert.Nil(t, v)
}
