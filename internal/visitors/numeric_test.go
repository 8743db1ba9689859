package visitors

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCount(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want *int64
	}{
		{"plain", "42", ptr(42)},
		{"thousands separator", "1,234", ptr(1234)},
		{"millions", "3,188,409", ptr(3188409)},
		{"padded", "  17 ", ptr(17)},
		{"decimal artifact", "1234.0", ptr(1234)},
		{"half rounds to even up", "999.5", ptr(1000)},
		{"half rounds to even down", "998.5", ptr(998)},
		{"below half", "10.49", ptr(10)},
		{"above half", "10.51", ptr(11)},
		{"zero", "0", ptr(0)},
		{"negative zero", "-0", ptr(0)},
		{"empty", "", nil},
		{"blank", "   ", nil},
		{"nan marker", "nan", nil},
		{"nan marker upper", "NaN", nil},
		{"separator only", ",", nil},
		{"NA", "NA", nil},
		{"N/A", "N/A", nil},
		{"n/a", "n/a", nil},
		{"NULL", "NULL", nil},
		{"null", "null", nil},
		{"None", "None", nil},
		{"#N/A", "#N/A", nil},
		{"#N/A N/A", "#N/A N/A", nil},
		{"#NA", "#NA", nil},
		{"<NA>", "<NA>", nil},
		{"-nan", "-nan", nil},
		{"-NaN", "-NaN", nil},
		{"1.#IND", "1.#IND", nil},
		{"-1.#QNAN", "-1.#QNAN", nil},
		{"padded marker", " N/A ", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseCount(tt.raw, NumberFormat{})
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseCount_Errors(t *testing.T) {
	for _, raw := range []string{"abc", "12a", "1.2.3", "-5", "inf", "1e400"} {
		t.Run(raw, func(t *testing.T) {
			got, err := ParseCount(raw, NumberFormat{})
			require.Error(t, err)
			assert.Nil(t, got)
			assert.True(t, errors.Is(err, ErrParse))
			assert.Contains(t, err.Error(), raw)
		})
	}
}

func TestParseCount_CustomFormat(t *testing.T) {
	f := NumberFormat{ThousandsSeparators: ", ", MissingMarkers: []string{"-", "n/a"}}

	got, err := ParseCount("1 234 567", f)
	require.NoError(t, err)
	assert.Equal(t, ptr(1234567), got)

	got, err = ParseCount("N/A", f)
	require.NoError(t, err)
	assert.Nil(t, got)

	got, err = ParseCount("-", f)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestParseYear(t *testing.T) {
	y, err := parseYear("2024")
	require.NoError(t, err)
	assert.Equal(t, 2024, y)

	y, err = parseYear(" 2019.0 ")
	require.NoError(t, err)
	assert.Equal(t, 2019, y)

	_, err = parseYear("2019.5")
	assert.True(t, errors.Is(err, ErrParse))

	_, err = parseYear("twenty")
	assert.True(t, errors.Is(err, ErrParse))
}

func TestMonthNumber(t *testing.T) {
	n, ok := MonthNumber("January")
	assert.True(t, ok)
	assert.Equal(t, 1, n)

	n, ok = MonthNumber(" dec ")
	assert.True(t, ok)
	assert.Equal(t, 12, n)

	_, ok = MonthNumber("Total")
	assert.False(t, ok)

	abbr, ok := MonthAbbrev("september")
	assert.True(t, ok)
	assert.Equal(t, "Sep", abbr)
}

func ptr(v int64) *int64 { return &v }
