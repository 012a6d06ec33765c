package journal

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCanonicalDate(t *testing.T) {
	table := []struct {
		input    string
		expected string
		ok       bool
	}{
		{input: "12 June 2024", expected: "2024-06-12", ok: true},
		{input: "1 January 2023", expected: "2023-01-01", ok: true},
		{input: "  05 march 2021 ", expected: "2021-03-05", ok: true},
		{input: "29 February 2024", expected: "2024-02-29", ok: true},
		{input: "29 February 2023", ok: false},
		{input: "No date", ok: false},
		{input: "June 12 2024", ok: false},
		{input: "12 Juno 2024", ok: false},
		{input: "2024-06-12", ok: false},
		{input: "", ok: false},
	}

	for _, row := range table {
		date, ok := CanonicalDate(row.input)
		require.Equal(t, row.ok, ok, row.input)
		require.Equal(t, row.expected, date, row.input)
	}
}

func TestCanonicalDatePtr(t *testing.T) {
	require.Nil(t, CanonicalDatePtr("not a date"))
	require.Equal(t, "2024-06-12", *CanonicalDatePtr("12 June 2024"))
}

func TestFormatDate(t *testing.T) {
	require.Equal(t, "2024-06-05", *FormatDate("2024", "6", "5"))
	require.Equal(t, "2024-12-25", *FormatDate("2024", "12", "25"))
	require.Nil(t, FormatDate("2024", "", "5"))
	require.Nil(t, FormatDate("year", "6", "5"))
}
