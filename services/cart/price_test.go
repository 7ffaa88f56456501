package cart

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestParsePrice(t *testing.T) {
	testCases := []struct {
		in   string
		want string
	}{
		{in: "R1999", want: "1999"},
		{in: "$19.99", want: "19.99"},
		{in: "$10.00", want: "10"},
		{in: "€ 1,299.50", want: "1299.5"},
		{in: "R 2 499", want: "2499"},
		{in: "1.2.3", want: "1.2"},
		{in: ".5", want: "0.5"},
		{in: "12.", want: "12"},
		{in: ".", want: "0"},
		{in: "free", want: "0"},
		{in: "", want: "0"},
	}
	for _, tc := range testCases {
		t.Run(tc.in, func(t *testing.T) {
			got := ParsePrice(tc.in)
			assert.True(t, decimal.RequireFromString(tc.want).Equal(got), "got %s, want %s", got, tc.want)
		})
	}
}

func TestLineTotal(t *testing.T) {
	entry := Entry{Name: "Widget", Price: "$19.99", Quantity: 3}

	assert.Equal(t, "59.97", entry.LineTotal().StringFixed(2))
}
