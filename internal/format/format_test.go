package format

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestCurrency(t *testing.T) {
	tests := []struct {
		name  string
		value string
		want  string
	}{
		{name: "thousands", value: "1234.56", want: "R$ 1.234,56"},
		{name: "millions", value: "1234567.8", want: "R$ 1.234.567,80"},
		{name: "small", value: "5", want: "R$ 5,00"},
		{name: "zero", value: "0", want: "R$ 0,00"},
		{name: "rounding", value: "28.499", want: "R$ 28,50"},
		{name: "negative", value: "-12.5", want: "R$ -12,50"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Currency(decimal.RequireFromString(tt.value)))
		})
	}
}

func TestCurrencyString(t *testing.T) {
	assert.Equal(t, "R$ 25,90", CurrencyString("25.90"))
	assert.Equal(t, "R$ 25,90", CurrencyString(" 25.90 "))
	assert.Equal(t, "R$ 0,00", CurrencyString("abc"))
	assert.Equal(t, "R$ 0,00", CurrencyString(""))
}

func TestPhone(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "1133334444", want: "(11) 3333-4444"},
		{in: "11999998888", want: "(11) 99999-8888"},
		{in: "(11) 99999-8888", want: "(11) 99999-8888"},
		{in: "12345", want: "12345"},
		{in: "", want: ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Phone(tt.in), tt.in)
	}
}

func TestZipcode(t *testing.T) {
	assert.Equal(t, "01310-100", Zipcode("01310100"))
	assert.Equal(t, "01310-100", Zipcode("01310-100"))
	assert.Equal(t, "0131", Zipcode("0131"))
}

func TestDates(t *testing.T) {
	ts := time.Date(2025, 3, 7, 9, 5, 0, 0, time.UTC)

	assert.Equal(t, "07/03/2025 09:05", DateTime(ts))
	assert.Equal(t, "07/03/2025", Date(ts))
	assert.Equal(t, "09:05", Time(ts))

	var zero time.Time
	assert.Empty(t, DateTime(zero))
	assert.Empty(t, Date(zero))
	assert.Empty(t, Time(zero))

	assert.Empty(t, ParseDateTime("not a date"))
	assert.NotEmpty(t, ParseDateTime("2025-03-07T09:05:00Z"))
}
