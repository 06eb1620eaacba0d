// Package format renders money, phones, zipcodes and dates the way the
// cashier screens show them (pt-BR conventions).
package format

import (
	"strings"
	"time"
	"unicode"

	"github.com/dustin/go-humanize"
	"github.com/shopspring/decimal"
)

// Раскладки дат pt-BR (короткий стиль)
const (
	LayoutDateTime = "02/01/2006 15:04"
	LayoutDate     = "02/01/2006"
	LayoutTime     = "15:04"
)

const (
	currencySymbol = "R$ "
	// тысячи через точку, копейки через запятую
	currencyPattern = "#.###,##"
	zeroCurrency    = currencySymbol + "0,00"
)

// Currency formats an amount as Brazilian reais, e.g. "R$ 1.234,56"
func Currency(value decimal.Decimal) string {
	f, _ := value.Round(2).Float64()
	return currencySymbol + humanize.FormatFloat(currencyPattern, f)
}

// CurrencyString formats a decimal string from the backend. Invalid input yields "R$ 0,00".
func CurrencyString(value string) string {
	d, err := decimal.NewFromString(strings.TrimSpace(value))
	if err != nil {
		return zeroCurrency
	}
	return Currency(d)
}

// Phone applies (XX) XXXX-XXXX or (XX) XXXXX-XXXX. Other lengths are returned unchanged.
func Phone(phone string) string {
	d := digits(phone)
	switch len(d) {
	case 10:
		return "(" + d[:2] + ") " + d[2:6] + "-" + d[6:]
	case 11:
		return "(" + d[:2] + ") " + d[2:7] + "-" + d[7:]
	default:
		return phone
	}
}

// Zipcode applies XXXXX-XXX to an 8-digit CEP
func Zipcode(zip string) string {
	d := digits(zip)
	if len(d) != 8 {
		return zip
	}
	return d[:5] + "-" + d[5:]
}

// DateTime returns "" for the zero time
func DateTime(t time.Time) string {
	return layout(t, LayoutDateTime)
}

func Date(t time.Time) string {
	return layout(t, LayoutDate)
}

func Time(t time.Time) string {
	return layout(t, LayoutTime)
}

// ParseDateTime разбирает RFC 3339 от бэкенда и форматирует в локальном времени.
// Нераспознанная строка даёт "".
func ParseDateTime(value string) string {
	t, err := time.Parse(time.RFC3339, strings.TrimSpace(value))
	if err != nil {
		return ""
	}
	return DateTime(t.Local())
}

func layout(t time.Time, l string) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(l)
}

func digits(s string) string {
	var b strings.Builder
	for _, r := range s {
		if unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}
