package report

import (
	"fmt"
	"strings"
	"time"

	"freight-backoffice/internal/billing"

	"github.com/shopspring/decimal"
)

const DisplayDateLayout = "01/02/2006"

// FormatCurrency renders an amount as $1,234.56.
func FormatCurrency(amount float64) string {
	return money(decimal.NewFromFloat(amount).StringFixed(2))
}

// FormatPrice renders a per-ton price with four decimals.
func FormatPrice(price float64) string {
	return money(decimal.NewFromFloat(price).StringFixed(4))
}

// FormatWeight renders whole units with thousands separators.
func FormatWeight(weight float64) string {
	return groupThousands(decimal.NewFromFloat(weight).StringFixed(0))
}

// FormatPercent renders a fraction such as 0.25 as 25.00%.
func FormatPercent(rate float64) string {
	return decimal.NewFromFloat(rate).Mul(decimal.NewFromInt(100)).StringFixed(2) + "%"
}

func FormatDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.UTC().Format(DisplayDateLayout)
}

// FormatPeriod renders both ends of a range. Open ends print as "any".
func FormatPeriod(r billing.DateRange) string {
	start, end := FormatDate(r.Start), FormatDate(r.End)
	if start == "" && end == "" {
		return "All dates"
	}
	if start == "" {
		start = "any"
	}
	if end == "" {
		end = "any"
	}
	return fmt.Sprintf("%s - %s", start, end)
}

func money(fixed string) string {
	if strings.HasPrefix(fixed, "-") {
		return "-$" + groupThousands(fixed[1:])
	}
	return "$" + groupThousands(fixed)
}

func groupThousands(fixed string) string {
	sign := ""
	if strings.HasPrefix(fixed, "-") {
		sign, fixed = "-", fixed[1:]
	}
	whole, frac := fixed, ""
	if i := strings.IndexByte(fixed, '.'); i >= 0 {
		whole, frac = fixed[:i], fixed[i:]
	}

	var b strings.Builder
	for i, r := range whole {
		if i > 0 && (len(whole)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	return sign + b.String() + frac
}
