package services

import (
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// timestampLayouts are the forms the backend has used for created_at.
var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999",
	"2006-01-02 15:04:05.999999",
	"2006-01-02",
}

// parseTimestamp parses a backend timestamp. Unparseable values sort as the zero time.
func parseTimestamp(s string) time.Time {
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}

// FormatDate renders a backend timestamp as "Jan 2, 2006".
// Unparseable values are returned unchanged.
func FormatDate(s string) string {
	if s == "" {
		return ""
	}
	t := parseTimestamp(s)
	if t.IsZero() {
		return s
	}
	return t.Format("Jan 2, 2006")
}

// FormatDateTime renders a backend timestamp in local time.
func FormatDateTime(s string) string {
	if s == "" {
		return ""
	}
	t := parseTimestamp(s)
	if t.IsZero() {
		return s
	}
	return t.Local().Format("2006-01-02 15:04")
}

// FormatAmount renders an amount as US dollars with two decimals and
// thousands separators. A nil amount is empty.
func FormatAmount(amount *float64) string {
	if amount == nil {
		return ""
	}
	d := decimal.NewFromFloat(*amount).Round(2)
	sign := ""
	if d.IsNegative() {
		sign = "-"
		d = d.Neg()
	}
	fixed := d.StringFixed(2)
	whole, frac, _ := strings.Cut(fixed, ".")
	return sign + "$" + groupThousands(whole) + "." + frac
}

func groupThousands(digits string) string {
	if len(digits) <= 3 {
		return digits
	}
	var b strings.Builder
	lead := len(digits) % 3
	if lead > 0 {
		b.WriteString(digits[:lead])
	}
	for i := lead; i < len(digits); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}

// FormatSimilarity renders a 0-1 similarity as a whole percentage.
func FormatSimilarity(sim *float64) string {
	if sim == nil {
		return "0%"
	}
	return decimal.NewFromFloat(*sim).Mul(decimal.NewFromInt(100)).Round(0).String() + "%"
}

// DetailField is one label/value row of a detail view.
type DetailField struct {
	Key   string
	Value string
}

// ExtraFields lists unmodelled backend fields sorted by key. Composite
// values such as line items render as compact JSON.
func ExtraFields(extra map[string]any) []DetailField {
	fields := make([]DetailField, 0, len(extra))
	for key, value := range extra {
		fields = append(fields, DetailField{Key: key, Value: stringify(value)})
	}
	sort.Slice(fields, func(i, j int) bool { return fields[i].Key < fields[j].Key })
	return fields
}
