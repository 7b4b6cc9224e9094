package slots

import (
	"fmt"
	"strings"

	apperrors "github.com/spec-kit/hall-booking-service/pkg/util"
)

// Range is a wall-clock interval in "HH:MM" form.
type Range struct {
	Start string
	End   string
}

// Table maps symbolic slot keywords to concrete time ranges. Resolution is a
// pure lookup; the table contents come from configuration.
type Table map[string]Range

// Default returns the stock slot table.
func Default() Table {
	return Table{
		"am":   {Start: "09:00", End: "12:00"},
		"pm":   {Start: "13:00", End: "17:00"},
		"udur": {Start: "18:00", End: "22:00"},
	}
}

// Resolve maps a slot keyword to its time range.
func (t Table) Resolve(keyword string) (Range, error) {
	r, ok := t[keyword]
	if !ok {
		return Range{}, apperrors.NewValidationError("invalid time slot", map[string]any{"timeSlot": keyword})
	}
	return r, nil
}

// Keywords lists the recognized slot keywords.
func (t Table) Keywords() []string {
	out := make([]string, 0, len(t))
	for k := range t {
		out = append(out, k)
	}
	return out
}

// ParseTable parses a table spec of the form
// "am=09:00-12:00,pm=13:00-17:00,udur=18:00-22:00". An empty spec yields the
// default table.
func ParseTable(spec string) (Table, error) {
	spec = strings.TrimSpace(spec)
	if spec == "" {
		return Default(), nil
	}

	table := Table{}
	for _, entry := range strings.Split(spec, ",") {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		keyword, window, ok := strings.Cut(entry, "=")
		if !ok {
			return nil, fmt.Errorf("slot entry %q: want keyword=HH:MM-HH:MM", entry)
		}
		start, end, ok := strings.Cut(window, "-")
		if !ok {
			return nil, fmt.Errorf("slot entry %q: missing time range", entry)
		}
		keyword = strings.TrimSpace(keyword)
		start = strings.TrimSpace(start)
		end = strings.TrimSpace(end)
		if keyword == "" || !validClock(start) || !validClock(end) {
			return nil, fmt.Errorf("slot entry %q: invalid keyword or time", entry)
		}
		table[keyword] = Range{Start: start, End: end}
	}
	if len(table) == 0 {
		return nil, fmt.Errorf("slot table spec %q produced no entries", spec)
	}
	return table, nil
}

func validClock(s string) bool {
	if len(s) != 5 || s[2] != ':' {
		return false
	}
	for _, i := range []int{0, 1, 3, 4} {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	hh := (int(s[0]-'0') * 10) + int(s[1]-'0')
	mm := (int(s[3]-'0') * 10) + int(s[4]-'0')
	return hh < 24 && mm < 60
}
