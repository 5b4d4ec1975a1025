// Package cronexpr parses 5- and 6-field cron expressions into resolved
// per-field integer sets and computes upcoming fire times.
package cronexpr

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"
)

// Schedule is a parsed cron expression: one validated, sorted,
// deduplicated set of integers per field. Seconds defaults to {0} for
// 5-field expressions.
type Schedule struct {
	HasSeconds  bool
	Seconds     []int
	Minutes     []int
	Hours       []int
	DaysOfMonth []int
	Months      []int
	DaysOfWeek  []int
}

type fieldSpec struct {
	name string
	min  int
	max  int
}

var (
	secondsField    = fieldSpec{"seconds", 0, 59}
	minutesField    = fieldSpec{"minutes", 0, 59}
	hoursField      = fieldSpec{"hours", 0, 23}
	dayOfMonthField = fieldSpec{"day of month", 1, 31}
	monthField      = fieldSpec{"month", 1, 12}
	dayOfWeekField  = fieldSpec{"day of week", 0, 6}
)

// nameReplacer normalizes SUN..SAT and JAN..DEC tokens to integers
// before numeric parsing.
var nameReplacer = strings.NewReplacer(
	"SUN", "0", "MON", "1", "TUE", "2", "WED", "3", "THU", "4", "FRI", "5", "SAT", "6",
	"JAN", "1", "FEB", "2", "MAR", "3", "APR", "4", "MAY", "5", "JUN", "6",
	"JUL", "7", "AUG", "8", "SEP", "9", "OCT", "10", "NOV", "11", "DEC", "12",
)

var stepPattern = regexp.MustCompile(`^(.+)/(\d+)$`)

// Parse parses a cron expression into a Schedule. A 6-field expression
// carries a leading seconds field.
func Parse(expr string) (*Schedule, error) {
	parts := strings.Fields(expr)
	if len(parts) < 5 || len(parts) > 6 {
		return nil, fmt.Errorf("invalid cron expression: expected 5 or 6 fields, got %d", len(parts))
	}

	s := &Schedule{HasSeconds: len(parts) == 6}

	idx := 0
	var err error
	if s.HasSeconds {
		if s.Seconds, err = parseField(parts[idx], secondsField); err != nil {
			return nil, err
		}
		idx++
	} else {
		s.Seconds = []int{0}
	}
	if s.Minutes, err = parseField(parts[idx], minutesField); err != nil {
		return nil, err
	}
	idx++
	if s.Hours, err = parseField(parts[idx], hoursField); err != nil {
		return nil, err
	}
	idx++
	if s.DaysOfMonth, err = parseField(parts[idx], dayOfMonthField); err != nil {
		return nil, err
	}
	idx++
	if s.Months, err = parseField(parts[idx], monthField); err != nil {
		return nil, err
	}
	idx++
	if s.DaysOfWeek, err = parseField(parts[idx], dayOfWeekField); err != nil {
		return nil, err
	}

	return s, nil
}

// parseField resolves one comma-separated field to a sorted set of
// integers within the field's legal range.
func parseField(field string, spec fieldSpec) ([]int, error) {
	normalized := nameReplacer.Replace(strings.ToUpper(field))

	values := make(map[int]bool)

	for _, part := range strings.Split(normalized, ",") {
		step := 1
		rangeStr := part
		if m := stepPattern.FindStringSubmatch(part); m != nil {
			rangeStr = m[1]
			parsed, err := strconv.Atoi(m[2])
			if err != nil || parsed < 1 {
				return nil, fmt.Errorf("invalid step in %s: %s", spec.name, part)
			}
			step = parsed
		}

		switch {
		case rangeStr == "*":
			for v := spec.min; v <= spec.max; v += step {
				values[v] = true
			}
		case strings.Contains(rangeStr, "-"):
			bounds := strings.SplitN(rangeStr, "-", 2)
			start, startErr := strconv.Atoi(bounds[0])
			end, endErr := strconv.Atoi(bounds[1])
			if startErr != nil || endErr != nil || start < spec.min || end > spec.max || start > end {
				return nil, fmt.Errorf("invalid range in %s: %s", spec.name, rangeStr)
			}
			for v := start; v <= end; v += step {
				values[v] = true
			}
		default:
			v, err := strconv.Atoi(rangeStr)
			if err != nil || v < spec.min || v > spec.max {
				return nil, fmt.Errorf("invalid value in %s: %s", spec.name, rangeStr)
			}
			values[v] = true
		}
	}

	if len(values) == 0 {
		return nil, fmt.Errorf("empty %s field", spec.name)
	}

	sorted := make([]int, 0, len(values))
	for v := range values {
		sorted = append(sorted, v)
	}
	sort.Ints(sorted)
	return sorted, nil
}

func contains(values []int, v int) bool {
	for _, candidate := range values {
		if candidate == v {
			return true
		}
	}
	return false
}
