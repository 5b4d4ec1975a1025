package cronexpr

import (
	"fmt"
	"strings"
)

var weekdayNames = []string{"Sunday", "Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday"}

var monthNames = []string{
	"January", "February", "March", "April", "May", "June",
	"July", "August", "September", "October", "November", "December",
}

// Describe renders a best-effort natural-language description of the
// schedule, recognizing common patterns (every minute, every N
// minutes/hours, specific times, consecutive weekday ranges) with a
// generic fallback.
func (s *Schedule) Describe() string {
	parts := []string{s.describeTime()}

	if len(s.DaysOfMonth) < 31 {
		if len(s.DaysOfMonth) == 1 {
			parts = append(parts, fmt.Sprintf("on day %d", s.DaysOfMonth[0]))
		} else {
			parts = append(parts, "on days "+formatList(intStrings(s.DaysOfMonth)))
		}
	}

	if len(s.Months) < 12 {
		names := make([]string, len(s.Months))
		for i, m := range s.Months {
			names[i] = monthNames[m-1]
		}
		if len(names) == 1 {
			parts = append(parts, "in "+names[0])
		} else {
			parts = append(parts, "in "+formatList(names))
		}
	}

	if len(s.DaysOfWeek) < 7 {
		names := make([]string, len(s.DaysOfWeek))
		for i, d := range s.DaysOfWeek {
			names[i] = weekdayNames[d]
		}
		switch {
		case len(names) == 1:
			parts = append(parts, "on "+names[0])
		case isConsecutive(s.DaysOfWeek) && len(names) > 2:
			parts = append(parts, names[0]+" through "+names[len(names)-1])
		default:
			parts = append(parts, "on "+formatList(names))
		}
	}

	return strings.Join(parts, " ")
}

func (s *Schedule) describeTime() string {
	if len(s.Minutes) == 60 && len(s.Hours) == 24 {
		if s.HasSeconds && len(s.Seconds) < 60 {
			return "At second " + formatList(intStrings(s.Seconds)) + " of every minute"
		}
		return "Every minute"
	}

	if len(s.Hours) == 24 && len(s.Minutes) > 1 {
		if step := findStep(s.Minutes, 0); step > 0 {
			return fmt.Sprintf("Every %d minutes", step)
		}
	}

	if len(s.Hours) == 24 && len(s.Minutes) == 1 {
		return fmt.Sprintf("At minute %d of every hour", s.Minutes[0])
	}

	if len(s.Hours) > 1 && len(s.Minutes) == 1 {
		if step := findStep(s.Hours, 0); step > 0 {
			return fmt.Sprintf("Every %d hours at minute %d", step, s.Minutes[0])
		}
	}

	if len(s.Hours) == 1 && len(s.Minutes) == 1 {
		return "At " + formatTime(s.Hours[0], s.Minutes[0])
	}

	if len(s.Hours) <= 4 && len(s.Minutes) == 1 {
		times := make([]string, len(s.Hours))
		for i, h := range s.Hours {
			times[i] = formatTime(h, s.Minutes[0])
		}
		return "At " + formatList(times)
	}

	return "At minute " + formatList(intStrings(s.Minutes)) + " past hour " + formatList(intStrings(s.Hours))
}

// FieldLines renders the per-field resolved-value summary.
func (s *Schedule) FieldLines() []string {
	var lines []string
	if s.HasSeconds {
		lines = append(lines, "- Seconds: "+fieldSummary(s.Seconds, 0, 59))
	}
	lines = append(lines, "- Minutes: "+fieldSummary(s.Minutes, 0, 59))
	lines = append(lines, "- Hours: "+fieldSummary(s.Hours, 0, 23))
	lines = append(lines, "- Days of Month: "+fieldSummary(s.DaysOfMonth, 1, 31))

	if len(s.Months) == 12 {
		lines = append(lines, "- Months: Every month")
	} else {
		names := make([]string, len(s.Months))
		for i, m := range s.Months {
			names[i] = monthNames[m-1]
		}
		lines = append(lines, "- Months: "+strings.Join(names, ", "))
	}

	if len(s.DaysOfWeek) == 7 {
		lines = append(lines, "- Days of Week: Every day")
	} else {
		names := make([]string, len(s.DaysOfWeek))
		for i, d := range s.DaysOfWeek {
			names[i] = weekdayNames[d]
		}
		lines = append(lines, "- Days of Week: "+strings.Join(names, ", "))
	}

	return lines
}

func fieldSummary(values []int, min, max int) string {
	if len(values) == max-min+1 {
		return "Every value"
	}
	if len(values) == 1 {
		return fmt.Sprintf("%d", values[0])
	}
	if len(values) <= 5 {
		return strings.Join(intStrings(values), ", ")
	}
	if step := findStep(values, min); step > 0 {
		return fmt.Sprintf("Every %d (%d, %d, %d, ...)", step, values[0], values[1], values[2])
	}
	return fmt.Sprintf("%d values: %s, ...", len(values), strings.Join(intStrings(values[:3]), ", "))
}

// findStep detects an even stride starting at min, returning 0 when the
// values do not follow one.
func findStep(values []int, min int) int {
	if len(values) < 2 {
		return 0
	}
	step := values[1] - values[0]
	if step <= 1 {
		return 0
	}
	for i := 0; i < len(values)-1; i++ {
		if values[i+1]-values[i] != step {
			return 0
		}
	}
	if values[0] != min {
		return 0
	}
	return step
}

func formatTime(hour, minute int) string {
	return fmt.Sprintf("%02d:%02d", hour, minute)
}

func formatList(items []string) string {
	switch len(items) {
	case 1:
		return items[0]
	case 2:
		return items[0] + " and " + items[1]
	default:
		return strings.Join(items[:len(items)-1], ", ") + ", and " + items[len(items)-1]
	}
}

func intStrings(values []int) []string {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = fmt.Sprintf("%d", v)
	}
	return out
}

func isConsecutive(values []int) bool {
	for i := 1; i < len(values); i++ {
		if values[i] != values[i-1]+1 {
			return false
		}
	}
	return true
}
