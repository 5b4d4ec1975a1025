// Package timetools registers the time tools: timestamp conversion and
// cron expression parsing.
package timetools

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"toolbox/pkg/cronexpr"
	"toolbox/pkg/tool"
)

// Register adds the time tools to the registry.
func Register(r *tool.Registry) error {
	tools := []tool.Tool{
		timestampTool(),
		cronTool(),
	}
	for _, t := range tools {
		if err := r.Register(t); err != nil {
			return fmt.Errorf("failed to register tool %s: %w", t.ID, err)
		}
	}
	return nil
}

var digitsOnly = regexp.MustCompile(`^\d+$`)

// dateLayouts are tried in order when the input is not a bare number.
var dateLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
	"2006/01/02",
	time.RFC1123,
	time.RFC1123Z,
}

func timestampTool() tool.Tool {
	return tool.Tool{
		ID:          "time.timestamp",
		Title:       "Timestamp Converter",
		Category:    tool.CategoryTime,
		Description: "Convert between Unix timestamps and human-readable dates",
		Keywords:    []string{"unix", "epoch", "date", "time", "convert"},
		Input: tool.InputSpec{
			Kind:        tool.InputText,
			Placeholder: "Enter a timestamp (e.g., 1609459200) or date (e.g., 2021-01-01)",
		},
		Output: tool.OutputSpec{Kind: tool.OutputText},
		Options: []tool.OptionField{
			{Name: "timezone", Type: tool.OptionString, Description: "Timezone for display", Default: "local"},
		},
		Run: func(rc *tool.RunContext, input tool.Input, opts tool.Options) (tool.Output, error) {
			text := strings.TrimSpace(input.Text)
			timezone := opts.String("timezone")

			if text == "" {
				return tool.TextOutput(formatTimestamp(time.Now(), timezone)), nil
			}

			if digitsOnly.MatchString(text) {
				if n, err := strconv.ParseInt(text, 10, 64); err == nil {
					// Values beyond ten digits are taken as milliseconds.
					var at time.Time
					if n > 9999999999 {
						at = time.UnixMilli(n)
					} else {
						at = time.Unix(n, 0)
					}
					return tool.TextOutput(formatTimestamp(at, timezone)), nil
				}
			}

			for _, layout := range dateLayouts {
				if at, err := time.Parse(layout, text); err == nil {
					return tool.TextOutput(formatTimestamp(at, timezone)), nil
				}
			}

			return tool.Output{}, tool.ErrMalformed("Could not parse input as timestamp or date")
		},
	}
}

func formatTimestamp(at time.Time, timezone string) string {
	lines := []string{
		fmt.Sprintf("Unix (seconds): %d", at.Unix()),
		fmt.Sprintf("Unix (milliseconds): %d", at.UnixMilli()),
		"",
		fmt.Sprintf("ISO 8601: %s", at.UTC().Format("2006-01-02T15:04:05.000Z")),
		fmt.Sprintf("UTC: %s", at.UTC().Format("Mon, 02 Jan 2006 15:04:05")+" GMT"),
	}

	if timezone == "local" {
		local := at.Local()
		zone, _ := local.Zone()
		lines = append(lines,
			fmt.Sprintf("Local: %s", local.Format("1/2/2006, 15:04:05")),
			fmt.Sprintf("Timezone: %s", zone),
		)
	} else if loc, err := time.LoadLocation(timezone); err == nil {
		lines = append(lines, fmt.Sprintf("%s: %s", timezone, at.In(loc).Format("1/2/2006, 15:04:05")))
	} else {
		lines = append(lines, fmt.Sprintf("(Invalid timezone: %s)", timezone))
	}

	lines = append(lines, "", fmt.Sprintf("Relative: %s", relativeTime(at, time.Now())))

	return strings.Join(lines, "\n")
}

// relativeTime renders the distance between at and now in the largest
// round unit.
func relativeTime(at, now time.Time) string {
	delta := now.Sub(at)
	suffix := " from now"
	if delta > 0 {
		suffix = " ago"
	}
	if delta < 0 {
		delta = -delta
	}

	seconds := int64(delta / time.Second)
	minutes := seconds / 60
	hours := minutes / 60
	days := hours / 24
	weeks := days / 7
	months := days / 30
	years := days / 365

	switch {
	case years > 0:
		return plural(years, "year") + suffix
	case months > 0:
		return plural(months, "month") + suffix
	case weeks > 0:
		return plural(weeks, "week") + suffix
	case days > 0:
		return plural(days, "day") + suffix
	case hours > 0:
		return plural(hours, "hour") + suffix
	case minutes > 0:
		return plural(minutes, "minute") + suffix
	default:
		return plural(seconds, "second") + suffix
	}
}

func plural(n int64, unit string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s", unit)
	}
	return fmt.Sprintf("%d %ss", n, unit)
}

func cronTool() tool.Tool {
	return tool.Tool{
		ID:          "time.cron",
		Title:       "Cron Expression Parser",
		Category:    tool.CategoryTime,
		Description: "Parse cron expressions and show next run times",
		Keywords:    []string{"cron", "schedule", "crontab", "job", "timer"},
		Input: tool.InputSpec{
			Kind:        tool.InputText,
			Placeholder: "Enter a cron expression (e.g., */5 * * * * or 0 0 * * MON-FRI)",
		},
		Output: tool.OutputSpec{Kind: tool.OutputText},
		Options: []tool.OptionField{
			{Name: "runCount", Type: tool.OptionInteger, Description: "Number of next runs to show", Min: tool.FloatPtr(1), Max: tool.FloatPtr(50), Default: 5},
			{Name: "timezone", Type: tool.OptionString, Description: "Timezone for display", Default: "local"},
		},
		Run: func(rc *tool.RunContext, input tool.Input, opts tool.Options) (tool.Output, error) {
			expression := strings.TrimSpace(input.Text)
			if expression == "" {
				return tool.Output{}, tool.ErrInvalidInput("Please enter a cron expression")
			}

			schedule, err := cronexpr.Parse(expression)
			if err != nil {
				return tool.Output{}, tool.ErrMalformedWrap(err, "%s", capitalize(err.Error()))
			}

			runCount := opts.Int("runCount")
			runs := schedule.NextN(time.Now(), runCount)

			format := "5-field (standard)"
			if schedule.HasSeconds {
				format = "6-field (with seconds)"
			}

			lines := []string{
				fmt.Sprintf("Expression: %s", expression),
				fmt.Sprintf("Format: %s", format),
				"",
				"## Description",
				schedule.Describe(),
				"",
				"## Field Values",
			}
			lines = append(lines, schedule.FieldLines()...)
			lines = append(lines, "", fmt.Sprintf("## Next %d Runs", runCount))
			for i, run := range runs {
				lines = append(lines, fmt.Sprintf("%d. %s", i+1, formatRun(run, opts.String("timezone"))))
			}

			return tool.TextOutput(strings.Join(lines, "\n")), nil
		},
	}
}

func formatRun(at time.Time, timezone string) string {
	const layout = "Mon, Jan 2, 2006, 15:04:05"
	if timezone == "local" {
		return at.Local().Format(layout)
	}
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return at.Local().Format(layout)
	}
	return at.In(loc).Format(layout)
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
