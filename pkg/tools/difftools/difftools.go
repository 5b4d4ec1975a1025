// Package difftools registers the comparison tools: text, JSON, YAML,
// and CSV diffing.
package difftools

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"

	"toolbox/pkg/diff"
	"toolbox/pkg/tool"
)

// Register adds the diff tools to the registry.
func Register(r *tool.Registry) error {
	tools := []tool.Tool{
		textDiffTool(),
		jsonDiffTool(),
		yamlDiffTool(),
		csvDiffTool(),
	}
	for _, t := range tools {
		if err := r.Register(t); err != nil {
			return fmt.Errorf("failed to register tool %s: %w", t.ID, err)
		}
	}
	return nil
}

// separator matches a "---" line dividing the two documents of a
// single-text payload.
var separator = regexp.MustCompile(`(?m)^---+$`)

// splitTwo divides a payload into the parts before and after the first
// separator line.
func splitTwo(text string) (first, second string, ok bool) {
	loc := separator.FindStringIndex(text)
	if loc == nil {
		return "", "", false
	}
	return text[:loc[0]], text[loc[1]:], true
}

func textDiffTool() tool.Tool {
	return tool.Tool{
		ID:          "diff.text",
		Title:       "Text Diff",
		Category:    tool.CategoryDiff,
		Description: "Compare two texts side by side with highlighting",
		Keywords:    []string{"compare", "difference", "changes"},
		Input: tool.InputSpec{
			Kind: tool.InputFields,
			Elements: []tool.ElementSpec{
				{Name: "original", Kind: tool.InputText, Label: "Original Text"},
				{Name: "modified", Kind: tool.InputText, Label: "Modified Text"},
			},
		},
		Output: tool.OutputSpec{Kind: tool.OutputText},
		Options: []tool.OptionField{
			{Name: "ignoreWhitespace", Type: tool.OptionBoolean, Description: "Ignore whitespace differences", Default: false},
			{Name: "ignoreCase", Type: tool.OptionBoolean, Description: "Ignore case differences", Default: false},
		},
		Run: func(rc *tool.RunContext, input tool.Input, opts tool.Options) (tool.Output, error) {
			left := strings.TrimSpace(input.Fields["original"].Text)
			right := strings.TrimSpace(input.Fields["modified"].Text)

			if opts.Bool("ignoreCase") {
				left = strings.ToLower(left)
				right = strings.ToLower(right)
			}

			leftLines := strings.Split(left, "\n")
			rightLines := strings.Split(right, "\n")

			if opts.Bool("ignoreWhitespace") {
				for i, l := range leftLines {
					leftLines[i] = strings.TrimSpace(l)
				}
				for i, l := range rightLines {
					rightLines[i] = strings.TrimSpace(l)
				}
			}

			lines := diff.Lines(leftLines, rightLines)
			return tool.TextOutput(diff.FormatLines(lines)), nil
		},
	}
}

func jsonDiffTool() tool.Tool {
	return tool.Tool{
		ID:          "diff.json",
		Title:       "JSON Diff",
		Category:    tool.CategoryDiff,
		Description: "Compare two JSON objects and highlight differences",
		Keywords:    []string{"compare", "difference", "changes", "object"},
		Input: tool.InputSpec{
			Kind:        tool.InputText,
			Placeholder: `Paste first JSON, then "---" separator, then second JSON`,
		},
		Output: tool.OutputSpec{Kind: tool.OutputText},
		Options: []tool.OptionField{
			{Name: "sortKeys", Type: tool.OptionBoolean, Description: "Sort keys before comparing", Default: true},
		},
		Run: func(rc *tool.RunContext, input tool.Input, opts tool.Options) (tool.Output, error) {
			first, second, ok := splitTwo(input.Text)
			if !ok {
				return tool.Output{}, tool.ErrInvalidInput(`Please separate the two JSON objects with "---" on its own line`)
			}

			var left, right interface{}
			if err := json.Unmarshal([]byte(strings.TrimSpace(first)), &left); err != nil {
				return tool.Output{}, tool.ErrMalformedWrap(err, "First JSON is invalid")
			}
			if err := json.Unmarshal([]byte(strings.TrimSpace(second)), &right); err != nil {
				return tool.Output{}, tool.ErrMalformedWrap(err, "Second JSON is invalid")
			}

			if opts.Bool("sortKeys") {
				left = diff.SortKeys(left)
				right = diff.SortKeys(right)
			}

			entries := diff.Trees(left, right)
			return tool.TextOutput(diff.FormatEntries(entries, jsonValue)), nil
		},
	}
}

func jsonValue(v interface{}) string {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprintf("%v", v)
	}
	return string(data)
}

func yamlDiffTool() tool.Tool {
	return tool.Tool{
		ID:          "diff.yaml",
		Title:       "YAML Diff",
		Category:    tool.CategoryDiff,
		Description: "Compare two YAML documents and highlight differences",
		Keywords:    []string{"compare", "difference", "changes", "yaml", "config"},
		Input: tool.InputSpec{
			Kind: tool.InputFields,
			Elements: []tool.ElementSpec{
				{Name: "original", Kind: tool.InputText, Label: "Original YAML"},
				{Name: "modified", Kind: tool.InputText, Label: "Modified YAML"},
			},
		},
		Output: tool.OutputSpec{Kind: tool.OutputText},
		Options: []tool.OptionField{
			{Name: "sortKeys", Type: tool.OptionBoolean, Description: "Sort keys before comparing", Default: true},
		},
		Run: func(rc *tool.RunContext, input tool.Input, opts tool.Options) (tool.Output, error) {
			var left, right interface{}
			if err := yaml.Unmarshal([]byte(strings.TrimSpace(input.Fields["original"].Text)), &left); err != nil {
				return tool.Output{}, tool.ErrMalformedWrap(err, "First YAML is invalid: %s", err.Error())
			}
			if err := yaml.Unmarshal([]byte(strings.TrimSpace(input.Fields["modified"].Text)), &right); err != nil {
				return tool.Output{}, tool.ErrMalformedWrap(err, "Second YAML is invalid: %s", err.Error())
			}

			left = normalizeYAML(left)
			right = normalizeYAML(right)

			if opts.Bool("sortKeys") {
				left = diff.SortKeys(left)
				right = diff.SortKeys(right)
			}

			entries := diff.Trees(left, right)
			return tool.TextOutput(diff.FormatEntries(entries, yamlValue)), nil
		},
	}
}

// normalizeYAML converts map[interface{}]interface{} nodes (possible
// with non-string YAML keys) into the string-keyed form the tree diff
// operates on.
func normalizeYAML(v interface{}) interface{} {
	switch tv := v.(type) {
	case []interface{}:
		out := make([]interface{}, len(tv))
		for i, item := range tv {
			out[i] = normalizeYAML(item)
		}
		return out
	case map[string]interface{}:
		out := make(map[string]interface{}, len(tv))
		for key, val := range tv {
			out[key] = normalizeYAML(val)
		}
		return out
	case map[interface{}]interface{}:
		out := make(map[string]interface{}, len(tv))
		for key, val := range tv {
			out[fmt.Sprintf("%v", key)] = normalizeYAML(val)
		}
		return out
	default:
		return v
	}
}

// yamlValue renders a diffed value: strings as quoted JSON, everything
// else in YAML notation.
func yamlValue(v interface{}) string {
	if s, ok := v.(string); ok {
		data, err := json.Marshal(s)
		if err == nil {
			return string(data)
		}
	}
	data, err := yaml.Marshal(v)
	if err != nil {
		return fmt.Sprintf("%v", v)
	}
	return strings.TrimSpace(string(data))
}

func csvDiffTool() tool.Tool {
	return tool.Tool{
		ID:          "diff.csv",
		Title:       "CSV Diff",
		Category:    tool.CategoryDiff,
		Description: "Compare two CSV files and show added, removed, and changed rows",
		Keywords:    []string{"compare", "difference", "changes", "csv", "spreadsheet", "table"},
		Input: tool.InputSpec{
			Kind:        tool.InputText,
			Placeholder: `Paste first CSV, then "---" separator, then second CSV`,
		},
		Output: tool.OutputSpec{Kind: tool.OutputText},
		Options: []tool.OptionField{
			{Name: "useHeader", Type: tool.OptionBoolean, Description: "Use first row as header for column names", Default: true},
			{Name: "delimiter", Type: tool.OptionString, Description: "Field delimiter", MaxLength: tool.IntPtr(1), Default: ","},
		},
		Run: func(rc *tool.RunContext, input tool.Input, opts tool.Options) (tool.Output, error) {
			first, second, ok := splitTwo(input.Text)
			if !ok {
				return tool.Output{}, tool.ErrInvalidInput(`Please separate the two CSV files with "---" on its own line`)
			}

			first = strings.TrimSpace(first)
			second = strings.TrimSpace(second)
			if first == "" || second == "" {
				return tool.Output{}, tool.ErrInvalidInput("Both CSV inputs are required")
			}

			delim := ','
			if d := opts.String("delimiter"); d != "" {
				delim = []rune(d)[0]
			}

			leftRows, err := parseCSV(first, delim)
			if err != nil {
				return tool.Output{}, tool.ErrMalformedWrap(err, "First CSV is invalid: %s", err.Error())
			}
			rightRows, err := parseCSV(second, delim)
			if err != nil {
				return tool.Output{}, tool.ErrMalformedWrap(err, "Second CSV is invalid: %s", err.Error())
			}

			useHeader := opts.Bool("useHeader")
			if useHeader && (len(leftRows) == 0 || len(rightRows) == 0) {
				return tool.Output{}, tool.ErrInvalidInput("CSV files must have at least one row when using headers")
			}

			delta := diff.Rows(leftRows, rightRows, useHeader)
			return tool.TextOutput(formatRowDelta(delta, useHeader)), nil
		},
	}
}

func parseCSV(text string, delim rune) ([][]string, error) {
	reader := csv.NewReader(strings.NewReader(text))
	reader.Comma = delim
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, err
	}

	rows := make([][]string, 0, len(records))
	for _, record := range records {
		if len(record) == 1 && strings.TrimSpace(record[0]) == "" {
			continue
		}
		rows = append(rows, record)
	}
	return rows, nil
}

func formatRow(row, header []string) string {
	parts := make([]string, len(row))
	for i, v := range row {
		if header != nil && i < len(header) {
			parts[i] = fmt.Sprintf("%s: %q", header[i], v)
		} else {
			parts[i] = fmt.Sprintf("%q", v)
		}
	}
	return strings.Join(parts, ", ")
}

func formatRowDelta(delta diff.RowDelta, useHeader bool) string {
	if delta.HeaderMismatch {
		return fmt.Sprintf("⚠ Headers differ:\n  CSV 1: %s\n  CSV 2: %s\n\nCannot compare rows with different headers.",
			strings.Join(delta.LeftHeader, ", "), strings.Join(delta.RightHeader, ", "))
	}

	if delta.Empty() {
		return diff.NoDifferences
	}

	var header []string
	if useHeader {
		header = delta.LeftHeader
	}

	var out []string

	if len(delta.Removed) > 0 {
		out = append(out, fmt.Sprintf("Removed (%d rows):", len(delta.Removed)))
		for _, r := range delta.Removed {
			out = append(out, fmt.Sprintf("  - Row %d: %s", r.Index, formatRow(r.Row, header)))
		}
		out = append(out, "")
	}

	if len(delta.Added) > 0 {
		out = append(out, fmt.Sprintf("Added (%d rows):", len(delta.Added)))
		for _, a := range delta.Added {
			out = append(out, fmt.Sprintf("  + Row %d: %s", a.Index, formatRow(a.Row, header)))
		}
		out = append(out, "")
	}

	if len(delta.Changed) > 0 {
		out = append(out, fmt.Sprintf("Changed (%d rows):", len(delta.Changed)))
		for _, c := range delta.Changed {
			out = append(out, fmt.Sprintf("  ~ Row %d → %d:", c.LeftIndex, c.RightIndex))
			for _, col := range c.Cells {
				name := fmt.Sprintf("Column %d", col+1)
				if header != nil && col < len(header) {
					name = header[col]
				}
				out = append(out, fmt.Sprintf("      %s: %q → %q", name, c.Left[col], c.Right[col]))
			}
		}
	}

	return strings.TrimSpace(strings.Join(out, "\n"))
}
