// Package dev registers the developer utility tools: byte sizes,
// colors, query strings, and regular expressions.
package dev

import (
	"encoding/json"
	"fmt"
	"math"
	"net/url"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"toolbox/pkg/tool"
)

// Register adds the dev tools to the registry.
func Register(r *tool.Registry) error {
	tools := []tool.Tool{
		byteConverterTool(),
		colorConvertTool(),
		queryStringTool(),
		regexTestTool(),
	}
	for _, t := range tools {
		if err := r.Register(t); err != nil {
			return fmt.Errorf("failed to register tool %s: %w", t.ID, err)
		}
	}
	return nil
}

// byteUnits is ordered smallest to largest.
var byteUnits = []string{"B", "KB", "MB", "GB", "TB", "PB"}

var valueWithUnit = regexp.MustCompile(`^([\d.]+)\s*([a-zA-Z]*)`)

func byteConverterTool() tool.Tool {
	return tool.Tool{
		ID:          "dev.byte-converter",
		Title:       "Byte Converter",
		Category:    tool.CategoryDev,
		Description: "Convert between bytes, KB, MB, GB, TB",
		Keywords:    []string{"bytes", "kilobytes", "megabytes", "gigabytes", "terabytes", "size", "convert"},
		Input: tool.InputSpec{
			Kind:        tool.InputText,
			Placeholder: "Enter value (e.g., 1024, 1.5GB, 500MB)",
		},
		Output: tool.OutputSpec{Kind: tool.OutputText},
		Options: []tool.OptionField{
			{Name: "inputUnit", Type: tool.OptionString, Description: "Input unit", Enum: []string{"auto", "B", "KB", "MB", "GB", "TB", "PB"}, Default: "auto"},
			{Name: "outputUnit", Type: tool.OptionString, Description: "Output unit", Enum: []string{"auto", "B", "KB", "MB", "GB", "TB", "PB", "all"}, Default: "all"},
			{Name: "binary", Type: tool.OptionBoolean, Description: "Use binary units (1024) instead of decimal (1000)", Default: true},
			{Name: "precision", Type: tool.OptionInteger, Description: "Decimal precision", Min: tool.FloatPtr(0), Max: tool.FloatPtr(10), Default: 2},
		},
		Run: func(rc *tool.RunContext, input tool.Input, opts tool.Options) (tool.Output, error) {
			text := strings.TrimSpace(input.Text)
			if text == "" {
				return tool.Output{}, tool.ErrInvalidInput("Please enter a value")
			}

			binary := opts.Bool("binary")
			base := 1000.0
			if binary {
				base = 1024.0
			}
			multiplier := func(unit string) float64 {
				for i, u := range byteUnits {
					if u == unit {
						return math.Pow(base, float64(i))
					}
				}
				return 1
			}

			var bytes float64
			inputUnit := opts.String("inputUnit")
			if inputUnit == "auto" {
				parsed, err := parseByteValue(text, multiplier)
				if err != nil {
					return tool.Output{}, err
				}
				bytes = parsed
			} else {
				num, err := strconv.ParseFloat(text, 64)
				if err != nil {
					return tool.Output{}, tool.ErrMalformed("Invalid number")
				}
				bytes = num * multiplier(inputUnit)
			}

			if bytes < 0 {
				return tool.Output{}, tool.ErrInvalidInput("Value cannot be negative")
			}

			precision := opts.Int("precision")
			render := func(unit string) string {
				value := bytes / multiplier(unit)
				suffix := unit
				if binary && unit != "B" {
					suffix = strings.Replace(unit, "B", "iB", 1)
				}
				return fmt.Sprintf("%s %s", formatByteNumber(value, precision), suffix)
			}

			switch outputUnit := opts.String("outputUnit"); outputUnit {
			case "all":
				lines := make([]string, 0, len(byteUnits))
				for _, unit := range byteUnits {
					lines = append(lines, render(unit))
				}
				return tool.TextOutput(strings.Join(lines, "\n")), nil
			case "auto":
				best := "B"
				for i := len(byteUnits) - 1; i >= 0; i-- {
					if bytes >= multiplier(byteUnits[i]) {
						best = byteUnits[i]
						break
					}
				}
				return tool.TextOutput(render(best)), nil
			default:
				return tool.TextOutput(render(outputUnit)), nil
			}
		},
	}
}

func parseByteValue(text string, multiplier func(string) float64) (float64, error) {
	m := valueWithUnit.FindStringSubmatch(text)
	if m == nil {
		return 0, tool.ErrMalformed("Invalid format. Use a number optionally followed by a unit (e.g., 1024, 1.5GB)")
	}

	num, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return 0, tool.ErrMalformed("Invalid number")
	}

	unit := strings.ToUpper(m[2])
	if unit == "" {
		return num, nil
	}
	unit = strings.Replace(unit, "IB", "B", 1)

	for _, u := range byteUnits {
		if u == unit {
			return num * multiplier(unit), nil
		}
	}
	return 0, tool.ErrMalformed("Unknown unit: %s. Valid units: B, KB, MB, GB, TB, PB", m[2])
}

func formatByteNumber(value float64, precision int) string {
	if value == math.Trunc(value) && !math.IsInf(value, 0) {
		return strconv.FormatFloat(value, 'f', -1, 64)
	}
	s := strconv.FormatFloat(value, 'f', precision, 64)
	s = strings.TrimRight(s, "0")
	return strings.TrimRight(s, ".")
}

type rgbColor struct {
	r, g, b int
}

type hslColor struct {
	h, s, l int
}

var (
	hex6Pattern = regexp.MustCompile(`(?i)^#?([a-f\d]{2})([a-f\d]{2})([a-f\d]{2})$`)
	hex3Pattern = regexp.MustCompile(`(?i)^#?([a-f\d])([a-f\d])([a-f\d])$`)
	rgbPattern  = regexp.MustCompile(`(?i)rgba?\s*\(\s*(\d+)\s*,\s*(\d+)\s*,\s*(\d+)`)
	hslPattern  = regexp.MustCompile(`(?i)hsla?\s*\(\s*(\d+)\s*,\s*(\d+)%?\s*,\s*(\d+)%?`)
)

func colorConvertTool() tool.Tool {
	return tool.Tool{
		ID:          "dev.color-convert",
		Title:       "Color Converter",
		Category:    tool.CategoryDev,
		Description: "Convert between hex, RGB, and HSL color formats",
		Keywords:    []string{"color", "hex", "rgb", "hsl", "convert", "css"},
		Input: tool.InputSpec{
			Kind:        tool.InputText,
			Placeholder: "Enter color: #ff5733, rgb(255, 87, 51), or hsl(14, 100%, 60%)",
		},
		Output: tool.OutputSpec{Kind: tool.OutputText},
		Options: []tool.OptionField{
			{Name: "outputFormat", Type: tool.OptionString, Description: "Output color format", Enum: []string{"hex", "rgb", "hsl", "all"}, Default: "all"},
		},
		Run: func(rc *tool.RunContext, input tool.Input, opts tool.Options) (tool.Output, error) {
			text := strings.TrimSpace(input.Text)
			if text == "" {
				return tool.Output{}, tool.ErrInvalidInput("Please enter a color value")
			}

			rgb, err := parseColor(text)
			if err != nil {
				return tool.Output{}, err
			}
			hex := fmt.Sprintf("#%02x%02x%02x", rgb.r, rgb.g, rgb.b)
			hsl := rgbToHSL(rgb)

			switch opts.String("outputFormat") {
			case "hex":
				return tool.TextOutput(hex), nil
			case "rgb":
				return tool.TextOutput(fmt.Sprintf("rgb(%d, %d, %d)", rgb.r, rgb.g, rgb.b)), nil
			case "hsl":
				return tool.TextOutput(fmt.Sprintf("hsl(%d, %d%%, %d%%)", hsl.h, hsl.s, hsl.l)), nil
			default:
				return tool.TextOutput(strings.Join([]string{
					fmt.Sprintf("HEX: %s", hex),
					fmt.Sprintf("RGB: rgb(%d, %d, %d)", rgb.r, rgb.g, rgb.b),
					fmt.Sprintf("HSL: hsl(%d, %d%%, %d%%)", hsl.h, hsl.s, hsl.l),
				}, "\n")), nil
			}
		},
	}
}

func parseColor(input string) (rgbColor, error) {
	if m := hex6Pattern.FindStringSubmatch(input); m != nil {
		return rgbColor{hexByte(m[1]), hexByte(m[2]), hexByte(m[3])}, nil
	}
	if m := hex3Pattern.FindStringSubmatch(input); m != nil {
		return rgbColor{hexByte(m[1] + m[1]), hexByte(m[2] + m[2]), hexByte(m[3] + m[3])}, nil
	}
	if m := rgbPattern.FindStringSubmatch(input); m != nil {
		return rgbColor{
			clamp(atoi(m[1]), 0, 255),
			clamp(atoi(m[2]), 0, 255),
			clamp(atoi(m[3]), 0, 255),
		}, nil
	}
	if m := hslPattern.FindStringSubmatch(input); m != nil {
		return hslToRGB(hslColor{
			h: atoi(m[1]) % 360,
			s: clamp(atoi(m[2]), 0, 100),
			l: clamp(atoi(m[3]), 0, 100),
		}), nil
	}
	return rgbColor{}, tool.ErrMalformed("Invalid color format. Use hex (#ff5733), RGB (rgb(255, 87, 51)), or HSL (hsl(14, 100%%, 60%%))")
}

func hexByte(s string) int {
	n, _ := strconv.ParseInt(s, 16, 32)
	return int(n)
}

func atoi(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func rgbToHSL(c rgbColor) hslColor {
	r := float64(c.r) / 255
	g := float64(c.g) / 255
	b := float64(c.b) / 255

	maxC := math.Max(r, math.Max(g, b))
	minC := math.Min(r, math.Min(g, b))
	l := (maxC + minC) / 2

	if maxC == minC {
		return hslColor{0, 0, int(math.Round(l * 100))}
	}

	d := maxC - minC
	var s float64
	if l > 0.5 {
		s = d / (2 - maxC - minC)
	} else {
		s = d / (maxC + minC)
	}

	var h float64
	switch maxC {
	case r:
		h = (g - b) / d
		if g < b {
			h += 6
		}
		h /= 6
	case g:
		h = ((b-r)/d + 2) / 6
	default:
		h = ((r-g)/d + 4) / 6
	}

	return hslColor{
		h: int(math.Round(h * 360)),
		s: int(math.Round(s * 100)),
		l: int(math.Round(l * 100)),
	}
}

func hslToRGB(c hslColor) rgbColor {
	h := float64(c.h) / 360
	s := float64(c.s) / 100
	l := float64(c.l) / 100

	if s == 0 {
		v := int(math.Round(l * 255))
		return rgbColor{v, v, v}
	}

	hue2rgb := func(p, q, t float64) float64 {
		if t < 0 {
			t++
		}
		if t > 1 {
			t--
		}
		switch {
		case t < 1.0/6:
			return p + (q-p)*6*t
		case t < 1.0/2:
			return q
		case t < 2.0/3:
			return p + (q-p)*(2.0/3-t)*6
		default:
			return p
		}
	}

	var q float64
	if l < 0.5 {
		q = l * (1 + s)
	} else {
		q = l + s - l*s
	}
	p := 2*l - q

	return rgbColor{
		r: int(math.Round(hue2rgb(p, q, h+1.0/3) * 255)),
		g: int(math.Round(hue2rgb(p, q, h) * 255)),
		b: int(math.Round(hue2rgb(p, q, h-1.0/3) * 255)),
	}
}

func queryStringTool() tool.Tool {
	return tool.Tool{
		ID:          "dev.querystring",
		Title:       "Query String ↔ JSON",
		Category:    tool.CategoryDev,
		Description: "Convert between query string and JSON object",
		Keywords:    []string{"query", "querystring", "url", "params", "json", "convert"},
		Input: tool.InputSpec{
			Kind:        tool.InputText,
			Placeholder: "Enter query string (key=value&...) or JSON object...",
		},
		Output: tool.OutputSpec{Kind: tool.OutputText},
		Options: []tool.OptionField{
			{Name: "mode", Type: tool.OptionString, Description: "Conversion mode", Enum: []string{"auto", "toJson", "toQueryString"}, Default: "auto"},
			{Name: "sortKeys", Type: tool.OptionBoolean, Description: "Sort keys alphabetically", Default: false},
			{Name: "encodeValues", Type: tool.OptionBoolean, Description: "URL encode values when converting to query string", Default: true},
		},
		Run: func(rc *tool.RunContext, input tool.Input, opts tool.Options) (tool.Output, error) {
			text := strings.TrimSpace(input.Text)
			if text == "" {
				return tool.Output{}, tool.ErrInvalidInput("Please enter a query string or JSON object")
			}

			mode := opts.String("mode")
			if mode == "auto" {
				if strings.HasPrefix(text, "{") {
					mode = "toQueryString"
				} else {
					mode = "toJson"
				}
			}

			if mode == "toJson" {
				return queryStringToJSON(text)
			}
			return jsonToQueryString(text, opts.Bool("sortKeys"), opts.Bool("encodeValues"))
		},
	}
}

func queryStringToJSON(text string) (tool.Output, error) {
	qs := strings.TrimPrefix(text, "?")

	if strings.Contains(qs, "://") {
		if u, err := url.Parse(qs); err == nil {
			qs = u.RawQuery
		}
	}

	values, err := url.ParseQuery(qs)
	if err != nil {
		return tool.Output{}, tool.ErrMalformedWrap(err, "Invalid query string: %s", err.Error())
	}

	obj := make(map[string]interface{}, len(values))
	for key, vals := range values {
		if len(vals) == 1 {
			obj[key] = vals[0]
		} else {
			obj[key] = vals
		}
	}

	out, err := json.MarshalIndent(obj, "", "  ")
	if err != nil {
		return tool.Output{}, tool.ErrMalformedWrap(err, "Invalid query string: %s", err.Error())
	}
	return tool.TextOutput(string(out)), nil
}

func jsonToQueryString(text string, sortKeys, encodeValues bool) (tool.Output, error) {
	var parsed interface{}
	if err := json.Unmarshal([]byte(text), &parsed); err != nil {
		return tool.Output{}, tool.ErrMalformedWrap(err, "Invalid JSON: %s", err.Error())
	}

	obj, ok := parsed.(map[string]interface{})
	if !ok {
		return tool.Output{}, tool.ErrInvalidInput("Input must be a JSON object")
	}

	// Go maps are unordered, so the output is key-sorted whether or not
	// sortKeys is set.
	_ = sortKeys
	keys := make([]string, 0, len(obj))
	for key := range obj {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	encode := func(s string) string {
		if encodeValues {
			return url.QueryEscape(s)
		}
		return s
	}

	var pairs []string
	for _, key := range keys {
		switch value := obj[key].(type) {
		case []interface{}:
			for _, v := range value {
				pairs = append(pairs, fmt.Sprintf("%s=%s", encode(key), encode(scalarString(v))))
			}
		case nil:
			// Null values are dropped.
		default:
			pairs = append(pairs, fmt.Sprintf("%s=%s", encode(key), encode(scalarString(value))))
		}
	}
	return tool.TextOutput(strings.Join(pairs, "&")), nil
}

func scalarString(v interface{}) string {
	switch tv := v.(type) {
	case string:
		return tv
	case float64:
		return strconv.FormatFloat(tv, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(tv)
	default:
		return fmt.Sprintf("%v", tv)
	}
}

func regexTestTool() tool.Tool {
	return tool.Tool{
		ID:          "dev.regex-test",
		Title:       "Regex Tester",
		Category:    tool.CategoryDev,
		Description: "Test regular expressions against sample input",
		Keywords:    []string{"regex", "regexp", "pattern", "match", "test", "groups"},
		Input: tool.InputSpec{
			Kind: tool.InputFields,
			Elements: []tool.ElementSpec{
				{Name: "pattern", Kind: tool.InputText, Label: "Regex Pattern"},
				{Name: "text", Kind: tool.InputText, Label: "Test String"},
			},
		},
		Output: tool.OutputSpec{Kind: tool.OutputText},
		Options: []tool.OptionField{
			{Name: "flags", Type: tool.OptionString, Description: "Regex flags (g, i, m, s)", Default: "g"},
			{Name: "showGroups", Type: tool.OptionBoolean, Description: "Show capture groups", Default: true},
		},
		Run: func(rc *tool.RunContext, input tool.Input, opts tool.Options) (tool.Output, error) {
			rawPattern := input.Fields["pattern"].Text
			text := input.Fields["text"].Text
			if rawPattern == "" {
				return tool.Output{}, tool.ErrInvalidInput("Please enter a regex pattern")
			}
			if text == "" {
				return tool.Output{}, tool.ErrInvalidInput("Please enter some test text")
			}

			flags := opts.String("flags")
			var inline string
			if strings.Contains(flags, "i") {
				inline += "i"
			}
			if strings.Contains(flags, "m") {
				inline += "m"
			}
			if strings.Contains(flags, "s") {
				inline += "s"
			}
			source := rawPattern
			if inline != "" {
				source = "(?" + inline + ")" + source
			}

			pattern, err := regexp.Compile(source)
			if err != nil {
				return tool.Output{}, tool.ErrMalformedWrap(err, "Invalid regex: %s", err.Error())
			}

			limit := 1
			if strings.Contains(flags, "g") {
				limit = -1
			}
			matches := pattern.FindAllStringSubmatchIndex(text, limit)
			if len(matches) == 0 {
				return tool.TextOutput("No matches found"), nil
			}

			plural := ""
			if len(matches) > 1 {
				plural = "es"
			}
			results := []string{fmt.Sprintf("Found %d match%s:\n", len(matches), plural)}

			showGroups := opts.Bool("showGroups")
			names := pattern.SubexpNames()
			for i, m := range matches {
				results = append(results, fmt.Sprintf("Match %d: %q at index %d", i+1, text[m[0]:m[1]], m[0]))
				if !showGroups {
					continue
				}
				for g := 1; g*2+1 < len(m) && g < len(names); g++ {
					value := "(undefined)"
					if m[g*2] >= 0 {
						value = text[m[g*2]:m[g*2+1]]
					}
					if names[g] != "" {
						results = append(results, fmt.Sprintf("  Group %q: %q", names[g], value))
					} else {
						results = append(results, fmt.Sprintf("  Group %d: %q", g, value))
					}
				}
			}
			return tool.TextOutput(strings.Join(results, "\n")), nil
		},
	}
}
