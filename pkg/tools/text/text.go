// Package text registers the plain-text manipulation tools.
package text

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"toolbox/pkg/tool"
)

// Register adds the text tools to the registry.
func Register(r *tool.Registry) error {
	tools := []tool.Tool{
		caseConvertTool(),
		findReplaceTool(),
		lineEndingsTool(),
		removeDuplicatesTool(),
		sortLinesTool(),
		wordCountTool(),
	}
	for _, t := range tools {
		if err := r.Register(t); err != nil {
			return fmt.Errorf("failed to register tool %s: %w", t.ID, err)
		}
	}
	return nil
}

var (
	lowerUpper    = regexp.MustCompile(`([a-z])([A-Z])`)
	acronymWord   = regexp.MustCompile(`([A-Z]+)([A-Z][a-z])`)
	wordDelims    = regexp.MustCompile(`[-_]`)
	whitespace    = regexp.MustCompile(`\s+`)
	wordPattern   = regexp.MustCompile(`\w\S*`)
	sentenceStart = regexp.MustCompile(`^\s*\w|[.!?]\s*\w`)
	anySpace      = regexp.MustCompile(`\s`)
	paragraphGap  = regexp.MustCompile(`\n\s*\n`)
	lineBreak     = regexp.MustCompile(`\r?\n`)
	leadingFloat  = regexp.MustCompile(`^[+-]?(\d+(\.\d*)?|\.\d+)([eE][+-]?\d+)?`)
)

// toWords splits text on camelCase boundaries, dashes, underscores, and
// whitespace.
func toWords(text string) []string {
	text = lowerUpper.ReplaceAllString(text, "$1 $2")
	text = acronymWord.ReplaceAllString(text, "$1 $2")
	text = wordDelims.ReplaceAllString(text, " ")

	var words []string
	for _, w := range whitespace.Split(text, -1) {
		if w != "" {
			words = append(words, w)
		}
	}
	return words
}

func capitalizeWord(w string) string {
	if w == "" {
		return w
	}
	return strings.ToUpper(w[:1]) + strings.ToLower(w[1:])
}

func toTitleCase(text string) string {
	return wordPattern.ReplaceAllStringFunc(text, capitalizeWord)
}

func toSentenceCase(text string) string {
	return sentenceStart.ReplaceAllStringFunc(strings.ToLower(text), strings.ToUpper)
}

func toCamelCase(text string) string {
	var b strings.Builder
	for i, w := range toWords(text) {
		if i == 0 {
			b.WriteString(strings.ToLower(w))
		} else {
			b.WriteString(capitalizeWord(w))
		}
	}
	return b.String()
}

func toPascalCase(text string) string {
	var b strings.Builder
	for _, w := range toWords(text) {
		b.WriteString(capitalizeWord(w))
	}
	return b.String()
}

func joinWords(text, sep string, transform func(string) string) string {
	words := toWords(text)
	for i, w := range words {
		words[i] = transform(w)
	}
	return strings.Join(words, sep)
}

func caseConvertTool() tool.Tool {
	return tool.Tool{
		ID:          "text.case-convert",
		Title:       "Case Converter",
		Category:    tool.CategoryText,
		Description: "Convert text case (upper, lower, title, camel, snake, kebab)",
		Keywords:    []string{"case", "uppercase", "lowercase", "title", "camel", "snake", "kebab", "pascal"},
		Input: tool.InputSpec{
			Kind:        tool.InputText,
			Placeholder: "Paste text to convert...",
		},
		Output: tool.OutputSpec{Kind: tool.OutputText},
		Options: []tool.OptionField{
			{
				Name: "caseType", Type: tool.OptionString, Description: "Target case format",
				Enum: []string{
					"uppercase", "lowercase", "titlecase", "sentencecase",
					"camelCase", "PascalCase", "snake_case", "SCREAMING_SNAKE_CASE", "kebab-case",
				},
				Default: "lowercase",
			},
		},
		Run: func(rc *tool.RunContext, input tool.Input, opts tool.Options) (tool.Output, error) {
			text := input.Text
			if text == "" {
				return tool.Output{}, tool.ErrInvalidInput("Please enter some text")
			}

			var result string
			switch opts.String("caseType") {
			case "uppercase":
				result = strings.ToUpper(text)
			case "lowercase":
				result = strings.ToLower(text)
			case "titlecase":
				result = toTitleCase(text)
			case "sentencecase":
				result = toSentenceCase(text)
			case "camelCase":
				result = toCamelCase(text)
			case "PascalCase":
				result = toPascalCase(text)
			case "snake_case":
				result = joinWords(text, "_", strings.ToLower)
			case "SCREAMING_SNAKE_CASE":
				result = joinWords(text, "_", strings.ToUpper)
			case "kebab-case":
				result = joinWords(text, "-", strings.ToLower)
			default:
				result = text
			}
			return tool.TextOutput(result), nil
		},
	}
}

func findReplaceTool() tool.Tool {
	return tool.Tool{
		ID:          "text.find-replace",
		Title:       "Find & Replace",
		Category:    tool.CategoryText,
		Description: "Find and replace text with regex support",
		Keywords:    []string{"find", "replace", "regex", "search", "substitute", "sed"},
		Input: tool.InputSpec{
			Kind:        tool.InputText,
			Placeholder: "Paste text to search...",
		},
		Output: tool.OutputSpec{Kind: tool.OutputText},
		Options: []tool.OptionField{
			{Name: "find", Type: tool.OptionString, Description: "Text or regex pattern to find", Default: ""},
			{Name: "replace", Type: tool.OptionString, Description: "Replacement text", Default: ""},
			{Name: "useRegex", Type: tool.OptionBoolean, Description: "Treat find as regular expression", Default: false},
			{Name: "caseSensitive", Type: tool.OptionBoolean, Description: "Case sensitive matching", Default: true},
			{Name: "replaceAll", Type: tool.OptionBoolean, Description: "Replace all occurrences", Default: true},
		},
		Run: func(rc *tool.RunContext, input tool.Input, opts tool.Options) (tool.Output, error) {
			text := input.Text
			if text == "" {
				return tool.Output{}, tool.ErrInvalidInput("Please enter some text")
			}
			find := opts.String("find")
			if find == "" {
				return tool.Output{}, tool.ErrInvalidInput("Please enter a search pattern")
			}

			useRegex := opts.Bool("useRegex")
			source := find
			if !useRegex {
				source = regexp.QuoteMeta(find)
			}
			if !opts.Bool("caseSensitive") {
				source = "(?i)" + source
			}

			pattern, err := regexp.Compile(source)
			if err != nil {
				return tool.Output{}, tool.ErrMalformedWrap(err, "Invalid regex: %s", err.Error())
			}

			if pattern.FindStringIndex(text) == nil {
				return tool.Output{}, tool.ErrInvalidInput("No matches found")
			}

			replace := opts.String("replace")
			var result string
			switch {
			case opts.Bool("replaceAll") && useRegex:
				result = pattern.ReplaceAllString(text, replace)
			case opts.Bool("replaceAll"):
				result = pattern.ReplaceAllLiteralString(text, replace)
			default:
				result = replaceFirst(pattern, text, replace, !useRegex)
			}
			return tool.TextOutput(result), nil
		},
	}
}

// replaceFirst replaces only the first match, honoring $ expansions in
// regex mode.
func replaceFirst(pattern *regexp.Regexp, text, replace string, literal bool) string {
	m := pattern.FindStringSubmatchIndex(text)
	if m == nil {
		return text
	}
	out := []byte(text[:m[0]])
	if literal {
		out = append(out, replace...)
	} else {
		out = pattern.ExpandString(out, replace, text, m)
	}
	out = append(out, text[m[1]:]...)
	return string(out)
}

func lineEndingsTool() tool.Tool {
	return tool.Tool{
		ID:          "text.line-endings",
		Title:       "Convert Line Endings",
		Category:    tool.CategoryText,
		Description: "Convert line endings between LF (Unix) and CRLF (Windows)",
		Keywords:    []string{"newline", "unix", "windows", "dos", "eol"},
		Input: tool.InputSpec{
			Kind:        tool.InputText,
			Placeholder: "Paste text here...",
		},
		Output: tool.OutputSpec{Kind: tool.OutputText},
		Options: []tool.OptionField{
			{Name: "targetEnding", Type: tool.OptionString, Description: "Target line ending format", Enum: []string{"lf", "crlf"}, Default: "lf"},
		},
		Run: func(rc *tool.RunContext, input tool.Input, opts tool.Options) (tool.Output, error) {
			text := input.Text
			if text == "" {
				return tool.Output{}, tool.ErrInvalidInput("Please enter some text")
			}

			normalized := strings.ReplaceAll(text, "\r\n", "\n")
			normalized = strings.ReplaceAll(normalized, "\r", "\n")

			if opts.String("targetEnding") == "crlf" {
				normalized = strings.ReplaceAll(normalized, "\n", "\r\n")
			}
			return tool.TextOutput(normalized), nil
		},
	}
}

func removeDuplicatesTool() tool.Tool {
	return tool.Tool{
		ID:          "text.remove-duplicates",
		Title:       "Remove Duplicates",
		Category:    tool.CategoryText,
		Description: "Remove duplicate lines from text",
		Keywords:    []string{"dedupe", "unique", "distinct", "duplicates", "remove"},
		Input: tool.InputSpec{
			Kind:        tool.InputText,
			Placeholder: "Paste text with duplicate lines...",
		},
		Output: tool.OutputSpec{Kind: tool.OutputText},
		Options: []tool.OptionField{
			{Name: "caseSensitive", Type: tool.OptionBoolean, Description: "Case sensitive comparison", Default: true},
			{Name: "trimLines", Type: tool.OptionBoolean, Description: "Trim whitespace before comparing", Default: false},
			{Name: "preserveOrder", Type: tool.OptionBoolean, Description: "Keep first occurrence order", Default: true},
			{Name: "ignoreEmpty", Type: tool.OptionBoolean, Description: "Ignore empty lines when deduplicating", Default: false},
		},
		Run: func(rc *tool.RunContext, input tool.Input, opts tool.Options) (tool.Output, error) {
			text := input.Text
			if text == "" {
				return tool.Output{}, tool.ErrInvalidInput("Please enter some text")
			}

			lines := lineBreak.Split(text, -1)
			originalCount := len(lines)

			if opts.Bool("trimLines") {
				for i, line := range lines {
					lines[i] = strings.TrimSpace(line)
				}
			}

			seen := make(map[string]bool, len(lines))
			result := make([]string, 0, len(lines))
			for _, line := range lines {
				if opts.Bool("ignoreEmpty") && strings.TrimSpace(line) == "" {
					result = append(result, line)
					continue
				}
				key := line
				if !opts.Bool("caseSensitive") {
					key = strings.ToLower(line)
				}
				if !seen[key] {
					seen[key] = true
					result = append(result, line)
				}
			}

			if originalCount == len(result) {
				return tool.TextOutput(text), nil
			}
			return tool.TextOutput(strings.Join(result, "\n")), nil
		},
	}
}

func sortLinesTool() tool.Tool {
	return tool.Tool{
		ID:          "text.sort-lines",
		Title:       "Sort Lines",
		Category:    tool.CategoryText,
		Description: "Sort lines alphabetically, numerically, or by length",
		Keywords:    []string{"order", "alphabetize", "unique", "dedupe", "natural"},
		Input: tool.InputSpec{
			Kind:        tool.InputText,
			Placeholder: "Paste text with multiple lines...",
		},
		Output: tool.OutputSpec{Kind: tool.OutputText},
		Options: []tool.OptionField{
			{Name: "sortType", Type: tool.OptionString, Description: "Sort method", Enum: []string{"alphabetical", "natural", "numeric", "length"}, Default: "alphabetical"},
			{Name: "order", Type: tool.OptionString, Description: "Sort order", Enum: []string{"asc", "desc"}, Default: "asc"},
			{Name: "caseSensitive", Type: tool.OptionBoolean, Description: "Case sensitive comparison", Default: false},
			{Name: "unique", Type: tool.OptionBoolean, Description: "Remove duplicate lines", Default: false},
			{Name: "trimLines", Type: tool.OptionBoolean, Description: "Trim whitespace from lines", Default: false},
		},
		Run: func(rc *tool.RunContext, input tool.Input, opts tool.Options) (tool.Output, error) {
			text := input.Text
			if text == "" {
				return tool.Output{}, tool.ErrInvalidInput("Please enter some text")
			}

			lines := lineBreak.Split(text, -1)

			if opts.Bool("trimLines") {
				for i, line := range lines {
					lines[i] = strings.TrimSpace(line)
				}
			}

			caseSensitive := opts.Bool("caseSensitive")
			if opts.Bool("unique") {
				seen := make(map[string]bool, len(lines))
				deduped := lines[:0]
				for _, line := range lines {
					key := line
					if !caseSensitive {
						key = strings.ToLower(line)
					}
					if !seen[key] {
						seen[key] = true
						deduped = append(deduped, line)
					}
				}
				lines = deduped
			}

			sortType := opts.String("sortType")
			collatorOpts := []collate.Option{}
			if sortType == "natural" {
				collatorOpts = append(collatorOpts, collate.Numeric)
			}
			if !caseSensitive {
				collatorOpts = append(collatorOpts, collate.IgnoreCase)
			}
			collator := collate.New(language.Und, collatorOpts...)

			desc := opts.String("order") == "desc"
			sort.SliceStable(lines, func(i, j int) bool {
				var less bool
				switch sortType {
				case "numeric":
					less = leadingNumber(lines[i]) < leadingNumber(lines[j])
				case "length":
					less = len(lines[i]) < len(lines[j])
				default:
					less = collator.CompareString(lines[i], lines[j]) < 0
				}
				if desc {
					return !less && !linesEqual(lines[i], lines[j], sortType, collator)
				}
				return less
			})

			return tool.TextOutput(strings.Join(lines, "\n")), nil
		},
	}
}

// leadingNumber parses a leading decimal number, zero when absent.
func leadingNumber(s string) float64 {
	m := leadingFloat.FindString(strings.TrimSpace(s))
	if m == "" {
		return 0
	}
	n, err := strconv.ParseFloat(m, 64)
	if err != nil {
		return 0
	}
	return n
}

func linesEqual(a, b, sortType string, collator *collate.Collator) bool {
	switch sortType {
	case "numeric":
		return leadingNumber(a) == leadingNumber(b)
	case "length":
		return len(a) == len(b)
	default:
		return collator.CompareString(a, b) == 0
	}
}

func wordCountTool() tool.Tool {
	return tool.Tool{
		ID:          "text.word-count",
		Title:       "Word Count",
		Category:    tool.CategoryText,
		Description: "Count words, characters, lines, and paragraphs",
		Keywords:    []string{"count", "words", "characters", "lines", "paragraphs", "statistics", "stats"},
		Input: tool.InputSpec{
			Kind:        tool.InputText,
			Placeholder: "Paste text to count...",
		},
		Output: tool.OutputSpec{Kind: tool.OutputText},
		Options: []tool.OptionField{
			{Name: "countWhitespace", Type: tool.OptionBoolean, Description: "Include whitespace in character count", Default: false},
		},
		Run: func(rc *tool.RunContext, input tool.Input, opts tool.Options) (tool.Output, error) {
			text := input.Text
			if text == "" {
				return tool.Output{}, tool.ErrInvalidInput("Please enter some text")
			}

			lineCount := len(lineBreak.Split(text, -1))

			paragraphCount := 0
			for _, p := range paragraphGap.Split(text, -1) {
				if strings.TrimSpace(p) != "" {
					paragraphCount++
				}
			}

			wordCount := 0
			trimmed := strings.TrimSpace(text)
			if trimmed != "" {
				wordCount = len(whitespace.Split(trimmed, -1))
			}

			withSpaces := utf8.RuneCountInString(text)
			withoutSpaces := utf8.RuneCountInString(anySpace.ReplaceAllString(text, ""))

			avgWordLength := "0"
			if wordCount > 0 {
				avgWordLength = strconv.FormatFloat(float64(withoutSpaces)/float64(wordCount), 'f', 1, 64)
			}
			avgWordsPerLine := "0"
			if lineCount > 0 {
				avgWordsPerLine = strconv.FormatFloat(float64(wordCount)/float64(lineCount), 'f', 1, 64)
			}

			p := message.NewPrinter(language.English)
			out := p.Sprintf(`Statistics:
─────────────────────────
Words:                %d
Characters (no spaces): %d
Characters (with spaces): %d
Lines:                %d
Paragraphs:           %d
─────────────────────────
Avg word length:      %s chars
Avg words per line:   %s`,
				wordCount, withoutSpaces, withSpaces, lineCount, paragraphCount,
				avgWordLength, avgWordsPerLine)

			return tool.TextOutput(out), nil
		},
	}
}
