// Package format registers the document formatting tools: JSON, YAML,
// XML, SQL, and Markdown.
package format

import (
	"bytes"
	"encoding/json"
	"encoding/xml"
	"fmt"
	"io"
	"regexp"
	"sort"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
	"gopkg.in/yaml.v3"

	"toolbox/pkg/tool"
)

// Register adds the format tools to the registry.
func Register(r *tool.Registry) error {
	tools := []tool.Tool{
		jsonPrettifyTool(),
		jsonMinifyTool(),
		yamlPrettifyTool(),
		xmlPrettifyTool(),
		sqlFormatTool(),
		markdownPreviewTool(),
	}
	for _, t := range tools {
		if err := r.Register(t); err != nil {
			return fmt.Errorf("failed to register tool %s: %w", t.ID, err)
		}
	}
	return nil
}

func jsonPrettifyTool() tool.Tool {
	return tool.Tool{
		ID:          "format.json-prettify",
		Title:       "JSON Prettify",
		Category:    tool.CategoryFormat,
		Description: "Format and beautify JSON with proper indentation",
		Keywords:    []string{"format", "beautify", "indent"},
		Input: tool.InputSpec{
			Kind:        tool.InputText,
			Placeholder: "Paste JSON here...",
		},
		Output: tool.OutputSpec{Kind: tool.OutputText},
		Options: []tool.OptionField{
			{Name: "indent", Type: tool.OptionInteger, Description: "Indentation spaces", Min: tool.FloatPtr(1), Max: tool.FloatPtr(8), Default: 2},
			{Name: "sortKeys", Type: tool.OptionBoolean, Description: "Sort object keys alphabetically", Default: false},
		},
		Run: func(rc *tool.RunContext, input tool.Input, opts tool.Options) (tool.Output, error) {
			text := input.Text
			if strings.TrimSpace(text) == "" {
				return tool.Output{}, tool.ErrInvalidInput("Please enter some JSON")
			}

			indent := strings.Repeat(" ", opts.Int("indent"))

			if opts.Bool("sortKeys") {
				var parsed interface{}
				if err := json.Unmarshal([]byte(text), &parsed); err != nil {
					return tool.Output{}, tool.ErrMalformedWrap(err, "Invalid JSON: %s", err.Error())
				}
				// Map keys marshal in sorted order.
				out, err := json.MarshalIndent(parsed, "", indent)
				if err != nil {
					return tool.Output{}, tool.ErrMalformedWrap(err, "Invalid JSON: %s", err.Error())
				}
				return tool.TextOutput(string(out)), nil
			}

			// json.Indent keeps the original key order.
			var buf bytes.Buffer
			if err := json.Indent(&buf, []byte(strings.TrimSpace(text)), "", indent); err != nil {
				return tool.Output{}, tool.ErrMalformedWrap(err, "Invalid JSON: %s", err.Error())
			}
			return tool.TextOutput(buf.String()), nil
		},
	}
}

func jsonMinifyTool() tool.Tool {
	return tool.Tool{
		ID:          "format.json-minify",
		Title:       "JSON Minify",
		Category:    tool.CategoryFormat,
		Description: "Compact JSON by removing whitespace",
		Keywords:    []string{"compact", "compress", "minimize"},
		Input: tool.InputSpec{
			Kind:        tool.InputText,
			Placeholder: "Paste JSON here...",
		},
		Output: tool.OutputSpec{Kind: tool.OutputText},
		Run: func(rc *tool.RunContext, input tool.Input, opts tool.Options) (tool.Output, error) {
			text := input.Text
			if strings.TrimSpace(text) == "" {
				return tool.Output{}, tool.ErrInvalidInput("Please enter some JSON")
			}

			var buf bytes.Buffer
			if err := json.Compact(&buf, []byte(strings.TrimSpace(text))); err != nil {
				return tool.Output{}, tool.ErrMalformedWrap(err, "Invalid JSON: %s", err.Error())
			}
			return tool.TextOutput(buf.String()), nil
		},
	}
}

func yamlPrettifyTool() tool.Tool {
	return tool.Tool{
		ID:          "format.yaml-prettify",
		Title:       "YAML Prettify",
		Category:    tool.CategoryFormat,
		Description: "Format, validate and beautify YAML with proper indentation",
		Keywords:    []string{"yaml", "format", "beautify", "indent", "validate"},
		Input: tool.InputSpec{
			Kind:        tool.InputText,
			Placeholder: "Paste YAML here...",
		},
		Output: tool.OutputSpec{Kind: tool.OutputText},
		Options: []tool.OptionField{
			{Name: "indent", Type: tool.OptionInteger, Description: "Indentation spaces", Min: tool.FloatPtr(1), Max: tool.FloatPtr(8), Default: 2},
			{Name: "sortKeys", Type: tool.OptionBoolean, Description: "Sort object keys alphabetically", Default: false},
			{Name: "lineWidth", Type: tool.OptionInteger, Description: "Line width before wrapping", Min: tool.FloatPtr(40), Max: tool.FloatPtr(200), Default: 80},
		},
		Run: func(rc *tool.RunContext, input tool.Input, opts tool.Options) (tool.Output, error) {
			text := input.Text
			if strings.TrimSpace(text) == "" {
				return tool.Output{}, tool.ErrInvalidInput("Please enter some YAML")
			}

			var root yaml.Node
			if err := yaml.Unmarshal([]byte(text), &root); err != nil {
				return tool.Output{}, tool.ErrMalformedWrap(err, "Invalid YAML: %s", err.Error())
			}

			if opts.Bool("sortKeys") {
				sortMappingKeys(&root)
			}

			var buf bytes.Buffer
			enc := yaml.NewEncoder(&buf)
			enc.SetIndent(opts.Int("indent"))
			if err := enc.Encode(&root); err != nil {
				return tool.Output{}, tool.ErrMalformedWrap(err, "Invalid YAML: %s", err.Error())
			}
			if err := enc.Close(); err != nil {
				return tool.Output{}, tool.ErrMalformedWrap(err, "Invalid YAML: %s", err.Error())
			}
			return tool.TextOutput(buf.String()), nil
		},
	}
}

// sortMappingKeys recursively sorts mapping node entries by key.
func sortMappingKeys(node *yaml.Node) {
	for _, child := range node.Content {
		sortMappingKeys(child)
	}
	if node.Kind != yaml.MappingNode {
		return
	}

	type pair struct{ key, value *yaml.Node }
	pairs := make([]pair, 0, len(node.Content)/2)
	for i := 0; i+1 < len(node.Content); i += 2 {
		pairs = append(pairs, pair{node.Content[i], node.Content[i+1]})
	}
	sort.SliceStable(pairs, func(i, j int) bool {
		return pairs[i].key.Value < pairs[j].key.Value
	})

	node.Content = node.Content[:0]
	for _, p := range pairs {
		node.Content = append(node.Content, p.key, p.value)
	}
}

var (
	tagGap    = regexp.MustCompile(`>\s*<`)
	allSpace  = regexp.MustCompile(`\s+`)
	xmlTokens = regexp.MustCompile(`<[^>]+>|[^<]+`)
)

func xmlPrettifyTool() tool.Tool {
	return tool.Tool{
		ID:          "format.xml-prettify",
		Title:       "XML Prettify",
		Category:    tool.CategoryFormat,
		Description: "Format and beautify XML with proper indentation",
		Keywords:    []string{"xml", "format", "beautify", "indent", "html"},
		Input: tool.InputSpec{
			Kind:        tool.InputText,
			Placeholder: "Paste XML here...",
		},
		Output: tool.OutputSpec{Kind: tool.OutputText},
		Options: []tool.OptionField{
			{Name: "indent", Type: tool.OptionInteger, Description: "Indentation spaces", Min: tool.FloatPtr(1), Max: tool.FloatPtr(8), Default: 2},
		},
		Run: func(rc *tool.RunContext, input tool.Input, opts tool.Options) (tool.Output, error) {
			text := input.Text
			if strings.TrimSpace(text) == "" {
				return tool.Output{}, tool.ErrInvalidInput("Please enter some XML")
			}

			if err := checkXML(text); err != nil {
				return tool.Output{}, tool.ErrMalformedWrap(err, "Invalid XML: %s", err.Error())
			}

			return tool.TextOutput(formatXML(text, opts.Int("indent"))), nil
		},
	}
}

func checkXML(text string) error {
	dec := xml.NewDecoder(strings.NewReader(text))
	for {
		_, err := dec.Token()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
	}
}

func formatXML(text string, indentSize int) string {
	indent := strings.Repeat(" ", indentSize)

	normalized := tagGap.ReplaceAllString(text, "><")
	normalized = strings.TrimSpace(allSpace.ReplaceAllString(normalized, " "))

	var b strings.Builder
	depth := 0
	inline := false
	joinLast := func(token string) {
		out := strings.TrimRight(b.String(), " \n")
		b.Reset()
		b.WriteString(out + token + "\n")
	}
	for _, token := range xmlTokens.FindAllString(normalized, -1) {
		switch {
		case strings.HasPrefix(token, "</"):
			depth--
			if inline {
				// Text-only elements close on the same line.
				joinLast(token)
				inline = false
			} else {
				b.WriteString(strings.Repeat(indent, max(depth, 0)) + token + "\n")
			}
		case strings.HasPrefix(token, "<") && strings.HasSuffix(token, "/>"):
			b.WriteString(strings.Repeat(indent, max(depth, 0)) + token + "\n")
			inline = false
		case strings.HasPrefix(token, "<?"), strings.HasPrefix(token, "<!"):
			b.WriteString(strings.Repeat(indent, max(depth, 0)) + token + "\n")
			inline = false
		case strings.HasPrefix(token, "<"):
			b.WriteString(strings.Repeat(indent, max(depth, 0)) + token + "\n")
			depth++
			inline = false
		default:
			trimmed := strings.TrimSpace(token)
			if trimmed != "" {
				joinLast(trimmed)
				inline = true
			}
		}
	}
	return strings.TrimSpace(b.String())
}

var sqlKeywords = []string{
	"SELECT", "FROM", "WHERE", "AND", "OR", "NOT", "IN", "EXISTS",
	"JOIN", "LEFT", "RIGHT", "INNER", "OUTER", "FULL", "CROSS", "ON",
	"GROUP", "BY", "HAVING", "ORDER", "ASC", "DESC", "LIMIT", "OFFSET",
	"INSERT", "INTO", "VALUES", "UPDATE", "SET", "DELETE",
	"CREATE", "TABLE", "INDEX", "VIEW", "DROP", "ALTER", "ADD", "COLUMN",
	"PRIMARY", "KEY", "FOREIGN", "REFERENCES", "UNIQUE", "DEFAULT", "NULL",
	"AS", "DISTINCT", "ALL", "UNION", "INTERSECT", "EXCEPT",
	"CASE", "WHEN", "THEN", "ELSE", "END", "BETWEEN", "LIKE", "IS",
	"WITH", "RECURSIVE", "RETURNING", "USING", "NATURAL",
}

var sqlNewlineBefore = []string{
	"SELECT", "FROM", "WHERE", "AND", "OR", "JOIN", "LEFT JOIN", "RIGHT JOIN",
	"INNER JOIN", "OUTER JOIN", "GROUP BY", "ORDER BY", "HAVING", "LIMIT", "OFFSET",
	"INSERT", "UPDATE", "DELETE", "SET", "VALUES", "UNION", "INTERSECT", "EXCEPT",
}

func sqlFormatTool() tool.Tool {
	return tool.Tool{
		ID:          "format.sql-format",
		Title:       "SQL Format",
		Category:    tool.CategoryFormat,
		Description: "Format SQL queries with proper indentation and keyword styling",
		Keywords:    []string{"sql", "format", "beautify", "query", "database"},
		Input: tool.InputSpec{
			Kind:        tool.InputText,
			Placeholder: "Paste SQL query here...",
		},
		Output: tool.OutputSpec{Kind: tool.OutputText},
		Options: []tool.OptionField{
			{Name: "indent", Type: tool.OptionInteger, Description: "Indentation spaces", Min: tool.FloatPtr(1), Max: tool.FloatPtr(8), Default: 2},
			{Name: "uppercase", Type: tool.OptionBoolean, Description: "Uppercase SQL keywords", Default: true},
		},
		Run: func(rc *tool.RunContext, input tool.Input, opts tool.Options) (tool.Output, error) {
			text := input.Text
			if strings.TrimSpace(text) == "" {
				return tool.Output{}, tool.ErrInvalidInput("Please enter a SQL query")
			}
			return tool.TextOutput(formatSQL(text, opts.Int("indent"), opts.Bool("uppercase"))), nil
		},
	}
}

func formatSQL(sql string, indentSize int, uppercase bool) string {
	indent := strings.Repeat(" ", indentSize)

	formatted := strings.TrimSpace(allSpace.ReplaceAllString(sql, " "))

	for _, keyword := range sqlKeywords {
		re := regexp.MustCompile(`(?i)\b` + keyword + `\b`)
		target := keyword
		if !uppercase {
			target = strings.ToLower(keyword)
		}
		formatted = re.ReplaceAllString(formatted, target)
	}

	for _, keyword := range sqlNewlineBefore {
		target := keyword
		if !uppercase {
			target = strings.ToLower(keyword)
		}
		re := regexp.MustCompile(`(?i)\s+` + regexp.QuoteMeta(target) + `\b`)
		formatted = re.ReplaceAllString(formatted, "\n"+target)
	}

	var result []string
	for _, line := range strings.Split(formatted, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		upper := strings.ToUpper(trimmed)

		switch {
		case hasAnyPrefix(upper, "SELECT", "INSERT", "UPDATE", "DELETE", "WITH"),
			hasAnyPrefix(upper, "FROM", "WHERE", "GROUP BY", "ORDER BY", "HAVING", "LIMIT", "SET", "VALUES"):
			result = append(result, trimmed)
		case hasAnyPrefix(upper, "AND", "OR"):
			result = append(result, indent+trimmed)
		case strings.Contains(upper, "JOIN"):
			result = append(result, trimmed)
		default:
			result = append(result, indent+trimmed)
		}
	}
	return strings.Join(result, "\n")
}

func hasAnyPrefix(s string, prefixes ...string) bool {
	for _, p := range prefixes {
		if strings.HasPrefix(s, p) {
			return true
		}
	}
	return false
}

func markdownPreviewTool() tool.Tool {
	return tool.Tool{
		ID:          "format.markdown-preview",
		Title:       "Markdown Preview",
		Category:    tool.CategoryFormat,
		Description: "Convert Markdown to HTML preview",
		Keywords:    []string{"markdown", "md", "preview", "html", "convert"},
		Input: tool.InputSpec{
			Kind:        tool.InputText,
			Placeholder: "Paste Markdown here...",
		},
		Output: tool.OutputSpec{Kind: tool.OutputText},
		Options: []tool.OptionField{
			{Name: "gfm", Type: tool.OptionBoolean, Description: "GitHub Flavored Markdown", Default: true},
			{Name: "breaks", Type: tool.OptionBoolean, Description: "Convert line breaks to <br>", Default: false},
		},
		Run: func(rc *tool.RunContext, input tool.Input, opts tool.Options) (tool.Output, error) {
			text := input.Text
			if strings.TrimSpace(text) == "" {
				return tool.Output{}, tool.ErrInvalidInput("Please enter some Markdown")
			}

			var mdOpts []goldmark.Option
			if opts.Bool("gfm") {
				mdOpts = append(mdOpts, goldmark.WithExtensions(extension.GFM))
			}
			if opts.Bool("breaks") {
				mdOpts = append(mdOpts, goldmark.WithRendererOptions(html.WithHardWraps()))
			}
			md := goldmark.New(mdOpts...)

			var buf bytes.Buffer
			if err := md.Convert([]byte(text), &buf); err != nil {
				return tool.Output{}, tool.ErrMalformedWrap(err, "Invalid Markdown: %s", err.Error())
			}
			return tool.TextOutput(wrapHTML(buf.String())), nil
		},
	}
}

func wrapHTML(content string) string {
	return `<!DOCTYPE html>
<html>
<head>
  <meta charset="UTF-8">
  <style>
    body {
      font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, Oxygen, Ubuntu, sans-serif;
      line-height: 1.6;
      max-width: 800px;
      margin: 0 auto;
      padding: 20px;
      color: #333;
    }
    pre {
      background: #f4f4f4;
      padding: 12px;
      border-radius: 4px;
      overflow-x: auto;
    }
    code {
      background: #f4f4f4;
      padding: 2px 6px;
      border-radius: 3px;
      font-size: 0.9em;
    }
    pre code {
      background: none;
      padding: 0;
    }
    blockquote {
      border-left: 4px solid #ddd;
      margin-left: 0;
      padding-left: 16px;
      color: #666;
    }
    table {
      border-collapse: collapse;
      width: 100%;
    }
    th, td {
      border: 1px solid #ddd;
      padding: 8px;
      text-align: left;
    }
    th {
      background: #f4f4f4;
    }
    img {
      max-width: 100%;
    }
    a {
      color: #0066cc;
    }
  </style>
</head>
<body>
` + content + `
</body>
</html>`
}
