// Package crypto registers the encoding and hashing tools: Base64, URL
// encoding, message digests, JWT inspection, and UUID generation.
package crypto

import (
	"crypto/sha1"
	"crypto/sha256"
	"crypto/sha512"
	"encoding/base64"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"hash"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"toolbox/pkg/tool"
)

// Register adds the encode/hash tools to the registry.
func Register(r *tool.Registry) error {
	tools := []tool.Tool{
		base64EncodeTool(),
		base64DecodeTool(),
		urlEncodeTool(),
		urlDecodeTool(),
		hashTool(),
		jwtDecodeTool(),
		uuidTool(),
	}
	for _, t := range tools {
		if err := r.Register(t); err != nil {
			return fmt.Errorf("failed to register tool %s: %w", t.ID, err)
		}
	}
	return nil
}

func base64EncodeTool() tool.Tool {
	return tool.Tool{
		ID:          "crypto.base64-encode",
		Title:       "Base64 Encode",
		Category:    tool.CategoryCrypto,
		Description: "Encode text or files to Base64",
		Keywords:    []string{"encode", "binary", "text"},
		Input: tool.InputSpec{
			Kind:        tool.InputText,
			Placeholder: "Enter text to encode...",
		},
		Output: tool.OutputSpec{Kind: tool.OutputText},
		Options: []tool.OptionField{
			{Name: "urlSafe", Type: tool.OptionBoolean, Description: "Use URL-safe encoding", Default: false},
		},
		Run: func(rc *tool.RunContext, input tool.Input, opts tool.Options) (tool.Output, error) {
			if input.Text == "" {
				return tool.Output{}, tool.ErrInvalidInput("Please enter some text")
			}
			enc := base64.StdEncoding
			if opts.Bool("urlSafe") {
				enc = base64.RawURLEncoding
			}
			return tool.TextOutput(enc.EncodeToString([]byte(input.Text))), nil
		},
	}
}

func base64DecodeTool() tool.Tool {
	return tool.Tool{
		ID:          "crypto.base64-decode",
		Title:       "Base64 Decode",
		Category:    tool.CategoryCrypto,
		Description: "Decode Base64 to text",
		Keywords:    []string{"decode", "binary", "text"},
		Input: tool.InputSpec{
			Kind:        tool.InputText,
			Placeholder: "Enter Base64 string...",
		},
		Output: tool.OutputSpec{Kind: tool.OutputText},
		Run: func(rc *tool.RunContext, input tool.Input, opts tool.Options) (tool.Output, error) {
			text := strings.TrimSpace(input.Text)
			if text == "" {
				return tool.Output{}, tool.ErrInvalidInput("Please enter a Base64 string")
			}

			// URL-safe variants are accepted transparently.
			text = strings.ReplaceAll(text, "-", "+")
			text = strings.ReplaceAll(text, "_", "/")
			for len(text)%4 != 0 {
				text += "="
			}

			decoded, err := base64.StdEncoding.DecodeString(text)
			if err != nil {
				return tool.Output{}, tool.ErrMalformedWrap(err, "Invalid Base64 string")
			}
			return tool.TextOutput(string(decoded)), nil
		},
	}
}

func urlEncodeTool() tool.Tool {
	return tool.Tool{
		ID:          "crypto.url-encode",
		Title:       "URL Encode",
		Category:    tool.CategoryCrypto,
		Description: "Encode text for use in URLs",
		Keywords:    []string{"encode", "url", "percent", "escape", "uri"},
		Input: tool.InputSpec{
			Kind:        tool.InputText,
			Placeholder: "Enter text to URL encode...",
		},
		Output: tool.OutputSpec{Kind: tool.OutputText},
		Run: func(rc *tool.RunContext, input tool.Input, opts tool.Options) (tool.Output, error) {
			if input.Text == "" {
				return tool.Output{}, tool.ErrInvalidInput("Please enter some text")
			}
			return tool.TextOutput(encodeURIComponent(input.Text)), nil
		},
	}
}

// encodeURIComponent percent-encodes every byte outside the unreserved
// set A-Z a-z 0-9 - _ . ! ~ * ' ( ).
func encodeURIComponent(s string) string {
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c >= 'A' && c <= 'Z', c >= 'a' && c <= 'z', c >= '0' && c <= '9':
			b.WriteByte(c)
		case strings.ContainsRune("-_.!~*'()", rune(c)):
			b.WriteByte(c)
		default:
			fmt.Fprintf(&b, "%%%02X", c)
		}
	}
	return b.String()
}

func urlDecodeTool() tool.Tool {
	return tool.Tool{
		ID:          "crypto.url-decode",
		Title:       "URL Decode",
		Category:    tool.CategoryCrypto,
		Description: "Decode URL-encoded text",
		Keywords:    []string{"decode", "url", "percent", "unescape", "uri"},
		Input: tool.InputSpec{
			Kind:        tool.InputText,
			Placeholder: "Enter URL-encoded text to decode...",
		},
		Output: tool.OutputSpec{Kind: tool.OutputText},
		Run: func(rc *tool.RunContext, input tool.Input, opts tool.Options) (tool.Output, error) {
			if input.Text == "" {
				return tool.Output{}, tool.ErrInvalidInput("Please enter some text")
			}
			decoded, err := url.PathUnescape(input.Text)
			if err != nil {
				return tool.Output{}, tool.ErrMalformedWrap(err, "Invalid URL-encoded text")
			}
			return tool.TextOutput(decoded), nil
		},
	}
}

func hashTool() tool.Tool {
	return tool.Tool{
		ID:          "crypto.hash",
		Title:       "Hash Generator",
		Category:    tool.CategoryCrypto,
		Description: "Generate SHA-256, SHA-512, or SHA-1 hash of text",
		Keywords:    []string{"sha256", "sha512", "sha1", "checksum", "digest"},
		Input: tool.InputSpec{
			Kind: tool.InputFields,
			Elements: []tool.ElementSpec{
				{Name: "text", Kind: tool.InputText, Label: "Text Input", Optional: true},
				{Name: "file", Kind: tool.InputFile, Label: "File Input", Optional: true},
			},
		},
		Output: tool.OutputSpec{Kind: tool.OutputText},
		Options: []tool.OptionField{
			{Name: "algorithm", Type: tool.OptionString, Description: "Hash algorithm", Enum: []string{"SHA-256", "SHA-384", "SHA-512", "SHA-1"}, Default: "SHA-256"},
			{Name: "uppercase", Type: tool.OptionBoolean, Description: "Uppercase output", Default: false},
		},
		Run: func(rc *tool.RunContext, input tool.Input, opts tool.Options) (tool.Output, error) {
			text := input.Fields["text"].Text
			files := input.Fields["file"].Files

			if text == "" && len(files) == 0 {
				return tool.Output{}, tool.ErrInvalidInput("Please provide text or a file")
			}

			data := []byte(text)
			if len(files) > 0 {
				data = files[0].Data
			}

			var h hash.Hash
			switch opts.String("algorithm") {
			case "SHA-1":
				h = sha1.New()
			case "SHA-384":
				h = sha512.New384()
			case "SHA-512":
				h = sha512.New()
			default:
				h = sha256.New()
			}
			h.Write(data)

			digest := hex.EncodeToString(h.Sum(nil))
			if opts.Bool("uppercase") {
				digest = strings.ToUpper(digest)
			}
			return tool.TextOutput(digest), nil
		},
	}
}

const jwtRule = "═══════════════════════════════════════"

func jwtDecodeTool() tool.Tool {
	return tool.Tool{
		ID:          "crypto.jwt-decode",
		Title:       "JWT Decode",
		Category:    tool.CategoryCrypto,
		Description: "Decode JWT tokens and view header, payload, and expiry",
		Keywords:    []string{"jwt", "json web token", "decode", "parse", "token", "auth"},
		Input: tool.InputSpec{
			Kind:        tool.InputText,
			Placeholder: "Paste your JWT token here...",
		},
		Output: tool.OutputSpec{Kind: tool.OutputText},
		Run: func(rc *tool.RunContext, input tool.Input, opts tool.Options) (tool.Output, error) {
			token := strings.TrimSpace(input.Text)
			if token == "" {
				return tool.Output{}, tool.ErrInvalidInput("Please enter a JWT token")
			}

			parts := strings.Split(token, ".")
			if len(parts) != 3 {
				return tool.Output{}, tool.ErrMalformed("Invalid JWT format. Expected 3 parts separated by dots.")
			}

			header, err := decodeJWTSegment(parts[0])
			if err != nil {
				return tool.Output{}, tool.ErrMalformedWrap(err, "Invalid JWT header - could not decode")
			}
			payload, err := decodeJWTSegment(parts[1])
			if err != nil {
				return tool.Output{}, tool.ErrMalformedWrap(err, "Invalid JWT payload - could not decode")
			}

			headerJSON, _ := json.MarshalIndent(header, "", "  ")
			payloadJSON, _ := json.MarshalIndent(payload, "", "  ")

			lines := []string{
				jwtRule,
				"                HEADER",
				jwtRule,
				string(headerJSON),
				"",
				jwtRule,
				"                PAYLOAD",
				jwtRule,
				string(payloadJSON),
			}

			iat, hasIat := numericClaim(payload, "iat")
			nbf, hasNbf := numericClaim(payload, "nbf")
			exp, hasExp := numericClaim(payload, "exp")

			if hasIat || hasNbf || hasExp {
				lines = append(lines, "", jwtRule, "              TIMESTAMPS", jwtRule)
				if hasIat {
					lines = append(lines, fmt.Sprintf("Issued At (iat):    %s", isoTime(iat)))
				}
				if hasNbf {
					lines = append(lines, fmt.Sprintf("Not Before (nbf):   %s", isoTime(nbf)))
				}
				if hasExp {
					lines = append(lines, fmt.Sprintf("Expires (exp):      %s", formatExpiry(exp, time.Now())))
				}
			}

			return tool.TextOutput(strings.Join(lines, "\n")), nil
		},
	}
}

func decodeJWTSegment(segment string) (map[string]interface{}, error) {
	data, err := base64.RawURLEncoding.DecodeString(strings.TrimRight(segment, "="))
	if err != nil {
		return nil, err
	}
	var out map[string]interface{}
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func numericClaim(payload map[string]interface{}, name string) (int64, bool) {
	v, ok := payload[name].(float64)
	if !ok {
		return 0, false
	}
	return int64(v), true
}

func isoTime(unix int64) string {
	return time.Unix(unix, 0).UTC().Format("2006-01-02T15:04:05.000Z")
}

func formatExpiry(exp int64, now time.Time) string {
	at := time.Unix(exp, 0)
	formatted := isoTime(exp)

	delta := now.Sub(at)
	if delta > 0 {
		days := int(delta.Hours()) / 24
		hours := int(delta.Hours()) % 24
		return fmt.Sprintf("%s (❌ EXPIRED - expired %dd %dh ago)", formatted, days, hours)
	}
	delta = -delta
	days := int(delta.Hours()) / 24
	hours := int(delta.Hours()) % 24
	return fmt.Sprintf("%s (✅ Valid - expires in %dd %dh)", formatted, days, hours)
}

func uuidTool() tool.Tool {
	return tool.Tool{
		ID:          "crypto.uuid",
		Title:       "UUID Generator",
		Category:    tool.CategoryCrypto,
		Description: "Generate random UUIDs (v4)",
		Keywords:    []string{"guid", "random", "unique", "identifier"},
		Input:       tool.InputSpec{Kind: tool.InputNone},
		Output:      tool.OutputSpec{Kind: tool.OutputText},
		Options: []tool.OptionField{
			{Name: "count", Type: tool.OptionInteger, Description: "Number of UUIDs to generate", Min: tool.FloatPtr(1), Max: tool.FloatPtr(100), Default: 1},
			{Name: "uppercase", Type: tool.OptionBoolean, Description: "Uppercase output", Default: false},
			{Name: "noDashes", Type: tool.OptionBoolean, Description: "Remove dashes", Default: false},
		},
		Run: func(rc *tool.RunContext, input tool.Input, opts tool.Options) (tool.Output, error) {
			count := opts.Int("count")
			out := make([]string, 0, count)
			for i := 0; i < count; i++ {
				id := uuid.NewString()
				if opts.Bool("noDashes") {
					id = strings.ReplaceAll(id, "-", "")
				}
				if opts.Bool("uppercase") {
					id = strings.ToUpper(id)
				}
				out = append(out, id)
			}
			return tool.TextOutput(strings.Join(out, "\n")), nil
		},
	}
}
