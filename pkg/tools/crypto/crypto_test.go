package crypto

import (
	"context"
	"encoding/base64"
	"fmt"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"toolbox/pkg/tool"
)

func run(t *testing.T, id string, input tool.Input, opts map[string]interface{}) (tool.Output, error) {
	t.Helper()
	r := tool.NewRegistry()
	require.NoError(t, Register(r))
	return tool.NewExecutor(r).Execute(context.Background(), id, input, opts, nil)
}

func TestRegister(t *testing.T) {
	r := tool.NewRegistry()
	require.NoError(t, Register(r))
	assert.Equal(t, 7, r.Count())
}

func TestBase64Encode(t *testing.T) {
	t.Run("standard", func(t *testing.T) {
		out, err := run(t, "crypto.base64-encode", tool.TextInput("hello world"), nil)
		require.NoError(t, err)
		assert.Equal(t, "aGVsbG8gd29ybGQ=", out.Text)
	})

	t.Run("url safe has no padding", func(t *testing.T) {
		out, err := run(t, "crypto.base64-encode", tool.TextInput("hello world"),
			map[string]interface{}{"urlSafe": true})
		require.NoError(t, err)
		assert.Equal(t, "aGVsbG8gd29ybGQ", out.Text)
		assert.NotContains(t, out.Text, "=")
	})

	t.Run("empty input", func(t *testing.T) {
		_, err := run(t, "crypto.base64-encode", tool.TextInput(""), nil)
		require.Error(t, err)
		assert.Equal(t, "Please enter some text", err.Error())
	})
}

func TestBase64Decode(t *testing.T) {
	t.Run("standard", func(t *testing.T) {
		out, err := run(t, "crypto.base64-decode", tool.TextInput("aGVsbG8gd29ybGQ="), nil)
		require.NoError(t, err)
		assert.Equal(t, "hello world", out.Text)
	})

	t.Run("url safe without padding", func(t *testing.T) {
		out, err := run(t, "crypto.base64-decode", tool.TextInput("aGVsbG8_IQ"), nil)
		require.NoError(t, err)
		assert.Equal(t, "hello?!", out.Text)
	})

	t.Run("invalid input", func(t *testing.T) {
		_, err := run(t, "crypto.base64-decode", tool.TextInput("!!!not base64!!!"), nil)
		require.Error(t, err)
		assert.Equal(t, "Invalid Base64 string", err.Error())
	})
}

func TestURLEncodeDecode(t *testing.T) {
	t.Run("encode reserved characters", func(t *testing.T) {
		out, err := run(t, "crypto.url-encode", tool.TextInput("a b&c=d?e"), nil)
		require.NoError(t, err)
		assert.Equal(t, "a%20b%26c%3Dd%3Fe", out.Text)
	})

	t.Run("unreserved characters pass through", func(t *testing.T) {
		out, err := run(t, "crypto.url-encode", tool.TextInput("a-b_c.d!e~f*g'h(i)j"), nil)
		require.NoError(t, err)
		assert.Equal(t, "a-b_c.d!e~f*g'h(i)j", out.Text)
	})

	t.Run("decode", func(t *testing.T) {
		out, err := run(t, "crypto.url-decode", tool.TextInput("a%20b%26c"), nil)
		require.NoError(t, err)
		assert.Equal(t, "a b&c", out.Text)
	})

	t.Run("decode invalid escape", func(t *testing.T) {
		_, err := run(t, "crypto.url-decode", tool.TextInput("bad%zz"), nil)
		require.Error(t, err)
		assert.Equal(t, "Invalid URL-encoded text", err.Error())
	})
}

func TestHash(t *testing.T) {
	textInput := func(s string) tool.Input {
		return tool.FieldsInput(map[string]tool.Field{"text": {Text: s}})
	}

	t.Run("sha256 default", func(t *testing.T) {
		out, err := run(t, "crypto.hash", textInput("hello"), nil)
		require.NoError(t, err)
		assert.Equal(t, "2cf24dba5fb0a30e26e83b2ac5b9e29e1b161e5c1fa7425e73043362938b9824", out.Text)
	})

	t.Run("sha1", func(t *testing.T) {
		out, err := run(t, "crypto.hash", textInput("hello"),
			map[string]interface{}{"algorithm": "SHA-1"})
		require.NoError(t, err)
		assert.Equal(t, "aaf4c61ddcc5e8a2dabede0f3b482cd9aea9434d", out.Text)
	})

	t.Run("sha512 length", func(t *testing.T) {
		out, err := run(t, "crypto.hash", textInput("hello"),
			map[string]interface{}{"algorithm": "SHA-512"})
		require.NoError(t, err)
		assert.Len(t, out.Text, 128)
	})

	t.Run("uppercase option", func(t *testing.T) {
		out, err := run(t, "crypto.hash", textInput("hello"),
			map[string]interface{}{"uppercase": true})
		require.NoError(t, err)
		assert.Equal(t, strings.ToUpper("2cf24dba5fb0a30e26e83b2ac5b9e29e1b161e5c1fa7425e73043362938b9824"), out.Text)
	})

	t.Run("file input hashes file bytes", func(t *testing.T) {
		input := tool.FieldsInput(map[string]tool.Field{
			"file": {Files: []tool.File{{Name: "f.txt", Data: []byte("hello")}}},
		})
		out, err := run(t, "crypto.hash", input, nil)
		require.NoError(t, err)
		assert.Equal(t, "2cf24dba5fb0a30e26e83b2ac5b9e29e1b161e5c1fa7425e73043362938b9824", out.Text)
	})

	t.Run("neither text nor file", func(t *testing.T) {
		_, err := run(t, "crypto.hash", tool.FieldsInput(map[string]tool.Field{}), nil)
		require.Error(t, err)
		assert.Equal(t, "Please provide text or a file", err.Error())
	})
}

func TestJWTDecode(t *testing.T) {
	makeJWT := func(payload string) string {
		header := base64.RawURLEncoding.EncodeToString([]byte(`{"alg":"HS256","typ":"JWT"}`))
		body := base64.RawURLEncoding.EncodeToString([]byte(payload))
		return header + "." + body + ".signature"
	}

	t.Run("sections rendered", func(t *testing.T) {
		out, err := run(t, "crypto.jwt-decode", tool.TextInput(makeJWT(`{"sub":"alice"}`)), nil)
		require.NoError(t, err)
		assert.Contains(t, out.Text, "HEADER")
		assert.Contains(t, out.Text, `"alg": "HS256"`)
		assert.Contains(t, out.Text, "PAYLOAD")
		assert.Contains(t, out.Text, `"sub": "alice"`)
		assert.NotContains(t, out.Text, "TIMESTAMPS")
	})

	t.Run("expired token", func(t *testing.T) {
		past := time.Now().Add(-50 * time.Hour).Unix()
		out, err := run(t, "crypto.jwt-decode",
			tool.TextInput(makeJWT(fmt.Sprintf(`{"exp":%d}`, past))), nil)
		require.NoError(t, err)
		assert.Contains(t, out.Text, "TIMESTAMPS")
		assert.Contains(t, out.Text, "❌ EXPIRED - expired 2d 2h ago")
	})

	t.Run("valid token", func(t *testing.T) {
		future := time.Now().Add(30 * time.Hour).Unix()
		out, err := run(t, "crypto.jwt-decode",
			tool.TextInput(makeJWT(fmt.Sprintf(`{"iat":1600000000,"exp":%d}`, future))), nil)
		require.NoError(t, err)
		assert.Contains(t, out.Text, "Issued At (iat):    2020-09-13T12:26:40.000Z")
		assert.Contains(t, out.Text, "✅ Valid - expires in 1d 5h")
	})

	t.Run("wrong part count", func(t *testing.T) {
		_, err := run(t, "crypto.jwt-decode", tool.TextInput("onlyone.twoparts"), nil)
		require.Error(t, err)
		assert.Equal(t, "Invalid JWT format. Expected 3 parts separated by dots.", err.Error())
	})

	t.Run("undecodable payload", func(t *testing.T) {
		_, err := run(t, "crypto.jwt-decode", tool.TextInput("eyJhbGciOiJIUzI1NiJ9.!!!.sig"), nil)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "Invalid JWT payload")
	})
}

func TestUUID(t *testing.T) {
	uuidPattern := regexp.MustCompile(`^[0-9a-f]{8}-[0-9a-f]{4}-4[0-9a-f]{3}-[0-9a-f]{4}-[0-9a-f]{12}$`)

	t.Run("single", func(t *testing.T) {
		out, err := run(t, "crypto.uuid", tool.Input{}, nil)
		require.NoError(t, err)
		assert.Regexp(t, uuidPattern, out.Text)
	})

	t.Run("count", func(t *testing.T) {
		out, err := run(t, "crypto.uuid", tool.Input{}, map[string]interface{}{"count": 5})
		require.NoError(t, err)
		lines := strings.Split(out.Text, "\n")
		require.Len(t, lines, 5)
		seen := make(map[string]bool)
		for _, l := range lines {
			assert.Regexp(t, uuidPattern, l)
			seen[l] = true
		}
		assert.Len(t, seen, 5)
	})

	t.Run("no dashes and uppercase", func(t *testing.T) {
		out, err := run(t, "crypto.uuid", tool.Input{},
			map[string]interface{}{"noDashes": true, "uppercase": true})
		require.NoError(t, err)
		assert.Len(t, out.Text, 32)
		assert.NotContains(t, out.Text, "-")
		assert.Equal(t, strings.ToUpper(out.Text), out.Text)
	})

	t.Run("count bounds", func(t *testing.T) {
		_, err := run(t, "crypto.uuid", tool.Input{}, map[string]interface{}{"count": 1000})
		require.Error(t, err)
		assert.True(t, tool.IsKind(err, tool.KindInvalidOptions))
	})
}
