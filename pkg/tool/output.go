package tool

// Output is the closed union of tool results: text or a binary file
// with MIME type and suggested filename.
type Output struct {
	Kind     OutputKind
	Text     string
	Data     []byte
	MIME     string
	Filename string
}

// TextOutput wraps a text result.
func TextOutput(text string) Output {
	return Output{Kind: OutputText, Text: text}
}

// FileOutput wraps a binary result.
func FileOutput(filename, mime string, data []byte) Output {
	return Output{Kind: OutputFile, Filename: filename, MIME: mime, Data: data}
}
