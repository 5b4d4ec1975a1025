package tool

// File is one named input file.
type File struct {
	Name string
	Data []byte
}

// Field is one named sub-input of a multi-part input.
type Field struct {
	Text  string
	Files []File
}

// Input is the closed union of input payloads. Exactly one of Text,
// Files, or Fields is meaningful, dispatched by the tool's declared
// input kind.
type Input struct {
	Text   string
	Files  []File
	Fields map[string]Field
}

// TextInput wraps a text payload.
func TextInput(text string) Input {
	return Input{Text: text}
}

// FileInput wraps a file-list payload.
func FileInput(files ...File) Input {
	return Input{Files: files}
}

// FieldsInput wraps a multi-part payload.
func FieldsInput(fields map[string]Field) Input {
	return Input{Fields: fields}
}

// validateInput checks an input payload against the tool's declared
// shape: file count constraints and required sub-fields. Semantic
// emptiness (e.g. blank text) stays the tool body's concern so that each
// tool keeps its own user-facing sentence.
func validateInput(t *Tool, input Input) error {
	switch t.Input.Kind {
	case InputFile:
		if len(input.Files) == 0 {
			return ErrInvalidInput("Please select a file.")
		}
		if !t.Input.Multiple && len(input.Files) > 1 {
			return ErrInvalidInput("This tool accepts a single file, but %d were provided.", len(input.Files))
		}
	case InputFields:
		for _, elem := range t.Input.Elements {
			if elem.Optional {
				continue
			}
			field, ok := input.Fields[elem.Name]
			if !ok {
				return ErrInvalidInput("Missing required input %q.", elem.Name)
			}
			if elem.Kind == InputFile && len(field.Files) == 0 {
				return ErrInvalidInput("Missing required file input %q.", elem.Name)
			}
		}
	case InputText, InputNone:
		// Nothing structural to enforce.
	}
	return nil
}
