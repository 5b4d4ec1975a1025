package tool

// InputKind describes what shape of input a tool accepts.
type InputKind string

const (
	InputText   InputKind = "text"
	InputFile   InputKind = "file"
	InputFields InputKind = "fields"
	InputNone   InputKind = "none"
)

// OutputKind describes what shape of output a tool produces.
type OutputKind string

const (
	OutputText OutputKind = "text"
	OutputFile OutputKind = "file"
)

// ElementSpec declares one named sub-input of a multi-part input.
type ElementSpec struct {
	Name     string    `json:"name"`
	Kind     InputKind `json:"kind"`
	Label    string    `json:"label,omitempty"`
	Optional bool      `json:"optional,omitempty"`
}

// InputSpec declares the input shape a tool accepts.
type InputSpec struct {
	Kind        InputKind     `json:"kind"`
	Accept      []string      `json:"accept,omitempty"`
	Multiple    bool          `json:"multiple,omitempty"`
	Label       string        `json:"label,omitempty"`
	Placeholder string        `json:"placeholder,omitempty"`
	Elements    []ElementSpec `json:"elements,omitempty"`
}

// OutputSpec declares the output shape a tool produces.
type OutputSpec struct {
	Kind     OutputKind `json:"kind"`
	MIME     string     `json:"mime,omitempty"`
	Filename string     `json:"filename,omitempty"`
}

// OptionType is the declared type of an option field.
type OptionType string

const (
	OptionString  OptionType = "string"
	OptionNumber  OptionType = "number"
	OptionInteger OptionType = "integer"
	OptionBoolean OptionType = "boolean"
)

// OptionField declares one named option of a tool: type, bounds, default.
// Every field carries a default so that a caller supplying no options is
// always valid.
type OptionField struct {
	Name        string      `json:"name"`
	Type        OptionType  `json:"type"`
	Description string      `json:"description"`
	Enum        []string    `json:"enum,omitempty"`
	Min         *float64    `json:"min,omitempty"`
	Max         *float64    `json:"max,omitempty"`
	MaxLength   *int        `json:"maxLength,omitempty"`
	Default     interface{} `json:"default"`
}

// RunFunc is the execution function bound to a tool's declared schema.
// Options have already been default-merged and validated when it runs.
type RunFunc func(rc *RunContext, input Input, opts Options) (Output, error)

// Tool is the static descriptor of one tool: metadata, input/output
// shape, options schema, and execution function. Created once at startup
// and immutable thereafter.
type Tool struct {
	ID          string        `json:"id"`
	Title       string        `json:"title"`
	Category    Category      `json:"category"`
	Description string        `json:"description"`
	Keywords    []string      `json:"keywords,omitempty"`
	Input       InputSpec     `json:"input"`
	Output      OutputSpec    `json:"output"`
	Options     []OptionField `json:"options,omitempty"`
	Run         RunFunc       `json:"-"`
}

// FloatPtr returns a pointer to a float64 value, for option bounds.
func FloatPtr(v float64) *float64 {
	return &v
}

// IntPtr returns a pointer to an int value, for option bounds.
func IntPtr(v int) *int {
	return &v
}

// Defaults returns the declared default for every option field.
func (t *Tool) Defaults() map[string]interface{} {
	defaults := make(map[string]interface{}, len(t.Options))
	for _, field := range t.Options {
		defaults[field.Name] = field.Default
	}
	return defaults
}
