package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"toolbox/pkg/tool"
)

var (
	runText       string
	runFiles      []string
	runFields     []string
	runFieldFiles []string
	runOpts       []string
	runOptsJSON   string
	runOut        string
	runTimeout    time.Duration
	runProgress   bool
)

var runCmd = &cobra.Command{
	Use:   "run <tool-id>",
	Short: "Run a tool",
	Long: `Run a tool against the given input and print or save its output.

Text input comes from --input or stdin. File input comes from one or more
--input-file flags. Multi-part input comes from --field name=value and
--field-file name=path flags. Options are passed as --opt key=value or as
a single --options JSON object; omitted options take their defaults.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		reg, err := getRegistry()
		if err != nil {
			return err
		}

		id := args[0]
		t := reg.Get(id)
		if t == nil {
			return tool.ErrNotFound(id)
		}

		input, err := buildInput(cmd, t)
		if err != nil {
			return err
		}

		supplied, err := buildOptions(id)
		if err != nil {
			return err
		}

		ctx := cmd.Context()
		if runTimeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, runTimeout)
			defer cancel()
		}

		var sink tool.ProgressSink
		if runProgress {
			sink = tool.ProgressFunc(func(p tool.Progress) {
				if p.Percent != nil {
					fmt.Fprintf(cmd.ErrOrStderr(), "[%3.0f%%] %s\n", *p.Percent, p.Message)
				} else {
					fmt.Fprintf(cmd.ErrOrStderr(), "%s\n", p.Message)
				}
			})
		}

		out, err := tool.NewExecutor(reg).Execute(ctx, id, input, supplied, sink)
		if err != nil {
			return err
		}

		return writeOutput(cmd, out)
	},
}

// buildInput assembles the input payload from flags according to the
// tool's declared input kind.
func buildInput(cmd *cobra.Command, t *tool.Tool) (tool.Input, error) {
	switch t.Input.Kind {
	case tool.InputText:
		text := runText
		if text == "" || text == "-" {
			data, err := io.ReadAll(cmd.InOrStdin())
			if err != nil {
				return tool.Input{}, fmt.Errorf("failed to read stdin: %w", err)
			}
			text = string(data)
		}
		return tool.TextInput(text), nil

	case tool.InputFile:
		files := make([]tool.File, 0, len(runFiles))
		for _, path := range runFiles {
			f, err := readFile(path)
			if err != nil {
				return tool.Input{}, err
			}
			files = append(files, f)
		}
		return tool.FileInput(files...), nil

	case tool.InputFields:
		fields := make(map[string]tool.Field)
		for _, pair := range runFields {
			name, value, ok := strings.Cut(pair, "=")
			if !ok {
				return tool.Input{}, fmt.Errorf("invalid --field %q, expected name=value", pair)
			}
			field := fields[name]
			field.Text = value
			fields[name] = field
		}
		for _, pair := range runFieldFiles {
			name, path, ok := strings.Cut(pair, "=")
			if !ok {
				return tool.Input{}, fmt.Errorf("invalid --field-file %q, expected name=path", pair)
			}
			f, err := readFile(path)
			if err != nil {
				return tool.Input{}, err
			}
			field := fields[name]
			field.Files = append(field.Files, f)
			fields[name] = field
		}
		return tool.FieldsInput(fields), nil

	default:
		return tool.Input{}, nil
	}
}

func readFile(path string) (tool.File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return tool.File{}, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return tool.File{Name: filepath.Base(path), Data: data}, nil
}

// buildOptions merges, lowest priority first: config file tool defaults,
// the --options JSON object, and individual --opt flags.
func buildOptions(id string) (map[string]interface{}, error) {
	supplied := make(map[string]interface{})

	if cfg != nil {
		for k, v := range cfg.ToolDefaults[id] {
			supplied[k] = v
		}
	}

	if runOptsJSON != "" {
		var parsed map[string]interface{}
		if err := json.Unmarshal([]byte(runOptsJSON), &parsed); err != nil {
			return nil, fmt.Errorf("invalid --options JSON: %w", err)
		}
		for k, v := range parsed {
			supplied[k] = v
		}
	}

	for _, pair := range runOpts {
		key, value, ok := strings.Cut(pair, "=")
		if !ok {
			return nil, fmt.Errorf("invalid --opt %q, expected key=value", pair)
		}
		supplied[key] = coerceOption(value)
	}

	return supplied, nil
}

// coerceOption interprets a flag value as JSON when it parses as a
// scalar, so --opt indent=4 and --opt sortKeys=true carry their
// natural types. Anything else stays a string.
func coerceOption(value string) interface{} {
	var parsed interface{}
	if err := json.Unmarshal([]byte(value), &parsed); err == nil {
		switch parsed.(type) {
		case bool, float64, nil:
			return parsed
		}
	}
	return value
}

func writeOutput(cmd *cobra.Command, out tool.Output) error {
	if out.Kind == tool.OutputText {
		fmt.Fprintln(cmd.OutOrStdout(), out.Text)
		return nil
	}

	path := runOut
	if path == "" {
		path = out.Filename
	}
	if err := os.WriteFile(path, out.Data, 0o644); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s (%d bytes, %s)\n", path, len(out.Data), out.MIME)
	return nil
}

func init() {
	runCmd.Flags().StringVarP(&runText, "input", "i", "", "text input (default stdin)")
	runCmd.Flags().StringSliceVarP(&runFiles, "input-file", "f", nil, "input file path (repeatable)")
	runCmd.Flags().StringArrayVar(&runFields, "field", nil, "named text input as name=value (repeatable)")
	runCmd.Flags().StringArrayVar(&runFieldFiles, "field-file", nil, "named file input as name=path (repeatable)")
	runCmd.Flags().StringArrayVarP(&runOpts, "opt", "o", nil, "tool option as key=value (repeatable)")
	runCmd.Flags().StringVar(&runOptsJSON, "options", "", "tool options as a JSON object")
	runCmd.Flags().StringVar(&runOut, "out", "", "output file path for file-producing tools")
	runCmd.Flags().DurationVar(&runTimeout, "timeout", 0, "cancel the run after this duration")
	runCmd.Flags().BoolVar(&runProgress, "progress", false, "print progress updates to stderr")
	rootCmd.AddCommand(runCmd)
}
