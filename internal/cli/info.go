package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"toolbox/pkg/tool"
)

var infoCmd = &cobra.Command{
	Use:   "info <tool-id>",
	Short: "Show details for a tool",
	Long:  `Show the full descriptor for one tool: input shape, output shape, and options.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		reg, err := getRegistry()
		if err != nil {
			return err
		}

		t := reg.Get(args[0])
		if t == nil {
			return tool.ErrNotFound(args[0])
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "%s (%s)\n", t.Title, t.ID)
		fmt.Fprintf(out, "Category: %s\n", t.Category.Label())
		fmt.Fprintf(out, "%s\n", t.Description)
		if len(t.Keywords) > 0 {
			fmt.Fprintf(out, "Keywords: %s\n", strings.Join(t.Keywords, ", "))
		}

		fmt.Fprintf(out, "\nInput: %s", t.Input.Kind)
		if t.Input.Multiple {
			fmt.Fprint(out, " (multiple)")
		}
		fmt.Fprintln(out)
		for _, elem := range t.Input.Elements {
			req := "required"
			if elem.Optional {
				req = "optional"
			}
			fmt.Fprintf(out, "  %s: %s (%s)\n", elem.Name, elem.Kind, req)
		}

		fmt.Fprintf(out, "Output: %s", t.Output.Kind)
		if t.Output.Filename != "" {
			fmt.Fprintf(out, " (%s)", t.Output.Filename)
		}
		fmt.Fprintln(out)

		if len(t.Options) > 0 {
			fmt.Fprintln(out, "\nOptions:")
			for _, opt := range t.Options {
				fmt.Fprintf(out, "  %s (%s, default %v)%s\n", opt.Name, opt.Type, opt.Default, optionConstraints(opt))
				if opt.Description != "" {
					fmt.Fprintf(out, "      %s\n", opt.Description)
				}
			}
		}
		return nil
	},
}

func optionConstraints(opt tool.OptionField) string {
	var parts []string
	if len(opt.Enum) > 0 {
		parts = append(parts, "one of "+strings.Join(opt.Enum, "|"))
	}
	if opt.Min != nil && opt.Max != nil {
		parts = append(parts, fmt.Sprintf("%v to %v", *opt.Min, *opt.Max))
	} else if opt.Min != nil {
		parts = append(parts, fmt.Sprintf("min %v", *opt.Min))
	} else if opt.Max != nil {
		parts = append(parts, fmt.Sprintf("max %v", *opt.Max))
	}
	if opt.MaxLength != nil {
		parts = append(parts, fmt.Sprintf("max length %d", *opt.MaxLength))
	}
	if len(parts) == 0 {
		return ""
	}
	return " [" + strings.Join(parts, ", ") + "]"
}

func init() {
	rootCmd.AddCommand(infoCmd)
}
