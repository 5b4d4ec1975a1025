// Package tool defines the contract for stateless transformation tools
// and the registry that catalogs them.
//
// Invariants:
// - Tool ids are unique; re-registering an id overwrites with a warning.
// - Options are schema-validated and default-merged before execution.
// - A tool either fully succeeds or fully fails; partial output is never
//   returned alongside an error.
//
// Usage:
//
//	reg := tool.NewRegistry()
//	_ = reg.Register(tool.Tool{
//		ID: "text.echo",
//		Title: "Echo",
//		Category: tool.CategoryText,
//		Description: "Echo input back",
//		Input: tool.InputSpec{Kind: tool.InputText},
//		Output: tool.OutputSpec{Kind: tool.OutputText},
//		Run: func(rc *tool.RunContext, in tool.Input, opts tool.Options) (tool.Output, error) {
//			return tool.TextOutput(in.Text), nil
//		},
//	})
package tool
