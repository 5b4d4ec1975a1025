// Package tools wires every built-in tool package into a registry.
package tools

import (
	"fmt"

	"toolbox/pkg/tool"
	"toolbox/pkg/tools/archive"
	"toolbox/pkg/tools/crypto"
	"toolbox/pkg/tools/dev"
	"toolbox/pkg/tools/difftools"
	"toolbox/pkg/tools/format"
	"toolbox/pkg/tools/image"
	"toolbox/pkg/tools/text"
	"toolbox/pkg/tools/timetools"
)

// RegisterBuiltin registers every built-in tool.
func RegisterBuiltin(r *tool.Registry) error {
	registrars := []func(*tool.Registry) error{
		text.Register,
		format.Register,
		dev.Register,
		crypto.Register,
		timetools.Register,
		difftools.Register,
		archive.Register,
		image.Register,
	}
	for _, register := range registrars {
		if err := register(r); err != nil {
			return fmt.Errorf("failed to register built-in tools: %w", err)
		}
	}
	return nil
}
