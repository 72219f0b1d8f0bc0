//go:build tools

// Pins the code generators invoked through go:generate.
package tools

import (
	_ "go.uber.org/mock/mockgen"
)
