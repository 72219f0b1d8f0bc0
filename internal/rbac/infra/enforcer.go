package infra

import (
	"fmt"
	"os"

	"github.com/casbin/casbin/v2"
)

// NewEnforcer loads the casbin model from disk. Grants live in code, not in
// a policy file, so only the model path is needed here.
func NewEnforcer(modelPath string) (*casbin.Enforcer, error) {
	if _, err := os.Stat(modelPath); err != nil {
		return nil, fmt.Errorf("rbac model %s: %w", modelPath, err)
	}

	enforcer, err := casbin.NewEnforcer(modelPath)
	if err != nil {
		return nil, fmt.Errorf("build rbac enforcer: %w", err)
	}
	return enforcer, nil
}
