package rbac

import (
	"sort"

	"github.com/casbin/casbin/v2"
	"go.uber.org/zap"
)

//go:generate mockgen -source=rbac_service.go -destination=mock/rbac_service_mock.go -package=mock
type Service interface {
	Enforce(role, resource, action string) (bool, error)
	RolePermissions(role string) (*RolePermissionsResponse, error)
	Roles() []string
}

type service struct {
	enforcer *casbin.Enforcer
	logger   *zap.Logger
}

// NewService loads the static policy table into the enforcer. The table never
// changes after startup, so concurrent Enforce calls need no locking.
func NewService(enforcer *casbin.Enforcer, logger ...*zap.Logger) (Service, error) {
	l := zap.L().Named("rbac.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("rbac.service")
	}

	s := &service{enforcer: enforcer, logger: l}
	if err := s.loadPolicy(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *service) loadPolicy() error {
	s.enforcer.ClearPolicy()

	for child, parents := range inheritance {
		for _, parent := range parents {
			if _, err := s.enforcer.AddGroupingPolicy(child, parent); err != nil {
				return err
			}
		}
	}

	for _, g := range grants {
		if _, err := s.enforcer.AddPolicy(g.Role, g.Resource, g.Action); err != nil {
			return err
		}
	}

	s.logger.Info("policy table loaded",
		zap.Int("grants", len(grants)),
		zap.Int("inheritance_edges", len(inheritance)),
	)
	return nil
}

func (s *service) Enforce(role, resource, action string) (bool, error) {
	allowed, err := s.enforcer.Enforce(role, resource, action)
	if err != nil {
		s.logger.Error("enforce failed",
			zap.String("role", role),
			zap.String("resource", resource),
			zap.String("action", action),
			zap.Error(err),
		)
		return false, err
	}

	s.logger.Debug("enforce",
		zap.String("role", role),
		zap.String("resource", resource),
		zap.String("action", action),
		zap.Bool("allowed", allowed),
	)
	return allowed, nil
}

// RolePermissions returns the effective permissions of a role, inherited
// grants included.
func (s *service) RolePermissions(role string) (*RolePermissionsResponse, error) {
	perms, err := s.enforcer.GetImplicitPermissionsForUser(role)
	if err != nil {
		return nil, err
	}

	resp := &RolePermissionsResponse{
		Role:        role,
		Permissions: make([]PermissionResponse, 0, len(perms)),
	}
	for _, p := range perms {
		resp.Permissions = append(resp.Permissions, PermissionResponse{
			Resource: p[1],
			Action:   p[2],
		})
	}

	sort.Slice(resp.Permissions, func(i, j int) bool {
		a, b := resp.Permissions[i], resp.Permissions[j]
		if a.Resource != b.Resource {
			return a.Resource < b.Resource
		}
		return a.Action < b.Action
	})
	return resp, nil
}

// Roles lists every role present in the policy table.
func (s *service) Roles() []string {
	seen := make(map[string]struct{})
	for _, g := range grants {
		seen[g.Role] = struct{}{}
	}
	for child := range inheritance {
		seen[child] = struct{}{}
	}

	roles := make([]string, 0, len(seen))
	for role := range seen {
		roles = append(roles, role)
	}
	sort.Strings(roles)
	return roles
}
