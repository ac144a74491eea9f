package service

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/casbin/casbin/v2"
	"github.com/casbin/casbin/v2/model"
	fileadapter "github.com/casbin/casbin/v2/persist/file-adapter"
	"github.com/sirupsen/logrus"

	"sales-pulse/models"
	"sales-pulse/repository"
)

// ErrForbidden is returned when a role lacks the right for an action
var ErrForbidden = errors.New("forbidden")

// rightsModel grants an action on a menu to a role; everything else is denied
const rightsModel = `
[request_definition]
r = sub, obj, act

[policy_definition]
p = sub, obj, act

[policy_effect]
e = some(where (p.eft == allow))

[matchers]
m = r.sub == p.sub && r.obj == p.obj && r.act == p.act
`

// PermissionServiceInterface answers capability questions for the presentation layer
type PermissionServiceInterface interface {
	CanPerform(role, menu, action string) bool
	Rights(role string) []models.UserRight
}

// PermissionService enforces the role/menu/action rights matrix with casbin
type PermissionService struct {
	mu       sync.RWMutex
	enforcer *casbin.Enforcer
	enabled  bool
	logger   *logrus.Entry
}

var _ PermissionServiceInterface = (*PermissionService)(nil)

// NewPermissionService builds the enforcer from rights rows
func NewPermissionService(rights []models.UserRight, logger *logrus.Entry) (*PermissionService, error) {
	s := &PermissionService{enabled: true, logger: logger}
	if err := s.Reload(rights); err != nil {
		return nil, err
	}
	return s, nil
}

// NewPermissionServiceFromFile loads "p, role, menu, action" lines from a CSV policy file
func NewPermissionServiceFromFile(policyPath string, logger *logrus.Entry) (*PermissionService, error) {
	m, err := model.NewModelFromString(rightsModel)
	if err != nil {
		return nil, fmt.Errorf("authz: failed to parse model: %w", err)
	}
	enf, err := casbin.NewEnforcer(m, fileadapter.NewAdapter(policyPath))
	if err != nil {
		return nil, fmt.Errorf("authz: failed to load policies from %s: %w", policyPath, err)
	}
	return &PermissionService{enforcer: enf, enabled: true, logger: logger}, nil
}

// NewDisabledPermissionService allows everything
func NewDisabledPermissionService(logger *logrus.Entry) *PermissionService {
	return &PermissionService{enabled: false, logger: logger}
}

// LoadPermissionService reads the rights table and builds the service
func LoadPermissionService(ctx context.Context, repo repository.UserRightRepositoryInterface, logger *logrus.Entry) (*PermissionService, error) {
	rights, err := repo.ListRights(ctx)
	if err != nil {
		return nil, fmt.Errorf("authz: failed to load rights: %w", err)
	}
	return NewPermissionService(rights, logger)
}

// Reload replaces every policy with the given rights
func (s *PermissionService) Reload(rights []models.UserRight) error {
	m, err := model.NewModelFromString(rightsModel)
	if err != nil {
		return fmt.Errorf("authz: failed to parse model: %w", err)
	}
	enf, err := casbin.NewEnforcer(m)
	if err != nil {
		return fmt.Errorf("authz: failed to initialize enforcer: %w", err)
	}

	var policies [][]string
	for _, right := range rights {
		for _, action := range right.Allowed() {
			policies = append(policies, []string{right.Role, right.Menu, action})
		}
	}
	if len(policies) > 0 {
		if _, err := enf.AddPolicies(policies); err != nil {
			return fmt.Errorf("authz: failed to add policies: %w", err)
		}
	}

	s.mu.Lock()
	s.enforcer = enf
	s.mu.Unlock()

	if s.logger != nil {
		s.logger.WithField("policies", len(policies)).Info("🔐 PermissionService: rights loaded")
	}
	return nil
}

// CanPerform reports whether role may perform action on menu
func (s *PermissionService) CanPerform(role, menu, action string) bool {
	if !s.enabled {
		return true
	}
	if role == "" {
		return false
	}

	s.mu.RLock()
	enf := s.enforcer
	s.mu.RUnlock()

	ok, err := enf.Enforce(role, menu, action)
	if err != nil {
		if s.logger != nil {
			s.logger.WithError(err).WithFields(logrus.Fields{
				"role":   role,
				"menu":   menu,
				"action": action,
			}).Warn("authz: enforce failed, denying")
		}
		return false
	}
	return ok
}

// Authorize returns ErrForbidden when the role lacks the right
func (s *PermissionService) Authorize(role, menu, action string) error {
	if s.CanPerform(role, menu, action) {
		return nil
	}
	return fmt.Errorf("%w: role %q cannot %s %s", ErrForbidden, role, action, menu)
}

// Rights lists the rights of role on every known menu, including empty ones
func (s *PermissionService) Rights(role string) []models.UserRight {
	rights := make([]models.UserRight, 0, len(models.Menus))
	for _, menu := range models.Menus {
		right := models.UserRight{Role: role, Menu: menu}
		for _, action := range models.Actions {
			if s.CanPerform(role, menu, action) {
				right.Grant(action)
			}
		}
		rights = append(rights, right)
	}
	return rights
}
