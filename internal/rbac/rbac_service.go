package rbac

import (
	"sync"

	"github.com/casbin/casbin/v2"
	casbinmodel "github.com/casbin/casbin/v2/model"
)

// Application roles carried in the JWT. MANAGER is the site owner, OFFICE the
// administrative staff, FOREMAN the on-site team lead.
const (
	RoleManager = "MANAGER"
	RoleOffice  = "OFFICE"
	RoleForeman = "FOREMAN"
)

const modelText = `
[request_definition]
r = sub, obj, act

[policy_definition]
p = sub, obj, act

[role_definition]
g = _, _

[policy_effect]
e = some(where (p.eft == allow))

[matchers]
m = g(r.sub, p.sub) && r.obj == p.obj && r.act == p.act
`

// policies is the fixed permission table. Single-tenant, so policies live in
// code instead of a per-company store.
var policies = [][]string{
	{RoleManager, "worker", "write"},
	{RoleManager, "job", "write"},
	{RoleManager, "tool", "write"},
	{RoleManager, "closing", "write"},
	{RoleManager, "closing", "pay"},
	{RoleOffice, "worker", "write"},
	{RoleOffice, "job", "write"},
	{RoleOffice, "client", "write"},
	{RoleOffice, "closing", "write"},
	{RoleForeman, "timesheet", "write"},
	{RoleForeman, "batch", "write"},
	{RoleForeman, "tool", "write"},
	{RoleForeman, "fiscalization", "write"},
}

// groupings give higher roles the lower roles' permissions.
var groupings = [][]string{
	{RoleManager, RoleOffice},
	{RoleOffice, RoleForeman},
}

//go:generate mockgen -source=rbac_service.go -destination=mock/rbac_service_mock.go -package=mock
type Service interface {
	Enforce(role, resource, action string) (bool, error)
}

type service struct {
	enforcer *casbin.Enforcer
	mu       sync.Mutex
}

func NewService() (Service, error) {
	m, err := casbinmodel.NewModelFromString(modelText)
	if err != nil {
		return nil, err
	}

	enforcer, err := casbin.NewEnforcer(m)
	if err != nil {
		return nil, err
	}

	for _, p := range policies {
		if _, err := enforcer.AddPolicy(p[0], p[1], p[2]); err != nil {
			return nil, err
		}
	}
	for _, g := range groupings {
		if _, err := enforcer.AddGroupingPolicy(g[0], g[1]); err != nil {
			return nil, err
		}
	}

	return &service{enforcer: enforcer}, nil
}

func (s *service) Enforce(role, resource, action string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.enforcer.Enforce(role, resource, action)
}
