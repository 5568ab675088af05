package authz

import (
	"github.com/casbin/casbin/v2"
	"github.com/casbin/casbin/v2/model"
)

const rbacModel = `
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

// Gate answers capability questions for a principal. Policies live in code
// rather than a .conf file on disk: the role set is small and fixed.
type Gate struct {
	enforcer *casbin.Enforcer
}

func NewGate() (*Gate, error) {
	m, err := model.NewModelFromString(rbacModel)
	if err != nil {
		return nil, err
	}

	e, err := casbin.NewEnforcer(m)
	if err != nil {
		return nil, err
	}

	// Attendance-write tier: marking, bulk marking, overrides, attendance deletes.
	if _, err := e.AddPolicy("attendance_writer", ObjectAttendance, ActionWrite); err != nil {
		return nil, err
	}
	for _, role := range []string{RoleSupervisor, RoleBSO} {
		if _, err := e.AddGroupingPolicy(role, "attendance_writer"); err != nil {
			return nil, err
		}
	}

	// Office tier: may change the status of staff requests.
	if _, err := e.AddPolicy("request_updater", ObjectRequest, ActionUpdate); err != nil {
		return nil, err
	}
	for _, role := range []string{RoleOpsManager, RoleHROfficer, RoleFinance, RoleTraining, RoleBSO} {
		if _, err := e.AddGroupingPolicy(role, "request_updater"); err != nil {
			return nil, err
		}
	}

	return &Gate{enforcer: e}, nil
}

// Enforce reports whether a subject role may perform act on obj.
func (g *Gate) Enforce(sub, obj, act string) (bool, error) {
	return g.enforcer.Enforce(sub, obj, act)
}

// Can is the Principal-shaped convenience used inside services.
func (g *Gate) Can(p Principal, obj, act string) (bool, error) {
	return g.enforcer.Enforce(p.Role, obj, act)
}
