package authz

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGate_AttendanceWriteTier(t *testing.T) {
	gate, err := NewGate()
	assert.NoError(t, err)

	allowed := []string{RoleSupervisor, RoleBSO}
	for _, role := range allowed {
		ok, err := gate.Can(Principal{Username: "u", Role: role}, ObjectAttendance, ActionWrite)
		assert.NoError(t, err)
		assert.True(t, ok, "role %s should hold attendance:write", role)
	}

	denied := []string{RoleOpsManager, RoleHROfficer, RoleFinance, RoleGeneralManager, "Employee", ""}
	for _, role := range denied {
		ok, err := gate.Can(Principal{Username: "u", Role: role}, ObjectAttendance, ActionWrite)
		assert.NoError(t, err)
		assert.False(t, ok, "role %s should not hold attendance:write", role)
	}
}

func TestGate_RequestUpdateTier(t *testing.T) {
	gate, err := NewGate()
	assert.NoError(t, err)

	ok, _ := gate.Enforce(RoleOpsManager, ObjectRequest, ActionUpdate)
	assert.True(t, ok)

	ok, _ = gate.Enforce(RoleSupervisor, ObjectRequest, ActionUpdate)
	assert.False(t, ok)
}
