package authz

// Principal identifies the authenticated caller. Core services take it
// explicitly instead of reading ambient session state so they stay testable
// without any web machinery.
type Principal struct {
	Username string
	Role     string
}

// Roles recognised by the system. Guards themselves never log in; these are
// office staff roles.
const (
	RoleSupervisor     = "Supervisor"
	RoleBSO            = "Business Support Officer"
	RoleOpsManager     = "Ops Manager"
	RoleHROfficer      = "HR Officer"
	RoleFinance        = "Finance"
	RoleTraining       = "Training Officer"
	RoleGeneralManager = "General Manager"
)

// Objects and actions used in capability checks.
const (
	ObjectAttendance = "attendance"
	ObjectRequest    = "request"

	ActionWrite  = "write"
	ActionUpdate = "update"
)
