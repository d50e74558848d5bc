package role

const (
	Admin    = "ADMIN"
	Operator = "OPERATOR"
)

const (
	ResourcePatient = "patient"
	ResourceVisit   = "visit"

	ActionView   = "view"
	ActionCreate = "create"
	ActionDelete = "delete"
)

type Role struct {
	RoleName   string              `json:"roleName" bson:"roleName"`
	RoleCode   string              `json:"roleCode" bson:"roleCode"`
	Privileges map[string][]string `json:"privileges" bson:"privileges"`
}

var roles = map[string]Role{
	Admin: {
		RoleName: "Administrator",
		RoleCode: Admin,
		Privileges: map[string][]string{
			ResourcePatient: {ActionView, ActionCreate},
			ResourceVisit:   {ActionView, ActionCreate, ActionDelete},
		},
	},
	Operator: {
		RoleName: "Clinic Operator",
		RoleCode: Operator,
		Privileges: map[string][]string{
			ResourcePatient: {ActionView, ActionCreate},
			ResourceVisit:   {ActionView, ActionCreate},
		},
	},
}

func Lookup(code string) (Role, bool) {
	r, ok := roles[code]
	return r, ok
}

func HasAccess(code, resource, action string) bool {
	r, ok := roles[code]
	if !ok {
		return false
	}
	for _, a := range r.Privileges[resource] {
		if a == action {
			return true
		}
	}
	return false
}
