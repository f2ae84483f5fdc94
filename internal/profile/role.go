package profile

// Role is the closed set of authorization tiers carried in the "role" custom claim.
type Role string

const (
	RoleRegular Role = "regular"
	RoleStaff   Role = "staff"
)

// ClassifyRole maps a stored role attribute onto a claim role. Only the string "staff"
// grants RoleStaff; every other value, including unknown strings, null and non-string
// values, falls through to RoleRegular.
func ClassifyRole(value any) Role {
	if s, ok := value.(string); ok && Role(s) == RoleStaff {
		return RoleStaff
	}
	return RoleRegular
}

// Claims returns the full custom claims object for the role.
func (r Role) Claims() map[string]interface{} {
	return map[string]interface{}{FieldRole: string(r)}
}

func (r Role) String() string {
	return string(r)
}
