package domain

import "github.com/google/uuid"

// Identity is the caller on whose behalf a facade operation runs. The
// host supplies the subject id; staff status comes from a verified token.
type Identity struct {
	SubjectID string
	Username  string
	Staff     bool
}

// AuthPayload is the claim set carried inside a staff token.
type AuthPayload struct {
	Username   string   `json:"username"`
	Permission []string `json:"permission"`
}

// PermissionResetState gates reset_student_data.
const PermissionResetState = "codelab.reset_state"

// HasPermission reports whether the payload grants a permission.
func (p AuthPayload) HasPermission(perm string) bool {
	for _, granted := range p.Permission {
		if granted == perm {
			return true
		}
	}
	return false
}

// StaffUser is a staff account able to obtain a privileged token.
type StaffUser struct {
	ID           uuid.UUID `db:"id"`
	UserName     string    `db:"user_name"`
	PasswordHash *string   `db:"password_hash"`
	Role         string    `db:"role"`
}

type StaffUserTable struct {
	ID           string
	UserName     string
	PasswordHash string
	Role         string
}

func GetStaffUserTable() StaffUserTable {
	return StaffUserTable{
		ID:           "id",
		UserName:     "user_name",
		PasswordHash: "password_hash",
		Role:         "role",
	}
}

func (t StaffUserTable) GetTableName() string {
	return "staff_users"
}
