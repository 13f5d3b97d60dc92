package model

// Application roles.
const (
	RoleManager  = "manager"
	RoleEmployee = "employee"
	RoleAuditor  = "auditor"
)

// Permissions granted to each role. A static table, not a state machine.
var RolePermissions = map[string][]string{
	RoleManager:  {"read", "write", "delete", "admin"},
	RoleEmployee: {"read", "write"},
	RoleAuditor:  {"read"},
}

// RoleHasPermission reports whether role grants permission.
func RoleHasPermission(role, permission string) bool {
	for _, p := range RolePermissions[role] {
		if p == permission {
			return true
		}
	}
	return false
}

// AppUser is the application profile attached to an account, stored in the
// app_users table. Created lazily on first successful login.
type AppUser struct {
	UserID     string  `gorm:"type:uuid;primaryKey"                        json:"user_id"`
	Role       string  `gorm:"type:varchar(20);not null;default:'employee'" json:"role"`
	EmployeeID *string `gorm:"type:uuid"                                   json:"employee_id,omitempty"`
	IsActive   bool    `gorm:"not null;default:true"                       json:"is_active"`
	BaseModel

	Employee *Employee `gorm:"foreignKey:EmployeeID;references:ID" json:"employee,omitempty"`
}

// TableName sets the table name.
func (AppUser) TableName() string { return "app_users" }
