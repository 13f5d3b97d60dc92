package model

// Department labels used by the seeded roster.
const (
	DepartmentOffice  = "مكتب"
	DepartmentArchive = "أرشيف"
)

// Employee is a staff member documents move between, stored in the employees table.
type Employee struct {
	ID         string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	Name       string `gorm:"type:varchar(255);not null;uniqueIndex"         json:"name"`
	Department string `gorm:"type:varchar(100);not null"                     json:"department"`
	BaseModel
}

// TableName sets the table name.
func (Employee) TableName() string { return "employees" }
