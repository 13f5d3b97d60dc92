package model

// Account is a login identity, stored in the accounts table.
// Separate from AppUser so the application profile can be created lazily on
// first login without touching the credential store.
type Account struct {
	ID             string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	Email          string `gorm:"type:varchar(255);not null;uniqueIndex"         json:"email"`
	PasswordHash   string `gorm:"type:varchar(255);not null"                     json:"-"`
	EmailConfirmed bool   `gorm:"not null;default:false"                         json:"email_confirmed"`
	BaseModel
}

// TableName sets the table name.
func (Account) TableName() string { return "accounts" }
