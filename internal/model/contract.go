package model

// Contract is a tracked document, stored in the contracts table.
//
// ContractNumber is the natural key used for search; it is stored trimmed.
// CurrentHolderID is only ever written inside the transfer transaction, so it
// cannot drift from the transfer history. Status is the display label
// "مع <holder>", recomputed on every transfer.
type Contract struct {
	ID              string  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	ContractNumber  string  `gorm:"type:varchar(100);not null;uniqueIndex"         json:"contract_number"`
	CurrentHolderID *string `gorm:"type:uuid"                                      json:"current_holder_id,omitempty"`
	Status          string  `gorm:"type:varchar(300);not null;default:''"          json:"status"`
	VersionedModel

	CurrentHolder *Employee `gorm:"foreignKey:CurrentHolderID;references:ID" json:"current_holder,omitempty"`
}

// TableName sets the table name.
func (Contract) TableName() string { return "contracts" }

// HolderStatus builds the status label shown next to a contract.
func HolderStatus(holderName string) string {
	return "مع " + holderName
}
