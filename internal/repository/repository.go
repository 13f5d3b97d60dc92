package repository

import (
	"context"

	"gorm.io/gorm"
)

// Repository aggregates all data-access interfaces.
type Repository struct {
	Employee          EmployeeRepository
	Contract          ContractRepository
	Transaction       TransactionRepository
	TransactionDetail TransactionDetailRepository
	Account           AccountRepository
	AppUser           AppUserRepository

	db *gorm.DB
}

// NewRepository builds the Repository aggregate on one database handle.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{
		Employee:          NewEmployeeRepo(db),
		Contract:          NewContractRepo(db),
		Transaction:       NewTransactionRepo(db),
		TransactionDetail: NewTransactionDetailRepo(db),
		Account:           NewAccountRepo(db),
		AppUser:           NewAppUserRepo(db),
		db:                db,
	}
}

// WithTx runs fn inside a single database transaction; every repository the
// callback sees is bound to that transaction. Unit tests build the aggregate
// without a database handle, in which case fn runs against the repositories
// directly.
func (r *Repository) WithTx(ctx context.Context, fn func(*Repository) error) error {
	if r.db == nil {
		return fn(r)
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewRepository(tx))
	})
}
