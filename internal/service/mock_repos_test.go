package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/EngOsamaQazan/Archeef/internal/model"
	"github.com/EngOsamaQazan/Archeef/internal/repository"
	pkgerrors "github.com/EngOsamaQazan/Archeef/pkg/errors"
)

// ── Mock EmployeeRepository ──

type mockEmployeeRepo struct {
	employees map[string]*model.Employee
	idCounter int
	countErr  error
}

func newMockEmployeeRepo() *mockEmployeeRepo {
	return &mockEmployeeRepo{employees: make(map[string]*model.Employee)}
}

func (m *mockEmployeeRepo) Create(_ context.Context, employee *model.Employee) error {
	if employee.ID == "" {
		m.idCounter++
		employee.ID = fmt.Sprintf("emp-%d", m.idCounter)
	}
	employee.CreatedAt = time.Now()
	employee.UpdatedAt = time.Now()
	m.employees[employee.ID] = employee
	return nil
}

func (m *mockEmployeeRepo) GetByID(_ context.Context, id string) (*model.Employee, error) {
	if e, ok := m.employees[id]; ok {
		return e, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockEmployeeRepo) GetByName(_ context.Context, name string) (*model.Employee, error) {
	for _, e := range m.employees {
		if e.Name == name {
			return e, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockEmployeeRepo) List(_ context.Context) ([]model.Employee, error) {
	var result []model.Employee
	for _, e := range m.employees {
		result = append(result, *e)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result, nil
}

func (m *mockEmployeeRepo) Count(_ context.Context) (int64, error) {
	if m.countErr != nil {
		return 0, m.countErr
	}
	return int64(len(m.employees)), nil
}

// ── Mock ContractRepository ──

type mockContractRepo struct {
	contracts map[string]*model.Contract
	idCounter int
	countErr  error
	// conflictOnUpdate makes every holder update fail with a stale
	// version, simulating a concurrent transfer.
	conflictOnUpdate bool
}

func newMockContractRepo() *mockContractRepo {
	return &mockContractRepo{contracts: make(map[string]*model.Contract)}
}

func (m *mockContractRepo) Create(_ context.Context, contract *model.Contract) error {
	if contract.ID == "" {
		m.idCounter++
		contract.ID = fmt.Sprintf("contract-%d", m.idCounter)
	}
	contract.CreatedAt = time.Now()
	contract.UpdatedAt = time.Now()
	cp := *contract
	m.contracts[contract.ID] = &cp
	return nil
}

func (m *mockContractRepo) GetByID(_ context.Context, id string) (*model.Contract, error) {
	if c, ok := m.contracts[id]; ok {
		cp := *c
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockContractRepo) GetByNumber(_ context.Context, number string) (*model.Contract, error) {
	for _, c := range m.contracts {
		if c.ContractNumber == number {
			cp := *c
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockContractRepo) List(_ context.Context, offset, limit int) ([]model.Contract, int64, error) {
	all, _ := m.ListAll(context.Background())
	total := int64(len(all))
	if offset >= len(all) {
		return nil, total, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], total, nil
}

func (m *mockContractRepo) ListAll(_ context.Context) ([]model.Contract, error) {
	var result []model.Contract
	for _, c := range m.contracts {
		result = append(result, *c)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].ContractNumber < result[j].ContractNumber
	})
	return result, nil
}

func (m *mockContractRepo) UpdateHolder(_ context.Context, id, holderID, status string, version int) error {
	if m.conflictOnUpdate {
		return pkgerrors.ErrOptimisticLock
	}
	c, ok := m.contracts[id]
	if !ok || c.Version != version {
		return pkgerrors.ErrOptimisticLock
	}
	c.CurrentHolderID = &holderID
	c.Status = status
	c.Version++
	c.UpdatedAt = time.Now()
	return nil
}

func (m *mockContractRepo) Count(_ context.Context) (int64, error) {
	if m.countErr != nil {
		return 0, m.countErr
	}
	return int64(len(m.contracts)), nil
}

// ── Mock TransactionRepository ──

type mockTransactionRepo struct {
	transactions []*model.Transaction
	details      *mockTransactionDetailRepo
	idCounter    int
	listErr      error
	countErr     error
}

func newMockTransactionRepo(details *mockTransactionDetailRepo) *mockTransactionRepo {
	return &mockTransactionRepo{details: details}
}

func (m *mockTransactionRepo) Create(_ context.Context, transaction *model.Transaction) error {
	if transaction.ID == "" {
		m.idCounter++
		transaction.ID = fmt.Sprintf("txn-%d", m.idCounter)
	}
	if transaction.CreatedAt.IsZero() {
		transaction.CreatedAt = time.Now()
	}
	m.transactions = append(m.transactions, transaction)
	return nil
}

func (m *mockTransactionRepo) withDetails(t *model.Transaction) model.Transaction {
	cp := *t
	if m.details != nil && len(cp.Details) == 0 {
		cp.Details, _ = m.details.ListByTransaction(context.Background(), t.ID)
	}
	return cp
}

func (m *mockTransactionRepo) GetByID(_ context.Context, id string) (*model.Transaction, error) {
	for _, t := range m.transactions {
		if t.ID == id {
			cp := m.withDetails(t)
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockTransactionRepo) List(_ context.Context, filters *repository.TransactionListFilters, limit int) ([]model.Transaction, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	var result []model.Transaction
	for _, t := range m.transactions {
		if filters != nil {
			if filters.Since != nil && t.TransactionDate.Before(*filters.Since) {
				continue
			}
			if filters.Type != "" && t.TransactionType != filters.Type {
				continue
			}
		}
		result = append(result, m.withDetails(t))
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].TransactionDate.After(result[j].TransactionDate)
	})
	if limit > 0 && len(result) > limit {
		result = result[:limit]
	}
	return result, nil
}

func (m *mockTransactionRepo) GetLastForContract(_ context.Context, contractID string) (*model.Transaction, error) {
	var last *model.Transaction
	for _, t := range m.transactions {
		cp := m.withDetails(t)
		for _, d := range cp.Details {
			if d.ContractID == contractID {
				if last == nil || cp.TransactionDate.After(last.TransactionDate) {
					found := cp
					last = &found
				}
			}
		}
	}
	if last == nil {
		return nil, gorm.ErrRecordNotFound
	}
	return last, nil
}

func (m *mockTransactionRepo) Count(_ context.Context) (int64, error) {
	if m.countErr != nil {
		return 0, m.countErr
	}
	return int64(len(m.transactions)), nil
}

func (m *mockTransactionRepo) CountSince(_ context.Context, since time.Time) (int64, error) {
	if m.countErr != nil {
		return 0, m.countErr
	}
	var count int64
	for _, t := range m.transactions {
		if !t.TransactionDate.Before(since) {
			count++
		}
	}
	return count, nil
}

// ── Mock TransactionDetailRepository ──

type mockTransactionDetailRepo struct {
	details   []model.TransactionDetail
	contracts *mockContractRepo
	idCounter int
}

func newMockTransactionDetailRepo(contracts *mockContractRepo) *mockTransactionDetailRepo {
	return &mockTransactionDetailRepo{contracts: contracts}
}

func (m *mockTransactionDetailRepo) Create(_ context.Context, detail *model.TransactionDetail) error {
	if detail.ID == "" {
		m.idCounter++
		detail.ID = fmt.Sprintf("detail-%d", m.idCounter)
	}
	detail.CreatedAt = time.Now()
	m.details = append(m.details, *detail)
	return nil
}

func (m *mockTransactionDetailRepo) ListByTransaction(_ context.Context, transactionID string) ([]model.TransactionDetail, error) {
	var result []model.TransactionDetail
	for _, d := range m.details {
		if d.TransactionID == transactionID {
			if m.contracts != nil && d.Contract == nil {
				if c, err := m.contracts.GetByID(context.Background(), d.ContractID); err == nil {
					d.Contract = c
				}
			}
			result = append(result, d)
		}
	}
	return result, nil
}

// ── Mock AccountRepository ──

type mockAccountRepo struct {
	accounts  map[string]*model.Account
	idCounter int
}

func newMockAccountRepo() *mockAccountRepo {
	return &mockAccountRepo{accounts: make(map[string]*model.Account)}
}

func (m *mockAccountRepo) Create(_ context.Context, account *model.Account) error {
	if account.ID == "" {
		m.idCounter++
		account.ID = fmt.Sprintf("acc-%d", m.idCounter)
	}
	account.CreatedAt = time.Now()
	account.UpdatedAt = time.Now()
	m.accounts[account.ID] = account
	return nil
}

func (m *mockAccountRepo) GetByID(_ context.Context, id string) (*model.Account, error) {
	if a, ok := m.accounts[id]; ok {
		return a, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockAccountRepo) GetByEmail(_ context.Context, email string) (*model.Account, error) {
	for _, a := range m.accounts {
		if strings.EqualFold(a.Email, email) {
			return a, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockAccountRepo) ConfirmEmail(_ context.Context, id string) error {
	a, ok := m.accounts[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	a.EmailConfirmed = true
	return nil
}

// ── Mock AppUserRepository ──

type mockAppUserRepo struct {
	users     map[string]*model.AppUser
	getErr    error
	createErr error
}

func newMockAppUserRepo() *mockAppUserRepo {
	return &mockAppUserRepo{users: make(map[string]*model.AppUser)}
}

func (m *mockAppUserRepo) Create(_ context.Context, user *model.AppUser) error {
	if m.createErr != nil {
		return m.createErr
	}
	user.CreatedAt = time.Now()
	user.UpdatedAt = time.Now()
	m.users[user.UserID] = user
	return nil
}

func (m *mockAppUserRepo) GetByUserID(_ context.Context, userID string) (*model.AppUser, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	if u, ok := m.users[userID]; ok {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockAppUserRepo) UpdateRole(_ context.Context, userID, role string) error {
	u, ok := m.users[userID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	u.Role = role
	return nil
}

// ── Test wiring ──

// testRepos keeps the concrete mocks reachable after they are wrapped in
// a repository.Repository.
type testRepos struct {
	employees    *mockEmployeeRepo
	contracts    *mockContractRepo
	transactions *mockTransactionRepo
	details      *mockTransactionDetailRepo
	accounts     *mockAccountRepo
	appUsers     *mockAppUserRepo
}

func newTestRepository() (*repository.Repository, *testRepos) {
	contracts := newMockContractRepo()
	details := newMockTransactionDetailRepo(contracts)
	mocks := &testRepos{
		employees:    newMockEmployeeRepo(),
		contracts:    contracts,
		transactions: newMockTransactionRepo(details),
		details:      details,
		accounts:     newMockAccountRepo(),
		appUsers:     newMockAppUserRepo(),
	}
	repo := &repository.Repository{
		Employee:          mocks.employees,
		Contract:          mocks.contracts,
		Transaction:       mocks.transactions,
		TransactionDetail: mocks.details,
		Account:           mocks.accounts,
		AppUser:           mocks.appUsers,
	}
	return repo, mocks
}
