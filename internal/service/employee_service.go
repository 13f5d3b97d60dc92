package service

import (
	"context"
	"errors"
	"regexp"
	"strings"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/EngOsamaQazan/Archeef/internal/dto"
	"github.com/EngOsamaQazan/Archeef/internal/model"
	"github.com/EngOsamaQazan/Archeef/internal/repository"
)

// ── Employee business errors ──

var (
	ErrEmployeeNotFound = errors.New("الموظف غير موجود")
	ErrEmployeeExists   = errors.New("يوجد موظف بهذا الاسم")
	ErrInvalidName      = errors.New("اسم الموظف غير صالح")
)

// Employee names allow Arabic letters and spaces only, 2 to 255 characters.
var employeeNameRe = regexp.MustCompile(`^[\x{0600}-\x{06FF}\s]+$`)

// EmployeeService manages the employee directory.
type EmployeeService interface {
	List(ctx context.Context) ([]dto.EmployeeResponse, error)
	Create(ctx context.Context, req *dto.CreateEmployeeRequest) (*dto.EmployeeResponse, error)
}

type employeeService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewEmployeeService creates an EmployeeService instance.
func NewEmployeeService(repo *repository.Repository, logger *zap.Logger) EmployeeService {
	return &employeeService{repo: repo, logger: logger}
}

func (s *employeeService) List(ctx context.Context) ([]dto.EmployeeResponse, error) {
	employees, err := s.repo.Employee.List(ctx)
	if err != nil {
		s.logger.Error("list employees failed", zap.Error(err))
		return nil, err
	}

	out := make([]dto.EmployeeResponse, 0, len(employees))
	for i := range employees {
		out = append(out, *toEmployeeResponse(&employees[i]))
	}
	return out, nil
}

func (s *employeeService) Create(ctx context.Context, req *dto.CreateEmployeeRequest) (*dto.EmployeeResponse, error) {
	// 1. Normalize and validate the name
	name := strings.Join(strings.Fields(req.Name), " ")
	if n := len([]rune(name)); n < 2 || n > 255 {
		return nil, ErrInvalidName
	}
	if !employeeNameRe.MatchString(name) {
		return nil, ErrInvalidName
	}

	// 2. Names are unique across departments
	if _, err := s.repo.Employee.GetByName(ctx, name); err == nil {
		return nil, ErrEmployeeExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		s.logger.Error("check employee name failed", zap.Error(err))
		return nil, err
	}

	employee := &model.Employee{
		Name:       name,
		Department: req.Department,
	}
	if err := s.repo.Employee.Create(ctx, employee); err != nil {
		s.logger.Error("create employee failed", zap.Error(err))
		return nil, err
	}

	s.logger.Info("employee created",
		zap.String("name", name),
		zap.String("department", req.Department))

	return toEmployeeResponse(employee), nil
}
