package orghierarchy

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrEmployeeNotFound   = errors.New("employee not found")
	ErrAreaNotFound       = errors.New("employee has no area")
	ErrDepartmentNotFound = errors.New("department not found")
)

// Directory is the read side of the org chart. Every lookup is confined to
// companyID; rows of another company are reported as not found.
//
//go:generate mockgen -source=orghierarchy_repo.go -destination=mock/orghierarchy_repo_mock.go -package=mock
type Directory interface {
	// GetEmployee resolves ref as an employee id or, failing that, a national id.
	GetEmployee(ctx context.Context, companyID, ref string) (*Employee, error)
	GetAreaOf(ctx context.Context, companyID, employeeID string) (*AreaInfo, error)
	// GetManagerOf returns "" when the department exists without a manager.
	GetManagerOf(ctx context.Context, companyID, departmentNameOrID string) (string, error)
	GetRolesOf(ctx context.Context, companyID, employeeID string) ([]string, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Directory {
	return &repository{db: db}
}

func (r *repository) GetEmployee(ctx context.Context, companyID, ref string) (*Employee, error) {
	var row EmployeeRow
	q := r.db.WithContext(ctx).Where("company_id = ?", companyID)
	if _, err := uuid.Parse(ref); err == nil {
		q = q.Where("id = ?", ref)
	} else {
		q = q.Where("national_id = ?", ref)
	}
	if err := q.First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEmployeeNotFound
		}
		return nil, err
	}
	return &Employee{
		ID:         row.ID.String(),
		NationalID: row.NationalID,
		FullName:   row.FullName,
		Email:      row.Email,
	}, nil
}

func (r *repository) GetAreaOf(ctx context.Context, companyID, employeeID string) (*AreaInfo, error) {
	if _, err := uuid.Parse(employeeID); err != nil {
		return nil, ErrEmployeeNotFound
	}

	var emp EmployeeRow
	err := r.db.WithContext(ctx).
		Select("id", "area_id").
		Where("company_id = ?", companyID).
		First(&emp, "id = ?", employeeID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEmployeeNotFound
		}
		return nil, err
	}
	if emp.AreaID == nil {
		return nil, ErrAreaNotFound
	}

	var area AreaRow
	err = r.db.WithContext(ctx).
		Where("company_id = ?", companyID).
		First(&area, "id = ?", emp.AreaID.String()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAreaNotFound
		}
		return nil, err
	}

	info := &AreaInfo{
		AreaID:       area.ID.String(),
		DepartmentID: area.DepartmentID.String(),
	}
	if area.SupervisorID != nil {
		info.SupervisorID = area.SupervisorID.String()
	}
	return info, nil
}

func (r *repository) GetManagerOf(ctx context.Context, companyID, departmentNameOrID string) (string, error) {
	if _, err := uuid.Parse(departmentNameOrID); err == nil {
		var dept DepartmentRow
		err := r.db.WithContext(ctx).
			Where("company_id = ?", companyID).
			First(&dept, "id = ?", departmentNameOrID).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return "", ErrDepartmentNotFound
			}
			return "", err
		}
		return managerOf(dept), nil
	}

	// Names in the org chart are typed by hand; match them folded.
	var depts []DepartmentRow
	err := r.db.WithContext(ctx).
		Where("company_id = ?", companyID).
		Order("name ASC").
		Find(&depts).Error
	if err != nil {
		return "", err
	}
	for _, d := range depts {
		if SameName(d.Name, departmentNameOrID) {
			return managerOf(d), nil
		}
	}
	return "", ErrDepartmentNotFound
}

func (r *repository) GetRolesOf(ctx context.Context, companyID, employeeID string) ([]string, error) {
	var names []string
	err := r.db.WithContext(ctx).
		Table("employee_roles").
		Joins("JOIN employees ON employees.id = employee_roles.employee_id").
		Joins("JOIN roles ON roles.id = employee_roles.role_id").
		Where("employees.company_id = ? AND employee_roles.employee_id = ?", companyID, employeeID).
		Pluck("roles.name", &names).Error
	return names, err
}

func managerOf(d DepartmentRow) string {
	if d.ManagerID == nil {
		return ""
	}
	return d.ManagerID.String()
}
