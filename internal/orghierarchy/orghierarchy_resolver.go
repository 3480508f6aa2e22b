package orghierarchy

import (
	"context"
	"errors"

	"go.uber.org/zap"
)

type Hierarchy struct {
	Employee Employee
	Roles    []string
	Area     *AreaInfo
	// Chain lists the managers above the employee, nearest first.
	Chain []string
}

func (h *Hierarchy) HasRole(names ...string) bool {
	for _, have := range h.Roles {
		for _, want := range names {
			if SameName(have, want) {
				return true
			}
		}
	}
	return false
}

type Resolver struct {
	dir    Directory
	logger *zap.Logger
}

func NewResolver(dir Directory, logger ...*zap.Logger) *Resolver {
	l := zap.L().Named("orghierarchy.resolver")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("orghierarchy.resolver")
	}
	return &Resolver{dir: dir, logger: l}
}

// Actor loads the identity and roles of employeeID within companyID,
// without walking the hierarchy.
func (r *Resolver) Actor(ctx context.Context, companyID, employeeID string) (*Hierarchy, error) {
	emp, err := r.dir.GetEmployee(ctx, companyID, employeeID)
	if err != nil {
		return nil, err
	}
	roles, err := r.dir.GetRolesOf(ctx, companyID, emp.ID)
	if err != nil {
		return nil, err
	}
	return &Hierarchy{Employee: *emp, Roles: roles}, nil
}

// Resolve loads the employee together with area, department and the
// managers above them. An employee without an area resolves with a nil Area.
func (r *Resolver) Resolve(ctx context.Context, companyID, employeeID string) (*Hierarchy, error) {
	h, err := r.Actor(ctx, companyID, employeeID)
	if err != nil {
		return nil, err
	}

	area, err := r.dir.GetAreaOf(ctx, companyID, h.Employee.ID)
	if err != nil {
		if errors.Is(err, ErrAreaNotFound) {
			return h, nil
		}
		return nil, err
	}
	h.Area = area

	if area.SupervisorID != "" && area.SupervisorID != h.Employee.ID {
		h.Chain = append(h.Chain, area.SupervisorID)
	}
	manager, err := r.dir.GetManagerOf(ctx, companyID, area.DepartmentID)
	switch {
	case err == nil:
		if manager != "" && manager != h.Employee.ID && !contains(h.Chain, manager) {
			h.Chain = append(h.Chain, manager)
		}
	case errors.Is(err, ErrDepartmentNotFound):
		r.logger.Warn("area points to a missing department",
			zap.String("area_id", area.AreaID),
			zap.String("department_id", area.DepartmentID),
		)
	default:
		return nil, err
	}
	return h, nil
}

func (r *Resolver) AreaOf(ctx context.Context, companyID, employeeID string) (*AreaInfo, error) {
	return r.dir.GetAreaOf(ctx, companyID, employeeID)
}

func (r *Resolver) Employee(ctx context.Context, companyID, ref string) (*Employee, error) {
	return r.dir.GetEmployee(ctx, companyID, ref)
}

// DepartmentManager tries every spelling in names and then fallbackID.
// It returns ErrDepartmentNotFound when none of them matches a department.
func (r *Resolver) DepartmentManager(ctx context.Context, companyID string, names []string, fallbackID string) (string, error) {
	keys := names
	if fallbackID != "" {
		keys = append(append([]string{}, names...), fallbackID)
	}
	for _, key := range keys {
		manager, err := r.dir.GetManagerOf(ctx, companyID, key)
		if err == nil {
			return manager, nil
		}
		if !errors.Is(err, ErrDepartmentNotFound) {
			return "", err
		}
	}
	return "", ErrDepartmentNotFound
}

func contains(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}
