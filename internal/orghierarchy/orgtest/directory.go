// Package orgtest provides an in-memory org chart for tests.
package orgtest

import (
	"context"
	"sync"

	"go-hris-workflow/internal/orghierarchy"
)

type Department struct {
	ID        string
	Name      string
	ManagerID string
}

type Directory struct {
	mu          sync.RWMutex
	employees   map[string]orghierarchy.Employee
	areas       map[string]orghierarchy.AreaInfo
	membership  map[string]string
	roles       map[string][]string
	companies   map[string]string
	departments []Department
	err         error
}

func NewDirectory() *Directory {
	return &Directory{
		employees:  map[string]orghierarchy.Employee{},
		areas:      map[string]orghierarchy.AreaInfo{},
		membership: map[string]string{},
		roles:      map[string][]string{},
		companies:  map[string]string{},
	}
}

func (d *Directory) AddDepartment(id, name, managerID string) *Directory {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.departments = append(d.departments, Department{ID: id, Name: name, ManagerID: managerID})
	return d
}

func (d *Directory) AddArea(id, departmentID, supervisorID string) *Directory {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.areas[id] = orghierarchy.AreaInfo{AreaID: id, DepartmentID: departmentID, SupervisorID: supervisorID}
	return d
}

func (d *Directory) AddEmployee(id, nationalID, areaID string, roles ...string) *Directory {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.employees[id] = orghierarchy.Employee{ID: id, NationalID: nationalID, FullName: "Employee " + id}
	if areaID != "" {
		d.membership[id] = areaID
	}
	d.roles[id] = roles
	return d
}

// InCompany pins employeeID to companyID. Employees never pinned belong to
// every company.
func (d *Directory) InCompany(employeeID, companyID string) *Directory {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.companies[employeeID] = companyID
	return d
}

func (d *Directory) belongs(companyID, employeeID string) bool {
	c, ok := d.companies[employeeID]
	return !ok || c == companyID
}

func (d *Directory) GetEmployee(_ context.Context, companyID, ref string) (*orghierarchy.Employee, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	if d.err != nil {
		return nil, d.err
	}
	if e, ok := d.employees[ref]; ok && d.belongs(companyID, e.ID) {
		return &e, nil
	}
	for _, e := range d.employees {
		if e.NationalID != "" && e.NationalID == ref && d.belongs(companyID, e.ID) {
			e := e
			return &e, nil
		}
	}
	return nil, orghierarchy.ErrEmployeeNotFound
}

func (d *Directory) GetAreaOf(_ context.Context, companyID, employeeID string) (*orghierarchy.AreaInfo, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	if d.err != nil {
		return nil, d.err
	}
	if _, ok := d.employees[employeeID]; !ok || !d.belongs(companyID, employeeID) {
		return nil, orghierarchy.ErrEmployeeNotFound
	}
	areaID, ok := d.membership[employeeID]
	if !ok {
		return nil, orghierarchy.ErrAreaNotFound
	}
	area, ok := d.areas[areaID]
	if !ok {
		return nil, orghierarchy.ErrAreaNotFound
	}
	return &area, nil
}

func (d *Directory) GetManagerOf(_ context.Context, _ string, departmentNameOrID string) (string, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	if d.err != nil {
		return "", d.err
	}
	for _, dept := range d.departments {
		if dept.ID == departmentNameOrID || orghierarchy.SameName(dept.Name, departmentNameOrID) {
			return dept.ManagerID, nil
		}
	}
	return "", orghierarchy.ErrDepartmentNotFound
}

func (d *Directory) GetRolesOf(_ context.Context, companyID, employeeID string) ([]string, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	if d.err != nil {
		return nil, d.err
	}
	if !d.belongs(companyID, employeeID) {
		return nil, nil
	}
	return append([]string(nil), d.roles[employeeID]...), nil
}

// SetErr makes every lookup fail with err.
func (d *Directory) SetErr(err error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.err = err
}
