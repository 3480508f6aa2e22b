package authorization_test

import (
	"context"
	"errors"
	"testing"

	"go-hris-workflow/internal/authorization"
	"go-hris-workflow/internal/orghierarchy"
	"go-hris-workflow/internal/orghierarchy/orgtest"
	"go-hris-workflow/internal/workflow"

	"github.com/stretchr/testify/assert"
)

func newOrg() *orgtest.Directory {
	return orgtest.NewDirectory().
		AddDepartment("dept-adm", "ADMINISTRACIÓN", "mgr-adm").
		AddDepartment("dept-hr", "Talento Humano", "mgr-hr").
		AddDepartment("dept-ops", "Operaciones", "mgr-ops").
		AddDepartment("dept-empty", "Bodega", "").
		AddArea("area-1", "dept-ops", "sup-1").
		AddArea("area-2", "dept-ops", "am-1").
		AddArea("area-3", "dept-empty", "").
		AddEmployee("emp-1", "1010", "area-1", "Employee").
		AddEmployee("emp-2", "2020", "area-2", "Employee").
		AddEmployee("emp-3", "3030", "area-3", "Employee").
		AddEmployee("rep-7", "7070", "area-1", "Employee").
		AddEmployee("sup-1", "1111", "area-1", "Supervisor").
		AddEmployee("am-1", "2222", "area-2", "Gerente de Área").
		AddEmployee("admin-1", "3333", "", "Administrador").
		AddEmployee("mgr-adm", "4444", "").
		AddEmployee("mgr-hr", "5555", "").
		AddEmployee("mgr-ops", "6666", "")
}

func newResolver(dir orghierarchy.Directory, cfg authorization.Config) *authorization.Resolver {
	return authorization.NewResolver(orghierarchy.NewResolver(dir), cfg)
}

func subject(requester, replacement string) authorization.Subject {
	return authorization.Subject{
		CompanyID:      "company-1",
		RequestID:      "req-1",
		Type:           workflow.TypeVacation,
		RequesterID:    requester,
		ReplacementRef: replacement,
	}
}

func TestResolve_DesignatedReplacement(t *testing.T) {
	ctx := context.Background()
	r := newResolver(newOrg(), authorization.Config{})

	d := r.Resolve(ctx, "rep-7", subject("emp-1", "rep-7"), workflow.DesignatedReplacement)
	assert.True(t, d.Allowed)
	assert.Equal(t, workflow.DesignatedReplacement, d.Granted)

	d = r.Resolve(ctx, "rep-7", subject("emp-1", "7070"), workflow.DesignatedReplacement)
	assert.True(t, d.Allowed, "national id matches too")

	d = r.Resolve(ctx, "sup-1", subject("emp-1", "rep-7"), workflow.DesignatedReplacement)
	assert.False(t, d.Allowed)
	assert.Equal(t, "only the designated replacement may perform this action (missing isDesignatedReplacement)", d.Message())

	d = r.Resolve(ctx, "rep-7", subject("emp-1", ""), workflow.DesignatedReplacement)
	assert.False(t, d.Allowed)
	assert.Contains(t, d.Reason, "no designated replacement")
}

func TestResolve_DirectSupervisor(t *testing.T) {
	ctx := context.Background()
	r := newResolver(newOrg(), authorization.Config{})

	assert.True(t, r.Resolve(ctx, "sup-1", subject("emp-1", ""), workflow.DirectSupervisor).Allowed)
	assert.False(t, r.Resolve(ctx, "mgr-ops", subject("emp-1", ""), workflow.DirectSupervisor).Allowed)

	d := r.Resolve(ctx, "sup-1", subject("emp-3", ""), workflow.DirectSupervisor)
	assert.False(t, d.Allowed)
	assert.Contains(t, d.Reason, "no area with a registered supervisor")
}

func TestResolve_DepartmentManager(t *testing.T) {
	ctx := context.Background()

	t.Run("alias spelling", func(t *testing.T) {
		r := newResolver(newOrg(), authorization.Config{})
		d := r.Resolve(ctx, "mgr-adm", subject("emp-1", ""), workflow.DepartmentManager(workflow.DepartmentAdministration))
		assert.True(t, d.Allowed)

		d = r.Resolve(ctx, "mgr-hr", subject("emp-1", ""), workflow.DepartmentManager(workflow.DepartmentHR))
		assert.True(t, d.Allowed)
	})

	t.Run("wrong manager names the missing capability", func(t *testing.T) {
		r := newResolver(newOrg(), authorization.Config{})
		d := r.Resolve(ctx, "mgr-adm", subject("emp-1", ""), workflow.DepartmentManager(workflow.DepartmentHR))
		assert.False(t, d.Allowed)
		assert.Equal(t,
			"only the department manager of HR may perform this action (missing isDepartmentManager(HR))",
			d.Message(),
		)
	})

	t.Run("fallback id", func(t *testing.T) {
		dir := orgtest.NewDirectory().
			AddDepartment("dept-gh", "Gestión Humana", "mgr-gh").
			AddEmployee("emp-1", "1010", "").
			AddEmployee("mgr-gh", "9999", "")

		r := newResolver(dir, authorization.Config{})
		d := r.Resolve(ctx, "mgr-gh", subject("emp-1", ""), workflow.DepartmentManager(workflow.DepartmentHR))
		assert.False(t, d.Allowed)
		assert.False(t, d.DependencyFailure)
		assert.Contains(t, d.Reason, "could not be found")

		r = newResolver(dir, authorization.Config{
			FallbackDepartmentIDs: map[workflow.Department]string{workflow.DepartmentHR: "dept-gh"},
		})
		assert.True(t, r.Resolve(ctx, "mgr-gh", subject("emp-1", ""), workflow.DepartmentManager(workflow.DepartmentHR)).Allowed)
	})

	t.Run("department without manager", func(t *testing.T) {
		dir := orgtest.NewDirectory().
			AddDepartment("dept-hr", "RRHH", "").
			AddEmployee("emp-1", "1010", "").
			AddEmployee("someone", "1", "")
		r := newResolver(dir, authorization.Config{})
		d := r.Resolve(ctx, "someone", subject("emp-1", ""), workflow.DepartmentManager(workflow.DepartmentHR))
		assert.False(t, d.Allowed)
		assert.Contains(t, d.Reason, "has no registered manager")
	})
}

func TestResolve_AreaManagerExclusion(t *testing.T) {
	ctx := context.Background()
	r := newResolver(newOrg(), authorization.Config{})

	// am-1 is the registered supervisor of area-2, but the role bars them.
	caps := []workflow.Capability{
		workflow.DirectSupervisor,
		workflow.DesignatedReplacement,
		workflow.DepartmentManager(workflow.DepartmentAdministration),
		workflow.Administrator,
	}
	for _, c := range caps {
		d := r.Resolve(ctx, "am-1", subject("emp-2", "am-1"), c)
		assert.False(t, d.Allowed, c.String())
		assert.Contains(t, d.Message(), "area managers may not")
	}

	assert.False(t, r.CanSubmit(ctx, "company-1", "am-1").Allowed)
	assert.True(t, r.CanSubmit(ctx, "company-1", "emp-1").Allowed)
}

func TestResolve_SelfAction(t *testing.T) {
	ctx := context.Background()
	r := newResolver(newOrg(), authorization.Config{})

	d := r.Resolve(ctx, "sup-1", subject("sup-1", ""), workflow.DirectSupervisor)
	assert.False(t, d.Allowed)
	assert.Contains(t, d.Reason, "own request")
}

func TestResolveAny(t *testing.T) {
	ctx := context.Background()
	r := newResolver(newOrg(), authorization.Config{})
	caps := []workflow.Capability{
		workflow.DepartmentManager(workflow.DepartmentAdministration),
		workflow.Administrator,
	}

	d := r.ResolveAny(ctx, "admin-1", subject("emp-1", ""), caps)
	assert.True(t, d.Allowed)
	assert.Equal(t, workflow.Administrator, d.Granted)

	d = r.ResolveAny(ctx, "sup-1", subject("emp-1", ""), caps)
	assert.False(t, d.Allowed)
	assert.Contains(t, d.Message(), "missing isDepartmentManager(ADMINISTRATION), isAdministrator")

	d = r.ResolveAny(ctx, "sup-1", subject("emp-1", ""), nil)
	assert.False(t, d.Allowed)
}

func TestResolve_DependencyFailures(t *testing.T) {
	ctx := context.Background()

	t.Run("unknown actor", func(t *testing.T) {
		r := newResolver(newOrg(), authorization.Config{})
		d := r.Resolve(ctx, "ghost", subject("emp-1", ""), workflow.DirectSupervisor)
		assert.False(t, d.Allowed)
		assert.False(t, d.DependencyFailure)
		assert.Contains(t, d.Reason, "could not be resolved")
	})

	t.Run("empty actor", func(t *testing.T) {
		r := newResolver(newOrg(), authorization.Config{})
		d := r.Resolve(ctx, " ", subject("emp-1", ""), workflow.DirectSupervisor)
		assert.False(t, d.Allowed)
	})

	t.Run("directory down denies", func(t *testing.T) {
		dir := newOrg()
		dir.SetErr(errors.New("connection refused"))
		r := newResolver(dir, authorization.Config{})

		d := r.Resolve(ctx, "sup-1", subject("emp-1", ""), workflow.DirectSupervisor)
		assert.False(t, d.Allowed)
		assert.True(t, d.DependencyFailure)
	})
}

func TestHoldersOf(t *testing.T) {
	ctx := context.Background()
	r := newResolver(newOrg(), authorization.Config{})

	got, err := r.HoldersOf(ctx, subject("emp-1", "7070"), workflow.DesignatedReplacement)
	assert.NoError(t, err)
	assert.Equal(t, []string{"rep-7"}, got)

	got, err = r.HoldersOf(ctx, subject("emp-1", ""), workflow.DirectSupervisor)
	assert.NoError(t, err)
	assert.Equal(t, []string{"sup-1"}, got)

	got, err = r.HoldersOf(ctx, subject("emp-1", ""), workflow.DepartmentManager(workflow.DepartmentHR))
	assert.NoError(t, err)
	assert.Equal(t, []string{"mgr-hr"}, got)

	// area-2 is supervised by an area manager, who cannot act.
	got, err = r.HoldersOf(ctx, subject("emp-2", ""), workflow.DirectSupervisor)
	assert.NoError(t, err)
	assert.Empty(t, got)

	got, err = r.HoldersOf(ctx, subject("emp-1", ""), workflow.Administrator)
	assert.NoError(t, err)
	assert.Empty(t, got)
}

func TestResolve_OtherCompanyActor(t *testing.T) {
	ctx := context.Background()
	dir := newOrg().
		AddEmployee("outsider", "9090", "area-1", "Administrador").
		InCompany("outsider", "company-2")
	r := newResolver(dir, authorization.Config{})

	d := r.Resolve(ctx, "outsider", subject("emp-1", ""), workflow.Administrator)
	assert.False(t, d.Allowed)
	assert.Contains(t, d.Reason, "could not be resolved")

	assert.False(t, r.CanSubmit(ctx, "company-1", "outsider").Allowed)
	assert.True(t, r.CanSubmit(ctx, "company-2", "outsider").Allowed)
}
