package authorization

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go-hris-workflow/internal/orghierarchy"
	"go-hris-workflow/internal/workflow"

	"go.uber.org/zap"
)

var (
	// AreaManagerRoles are excluded from every approval capability.
	AreaManagerRoles   = []string{"Area Manager", "Gerente de Área"}
	AdministratorRoles = []string{"Administrator", "Administrador"}
)

// departmentAliases lists the spellings the org chart is known to use.
var departmentAliases = map[workflow.Department][]string{
	workflow.DepartmentAdministration: {"ADMINISTRACIÓN", "ADMINISTRACION", "ADMINISTRATION"},
	workflow.DepartmentHR:             {"RRHH", "RECURSOS HUMANOS", "TALENTO HUMANO", "HR"},
}

type Config struct {
	// FallbackDepartmentIDs is consulted when no alias matches a department.
	FallbackDepartmentIDs map[workflow.Department]string
}

// Subject is the request as seen by an authorization check.
type Subject struct {
	CompanyID      string
	RequestID      string
	Type           workflow.RequestType
	RequesterID    string
	ReplacementRef string
}

type Decision struct {
	Allowed bool
	// Granted is the capability that allowed the action.
	Granted workflow.Capability
	Missing []workflow.Capability
	Reason  string
	// DependencyFailure is set when the org chart could not answer.
	DependencyFailure bool
}

// Message is the human-readable denial, naming the missing capabilities.
func (d Decision) Message() string {
	if d.Allowed {
		return ""
	}
	if len(d.Missing) == 0 {
		return d.Reason
	}
	names := make([]string, len(d.Missing))
	for i, c := range d.Missing {
		names[i] = c.String()
	}
	return fmt.Sprintf("%s (missing %s)", d.Reason, strings.Join(names, ", "))
}

type Resolver struct {
	org    *orghierarchy.Resolver
	cfg    Config
	logger *zap.Logger
}

func NewResolver(org *orghierarchy.Resolver, cfg Config, logger ...*zap.Logger) *Resolver {
	l := zap.L().Named("authorization.resolver")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("authorization.resolver")
	}
	return &Resolver{org: org, cfg: cfg, logger: l}
}

func (r *Resolver) Resolve(ctx context.Context, actorID string, s Subject, c workflow.Capability) Decision {
	return r.ResolveAny(ctx, actorID, s, []workflow.Capability{c})
}

// ResolveAny allows when the actor holds at least one of caps.
func (r *Resolver) ResolveAny(ctx context.Context, actorID string, s Subject, caps []workflow.Capability) Decision {
	if len(caps) == 0 {
		return Decision{Reason: "no capability grants this action"}
	}

	actor, d, ok := r.loadActor(ctx, s.CompanyID, actorID, caps)
	if !ok {
		return d
	}

	if actor.HasRole(AreaManagerRoles...) {
		return Decision{
			Missing: caps,
			Reason:  "area managers may not approve or reject employee requests",
		}
	}
	if actor.Employee.ID == s.RequesterID {
		return Decision{
			Missing: caps,
			Reason:  "requesters may not act on their own request",
		}
	}

	var reasons []string
	depFailure := false
	for _, c := range caps {
		allowed, reason, err := r.check(ctx, actor, s, c)
		if err != nil {
			depFailure = true
			r.logger.Warn("capability check failed",
				zap.String("actor_id", actorID),
				zap.String("request_id", s.RequestID),
				zap.String("capability", c.String()),
				zap.Error(err),
			)
			reasons = append(reasons, "the organisation chart could not be consulted")
			continue
		}
		if allowed {
			return Decision{Allowed: true, Granted: c}
		}
		reasons = append(reasons, reason)
	}

	return Decision{
		Missing:           caps,
		Reason:            strings.Join(dedupe(reasons), "; "),
		DependencyFailure: depFailure,
	}
}

// CanSubmit reports whether actorID may file a new request in companyID.
func (r *Resolver) CanSubmit(ctx context.Context, companyID, actorID string) Decision {
	actor, d, ok := r.loadActor(ctx, companyID, actorID, nil)
	if !ok {
		return d
	}
	if actor.HasRole(AreaManagerRoles...) {
		return Decision{Reason: "area managers may not file employee requests"}
	}
	return Decision{Allowed: true}
}

// HoldersOf lists the employees who currently hold c for s, excluding the
// requester and anyone barred by the area manager rule. Administrators are
// not enumerable from the org chart and yield nothing.
func (r *Resolver) HoldersOf(ctx context.Context, s Subject, c workflow.Capability) ([]string, error) {
	var candidates []string

	switch c.Kind {
	case workflow.CapDesignatedReplacement:
		if s.ReplacementRef == "" {
			return nil, nil
		}
		emp, err := r.org.Employee(ctx, s.CompanyID, s.ReplacementRef)
		if err != nil {
			if errors.Is(err, orghierarchy.ErrEmployeeNotFound) {
				return nil, nil
			}
			return nil, err
		}
		candidates = append(candidates, emp.ID)
	case workflow.CapDirectSupervisor:
		area, err := r.org.AreaOf(ctx, s.CompanyID, s.RequesterID)
		if err != nil {
			if isMissing(err) {
				return nil, nil
			}
			return nil, err
		}
		if area.SupervisorID != "" {
			candidates = append(candidates, area.SupervisorID)
		}
	case workflow.CapDepartmentManager:
		mgr, err := r.departmentManager(ctx, s.CompanyID, c.Department)
		if err != nil {
			if isMissing(err) {
				return nil, nil
			}
			return nil, err
		}
		if mgr != "" {
			candidates = append(candidates, mgr)
		}
	}

	out := make([]string, 0, len(candidates))
	for _, id := range candidates {
		if id == s.RequesterID {
			continue
		}
		h, err := r.org.Actor(ctx, s.CompanyID, id)
		if err != nil {
			if errors.Is(err, orghierarchy.ErrEmployeeNotFound) {
				continue
			}
			return nil, err
		}
		if h.HasRole(AreaManagerRoles...) {
			continue
		}
		out = append(out, id)
	}
	return out, nil
}

func (r *Resolver) loadActor(ctx context.Context, companyID, actorID string, caps []workflow.Capability) (*orghierarchy.Hierarchy, Decision, bool) {
	if strings.TrimSpace(actorID) == "" {
		return nil, Decision{Missing: caps, Reason: "actor is not authenticated"}, false
	}
	actor, err := r.org.Actor(ctx, companyID, actorID)
	if err == nil {
		return actor, Decision{}, true
	}
	if errors.Is(err, orghierarchy.ErrEmployeeNotFound) {
		return nil, Decision{Missing: caps, Reason: "actor could not be resolved to an employee"}, false
	}
	r.logger.Warn("actor lookup failed", zap.String("actor_id", actorID), zap.Error(err))
	return nil, Decision{
		Missing:           caps,
		Reason:            "the organisation chart could not be consulted",
		DependencyFailure: true,
	}, false
}

// check evaluates one capability. A non-nil error means the answer is unknown.
func (r *Resolver) check(ctx context.Context, actor *orghierarchy.Hierarchy, s Subject, c workflow.Capability) (bool, string, error) {
	switch c.Kind {
	case workflow.CapDesignatedReplacement:
		ref := strings.TrimSpace(s.ReplacementRef)
		if ref == "" {
			return false, "the request has no designated replacement", nil
		}
		if ref == actor.Employee.ID || (actor.Employee.NationalID != "" && ref == actor.Employee.NationalID) {
			return true, "", nil
		}
		return false, "only the designated replacement may perform this action", nil

	case workflow.CapDirectSupervisor:
		area, err := r.org.AreaOf(ctx, s.CompanyID, s.RequesterID)
		if err != nil {
			if isMissing(err) {
				return false, "the requester has no area with a registered supervisor", nil
			}
			return false, "", err
		}
		if area.SupervisorID == "" {
			return false, "the requester has no area with a registered supervisor", nil
		}
		if area.SupervisorID == actor.Employee.ID {
			return true, "", nil
		}
		return false, "only the direct supervisor of the requester may perform this action", nil

	case workflow.CapDepartmentManager:
		mgr, err := r.departmentManager(ctx, s.CompanyID, c.Department)
		if err != nil {
			if isMissing(err) {
				return false, fmt.Sprintf("department %s could not be found in the organisation chart", c.Department), nil
			}
			return false, "", err
		}
		if mgr == "" {
			return false, fmt.Sprintf("department %s has no registered manager", c.Department), nil
		}
		if mgr == actor.Employee.ID {
			return true, "", nil
		}
		return false, fmt.Sprintf("only the department manager of %s may perform this action", c.Department), nil

	case workflow.CapAdministrator:
		if actor.HasRole(AdministratorRoles...) {
			return true, "", nil
		}
		return false, "only an administrator may perform this action", nil
	}

	return false, fmt.Sprintf("unknown capability %s", c), nil
}

func (r *Resolver) departmentManager(ctx context.Context, companyID string, d workflow.Department) (string, error) {
	names := departmentAliases[d]
	if len(names) == 0 {
		names = []string{string(d)}
	}
	return r.org.DepartmentManager(ctx, companyID, names, r.cfg.FallbackDepartmentIDs[d])
}

func isMissing(err error) bool {
	return errors.Is(err, orghierarchy.ErrEmployeeNotFound) ||
		errors.Is(err, orghierarchy.ErrAreaNotFound) ||
		errors.Is(err, orghierarchy.ErrDepartmentNotFound)
}

func dedupe(in []string) []string {
	seen := make(map[string]struct{}, len(in))
	out := make([]string, 0, len(in))
	for _, s := range in {
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}
