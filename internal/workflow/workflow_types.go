package workflow

import "fmt"

type RequestType string

const (
	TypeVacation    RequestType = "VACATION"
	TypeSeverance   RequestType = "SEVERANCE"
	TypeShiftChange RequestType = "SHIFT_CHANGE"
)

type State string

const (
	StatePending             State = "PENDING"
	StateReplacementApproved State = "REPLACEMENT_APPROVED"
	StateSupervisorApproved  State = "SUPERVISOR_APPROVED"
	StateUnderReview         State = "UNDER_REVIEW"
	StateAdminApproved       State = "ADMIN_APPROVED"
	StateApproved            State = "APPROVED"
	StateRejected            State = "REJECTED"
)

type Transition string

const (
	TransitionReplacementApprove Transition = "ReplacementApprove"
	TransitionSupervisorApprove  Transition = "SupervisorApprove"
	TransitionAdminApprove       Transition = "AdminApprove"
	TransitionApprove            Transition = "Approve"
	TransitionReject             Transition = "Reject"
)

// Department is the logical name a capability refers to. The org chart may
// spell it differently; resolution happens in the authorization package.
type Department string

const (
	DepartmentAdministration Department = "ADMINISTRATION"
	DepartmentHR             Department = "HR"
)

type CapabilityKind string

const (
	CapDesignatedReplacement CapabilityKind = "isDesignatedReplacement"
	CapDirectSupervisor      CapabilityKind = "isDirectSupervisor"
	CapDepartmentManager     CapabilityKind = "isDepartmentManager"
	CapAdministrator         CapabilityKind = "isAdministrator"
)

// Capability names an authorization predicate. The workflow only says which
// capability gates an edge, never how it is evaluated.
type Capability struct {
	Kind       CapabilityKind
	Department Department
}

func (c Capability) String() string {
	if c.Kind == CapDepartmentManager {
		return fmt.Sprintf("%s(%s)", c.Kind, c.Department)
	}
	return string(c.Kind)
}

var (
	DesignatedReplacement = Capability{Kind: CapDesignatedReplacement}
	DirectSupervisor      = Capability{Kind: CapDirectSupervisor}
	Administrator         = Capability{Kind: CapAdministrator}
)

func DepartmentManager(d Department) Capability {
	return Capability{Kind: CapDepartmentManager, Department: d}
}

type SideEffect string

const (
	EffectNotifyRequester    SideEffect = "NOTIFY_REQUESTER"
	EffectNotifyNextApprover SideEffect = "NOTIFY_NEXT_APPROVER"
	EffectRenderDocument     SideEffect = "RENDER_DOCUMENT"
)

// Subject is the part of a request a guard may look at.
type Subject struct {
	Type           RequestType
	State          State
	ReplacementRef string
}

type Guard struct {
	Name   string
	Check  func(Subject) bool
	Reason string
}

type Edge struct {
	From         State
	Transition   Transition
	To           State
	Capabilities []Capability // any of
	Guard        *Guard
	Effects      []SideEffect
}

var transitions = []Transition{
	TransitionReplacementApprove,
	TransitionSupervisorApprove,
	TransitionAdminApprove,
	TransitionApprove,
	TransitionReject,
}

// ParseTransition accepts the transition name as exposed on the HTTP surface.
func ParseTransition(v string) (Transition, bool) {
	for _, t := range transitions {
		if string(t) == v {
			return t, true
		}
	}
	return "", false
}
