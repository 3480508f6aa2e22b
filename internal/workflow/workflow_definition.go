package workflow

import (
	"errors"
	"fmt"
)

var ErrUnknownRequestType = errors.New("unknown request type")

type Definition struct {
	Type     RequestType
	Initial  State
	states   []State
	terminal map[State]bool
	edges    map[State][]Edge
}

func (d *Definition) States() []State {
	out := make([]State, len(d.states))
	copy(out, d.states)
	return out
}

func (d *Definition) HasState(s State) bool {
	for _, st := range d.states {
		if st == s {
			return true
		}
	}
	return false
}

func (d *Definition) IsTerminal(s State) bool {
	return d.terminal[s]
}

// Edge returns the edge named t leaving from. A missing edge is the only
// signal callers need for an invalid or already-applied transition.
func (d *Definition) Edge(from State, t Transition) (Edge, bool) {
	for _, e := range d.edges[from] {
		if e.Transition == t {
			return e, true
		}
	}
	return Edge{}, false
}

func (d *Definition) EdgesFrom(from State) []Edge {
	out := make([]Edge, len(d.edges[from]))
	copy(out, d.edges[from])
	return out
}

// ForwardEdgesFrom skips rejection edges.
func (d *Definition) ForwardEdgesFrom(from State) []Edge {
	var out []Edge
	for _, e := range d.edges[from] {
		if e.To != StateRejected {
			out = append(out, e)
		}
	}
	return out
}

// Effects returns the side effects declared for transition t. Every edge that
// shares a transition name within one type declares the same effects.
func (d *Definition) Effects(t Transition) []SideEffect {
	for _, st := range d.states {
		if e, ok := d.Edge(st, t); ok {
			out := make([]SideEffect, len(e.Effects))
			copy(out, e.Effects)
			return out
		}
	}
	return nil
}

func For(t RequestType) (*Definition, error) {
	d, ok := definitions[t]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownRequestType, t)
	}
	return d, nil
}

func Types() []RequestType {
	return []RequestType{TypeVacation, TypeSeverance, TypeShiftChange}
}

func IsValidType(t RequestType) bool {
	_, ok := definitions[t]
	return ok
}

// AcceptsReplacement reports whether requests of type t may carry a
// designated replacement.
func AcceptsReplacement(t RequestType) bool {
	return t == TypeVacation || t == TypeShiftChange
}

type builder struct {
	def *Definition
}

func define(t RequestType, initial State, states ...State) *builder {
	d := &Definition{
		Type:     t,
		Initial:  initial,
		states:   append([]State{initial}, states...),
		terminal: map[State]bool{StateApproved: true, StateRejected: true},
		edges:    map[State][]Edge{},
	}
	return &builder{def: d}
}

func (b *builder) edge(e Edge) *builder {
	b.def.edges[e.From] = append(b.def.edges[e.From], e)
	return b
}

// withRejection adds a Reject edge to every non-terminal state. Whoever may
// move a request forward at a stage may also reject it there.
func (b *builder) withRejection() *Definition {
	for _, st := range b.def.states {
		if b.def.terminal[st] {
			continue
		}
		var caps []Capability
		seen := map[Capability]bool{}
		for _, e := range b.def.edges[st] {
			for _, c := range e.Capabilities {
				if !seen[c] {
					seen[c] = true
					caps = append(caps, c)
				}
			}
		}
		if len(caps) == 0 {
			continue
		}
		b.def.edges[st] = append(b.def.edges[st], Edge{
			From:         st,
			Transition:   TransitionReject,
			To:           StateRejected,
			Capabilities: caps,
			Effects:      []SideEffect{EffectNotifyRequester},
		})
	}
	return b.def
}

var (
	replacementDesignated = &Guard{
		Name:   "replacementDesignated",
		Check:  func(s Subject) bool { return s.ReplacementRef != "" },
		Reason: "request has no designated replacement",
	}
	replacementSignOffNotPending = &Guard{
		Name:   "replacementSignOffNotPending",
		Check:  func(s Subject) bool { return s.ReplacementRef == "" },
		Reason: "designated replacement has not signed off yet",
	}
)

var (
	notifyForward = []SideEffect{EffectNotifyRequester, EffectNotifyNextApprover}
	notifyFinal   = []SideEffect{EffectNotifyRequester, EffectRenderDocument}
)

var definitions = map[RequestType]*Definition{
	TypeShiftChange: shiftChangeDefinition(),
	TypeVacation:    vacationDefinition(),
	TypeSeverance:   severanceDefinition(),
}

// ShiftChange promotes straight to UnderReview on replacement sign-off.
func shiftChangeDefinition() *Definition {
	return define(TypeShiftChange, StatePending, StateUnderReview, StateApproved, StateRejected).
		edge(Edge{
			From:         StatePending,
			Transition:   TransitionReplacementApprove,
			To:           StateUnderReview,
			Capabilities: []Capability{DesignatedReplacement},
			Guard:        replacementDesignated,
			Effects:      notifyForward,
		}).
		edge(Edge{
			From:         StateUnderReview,
			Transition:   TransitionApprove,
			To:           StateApproved,
			Capabilities: []Capability{DirectSupervisor},
			Effects:      notifyFinal,
		}).
		withRejection()
}

func vacationDefinition() *Definition {
	return define(TypeVacation, StatePending,
		StateReplacementApproved, StateSupervisorApproved, StateAdminApproved, StateApproved, StateRejected).
		edge(Edge{
			From:         StatePending,
			Transition:   TransitionReplacementApprove,
			To:           StateReplacementApproved,
			Capabilities: []Capability{DesignatedReplacement},
			Guard:        replacementDesignated,
			Effects:      notifyForward,
		}).
		edge(Edge{
			From:         StatePending,
			Transition:   TransitionSupervisorApprove,
			To:           StateSupervisorApproved,
			Capabilities: []Capability{DirectSupervisor},
			Guard:        replacementSignOffNotPending,
			Effects:      notifyForward,
		}).
		edge(Edge{
			From:         StateReplacementApproved,
			Transition:   TransitionSupervisorApprove,
			To:           StateSupervisorApproved,
			Capabilities: []Capability{DirectSupervisor},
			Effects:      notifyForward,
		}).
		edge(Edge{
			From:         StateSupervisorApproved,
			Transition:   TransitionAdminApprove,
			To:           StateAdminApproved,
			Capabilities: []Capability{DepartmentManager(DepartmentAdministration)},
			Effects:      notifyForward,
		}).
		edge(Edge{
			From:         StateAdminApproved,
			Transition:   TransitionApprove,
			To:           StateApproved,
			Capabilities: []Capability{DepartmentManager(DepartmentHR)},
			Effects:      notifyFinal,
		}).
		withRejection()
}

func severanceDefinition() *Definition {
	return define(TypeSeverance, StatePending,
		StateUnderReview, StateAdminApproved, StateApproved, StateRejected).
		edge(Edge{
			From:         StatePending,
			Transition:   TransitionSupervisorApprove,
			To:           StateUnderReview,
			Capabilities: []Capability{DirectSupervisor},
			Effects:      notifyForward,
		}).
		edge(Edge{
			From:         StateUnderReview,
			Transition:   TransitionAdminApprove,
			To:           StateAdminApproved,
			Capabilities: []Capability{DepartmentManager(DepartmentAdministration), Administrator},
			Effects:      notifyForward,
		}).
		edge(Edge{
			From:         StateAdminApproved,
			Transition:   TransitionApprove,
			To:           StateApproved,
			Capabilities: []Capability{DepartmentManager(DepartmentHR)},
			Effects:      notifyFinal,
		}).
		withRejection()
}
