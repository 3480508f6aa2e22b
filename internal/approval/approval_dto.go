package approval

import "go-hris-workflow/internal/request"

type TransitionRequest struct {
	Reason string `json:"reason" binding:"max=2000"`
	Note   string `json:"note" binding:"max=2000"`
}

type TransitionResponse struct {
	NewState     string                  `json:"new_state"`
	AuditEntryID string                  `json:"audit_entry_id"`
	Request      request.RequestResponse `json:"request"`
}

type AvailableTransitionResponse struct {
	Transition     string `json:"transition"`
	To             string `json:"to"`
	ReasonRequired bool   `json:"reason_required"`
}
