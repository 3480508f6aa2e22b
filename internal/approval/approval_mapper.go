package approval

import "go-hris-workflow/internal/request"

func mapToTransitionResponse(res *TransitionResult) TransitionResponse {
	return TransitionResponse{
		NewState:     string(res.NewState),
		AuditEntryID: res.AuditEntryID,
		Request:      request.MapToResponse(res.Request),
	}
}

func mapToAvailableResponse(items []AvailableTransition) []AvailableTransitionResponse {
	resp := make([]AvailableTransitionResponse, len(items))
	for i, it := range items {
		resp[i] = AvailableTransitionResponse{
			Transition:     string(it.Transition),
			To:             string(it.To),
			ReasonRequired: it.ReasonRequired,
		}
	}
	return resp
}
