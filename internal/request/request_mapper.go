package request

import "time"

func MapToResponse(r Request) RequestResponse {
	resp := RequestResponse{
		ID:              r.ID.String(),
		CompanyID:       r.CompanyID.String(),
		Number:          r.Number,
		Type:            string(r.Type),
		State:           string(r.State),
		RequesterID:     r.RequesterID.String(),
		ReplacementRef:  r.ReplacementRef,
		RejectionReason: r.RejectionReason,
		StartDate:       formatDate(r.StartDate),
		EndDate:         formatDate(r.EndDate),
		TotalDays:       r.TotalDays,
		ShiftDate:       formatDate(r.ShiftDate),
		Amount:          r.Amount,
		Reason:          r.Reason,
		DocumentRef:     r.DocumentRef,
		Version:         r.Version,
		CreatedAt:       r.CreatedAt.Format(time.RFC3339),
		UpdatedAt:       r.UpdatedAt.Format(time.RFC3339),
	}
	if r.ReviewerID != nil {
		v := r.ReviewerID.String()
		resp.ReviewerID = &v
	}
	if r.ReviewedAt != nil {
		v := r.ReviewedAt.Format(time.RFC3339)
		resp.ReviewedAt = &v
	}
	return resp
}

func mapToListResponse(rows []Request) []RequestResponse {
	resp := make([]RequestResponse, len(rows))
	for i, r := range rows {
		resp[i] = MapToResponse(r)
	}
	return resp
}

func MapAuditEntries(entries []AuditEntry) []AuditEntryResponse {
	resp := make([]AuditEntryResponse, len(entries))
	for i, e := range entries {
		resp[i] = AuditEntryResponse{
			ID:         e.ID.String(),
			Sequence:   e.Sequence,
			FromState:  string(e.FromState),
			ToState:    string(e.ToState),
			Transition: string(e.Transition),
			ActorID:    e.ActorID.String(),
			Note:       e.Note,
			CreatedAt:  e.CreatedAt.Format(time.RFC3339),
		}
	}
	return resp
}
