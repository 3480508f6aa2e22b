package request

type CreateRequestRequest struct {
	Type           string `json:"type" binding:"required,oneof=VACATION SEVERANCE SHIFT_CHANGE"`
	ReplacementRef string `json:"replacement_ref" binding:"max=64"`
	StartDate      string `json:"start_date"`
	EndDate        string `json:"end_date"`
	ShiftDate      string `json:"shift_date"`
	Amount         *int64 `json:"amount"`
	Reason         string `json:"reason" binding:"max=2000"`
}

type ListRequestsQuery struct {
	Type        string `form:"type"`
	State       string `form:"state"`
	RequesterID string `form:"requester_id" binding:"omitempty,uuid"`
	Page        int    `form:"page"`
	PageSize    int    `form:"page_size"`
}

type RequestResponse struct {
	ID              string  `json:"id"`
	CompanyID       string  `json:"company_id"`
	Number          string  `json:"number"`
	Type            string  `json:"type"`
	State           string  `json:"state"`
	RequesterID     string  `json:"requester_id"`
	ReplacementRef  string  `json:"replacement_ref,omitempty"`
	ReviewerID      *string `json:"reviewer_id,omitempty"`
	ReviewedAt      *string `json:"reviewed_at,omitempty"`
	RejectionReason *string `json:"rejection_reason,omitempty"`
	StartDate       string  `json:"start_date,omitempty"`
	EndDate         string  `json:"end_date,omitempty"`
	TotalDays       int     `json:"total_days,omitempty"`
	ShiftDate       string  `json:"shift_date,omitempty"`
	Amount          *int64  `json:"amount,omitempty"`
	Reason          string  `json:"reason,omitempty"`
	DocumentRef     *string `json:"document_ref,omitempty"`
	Version         int     `json:"version"`
	CreatedAt       string  `json:"created_at"`
	UpdatedAt       string  `json:"updated_at"`
}

type AuditEntryResponse struct {
	ID         string `json:"id"`
	Sequence   int    `json:"sequence"`
	FromState  string `json:"from_state"`
	ToState    string `json:"to_state"`
	Transition string `json:"transition"`
	ActorID    string `json:"actor_id"`
	Note       string `json:"note,omitempty"`
	CreatedAt  string `json:"created_at"`
}
