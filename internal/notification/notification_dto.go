package notification

type ListNotificationsQuery struct {
	UnreadOnly bool `form:"unread_only"`
	Page       int  `form:"page"`
	PageSize   int  `form:"page_size"`
}

func (q *ListNotificationsQuery) normalize() {
	if q.Page < 1 {
		q.Page = 1
	}
	if q.PageSize < 1 || q.PageSize > 100 {
		q.PageSize = 20
	}
}

type NotificationResponse struct {
	ID          string  `json:"id"`
	Kind        string  `json:"kind"`
	RequestID   string  `json:"request_id"`
	RequestType string  `json:"request_type"`
	State       string  `json:"state"`
	Message     string  `json:"message"`
	ReadAt      *string `json:"read_at,omitempty"`
	CreatedAt   string  `json:"created_at"`
}
