package notification_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"go-hris-workflow/internal/events"
	"go-hris-workflow/internal/notification"
	notificationerrors "go-hris-workflow/internal/notification/errors"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

type fakeService struct {
	listFn     func(ctx context.Context, companyID, recipientID string, q notification.ListNotificationsQuery) ([]notification.NotificationResponse, int64, error)
	markReadFn func(ctx context.Context, companyID, recipientID, id string) error
}

func (f *fakeService) Record(context.Context, events.RequestNotificationEvent) (bool, error) {
	return false, nil
}
func (f *fakeService) List(ctx context.Context, companyID, recipientID string, q notification.ListNotificationsQuery) ([]notification.NotificationResponse, int64, error) {
	return f.listFn(ctx, companyID, recipientID, q)
}
func (f *fakeService) MarkRead(ctx context.Context, companyID, recipientID, id string) error {
	return f.markReadFn(ctx, companyID, recipientID, id)
}

func TestNotificationHandler_GetAll(t *testing.T) {
	svc := &fakeService{
		listFn: func(ctx context.Context, cid, rid string, q notification.ListNotificationsQuery) ([]notification.NotificationResponse, int64, error) {
			assert.Equal(t, "emp-1", rid)
			assert.True(t, q.UnreadOnly)
			assert.Equal(t, 1, q.Page)
			assert.Equal(t, 20, q.PageSize)
			return []notification.NotificationResponse{{ID: "n-1", Kind: "REQUEST_APPROVED"}}, 1, nil
		},
	}
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/notifications?unread_only=true", nil)
	c.Set("company_id", "company-1")
	c.Set("employee_id", "emp-1")

	notification.NewHandler(svc).GetAll(c)

	assert.Equal(t, http.StatusOK, w.Code)
	var env struct {
		Ok   bool                                `json:"ok"`
		Data []notification.NotificationResponse `json:"data"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	assert.True(t, env.Ok)
	assert.Equal(t, "REQUEST_APPROVED", env.Data[0].Kind)
}

func TestNotificationHandler_MarkReadNotFound(t *testing.T) {
	svc := &fakeService{
		markReadFn: func(ctx context.Context, cid, rid, id string) error {
			return notificationerrors.ErrNotificationNotFound
		},
	}
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPatch, "/notifications/n-1/read", nil)
	c.Params = gin.Params{{Key: "id", Value: "n-1"}}

	notification.NewHandler(svc).MarkRead(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
}
