package notification

import (
	"go-hris-workflow/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	auth gin.HandlersChain,
	rbacService middleware.RBACService,
) {
	notifications := r.Group("/notifications")
	notifications.Use(auth...)
	{
		notifications.GET("", middleware.RBACAuthorize(rbacService, "notification", "read"), handler.GetAll)
		notifications.PATCH("/:id/read", middleware.RBACAuthorize(rbacService, "notification", "update"), handler.MarkRead)
	}
}
