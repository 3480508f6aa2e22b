package approval

import (
	"go-hris-workflow/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	auth gin.HandlersChain,
	rbacService middleware.RBACService,
	transitionLimit gin.HandlerFunc,
) {
	requests := r.Group("/requests/:id")
	requests.Use(auth...)
	{
		requests.GET("/transitions", middleware.RBACAuthorize(rbacService, "request", "read"), handler.Available)
		requests.GET("/history", middleware.RBACAuthorize(rbacService, "request", "read"), handler.History)
		requests.POST("/transitions/:transition",
			transitionLimit,
			middleware.RBACAuthorize(rbacService, "request", "transition"),
			handler.Transition,
		)
	}
}
