package request

import (
	"go-hris-workflow/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	auth gin.HandlersChain,
	rbacService middleware.RBACService,
	rdb *redis.Client,
) {
	requests := r.Group("/requests")
	requests.Use(auth...)
	{
		requests.GET("", middleware.RBACAuthorize(rbacService, "request", "read"), handler.GetAll)
		requests.GET("/:id", middleware.RBACAuthorize(rbacService, "request", "read"), handler.GetByID)
		requests.POST("",
			middleware.RBACAuthorize(rbacService, "request", "create"),
			middleware.Idempotency(rdb),
			handler.Create,
		)
		requests.DELETE("/:id", middleware.RBACAuthorize(rbacService, "request", "create"), handler.Delete)
	}
}
