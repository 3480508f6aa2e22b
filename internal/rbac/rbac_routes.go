package rbac

import "github.com/gin-gonic/gin"

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, auth gin.HandlersChain) {
	group := r.Group("/rbac")
	group.Use(auth...)
	{
		group.POST("/enforce", handler.Enforce)
	}
}
