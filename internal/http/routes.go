package http

import (
	"github.com/gin-gonic/gin"
)

// RouteGroup is a registrable slice of the API surface. The stock and
// reservation endpoints register through it so the router does not need
// to know individual handlers.
type RouteGroup interface {
	RegisterRoutes(rg *gin.RouterGroup, cfg *RouterConfig)
}
