package app

import "github.com/gin-gonic/gin"

// Module defines the contract for a self-registering business module.
// api is mounted at /api/v1; root is the bare engine group for routes the
// UI calls directly.
type Module interface {
	RegisterRoutes(api *gin.RouterGroup, root *gin.RouterGroup)
}
