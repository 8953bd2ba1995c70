package advocate

import "github.com/gin-gonic/gin"

// AdvocateModule implements the app.Module interface for the advocate domain.
type AdvocateModule struct {
	handler *AdvocateHandler
}

// NewModule creates a new AdvocateModule. Panics if h is nil.
func NewModule(h *AdvocateHandler) *AdvocateModule {
	if h == nil {
		panic("advocate.NewModule: handler must not be nil")
	}
	return &AdvocateModule{handler: h}
}

// RegisterRoutes registers the advocate API routes and the public listing
// route consumed by the UI.
func (m *AdvocateModule) RegisterRoutes(api *gin.RouterGroup, root *gin.RouterGroup) {
	api.GET("/advocates", m.handler.List)
	api.POST("/advocates", m.handler.Create)
	api.GET("/advocates/:id", m.handler.Get)
	api.DELETE("/advocates/:id", m.handler.Delete)

	root.GET("/listing", m.handler.List)
}
