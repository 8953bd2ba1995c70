package advocate

import (
	"fmt"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/simp-lee/advocates/internal/domain"
	"github.com/simp-lee/advocates/internal/pkg"
)

// AdvocateHandler handles REST API requests for the advocate resource.
type AdvocateHandler struct {
	svc  domain.AdvocateService
	opts pkg.ListingOptions
}

// NewAdvocateHandler creates a new AdvocateHandler with the given service and
// listing options.
func NewAdvocateHandler(svc domain.AdvocateService, opts pkg.ListingOptions) *AdvocateHandler {
	return &AdvocateHandler{svc: svc, opts: opts}
}

// List handles GET /api/v1/advocates and GET /listing.
//
// Query params: column, sort (asc|desc), cursor, direction (next|prev),
// pageSize. Responds with {data, pagination}.
func (h *AdvocateHandler) List(c *gin.Context) {
	req, err := pkg.ParseCursorRequest(c, Columns, h.opts)
	if err != nil {
		pkg.Error(c, err)
		return
	}

	page, err := h.svc.ListAdvocates(c.Request.Context(), req)
	if err != nil {
		pkg.Error(c, err)
		return
	}

	pkg.CursorList(c, page)
}

// Create handles POST /api/v1/advocates.
func (h *AdvocateHandler) Create(c *gin.Context) {
	var req CreateAdvocateRequest
	if !pkg.BindAndValidate(c, &req) {
		return
	}

	advocate, err := h.svc.CreateAdvocate(c.Request.Context(), req.toDomain())
	if err != nil {
		pkg.Error(c, err)
		return
	}

	pkg.Created(c, advocate)
}

// Get handles GET /api/v1/advocates/:id.
func (h *AdvocateHandler) Get(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		pkg.Error(c, domain.NewAppError(domain.CodeValidation, err.Error(), nil))
		return
	}

	advocate, err := h.svc.GetAdvocate(c.Request.Context(), id)
	if err != nil {
		pkg.Error(c, err)
		return
	}

	pkg.Success(c, advocate)
}

// Delete handles DELETE /api/v1/advocates/:id.
func (h *AdvocateHandler) Delete(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		pkg.Error(c, domain.NewAppError(domain.CodeValidation, err.Error(), nil))
		return
	}

	if err := h.svc.DeleteAdvocate(c.Request.Context(), id); err != nil {
		pkg.Error(c, err)
		return
	}

	pkg.Success(c, nil)
}

func parseID(c *gin.Context) (uint, error) {
	idStr := c.Param("id")
	id, err := strconv.ParseUint(idStr, 10, 64)
	if err != nil || id == 0 || id > uint64(^uint(0)) {
		return 0, fmt.Errorf("invalid id: %s", idStr)
	}
	return uint(id), nil
}
