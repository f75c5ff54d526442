package api

import (
	"net/http"

	reqdto "freight-core/internal/handler/dto/request"
	resdto "freight-core/internal/handler/dto/response"
	"freight-core/internal/handler/httperr"
	"freight-core/internal/usecase/commands"
	"freight-core/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

type SharedLoadHandler struct {
	cmds commands.SharedLoadCommands
	q    queries.PoolQueries
}

func NewSharedLoadHandler(cmds commands.SharedLoadCommands, q queries.PoolQueries) *SharedLoadHandler {
	return &SharedLoadHandler{cmds: cmds, q: q}
}

// @Summary Create shared-load booking
// @Description Packs the cargo into the first open pool that fits, or opens a new pool
// @Tags shared-loads
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.CreateSharedLoadRequest true "Shared load request"
// @Success 201 {object} resdto.CreateSharedLoadResponse
// @Failure 400 {object} httperr.Response
// @Failure 422 {object} httperr.Response
// @Router /shared-loads [post]
func (h *SharedLoadHandler) Create(c *gin.Context) {
	cl, ok := currentCaller(c)
	if !ok {
		return
	}
	var req reqdto.CreateSharedLoadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}
	cmd, err := req.ToCommand(cl.actingFor(req.CustomerID))
	if err != nil {
		abortWithUseCaseError(c, err, "Invalid request")
		return
	}
	result, err := h.cmds.CreateSharedLoadBooking(c.Request.Context(), cmd)
	if err != nil {
		abortWithUseCaseError(c, err, "Create shared load booking failed")
		return
	}
	c.Header("Location", "/api/v1/bookings/"+result.BookingID.String())
	c.JSON(http.StatusCreated, resdto.FromCreateSharedLoadResult(result))
}

// @Summary Get shared-load pool
// @Tags shared-loads
// @Produce json
// @Security BearerAuth
// @Param id path string true "Pool ID"
// @Success 200 {object} resdto.PoolResponse
// @Failure 404 {object} httperr.Response
// @Router /shared-loads/pools/{id} [get]
func (h *SharedLoadHandler) GetPool(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	view, err := h.q.GetPool(c.Request.Context(), id)
	if err != nil {
		abortWithUseCaseError(c, err, "Failed to get pool")
		return
	}
	res, err := resdto.FromPoolView(view)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to render pool", nil)
		return
	}
	c.JSON(http.StatusOK, res)
}

// @Summary Close shared-load pool
// @Tags shared-loads
// @Produce json
// @Security BearerAuth
// @Param id path string true "Pool ID"
// @Success 200 {object} resdto.SuccessResponse
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /shared-loads/pools/{id}/close [post]
func (h *SharedLoadHandler) ClosePool(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.cmds.ClosePool(c.Request.Context(), id); err != nil {
		abortWithUseCaseError(c, err, "Close pool failed")
		return
	}
	c.JSON(http.StatusOK, resdto.SuccessResponse{Success: true})
}
