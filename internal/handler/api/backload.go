package api

import (
	"net/http"

	reqdto "freight-core/internal/handler/dto/request"
	resdto "freight-core/internal/handler/dto/response"
	"freight-core/internal/handler/httperr"
	"freight-core/internal/pkg/clock"
	"freight-core/internal/usecase/commands"

	"github.com/gin-gonic/gin"
)

type BackloadHandler struct {
	cmds  commands.BackloadCommands
	clock clock.Clock
}

func NewBackloadHandler(cmds commands.BackloadCommands, clk clock.Clock) *BackloadHandler {
	return &BackloadHandler{cmds: cmds, clock: clk}
}

// @Summary Toggle driver availability
// @Description Opens or withdraws the driver's return-trip capacity
// @Tags backload
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.ToggleAvailabilityRequest true "Availability"
// @Success 200 {object} resdto.ToggleAvailabilityResponse
// @Failure 400 {object} httperr.Response
// @Router /backload/availability [post]
func (h *BackloadHandler) ToggleAvailability(c *gin.Context) {
	cl, ok := currentCaller(c)
	if !ok {
		return
	}
	var req reqdto.ToggleAvailabilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}
	driverID, err := cl.driverFor(req.DriverID)
	if err != nil {
		abortWithUseCaseError(c, err, "Invalid request")
		return
	}
	result, err := h.cmds.ToggleDriverAvailability(c.Request.Context(), req.ToCommand(driverID))
	if err != nil {
		abortWithUseCaseError(c, err, "Toggle availability failed")
		return
	}
	c.JSON(http.StatusOK, resdto.FromToggleAvailabilityResult(result))
}

// @Summary Recommend return loads
// @Description Ranks open backload opportunities for a driver finishing a trip
// @Tags backload
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.RecommendationRequest true "Driver position"
// @Success 200 {array} resdto.RecommendationResponse
// @Failure 400 {object} httperr.Response
// @Router /backload/recommendations [post]
func (h *BackloadHandler) Recommendations(c *gin.Context) {
	cl, ok := currentCaller(c)
	if !ok {
		return
	}
	var req reqdto.RecommendationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}
	driverID, err := cl.driverFor(req.DriverID)
	if err != nil {
		abortWithUseCaseError(c, err, "Invalid request")
		return
	}
	recs, err := h.cmds.GenerateLoadRecommendations(c.Request.Context(), req.ToDomain(driverID, h.clock.Now()))
	if err != nil {
		abortWithUseCaseError(c, err, "Generate recommendations failed")
		return
	}
	res, err := resdto.FromRecommendations(recs)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to render recommendations", nil)
		return
	}
	c.JSON(http.StatusOK, res)
}
