package api

import (
	"net/http"
	"strconv"
	"time"

	resdto "freight-core/internal/handler/dto/response"
	"freight-core/internal/handler/httperr"
	"freight-core/internal/pkg/clock"
	"freight-core/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

const periodLayout = "2006-01"

type AnalyticsHandler struct {
	q     queries.AnalyticsQueries
	clock clock.Clock
}

func NewAnalyticsHandler(q queries.AnalyticsQueries, clk clock.Clock) *AnalyticsHandler {
	return &AnalyticsHandler{q: q, clock: clk}
}

// @Summary Route heatmap
// @Description Utilization of every route in a calendar month, busiest first
// @Tags analytics
// @Produce json
// @Security BearerAuth
// @Param period query string false "Month as YYYY-MM, defaults to the current month"
// @Success 200 {array} resdto.RouteUtilizationResponse
// @Failure 400 {object} httperr.Response
// @Router /analytics/routes/heatmap [get]
func (h *AnalyticsHandler) Heatmap(c *gin.Context) {
	period, ok := h.period(c)
	if !ok {
		return
	}
	views, err := h.q.GetRouteHeatmap(c.Request.Context(), period)
	if err != nil {
		abortWithUseCaseError(c, err, "Failed to load heatmap")
		return
	}
	res, err := resdto.FromRouteViews(views)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to render heatmap", nil)
		return
	}
	c.JSON(http.StatusOK, res)
}

// @Summary Imbalanced routes
// @Description Routes whose outbound and return volumes differ by more than the threshold
// @Tags analytics
// @Produce json
// @Security BearerAuth
// @Param period query string false "Month as YYYY-MM, defaults to the current month"
// @Param threshold query number false "Imbalance threshold in percent, defaults to the configured value"
// @Success 200 {array} resdto.ImbalancedRouteResponse
// @Failure 400 {object} httperr.Response
// @Router /analytics/routes/imbalanced [get]
func (h *AnalyticsHandler) Imbalanced(c *gin.Context) {
	period, ok := h.period(c)
	if !ok {
		return
	}
	var threshold float64
	if raw := c.Query("threshold"); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil || v < 0 || v > 100 {
			httperr.AbortWithError(c, http.StatusBadRequest, errInvalidThreshold, "Invalid threshold", nil)
			return
		}
		threshold = v
	}
	views, err := h.q.GetImbalancedRoutes(c.Request.Context(), threshold, period)
	if err != nil {
		abortWithUseCaseError(c, err, "Failed to load imbalanced routes")
		return
	}
	res, err := resdto.FromImbalancedViews(views)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to render routes", nil)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *AnalyticsHandler) period(c *gin.Context) (time.Time, bool) {
	raw := c.Query("period")
	if raw == "" {
		return h.clock.Now().UTC(), true
	}
	t, err := time.ParseInLocation(periodLayout, raw, time.UTC)
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid period", "expected YYYY-MM")
		return time.Time{}, false
	}
	return t, true
}
