package api

import (
	"context"
	"net/http"

	reqdto "freight-core/internal/handler/dto/request"
	resdto "freight-core/internal/handler/dto/response"
	"freight-core/internal/handler/httperr"
	"freight-core/internal/usecase/commands"
	"freight-core/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type BookingHandler struct {
	cmds   commands.BookingCommands
	assign commands.AssignmentCommands
	q      queries.BookingQueries
}

func NewBookingHandler(cmds commands.BookingCommands, assign commands.AssignmentCommands, q queries.BookingQueries) *BookingHandler {
	return &BookingHandler{cmds: cmds, assign: assign, q: q}
}

// @Summary Create booking
// @Description Quote and create a pending one-way or backload booking
// @Tags bookings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.CreateBookingRequest true "Create booking request"
// @Success 201 {object} resdto.CreateBookingResponse
// @Failure 400 {object} httperr.Response
// @Failure 401 {object} httperr.Response
// @Failure 502 {object} httperr.Response
// @Router /bookings [post]
func (h *BookingHandler) Create(c *gin.Context) {
	cl, ok := currentCaller(c)
	if !ok {
		return
	}
	var req reqdto.CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}
	cmd, err := req.ToCommand(cl.actingFor(req.CustomerID))
	if err != nil {
		abortWithUseCaseError(c, err, "Invalid request")
		return
	}

	result, err := h.cmds.CreateBooking(c.Request.Context(), cmd)
	if err != nil {
		abortWithUseCaseError(c, err, "Create booking failed")
		return
	}
	c.Header("Location", "/api/v1/bookings/"+result.BookingID.String())
	c.JSON(http.StatusCreated, resdto.FromCreateBookingResult(result))
}

// @Summary Get booking
// @Tags bookings
// @Produce json
// @Security BearerAuth
// @Param id path string true "Booking ID"
// @Success 200 {object} resdto.BookingResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /bookings/{id} [get]
func (h *BookingHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	view, err := h.q.GetBooking(c.Request.Context(), id)
	if err != nil {
		abortWithUseCaseError(c, err, "Failed to get booking")
		return
	}
	res, err := resdto.FromBookingView(view)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to render booking", nil)
		return
	}
	c.JSON(http.StatusOK, res)
}

// @Summary Assign driver
// @Description Runs the compliance check and assigns the driver and vehicle. A failed check is reported with success=false.
// @Tags bookings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Booking ID"
// @Param request body reqdto.AssignDriverRequest true "Assignment"
// @Success 200 {object} resdto.AssignDriverResponse
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /bookings/{id}/assign [post]
func (h *BookingHandler) Assign(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req reqdto.AssignDriverRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}
	result, err := h.assign.AssignDriver(c.Request.Context(), req.ToCommand(id))
	if err != nil {
		abortWithUseCaseError(c, err, "Assign driver failed")
		return
	}
	res, err := resdto.FromAssignDriverResult(result)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to render result", nil)
		return
	}
	c.JSON(http.StatusOK, res)
}

// @Summary Mark driver reached pickup
// @Description Validates the reported position against the pickup geofence
// @Tags bookings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Booking ID"
// @Param request body reqdto.MarkReachedRequest true "Reported position"
// @Success 200 {object} resdto.MarkReachedResponse
// @Failure 400 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /bookings/{id}/reached [post]
func (h *BookingHandler) Reached(c *gin.Context) {
	cl, ok := currentCaller(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req reqdto.MarkReachedRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}
	driverID, err := cl.driverFor(req.DriverID)
	if err != nil {
		abortWithUseCaseError(c, err, "Invalid request")
		return
	}
	result, err := h.assign.MarkDriverReached(c.Request.Context(), req.ToCommand(id, driverID))
	if err != nil {
		abortWithUseCaseError(c, err, "Mark reached failed")
		return
	}
	c.JSON(http.StatusOK, resdto.FromMarkReachedResult(result))
}

// @Summary Accept booking
// @Tags bookings
// @Produce json
// @Security BearerAuth
// @Accept json
// @Param id path string true "Booking ID"
// @Param request body reqdto.TransitionRequest false "Driver, required for operators"
// @Success 200 {object} resdto.SuccessResponse
// @Failure 400 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Failure 422 {object} httperr.Response
// @Router /bookings/{id}/accept [post]
func (h *BookingHandler) Accept(c *gin.Context) {
	h.transition(c, h.cmds.AcceptBooking, "Accept booking failed")
}

// @Summary Start loading
// @Tags bookings
// @Produce json
// @Security BearerAuth
// @Accept json
// @Param id path string true "Booking ID"
// @Param request body reqdto.TransitionRequest false "Driver, required for operators"
// @Success 200 {object} resdto.SuccessResponse
// @Failure 400 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Failure 422 {object} httperr.Response
// @Router /bookings/{id}/loading [post]
func (h *BookingHandler) StartLoading(c *gin.Context) {
	h.transition(c, h.cmds.StartLoading, "Start loading failed")
}

// @Summary Start transit
// @Tags bookings
// @Produce json
// @Security BearerAuth
// @Accept json
// @Param id path string true "Booking ID"
// @Param request body reqdto.TransitionRequest false "Driver, required for operators"
// @Success 200 {object} resdto.SuccessResponse
// @Failure 400 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Failure 422 {object} httperr.Response
// @Router /bookings/{id}/transit [post]
func (h *BookingHandler) StartTransit(c *gin.Context) {
	h.transition(c, h.cmds.StartTransit, "Start transit failed")
}

// @Summary Mark delivered
// @Tags bookings
// @Produce json
// @Security BearerAuth
// @Accept json
// @Param id path string true "Booking ID"
// @Param request body reqdto.TransitionRequest false "Driver, required for operators"
// @Success 200 {object} resdto.SuccessResponse
// @Failure 400 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Failure 422 {object} httperr.Response
// @Router /bookings/{id}/delivered [post]
func (h *BookingHandler) Delivered(c *gin.Context) {
	h.transition(c, h.cmds.MarkDelivered, "Mark delivered failed")
}

func (h *BookingHandler) transition(c *gin.Context, fn func(ctx context.Context, bookingID, driverID uuid.UUID) error, failMsg string) {
	cl, ok := currentCaller(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req reqdto.TransitionRequest
	if !bindOptionalJSON(c, &req) {
		return
	}
	driverID, err := cl.driverFor(req.DriverID)
	if err != nil {
		abortWithUseCaseError(c, err, "Invalid request")
		return
	}
	if err := fn(c.Request.Context(), id, driverID); err != nil {
		abortWithUseCaseError(c, err, failMsg)
		return
	}
	c.JSON(http.StatusOK, resdto.SuccessResponse{Success: true})
}

// @Summary Complete booking
// @Tags bookings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Booking ID"
// @Param request body reqdto.CompleteBookingRequest false "Completion time, defaults to now"
// @Success 200 {object} resdto.SuccessResponse
// @Failure 400 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Failure 422 {object} httperr.Response
// @Router /bookings/{id}/complete [post]
func (h *BookingHandler) Complete(c *gin.Context) {
	cl, ok := currentCaller(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req reqdto.CompleteBookingRequest
	if !bindOptionalJSON(c, &req) {
		return
	}
	driverID, err := cl.driverFor(req.DriverID)
	if err != nil {
		abortWithUseCaseError(c, err, "Invalid request")
		return
	}
	result, err := h.cmds.CompleteBooking(c.Request.Context(), id, driverID, req.CompletedAtOrZero())
	if err != nil {
		abortWithUseCaseError(c, err, "Complete booking failed")
		return
	}
	c.JSON(http.StatusOK, resdto.SuccessResponse{Success: result.Success})
}

// @Summary Cancel booking
// @Tags bookings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Booking ID"
// @Param request body reqdto.CancelBookingRequest true "Cancellation"
// @Success 200 {object} resdto.SuccessResponse
// @Failure 400 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /bookings/{id}/cancel [post]
func (h *BookingHandler) Cancel(c *gin.Context) {
	cl, ok := currentCaller(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req reqdto.CancelBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}
	if err := h.cmds.CancelBooking(c.Request.Context(), id, cl.customerFor(req.CustomerID), req.Reason); err != nil {
		abortWithUseCaseError(c, err, "Cancel booking failed")
		return
	}
	c.JSON(http.StatusOK, resdto.SuccessResponse{Success: true})
}

// @Summary Apply discount
// @Tags bookings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Booking ID"
// @Param request body reqdto.ApplyDiscountRequest true "Discount"
// @Success 200 {object} resdto.SuccessResponse
// @Failure 409 {object} httperr.Response
// @Failure 422 {object} httperr.Response
// @Router /bookings/{id}/discount [post]
func (h *BookingHandler) Discount(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req reqdto.ApplyDiscountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}
	if err := h.cmds.ApplyDiscount(c.Request.Context(), id, req.Amount); err != nil {
		abortWithUseCaseError(c, err, "Apply discount failed")
		return
	}
	c.JSON(http.StatusOK, resdto.SuccessResponse{Success: true})
}

// bindOptionalJSON binds the body only when one was sent.
func bindOptionalJSON(c *gin.Context, dst any) bool {
	if c.Request.ContentLength <= 0 {
		return true
	}
	if err := c.ShouldBindJSON(dst); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return false
	}
	return true
}
