package api

import (
	"net/http"

	"freight-core/internal/domain/backload"
	"freight-core/internal/domain/booking"
	"freight-core/internal/domain/geo"
	"freight-core/internal/domain/sharedload"
	"freight-core/internal/domain/utilization"
	"freight-core/internal/handler/httperr"
	"freight-core/internal/handler/middleware"
	"freight-core/internal/pkg/errs"
	"freight-core/internal/pkg/jwt"
	"freight-core/internal/usecase/commands"
	"freight-core/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

var (
	errUnauthenticated  = errs.New("caller identity missing from request context")
	errActorRequired    = errs.New("driver_id is required when acting for a driver")
	errInvalidThreshold = errs.New("threshold must be a number between 0 and 100")
)

type statusRule struct {
	status  int
	targets []error
}

// statusRules is scanned in order; the first matching rule wins.
var statusRules = []statusRule{
	{http.StatusNotFound, []error{
		commands.ErrBookingNotFound, commands.ErrPoolNotFound,
		queries.ErrBookingNotFound, queries.ErrPoolNotFound,
	}},
	{http.StatusForbidden, []error{booking.ErrNotBookingCustomer}},
	{http.StatusConflict, []error{
		commands.ErrConcurrentUpdate,
		booking.ErrInvalidTransition, booking.ErrAlreadyTerminal,
		sharedload.ErrPoolClosed, sharedload.ErrPoolAlreadyClosed, sharedload.ErrBookingAlreadyIn,
		backload.ErrNotAvailable, backload.ErrOpportunityClosed,
	}},
	{http.StatusBadRequest, []error{
		errActorRequired,
		geo.ErrInvalidCoordinates, geo.ErrCityRequired,
		booking.ErrInvalidCargo, booking.ErrInvalidContact, booking.ErrInvalidBookingType,
		booking.ErrMissingParty, booking.ErrMissingPickupTime, booking.ErrCancelReasonMissing,
		backload.ErrInvalidWindow, backload.ErrInvalidCapacity, backload.ErrMissingRoute, backload.ErrMissingDriver,
		sharedload.ErrInvalidCapacity, sharedload.ErrInvalidLoad, sharedload.ErrMissingRouteFields,
		utilization.ErrMissingCities,
	}},
	{http.StatusUnprocessableEntity, []error{
		booking.ErrInvalidDiscount, booking.ErrInvalidFare, booking.ErrDriverNotAssigned,
		sharedload.ErrExceedsCapacity, sharedload.ErrBookingNotInPool,
	}},
	{http.StatusBadGateway, []error{commands.ErrFareUnavailable}},
	{http.StatusServiceUnavailable, []error{commands.ErrBookingNumberExhausted}},
}

func statusFor(err error) int {
	for _, rule := range statusRules {
		for _, target := range rule.targets {
			if errs.Is(err, target) {
				return rule.status
			}
		}
	}
	return http.StatusInternalServerError
}

// abortWithUseCaseError maps domain and command errors to a status. Details
// are only exposed for client errors.
func abortWithUseCaseError(c *gin.Context, err error, msg string) {
	status := statusFor(err)
	var detail any
	if status < http.StatusInternalServerError {
		detail = err.Error()
	}
	httperr.AbortWithError(c, status, err, msg, detail)
}

func pathID(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid id", nil)
		return uuid.Nil, false
	}
	return id, true
}

type caller struct {
	id   uuid.UUID
	role jwt.Role
}

func currentCaller(c *gin.Context) (caller, bool) {
	id, okID := middleware.GetUserID(c)
	role, okRole := middleware.GetUserRole(c)
	if !okID || !okRole {
		httperr.AbortWithError(c, http.StatusUnauthorized, errUnauthenticated, "Unauthorized", nil)
		return caller{}, false
	}
	return caller{id: id, role: role}, true
}

// actingFor resolves whose behalf a request is made on. Operators may name
// another party; everyone else always acts as themselves.
func (cl caller) actingFor(requested *uuid.UUID) uuid.UUID {
	if cl.role == jwt.RoleOperator && requested != nil {
		return *requested
	}
	return cl.id
}

// customerFor resolves the booking owner a customer-side action is checked
// against. Operators may skip the check by naming nobody.
func (cl caller) customerFor(requested *uuid.UUID) *uuid.UUID {
	if cl.role == jwt.RoleOperator {
		return requested
	}
	id := cl.id
	return &id
}

// driverFor resolves the driver a driver-side action is about. Operators
// must name the driver explicitly.
func (cl caller) driverFor(requested *uuid.UUID) (uuid.UUID, error) {
	if cl.role != jwt.RoleOperator {
		return cl.id, nil
	}
	if requested == nil || *requested == uuid.Nil {
		return uuid.Nil, errActorRequired
	}
	return *requested, nil
}
