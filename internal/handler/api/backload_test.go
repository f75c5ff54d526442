//go:build unit

package api_test

import (
	"errors"
	"net/http"
	"testing"
	"time"

	"freight-core/internal/domain/backload"
	"freight-core/internal/handler/api"
	resdto "freight-core/internal/handler/dto/response"
	"freight-core/internal/pkg/clock"
	"freight-core/internal/pkg/jwt"
	"freight-core/internal/usecase/commands"
	"freight-core/tests/common/builder"
	"freight-core/tests/common/httptest"
	"freight-core/tests/common/testutil"
	commandsmock "freight-core/tests/mock/commands"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type BackloadHandlerTestSuite struct {
	suite.Suite
	router   *gin.Engine
	mockCtrl *gomock.Controller
	mockCmds *commandsmock.MockBackloadCommands
	clock    *clock.MockClock
	handler  *api.BackloadHandler
	userID   uuid.UUID
	role     jwt.Role
}

func (s *BackloadHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockCmds = commandsmock.NewMockBackloadCommands(s.mockCtrl)
	s.clock = clock.NewMockClock(builder.FixedNow)
	s.handler = api.NewBackloadHandler(s.mockCmds, s.clock)

	s.userID = uuid.New()
	s.role = jwt.RoleDriver

	g := s.router.Group("/backload", fakeAuth(s.userID, &s.role))
	g.POST("/availability", s.handler.ToggleAvailability)
	g.POST("/recommendations", s.handler.Recommendations)
}

func (s *BackloadHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestBackloadHandlerSuite(t *testing.T) {
	suite.Run(t, new(BackloadHandlerTestSuite))
}

// ================================================================================
// TestToggleAvailability
// ================================================================================

func (s *BackloadHandlerTestSuite) TestToggleAvailability() {
	url := "/backload/availability"
	vehicleID := uuid.New()
	from := builder.FixedNow.Add(2 * time.Hour)
	reqBody := map[string]any{
		"vehicle_id":       vehicleID.String(),
		"is_available":     true,
		"origin_city":      "Jeddah",
		"destination_city": "Riyadh",
		"available_from":   from.Format(time.RFC3339),
		"available_to":     from.Add(12 * time.Hour).Format(time.RFC3339),
		"capacity_kg":      8000,
	}
	opportunityID := uuid.New()

	s.Run("success: driver opens return capacity", func() {
		s.mockCmds.EXPECT().ToggleDriverAvailability(gomock.Any(), gomock.Cond(func(cmd commands.ToggleAvailabilityRequest) bool {
			return cmd.DriverID == s.userID && cmd.VehicleID == vehicleID && cmd.IsAvailable &&
				cmd.OriginCity == "Jeddah" && cmd.CapacityKg == 8000 && cmd.AvailableFrom.Equal(from)
		})).Return(&commands.ToggleAvailabilityResult{Success: true, OpportunityID: &opportunityID}, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "bearer-token")

		var response resdto.ToggleAvailabilityResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.True(response.Success)
		s.Require().NotNil(response.OpportunityID)
		s.Equal(opportunityID, *response.OpportunityID)
	})

	s.Run("success: withdrawing needs no route", func() {
		body := map[string]any{"vehicle_id": vehicleID.String(), "is_available": false}
		s.mockCmds.EXPECT().ToggleDriverAvailability(gomock.Any(), gomock.Cond(func(cmd commands.ToggleAvailabilityRequest) bool {
			return !cmd.IsAvailable && cmd.DriverID == s.userID
		})).Return(&commands.ToggleAvailabilityResult{Success: true}, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, body, "bearer-token")

		var response resdto.ToggleAvailabilityResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Nil(response.OpportunityID)
	})

	s.Run("error: 400 Bad Request on validation errors", func() {
		testCases := []testCaseRequest{
			{name: "vehicle missing", mutate: testutil.Field("vehicle_id", nil), expectCode: http.StatusBadRequest},
			{name: "origin missing while available", mutate: testutil.Field("origin_city", nil), expectCode: http.StatusBadRequest},
			{name: "destination missing while available", mutate: testutil.Field("destination_city", nil), expectCode: http.StatusBadRequest},
			{name: "window start missing while available", mutate: testutil.Field("available_from", nil), expectCode: http.StatusBadRequest},
			{name: "negative capacity", mutate: testutil.Field("capacity_kg", -1), expectCode: http.StatusBadRequest},
		}
		for _, tc := range testCases {
			s.Run(tc.name, func() {
				requestMap := testutil.DtoMap(s.T(), reqBody, tc.mutate)
				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, requestMap, "bearer-token")
				httptest.AssertErrorResponse(s.T(), rec, tc.expectCode, "Invalid request")
			})
		}
	})

	s.Run("error: 400 Bad Request when an operator omits driver_id", func() {
		s.role = jwt.RoleOperator
		defer func() { s.role = jwt.RoleDriver }()

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid request")
	})

	s.Run("success: operator toggles on a driver's behalf", func() {
		s.role = jwt.RoleOperator
		defer func() { s.role = jwt.RoleDriver }()

		driverID := uuid.New()
		body := testutil.DtoMap(s.T(), reqBody, testutil.Field("driver_id", driverID.String()))
		s.mockCmds.EXPECT().ToggleDriverAvailability(gomock.Any(), gomock.Cond(func(cmd commands.ToggleAvailabilityRequest) bool {
			return cmd.DriverID == driverID
		})).Return(&commands.ToggleAvailabilityResult{Success: true, OpportunityID: &opportunityID}, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, body, "bearer-token")
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, nil)
	})

	s.Run("error: 401 Unauthorized when unauthenticated", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusUnauthorized, "Unauthorized")
	})

	s.Run("error: maps usecase errors to proper statuses", func() {
		testCases := []struct {
			name           string
			commandsError  error
			expectedStatus int
		}{
			{name: "inverted window", commandsError: backload.ErrInvalidWindow, expectedStatus: http.StatusBadRequest},
			{name: "route missing", commandsError: backload.ErrMissingRoute, expectedStatus: http.StatusBadRequest},
			{name: "opportunity already closed", commandsError: backload.ErrOpportunityClosed, expectedStatus: http.StatusConflict},
			{name: "internal server error", commandsError: errors.New("database error"), expectedStatus: http.StatusInternalServerError},
		}
		for _, tc := range testCases {
			s.Run(tc.name, func() {
				s.mockCmds.EXPECT().ToggleDriverAvailability(gomock.Any(), gomock.Any()).Return(nil, tc.commandsError).Times(1)

				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "bearer-token")
				httptest.AssertErrorResponse(s.T(), rec, tc.expectedStatus, "Toggle availability failed")
			})
		}
	})
}

// ================================================================================
// TestRecommendations
// ================================================================================

func (s *BackloadHandlerTestSuite) TestRecommendations() {
	url := "/backload/recommendations"
	reqBody := map[string]any{"current_city": "Jeddah", "destination_city": "Riyadh"}
	recs := []backload.Recommendation{
		{
			OpportunityID:     uuid.New(),
			OriginCity:        "Jeddah",
			DestinationCity:   "Riyadh",
			DistanceKm:        0,
			EstimatedEarnings: 2112.75,
			MatchScore:        75,
			Reason:            backload.ReasonPerfectRouteMatch,
		},
		{
			OpportunityID:     uuid.New(),
			OriginCity:        "Mecca",
			DestinationCity:   "Dammam",
			DistanceKm:        70,
			EstimatedEarnings: 3100,
			MatchScore:        41,
			Reason:            backload.ReasonHighEarnings,
		},
	}

	s.Run("success: completion time defaults to now", func() {
		s.mockCmds.EXPECT().GenerateLoadRecommendations(gomock.Any(), backload.RecommendationRequest{
			DriverID:        s.userID,
			CurrentCity:     "Jeddah",
			DestinationCity: "Riyadh",
			CompletionTime:  builder.FixedNow,
		}).Return(recs, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "bearer-token")

		var response []resdto.RecommendationResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Require().Len(response, 2)
		s.Equal(recs[0].OpportunityID, response[0].OpportunityID)
		s.Equal("PERFECT_ROUTE_MATCH", response[0].Reason)
		s.Equal(75.0, response[0].MatchScore)
		s.Equal("HIGH_EARNINGS", response[1].Reason)
		s.Equal(70.0, response[1].DistanceKm)
	})

	s.Run("success: explicit completion time is used", func() {
		completion := builder.FixedNow.Add(5 * time.Hour)
		body := testutil.DtoMap(s.T(), reqBody, testutil.Field("completion_time", completion.Format(time.RFC3339)))
		s.mockCmds.EXPECT().GenerateLoadRecommendations(gomock.Any(), gomock.Cond(func(req backload.RecommendationRequest) bool {
			return req.CompletionTime.Equal(completion)
		})).Return(nil, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, body, "bearer-token")

		var response []resdto.RecommendationResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Empty(response)
	})

	s.Run("error: 400 Bad Request when current city is missing", func() {
		body := testutil.DtoMap(s.T(), reqBody, testutil.Field("current_city", nil))
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, body, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid request")
	})

	s.Run("error: 400 Bad Request when an operator omits driver_id", func() {
		s.role = jwt.RoleOperator
		defer func() { s.role = jwt.RoleDriver }()

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid request")
	})

	s.Run("error: 500 Internal Server Error when ranking fails", func() {
		s.mockCmds.EXPECT().GenerateLoadRecommendations(gomock.Any(), gomock.Any()).
			Return(nil, errors.New("database error")).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusInternalServerError, "Generate recommendations failed")
	})
}
