//go:build unit

package api_test

import (
	"net/http"
	"testing"
	"time"

	"salon-scheduler/internal/domain/schedule"
	"salon-scheduler/internal/handler/api"
	resdto "salon-scheduler/internal/handler/dto/response"
	"salon-scheduler/internal/usecase/commands"
	"salon-scheduler/internal/usecase/queries"
	"salon-scheduler/tests/common/builder"
	"salon-scheduler/tests/common/httptest"
	commandsmock "salon-scheduler/tests/mock/commands"
	queriesmock "salon-scheduler/tests/mock/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type ScheduleHandlerTestSuite struct {
	suite.Suite
	router      *gin.Engine
	mockCtrl    *gomock.Controller
	mockBlocks  *commandsmock.MockBlockedTimeCommands
	mockQueries *queriesmock.MockScheduleQueries
	handler     *api.ScheduleHandler
}

func (s *ScheduleHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockBlocks = commandsmock.NewMockBlockedTimeCommands(s.mockCtrl)
	s.mockQueries = queriesmock.NewMockScheduleQueries(s.mockCtrl)
	s.handler = api.NewScheduleHandler(s.mockBlocks, s.mockQueries)

	s.router.GET("/professionals/:id/blocked-times", s.handler.GetBlockedTimes)
	s.router.POST("/professionals/:id/blocked-times", s.handler.BlockTime)
	s.router.DELETE("/blocked-times/:id", s.handler.UnblockTime)
	s.router.GET("/professionals/:id/conflicts", s.handler.CheckConflict)
	s.router.GET("/professionals/:id/next-available", s.handler.NextAvailable)
}

func (s *ScheduleHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestScheduleHandlerSuite(t *testing.T) {
	suite.Run(t, new(ScheduleHandlerTestSuite))
}

// ================================================================================
// TestBlockTime
// ================================================================================

func (s *ScheduleHandlerTestSuite) TestBlockTime() {
	tenantID, proID := uuid.New(), uuid.New()
	url := "/professionals/" + proID.String() + "/blocked-times"
	reqBody := map[string]any{"start": builder.At(12, 0), "end": builder.At(13, 0), "reason": "lunch"}
	block := schedule.NewManualBlock(tenantID, proID, builder.Interval(12, 0, 13, 0), "lunch", builder.At(8, 0))

	s.Run("success: returns 201 Created with the block", func() {
		s.mockBlocks.EXPECT().BlockTime(gomock.Any(), commands.BlockTimeInput{
			ProfessionalID: proID,
			Start:          builder.At(12, 0),
			End:            builder.At(13, 0),
			Reason:         "lunch",
		}).Return(&block, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "")

		var body resdto.BlockedTimeResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusCreated, &body)
		s.Equal(block.ID, body.ID)
		s.Equal("manual", body.Kind)
	})

	s.Run("error: 409 Conflict over an existing booking", func() {
		bookingID := uuid.New()
		s.mockBlocks.EXPECT().BlockTime(gomock.Any(), gomock.Any()).
			Return(nil, &schedule.ConflictError{
				Candidate:   builder.Interval(12, 0, 13, 0),
				Conflicting: builder.Interval(12, 30, 13, 15),
				Kind:        schedule.BlockKindBooking,
				BookingID:   &bookingID,
			}).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusConflict, "conflicts with booking "+bookingID.String())
		s.Contains(rec.Body.String(), bookingID.String())
	})

	s.Run("error: 400 Bad Request without end", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, map[string]any{"start": builder.At(12, 0)}, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid request format")
	})
}

func (s *ScheduleHandlerTestSuite) TestUnblockTime() {
	id := uuid.New()

	s.Run("success: returns 204 No Content", func() {
		s.mockBlocks.EXPECT().UnblockTime(gomock.Any(), id).Return(nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodDelete, "/blocked-times/"+id.String(), nil, "")
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusNoContent, nil)
	})

	s.Run("error: 404 Not Found for a released block", func() {
		s.mockBlocks.EXPECT().UnblockTime(gomock.Any(), id).Return(commands.ErrAlreadyRetired).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodDelete, "/blocked-times/"+id.String(), nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "Resource not found")
	})

	s.Run("error: 400 Bad Request for a booking-owned block", func() {
		s.mockBlocks.EXPECT().UnblockTime(gomock.Any(), id).Return(commands.ErrBookingBlock).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodDelete, "/blocked-times/"+id.String(), nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "cancelling the booking")
	})
}

// ================================================================================
// TestCheckConflict
// ================================================================================

func (s *ScheduleHandlerTestSuite) TestCheckConflict() {
	proID := uuid.New()
	base := "/professionals/" + proID.String() + "/conflicts?start=2025-03-10T10:00:00Z&end=2025-03-10T10:30:00Z"
	candidate := builder.Interval(10, 0, 10, 30)

	s.Run("success: free interval is available", func() {
		s.mockQueries.EXPECT().CheckConflict(gomock.Any(), proID, candidate.Start(), candidate.End(), (*uuid.UUID)(nil)).
			Return(&queries.ConflictCheck{Candidate: candidate}, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, base, nil, "")

		var body resdto.ConflictCheckResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.True(body.Available)
		s.Nil(body.Conflict)
	})

	s.Run("success: conflict is reported, not raised", func() {
		exclude := uuid.New()
		s.mockQueries.EXPECT().CheckConflict(gomock.Any(), proID, gomock.Any(), gomock.Any(), &exclude).
			Return(&queries.ConflictCheck{Candidate: candidate, Err: &schedule.ConflictError{
				Candidate:   candidate,
				Conflicting: builder.Interval(10, 15, 11, 0),
				Kind:        schedule.BlockKindManual,
				BlockID:     uuid.New(),
			}}, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, base+"&exclude_booking_id="+exclude.String(), nil, "")

		var body resdto.ConflictCheckResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.False(body.Available)
		s.Require().NotNil(body.Conflict)
		s.Nil(body.OutOfHours)
	})

	s.Run("success: closed day is reported as out of hours", func() {
		s.mockQueries.EXPECT().CheckConflict(gomock.Any(), proID, gomock.Any(), gomock.Any(), gomock.Any()).
			Return(&queries.ConflictCheck{Candidate: candidate, Err: &schedule.OutOfHoursError{
				Date: "2025-03-10", Weekday: time.Monday, TimeZone: "UTC",
			}}, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, base, nil, "")

		var body resdto.ConflictCheckResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.False(body.Available)
		s.NotNil(body.OutOfHours)
	})

	s.Run("error: 400 Bad Request for malformed exclude id", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, base+"&exclude_booking_id=nope", nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid exclude_booking_id format")
	})
}

// ================================================================================
// TestNextAvailable
// ================================================================================

func (s *ScheduleHandlerTestSuite) TestNextAvailable() {
	proID := uuid.New()
	url := "/professionals/" + proID.String() + "/next-available"

	s.Run("success: returns the earliest slot", func() {
		s.mockQueries.EXPECT().NextAvailable(gomock.Any(), proID, 45*time.Minute, (*time.Time)(nil)).
			Return(builder.Interval(9, 0, 9, 45), nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url+"?duration=45", nil, "")

		var body resdto.SlotResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Equal(45, body.DurationMinutes)
		s.Equal(builder.At(9, 0), body.Start.UTC())
	})

	s.Run("error: 404 Not Found when the horizon is full", func() {
		s.mockQueries.EXPECT().NextAvailable(gomock.Any(), proID, 30*time.Minute, gomock.Any()).
			Return(schedule.Interval{}, queries.ErrNoAvailability).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url+"?duration=30", nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "")
	})

	s.Run("error: 400 Bad Request for zero duration", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url+"?duration=0", nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid request format")
	})
}
