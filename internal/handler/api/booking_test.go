//go:build unit

package api_test

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"testing"

	"salon-scheduler/internal/domain/booking"
	"salon-scheduler/internal/domain/schedule"
	"salon-scheduler/internal/handler/api"
	resdto "salon-scheduler/internal/handler/dto/response"
	"salon-scheduler/internal/handler/httperr"
	"salon-scheduler/internal/pkg/errs"
	"salon-scheduler/internal/usecase/commands"
	"salon-scheduler/internal/usecase/queries"
	"salon-scheduler/internal/usecase/shared"
	"salon-scheduler/tests/common/builder"
	"salon-scheduler/tests/common/httptest"
	"salon-scheduler/tests/common/testutil"
	commandsmock "salon-scheduler/tests/mock/commands"
	queriesmock "salon-scheduler/tests/mock/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type BookingHandlerTestSuite struct {
	suite.Suite
	router       *gin.Engine
	mockCtrl     *gomock.Controller
	mockCommands *commandsmock.MockBookingCommands
	mockQueries  *queriesmock.MockBookingQueries
	handler      *api.BookingHandler
}

func (s *BookingHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockCommands = commandsmock.NewMockBookingCommands(s.mockCtrl)
	s.mockQueries = queriesmock.NewMockBookingQueries(s.mockCtrl)
	s.handler = api.NewBookingHandler(s.mockCommands, s.mockQueries)

	// Mock authentication middleware for testing
	authMiddleware := func(c *gin.Context) {
		if c.GetHeader("Authorization") == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": gin.H{"message": "Unauthorized"}})
			return
		}
		c.Next()
	}

	s.router.POST("/tenants/:tenantId/bookings", authMiddleware, s.handler.CreateBooking)
	s.router.GET("/tenants/:tenantId/bookings", authMiddleware, s.handler.ListBookings)
	s.router.GET("/bookings/:id", authMiddleware, s.handler.GetBooking)
	s.router.POST("/bookings/:id/cancel", authMiddleware, s.handler.CancelBooking)
	s.router.POST("/bookings/:id/reschedule", authMiddleware, s.handler.RescheduleBooking)
	s.router.DELETE("/admin/bookings/:id", authMiddleware, s.handler.DeleteBooking)
}

func (s *BookingHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestBookingHandlerSuite(t *testing.T) {
	suite.Run(t, new(BookingHandlerTestSuite))
}

type testCaseBooking struct {
	name         string
	mutate       func(m map[string]any)
	expectCode   int
	expectInBody string
}

// ================================================================================
// TestCreateBooking
// ================================================================================

func (s *BookingHandlerTestSuite) TestCreateBooking() {
	tenantID := uuid.New()
	url := "/tenants/" + tenantID.String() + "/bookings"

	b := builder.NewBookingBuilder().With(func(b *builder.BookingBuilder) { b.TenantID = tenantID })
	reqBody := b.BuildCreateRequestDTO()
	created := b.BuildReconstructed()

	bound := []testCaseBooking{
		{name: "one service is enough", mutate: testutil.Field("service_ids", []string{uuid.NewString()}), expectCode: http.StatusCreated},
		{name: "end may be omitted", mutate: testutil.Field("end", nil), expectCode: http.StatusCreated},
		{name: "empty service list", mutate: testutil.Field("service_ids", []string{}), expectCode: http.StatusBadRequest},
		{name: "malformed start", mutate: testutil.Field("start", "tomorrow at ten"), expectCode: http.StatusBadRequest},
		{name: "malformed professional id", mutate: testutil.Field("professional_id", "pro-1"), expectCode: http.StatusBadRequest},
	}

	missing := []testCaseBooking{
		{name: "missing field: professional_id (required)", mutate: testutil.Field("professional_id", nil), expectCode: http.StatusBadRequest},
		{name: "missing field: service_ids (required)", mutate: testutil.Field("service_ids", nil), expectCode: http.StatusBadRequest},
		{name: "missing field: start (required)", mutate: testutil.Field("start", nil), expectCode: http.StatusBadRequest},
	}

	allValidationTestCases := [][]testCaseBooking{bound, missing}

	s.Run("success: returns 201 Created with the booking", func() {
		s.mockCommands.EXPECT().Create(gomock.Any(), reqBody.ToInput(tenantID, "")).
			Return(&commands.BookingResult{Booking: created}, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "bearer-token")

		var body resdto.BookingResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusCreated, &body)
		if diff := cmp.Diff(*resdto.FromBooking(created), body); diff != "" {
			s.T().Errorf("Booking response mismatch (-want +got):\n%s", diff)
		}
	})

	s.Run("success: replay returns 200 OK", func() {
		s.mockCommands.EXPECT().Create(gomock.Any(), reqBody.ToInput(tenantID, "retry-1")).
			Return(&commands.BookingResult{Booking: created, Replayed: true}, nil).Times(1)

		rec := httptest.PerformRequestWithHeaders(s.T(), s.router, http.MethodPost, url, reqBody, "bearer-token",
			httptest.IdempotencyKey("retry-1"))

		var body resdto.BookingResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Equal(created.ID(), body.ID)
	})

	s.Run("error: 400 Bad Request on validation errors", func() {
		for _, testCaseGroup := range allValidationTestCases {
			for _, tc := range testCaseGroup {
				s.Run(tc.name, func() {
					requestMap := testutil.DtoMap(s.T(), reqBody, tc.mutate)

					if tc.expectCode == http.StatusCreated {
						s.mockCommands.EXPECT().Create(gomock.Any(), gomock.Any()).
							Return(&commands.BookingResult{Booking: created}, nil).Times(1)
					}
					rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, requestMap, "bearer-token")
					if tc.expectCode == http.StatusCreated {
						httptest.AssertSuccessResponse(s.T(), rec, tc.expectCode, nil)
					} else {
						httptest.AssertErrorResponse(s.T(), rec, tc.expectCode, tc.expectInBody)
					}
				})
			}
		}
	})

	s.Run("error: 400 Bad Request for invalid tenant id", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/tenants/salon-1/bookings", reqBody, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid tenantId format")
	})

	s.Run("error: 400 Bad Request for oversized idempotency key", func() {
		rec := httptest.PerformRequestWithHeaders(s.T(), s.router, http.MethodPost, url, reqBody, "bearer-token",
			httptest.IdempotencyKey(strings.Repeat("k", 129)))
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "idempotency key")
	})

	s.Run("error: 401 Unauthorized when unauthenticated", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusUnauthorized, "Unauthorized")
	})

	s.Run("error: maps usecase errors to proper statuses", func() {
		conflict := &schedule.ConflictError{
			Candidate:   builder.Interval(10, 0, 10, 45),
			Conflicting: builder.Interval(10, 30, 11, 0),
			Kind:        schedule.BlockKindManual,
			BlockID:     uuid.New(),
		}
		closed := &schedule.OutOfHoursError{Date: "2025-03-09", TimeZone: "UTC"}

		testCases := []struct {
			name           string
			commandsError  error
			expectedStatus int
			expectedMsg    string
			expectedCode   string
		}{
			{
				name:           "overlapping interval",
				commandsError:  errs.Wrap(conflict, "create booking"),
				expectedStatus: http.StatusConflict,
				expectedMsg:    "conflicts with blocked time",
				expectedCode:   httperr.CodeConflict,
			},
			{
				name:           "outside operating hours",
				commandsError:  closed,
				expectedStatus: http.StatusUnprocessableEntity,
				expectedMsg:    "closed on",
				expectedCode:   httperr.CodeOutOfHours,
			},
			{
				name:           "idempotency key reused",
				commandsError:  errs.ErrIdempotencyKeyReuse,
				expectedStatus: http.StatusUnprocessableEntity,
				expectedMsg:    "Idempotency key",
				expectedCode:   httperr.CodeIdempotencyKeyReused,
			},
			{
				name:           "other tenant",
				commandsError:  shared.ErrCrossTenant,
				expectedStatus: http.StatusForbidden,
				expectedMsg:    "another tenant",
				expectedCode:   httperr.CodeForbidden,
			},
			{
				name:           "unknown service",
				commandsError:  commands.ErrUnknownService,
				expectedStatus: http.StatusNotFound,
				expectedMsg:    "Resource not found",
				expectedCode:   httperr.CodeNotFound,
			},
			{
				name:           "invalid customer",
				commandsError:  booking.ErrCustomerRequired,
				expectedStatus: http.StatusBadRequest,
				expectedCode:   httperr.CodeValidation,
			},
			{
				name:           "internal server error",
				commandsError:  errors.New("database error"),
				expectedStatus: http.StatusInternalServerError,
				expectedMsg:    "Internal server error",
				expectedCode:   httperr.CodeInternal,
			},
		}

		for _, tc := range testCases {
			s.Run(tc.name, func() {
				s.mockCommands.EXPECT().Create(gomock.Any(), gomock.Any()).
					Return(nil, tc.commandsError).Times(1)

				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "bearer-token")
				httptest.AssertErrorResponse(s.T(), rec, tc.expectedStatus, tc.expectedMsg)
				httptest.AssertErrorCode(s.T(), rec, tc.expectedStatus, tc.expectedCode)
			})
		}
	})

	s.Run("error: 503 with Retry-After when the professional stays locked", func() {
		s.mockCommands.EXPECT().Create(gomock.Any(), gomock.Any()).
			Return(nil, errs.Classify(context.DeadlineExceeded, errs.ErrUnavailable)).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "bearer-token")
		httptest.AssertErrorCode(s.T(), rec, http.StatusServiceUnavailable, httperr.CodeUnavailable)
		s.Equal("1", rec.Header().Get("Retry-After"))
	})
}

// ================================================================================
// TestGetBooking
// ================================================================================

func (s *BookingHandlerTestSuite) TestGetBooking() {
	found := builder.NewBookingBuilder().BuildReconstructed()
	url := "/bookings/" + found.ID().String()

	s.Run("success: returns 200 OK with BookingResponse", func() {
		s.mockQueries.EXPECT().GetBooking(gomock.Any(), found.ID()).Return(found, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "bearer-token")

		var body resdto.BookingResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Equal(found.ID(), body.ID)
		s.Equal(int64(4500), body.TotalCents)
		s.Len(body.Lines, 2)
	})

	s.Run("error: 400 Bad Request for invalid UUID", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/bookings/invalid-uuid", nil, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid id")
	})

	s.Run("error: 404 Not Found for missing booking", func() {
		s.mockQueries.EXPECT().GetBooking(gomock.Any(), found.ID()).
			Return(nil, errs.Sentinel(errs.ErrNotFound, "booking not found")).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "Resource not found")
	})
}

// ================================================================================
// TestListBookings
// ================================================================================

func (s *BookingHandlerTestSuite) TestListBookings() {
	tenantID := uuid.New()
	base := "/tenants/" + tenantID.String() + "/bookings"
	window := "?from=2025-03-10T00:00:00Z&to=2025-03-11T00:00:00Z"

	s.Run("success: passes filters and returns the cursor", func() {
		items := []*booking.Booking{builder.NewBookingBuilder().BuildReconstructed()}
		s.mockQueries.EXPECT().ListBookings(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, in queries.ListBookingsInput) (*queries.BookingPage, error) {
				s.Equal(tenantID, in.TenantID)
				s.Equal([]booking.Status{booking.StatusConfirmed, booking.StatusPending}, in.Statuses)
				s.Equal(builder.BaseDay, in.From.UTC())
				s.Equal(10, in.Limit)
				return &queries.BookingPage{Items: items, NextCursor: "next"}, nil
			}).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet,
			base+window+"&status=confirmed&status=pending&limit=10", nil, "bearer-token")

		var body resdto.BookingListResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Len(body.Items, 1)
		s.Equal("next", body.NextCursor)
	})

	s.Run("error: 400 Bad Request without a window", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, base, nil, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid request format")
	})

	s.Run("error: 400 Bad Request for unknown status", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, base+window+"&status=archived", nil, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "")
	})

	s.Run("error: 400 Bad Request for malformed professional id", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, base+window+"&professional_id=ana", nil, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid professional_id format")
	})
}

// ================================================================================
// TestTransitions
// ================================================================================

func (s *BookingHandlerTestSuite) TestCancelBooking() {
	cancelled := builder.NewBookingBuilder().
		With(func(b *builder.BookingBuilder) { b.Status = booking.StatusCancelled }).
		BuildReconstructed()
	url := "/bookings/" + cancelled.ID().String() + "/cancel"

	s.Run("success: returns the cancelled booking", func() {
		s.mockCommands.EXPECT().Cancel(gomock.Any(), cancelled.ID()).Return(cancelled, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, nil, "bearer-token")

		var body resdto.BookingResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Equal("cancelled", body.Status)
	})

	s.Run("error: 409 Conflict for a terminal booking", func() {
		s.mockCommands.EXPECT().Cancel(gomock.Any(), cancelled.ID()).
			Return(nil, &booking.TransitionError{From: booking.StatusCompleted, Action: "cancel"}).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, nil, "bearer-token")
		httptest.AssertErrorCode(s.T(), rec, http.StatusConflict, httperr.CodeInvalidTransition)

		var detail struct {
			From   string `json:"from"`
			Action string `json:"action"`
		}
		httptest.ErrorDetail(s.T(), rec, &detail)
		s.Equal("completed", detail.From)
		s.Equal("cancel", detail.Action)
	})
}

func (s *BookingHandlerTestSuite) TestRescheduleBooking() {
	moved := builder.NewBookingBuilder().WithInterval(14, 0, 14, 45).BuildReconstructed()
	url := "/bookings/" + moved.ID().String() + "/reschedule"

	s.Run("success: keeps the service duration when end is omitted", func() {
		s.mockCommands.EXPECT().Reschedule(gomock.Any(), moved.ID(), commands.RescheduleInput{Start: builder.At(14, 0)}).
			Return(moved, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url,
			map[string]any{"start": builder.At(14, 0)}, "bearer-token")

		var body resdto.BookingResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Equal(builder.At(14, 45), body.End.UTC())
	})

	s.Run("error: 400 Bad Request without start", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, map[string]any{}, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid request format")
	})
}

func (s *BookingHandlerTestSuite) TestDeleteBooking() {
	id := uuid.New()
	url := "/admin/bookings/" + id.String()

	s.Run("success: returns 204 No Content", func() {
		s.mockCommands.EXPECT().HardDelete(gomock.Any(), id).Return(nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodDelete, url, nil, "bearer-token")
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusNoContent, nil)
	})

	s.Run("error: 403 Forbidden below admin", func() {
		s.mockCommands.EXPECT().HardDelete(gomock.Any(), id).Return(shared.ErrInsufficientRole).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodDelete, url, nil, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusForbidden, "insufficient role")
	})
}
