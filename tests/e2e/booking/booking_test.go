//go:build e2e

package booking_test

import (
	"fmt"
	"net/http"
	"sync"
	"testing"
	"time"

	"salon-scheduler/internal/domain/booking"
	reqdto "salon-scheduler/internal/handler/dto/request"
	resdto "salon-scheduler/internal/handler/dto/response"
	"salon-scheduler/internal/usecase/shared"
	"salon-scheduler/tests/common/authtest"
	"salon-scheduler/tests/common/builder"
	"salon-scheduler/tests/common/dbtest"
	"salon-scheduler/tests/common/httptest"
	"salon-scheduler/tests/e2e"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

const (
	tenantBookingsURL = "/api/tenants/%s/bookings"
	bookingURL        = "/api/bookings/%s"
	cancelURL         = "/api/bookings/%s/cancel"
	conflictsURL      = "/api/professionals/%s/conflicts?start=%s&end=%s"
)

type BookingSuite struct {
	e2e.SharedSuite
}

func (s *BookingSuite) SetupSubTest() {
	s.SharedSuite.SetupSubTest()
}

func TestBookingSuite(t *testing.T) {
	t.Parallel()
	suite.Run(t, new(BookingSuite))
}

type salonFixture struct {
	tenantID       uuid.UUID
	professionalID uuid.UUID
	haircutID      uuid.UUID
	token          string
}

func (s *BookingSuite) seedSalon(t *testing.T) salonFixture {
	t.Helper()
	tenantID := dbtest.CreateTestTenant(t, s.DB, "Studio Bela", builder.WeekdayHours(t, "UTC"))
	return salonFixture{
		tenantID:       tenantID,
		professionalID: dbtest.CreateTestProfessional(t, s.DB, tenantID, "Ana"),
		haircutID:      dbtest.CreateTestService(t, s.DB, tenantID, "Haircut", 30*time.Minute, 3000),
		token:          authtest.NewJWTHelper(s.Config.JWT).GenerateToken(t, tenantID, shared.RoleStaff),
	}
}

func (f salonFixture) haircutAt(h, m int) reqdto.CreateBookingRequest {
	return reqdto.CreateBookingRequest{
		ProfessionalID: f.professionalID,
		ServiceIDs:     []uuid.UUID{f.haircutID},
		Start:          builder.At(h, m),
		Customer:       reqdto.CustomerRequest{Name: "Maria Silva", Phone: "+55 11 99999-0000"},
	}
}

// =============================================================================
// TestCreateBooking - Booking creation API tests
// =============================================================================

func (s *BookingSuite) TestCreateBooking() {
	s.Run("Normal case: Staff can book a free slot", func() {
		t := s.T()
		f := s.seedSalon(t)

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, fmt.Sprintf(tenantBookingsURL, f.tenantID), f.haircutAt(10, 0), f.token)

		var actual resdto.BookingResponse
		httptest.AssertSuccessResponse(t, w, http.StatusCreated, &actual)

		expected := resdto.BookingResponse{
			TenantID:       f.tenantID,
			ProfessionalID: f.professionalID,
			Status:         string(booking.StatusPending),
			Start:          builder.At(10, 0),
			End:            builder.At(10, 30),
			TotalCents:     3000,
			Customer:       resdto.CustomerResponse{Name: "Maria Silva", Phone: "+55 11 99999-0000"},
			Lines: []resdto.BookingLineResponse{
				{ServiceID: f.haircutID, Name: "Haircut", DurationMinutes: 30, PriceCents: 3000},
			},
		}
		opts := []cmp.Option{
			cmpopts.IgnoreFields(resdto.BookingResponse{}, "ID", "CreatedAt", "UpdatedAt"),
			cmpopts.EquateApproxTime(time.Second),
		}
		if diff := cmp.Diff(expected, actual, opts...); diff != "" {
			t.Errorf("Booking response mismatch (-want +got):\n%s", diff)
		}
	})

	s.Run("Normal case: Touching bookings are both accepted", func() {
		t := s.T()
		f := s.seedSalon(t)
		url := fmt.Sprintf(tenantBookingsURL, f.tenantID)

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, url, f.haircutAt(10, 0), f.token)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
		w = httptest.PerformRequest(t, s.Router, http.MethodPost, url, f.haircutAt(10, 30), f.token)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	})

	s.Run("Error case: Overlapping booking is rejected with conflict", func() {
		t := s.T()
		f := s.seedSalon(t)
		url := fmt.Sprintf(tenantBookingsURL, f.tenantID)

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, url, f.haircutAt(10, 0), f.token)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

		w = httptest.PerformRequest(t, s.Router, http.MethodPost, url, f.haircutAt(10, 15), f.token)
		httptest.AssertErrorResponse(t, w, http.StatusConflict, "")
	})

	s.Run("Error case: Booking outside operating hours", func() {
		t := s.T()
		f := s.seedSalon(t)

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, fmt.Sprintf(tenantBookingsURL, f.tenantID), f.haircutAt(17, 45), f.token)
		httptest.AssertErrorResponse(t, w, http.StatusUnprocessableEntity, "")
	})

	s.Run("Error case: Token of another tenant is forbidden", func() {
		t := s.T()
		f := s.seedSalon(t)
		other := s.seedSalon(t)

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, fmt.Sprintf(tenantBookingsURL, f.tenantID), f.haircutAt(10, 0), other.token)
		httptest.AssertErrorResponse(t, w, http.StatusForbidden, "")
	})

	s.Run("Error case: Expired token is unauthorized", func() {
		t := s.T()
		f := s.seedSalon(t)
		expired := authtest.NewJWTHelper(s.Config.JWT).CreateExpiredToken(t, f.tenantID, shared.RoleStaff)

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, fmt.Sprintf(tenantBookingsURL, f.tenantID), f.haircutAt(10, 0), expired)
		require.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

// =============================================================================
// TestConcurrentBooking - only one of many racing requests wins a slot
// =============================================================================

func (s *BookingSuite) TestConcurrentBooking() {
	s.Run("Concurrent case: Exactly one overlapping request succeeds", func() {
		t := s.T()
		f := s.seedSalon(t)
		url := fmt.Sprintf(tenantBookingsURL, f.tenantID)

		const workers = 10
		codes := make([]int, workers)
		var wg sync.WaitGroup
		for i := range workers {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				// Every request overlaps 10:00-10:30 somewhere.
				w := httptest.PerformRequest(t, s.Router, http.MethodPost, url, f.haircutAt(10, 5*(i%3)), f.token)
				codes[i] = w.Code
			}(i)
		}
		wg.Wait()

		created, conflicts := 0, 0
		for _, code := range codes {
			switch code {
			case http.StatusCreated:
				created++
			case http.StatusConflict:
				conflicts++
			}
		}
		require.Equal(t, 1, created, "codes: %v", codes)
		require.Equal(t, workers-1, conflicts, "codes: %v", codes)
	})
}

// =============================================================================
// TestIdempotentCreate - Idempotency-Key replays
// =============================================================================

func (s *BookingSuite) TestIdempotentCreate() {
	s.Run("Normal case: Same key and body replays the booking", func() {
		t := s.T()
		f := s.seedSalon(t)
		url := fmt.Sprintf(tenantBookingsURL, f.tenantID)
		headers := map[string]string{"Idempotency-Key": "retry-" + uuid.NewString()}

		first := httptest.PerformRequestWithHeaders(t, s.Router, http.MethodPost, url, f.haircutAt(11, 0), f.token, headers)
		var created resdto.BookingResponse
		httptest.AssertSuccessResponse(t, first, http.StatusCreated, &created)

		second := httptest.PerformRequestWithHeaders(t, s.Router, http.MethodPost, url, f.haircutAt(11, 0), f.token, headers)
		var replayed resdto.BookingResponse
		httptest.AssertSuccessResponse(t, second, http.StatusOK, &replayed)
		require.Equal(t, created.ID, replayed.ID)
	})

	s.Run("Error case: Same key with a different body", func() {
		t := s.T()
		f := s.seedSalon(t)
		url := fmt.Sprintf(tenantBookingsURL, f.tenantID)
		headers := map[string]string{"Idempotency-Key": "retry-" + uuid.NewString()}

		first := httptest.PerformRequestWithHeaders(t, s.Router, http.MethodPost, url, f.haircutAt(11, 0), f.token, headers)
		require.Equal(t, http.StatusCreated, first.Code, first.Body.String())

		second := httptest.PerformRequestWithHeaders(t, s.Router, http.MethodPost, url, f.haircutAt(14, 0), f.token, headers)
		httptest.AssertErrorResponse(t, second, http.StatusUnprocessableEntity, "Idempotency key")
	})
}

// =============================================================================
// TestCancelBooking - cancelling frees the slot
// =============================================================================

func (s *BookingSuite) TestCancelBooking() {
	s.Run("Normal case: Cancelled slot can be booked again", func() {
		t := s.T()
		f := s.seedSalon(t)
		url := fmt.Sprintf(tenantBookingsURL, f.tenantID)

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, url, f.haircutAt(15, 0), f.token)
		var created resdto.BookingResponse
		httptest.AssertSuccessResponse(t, w, http.StatusCreated, &created)

		w = httptest.PerformRequest(t, s.Router, http.MethodPost, fmt.Sprintf(cancelURL, created.ID), nil, f.token)
		var cancelled resdto.BookingResponse
		httptest.AssertSuccessResponse(t, w, http.StatusOK, &cancelled)
		require.Equal(t, string(booking.StatusCancelled), cancelled.Status)

		check := fmt.Sprintf(conflictsURL, f.professionalID,
			builder.At(15, 0).Format(time.RFC3339), builder.At(15, 30).Format(time.RFC3339))
		w = httptest.PerformRequest(t, s.Router, http.MethodGet, check, nil, f.token)
		var availability resdto.ConflictCheckResponse
		httptest.AssertSuccessResponse(t, w, http.StatusOK, &availability)
		require.True(t, availability.Available)

		w = httptest.PerformRequest(t, s.Router, http.MethodPost, url, f.haircutAt(15, 0), f.token)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	})

	s.Run("Error case: Cancelling twice is an invalid transition", func() {
		t := s.T()
		f := s.seedSalon(t)

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, fmt.Sprintf(tenantBookingsURL, f.tenantID), f.haircutAt(9, 0), f.token)
		var created resdto.BookingResponse
		httptest.AssertSuccessResponse(t, w, http.StatusCreated, &created)

		w = httptest.PerformRequest(t, s.Router, http.MethodPost, fmt.Sprintf(cancelURL, created.ID), nil, f.token)
		require.Equal(t, http.StatusOK, w.Code)
		w = httptest.PerformRequest(t, s.Router, http.MethodPost, fmt.Sprintf(cancelURL, created.ID), nil, f.token)
		httptest.AssertErrorResponse(t, w, http.StatusConflict, "")
	})
}

// =============================================================================
// TestDeleteBooking - admin hard delete
// =============================================================================

func (s *BookingSuite) TestDeleteBooking() {
	s.Run("Normal case: Admin deletes a booking", func() {
		t := s.T()
		f := s.seedSalon(t)
		admin := authtest.NewJWTHelper(s.Config.JWT).GenerateToken(t, f.tenantID, shared.RoleAdmin)

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, fmt.Sprintf(tenantBookingsURL, f.tenantID), f.haircutAt(12, 0), f.token)
		var created resdto.BookingResponse
		httptest.AssertSuccessResponse(t, w, http.StatusCreated, &created)

		w = httptest.PerformRequest(t, s.Router, http.MethodDelete, "/api/admin/bookings/"+created.ID.String(), nil, admin)
		require.Equal(t, http.StatusNoContent, w.Code, w.Body.String())

		w = httptest.PerformRequest(t, s.Router, http.MethodGet, fmt.Sprintf(bookingURL, created.ID), nil, f.token)
		httptest.AssertErrorResponse(t, w, http.StatusNotFound, "Resource not found")
	})

	s.Run("Error case: Staff cannot delete", func() {
		t := s.T()
		f := s.seedSalon(t)

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, fmt.Sprintf(tenantBookingsURL, f.tenantID), f.haircutAt(12, 0), f.token)
		var created resdto.BookingResponse
		httptest.AssertSuccessResponse(t, w, http.StatusCreated, &created)

		w = httptest.PerformRequest(t, s.Router, http.MethodDelete, "/api/admin/bookings/"+created.ID.String(), nil, f.token)
		httptest.AssertErrorResponse(t, w, http.StatusForbidden, "")
	})
}
