package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vams-io/vams-backend-go/internal/config"
	"github.com/vams-io/vams-backend-go/internal/domain/attendance"
	"github.com/vams-io/vams-backend-go/internal/domain/auth"
	"github.com/vams-io/vams-backend-go/internal/domain/cycle"
	"github.com/vams-io/vams-backend-go/internal/domain/evidence"
	"github.com/vams-io/vams-backend-go/internal/domain/mismatch"
	"github.com/vams-io/vams-backend-go/internal/domain/timesheet"
	"github.com/vams-io/vams-backend-go/internal/domain/user"
	"github.com/vams-io/vams-backend-go/internal/pkg/jwt"
)

const routerTestSecret = "router-test-secret-key"

// Stub services: the handler tests exercise routing, token verification and
// role enforcement, not business logic.

type stubAuthService struct{}

func (s *stubAuthService) Login(ctx context.Context, req auth.LoginRequest) (auth.TokenResponse, error) {
	if req.Password != "password123" {
		return auth.TokenResponse{}, auth.ErrInvalidCredentials
	}
	return auth.TokenResponse{AccessToken: "access", RefreshToken: "refresh", RefreshTokenExpiresIn: time.Now().Add(time.Hour).Unix()}, nil
}

func (s *stubAuthService) LoginWithEmployeeCode(ctx context.Context, req auth.LoginEmployeeCodeRequest) (auth.TokenResponse, error) {
	return auth.TokenResponse{AccessToken: "access", RefreshToken: "refresh"}, nil
}

func (s *stubAuthService) RefreshToken(ctx context.Context, req auth.RefreshTokenRequest) (auth.AccessTokenResponse, error) {
	return auth.AccessTokenResponse{AccessToken: "access"}, nil
}

func (s *stubAuthService) Logout(ctx context.Context, refreshToken string) error { return nil }

type stubAttendanceService struct {
	lastMark attendance.MarkRequest
}

func (s *stubAttendanceService) Mark(ctx context.Context, req attendance.MarkRequest) (attendance.MarkResult, error) {
	s.lastMark = req
	return attendance.MarkResult{Attendance: attendance.Attendance{ID: "att-1", VendorID: req.VendorID}}, nil
}

func (s *stubAttendanceService) Approve(ctx context.Context, req attendance.ApproveRequest) (attendance.Attendance, error) {
	return attendance.Attendance{ID: req.AttendanceID}, nil
}

func (s *stubAttendanceService) Reject(ctx context.Context, req attendance.ApproveRequest) (attendance.Attendance, error) {
	return attendance.Attendance{ID: req.AttendanceID}, nil
}

func (s *stubAttendanceService) MonthForVendor(ctx context.Context, vendorID string, month string) ([]attendance.Attendance, error) {
	return []attendance.Attendance{{ID: "att-1", VendorID: vendorID}}, nil
}

func (s *stubAttendanceService) PendingApprovals(ctx context.Context, managerID string) ([]attendance.Attendance, error) {
	return nil, nil
}

func (s *stubAttendanceService) MonthlySummary(ctx context.Context, vendorID string, month string) (attendance.MonthlySummary, error) {
	return attendance.MonthlySummary{}, nil
}

type stubMismatchService struct{}

func (s *stubMismatchService) RunDetection(ctx context.Context, siteID string, month string) (mismatch.DetectionResult, error) {
	return mismatch.DetectionResult{SiteID: siteID, Month: month}, nil
}

func (s *stubMismatchService) RedetectDay(ctx context.Context, vendorID string, date time.Time) (bool, error) {
	return false, nil
}

func (s *stubMismatchService) Resolve(ctx context.Context, req mismatch.ResolveRequest) (mismatch.Mismatch, error) {
	return mismatch.Mismatch{ID: req.MismatchID}, nil
}

func (s *stubMismatchService) ManagerAction(ctx context.Context, req mismatch.ActionRequest) (mismatch.Mismatch, error) {
	return mismatch.Mismatch{ID: req.MismatchID}, nil
}

func (s *stubMismatchService) AutoExpire(ctx context.Context, mismatchID string) (mismatch.Mismatch, error) {
	return mismatch.Mismatch{ID: mismatchID}, nil
}

func (s *stubMismatchService) ExpireOverdue(ctx context.Context, now time.Time) (int, error) {
	return 0, nil
}

func (s *stubMismatchService) ForVendor(ctx context.Context, vendorID string, status *mismatch.Status) ([]mismatch.Mismatch, error) {
	return nil, nil
}

func (s *stubMismatchService) ForManager(ctx context.Context, managerID string) ([]mismatch.Mismatch, error) {
	return nil, nil
}

func (s *stubMismatchService) StatsForMonth(ctx context.Context, siteID string, month string) (mismatch.MonthlyStats, error) {
	return mismatch.MonthlyStats{}, nil
}

type stubEvidenceService struct{}

func (s *stubEvidenceService) ReplaceMonth(ctx context.Context, req evidence.UploadRequest) (evidence.UploadResult, error) {
	return evidence.UploadResult{Month: req.Month, DataType: req.DataType}, nil
}

type stubCycleService struct{}

func (s *stubCycleService) Ensure(ctx context.Context, siteID string, month string) (cycle.Cycle, error) {
	return cycle.Cycle{ID: "cyc-1", SiteID: siteID, Month: month}, nil
}

func (s *stubCycleService) MarkUploaded(ctx context.Context, siteID string, month string, dataType evidence.DataType, at time.Time) (cycle.Cycle, error) {
	return cycle.Cycle{}, nil
}

func (s *stubCycleService) IsAllDataUploaded(ctx context.Context, siteID string, month string) (bool, error) {
	return false, nil
}

func (s *stubCycleService) MarkMismatchProcessed(ctx context.Context, siteID string, month string) error {
	return nil
}

func (s *stubCycleService) LockForTimesheet(ctx context.Context, siteID string, month string) (cycle.Cycle, error) {
	return cycle.Cycle{}, nil
}

func (s *stubCycleService) IsTimesheetGenerated(ctx context.Context, siteID string, month string) (bool, error) {
	return false, nil
}

func (s *stubCycleService) ListBySite(ctx context.Context, siteID string) ([]cycle.Cycle, error) {
	return []cycle.Cycle{{ID: "cyc-1", SiteID: siteID}}, nil
}

type stubTimesheetService struct{}

func (s *stubTimesheetService) Generate(ctx context.Context, req *timesheet.GenerateRequest) (*timesheet.GenerateResult, error) {
	return &timesheet.GenerateResult{Month: req.Month}, nil
}

func (s *stubTimesheetService) ForVendor(ctx context.Context, vendorID, month string) (*timesheet.Timesheet, error) {
	return &timesheet.Timesheet{ID: "ts-1", VendorID: vendorID, Month: month}, nil
}

func (s *stubTimesheetService) ForMonth(ctx context.Context, siteID, month string) ([]timesheet.Timesheet, error) {
	return nil, nil
}

func (s *stubTimesheetService) WorkdayReportForMonth(ctx context.Context, siteID, month string) ([]timesheet.WorkdayReport, error) {
	return nil, nil
}

func newTestRouter(t *testing.T) (*chi.Mux, jwt.Service) {
	t.Helper()
	jwtService := jwt.NewJWTService(routerTestSecret, "1h", "24h")

	router := NewRouter(
		jwtService,
		NewAuthHandler(jwtService, &stubAuthService{}),
		NewAttendanceHandler(&stubAttendanceService{}),
		NewMismatchHandler(&stubMismatchService{}),
		NewEvidenceHandler(&stubEvidenceService{}, &stubCycleService{}),
		NewTimesheetHandler(&stubTimesheetService{}),
		NewSettingsHandler(config.DefaultReconciliation()),
	)
	return router, jwtService
}

func accessTokenFor(t *testing.T, jwtService jwt.Service, role user.Role) string {
	t.Helper()
	vendorID := "vendor-1"
	siteID := "site-1"
	token, _, err := jwtService.GenerateAccessToken("user-1", "user@example.com", &vendorID, &siteID, role)
	require.NoError(t, err)
	return token
}

func doRequest(t *testing.T, router *chi.Mux, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestLogin_SetsRefreshCookie(t *testing.T) {
	router, _ := newTestRouter(t)

	rec := doRequest(t, router, http.MethodPost, "/api/v1/auth/login/", "", map[string]string{
		"email":    "vendor@example.com",
		"password": "password123",
	})

	assert.Equal(t, http.StatusCreated, rec.Code)
	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, "refresh_token", cookies[0].Name)
	assert.Equal(t, "refresh", cookies[0].Value)
}

func TestLogin_BadCredentials(t *testing.T) {
	router, _ := newTestRouter(t)

	rec := doRequest(t, router, http.MethodPost, "/api/v1/auth/login/", "", map[string]string{
		"email":    "vendor@example.com",
		"password": "wrong-password",
	})

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestLogin_ValidationFailure(t *testing.T) {
	router, _ := newTestRouter(t)

	rec := doRequest(t, router, http.MethodPost, "/api/v1/auth/login/", "", map[string]string{
		"email": "not-an-email",
	})

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestProtectedRoutes_RequireToken(t *testing.T) {
	router, _ := newTestRouter(t)

	rec := doRequest(t, router, http.MethodGet, "/api/v1/attendance/my", "", nil)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestVendorRoutes_AllowVendor(t *testing.T) {
	router, jwtService := newTestRouter(t)
	token := accessTokenFor(t, jwtService, user.RoleVendor)

	rec := doRequest(t, router, http.MethodGet, "/api/v1/attendance/my", token, nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = doRequest(t, router, http.MethodPost, "/api/v1/attendance/", token, map[string]string{
		"date":   "2025-03-10",
		"status": string(attendance.StatusInOfficeFull),
	})
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestVendorRoutes_RejectManager(t *testing.T) {
	router, jwtService := newTestRouter(t)
	token := accessTokenFor(t, jwtService, user.RoleManager)

	rec := doRequest(t, router, http.MethodGet, "/api/v1/attendance/my", token, nil)

	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestManagerRoutes_AllowManagerAndAdmin(t *testing.T) {
	router, jwtService := newTestRouter(t)

	for _, role := range []user.Role{user.RoleManager, user.RoleAdmin} {
		token := accessTokenFor(t, jwtService, role)
		rec := doRequest(t, router, http.MethodGet, "/api/v1/attendance/pending", token, nil)
		assert.Equal(t, http.StatusOK, rec.Code, "role %s", role)
	}
}

func TestManagerRoutes_RejectVendor(t *testing.T) {
	router, jwtService := newTestRouter(t)
	token := accessTokenFor(t, jwtService, user.RoleVendor)

	rec := doRequest(t, router, http.MethodGet, "/api/v1/mismatches/team", token, nil)

	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestAdminRoutes_RejectManager(t *testing.T) {
	router, jwtService := newTestRouter(t)
	token := accessTokenFor(t, jwtService, user.RoleManager)

	rec := doRequest(t, router, http.MethodPost, "/api/v1/sites/site-1/evidence", token, map[string]any{
		"month":     "2025-03",
		"data_type": "swipe_data",
	})

	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestAdminRoutes_AllowAdmin(t *testing.T) {
	router, jwtService := newTestRouter(t)
	token := accessTokenFor(t, jwtService, user.RoleAdmin)

	rec := doRequest(t, router, http.MethodPost, "/api/v1/sites/site-1/evidence", token, map[string]any{
		"month":     "2025-03",
		"data_type": "swipe_data",
	})
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = doRequest(t, router, http.MethodGet, "/api/v1/sites/site-1/cycles", token, nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = doRequest(t, router, http.MethodGet, "/api/v1/settings", token, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestMyMonth_RejectsBadMonth(t *testing.T) {
	router, jwtService := newTestRouter(t)
	token := accessTokenFor(t, jwtService, user.RoleVendor)

	rec := doRequest(t, router, http.MethodGet, "/api/v1/attendance/my?month=March", token, nil)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
