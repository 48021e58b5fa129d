package main

import (
	"context"
	"fmt"
	"net/http"

	"github.com/vams-io/vams-backend-go/internal/config"
	appHTTP "github.com/vams-io/vams-backend-go/internal/handler/http"
	"github.com/vams-io/vams-backend-go/internal/pkg/cron"
	"github.com/vams-io/vams-backend-go/internal/pkg/database"
	"github.com/vams-io/vams-backend-go/internal/pkg/jwt"
	"github.com/vams-io/vams-backend-go/internal/pkg/keylock"
	"github.com/vams-io/vams-backend-go/internal/repository/postgresql"
	attendanceService "github.com/vams-io/vams-backend-go/internal/service/attendance"
	serviceAuth "github.com/vams-io/vams-backend-go/internal/service/auth"
	cycleService "github.com/vams-io/vams-backend-go/internal/service/cycle"
	evidenceService "github.com/vams-io/vams-backend-go/internal/service/evidence"
	mismatchService "github.com/vams-io/vams-backend-go/internal/service/mismatch"
	timesheetService "github.com/vams-io/vams-backend-go/internal/service/timesheet"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	ctx := context.Background()
	db, err := database.NewPostgreSQLDB(ctx, cfg.DatabaseURL())
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}
	defer db.Close()

	userRepo := postgresql.NewUserRepository(db)
	vendorRepo := postgresql.NewVendorRepository(db)
	attendanceRepo := postgresql.NewAttendanceRepository(db)
	mismatchRepo := postgresql.NewMismatchRepository(db)
	cycleRepo := postgresql.NewCycleRepository(db)
	timesheetRepo := postgresql.NewTimesheetRepository(db)
	offsetRepo := postgresql.NewOffsetRepository(db)
	swipeRepo := postgresql.NewSwipeRepository(db)
	wfhRepo := postgresql.NewWFHRepository(db)
	leaveRepo := postgresql.NewLeaveRepository(db)
	evidenceStore := postgresql.NewEvidenceStore(swipeRepo, wfhRepo, leaveRepo)

	jwtService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration, cfg.JWT.RefreshExpiration)

	authSvc := serviceAuth.NewAuthService(userRepo, vendorRepo, jwtService)
	cycleSvc := cycleService.NewCycleService(cycleRepo, cfg.Reconciliation)
	evidenceSvc := evidenceService.NewEvidenceService(swipeRepo, wfhRepo, leaveRepo, vendorRepo, cycleSvc)
	mismatchSvc := mismatchService.NewMismatchService(
		mismatchRepo,
		attendanceRepo,
		vendorRepo,
		evidenceStore,
		cycleSvc,
		cfg.Reconciliation,
		postgresql.NewTxRunner(db),
	)
	attendanceSvc := attendanceService.NewAttendanceService(
		attendanceRepo,
		vendorRepo,
		offsetRepo,
		cycleSvc,
		mismatchSvc,
		keylock.New(),
	)
	timesheetSvc := timesheetService.NewTimesheetService(
		timesheetRepo,
		attendanceRepo,
		mismatchRepo,
		offsetRepo,
		vendorRepo,
		cycleSvc,
		cfg.Reconciliation,
	)

	scheduler := cron.NewScheduler()
	cron.NewMismatchJobs(mismatchSvc).RegisterJobs(scheduler)
	scheduler.Start()
	defer scheduler.Stop()

	authHandler := appHTTP.NewAuthHandler(jwtService, authSvc)
	attendanceHandler := appHTTP.NewAttendanceHandler(attendanceSvc)
	mismatchHandler := appHTTP.NewMismatchHandler(mismatchSvc)
	evidenceHandler := appHTTP.NewEvidenceHandler(evidenceSvc, cycleSvc)
	timesheetHandler := appHTTP.NewTimesheetHandler(timesheetSvc)
	settingsHandler := appHTTP.NewSettingsHandler(cfg.Reconciliation)

	router := appHTTP.NewRouter(
		jwtService,
		authHandler,
		attendanceHandler,
		mismatchHandler,
		evidenceHandler,
		timesheetHandler,
		settingsHandler,
	)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	fmt.Printf("Server running at http://localhost%s\n", port)
	if err := http.ListenAndServe(port, router); err != nil {
		fmt.Println("Server error:", err)
	}
}
