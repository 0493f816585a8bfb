package main

import (
	"fmt"
	"net/http"

	"github.com/heakbomb/resto-backend-go/internal/config"
	appHTTP "github.com/heakbomb/resto-backend-go/internal/handler/http"
	"github.com/heakbomb/resto-backend-go/internal/pkg/database"
	"github.com/heakbomb/resto-backend-go/internal/pkg/jwt"
	"github.com/heakbomb/resto-backend-go/internal/pkg/qrtoken"
	"github.com/heakbomb/resto-backend-go/internal/repository/postgresql"
	attendanceService "github.com/heakbomb/resto-backend-go/internal/service/attendance"
	payrollService "github.com/heakbomb/resto-backend-go/internal/service/payroll"
	shiftService "github.com/heakbomb/resto-backend-go/internal/service/shift"
	wageService "github.com/heakbomb/resto-backend-go/internal/service/wage"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	dsn := cfg.DatabaseURL()
	db, err := database.NewPostgreSQLDB(dsn)
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}

	storeRepo := postgresql.NewStoreRepository(db)
	employeeRepo := postgresql.NewEmployeeRepository(db)
	attendanceRepo := postgresql.NewAttendanceEventRepository(db)
	shiftRepo := postgresql.NewShiftRepository(db)
	wageProfileRepo := postgresql.NewWageProfileRepository(db)
	payrollRepo := postgresql.NewPayrollRepository(db)

	JWTService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)
	qrTokenService := qrtoken.NewService(cfg.QR.TokenTTL)

	attendanceSvc := attendanceService.NewAttendanceService(db, attendanceRepo, employeeRepo, storeRepo, qrTokenService)
	shiftSvc := shiftService.NewShiftService(db, shiftRepo, employeeRepo)
	wageSvc := wageService.NewWageService(db, wageProfileRepo, employeeRepo)
	payrollSvc := payrollService.NewPayrollService(db, payrollRepo, wageProfileRepo, attendanceSvc)

	attendanceHandler := appHTTP.NewAttendanceHandler(attendanceSvc)
	shiftHandler := appHTTP.NewShiftHandler(shiftSvc)
	wageHandler := appHTTP.NewWageHandler(wageSvc)
	payrollHandler := appHTTP.NewPayrollHandler(payrollSvc)

	router := appHTTP.NewRouter(
		cfg,
		JWTService,
		attendanceHandler,
		shiftHandler,
		wageHandler,
		payrollHandler,
	)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	fmt.Printf("Server running at http://localhost%s\n", port)
	if err := http.ListenAndServe(port, router); err != nil {
		fmt.Println("Server error:", err)
	}
}
