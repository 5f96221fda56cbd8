package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/workstead/hr-backend-go/internal/config"
	"github.com/workstead/hr-backend-go/internal/domain/holiday"
	"github.com/workstead/hr-backend-go/internal/domain/leave"
	"github.com/workstead/hr-backend-go/internal/fixtures"
	appHTTP "github.com/workstead/hr-backend-go/internal/handler/http"
	"github.com/workstead/hr-backend-go/internal/pkg/database"
	"github.com/workstead/hr-backend-go/internal/pkg/jwt"
	"github.com/workstead/hr-backend-go/internal/pkg/oauth"
	"github.com/workstead/hr-backend-go/internal/repository/postgresql"
	attendanceService "github.com/workstead/hr-backend-go/internal/service/attendance"
	authService "github.com/workstead/hr-backend-go/internal/service/auth"
	departmentService "github.com/workstead/hr-backend-go/internal/service/department"
	employeeService "github.com/workstead/hr-backend-go/internal/service/employee"
	holidayService "github.com/workstead/hr-backend-go/internal/service/holiday"
	leaveService "github.com/workstead/hr-backend-go/internal/service/leave"
	notificationService "github.com/workstead/hr-backend-go/internal/service/notification"
	reportService "github.com/workstead/hr-backend-go/internal/service/report"
	userService "github.com/workstead/hr-backend-go/internal/service/user"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	db, err := database.NewPostgreSQLDB(cfg.DatabaseURL())
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}
	defer db.Close()

	transactor := postgresql.NewTransactor(db)
	userRepo := postgresql.NewUserRepository(db)
	roleRepo := postgresql.NewRoleRepository(db)
	departmentRepo := postgresql.NewDepartmentRepository(db)
	employeeRepo := postgresql.NewEmployeeRepository(db)
	attendanceRepo := postgresql.NewAttendanceRepository(db)
	leaveTypeRepo := postgresql.NewLeaveTypeRepository(db)
	leaveBalanceRepo := postgresql.NewLeaveBalanceRepository(db)
	leaveRequestRepo := postgresql.NewLeaveRequestRepository(db)
	holidayRepo := postgresql.NewHolidayRepository(db)
	notificationRepo := postgresql.NewNotificationRepository(db)
	reportRepo := postgresql.NewReportRepository(db)

	jwtService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration, cfg.JWT.RefreshExpiration)
	googleService := oauth.NewGoogleService(cfg.OAuth2Google.ClientID, cfg.OAuth2Google.ClientSecret, cfg.OAuth2Google.RedirectURL, cfg.OAuth2Google.Scopes)

	auth := authService.NewAuthService(transactor, userRepo, roleRepo, employeeRepo, jwtService, googleService)
	users := userService.NewUserService(userRepo, roleRepo, employeeRepo, departmentRepo, attendanceRepo, leaveRequestRepo)
	departments := departmentService.NewDepartmentService(departmentRepo)
	employees := employeeService.NewEmployeeService(transactor, employeeRepo, userRepo, leaveTypeRepo, leaveBalanceRepo)
	attendances := attendanceService.NewAttendanceService(attendanceRepo, holidayRepo)
	leaveTypes := leaveService.NewLeaveTypeService(leaveTypeRepo)
	leaves := leaveService.NewLeaveService(transactor, leaveRequestRepo, leaveBalanceRepo, leaveTypeRepo, attendanceRepo, employeeRepo, notificationRepo)
	holidays := holidayService.NewHolidayService(holidayRepo)
	notifications := notificationService.NewNotificationService(notificationRepo, userRepo)
	reports := reportService.NewReportService(reportRepo, holidayRepo)

	if err := seedDefaults(context.Background(), leaveTypeRepo, holidayRepo); err != nil {
		log.Println("Warning: seeding defaults failed:", err)
	}

	handlers := appHTTP.Handlers{
		Auth:         appHTTP.NewAuthHandler(auth, jwtService),
		Admin:        appHTTP.NewAdminHandler(users),
		Department:   appHTTP.NewDepartmentHandler(departments),
		Employee:     appHTTP.NewEmployeeHandler(employees),
		Attendance:   appHTTP.NewAttendanceHandler(attendances),
		Leave:        appHTTP.NewLeaveHandler(leaves, leaveTypes),
		Holiday:      appHTTP.NewHolidayHandler(holidays),
		Notification: appHTTP.NewNotificationHandler(notifications),
		Report:       appHTTP.NewReportHandler(reports, cfg.Report.TempDir),
	}

	router := appHTTP.NewRouter(cfg, jwtService, handlers)

	addr := fmt.Sprintf(":%d", cfg.App.Port)
	log.Println("Starting server on", addr)
	if err := http.ListenAndServe(addr, router); err != nil {
		log.Fatal("Server failed:", err)
	}
}

// seedDefaults inserts the default leave types and the current year's fixed
// public holidays into an empty installation. Existing rows are left alone.
func seedDefaults(ctx context.Context, leaveTypes leave.LeaveTypeRepository, holidays holiday.HolidayRepository) error {
	existingTypes, err := leaveTypes.List(ctx, false)
	if err != nil {
		return err
	}
	if len(existingTypes) == 0 {
		for _, lt := range fixtures.GetDefaultLeaveTypes() {
			if _, err := leaveTypes.Create(ctx, lt); err != nil {
				return err
			}
		}
	}

	year := time.Now().Year()
	existingHolidays, err := holidays.List(ctx, year)
	if err != nil {
		return err
	}
	if len(existingHolidays) == 0 {
		for _, h := range fixtures.GetDefaultHolidays(year) {
			if _, err := holidays.Create(ctx, h); err != nil {
				return err
			}
		}
	}

	return nil
}
