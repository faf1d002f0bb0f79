package http

import (
	"log/slog"
	"os"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
	"github.com/worktrack/worktrack-backend-go/internal/domain/user"
	"github.com/worktrack/worktrack-backend-go/internal/handler/http/middleware"
	"github.com/worktrack/worktrack-backend-go/internal/pkg/jwt"
)

// Handlers bundles every HTTP handler mounted by NewRouter.
type Handlers struct {
	Auth         AuthHandler
	Attendance   AttendanceHandler
	Kiosk        KioskHandler
	Employee     EmployeeHandler
	Master       MasterHandler
	Expense      ExpenseHandler
	Leave        LeaveHandler
	Payroll      PayrollHandler
	Report       ReportHandler
	Audit        AuditHandler
	Announcement AnnouncementHandler
}

type RouterOptions struct {
	CORSOrigins []string
	LogLevel    slog.Level
	Env         string
}

func NewRouter(JWTService jwt.Service, h Handlers, opts RouterOptions) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(opts.Env != "production")
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "worktrack"),
		slog.String("version", "v1.0.0"),
		slog.String("env", opts.Env),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   opts.CORSOrigins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link", "Content-Disposition"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  opts.LogLevel,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.AllowContentEncoding("application/json"))
	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/auth/login", h.Auth.Login)

		// Shared terminal, authenticated by employee code + PIN
		r.Route("/kiosk", func(r chi.Router) {
			r.Post("/clock-in", h.Kiosk.ClockIn)
			r.Post("/clock-out", h.Kiosk.ClockOut)
		})

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(JWTService.JWTAuth()))
			r.Use(middleware.AuthRequired(JWTService))

			r.Route("/auth", func(r chi.Router) {
				r.Get("/me", h.Auth.Me)
				r.Post("/logout", h.Auth.Logout)
				r.Put("/password", h.Auth.ChangePassword)
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequirePermission(user.PermissionUserManage))
					r.Get("/users", h.Auth.ListUsers)
					r.Post("/users", h.Auth.CreateUser)
				})
			})

			r.Route("/attendance", func(r chi.Router) {
				r.Post("/clock-in", h.Attendance.ClockIn)
				r.Post("/clock-out", h.Attendance.ClockOut)
				r.Get("/my", h.Attendance.GetMyAttendance)

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequirePermission(user.PermissionAttendanceViewAll))
					r.Get("/", h.Attendance.List)
					r.Get("/{id}", h.Attendance.Get)
				})
				r.With(middleware.RequirePermission(user.PermissionAttendanceCorrect)).Put("/{id}", h.Attendance.Update)
				r.With(middleware.RequirePermission(user.PermissionAttendanceApprove)).Post("/{id}/approve", h.Attendance.Approve)
				r.With(middleware.RequirePermission(user.PermissionAttendanceCorrect)).Post("/mark-absent", h.Attendance.MarkAbsent)
			})

			r.Route("/employees", func(r chi.Router) {
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequirePermission(user.PermissionEmployeeViewAll))
					r.Get("/", h.Employee.List)
				})
				// Employees may read their own record; the service enforces it.
				r.Get("/{id}", h.Employee.Get)

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequirePermission(user.PermissionEmployeeManage))
					r.Post("/", h.Employee.Create)
					r.Put("/{id}", h.Employee.Update)
					r.Post("/{id}/deactivate", h.Employee.Deactivate)
					r.Put("/{id}/pin", h.Employee.SetPIN)
					r.Put("/{id}/shift", h.Employee.AssignShift)
				})
			})

			r.Route("/departments", func(r chi.Router) {
				r.Get("/", h.Master.ListDepartments)
				r.Get("/{id}", h.Master.GetDepartment)
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequirePermission(user.PermissionOrganizationManage))
					r.Post("/", h.Master.CreateDepartment)
					r.Put("/{id}", h.Master.UpdateDepartment)
					r.Delete("/{id}", h.Master.DeleteDepartment)
				})
			})

			r.Route("/shifts", func(r chi.Router) {
				r.Get("/", h.Master.ListShifts)
				r.Get("/{id}", h.Master.GetShift)
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequirePermission(user.PermissionOrganizationManage))
					r.Post("/", h.Master.CreateShift)
					r.Put("/{id}", h.Master.UpdateShift)
					r.Delete("/{id}", h.Master.DeleteShift)
				})
			})

			r.Route("/holidays", func(r chi.Router) {
				r.Get("/", h.Master.ListHolidays)
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequirePermission(user.PermissionOrganizationManage))
					r.Post("/", h.Master.CreateHoliday)
					r.Delete("/{id}", h.Master.DeleteHoliday)
				})
			})

			r.Route("/expenses", func(r chi.Router) {
				r.Post("/", h.Expense.Submit)
				r.Get("/my", h.Expense.GetMyExpenses)
				r.Get("/{id}", h.Expense.Get)
				r.With(middleware.RequirePermission(user.PermissionExpenseViewAll)).Get("/", h.Expense.List)
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequirePermission(user.PermissionExpenseApprove))
					r.Post("/{id}/approve", h.Expense.Approve)
					r.Post("/{id}/reject", h.Expense.Reject)
				})
			})

			r.Route("/leave", func(r chi.Router) {
				r.Get("/types", h.Leave.ListTypes)
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequirePermission(user.PermissionLeaveManageTypes))
					r.Post("/types", h.Leave.CreateType)
					r.Delete("/types/{id}", h.Leave.DeleteType)
				})

				r.Get("/balance", h.Leave.GetBalance)
				r.Route("/requests", func(r chi.Router) {
					r.Post("/", h.Leave.CreateRequest)
					r.Get("/my", h.Leave.GetMyRequests)
					r.With(middleware.RequirePermission(user.PermissionLeaveViewAll)).Get("/", h.Leave.ListRequests)
					r.Group(func(r chi.Router) {
						r.Use(middleware.RequirePermission(user.PermissionLeaveApprove))
						r.Post("/{id}/approve", h.Leave.ApproveRequest)
						r.Post("/{id}/reject", h.Leave.RejectRequest)
					})
				})
			})

			r.Route("/payroll", func(r chi.Router) {
				r.Use(middleware.RequirePermission(user.PermissionPayrollView))
				r.Get("/", h.Payroll.Generate)
				r.Get("/departments", h.Payroll.Departments)
				r.Get("/export", h.Payroll.Export)
			})

			r.Route("/reports", func(r chi.Router) {
				r.Use(middleware.RequirePermission(user.PermissionReportsView))
				r.Get("/attendance-summary", h.Report.GetAttendanceSummary)
				r.Get("/overtime-by-department", h.Report.GetOvertimeByDepartment)
			})

			r.Route("/announcements", func(r chi.Router) {
				r.Get("/", h.Announcement.ListActive)
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequirePermission(user.PermissionAnnouncementManage))
					r.Get("/all", h.Announcement.ListAll)
					r.Post("/", h.Announcement.Create)
					r.Delete("/{id}", h.Announcement.Delete)
				})
			})

			r.With(middleware.RequirePermission(user.PermissionAuditView)).Get("/audit", h.Audit.List)
		})
	})
	return r
}
