package router

import (
	"time"

	"github.com/Niranjjith/Attendance-System/foundation/web"
	"github.com/Niranjjith/Attendance-System/internal/auth"
	"github.com/Niranjjith/Attendance-System/internal/middleware"
	"github.com/Niranjjith/Attendance-System/internal/pkg/repository/postgresql"
	"github.com/Niranjjith/Attendance-System/internal/pkg/repository/redisdb"
	"github.com/Niranjjith/Attendance-System/internal/repository/postgres/attendance"
	"github.com/Niranjjith/Attendance-System/internal/repository/postgres/auditlog"
	"github.com/Niranjjith/Attendance-System/internal/repository/postgres/department"
	"github.com/Niranjjith/Attendance-System/internal/repository/postgres/subject"
	"github.com/Niranjjith/Attendance-System/internal/repository/postgres/user"

	attendance_controller "github.com/Niranjjith/Attendance-System/internal/controller/http/v1/attendance"
	auditlog_controller "github.com/Niranjjith/Attendance-System/internal/controller/http/v1/auditlog"
	auth_controller "github.com/Niranjjith/Attendance-System/internal/controller/http/v1/auth"
	department_controller "github.com/Niranjjith/Attendance-System/internal/controller/http/v1/department"
	subject_controller "github.com/Niranjjith/Attendance-System/internal/controller/http/v1/subject"
	user_controller "github.com/Niranjjith/Attendance-System/internal/controller/http/v1/user"

	"github.com/gin-contrib/cors"
)

type Router struct {
	*web.App
	postgresDB     *postgresql.Database
	session        *redisdb.Session
	port           string
	auth           *auth.Auth
	baseURL        string
	privateKeyPath string
}

func NewRouter(
	app *web.App,
	postgresDB *postgresql.Database,
	session *redisdb.Session,
	port string,
	auth *auth.Auth,
	baseURL string,
	privateKeyPath string,
) *Router {
	return &Router{
		app,
		postgresDB,
		session,
		port,
		auth,
		baseURL,
		privateKeyPath,
	}
}

func (r Router) Init() error {
	r.HandleMethodNotAllowed = true
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Content-Length", "Accept-Encoding", "Authorization", "Cache-Control", "X-Requested-With"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// - postgresql
	userPostgres := user.NewRepository(r.postgresDB)
	departmentPostgres := department.NewRepository(r.postgresDB)
	subjectPostgres := subject.NewRepository(r.postgresDB)
	attendancePostgres := attendance.NewRepository(r.postgresDB)
	auditlogPostgres := auditlog.NewRepository(r.postgresDB)

	// controller
	authController := auth_controller.NewController(userPostgres, r.session, r.privateKeyPath)
	userController := user_controller.NewController(userPostgres, departmentPostgres, r.baseURL)
	departmentController := department_controller.NewController(departmentPostgres)
	subjectController := subject_controller.NewController(subjectPostgres)
	attendanceController := attendance_controller.NewController(attendancePostgres, subjectPostgres, auditlogPostgres)
	auditlogController := auditlog_controller.NewController(auditlogPostgres)

	// #auth
	r.Post("/api/v1/sign-in", authController.SignIn)
	r.Post("/api/v1/refresh-token", authController.RefreshToken)
	r.Post("/api/v1/logout", authController.Logout, middleware.Authenticate(r.auth, r.session))

	// #user
	r.Get("/api/v1/user/list", userController.GetList, middleware.Authenticate(r.auth, r.session, auth.RoleAdmin))
	r.Get("/api/v1/user/me", userController.GetMe, middleware.Authenticate(r.auth, r.session))
	r.Post("/api/v1/user/change-password", userController.ChangePassword, middleware.Authenticate(r.auth, r.session))
	r.Get("/api/v1/user/import-template", userController.ImportTemplate, middleware.Authenticate(r.auth, r.session, auth.RoleAdmin))
	r.Post("/api/v1/user/import", userController.ImportStudents, middleware.Authenticate(r.auth, r.session, auth.RoleAdmin))
	r.Get("/api/v1/user/:id/card", userController.Card, middleware.Authenticate(r.auth, r.session, auth.RoleAdmin))
	r.Get("/api/v1/user/:id", userController.GetDetailById, middleware.Authenticate(r.auth, r.session, auth.RoleAdmin))
	r.Post("/api/v1/user/create", userController.Create, middleware.Authenticate(r.auth, r.session, auth.RoleAdmin))
	r.Patch("/api/v1/user/:id", userController.UpdateColumns, middleware.Authenticate(r.auth, r.session, auth.RoleAdmin))
	r.Delete("/api/v1/user/:id", userController.Delete, middleware.Authenticate(r.auth, r.session, auth.RoleAdmin))

	// #department
	r.Get("/api/v1/department/list", departmentController.GetList, middleware.Authenticate(r.auth, r.session))
	r.Get("/api/v1/department/:id", departmentController.GetDetailById, middleware.Authenticate(r.auth, r.session, auth.RoleAdmin))
	r.Post("/api/v1/department/create", departmentController.Create, middleware.Authenticate(r.auth, r.session, auth.RoleAdmin))
	r.Patch("/api/v1/department/:id", departmentController.UpdateColumns, middleware.Authenticate(r.auth, r.session, auth.RoleAdmin))
	r.Delete("/api/v1/department/:id", departmentController.Delete, middleware.Authenticate(r.auth, r.session, auth.RoleAdmin))

	// #subject
	r.Get("/api/v1/subject/list", subjectController.GetList, middleware.Authenticate(r.auth, r.session))
	r.Get("/api/v1/subject/my", subjectController.GetMySubjects, middleware.Authenticate(r.auth, r.session, auth.RoleTeacher))
	r.Get("/api/v1/subject/:id/students", subjectController.GetStudents, middleware.Authenticate(r.auth, r.session, auth.RoleTeacher, auth.RoleAdmin))
	r.Get("/api/v1/subject/:id", subjectController.GetDetailById, middleware.Authenticate(r.auth, r.session))
	r.Post("/api/v1/subject/create", subjectController.Create, middleware.Authenticate(r.auth, r.session, auth.RoleAdmin))
	r.Post("/api/v1/subject/assign-teacher", subjectController.AssignTeacher, middleware.Authenticate(r.auth, r.session, auth.RoleAdmin))
	r.Post("/api/v1/subject/enroll", subjectController.EnrollStudents, middleware.Authenticate(r.auth, r.session, auth.RoleAdmin))
	r.Patch("/api/v1/subject/:id", subjectController.UpdateColumns, middleware.Authenticate(r.auth, r.session, auth.RoleAdmin))
	r.Delete("/api/v1/subject/:id", subjectController.Delete, middleware.Authenticate(r.auth, r.session, auth.RoleAdmin))

	// #attendance
	r.Post("/api/v1/attendance/mark", attendanceController.Mark, middleware.Authenticate(r.auth, r.session, auth.RoleTeacher))
	r.Post("/api/v1/attendance/lock", attendanceController.Lock, middleware.Authenticate(r.auth, r.session, auth.RoleTeacher))
	r.Get("/api/v1/attendance/history", attendanceController.GetHistory, middleware.Authenticate(r.auth, r.session, auth.RoleTeacher))
	r.Get("/api/v1/attendance/my", attendanceController.GetMyAttendance, middleware.Authenticate(r.auth, r.session, auth.RoleStudent))
	r.Get("/api/v1/attendance/my/daily", attendanceController.GetMyDaily, middleware.Authenticate(r.auth, r.session, auth.RoleStudent))
	r.Get("/api/v1/attendance/my/stats", attendanceController.GetMyStats, middleware.Authenticate(r.auth, r.session, auth.RoleStudent))
	r.Post("/api/v1/attendance/bulk-present", attendanceController.BulkMarkPresent, middleware.Authenticate(r.auth, r.session, auth.RoleAdmin))
	r.Get("/api/v1/attendance/logs", attendanceController.GetLogs, middleware.Authenticate(r.auth, r.session, auth.RoleAdmin))
	r.Get("/api/v1/attendance/export", attendanceController.Export, middleware.Authenticate(r.auth, r.session, auth.RoleAdmin))
	r.Get("/api/v1/attendance/sheet/:subject_id", attendanceController.Sheet, middleware.Authenticate(r.auth, r.session, auth.RoleTeacher, auth.RoleAdmin))
	r.Patch("/api/v1/attendance/:id", attendanceController.Update, middleware.Authenticate(r.auth, r.session, auth.RoleTeacher))

	// #dashboard
	r.Get("/api/v1/dashboard/stats", attendanceController.GetDashboardStats, middleware.Authenticate(r.auth, r.session, auth.RoleAdmin))

	// #audit
	r.Get("/api/v1/audit/list", auditlogController.GetList, middleware.Authenticate(r.auth, r.session, auth.RoleAdmin))

	return r.Run(r.port)
}
