package v1

import (
	"log"

	"credtrack/internal/config"
	"credtrack/internal/database"
	"credtrack/internal/delivery/http/handler"
	"credtrack/internal/delivery/http/middleware"
	"credtrack/internal/domain/user"
	"credtrack/internal/infrastructure/cache"
	"credtrack/internal/infrastructure/gateway"
	"credtrack/internal/pkg/jwt"
	apirepo "credtrack/internal/repository"
	adminuc "credtrack/internal/usecase/admin"
	authuc "credtrack/internal/usecase/auth"
	courseuc "credtrack/internal/usecase/course"
	employeruc "credtrack/internal/usecase/employer"
	jobuc "credtrack/internal/usecase/job"
	skilluc "credtrack/internal/usecase/skill"
	studentuc "credtrack/internal/usecase/student"
	"credtrack/internal/ws"

	"github.com/gofiber/fiber/v3"
)

type Deps struct {
	Config  config.Config
	DB      database.DB
	Cache   *cache.Redis
	Gateway *gateway.Client
	Hub     *ws.Hub
	Logger  *log.Logger
}

// handlerSet is everything mount needs; Register assembles it from live
// infrastructure, tests assemble it from fakes.
type handlerSet struct {
	auth     *handler.AuthHandler
	student  *handler.StudentHandler
	skill    *handler.SkillHandler
	course   *handler.CourseHandler
	job      *handler.JobHandler
	employer *handler.EmployerHandler
	admin    *handler.AdminHandler
	ws       *ws.Handler
	authMw   fiber.Handler
}

func Register(r fiber.Router, deps Deps) {
	if r == nil {
		return
	}

	jwtSvc := jwt.NewHMACService(
		deps.Config.JWT.AccessSecret,
		deps.Config.JWT.RefreshSecret,
		deps.Config.JWT.AccessExpiresIn,
		deps.Config.JWT.RefreshExpiresIn,
	)

	userRepo := apirepo.NewPostgresUserRepository(deps.DB)
	schoolRepo := apirepo.NewPostgresSchoolRepository(deps.DB)
	courseRepo := apirepo.NewPostgresCourseRepository(deps.DB)
	skillRepo := apirepo.NewPostgresSkillRepository(deps.DB)
	jobRepo := apirepo.NewPostgresJobRepository(deps.DB)

	notifier := ws.NewHubNotifier(deps.Hub)

	authUC := authuc.NewService(userRepo, schoolRepo, jwtSvc)
	studentUC := studentuc.NewService(userRepo, courseRepo)
	skillUC := skilluc.NewService(skillRepo, courseRepo, schoolRepo, deps.Gateway, notifier)
	courseUC := courseuc.NewService(courseRepo, schoolRepo)
	jobUC := jobuc.NewService(jobRepo, userRepo, schoolRepo, skillRepo, deps.Cache, notifier)
	employerUC := employeruc.NewService(userRepo, schoolRepo, skillRepo, deps.Cache)
	adminUC := adminuc.NewService(userRepo)

	mount(r, handlerSet{
		auth:     handler.NewAuthHandler(authUC),
		student:  handler.NewStudentHandler(studentUC),
		skill:    handler.NewSkillHandler(skillUC),
		course:   handler.NewCourseHandler(courseUC),
		job:      handler.NewJobHandler(jobUC),
		employer: handler.NewEmployerHandler(employerUC),
		admin:    handler.NewAdminHandler(adminUC),
		ws:       ws.NewHandler(deps.Hub, jwtSvc, deps.Logger),
		authMw:   middleware.NewAuthMiddleware(jwtSvc, userRepo).Middleware(),
	})
}

// mount builds the route tree. Group-level middleware in Fiber applies by
// path prefix, so a role gate may only live on a group whose prefix it
// owns alone; prefixes shared between roles get per-route gates instead.
func mount(r fiber.Router, h handlerSet) {
	studentOnly := middleware.RequireRoles(user.RoleStudent)
	employerOnly := middleware.RequireRoles(user.RoleEmployer)
	schoolOnly := middleware.RequireRoles(user.RoleSchool)
	adminOnly := middleware.RequireRoles(user.RoleAdmin)

	h.auth.RegisterRoutes(r.Group("/auth"))
	r.Get("/ws", h.ws.HandleNotifications)

	h.student.RegisterRoutes(r.Group("/students", h.authMw, studentOnly))

	// Static job paths must be mounted before the employer routes that
	// carry an :id segment.
	jobs := r.Group("/jobs", h.authMw)
	h.job.RegisterStudentRoutes(jobs, studentOnly)
	h.job.RegisterEmployerRoutes(jobs, employerOnly)

	skills := r.Group("/skills", h.authMw)
	h.skill.RegisterReviewerRoutes(skills, schoolOnly)
	h.skill.RegisterStudentRoutes(skills, studentOnly)

	h.course.RegisterRoutes(r.Group("/courses", h.authMw, schoolOnly))

	employers := r.Group("/employers")
	h.employer.RegisterPublicRoutes(employers)
	h.employer.RegisterRoutes(employers, h.authMw, employerOnly)

	h.admin.RegisterRoutes(r.Group("/admin", h.authMw, adminOnly))
}
