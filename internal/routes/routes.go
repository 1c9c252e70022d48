package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/care-scheduler/internal/audit"
	"github.com/BruksfildServices01/care-scheduler/internal/cache"
	"github.com/BruksfildServices01/care-scheduler/internal/config"
	"github.com/BruksfildServices01/care-scheduler/internal/domain/schedule"
	"github.com/BruksfildServices01/care-scheduler/internal/handlers"
	infraRepo "github.com/BruksfildServices01/care-scheduler/internal/infra/repository"
	"github.com/BruksfildServices01/care-scheduler/internal/middleware"
	"github.com/BruksfildServices01/care-scheduler/internal/timezone"
	ucAppointment "github.com/BruksfildServices01/care-scheduler/internal/usecase/appointment"
	ucClient "github.com/BruksfildServices01/care-scheduler/internal/usecase/client"
	ucSchedule "github.com/BruksfildServices01/care-scheduler/internal/usecase/schedule"
)

type Deps struct {
	DB     *gorm.DB
	Redis  *redis.Client // nil disables the availability cache
	Config *config.Config
	Rules  *schedule.Rules
	Log    *zap.Logger
}

// RegisterRoutes wires repositories, use cases and handlers onto r. The
// returned func flushes the audit queue and must run on shutdown.
func RegisterRoutes(r *gin.Engine, d Deps) (shutdown func()) {
	cfg := d.Config
	loc := timezone.Location(cfg.Timezone)
	now := timezone.Clock(loc)

	// ======================================================
	// INFRA (SINGLETONS)
	// ======================================================
	scheduleRepo := infraRepo.NewScheduleGormRepository(d.DB, cfg.DBTimeout, loc)
	appointmentRepo := infraRepo.NewAppointmentGormRepository(d.DB, cfg.DBTimeout, loc)

	availabilityCache := cache.NewAvailabilityCache(d.Redis, cfg.CacheTTL, d.Log.Named("cache"))

	auditLogger := audit.New(d.DB)
	auditDispatcher := audit.NewDispatcher(auditLogger, d.Log.Named("audit"))

	// ======================================================
	// USE CASES: SCHEDULE
	// ======================================================
	scheduler := ucSchedule.NewScheduler(
		scheduleRepo,
		d.Rules,
		now,
		availabilityCache,
		d.Log.Named("scheduler"),
	)

	blocker := ucSchedule.NewBlocker(
		scheduleRepo,
		availabilityCache,
		auditDispatcher,
		d.Log.Named("blocker"),
	)

	// ======================================================
	// USE CASES: APPOINTMENTS / CLIENTS
	// ======================================================
	createAppointmentUC := ucAppointment.NewCreateAppointment(
		appointmentRepo,
		scheduler,
		availabilityCache,
		auditDispatcher,
		d.Log.Named("booking"),
	)

	cancelAppointmentUC := ucAppointment.NewCancelAppointment(
		appointmentRepo,
		availabilityCache,
		auditDispatcher,
	)

	rescheduleAppointmentUC := ucAppointment.NewRescheduleAppointment(
		appointmentRepo,
		scheduler,
		availabilityCache,
		auditDispatcher,
		d.Log.Named("booking"),
	)

	listAppointmentsByDateUC := ucAppointment.NewListAppointmentsByDate(appointmentRepo)
	listAppointmentsByMonthUC := ucAppointment.NewListAppointmentsByMonth(appointmentRepo, loc)
	listClientAppointmentsUC := ucAppointment.NewListClientAppointments(appointmentRepo)
	listAllAppointmentsUC := ucAppointment.NewListAllAppointments(appointmentRepo)

	registerClientUC := ucClient.NewRegisterClient(appointmentRepo, auditDispatcher)
	updateClientUC := ucClient.NewUpdateClient(appointmentRepo, auditDispatcher)
	clientLookupUC := ucClient.NewLookup(appointmentRepo)

	// ======================================================
	// HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(cfg, d.Log.Named("auth"))
	scheduleHandler := handlers.NewScheduleHandler(scheduler, loc)
	blockHandler := handlers.NewBlockHandler(blocker, loc)
	clientHandler := handlers.NewClientHandler(registerClientUC, updateClientUC, clientLookupUC)
	auditLogsHandler := handlers.NewAuditLogsHandler(auditLogger)

	appointmentHandler := handlers.NewAppointmentHandler(
		createAppointmentUC,
		cancelAppointmentUC,
		rescheduleAppointmentUC,
		listAppointmentsByDateUC,
		listAppointmentsByMonthUC,
		listClientAppointmentsUC,
		listAllAppointmentsUC,
		loc,
	)

	// ======================================================
	// API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// CHAT ADAPTER
		// ------------------------------
		adapter := api.Group("")
		adapter.Use(middleware.AdapterMiddleware(cfg))
		{
			adapter.GET("/procedures", scheduleHandler.Procedures)

			sched := adapter.Group("/schedule")
			{
				sched.GET("/working-hours", scheduleHandler.WorkingHours)
				sched.GET("/free", scheduleHandler.Free)
				sched.GET("/slots", scheduleHandler.Slots)
				sched.GET("/dates", scheduleHandler.Dates)
				sched.GET("/months", scheduleHandler.Months)
			}

			adapter.POST("/clients", clientHandler.Register)
			adapter.GET("/clients/by-chat/:chatId", clientHandler.ByChat)
			adapter.GET("/clients/:id/appointments", appointmentHandler.ListForClient)

			adapter.POST("/appointments", appointmentHandler.Create)
			adapter.DELETE("/appointments/:id", appointmentHandler.Cancel)
			adapter.PUT("/appointments/:id/reschedule", appointmentHandler.Reschedule)
		}

		// ------------------------------
		// AUTH
		// ------------------------------
		api.POST("/auth/login", authHandler.Login)

		// ------------------------------
		// OPERATOR
		// ------------------------------
		admin := api.Group("/admin")
		admin.Use(middleware.AuthMiddleware(cfg))
		{
			admin.GET("/blocks", blockHandler.List)
			admin.POST("/blocks/day", blockHandler.BlockDay)
			admin.POST("/blocks/range", blockHandler.BlockRange)
			admin.DELETE("/blocks/:id", blockHandler.Unblock)

			admin.GET("/appointments", appointmentHandler.List)
			admin.POST("/appointments", appointmentHandler.Create)

			admin.GET("/clients", clientHandler.List)
			admin.POST("/clients", clientHandler.Register)
			admin.PATCH("/clients/:id", clientHandler.Update)

			admin.GET("/audit-logs", auditLogsHandler.List)
		}
	}

	return auditDispatcher.Close
}
