package app

import (
	"database/sql"

	"guardshift/internal/attendance"
	"guardshift/internal/auth"
	"guardshift/internal/authz"
	"guardshift/internal/comment"
	"guardshift/internal/company"
	"guardshift/internal/guard"
	"guardshift/internal/location"
	"guardshift/internal/messaging/kafka"
	"guardshift/internal/notification"
	"guardshift/internal/override"
	"guardshift/internal/payroll"
	"guardshift/internal/request"
	"guardshift/internal/roster"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

func registerModules(
	router *gin.Engine,
	db *sql.DB,
	gormDB *gorm.DB,
	rdb *redis.Client,
) error {
	// --- Repositories ---
	userRepo := auth.NewRepository(gormDB)
	companyRepo := company.NewRepository(gormDB)
	locationRepo := location.NewRepository(gormDB)
	guardRepo := guard.NewRepository(gormDB)
	overrideRepo := override.NewRepository(gormDB, db)
	attendanceRepo := attendance.NewRepository(gormDB, db)
	payrollRepo := payroll.NewRepository(gormDB, db)
	commentRepo := comment.NewRepository(gormDB)
	notificationRepo := notification.NewRepository(gormDB)
	requestRepo := request.NewRepository(gormDB, db)
	outboxRepo := kafka.NewOutboxRepository(db)

	// --- Authorization ---
	gate, err := authz.NewGate()
	if err != nil {
		return err
	}

	// --- Services ---
	authService := auth.NewService(userRepo)
	guardService := guard.NewService(guardRepo)
	overrideService := override.NewService(db, overrideRepo, guardRepo, outboxRepo)
	attendanceService := attendance.NewService(
		db, attendanceRepo, guardRepo, locationRepo,
		overrideRepo, payrollRepo, commentRepo, outboxRepo,
	)
	commentService := comment.NewService(commentRepo, guardRepo)
	rosterService := roster.NewService(locationRepo, guardRepo, overrideRepo, attendanceRepo, commentRepo)
	notificationService := notification.NewService(notificationRepo, userRepo)
	requestService := request.NewService(db, requestRepo, outboxRepo)

	// --- Handlers ---
	authHandler := auth.NewHandler(authService)
	companyHandler := company.NewHandler(companyRepo)
	locationHandler := location.NewHandler(locationRepo)
	guardHandler := guard.NewHandler(guardService)
	overrideHandler := override.NewHandler(overrideService)
	attendanceHandler := attendance.NewHandler(attendanceService)
	commentHandler := comment.NewHandler(commentService)
	rosterHandler := roster.NewHandler(rosterService)
	notificationHandler := notification.NewHandler(notificationService)
	requestHandler := request.NewHandler(requestService)

	// --- Routes Registration ---
	api := router.Group("/api/v1")
	{
		auth.RegisterRoutes(api, authHandler)
		company.RegisterRoutes(api, companyHandler)
		location.RegisterRoutes(api, locationHandler)
		guard.RegisterRoutes(api, guardHandler, gate)
		override.RegisterRoutes(api, overrideHandler, gate)
		attendance.RegisterRoutes(api, attendanceHandler, gate, rdb)
		comment.RegisterRoutes(api, commentHandler)
		roster.RegisterRoutes(api, rosterHandler, gate)
		notification.RegisterRoutes(api, notificationHandler)
		request.RegisterRoutes(api, requestHandler, gate)
	}

	return nil
}
