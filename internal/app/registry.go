package app

import (
	"database/sql"
	"os"
	"path/filepath"
	"time"

	"github.com/HikkizZ/Project-GPS-2025-sub001/internal/auth"
	"github.com/HikkizZ/Project-GPS-2025-sub001/internal/bonus"
	"github.com/HikkizZ/Project-GPS-2025-sub001/internal/bonusassignment"
	"github.com/HikkizZ/Project-GPS-2025-sub001/internal/client"
	"github.com/HikkizZ/Project-GPS-2025-sub001/internal/employmentfile"
	"github.com/HikkizZ/Project-GPS-2025-sub001/internal/history"
	"github.com/HikkizZ/Project-GPS-2025-sub001/internal/identity"
	"github.com/HikkizZ/Project-GPS-2025-sub001/internal/leave"
	"github.com/HikkizZ/Project-GPS-2025-sub001/internal/machinery"
	"github.com/HikkizZ/Project-GPS-2025-sub001/internal/mailer"
	"github.com/HikkizZ/Project-GPS-2025-sub001/internal/messaging/kafka"
	"github.com/HikkizZ/Project-GPS-2025-sub001/internal/middleware"
	"github.com/HikkizZ/Project-GPS-2025-sub001/internal/payroll"
	"github.com/HikkizZ/Project-GPS-2025-sub001/internal/rbac"
	"github.com/HikkizZ/Project-GPS-2025-sub001/internal/rbac/infra"
	"github.com/HikkizZ/Project-GPS-2025-sub001/internal/storage"
	"github.com/HikkizZ/Project-GPS-2025-sub001/internal/user"
	"github.com/HikkizZ/Project-GPS-2025-sub001/internal/worker"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

func uploadRoot() string {
	if dir := os.Getenv("UPLOAD_DIR"); dir != "" {
		return dir
	}
	return "uploads"
}

func registerModules(
	router *gin.Engine,
	db *sql.DB,
	gormDB *gorm.DB,
	rdb *redis.Client,
	loc *time.Location,
) error {
	// --- Repositories ---
	userRepo := user.NewRepository(gormDB)
	workerRepo := worker.NewRepository(gormDB)
	fileRepo := employmentfile.NewRepository(gormDB)
	historyRepo := history.NewRepository(gormDB)
	ledgerRepo := identity.NewRepository(gormDB)
	bonusRepo := bonus.NewRepository(gormDB)
	assignmentRepo := bonusassignment.NewRepository(gormDB)
	leaveRepo := leave.NewRepository(gormDB)
	clientRepo := client.NewRepository(gormDB)
	machineryRepo := machinery.NewRepository(gormDB)
	outboxRepo := kafka.NewOutboxRepository(db)

	// --- RBAC Core ---
	enforcer, err := infra.NewEnforcer(filepath.Join("internal", "rbac", "infra", "model.conf"))
	if err != nil {
		return err
	}
	rbacService, err := rbac.NewService(enforcer)
	if err != nil {
		return err
	}

	contractStore, err := storage.NewLocalStore(uploadRoot())
	if err != nil {
		return err
	}

	mail := mailer.New(mailer.ConfigFromEnv())

	// --- Services ---
	authService := auth.NewService(userRepo)
	userService := user.NewService(userRepo)
	workerService := worker.NewService(
		db, workerRepo, userRepo, fileRepo, historyRepo,
		identity.NewAllocator(ledgerRepo), mail, outboxRepo, loc,
	)
	fileService := employmentfile.NewService(db, fileRepo, historyRepo, outboxRepo, contractStore, loc)
	bonusService := bonus.NewService(bonusRepo, assignmentRepo, rdb)
	assignmentService := bonusassignment.NewService(db, assignmentRepo, bonusRepo, fileRepo, outboxRepo, loc)
	leaveService := leave.NewService(db, leaveRepo, workerRepo, fileRepo, historyRepo, loc)
	clientService := client.NewService(clientRepo)
	machineryService := machinery.NewService(machineryRepo, clientRepo, loc)
	payrollService := payroll.NewService(fileRepo, assignmentRepo, rdb)

	// --- Handlers ---
	authHandler := auth.NewHandler(authService)
	userHandler := user.NewHandler(userService)
	workerHandler := worker.NewHandler(workerService)
	fileHandler := employmentfile.NewHandler(fileService, uploadRoot())
	bonusHandler := bonus.NewHandler(bonusService)
	assignmentHandler := bonusassignment.NewHandler(assignmentService)
	leaveHandler := leave.NewHandler(leaveService)
	clientHandler := client.NewHandler(clientService)
	machineryHandler := machinery.NewHandler(machineryService)
	payrollHandler := payroll.NewHandler(payrollService)
	rbacHandler := rbac.NewHandler(rbacService)

	// --- Routes Registration ---
	api := router.Group("/api/v1")
	api.Use(middleware.Idempotency(rdb))
	{
		auth.RegisterRoutes(api, authHandler)
		user.RegisterRoutes(api, userHandler, rbacService)
		worker.RegisterRoutes(api, workerHandler, rbacService)
		employmentfile.RegisterRoutes(api, fileHandler, rbacService)
		bonus.RegisterRoutes(api, bonusHandler, rbacService)
		bonusassignment.RegisterRoutes(api, assignmentHandler, rbacService)
		leave.RegisterRoutes(api, leaveHandler, rbacService)
		client.RegisterRoutes(api, clientHandler, rbacService)
		machinery.RegisterRoutes(api, machineryHandler, rbacService)
		payroll.RegisterRoutes(api, payrollHandler, rbacService)
		rbac.RegisterRoutes(api, rbacHandler, rbacService)
	}

	return nil
}
