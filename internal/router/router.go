package router

import (
	"time"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/peegflow-code/PeegFlow-Piloto/internal/config"
	"github.com/peegflow-code/PeegFlow-Piloto/internal/handler"
	"github.com/peegflow-code/PeegFlow-Piloto/internal/middleware"
	"github.com/peegflow-code/PeegFlow-Piloto/internal/model"
	"github.com/peegflow-code/PeegFlow-Piloto/internal/repository"
	"github.com/peegflow-code/PeegFlow-Piloto/internal/service"
	"github.com/peegflow-code/PeegFlow-Piloto/internal/worker"
)

// New wires all dependencies and returns a configured Gin engine.
// Dependency graph: Handler ← Service ← Repository ← DB/Redis
func New(cfg *config.Config, db *gorm.DB, rdb *redis.Client) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware chain (order matters)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Recovery())
	r.Use(middleware.CORS())
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.RateLimiter(1000, time.Minute)) // 1000 req/min per IP

	// ── Repositories ─────────────────────────────────────────────────────────
	userRepo := repository.NewUserRepository(db)
	productRepo := repository.NewProductRepository(db)
	saleRepo := repository.NewSaleRepository(db)
	expenseRepo := repository.NewExpenseRepository(db)

	// Worker dispatcher — injected into services that enqueue async jobs
	dispatcher := worker.NewDispatcher(rdb)

	// ── Services ─────────────────────────────────────────────────────────────
	authSvc := service.NewAuthService(userRepo, cfg)
	catalogSvc := service.NewCatalogService(productRepo, saleRepo)
	saleSvc := service.NewSaleService(saleRepo, productRepo, dispatcher)
	expenseSvc := service.NewExpenseService(expenseRepo, productRepo)
	financeSvc := service.NewFinanceService(saleRepo, expenseRepo)

	// ── Handlers ─────────────────────────────────────────────────────────────
	authH := handler.NewAuthHandler(authSvc)
	productsH := handler.NewProductsHandler(catalogSvc, expenseSvc)
	salesH := handler.NewSalesHandler(saleSvc)
	expensesH := handler.NewExpensesHandler(expenseSvc)
	financeH := handler.NewFinanceHandler(financeSvc)
	usersH := handler.NewUsersHandler(authSvc)

	// ── Routes ───────────────────────────────────────────────────────────────

	// Public
	r.GET("/health", handler.Health(db, rdb))

	auth := r.Group("/v1/auth")
	{
		auth.POST("/login", middleware.LoginRateLimiter(), authH.Login)
		auth.POST("/refresh", authH.Refresh)
	}

	// Protected routes
	jwtMW := middleware.JWTAuth(cfg.JWTSecret)
	anyRole := middleware.RequireRole(model.RoleAdmin, model.RoleUser)
	adminOnly := middleware.RequireRole(model.RoleAdmin)

	v1 := r.Group("/v1", jwtMW)
	{
		// Catalog — everyone reads, admin writes
		v1.GET("/products", anyRole, productsH.List)
		v1.GET("/products/low-stock", anyRole, productsH.LowStock)
		v1.GET("/products/:id", anyRole, productsH.Get)
		prods := v1.Group("/products", adminOnly)
		{
			prods.POST("", productsH.Register)
			prods.PUT("/:id", productsH.Update)
			prods.DELETE("/:id", productsH.Delete)
			prods.POST("/:id/restock", productsH.Restock)
		}

		// Sales
		v1.POST("/sales", anyRole, salesH.Record)
		v1.POST("/sales/checkout", anyRole, salesH.Checkout)
		v1.GET("/sales", anyRole, salesH.List)

		// Expenses — admin only
		expenses := v1.Group("/expenses", adminOnly)
		{
			expenses.POST("", expensesH.Add)
			expenses.GET("", expensesH.List)
		}

		// Finance — admin only
		finance := v1.Group("/finance", adminOnly)
		{
			finance.GET("/report", financeH.Financials)
			finance.GET("/summary", financeH.Summary)
		}

		// Users — admin manages, anyone rotates their own password
		v1.PUT("/users/password", anyRole, usersH.ChangePassword)
		users := v1.Group("/users", adminOnly)
		{
			users.POST("", usersH.Create)
			users.GET("", usersH.List)
			users.DELETE("/:id", usersH.Delete)
		}
	}

	// Swagger UI — only enabled outside production
	if cfg.Env != "production" {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	return r
}
