package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/goodplates/recipes-api/internal/api/handler"
	"github.com/goodplates/recipes-api/internal/api/middleware"
	"github.com/goodplates/recipes-api/internal/core/domain"
	"github.com/goodplates/recipes-api/internal/core/ports"
	"github.com/goodplates/recipes-api/internal/core/service"
	mongodb "github.com/goodplates/recipes-api/internal/infrastructure/db/mongo"
	redisdb "github.com/goodplates/recipes-api/internal/infrastructure/db/redis"
	"github.com/goodplates/recipes-api/internal/pkg/config"
)

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(db *mongo.Database, rdb *redis.Client, audit ports.AuditRecorder, cfg *config.Config, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("recipes"))

	// --- Dependencies ---
	userRepo := mongodb.NewUserRepository(db)
	tagRepo := mongodb.NewTagRepository(db)
	ingredientRepo := mongodb.NewIngredientRepository(db)
	recipeRepo := mongodb.NewRecipeRepository(db)
	txRunner := mongodb.NewTxRunner(db.Client())
	denylist := redisdb.NewDenylist(rdb)

	authService := service.NewAuthService(userRepo, denylist, cfg.JWTSecret, cfg.TokenTTL, log)
	userService := service.NewUserService(userRepo, log)
	tagService := service.NewTagService(tagRepo, log)
	ingredientService := service.NewIngredientService(ingredientRepo, log)
	recipeService := service.NewRecipeService(recipeRepo, tagRepo, ingredientRepo, userRepo, txRunner, audit, log)

	authHandler := handler.NewAuthHandler(authService)
	userHandler := handler.NewUserHandler(userService)
	tagHandler := handler.NewTagHandler(tagService)
	ingredientHandler := handler.NewIngredientHandler(ingredientService)
	recipeHandler := handler.NewRecipeHandler(recipeService)
	healthHandler := handler.NewHealthHandler(db, rdb)

	authMW := middleware.Auth(cfg.JWTSecret, denylist)

	// --- Public routes ---
	e.POST("/auth/register", authHandler.Register)
	e.POST("/auth/login", authHandler.Login)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", healthHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	// --- Authenticated routes ---
	e.POST("/auth/logout", authHandler.Logout, authMW)

	// Recipes are governed by the ownership rules inside the handler, not by
	// role grants: a plain user holds no blanket recipe permission.
	recipes := e.Group("/recipes", authMW)
	recipes.POST("", recipeHandler.Create)
	recipes.GET("", recipeHandler.List)
	recipes.GET("/:id", recipeHandler.Get)
	recipes.PATCH("/:id", recipeHandler.Update)
	recipes.DELETE("/:id", recipeHandler.Delete)

	tags := e.Group("/tags", authMW)
	tags.POST("", tagHandler.Create, requires(domain.ActionCreate, domain.SubjectTag))
	tags.GET("", tagHandler.List, requires(domain.ActionRead, domain.SubjectTag))
	tags.GET("/:id", tagHandler.Get, requires(domain.ActionRead, domain.SubjectTag))
	tags.DELETE("/:id", tagHandler.Delete, requires(domain.ActionDelete, domain.SubjectTag))

	ingredients := e.Group("/ingredients", authMW)
	ingredients.POST("", ingredientHandler.Create, requires(domain.ActionCreate, domain.SubjectIngredient))
	ingredients.GET("", ingredientHandler.List, requires(domain.ActionRead, domain.SubjectIngredient))
	ingredients.GET("/:id", ingredientHandler.Get, requires(domain.ActionRead, domain.SubjectIngredient))
	ingredients.DELETE("/:id", ingredientHandler.Delete, requires(domain.ActionDelete, domain.SubjectIngredient))

	// Account management is admin-only, except reading a single account:
	// that route runs a self-or-admin check in the handler so users can
	// fetch their own record.
	users := e.Group("/users", authMW)
	users.POST("", userHandler.Create, requires(domain.ActionCreate, domain.SubjectUser))
	users.GET("", userHandler.List, requires(domain.ActionRead, domain.SubjectUser))
	users.GET("/:id", userHandler.Get)
	users.PATCH("/:id", userHandler.Update, requires(domain.ActionUpdate, domain.SubjectUser))
	users.DELETE("/:id", userHandler.Delete, requires(domain.ActionDelete, domain.SubjectUser))

	return e
}

func requires(action domain.Action, subject domain.Subject) echo.MiddlewareFunc {
	return middleware.RequirePolicies(middleware.PolicyCheck{Action: action, Subject: subject})
}
