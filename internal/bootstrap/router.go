package bootstrap

import (
	"database/sql"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	httpapi "github.com/taskforge-hq/taskforge-backend/internal/api/http"
	"github.com/taskforge-hq/taskforge-backend/internal/auth"
	"github.com/taskforge-hq/taskforge-backend/internal/middleware"
	"github.com/taskforge-hq/taskforge-backend/internal/projects"
	"github.com/taskforge-hq/taskforge-backend/internal/suggestions/events"
	"github.com/taskforge-hq/taskforge-backend/internal/suggestions/heuristics"
	sughttp "github.com/taskforge-hq/taskforge-backend/internal/suggestions/http"
	sugrepo "github.com/taskforge-hq/taskforge-backend/internal/suggestions/repository"
	sugservice "github.com/taskforge-hq/taskforge-backend/internal/suggestions/service"
	taskhttp "github.com/taskforge-hq/taskforge-backend/internal/tasks/http"
	taskrepo "github.com/taskforge-hq/taskforge-backend/internal/tasks/repository"
	"github.com/taskforge-hq/taskforge-backend/internal/users"
)

type RouterDeps struct {
	ServiceName string
	Version     string
	APIKey      string
	Pool        *pgxpool.Pool
	SQL         *sql.DB
	Redis       *redis.Client
}

func BuildRouter(dep RouterDeps) *gin.Engine {
	r := gin.Default()
	r.Use(cors.Default())

	healthHandler := httpapi.NewHealthHandler(dep.ServiceName, dep.Version, dep.Pool)
	healthHandler.RegisterRoutes(r)

	api := r.Group("/api/v1")
	api.Use(middleware.RequestIDMiddleware())
	api.Use(middleware.APIKeyMiddleware(dep.APIKey))
	api.Use(auth.WithUser())

	userRepo := users.NewRepo(dep.Pool)
	projectRepo := projects.NewRepo(dep.Pool)
	taskRepo := taskrepo.NewTaskRepository(dep.SQL)
	suggestionRepo := sugrepo.NewSuggestionRepository(dep.SQL)

	var publisher sugservice.EventPublisher
	if dep.Redis != nil {
		publisher = events.NewPublisher(dep.Redis)
	}

	engine := heuristics.NewEngine(heuristics.DefaultRules())
	suggestionSvc := sugservice.NewSuggestionService(engine, suggestionRepo, taskRepo, projectRepo, publisher)

	users.Register(api.Group("/users"), userRepo)
	projects.Register(api.Group("/projects"), projectRepo)

	tasksGroup := api.Group("/tasks")
	taskhttp.New(taskRepo).Register(tasksGroup)

	suggestionsGroup := api.Group("/suggestions")
	suggestionsGroup.Use(middleware.RateLimitMiddleware(5, 10))
	sughttp.New(suggestionSvc).Register(suggestionsGroup)

	return r
}
