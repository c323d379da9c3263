package main

import (
	"database/sql"
	"log"
	"os"
	"strings"
	"time"

	"github.com/Hrafn1377/prosjektravn/handlers"
	"github.com/Hrafn1377/prosjektravn/initializers"
	"github.com/Hrafn1377/prosjektravn/middleware"
	"github.com/Hrafn1377/prosjektravn/pkg/notify"
	"github.com/Hrafn1377/prosjektravn/repository"
	"github.com/Hrafn1377/prosjektravn/websocket"

	"github.com/gin-gonic/gin"
	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/lib/pq"
)

func main() {
	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		log.Fatal("DATABASE_URL is not set")
	}

	jwtSecret := os.Getenv("JWT_SECRET")
	if len(jwtSecret) < 32 {
		log.Fatal("JWT_SECRET must be set and at least 32 characters")
	}

	var db *sql.DB
	var err error
	for i := 0; i < 10; i++ {
		db, err = sql.Open("postgres", dbURL)
		if err == nil {
			err = db.Ping()
			if err == nil {
				break
			}
		}
		log.Printf("DB connection failed: %v, retrying in 2s...", err)
		time.Sleep(2 * time.Second)
	}
	if err != nil {
		log.Fatal("Could not connect to database:", err)
	}
	defer db.Close()

	driver, err := postgres.WithInstance(db, &postgres.Config{})
	if err != nil {
		log.Fatal("Migration driver error:", err)
	}
	m, err := migrate.NewWithDatabaseInstance("file://migrations", "postgres", driver)
	if err != nil {
		log.Fatal("Migration init error:", err)
	}
	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		log.Fatal("Migration failed:", err)
	}

	// Object storage is optional: without it the upload/download endpoints
	// report storage as unconfigured, the metadata CRUD still works.
	if os.Getenv("MINIO_ENDPOINT") != "" {
		if err := initializers.InitStorage(); err != nil {
			log.Fatal("Failed to initialize object storage:", err)
		}
	} else {
		log.Print("MINIO_ENDPOINT not set; file uploads disabled")
	}

	if os.Getenv("GIN_MODE") == "release" || strings.ToLower(os.Getenv("APP_ENV")) == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	usersRepo := repository.NewUsersRepository(db)
	projectsRepo := repository.NewProjectsRepository(db)
	tasksRepo := repository.NewTasksRepository(db)
	documentsRepo := repository.NewDocumentsRepository(db)
	filesRepo := repository.NewFilesRepository(db)
	resourcesRepo := repository.NewResourcesRepository(db)
	teamRepo := repository.NewTeamRepository(db)
	commentsRepo := repository.NewCommentsRepository(db)
	devicesRepo := repository.NewDevicesRepository(db)

	r := gin.New()
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(gin.Recovery())

	trustedProxies := os.Getenv("TRUSTED_PROXIES")
	if trustedProxies != "" {
		parts := strings.Split(trustedProxies, ",")
		for i := range parts {
			parts[i] = strings.TrimSpace(parts[i])
		}
		if err := r.SetTrustedProxies(parts); err != nil {
			log.Fatalf("Invalid TRUSTED_PROXIES: %v", err)
		}
	} else {
		_ = r.SetTrustedProxies([]string{"127.0.0.1", "::1"})
	}

	r.Use(middleware.CORS())
	r.Use(middleware.RateLimit())

	hub := websocket.NewHub()
	notifier := &notify.WSNotifier{Hub: hub}

	authHandler := handlers.NewAuthHandler(usersRepo, jwtSecret)
	projectsHandler := handlers.NewProjectsHandler(projectsRepo, notifier)
	tasksHandler := handlers.NewTasksHandler(tasksRepo, projectsRepo, notifier)
	documentsHandler := handlers.NewDocumentsHandler(documentsRepo)
	filesHandler := handlers.NewFilesHandler(filesRepo)
	resourcesHandler := handlers.NewResourcesHandler(resourcesRepo)
	teamHandler := handlers.NewTeamHandler(teamRepo)
	commentsHandler := handlers.NewCommentsHandler(commentsRepo, tasksRepo)
	devicesHandler := handlers.NewDevicesHandler(devicesRepo)

	r.GET("/health", handlers.HealthCheck)

	// The realtime channel authenticates its own handshake so the rejection
	// happens before the upgrade, never after a room join.
	r.GET("/api/ws", websocket.ServeWS(hub, jwtSecret))

	authPublic := r.Group("/api/auth", middleware.RateLimitAuth())
	authPublic.POST("/register", authHandler.Register)
	authPublic.POST("/login", authHandler.Login)

	api := r.Group("/api", handlers.AuthMiddleware(jwtSecret))
	{
		api.GET("/auth/me", authHandler.Me)

		api.GET("/projects", projectsHandler.List)
		api.GET("/projects/:id", projectsHandler.Get)
		api.POST("/projects", projectsHandler.Create)
		api.PUT("/projects/:id", projectsHandler.Update)
		api.DELETE("/projects/:id", projectsHandler.Delete)
		api.GET("/projects/:id/tasks", tasksHandler.ListByProject)

		api.GET("/tasks", tasksHandler.List)
		api.GET("/tasks/:id", tasksHandler.Get)
		api.POST("/tasks", tasksHandler.Create)
		api.PUT("/tasks/:id", tasksHandler.Update)
		api.DELETE("/tasks/:id", tasksHandler.Delete)
		api.GET("/tasks/:id/comments", commentsHandler.ListByTask)

		api.GET("/documents", documentsHandler.List)
		api.POST("/documents", documentsHandler.Create)
		api.PUT("/documents/:id", documentsHandler.Update)
		api.DELETE("/documents/:id", documentsHandler.Delete)

		api.GET("/files", filesHandler.List)
		api.POST("/files", filesHandler.Create)
		api.POST("/files/upload", filesHandler.Upload)
		api.GET("/files/:id/download", filesHandler.Download)
		api.PUT("/files/:id/status", filesHandler.UpdateStatus)
		api.DELETE("/files/:id", filesHandler.Delete)

		api.GET("/resources", resourcesHandler.List)
		api.POST("/resources", resourcesHandler.Create)
		api.PUT("/resources/:id", resourcesHandler.Update)
		api.DELETE("/resources/:id", resourcesHandler.Delete)

		api.GET("/team", teamHandler.List)
		api.POST("/team", teamHandler.Create)
		api.PUT("/team/:id", teamHandler.Update)
		api.DELETE("/team/:id", teamHandler.Delete)

		api.GET("/comments", commentsHandler.List)
		api.POST("/comments", commentsHandler.Create)
		api.DELETE("/comments/:id", commentsHandler.Delete)

		api.POST("/notifications/register", devicesHandler.RegisterToken)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	if err := r.Run(":" + port); err != nil {
		log.Fatal(err)
	}
}
