package handlers

import (
	"log/slog"
	"net/http"

	"github.com/dimitrije/todo-api/internal/middleware"
	"github.com/m1z23r/drift/pkg/drift"
	driftmw "github.com/m1z23r/drift/pkg/middleware"
)

type AppConfig struct {
	Production   bool
	AllowOrigins []string
	Logger       *slog.Logger
}

type Services struct {
	Users     UserServiceInterface
	TodoLists TodoListServiceInterface
	Tasks     TaskServiceInterface
	Hub       HubInterface
	DB        Pinger
}

// NewApp builds the drift application with every route of the API.
func NewApp(cfg AppConfig, svc Services) http.Handler {
	userHandler := NewUserHandler(svc.Users)
	todoListHandler := NewTodoListHandler(svc.TodoLists, svc.Hub)
	taskHandler := NewTaskHandler(svc.Tasks, svc.Hub)
	sseHandler := NewSSEHandler(svc.Hub, svc.TodoLists)
	healthHandler := NewHealthHandler(svc.DB)

	app := drift.New()

	if cfg.Production {
		app.SetMode(drift.ReleaseMode)
	} else {
		app.SetMode(drift.DebugMode)
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	app.Use(driftmw.Recovery())
	app.Use(driftmw.CORSWithConfig(driftmw.CORSConfig{
		AllowOrigins: cfg.AllowOrigins,
		AllowMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders: []string{"Origin", "Content-Type", "Accept"},
		MaxAge:       86400,
	}))
	app.Use(driftmw.BodyParser())
	app.Use(middleware.RequestLogger(logger))

	app.Get("/health", healthHandler.Check)

	app.Get("/users", userHandler.List)
	app.Get("/users/:id", userHandler.Get)
	app.Post("/register", userHandler.Register)
	app.Post("/login", userHandler.Login)

	app.Post("/todolists", todoListHandler.Create)
	app.Post("/todolists/:id", todoListHandler.PostAction)
	app.Get("/todolists/:id", todoListHandler.ListForUser)
	app.Delete("/todolists/:id", todoListHandler.Delete)
	app.Get("/todolists/:id/users", todoListHandler.Members)
	app.Post("/todolists/:id/leave", todoListHandler.Leave)
	app.Get("/todolists/:id/events", sseHandler.Connect)

	app.Post("/sse/:clientId/subscribe/:id", sseHandler.Subscribe)
	app.Post("/sse/:clientId/unsubscribe/:id", sseHandler.Unsubscribe)

	app.Get("/tasks/:id", taskHandler.List)
	app.Post("/tasks", taskHandler.Create)
	app.Put("/tasks/:id", taskHandler.Update)
	app.Patch("/tasks/:id", taskHandler.Update)
	app.Delete("/tasks/:id", taskHandler.Delete)

	return app
}
