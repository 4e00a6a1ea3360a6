package main

import (
	"net/http"
	"os"
	"path/filepath"

	"portfolio-api/internal/api/handlers"
	"portfolio-api/internal/auth"
	"portfolio-api/internal/config"
	"portfolio-api/internal/logger"
	"portfolio-api/internal/repository/db"
	"portfolio-api/internal/repository/memory"
	"portfolio-api/internal/repository/postgres"
	analyticsService "portfolio-api/internal/service/analytics"
	chatService "portfolio-api/internal/service/chat"
	"portfolio-api/internal/service/llm"
)

func enableCORS(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	}
}

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Log.WithError(err).Fatal("Failed to load configuration")
	}

	// Open the backing store. The in-memory store is the default; its
	// contents live exactly as long as the process.
	var database db.Database
	if cfg.Database.Driver == "postgres" {
		database, err = postgres.NewPostgresDB(cfg.Database)
		if err != nil {
			logger.Log.WithError(err).Fatal("Failed to initialize database")
		}
	} else {
		database = memory.NewMemoryStore()
		logger.Log.Info("Using in-memory store, data is volatile")
	}
	defer database.Close()

	if cfg.AdminEnabled() {
		if err := auth.SeedAdmin(database, cfg.Auth); err != nil {
			logger.Log.WithError(err).Fatal("Failed to seed admin user")
		}
	}

	// Wire services and handlers
	provider := llm.NewShapesProvider(&cfg.Shapes)
	chatSvc := chatService.NewChatService(database, provider, cfg.Shapes.SystemPrompt)
	presence := analyticsService.NewPresenceTracker(cfg.Analytics.PresenceWindow)
	analyticsSvc := analyticsService.NewAnalyticsService(database, presence)

	chatHandlers := handlers.NewChatHandlers(chatSvc)
	analyticsHandlers := handlers.NewAnalyticsHandlers(analyticsSvc)

	mux := http.NewServeMux()

	// CORS preflight handler for OPTIONS requests
	corsHandler := func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		w.WriteHeader(http.StatusOK)
	}

	// Chat routes
	mux.HandleFunc("POST /api/chat", enableCORS(chatHandlers.ChatHandler))
	mux.HandleFunc("OPTIONS /api/chat", corsHandler)
	mux.HandleFunc("GET /api/chat/{sessionId}", enableCORS(chatHandlers.HistoryHandler))
	mux.HandleFunc("DELETE /api/chat/{sessionId}", enableCORS(chatHandlers.ClearSessionHandler))
	mux.HandleFunc("OPTIONS /api/chat/{sessionId}", corsHandler)

	// Analytics routes
	mux.HandleFunc("POST /api/analytics/visit", enableCORS(analyticsHandlers.VisitHandler))
	mux.HandleFunc("OPTIONS /api/analytics/visit", corsHandler)
	mux.HandleFunc("GET /api/analytics/stats", enableCORS(analyticsHandlers.StatsHandler))
	mux.HandleFunc("OPTIONS /api/analytics/stats", corsHandler)

	// Admin routes, only when a JWT secret and admin password are configured
	if cfg.AdminEnabled() {
		authSvc := auth.New(database, cfg.Auth)
		mux.HandleFunc("POST /api/auth/login", enableCORS(authSvc.LoginHandler))
		mux.HandleFunc("OPTIONS /api/auth/login", corsHandler)
		mux.HandleFunc("GET /api/analytics/visits", enableCORS(authSvc.Middleware(analyticsHandlers.VisitsHandler)))
		mux.HandleFunc("OPTIONS /api/analytics/visits", corsHandler)
	}

	mux.HandleFunc("GET /api/health", enableCORS(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	}))

	// Everything else is the static portfolio site
	mux.Handle("/", spaHandler(cfg.Server.StaticDir))

	logger.Log.WithField("port", cfg.Server.Port).Info("Server starting")

	if err := http.ListenAndServe(":"+cfg.Server.Port, mux); err != nil {
		logger.Log.WithError(err).Fatal("Server failed to start")
	}
}

// spaHandler serves the built client, falling back to index.html so
// client-side routes resolve after a page reload
func spaHandler(staticDir string) http.Handler {
	fileServer := http.FileServer(http.Dir(staticDir))

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path := filepath.Join(staticDir, filepath.Clean(r.URL.Path))
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			fileServer.ServeHTTP(w, r)
			return
		}
		http.ServeFile(w, r, filepath.Join(staticDir, "index.html"))
	})
}
