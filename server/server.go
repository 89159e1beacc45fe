package server

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"NoYaRender/config"
	"NoYaRender/core/auth"
	"NoYaRender/core/render"
	"NoYaRender/logger"
	"NoYaRender/storage"
)

// Start initializes and starts the render-job HTTP server.
func Start() {
	cfg := config.Load()
	logger.InitLogger(logger.Config{
		Level:      logger.LogLevel(cfg.LogLevel),
		OutputPath: cfg.LogPath,
		MaxSize:    100,
		MaxBackups: 3,
		MaxAge:     28,
	})

	if cfg.RequireLicense {
		deviceID := auth.MachineID()
		if err := auth.Validate(cfg.LicenseKey, deviceID, cfg.LicenseExpiry, cfg.LicenseSalt, time.Now()); err != nil {
			logger.Fatal("license check failed",
				logger.String("device", deviceID),
				logger.ErrorField(err))
		}
		logger.Info("license valid", logger.String("device", deviceID))
	}

	profiles, err := config.LoadProfileTable(cfg.ProfilesPath)
	if err != nil {
		logger.Fatal("failed to load hardware profiles", logger.ErrorField(err))
	}
	stop := make(chan struct{})
	defer close(stop)
	go func() {
		if err := profiles.Watch(stop); err != nil {
			logger.Warn("profile watcher stopped", logger.ErrorField(err))
		}
	}()

	var store *storage.ArtifactStore
	if cfg.MinioEnabled {
		store, err = storage.NewArtifactStore(cfg)
		if err != nil {
			logger.Fatal("failed to initialize artifact store", logger.ErrorField(err))
		}
	}

	orchestrator := render.New(cfg, profiles)
	manager := NewJobManager(orchestrator, store)
	manager.StartWorker()

	handler := NewAPIHandler(manager, profiles)

	router := mux.NewRouter()
	router.Use(corsMiddleware)
	router.HandleFunc("/api/render", handler.SubmitRenderHandler).Methods(http.MethodPost, http.MethodOptions)
	router.HandleFunc("/api/render/{id}", handler.JobStatusHandler).Methods(http.MethodGet)
	router.HandleFunc("/api/render/{id}/progress", handler.ProgressSocketHandler)
	router.HandleFunc("/api/profiles", handler.ProfilesHandler).Methods(http.MethodGet)
	router.HandleFunc("/api/presets", handler.PresetsHandler).Methods(http.MethodGet)

	server := &http.Server{
		Addr:    cfg.ServerAddr,
		Handler: router,
		// Long read/idle windows: websocket progress connections stay open
		// for the length of a render.
		ReadTimeout: 30 * time.Second,
		IdleTimeout: 120 * time.Second,
	}

	logger.Info("server listening", logger.String("addr", cfg.ServerAddr))
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Fatal("server failed", logger.ErrorField(err))
	}
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}
