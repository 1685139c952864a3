package main

import (
	"os"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/parley-chat/parley/internal/api/handlers"
	"github.com/parley-chat/parley/internal/api/middleware"
	"github.com/parley-chat/parley/internal/config"
	"github.com/parley-chat/parley/internal/crypto"
	"github.com/parley-chat/parley/internal/database"
	"github.com/parley-chat/parley/internal/logger"
	"github.com/parley-chat/parley/internal/notify"
	"github.com/parley-chat/parley/internal/store"
	"github.com/parley-chat/parley/internal/ws"
)

func main() {
	cfg, err := config.Load(config.Overrides{})
	if err != nil {
		logger.Errorf("Failed to load config: %v", err)
		os.Exit(1)
	}

	if cfg.Debug {
		logger.SetLevel(logger.LevelDebug)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	logger.Infof("Opening database: %s", cfg.DatabasePath)
	db, err := database.Open(cfg.DatabasePath)
	if err != nil {
		logger.Errorf("Failed to open database: %v", err)
		os.Exit(1)
	}
	defer db.Close()

	queries := store.New(db.DB)

	fileStore, err := store.NewFileStore(db.DB, cfg.FileStorePath)
	if err != nil {
		logger.Errorf("Failed to open file store: %v", err)
		os.Exit(1)
	}

	tokens, err := crypto.NewTokenManager(cfg.MasterSecret)
	if err != nil {
		logger.Errorf("Failed to create token manager: %v", err)
		os.Exit(1)
	}

	var notifier notify.Notifier = notify.NopNotifier{}
	if cfg.NotifyURL != "" {
		logger.Infof("Email service: %s", cfg.NotifyURL)
		notifier = notify.NewRemoteNotifier(cfg.NotifyURL)
	}

	relay := ws.NewServer(queries, tokens, notifier)

	router := gin.New()
	router.Use(gin.Recovery())

	router.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"*"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: false,
	}))
	router.Use(middleware.LoggingMiddleware())

	router.GET("/", func(c *gin.Context) {
		c.String(200, "Welcome to Parley Server!")
	})

	authHandler := handlers.NewAuthHandler(tokens)
	messageHandler := handlers.NewMessageHandler(queries, relay)
	callHandler := handlers.NewCallHandler(queries)
	fileHandler := handlers.NewFileHandler(fileStore)

	v1 := router.Group("/v1")
	{
		v1.POST("/auth", authHandler.PostAuth)
	}

	protected := v1.Group("")
	protected.Use(middleware.AuthMiddleware(tokens))
	{
		protected.GET("/messages", messageHandler.ListMessages)
		protected.DELETE("/messages/:id", messageHandler.DeleteMessage)

		protected.GET("/calls", callHandler.ListCalls)

		protected.GET("/files", fileHandler.ListFiles)
		protected.POST("/files", fileHandler.UploadFile)
		protected.GET("/files/:id", fileHandler.DownloadFile)
		protected.DELETE("/files/:id", fileHandler.DeleteFile)
	}

	// The websocket endpoint authenticates via ?token= because browsers
	// cannot set headers on websocket upgrades.
	router.GET("/v1/ws", relay.HandleWebSocket)

	logger.Infof("Parley Server starting on %s", cfg.Addr)
	if err := router.Run(cfg.Addr); err != nil {
		logger.Errorf("Failed to start server: %v", err)
		os.Exit(1)
	}
}
