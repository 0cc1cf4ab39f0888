package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"monopolydeal-server/internal/delivery/websocket"
	"monopolydeal-server/internal/directory"
	"monopolydeal-server/internal/events"
	"monopolydeal-server/internal/httpapi"
	"monopolydeal-server/internal/logger"
	"monopolydeal-server/internal/middleware"
	"monopolydeal-server/internal/room"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const httpShutdownTimeout = 10 * time.Second

func main() {
	logLevel := os.Getenv("MONOPOLY_LOG_LEVEL")
	if err := logger.Init(&logLevel); err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}
	defer logger.Sync()
	log := logger.Get()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	dir := directory.NewRepository()
	bus := events.NewEventBus("", nil)
	rooms := room.NewService(dir, bus)

	hub := websocket.NewHub(rooms)
	go hub.Run(ctx)

	wsHandler := websocket.NewHandler(hub)
	apiHandler := httpapi.NewHandler(rooms)

	r := gin.New()
	r.Use(middleware.RequestID(), middleware.ZapLogger(), middleware.ZapRecovery())

	corsConfig := cors.DefaultConfig()
	corsOrigin := os.Getenv("CORS_ORIGIN")
	if corsOrigin == "" {
		corsOrigin = "http://localhost:3000"
	}
	corsConfig.AllowOrigins = []string{corsOrigin}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Accept", "Authorization"}
	r.Use(cors.New(corsConfig))

	r.GET("/health", apiHandler.HealthCheck)

	api := r.Group("/api")
	{
		api.POST("/room/create", apiHandler.CreateRoom)
		api.GET("/room/:room_id", apiHandler.GetRoom)
		api.GET("/rooms", apiHandler.ListRooms)
	}

	r.GET("/ws", func(c *gin.Context) {
		wsHandler.ServeWS(c.Writer, c.Request)
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = "3001"
	}

	srv := &http.Server{Addr: ":" + port, Handler: r}

	go func() {
		log.Info("monopoly deal server starting", zap.String("port", port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("server failed to start", zap.Error(err))
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	log.Info("shutting down")
	cancel()
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), httpShutdownTimeout)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("server shutdown error", zap.Error(err))
	}
}
