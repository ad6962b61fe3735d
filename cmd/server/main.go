package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"Shkuba/config"
	"Shkuba/internal/auth"
	"Shkuba/internal/game/manager"
	"Shkuba/internal/history"
	"Shkuba/internal/lobby"
	"Shkuba/internal/middleware"
	"Shkuba/internal/storage"
	"Shkuba/internal/utils"
	"Shkuba/internal/websocket"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func main() {
	cfgPath := flag.String("config", "config/config.yaml", "config file")
	flag.Parse()

	if err := config.Load(*cfgPath); err != nil {
		utils.Log.Fatal("config", "err", err)
	}
	if err := utils.Init(config.C.Log.Level); err != nil {
		utils.Log.Fatal("log level", "err", err)
	}
	rules, err := config.C.Game.Rules()
	if err != nil {
		utils.Log.Fatal("game rules", "err", err)
	}
	ctx := context.Background()

	//-------------------------------------------------------
	// 1. 存储：Redis 大厅 / Postgres 历史，未配置则用内存
	//-------------------------------------------------------
	var lobbyRepo lobby.Repo
	if config.C.Redis.Addr != "" {
		if err := storage.InitRedis(ctx, config.C.Redis.Addr, config.C.Redis.Password, config.C.Redis.DB); err != nil {
			utils.Log.Fatal("redis init failed", "err", err)
		}
		lobbyRepo = lobby.NewRedisRepo(storage.Rdb)
	} else {
		utils.Log.Warn("redis not configured, lobby is in-memory")
		lobbyRepo = lobby.NewMemoryRepo()
	}

	var recorder history.Recorder
	if config.C.Database.DSN != "" {
		if err := storage.InitPostgres(ctx, config.C.Database.DSN); err != nil {
			utils.Log.Fatal("postgres init failed", "err", err)
		}
		pg := history.NewPostgres(storage.DB)
		if err := pg.Migrate(ctx); err != nil {
			utils.Log.Fatal("migrate", "err", err)
		}
		recorder = pg
	} else {
		utils.Log.Warn("database not configured, history is in-memory")
		recorder = history.NewMemory()
	}
	defer storage.Close()

	//-------------------------------------------------------
	// 2. Hub（必须最先启动）+ GameManager + 大厅
	//-------------------------------------------------------
	hub := websocket.NewHub()

	gameMgr := manager.NewGameManager(hub, manager.Options{
		Rules:    rules,
		BotDelay: time.Duration(config.C.Game.BotDelayMs) * time.Millisecond,
		Recorder: recorder,
	})
	svc := lobby.NewService(lobbyRepo, config.C.Lobby.PlayerTTL, hub)
	svc.RoomTTL = config.C.Lobby.RoomTTL

	// 配对成功：GameManager 接手
	gameMgr.BindLobby(svc)

	hub.OnIncoming = gameMgr.HandlePlayerMessage
	hub.OnConnect = func(player string) {
		if err := svc.Connect(context.Background(), player); err != nil {
			utils.Log.Error("presence connect", "player", player, "err", err)
		}
	}
	hub.OnDisconnect = func(player string) {
		if err := svc.Disconnect(context.Background(), player); err != nil {
			utils.Log.Error("presence disconnect", "player", player, "err", err)
		}
	}
	go hub.Run()

	//-------------------------------------------------------
	// 3. Gin + CORS + 路由
	//-------------------------------------------------------
	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowAllOrigins:  true,
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
	}))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	authGroup := r.Group("/auth")
	{
		ah := auth.NewHandler([]byte(config.C.JWT.Secret))
		authGroup.POST("/guest", ah.Guest)
		authGroup.GET("/nonce", ah.Nonce)
		authGroup.POST("/nonce", ah.Nonce)
		authGroup.POST("/login", ah.Login)
	}

	api := r.Group("/", middleware.JwtAuthMiddleware([]byte(config.C.JWT.Secret)))
	{
		api.GET("/ws", websocket.ServeWS(hub))

		lh := lobby.NewHandler(svc)
		api.GET("/lobby/players", lh.Players)
		api.POST("/lobby/alert", lh.Alert)
		api.POST("/lobby/join", lh.Join)
		api.POST("/lobby/cancel", lh.Cancel)

		gh := manager.NewHandler(gameMgr)
		api.POST("/games/bot", gh.StartBot)
		api.GET("/games/current", gh.Current)

		api.GET("/history/:player", history.NewHandler(recorder).Recent)
	}

	//-------------------------------------------------------
	// 4. 启动服务器，收到信号后优雅退出
	//-------------------------------------------------------
	srv := &http.Server{Addr: config.C.Server.Port, Handler: r}
	go func() {
		utils.Log.Info("server running", "addr", config.C.Server.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			utils.Log.Fatal("listen", "err", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	utils.Log.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = srv.Shutdown(shutdownCtx)
	gameMgr.Close()
	hub.Close()
}
