package main

import (
	"context"
	"fmt"
	"math/rand/v2"
	nethttp "net/http"
	"os/signal"
	"syscall"
	"time"

	"TileArmy/internal/gate/interfaces"
	"TileArmy/internal/shared/logs"
	"TileArmy/internal/shared/metrics"
	"TileArmy/internal/shared/serverconfig"
	"TileArmy/internal/shared/session"
	transporthttp "TileArmy/internal/shared/transport/http"
	"TileArmy/internal/shared/transport/ws"
	worldactor "TileArmy/internal/world/actor"
	"TileArmy/internal/world/service"
	"TileArmy/modules/kit/logx"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const defaultMetricsPath = "/metrics"

func main() {
	path, err := serverconfig.Load()
	if err != nil {
		panic(err)
	}
	conf := serverconfig.Conf
	if err := logs.Init("game", conf.Log); err != nil {
		panic(err)
	}
	defer logs.Sync()
	logs.Info("conf", zap.String("file", path), zap.Any("conf", conf))

	gameCfg, err := conf.GameConfig()
	if err != nil {
		logs.Fatal("game config", zap.Error(err))
	}
	viewCfg, err := conf.ViewConfig()
	if err != nil {
		logs.Fatal("view config", zap.Error(err))
	}

	provider, err := metrics.New(conf.Metrics.Enabled)
	if err != nil {
		logs.Fatal("metrics provider", zap.Error(err))
	}
	gameMetrics, err := metrics.NewGame(provider.Meter())
	if err != nil {
		logs.Fatal("game metrics", zap.Error(err))
	}

	baseLogger := logx.NewZapLogger(logs.Logger())
	worldLogger := baseLogger.With(zap.String("module", "world"))

	simOpts := []service.Option{
		service.WithLogger(worldLogger),
		service.WithMetrics(gameMetrics),
	}
	if seed := conf.GameServer.Seed; seed != 0 {
		simOpts = append(simOpts, service.WithRand(rand.New(rand.NewPCG(seed, seed))))
	}
	sim := service.New(gameCfg, simOpts...)
	sim.Seed()

	sessMgr := session.NewSessMgr()
	runtime := worldactor.NewRuntime(sim, sessMgr, worldactor.Options{
		TickEvery:  gameCfg.Tick(),
		AskTimeout: time.Duration(conf.GameServer.AskTimeoutMS) * time.Millisecond,
		Metrics:    gameMetrics,
		Logger:     worldLogger,
	})
	defer runtime.Shutdown()

	gateModule := interfaces.New(runtime, gameCfg, viewCfg, baseLogger)

	wsRouter := ws.NewRouter(baseLogger)
	wsModules := []ws.Registrar{
		gateModule,
	}
	for _, m := range wsModules {
		m.WsRegister(wsRouter)
	}
	wsServer := ws.NewServer(wsRouter, gateModule.Accept(), baseLogger, ws.Options{})

	if !conf.Log.Dev {
		gin.SetMode(gin.ReleaseMode)
	}
	host := conf.GameServer.Host
	if host == "" {
		host = "0.0.0.0"
	}
	addr := fmt.Sprintf("%s:%d", host, conf.GameServer.Port)
	httpServer := transporthttp.NewHttpServer(addr, nil, baseLogger)

	httpModules := []transporthttp.Registrar{
		gateModule,
	}
	for _, m := range httpModules {
		m.HttpRegister(httpServer.Engine())
	}
	mountRoutes(httpServer.Engine(), wsServer, provider, conf)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logs.Info("game server listening", zap.String("addr", addr), zap.Duration("tick", gameCfg.Tick()))
		if err := httpServer.Start(); err != nil {
			return fmt.Errorf("game server start failed: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logs.Info("收到退出信号，准备优雅退出")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := provider.Shutdown(shutdownCtx); err != nil {
			logs.Warn("metrics shutdown", zap.Error(err))
		}
		return httpServer.Shutdown(shutdownCtx)
	})
	if err := g.Wait(); err != nil {
		logs.Error("服务异常退出", zap.Error(err))
	}
}

// mountRoutes 挂载 /ws、/metrics 与静态文件；根路径上的 WebSocket 升级同样接入 ws。
func mountRoutes(engine *gin.Engine, wsServer *ws.Server, provider *metrics.Provider, conf serverconfig.Config) {
	engine.GET("/ws", gin.WrapH(wsServer))

	if h := provider.Handler(); h != nil {
		p := conf.Metrics.Path
		if p == "" {
			p = defaultMetricsPath
		}
		engine.GET(p, gin.WrapH(h))
	}

	var static nethttp.Handler
	if dir := conf.GameServer.StaticDir; dir != "" {
		static = nethttp.FileServer(nethttp.Dir(dir))
	}
	engine.NoRoute(func(c *gin.Context) {
		if websocket.IsWebSocketUpgrade(c.Request) {
			wsServer.ServeHTTP(c.Writer, c.Request)
			return
		}
		if static == nil || c.Request.Method != nethttp.MethodGet {
			c.Status(nethttp.StatusNotFound)
			return
		}
		static.ServeHTTP(c.Writer, c.Request)
	})
}
