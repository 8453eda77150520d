package main

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/wormden/server/internal/config"
	"github.com/wormden/server/internal/core/event"
	coresys "github.com/wormden/server/internal/core/system"
	"github.com/wormden/server/internal/data"
	"github.com/wormden/server/internal/geom"
	gonet "github.com/wormden/server/internal/net"
	"github.com/wormden/server/internal/persist"
	"github.com/wormden/server/internal/sched"
	"github.com/wormden/server/internal/scripting"
	"github.com/wormden/server/internal/system"
	"github.com/wormden/server/internal/world"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
}

// ── Startup display helpers ────────────────────────────────────────

func printBanner(name string) {
	fmt.Println()
	fmt.Println("\033[36;1m  ┌───────────────────────────────────────┐\033[0m")
	fmt.Println("\033[36;1m  │\033[0m         wormden  v0.1.0               \033[36;1m│\033[0m")
	fmt.Println("\033[36;1m  │\033[0m    serpent arena · headless server    \033[36;1m│\033[0m")
	fmt.Println("\033[36;1m  └───────────────────────────────────────┘\033[0m")
	fmt.Println()
	fmt.Printf("  \033[1mserver:\033[0m %s\n\n", name)
}

func printOK(msg string) {
	fmt.Printf("  \033[32m✓\033[0m %s\n", msg)
}

func printReady(msg string) {
	fmt.Printf("  \033[32m▶\033[0m %s\n", msg)
}

// ── Main server logic ─────────────────────────────────────────────

func run() error {
	// 1. Load config
	cfgPath := "config/server.toml"
	if p := os.Getenv("WORMDEN_CONFIG"); p != "" {
		cfgPath = p
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("load config: %w", err)
		}
		// No config file: run on defaults.
		cfg = config.Defaults()
	}

	// 2. Init logger
	log, err := newLogger(cfg.Logging)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer log.Sync()

	printBanner(cfg.Server.Name)

	// 3. Optional Postgres + migrations
	var runRepo *persist.RunRepo
	if cfg.Database.DSN != "" {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		db, err := persist.NewDB(ctx, cfg.Database, log)
		if err != nil {
			cancel()
			return fmt.Errorf("database: %w", err)
		}
		defer db.Close()
		if err := persist.RunMigrations(ctx, db.Pool); err != nil {
			cancel()
			return fmt.Errorf("migrations: %w", err)
		}
		cancel()
		runRepo = persist.NewRunRepo(db)
		printOK("postgres connected, migrations applied")
	} else {
		log.Warn("no database DSN configured, run persistence disabled")
	}

	// 4. Lua engine
	luaEngine, err := scripting.NewEngine(cfg.Server.ScriptsDir, log)
	if err != nil {
		return fmt.Errorf("scripting: %w", err)
	}
	defer luaEngine.Close()
	printOK("lua scripts loaded")

	// 5. Data tables
	enemyTable, err := data.LoadEnemyTable(cfg.Server.DataDir + "/enemies.yaml")
	if err != nil {
		return fmt.Errorf("enemy table: %w", err)
	}
	waveSchedule, err := data.LoadWaveSchedule(cfg.Server.DataDir+"/waves.yaml", enemyTable)
	if err != nil {
		return fmt.Errorf("wave schedule: %w", err)
	}
	printOK(fmt.Sprintf("data loaded: %d enemy templates, %d waves", enemyTable.Len(), waveSchedule.Len()))

	// 6. World + scheduler
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	ws := world.NewState()
	newSerpent := func() *world.Serpent {
		return world.NewSerpent(geom.Vec2{}, cfg.Arena.SerpentSegments,
			cfg.Arena.SegmentSpacing, cfg.Arena.SerpentSpeed, cfg.Arena.SerpentHealth)
	}
	ws.ResetRun(newSerpent())

	schedCfg := sched.Config{
		BaseInterval:  cfg.Scheduler.BaseInterval,
		MinUpdatePct:  cfg.Scheduler.MinUpdatePct,
		BasePerTick:   cfg.Scheduler.BasePerTick,
		LODDistance:   cfg.Scheduler.LODDistance,
		LODMultiplier: cfg.Scheduler.LODMultiplier,
		CacheRefresh:  cfg.Scheduler.CacheRefresh,
		ValidateEvery: cfg.Scheduler.ValidateEvery,
		CleanupEvery:  cfg.Scheduler.CleanupEvery,
	}
	scheduler := sched.New(schedCfg, ws, ws, ws.HeadRef, log)

	// 7. Event bus + systems
	bus := event.NewBus()
	hub := gonet.NewHub(cfg.Network.IntentQueue, log)

	deathSys := system.NewDeathSystem(ws, scheduler, bus, rng, cfg.Arena.DropTTL, log)
	aiSys := system.NewEnemyAISystem(ws, scheduler, bus, luaEngine)

	runner := coresys.NewRunner()
	runner.Register(system.NewInputSystem(ws, hub, 32))
	runner.Register(system.NewEventDispatchSystem(bus))
	runner.Register(aiSys)
	runner.Register(system.NewMovementSystem(ws, deathSys, cfg.Arena.HeadDamage))
	runner.Register(system.NewWaveSpawnSystem(ws, scheduler, enemyTable, waveSchedule, luaEngine, aiSys, bus, rng, log))
	runner.Register(system.NewDropSystem(ws, cfg.Arena.PickupRadius, cfg.Arena.XPPerSegment))
	runner.Register(system.NewSnapshotSystem(ws, hub, cfg.Network.SnapshotEvery, log))
	persistSys := system.NewPersistenceSystem(ws, runRepo, bus, 20, log)
	runner.Register(persistSys)
	runner.Register(system.NewCleanupSystem(ws))

	// Run reset: drops the dead arena and starts over with a fresh serpent.
	event.Subscribe(bus, func(ev event.RunEnded) {
		log.Info("run ended",
			zap.Float64("duration_s", ev.Duration),
			zap.Int("waves", ev.Waves),
			zap.Int("kills", ev.Kills),
			zap.Int("xp", ev.XP))
		ws.AllEnemies(func(e *world.Enemy) { scheduler.Unregister(e.ID) })
		ws.ResetRun(newSerpent())
	})

	// 8. Websocket listener
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", hub.HandleWS)
	srv := &http.Server{Addr: cfg.Network.BindAddress, Handler: mux}
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("http server stopped", zap.Error(err))
		}
	}()

	// 9. Game loop
	shutdownCh := make(chan os.Signal, 1)
	signal.Notify(shutdownCh, syscall.SIGINT, syscall.SIGTERM)

	tickRate := cfg.Network.TickRate.Std()
	ticker := time.NewTicker(tickRate)
	defer ticker.Stop()

	printReady(fmt.Sprintf("listening on %s", cfg.Network.BindAddress))
	printReady(fmt.Sprintf("game loop started (tick: %s)", tickRate))
	fmt.Println()

	for {
		select {
		case <-ticker.C:
			ws.AdvanceClock(tickRate)
			runner.Tick(tickRate)
		case sig := <-shutdownCh:
			log.Info("shutdown signal received", zap.String("signal", sig.String()))
			persistSys.Flush()
			hub.Shutdown()
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			srv.Shutdown(shutdownCtx)
			cancel()
			log.Info("server stopped")
			return nil
		}
	}
}

func newLogger(cfg config.LoggingConfig) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		level = zapcore.InfoLevel
	}
	var zapCfg zap.Config
	if cfg.Format == "json" {
		zapCfg = zap.NewProductionConfig()
	} else {
		zapCfg = zap.NewDevelopmentConfig()
	}
	zapCfg.Level = zap.NewAtomicLevelAt(level)
	return zapCfg.Build()
}
