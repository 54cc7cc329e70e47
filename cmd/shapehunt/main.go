package main

import (
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/shapehunt/engine/internal/catalog"
	"github.com/shapehunt/engine/internal/config"
	"github.com/shapehunt/engine/internal/data"
	"github.com/shapehunt/engine/internal/scripting"
	"github.com/shapehunt/engine/internal/session"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
}

// ── Startup display helpers ────────────────────────────────────────

func printBanner(w, h float64) {
	fmt.Println()
	fmt.Println("\033[36;1m  ┌───────────────────────────────────────────┐\033[0m")
	fmt.Println("\033[36;1m  │\033[0m             shapehunt  v0.1.0             \033[36;1m│\033[0m")
	fmt.Println("\033[36;1m  │\033[0m      headless game-session engine         \033[36;1m│\033[0m")
	fmt.Println("\033[36;1m  └───────────────────────────────────────────┘\033[0m")
	fmt.Println()
	fmt.Printf("  \033[1mviewport:\033[0m %.0fx%.0f\n\n", w, h)
}

func printSection(title string) {
	lineLen := 46 - len(title) - 1
	if lineLen < 3 {
		lineLen = 3
	}
	fmt.Printf("  \033[33m── %s %s\033[0m\n", title, strings.Repeat("─", lineLen))
}

func printStat(label string, count int) {
	numStr := fmt.Sprintf("%d", count)
	dotsLen := 42 - len(label) - len(numStr)
	if dotsLen < 3 {
		dotsLen = 3
	}
	fmt.Printf("  %s \033[90m%s\033[0m \033[32m%s\033[0m\n", label, strings.Repeat("·", dotsLen), numStr)
}

func printOK(msg string) {
	fmt.Printf("  \033[32m✓\033[0m %s\n", msg)
}

func printReady(msg string) {
	fmt.Printf("  \033[32m▶\033[0m %s\n", msg)
}

// ── Main loop ──────────────────────────────────────────────────────

const (
	autoplayEvery = 45  // ticks between simulated player clicks
	statusEvery   = 300 // ticks between status lines
)

func run() error {
	// 1. Load config
	cfgPath := "config/game.toml"
	if p := os.Getenv("SHAPEHUNT_CONFIG"); p != "" {
		cfgPath = p
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	// 2. Init logger
	log, err := newLogger(cfg.Logging)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer log.Sync()

	printBanner(cfg.Session.Width, cfg.Session.Height)

	// 3. Data tables
	printSection("data")
	params, err := data.LoadEventTable(cfg.Data.Events)
	if err != nil {
		return fmt.Errorf("event table: %w", err)
	}
	printStat("catalog events", params.Count())
	printStat("weighted events", len(params.Weights()))

	// 4. Director policy
	engine, err := scripting.NewEngine(cfg.Data.Scripts, log)
	if err != nil {
		return fmt.Errorf("lua engine: %w", err)
	}
	defer engine.Close()
	printOK("lua director policy loaded")
	fmt.Println()

	// 5. Session
	sess := session.New(cfg, session.Deps{
		Log:    log,
		Params: params,
		Policy: engine,
	})
	defer sess.Close()

	printSection("session")
	printStat("shapes", sess.World.Count())
	printStat("tracked events", len(catalog.Names()))
	printReady(fmt.Sprintf("session %s", sess.ID))
	printReady(fmt.Sprintf("game loop started (tick: %s)", cfg.Session.TickRate))
	fmt.Println()

	// 6. Game loop
	shutdownCh := make(chan os.Signal, 1)
	signal.Notify(shutdownCh, syscall.SIGINT, syscall.SIGTERM)

	ticker := time.NewTicker(cfg.Session.TickRate)
	defer ticker.Stop()

	var deadline <-chan time.Time
	if cfg.Session.RunFor > 0 {
		deadline = time.After(cfg.Session.RunFor)
	}

	for {
		select {
		case <-ticker.C:
			sess.Tick()
			ticks := sess.Ticks()
			if ticks%autoplayEvery == 0 {
				autoplay(sess)
			}
			if ticks%statusEvery == 0 {
				st := sess.Stats()
				perf := sess.Director.Performance()
				log.Info("status",
					zap.Uint64("ticks", ticks),
					zap.Int("shapes", sess.World.Count()),
					zap.Int("timers", sess.Timers.Len()),
					zap.Int("events", st.Triggered),
					zap.Int("finds", perf.Finds),
					zap.Int("misses", perf.Misses),
					zap.Int("level", perf.Level),
				)
			}
		case <-deadline:
			log.Info("run time reached", zap.Duration("run_for", cfg.Session.RunFor))
			return nil
		case sig := <-shutdownCh:
			log.Info("shutdown signal received", zap.String("signal", sig.String()))
			return nil
		}
	}
}

// autoplay stands in for a player: mostly clicks a shape, sometimes misses,
// and refills the field when it runs low.
func autoplay(sess *session.Session) {
	rng := sess.World.Rand()
	all := sess.World.All()
	if len(all) < 4 {
		sess.SpawnShapes(8)
	}
	if len(all) == 0 || rng.Float64() < 0.2 {
		x, y := sess.World.RandomPoint(0)
		sess.Click(x, y)
		return
	}
	x, y := all[rng.Intn(len(all))].Position()
	sess.Click(x, y)
}

func newLogger(cfg config.LoggingConfig) (*zap.Logger, error) {
	var level zapcore.Level
	if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
		level = zapcore.InfoLevel
	}

	var zapCfg zap.Config
	if cfg.Format == "json" {
		zapCfg = zap.NewProductionConfig()
	} else {
		zapCfg = zap.NewDevelopmentConfig()
		zapCfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		zapCfg.EncoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05")
		zapCfg.EncoderConfig.ConsoleSeparator = "  "
		zapCfg.DisableCaller = true
		zapCfg.DisableStacktrace = true
	}
	zapCfg.Level = zap.NewAtomicLevelAt(level)

	return zapCfg.Build()
}
