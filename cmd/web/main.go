package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/RaheesAhmed/growthcompass/internal/ai"
	"github.com/RaheesAhmed/growthcompass/internal/assessment"
	"github.com/RaheesAhmed/growthcompass/internal/broker"
	"github.com/RaheesAhmed/growthcompass/internal/envstruct"
	"github.com/RaheesAhmed/growthcompass/internal/errors"
	"github.com/RaheesAhmed/growthcompass/internal/logging"
	"github.com/RaheesAhmed/growthcompass/internal/pprofserver"
	"github.com/RaheesAhmed/growthcompass/internal/questions"
	"github.com/RaheesAhmed/growthcompass/internal/repositories"
	"github.com/RaheesAhmed/growthcompass/internal/sqlite"
	"github.com/alexedwards/scs/sqlite3store"
	"github.com/alexedwards/scs/v2"
	"github.com/donseba/go-htmx"
	"github.com/joho/godotenv"
)

type application struct {
	logger         *slog.Logger
	sessionManager *scs.SessionManager
	bank           *questions.Bank
	sessions       *assessment.Store
	assessments    *repositories.AssessmentRepository
	planner        ai.Planner
	planBroker     *broker.StreamBroker[string, string]
	htmx           *htmx.HTMX
}

type config struct {
	// Addr is the address the server listens on. Use port 0 to let the OS
	// pick a free one.
	Addr string `env:"GROWTHCOMPASS_ADDR" envDefault:"localhost:4000"`
	// PprofPort exposes pprof on loopback when set, e.g. ":6060".
	PprofPort string `env:"GROWTHCOMPASS_PPROF_PORT" envDefault:""`
	// SQLiteURL is the path to the SQLite database file or ":memory:".
	SQLiteURL string `env:"GROWTHCOMPASS_SQLITE_URL" envDefault:"./growthcompass.sqlite"`
	// OpenAIAPIKey enables real plan generation. Without it the server
	// falls back to a canned plan.
	OpenAIAPIKey string `env:"OPENAI_API_KEY" envDefault:""`
	// DisableAI forces the canned plan even when an API key is set.
	DisableAI bool `env:"GROWTHCOMPASS_DISABLE_AI" envDefault:"false"`
}

func run(ctx context.Context, logger *slog.Logger, lookupEnv func(string) (string, bool)) error {
	var cfg config
	if err := envstruct.Populate(&cfg, lookupEnv); err != nil {
		return errors.Wrap(err, "parse config")
	}

	if cfg.PprofPort != "" {
		pprofserver.Launch(cfg.PprofPort, logger)
	}

	db, err := sqlite.NewDatabase(ctx, cfg.SQLiteURL, logger)
	if err != nil {
		return errors.Wrap(err, "open database", slog.String("url", cfg.SQLiteURL))
	}
	go db.StartDatabaseOptimizer(ctx)

	bank, err := questions.Load()
	if err != nil {
		return errors.Wrap(err, "load question bank")
	}

	sessionManager := scs.New()
	sessionManager.Store = sqlite3store.NewWithCleanupInterval(db.ReadWrite, 24*time.Hour)
	sessionManager.Lifetime = 12 * time.Hour
	sessionManager.Cookie.Secure = true

	var planner ai.Planner
	if cfg.DisableAI || cfg.OpenAIAPIKey == "" {
		logger.LogAttrs(ctx, slog.LevelInfo, "plan generation uses the canned plan")
		planner = ai.NewScriptedPlanner("")
	} else {
		planner = ai.NewClient(cfg.OpenAIAPIKey)
	}

	planBroker := broker.NewStreamBroker[string, string]()
	go planBroker.Run()
	defer planBroker.Stop()

	app := application{
		logger:         logger,
		sessionManager: sessionManager,
		bank:           bank,
		sessions:       assessment.NewStore(),
		assessments:    repositories.NewAssessmentRepository(db, logger),
		planner:        planner,
		planBroker:     planBroker,
		htmx:           htmx.New(),
	}

	return app.configureAndStartServer(ctx, cfg.Addr)
}

func main() {
	// A .env file is optional, as in production the environment comes from
	// the process manager.
	_ = godotenv.Load()

	logger := slog.New(logging.NewContextHandler(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level:     slog.LevelDebug,
		AddSource: true,
	})))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, logger, os.LookupEnv); err != nil {
		logger.LogAttrs(ctx, slog.LevelError, "server exited", errors.SlogError(err))
		os.Exit(1)
	}
}
