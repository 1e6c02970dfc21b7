package main

import (
	"fmt"
	"os"
	_ "time/tzdata"

	"github.com/alexanderramin/planeasy/internal/cli"
	"github.com/alexanderramin/planeasy/internal/config"
	"github.com/alexanderramin/planeasy/internal/db"
	"github.com/alexanderramin/planeasy/internal/logging"
	"github.com/alexanderramin/planeasy/internal/notify"
	"github.com/alexanderramin/planeasy/internal/repository"
	"github.com/alexanderramin/planeasy/internal/service"
	"github.com/mattn/go-isatty"
	"go.uber.org/zap"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", cli.FriendlyError(err))
		os.Exit(1)
	}
}

func run() error {
	// Global flags decide which config and database the command tree runs
	// against, so they are read before cobra sees the arguments.
	flags, err := cli.ParseGlobalFlags(os.Args[1:])
	if err != nil {
		return err
	}

	cfg, err := config.Load(flags.Config)
	if err != nil {
		return err
	}
	if flags.DB != "" {
		cfg.Store.Path = flags.DB
	}
	if flags.LogLevel != "" {
		cfg.Log.Level = flags.LogLevel
	}

	logger, err := logging.New(cfg.Log)
	if err != nil {
		return err
	}
	defer func() { _ = logging.Sync(logger) }()

	loc, err := cfg.Location()
	if err != nil {
		return err
	}

	database, err := db.OpenDB(cfg.Store.Path)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	store := repository.NewSQLitePlanStore(database,
		repository.WithKey(cfg.Store.Key),
		repository.WithSkipMalformed(cfg.Store.SkipMalformed),
		repository.WithLogger(logger.Named("store")),
	)
	uow := db.NewSQLiteUnitOfWork(database)

	scheduler, err := notify.New(cfg.Notify.Mode, repository.NewSQLiteReminderRepo(database), uow, logger.Named("notify"))
	if err != nil {
		return err
	}

	app := &cli.App{
		Plans: service.NewPlanService(store, scheduler, logger.Named("service"),
			service.WithLocation(loc),
			service.WithObserver(service.NewLogUseCaseObserver(logger.Named("usecase"))),
		),
		HistoryPath: cli.DefaultHistoryPath(),
	}
	if q, ok := scheduler.(*notify.QueueScheduler); ok {
		app.Reminders = q
	}

	// Detect interactive terminal for the TUI entrypoint.
	app.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}

	logger.Debug("starting",
		zap.String("db", cfg.Store.Path),
		zap.String("notify", cfg.Notify.Mode),
		zap.String("timezone", loc.String()))

	return cli.NewRootCmd(app).Execute()
}
