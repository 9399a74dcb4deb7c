package main

import (
	"context"
	"fmt"
	"os"

	"github.com/mattn/go-isatty"

	"github.com/alexanderramin/dayline/internal/cli"
	"github.com/alexanderramin/dayline/internal/config"
	"github.com/alexanderramin/dayline/internal/db"
	"github.com/alexanderramin/dayline/internal/logging"
	"github.com/alexanderramin/dayline/internal/repository"
	"github.com/alexanderramin/dayline/internal/server"
	"github.com/alexanderramin/dayline/internal/service"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	logger := logging.Setup(cfg.Log)

	// Open database
	database, err := db.OpenDB(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	// Wire repositories
	projectRepo := repository.NewSQLiteProjectRepo(database)
	taskRepo := repository.NewSQLiteTaskRepo(database)
	blockRepo := repository.NewSQLiteTimeBlockRepo(database)

	// Wire unit of work for transactional operations
	uow := db.NewSQLiteUnitOfWork(database)

	sched, err := cfg.Scheduler()
	if err != nil {
		return err
	}
	metrics := server.NewMetrics()
	logObserver := service.NewLogUseCaseObserver(logging.Component(logger, "service"))

	// Wire services
	scheduleSvc := service.NewScheduleService(taskRepo, blockRepo, sched, logObserver, metrics)
	blockSvc := service.NewTimeBlockService(blockRepo)

	if n, err := blockSvc.EnsureDefaults(context.Background(), cfg.SeedBlocks()); err != nil {
		return err
	} else if n > 0 {
		logger.Debug().Int("created", n).Msg("seeded time blocks")
	}

	app := &cli.App{
		Projects: service.NewProjectService(projectRepo),
		Blocks:   blockSvc,
		Tasks:    service.NewTaskService(taskRepo, blockRepo, scheduleSvc, logObserver),
		Schedule: scheduleSvc,
		Planner:  service.NewPlannerService(uow, sched, logObserver, metrics),

		Addr:    cfg.Server.Addr,
		Metrics: metrics,
		Logger:  logging.Component(logger, "http"),
	}

	// Forms and confirmations only run on a terminal.
	app.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}

	// Execute root command
	rootCmd := cli.NewRootCmd(app)
	return rootCmd.Execute()
}
