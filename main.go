package main

import (
	"flag"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/pdxmph/tasks-tui/internal/config"
	"github.com/pdxmph/tasks-tui/internal/logging"
	"github.com/pdxmph/tasks-tui/internal/task"
	"github.com/pdxmph/tasks-tui/internal/tui"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	configPath := flag.String("config", "", "path to config file (default ~/.config/tasks-tui/config.toml)")
	envPath := flag.String("env", ".env", "path to an optional .env file")
	demo := flag.Bool("demo", false, "start with sample tasks")
	writeConfig := flag.Bool("write-config", false, "write the default config file and exit")
	flag.Parse()

	if err := config.LoadDotEnv(*envPath); err != nil {
		return err
	}

	if *configPath == "" {
		path, err := config.DefaultPath()
		if err != nil {
			return err
		}
		*configPath = path
	}

	if *writeConfig {
		if err := config.Default().SaveTo(*configPath); err != nil {
			return err
		}
		fmt.Printf("Wrote %s\n", *configPath)
		return nil
	}

	cfg, err := config.LoadFrom(*configPath)
	if err != nil {
		return err
	}

	logger, closer, err := logging.Open(cfg.Log.Path, cfg.Log.Level)
	if err != nil {
		return err
	}
	defer closer.Close()

	ops := task.NewOps()

	var tasks []task.Task
	if *demo || cfg.UI.Demo {
		tasks = task.DemoTasks(ops.Now(), ops.NewID)
	}

	logger.Info("startup", "config", *configPath, "tasks", len(tasks), "filter", cfg.DefaultFilter())

	model := tui.New(tui.Options{
		Ops:             ops,
		Logger:          logger,
		Tasks:           tasks,
		DefaultPriority: cfg.DefaultPriority(),
		DefaultFilter:   cfg.DefaultFilter(),
	})

	// Start the program
	p := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running program: %w", err)
	}

	logger.Info("shutdown")
	return nil
}
