// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package main

import (
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/urfave/cli/v2"

	"github.com/poiesic/searchdiag"
	"github.com/poiesic/searchdiag/config"
	"github.com/poiesic/searchdiag/history"
	"github.com/poiesic/searchdiag/report"
)

func main() {
	app := &cli.App{
		Name:  "searchdiag",
		Usage: "Diagnostic harness for search backends with partial-content analysis",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
				Value:   "info",
			},
		},
		Before:         setupLogger,
		DefaultCommand: "run",
		Commands: []*cli.Command{
			{
				Name:   "run",
				Usage:  "Run the full strategy battery against the configured backend",
				Action: runCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "config",
						Aliases: []string{"c"},
						Usage:   "Path to a YAML configuration file",
					},
					&cli.StringFlag{
						Name:    "query",
						Aliases: []string{"q"},
						Usage:   "Query text to diagnose (overrides config and TEST_QUERY)",
					},
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Emit the summary as JSON instead of the console report",
					},
					&cli.StringFlag{
						Name:  "history-db",
						Usage: "BadgerDB directory for archiving run summaries",
					},
					&cli.IntFlag{
						Name:  "workers",
						Usage: "Number of concurrent strategy executions",
					},
					&cli.DurationFlag{
						Name:  "timeout",
						Usage: "Per-call timeout for search, embedding, and completion",
					},
					&cli.BoolFlag{
						Name:  "no-color",
						Usage: "Disable colored output",
					},
				},
			},
			{
				Name:  "history",
				Usage: "Inspect archived diagnostic runs",
				Subcommands: []*cli.Command{
					{
						Name:   "list",
						Usage:  "List archived runs, newest first",
						Action: historyListCommand,
						Flags: []cli.Flag{
							&cli.StringFlag{
								Name:     "db",
								Aliases:  []string{"d"},
								Usage:    "Path to the history BadgerDB directory",
								Required: true,
							},
							&cli.IntFlag{
								Name:  "limit",
								Usage: "Maximum number of runs to list (0 for all)",
								Value: 20,
							},
						},
					},
					{
						Name:      "show",
						Usage:     "Show one archived run",
						ArgsUsage: "RUN_ID",
						Action:    historyShowCommand,
						Flags: []cli.Flag{
							&cli.StringFlag{
								Name:     "db",
								Aliases:  []string{"d"},
								Usage:    "Path to the history BadgerDB directory",
								Required: true,
							},
							&cli.BoolFlag{
								Name:  "json",
								Usage: "Emit the archived summary as JSON",
							},
							&cli.BoolFlag{
								Name:  "no-color",
								Usage: "Disable colored output",
							},
						},
					},
				},
			},
			{
				Name:   "explain-206",
				Usage:  "Explain common causes of HTTP 206 responses and how to fix them",
				Action: explain206Command,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func runCommand(c *cli.Context) error {
	cfg, err := config.Load(c.String("config"))
	if err != nil {
		return err
	}
	if q := c.String("query"); q != "" {
		cfg.Query = q
	}
	if db := c.String("history-db"); db != "" {
		cfg.HistoryPath = db
	}
	if workers := c.Int("workers"); workers > 0 {
		cfg.Workers = workers
	}
	if timeout := c.Duration("timeout"); timeout > 0 {
		cfg.CallTimeout = timeout
	}

	styles := pickStyles(c.Bool("no-color") || c.Bool("json"))

	harness, err := searchdiag.New(cfg, searchdiag.WithRunMonitor(&consoleMonitor{
		out:    os.Stderr,
		styles: styles,
	}))
	if err != nil {
		return err
	}
	defer harness.Close()

	ctx, stop := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
	defer stop()

	summary, err := harness.Run(ctx)
	if err != nil {
		return err
	}

	if c.Bool("json") {
		data, err := report.MarshalSummary(summary)
		if err != nil {
			return err
		}
		fmt.Println(string(data))
	} else {
		report.Render(os.Stdout, summary, styles)
	}

	if !summary.HasPass() {
		return cli.Exit("", 1)
	}
	return nil
}

func historyListCommand(c *cli.Context) error {
	store, err := history.Open(c.String("db"))
	if err != nil {
		return err
	}
	defer store.Close()

	records, err := store.ListRuns(c.Int("limit"))
	if err != nil {
		return err
	}
	if len(records) == 0 {
		fmt.Println("No archived runs.")
		return nil
	}

	for _, record := range records {
		verdict := "failed"
		if record.Summary != nil && record.Summary.HasPass() {
			verdict = "passed"
		}
		fmt.Printf("%s  %s  %-6s  %q\n",
			record.ID,
			record.StartedAt.Format(time.RFC3339),
			verdict,
			record.Query)
	}
	return nil
}

func historyShowCommand(c *cli.Context) error {
	if c.NArg() != 1 {
		return fmt.Errorf("expected exactly one run ID argument")
	}

	store, err := history.Open(c.String("db"))
	if err != nil {
		return err
	}
	defer store.Close()

	record, err := store.GetRun(c.Args().First())
	if err != nil {
		return err
	}

	if c.Bool("json") {
		data, err := report.MarshalSummary(record.Summary)
		if err != nil {
			return err
		}
		fmt.Println(string(data))
		return nil
	}

	fmt.Printf("Run %s (started %s, finished %s)\n\n",
		record.ID,
		record.StartedAt.Format(time.RFC3339),
		record.CompletedAt.Format(time.RFC3339))
	report.Render(os.Stdout, record.Summary, pickStyles(c.Bool("no-color")))
	return nil
}

func pickStyles(noColor bool) report.Styles {
	if noColor || !isatty.IsTerminal(os.Stdout.Fd()) {
		return report.PlainStyles()
	}
	return report.DefaultStyles()
}

func setupLogger(c *cli.Context) error {
	// Get log level from flag and normalize to lowercase
	levelStr := strings.ToLower(c.String("log-level"))
	if env := os.Getenv("LOG_LEVEL"); env != "" && !c.IsSet("log-level") {
		levelStr = strings.ToLower(env)
	}

	// Map string to slog.Level
	var level slog.Level
	switch levelStr {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		return fmt.Errorf("invalid log level %q: must be one of debug, info, warn, error", levelStr)
	}

	// Configure slog with the specified level
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	return nil
}
