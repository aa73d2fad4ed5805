package main

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v2"

	"github.com/mtlprog/wealthlens/internal/config"
	"github.com/mtlprog/wealthlens/internal/database"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	config.LoadDotEnv()
	cfg := config.Load()
	slog.SetDefault(cfg.NewLogger(os.Stderr))

	app := &cli.App{
		Name:  "wealthlens",
		Usage: "portfolio health scores, stability analytics and scenarios",
		Commands: []*cli.Command{
			{
				Name:  "serve",
				Usage: "run the HTTP API and the report worker",
				Action: func(c *cli.Context) error {
					return serve(c.Context, cfg)
				},
			},
			{
				Name:  "score",
				Usage: "score a holdings JSON file and print the result",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "file", Aliases: []string{"f"}, Usage: "holdings JSON file (- for stdin)", Required: true},
					&cli.BoolFlag{Name: "stability", Usage: "include the stability analysis"},
					&cli.StringSliceFlag{Name: "scenario", Usage: "run a scenario (drawdown, sector, rate, recovery)"},
					&cli.StringFlag{Name: "sector", Usage: "sector for the sector shock scenario"},
				},
				Action: scoreCommand,
			},
			{
				Name:  "export",
				Usage: "write the report for a holdings JSON file to an XLSX workbook",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "file", Aliases: []string{"f"}, Usage: "holdings JSON file (- for stdin)", Required: true},
					&cli.StringFlag{Name: "out", Aliases: []string{"o"}, Value: "report.xlsx", Usage: "output workbook, - for stdout"},
					&cli.StringFlag{Name: "user", Value: "local", Usage: "user id written to the report"},
				},
				Action: exportCommand,
			},
			{
				Name:  "migrate",
				Usage: "apply database migrations",
				Action: func(c *cli.Context) error {
					return migrate(c.Context, cfg)
				},
			},
		},
	}

	if err := app.RunContext(ctx, os.Args); err != nil {
		slog.Error("wealthlens failed", "error", err)
		stop()
		os.Exit(1)
	}
}

func migrationsSub() (fs.FS, error) {
	sub, err := fs.Sub(migrationsFS, "migrations")
	if err != nil {
		return nil, fmt.Errorf("creating migrations sub-fs: %w", err)
	}
	return sub, nil
}

func migrate(ctx context.Context, cfg config.Config) error {
	if cfg.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL is required")
	}
	pool, err := database.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		return err
	}
	defer pool.Close()

	sub, err := migrationsSub()
	if err != nil {
		return err
	}
	return database.RunMigrations(ctx, pool, sub)
}
