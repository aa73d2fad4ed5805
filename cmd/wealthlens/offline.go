package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/mtlprog/wealthlens/internal/domain"
	"github.com/mtlprog/wealthlens/internal/export"
	"github.com/mtlprog/wealthlens/internal/health"
	"github.com/mtlprog/wealthlens/internal/normalize"
	"github.com/mtlprog/wealthlens/internal/report"
	"github.com/mtlprog/wealthlens/internal/scenario"
	"github.com/mtlprog/wealthlens/internal/stability"
)

type scoreOutput struct {
	Health    health.PortfolioHealthScore `json:"health"`
	Stability *stability.Analysis         `json:"stability,omitempty"`
	Scenarios []scenario.Result           `json:"scenarios,omitempty"`
}

func scoreCommand(c *cli.Context) error {
	raw, err := readHoldings(c.String("file"))
	if err != nil {
		return err
	}
	out, err := scoreHoldings(raw, c.Bool("stability"), c.StringSlice("scenario"), c.String("sector"))
	if err != nil {
		return err
	}

	enc := json.NewEncoder(c.App.Writer)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

func scoreHoldings(raw []domain.RawHolding, withStability bool, scenarios []string, sector string) (scoreOutput, error) {
	holdings := normalize.NormalizeHoldings(raw)
	out := scoreOutput{Health: health.CalculatePortfolioHealthScore(holdings, health.Options{Now: time.Now})}
	if !withStability && len(scenarios) == 0 {
		return out, nil
	}

	analysis := stability.CalculateStabilityAnalysis(holdings)
	if withStability {
		out.Stability = &analysis
	}
	for _, name := range scenarios {
		kind, err := scenario.ParseKind(name)
		if err != nil {
			return out, err
		}
		params := scenario.Params{Sector: sector}
		if kind == scenario.KindSectorShock {
			params.ExposurePercent = scenario.SectorExposure(holdings, sector)
		}
		res, err := scenario.Run(kind, analysis, params)
		if err != nil {
			return out, err
		}
		out.Scenarios = append(out.Scenarios, res)
	}
	return out, nil
}

func exportCommand(c *cli.Context) error {
	raw, err := readHoldings(c.String("file"))
	if err != nil {
		return err
	}
	engine := health.NewEngine(health.NewDefaultRegistry())
	r := report.Build(c.String("user"), raw, engine, time.Now())

	path := c.String("out")
	if path == "-" {
		return export.WriteXLSX(c.App.Writer, []*report.Report{r})
	}
	if err := export.NewExcelWriter(path).Write(c.Context, []*report.Report{r}); err != nil {
		return err
	}
	fmt.Fprintf(c.App.Writer, "wrote %s (score %d, %s)\n", path, r.Health.TotalScore, r.Health.Grade)
	return nil
}

func readHoldings(path string) ([]domain.RawHolding, error) {
	var (
		data []byte
		err  error
	)
	if path == "-" {
		data, err = io.ReadAll(os.Stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("reading holdings: %w", err)
	}
	return decodeHoldings(data)
}

// decodeHoldings accepts a JSON array of holdings or an object with a
// "holdings" field.
func decodeHoldings(data []byte) ([]domain.RawHolding, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil, errors.New("holdings file is empty")
	}

	var raw []domain.RawHolding
	if data[0] == '[' {
		if err := json.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("decoding holdings: %w", err)
		}
		return raw, nil
	}

	var wrapped struct {
		Holdings []domain.RawHolding `json:"holdings"`
	}
	if err := json.Unmarshal(data, &wrapped); err != nil {
		return nil, fmt.Errorf("decoding holdings: %w", err)
	}
	return wrapped.Holdings, nil
}
