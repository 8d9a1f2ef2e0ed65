/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/urfave/cli/v3"

	"github.com/humaidq/healthlens/analytics"
	"github.com/humaidq/healthlens/db"
	"github.com/humaidq/healthlens/logging"
)

const summaryActionLimit = 3

var CmdReport = newReportCommand()

func newReportCommand() *cli.Command {
	return &cli.Command{
		Name:  "report",
		Usage: "Generate a health report from a JSON request without starting the server",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "input",
				Aliases: []string{"i"},
				Value:   "-",
				Usage:   "request file with {\"analyses\": [...], \"userId\": ...}, - reads stdin",
			},
			&cli.StringFlag{
				Name:    "database-url",
				Sources: cli.EnvVars("DATABASE_URL"),
				Usage:   "PostgreSQL connection string used to look up the user's profile",
			},
			&cli.StringFlag{
				Name:  "dob",
				Usage: "date of birth (YYYY-MM-DD), overrides the stored profile",
			},
			&cli.StringFlag{
				Name:  "gender",
				Usage: "male or female, overrides the stored profile",
			},
			&cli.StringFlag{
				Name:    "keywords",
				Sources: cli.EnvVars("HEALTHLENS_KEYWORDS"),
				Usage:   "YAML file replacing the built-in marker keyword table",
			},
			&cli.BoolFlag{
				Name:  "summary",
				Usage: "print a short human readable summary instead of JSON",
			},
		},
		Action: runReport,
	}
}

// profileOverrides carries the demographics given on the command line.
type profileOverrides struct {
	dob    *time.Time
	gender *analytics.Gender
}

func parseProfileOverrides(cmd *cli.Command) (profileOverrides, error) {
	var o profileOverrides

	if raw := cmd.String("dob"); raw != "" {
		dob, err := time.Parse(time.DateOnly, raw)
		if err != nil {
			return o, fmt.Errorf("%w: %q", errInvalidDateOfBirth, raw)
		}

		o.dob = &dob
	}

	if raw := cmd.String("gender"); raw != "" {
		g, ok := analytics.ParseGender(raw)
		if !ok {
			return o, fmt.Errorf("%w: %q", errInvalidGender, raw)
		}

		o.gender = &g
	}

	return o, nil
}

func (o profileOverrides) empty() bool {
	return o.dob == nil && o.gender == nil
}

// apply returns base with the overrides laid over it. base may be nil.
func (o profileOverrides) apply(base *analytics.Profile) *analytics.Profile {
	p := &analytics.Profile{}
	if base != nil {
		*p = *base
	}

	if o.dob != nil {
		p.DateOfBirth = o.dob
	}

	if o.gender != nil {
		p.Gender = o.gender
	}

	return p
}

func readRequest(path string, stdin io.Reader) (*analytics.Request, error) {
	var r io.Reader = stdin

	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("failed to open input: %w", err)
		}
		defer f.Close()

		r = f
	}

	var req analytics.Request
	if err := json.NewDecoder(r).Decode(&req); err != nil {
		return nil, fmt.Errorf("failed to decode request: %w", err)
	}

	return &req, nil
}

func runReport(ctx context.Context, cmd *cli.Command) (err error) {
	// stdout carries the report
	logging.SetOutput(os.Stderr)

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %v", errReportPanicked, r)
		}
	}()

	overrides, err := parseProfileOverrides(cmd)
	if err != nil {
		return err
	}

	classifier, err := loadClassifier(cmd.String("keywords"))
	if err != nil {
		return err
	}

	req, err := readRequest(cmd.String("input"), cmd.Root().Reader)
	if err != nil {
		return err
	}

	var profiles analytics.ProfileStore

	if databaseURL := cmd.String("database-url"); databaseURL != "" && req.UserID != "" {
		if err := os.Setenv("DATABASE_URL", databaseURL); err != nil {
			return fmt.Errorf("failed to set DATABASE_URL: %w", err)
		}

		if err := db.Init(ctx); err != nil {
			return fmt.Errorf("failed to initialize database: %w", err)
		}
		defer db.Close()

		profiles = db.ProfileStore{}
	}

	agg := analytics.NewAggregator(profiles, analytics.WithClassifier(classifier))

	var report *analytics.HealthReport

	if overrides.empty() {
		report = agg.Generate(ctx, req.Analyses, req.UserID)
	} else {
		var base *analytics.Profile
		if profiles != nil {
			base, err = profiles.GetProfile(ctx, req.UserID)
			if err != nil {
				appLogger.Warn("Profile lookup failed, using command line demographics only", "user_id", req.UserID, "error", err)
			}
		}

		report = agg.Build(req.Analyses, overrides.apply(base))
	}

	w := cmd.Root().Writer

	if cmd.Bool("summary") {
		_, err = fmt.Fprintln(w, renderSummary(report))
		return err
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")

	return enc.Encode(analytics.Response{HealthData: report})
}

var (
	summaryTitleStyle   = lipgloss.NewStyle().Bold(true).Underline(true)
	summaryLabelStyle   = lipgloss.NewStyle().Faint(true)
	summarySectionStyle = lipgloss.NewStyle().Bold(true).MarginTop(1)
	summaryBoxStyle     = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
)

func riskStyle(level analytics.RiskLevel) lipgloss.Style {
	switch level {
	case analytics.RiskHigh:
		return lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("9"))
	case analytics.RiskMedium:
		return lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("11"))
	default:
		return lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("10"))
	}
}

func statusStyle(status analytics.Status) lipgloss.Style {
	switch status {
	case analytics.StatusRisk:
		return riskStyle(analytics.RiskHigh)
	case analytics.StatusAttention:
		return riskStyle(analytics.RiskMedium)
	default:
		return lipgloss.NewStyle()
	}
}

// renderSummary formats the headline figures of a report for a terminal.
func renderSummary(r *analytics.HealthReport) string {
	ov := r.Overview

	var b strings.Builder

	b.WriteString(summaryTitleStyle.Render("Health report"))
	b.WriteString("\n")
	fmt.Fprintf(&b, "%s %d/100\n", summaryLabelStyle.Render("Score:"), ov.HealthScore)
	fmt.Fprintf(&b, "%s %s\n", summaryLabelStyle.Render("Risk: "), riskStyle(ov.RiskLevel).Render(string(ov.RiskLevel)))
	fmt.Fprintf(&b, "%s %d\n", summaryLabelStyle.Render("Analyses:"), ov.TotalAnalyses)
	fmt.Fprintf(&b, "%s %d improving, %d worsening, %d stable",
		summaryLabelStyle.Render("Trends:"),
		ov.TrendsAnalysis.Improving, ov.TrendsAnalysis.Worsening, ov.TrendsAnalysis.Stable)

	if len(r.Biomarkers) > 0 {
		b.WriteString("\n")
		b.WriteString(summarySectionStyle.Render("Latest biomarkers"))

		for _, m := range r.Biomarkers {
			fmt.Fprintf(&b, "\n  %s %g %s  %s (%s)",
				m.Name, m.Value, m.Unit,
				statusStyle(m.Status).Render(string(m.Status)), m.Trend)
		}
	}

	if len(r.HealthImprovementActions) > 0 {
		b.WriteString("\n")
		b.WriteString(summarySectionStyle.Render("Top actions"))

		for i, a := range r.HealthImprovementActions {
			if i == summaryActionLimit {
				break
			}

			fmt.Fprintf(&b, "\n  [%s] %s", a.Priority, a.Title)
		}
	}

	return summaryBoxStyle.Render(b.String())
}
