package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"exoplanet-explorer/explorer"
	"exoplanet-explorer/models"
	"exoplanet-explorer/spreadsheet"
	"exoplanet-explorer/visualization"
	"exoplanet-explorer/web"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
)

var sampleIndex int

var classifyCmd = &cobra.Command{
	Use:   "classify [file]",
	Short: "Classify the first row of a CSV/Excel file",
	Long: `Loads the first row of the file (columns koi_prad, koi_period, koi_steff,
koi_depth and koi_model_snr are required), sends it to the prediction service
and prints the result.

Example:
  exoplanet-explorer classify koi.csv
  exoplanet-explorer classify --sample 2`,
	Args: cobra.MaximumNArgs(1),
	RunE: runClassify,
}

func init() {
	classifyCmd.Flags().IntVarP(&sampleIndex, "sample", "s", 0, "use built-in sample N (1-based) instead of a file")
}

func runClassify(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	a, err := newApp(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer a.Close()

	switch {
	case sampleIndex > 0:
		rec, err := explorer.Sample(sampleIndex - 1)
		if err != nil {
			return err
		}
		a.state.Load(rec, explorer.SampleSource(sampleIndex-1))
	case len(args) == 1:
		f, err := os.Open(args[0])
		if err != nil {
			return fmt.Errorf("failed to open input: %w", err)
		}
		defer f.Close()
		rec, err := spreadsheet.LoadSingle(filepath.Base(args[0]), f)
		if err != nil {
			return err
		}
		a.state.Load(rec, filepath.Base(args[0]))
	default:
		return fmt.Errorf("a file or --sample is required")
	}

	result, err := a.explorer.Analyze(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), renderResult(result, visualization.Derive(result.Data, result.Status)))
	return nil
}

var (
	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			Padding(0, 1)
	labelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#8fa3c7"))
	mutedStyle = lipgloss.NewStyle().Faint(true)
)

// renderResult draws the results dialog for the terminal.
func renderResult(r *models.AnalysisResult, scene visualization.Scene) string {
	accent := lipgloss.Color(scene.Style.PlanetColor)
	heading := lipgloss.NewStyle().Bold(true).Foreground(accent)

	var b strings.Builder
	fmt.Fprintf(&b, "%s\n", heading.Render(fmt.Sprintf("%s: %s", r.PlanetName, web.Title(string(r.Status)))))
	fmt.Fprintf(&b, "%s %.2f%%\n", labelStyle.Render("Confidence:"), r.Confidence)
	if r.Response != nil {
		cr := r.Response.ClassificationResult
		fmt.Fprintf(&b, "%s %s (%s)\n", labelStyle.Render("Classification:"), cr.Classification, cr.ConfidenceLevel)
	}
	fmt.Fprintf(&b, "%s %s, %s star, %.1f day orbit\n",
		labelStyle.Render("Scene:"), scene.Planet.Type, scene.Star.Class, scene.Orbit.PeriodDays)

	switch r.Status {
	case models.StatusConfirmed:
		if r.Habitable() {
			b.WriteString("In the temperate zone (273 K - 373 K)\n")
		}
		if r.SimilarTo != "" {
			fmt.Fprintf(&b, "%s %s\n", labelStyle.Render("Similar to:"), r.SimilarTo)
			if r.SimilarReasoning != "" {
				b.WriteString(mutedStyle.Render(r.SimilarReasoning) + "\n")
			}
		}
	case models.StatusFalsePositive:
		for _, is := range r.Issues {
			fmt.Fprintf(&b, "• %s: %s\n  %s\n", is.Title, is.Value, mutedStyle.Render(is.Recommendation))
		}
		if r.SuggestionsSummary != "" {
			b.WriteString(r.SuggestionsSummary + "\n")
		}
	}

	return boxStyle.BorderForeground(accent).Render(strings.TrimRight(b.String(), "\n"))
}
