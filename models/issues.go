package models

import (
	"fmt"
	"strings"
)

// Kepler pipeline thresholds used when explaining a false positive.
const (
	MinModelSNR       = 7.1
	MinDispositionFit = 0.5
)

var fpFlags = []struct {
	key            string
	title          string
	recommendation string
}{
	{"koi_fpflag_nt", "Not transit-like", "Inspect the light curve for instrumental artefacts or stellar variability."},
	{"koi_fpflag_ss", "Stellar eclipse", "Look for a secondary eclipse; the signal may come from an eclipsing binary."},
	{"koi_fpflag_co", "Centroid offset", "Check the pixel-level centroid shift; the source may be a nearby star."},
	{"koi_fpflag_ec", "Ephemeris match", "Compare the period and epoch against known variables for contamination."},
}

// DeriveIssues lists the validation problems visible in a candidate row.
func DeriveIssues(c Candidate) []Issue {
	var issues []Issue
	for _, f := range fpFlags {
		if c.Number(f.key) != 0 {
			issues = append(issues, Issue{Title: f.title, Value: f.key + " = 1", Recommendation: f.recommendation})
		}
	}
	if c.Has("koi_model_snr") {
		if snr := c.Number("koi_model_snr"); snr < MinModelSNR {
			issues = append(issues, Issue{
				Title:          "Low signal-to-noise",
				Value:          fmt.Sprintf("SNR %.1f", snr),
				Recommendation: "Collect more transits or follow-up photometry to raise the SNR above 7.1.",
			})
		}
	}
	if c.Has("koi_score") {
		if score := c.Number("koi_score"); score < MinDispositionFit {
			issues = append(issues, Issue{
				Title:          "Low disposition score",
				Value:          fmt.Sprintf("%.3f", score),
				Recommendation: "Review the vetting metrics that lowered the disposition score.",
			})
		}
	}
	if c.Number("pl_rade") > 25 || c.Number("koi_prad") > 25 {
		issues = append(issues, Issue{
			Title:          "Implausible radius",
			Value:          fmt.Sprintf("%.2f R⊕", c.FirstNonZero(0, "pl_rade", "koi_prad")),
			Recommendation: "A radius this large suggests a stellar companion; obtain radial-velocity measurements.",
		})
	}
	return issues
}

// ValidationSuggestions flattens issues into the text handed to the summarizer.
func ValidationSuggestions(issues []Issue) string {
	if len(issues) == 0 {
		return ""
	}
	var b strings.Builder
	for i, is := range issues {
		if i > 0 {
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "- %s (%s): %s", is.Title, is.Value, is.Recommendation)
	}
	return b.String()
}
