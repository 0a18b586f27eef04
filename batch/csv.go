package batch

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"exoplanet-explorer/models"
)

// Header is the fixed 17-column layout of the results file.
var Header = []string{
	"row",
	"name",
	"pl_orbper",
	"pl_trandurh",
	"pl_trandep",
	"pl_rade",
	"pl_insol",
	"pl_eqt",
	"st_tmag",
	"st_teff",
	"st_logg",
	"st_rad",
	"is_exoplanet",
	"classification",
	"confidence_level",
	"exoplanet_probability",
	"status",
}

const (
	StatusSuccess = "SUCCESS"
	StatusFailed  = "FAILED"
	ErrorLabel    = "ERROR"
)

// FileName embeds the run timestamp in the download name.
func FileName(t time.Time) string {
	return fmt.Sprintf("exoplanet_batch_results_%s.csv", t.Format("20060102-150405"))
}

// WriteCSV renders one line per result after the header. Numeric columns of a
// successful row come from the service's echo of the submitted data, or from
// the submitted payload when the echo is missing; failed rows are zeroed.
// Fields containing commas or quotes are quoted.
func WriteCSV(w io.Writer, results []models.BatchResult) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	for _, r := range results {
		if err := cw.Write(Record(r)); err != nil {
			return fmt.Errorf("failed to write row %d: %w", r.RowIndex, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// Record is the CSV line for one result.
func Record(r models.BatchResult) []string {
	rec := make([]string, 0, len(Header))
	rec = append(rec, strconv.Itoa(r.RowIndex+1), r.Name)

	var echo models.StellarData
	var cls models.ClassificationResult
	if r.Success && r.Response != nil {
		echo = r.Response.StellarObjectData
		cls = r.Response.ClassificationResult
		if echo == (models.StellarData{}) {
			echo = r.Input.Payload()
		}
	}
	for _, v := range echo.Values() {
		rec = append(rec, formatFloat(v))
	}

	if !r.Success || r.Response == nil {
		return append(rec, "false", ErrorLabel, "", "0", StatusFailed)
	}
	return append(rec,
		strconv.FormatBool(cls.IsExoplanet),
		cls.Classification,
		cls.ConfidenceLevel,
		formatFloat(cls.ExoplanetProbabilityPercentage),
		StatusSuccess,
	)
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
