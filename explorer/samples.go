package explorer

import (
	"errors"
	"fmt"

	"exoplanet-explorer/models"
)

// ErrOutOfRange is returned for a sample or row index that does not exist.
var ErrOutOfRange = errors.New("index out of range")

// Built-in Kepler records: a confirmed planet and a false positive.
var samples = []models.Candidate{
	{
		"kepid":            10797460.0,
		"kepoi_name":       "K00752.01",
		"kepler_name":      "Kepler-227 b",
		"koi_disposition":  "CONFIRMED",
		"koi_pdisposition": "CANDIDATE",
		"koi_score":        1.0,
		"koi_fpflag_nt":    0.0,
		"koi_fpflag_ss":    0.0,
		"koi_fpflag_co":    0.0,
		"koi_fpflag_ec":    0.0,
		"koi_period":       9.488036,
		"koi_time0bk":      170.53875,
		"koi_impact":       0.146,
		"koi_duration":     2.9575,
		"koi_depth":        615.8,
		"koi_prad":         2.26,
		"koi_teq":          793.0,
		"koi_insol":        93.59,
		"koi_model_snr":    35.8,
		"koi_tce_plnt_num": 1.0,
		"koi_steff":        5455.0,
		"koi_slogg":        4.467,
		"koi_srad":         0.927,
		"ra":               291.93423,
		"dec":              48.141651,
		"koi_kepmag":       15.347,
		"pl_orbper":        9.488036,
		"pl_trandurh":      2.9575,
		"pl_trandep":       615.8,
		"pl_rade":          2.26,
		"pl_insol":         93.59,
		"pl_eqt":           793.0,
		"st_tmag":          15.347,
		"st_teff":          5455.0,
		"st_logg":          4.467,
		"st_rad":           0.927,
	},
	{
		"kepid":            10848459.0,
		"kepoi_name":       "K00754.01",
		"koi_disposition":  "FALSE POSITIVE",
		"koi_pdisposition": "FALSE POSITIVE",
		"koi_score":        0.0,
		"koi_fpflag_nt":    0.0,
		"koi_fpflag_ss":    1.0,
		"koi_fpflag_co":    0.0,
		"koi_fpflag_ec":    0.0,
		"koi_period":       1.736952,
		"koi_time0bk":      170.307565,
		"koi_impact":       1.276,
		"koi_duration":     2.40641,
		"koi_depth":        8079.2,
		"koi_prad":         33.46,
		"koi_teq":          1395.0,
		"koi_insol":        891.96,
		"koi_model_snr":    505.6,
		"koi_tce_plnt_num": 1.0,
		"koi_steff":        5805.0,
		"koi_slogg":        4.564,
		"koi_srad":         0.791,
		"ra":               297.00482,
		"dec":              48.134129,
		"koi_kepmag":       15.436,
		"pl_orbper":        1.736952,
		"pl_trandurh":      2.40641,
		"pl_trandep":       8079.2,
		"pl_rade":          33.46,
		"pl_insol":         891.96,
		"pl_eqt":           1395.0,
		"st_tmag":          15.436,
		"st_teff":          5805.0,
		"st_logg":          4.564,
		"st_rad":           0.791,
	},
}

// SampleCount is the number of built-in records.
func SampleCount() int { return len(samples) }

// Sample returns a copy of built-in record i.
func Sample(i int) (models.Candidate, error) {
	if i < 0 || i >= len(samples) {
		return nil, fmt.Errorf("%w: sample %d (%d available)", ErrOutOfRange, i, len(samples))
	}
	return samples[i].Clone(), nil
}

// SampleSource labels a record loaded from the built-in set.
func SampleSource(i int) string {
	return fmt.Sprintf("sample #%d", i+1)
}
