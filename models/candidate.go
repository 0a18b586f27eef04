package models

import (
	"math"
	"strconv"
	"strings"
)

// Candidate is one row of transit-photometry input. Values are float64,
// string or nil; field presence is not guaranteed.
type Candidate map[string]any

// Fields sent to the classifier, in payload order.
var PayloadFields = []string{
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
}

// StellarData is the fixed-shape payload accepted by the prediction service.
type StellarData struct {
	PlOrbper   float64 `json:"pl_orbper"`
	PlTrandurh float64 `json:"pl_trandurh"`
	PlTrandep  float64 `json:"pl_trandep"`
	PlRade     float64 `json:"pl_rade"`
	PlInsol    float64 `json:"pl_insol"`
	PlEqt      float64 `json:"pl_eqt"`
	StTmag     float64 `json:"st_tmag"`
	StTeff     float64 `json:"st_teff"`
	StLogg     float64 `json:"st_logg"`
	StRad      float64 `json:"st_rad"`
}

// Values returns the payload in PayloadFields order.
func (s StellarData) Values() []float64 {
	return []float64{
		s.PlOrbper, s.PlTrandurh, s.PlTrandep, s.PlRade, s.PlInsol,
		s.PlEqt, s.StTmag, s.StTeff, s.StLogg, s.StRad,
	}
}

// Payload normalizes the candidate into the classifier payload. Missing,
// null, zero or unparsable fields become 0.
func (c Candidate) Payload() StellarData {
	return StellarData{
		PlOrbper:   c.Number("pl_orbper"),
		PlTrandurh: c.Number("pl_trandurh"),
		PlTrandep:  c.Number("pl_trandep"),
		PlRade:     c.Number("pl_rade"),
		PlInsol:    c.Number("pl_insol"),
		PlEqt:      c.Number("pl_eqt"),
		StTmag:     c.Number("st_tmag"),
		StTeff:     c.Number("st_teff"),
		StLogg:     c.Number("st_logg"),
		StRad:      c.Number("st_rad"),
	}
}

// Number reads a numeric field, returning 0 when it is absent or not a number.
func (c Candidate) Number(key string) float64 {
	v, _ := c.lookupNumber(key)
	return v
}

// FirstNonZero returns the first non-zero numeric field among keys, or def.
func (c Candidate) FirstNonZero(def float64, keys ...string) float64 {
	for _, k := range keys {
		if v, ok := c.lookupNumber(k); ok && v != 0 {
			return v
		}
	}
	return def
}

func (c Candidate) lookupNumber(key string) (float64, bool) {
	raw, ok := c[key]
	if !ok || raw == nil {
		return 0, false
	}
	switch v := raw.(type) {
	case float64:
		return finite(v)
	case float32:
		return finite(float64(v))
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	case bool:
		if v {
			return 1, true
		}
		return 0, true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return 0, false
		}
		return finite(f)
	}
	return 0, false
}

func finite(f float64) (float64, bool) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// String reads a field as text. Numbers are formatted without trailing zeros.
func (c Candidate) String(key string) string {
	switch v := c[key].(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(v)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case int:
		return strconv.Itoa(v)
	default:
		if f, ok := c.lookupNumber(key); ok {
			return strconv.FormatFloat(f, 'f', -1, 64)
		}
	}
	return ""
}

// Has reports whether the field is present with a non-null value.
func (c Candidate) Has(key string) bool {
	v, ok := c[key]
	return ok && v != nil
}

// Name is the display name: kepler_name, then kepoi_name, then "Unknown".
func (c Candidate) Name() string {
	if n := c.String("kepler_name"); n != "" {
		return n
	}
	if n := c.String("kepoi_name"); n != "" {
		return n
	}
	return "Unknown"
}

// Clone returns a shallow copy so callers can't mutate shared state.
func (c Candidate) Clone() Candidate {
	if c == nil {
		return nil
	}
	out := make(Candidate, len(c))
	for k, v := range c {
		out[k] = v
	}
	return out
}
