// Package explorer holds the single-row analysis state and the service that
// drives a classification through it.
package explorer

import (
	"fmt"
	"sync"

	"exoplanet-explorer/models"
)

// Snapshot is a consistent, copied view of the state.
type Snapshot struct {
	Record      models.Candidate       `json:"record"`
	Source      string                 `json:"source"`
	Status      models.AnalysisStatus  `json:"status"`
	Result      *models.AnalysisResult `json:"result"`
	ModalOpen   bool                   `json:"modal_open"`
	RowCount    int                    `json:"row_count"`
	SelectedRow int                    `json:"selected_row"`
	// Generation changes every time a different record is loaded.
	Generation uint64 `json:"-"`
}

// HasRecord reports whether a record is loaded.
func (s Snapshot) HasRecord() bool { return len(s.Record) > 0 }

// State is the explorer's state container. All access goes through its
// setters.
type State struct {
	mu        sync.RWMutex
	record    models.Candidate
	source    string
	status    models.AnalysisStatus
	result    *models.AnalysisResult
	modalOpen bool
	rows      []models.Candidate
	rowsFrom  string
	selected  int
	gen       uint64
}

func NewState() *State {
	return &State{status: models.StatusInitial, selected: -1}
}

// Load makes record the active one. The status goes back to initial and the
// previous result is dropped.
func (s *State) Load(record models.Candidate, source string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.load(record.Clone(), source)
	s.selected = -1
}

func (s *State) load(record models.Candidate, source string) {
	s.record = record
	s.source = source
	s.status = models.StatusInitial
	s.result = nil
	s.modalOpen = false
	s.gen++
}

// SetRows stores the rows of a multi-row upload for the row picker and
// activates the first one.
func (s *State) SetRows(rows []models.Candidate, source string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rows = rows
	s.rowsFrom = source
	s.selected = -1
	if len(rows) > 0 {
		s.load(rows[0].Clone(), rowSource(source, 0))
		s.selected = 0
	}
}

// SelectRow activates row i of the stored upload.
func (s *State) SelectRow(i int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if i < 0 || i >= len(s.rows) {
		return fmt.Errorf("%w: row %d (%d rows loaded)", ErrOutOfRange, i, len(s.rows))
	}
	s.load(s.rows[i].Clone(), rowSource(s.rowsFrom, i))
	s.selected = i
	return nil
}

// Rows returns the stored upload rows.
func (s *State) Rows() []models.Candidate {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.Candidate(nil), s.rows...)
}

// Record returns a copy of the active record, nil when none is loaded.
func (s *State) Record() models.Candidate {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.record.Clone()
}

// SetStatusFor sets the status only while record generation gen is still
// active. It reports whether the status was stored.
func (s *State) SetStatusFor(gen uint64, status models.AnalysisStatus) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.gen != gen {
		return false
	}
	s.status = status
	return true
}

// SetResult stores a finished analysis and opens the results dialog.
func (s *State) SetResult(r *models.AnalysisResult) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.setResult(r)
}

// SetResultFor is SetResult guarded by the record generation the analysis
// started from. A result for a record that has since been replaced is
// dropped and false is returned.
func (s *State) SetResultFor(gen uint64, r *models.AnalysisResult) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.gen != gen {
		return false
	}
	s.setResult(r)
	return true
}

func (s *State) setResult(r *models.AnalysisResult) {
	s.result = r
	s.status = r.Status
	s.modalOpen = true
}

func (s *State) SetModalOpen(open bool) {
	s.mu.Lock()
	s.modalOpen = open
	s.mu.Unlock()
}

func (s *State) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Snapshot{
		Record:      s.record.Clone(),
		Source:      s.source,
		Status:      s.status,
		Result:      s.result,
		ModalOpen:   s.modalOpen,
		RowCount:    len(s.rows),
		SelectedRow: s.selected,
		Generation:  s.gen,
	}
}

func rowSource(source string, i int) string {
	return fmt.Sprintf("%s #%d", source, i+1)
}
