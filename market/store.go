package market

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"sync"
)

// Snapshot is one consistent view of the loaded market data and every
// analysis derived from it.
type Snapshot struct {
	Month     int
	Sales     []Sale
	Ranking   []RankedDistrict
	Quintiles []Quintile
	National  []PercentBand
	Seoul     []PercentBand
}

// Store holds the current market snapshot and reloads it from the data
// directory on demand. Readers get an immutable snapshot; a reload swaps
// the whole thing at once.
type Store struct {
	dir string

	mu       sync.RWMutex
	snapshot *Snapshot

	listenerMu sync.Mutex
	listeners  []func()
}

func NewStore(dir string) *Store {
	return &Store{dir: dir}
}

// Load reads the CSVs and computes the ranking and quintiles.
// Band files are optional; without them percentiles read N/A.
func (s *Store) Load() error {
	sales, err := LoadSales(filepath.Join(s.dir, SalesFile))
	if err != nil {
		return fmt.Errorf("failed to load market data: %w", err)
	}

	national, err := LoadBands(filepath.Join(s.dir, NationalBandsFile))
	if err != nil {
		slog.Warn("national percentile bands unavailable", "error", err)
		national = nil
	}
	seoul, err := LoadBands(filepath.Join(s.dir, SeoulBandsFile))
	if err != nil {
		slog.Warn("seoul percentile bands unavailable", "error", err)
		seoul = nil
	}

	month := LatestMonth(sales)
	ranking := ComputeRanking(sales, month, national, seoul)

	snapshot := &Snapshot{
		Month:     month,
		Sales:     sales,
		Ranking:   ranking,
		Quintiles: ComputeQuintiles(ranking),
		National:  national,
		Seoul:     seoul,
	}

	s.mu.Lock()
	s.snapshot = snapshot
	s.mu.Unlock()

	slog.Info("market data loaded",
		"dir", s.dir, "month", month,
		"rows", len(sales), "districts", len(ranking))
	return nil
}

// Reload re-reads the data directory and notifies listeners on success.
// A failed reload keeps the previous snapshot.
func (s *Store) Reload() error {
	if err := s.Load(); err != nil {
		return err
	}
	s.notifyListeners()
	return nil
}

// Snapshot returns the current data view. Callers must not mutate it.
func (s *Store) Snapshot() *Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshot
}

// Dir returns the data directory the store reads from.
func (s *Store) Dir() string {
	return s.dir
}

// AddOnReloadListener registers a callback invoked after each successful
// reload. Callbacks run synchronously; keep them short.
func (s *Store) AddOnReloadListener(fn func()) {
	s.listenerMu.Lock()
	defer s.listenerMu.Unlock()
	s.listeners = append(s.listeners, fn)
}

func (s *Store) notifyListeners() {
	s.listenerMu.Lock()
	listeners := make([]func(), len(s.listeners))
	copy(listeners, s.listeners)
	s.listenerMu.Unlock()

	for _, fn := range listeners {
		fn()
	}
}
