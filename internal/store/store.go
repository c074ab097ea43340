// Package store persists readings as one JSON file per calendar month and
// derives the period index and the rolling display window from them.
//
// Every write rewrites the whole file. Monthly files stay small (a few
// hundred readings at most) and the window is capped at WindowSize, so
// incremental appends would buy nothing.
package store

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"DormPower/internal/model"

	"github.com/sirupsen/logrus"
)

const (
	// PeriodLayout formats period keys, e.g. "2025-06".
	PeriodLayout = "2006-01"
	// WindowSize caps the rolling window.
	WindowSize = 30
	// WindowFile is the rolling window file name inside the data directory.
	WindowFile = "last_30_records.json"
	// IndexFile is the default period index file name.
	IndexFile = "time.json"

	periodGlob = "????-??.json"
)

// LoadStatus describes the outcome of reading a dataset file.
type LoadStatus int

const (
	Loaded LoadStatus = iota
	Missing
	Corrupt
	Unreadable
)

func (s LoadStatus) String() string {
	switch s {
	case Loaded:
		return "loaded"
	case Missing:
		return "missing"
	case Corrupt:
		return "corrupt"
	default:
		return "unreadable"
	}
}

// Store reads and writes reading files under a data directory.
type Store struct {
	dataDir   string
	indexPath string
	log       logrus.FieldLogger
}

// New creates a Store. An empty indexPath places the index next to dataDir,
// e.g. page/data -> page/time.json.
func New(dataDir, indexPath string, log logrus.FieldLogger) *Store {
	if indexPath == "" {
		indexPath = DefaultIndexPath(dataDir)
	}
	return &Store{dataDir: dataDir, indexPath: indexPath, log: log}
}

// DefaultIndexPath returns the index location used when none is configured.
func DefaultIndexPath(dataDir string) string {
	return filepath.Join(filepath.Dir(filepath.Clean(dataDir)), IndexFile)
}

// PeriodOf returns the period key of t in t's own location.
func PeriodOf(t time.Time) string {
	return t.Format(PeriodLayout)
}

// DataDir returns the directory holding the monthly files.
func (s *Store) DataDir() string { return s.dataDir }

// IndexPath returns the period index file path.
func (s *Store) IndexPath() string { return s.indexPath }

// WindowPath returns the rolling window file path.
func (s *Store) WindowPath() string { return filepath.Join(s.dataDir, WindowFile) }

func (s *Store) periodPath(period string) string {
	return filepath.Join(s.dataDir, period+".json")
}

// Load returns the monthly dataset for period. A missing or unparsable file
// yields an empty dataset; the status tells which case occurred.
func (s *Store) Load(period string) ([]model.Reading, LoadStatus) {
	return s.load(s.periodPath(period))
}

// LoadWindow returns the persisted rolling window.
func (s *Store) LoadWindow() ([]model.Reading, LoadStatus) {
	return s.load(s.WindowPath())
}

func (s *Store) load(path string) ([]model.Reading, LoadStatus) {
	readings, status, err := readReadings(path)
	switch status {
	case Missing:
		s.log.WithField("path", path).Warn("dataset file not found, starting empty")
	case Corrupt, Unreadable:
		s.log.WithError(err).WithField("path", path).Errorf("dataset file %s, starting empty", status)
	}
	return readings, status
}

func readReadings(path string) ([]model.Reading, LoadStatus, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return []model.Reading{}, Missing, nil
		}
		return []model.Reading{}, Unreadable, err
	}
	var readings []model.Reading
	if err := json.Unmarshal(data, &readings); err != nil {
		return []model.Reading{}, Corrupt, err
	}
	if readings == nil {
		readings = []model.Reading{}
	}
	return readings, Loaded, nil
}

// Append adds r to the dataset of period and rewrites the file. When the last
// stored reading has the same balances nothing is written and appended is
// false. On a write error the in-memory dataset including r is still returned.
func (s *Store) Append(period string, r model.Reading) (data []model.Reading, appended bool, err error) {
	data, _ = s.Load(period)
	if n := len(data); n > 0 && data[n-1].SameBalances(r) {
		s.log.WithField("period", period).Info("latest reading matches last record, skipping write")
		return data, false, nil
	}

	data = append(data, r)
	path := s.periodPath(period)
	if err := writeJSON(path, data); err != nil {
		return data, true, fmt.Errorf("write dataset %s: %w", path, err)
	}
	s.log.WithFields(logrus.Fields{"period": period, "records": len(data)}).Info("reading saved")
	return data, true, nil
}

// RebuildPeriodIndex scans the data directory for monthly files and persists
// their keys sorted from the most recent month to the oldest.
func (s *Store) RebuildPeriodIndex() ([]string, error) {
	if _, err := os.Stat(s.dataDir); err != nil {
		return nil, fmt.Errorf("data dir: %w", err)
	}
	matches, err := filepath.Glob(filepath.Join(s.dataDir, periodGlob))
	if err != nil {
		return nil, fmt.Errorf("scan data dir: %w", err)
	}

	type entry struct {
		key string
		at  time.Time
	}
	entries := make([]entry, 0, len(matches))
	for _, m := range matches {
		key := filepath.Base(m)
		key = key[:len(key)-len(".json")]
		at, err := time.Parse(PeriodLayout, key)
		if err != nil {
			s.log.WithField("path", m).Warn("ignoring file with invalid period name")
			continue
		}
		entries = append(entries, entry{key: key, at: at})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].at.After(entries[j].at) })

	index := make([]string, len(entries))
	for i, e := range entries {
		index[i] = e.key
	}
	if err := writeJSON(s.indexPath, index); err != nil {
		return index, fmt.Errorf("write period index: %w", err)
	}
	s.log.WithField("periods", len(index)).Info("period index updated")
	return index, nil
}

// RebuildRollingWindow persists the last WindowSize readings ending with
// current, the dataset of period. When current is shorter than WindowSize the
// gap is filled from the tail of the closest earlier period in index.
func (s *Store) RebuildRollingWindow(period string, current []model.Reading, index []string) ([]model.Reading, error) {
	window := current
	if len(current) < WindowSize {
		if prev, ok := previousPeriod(period, index); ok {
			older, _ := s.Load(prev)
			need := WindowSize - len(current)
			if need > len(older) {
				need = len(older)
			}
			window = make([]model.Reading, 0, need+len(current))
			window = append(window, older[len(older)-need:]...)
			window = append(window, current...)
		}
	}
	if len(window) > WindowSize {
		window = window[len(window)-WindowSize:]
	}
	if window == nil {
		window = []model.Reading{}
	}

	if err := writeJSON(s.WindowPath(), window); err != nil {
		return window, fmt.Errorf("write rolling window: %w", err)
	}
	s.log.WithField("records", len(window)).Info("rolling window updated")
	return window, nil
}

// previousPeriod returns the most recent index entry older than period.
// index is expected in descending order.
func previousPeriod(period string, index []string) (string, bool) {
	cur, err := time.Parse(PeriodLayout, period)
	if err != nil {
		return "", false
	}
	for _, key := range index {
		at, err := time.Parse(PeriodLayout, key)
		if err != nil {
			continue
		}
		if at.Before(cur) {
			return key, true
		}
	}
	return "", false
}

// writeJSON writes v as 4-space indented UTF-8 JSON.
func writeJSON(path string, v any) error {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "    ")
	if err := enc.Encode(v); err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	return os.WriteFile(path, buf.Bytes(), 0644)
}
