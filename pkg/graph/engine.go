// Package graph maintains the dependency graph over tracked files: scanning
// files through the language detectors, recording results, and answering
// dependency queries. All operations are synchronous and deterministic for
// a given store and disk state.
package graph

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/zeebo/blake3"

	"github.com/admica/file-rank-mcp/pkg/detect"
	"github.com/admica/file-rank-mcp/pkg/models"
)

// DefaultMaxDepth bounds dependency trees when the caller does not choose.
const DefaultMaxDepth = 3

// RankSource is the engine's view of the ranking data. TrackedPaths must be
// sorted ascending so cross-reference matching stays deterministic.
type RankSource interface {
	TrackedPaths() []string
	RankOf(path string) (int, bool)
}

// RecordStore persists dependency records.
type RecordStore interface {
	Record(path string) (models.DependencyRecord, bool)
	Records() map[string]models.DependencyRecord
	PutRecord(path string, rec models.DependencyRecord) error
	DeleteRecord(path string) error
	DropImport(path string) error
}

// NotFoundError indicates a scan target that does not exist on disk.
type NotFoundError struct {
	Path string
}

func (e *NotFoundError) Error() string {
	return "file not found: " + e.Path
}

// Engine runs scans and graph queries against a record store.
type Engine struct {
	ranks      RankSource
	records    RecordStore
	detector   *detect.Detector
	maxDepth   int
	onProgress func(path string)
}

// Option configures an Engine.
type Option func(*Engine)

// WithMaxDepth sets the default visualization depth.
func WithMaxDepth(depth int) Option {
	return func(e *Engine) {
		if depth > 0 {
			e.maxDepth = depth
		}
	}
}

// WithProgress installs a per-file callback for full scans.
func WithProgress(fn func(path string)) Option {
	return func(e *Engine) {
		e.onProgress = fn
	}
}

// New creates an engine over the given rank source and record store.
func New(ranks RankSource, records RecordStore, opts ...Option) *Engine {
	e := &Engine{
		ranks:    ranks,
		records:  records,
		detector: detect.New(),
		maxDepth: DefaultMaxDepth,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Close releases detector resources.
func (e *Engine) Close() {
	e.detector.Close()
}

func canonical(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("resolving %s: %w", path, err)
	}
	return filepath.Clean(abs), nil
}

// ScanOne detects the file's dependencies, matches possible tokens against
// tracked files, and replaces the stored record wholesale.
func (e *Engine) ScanOne(path string) (models.DependencyRecord, error) {
	key, err := canonical(path)
	if err != nil {
		return models.DependencyRecord{}, err
	}
	info, err := os.Stat(key)
	if err != nil || info.IsDir() {
		return models.DependencyRecord{}, &NotFoundError{Path: key}
	}
	source, err := os.ReadFile(key)
	if err != nil {
		return models.DependencyRecord{}, fmt.Errorf("reading %s: %w", key, err)
	}

	res := e.detector.Detect(key, source)
	res = detect.Promote(res, e.ranks.TrackedPaths())

	sum := blake3.Sum256(source)
	rec := models.DependencyRecord{
		Imports:         res.Certain,
		PossibleImports: res.Possible,
		Fingerprint:     fmt.Sprintf("%x", sum),
	}
	if err := e.records.PutRecord(key, rec); err != nil {
		return models.DependencyRecord{}, err
	}
	return rec, nil
}

// ScanAll rescans every tracked file in sorted order. Files missing on disk
// are skipped and per-file failures are collected; neither aborts the scan.
func (e *Engine) ScanAll() (models.ScanSummary, error) {
	var summary models.ScanSummary
	for _, path := range e.ranks.TrackedPaths() {
		if e.onProgress != nil {
			e.onProgress(path)
		}
		if info, err := os.Stat(path); err != nil || info.IsDir() {
			summary.Skipped++
			continue
		}
		rec, err := e.ScanOne(path)
		if err != nil {
			summary.Failures = append(summary.Failures, fmt.Sprintf("%s: %v", path, err))
			continue
		}
		summary.Scanned++
		summary.Certain += len(rec.Imports)
		summary.Possible += len(rec.PossibleImports)
	}
	return summary, nil
}

// RemoveFile drops a file's record and purges it from every other record's
// imports. Removing an unknown file is a no-op.
func (e *Engine) RemoveFile(path string) error {
	key, err := canonical(path)
	if err != nil {
		return err
	}
	if err := e.records.DeleteRecord(key); err != nil {
		return err
	}
	return e.records.DropImport(key)
}

// Dependents returns the sorted paths whose certain imports include path.
func (e *Engine) Dependents(path string) ([]string, error) {
	key, err := canonical(path)
	if err != nil {
		return nil, err
	}
	var dependents []string
	for owner, rec := range e.records.Records() {
		for _, imp := range rec.Imports {
			if imp == key {
				dependents = append(dependents, owner)
				break
			}
		}
	}
	sort.Strings(dependents)
	return dependents, nil
}

// Record fetches the stored dependency record for a path, scanning it first
// if nothing is recorded yet.
func (e *Engine) Record(path string) (models.DependencyRecord, error) {
	key, err := canonical(path)
	if err != nil {
		return models.DependencyRecord{}, err
	}
	if rec, ok := e.records.Record(key); ok {
		return rec, nil
	}
	return e.ScanOne(key)
}
