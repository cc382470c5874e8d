package models

// TrackedFile is the ranking metadata kept for a single file.
type TrackedFile struct {
	Rank    int    `json:"rank" toon:"rank"`
	Summary string `json:"summary" toon:"summary"`
}

// FileEntry pairs a tracked file with its path for listings.
type FileEntry struct {
	Path    string `json:"path" toon:"path"`
	Rank    int    `json:"rank" toon:"rank"`
	Summary string `json:"summary" toon:"summary"`
}

// DependencyRecord holds the scan result for one file. Imports are absolute
// paths of files that were proven to exist; PossibleImports are unresolved
// reference tokens (module names, header paths, crate paths).
type DependencyRecord struct {
	Imports         []string `json:"imports" toon:"imports"`
	PossibleImports []string `json:"possible_imports" toon:"possible_imports"`
	Fingerprint     string   `json:"fingerprint,omitempty" toon:"fingerprint,omitempty"`
}

// ScanSummary aggregates a full-store scan.
type ScanSummary struct {
	Scanned  int      `json:"scanned" toon:"scanned"`
	Skipped  int      `json:"skipped" toon:"skipped"`
	Certain  int      `json:"certain" toon:"certain"`
	Possible int      `json:"possible" toon:"possible"`
	Failures []string `json:"failures,omitempty" toon:"failures,omitempty"`
}

// TreeStats summarizes a dependency tree rooted at one file.
type TreeStats struct {
	CertainDependencies int `json:"certain_dependencies" toon:"certain_dependencies"`
	PossibleImports     int `json:"possible_imports" toon:"possible_imports"`
	DependentsCount     int `json:"dependents_count" toon:"dependents_count"`
	Depth               int `json:"depth" toon:"depth"`
}

// Visualization is the rendered dependency tree for a file plus the files
// that depend on it.
type Visualization struct {
	Tree       []string  `json:"tree" toon:"tree"`
	Dependents []string  `json:"dependents" toon:"dependents"`
	Stats      TreeStats `json:"stats" toon:"stats"`
}
