package mcpserver

// Tool descriptions with interpretation guidance for LLMs.
// Each description explains what the tool does, when to use it,
// and how to interpret results.

func describeRankFile() string {
	return `Assigns an importance rank (1-10, 1 = most important) and an optional summary to a file.

USE WHEN:
- Marking the files that matter most in a codebase
- Updating a rank or summary after a file's role changes
- Following up on a generate_summary instruction

INTERPRETING RESULTS:
- Returns the stored entry plus a fresh dependency record for the file
- Re-ranking a tracked file overwrites rank and summary
- Ranks outside 1-10 and paths that do not exist on disk are rejected

The file's dependencies are rescanned immediately, so possible imports that
match other tracked files are promoted to certain imports.`
}

func describeDeleteFile() string {
	return `Removes a file from tracking: its rank, its dependency record, and every reference to it from other files' imports.

USE WHEN:
- A file was deleted or moved
- Cleaning entries that no longer deserve tracking

Deleting an untracked file is a no-op, never an error.`
}

func describeGetFile() string {
	return `Fetches the rank and summary of one tracked file.`
}

func describeGetAllFiles() string {
	return `Lists every tracked file with rank and summary, most important first.

USE WHEN:
- Getting an overview of what is tracked
- Deciding what to read first in an unfamiliar codebase`
}

func describeGetFilesByDir() string {
	return `Lists tracked files under a directory (recursive), most important first.`
}

func describeUpdateDependencies() string {
	return `Rescans one file's imports and replaces its dependency record.

INTERPRETING RESULTS:
- imports: absolute paths of files proven to exist on disk (certain)
- possible_imports: unresolved tokens like module names, system headers,
  and crate paths
- Tokens matching a tracked file's name are promoted into imports

Supported languages: Python, JavaScript/TypeScript, C/C++, Rust. Files in
other languages yield an empty record.`
}

func describeScanAllDependencies() string {
	return `Rescans every tracked file and rebuilds the whole dependency graph.

USE WHEN:
- After ranking several files (promotion depends on the tracked set)
- After pulling changes that may have altered imports

INTERPRETING RESULTS:
- scanned/skipped counts; files missing on disk are skipped, not errors
- failures lists per-file problems; they never abort the scan`
}

func describeGetDependencies() string {
	return `Returns a file's dependency record, scanning it first when nothing is recorded yet.`
}

func describeGetDependents() string {
	return `Lists the tracked files whose certain imports include this file.

USE WHEN:
- Judging the blast radius of changing or deleting a file
- A file with many dependents and a strong rank is a load-bearing file`
}

func describeVisualizeDependencies() string {
	return `Renders an ASCII dependency tree rooted at a file, children ordered most important first.

INTERPRETING RESULTS:
- Each node shows the path and [rank: N] when ranked
- A file repeated as a bare leaf marks a cycle or the depth limit
- dependents lists the reverse direction; stats counts both tiers

Default max_depth is 3; raise it for deep chains.`
}

func describeFindCycles() string {
	return `Finds groups of files that import each other, directly or through intermediaries.

INTERPRETING RESULTS:
- Each group is a strongly connected component of the import graph
- Cycles spanning many files are refactoring candidates`
}

func describeGenerateSummary() string {
	return `Reports a file's size and line count and asks the caller to write the actual summary.

This tool does not read meaning from code. Read the file yourself, then
store your summary with rank_file.`
}
