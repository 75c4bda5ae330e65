// Package gitwatch drives the `watch --git` mode: instead of polling
// the filesystem for change events, it shells out to `git diff` and
// turns the result into the set of TypeScript/TSX files to invalidate
// and reload. Adapted from the teacher's internal/git/git.go diff
// parser (same algorithm, same regex), with the file-suffix filter
// changed from .go to .ts/.tsx.
package gitwatch

import (
	"bufio"
	"bytes"
	"fmt"
	"os/exec"
	"regexp"
	"strconv"
	"strings"
)

// ChangedFile names one file git reports as changed, plus the
// specific line numbers touched — kept even though this loader
// invalidates at file granularity (spec.md §4.8), since a future
// declaration-level invalidation policy can reuse it without
// reparsing the diff.
type ChangedFile struct {
	Path         string
	ChangedLines []int
}

var tsSuffixes = []string{".ts", ".tsx"}

// GetChangedFiles runs `git diff -U0 baseRef` and returns every
// changed .ts/.tsx file with its touched line numbers.
func GetChangedFiles(baseRef string) ([]ChangedFile, error) {
	cmd := exec.Command("git", "diff", "-U0", baseRef)
	output, err := cmd.Output()
	if err != nil {
		return nil, fmt.Errorf("gitwatch: git diff failed: %w", err)
	}
	return parseDiff(output)
}

// ChangedPaths is GetChangedFiles filtered down to bare paths, the
// shape internal/impact.Analyzer.AnalyzeImpact and
// orchestrator.Orchestrator.Invalidate both want.
func ChangedPaths(baseRef string) ([]string, error) {
	changes, err := GetChangedFiles(baseRef)
	if err != nil {
		return nil, err
	}
	paths := make([]string, len(changes))
	for i, c := range changes {
		paths[i] = c.Path
	}
	return paths, nil
}

func isTypeScriptPath(path string) bool {
	for _, suffix := range tsSuffixes {
		if strings.HasSuffix(path, suffix) {
			return true
		}
	}
	return false
}

var chunkHeader = regexp.MustCompile(`^@@ \-\d+(?:,\d+)? \+(\d+)(?:,(\d+))? @@`)

func parseDiff(output []byte) ([]ChangedFile, error) {
	scanner := bufio.NewScanner(bytes.NewReader(output))
	var changes []ChangedFile
	var current *ChangedFile
	var currentRelevant bool

	flush := func() {
		if current != nil && currentRelevant {
			changes = append(changes, *current)
		}
	}

	for scanner.Scan() {
		line := scanner.Text()

		if strings.HasPrefix(line, "diff --git") {
			flush()
			parts := strings.Fields(line)
			if len(parts) < 4 {
				current = nil
				currentRelevant = false
				continue
			}
			path := strings.TrimPrefix(parts[3], "b/")
			current = &ChangedFile{Path: path}
			currentRelevant = isTypeScriptPath(path)
			continue
		}

		if current == nil || !currentRelevant {
			continue
		}

		if strings.HasPrefix(line, "@@") {
			matches := chunkHeader.FindStringSubmatch(line)
			if len(matches) > 1 {
				start, _ := strconv.Atoi(matches[1])
				count := 1
				if len(matches) > 2 && matches[2] != "" {
					count, _ = strconv.Atoi(matches[2])
				}
				for i := 0; i < count; i++ {
					current.ChangedLines = append(current.ChangedLines, start+i)
				}
			}
		}
	}
	flush()

	return changes, scanner.Err()
}
