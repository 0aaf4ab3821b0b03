package rcp

import (
	"crypto/sha256"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ChecksumMismatch describes one file whose current digest differs from
// the recorded one.
type ChecksumMismatch struct {
	File     string
	Expected string
	Actual   string
}

// VerifyResult aggregates every discrepancy found in one verification
// pass. Mismatches are collected rather than failing fast so a single
// run reports the full damage.
type VerifyResult struct {
	OK         bool
	Missing    []string
	Mismatches []ChecksumMismatch
}

// VerifyPackage re-reads and re-hashes every artifact listed in a
// package's checksums.txt and compares against the recorded digests.
// There is no trusted shortcut: every byte is re-read from disk.
func VerifyPackage(root string) (*VerifyResult, error) {
	paths := PackagePaths(root)
	data, err := os.ReadFile(paths.ChecksumsPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read checksum manifest %s: %w", paths.ChecksumsPath, err)
	}

	result := &VerifyResult{OK: true}
	for lineNo, line := range strings.Split(strings.TrimRight(string(data), "\n"), "\n") {
		expected, relative, found := strings.Cut(line, "  ")
		if !found || len(expected) != sha256.Size*2 {
			return nil, fmt.Errorf("malformed checksum entry on line %d of %s", lineNo+1, paths.ChecksumsPath)
		}
		full := filepath.Join(root, filepath.FromSlash(relative))
		contents, err := os.ReadFile(full)
		if err != nil {
			if os.IsNotExist(err) {
				result.OK = false
				result.Missing = append(result.Missing, relative)
				continue
			}
			return nil, fmt.Errorf("failed to read %s: %w", full, err)
		}
		actual := fmt.Sprintf("%x", sha256.Sum256(contents))
		if actual != expected {
			result.OK = false
			result.Mismatches = append(result.Mismatches, ChecksumMismatch{
				File:     relative,
				Expected: expected,
				Actual:   actual,
			})
		}
	}
	return result, nil
}
