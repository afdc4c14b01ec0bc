// Package cleanup implements pruning of old trace archives.
package cleanup

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/berth-dev/godog-playwright/pkg/world"
)

// ErrNegativeKeep is returned by PruneKeepRecent for a negative keep count.
var ErrNegativeKeep = errors.New("keep must not be negative")

// archive is a trace file whose name carries a parseable start time.
type archive struct {
	name    string
	started time.Time
}

// listArchives returns the trace archives in tracesDir, oldest first.
// Files whose names don't follow the trace naming scheme are ignored.
func listArchives(tracesDir string) ([]archive, error) {
	entries, err := os.ReadDir(tracesDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading traces directory: %w", err)
	}

	var archives []archive
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		_, started, ok := world.ParseTraceName(entry.Name())
		if !ok {
			continue
		}
		archives = append(archives, archive{name: entry.Name(), started: started})
	}

	// Names start with the scenario name, so they don't sort chronologically.
	sort.SliceStable(archives, func(i, j int) bool {
		return archives[i].started.Before(archives[j].started)
	})
	return archives, nil
}

func remove(tracesDir string, victims []archive, dryRun bool) ([]string, error) {
	var pruned []string
	for _, a := range victims {
		if !dryRun {
			if err := os.Remove(filepath.Join(tracesDir, a.name)); err != nil {
				return pruned, fmt.Errorf("removing %s: %w", a.name, err)
			}
		}
		pruned = append(pruned, a.name)
	}
	return pruned, nil
}

// PruneByAge removes trace archives recorded more than maxAgeDays before now.
// If dryRun is true, no files are deleted; the function only returns
// the names that would be removed. Returns the list of pruned file names.
func PruneByAge(tracesDir string, maxAgeDays int, now time.Time, dryRun bool) ([]string, error) {
	archives, err := listArchives(tracesDir)
	if err != nil {
		return nil, err
	}

	cutoff := now.AddDate(0, 0, -maxAgeDays)
	var victims []archive
	for _, a := range archives {
		if a.started.Before(cutoff) {
			victims = append(victims, a)
		}
	}
	return remove(tracesDir, victims, dryRun)
}

// PruneKeepRecent removes all trace archives except the most recent keep.
// If dryRun is true, no files are deleted. Returns the list of pruned file
// names, oldest first.
func PruneKeepRecent(tracesDir string, keep int, dryRun bool) ([]string, error) {
	if keep < 0 {
		return nil, fmt.Errorf("%w: %d", ErrNegativeKeep, keep)
	}
	archives, err := listArchives(tracesDir)
	if err != nil {
		return nil, err
	}

	if len(archives) <= keep {
		return nil, nil
	}
	return remove(tracesDir, archives[:len(archives)-keep], dryRun)
}
