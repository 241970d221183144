// Package worker runs merges on a cron schedule for periodic snapshot
// reports.
package worker

import (
	"path/filepath"
	"strings"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/fediasonin/geomerge/internal/log"
	"github.com/fediasonin/geomerge/internal/merge"
	"github.com/fediasonin/geomerge/internal/model"
	"github.com/fediasonin/geomerge/internal/storage"
)

// pathStampLayout is the format substituted into the output pattern.
const pathStampLayout = "20060102T150405"

// Scheduler runs the merge on a cron schedule. Options.OutputPath is
// treated as a pattern; each run writes to a path stamped with that
// run's start time, using the run time as the row timestamp.
type Scheduler struct {
	cron    *cron.Cron
	opts    merge.Options
	journal storage.Store // optional, may be nil
}

// NewScheduler creates a scheduler for the given cron spec (standard
// five-field syntax).
func NewScheduler(spec string, opts merge.Options, journal storage.Store) (*Scheduler, error) {
	s := &Scheduler{
		cron:    cron.New(),
		opts:    opts,
		journal: journal,
	}

	if _, err := s.cron.AddFunc(spec, s.runOnce); err != nil {
		return nil, err
	}
	return s, nil
}

// Start starts the scheduler
func (s *Scheduler) Start() {
	log.Info("Starting snapshot scheduler")
	s.cron.Start()
}

// Stop stops the scheduler and waits for a running merge to finish
func (s *Scheduler) Stop() {
	log.Info("Stopping snapshot scheduler")
	<-s.cron.Stop().Done()
}

// runOnce performs one scheduled merge
func (s *Scheduler) runOnce() {
	now := time.Now()

	opts := s.opts
	opts.Stamp = now.Format(merge.StampLayout)
	opts.OutputPath = StampPath(s.opts.OutputPath, now)

	result, err := merge.Run(opts)
	if err != nil {
		log.Error("Scheduled snapshot failed", "error", err)
		return
	}

	if s.journal == nil {
		return
	}
	err = s.journal.RecordSnapshot(&model.Snapshot{
		Stamp:         opts.Stamp,
		LocationsPath: opts.LocationsPath,
		BlocksPath:    opts.BlocksPath,
		OutputPath:    opts.OutputPath,
		Rows:          result.Rows,
		Unresolved:    result.Unresolved,
		Digest:        result.Digest,
	})
	if err != nil {
		log.Error("Failed to record snapshot in journal", "error", err)
	}
}

// StampPath substitutes the run time into an output pattern. An "@" in
// the pattern is replaced with the stamp; without one the stamp is
// inserted before the extension.
func StampPath(pattern string, t time.Time) string {
	stamp := t.Format(pathStampLayout)
	if strings.Contains(pattern, "@") {
		return strings.ReplaceAll(pattern, "@", stamp)
	}
	ext := filepath.Ext(pattern)
	return strings.TrimSuffix(pattern, ext) + "-" + stamp + ext
}
