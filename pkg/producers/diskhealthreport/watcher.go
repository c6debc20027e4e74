// SPDX-FileCopyrightText: 2025 SAP SE or an SAP affiliate company and prysm contributors
//
// SPDX-License-Identifier: Apache-2.0

package diskhealthreport

import (
	"context"
	"sort"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog/log"
)

func createReportWatcher(cfg DiskHealthReportConfig) (*fsnotify.Watcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		log.Error().Err(err).Msg("error creating report watcher")
		return nil, err
	}

	if err := watcher.Add(cfg.ReportDir); err != nil {
		log.Error().Err(err).Str("dir", cfg.ReportDir).Msg("error adding report directory to watcher")
		watcher.Close()
		return nil, err
	}

	log.Info().Str("dir", cfg.ReportDir).Strs("patterns", cfg.Patterns).Msg("started watching report directory")
	return watcher, nil
}

// watchReports calls handle for every matching report that is created or
// written, once the file has been quiet for the settle delay. Reports are
// handled on the loop goroutine in the order they settled. It returns when
// ctx is done or the watcher is closed.
func watchReports(ctx context.Context, cfg DiskHealthReportConfig, watcher *fsnotify.Watcher, handle func(path string)) {
	delay := time.Duration(cfg.SettleDelayMs) * time.Millisecond

	// path -> time the file is considered settled
	pending := map[string]time.Time{}
	var timer *time.Timer
	var settled <-chan time.Time
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	rearm := func() {
		if timer != nil {
			timer.Stop()
			timer, settled = nil, nil
		}
		if len(pending) == 0 {
			return
		}
		var next time.Time
		for _, due := range pending {
			if next.IsZero() || due.Before(next) {
				next = due
			}
		}
		timer = time.NewTimer(time.Until(next))
		settled = timer.C
	}

	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-watcher.Events:
			if !ok {
				log.Warn().Msg("watcher events channel closed")
				return
			}
			if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) {
				continue
			}
			if !cfg.matches(event.Name) {
				log.Debug().Str("file", event.Name).Msg("ignoring file not matching report patterns")
				continue
			}
			pending[event.Name] = time.Now().Add(delay)
			rearm()
		case now := <-settled:
			for _, path := range dueReports(pending, now) {
				if ctx.Err() != nil {
					return
				}
				delete(pending, path)
				handle(path)
			}
			rearm()
		case err, ok := <-watcher.Errors:
			if !ok {
				log.Warn().Msg("watcher errors channel closed")
				return
			}
			log.Error().Err(err).Msg("report watcher encountered an error")
		}
	}
}

// dueReports returns the pending paths settled at now, oldest first.
func dueReports(pending map[string]time.Time, now time.Time) []string {
	var due []string
	for path, at := range pending {
		if !at.After(now) {
			due = append(due, path)
		}
	}
	sort.Slice(due, func(i, j int) bool {
		a, b := pending[due[i]], pending[due[j]]
		if a.Equal(b) {
			return due[i] < due[j]
		}
		return a.Before(b)
	})
	return due
}
