// Package loader drives the offline bulk import: it walks a directory tree
// of trademark-application XML files, parses each one, and inserts the valid
// results into the store in batches.
//
// The loader is an offline batch job, not a latency-sensitive path: it runs
// sequentially, with no internal concurrency.
package loader

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/mkarpenko/trademark-registry/backend/internal/domain"
	"github.com/mkarpenko/trademark-registry/backend/internal/metrics"
	"github.com/mkarpenko/trademark-registry/backend/internal/parser"
	"github.com/mkarpenko/trademark-registry/backend/internal/repo"
)

// DefaultBatchSize is the number of trademarks flushed per CreateMany call
// when no explicit size is configured.
const DefaultBatchSize = 1000

// xmlPattern matches the application files inside the source tree.
const xmlPattern = "*.xml"

// Stats summarizes one Run.
type Stats struct {
	// TotalFiles is the number of *.xml files discovered under the root.
	TotalFiles int
	// ProcessedFiles counts files actually read and parsed (equals
	// TotalFiles unless the run was cancelled).
	ProcessedFiles int
	// Loaded is the number of rows inserted. Lower than the number of valid
	// applications when titles were already registered.
	Loaded int64
	// Skipped counts files dropped because they failed to parse, described a
	// non-word mark, or produced an invalid application.
	Skipped int
}

// Loader parses application XML files and loads them into the store.
type Loader struct {
	log       *slog.Logger
	parser    *parser.Parser
	repo      repo.TrademarkRepo
	metrics   *metrics.Metrics
	batchSize int
}

// New constructs a Loader. A batchSize <= 0 falls back to DefaultBatchSize.
// metrics may be nil.
func New(log *slog.Logger, p *parser.Parser, r repo.TrademarkRepo, m *metrics.Metrics, batchSize int) *Loader {
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}
	return &Loader{log: log, parser: p, repo: r, metrics: m, batchSize: batchSize}
}

// Run walks root recursively, parses every *.xml file, and loads valid
// trademarks in batches. Files that fail to parse or produce an invalid
// application are logged and skipped — they never fail the run. The trailing
// partial batch is flushed.
//
// Run returns an error when the root cannot be walked, a batch insert fails,
// or the context is cancelled between files.
func (l *Loader) Run(ctx context.Context, root string) (Stats, error) {
	var stats Stats

	files, err := l.discover(root)
	if err != nil {
		return stats, fmt.Errorf("loader.Run: %w", err)
	}
	stats.TotalFiles = len(files)

	batch := make([]domain.Trademark, 0, l.batchSize)

	flush := func() error {
		if len(batch) == 0 {
			return nil
		}
		inserted, err := l.repo.CreateMany(ctx, batch)
		if err != nil {
			return fmt.Errorf("loader.Run: flush batch of %d: %w", len(batch), err)
		}
		stats.Loaded += inserted
		batch = batch[:0]
		l.log.Info(fmt.Sprintf("Processed %d of %d files", stats.ProcessedFiles, stats.TotalFiles))
		return nil
	}

	for _, path := range files {
		if err := ctx.Err(); err != nil {
			return stats, fmt.Errorf("loader.Run: %w", err)
		}

		tm, ok := l.parseFile(path)
		stats.ProcessedFiles++
		l.metrics.LoaderFiles(1)
		if !ok {
			stats.Skipped++
			continue
		}

		batch = append(batch, tm)
		if len(batch) == l.batchSize {
			if err := flush(); err != nil {
				return stats, err
			}
		}
	}

	// The source tree rarely divides evenly into batches; flush the rest.
	if err := flush(); err != nil {
		return stats, err
	}

	return stats, nil
}

// discover returns the paths of all *.xml files under root, depth-first.
func (l *Loader) discover(root string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if ok, _ := filepath.Match(xmlPattern, d.Name()); ok {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk %s: %w", root, err)
	}
	return files, nil
}

// parseFile reads and parses one application file. A false return means the
// file was logged and should be skipped.
func (l *Loader) parseFile(path string) (domain.Trademark, bool) {
	text, err := os.ReadFile(path)
	if err != nil {
		l.log.Error("cannot read application file", "file", path, "error", err)
		return domain.Trademark{}, false
	}

	res := l.parser.Parse(string(text))
	if !res.OK() {
		// Non-word marks are expected in real registry exports; only
		// structural problems are worth an error-level line.
		if res.Outcome == parser.OutcomeNotWordMark {
			l.log.Debug("skipping non-word trademark", "file", path)
		} else {
			l.log.Error("cannot parse trademark application",
				"file", path, "outcome", res.Outcome.String())
		}
		return domain.Trademark{}, false
	}

	app := res.Application
	if !app.IsValid() {
		l.log.Error("skipping invalid application", "file", path)
		return domain.Trademark{}, false
	}

	return domain.NewTrademark(
		*app.Title,
		app.Description,
		app.ApplicationNumber,
		app.ApplicationDate,
		app.RegistrationDate,
		app.ExpiryDate,
	), true
}
