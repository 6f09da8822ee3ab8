// Package app wires the fetch → sanitize → guard → sink pipeline and exposes
// the host-facing download API.
package app

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/quantmind-br/blitzpack/internal/cache"
	"github.com/quantmind-br/blitzpack/internal/config"
	"github.com/quantmind-br/blitzpack/internal/domain"
	"github.com/quantmind-br/blitzpack/internal/fetcher"
	"github.com/quantmind-br/blitzpack/internal/sanitize"
	"github.com/quantmind-br/blitzpack/internal/sink"
	"github.com/quantmind-br/blitzpack/internal/utils"
)

// Orchestrator coordinates project downloads. It holds no per-invocation
// state: each call owns a fresh budget and deadline, so concurrent calls on
// one Orchestrator are safe.
type Orchestrator struct {
	config   *config.Config
	fetcher  domain.Fetcher
	retrier  *Retrier
	cache    domain.Cache
	logger   *utils.Logger
	progress bool
}

// OrchestratorOptions contains options for creating an orchestrator
type OrchestratorOptions struct {
	Config   *config.Config
	Verbose  bool
	Progress bool
	// Fetcher overrides the default API client, for tests
	Fetcher domain.Fetcher
}

// NewOrchestrator creates a new orchestrator with the given configuration
func NewOrchestrator(opts OrchestratorOptions) (*Orchestrator, error) {
	cfg := opts.Config
	if cfg == nil {
		return nil, fmt.Errorf("config is required")
	}

	logLevel := cfg.Logging.Level
	if opts.Verbose {
		logLevel = "debug"
	}
	logger := utils.NewLogger(utils.LoggerOptions{
		Level:   logLevel,
		Format:  cfg.Logging.Format,
		Verbose: opts.Verbose,
	})

	var respCache domain.Cache
	if cfg.Cache.Enabled {
		c, err := cache.NewBadgerCache(cache.Options{
			Directory: utils.ExpandPath(cfg.Cache.Directory),
		})
		if err != nil {
			return nil, fmt.Errorf("failed to open response cache: %w", err)
		}
		respCache = c
	}

	f := opts.Fetcher
	if f == nil {
		f = fetcher.NewClient(fetcher.ClientOptions{
			BaseURL:     cfg.API.BaseURL,
			Timeout:     cfg.API.Timeout,
			EnableCache: cfg.Cache.Enabled,
			CacheTTL:    cfg.Cache.TTL,
			Cache:       respCache,
			Logger:      logger,
		})
	}

	retrier := NewRetrier(RetrierOptions{
		MaxRetries:      cfg.Retry.MaxRetries,
		InitialInterval: cfg.Retry.InitialInterval,
		MaxInterval:     cfg.Retry.MaxInterval,
	})

	return &Orchestrator{
		config:   cfg,
		fetcher:  f,
		retrier:  retrier,
		cache:    respCache,
		logger:   logger,
		progress: opts.Progress && !opts.Verbose,
	}, nil
}

// DownloadToDir fetches a project and writes its files under outputDir.
// arg may be an editor URL or a bare project identifier. When outputDir is
// empty the identifier is used as the directory name. Returns the output
// root. Partial writes are not rolled back on failure.
func (o *Orchestrator) DownloadToDir(ctx context.Context, arg, outputDir string) (string, error) {
	projectID, err := utils.ProjectIDOrURL(arg)
	if err != nil {
		return "", err
	}

	if outputDir == "" {
		outputDir = projectID
	}

	tree, err := o.fetchTree(ctx, projectID)
	if err != nil {
		return "", err
	}

	fs, err := sink.NewFilesystem(outputDir)
	if err != nil {
		return "", err
	}

	if err := o.drain(tree, fs); err != nil {
		return "", err
	}
	if err := fs.Close(); err != nil {
		return "", err
	}

	o.logger.Info().
		Str("project", projectID).
		Str("output", outputDir).
		Int("files", fs.Count()).
		Msg("Project written")

	return outputDir, nil
}

// DownloadToZip fetches a project and packages it as an in-memory zip
// archive. The returned archive is finalized: its Bytes, Reader and Response
// forms are all backed by the same artifact.
func (o *Orchestrator) DownloadToZip(ctx context.Context, arg string) (*sink.Archive, error) {
	projectID, err := utils.ProjectIDOrURL(arg)
	if err != nil {
		return nil, err
	}

	tree, err := o.fetchTree(ctx, projectID)
	if err != nil {
		return nil, err
	}

	archive := sink.NewArchive()
	if err := o.drain(tree, archive); err != nil {
		return nil, err
	}
	if err := archive.Close(); err != nil {
		return nil, err
	}

	o.logger.Info().
		Str("project", projectID).
		Int("files", archive.Count()).
		Int("bytes", len(archive.Bytes())).
		Msg("Archive built")

	return archive, nil
}

// ProjectID resolves an editor URL or bare identifier to the identifier
func (o *Orchestrator) ProjectID(arg string) (string, error) {
	return utils.ProjectIDOrURL(arg)
}

// fetchTree runs the fetch, wrapped in the orchestrator-level retry policy
func (o *Orchestrator) fetchTree(ctx context.Context, projectID string) (*domain.ProjectTree, error) {
	start := time.Now()

	tree, err := RetryWithValue(ctx, o.retrier, func() (*domain.ProjectTree, error) {
		return o.fetcher.FetchProject(ctx, projectID)
	})
	if err != nil {
		return nil, err
	}

	o.logger.Debug().
		Str("project", projectID).
		Dur("elapsed", time.Since(start)).
		Bool("from_cache", tree.FromCache).
		Msg("Fetch complete")

	return tree, nil
}

// drain feeds the tree through the sanitizer and size guard into the sink.
// Entries are processed sequentially in sorted path order so that archive
// construction and error selection are deterministic regardless of JSON map
// iteration order.
func (o *Orchestrator) drain(tree *domain.ProjectTree, s domain.Sink) error {
	entries := o.sanitizeTree(tree)

	budget := sanitize.NewBudget(o.config.MaxFileSizeBytes(), o.config.MaxTotalSizeBytes())

	var bar interface{ Add(int) error }
	if o.progress {
		bar = utils.NewProgressBar(len(entries), utils.DescWriting)
	}

	for _, entry := range entries {
		if err := budget.Accept(entry.Path, entry.Size); err != nil {
			return err
		}
		if err := s.Add(entry); err != nil {
			return err
		}
		if bar != nil {
			_ = bar.Add(1)
		}
	}

	return nil
}

// sanitizeTree filters the raw tree down to accepted file entries in sorted
// path order. Rejections are skips, never errors: an untrusted tree with
// unsafe paths is an expected condition.
func (o *Orchestrator) sanitizeTree(tree *domain.ProjectTree) []domain.SanitizedEntry {
	rawPaths := make([]string, 0, len(tree.Files))
	for rawPath := range tree.Files {
		rawPaths = append(rawPaths, rawPath)
	}
	sort.Strings(rawPaths)

	entries := make([]domain.SanitizedEntry, 0, len(rawPaths))
	seen := make(map[string]bool, len(rawPaths))

	for _, rawPath := range rawPaths {
		file := tree.Files[rawPath]
		if !file.IsFile() {
			continue
		}

		if sanitize.Excluded(rawPath) {
			o.logger.Debug().Str("path", rawPath).Msg("Skipping excluded path")
			continue
		}

		normalized, ok := sanitize.NormalizePath(rawPath)
		if !ok {
			o.logger.Debug().Str("path", rawPath).Msg("Skipping unsafe path")
			continue
		}

		// Two raw paths can flatten to the same normalized path; first wins
		if seen[normalized] {
			o.logger.Debug().Str("path", rawPath).Str("normalized", normalized).Msg("Skipping duplicate path")
			continue
		}
		seen[normalized] = true

		entries = append(entries, domain.SanitizedEntry{
			Path:     normalized,
			Contents: file.Contents,
			Size:     int64(len(file.Contents)),
		})
	}

	sort.Slice(entries, func(i, j int) bool { return entries[i].Path < entries[j].Path })

	return entries
}

// Close releases orchestrator resources
func (o *Orchestrator) Close() error {
	if err := o.fetcher.Close(); err != nil {
		return err
	}
	if o.cache != nil {
		return o.cache.Close()
	}
	return nil
}
