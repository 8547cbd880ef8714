// Package cli implements the docfind command line interface using cobra.
// Services are wired lazily so commands like version never touch the
// network or the local index.
package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/docfind/internal/adapters/driven/history/sqlite"
	"github.com/custodia-labs/docfind/internal/adapters/driven/index/bleve"
	"github.com/custodia-labs/docfind/internal/adapters/driven/source/drive"
	"github.com/custodia-labs/docfind/internal/adapters/driving/httpapi"
	"github.com/custodia-labs/docfind/internal/config"
	"github.com/custodia-labs/docfind/internal/core/ports/driving"
	"github.com/custodia-labs/docfind/internal/core/services"
	"github.com/custodia-labs/docfind/internal/extractors/pdf"
	"github.com/custodia-labs/docfind/internal/logger"
)

var version = "dev"

var (
	cfgPath string
	verbose bool

	cfg *config.Config

	indexerService driving.Indexer
	searchService  driving.Searcher
	inspectService driving.Inspector

	closers []func() error
)

var rootCmd = &cobra.Command{
	Use:   "docfind",
	Short: "Index and search PDF documents from Google Drive",
	Long: `docfind ingests PDF files from a Google Drive folder, extracts their
text and indexes them into a local full-text index for ranked search.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verbose)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", "", "config file (default ~/.docfind/config.toml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
}

// Execute runs the root command and releases any opened resources.
func Execute() error {
	defer closeAll()
	return rootCmd.Execute()
}

// ensureServices wires the adapters and services on first use.
func ensureServices(ctx context.Context) error {
	if searchService != nil {
		return nil
	}

	var err error
	cfg, err = config.Load(cfgPath)
	if err != nil {
		return err
	}

	engine, err := bleve.Open(cfg.Index.Path)
	if err != nil {
		return fmt.Errorf("open search index: %w", err)
	}
	closers = append(closers, engine.Close)

	history, err := sqlite.NewStore(cfg.Index.HistoryPath)
	if err != nil {
		return fmt.Errorf("open sync history: %w", err)
	}
	closers = append(closers, history.Close)

	ts, err := drive.TokenSourceFromFiles(ctx, cfg.Drive.CredentialsPath, cfg.Drive.TokenPath)
	if err != nil {
		return fmt.Errorf("load drive credentials: %w", err)
	}
	source, err := drive.New(ctx, ts)
	if err != nil {
		return err
	}

	extractor := pdf.New()

	indexerService = services.NewIndexer(source, extractor, engine, history, cfg.Drive.FolderName, cfg.Sync.Workers)
	searchService = services.NewSearcher(engine, cfg.Search.DefaultSize, cfg.Search.MaxSize)
	inspectService = services.NewInspector(source, extractor)
	return nil
}

func newAPIServer() *httpapi.Server {
	return httpapi.NewServer(indexerService, searchService, inspectService)
}

func closeAll() {
	var errs []error
	for i := len(closers) - 1; i >= 0; i-- {
		errs = append(errs, closers[i]())
	}
	if err := errors.Join(errs...); err != nil {
		logger.Warn("Shutdown cleanup: %v", err)
	}
	closers = nil
}
