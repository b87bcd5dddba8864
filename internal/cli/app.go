package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/ppedin/wikibase-api/internal/config"
	"github.com/ppedin/wikibase-api/internal/detect"
	"github.com/ppedin/wikibase-api/internal/ingest"
	"github.com/ppedin/wikibase-api/internal/logging"
	"github.com/ppedin/wikibase-api/internal/retry"
	"github.com/ppedin/wikibase-api/internal/schema"
	"github.com/ppedin/wikibase-api/internal/wikibase"
	"github.com/ppedin/wikibase-api/internal/xmldoc"
	"github.com/ppedin/wikibase-api/pkg/wbapi"
)

// app holds what commands share once flags and configuration are resolved.
type app struct {
	cfg      *config.Config
	logger   wbapi.Logger
	registry *schema.Registry
	checker  *xmldoc.Checker
}

// loadApp resolves configuration from the working directory and the
// persistent flags.
func loadApp() (*app, error) {
	dir, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("failed to get working directory: %w", err)
	}
	cfg, err := config.Resolve(dir, rootFlags.configPath)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	registry, err := newRegistry(cfg)
	if err != nil {
		return nil, err
	}

	return &app{
		cfg:      cfg,
		logger:   newLogger(cfg, rootFlags.verbose || cfg.Log.Verbose),
		registry: registry,
		checker:  xmldoc.NewChecker(xmldoc.WithMaxSize(int(cfg.Server.MaxUploadBytes))),
	}, nil
}

func newLogger(cfg *config.Config, verbose bool) wbapi.Logger {
	if cfg.Log.Format == config.LogFormatJSON {
		return logging.NewJSONLogger(os.Stderr, verbose)
	}
	return logging.NewConsoleLogger(verbose)
}

// newRegistry builds the resource type registry with the configured property overrides.
func newRegistry(cfg *config.Config) (*schema.Registry, error) {
	catalog := detect.DefaultCatalog()
	props, err := schema.DefaultProperties().WithOverrides(catalog, cfg.Properties)
	if err != nil {
		return nil, err
	}
	return schema.NewRegistry(catalog, props, schema.DefaultEntries(catalog))
}

// client creates the Wikibase client. Reads are retried only when
// wikibase.retry_attempts is set.
func (a *app) client() (*wikibase.Client, error) {
	wc, err := a.cfg.WikibaseClientConfig()
	if err != nil {
		return nil, err
	}

	opts := []wikibase.Option{wikibase.WithLogger(a.logger)}
	if n := a.cfg.Wikibase.RetryAttempts; n > 0 {
		exec := retry.NewExecutor(
			retry.NewHTTPErrorClassifier(),
			retry.NewExponentialBackoff(n,
				retry.WithInitialDelay(wbapi.DefaultRetryInitialDelay),
				retry.WithMaxDelay(wbapi.DefaultRetryMaxDelay),
			),
		).WithOnRetry(func(attempt int, err error, delay time.Duration) {
			a.logger.Verbose("Retry %d/%d in %s: %v", attempt+1, n, delay.Round(time.Millisecond), err)
		})
		opts = append(opts, wikibase.WithRetry(exec))
	}
	return wikibase.NewClient(wc, opts...)
}

// pipeline creates a pipeline using the configured label language.
func (a *app) pipeline(opts ...ingest.Option) *ingest.Pipeline {
	base := []ingest.Option{ingest.WithLanguage(a.cfg.Language())}
	return ingest.NewPipeline(a.registry, a.checker, a.logger, append(base, opts...)...)
}
