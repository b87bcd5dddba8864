package journal

import (
	"context"
	"fmt"

	"github.com/ppedin/wikibase-api/pkg/wbapi"
)

// Driver selects a journal backend.
type Driver string

const (
	DriverFile     Driver = "file"
	DriverPostgres Driver = "postgres"
	DriverNone     Driver = "none"
)

// Config selects and locates a journal backend.
type Config struct {
	Driver Driver
	Path   string // file driver; defaults to wbapi.DefaultJournalPath
	DSN    string // postgres driver
}

// Validate checks that the selected driver has what it needs.
func (c Config) Validate() error {
	switch c.Driver {
	case "", DriverFile, DriverNone:
		return nil
	case DriverPostgres:
		if c.DSN == "" {
			return fmt.Errorf("%w: journal driver postgres requires a dsn", wbapi.ErrInvalidConfig)
		}
		return nil
	default:
		return fmt.Errorf("%w: unknown journal driver %q (want file, postgres or none)", wbapi.ErrInvalidConfig, c.Driver)
	}
}

// Open creates the configured journal. An empty driver means file.
func Open(ctx context.Context, cfg Config) (Journal, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	switch cfg.Driver {
	case DriverNone:
		return Null{}, nil
	case DriverPostgres:
		return OpenPostgres(ctx, cfg.DSN)
	default:
		path := cfg.Path
		if path == "" {
			path = wbapi.DefaultJournalPath
		}
		return OpenFile(path)
	}
}
