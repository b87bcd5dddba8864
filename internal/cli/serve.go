package cli

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/ppedin/wikibase-api/internal/ingest"
	"github.com/ppedin/wikibase-api/internal/journal"
	"github.com/ppedin/wikibase-api/internal/metrics"
	"github.com/ppedin/wikibase-api/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP validation and ingest API",
	Long: `Serve exposes validation and ingest over HTTP:

  GET  /                    status message
  GET  /health              liveness probe
  GET  /validation/schemas  registered resource types
  POST /validation          validate and ingest an uploaded record
  POST /validation/check    validate an uploaded record only
  GET  /metrics             Prometheus metrics

Uploads are multipart forms with file and resource_type fields. Ingest also
needs label and accepts language and description.

The server stops gracefully on SIGINT or SIGTERM.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

var serveFlags struct {
	addr string
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringVar(&serveFlags.addr, "addr", "", "Listen address (default: server.addr or :8000)")
}

func runServe(cmd *cobra.Command, args []string) error {
	a, err := loadApp()
	if err != nil {
		return err
	}
	addr := a.cfg.Server.Addr
	if serveFlags.addr != "" {
		addr = serveFlags.addr
	}

	client, err := a.client()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(commandContext(cmd), os.Interrupt, syscall.SIGTERM)
	defer stop()

	j, err := journal.Open(ctx, a.cfg.JournalConfig())
	if err != nil {
		return err
	}
	defer j.Close()

	m := metrics.New()
	p := a.pipeline(
		ingest.WithKnowledgeBase(client),
		ingest.WithJournal(j),
		ingest.WithObserver(m),
	)

	if err := client.CheckConnection(ctx); err != nil {
		a.logger.Error("Wikibase is not reachable yet: %v", err)
	} else {
		a.logger.Verbose("Connected to %s", client.BaseURL())
	}

	srv := server.New(p, a.logger,
		server.WithMetrics(m),
		server.WithCORSOrigins(a.cfg.Server.CORSOrigins),
		server.WithMaxUploadBytes(a.cfg.Server.MaxUploadBytes),
	)
	return srv.Run(ctx, addr)
}
