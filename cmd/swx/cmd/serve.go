package cmd

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/psantana5/switchcase/internal/machine"
	"github.com/psantana5/switchcase/internal/observe"
	"github.com/psantana5/switchcase/pkg/metrics"
)

var (
	serveListen   string
	serveInterval time.Duration
	serveStart    string
)

var serveCmd = &cobra.Command{
	Use:   "serve <machine.yaml>",
	Short: "Re-run a machine on an interval and expose Prometheus metrics",
	Long: `Serve keeps re-running a machine on a fixed interval and exposes
activation metrics (plus host gauges) on /metrics for scraping.

Example:
  swx serve examples/loop.yaml
  swx serve examples/loop.yaml --interval 5s --listen :9105`,
	Args: cobra.ExactArgs(1),
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVar(&serveListen, "listen", "", "metrics listen address (default from config or :9105)")
	serveCmd.Flags().DurationVar(&serveInterval, "interval", 10*time.Second, "how often to re-run the machine")
	serveCmd.Flags().StringVar(&serveStart, "start", "", "starting reference for each run")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := machine.Load(args[0])
	if err != nil {
		return err
	}

	if serveListen == "" {
		serveListen = viper.GetString("listen_addr")
	}

	logger := log.New(os.Stdout, "[serve] ", log.LstdFlags)

	rec := metrics.NewRecorder()
	m, err := machine.New(cfg, rec, logger)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	stats := observe.NewStats(rec.Registry(), 15*time.Second, logger)
	go stats.Start(ctx)

	router := mux.NewRouter()
	router.Handle("/metrics", rec.Handler())

	srv := &http.Server{Addr: serveListen, Handler: router}
	go func() {
		logger.Printf("metrics listening on %s", serveListen)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Printf("metrics server failed: %v", err)
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	runOnce := func() {
		rep, err := m.Run(serveStart, 0)
		if err != nil {
			logger.Printf("run failed: %v", err)
			return
		}
		logger.Printf("run finished: steps=%d stop=%s elapsed=%s", len(rep.Steps), rep.Stop, rep.Elapsed)
	}

	logger.Printf("serving machine %q every %s", m.Name(), serveInterval)
	runOnce()

	ticker := time.NewTicker(serveInterval)
	defer ticker.Stop()

	for {
		select {
		case sig := <-sigChan:
			logger.Printf("received %v, shutting down", sig)
			shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer shutdownCancel()
			return srv.Shutdown(shutdownCtx)
		case <-ticker.C:
			runOnce()
		}
	}
}
