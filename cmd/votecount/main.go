// Command votecount computes election results from semicolon-delimited
// ballot files using the Borda Count method.
//
// With file arguments it tallies each file once and exits. Without
// arguments it runs an interactive session: it lists the vote files in
// the current directory, prompts for a filename, and displays the ranked
// tally or the validation error, repeating until EOF or "quit".
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/codetown/votecount/infrastructure/middleware"
	"github.com/codetown/votecount/infrastructure/textfile"
	"github.com/codetown/votecount/internal/application"
	"github.com/codetown/votecount/internal/domain"
	"github.com/codetown/votecount/internal/ports"
)

func main() {
	configPath := flag.String("config", "", "Path to a YAML config file")
	flag.Parse()

	cfg := application.DefaultConfig()
	if *configPath != "" {
		loaded, err := application.LoadConfig(*configPath)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(2)
		}
		cfg = loaded
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: cfg.Logging.SlogLevel(),
	}))
	slog.SetDefault(logger)

	shell, err := newShell(cfg, logger)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	ctx := context.Background()
	if args := flag.Args(); len(args) > 0 {
		os.Exit(shell.runOnce(ctx, args))
	}
	os.Exit(shell.runInteractive(ctx))
}

// shell is the presentation layer: it owns no vote processing logic and
// only relays file paths in and rendered results or errors out.
type shell struct {
	cfg       application.Config
	logger    *slog.Logger
	processor *application.Processor
	metrics   ports.MetricsCollector
}

func newShell(cfg application.Config, logger *slog.Logger) (*shell, error) {
	reader, err := textfile.NewReader(textfile.ReaderConfig{
		MaxLineBytes: cfg.Files.MaxLineBytes,
	})
	if err != nil {
		return nil, err
	}

	stages, err := application.DefaultUnits()
	if err != nil {
		return nil, err
	}

	var collector ports.MetricsCollector
	if cfg.Metrics.Enabled {
		collector = middleware.NewPrometheusMetrics()
		stages = middleware.ObserveAll(stages, collector)
	}

	opts := []application.Option{
		application.WithLogger(logger),
		application.WithUnits(stages...),
	}
	if cfg.Cache.Enabled {
		opts = append(opts, application.WithCache())
	}

	processor, err := application.NewProcessor(reader, opts...)
	if err != nil {
		return nil, err
	}

	return &shell{
		cfg:       cfg,
		logger:    logger,
		processor: processor,
		metrics:   collector,
	}, nil
}

// load runs one pipeline pass and renders the outcome for display.
// The returned bool reports success.
func (s *shell) load(ctx context.Context, path string) (string, bool) {
	result, err := s.processor.LoadFile(ctx, path)
	if err != nil {
		s.countLoad("error", string(domain.KindOf(err)))
		return domain.DisplayError(err), false
	}
	s.countLoad("success", "")
	return result.Display(), true
}

func (s *shell) countLoad(status, kind string) {
	if s.metrics == nil {
		return
	}
	s.metrics.RecordCounter("votecount_loads_total", 1,
		map[string]string{"status": status, "kind": kind})
}

// runOnce tallies each argument path and exits non-zero if any load
// failed.
func (s *shell) runOnce(ctx context.Context, paths []string) int {
	code := 0
	for _, path := range paths {
		out, ok := s.load(ctx, path)
		if !ok {
			code = 1
		}
		fmt.Print(out)
	}
	return code
}

// runInteractive mirrors the original application's load loop: list the
// vote files in the working directory, prompt for one, display the tally
// or error, and repeat.
func (s *shell) runInteractive(ctx context.Context) int {
	if s.cfg.Metrics.Enabled {
		go s.serveMetrics()
	}

	fmt.Println("Codetown Vote Display")
	s.listFiles()

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("Please enter the name of the file to open (or \"quit\"): ")
		if !scanner.Scan() {
			fmt.Println()
			return 0
		}
		name := strings.TrimSpace(scanner.Text())
		switch name {
		case "":
			// No file selected is a shell-level precondition, not a
			// pipeline error.
			fmt.Println("No file currently selected.")
			continue
		case "quit", "exit":
			return 0
		}

		out, _ := s.load(ctx, name)
		fmt.Print(out)
	}
}

// listFiles prints the vote files available in the working directory.
func (s *shell) listFiles() {
	names, err := textfile.ListVoteFiles(".", s.cfg.Files.Extension)
	if err != nil {
		s.logger.Warn("could not list vote files", "error", err)
		return
	}
	if len(names) == 0 {
		fmt.Printf("No %s files found in the current directory.\n", s.cfg.Files.Extension)
		return
	}
	fmt.Println("Vote files in the current directory:")
	for _, name := range names {
		fmt.Printf("  %s\n", name)
	}
}

// serveMetrics exposes the Prometheus endpoint for the lifetime of the
// interactive session.
func (s *shell) serveMetrics() {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	server := &http.Server{
		Addr:              s.cfg.Metrics.Addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
	s.logger.Info("serving metrics", "addr", s.cfg.Metrics.Addr)
	if err := server.ListenAndServe(); err != nil {
		s.logger.Warn("metrics server stopped", "error", err)
	}
}
