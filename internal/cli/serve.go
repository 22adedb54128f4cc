package cli

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/fortuna/fieldhouse/internal/api/rest"
	"github.com/fortuna/fieldhouse/internal/api/websocket"
	"github.com/fortuna/fieldhouse/internal/batch"
	"github.com/fortuna/fieldhouse/internal/live"
	"github.com/fortuna/fieldhouse/internal/publisher"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the REST API, websocket feed, and live scoreboard watcher",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe()
	},
}

func runServe() error {
	l, err := league()
	if err != nil {
		return err
	}

	scraper, cleanup, err := newScraper()
	if err != nil {
		return err
	}
	defer cleanup()

	// Batch job service
	jobs := batch.NewService(scraper, cfg.Workers)
	jobs.Start()
	log.Println("[serve] ✓ batch job service started")

	// REST API
	restServer := rest.NewServer(cfg.RESTPort, scraper, jobs)
	go func() {
		if err := restServer.Start(); err != nil {
			log.Printf("[serve] REST server stopped: %v", err)
		}
	}()
	log.Printf("[serve] ✓ REST API listening on :%s", cfg.RESTPort)

	// Websocket feed
	wsServer := websocket.NewServer()
	go func() {
		if err := wsServer.Start(cfg.WSPort); err != nil {
			log.Printf("[serve] websocket server stopped: %v", err)
		}
	}()
	log.Printf("[serve] ✓ websocket feed listening on :%s", cfg.WSPort)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Live watcher, with an optional Redis stream publisher.
	if cfg.LiveEnabled {
		var pub live.Publisher
		streams, err := publisher.Connect(cfg.RedisURL)
		if err != nil {
			log.Printf("[serve] ⚠️ redis streams unavailable: %v (websocket only)", err)
		} else {
			defer streams.Close()
			pub = streams
		}

		watcher := live.NewWatcher(scraper, l, cfg.LiveInterval, wsServer, pub)
		go watcher.Run(ctx)
		log.Println("[serve] ✓ live watcher started")
	}

	// Wait for interrupt
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan

	log.Println("[serve] shutting down gracefully...")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := jobs.Shutdown(shutdownCtx); err != nil {
		log.Printf("[serve] ⚠️ job service shutdown: %v", err)
	}
	if err := restServer.Shutdown(shutdownCtx); err != nil {
		log.Printf("[serve] ⚠️ REST shutdown: %v", err)
	}
	if err := wsServer.Shutdown(shutdownCtx); err != nil {
		log.Printf("[serve] ⚠️ websocket shutdown: %v", err)
	}

	log.Println("[serve] stopped")
	return nil
}
