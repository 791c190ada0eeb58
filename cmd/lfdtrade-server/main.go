// Command lfdtrade-server serves the light field display trade analysis as
// a web page: a preset selector, the top view and side view diagrams, and
// the table of reference values.
//
// Usage:
//
//	lfdtrade-server [-config lfdtrade.json] [-listen :8050] [-preset T] [-trace info]
package main

import (
	"flag"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/npillmayer/lfdtrade/internal/config"
	"github.com/rs/cors"
)

func main() {
	configPath := flag.String("config", "", "JSON config file")
	listen := flag.String("listen", "", "listen address (default :8050)")
	key := flag.String("preset", "", "default preset: T, D, SF, HC or C")
	size := flag.Int("size", 0, "diagram size in pixels (default 600)")
	trace := flag.String("trace", "", "trace level: debug, info or error")
	flag.Parse()

	var cfg config.Config
	if *configPath != "" {
		var err error
		if cfg, err = config.Load(*configPath); err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
	}
	cfg.Resolve(config.Flags{Listen: *listen, Preset: *key, Size: *size, TraceLevel: *trace})
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	cfg.ApplyTraceLevel()

	srv := &http.Server{
		Addr:              cfg.Listen,
		Handler:           newHandler(cfg),
		ReadTimeout:       5 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	tracer().Infof("lfdtrade server on %s", srv.Addr)
	fmt.Fprintf(os.Stderr, "lfdtrade server on %s\n", srv.Addr)
	if err := srv.ListenAndServe(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// newHandler wires the routes and the CORS middleware.
func newHandler(cfg config.Config) http.Handler {
	s := newServer(cfg)
	mux := http.NewServeMux()
	mux.HandleFunc("/", s.pageHandler)
	mux.HandleFunc("/scene/", s.sceneHandler)
	mux.HandleFunc("/api/selection", s.selectionHandler)
	c := cors.New(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodOptions},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: false,
	})
	return c.Handler(mux)
}
