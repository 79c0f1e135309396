// ABOUTME: CLI entrypoint for the Mystical Journeys travel oracle site with server and plan modes.
// ABOUTME: Wires configuration, the oracle registry, the HTTP server, and signal handling together.

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/nyghtowl/mystical-journeys/config"
	"github.com/nyghtowl/mystical-journeys/llm"
	"github.com/nyghtowl/mystical-journeys/oracle"
	"github.com/nyghtowl/mystical-journeys/web"
)

var version = "dev"

type cliConfig struct {
	addr        string
	showVersion bool

	// plan mode runs a comparison from the terminal against a running
	// server instead of starting one.
	planMode    bool
	serverURL   string
	destination string
	days        int
	budget      string
	interests   string
	providers   string
}

func main() {
	// Missing .env is fine; the environment may already be populated.
	_ = godotenv.Load()

	cfg := parseFlags()

	if cfg.showVersion {
		fmt.Printf("journeys %s\n", version)
		os.Exit(0)
	}

	os.Exit(run(cfg))
}

func parseFlags() cliConfig {
	var cfg cliConfig

	fs := flag.NewFlagSet("journeys", flag.ContinueOnError)
	fs.StringVar(&cfg.addr, "addr", "", "Listen address (overrides JOURNEYS_BIND)")
	fs.BoolVar(&cfg.showVersion, "version", false, "Print version and exit")

	fs.BoolVar(&cfg.planMode, "plan", false, "Run a comparison from the terminal instead of serving")
	fs.StringVar(&cfg.serverURL, "server-url", "http://127.0.0.1:8000", "Server to query in plan mode")
	fs.StringVar(&cfg.destination, "destination", "", "Realm to travel to (plan mode)")
	fs.IntVar(&cfg.days, "days", oracle.DefaultDays, "Quest duration in days (plan mode)")
	fs.StringVar(&cfg.budget, "budget", "moderate", "Budget tier: budget, moderate, luxury (plan mode)")
	fs.StringVar(&cfg.interests, "interests", "general adventure", "Comma-separated interests (plan mode)")
	fs.StringVar(&cfg.providers, "providers", "openai,claude,ollama", "Comma-separated oracles to compare (plan mode)")

	if err := fs.Parse(os.Args[1:]); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(0)
		}
		os.Exit(2)
	}

	return cfg
}

func run(cfg cliConfig) int {
	if cfg.planMode {
		return runPlan(cfg)
	}
	return runServer(cfg)
}

func runServer(cfg cliConfig) int {
	envCfg, err := config.FromEnv()
	if err != nil {
		fmt.Fprintf(os.Stderr, "journeys: %v\n", err)
		return 1
	}
	if cfg.addr != "" {
		envCfg.Bind = cfg.addr
	}

	catalog, err := config.LoadCatalog()
	if err != nil {
		fmt.Fprintf(os.Stderr, "journeys: %v\n", err)
		return 1
	}

	registry := buildRegistry(envCfg)
	for _, p := range registry.All() {
		log.Printf("oracle registered key=%s name=%q available=%v", p.Key(), p.Name(), p.Available())
	}

	srv, err := web.NewServer(web.ServerConfig{
		Addr:            envCfg.Bind,
		Registry:        registry,
		Catalog:         catalog,
		CompareTimeout:  envCfg.CompareTimeout,
		GenerateTimeout: envCfg.GenerateTimeout,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "journeys: %v\n", err)
		return 1
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("server listening addr=%s", envCfg.Bind)
		errCh <- srv.ListenAndServe()
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		fmt.Fprintf(os.Stderr, "journeys: server error: %v\n", err)
		return 1
	case sig := <-sigCh:
		log.Printf("shutting down signal=%s", sig)
		return 0
	}
}

// buildRegistry constructs every oracle in canonical order. Oracles with
// missing keys or unreachable services stay registered but unavailable
// so the UI can show their status.
func buildRegistry(cfg *config.Config) *llm.Registry {
	openAI := llm.NewOpenAIOracle(cfg.OpenAIAPIKey, llm.WithOpenAIModel(cfg.OpenAIModel))
	claude := llm.NewClaudeOracle(cfg.AnthropicAPIKey, llm.WithClaudeModel(cfg.ClaudeModel))

	ollama := llm.NewOllamaOracle(cfg.OllamaBaseURL, cfg.OllamaModel)
	ollama.Probe(context.Background())

	providers := []llm.Provider{openAI, claude, ollama}
	if cfg.EnableLorem {
		providers = append(providers, llm.NewLoremOracle(cfg.LoremDelay))
	}
	return llm.NewRegistry(providers...)
}

func runPlan(cfg cliConfig) int {
	if cfg.destination == "" {
		fmt.Fprintln(os.Stderr, "journeys: -plan requires -destination")
		return 2
	}

	req := oracle.ComparisonRequest{
		Destination: cfg.destination,
		Days:        cfg.days,
		Budget:      cfg.budget,
		Interests:   splitList(cfg.interests),
		Providers:   splitList(cfg.providers),
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	client := oracle.NewClient(cfg.serverURL)
	fmt.Printf("Consulting the oracles about %s...\n\n", cfg.destination)

	board, err := client.Compare(ctx, req, oracle.WithPanelObserver(func(p oracle.Panel) {
		switch p.Status {
		case oracle.PanelComplete:
			fmt.Printf("%s answered.\n", p.Name)
		case oracle.PanelError:
			fmt.Printf("%s failed: %s\n", p.Name, p.Message)
		case oracle.PanelTimedOut:
			fmt.Printf("%s did not answer in time.\n", p.Name)
		}
	}))
	if err != nil {
		fmt.Fprintf(os.Stderr, "journeys: %v\n", err)
		return 1
	}

	fmt.Println()
	for _, p := range board.Panels() {
		fmt.Printf("=== %s ===\n", p.Name)
		switch p.Status {
		case oracle.PanelComplete:
			fmt.Println(p.Raw)
		case oracle.PanelError:
			fmt.Printf("error: %s\n", p.Message)
		case oracle.PanelTimedOut:
			fmt.Println("timed out")
		default:
			fmt.Println("no answer")
		}
		fmt.Println()
	}
	return 0
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
