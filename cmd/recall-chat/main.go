// Package main provides a terminal chat client over the recall engine.
// It demonstrates the stateless memory protocol end to end: the full
// conversation history and the current summary live in this process and are
// replayed to the engine on every turn, exactly the way a browser client
// would replay them to a recall-backed HTTP service.
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/entrhq/recall/pkg/config"
	"github.com/entrhq/recall/pkg/engine"
	"github.com/entrhq/recall/pkg/llm/openai"
	"github.com/entrhq/recall/pkg/retrieval"
	"github.com/entrhq/recall/pkg/tokens"
	"github.com/entrhq/recall/pkg/types"
)

const version = "0.1.0"

// CLIConfig holds command-line configuration
type CLIConfig struct {
	APIKey             string
	BaseURL            string
	Model              string
	SummarizationModel string
	RetrievalURL       string
	RetrievalAPIKey    string
	TopK               int
	MaxHistoryTokens   int
	SystemPrompt       string
	ConfigFile         string
	Tokenizer          string
	ShowStats          bool
	ShowVersion        bool
}

func main() {
	cfg := parseFlags()

	if cfg.ShowVersion {
		fmt.Printf("recall-chat v%s\n", version)
		return
	}

	ctx, cancel := context.WithCancel(context.Background())

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		fmt.Println("\n\nShutting down gracefully...")
		cancel()
	}()

	if err := run(ctx, cfg); err != nil {
		cancel()
		log.Printf("Chat failed: %v", err)
		os.Exit(1)
	}
	cancel()
}

// parseFlags parses command line flags
func parseFlags() *CLIConfig {
	cfg := &CLIConfig{}

	flag.StringVar(&cfg.APIKey, "api-key", os.Getenv("OPENAI_API_KEY"), "OpenAI API key")
	flag.StringVar(&cfg.BaseURL, "base-url", os.Getenv("OPENAI_BASE_URL"), "OpenAI API base URL")
	flag.StringVar(&cfg.Model, "model", openai.DefaultModel, "LLM model for answers")
	flag.StringVar(&cfg.SummarizationModel, "summarization-model", "", "Cheaper model for history compression (defaults to -model)")
	flag.StringVar(&cfg.RetrievalURL, "retrieval-url", "", "Vector-search service base URL (optional)")
	flag.StringVar(&cfg.RetrievalAPIKey, "retrieval-api-key", os.Getenv("RECALL_RETRIEVAL_API_KEY"), "Vector-search service API key")
	flag.IntVar(&cfg.TopK, "top-k", config.DefaultTopK, "Passages requested per retrieval call")
	flag.IntVar(&cfg.MaxHistoryTokens, "max-history-tokens", 0, "Override the history token budget (0 uses the configured default)")
	flag.StringVar(&cfg.SystemPrompt, "system", "", "Override the system prompt")
	flag.StringVar(&cfg.ConfigFile, "config", "", "Path to configuration file (YAML)")
	flag.StringVar(&cfg.Tokenizer, "tokenizer", "tiktoken", "Token estimator: tiktoken or heuristic")
	flag.BoolVar(&cfg.ShowStats, "stats", false, "Print memory stats after each turn")
	flag.BoolVar(&cfg.ShowVersion, "version", false, "Show version and exit")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Recall Chat - Conversation Memory Demo Client\n\n")
		fmt.Fprintf(os.Stderr, "Usage: recall-chat [options]\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  # Chat with memory stats visible\n")
		fmt.Fprintf(os.Stderr, "  recall-chat -stats\n\n")
		fmt.Fprintf(os.Stderr, "  # Summarize on a cheaper model, retrieve from a local index\n")
		fmt.Fprintf(os.Stderr, "  recall-chat -summarization-model gpt-4o-mini -retrieval-url http://localhost:8080\n\n")
	}

	flag.Parse()
	return cfg
}

// run builds the engine and drives the interactive loop.
func run(ctx context.Context, cfg *CLIConfig) error {
	if cfg.ConfigFile != "" {
		if err := config.Initialize(cfg.ConfigFile); err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		applyConfigFile(cfg)
	}

	if cfg.APIKey == "" {
		return fmt.Errorf("OpenAI API key required (use -api-key or OPENAI_API_KEY)")
	}

	providerOpts := []openai.ProviderOption{openai.WithModel(cfg.Model)}
	if cfg.BaseURL != "" {
		providerOpts = append(providerOpts, openai.WithBaseURL(cfg.BaseURL))
	}
	provider, err := openai.NewProvider(cfg.APIKey, providerOpts...)
	if err != nil {
		return fmt.Errorf("failed to create LLM provider: %w", err)
	}

	var retriever retrieval.Client
	if cfg.RetrievalURL != "" {
		var retrievalOpts []retrieval.HTTPOption
		if cfg.RetrievalAPIKey != "" {
			retrievalOpts = append(retrievalOpts, retrieval.WithAPIKey(cfg.RetrievalAPIKey))
		}
		client, err := retrieval.NewHTTPClient(cfg.RetrievalURL, retrievalOpts...)
		if err != nil {
			return fmt.Errorf("failed to create retrieval client: %w", err)
		}
		retriever = client
	}

	opts := []engine.Option{engine.WithTopK(cfg.TopK)}
	if config.IsInitialized() {
		opts = append(opts, engine.WithConfig(config.GetMemory().MemoryConfig()))
	}
	if cfg.SummarizationModel != "" {
		opts = append(opts, engine.WithSummarizationModel(cfg.SummarizationModel))
	}
	if cfg.SystemPrompt != "" {
		opts = append(opts, engine.WithSystemPrompt(cfg.SystemPrompt))
	}
	if est := buildEstimator(cfg); est != nil {
		opts = append(opts, engine.WithEstimator(est))
	}

	eng, err := engine.New(provider, retriever, opts...)
	if err != nil {
		return fmt.Errorf("failed to create engine: %w", err)
	}

	return chatLoop(ctx, eng, cfg)
}

// applyConfigFile overlays config-file values onto flags the user left at
// their defaults. Explicit flags win over the file.
func applyConfigFile(cfg *CLIConfig) {
	llmCfg := config.GetLLM()
	if cfg.APIKey == "" && llmCfg.APIKey != "" {
		cfg.APIKey = llmCfg.APIKey
	}
	if cfg.BaseURL == "" && llmCfg.BaseURL != "" {
		cfg.BaseURL = llmCfg.BaseURL
	}
	if cfg.Model == openai.DefaultModel && llmCfg.Model != "" {
		cfg.Model = llmCfg.Model
	}
	if cfg.SummarizationModel == "" {
		cfg.SummarizationModel = llmCfg.SummarizationModel
	}

	retrievalCfg := config.GetRetrieval()
	if cfg.RetrievalURL == "" && retrievalCfg.Endpoint != "" {
		cfg.RetrievalURL = retrievalCfg.Endpoint
	}
	if cfg.RetrievalAPIKey == "" && retrievalCfg.APIKey != "" {
		cfg.RetrievalAPIKey = retrievalCfg.APIKey
	}
	if cfg.TopK == config.DefaultTopK && retrievalCfg.TopK > 0 {
		cfg.TopK = retrievalCfg.TopK
	}
}

// buildEstimator returns the requested estimator, or nil to keep the engine
// default. A tiktoken load failure falls back to the heuristic with a notice
// rather than refusing to start.
func buildEstimator(cfg *CLIConfig) tokens.Estimator {
	switch cfg.Tokenizer {
	case "tiktoken":
		est, err := tokens.NewTiktokenEstimator(cfg.Model)
		if err != nil {
			fmt.Fprintf(os.Stderr, "tiktoken unavailable for %s, using heuristic estimator: %v\n", cfg.Model, err)
			return nil
		}
		return est
	case "heuristic":
		return tokens.NewHeuristicEstimator()
	default:
		fmt.Fprintf(os.Stderr, "unknown tokenizer %q, using heuristic estimator\n", cfg.Tokenizer)
		return nil
	}
}

// chatLoop reads questions from stdin and replays history plus summary to
// the engine each turn. That round-trip is the whole memory model: kill the
// process and the conversation is gone, because the engine kept nothing.
func chatLoop(ctx context.Context, eng *engine.Engine, cfg *CLIConfig) error {
	var history []*types.Message
	var summary *types.ConversationSummary

	fmt.Println("recall-chat - type a question, or /quit to exit")
	scanner := bufio.NewScanner(os.Stdin)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)

	for {
		select {
		case <-ctx.Done():
			return nil
		default:
		}

		fmt.Print("\nyou> ")
		if !scanner.Scan() {
			return scanner.Err()
		}
		question := strings.TrimSpace(scanner.Text())
		if question == "" {
			continue
		}
		if question == "/quit" || question == "/exit" {
			return nil
		}

		req := engine.NewRequest(question, history)
		req.Summary = summary
		if cfg.MaxHistoryTokens > 0 {
			req.MaxHistoryTokens = cfg.MaxHistoryTokens
		}

		resp, err := eng.Process(ctx, req)
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			continue
		}

		fmt.Printf("\nassistant> %s\n", resp.Answer)
		printSources(resp.Sources)
		if cfg.ShowStats {
			printStats(resp)
		}

		// Carry the turn and the updated summary forward client-side.
		history = append(history,
			types.NewUserMessage(question),
			types.NewAssistantMessage(resp.Answer))
		summary = resp.Summary
	}
}

func printSources(sources []retrieval.Passage) {
	if len(sources) == 0 {
		return
	}
	fmt.Println("\nsources:")
	for i, src := range sources {
		fmt.Printf("  [%d] (%.2f) %s\n", i+1, src.Score, firstLine(src.Content))
	}
}

func printStats(resp *engine.Response) {
	stats := resp.MemoryStats
	fmt.Printf("\nmemory: %d messages (~%d tokens), %d verbatim, %d summarized",
		stats.TotalMessages, stats.TotalTokens, stats.KeptRecent, stats.SummarizedCount)
	switch {
	case stats.SummaryCreated:
		fmt.Print(" [summary created]")
	case stats.SummaryUpdated:
		fmt.Print(" [summary updated]")
	}
	if resp.BudgetExceeded {
		fmt.Print(" [over budget]")
	}
	fmt.Println()
	if resp.Summary != nil {
		fmt.Printf("summary: %d messages compressed, ~%d tokens\n",
			resp.Summary.MessagesSummarized, resp.Summary.TokenCount)
	}
}

func firstLine(s string) string {
	if idx := strings.IndexByte(s, '\n'); idx >= 0 {
		s = s[:idx]
	}
	if len(s) > 100 {
		s = s[:100] + "..."
	}
	return s
}
