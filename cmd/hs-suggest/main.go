// Command hs-suggest serves the HS-code suggestion API. On startup it builds
// the lexical index from the embedded knowledge base and bootstraps the
// vector index if it is empty, then listens for suggest and benchmark
// requests. With -bench it runs the benchmark once and prints the results.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"log/slog"
	"os"

	suggest "github.com/tradegate/hs-suggest"
	"github.com/tradegate/hs-suggest/adapters"
	"github.com/tradegate/hs-suggest/benchmark"
	"github.com/tradegate/hs-suggest/clients/gemini"
	"github.com/tradegate/hs-suggest/clients/pinecone"
	"github.com/tradegate/hs-suggest/clients/voyage"
	"github.com/tradegate/hs-suggest/config"
	"github.com/tradegate/hs-suggest/indexer"
	"github.com/tradegate/hs-suggest/kb"
	"github.com/tradegate/hs-suggest/lexical"
	"github.com/tradegate/hs-suggest/service"
)

func main() {
	bench := flag.Bool("bench", false, "run the benchmark and exit")
	hybrid := flag.Bool("hybrid", false, "use hybrid dense+sparse scoring for -bench")
	flag.Parse()

	if err := run(context.Background(), *bench, *hybrid); err != nil {
		slog.Error("startup failed", "err", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, bench, hybrid bool) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	pineconeService, err := pinecone.NewService(cfg.PineconeAPIKey)
	if err != nil {
		return err
	}

	index, err := pineconeService.ForIndex(cfg.PineconeHost, cfg.PineconeNamespace)
	if err != nil {
		return err
	}

	embedder := voyage.NewEmbeddingService(cfg.VoyageAPIKey)

	entries := kb.Historical()
	if err := indexer.New(embedder, index).EnsureBuilt(ctx, entries); err != nil {
		return err
	}

	lexIndex, err := lexical.New(kb.Descriptions())
	if err != nil {
		return err
	}

	engineCfg := suggest.Config{
		Similarity: adapters.NewPineconeSimilarity(embedder, index),
		Lexical:    lexIndex,
	}
	if cfg.OracleEnabled() {
		engineCfg.Oracle = gemini.NewClient(cfg.GeminiAPIKey, cfg.GeminiModel)
		slog.Info("oracle escalation enabled", "model", cfg.GeminiModel)
	} else {
		slog.Info("oracle escalation disabled: no GEMINI_API_KEY")
	}

	engine, err := suggest.NewEngine(engineCfg)
	if err != nil {
		return err
	}

	runner := benchmark.NewRunner(engine)

	if bench {
		results, err := runner.Run(ctx, hybrid)
		if err != nil {
			return err
		}

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(results)
	}

	server := service.NewServer(engine, runner)
	slog.Info("listening", "addr", cfg.Addr)
	return server.Router().Run(cfg.Addr)
}
