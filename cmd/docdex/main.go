// Command docdex is the documentation index CLI. It ingests a
// markdown corpus into a local store and serves ranked search over
// it via the CLI, TUI, and MCP server.
package main

import (
	"fmt"
	"os"

	"github.com/docdex/docdex-cli/internal/adapters/driven/config/file"
	"github.com/docdex/docdex-cli/internal/adapters/driven/storage/memory"
	"github.com/docdex/docdex-cli/internal/adapters/driven/storage/sqlite"
	"github.com/docdex/docdex-cli/internal/adapters/driving/cli"
	"github.com/docdex/docdex-cli/internal/core/ports/driven"
	"github.com/docdex/docdex-cli/internal/core/services"
	"github.com/docdex/docdex-cli/internal/loader/filesystem"
	"github.com/docdex/docdex-cli/internal/normalisers"
	"github.com/docdex/docdex-cli/internal/normalisers/markdown"
	"github.com/docdex/docdex-cli/internal/normalisers/plaintext"
	"github.com/docdex/docdex-cli/internal/postprocessors/chunker"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	configStore, err := file.NewConfigStore("")
	if err != nil {
		return fmt.Errorf("initialising config: %w", err)
	}

	docStore, runStore, cleanup, err := buildStores(configStore)
	if err != nil {
		return err
	}
	defer cleanup()

	searchService := services.NewSearchEngine(docStore, searchOptions(configStore)...)
	documentService := services.NewDocumentService(docStore)
	ingestService := services.NewIngestOrchestrator(
		filesystem.NewFactory(loaderOptions(configStore)...),
		buildNormaliser(),
		chunker.New(chunkOptions(configStore)...),
		docStore,
		runStore,
	)

	cli.SetServices(cli.Services{
		Search:   searchService,
		Document: documentService,
		Ingest:   ingestService,
		Config:   configStore,
	})

	return cli.Execute()
}

// buildStores opens the configured storage backend. SQLite is the
// default; storage.backend = "memory" gives an ephemeral store for
// scripted one-shot use.
func buildStores(configStore driven.ConfigStore) (driven.DocumentStore, driven.IngestRunStore, func(), error) {
	if configStore.GetString("storage.backend") == "memory" {
		return memory.NewDocumentStore(), nil, func() {}, nil
	}

	store, err := sqlite.NewStore(configStore.GetString("storage.data_dir"))
	if err != nil {
		return nil, nil, nil, fmt.Errorf("opening store: %w", err)
	}
	return store.DocumentStore(), store.IngestRunStore(), func() { _ = store.Close() }, nil
}

// buildNormaliser routes each corpus file to a format-specific
// normaliser, with markdown as the fallback.
func buildNormaliser() driven.Normaliser {
	registry := normalisers.NewRegistry(markdown.New())
	registry.Register(".txt", plaintext.New())
	return registry
}

func searchOptions(configStore driven.ConfigStore) []services.SearchOption {
	var opts []services.SearchOption
	if boost := configStore.GetFloat("search.heading_boost"); boost > 0 {
		opts = append(opts, services.WithHeadingBoost(boost))
	}
	if weight := configStore.GetFloat("search.position_weight"); weight > 0 {
		opts = append(opts, services.WithPositionWeight(weight))
	}
	if length := configStore.GetInt("search.snippet_length"); length > 0 {
		opts = append(opts, services.WithSnippetLength(length))
	}
	return opts
}

func loaderOptions(configStore driven.ConfigStore) []filesystem.Option {
	var opts []filesystem.Option
	if exts := configStore.GetStringSlice("corpus.extensions"); len(exts) > 0 {
		opts = append(opts, filesystem.WithExtensions(exts))
	}
	return opts
}

func chunkOptions(configStore driven.ConfigStore) []chunker.Option {
	var opts []chunker.Option
	if maxLen := configStore.GetInt("chunk.max_length"); maxLen > 0 {
		opts = append(opts, chunker.WithMaxLength(maxLen))
	}
	if overlap := configStore.GetInt("chunk.overlap"); overlap > 0 {
		opts = append(opts, chunker.WithOverlap(overlap))
	}
	return opts
}
