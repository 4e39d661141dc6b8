// Command recipebench manages hybrid-search collections, uploads recipe
// corpora, runs search regression tests, and serves the dashboard.
//
// Usage:
//
//	recipebench collection [-recreate] [-check]
//	recipebench upload -file recipes.json
//	recipebench test [-ids test_1,test_2]
//	recipebench serve
//
// Configuration comes from the environment; a .env file in the working
// directory is loaded first.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"go.uber.org/fx"

	"github.com/searchlab/recipebench/dashboard"
	"github.com/searchlab/recipebench/embedding"
	"github.com/searchlab/recipebench/evaluator"
	"github.com/searchlab/recipebench/loader"
	"github.com/searchlab/recipebench/logger"
	"github.com/searchlab/recipebench/metrics"
	"github.com/searchlab/recipebench/qdrant"
	"github.com/searchlab/recipebench/teststore"
	"github.com/searchlab/recipebench/tracer"
	"github.com/searchlab/recipebench/vectordb"
)

func main() {
	// Missing .env is fine; the environment may be set directly.
	_ = godotenv.Load()

	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	var err error
	switch os.Args[1] {
	case "collection":
		err = runCollection(os.Args[2:])
	case "upload":
		err = runUpload(os.Args[2:])
	case "test":
		err = runTest(os.Args[2:])
	case "serve":
		runServe()
		return
	default:
		usage()
		os.Exit(2)
	}

	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, `usage: recipebench <command> [flags]

commands:
  collection   create the hybrid collection (-recreate to drop first, -check to report status)
  upload       embed and upsert a recipe corpus (-file path)
  test         run stored regression tests (-ids comma-separated subset)
  serve        start the dashboard and metrics servers`)
}

// stack bundles the manually wired dependencies the one-shot commands need.
type stack struct {
	log      *logger.Logger
	embedder *embedding.Client
	client   *qdrant.QdrantClient
	db       vectordb.Service
}

func buildStack() (*stack, error) {
	log := logger.NewLoggerClient(logger.NewConfig())

	embedder, err := embedding.NewClient(embedding.NewConfig())
	if err != nil {
		return nil, err
	}

	client, err := qdrant.NewQdrantClient(qdrant.NewConfig())
	if err != nil {
		return nil, err
	}

	return &stack{
		log:      log,
		embedder: embedder,
		client:   client,
		db:       qdrant.NewServiceAdapter(client),
	}, nil
}

func (s *stack) close() {
	_ = s.client.Close()
	_ = s.embedder.Close()
}

func runCollection(args []string) error {
	fs := flag.NewFlagSet("collection", flag.ExitOnError)
	recreate := fs.Bool("recreate", false, "drop the collection before creating it")
	check := fs.Bool("check", false, "only report collection status")
	if err := fs.Parse(args); err != nil {
		return err
	}

	s, err := buildStack()
	if err != nil {
		return err
	}
	defer s.close()

	ctx := context.Background()
	name := s.client.DefaultCollection()

	if *check {
		info, err := s.db.GetCollection(ctx, name)
		if err != nil {
			return err
		}
		fmt.Printf("collection %s: status=%s points=%d dim=%d distance=%s\n",
			info.Name, info.Status, info.Points, info.VectorSize, info.Distance)
		return nil
	}

	dim := uint64(s.embedder.Dimensions())
	if err := s.db.EnsureCollection(ctx, name, dim, *recreate); err != nil {
		return err
	}
	fmt.Printf("collection %s ready (dense %dd + sparse, model %s)\n", name, dim, s.embedder.ModelName())
	return nil
}

func runUpload(args []string) error {
	fs := flag.NewFlagSet("upload", flag.ExitOnError)
	file := fs.String("file", "", "recipe corpus JSON file")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *file == "" {
		return fmt.Errorf("upload requires -file")
	}

	corpus, err := loader.LoadCorpus(*file)
	if err != nil {
		return err
	}

	s, err := buildStack()
	if err != nil {
		return err
	}
	defer s.close()

	ctx := context.Background()
	name := s.client.DefaultCollection()

	dim := uint64(s.embedder.Dimensions())
	if err := s.db.EnsureCollection(ctx, name, dim, false); err != nil {
		return err
	}

	uploader := loader.NewUploader(s.embedder, s.db, s.log)
	if err := uploader.Upload(ctx, name, corpus); err != nil {
		return err
	}
	fmt.Printf("uploaded %d recipes to %s\n", len(corpus.Recipes), name)
	return nil
}

func runTest(args []string) error {
	fs := flag.NewFlagSet("test", flag.ExitOnError)
	ids := fs.String("ids", "", "comma-separated test ids to run (default all)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	store, err := teststore.NewStore(teststore.NewConfig())
	if err != nil {
		return err
	}

	tests := store.List()
	if *ids != "" {
		want := make(map[string]struct{})
		for _, id := range strings.Split(*ids, ",") {
			want[strings.TrimSpace(id)] = struct{}{}
		}
		filtered := tests[:0]
		for _, tc := range tests {
			if _, ok := want[tc.ID]; ok {
				filtered = append(filtered, tc)
			}
		}
		tests = filtered
	}
	if len(tests) == 0 {
		return fmt.Errorf("no tests to run (file: %s)", store.Path())
	}

	s, err := buildStack()
	if err != nil {
		return err
	}
	defer s.close()

	eval := evaluator.NewEvaluator(evaluator.EvaluatorParams{
		Embedder: s.embedder,
		DB:       s.db,
		Config:   evaluator.NewConfig(),
		Logger:   s.log,
	})

	report := eval.Run(context.Background(), tests)
	report.WriteText(os.Stdout)
	return nil
}

func runServe() {
	app := fx.New(
		logger.FXModule,
		fx.Provide(func(l *logger.Logger) tracer.Logger { return l }),
		tracer.FXModule,
		metrics.FXModule,
		embedding.FXModule,
		qdrant.FXModule,
		teststore.FXModule,
		evaluator.FXModule,
		loader.FXModule,
		dashboard.FXModule,
	)
	app.Run()
}
