// Command export writes stored gene–disease associations to stdout or a file
// as a tab-separated table.
//
// Flags:
//
//	--source      gencc or panelapp (default: both)
//	--gene        HGNC ID or gene symbol
//	--disease     disease ID matched against the primary and other IDs
//	--submitter   submitter name
//	--out         output file (default: stdout)
//	--counts      log per-source row counts and exit
//	--config      path to YAML config file
//
// Exit codes: 0 = success, 1 = error.
package main

import (
	"context"
	"flag"
	"io"
	"log"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/heartmarshall/genedisease-ingest/internal/adapter/postgres"
	"github.com/heartmarshall/genedisease-ingest/internal/adapter/postgres/association"
	"github.com/heartmarshall/genedisease-ingest/internal/app"
	"github.com/heartmarshall/genedisease-ingest/internal/app/export"
	"github.com/heartmarshall/genedisease-ingest/internal/config"
	"github.com/heartmarshall/genedisease-ingest/internal/domain"
)

func main() {
	sourceFlag := flag.String("source", "", "gencc or panelapp (default: both)")
	geneFlag := flag.String("gene", "", "HGNC ID (HGNC:...) or gene symbol")
	diseaseFlag := flag.String("disease", "", "disease ID, matched against primary and other IDs")
	submitterFlag := flag.String("submitter", "", "submitter name")
	outFlag := flag.String("out", "", "output file (default: stdout)")
	countsFlag := flag.Bool("counts", false, "log per-source row counts and exit")
	configFlag := flag.String("config", os.Getenv("CONFIG_PATH"), "path to YAML config file")
	flag.Parse()

	cfg, err := config.LoadFrom(*configFlag)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	if err := cfg.RequireDatabase(); err != nil {
		log.Fatalf("%v", err)
	}

	logger := app.NewLogger(cfg.Log)

	filter := domain.AssociationFilter{
		DiseaseID: *diseaseFlag,
		Submitter: *submitterFlag,
		Limit:     export.DefaultPageSize,
	}
	if *sourceFlag != "" {
		source := domain.Source(*sourceFlag)
		filter.Source = &source
	}
	if strings.HasPrefix(*geneFlag, "HGNC:") {
		filter.GeneID = *geneFlag
	} else {
		filter.GeneSymbol = *geneFlag
	}
	if err := filter.Validate(); err != nil {
		logger.Error("invalid filter", slog.String("error", err.Error()))
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Minute)
	defer cancel()

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		logger.Error("connect to database", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer pool.Close()

	repo := association.New(pool)

	if *countsFlag {
		counts, err := repo.CountBySource(ctx)
		if err != nil {
			logger.Error("count associations", slog.String("error", err.Error()))
			os.Exit(1)
		}
		for source, n := range counts {
			logger.Info("associations", slog.String("source", source.String()), slog.Int("count", n))
		}
		return
	}

	var w io.Writer = os.Stdout
	if *outFlag != "" {
		f, err := os.Create(*outFlag)
		if err != nil {
			logger.Error("create output", slog.String("error", err.Error()))
			os.Exit(1)
		}
		defer f.Close()
		w = f
	}

	n, err := export.Write(ctx, repo, filter, w)
	if err != nil {
		logger.Error("export failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	logger.Info("export completed", slog.Int("rows", n))
}
