// Command ingest downloads the MONDO cross-reference tables, the GenCC
// submission export and the PanelApp entity lists, normalizes them into
// gene–disease associations and replaces the stored rows per source.
//
// Flags:
//
//	--phase    comma-separated list of phases to run (default: all)
//	--dry-run  download and parse without writing to DB
//	--config   path to YAML config file (default: $CONFIG_PATH or ./config.yaml)
//	--timeout  overall run timeout
//	--version  print the build version and exit
//
// Exit codes: 0 = success, 1 = error.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/heartmarshall/genedisease-ingest/internal/app"
)

func main() {
	phaseFlag := flag.String("phase", "", "comma-separated phases to run: mondo,gencc,panelapp (default: all)")
	dryRunFlag := flag.Bool("dry-run", false, "download and parse without writing to DB")
	configFlag := flag.String("config", os.Getenv("CONFIG_PATH"), "path to YAML config file")
	timeoutFlag := flag.Duration("timeout", 3*time.Hour, "overall run timeout")
	versionFlag := flag.Bool("version", false, "print the build version and exit")
	flag.Parse()

	if *versionFlag {
		fmt.Println(app.BuildVersion())
		return
	}

	var phases []string
	if *phaseFlag != "" {
		phases = strings.Split(*phaseFlag, ",")
		for i := range phases {
			phases[i] = strings.TrimSpace(phases[i])
		}
	}

	// The final retry waits an hour, so the default timeout leaves room for it.
	ctx, cancel := context.WithTimeout(context.Background(), *timeoutFlag)
	defer cancel()
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	err := app.Run(ctx, app.Options{
		ConfigPath: *configFlag,
		Phases:     phases,
		DryRun:     *dryRunFlag,
	})
	if err != nil {
		stop()
		cancel()
		log.Fatalf("ingest: %v", err)
	}
}
