package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"saturn/internal/config"
	"saturn/internal/store"
)

func main() {
	limit := flag.Int("n", 20, "number of recent runs to show")
	flag.Parse()

	cfgPath := "config/saturn.yaml"
	if p := os.Getenv("SATURN_CONFIG"); p != "" {
		cfgPath = p
	}

	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	if cfg.Storage.SQLitePath == "" {
		log.Fatal("storage.sqlite_path is not configured")
	}

	runStore, err := store.NewSQLiteStore(cfg.Storage.SQLitePath)
	if err != nil {
		log.Fatalf("failed to open run store: %v", err)
	}
	defer runStore.Close()

	records, err := runStore.ListRuns(context.Background(), *limit)
	if err != nil {
		log.Fatalf("failed to list runs: %v", err)
	}

	for _, r := range records {
		status := "ok"
		if !r.Success {
			status = "FAILED"
		}
		fmt.Printf("%s  %-8s  %-8s  %-24s  capital=%.2f  %s\n",
			r.CreatedAt.Format("2006-01-02 15:04:05"),
			r.Mode, status, r.Algorithm, r.StartingCapital,
			strings.Join(r.Errors, "; "))
	}
}
