package main

import (
	"context"
	"flag"
	"log"
	"os"

	"bankreviews/config"
	"bankreviews/report"
	"bankreviews/store"
)

func main() {
	var (
		envPath string
		dbPath  string
		xlsx    string
	)
	flag.StringVar(&envPath, "env", ".env", "env file path")
	flag.StringVar(&dbPath, "db", "", "SQLite file path (default from config)")
	flag.StringVar(&xlsx, "xlsx", "", "also export the report as an Excel workbook to this path")
	flag.Parse()

	cfg, err := config.Load(envPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	if dbPath == "" {
		dbPath = cfg.DBPath
	}

	s, err := store.Open(dbPath)
	if err != nil {
		log.Fatalf("open database: %v", err)
	}
	defer s.Close()

	rep, err := report.Build(context.Background(), s)
	if err != nil {
		log.Fatalf("build report: %v", err)
	}
	rep.Print(os.Stdout)

	if xlsx != "" {
		if err := rep.ExportXLSX(xlsx); err != nil {
			log.Fatalf("export xlsx: %v", err)
		}
		log.Printf("[REPORT] wrote %s", xlsx)
	}
}
