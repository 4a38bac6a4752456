package main

import (
	"flag"
	"log"
	"time"

	"bankreviews/config"
	"bankreviews/dashboard"
	"bankreviews/progress"
)

func main() {
	var (
		envPath  string
		port     string
		interval int
	)
	flag.StringVar(&envPath, "env", ".env", "env file path")
	flag.StringVar(&port, "port", "", "listen port (default from config)")
	flag.IntVar(&interval, "interval", 3, "SSE push interval in seconds")
	flag.Parse()

	cfg, err := config.Load(envPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	if port == "" {
		port = cfg.ServePort
	}
	if interval <= 0 {
		interval = 3
	}

	reader, err := progress.NewReader(cfg)
	if err != nil {
		log.Fatalf("connect redis: %v", err)
	}
	defer reader.Close()

	log.Printf("Starting server on port %s", port)
	log.Printf("Monitoring key: %s", cfg.RedisKey)
	log.Printf("Update interval: %ds", interval)

	server := dashboard.NewServer(port, reader, cfg.RedisKey, time.Duration(interval)*time.Second)
	if err := server.ListenAndServe(); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}
