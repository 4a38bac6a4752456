// Package config loads pipeline configuration from the environment,
// optionally seeded from a .env file.
package config

import (
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds settings for every pipeline stage.
type Config struct {
	// BankApps maps a short bank code to its Play Store app id.
	BankApps map[string]string

	// Scraping
	ReviewsPerBank int
	Language       string
	Country        string
	ScrapeDelay    time.Duration

	// File layout
	RawCSV      string
	CleanCSV    string
	AnalyzedCSV string
	DBPath      string
	ChartsDir   string
	ReportXLSX  string

	// Sentiment inference service
	SentimentURL     string
	SentimentModel   string
	SentimentBatch   int
	SentimentTimeout time.Duration

	// Word clouds need a TTF font; empty disables them.
	FontFile string

	// Progress publishing / dashboard
	RedisHost     string
	RedisPort     string
	RedisPassword string
	RedisKey      string
	ServePort     string
}

// DefaultBankApps are the three Ethiopian banking apps the project tracks.
var DefaultBankApps = map[string]string{
	"CBE":    "com.combanketh.mobilebanking",
	"BOA":    "com.boa.boaMobileBanking",
	"Dashen": "com.dashen.dashensuperapp",
}

// Load reads envPath if present (missing file is not an error, the
// environment still applies) and resolves all settings with defaults.
func Load(envPath string) (*Config, error) {
	if envPath != "" {
		_ = godotenv.Load(envPath)
	}

	apps, err := parseBankApps(os.Getenv("BANK_APPS"))
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		BankApps:         apps,
		ReviewsPerBank:   getInt("REVIEWS_PER_BANK", 400),
		Language:         getEnv("REVIEW_LANGUAGE", "en"),
		Country:          getEnv("REVIEW_COUNTRY", "et"),
		ScrapeDelay:      time.Duration(getInt("SCRAPE_DELAY_SECONDS", 2)) * time.Second,
		RawCSV:           getEnv("RAW_CSV", "data/raw/bank_reviews_raw.csv"),
		CleanCSV:         getEnv("CLEAN_CSV", "data/processed/bank_reviews_cleaned.csv"),
		AnalyzedCSV:      getEnv("ANALYZED_CSV", "data/processed/bank_reviews_analyzed.csv"),
		DBPath:           getEnv("DB_PATH", "data/bank_reviews.db"),
		ChartsDir:        getEnv("CHARTS_DIR", "visualizations"),
		ReportXLSX:       getEnv("REPORT_XLSX", "data/processed/bank_reviews_report.xlsx"),
		SentimentURL:     getEnv("SENTIMENT_URL", "http://localhost:8501/api/classify"),
		SentimentModel:   getEnv("SENTIMENT_MODEL", "distilbert-sst2"),
		SentimentBatch:   getInt("SENTIMENT_BATCH", 32),
		SentimentTimeout: time.Duration(getInt("SENTIMENT_TIMEOUT_SECONDS", 120)) * time.Second,
		FontFile:         os.Getenv("WORDCLOUD_FONT"),
		RedisHost:        os.Getenv("REDIS_HOST"),
		RedisPort:        getEnv("REDIS_PORT", "6379"),
		RedisPassword:    os.Getenv("REDIS_PASSWORD"),
		RedisKey:         getEnv("REDIS_KEY", "bankreviews"),
		ServePort:        getEnv("PORT", "8080"),
	}
	return cfg, nil
}

// Banks returns the bank codes in stable order.
func (c *Config) Banks() []string {
	codes := make([]string, 0, len(c.BankApps))
	for code := range c.BankApps {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}

// parseBankApps parses "CBE=com.foo,BOA=com.bar". Empty input falls back
// to DefaultBankApps.
func parseBankApps(s string) (map[string]string, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		apps := make(map[string]string, len(DefaultBankApps))
		for code, id := range DefaultBankApps {
			apps[code] = id
		}
		return apps, nil
	}
	apps := make(map[string]string)
	for _, pair := range strings.Split(s, ",") {
		pair = strings.TrimSpace(pair)
		if pair == "" {
			continue
		}
		parts := strings.SplitN(pair, "=", 2)
		if len(parts) != 2 || strings.TrimSpace(parts[0]) == "" || strings.TrimSpace(parts[1]) == "" {
			return nil, fmt.Errorf("invalid BANK_APPS entry: %q", pair)
		}
		apps[strings.TrimSpace(parts[0])] = strings.TrimSpace(parts[1])
	}
	if len(apps) == 0 {
		return nil, fmt.Errorf("BANK_APPS set but no valid entries parsed: %q", s)
	}
	return apps, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getInt(key string, defaultValue int) int {
	n, err := strconv.Atoi(os.Getenv(key))
	if err != nil || n <= 0 {
		return defaultValue
	}
	return n
}
