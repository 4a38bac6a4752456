// Package themes buckets reviews into fixed banking-app problem areas by
// keyword matching, and extracts ranked keywords with TF-IDF.
package themes

import (
	"regexp"
	"strings"
)

// OtherTheme marks reviews that matched no bucket.
const OtherTheme = "Other"

// bucket is one named theme with its trigger keywords.
type bucket struct {
	name     string
	keywords []string
}

// Buckets are matched in this order; output order follows it too.
var buckets = []bucket{
	{"Login & Access Issues", []string{
		"login", "log in", "password", "forgot", "account", "access", "verification",
		"authenticate", "biometric", "fingerprint", "face id", "locked", "blocked",
		"security", "pin", "code", "verify", "registered", "registration",
	}},
	{"Transaction Problems", []string{
		"transfer", "transaction", "payment", "send money", "failed", "fail",
		"pending", "stuck", "complete", "process", "send", "receive", "money",
		"amount", "balance", "deduct", "charge", "fee", "bill",
	}},
	{"App Performance & Bugs", []string{
		"crash", "freeze", "frozen", "slow", "lag", "bug", "error", "not working",
		"close", "stop", "hang", "loading", "response", "speed", "fast", "quick",
		"update", "version", "install", "download", "technical", "problem", "issue",
	}},
	{"User Interface & Experience", []string{
		"interface", "ui", "ux", "design", "layout", "navigation", "menu",
		"complicated", "confusing", "hard to use", "complex", "simple", "easy",
		"intuitive", "beautiful", "ugly", "modern", "old", "outdated",
	}},
	{"Customer Support", []string{
		"support", "help", "service", "assistance", "contact", "call", "phone",
		"email", "response", "complain", "complaint", "issue", "resolve",
		"customer care", "helpline", "assist",
	}},
	{"Features & Functionality", []string{
		"feature", "function", "add", "missing", "should have", "need",
		"improve", "update", "version", "new", "option", "setting",
		"notification", "alert", "reminder", "history", "statement",
	}},
	{"Network & Connectivity", []string{
		"network", "internet", "connection", "connect", "online", "offline",
		"wifi", "data", "signal", "server", "maintenance", "down",
	}},
}

// compiled word-boundary patterns, one slice per bucket, built once.
var compiled = func() [][]*regexp.Regexp {
	out := make([][]*regexp.Regexp, len(buckets))
	for i, b := range buckets {
		out[i] = make([]*regexp.Regexp, len(b.keywords))
		for j, kw := range b.keywords {
			out[i][j] = regexp.MustCompile(`\b` + regexp.QuoteMeta(kw) + `\b`)
		}
	}
	return out
}()

var (
	nonLetters = regexp.MustCompile(`[^a-zA-Z\s]`)
	spaces     = regexp.MustCompile(`\s+`)
)

// Preprocess lowercases text and strips everything but letters.
func Preprocess(text string) string {
	text = strings.ToLower(text)
	text = nonLetters.ReplaceAllString(text, " ")
	return strings.TrimSpace(spaces.ReplaceAllString(text, " "))
}

// Names returns the bucket names in match order.
func Names() []string {
	names := make([]string, len(buckets))
	for i, b := range buckets {
		names[i] = b.name
	}
	return names
}

// Categorize matches a review against every bucket. A bucket counts at
// most once per review. The result is the matched names joined with
// ", ", or OtherTheme when nothing matched.
func Categorize(reviewText string) string {
	text := Preprocess(reviewText)
	var matched []string
	for i, b := range buckets {
		for _, re := range compiled[i] {
			if re.MatchString(text) {
				matched = append(matched, b.name)
				break
			}
		}
	}
	if len(matched) == 0 {
		return OtherTheme
	}
	return strings.Join(matched, ", ")
}

// Split parses a stored themes column back into bucket names. OtherTheme
// and empty values yield nil.
func Split(themes string) []string {
	themes = strings.TrimSpace(themes)
	if themes == "" || themes == OtherTheme {
		return nil
	}
	parts := strings.Split(themes, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" && p != OtherTheme {
			out = append(out, p)
		}
	}
	return out
}
