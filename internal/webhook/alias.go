package webhook

import (
	"fmt"
	"os"
	"strings"

	"moana_backoffice/platform/textkit"

	"gopkg.in/yaml.v3"
)

// AliasConfig maps normalized recipient names to canonical broker emails,
// covering known variants and misspellings for each broker. It also carries
// the groups of organizational domains that upstream data entry uses
// interchangeably. Built once at startup and injected into the resolver;
// immutable during a request's lifetime.
type AliasConfig struct {
	Aliases      map[string]string `yaml:"aliases"`
	DomainGroups [][]string        `yaml:"domainGroups"`
}

// DefaultAliasConfig returns the built-in alias table. The office's two
// domain spellings appear interchangeably in upstream data, hence the
// default domain group.
func DefaultAliasConfig() AliasConfig {
	return AliasConfig{
		Aliases: map[string]string{
			"cedrc":                     "cedric@moana-yachting.com",
			"cedric":                    "cedric@moana-yachting.com",
			"cedric paprocki":           "cedric@moana-yachting.com",
			"pe":                        "pe@moana-yachting.com",
			"pierre eliott duverneuil":  "pe@moana-yachting.com",
			"bart":                      "bart@moanayachting.com",
			"bart obin":                 "bart@moanayachting.com",
			"aldric":                    "aldric@moanayachting.com",
			"aldric millescamps":        "aldric@moanayachting.com",
			"charles":                   "charles@moanayachting.com",
			"charles michel":            "charles@moanayachting.com",
			"charles michel leke":       "charles@moanayachting.com",
			"foulques":                  "foulques@moana-yachting.com",
			"foulques de raigniac":      "foulques@moana-yachting.com",
			"foulques de reigniac":      "foulques@moana-yachting.com",
			"marc":                      "jm@moanayachting.com",
			"julien":                    "julien@moana-yachting.com",
		},
		DomainGroups: [][]string{
			{"moana-yachting.com", "moanayachting.com"},
		},
	}
}

// LoadAliasConfig reads an alias table from a YAML file. An empty path
// returns the built-in defaults. Keys are re-normalized at load so the
// hand-maintained file tolerates accents, casing and punctuation.
func LoadAliasConfig(path string) (AliasConfig, error) {
	if strings.TrimSpace(path) == "" {
		return DefaultAliasConfig(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return AliasConfig{}, fmt.Errorf("read alias file: %w", err)
	}

	var cfg AliasConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return AliasConfig{}, fmt.Errorf("parse alias file: %w", err)
	}

	normalized := make(map[string]string, len(cfg.Aliases))
	for key, email := range cfg.Aliases {
		normalized[textkit.NormalizeKey(key)] = strings.TrimSpace(email)
	}
	cfg.Aliases = normalized

	if len(cfg.DomainGroups) == 0 {
		cfg.DomainGroups = DefaultAliasConfig().DomainGroups
	}

	return cfg, nil
}

// LookupEmail returns the canonical broker email for a normalized
// recipient key.
func (c AliasConfig) LookupEmail(key string) (string, bool) {
	email, ok := c.Aliases[key]
	return email, ok
}

// ExpandEmail returns the candidate spellings of an email address across
// the configured interchangeable domain groups, starting with the input.
// Addresses outside every group are returned as-is.
func (c AliasConfig) ExpandEmail(email string) []string {
	candidates := []string{email}
	at := strings.LastIndex(email, "@")
	if at < 0 {
		return candidates
	}
	local, domain := email[:at], strings.ToLower(email[at+1:])

	for _, group := range c.DomainGroups {
		if !containsFold(group, domain) {
			continue
		}
		for _, d := range group {
			variant := local + "@" + d
			if !containsFold(candidates, variant) {
				candidates = append(candidates, variant)
			}
		}
	}
	return candidates
}

func containsFold(values []string, v string) bool {
	for _, s := range values {
		if strings.EqualFold(s, v) {
			return true
		}
	}
	return false
}
