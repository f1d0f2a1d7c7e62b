package webhook

import (
	"os"
	"path/filepath"
	"testing"

	"moana_backoffice/platform/textkit"
)

func TestDefaultAliasLookup(t *testing.T) {
	cfg := DefaultAliasConfig()

	cases := []struct {
		recipient string
		email     string
	}{
		{"Julien", "julien@moana-yachting.com"},
		{"Cédric", "cedric@moana-yachting.com"},
		{"CEDRIC PAPROCKI", "cedric@moana-yachting.com"},
		{"Foulques de Reigniac", "foulques@moana-yachting.com"},
		{"Marc", "jm@moanayachting.com"},
	}
	for _, tc := range cases {
		key := textkit.NormalizeKey(tc.recipient)
		email, ok := cfg.LookupEmail(key)
		if !ok {
			t.Fatalf("no alias for %q (key %q)", tc.recipient, key)
		}
		if email != tc.email {
			t.Fatalf("alias for %q = %q, want %q", tc.recipient, email, tc.email)
		}
	}
}

func TestDefaultAliasUnknownRecipient(t *testing.T) {
	cfg := DefaultAliasConfig()
	if _, ok := cfg.LookupEmail(textkit.NormalizeKey("Somebody Else")); ok {
		t.Fatal("unexpected alias match")
	}
}

func TestExpandEmailAcrossDomainGroup(t *testing.T) {
	cfg := DefaultAliasConfig()

	got := cfg.ExpandEmail("julien@moana-yachting.com")
	want := map[string]bool{
		"julien@moana-yachting.com": true,
		"julien@moanayachting.com":  true,
	}
	if len(got) != len(want) {
		t.Fatalf("candidates = %v", got)
	}
	for _, c := range got {
		if !want[c] {
			t.Fatalf("unexpected candidate %q in %v", c, got)
		}
	}
	if got[0] != "julien@moana-yachting.com" {
		t.Fatalf("input must come first, got %v", got)
	}
}

func TestExpandEmailOutsideGroups(t *testing.T) {
	cfg := DefaultAliasConfig()

	got := cfg.ExpandEmail("someone@example.com")
	if len(got) != 1 || got[0] != "someone@example.com" {
		t.Fatalf("candidates = %v, want just the input", got)
	}
}

func TestExpandEmailNotAnAddress(t *testing.T) {
	cfg := DefaultAliasConfig()

	got := cfg.ExpandEmail("Julien")
	if len(got) != 1 || got[0] != "Julien" {
		t.Fatalf("candidates = %v, want just the input", got)
	}
}

func TestLoadAliasConfigEmptyPathUsesDefaults(t *testing.T) {
	cfg, err := LoadAliasConfig("")
	if err != nil {
		t.Fatalf("LoadAliasConfig: %v", err)
	}
	if _, ok := cfg.LookupEmail("julien"); !ok {
		t.Fatal("defaults not loaded")
	}
}

func TestLoadAliasConfigNormalizesKeys(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "aliases.yaml")
	content := []byte("aliases:\n  \"Cédric P.\": cedric@moana-yachting.com\n")
	if err := os.WriteFile(path, content, 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadAliasConfig(path)
	if err != nil {
		t.Fatalf("LoadAliasConfig: %v", err)
	}

	email, ok := cfg.LookupEmail(textkit.NormalizeKey("cedric p"))
	if !ok || email != "cedric@moana-yachting.com" {
		t.Fatalf("lookup after load = %q, %v", email, ok)
	}
	if len(cfg.DomainGroups) == 0 {
		t.Fatal("default domain groups not applied")
	}
}

func TestLoadAliasConfigMissingFile(t *testing.T) {
	if _, err := LoadAliasConfig(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatal("expected error for missing file")
	}
}
