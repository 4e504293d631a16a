// cliparse/cliparse_test.go
package cliparse

import (
	"testing"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("DATABASE_URL", "postgres://test")
	t.Setenv("SUPABASE_URL", "https://demo.supabase.co")
	t.Setenv("SUPABASE_KEY", "anon-key")
}

func TestParseFlags_EnvVars(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("PORT", "9000")

	cfg, err := ParseFlags([]string{})
	if err != nil {
		t.Fatal(err)
	}

	if cfg.Port != 9000 {
		t.Errorf("expected port 9000, got %d", cfg.Port)
	}
	if cfg.DatabaseType != "postgres" {
		t.Errorf("expected default database type postgres, got %q", cfg.DatabaseType)
	}
	if cfg.AudioBucket != "audio-recordings" {
		t.Errorf("expected default bucket, got %q", cfg.AudioBucket)
	}
}

func TestParseFlags_CLIOverridesEnv(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("PORT", "9000")

	cfg, err := ParseFlags([]string{"-p", "8080", "-d", "file:test.db", "-t", "sqlite"})
	if err != nil {
		t.Fatal(err)
	}

	// CLI should override env
	if cfg.Port != 8080 {
		t.Errorf("CLI should override env: expected 8080, got %d", cfg.Port)
	}
	if cfg.DatabaseType != "sqlite" {
		t.Errorf("expected sqlite, got %q", cfg.DatabaseType)
	}
}

func TestParseFlags_NextPublicNamesWin(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("NEXT_PUBLIC_SUPABASE_URL", "https://next.supabase.co")
	t.Setenv("NEXT_PUBLIC_SUPABASE_ANON_KEY", "next-key")

	cfg, err := ParseFlags([]string{})
	if err != nil {
		t.Fatal(err)
	}

	if cfg.SupabaseURL != "https://next.supabase.co" {
		t.Errorf("NEXT_PUBLIC_SUPABASE_URL should win, got %q", cfg.SupabaseURL)
	}
	if cfg.SupabaseKey != "next-key" {
		t.Errorf("NEXT_PUBLIC_SUPABASE_ANON_KEY should win, got %q", cfg.SupabaseKey)
	}
}

func TestParseFlags_MissingDatabaseURL(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	t.Setenv("SUPABASE_URL", "https://demo.supabase.co")
	t.Setenv("SUPABASE_KEY", "anon-key")

	if _, err := ParseFlags([]string{}); err == nil {
		t.Error("expected error for missing database URL")
	}
}

func TestParseFlags_MissingSupabaseCreds(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://test")
	t.Setenv("SUPABASE_URL", "")
	t.Setenv("SUPABASE_KEY", "")
	t.Setenv("NEXT_PUBLIC_SUPABASE_URL", "")
	t.Setenv("NEXT_PUBLIC_SUPABASE_ANON_KEY", "")

	if _, err := ParseFlags([]string{}); err == nil {
		t.Error("expected error for missing storage credentials")
	}
}

func TestParseFlags_BadDatabaseType(t *testing.T) {
	setRequiredEnv(t)

	if _, err := ParseFlags([]string{"-t", "mysql"}); err == nil {
		t.Error("expected error for unsupported database type")
	}
}
