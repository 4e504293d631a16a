package cliparse

import (
	"errors"
	"flag"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	Port         int
	DatabaseURL  string
	DatabaseType string
	SupabaseURL  string
	SupabaseKey  string
	OpenAIKey    string
	AudioBucket  string
}

// ParseFlags validates flags and environment configuration.
// A .env file in the working directory is loaded first, matching how the
// hosted deployment ships its secrets.
func ParseFlags(args []string) (Config, error) {
	// Missing .env is fine; real env vars still apply
	_ = godotenv.Load()

	var cfg Config

	fs := flag.NewFlagSet("dayvibe-api", flag.ContinueOnError)

	// Network config (can be CLI args or env)
	fs.IntVar(&cfg.Port, "p", 0, "Server port")
	fs.StringVar(&cfg.DatabaseURL, "d", "", "Database URL")
	fs.StringVar(&cfg.DatabaseType, "t", "", "Database type (sqlite or postgres)")
	fs.StringVar(&cfg.AudioBucket, "bucket", "", "Storage bucket for audio recordings")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	// Fall back to environment variables
	if cfg.Port == 0 {
		if portStr := os.Getenv("PORT"); portStr != "" {
			port, err := strconv.Atoi(portStr)
			if err != nil {
				return Config{}, errors.New("invalid PORT env variable")
			}
			cfg.Port = port
		} else {
			cfg.Port = 8000 // default
		}
	}

	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	}
	if cfg.DatabaseURL == "" {
		return Config{}, errors.New("database URL required (use -d or DATABASE_URL env)")
	}

	if cfg.DatabaseType == "" {
		cfg.DatabaseType = os.Getenv("DATABASE_TYPE")
		if cfg.DatabaseType == "" {
			cfg.DatabaseType = "postgres"
		}
	}
	if cfg.DatabaseType != "postgres" && cfg.DatabaseType != "sqlite" {
		return Config{}, errors.New("database type must be sqlite or postgres")
	}

	if cfg.AudioBucket == "" {
		cfg.AudioBucket = os.Getenv("AUDIO_BUCKET")
		if cfg.AudioBucket == "" {
			cfg.AudioBucket = "audio-recordings"
		}
	}

	// Supabase credentials: the Next.js-compatible names win, then the
	// original names (same precedence the landing page used)
	cfg.SupabaseURL = firstNonEmpty(os.Getenv("NEXT_PUBLIC_SUPABASE_URL"), os.Getenv("SUPABASE_URL"))
	cfg.SupabaseKey = firstNonEmpty(os.Getenv("NEXT_PUBLIC_SUPABASE_ANON_KEY"), os.Getenv("SUPABASE_KEY"))
	if cfg.SupabaseURL == "" || cfg.SupabaseKey == "" {
		return Config{}, errors.New("SUPABASE_URL and SUPABASE_KEY must be set in environment variables")
	}

	// The OpenAI key is not required at startup; transcription fails and
	// analysis degrades at call time without it, as the original did
	cfg.OpenAIKey = os.Getenv("OPENAI_API_KEY")

	return cfg, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
