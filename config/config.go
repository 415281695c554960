// Package config holds the explicit run configuration: a TOML file for
// everything tunable, environment variables for credentials. Nothing here is
// ambient; callers pass the loaded config into the pipeline.
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

//go:embed config.example.toml
var exampleConf []byte

type Config struct {
	// Root of the genre-map site; genre hrefs resolve against it.
	BaseURL string `toml:"base_url"`

	// Path of the genre catalog JSON.
	GenresFile string `toml:"genres_file"`

	Output  OutputConfig  `toml:"output"`
	Fetch   FetchConfig   `toml:"fetch"`
	Harvest HarvestConfig `toml:"harvest"`
}

// OutputConfig names the artifact directories.
type OutputConfig struct {
	PlaylistDir string `toml:"playlist_dir"`
	SongsDir    string `toml:"songs_dir"`
	DebugDir    string `toml:"debug_dir"`
}

// FetchConfig tunes the retrying page fetcher.
type FetchConfig struct {
	Retries        int     `toml:"retries"`
	BackoffSeconds float64 `toml:"backoff_seconds"`
	TimeoutSeconds float64 `toml:"timeout_seconds"`
}

func (c FetchConfig) Backoff() time.Duration {
	return time.Duration(c.BackoffSeconds * float64(time.Second))
}

func (c FetchConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds * float64(time.Second))
}

// HarvestConfig tunes the scheduler and the API client.
type HarvestConfig struct {
	Workers   int     `toml:"workers"`
	RateLimit float64 `toml:"rate_limit"`
}

// Default returns the embedded example configuration.
func Default() *Config {
	var cfg Config
	if err := toml.Unmarshal(exampleConf, &cfg); err != nil {
		panic(fmt.Sprintf("embedded default config is invalid: %v", err))
	}
	return &cfg
}

// Load reads the config file at path. A missing file is not an error: the
// embedded defaults apply, so a config file is only needed to override them.
func Load(path string) (*Config, error) {
	cfg := Default()
	bs, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	} else if err != nil {
		return nil, fmt.Errorf("error reading config at '%s': %w", path, err)
	}
	if err := toml.Unmarshal(bs, cfg); err != nil {
		return nil, fmt.Errorf("error parsing config at '%s': %w", path, err)
	}
	return cfg, nil
}

// Credentials are the playlist API's client-credentials pair.
type Credentials struct {
	ClientID     string
	ClientSecret string
}

// LoadCredentials reads the API credentials from the environment, loading a
// .env file first when one exists. Missing credentials are a configuration
// error the caller surfaces before any work begins.
func LoadCredentials() (Credentials, error) {
	_ = godotenv.Load()

	creds := Credentials{
		ClientID:     os.Getenv("SPOTIFY_CLIENT_ID"),
		ClientSecret: os.Getenv("SPOTIFY_CLIENT_SECRET"),
	}
	if creds.ClientID == "" || creds.ClientSecret == "" {
		return Credentials{}, errors.New("SPOTIFY_CLIENT_ID and SPOTIFY_CLIENT_SECRET must be set")
	}
	return creds, nil
}
