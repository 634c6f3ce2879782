package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// DefaultPath is the config file looked up in the repository root.
const DefaultPath = ".release.yaml"

// Config drives one release run. Every field has a usable default so the
// tool works with no file at all.
type Config struct {
	PackageFile string `yaml:"package_file"`
	ModuleFile  string `yaml:"module_file"`
	NotesFile   string `yaml:"notes_file"`
	Remote      string `yaml:"remote"`
	Branch      string `yaml:"branch"`

	Git        GitConfig        `yaml:"git"`
	Summarizer SummarizerConfig `yaml:"summarizer"`
	Publish    PublishConfig    `yaml:"publish"`
	Log        LogConfig        `yaml:"log"`
}

type GitConfig struct {
	// Backend is "cli" (git subprocesses) or "native" (go-git).
	Backend       string `yaml:"backend"`
	HistoryLimit  int    `yaml:"history_limit"`
	ReleasePrefix string `yaml:"release_prefix"`
	AuthorName    string `yaml:"author_name"`
	AuthorEmail   string `yaml:"author_email"`
}

// DefaultTemperature applies when the config file does not set one.
const DefaultTemperature float32 = 0.7

type SummarizerConfig struct {
	// Backend is "completions", "chat" or "none".
	Backend     string        `yaml:"backend"`
	Endpoint    string        `yaml:"endpoint"`
	Model       string        `yaml:"model"`
	APIKey      string        `yaml:"api_key"`
	Instruction string        `yaml:"instruction"`
	MaxTokens   int           `yaml:"max_tokens"`
	Temperature float32       `yaml:"temperature"`
	Timeout     time.Duration `yaml:"timeout"`
}

type PublishConfig struct {
	Bin         string `yaml:"bin"`
	TitleFormat string `yaml:"title_format"`
}

type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Load reads path (YAML or JSON) and fills defaults. A missing file is not
// an error.
func Load(path string) (Config, error) {
	// Zero is a meaningful temperature, so its default is seeded before
	// decoding rather than filled in afterwards.
	cfg := Config{Summarizer: SummarizerConfig{Temperature: DefaultTemperature}}

	raw, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
	case err != nil:
		return Config{}, fmt.Errorf("read config: %w", err)
	default:
		if err := yaml.Unmarshal(raw, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config: %w", err)
		}
	}

	cfg.applyDefaults()
	return cfg, nil
}

// LoadEnv reads a dotenv file into the process environment (existing
// variables win) and applies RELEASE_* overrides to cfg.
func LoadEnv(cfg *Config, dotenvPath string) error {
	if dotenvPath != "" {
		if err := godotenv.Load(dotenvPath); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("load %s: %w", dotenvPath, err)
		}
	}
	return cfg.applyEnv(os.LookupEnv)
}

func (c *Config) applyDefaults() {
	if c.PackageFile == "" {
		c.PackageFile = "package.json"
	}
	if c.ModuleFile == "" {
		c.ModuleFile = "module.json"
	}
	if c.NotesFile == "" {
		c.NotesFile = "release-notes.md"
	}
	if c.Remote == "" {
		c.Remote = "origin"
	}
	if c.Branch == "" {
		c.Branch = "main"
	}

	if c.Git.Backend == "" {
		c.Git.Backend = "cli"
	}
	if c.Git.HistoryLimit == 0 {
		c.Git.HistoryLimit = 50
	}
	if c.Git.ReleasePrefix == "" {
		c.Git.ReleasePrefix = "Release v"
	}

	if c.Summarizer.Backend == "" {
		c.Summarizer.Backend = "completions"
	}
	if c.Summarizer.Endpoint == "" {
		c.Summarizer.Endpoint = "http://localhost:11434/v1/completions"
	}
	if c.Summarizer.Model == "" {
		c.Summarizer.Model = "qwen2.5:7b"
	}
	if c.Summarizer.MaxTokens == 0 {
		c.Summarizer.MaxTokens = 150
	}
	if c.Summarizer.Instruction == "" {
		c.Summarizer.Instruction = "Summarize the following commit messages in a concise paragraph:"
	}

	if c.Publish.Bin == "" {
		c.Publish.Bin = "gh"
	}
	if c.Publish.TitleFormat == "" {
		c.Publish.TitleFormat = "Version %s"
	}

	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Format == "" {
		c.Log.Format = "text"
	}
}

func (c *Config) applyEnv(lookup func(string) (string, bool)) error {
	strs := map[string]*string{
		"RELEASE_GIT_BACKEND":         &c.Git.Backend,
		"RELEASE_SUMMARIZER_BACKEND":  &c.Summarizer.Backend,
		"RELEASE_SUMMARIZER_ENDPOINT": &c.Summarizer.Endpoint,
		"RELEASE_SUMMARIZER_MODEL":    &c.Summarizer.Model,
		"RELEASE_SUMMARIZER_API_KEY":  &c.Summarizer.APIKey,
		"RELEASE_LOG_LEVEL":           &c.Log.Level,
	}
	for key, dst := range strs {
		if v, ok := lookup(key); ok && v != "" {
			*dst = v
		}
	}

	if v, ok := lookup("RELEASE_SUMMARIZER_TIMEOUT"); ok && v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("RELEASE_SUMMARIZER_TIMEOUT: %w", err)
		}
		c.Summarizer.Timeout = d
	}
	if v, ok := lookup("RELEASE_SUMMARIZER_MAX_TOKENS"); ok && v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("RELEASE_SUMMARIZER_MAX_TOKENS: %w", err)
		}
		c.Summarizer.MaxTokens = n
	}
	return nil
}
