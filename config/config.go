// Package config loads toknun's runtime settings and dictionary data with
// viper, the way the teacher's internal/cli/config package loads
// conduit.yml: a YAML file supplies overrides, package-level defaults fill
// in everything else, and environment variables take final precedence.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/hagstofa/toknun/pipeline"
)

// Config is the root configuration surface (SPEC_FULL.md §A.1).
type Config struct {
	Dictionaries DictionariesConfig `mapstructure:"dictionaries"`
	Database     DatabaseConfig     `mapstructure:"database"`
	Cache        CacheConfig        `mapstructure:"cache"`
	Server       ServerConfig       `mapstructure:"server"`
}

// DictionariesConfig names on-disk files to load dictionary data from. A
// blank path keeps the package-level default for that dictionary.
type DictionariesConfig struct {
	AbbreviationsFile    string `mapstructure:"abbreviations_file"`
	StaticPhrasesFile    string `mapstructure:"static_phrases_file"`
	AmbiguousPhrasesFile string `mapstructure:"ambiguous_phrases_file"`
	NamesFile            string `mapstructure:"names_file"`
}

// DatabaseConfig is the entity-store connection string. Driver selects
// which entitydb store to open: "pgx" (default) for entitydb.OpenPgxStore,
// or "pq" for entitydb.OpenPQStore, both against the same postgres DSN.
type DatabaseConfig struct {
	DSN    string `mapstructure:"dsn"`
	Driver string `mapstructure:"driver"`
}

// CacheConfig is the entity-cache backend. A blank Addr keeps the
// in-process map cache.
type CacheConfig struct {
	Addr string `mapstructure:"addr"`
	DB   int    `mapstructure:"db"`
	TTL  string `mapstructure:"ttl"`
}

// ServerConfig configures the optional HTTP/WebSocket façade.
type ServerConfig struct {
	Host      string `mapstructure:"host"`
	Port      int    `mapstructure:"port"`
	JWTSecret string `mapstructure:"jwt_secret"`
}

const envPrefix = "TOKNUN"

// Load reads path (or, if empty, "toknun.yaml" in the working directory)
// via viper, falling back to built-in defaults when the file is absent.
// Environment variables prefixed TOKNUN_ override any setting
// (TOKNUN_DATABASE_DSN, TOKNUN_CACHE_ADDR, TOKNUN_SERVER_JWT_SECRET, ...).
func Load(path string) (*Config, error) {
	v := viper.New()

	v.SetDefault("server.host", "localhost")
	v.SetDefault("server.port", 8080)
	v.SetDefault("cache.ttl", "1h")
	// Unmarshal only sees keys viper knows about, so every remaining key
	// gets an empty default to let its TOKNUN_ variable through.
	v.SetDefault("dictionaries.abbreviations_file", "")
	v.SetDefault("dictionaries.static_phrases_file", "")
	v.SetDefault("dictionaries.ambiguous_phrases_file", "")
	v.SetDefault("dictionaries.names_file", "")
	v.SetDefault("database.dsn", "")
	v.SetDefault("database.driver", "")
	v.SetDefault("cache.addr", "")
	v.SetDefault("cache.db", 0)
	v.SetDefault("server.jwt_secret", "")

	if path != "" {
		v.SetConfigFile(path)
	} else if env := os.Getenv(envPrefix + "_CONFIG"); env != "" {
		v.SetConfigFile(env)
	} else {
		v.SetConfigName("toknun")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("toknun: read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("toknun: unmarshal config: %w", err)
	}

	return &cfg, nil
}

// Watch installs a viper file watcher that calls onChange whenever the
// loaded config file is modified on disk, via fsnotify (wired
// transitively through viper.WatchConfig). `toknun serve` uses it only to
// log the change; the running server keeps the dictionaries and server
// settings it started with.
func Watch(path string, onChange func(*Config)) error {
	v := viper.New()
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("toknun")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return fmt.Errorf("toknun: read config: %w", err)
		}
	}
	v.OnConfigChange(func(e fsnotify.Event) {
		var cfg Config
		if err := v.Unmarshal(&cfg); err != nil {
			return
		}
		onChange(&cfg)
	})
	v.WatchConfig()
	return nil
}

// LoadDictionaries resolves Dictionaries overrides against package-level
// defaults, per SPEC_FULL.md §A.1: an unset file path keeps the default
// for that dictionary kind.
func (c *Config) LoadDictionaries() (pipeline.Dictionaries, error) {
	dict := pipeline.DefaultDictionaries()

	if c.Dictionaries.StaticPhrasesFile != "" {
		var phrases []pipeline.StaticPhrase
		if err := readYAMLFile(c.Dictionaries.StaticPhrasesFile, &phrases); err != nil {
			return dict, err
		}
		dict.StaticPhrases = phrases
	}
	if c.Dictionaries.AmbiguousPhrasesFile != "" {
		var phrases []pipeline.AmbiguousPhrase
		if err := readYAMLFile(c.Dictionaries.AmbiguousPhrasesFile, &phrases); err != nil {
			return dict, err
		}
		dict.AmbiguousPhrases = phrases
	}
	if c.Dictionaries.AbbreviationsFile != "" {
		var abbrev pipeline.Abbreviations
		if err := readYAMLFile(c.Dictionaries.AbbreviationsFile, &abbrev); err != nil {
			return dict, err
		}
		dict.Abbreviations = abbrev
	}
	if c.Dictionaries.NamesFile != "" {
		var names pipeline.NameDictionaries
		if err := readYAMLFile(c.Dictionaries.NamesFile, &names); err != nil {
			return dict, err
		}
		dict.Names = names
	}

	return dict, nil
}

// readYAMLFile decodes a YAML dictionary file with gopkg.in/yaml.v3,
// used instead of viper's generic map unmarshaling for the ordered
// phrase lists (SPEC_FULL.md §B) where field order and slice shape
// matter more than viper's map-merge semantics.
func readYAMLFile(path string, out any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("toknun: read dictionary file %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, out); err != nil {
		return fmt.Errorf("toknun: parse dictionary file %s: %w", path, err)
	}
	return nil
}
