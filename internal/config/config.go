// Package config loads docgen settings from defaults, an optional YAML file
// and JUNIPER_DOCGEN_* environment variables.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/spf13/viper"

	"github.com/FocuswithJustin/JuniperDocgen/core/assembly"
	"github.com/FocuswithJustin/JuniperDocgen/core/errors"
	"github.com/FocuswithJustin/JuniperDocgen/internal/logging"
)

const (
	// EnvPrefix prefixes every environment override.
	EnvPrefix = "JUNIPER_DOCGEN"

	// DefaultCacheSize is the default number of documents kept in memory.
	DefaultCacheSize = 32

	// DefaultMatcherCacheSize is the default number of compiled glossary
	// matchers kept between assemblies.
	DefaultMatcherCacheSize = 64
)

// Config holds all configuration for docgen.
type Config struct {
	Assembly  AssemblyConfig     `mapstructure:"assembly"`
	Templates assembly.Templates `mapstructure:"templates"`
	Direction DirectionConfig    `mapstructure:"direction"`
	Logging   LoggingConfig      `mapstructure:"logging"`
	Store     StoreConfig        `mapstructure:"store"`
	Output    OutputConfig       `mapstructure:"output"`
}

// AssemblyConfig holds the default assembly request.
type AssemblyConfig struct {
	Strategy         string `mapstructure:"strategy"`
	Layout           string `mapstructure:"layout"`
	ChunkSize        string `mapstructure:"chunk_size"`
	MatcherCacheSize int    `mapstructure:"matcher_cache_size"`
}

// DirectionConfig lists languages written right to left whose script does
// not say so.
type DirectionConfig struct {
	RTLLanguages []string `mapstructure:"rtl_languages"`
}

// LoggingConfig holds structured logging settings.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// StoreConfig locates the unit store and the document cache.
type StoreConfig struct {
	DBPath    string `mapstructure:"db_path"`
	CacheDir  string `mapstructure:"cache_dir"`
	CacheSize int    `mapstructure:"cache_size"`
}

// OutputConfig selects the document encoding.
type OutputConfig struct {
	Format   string `mapstructure:"format"`
	Compress bool   `mapstructure:"compress"`
}

// Output formats.
const (
	OutputHTML     = "html"
	OutputMarkdown = "markdown"
)

// Load reads configuration from defaults, the file at path (if not empty)
// or a docgen.yaml found in the working or home directory, and environment
// variables.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("docgen")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath(filepath.Join(homeDir(), ".juniper-docgen"))
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok || path != "" {
			return nil, fmt.Errorf("reading config: %w", err)
		}
		// No config file: defaults and env vars only
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return &cfg, nil
}

// Default returns the configuration used when nothing is overridden.
func Default() *Config {
	v := viper.New()
	setDefaults(v)
	var cfg Config
	// Defaults always decode.
	_ = v.Unmarshal(&cfg)
	return &cfg
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("assembly.strategy", assembly.LanguageBookOrder.String())
	v.SetDefault("assembly.layout", assembly.OneColumn.String())
	v.SetDefault("assembly.chunk_size", assembly.ChunkVerse.String())
	v.SetDefault("assembly.matcher_cache_size", DefaultMatcherCacheSize)

	t := assembly.DefaultTemplates()
	v.SetDefault("templates.row_begin", t.RowBegin)
	v.SetDefault("templates.row_end", t.RowEnd)
	v.SetDefault("templates.column_begin", t.ColumnBegin)
	v.SetDefault("templates.column_end", t.ColumnEnd)
	v.SetDefault("templates.direction_begin", t.DirectionBegin)
	v.SetDefault("templates.direction_end", t.DirectionEnd)
	v.SetDefault("templates.book_heading", t.BookHeading)
	v.SetDefault("templates.chapter_heading", t.ChapterHeading)
	v.SetDefault("templates.verse", t.Verse)
	v.SetDefault("templates.note", t.Note)
	v.SetDefault("templates.question", t.Question)
	v.SetDefault("templates.word_links", t.WordLinks)
	v.SetDefault("templates.word_link_item", t.WordLinkItem)
	v.SetDefault("templates.glossary_heading", t.GlossaryHeading)
	v.SetDefault("templates.uses", t.Uses)
	v.SetDefault("templates.use_item", t.UseItem)
	v.SetDefault("templates.footnotes", t.Footnotes)

	v.SetDefault("direction.rtl_languages", []string{})

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "text")

	v.SetDefault("store.db_path", "units.db")
	v.SetDefault("store.cache_dir", "")
	v.SetDefault("store.cache_size", DefaultCacheSize)

	v.SetDefault("output.format", OutputHTML)
	v.SetDefault("output.compress", false)
}

// Validate checks enums, sizes and templates.
func (c *Config) Validate() error {
	if _, err := c.Request(); err != nil {
		return err
	}
	if c.Assembly.MatcherCacheSize < 0 {
		return errors.NewValidation("assembly.matcher_cache_size", "must be >= 0")
	}
	if err := c.Templates.Validate(); err != nil {
		return err
	}
	if _, err := logging.ParseLevel(c.Logging.Level); err != nil {
		return errors.NewValidation("logging.level", err.Error())
	}
	if _, err := logging.ParseFormat(c.Logging.Format); err != nil {
		return errors.NewValidation("logging.format", err.Error())
	}
	if c.Store.DBPath == "" {
		return errors.NewValidation("store.db_path", "must not be empty")
	}
	if c.Store.CacheSize < 0 {
		return errors.NewValidation("store.cache_size", "must be >= 0")
	}
	if !slices.Contains([]string{OutputHTML, OutputMarkdown}, c.Output.Format) {
		return errors.NewValidation("output.format", fmt.Sprintf("unknown format %q", c.Output.Format))
	}
	return nil
}

// Request returns the default assembly request.
func (c *Config) Request() (assembly.Request, error) {
	var req assembly.Request
	var err error
	if req.Strategy, err = assembly.ParseStrategy(c.Assembly.Strategy); err != nil {
		return req, err
	}
	if req.Layout, err = assembly.ParseLayout(c.Assembly.Layout); err != nil {
		return req, err
	}
	if req.Chunk, err = assembly.ParseChunkSize(c.Assembly.ChunkSize); err != nil {
		return req, err
	}
	return req, nil
}

// AssemblyTemplates returns the fragment templates, with built-in defaults
// for any left empty.
func (c *Config) AssemblyTemplates() assembly.Templates {
	return c.Templates.WithDefaults()
}

// EngineOptions returns the engine options implied by the configuration.
func (c *Config) EngineOptions() []assembly.Option {
	opts := []assembly.Option{
		assembly.WithTemplates(c.AssemblyTemplates()),
		assembly.WithRTLLanguages(c.Direction.RTLLanguages...),
	}
	if c.Assembly.MatcherCacheSize > 0 {
		opts = append(opts, assembly.WithMatcherCacheSize(c.Assembly.MatcherCacheSize))
	}
	return opts
}

func homeDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return home
}
