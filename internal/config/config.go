// Package config loads wordpinyin settings from defaults, an optional config
// file, WORDPINYIN_* environment variables and command-line flags.
package config

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

type Config struct {
	Pinyin    PinyinConfig    `mapstructure:"pinyin"`
	Segmenter SegmenterConfig `mapstructure:"segmenter"`
	Resolver  ResolverConfig  `mapstructure:"resolver"`
	Batch     BatchConfig     `mapstructure:"batch"`
	Log       LogConfig       `mapstructure:"log"`
}

type PinyinConfig struct {
	Style     string `mapstructure:"style"`
	Strict    bool   `mapstructure:"strict"`
	FoldWidth bool   `mapstructure:"fold_width"`
}

type SegmenterConfig struct {
	Backend        string `mapstructure:"backend"`
	DictPath       string `mapstructure:"dict_path"`
	HMM            bool   `mapstructure:"hmm"`
	ModelPath      string `mapstructure:"model_path"`
	VocabPath      string `mapstructure:"vocab_path"`
	PoolSize       int    `mapstructure:"pool_size"`
	Threads        int    `mapstructure:"threads"`
	ORTLibraryPath string `mapstructure:"ort_library_path"`
}

type ResolverConfig struct {
	PhrasePath      string `mapstructure:"phrase_path"`
	DisableDefaults bool   `mapstructure:"disable_defaults"`
}

type BatchConfig struct {
	Concurrency int `mapstructure:"concurrency"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
}

type LoadOptions struct {
	Cmd        flagBinder
	ConfigFile string
	Defaults   Config
}

type flagBinder interface {
	Flags() *pflag.FlagSet
}

func DefaultConfig() Config {
	return Config{
		Pinyin: PinyinConfig{
			Style:     "plain",
			Strict:    true,
			FoldWidth: true,
		},
		Segmenter: SegmenterConfig{
			Backend:   BackendGSE,
			HMM:       true,
			ModelPath: "models/bmes_tagger.onnx",
			VocabPath: "models/vocab.txt",
			PoolSize:  2,
		},
		Batch: BatchConfig{
			Concurrency: 4,
		},
		Log: LogConfig{
			Level: "warn",
		},
	}
}

func RegisterFlags(fs *pflag.FlagSet, defaults Config) {
	fs.String("pinyin-style", defaults.Pinyin.Style, "Pinyin style: numeric|plain|marks")
	fs.Bool("pinyin-strict", defaults.Pinyin.Strict, "Fail when words and syllables disagree")
	fs.Bool("pinyin-fold-width", defaults.Pinyin.FoldWidth, "Fold full-width letters and digits to ASCII")
	fs.String("segmenter-backend", defaults.Segmenter.Backend, "Word segmenter: gse|unigram|onnx")
	fs.String("segmenter-dict-path", defaults.Segmenter.DictPath, "Word dictionary (unigram) or user dictionary (gse)")
	fs.Bool("segmenter-hmm", defaults.Segmenter.HMM, "Join unknown characters with the gse HMM")
	fs.String("segmenter-model-path", defaults.Segmenter.ModelPath, "Path to ONNX tagging model")
	fs.String("segmenter-vocab-path", defaults.Segmenter.VocabPath, "Path to tagging model vocabulary")
	fs.Int("segmenter-pool-size", defaults.Segmenter.PoolSize, "ONNX session pool size")
	fs.Int("segmenter-threads", defaults.Segmenter.Threads, "ONNX Runtime intra-op thread count (0 = runtime default)")
	fs.String("segmenter-ort-library-path", defaults.Segmenter.ORTLibraryPath, "Path to ONNX Runtime shared library")
	fs.String("resolver-phrase-path", defaults.Resolver.PhrasePath, "Extra phrase pinyin dictionary (text or .pb)")
	fs.Bool("resolver-disable-defaults", defaults.Resolver.DisableDefaults, "Do not load the built-in phrase table")
	fs.Int("batch-concurrency", defaults.Batch.Concurrency, "Max texts converted at once")
	fs.String("log-level", defaults.Log.Level, "Log level: debug|info|warn|error")
}

func Load(opts LoadOptions) (Config, error) {
	v := viper.New()

	setDefaults(v, opts.Defaults)
	if opts.Cmd != nil {
		if err := bindFlags(v, opts.Cmd.Flags()); err != nil {
			return Config{}, err
		}
	}

	v.SetEnvPrefix("WORDPINYIN")
	replacer := strings.NewReplacer("-", "_", ".", "_", "__", "_")
	v.SetEnvKeyReplacer(replacer)
	if err := v.BindEnv("segmenter.ort_library_path", "WORDPINYIN_ORT_LIB", "ORT_LIBRARY_PATH"); err != nil {
		return Config{}, fmt.Errorf("bind ort env vars: %w", err)
	}
	v.AutomaticEnv()

	if opts.ConfigFile != "" {
		v.SetConfigFile(opts.ConfigFile)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config file: %w", err)
		}
	} else {
		v.SetConfigName("wordpinyin")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
				return Config{}, fmt.Errorf("read config file: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}

	backend, err := NormalizeBackend(cfg.Segmenter.Backend)
	if err != nil {
		return Config{}, err
	}
	cfg.Segmenter.Backend = backend

	return cfg, nil
}

// SlogLevel maps the configured level name to a slog.Level.
func (c LogConfig) SlogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(c.Level))); err != nil {
		return slog.LevelWarn, fmt.Errorf("invalid log level %q: %w", c.Level, err)
	}
	return level, nil
}

func setDefaults(v *viper.Viper, c Config) {
	v.SetDefault("pinyin.style", c.Pinyin.Style)
	v.SetDefault("pinyin.strict", c.Pinyin.Strict)
	v.SetDefault("pinyin.fold_width", c.Pinyin.FoldWidth)
	v.SetDefault("segmenter.backend", c.Segmenter.Backend)
	v.SetDefault("segmenter.dict_path", c.Segmenter.DictPath)
	v.SetDefault("segmenter.hmm", c.Segmenter.HMM)
	v.SetDefault("segmenter.model_path", c.Segmenter.ModelPath)
	v.SetDefault("segmenter.vocab_path", c.Segmenter.VocabPath)
	v.SetDefault("segmenter.pool_size", c.Segmenter.PoolSize)
	v.SetDefault("segmenter.threads", c.Segmenter.Threads)
	v.SetDefault("segmenter.ort_library_path", c.Segmenter.ORTLibraryPath)
	v.SetDefault("resolver.phrase_path", c.Resolver.PhrasePath)
	v.SetDefault("resolver.disable_defaults", c.Resolver.DisableDefaults)
	v.SetDefault("batch.concurrency", c.Batch.Concurrency)
	v.SetDefault("log.level", c.Log.Level)
}

// flagKeys maps each flag to the config key it sets.
var flagKeys = map[string]string{
	"pinyin-style":               "pinyin.style",
	"pinyin-strict":              "pinyin.strict",
	"pinyin-fold-width":          "pinyin.fold_width",
	"segmenter-backend":          "segmenter.backend",
	"segmenter-dict-path":        "segmenter.dict_path",
	"segmenter-hmm":              "segmenter.hmm",
	"segmenter-model-path":       "segmenter.model_path",
	"segmenter-vocab-path":       "segmenter.vocab_path",
	"segmenter-pool-size":        "segmenter.pool_size",
	"segmenter-threads":          "segmenter.threads",
	"segmenter-ort-library-path": "segmenter.ort_library_path",
	"resolver-phrase-path":       "resolver.phrase_path",
	"resolver-disable-defaults":  "resolver.disable_defaults",
	"batch-concurrency":          "batch.concurrency",
	"log-level":                  "log.level",
}

// bindFlags binds registered flags to their nested keys so that a flag
// only overrides the config file when it is set.
func bindFlags(v *viper.Viper, fs *pflag.FlagSet) error {
	for name, key := range flagKeys {
		f := fs.Lookup(name)
		if f == nil {
			continue
		}
		if err := v.BindPFlag(key, f); err != nil {
			return fmt.Errorf("bind flag %s: %w", name, err)
		}
	}
	return nil
}
