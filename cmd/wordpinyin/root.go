package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/jamesainslie/go-wordpinyin/internal/config"
)

var (
	cfgFile   string
	activeCfg *config.Config
)

func NewRootCmd() *cobra.Command {
	defaults := config.DefaultConfig()

	cmd := &cobra.Command{
		Use:           "wordpinyin",
		Short:         "Convert Chinese text to word-grouped pinyin",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			loaded, err := config.Load(config.LoadOptions{
				Cmd:        cmd,
				ConfigFile: cfgFile,
				Defaults:   defaults,
			})
			if err != nil {
				return err
			}
			activeCfg = &loaded
			setupLogger(loaded.Log)
			return nil
		},
	}

	cmd.PersistentFlags().StringVar(&cfgFile, "config", "", "Optional config file (yaml|toml|json)")
	config.RegisterFlags(cmd.PersistentFlags(), defaults)

	cmd.AddCommand(newConvertCmd())
	cmd.AddCommand(newCleanCmd())
	cmd.AddCommand(newListCmd())
	cmd.AddCommand(newBatchCmd())
	cmd.AddCommand(newDictCmd())

	return cmd
}

// setupLogger configures the process-wide slog default logger.
func setupLogger(lc config.LogConfig) {
	lvl, err := lc.SlogLevel()
	if err != nil {
		lvl = slog.LevelWarn
	}
	h := slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: lvl})
	slog.SetDefault(slog.New(h))
}

func requireConfig() (config.Config, error) {
	if activeCfg == nil {
		return config.Config{}, fmt.Errorf("configuration not loaded")
	}
	return *activeCfg, nil
}
