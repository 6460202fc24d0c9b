// Package main is the entry point for the forge CLI
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/KirkDiggler/lesson-forge/internal/config"
	"github.com/KirkDiggler/lesson-forge/internal/errors"
)

// version is set at build time with -ldflags "-X main.version=..."
var version = "dev"

var v = viper.New()

var rootCmd = &cobra.Command{
	Use:   "forge",
	Short: "Educational Lua game script pipeline",
	Long: `forge builds educational Lua game scripts from subject templates.

It fills templates with content generated by a language model or extracted
from existing lesson files, and validates every script before writing it.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	Version:       version,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(errors.ExitCode(err))
	}
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.String("config", "", "config file (default forge.yaml in . or ./configs)")
	flags.String("templates-dir", "", "template root directory")
	flags.String("output-dir", "", "output directory")
	flags.String("log-level", "", "log level (debug, info, warn, error)")
	flags.String("log-format", "", "log format (console, json)")

	bindFlag(config.KeyConfigFile, "config")
	bindFlag("templates_dir", "templates-dir")
	bindFlag("output_dir", "output-dir")
	bindFlag("log.level", "log-level")
	bindFlag("log.format", "log-format")

	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(transformCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(templatesCmd)
	rootCmd.AddCommand(previewCmd)
	rootCmd.AddCommand(cacheCmd)
}

func bindFlag(key, flag string) {
	if err := v.BindPFlag(key, rootCmd.PersistentFlags().Lookup(flag)); err != nil {
		panic(err)
	}
}
