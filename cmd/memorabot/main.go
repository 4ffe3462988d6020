// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Command memorabot is an MCP server that gives LLM assistants
// bucket-organized note storage with token-efficient editing tools.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/petar-djukic/memorabot/internal/server"
)

const version = "0.1.0"

func main() {
	rootCmd := &cobra.Command{
		Use:   "memorabot",
		Short: "Note-taking MCP server with token-efficient editing",
		Long:  "memorabot stores notes as files in named buckets and exposes them to LLM assistants over MCP, with editing tools that send diffs instead of whole files.",
	}

	// Global flags.
	rootCmd.PersistentFlags().String("data-dir", defaultDataDir(), "Directory holding the note buckets")
	rootCmd.PersistentFlags().Int64("max-file-size", 0, "Maximum file size in bytes (0 = 1 MiB default)")
	rootCmd.PersistentFlags().Float64("fuzzy-threshold", 0, "Minimum similarity for fuzzy text location (0 = 0.8 default)")
	rootCmd.PersistentFlags().Float64("duplicate-threshold", 0, "Similarity above which smart_append skips content (0 = 0.85 default)")
	rootCmd.PersistentFlags().String("pattern-mode", "literal", "How modify_pattern interprets patterns: literal or regex")
	rootCmd.PersistentFlags().Bool("strict-match", false, "Fail edits when the search text is ambiguous instead of taking the first occurrence")
	rootCmd.PersistentFlags().String("history-db", "", "SQLite file for the edit log (default <data-dir>/.history.db)")
	rootCmd.PersistentFlags().Bool("no-history", false, "Disable edit history recording")

	// Bind flags to viper.
	viper.BindPFlag("data-dir", rootCmd.PersistentFlags().Lookup("data-dir"))
	viper.BindPFlag("max-file-size", rootCmd.PersistentFlags().Lookup("max-file-size"))
	viper.BindPFlag("fuzzy-threshold", rootCmd.PersistentFlags().Lookup("fuzzy-threshold"))
	viper.BindPFlag("duplicate-threshold", rootCmd.PersistentFlags().Lookup("duplicate-threshold"))
	viper.BindPFlag("pattern-mode", rootCmd.PersistentFlags().Lookup("pattern-mode"))
	viper.BindPFlag("strict-match", rootCmd.PersistentFlags().Lookup("strict-match"))
	viper.BindPFlag("history-db", rootCmd.PersistentFlags().Lookup("history-db"))
	viper.BindPFlag("no-history", rootCmd.PersistentFlags().Lookup("no-history"))

	// Env vars: MEMORABOT_DATA_DIR, MEMORABOT_PATTERN_MODE, etc.
	viper.SetEnvPrefix("MEMORABOT")
	viper.AutomaticEnv()

	// Config file.
	viper.SetConfigName(".memorabot")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.ReadInConfig() // Ignore error; config file is optional.

	// Add commands.
	rootCmd.AddCommand(newServeCmd())
	rootCmd.AddCommand(newVersionCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// defaultDataDir puts the buckets under the user's home directory,
// falling back to the working directory when home is unknown.
func defaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "memorabot_data"
	}
	return filepath.Join(home, "memorabot_data")
}

// newVersionCmd creates the "version" command.
func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print memorabot version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("memorabot %s\n", version)
		},
	}
}

// serverConfig assembles the server configuration from viper.
func serverConfig() server.Config {
	dataDir := viper.GetString("data-dir")

	historyPath := viper.GetString("history-db")
	if historyPath == "" {
		historyPath = filepath.Join(dataDir, ".history.db")
	}
	if viper.GetBool("no-history") {
		historyPath = ""
	}

	return server.Config{
		DataDir:            dataDir,
		MaxFileSize:        viper.GetInt64("max-file-size"),
		FuzzyThreshold:     viper.GetFloat64("fuzzy-threshold"),
		DuplicateThreshold: viper.GetFloat64("duplicate-threshold"),
		PatternMode:        viper.GetString("pattern-mode"),
		StrictMatch:        viper.GetBool("strict-match"),
		HistoryPath:        historyPath,
	}
}
