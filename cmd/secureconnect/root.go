// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 SecureConnect Contributors

package main

import (
	"github.com/spf13/cobra"
)

// Global flags available to all subcommands.
var configFile string

// NewRootCmd creates the root command for the SecureConnect CLI.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "secureconnect",
		Short: "SecureConnect - username/password authentication service",
		Long: `SecureConnect is an authentication service for web applications:
registration, login, session verification, logout, and route gating.`,
	}

	cmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path")

	cmd.AddCommand(NewServeCmd())
	cmd.AddCommand(NewMigrateCmd())

	return cmd
}
