// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 SecureConnect Contributors

package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCommand_HasExpectedSubcommands(t *testing.T) {
	cmd := NewRootCmd()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{"--help"})

	require.NoError(t, cmd.Execute())

	output := buf.String()
	for _, sub := range []string{"serve", "migrate"} {
		assert.Contains(t, output, sub, "Help missing %q command", sub)
	}
}

func TestRootCommand_ConfigFlag(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		wantFlag string
	}{
		{
			name:     "config flag",
			args:     []string{"--config", "/path/to/config.yaml", "--help"},
			wantFlag: "/path/to/config.yaml",
		},
		{
			name:     "config flag with equals",
			args:     []string{"--config=/etc/secureconnect.yaml", "--help"},
			wantFlag: "/etc/secureconnect.yaml",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Reset global
			configFile = ""

			cmd := NewRootCmd()
			buf := new(bytes.Buffer)
			cmd.SetOut(buf)
			cmd.SetArgs(tt.args)

			require.NoError(t, cmd.Execute())
			assert.Equal(t, tt.wantFlag, configFile)
		})
	}
}

func TestServeCommand_Flags(t *testing.T) {
	cmd := NewServeCmd()

	for _, flagName := range []string{"listen", "metrics", "database", "secret", "ttl", "securecookie", "logformat"} {
		assert.NotNil(t, cmd.Flags().Lookup(flagName), "serve missing --%s flag", flagName)
	}
}

func TestMigrateCommand_HasOperations(t *testing.T) {
	cmd := NewMigrateCmd()

	names := make([]string, 0, 3)
	for _, sub := range cmd.Commands() {
		names = append(names, sub.Name())
	}

	assert.Contains(t, names, "up")
	assert.Contains(t, names, "down")
	assert.Contains(t, names, "status")
}
