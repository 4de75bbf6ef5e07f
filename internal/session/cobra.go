// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package session

import (
	"errors"

	"github.com/spf13/cobra"
)

// Persistent flag names read by PreRunLoad.
const (
	FlagConfig       = "config"
	FlagLogLevel     = "log-level"
	FlagPretty       = "pretty"
	FlagStrictCycles = "strict-cycles"
)

// FromCommand extracts the session Context from a cobra.Command's context.
// Returns nil if no Context is stored.
func FromCommand(cmd *cobra.Command) *Context {
	return From(cmd.Context())
}

// RequireFromCommand extracts the session Context from a cobra.Command's
// context, returning an error if not found.
func RequireFromCommand(cmd *cobra.Command) (*Context, error) {
	ctx := FromCommand(cmd)
	if ctx == nil {
		return nil, errors.New("session not loaded")
	}
	return ctx, nil
}

// PreRunLoad returns a PersistentPreRunE function that loads the session
// and stores it in the command's context. Flags the user set explicitly
// override the configuration.
func PreRunLoad(cmd *cobra.Command, _ []string) error {
	flags := cmd.Flags()
	opts := Options{
		Overrides: make(map[string]any),
		LogOutput: cmd.ErrOrStderr(),
	}

	if f := flags.Lookup(FlagConfig); f != nil {
		opts.ConfigPath = f.Value.String()
	}
	if flags.Changed(FlagLogLevel) {
		opts.Overrides["log.level"], _ = flags.GetString(FlagLogLevel)
	}
	if flags.Changed(FlagPretty) {
		opts.Overrides["log.pretty"], _ = flags.GetBool(FlagPretty)
	}
	if flags.Changed(FlagStrictCycles) {
		opts.Overrides["flatten.strict"], _ = flags.GetBool(FlagStrictCycles)
	}

	ctx, err := Load(cmd.Context(), opts)
	if err != nil {
		return err
	}
	cmd.SetContext(ctx)
	return nil
}
