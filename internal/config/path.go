// Package config provides configuration utilities for the application.
package config

import (
	"os"
	"path/filepath"
	"strings"
)

// ExpandPath expands ~ and environment variables in a file path.
// It handles both ~ for home directory and $VAR style environment variables.
func ExpandPath(path string) string {
	if path == "" {
		return path
	}

	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err == nil {
			path = filepath.Join(home, path[2:])
		}
	} else if path == "~" {
		home, err := os.UserHomeDir()
		if err == nil {
			path = home
		}
	}

	return os.ExpandEnv(path)
}

// DefaultLedgerPath returns the default location of the ledger workbook,
// under the user's Documents folder.
func DefaultLedgerPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "watch_pricing.xlsx"
	}
	return filepath.Join(home, "Documents", "watch_pricing.xlsx")
}
