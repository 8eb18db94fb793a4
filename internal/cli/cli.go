// Package cli holds the pieces shared by idk command-line tools: build
// information and log handler setup.
package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"runtime"

	"github.com/paratym/idk/internal/config"
	"github.com/paratym/idk/internal/lexer"
)

// Set by the linker.
var (
	Version   = "0.1.0"
	CommitSHA = "unknown"
)

// VersionInfo describes a build.
type VersionInfo struct {
	Version   string `json:"version"`
	Language  string `json:"language"`
	CommitSHA string `json:"commit_sha"`
	GoVersion string `json:"go_version"`
	Platform  string `json:"platform"`
	Arch      string `json:"arch"`
}

// GetVersionInfo returns information about the running binary.
func GetVersionInfo() VersionInfo {
	return VersionInfo{
		Version:   Version,
		Language:  lexer.LanguageVersion,
		CommitSHA: CommitSHA,
		GoVersion: runtime.Version(),
		Platform:  runtime.GOOS,
		Arch:      runtime.GOARCH,
	}
}

// PrintVersion writes the build information of tool to w.
func PrintVersion(w io.Writer, tool string, jsonOutput bool) error {
	info := GetVersionInfo()
	if jsonOutput {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(struct {
			Tool string `json:"tool"`
			VersionInfo
		}{tool, info})
	}

	fmt.Fprintf(w, "%s v%s\n", tool, info.Version)
	fmt.Fprintf(w, "Language: %s\n", info.Language)
	if info.CommitSHA != "unknown" && info.CommitSHA != "" {
		fmt.Fprintf(w, "Commit: %s\n", info.CommitSHA)
	}
	fmt.Fprintf(w, "Go Version: %s\n", info.GoVersion)
	_, err := fmt.Fprintf(w, "Platform: %s/%s\n", info.Platform, info.Arch)
	return err
}

// NewLogger builds the logger described by cfg. verbose forces debug level.
func NewLogger(w io.Writer, cfg config.LogConfig, verbose bool) (*slog.Logger, error) {
	level, err := cfg.SlogLevel()
	if err != nil {
		return nil, err
	}
	if verbose {
		level = slog.LevelDebug
	}

	opts := &slog.HandlerOptions{Level: level}
	switch cfg.Format {
	case "", "text":
		return slog.New(slog.NewTextHandler(w, opts)), nil
	case "json":
		return slog.New(slog.NewJSONHandler(w, opts)), nil
	default:
		return nil, fmt.Errorf("log.format %q: expected text or json", cfg.Format)
	}
}
