// Package config loads idk project manifests (idk.toml or idk.yaml).
package config

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/BurntSushi/toml"
	semver "github.com/Masterminds/semver/v3"
	"gopkg.in/yaml.v3"

	"github.com/paratym/idk/internal/lexer"
)

// ManifestNames are the file names Find looks for, in order of preference.
var ManifestNames = []string{"idk.toml", "idk.yaml", "idk.yml"}

// ErrNotFound is returned by Find when no manifest exists up to the
// file system root.
var ErrNotFound = errors.New("no idk manifest found")

// Config is a project manifest.
type Config struct {
	Package PackageConfig `toml:"package" yaml:"package"`
	Source  SourceConfig  `toml:"source" yaml:"source"`
	Log     LogConfig     `toml:"log" yaml:"log"`

	// Dir is the directory the manifest was loaded from. Relative source
	// paths are resolved against it.
	Dir string `toml:"-" yaml:"-"`
}

// PackageConfig identifies the project.
type PackageConfig struct {
	Name    string `toml:"name" yaml:"name"`
	Version string `toml:"version" yaml:"version"`
	// Language is a semver constraint on the grammar revision.
	Language string `toml:"language" yaml:"language"`
}

// SourceConfig locates source trees.
type SourceConfig struct {
	Root      string `toml:"root" yaml:"root"`
	Std       string `toml:"std,omitempty" yaml:"std,omitempty"`
	Ext       string `toml:"ext,omitempty" yaml:"ext,omitempty"`
	Extension string `toml:"extension" yaml:"extension"`
	// Jobs bounds concurrent file parses; zero means one per CPU.
	Jobs int `toml:"jobs" yaml:"jobs"`
}

// LogConfig selects the log handler.
type LogConfig struct {
	Level  string `toml:"level" yaml:"level"`
	Format string `toml:"format" yaml:"format"`
}

// Default returns the configuration used when no manifest exists.
func Default() *Config {
	return &Config{
		Package: PackageConfig{
			Name:     "main",
			Version:  "0.1.0",
			Language: ">= " + lexer.LanguageVersion,
		},
		Source: SourceConfig{
			Root:      ".",
			Extension: ".idk",
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
		Dir: ".",
	}
}

// Load reads and validates the manifest at path. Fields absent from the
// file keep their defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest: %w", err)
	}

	cfg := Default()
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".toml":
		if _, err := toml.Decode(string(data), cfg); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", path, err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", path, err)
		}
	default:
		return nil, fmt.Errorf("unsupported manifest format %q", ext)
	}

	if cfg.Dir, err = filepath.Abs(filepath.Dir(path)); err != nil {
		return nil, fmt.Errorf("failed to resolve manifest directory: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid manifest %s: %w", path, err)
	}
	return cfg, nil
}

// Find returns the path of the nearest manifest in dir or its parents.
func Find(dir string) (string, error) {
	dir, err := filepath.Abs(dir)
	if err != nil {
		return "", err
	}
	for {
		for _, name := range ManifestNames {
			path := filepath.Join(dir, name)
			if info, err := os.Stat(path); err == nil && !info.IsDir() {
				return path, nil
			}
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", ErrNotFound
		}
		dir = parent
	}
}

// LoadDir loads the nearest manifest above dir, falling back to Default
// rooted at dir.
func LoadDir(dir string) (*Config, error) {
	path, err := Find(dir)
	if errors.Is(err, ErrNotFound) {
		cfg := Default()
		if cfg.Dir, err = filepath.Abs(dir); err != nil {
			return nil, err
		}
		return cfg, nil
	}
	if err != nil {
		return nil, err
	}
	return Load(path)
}

// Validate checks field formats and that the language constraint admits
// the grammar revision of this toolchain.
func (c *Config) Validate() error {
	var errs []error
	if c.Package.Name == "" {
		errs = append(errs, errors.New("package.name is required"))
	}
	if _, err := semver.NewVersion(c.Package.Version); err != nil {
		errs = append(errs, fmt.Errorf("package.version %q: %w", c.Package.Version, err))
	}
	if err := checkLanguage(c.Package.Language); err != nil {
		errs = append(errs, err)
	}
	if !strings.HasPrefix(c.Source.Extension, ".") {
		errs = append(errs, fmt.Errorf("source.extension %q must start with '.'", c.Source.Extension))
	}
	if c.Source.Jobs < 0 {
		errs = append(errs, fmt.Errorf("source.jobs must not be negative, got %d", c.Source.Jobs))
	}
	if _, err := c.Log.SlogLevel(); err != nil {
		errs = append(errs, err)
	}
	if c.Log.Format != "text" && c.Log.Format != "json" {
		errs = append(errs, fmt.Errorf("log.format %q must be text or json", c.Log.Format))
	}
	return errors.Join(errs...)
}

func checkLanguage(expr string) error {
	if strings.TrimSpace(expr) == "" {
		return nil
	}
	constraint, err := semver.NewConstraint(expr)
	if err != nil {
		return fmt.Errorf("package.language %q: %w", expr, err)
	}
	current := semver.MustParse(lexer.LanguageVersion)
	if !constraint.Check(current) {
		return fmt.Errorf("package.language %q does not admit language version %s", expr, current)
	}
	return nil
}

// SlogLevel parses the configured level name.
func (l LogConfig) SlogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(l.Level)); err != nil {
		return level, fmt.Errorf("log.level %q: %w", l.Level, err)
	}
	return level, nil
}

// Jobs returns the effective parse concurrency.
func (c *Config) Jobs() int {
	if c.Source.Jobs > 0 {
		return c.Source.Jobs
	}
	return runtime.NumCPU()
}

// RootDir is the absolute-or-manifest-relative package source root.
func (c *Config) RootDir() string { return c.resolve(c.Source.Root) }

// StdDir is the standard library root, or "" when unset.
func (c *Config) StdDir() string { return c.resolve(c.Source.Std) }

// ExtDir is the external package root, or "" when unset.
func (c *Config) ExtDir() string { return c.resolve(c.Source.Ext) }

func (c *Config) resolve(p string) string {
	if p == "" {
		return ""
	}
	if filepath.IsAbs(p) {
		return filepath.Clean(p)
	}
	return filepath.Join(c.Dir, p)
}

// Save writes the manifest to path in the format its extension names.
func (c *Config) Save(path string) error {
	var buf bytes.Buffer
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".toml":
		if err := toml.NewEncoder(&buf).Encode(c); err != nil {
			return fmt.Errorf("failed to serialize manifest: %w", err)
		}
	case ".yaml", ".yml":
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(c); err != nil {
			return fmt.Errorf("failed to serialize manifest: %w", err)
		}
		if err := enc.Close(); err != nil {
			return fmt.Errorf("failed to serialize manifest: %w", err)
		}
	default:
		return fmt.Errorf("unsupported manifest format %q", ext)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("failed to write manifest: %w", err)
	}
	return nil
}

// Init creates dir/idk.toml for a new package named name. It refuses to
// overwrite an existing manifest.
func Init(dir, name string) (string, error) {
	for _, existing := range ManifestNames {
		if _, err := os.Stat(filepath.Join(dir, existing)); err == nil {
			return "", fmt.Errorf("%s already exists in %s", existing, dir)
		}
	}
	cfg := Default()
	if name != "" {
		cfg.Package.Name = name
	}
	if err := cfg.Validate(); err != nil {
		return "", err
	}
	path := filepath.Join(dir, ManifestNames[0])
	if err := cfg.Save(path); err != nil {
		return "", err
	}
	return path, nil
}
