// Package cli implements the lturtle command-line interface.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/lturtle/pkg/buildinfo"
	"github.com/matzehuels/lturtle/pkg/cache"
	"github.com/matzehuels/lturtle/pkg/config"
	"github.com/matzehuels/lturtle/pkg/pipeline"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = "lturtle"
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	configPath string // --config
	preset     string // --preset
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "lturtle grows L-systems and draws them with a turtle",
		Long: `lturtle rewrites an axiom with L-system production rules and walks the
result with turtle graphics, producing SVG, PNG, PDF or JSON drawings.

Settings come from ~/.config/lturtle/config.toml (see 'lturtle config init'),
a named preset, or flags, in increasing order of precedence.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default ~/.config/lturtle/config.toml)")
	root.PersistentFlags().StringVarP(&c.preset, "preset", "p", "", "start from a named preset (see 'lturtle presets')")
	_ = root.RegisterFlagCompletionFunc("preset", completePresets)

	// Register all subcommands
	root.AddCommand(c.generateCommand())
	root.AddCommand(c.drawCommand())
	root.AddCommand(c.playCommand())
	root.AddCommand(c.rulesCommand())
	root.AddCommand(c.presetsCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.configCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Configuration
// =============================================================================

// loadConfig reads --config (or the default file) and applies --preset.
// A preset replaces the turtle and grammar tables; render, cache and server
// settings stay as loaded.
func (c *CLI) loadConfig() (config.Config, error) {
	var (
		cfg config.Config
		err error
	)
	if c.configPath != "" {
		cfg, err = config.Load(c.configPath)
	} else {
		cfg, err = config.LoadDefault()
	}
	if err != nil {
		return config.Config{}, err
	}

	if c.preset == "" {
		return cfg, nil
	}
	p, err := config.Preset(c.preset)
	if err != nil {
		return config.Config{}, err
	}
	p.Render, p.Cache, p.Server = cfg.Render, cfg.Cache, cfg.Server
	return p, nil
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner for CLI use.
func (c *CLI) newRunner(ctx context.Context, cfg config.CacheConfig, noCache bool) (*pipeline.Runner, error) {
	cc, err := newCache(ctx, cfg, noCache)
	if err != nil {
		return nil, err
	}
	ttl, err := cfg.Duration()
	if err != nil {
		return nil, err
	}
	r := pipeline.NewRunner(cc, newKeyer(cfg), c.Logger)
	r.TTL = ttl
	return r, nil
}

// newKeyer scopes cache keys under cfg.Prefix when one is set.
func newKeyer(cfg config.CacheConfig) cache.Keyer {
	if cfg.Prefix == "" {
		return cache.NewDefaultKeyer()
	}
	return cache.NewScopedKeyer(cache.NewDefaultKeyer(), cfg.Prefix)
}

// newCache opens the configured backend. The file backend degrades to no
// caching when the cache directory cannot be determined.
func newCache(ctx context.Context, cfg config.CacheConfig, noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	switch cfg.Backend {
	case config.CacheNone:
		return cache.NewNullCache(), nil
	case config.CacheRedis:
		return cache.NewRedisCache(ctx, cfg.URL)
	case config.CacheMongo:
		return cache.NewMongoCache(ctx, cfg.URL)
	}
	dir, err := cacheDir()
	if err != nil {
		return cache.NewNullCache(), nil
	}
	return cache.NewFileCache(dir)
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the cache directory using XDG standard (~/.cache/lturtle/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}

// =============================================================================
// Output Helpers
// =============================================================================

// parseFormats parses a comma-separated format string into a slice.
func parseFormats(s string) []string {
	if s == "" {
		return []string{pipeline.FormatSVG}
	}
	parts := strings.Split(s, ",")
	for i, p := range parts {
		parts[i] = strings.ToLower(strings.TrimSpace(p))
	}
	return parts
}

// outputPaths maps each format to a file. A single format writes to output
// as given; several formats share output's base name with one extension
// each. An empty output uses base.
func outputPaths(output, base string, formats []string) map[string]string {
	paths := make(map[string]string, len(formats))
	if output != "" && len(formats) == 1 {
		paths[formats[0]] = output
		return paths
	}
	if output != "" {
		ext := filepath.Ext(output)
		if pipeline.ValidFormats[strings.TrimPrefix(ext, ".")] {
			output = strings.TrimSuffix(output, ext)
		}
		base = output
	}
	for _, f := range formats {
		paths[f] = base + "." + f
	}
	return paths
}

// writeArtifacts writes each artifact to its path and lists the files.
func writeArtifacts(artifacts map[string][]byte, paths map[string]string, formats []string) error {
	for _, f := range formats {
		path := paths[f]
		if err := os.WriteFile(path, artifacts[f], 0o644); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
		printFile(path)
	}
	return nil
}
