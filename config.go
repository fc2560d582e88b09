package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/kylesnowschwartz/tail-tools/payload"
)

// Args view modes for tool-call cards.
const (
	argsViewTree  = "tree"  // recursive key/value tables
	argsViewTable = "table" // flat top-level table with date detection
)

// envPrefix namespaces environment overrides: TAIL_TOOLS_MAX_ROWS=10.
const envPrefix = "TAIL_TOOLS"

// config is the resolved runtime configuration. Precedence, highest first:
// explicit flags, TAIL_TOOLS_* environment, config file, flag defaults.
type config struct {
	Width    int
	ArgsView string
	MaxLines int
	MaxChars int
	MaxRows  int
	LogFile  string
	TZ       string
	Dump     bool
	Expand   bool
}

// Policy returns the disclosure thresholds.
func (c config) Policy() payload.Policy {
	return payload.Policy{MaxLines: c.MaxLines, MaxChars: c.MaxChars, MaxRows: c.MaxRows}
}

// Location resolves TZ, defaulting to the local zone.
func (c config) Location() (*time.Location, error) {
	if c.TZ == "" || strings.EqualFold(c.TZ, "local") {
		return time.Local, nil
	}
	return time.LoadLocation(c.TZ)
}

// addConfigFlags registers every flag viper reads. Defaults live here so
// --help shows them.
func addConfigFlags(fs *pflag.FlagSet) {
	def := payload.DefaultPolicy
	fs.Bool("dump", false, "print the rendered transcript and exit")
	fs.Bool("expand", false, "start with every collapsible card expanded")
	fs.Int("width", maxContentWidth, "maximum render width")
	fs.String("args-view", argsViewTree, "tool-call argument layout: tree or table")
	fs.Int("max-lines", def.MaxLines, "collapse text results with more lines")
	fs.Int("max-chars", def.MaxChars, "collapse text results with more characters")
	fs.Int("max-rows", def.MaxRows, "collapse array results with more elements")
	fs.String("log-file", "", "write debug logs to this file")
	fs.String("tz", "", "time zone for timestamps and dates (IANA name, default local)")
}

// defaultConfigPath is $XDG_CONFIG_HOME/tail-tools/config.yaml, or the
// platform equivalent.
func defaultConfigPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "tail-tools", "config.yaml")
}

// newViper layers the config file and environment under cmd's flags.
// A missing default config file is fine; a missing --config file is not.
func newViper(cmd *cobra.Command, cfgFile string) (*viper.Viper, error) {
	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	path := cfgFile
	if path == "" {
		path = defaultConfigPath()
	}
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			if cfgFile != "" || !errors.Is(err, os.ErrNotExist) {
				return nil, fmt.Errorf("read config %s: %w", path, err)
			}
		}
	}

	if err := v.BindPFlags(cmd.Flags()); err != nil {
		return nil, fmt.Errorf("bind flags: %w", err)
	}
	return v, nil
}

// loadConfig reads and validates the configuration from v.
func loadConfig(v *viper.Viper) (config, error) {
	c := config{
		Width:    v.GetInt("width"),
		ArgsView: strings.ToLower(v.GetString("args-view")),
		MaxLines: v.GetInt("max-lines"),
		MaxChars: v.GetInt("max-chars"),
		MaxRows:  v.GetInt("max-rows"),
		LogFile:  v.GetString("log-file"),
		TZ:       v.GetString("tz"),
		Dump:     v.GetBool("dump"),
		Expand:   v.GetBool("expand"),
	}

	switch c.ArgsView {
	case argsViewTree, argsViewTable:
	default:
		return config{}, fmt.Errorf("args-view must be %q or %q, got %q", argsViewTree, argsViewTable, c.ArgsView)
	}
	if c.Width < minRenderWidth {
		return config{}, fmt.Errorf("width must be at least %d, got %d", minRenderWidth, c.Width)
	}
	for name, n := range map[string]int{"max-lines": c.MaxLines, "max-chars": c.MaxChars, "max-rows": c.MaxRows} {
		if n < 1 {
			return config{}, fmt.Errorf("%s must be positive, got %d", name, n)
		}
	}
	if _, err := c.Location(); err != nil {
		return config{}, fmt.Errorf("tz: %w", err)
	}
	return c, nil
}
