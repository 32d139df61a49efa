package concat

import (
	"errors"
	"fmt"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"
)

// ConfigFileName is looked up from the working directory upwards.
const ConfigFileName = "csclean.toml"

var (
	// ErrUnknownProfile is returned when a requested profile is not in the config.
	ErrUnknownProfile = errors.New("unknown profile")
)

// Profile is one [profiles.<name>] table. Unset keys leave options untouched.
type Profile struct {
	Recursive      *bool    `toml:"recursive"`
	Ext            []string `toml:"ext"`
	ExcludeDir     []string `toml:"exclude_dir"`
	Exclude        []string `toml:"exclude"`
	IgnoreBinaries *bool    `toml:"ignore_binaries"`
	MaxMB          *float64 `toml:"max_mb"`
	Headers        *bool    `toml:"headers"`
	NormalizeEOL   *bool    `toml:"normalize_eol"`
	RemoveComments *bool    `toml:"remove_comments"`
	RemoveUsings   *bool    `toml:"remove_usings"`
	Jobs           *int     `toml:"jobs"`
	NoCache        *bool    `toml:"no_cache"`

	// только для CLI
	Output    *string `toml:"output"`
	Clipboard *bool   `toml:"clipboard"`
	Progress  *string `toml:"progress"`
}

// Config is the parsed csclean.toml.
type Config struct {
	Path           string             `toml:"-"`
	DefaultProfile string             `toml:"default_profile"`
	Profiles       map[string]Profile `toml:"profiles"`
}

// FindConfig walks up from startDir to locate csclean.toml.
func FindConfig(startDir string) (path string, ok bool, err error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, ConfigFileName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

// LoadConfig parses a config file.
func LoadConfig(path string) (*Config, error) {
	var cfg Config
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, 0, len(undecoded))
		for _, k := range undecoded {
			keys = append(keys, k.String())
		}
		return nil, fmt.Errorf("%s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	cfg.Path = path
	if cfg.Profiles == nil {
		cfg.Profiles = map[string]Profile{}
	}
	return &cfg, nil
}

// Profile returns the named profile; an empty name selects default_profile.
// With neither set the zero profile is returned.
func (c *Config) Profile(name string) (Profile, error) {
	if c == nil {
		if name != "" {
			return Profile{}, fmt.Errorf("%w %q: no %s found", ErrUnknownProfile, name, ConfigFileName)
		}
		return Profile{}, nil
	}
	if name == "" {
		name = c.DefaultProfile
	}
	if name == "" {
		return Profile{}, nil
	}
	p, ok := c.Profiles[name]
	if !ok {
		known := slices.Sorted(maps.Keys(c.Profiles))
		return Profile{}, fmt.Errorf("%s: %w %q (known: %s)", c.Path, ErrUnknownProfile, name, strings.Join(known, ", "))
	}
	return p, nil
}

// Apply overlays the keys set in p onto o.
func (p Profile) Apply(o *Options) {
	setIf(&o.Recursive, p.Recursive)
	if p.Ext != nil {
		o.Exts = NormalizeExts(p.Ext)
	}
	if p.ExcludeDir != nil {
		o.ExcludeDirs = slices.Clone(p.ExcludeDir)
	}
	if p.Exclude != nil {
		o.Exclude = slices.Clone(p.Exclude)
	}
	setIf(&o.IgnoreBinaries, p.IgnoreBinaries)
	setIf(&o.MaxMB, p.MaxMB)
	setIf(&o.Headers, p.Headers)
	setIf(&o.NormalizeEOL, p.NormalizeEOL)
	setIf(&o.RemoveComments, p.RemoveComments)
	setIf(&o.RemoveUsings, p.RemoveUsings)
	setIf(&o.Jobs, p.Jobs)
	setIf(&o.NoCache, p.NoCache)
}

func setIf[T any](dst *T, v *T) {
	if v != nil {
		*dst = *v
	}
}
