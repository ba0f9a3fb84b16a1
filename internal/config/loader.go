package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"
)

// LoadOptions points Load at its inputs. Empty fields fall back to the
// conventional locations in the working directory.
type LoadOptions struct {
	File    string
	EnvFile string
	Flags   *pflag.FlagSet
}

// Result carries the merged config and the files that contributed to it.
type Result struct {
	Config  *Config
	File    string
	EnvFile string
}

// Load merges configuration. Precedence (highest to lowest): flags > env
// vars (.env included) > config file > defaults.
func Load(opts LoadOptions) (*Result, error) {
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(map[string]interface{}{
		"source":         DefaultSource,
		"data":           DefaultDataFile,
		"database":       DefaultDatabase,
		"renderer":       DefaultRenderer,
		"key_strategy":   "name",
		"title":          DefaultTitle,
		"addr":           DefaultAddr,
		"allow_http":     false,
		"http_timeout":   DefaultHTTPTimeout.String(),
		"log_level":      DefaultLogLevel,
		"log_format":     DefaultLogFormat,
		"strict_keys":    false,
		"theme_variant":  "",
		"theme_file":     "",
		"food_separator": "",
	}, "."), nil); err != nil {
		return nil, fmt.Errorf("config: load defaults: %w", err)
	}

	res := &Result{}

	res.File = findConfigFile(opts.File)
	if res.File != "" {
		if err := k.Load(file.Provider(res.File), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("config: read %s: %w", res.File, err)
		}
	}

	envFile, err := loadEnvFile(opts.EnvFile)
	if err != nil {
		return nil, err
	}
	res.EnvFile = envFile

	// FISHLIST_KEY_STRATEGY -> key_strategy
	if err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	}), nil); err != nil {
		return nil, fmt.Errorf("config: load env vars: %w", err)
	}

	if opts.Flags != nil {
		if err := k.Load(posflag.ProviderWithFlag(opts.Flags, ".", k, func(f *pflag.Flag) (string, interface{}) {
			if !f.Changed {
				return "", nil
			}
			return strings.ReplaceAll(f.Name, "-", "_"), posflag.FlagVal(opts.Flags, f)
		}), nil); err != nil {
			return nil, fmt.Errorf("config: load flags: %w", err)
		}
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("config: decode: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	res.Config = &cfg
	return res, nil
}

// findConfigFile returns the explicit path or the first of fishlist.yaml and
// fishlist.yml that exists.
func findConfigFile(explicit string) string {
	if explicit != "" {
		return explicit
	}
	for _, name := range []string{"fishlist.yaml", "fishlist.yml"} {
		if _, err := os.Stat(name); err == nil {
			return name
		}
	}
	return ""
}

// loadEnvFile exports the dotenv file into the process environment without
// overriding variables that are already set. An explicit file must exist;
// the default one is optional.
func loadEnvFile(explicit string) (string, error) {
	path := explicit
	if path == "" {
		path = DefaultEnvFile
		if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
			return "", nil
		}
	}
	if err := godotenv.Load(path); err != nil {
		return "", fmt.Errorf("config: load env file %s: %w", path, err)
	}
	return path, nil
}
