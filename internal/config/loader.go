package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	// DefaultConfigName is the config file looked up in the project root (without extension)
	DefaultConfigName = "vault-import"
	// DefaultEnvFile is the rendered env file name relative to the project root
	DefaultEnvFile = ".rendered.env"
	// BootstrapTokenFile is the Vault init output relative to the project root
	BootstrapTokenFile = "secrets/vault-init.json"
)

var (
	// envVarPattern matches ${VAR_NAME} or $VAR_NAME patterns
	envVarPattern = regexp.MustCompile(`\$\{([^}]+)\}|\$([A-Z_][A-Z0-9_]*)`)
)

// Load resolves the run configuration.
// Configuration precedence (highest to lowest):
// 1. Command-line flags that were explicitly set
// 2. Environment variables (see Settings)
// 3. Config file (--config, VAULT_IMPORT_CONFIG, or <root>/vault-import.yaml)
// 4. Default values
//
// workDir is used as the project root when none is configured.
func Load(flags *pflag.FlagSet, env Environment, workDir string) (RunConfig, error) {
	v := viper.New()
	v.SetConfigType("yaml")

	setDefaults(v, workDir)

	if err := bindFlags(v, flags); err != nil {
		return RunConfig{}, err
	}

	// The root decides where the config file lives, so resolve it before reading one.
	root := resolveRoot(v, flags, env)

	if err := readConfigFile(v, flags, env, root); err != nil {
		return RunConfig{}, err
	}

	if err := v.MergeConfigMap(envOverrides(env)); err != nil {
		return RunConfig{}, fmt.Errorf("failed to apply environment overrides: %w", err)
	}

	var cfg RunConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return RunConfig{}, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	cfg.Root = root
	substituteEnvVars(&cfg, env)
	normalize(&cfg)

	if err := validate(&cfg); err != nil {
		return RunConfig{}, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// setDefaults sets default values for configuration
func setDefaults(v *viper.Viper, workDir string) {
	v.SetDefault("env_file", "")
	v.SetDefault("mount", "secret")
	v.SetDefault("path", "core-services/env")
	v.SetDefault("vault_addr", "http://127.0.0.1:8200")
	v.SetDefault("container", "vault")
	v.SetDefault("token", "")
	v.SetDefault("dry_run", false)
	v.SetDefault("backend", "docker")
	v.SetDefault("namespace", "")
	v.SetDefault("timeout", 30*time.Second)
	v.SetDefault("format", "plain")
	v.SetDefault("metrics_file", "")
	v.SetDefault("root", workDir)
	v.SetDefault("debug", false)
	v.SetDefault("no_color", false)
}

// bindFlags binds every known flag present in flags. Viper only prefers a
// flag over lower layers when the flag was changed on the command line.
func bindFlags(v *viper.Viper, flags *pflag.FlagSet) error {
	if flags == nil {
		return nil
	}
	for _, s := range Settings {
		f := flags.Lookup(s.Flag)
		if f == nil {
			continue
		}
		if err := v.BindPFlag(s.Key, f); err != nil {
			return fmt.Errorf("failed to bind flag --%s: %w", s.Flag, err)
		}
	}
	return nil
}

func resolveRoot(v *viper.Viper, flags *pflag.FlagSet, env Environment) string {
	if flags != nil {
		if f := flags.Lookup("root"); f != nil && f.Changed {
			return f.Value.String()
		}
	}
	if root, ok := env.Lookup("VAULT_IMPORT_ROOT"); ok {
		return root
	}
	return v.GetString("root")
}

// readConfigFile reads an explicit config file (which must exist) or the
// optional one in the project root
func readConfigFile(v *viper.Viper, flags *pflag.FlagSet, env Environment, root string) error {
	explicit := ""
	if flags != nil {
		if f := flags.Lookup("config"); f != nil && f.Changed {
			explicit = f.Value.String()
		}
	}
	if explicit == "" {
		explicit, _ = env.Lookup(ConfigEnvVar)
	}

	if explicit != "" {
		v.SetConfigFile(explicit)
		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("failed to read config file %s: %w", explicit, err)
		}
		return nil
	}

	v.SetConfigName(DefaultConfigName)
	v.AddConfigPath(root)
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			// Config file found but has error
			return fmt.Errorf("failed to read config file: %w", err)
		}
		// Config file not found - continue with defaults and env vars
	}
	return nil
}

// envOverrides collects non-empty environment values keyed by config key
func envOverrides(env Environment) map[string]interface{} {
	out := make(map[string]interface{})
	for _, s := range Settings {
		if s.Env == "" {
			continue
		}
		if val, ok := env.Lookup(s.Env); ok {
			out[s.Key] = val
		}
	}
	return out
}

// substituteEnvVars replaces ${VAR} or $VAR patterns with environment variable values
func substituteEnvVars(cfg *RunConfig, env Environment) {
	for _, field := range []*string{
		&cfg.EnvFile,
		&cfg.Mount,
		&cfg.Path,
		&cfg.VaultAddr,
		&cfg.Container,
		&cfg.Token,
		&cfg.Namespace,
		&cfg.MetricsFile,
	} {
		*field = expandEnvVars(*field, env)
	}
}

// expandEnvVars expands environment variables in a string
// Supports both ${VAR_NAME} and $VAR_NAME formats
func expandEnvVars(s string, env Environment) string {
	return envVarPattern.ReplaceAllStringFunc(s, func(match string) string {
		var varName string
		if strings.HasPrefix(match, "${") {
			varName = match[2 : len(match)-1]
		} else {
			varName = match[1:]
		}

		if value, ok := env.Lookup(varName); ok {
			return value
		}

		// Return original if not found
		return match
	})
}

// normalize fills derived defaults. Relative paths are anchored at the project root.
func normalize(cfg *RunConfig) {
	if cfg.EnvFile == "" {
		cfg.EnvFile = DefaultEnvFile
	}
	if !filepath.IsAbs(cfg.EnvFile) {
		cfg.EnvFile = filepath.Join(cfg.Root, cfg.EnvFile)
	}
	if cfg.MetricsFile != "" && !filepath.IsAbs(cfg.MetricsFile) {
		cfg.MetricsFile = filepath.Join(cfg.Root, cfg.MetricsFile)
	}
	cfg.Backend = strings.ToLower(strings.TrimSpace(cfg.Backend))
	cfg.Format = strings.ToLower(strings.TrimSpace(cfg.Format))
}

// validate validates the configuration
func validate(cfg *RunConfig) error {
	if strings.Trim(cfg.Mount, "/") == "" {
		return fmt.Errorf("mount must not be empty")
	}
	if cfg.Path == "" {
		return fmt.Errorf("path must not be empty")
	}
	if cfg.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive, got %s", cfg.Timeout)
	}
	return nil
}
