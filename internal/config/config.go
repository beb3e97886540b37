package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/babarot/rmtrash/internal/env"
	"github.com/babarot/rmtrash/internal/shell"
	"github.com/go-playground/validator/v10"
	"github.com/muesli/reflow/indent"
	"gopkg.in/yaml.v2"
)

type Config struct {
	Core    Core    `yaml:"core"`
	UI      UI      `yaml:"ui"`
	Logging Logging `yaml:"logging"`
}

type Core struct {
	TrashDir string  `yaml:"trash_dir" validate:"omitempty,validDirPath"`
	Summary  bool    `yaml:"summary"`
	Protect  Protect `yaml:"protect"`
}

type Protect struct {
	Globs []string `yaml:"globs" validate:"dive,validGlob"`
}

type UI struct {
	Color string `yaml:"color" validate:"required,oneof=auto always never"`
}

type Logging struct {
	Enabled  bool     `yaml:"enabled"`
	Level    string   `yaml:"level" validate:"required,oneof=debug info warn error"`
	Rotation Rotation `yaml:"rotation"`
}

type Rotation struct {
	MaxSize  string `yaml:"max_size" validate:"validSize"`
	MaxFiles int    `yaml:"max_files" validate:"min=0"`
	MaxAge   string `yaml:"max_age" validate:"omitempty,validDuration"`
}

type configError struct {
	configPath string
	err        error
}

func (e configError) Error() string {
	return heredoc.Docf(`
		Couldn't read the "%s" config file.
		Please try again after fixing it or specifying a valid config path.
		The default config path is %s.
		Example YAML file contents:
		---
		%s
		---
		Original error:
		%s
		`,
		e.configPath,
		env.ConfigPath(),
		defaultContents(),
		indent.String(e.err.Error(), 2),
	)
}

func (e configError) Unwrap() error { return e.err }

type parsingError struct {
	err error
}

func (e parsingError) Error() string {
	return fmt.Sprintf("failed to parse config: %v", e.err)
}

func (e parsingError) Unwrap() error { return e.err }

type parser struct {
	validate *validator.Validate
}

func newParser() parser {
	validate := validator.New()
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.Split(fld.Tag.Get("yaml"), ",")[0]
		if name == "-" {
			return ""
		}
		return name
	})

	_ = validate.RegisterValidation("validSize", validateSize)
	_ = validate.RegisterValidation("validDuration", validateDuration)
	_ = validate.RegisterValidation("validGlob", validateGlob)
	_ = validate.RegisterValidation("validDirPath", validateDirPath)

	return parser{validate: validate}
}

// Parse loads the config file at path. An empty path means the default
// location, which is created with the default contents when missing.
func Parse(path string) (Config, error) {
	p := newParser()

	configPath := path
	if configPath == "" {
		configPath = env.ConfigPath()
		if err := p.ensureConfigFile(configPath); err != nil {
			return Config{}, parsingError{err: err}
		}
	}
	slog.Debug("config file found", "config-file", configPath)

	cfg, err := p.readConfigFile(configPath)
	if err != nil {
		return cfg, parsingError{err: err}
	}
	if err := cfg.expandPaths(); err != nil {
		return cfg, parsingError{err: err}
	}
	return cfg, nil
}

func (p parser) ensureConfigFile(path string) error {
	dir := filepath.Dir(path)
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		slog.Warn("creating directory as it does not exist", "dir", dir)
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return configError{configPath: path, err: err}
		}
	}

	if _, err := os.Stat(path); !os.IsNotExist(err) {
		return nil
	}

	slog.Warn("creating config file as it does not exist", "config-file", path)
	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		if errors.Is(err, os.ErrExist) {
			return nil
		}
		return configError{configPath: path, err: err}
	}
	defer f.Close()

	if _, err := f.WriteString(defaultContents()); err != nil {
		return configError{configPath: path, err: err}
	}
	return nil
}

func (p parser) readConfigFile(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, configError{configPath: path, err: err}
	}

	// unset keys keep their defaults
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, configError{configPath: path, err: err}
	}

	if err := p.validate.Struct(cfg); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			e := verrs[0]
			return cfg, fmt.Errorf("validation error: field %s, %q is invalid", e.Namespace(), e.Value())
		}
		return cfg, err
	}
	return cfg, nil
}

func (c *Config) expandPaths() error {
	if c.Core.TrashDir != "" {
		dir, err := shell.ExpandHome(c.Core.TrashDir)
		if err != nil {
			return fmt.Errorf("core.trash_dir: %w", err)
		}
		c.Core.TrashDir = dir
	}

	for i, pattern := range c.Core.Protect.Globs {
		expanded, err := shell.ExpandHome(pattern)
		if err != nil {
			return fmt.Errorf("core.protect.globs[%d]: %w", i, err)
		}
		c.Core.Protect.Globs[i] = expanded
	}
	return nil
}

// ResolveTrashDir picks the trash root: flag, then environment, then config
// file, then the default. The result is absolute.
func (c Config) ResolveTrashDir(flag string) (string, error) {
	dir := flag
	if dir == "" {
		dir = env.TrashDir()
	}
	if dir == "" {
		dir = c.Core.TrashDir
	}
	if dir == "" {
		dir = env.DefaultTrashDir()
	}

	dir, err := shell.ExpandHome(dir)
	if err != nil {
		return "", err
	}
	return filepath.Abs(dir)
}
