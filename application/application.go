// Package application wires configuration, logging and metrics for
// tools built on the record garden packages.
package application

import (
	"fmt"
	"os"
	"strings"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/lk2023060901/record-garden-go/pkg/log"
	"github.com/lk2023060901/record-garden-go/pkg/metrics"
	"github.com/lk2023060901/record-garden-go/pkg/util/viper"
)

const (
	envPrefix      = "RECORDGARDEN"
	envConfigPath  = "RECORDGARDEN_CONFIG_FILE_PATH"
	defaultCfgPath = "./config.yaml"
)

// Application is the runtime container for a record garden tool.
// It owns configuration and initializes the shared logger and metrics.
type Application struct {
	log.Binder

	cfg *viper.Config
}

// New creates a new Application instance.
func New() *Application {
	return &Application{}
}

// Run parses command-line arguments (os.Args) and loads the
// configuration file using the following priority:
//  1. Default: ./config.yaml
//  2. Env: RECORDGARDEN_CONFIG_FILE_PATH
//  3. CLI: --config <path> or --config=<path>
//
// A missing config file is not an error; defaults and environment
// variables still apply.
func (a *Application) Run() error {
	cfg, err := a.loadConfig()
	if err != nil {
		return err
	}
	a.cfg = cfg

	if err := a.initLogging(); err != nil {
		return err
	}
	a.SetLogger(log.With(log.FieldModule("application")))

	if a.cfg.GetBool("metrics.enable") {
		metrics.Register(prometheus.DefaultRegisterer)
	}

	return nil
}

// Config returns the loaded configuration, if any.
func (a *Application) Config() *viper.Config {
	return a.cfg
}

// loadConfig resolves the config file path and loads it via the viper
// wrapper.
func (a *Application) loadConfig() (*viper.Config, error) {
	configPath := defaultCfgPath
	explicit := false

	if envPath := os.Getenv(envConfigPath); envPath != "" {
		configPath = envPath
		explicit = true
	}

	args := os.Args[1:]
	for i := 0; i < len(args); i++ {
		arg := args[i]
		if arg == "--config" {
			if i+1 >= len(args) {
				return nil, fmt.Errorf("missing value after --config")
			}
			configPath = args[i+1]
			explicit = true
			i++
			continue
		}
		if strings.HasPrefix(arg, "--config=") {
			val := strings.TrimPrefix(arg, "--config=")
			if val != "" {
				configPath = val
				explicit = true
			}
			continue
		}
	}

	cfg := viper.New().BindEnv(envPrefix)
	cfg.SetDefault("log.level", "info")
	cfg.SetDefault("log.format", "text")
	cfg.SetDefault("log.stdout", true)
	cfg.SetDefault("metrics.enable", false)

	if err := cfg.LoadFile(configPath); err != nil {
		// 仅在用户显式指定了配置文件时才视为错误。
		if explicit || !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to load config file %q: %w", configPath, err)
		}
	}

	return cfg, nil
}

// initLogging builds the process-wide logger from the "log" section.
func (a *Application) initLogging() error {
	cfg := &log.Config{
		Level:  a.cfg.GetString("log.level"),
		Format: a.cfg.GetString("log.format"),
		Stdout: a.cfg.GetBool("log.stdout"),
	}
	if err := a.cfg.UnmarshalKey("log.file", &cfg.File); err != nil {
		return fmt.Errorf("invalid log.file config: %w", err)
	}

	logger, props, err := log.InitLogger(cfg)
	if err != nil {
		return fmt.Errorf("failed to init logger: %w", err)
	}
	log.ReplaceGlobals(logger, props)
	return nil
}
