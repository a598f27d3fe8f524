// Package config loads environment configuration for vgamepad.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

const (
	defaultListenAddr = "0.0.0.0:8788"
	defaultDataDir    = "./data"
	defaultInputMode  = InputAuto
	defaultSendBuffer = 64
)

// InputAuto binds touch when clients can produce it, pointer otherwise.
const InputAuto = "auto"

// InputTouch binds touch events only.
const InputTouch = "touch"

// InputPointer binds pointer events only.
const InputPointer = "pointer"

// Config holds runtime configuration values.
type Config struct {
	ListenAddr string
	DataDir    string
	LayoutPath string
	InputMode  string
	Debug      bool
	SendBuffer int
}

// Load reads configuration from ./data/.env and environment variables.
func Load() (Config, error) {
	return LoadFrom(filepath.Join(defaultDataDir, ".env"))
}

// LoadFrom reads configuration from envFile and environment variables.
// Environment variables win over the file; a missing file is not an error.
func LoadFrom(envFile string) (Config, error) {
	v := viper.New()
	v.SetDefault("LISTEN_ADDR", defaultListenAddr)
	v.SetDefault("DATA_DIR", defaultDataDir)
	v.SetDefault("INPUT_MODE", defaultInputMode)
	v.SetDefault("DEBUG", false)
	v.SetDefault("SEND_BUFFER", defaultSendBuffer)
	v.AutomaticEnv()

	v.SetConfigFile(envFile)
	v.SetConfigType("env")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.Is(err, fs.ErrNotExist) && !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read %s: %w", envFile, err)
		}
	}

	cfg := Config{
		ListenAddr: strings.TrimSpace(v.GetString("LISTEN_ADDR")),
		DataDir:    strings.TrimSpace(v.GetString("DATA_DIR")),
		InputMode:  strings.ToLower(strings.TrimSpace(v.GetString("INPUT_MODE"))),
		Debug:      v.GetBool("DEBUG"),
		SendBuffer: v.GetInt("SEND_BUFFER"),
	}
	cfg.LayoutPath = strings.TrimSpace(v.GetString("LAYOUT_PATH"))
	if cfg.LayoutPath == "" {
		cfg.LayoutPath = filepath.Join(cfg.DataDir, "layout.yaml")
	}

	switch cfg.InputMode {
	case InputAuto, InputTouch, InputPointer:
	default:
		return Config{}, fmt.Errorf("INPUT_MODE must be auto, touch or pointer")
	}
	if cfg.SendBuffer <= 0 {
		return Config{}, fmt.Errorf("SEND_BUFFER must be > 0")
	}
	if cfg.ListenAddr == "" {
		return Config{}, errors.New("LISTEN_ADDR is required")
	}

	return cfg, nil
}
