package main

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fwojciec/pagedigest"
	"gopkg.in/yaml.v3"
)

//go:embed sources.yaml
var defaultConfig []byte

// Config is the YAML configuration of a run.
type Config struct {
	// Sources are the URLs scraped when none are given on the command line.
	Sources []string `yaml:"sources"`

	// UserAgent overrides the browser-like user agent of HTTP and browser
	// requests.
	UserAgent string `yaml:"user_agent"`

	// BrowserBin is the path of a Chrome or Chromium executable. Empty
	// means the browser is located or downloaded automatically.
	BrowserBin string `yaml:"browser_bin"`
}

// LoadConfig reads the configuration at path, or the built-in one when path
// is empty.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return ParseConfig(defaultConfig)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	return ParseConfig(data)
}

// ParseConfig decodes a YAML configuration. Unknown keys are rejected and
// blank source entries are dropped.
func ParseConfig(data []byte) (*Config, error) {
	var cfg Config
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, pagedigest.Errorf(pagedigest.EINVALID, "invalid config: %v", err)
	}

	sources := make([]string, 0, len(cfg.Sources))
	for _, s := range cfg.Sources {
		if s = strings.TrimSpace(s); s != "" {
			sources = append(sources, s)
		}
	}
	cfg.Sources = sources

	return &cfg, nil
}
