package main

import (
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/arloliu/elfnote/export"
	"github.com/arloliu/elfnote/format"
	"github.com/arloliu/elfnote/section"
)

// config holds the defaults a config file may override. Command line flags
// win over both.
type config struct {
	Format      string
	Compression format.CompressionType
	Alignment   int
	Verbose     bool
}

type fileConfig struct {
	Format      string `toml:"format"`
	Compression string `toml:"compression"`
	Alignment   int    `toml:"alignment"`
	Verbose     bool   `toml:"verbose"`
}

func defaultConfig() config {
	return config{
		Format:      formatText,
		Compression: format.CompressionZstd,
		Alignment:   0,
	}
}

func loadConfig(path string) (config, error) {
	cfg := defaultConfig()
	if path == "" {
		return cfg, nil
	}

	var raw fileConfig
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return config{}, fmt.Errorf("load config: %w", err)
	}

	if meta.IsDefined("format") {
		f := strings.TrimSpace(raw.Format)
		if err := validateFormat(f); err != nil {
			return config{}, fmt.Errorf("parse format: %w", err)
		}
		cfg.Format = f
	}

	if meta.IsDefined("compression") {
		c, err := format.ParseCompression(strings.TrimSpace(raw.Compression))
		if err != nil {
			return config{}, fmt.Errorf("parse compression: %w", err)
		}
		cfg.Compression = c
	}

	if meta.IsDefined("alignment") {
		if !section.ValidAlignment(raw.Alignment) {
			return config{}, fmt.Errorf("parse alignment: %d is not 4 or 8", raw.Alignment)
		}
		cfg.Alignment = raw.Alignment
	}

	if meta.IsDefined("verbose") {
		cfg.Verbose = raw.Verbose
	}

	return cfg, nil
}

const formatText = "text"

func validateFormat(f string) error {
	if f == formatText {
		return nil
	}
	_, err := export.ParseFormat(f)

	return err
}
