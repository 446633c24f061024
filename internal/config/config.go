// Package config resolves the runtime settings for moosepick: an optional
// HCL file, a .env file, and environment overrides, in that order.
package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/hashicorp/hcl/v2/hclsimple"
	"github.com/joho/godotenv"
)

// Defaults used when neither the config file nor the environment says
// otherwise.
const (
	DefaultObjectsPath   = "artifacts/objects.json"
	DefaultSyntaxMapPath = "artifacts/syntax_map.json"
	DefaultModel         = "gpt-4o-mini"
	DefaultConfigFile    = "moosepick.hcl"
)

// Config is the resolved runtime configuration.
type Config struct {
	ObjectsPath   string
	SyntaxMapPath string
	Model         string
	MinKeep       int
	APIKey        string // env only, never read from a config file
}

// fileConfig mirrors the HCL file shape; every attribute is optional.
type fileConfig struct {
	ObjectsPath   string `hcl:"objects_path,optional"`
	SyntaxMapPath string `hcl:"syntax_map_path,optional"`
	Model         string `hcl:"model,optional"`
	MinKeep       int    `hcl:"min_keep,optional"`
}

// Load resolves configuration. path selects an explicit HCL file and must
// exist when given; with an empty path, moosepick.hcl is used if present.
func Load(path string) (*Config, error) {
	// .env is a convenience for local runs; absence is fine.
	_ = godotenv.Load()

	cfg := &Config{
		ObjectsPath:   DefaultObjectsPath,
		SyntaxMapPath: DefaultSyntaxMapPath,
		Model:         DefaultModel,
		MinKeep:       0, // 0 lets the prefilter default apply
	}

	file := path
	if file == "" {
		if _, err := os.Stat(DefaultConfigFile); err == nil {
			file = DefaultConfigFile
		}
	}
	if file != "" {
		var fc fileConfig
		if err := hclsimple.DecodeFile(file, nil, &fc); err != nil {
			return nil, fmt.Errorf("load config %s: %w", file, err)
		}
		if fc.ObjectsPath != "" {
			cfg.ObjectsPath = fc.ObjectsPath
		}
		if fc.SyntaxMapPath != "" {
			cfg.SyntaxMapPath = fc.SyntaxMapPath
		}
		if fc.Model != "" {
			cfg.Model = fc.Model
		}
		if fc.MinKeep > 0 {
			cfg.MinKeep = fc.MinKeep
		}
	}

	if v := os.Getenv("MOOSEPICK_OBJECTS"); v != "" {
		cfg.ObjectsPath = v
	}
	if v := os.Getenv("MOOSEPICK_SYNTAX_MAP"); v != "" {
		cfg.SyntaxMapPath = v
	}
	if v := os.Getenv("MOOSEPICK_MODEL"); v != "" {
		cfg.Model = v
	}
	if v := os.Getenv("MOOSEPICK_MIN_KEEP"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("MOOSEPICK_MIN_KEEP must be an integer: %w", err)
		}
		cfg.MinKeep = n
	}
	cfg.APIKey = os.Getenv("OPENAI_API_KEY")

	return cfg, nil
}
