package config

import (
	"fmt"
	"os"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/hashicorp/hcl/v2/hclwrite"
	"github.com/zclconf/go-cty/cty"
)

// Config represents the application configuration. Flag values take
// precedence over everything here.
type Config struct {
	DatesWhitelist string `hcl:"dates_whitelist,optional"`
	Trim           bool   `hcl:"trim,optional"`
	Flexible       bool   `hcl:"flexible,optional"`
	Delimiter      string `hcl:"delimiter,optional"`
	BatchSize      int    `hcl:"batch_size,optional"`
}

// DefaultDatesWhitelist is the pattern set applied when no whitelist is
// configured anywhere.
const DefaultDatesWhitelist = "date,time,due,opened,closed"

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		DatesWhitelist: DefaultDatesWhitelist,
		Delimiter:      ",",
		BatchSize:      1000,
	}
}

// Load reads the configuration from the given HCL file.
func Load(path string) (*Config, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(content, path)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse config file: %s", diags.Error())
	}

	cfg := DefaultConfig()
	diags = gohcl.DecodeBody(file.Body, nil, cfg)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode config: %s", diags.Error())
	}

	return cfg, nil
}

// Export writes the configuration to the specified file in HCL format.
func Export(path string, cfg *Config) error {
	f := hclwrite.NewEmptyFile()
	root := f.Body()

	root.SetAttributeValue("dates_whitelist", cty.StringVal(cfg.DatesWhitelist))
	root.SetAttributeValue("trim", cty.BoolVal(cfg.Trim))
	root.SetAttributeValue("flexible", cty.BoolVal(cfg.Flexible))
	root.SetAttributeValue("delimiter", cty.StringVal(cfg.Delimiter))
	root.SetAttributeValue("batch_size", cty.NumberIntVal(int64(cfg.BatchSize)))

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}
	defer file.Close()

	_, err = file.Write(f.Bytes())
	if err != nil {
		return fmt.Errorf("failed to write config to file: %w", err)
	}

	return nil
}
