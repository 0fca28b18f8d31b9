package config

import (
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclwrite"

	"github.com/lox/pokerclock/internal/fileutil"
)

// Encode renders the configuration as HCL that Load reads back unchanged.
func (c *Config) Encode() []byte {
	f := hclwrite.NewEmptyFile()
	gohcl.EncodeIntoBody(c, f.Body())
	return hclwrite.Format(f.Bytes())
}

// Save writes the configuration to filename atomically.
func (c *Config) Save(filename string) error {
	return fileutil.WriteFileAtomic(filename, c.Encode(), 0o644)
}
