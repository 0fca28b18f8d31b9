package main

import (
	"fmt"
	"os"

	"github.com/lox/pokerclock/internal/config"
)

// InitCmd writes a config file populated with the defaults.
type InitCmd struct {
	Config string `kong:"default='pokerclock.hcl',help='Path of the config file to write'"`
	Force  bool   `kong:"help='Overwrite an existing file'"`
}

func (c *InitCmd) Run() error {
	if _, err := os.Stat(c.Config); err == nil && !c.Force {
		return fmt.Errorf("%s already exists, use --force to overwrite", c.Config)
	}
	if err := config.DefaultConfig().Save(c.Config); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	fmt.Printf("Wrote %s\n", c.Config)
	return nil
}
