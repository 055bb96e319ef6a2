package main

import (
	"fmt"

	"github.com/bsan5566/food-waste/pkg/types"

	"github.com/kelseyhightower/envconfig"
)

func loadConfig() (*types.Config, error) {
	c := new(types.Config)
	if err := envconfig.Process("", c); err != nil {
		return nil, fmt.Errorf("process environment config: %w", err)
	}

	if c.DatabasePath == "" {
		return nil, fmt.Errorf("set DATABASE_PATH")
	}

	return c, nil
}
