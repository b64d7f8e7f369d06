package main

import (
	"strings"
	"sync"

	"rollmatch/internal/config"
	"rollmatch/internal/enrollment"
	"rollmatch/internal/logging"
	"rollmatch/internal/reconcile"
)

type commandContext struct {
	configFlag *string

	configOnce sync.Once
	config     *config.Config
	configErr  error
}

func newCommandContext(configFlag *string) *commandContext {
	return &commandContext{configFlag: configFlag}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, _, _, err := config.Load(path)
		if err != nil {
			c.configErr = err
			return
		}
		if err := cfg.EnsureDirectories(); err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

// withPipeline opens the enrollment store, builds a pipeline around it, and
// guarantees the store is closed when fn returns.
func (c *commandContext) withPipeline(fn func(*config.Config, *enrollment.Store, *reconcile.Pipeline) error) error {
	cfg, err := c.ensureConfig()
	if err != nil {
		return err
	}

	store, err := enrollment.Open(cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	logger, err := logging.NewFromConfig(cfg)
	if err != nil {
		return err
	}

	return fn(cfg, store, reconcile.New(store, logger, cfg))
}
