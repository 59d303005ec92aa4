package parser

import (
	"flag"

	"github.com/pkg/errors"
)

// DefaultMaxDepth bounds container nesting unless configured otherwise.
const DefaultMaxDepth = 10000

// Config holds the parser limits.
type Config struct {
	// MaxDepth is the maximum number of nested arrays and objects.
	// 0 selects DefaultMaxDepth.
	MaxDepth int
}

func (c *Config) maxDepth() int {
	if c.MaxDepth == 0 {
		return DefaultMaxDepth
	}
	return c.MaxDepth
}

// DefaultConfig returns a Config with all defaults applied.
func DefaultConfig() Config {
	return Config{MaxDepth: DefaultMaxDepth}
}

// RegisterFlags registers the parser flags on f.
func (c *Config) RegisterFlags(f *flag.FlagSet) {
	c.RegisterFlagsWithPrefix("", f)
}

// RegisterFlagsWithPrefix registers the parser flags on f, each name prefixed with prefix.
func (c *Config) RegisterFlagsWithPrefix(prefix string, f *flag.FlagSet) {
	f.IntVar(&c.MaxDepth, prefix+"parser.max-depth", DefaultMaxDepth, "Maximum nesting depth of arrays and objects. 0 selects the default.")
}

// Validate checks the config for invalid values.
func (c *Config) Validate() error {
	if c.MaxDepth < 0 {
		return errors.Errorf("invalid parser.max-depth %d: must not be negative", c.MaxDepth)
	}
	return nil
}
