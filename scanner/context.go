package scanner

import (
	"context"

	"github.com/pablor21/typegen/logger"
)

// ScanningContext holds the configuration and state information for the scanning process.
// It embeds context.Context to support cancellation and deadlines.
type ScanningContext struct {
	context.Context
	Config *Config
	Logger logger.Logger
}

// NewScanningContext creates a new scanning context from the root context
func NewScanningContext(ctx context.Context, config *Config) *ScanningContext {
	if ctx == nil {
		ctx = context.Background()
	}
	if config == nil {
		config = NewDefaultConfig()
	}
	return &ScanningContext{
		Context: ctx,
		Config:  config,
		Logger:  logger.NewTaggedLogger("SCAN"),
	}
}

// WithLogger returns a copy of the context logging to l
func (sc *ScanningContext) WithLogger(l logger.Logger) *ScanningContext {
	newCtx := *sc
	newCtx.Logger = l
	return &newCtx
}
