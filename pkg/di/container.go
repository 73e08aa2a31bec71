// Package di provides dependency injection container
package di

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"

	"github.com/ssargent/lgeparse/pkg/api"
	"github.com/ssargent/lgeparse/pkg/archive"
	"github.com/ssargent/lgeparse/pkg/config"
	"github.com/ssargent/lgeparse/pkg/parser"
)

// ArchiveOpener opens the archive stored in dir
type ArchiveOpener func(dir string) (*archive.Archive, error)

// Container holds all the dependencies for the application
type Container struct {
	config        *config.Config
	logger        *logrus.Logger
	serverFactory api.ServerFactory
	openArchive   ArchiveOpener
}

// NewContainer creates a new dependency injection container
func NewContainer(cfg *config.Config, logger *logrus.Logger) *Container {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	if logger == nil {
		logger = logrus.New()
		logger.SetOutput(os.Stderr)
	}
	return &Container{
		config:        cfg,
		logger:        logger,
		serverFactory: api.NewServerFactory(logger),
		openArchive:   archive.Open,
	}
}

// Config returns the resolved configuration
func (c *Container) Config() *config.Config {
	return c.config
}

// Logger returns the application logger
func (c *Container) Logger() *logrus.Logger {
	return c.logger
}

// Parser returns a parser logging through the application logger
func (c *Container) Parser() *parser.Parser {
	return parser.New(parser.WithLogger(c.logger))
}

// OpenArchive opens the archive at dir, or the configured directory when
// dir is empty
func (c *Container) OpenArchive(dir string) (*archive.Archive, error) {
	if dir == "" {
		dir = c.config.Archive.Dir
	}
	if err := os.MkdirAll(dir, 0750); err != nil {
		return nil, fmt.Errorf("failed to create archive dir: %w", err)
	}
	return c.openArchive(dir)
}

// GetServerFactory returns the server factory
func (c *Container) GetServerFactory() api.ServerFactory {
	return c.serverFactory
}

// SetServerFactory allows overriding the server factory (for testing)
func (c *Container) SetServerFactory(factory api.ServerFactory) {
	c.serverFactory = factory
}

// SetArchiveOpener allows overriding how archives are opened (for testing)
func (c *Container) SetArchiveOpener(open ArchiveOpener) {
	c.openArchive = open
}
