package api

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/sirupsen/logrus"

	"github.com/ssargent/lgeparse/pkg/parser"
)

// DefaultServerFactory is the default implementation of ServerFactory
type DefaultServerFactory struct {
	log logrus.FieldLogger
}

// NewServerFactory creates a new server factory
func NewServerFactory(log logrus.FieldLogger) ServerFactory {
	return &DefaultServerFactory{log: log}
}

// CreateServer builds a server with its own metrics registry and a parser
// reporting to it
func (f *DefaultServerFactory) CreateServer(config ServerConfig, archive LeagueArchive) *Server {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	metrics := NewMetrics(reg)

	p := parser.New(parser.WithLogger(f.log), parser.WithObserver(metrics))
	return NewServer(p, archive, config, metrics, f.log)
}
