// Package parser runs a complete parse session over a league payload:
// load, locate blocks, decode records and collect them into a store.
package parser

import (
	"context"
	"errors"
	"io"
	"time"

	"github.com/opencontainers/go-digest"
	"github.com/sirupsen/logrus"

	"github.com/ssargent/lgeparse/pkg/block"
	"github.com/ssargent/lgeparse/pkg/codec"
	"github.com/ssargent/lgeparse/pkg/league"
	"github.com/ssargent/lgeparse/pkg/source"
)

var errEmptyBuffer = errors.New("empty buffer")

// SourceInfo describes the payload a result was decoded from
type SourceInfo struct {
	Path     string          `json:"path,omitempty"`
	Encoding source.Encoding `json:"encoding"`
	Digest   digest.Digest   `json:"digest"`
	Size     int             `json:"size"`
}

// Result is the outcome of one parse session
type Result struct {
	Store    *league.Store      `json:"league"`
	Source   SourceInfo         `json:"source"`
	Blocks   []block.Occurrence `json:"blocks"`
	Ignored  league.Counts      `json:"ignored"`
	Duration time.Duration      `json:"duration"`
}

// Observer is notified after every parse attempt
type Observer interface {
	ObserveParse(res *Result, err error)
}

// Option configures a Parser
type Option func(*Parser)

// WithLogger sets the logger used for per-block diagnostics
func WithLogger(l logrus.FieldLogger) Option {
	return func(p *Parser) {
		if l != nil {
			p.log = l
		}
	}
}

// WithObserver registers an observer for parse outcomes
func WithObserver(o Observer) Option {
	return func(p *Parser) {
		p.observers = append(p.observers, o)
	}
}

// Parser decodes league payloads. A Parser holds no per-session state and
// may be shared; each call works on its own copy of the payload.
type Parser struct {
	log       logrus.FieldLogger
	observers []Observer
}

// New creates a parser
func New(opts ...Option) *Parser {
	discard := logrus.New()
	discard.SetOutput(io.Discard)

	p := &Parser{log: discard}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// ParseFile loads and parses the league file at path
func (p *Parser) ParseFile(ctx context.Context, path string) (*Result, error) {
	buf, err := source.Load(path)
	if err != nil {
		p.notify(nil, err)
		return nil, err
	}
	return p.ParseBuffer(ctx, buf)
}

// ParseBytes parses an in-memory league file, raw or hex-literal
func (p *Parser) ParseBytes(ctx context.Context, data []byte) (*Result, error) {
	buf, err := source.FromBytes(data)
	if err != nil {
		p.notify(nil, err)
		return nil, err
	}
	return p.ParseBuffer(ctx, buf)
}

// ParseBuffer decodes every known record kind from buf
func (p *Parser) ParseBuffer(ctx context.Context, buf *source.Buffer) (*Result, error) {
	res, err := p.parse(ctx, buf)
	p.notify(res, err)
	return res, err
}

func (p *Parser) parse(ctx context.Context, buf *source.Buffer) (*Result, error) {
	start := time.Now()

	if buf == nil || buf.Len() == 0 {
		path := ""
		if buf != nil {
			path = buf.Path()
		}
		return nil, &source.Error{Op: "parse", Path: path, Kind: source.ErrFormat, Err: errEmptyBuffer}
	}

	log := p.log.WithFields(logrus.Fields{
		"path":     buf.Path(),
		"encoding": buf.Encoding(),
		"size":     buf.Len(),
	})
	log.Debug("parse started")

	data := buf.Bytes()
	loc := block.NewLocator(data)
	store := league.NewStore()

	steps := []func(*block.Locator, []byte, *league.Store, logrus.FieldLogger){
		parseLeague,
		parseConferences,
		parseDivisions,
		parseTeams,
	}
	for _, step := range steps {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		step(loc, data, store, log)
	}

	blocks := loc.Inventory()
	store.SetRosterBlocks(countOf(blocks, block.TagRoster))
	store.Seal()

	res := &Result{
		Store: store,
		Source: SourceInfo{
			Path:     buf.Path(),
			Encoding: buf.Encoding(),
			Digest:   buf.Digest(),
			Size:     buf.Len(),
		},
		Blocks:   blocks,
		Ignored:  ignored(blocks, store.Counts()),
		Duration: time.Since(start),
	}

	counts := store.Counts()
	log.WithFields(logrus.Fields{
		"conferences": counts.Conferences,
		"divisions":   counts.Divisions,
		"teams":       counts.Teams,
		"rosters":     counts.RosterBlocks,
		"duration":    res.Duration,
	}).Debug("parse finished")

	return res, nil
}

func (p *Parser) notify(res *Result, err error) {
	for _, o := range p.observers {
		o.ObserveParse(res, err)
	}
}

// parseLeague decodes the first L03: block, falling back to L02:
func parseLeague(loc *block.Locator, data []byte, store *league.Store, log logrus.FieldLogger) {
	for _, tag := range []block.Tag{block.TagLeague, block.TagLeagueAlt} {
		if off, ok := loc.Find(tag); ok {
			rec := codec.DecodeLeague(data, off)
			store.SetLeague(rec)
			log.WithFields(logrus.Fields{"tag": tag, "offset": off, "name": rec.Name, "trophy": rec.Trophy}).
				Debug("decoded league block")
			return
		}
	}
	store.SetLeague(league.DefaultLeague())
	log.Debug("no league block found")
}

func parseConferences(loc *block.Locator, data []byte, store *league.Store, log logrus.FieldLogger) {
	for !store.Full(league.KindConference) {
		off, ok := loc.Next(block.TagConference)
		if !ok {
			return
		}
		rec := codec.DecodeConference(data, off, store.Counts().Conferences)
		store.AddConference(rec)
		log.WithFields(logrus.Fields{"offset": off, "name": rec.Name, "id": rec.ID}).Debug("decoded conference block")
	}
}

func parseDivisions(loc *block.Locator, data []byte, store *league.Store, log logrus.FieldLogger) {
	for !store.Full(league.KindDivision) {
		off, ok := loc.Next(block.TagDivision)
		if !ok {
			return
		}
		rec := codec.DecodeDivision(data, off, store.Counts().Divisions)
		store.AddDivision(rec)
		log.WithFields(logrus.Fields{"offset": off, "name": rec.Name, "id": rec.ID}).Debug("decoded division block")
	}
}

func parseTeams(loc *block.Locator, data []byte, store *league.Store, log logrus.FieldLogger) {
	for !store.Full(league.KindTeam) {
		off, ok := loc.Next(block.TagTeam)
		if !ok {
			return
		}
		rec := codec.DecodeTeam(data, off, store.Counts().Teams)
		store.AddTeam(rec)
		log.WithFields(logrus.Fields{"offset": off, "name": rec.Name, "id": rec.ID}).Debug("decoded team block")
	}
}

func countOf(inv []block.Occurrence, tag block.Tag) int {
	for _, occ := range inv {
		if occ.Tag == tag {
			return occ.Count
		}
	}
	return 0
}

// ignored reports the located blocks that did not fit in the store
func ignored(inv []block.Occurrence, stored league.Counts) league.Counts {
	over := func(found, kept int) int {
		if found > kept {
			return found - kept
		}
		return 0
	}
	return league.Counts{
		Conferences: over(countOf(inv, block.TagConference), stored.Conferences),
		Divisions:   over(countOf(inv, block.TagDivision), stored.Divisions),
		Teams:       over(countOf(inv, block.TagTeam), stored.Teams),
	}
}
