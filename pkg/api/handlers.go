package api

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/segmentio/ksuid"
	"github.com/sirupsen/logrus"

	"github.com/ssargent/lgeparse/pkg/archive"
	"github.com/ssargent/lgeparse/pkg/league"
	"github.com/ssargent/lgeparse/pkg/parser"
	"github.com/ssargent/lgeparse/pkg/render"
	"github.com/ssargent/lgeparse/pkg/source"
)

// Server holds the API server state
type Server struct {
	parser  *parser.Parser
	archive LeagueArchive
	config  ServerConfig
	metrics *Metrics
	log     logrus.FieldLogger
}

// NewServer creates a new API server. The parser is expected to report to
// metrics through parser.WithObserver.
func NewServer(p *parser.Parser, a LeagueArchive, config ServerConfig, metrics *Metrics, log logrus.FieldLogger) *Server {
	if config.DefaultFormat == "" {
		config.DefaultFormat = render.FormatJSON
	}
	return &Server{
		parser:  p,
		archive: a,
		config:  config,
		metrics: metrics,
		log:     log,
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.metrics.RecordHealthCheck(true)
	sendSuccess(w, map[string]string{"status": "healthy"})
}

// handleParse decodes the uploaded league file and renders it
func (s *Server) handleParse(w http.ResponseWriter, r *http.Request) {
	format, ok := s.format(w, r)
	if !ok {
		return
	}

	res, ok := s.parseUpload(w, r)
	if !ok {
		return
	}

	s.sendRendered(w, res.Store, format)
}

// handleCreateLeague decodes the uploaded league file and archives it
func (s *Server) handleCreateLeague(w http.ResponseWriter, r *http.Request) {
	res, ok := s.parseUpload(w, r)
	if !ok {
		return
	}

	start := time.Now()
	entry, created, err := s.archive.Put(r.Context(), archive.Entry{
		Digest:   res.Source.Digest,
		Source:   r.URL.Query().Get("name"),
		Encoding: res.Source.Encoding,
		League:   res.Store,
	})
	s.metrics.RecordArchiveOperation("put", err == nil, time.Since(start))
	if err != nil {
		s.log.WithError(err).Error("failed to archive league")
		sendError(w, "Failed to archive league", http.StatusInternalServerError)
		return
	}

	statusCode := http.StatusOK
	if created {
		statusCode = http.StatusCreated
	}
	sendStatus(w, statusCode, ArchiveResponse{
		ID:      entry.ID.String(),
		Digest:  entry.Digest,
		Created: created,
	})
}

func (s *Server) handleListLeagues(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			sendError(w, "Invalid limit parameter", http.StatusBadRequest)
			return
		}
		limit = n
	}

	start := time.Now()
	entries, err := s.archive.List(r.Context(), limit)
	s.metrics.RecordArchiveOperation("list", err == nil, time.Since(start))
	if err != nil {
		s.log.WithError(err).Error("failed to list archive")
		sendError(w, "Failed to list leagues", http.StatusInternalServerError)
		return
	}

	sendSuccess(w, entries)
}

func (s *Server) handleGetLeague(w http.ResponseWriter, r *http.Request) {
	format, ok := s.format(w, r)
	if !ok {
		return
	}
	id, ok := leagueID(w, r)
	if !ok {
		return
	}

	start := time.Now()
	entry, err := s.archive.Get(r.Context(), id)
	s.metrics.RecordArchiveOperation("get", err == nil || errors.Is(err, archive.ErrNotFound), time.Since(start))
	if errors.Is(err, archive.ErrNotFound) {
		sendError(w, "League not found", http.StatusNotFound)
		return
	}
	if err != nil {
		s.log.WithError(err).WithField("id", id).Error("failed to read archive")
		sendError(w, "Failed to read league", http.StatusInternalServerError)
		return
	}

	s.sendRendered(w, entry.League, format)
}

func (s *Server) handleDeleteLeague(w http.ResponseWriter, r *http.Request) {
	id, ok := leagueID(w, r)
	if !ok {
		return
	}

	start := time.Now()
	err := s.archive.Delete(r.Context(), id)
	s.metrics.RecordArchiveOperation("delete", err == nil || errors.Is(err, archive.ErrNotFound), time.Since(start))
	if errors.Is(err, archive.ErrNotFound) {
		sendError(w, "League not found", http.StatusNotFound)
		return
	}
	if err != nil {
		s.log.WithError(err).WithField("id", id).Error("failed to delete from archive")
		sendError(w, "Failed to delete league", http.StatusInternalServerError)
		return
	}

	sendSuccess(w, map[string]string{"deleted": id.String()})
}

// parseUpload reads the bounded request body and decodes it. On failure the
// error response has already been written.
func (s *Server) parseUpload(w http.ResponseWriter, r *http.Request) (*parser.Result, bool) {
	body := http.MaxBytesReader(w, r.Body, s.config.MaxUploadBytes)
	data, err := io.ReadAll(body)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			sendError(w, "League file exceeds upload limit", http.StatusRequestEntityTooLarge)
			return nil, false
		}
		sendError(w, "Failed to read request body", http.StatusBadRequest)
		return nil, false
	}

	res, err := s.parser.ParseBytes(r.Context(), data)
	switch {
	case err == nil:
		return res, true
	case errors.Is(err, source.ErrFormat), errors.Is(err, source.ErrIO):
		sendError(w, err.Error(), http.StatusUnprocessableEntity)
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		sendError(w, "Request cancelled", http.StatusServiceUnavailable)
	default:
		s.log.WithError(err).Error("parse failed")
		sendError(w, "Failed to parse league file", http.StatusInternalServerError)
	}
	return nil, false
}

// format resolves the ?format= parameter against the server default
func (s *Server) format(w http.ResponseWriter, r *http.Request) (render.Format, bool) {
	name := r.URL.Query().Get("format")
	if name == "" {
		return s.config.DefaultFormat, true
	}
	f, err := render.ParseFormat(name)
	if err != nil {
		sendError(w, err.Error(), http.StatusBadRequest)
		return "", false
	}
	return f, true
}

// sendRendered writes the store in format f. The body is buffered so a
// render failure can still produce an error response.
func (s *Server) sendRendered(w http.ResponseWriter, store *league.Store, f render.Format) {
	var buf bytes.Buffer
	if err := render.Write(&buf, store, f); err != nil {
		s.log.WithError(err).Error("failed to render league")
		sendError(w, "Failed to render league", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", f.ContentType())
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}

func leagueID(w http.ResponseWriter, r *http.Request) (ksuid.KSUID, bool) {
	id, err := ksuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		sendError(w, "Invalid league id", http.StatusBadRequest)
		return ksuid.Nil, false
	}
	return id, true
}
