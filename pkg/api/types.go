package api

import (
	"github.com/opencontainers/go-digest"

	"github.com/ssargent/lgeparse/pkg/render"
)

// APIResponse represents a standard API response
type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// ArchiveResponse is returned when a league file is archived
type ArchiveResponse struct {
	ID      string        `json:"id"`
	Digest  digest.Digest `json:"digest"`
	Created bool          `json:"created"`
}

// ServerConfig holds configuration for the API server
type ServerConfig struct {
	Bind           string
	Port           int
	APIKey         string // empty disables authentication
	MaxUploadBytes int64
	DefaultFormat  render.Format
}
