// Package archive keeps decoded leagues in a pebble database so a parse
// can be fetched again without the original file. Documents are stored
// zstd-compressed under a ksuid key and indexed by the digest of the
// payload they were decoded from.
package archive

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/cockroachdb/pebble"
	"github.com/klauspost/compress/zstd"
	"github.com/opencontainers/go-digest"
	"github.com/segmentio/ksuid"

	"github.com/ssargent/lgeparse/pkg/league"
	"github.com/ssargent/lgeparse/pkg/source"
)

var (
	// ErrNotFound is returned when no entry matches the requested key
	ErrNotFound = errors.New("archive: entry not found")
	// ErrClosed is returned by operations on a closed archive
	ErrClosed = errors.New("archive: closed")
)

var (
	leaguePrefix = []byte("league/")
	digestPrefix = []byte("digest/")
)

// Entry is one archived parse result
type Entry struct {
	ID        ksuid.KSUID     `json:"id"`
	Digest    digest.Digest   `json:"digest"`
	Source    string          `json:"source,omitempty"`
	Encoding  source.Encoding `json:"encoding"`
	CreatedAt time.Time       `json:"createdAt"`
	Counts    league.Counts   `json:"counts"`
	League    *league.Store   `json:"league,omitempty"`
}

// Archive is a pebble backed league archive
type Archive struct {
	mu     sync.Mutex
	db     *pebble.DB
	enc    *zstd.Encoder
	dec    *zstd.Decoder
	closed bool
}

// Open opens or creates the archive in dir
func Open(dir string) (*Archive, error) {
	db, err := pebble.Open(dir, &pebble.Options{})
	if err != nil {
		return nil, fmt.Errorf("open archive %s: %w", dir, err)
	}

	enc, err := zstd.NewWriter(nil, zstd.WithEncoderConcurrency(1), zstd.WithLowerEncoderMem(true))
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("create zstd encoder: %w", err)
	}
	dec, err := zstd.NewReader(nil, zstd.WithDecoderConcurrency(1))
	if err != nil {
		enc.Close()
		db.Close()
		return nil, fmt.Errorf("create zstd decoder: %w", err)
	}

	return &Archive{db: db, enc: enc, dec: dec}, nil
}

// Close releases the database and codecs
func (a *Archive) Close() error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.closed {
		return nil
	}
	a.closed = true
	a.dec.Close()
	if err := a.enc.Close(); err != nil {
		a.db.Close()
		return err
	}
	return a.db.Close()
}

// Put archives e. When an entry with the same digest already exists it is
// returned unchanged and created is false. ID, CreatedAt and Counts are
// assigned by Put.
func (a *Archive) Put(ctx context.Context, e Entry) (Entry, bool, error) {
	if err := ctx.Err(); err != nil {
		return Entry{}, false, err
	}
	if e.League == nil {
		return Entry{}, false, errors.New("archive: entry has no league")
	}
	if err := e.Digest.Validate(); err != nil {
		return Entry{}, false, fmt.Errorf("archive: %w", err)
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	if a.closed {
		return Entry{}, false, ErrClosed
	}

	if existing, err := a.getByDigestLocked(e.Digest); err == nil {
		return existing, false, nil
	} else if !errors.Is(err, ErrNotFound) {
		return Entry{}, false, err
	}

	e.ID = ksuid.New()
	e.CreatedAt = e.ID.Time().UTC()
	e.Counts = e.League.Counts()

	doc, err := json.Marshal(e)
	if err != nil {
		return Entry{}, false, fmt.Errorf("encode entry: %w", err)
	}

	batch := a.db.NewBatch()
	defer batch.Close()
	if err := batch.Set(leagueKey(e.ID), a.enc.EncodeAll(doc, nil), nil); err != nil {
		return Entry{}, false, err
	}
	if err := batch.Set(digestKey(e.Digest), e.ID.Bytes(), nil); err != nil {
		return Entry{}, false, err
	}
	if err := batch.Commit(pebble.Sync); err != nil {
		return Entry{}, false, fmt.Errorf("commit entry: %w", err)
	}

	return e, true, nil
}

// Get returns the entry stored under id
func (a *Archive) Get(ctx context.Context, id ksuid.KSUID) (Entry, error) {
	if err := ctx.Err(); err != nil {
		return Entry{}, err
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	if a.closed {
		return Entry{}, ErrClosed
	}
	return a.getLocked(id)
}

// GetByDigest returns the entry decoded from the payload with digest d
func (a *Archive) GetByDigest(ctx context.Context, d digest.Digest) (Entry, error) {
	if err := ctx.Err(); err != nil {
		return Entry{}, err
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	if a.closed {
		return Entry{}, ErrClosed
	}
	return a.getByDigestLocked(d)
}

// List returns up to limit entries in id order, without their league
// documents. Ids sort by creation second. A limit of zero or less lists
// everything.
func (a *Archive) List(ctx context.Context, limit int) ([]Entry, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.closed {
		return nil, ErrClosed
	}

	iter, err := a.db.NewIter(&pebble.IterOptions{
		LowerBound: leaguePrefix,
		UpperBound: prefixEnd(leaguePrefix),
	})
	if err != nil {
		return nil, err
	}
	defer iter.Close()

	entries := []Entry{}
	for iter.First(); iter.Valid(); iter.Next() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if limit > 0 && len(entries) >= limit {
			break
		}
		e, err := a.decode(iter.Value())
		if err != nil {
			return nil, fmt.Errorf("decode %s: %w", iter.Key(), err)
		}
		e.League = nil
		entries = append(entries, e)
	}
	if err := iter.Error(); err != nil {
		return nil, err
	}
	return entries, nil
}

// Delete removes the entry stored under id and its digest index
func (a *Archive) Delete(ctx context.Context, id ksuid.KSUID) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	if a.closed {
		return ErrClosed
	}

	e, err := a.getLocked(id)
	if err != nil {
		return err
	}

	batch := a.db.NewBatch()
	defer batch.Close()
	if err := batch.Delete(leagueKey(id), nil); err != nil {
		return err
	}
	if err := batch.Delete(digestKey(e.Digest), nil); err != nil {
		return err
	}
	return batch.Commit(pebble.Sync)
}

func (a *Archive) getLocked(id ksuid.KSUID) (Entry, error) {
	value, err := a.read(leagueKey(id))
	if err != nil {
		return Entry{}, err
	}
	return a.decode(value)
}

func (a *Archive) getByDigestLocked(d digest.Digest) (Entry, error) {
	raw, err := a.read(digestKey(d))
	if err != nil {
		return Entry{}, err
	}
	id, err := ksuid.FromBytes(raw)
	if err != nil {
		return Entry{}, fmt.Errorf("corrupt digest index for %s: %w", d, err)
	}
	return a.getLocked(id)
}

// read copies the value stored under key
func (a *Archive) read(key []byte) ([]byte, error) {
	value, closer, err := a.db.Get(key)
	if errors.Is(err, pebble.ErrNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	defer closer.Close()
	return bytes.Clone(value), nil
}

func (a *Archive) decode(value []byte) (Entry, error) {
	doc, err := a.dec.DecodeAll(value, nil)
	if err != nil {
		return Entry{}, fmt.Errorf("decompress entry: %w", err)
	}
	var e Entry
	if err := json.Unmarshal(doc, &e); err != nil {
		return Entry{}, fmt.Errorf("decode entry: %w", err)
	}
	return e, nil
}

func leagueKey(id ksuid.KSUID) []byte {
	return append(bytes.Clone(leaguePrefix), id.String()...)
}

func digestKey(d digest.Digest) []byte {
	return append(bytes.Clone(digestPrefix), d.String()...)
}

// prefixEnd returns the smallest key greater than every key with prefix p
func prefixEnd(p []byte) []byte {
	end := bytes.Clone(p)
	for i := len(end) - 1; i >= 0; i-- {
		end[i]++
		if end[i] != 0 {
			return end[:i+1]
		}
	}
	return nil
}
