package di

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ssargent/lgeparse/pkg/api"
	"github.com/ssargent/lgeparse/pkg/archive"
	"github.com/ssargent/lgeparse/pkg/config"
)

func TestNewContainer_Defaults(t *testing.T) {
	c := NewContainer(nil, nil)
	assert.Equal(t, config.DefaultConfig(), c.Config())
	assert.NotNil(t, c.Logger())
	assert.NotNil(t, c.Parser())
	assert.NotNil(t, c.GetServerFactory())
}

func TestContainer_OpenArchive(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Archive.Dir = filepath.Join(t.TempDir(), "nested", "archive")
	logger, _ := test.NewNullLogger()

	c := NewContainer(cfg, logger)
	a, err := c.OpenArchive("")
	require.NoError(t, err)
	require.NoError(t, a.Close())
	assert.DirExists(t, cfg.Archive.Dir)

	override := filepath.Join(t.TempDir(), "other")
	b, err := c.OpenArchive(override)
	require.NoError(t, err)
	require.NoError(t, b.Close())
	assert.DirExists(t, override)
}

func TestContainer_SetArchiveOpener(t *testing.T) {
	c := NewContainer(config.DefaultConfig(), nil)
	wantErr := errors.New("locked")

	var gotDir string
	c.SetArchiveOpener(func(dir string) (*archive.Archive, error) {
		gotDir = dir
		return nil, wantErr
	})

	dir := filepath.Join(t.TempDir(), "archive")
	_, err := c.OpenArchive(dir)
	assert.ErrorIs(t, err, wantErr)
	assert.Equal(t, dir, gotDir)
}

type stubFactory struct {
	api.ServerFactory
}

func TestContainer_SetServerFactory(t *testing.T) {
	c := NewContainer(nil, nil)
	f := stubFactory{}
	c.SetServerFactory(f)
	assert.Equal(t, f, c.GetServerFactory())
}
