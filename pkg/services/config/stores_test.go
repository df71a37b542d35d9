package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeStoresFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "stores.ini")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestRegistry(t *testing.T) {
	path := writeStoresFile(t, `
[batterbox]
domain = batterboxsports
token  = shpat_aaa

[groovygolfer]
domain = groovygolfer.myshopify.com
token  = shpat_bbb
`)

	registry, err := NewRegistry(path, DefaultSettings())
	require.NoError(t, err)

	stores, err := registry.GetStores(context.Background())
	require.NoError(t, err)
	require.Len(t, stores, 2)
	assert.Equal(t, "batterbox", stores[0].Name)
	assert.Equal(t, "groovygolfer", stores[1].Name)

	cfg, err := registry.GetClientConfig(context.Background(), "batterbox")
	require.NoError(t, err)
	assert.Equal(t, "batterbox", cfg.Store)
	assert.Equal(t, "batterboxsports", cfg.Domain)
	assert.Equal(t, "shpat_aaa", cfg.Token)
}

func TestRegistry_UnknownStore(t *testing.T) {
	path := writeStoresFile(t, "[only]\ndomain = x\ntoken = y\n")

	registry, err := NewRegistry(path, DefaultSettings())
	require.NoError(t, err)

	_, err = registry.GetClientConfig(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrStoreNotFound)
}

func TestRegistry_IncompleteProfile(t *testing.T) {
	path := writeStoresFile(t, "[broken]\ndomain = x\n")

	registry, err := NewRegistry(path, DefaultSettings())
	require.NoError(t, err)

	_, err = registry.GetClientConfig(context.Background(), "broken")
	assert.Error(t, err, "a profile without a token must be rejected")
}

func TestRegistry_MissingFile(t *testing.T) {
	_, err := NewRegistry(filepath.Join(t.TempDir(), "nope.ini"), DefaultSettings())
	assert.Error(t, err)
}
