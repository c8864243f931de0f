package transport

import (
	"context"
	"os"
	"path/filepath"

	"github.com/agentstation/astromap/pkg/constants"
	"github.com/agentstation/astromap/pkg/errors"
	"github.com/agentstation/astromap/pkg/logging"
)

// Cache keeps fetched pages in a directory as <name>.html. A page is only
// requested from the underlying Fetcher when its file does not exist yet;
// delete the file to refresh it.
type Cache struct {
	dir  string
	next Fetcher
}

// NewCache returns a Cache storing pages in dir.
func NewCache(dir string, next Fetcher) *Cache {
	return &Cache{dir: dir, next: next}
}

// Path returns the file a page is cached in.
func (c *Cache) Path(name string) string {
	return filepath.Join(c.dir, name+constants.PageExtension)
}

// Fetch returns the cached page, fetching and storing it first if needed.
func (c *Cache) Fetch(ctx context.Context, name string) ([]byte, error) {
	path := c.Path(name)
	data, err := os.ReadFile(path)
	if err == nil {
		logging.FromContext(ctx).Debug().Str("file", path).Msg("Using cached page")
		return data, nil
	}
	if !os.IsNotExist(err) {
		return nil, errors.WrapIO("read", path, err)
	}

	data, err = c.next.Fetch(ctx, name)
	if err != nil {
		return nil, err
	}

	if err := os.MkdirAll(c.dir, constants.DirPermissions); err != nil {
		return nil, errors.WrapIO("create", c.dir, err)
	}
	if err := os.WriteFile(path, data, constants.FilePermissions); err != nil {
		return nil, errors.WrapIO("write", path, err)
	}
	logging.FromContext(ctx).Info().Str("file", path).Msg("Cached page")
	return data, nil
}
