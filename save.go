package astromap

import (
	"os"
	"path/filepath"

	"github.com/agentstation/astromap/pkg/constants"
	"github.com/agentstation/astromap/pkg/errors"
	"github.com/agentstation/astromap/pkg/record"
)

// writeJSON writes v as indented JSON to dir/name and returns the path.
func writeJSON(dir, name string, v any) (string, error) {
	if err := os.MkdirAll(dir, constants.DirPermissions); err != nil {
		return "", errors.WrapIO("create", dir, err)
	}

	data, err := record.MarshalIndent(v)
	if err != nil {
		return "", errors.WrapParse("json", name, err)
	}

	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, data, constants.FilePermissions); err != nil {
		return "", errors.WrapIO("write", path, err)
	}
	return path, nil
}
