package labstock_test

import (
	"bytes"
	"go/format"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestGofmt falla si algún archivo Go del módulo no está en formato gofmt.
func TestGofmt(t *testing.T) {
	for _, root := range []string{"cmd", "internal", "pkg", "migrations"} {
		err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil || d.IsDir() || !strings.HasSuffix(path, ".go") {
				return err
			}
			src, err := os.ReadFile(path)
			if err != nil {
				return err
			}
			formatted, err := format.Source(src)
			if assert.NoError(t, err, path) {
				assert.True(t, bytes.Equal(src, formatted), "%s: ejecutar gofmt -w", path)
			}
			return nil
		})
		require.NoError(t, err)
	}
}
