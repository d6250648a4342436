package encoding

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromINI(t *testing.T) {
	writeINI := func(t *testing.T, content string) string {
		t.Helper()
		path := filepath.Join(t.TempDir(), "RPG_RT.ini")
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
		return path
	}

	t.Run("ReadsEncodingKey", func(t *testing.T) {
		path := writeINI(t, "[RPG_RT]\nGameTitle=Test\n\n[EasyRPG]\nEncoding=932\n")
		assert.Equal(t, "932", FromINI(path))
	})

	t.Run("MissingKey", func(t *testing.T) {
		path := writeINI(t, "[RPG_RT]\nGameTitle=Test\n")
		assert.Empty(t, FromINI(path))
	})

	t.Run("MissingFile", func(t *testing.T) {
		assert.Empty(t, FromINI(filepath.Join(t.TempDir(), "RPG_RT.ini")))
	})

	t.Run("EmptyPath", func(t *testing.T) {
		assert.Empty(t, FromINI(""))
	})
}
