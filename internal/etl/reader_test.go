package etl

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "douyinsight/internal/errors"
)

func writeTempCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "data.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestTableReaderCSV(t *testing.T) {
	path := writeTempCSV(t, "aweme_id,user_name,like_count\n007,张三,42\n008,李四\n")

	table, err := NewTableReader(path).Read()
	require.NoError(t, err)

	assert.Equal(t, []string{"aweme_id", "user_name", "like_count"}, table.Headers)
	require.Len(t, table.Rows, 2)
	assert.Equal(t, "007", table.Rows[0]["aweme_id"])
	assert.Equal(t, "张三", table.Rows[0]["user_name"])
	// Ragged row: missing trailing cell reads as empty.
	assert.Equal(t, "", table.Rows[1]["like_count"])
}

func TestTableReaderStripsBOM(t *testing.T) {
	path := writeTempCSV(t, "\ufeffaweme_id,like_count\n1,2\n")

	table, err := NewTableReader(path).Read()
	require.NoError(t, err)
	assert.Equal(t, "aweme_id", table.Headers[0])
	assert.Equal(t, "1", table.Rows[0]["aweme_id"])
}

func TestTableReaderMissingFile(t *testing.T) {
	_, err := NewTableReader(filepath.Join(t.TempDir(), "absent.csv")).Read()
	require.Error(t, err)
	assert.Equal(t, apperrors.CodeSourceMissing, apperrors.GetCode(err))
}

func TestTableReaderEmptyFile(t *testing.T) {
	path := writeTempCSV(t, "")

	table, err := NewTableReader(path).Read()
	require.NoError(t, err)
	assert.Empty(t, table.Headers)
	assert.Empty(t, table.Rows)
}
