package csv_to_postgres

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
)

func encode1251(t *testing.T, s string) *bytes.Reader {
	t.Helper()
	encoded, _, err := transform.String(charmap.Windows1251.NewEncoder(), s)
	require.NoError(t, err)
	return bytes.NewReader([]byte(encoded))
}

func TestProcessCSVDecodesWindows1251(t *testing.T) {
	csv := strings.Join([]string{
		"barcode;name;brand;category;platform_product_id",
		"4600123456789;Молоко 3,2%;Простоквашино;Молочка;777",
		"4600987654321;Хлеб дарницкий;;Хлеб;778",
	}, "\n")

	proc := NewProcessor([]string{"barcode", "name", "brand", "category", "platform_product_id"})
	rows, err := proc.ProcessCSV(encode1251(t, csv))
	require.NoError(t, err)

	require.Len(t, rows, 2)
	assert.Equal(t, "Молоко 3,2%", rows[0][1])
	assert.Equal(t, "777", rows[0][4])
	assert.Equal(t, "", rows[1][2])
}

func TestProcessCSVSkipsMalformedRows(t *testing.T) {
	csv := strings.Join([]string{
		"111;Товар;Бренд",
		"222;обрезанная строка",
		"333;Другой товар;Бренд",
	}, "\n")

	proc := NewProcessor([]string{"barcode", "name", "brand"})
	rows, err := proc.ProcessCSV(encode1251(t, csv))
	require.NoError(t, err)

	require.Len(t, rows, 2)
	assert.Equal(t, "111", rows[0][0])
	assert.Equal(t, "333", rows[1][0])
}

func TestProcessCSVTrimsFields(t *testing.T) {
	proc := NewProcessor([]string{"barcode", "name"})
	rows, err := proc.ProcessCSV(encode1251(t, "  111 ; Молоко  "))
	require.NoError(t, err)

	require.Len(t, rows, 1)
	assert.Equal(t, "111", rows[0][0])
	assert.Equal(t, "Молоко", rows[0][1])
}

func TestProcessCSVCustomSeparator(t *testing.T) {
	proc := NewProcessor([]string{"barcode", "name"}).SetSeparator(',')
	rows, err := proc.ProcessCSV(encode1251(t, "111,Молоко"))
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Молоко", rows[0][1])
}
