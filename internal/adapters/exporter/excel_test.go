package exporter

import (
	"bytes"
	"quickreply-editor/internal/domain"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestExcelExporter(t *testing.T) {
	t.Run("Export записывает заголовки и строки", func(t *testing.T) {
		var buf bytes.Buffer
		options := []domain.Option{
			{Order: 1, Label: "Hello", Color: "#abc000", Kind: domain.KindByID, Selector: "greeting"},
			{Order: 2, Label: "Custom", Color: "red", Kind: domain.KindCustom, Content: "Line one\nLine two"},
		}

		require.NoError(t, NewExcelExporter(&buf).Export(options))

		f, err := excelize.OpenReader(&buf)
		require.NoError(t, err)
		defer f.Close()

		rows, err := f.GetRows(SheetName)
		require.NoError(t, err)
		require.Len(t, rows, 3)
		assert.Equal(t, excelHeaders, rows[0])
		assert.Equal(t, []string{"1", "Hello", "by_id", "greeting", "", "#abc000"}, rows[1])
		assert.Equal(t, "Line one\nLine two", rows[2][4])
	})

	t.Run("Пустой список дает только заголовки", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, NewExcelExporter(&buf).Export(nil))

		f, err := excelize.OpenReader(&buf)
		require.NoError(t, err)
		defer f.Close()

		rows, err := f.GetRows(SheetName)
		require.NoError(t, err)
		assert.Len(t, rows, 1)
	})
}

func TestIsHexColor(t *testing.T) {
	assert.True(t, isHexColor("#abc000"))
	assert.True(t, isHexColor("#ABCDEF"))
	assert.False(t, isHexColor("#abc"))
	assert.False(t, isHexColor("red"))
	assert.False(t, isHexColor("#ggg000"))
}
