package exporter

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"fct/model"
)

func TestWriteXLSX(t *testing.T) {
	table := model.ReportTable{
		Header: []string{"見積No", "ブランド", "小計"},
		Rows: [][]string{
			{"1001", "SPSS", "1200000"},
			{"1002", "", "900000"},
		},
	}

	data, err := WriteXLSX(table)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Sheet1")
	require.NoError(t, err)
	require.Len(t, rows, 3)

	// 1行目がヘッダー、インデックス列なし
	assert.Equal(t, []string{"見積No", "ブランド", "小計"}, rows[0])
	assert.Equal(t, "1001", rows[1][0])
	assert.Equal(t, "900000", rows[2][2])
}

func TestWriteXLSXEmptyTable(t *testing.T) {
	table := model.ReportTable{Header: []string{"見積No"}}

	data, err := WriteXLSX(table)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Sheet1")
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, []string{"見積No"}, rows[0])
}
