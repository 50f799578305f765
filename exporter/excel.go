// Package exporter はレポートテーブルをExcelバイナリへ書き出します。
package exporter

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"fct/model"
)

const sheetName = "Sheet1"

// WriteXLSX は ReportTable を xlsx バイト列にします。
// 先頭シートの1行目がヘッダー、以降がデータ行で、インデックス列は付けません。
func WriteXLSX(t model.ReportTable) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	header := make([]interface{}, len(t.Header))
	for i, h := range t.Header {
		header[i] = h
	}
	if err := f.SetSheetRow(sheetName, "A1", &header); err != nil {
		return nil, fmt.Errorf("ヘッダー行の書き込みに失敗: %w", err)
	}

	for i, row := range t.Rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		values := make([]interface{}, len(row))
		for j, v := range row {
			values[j] = v
		}
		if err := f.SetSheetRow(sheetName, cell, &values); err != nil {
			return nil, fmt.Errorf("%d行目の書き込みに失敗: %w", i+2, err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("Excelバイナリの生成に失敗: %w", err)
	}
	return buf.Bytes(), nil
}
