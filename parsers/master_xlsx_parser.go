package parsers

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"fct/model"
)

// DefaultMasterSheet は型番マスタExcelの既定ワークシート名です。
const DefaultMasterSheet = "PA"

// ParseMasterXLSX は型番マスタExcelの指定シートを解析して MasterTable を返します。
// 1行目をヘッダーとして扱い、実在した列を Columns に記録します。
func ParseMasterXLSX(data []byte, sheet string) (model.MasterTable, error) {
	if sheet == "" {
		sheet = DefaultMasterSheet
	}

	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return model.MasterTable{}, fmt.Errorf("型番マスタExcelのオープンに失敗: %w", err)
	}
	defer f.Close()

	rows, err := f.GetRows(sheet)
	if err != nil {
		return model.MasterTable{}, fmt.Errorf("シート『%s』の読み取りに失敗: %w", sheet, err)
	}
	if len(rows) == 0 {
		return model.MasterTable{}, fmt.Errorf("シート『%s』が空です", sheet)
	}

	colIndex := getColIndex(rows[0])
	columns := model.NewColumnSet()
	for name := range colIndex {
		if name != "" {
			columns.Add(name)
		}
	}

	var records []model.PartMasterRow
	for _, rec := range rows[1:] {
		get := func(col string) string {
			if idx, ok := colIndex[col]; ok && idx < len(rec) {
				return strings.TrimSpace(rec[idx])
			}
			return ""
		}

		r := model.PartMasterRow{
			PartNumber:  get(model.ColMasterPartNumber),
			Brand:       get(model.ColBrand),
			LicenseForm: get(model.ColLicenseForm),
		}
		if r.PartNumber == "" && r.Brand == "" && r.LicenseForm == "" {
			continue
		}
		records = append(records, r)
	}

	return model.MasterTable{Columns: columns, Rows: records}, nil
}
