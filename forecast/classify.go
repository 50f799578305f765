package forecast

import (
	"strings"

	"fct/model"
)

// 業務マニュアルで例示されているIBMの表記ゆれ。完全一致で判定します。
var ibmMakerNames = []string{
	"日本アイ・ビー・エム",
	"日本IBM",
	"日本アイ・ビー・エム株式会社",
}

// IBMソフトウェア型番のSKU先頭文字。
var softwareSKUPrefixes = []string{"D", "E", "X", "Y"}

// FilterIBMManufacturer はメーカ名がIBMに該当する行だけに絞ります。
// 既知の表記ゆれとの完全一致に加え、取りこぼし防止として "IBM" の部分一致も拾います。
// 行順は入力のまま保たれ、同じ入力に2回かけても結果は変わりません。
func FilterIBMManufacturer(t model.QuoteTable) (model.QuoteTable, error) {
	if err := requireColumns("メーカ名フィルタ", "見積データ", t.Columns, []string{model.ColMakerName}); err != nil {
		return model.QuoteTable{}, err
	}

	rows := make([]model.QuoteRow, 0, len(t.Rows))
	for _, r := range t.Rows {
		if isIBMMakerName(r.MakerName) {
			rows = append(rows, r)
		}
	}
	return model.QuoteTable{Columns: t.Columns.Clone(), Rows: rows}, nil
}

func isIBMMakerName(name string) bool {
	for _, p := range ibmMakerNames {
		if name == p {
			return true
		}
	}
	return strings.Contains(name, "IBM")
}

// FilterIBMSoftware はSKUの先頭文字が D/E/X/Y の行だけに絞ります。
// SKU列が無い場合はエラーになるため、先に AttachSKU を通す必要があります。
func FilterIBMSoftware(t model.WorkTable) (model.WorkTable, error) {
	if err := requireColumns("IBMソフトウェアフィルタ", "見積データ", t.Columns, []string{model.ColSKU}); err != nil {
		return model.WorkTable{}, err
	}

	rows := make([]model.WorkRow, 0, len(t.Rows))
	for _, r := range t.Rows {
		if isSoftwareSKU(r.SKU) {
			rows = append(rows, r)
		}
	}
	return model.WorkTable{Columns: t.Columns.Clone(), Rows: rows}, nil
}

func isSoftwareSKU(sku string) bool {
	if sku == "" {
		return false
	}
	head := sku[:1]
	for _, p := range softwareSKUPrefixes {
		if head == p {
			return true
		}
	}
	return false
}
