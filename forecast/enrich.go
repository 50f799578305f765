package forecast

import (
	"strconv"
	"strings"

	"fct/model"
)

// amountFlagThreshold を「超」の案件にフラグを立てます（ちょうど200万円は対象外）。
const amountFlagThreshold = 2_000_000

// AttachAmountFlag は見積No単位で小計を合計し、200万円UPフラグを全明細行に付与します。
// 見積NoにはIBM見積のHW+SWが混在する前提のため、ソフトウェア絞り込みより前に呼ぶこと。
// 見積Noが空の行もひとつのグループとして集計されます。
func AttachAmountFlag(t model.WorkTable) (model.WorkTable, error) {
	if err := requireColumns("200万円UPフラグ付与", "見積データ", t.Columns,
		[]string{model.ColQuoteNo, model.ColSubtotal}); err != nil {
		return model.WorkTable{}, err
	}

	totals := make(map[string]float64)
	for _, r := range t.Rows {
		totals[r.QuoteNo] += r.Subtotal
	}

	rows := make([]model.WorkRow, len(t.Rows))
	for i, r := range t.Rows {
		if totals[r.QuoteNo] > amountFlagThreshold {
			r.AmountFlag = model.AmountFlagOver
		} else {
			r.AmountFlag = model.AmountFlagUnder
		}
		rows[i] = r
	}

	cols := t.Columns.Clone()
	cols.Add(model.ColAmountFlag)
	return model.WorkTable{Columns: cols, Rows: rows}, nil
}

// AttachSKU はメーカ型番の先頭7桁をSKUとして付与します。
// 型番が数値として入っている場合も、先頭桁を失ったり指数表記になったりしないよう
// 文字列化してから切り出します。
func AttachSKU(t model.WorkTable) (model.WorkTable, error) {
	if err := requireColumns("SKU付与", "見積データ", t.Columns,
		[]string{model.ColPartNumber}); err != nil {
		return model.WorkTable{}, err
	}

	rows := make([]model.WorkRow, len(t.Rows))
	for i, r := range t.Rows {
		r.SKU = deriveSKU(r.PartNumber)
		rows[i] = r
	}

	cols := t.Columns.Clone()
	cols.Add(model.ColSKU)
	return model.WorkTable{Columns: cols, Rows: rows}, nil
}

func deriveSKU(partNumber string) string {
	s := CoerceNumericText(partNumber)
	runes := []rune(s)
	if len(runes) > 7 {
		runes = runes[:7]
	}
	return string(runes)
}

// CoerceNumericText は数値として読める値をプレーンな10進文字列に直します。
// "8480859.0" → "8480859"、"1.234567e+09" → "1234567000"。
// 数値でない値（通常の型番）はそのまま返します。
func CoerceNumericText(s string) string {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return trimmed
	}
	if !strings.ContainsAny(trimmed, ".eE") {
		return trimmed
	}
	f, err := strconv.ParseFloat(trimmed, 64)
	if err != nil {
		return trimmed
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}

type masterEntry struct {
	brand       string
	licenseForm string
}

// AttachBrandAndLicense は型番マスタ(PAシート)からブランド/ライセンス形態を付与します。
// JOINキーはSKU（パーツ番号の先頭7桁）。マスタは (SKU, ブランド, ライセンス形態) で
// 重複排除したうえで、同一SKUが残った場合は先勝ちの多対一結合とします。
// マスタ未ヒットの行は Brand / LicenseCategory が nil のまま残り、後段の要確認リストに回ります。
// ライセンスカテゴリーは当面ライセンス形態のコピーです（業務確認待ちの暫定仕様）。
func AttachBrandAndLicense(t model.WorkTable, master model.MasterTable) (model.WorkTable, error) {
	if err := requireColumns("ブランド/ライセンス付与", "見積データ", t.Columns,
		[]string{model.ColSKU}); err != nil {
		return model.WorkTable{}, err
	}
	if err := requireColumns("ブランド/ライセンス付与", "型番マスタ", master.Columns,
		[]string{model.ColMasterPartNumber, model.ColBrand, model.ColLicenseForm}); err != nil {
		return model.WorkTable{}, err
	}

	lookup := make(map[string]masterEntry)
	seen := make(map[string]struct{})
	for _, m := range master.Rows {
		sku := deriveSKU(m.PartNumber)
		dedupKey := sku + "\x00" + m.Brand + "\x00" + m.LicenseForm
		if _, dup := seen[dedupKey]; dup {
			continue
		}
		seen[dedupKey] = struct{}{}
		if _, exists := lookup[sku]; !exists {
			lookup[sku] = masterEntry{brand: m.Brand, licenseForm: m.LicenseForm}
		}
	}

	rows := make([]model.WorkRow, len(t.Rows))
	for i, r := range t.Rows {
		if e, ok := lookup[r.SKU]; ok {
			brand := e.brand
			form := e.licenseForm
			category := e.licenseForm
			r.Brand = &brand
			r.LicenseForm = &form
			r.LicenseCategory = &category
		}
		rows[i] = r
	}

	cols := t.Columns.Clone()
	cols.Add(model.ColBrand, model.ColLicenseForm, model.ColLicenseCategory)
	return model.WorkTable{Columns: cols, Rows: rows}, nil
}
