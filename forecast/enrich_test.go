package forecast

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fct/model"
)

func workTableWith(cols model.ColumnSet, rows ...model.WorkRow) model.WorkTable {
	return model.WorkTable{Columns: cols, Rows: rows}
}

func TestAttachSKU(t *testing.T) {
	tests := []struct {
		name       string
		partNumber string
		want       string
	}{
		{"通常の型番", "D1234567XYZ", "D123456"},
		{"7桁ちょうど", "E000001", "E000001"},
		{"7桁未満", "X12", "X12"},
		{"数値型番の小数点除去", "8480859.0", "8480859"},
		{"指数表記の展開", "1.234567e+09", "1234567"},
		{"空欄", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cols := model.NewColumnSet(model.ColPartNumber)
			in := workTableWith(cols, model.WorkRow{QuoteRow: model.QuoteRow{PartNumber: tt.partNumber}})
			out, err := AttachSKU(in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, out.Rows[0].SKU)
			assert.True(t, out.Columns.Has(model.ColSKU))
		})
	}
}

func TestAttachSKUMissingColumn(t *testing.T) {
	in := workTableWith(model.NewColumnSet(model.ColMakerName))
	_, err := AttachSKU(in)

	var missing *MissingColumnError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, []string{model.ColPartNumber}, missing.Columns)
}

func TestAttachAmountFlag(t *testing.T) {
	cols := model.NewColumnSet(model.ColQuoteNo, model.ColSubtotal)
	in := workTableWith(cols,
		model.WorkRow{QuoteRow: model.QuoteRow{QuoteNo: "1", Subtotal: 1_200_000}},
		model.WorkRow{QuoteRow: model.QuoteRow{QuoteNo: "1", Subtotal: 900_000}},
		model.WorkRow{QuoteRow: model.QuoteRow{QuoteNo: "2", Subtotal: 2_000_000}}, // ちょうど200万円は対象外
		model.WorkRow{QuoteRow: model.QuoteRow{QuoteNo: "3", Subtotal: 2_000_001}},
	)

	out, err := AttachAmountFlag(in)
	require.NoError(t, err)
	require.Len(t, out.Rows, 4)

	// 見積No 1: 合計 2,100,000 > 200万 → 全明細行に★
	assert.Equal(t, model.AmountFlagOver, out.Rows[0].AmountFlag)
	assert.Equal(t, model.AmountFlagOver, out.Rows[1].AmountFlag)
	// 見積No 2: 合計がちょうど200万 → NG（「超」のみ対象）
	assert.Equal(t, model.AmountFlagUnder, out.Rows[2].AmountFlag)
	// 見積No 3: 1円でも超えれば★
	assert.Equal(t, model.AmountFlagOver, out.Rows[3].AmountFlag)

	assert.True(t, out.Columns.Has(model.ColAmountFlag))
}

func TestAttachAmountFlagEmptyQuoteNoFormsOwnGroup(t *testing.T) {
	cols := model.NewColumnSet(model.ColQuoteNo, model.ColSubtotal)
	in := workTableWith(cols,
		model.WorkRow{QuoteRow: model.QuoteRow{QuoteNo: "", Subtotal: 1_500_000}},
		model.WorkRow{QuoteRow: model.QuoteRow{QuoteNo: "", Subtotal: 600_000}},
	)

	out, err := AttachAmountFlag(in)
	require.NoError(t, err)
	// 見積No無しの行もまとめてひとつのグループ: 2,100,000 > 200万
	assert.Equal(t, model.AmountFlagOver, out.Rows[0].AmountFlag)
	assert.Equal(t, model.AmountFlagOver, out.Rows[1].AmountFlag)
}

func TestAttachAmountFlagMissingColumns(t *testing.T) {
	in := workTableWith(model.NewColumnSet(model.ColMakerName))
	_, err := AttachAmountFlag(in)

	var missing *MissingColumnError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, []string{model.ColQuoteNo, model.ColSubtotal}, missing.Columns)
}

func masterTableWith(rows ...model.PartMasterRow) model.MasterTable {
	return model.MasterTable{
		Columns: model.NewColumnSet(model.ColMasterPartNumber, model.ColBrand, model.ColLicenseForm),
		Rows:    rows,
	}
}

func TestAttachBrandAndLicense(t *testing.T) {
	cols := model.NewColumnSet(model.ColPartNumber, model.ColSKU)
	in := workTableWith(cols,
		model.WorkRow{SKU: "D123456"},
		model.WorkRow{SKU: "Z999999"}, // マスタ未ヒット
	)
	master := masterTableWith(
		model.PartMasterRow{PartNumber: "D1234567-A", Brand: "SPSS", LicenseForm: "Perpetual"},
	)

	out, err := AttachBrandAndLicense(in, master)
	require.NoError(t, err)
	require.Len(t, out.Rows, 2)

	matched := out.Rows[0]
	require.NotNil(t, matched.Brand)
	assert.Equal(t, "SPSS", *matched.Brand)
	require.NotNil(t, matched.LicenseForm)
	assert.Equal(t, "Perpetual", *matched.LicenseForm)
	// ライセンスカテゴリーは当面ライセンス形態のコピー
	require.NotNil(t, matched.LicenseCategory)
	assert.Equal(t, *matched.LicenseForm, *matched.LicenseCategory)

	unmatched := out.Rows[1]
	assert.Nil(t, unmatched.Brand)
	assert.Nil(t, unmatched.LicenseForm)
	assert.Nil(t, unmatched.LicenseCategory)
}

func TestAttachBrandAndLicenseFirstMatchWins(t *testing.T) {
	cols := model.NewColumnSet(model.ColPartNumber, model.ColSKU)
	in := workTableWith(cols, model.WorkRow{SKU: "D123456"})
	master := masterTableWith(
		model.PartMasterRow{PartNumber: "D1234567", Brand: "SPSS", LicenseForm: "Perpetual"},
		model.PartMasterRow{PartNumber: "D1234567", Brand: "SPSS", LicenseForm: "Perpetual"}, // 完全重複は排除
		model.PartMasterRow{PartNumber: "D1234568", Brand: "Cognos", LicenseForm: "SaaS"},    // 同一SKUの別ブランドは先勝ちで無視
	)

	out, err := AttachBrandAndLicense(in, master)
	require.NoError(t, err)
	require.Len(t, out.Rows, 1)
	require.NotNil(t, out.Rows[0].Brand)
	assert.Equal(t, "SPSS", *out.Rows[0].Brand)
}

func TestAttachBrandAndLicenseMissingMasterColumns(t *testing.T) {
	cols := model.NewColumnSet(model.ColPartNumber, model.ColSKU)
	in := workTableWith(cols)
	master := model.MasterTable{Columns: model.NewColumnSet(model.ColMasterPartNumber)}

	_, err := AttachBrandAndLicense(in, master)

	var missing *MissingColumnError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, []string{model.ColBrand, model.ColLicenseForm}, missing.Columns)
}

func TestCoerceNumericText(t *testing.T) {
	assert.Equal(t, "8480859", CoerceNumericText("8480859.0"))
	assert.Equal(t, "1234567000", CoerceNumericText("1.234567e+09"))
	assert.Equal(t, "D1234567XYZ", CoerceNumericText("D1234567XYZ"))
	assert.Equal(t, "E025ABC", CoerceNumericText("E025ABC"))
	assert.Equal(t, "0012345", CoerceNumericText("0012345"))
	assert.Equal(t, "", CoerceNumericText("  "))
}
