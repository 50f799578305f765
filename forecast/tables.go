package forecast

import (
	"strconv"
	"strings"
	"time"

	"fct/model"
)

// Forecastシート生成に必要な元列（派生列の 時期 / 確度分類 / 200万FLAG を除く26列）。
var forecastSourceColumns = []string{
	model.ColMakerName,
	model.ColQuoteDate,
	model.ColCustomerName,
	model.ColSalesRep,
	model.ColAssistantName,
	model.ColQuoteNo,
	model.ColRevision,
	model.ColSubject,
	model.ColBrand,
	model.ColPartNumber,
	model.ColSKU,
	model.ColLicenseCategory,
	model.ColProductName,
	model.ColQuantity,
	model.ColSubtotal,
	model.ColQuoteNotes,
	model.ColDeliveryDue,
	model.ColUnitPrice,
	model.ColCostUnitPrice,
	model.ColGrossProfit,
	model.ColCostSubtotal,
	model.ColGrossProfitSub,
	model.ColConfidence,
	model.ColExpectedOrder,
	model.ColOrderStatus,
	model.ColEndUserName,
}

// 業務シートの1行目と同じ並び・名称。確度は元値と分類の2列があります。
var forecastHeader = []string{
	"メーカ名",
	"見積作成日",
	"顧客名",
	"担当営業",
	"アシスタント名",
	"見積No",
	"版数",
	"件名",
	"ブランド",
	"メーカ型番",
	"SKU",
	"ライセンスカテゴリー",
	"商品名",
	"数量",
	"小計",
	"見積注意事項",
	"納入期日",
	"単価",
	"原単価",
	"粗利額",
	"原価小計",
	"粗利小計",
	"確度",
	"受注予定日",
	"受注有無",
	"エンドユーザー名",
	"時期",
	"確度",
	"200万円UPかどうかの判断（実データは200万円以上の案件のみピックアップします）",
}

var vadRequiredColumns = []string{
	model.ColQuoteDate,
	model.ColCustomerName,
	model.ColSalesRep,
	model.ColAssistantName,
	model.ColQuoteNo,
	model.ColBrand,
	model.ColSKU,
	model.ColLicenseCategory,
	model.ColProductName,
	model.ColQuantity,
	model.ColSubtotal,
	model.ColEndUserName,
	model.ColAmountFlag,
}

// NW VAD Forecast 提出シートと同じ21列。
// 案件時期以降はまだデータ源が無いため空欄で出します。
var vadHeader = []string{
	"見積作成日",
	"顧客名",
	"担当営業",
	"アシスタント名",
	"見積No",
	"ブランド",
	"SKU",
	"ライセンスカテゴリ",
	"商品名",
	"数量",
	"小計",
	"EU",
	"案件時期",
	"案件確度",
	"その他コメント",
	"営業部確認",
	"PA番号",
	"カテゴリ",
	"チャレンジ",
	"担当",
	"PGS",
}

// BuildForecastTable は社内向けForecastシート（29列）を生成します。
// 時期は見積作成日のYYYY-MM（解釈不能な日付は空欄）、2つ目の確度は
// 受注→High / 概算→Low の簡易分類、最終列は★フラグを○/空欄に写し替えたものです。
func BuildForecastTable(t model.WorkTable) (model.ReportTable, error) {
	if err := requireColumns("Forecastテーブル生成", "見積データ", t.Columns, forecastSourceColumns); err != nil {
		return model.ReportTable{}, err
	}

	rows := make([][]string, 0, len(t.Rows))
	for _, r := range t.Rows {
		rows = append(rows, []string{
			r.MakerName,
			r.QuoteDate,
			r.CustomerName,
			r.SalesRep,
			r.AssistantName,
			renderIntLike(r.QuoteNo),
			renderIntLike(r.Revision),
			r.Subject,
			derefOrEmpty(r.Brand),
			r.PartNumber,
			r.SKU,
			derefOrEmpty(r.LicenseCategory),
			r.ProductName,
			r.Quantity,
			formatAmount(r.Subtotal),
			r.QuoteNotes,
			r.DeliveryDue,
			r.UnitPrice,
			r.CostUnitPrice,
			r.GrossProfit,
			r.CostSubtotal,
			r.GrossProfitSub,
			r.Confidence,
			r.ExpectedOrder,
			r.OrderStatus,
			r.EndUserName,
			derivePeriod(r.QuoteDate),
			classifyConfidence(r.Confidence),
			renderAmountFlagMark(r.AmountFlag),
		})
	}

	return model.ReportTable{Header: append([]string(nil), forecastHeader...), Rows: rows}, nil
}

// BuildVADForecast はIBMへ送付するVAD Forecast形式（21列）を生成します。
// 対象は200万円UPフラグが★の行のみです。
func BuildVADForecast(t model.WorkTable) (model.ReportTable, error) {
	if err := requireColumns("VAD Forecast生成", "見積データ", t.Columns, vadRequiredColumns); err != nil {
		return model.ReportTable{}, err
	}

	rows := make([][]string, 0)
	for _, r := range t.Rows {
		if r.AmountFlag != model.AmountFlagOver {
			continue
		}
		rows = append(rows, []string{
			r.QuoteDate,
			r.CustomerName,
			r.SalesRep,
			r.AssistantName,
			renderIntLike(r.QuoteNo),
			derefOrEmpty(r.Brand),
			r.SKU,
			derefOrEmpty(r.LicenseCategory),
			r.ProductName,
			r.Quantity,
			formatAmount(r.Subtotal),
			r.EndUserName, // EU
			"",            // 案件時期
			"",            // 案件確度
			"",            // その他コメント
			"",            // 営業部確認
			"",            // PA番号
			"",            // カテゴリ
			"",            // チャレンジ
			"",            // 担当
			"",            // PGS
		})
	}

	return model.ReportTable{Header: append([]string(nil), vadHeader...), Rows: rows}, nil
}

// SelectNeedsReview はマスタ未ヒット（ブランドまたはライセンスカテゴリーがnil）の行を抜き出します。
// 手動確認用のため列の絞り込みはせず、作業テーブルの全列を残します。
// VAD対象かどうかとは独立で、★かつ未ヒットの行は両方の出力に現れます。
func SelectNeedsReview(t model.WorkTable) (model.WorkTable, error) {
	if err := requireColumns("要確認リスト抽出", "見積データ", t.Columns,
		[]string{model.ColBrand, model.ColLicenseCategory}); err != nil {
		return model.WorkTable{}, err
	}

	rows := make([]model.WorkRow, 0)
	for _, r := range t.Rows {
		if r.Brand == nil || r.LicenseCategory == nil {
			rows = append(rows, r)
		}
	}
	return model.WorkTable{Columns: t.Columns.Clone(), Rows: rows}, nil
}

// 作業テーブルを全列そのままレポート化する際の列順。
// 見積データの元列の後ろに、付与順どおり派生列が並びます。
var workTableColumnOrder = []string{
	model.ColMakerName,
	model.ColQuoteDate,
	model.ColCustomerName,
	model.ColSalesRep,
	model.ColAssistantName,
	model.ColQuoteNo,
	model.ColRevision,
	model.ColSubject,
	model.ColPartNumber,
	model.ColProductName,
	model.ColQuantity,
	model.ColSubtotal,
	model.ColQuoteNotes,
	model.ColDeliveryDue,
	model.ColUnitPrice,
	model.ColCostUnitPrice,
	model.ColGrossProfit,
	model.ColCostSubtotal,
	model.ColGrossProfitSub,
	model.ColConfidence,
	model.ColExpectedOrder,
	model.ColOrderStatus,
	model.ColEndUserName,
	model.ColAmountFlag,
	model.ColSKU,
	model.ColBrand,
	model.ColLicenseForm,
	model.ColLicenseCategory,
}

// WorkTableReport は作業テーブルを（実在する列だけ・定義順で）ReportTable化します。
// needs_review.xlsx の書き出しに使います。
func WorkTableReport(t model.WorkTable) model.ReportTable {
	var header []string
	for _, c := range workTableColumnOrder {
		if t.Columns.Has(c) {
			header = append(header, c)
		}
	}

	rows := make([][]string, 0, len(t.Rows))
	for _, r := range t.Rows {
		row := make([]string, 0, len(header))
		for _, c := range header {
			row = append(row, workCellValue(r, c))
		}
		rows = append(rows, row)
	}
	return model.ReportTable{Header: header, Rows: rows}
}

func workCellValue(r model.WorkRow, col string) string {
	switch col {
	case model.ColMakerName:
		return r.MakerName
	case model.ColQuoteDate:
		return r.QuoteDate
	case model.ColCustomerName:
		return r.CustomerName
	case model.ColSalesRep:
		return r.SalesRep
	case model.ColAssistantName:
		return r.AssistantName
	case model.ColQuoteNo:
		return r.QuoteNo
	case model.ColRevision:
		return r.Revision
	case model.ColSubject:
		return r.Subject
	case model.ColPartNumber:
		return r.PartNumber
	case model.ColProductName:
		return r.ProductName
	case model.ColQuantity:
		return r.Quantity
	case model.ColSubtotal:
		return formatAmount(r.Subtotal)
	case model.ColQuoteNotes:
		return r.QuoteNotes
	case model.ColDeliveryDue:
		return r.DeliveryDue
	case model.ColUnitPrice:
		return r.UnitPrice
	case model.ColCostUnitPrice:
		return r.CostUnitPrice
	case model.ColGrossProfit:
		return r.GrossProfit
	case model.ColCostSubtotal:
		return r.CostSubtotal
	case model.ColGrossProfitSub:
		return r.GrossProfitSub
	case model.ColConfidence:
		return r.Confidence
	case model.ColExpectedOrder:
		return r.ExpectedOrder
	case model.ColOrderStatus:
		return r.OrderStatus
	case model.ColEndUserName:
		return r.EndUserName
	case model.ColAmountFlag:
		return r.AmountFlag
	case model.ColSKU:
		return r.SKU
	case model.ColBrand:
		return derefOrEmpty(r.Brand)
	case model.ColLicenseForm:
		return derefOrEmpty(r.LicenseForm)
	case model.ColLicenseCategory:
		return derefOrEmpty(r.LicenseCategory)
	}
	return ""
}

var quoteDateLayouts = []string{
	"2006-01-02",
	"2006/01/02",
	"2006-01-02 15:04:05",
	"2006/01/02 15:04:05",
	"2006年1月2日",
	"2006.01.02",
}

// derivePeriod は見積作成日から YYYY-MM を作ります。解釈できない日付は空欄です。
func derivePeriod(dateText string) string {
	s := strings.TrimSpace(dateText)
	if s == "" {
		return ""
	}
	for _, layout := range quoteDateLayouts {
		if d, err := time.Parse(layout, s); err == nil {
			return d.Format("2006-01")
		}
	}
	return ""
}

// classifyConfidence は自由記述の確度を High / Low / 空欄 の3値に分類します。
func classifyConfidence(confidence string) string {
	if strings.Contains(confidence, "受注") {
		return "High"
	}
	if strings.Contains(confidence, "概算") {
		return "Low"
	}
	return ""
}

// renderAmountFlagMark は★/NGの2値マーカーを表示用の○/空欄へ写します。
func renderAmountFlagMark(flag string) string {
	if flag == model.AmountFlagOver {
		return "○"
	}
	return ""
}

// renderIntLike は "12345.0" のような数値由来の値から小数部を落とします。
// 数値として読めない値はそのまま返します。
func renderIntLike(s string) string {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return trimmed
	}
	f, err := strconv.ParseFloat(trimmed, 64)
	if err != nil {
		return trimmed
	}
	if f == float64(int64(f)) {
		return strconv.FormatInt(int64(f), 10)
	}
	return trimmed
}

func formatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func derefOrEmpty(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}
