package model

// 見積データ・型番マスタの列名。CSV/Excelのヘッダー行と完全一致させること。
const (
	ColMakerName       = "メーカ名"
	ColQuoteDate       = "見積作成日"
	ColCustomerName    = "顧客名"
	ColSalesRep        = "担当営業"
	ColAssistantName   = "アシスタント名"
	ColQuoteNo         = "見積No"
	ColRevision        = "版数"
	ColSubject         = "件名"
	ColPartNumber      = "メーカ型番"
	ColProductName     = "商品名"
	ColQuantity        = "数量"
	ColSubtotal        = "小計"
	ColQuoteNotes      = "見積注意事項"
	ColDeliveryDue     = "納入期日"
	ColUnitPrice       = "単価"
	ColCostUnitPrice   = "原単価"
	ColGrossProfit     = "粗利額"
	ColCostSubtotal    = "原価小計"
	ColGrossProfitSub  = "粗利小計"
	ColConfidence      = "確度"
	ColExpectedOrder   = "受注予定日"
	ColOrderStatus     = "受注有無"
	ColEndUserName     = "エンドユーザー名"
	ColSKU             = "SKU"
	ColBrand           = "ブランド"
	ColLicenseForm     = "ライセンス形態"
	ColLicenseCategory = "ライセンスカテゴリー"
	ColAmountFlag      = "200万円UPフラグ"

	ColMasterPartNumber = "パーツ番号"
)

// 200万円UPフラグの値。業務シートの2値マーカーをそのまま使う。
const (
	AmountFlagOver  = "★"
	AmountFlagUnder = "NG"
)

// ColumnSet は読み込み時に実在した列の集合です。
// 行は型付き構造体に落とすため、各ステージの前提条件チェックはこの集合に対して行います。
type ColumnSet map[string]struct{}

func NewColumnSet(names ...string) ColumnSet {
	s := make(ColumnSet, len(names))
	for _, n := range names {
		s[n] = struct{}{}
	}
	return s
}

func (s ColumnSet) Has(name string) bool {
	_, ok := s[name]
	return ok
}

func (s ColumnSet) Add(names ...string) {
	for _, n := range names {
		s[n] = struct{}{}
	}
}

// Missing は required のうち集合に無い列名を、元の順序のまま返します。
func (s ColumnSet) Missing(required []string) []string {
	var missing []string
	for _, r := range required {
		if !s.Has(r) {
			missing = append(missing, r)
		}
	}
	return missing
}

func (s ColumnSet) Clone() ColumnSet {
	out := make(ColumnSet, len(s))
	for k := range s {
		out[k] = struct{}{}
	}
	return out
}

// QuoteRow は見積データCSVの1明細行です。
// 集計に使う小計のみ数値、それ以外は表示値をそのまま持ち回ります。
type QuoteRow struct {
	MakerName      string  // メーカ名
	QuoteDate      string  // 見積作成日
	CustomerName   string  // 顧客名
	SalesRep       string  // 担当営業
	AssistantName  string  // アシスタント名
	QuoteNo        string  // 見積No (空 = 見積No無しグループ)
	Revision       string  // 版数
	Subject        string  // 件名
	PartNumber     string  // メーカ型番
	ProductName    string  // 商品名
	Quantity       string  // 数量
	Subtotal       float64 // 小計
	QuoteNotes     string  // 見積注意事項
	DeliveryDue    string  // 納入期日
	UnitPrice      string  // 単価
	CostUnitPrice  string  // 原単価
	GrossProfit    string  // 粗利額
	CostSubtotal   string  // 原価小計
	GrossProfitSub string  // 粗利小計
	Confidence     string  // 確度
	ExpectedOrder  string  // 受注予定日
	OrderStatus    string  // 受注有無
	EndUserName    string  // エンドユーザー名
}

// QuoteTable は見積データの不変スナップショットです。ステージごとに新しい値を作ります。
type QuoteTable struct {
	Columns ColumnSet
	Rows    []QuoteRow
}

// WorkRow は派生列を付与した作業行です。
// Brand / LicenseForm / LicenseCategory の nil はマスタ未ヒットを表します。
type WorkRow struct {
	QuoteRow
	SKU             string
	Brand           *string
	LicenseForm     *string
	LicenseCategory *string
	AmountFlag      string // "★" / "NG"
}

type WorkTable struct {
	Columns ColumnSet
	Rows    []WorkRow
}

// ToWorkTable は見積テーブルを作業テーブルへ持ち上げます（派生列は未設定）。
func (t QuoteTable) ToWorkTable() WorkTable {
	rows := make([]WorkRow, len(t.Rows))
	for i, r := range t.Rows {
		rows[i] = WorkRow{QuoteRow: r}
	}
	return WorkTable{Columns: t.Columns.Clone(), Rows: rows}
}

// PartMasterRow は型番マスタ(PAシート)の1行です。
type PartMasterRow struct {
	PartNumber  string // パーツ番号
	Brand       string // ブランド
	LicenseForm string // ライセンス形態
}

type MasterTable struct {
	Columns ColumnSet
	Rows    []PartMasterRow
}

// ReportTable は出力境界の表現です。Excel書き出し直前にのみ使います。
type ReportTable struct {
	Header []string
	Rows   [][]string
}

// GenerateForecastInputs は /api/forecast/generate のリクエストです。
type GenerateForecastInputs struct {
	QuotesKey     string `json:"quotes_key"`
	PartMasterKey string `json:"part_master_key"`
	OutputPrefix  string `json:"output_prefix"`
}

// GenerateForecastResult は generate_forecast の戻り値です。
type GenerateForecastResult struct {
	QuotesKey       string `json:"quotes_key"`
	PartMasterKey   string `json:"part_master_key"`
	ForecastKey     string `json:"forecast_key"`
	VADForecastKey  string `json:"vad_forecast_key"`
	NeedsReviewKey  string `json:"needs_review_key"`
	RowsTotal       int    `json:"rows_total"`
	RowsVAD         int    `json:"rows_vad"`
	RowsNeedsReview int    `json:"rows_needs_review"`
}
