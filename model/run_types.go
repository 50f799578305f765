package model

// RunRecord は1回のForecast生成結果の保存用レコードです。
type RunRecord struct {
	ID              int64  `db:"id" json:"id"`
	ExecutedAt      string `db:"executed_at" json:"executedAt"`
	QuotesKey       string `db:"quotes_key" json:"quotesKey"`
	PartMasterKey   string `db:"part_master_key" json:"partMasterKey"`
	ForecastKey     string `db:"forecast_key" json:"forecastKey"`
	VADForecastKey  string `db:"vad_forecast_key" json:"vadForecastKey"`
	NeedsReviewKey  string `db:"needs_review_key" json:"needsReviewKey"`
	RowsTotal       int    `db:"rows_total" json:"rowsTotal"`
	RowsVAD         int    `db:"rows_vad" json:"rowsVad"`
	RowsNeedsReview int    `db:"rows_needs_review" json:"rowsNeedsReview"`
}
