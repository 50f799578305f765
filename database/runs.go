package database

import (
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"fct/model"
)

// InitDatabase は実行履歴テーブルを作成します。
func InitDatabase(db *sqlx.DB) error {
	const schema = `
	CREATE TABLE IF NOT EXISTS forecast_runs (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		executed_at TEXT NOT NULL,
		quotes_key TEXT NOT NULL,
		part_master_key TEXT NOT NULL,
		forecast_key TEXT NOT NULL,
		vad_forecast_key TEXT NOT NULL,
		needs_review_key TEXT NOT NULL,
		rows_total INTEGER NOT NULL,
		rows_vad INTEGER NOT NULL,
		rows_needs_review INTEGER NOT NULL
	)`
	if _, err := db.Exec(schema); err != nil {
		return fmt.Errorf("forecast_runs テーブルの作成に失敗: %w", err)
	}
	return nil
}

// InsertRun はForecast生成1回分のサマリを保存します。
func InsertRun(db *sqlx.DB, result model.GenerateForecastResult) error {
	const q = `
		INSERT INTO forecast_runs (
			executed_at, quotes_key, part_master_key,
			forecast_key, vad_forecast_key, needs_review_key,
			rows_total, rows_vad, rows_needs_review
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := db.Exec(q,
		time.Now().Format(time.RFC3339),
		result.QuotesKey,
		result.PartMasterKey,
		result.ForecastKey,
		result.VADForecastKey,
		result.NeedsReviewKey,
		result.RowsTotal,
		result.RowsVAD,
		result.RowsNeedsReview,
	)
	if err != nil {
		return fmt.Errorf("InsertRun failed: %w", err)
	}
	return nil
}

// ListRuns は新しい順に実行履歴を返します。
func ListRuns(db *sqlx.DB, limit int) ([]model.RunRecord, error) {
	if limit <= 0 {
		limit = 50
	}
	const q = `
		SELECT id, executed_at, quotes_key, part_master_key,
		       forecast_key, vad_forecast_key, needs_review_key,
		       rows_total, rows_vad, rows_needs_review
		FROM forecast_runs
		ORDER BY id DESC
		LIMIT ?`
	runs := []model.RunRecord{}
	if err := db.Select(&runs, q, limit); err != nil {
		return nil, fmt.Errorf("ListRuns failed: %w", err)
	}
	return runs, nil
}
