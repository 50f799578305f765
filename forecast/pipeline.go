package forecast

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"fct/exporter"
	"fct/model"
	"fct/parsers"
	"fct/storage"
)

// Result は1回のパイプライン実行の成果物一式です。
// Working は最終絞り込み後の作業テーブルで、診断用にそのまま参照できます。
type Result struct {
	Working     model.WorkTable
	Forecast    model.ReportTable
	VAD         model.ReportTable
	NeedsReview model.ReportTable
}

// Run はデコード済みのテーブルに対して業務ロジックを固定順で適用します。
//
//	メーカ名フィルタ → 200万円UPフラグ → SKU付与 → ブランド/ライセンス付与
//	→ IBMソフトウェアフィルタ → {Forecast, VAD, 要確認リスト}
//
// いずれかのステージで必須列が欠けていれば全体を中断し、部分的な出力は作りません。
func Run(quotes model.QuoteTable, master model.MasterTable) (*Result, error) {
	ibm, err := FilterIBMManufacturer(quotes)
	if err != nil {
		return nil, err
	}

	work, err := AttachAmountFlag(ibm.ToWorkTable())
	if err != nil {
		return nil, err
	}
	work, err = AttachSKU(work)
	if err != nil {
		return nil, err
	}
	work, err = AttachBrandAndLicense(work, master)
	if err != nil {
		return nil, err
	}
	work, err = FilterIBMSoftware(work)
	if err != nil {
		return nil, err
	}

	forecastTable, err := BuildForecastTable(work)
	if err != nil {
		return nil, err
	}
	vadTable, err := BuildVADForecast(work)
	if err != nil {
		return nil, err
	}
	needsReview, err := SelectNeedsReview(work)
	if err != nil {
		return nil, err
	}

	return &Result{
		Working:     work,
		Forecast:    forecastTable,
		VAD:         vadTable,
		NeedsReview: WorkTableReport(needsReview),
	}, nil
}

// Options はGenerateのデコード設定です。coreは環境変数を直接読みません。
type Options struct {
	QuotesEncoding string // 見積CSVの文字コード (utf-8 / cp932 など)
	MasterSheet    string // 型番マスタのシート名 (既定 "PA")
}

const (
	defaultQuotesKey     = "inputs/quotes.csv"
	defaultPartMasterKey = "inputs/master.xlsx"
	defaultOutputPrefix  = "outputs/"

	xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

// Generate はストレージ上のCSV/Excelを読み込んでForecastを生成し、
// forecast / vad_forecast / needs_review の3ファイルを書き戻すサービス本体です。
func Generate(ctx context.Context, store storage.Store, opts Options, in model.GenerateForecastInputs) (model.GenerateForecastResult, error) {
	if in.QuotesKey == "" {
		in.QuotesKey = defaultQuotesKey
	}
	if in.PartMasterKey == "" {
		in.PartMasterKey = defaultPartMasterKey
	}
	if in.OutputPrefix == "" {
		in.OutputPrefix = defaultOutputPrefix
	}
	if !strings.HasSuffix(in.OutputPrefix, "/") {
		in.OutputPrefix += "/"
	}

	quotesRaw, err := store.Get(ctx, in.QuotesKey)
	if err != nil {
		return model.GenerateForecastResult{}, fmt.Errorf("見積データの取得に失敗 (%s): %w", in.QuotesKey, err)
	}
	quotes, err := parsers.ParseQuotesCSV(bytes.NewReader(quotesRaw), opts.QuotesEncoding)
	if err != nil {
		return model.GenerateForecastResult{}, fmt.Errorf("見積データの解析に失敗 (%s): %w", in.QuotesKey, err)
	}

	masterRaw, err := store.Get(ctx, in.PartMasterKey)
	if err != nil {
		return model.GenerateForecastResult{}, fmt.Errorf("型番マスタの取得に失敗 (%s): %w", in.PartMasterKey, err)
	}
	master, err := parsers.ParseMasterXLSX(masterRaw, opts.MasterSheet)
	if err != nil {
		return model.GenerateForecastResult{}, fmt.Errorf("型番マスタの解析に失敗 (%s): %w", in.PartMasterKey, err)
	}

	result, err := Run(quotes, master)
	if err != nil {
		return model.GenerateForecastResult{}, err
	}

	forecastKey := in.OutputPrefix + "forecast.xlsx"
	vadKey := in.OutputPrefix + "vad_forecast.xlsx"
	needsReviewKey := in.OutputPrefix + "needs_review.xlsx"

	outputs := []struct {
		key   string
		table model.ReportTable
	}{
		{forecastKey, result.Forecast},
		{vadKey, result.VAD},
		{needsReviewKey, result.NeedsReview},
	}
	for _, out := range outputs {
		data, err := exporter.WriteXLSX(out.table)
		if err != nil {
			return model.GenerateForecastResult{}, fmt.Errorf("Excel生成に失敗 (%s): %w", out.key, err)
		}
		if err := store.Put(ctx, out.key, data, xlsxContentType); err != nil {
			return model.GenerateForecastResult{}, fmt.Errorf("出力の保存に失敗 (%s): %w", out.key, err)
		}
	}

	return model.GenerateForecastResult{
		QuotesKey:       in.QuotesKey,
		PartMasterKey:   in.PartMasterKey,
		ForecastKey:     forecastKey,
		VADForecastKey:  vadKey,
		NeedsReviewKey:  needsReviewKey,
		RowsTotal:       len(result.Working.Rows),
		RowsVAD:         len(result.VAD.Rows),
		RowsNeedsReview: len(result.NeedsReview.Rows),
	}, nil
}
