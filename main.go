package main

import (
	"context"
	"encoding/json"
	"flag"
	"log"
	"net/http"
	"os"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"

	"fct/config"
	"fct/database"
	"fct/forecast"
	"fct/model"
	"fct/storage"
)

func main() {
	quotesPath := flag.String("quotes", "", "見積データCSVのパス（指定するとワンショット実行）")
	masterPath := flag.String("master", "", "型番マスタExcelのパス")
	outDir := flag.String("out", "output", "ワンショット実行の出力ディレクトリ")
	encoding := flag.String("encoding", "cp932", "ワンショット実行時の見積CSV文字コード")
	flag.Parse()

	cfg := config.Load()

	if *quotesPath != "" || *masterPath != "" {
		runOneShot(cfg, *quotesPath, *masterPath, *outDir, *encoding)
		return
	}

	log.Println("Connecting to database...")
	dbConn, err := sqlx.Open("sqlite3", cfg.DBPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		log.Fatalf("db open error: %v", err)
	}
	defer dbConn.Close()

	if err := database.InitDatabase(dbConn); err != nil {
		log.Fatalf("Database initialization failed: %v", err)
	}
	log.Println("Database initialization complete.")

	store, err := storage.NewCOSStore(cfg.COSEndpoint, cfg.COSAccessKeyID, cfg.COSSecretAccessKey, cfg.COSBucket)
	if err != nil {
		log.Fatalf("COS configuration error: %v", err)
	}
	log.Printf("COS store ready (bucket: %s)", cfg.COSBucket)

	mux := http.NewServeMux()
	SetupRoutes(mux, dbConn, store, cfg)

	addr := ":" + cfg.Port
	log.Printf("Starting server on http://localhost%s", addr)
	if err := http.ListenAndServe(addr, mux); err != nil {
		log.Fatalf("server start error: %v", err)
	}
}

// runOneShot はローカルファイルに対してバッチ実行し、サマリをJSONで標準出力へ出します。
// 見積CSVの文字コードはローカル運用の慣例に合わせ cp932 が既定です。
func runOneShot(cfg config.Config, quotesPath, masterPath, outDir, encoding string) {
	if quotesPath == "" || masterPath == "" {
		log.Fatalf("-quotes と -master は両方指定してください")
	}

	store := storage.NewDirStore(".")
	opts := forecast.Options{QuotesEncoding: encoding, MasterSheet: cfg.MasterSheet}
	inputs := model.GenerateForecastInputs{
		QuotesKey:     quotesPath,
		PartMasterKey: masterPath,
		OutputPrefix:  outDir,
	}

	result, err := forecast.Generate(context.Background(), store, opts, inputs)
	if err != nil {
		log.Fatalf("forecast generation failed: %v", err)
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(result); err != nil {
		log.Fatalf("failed to encode summary: %v", err)
	}
	log.Printf("OK: %s, %s, %s", result.ForecastKey, result.VADForecastKey, result.NeedsReviewKey)
}
