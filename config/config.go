package config

import (
	"os"

	"github.com/joho/godotenv"
)

// Config は起動時に一度だけ環境変数から組み立て、アダプタへ参照渡しします。
// core（forecastパッケージ）は環境変数を直接読みません。
type Config struct {
	Port string

	// IBM Cloud Object Storage (S3互換API, HMAC認証)
	COSEndpoint        string
	COSAccessKeyID     string
	COSSecretAccessKey string
	COSBucket          string

	// 入力デコード設定
	QuotesEncoding string // クラウド運用の既定は utf-8
	MasterSheet    string // 型番マスタのシート名（既定 "PA"）

	// 実行履歴DB
	DBPath string

	// 疎通テスト用のコピー元キー
	PingSourceKey string
}

// Load は .env（あれば）と環境変数から Config を構築します。
func Load() Config {
	// .env はローカル開発用。無ければ環境変数だけで動きます。
	_ = godotenv.Load()

	return Config{
		Port:               getenv("PORT", "8080"),
		COSEndpoint:        os.Getenv("COS_ENDPOINT"),
		COSAccessKeyID:     os.Getenv("COS_HMAC_ACCESS_KEY_ID"),
		COSSecretAccessKey: os.Getenv("COS_HMAC_SECRET_ACCESS_KEY"),
		COSBucket:          getenv("COS_BUCKET", "bucket-networld-forecast-01"),
		QuotesEncoding:     getenv("QUOTES_CSV_ENCODING", "utf-8"),
		MasterSheet:        getenv("MASTER_SHEET_NAME", "PA"),
		DBPath:             getenv("DB_PATH", "./fct.db"),
		PingSourceKey:      getenv("PING_SOURCE_KEY", "inputs/quotes.csv"),
	}
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
