package main

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/jmoiron/sqlx"

	"fct/config"
	"fct/forecast"
	"fct/storage"
)

func SetupRoutes(mux *http.ServeMux, dbConn *sqlx.DB, store storage.Store, cfg config.Config) {

	// 生存確認用
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{
			"status":  "ok",
			"message": "Forecast Tool API is running",
		})
	})

	opts := forecast.Options{
		QuotesEncoding: cfg.QuotesEncoding,
		MasterSheet:    cfg.MasterSheet,
	}
	mux.HandleFunc("/api/forecast/generate", forecast.GenerateForecastHandler(dbConn, store, opts))
	mux.HandleFunc("/api/forecast/runs", forecast.ListRunsHandler(dbConn))

	// 疎通テスト: PING_SOURCE_KEY → outputs/ping.csv のコピー
	mux.HandleFunc("/api/storage/ping", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
			return
		}
		const dstKey = "outputs/ping.csv"
		body, err := store.Get(r.Context(), cfg.PingSourceKey)
		if err != nil {
			log.Printf("Error: storage ping read failed: %v", err)
			http.Error(w, "Storage ping failed: "+err.Error(), http.StatusInternalServerError)
			return
		}
		if err := store.Put(r.Context(), dstKey, body, "text/csv"); err != nil {
			log.Printf("Error: storage ping write failed: %v", err)
			http.Error(w, "Storage ping failed: "+err.Error(), http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{"status": "ok", "copied_to": dstKey})
	})
}
