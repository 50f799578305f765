package forecast

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/jmoiron/sqlx"

	"fct/database"
	"fct/model"
	"fct/storage"
)

// GenerateForecastHandler はForecast生成を実行するエンドポイントです。
// 途中のどのステージで失敗しても部分出力は作らず、単一のエラー応答を返します。
func GenerateForecastHandler(db *sqlx.DB, store storage.Store, opts Options) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
			return
		}

		var inputs model.GenerateForecastInputs
		if r.ContentLength != 0 {
			if err := json.NewDecoder(r.Body).Decode(&inputs); err != nil {
				http.Error(w, "Invalid request body", http.StatusBadRequest)
				return
			}
		}

		result, err := Generate(r.Context(), store, opts, inputs)
		if err != nil {
			log.Printf("Error: forecast generation failed: %v", err)
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}

		// 実行履歴の保存失敗は成果物に影響しないため、警告に留めます。
		if err := database.InsertRun(db, result); err != nil {
			log.Printf("WARN: Failed to record forecast run: %v", err)
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(result); err != nil {
			log.Printf("Error encoding forecast result: %v", err)
		}
	}
}

// ListRunsHandler は直近のForecast実行履歴を返します。
func ListRunsHandler(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		runs, err := database.ListRuns(db, 50)
		if err != nil {
			http.Error(w, "Failed to list forecast runs: "+err.Error(), http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(runs); err != nil {
			log.Printf("Error encoding run list: %v", err)
		}
	}
}
