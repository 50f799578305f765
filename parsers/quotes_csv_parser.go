package parsers

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"fct/model"
)

// ParseQuotesCSV は見積データCSVを解析して QuoteTable を返します。
// encoding は呼び出し側の指定に従います（ローカル運用はcp932、クラウド運用はutf-8が既定）。
// ヘッダー行に実在した列だけが Columns に記録され、どの列を必須とするかは各ステージが判断します。
func ParseQuotesCSV(r io.Reader, encoding string) (model.QuoteTable, error) {
	reader := csv.NewReader(DecodeReader(r, encoding))
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err == io.EOF {
		return model.QuoteTable{}, fmt.Errorf("見積データCSVが空です")
	}
	if err != nil {
		return model.QuoteTable{}, fmt.Errorf("見積データCSVヘッダーの読み取りに失敗: %w", err)
	}

	colIndex := getColIndex(header)
	columns := model.NewColumnSet()
	for name := range colIndex {
		if name != "" {
			columns.Add(name)
		}
	}

	var rows []model.QuoteRow
	line := 1
	for {
		line++
		rec, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return model.QuoteTable{}, fmt.Errorf("見積データCSV %d行目の読み取りに失敗: %w", line, err)
		}

		get := func(col string) string {
			if idx, ok := colIndex[col]; ok && idx < len(rec) {
				return strings.TrimSpace(rec[idx])
			}
			return ""
		}

		rows = append(rows, model.QuoteRow{
			MakerName:      get(model.ColMakerName),
			QuoteDate:      get(model.ColQuoteDate),
			CustomerName:   get(model.ColCustomerName),
			SalesRep:       get(model.ColSalesRep),
			AssistantName:  get(model.ColAssistantName),
			QuoteNo:        get(model.ColQuoteNo),
			Revision:       get(model.ColRevision),
			Subject:        get(model.ColSubject),
			PartNumber:     get(model.ColPartNumber),
			ProductName:    get(model.ColProductName),
			Quantity:       get(model.ColQuantity),
			Subtotal:       parseAmount(get(model.ColSubtotal)),
			QuoteNotes:     get(model.ColQuoteNotes),
			DeliveryDue:    get(model.ColDeliveryDue),
			UnitPrice:      get(model.ColUnitPrice),
			CostUnitPrice:  get(model.ColCostUnitPrice),
			GrossProfit:    get(model.ColGrossProfit),
			CostSubtotal:   get(model.ColCostSubtotal),
			GrossProfitSub: get(model.ColGrossProfitSub),
			Confidence:     get(model.ColConfidence),
			ExpectedOrder:  get(model.ColExpectedOrder),
			OrderStatus:    get(model.ColOrderStatus),
			EndUserName:    get(model.ColEndUserName),
		})
	}

	return model.QuoteTable{Columns: columns, Rows: rows}, nil
}

// parseAmount は金額セルを数値化します。桁区切りカンマと円記号は除去し、
// 数値として読めないセルは0として扱います。
func parseAmount(s string) float64 {
	cleaned := strings.NewReplacer(",", "", "￥", "", "¥", "").Replace(s)
	f, _ := strconv.ParseFloat(strings.TrimSpace(cleaned), 64)
	return f
}
