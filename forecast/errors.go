package forecast

import (
	"fmt"
	"strings"

	"fct/model"
)

// MissingColumnError は、あるステージの必須列が入力テーブルに存在しない場合のエラーです。
// 最初の1列だけでなく、そのステージで欠けている列をすべて列挙します。
type MissingColumnError struct {
	Stage   string
	Table   string // "見積データ" / "型番マスタ"
	Columns []string
}

func (e *MissingColumnError) Error() string {
	return fmt.Sprintf("%s: %sに必要な列がありません: %s",
		e.Stage, e.Table, strings.Join(e.Columns, ", "))
}

// requireColumns は required のうち cols に無い列を列挙して MissingColumnError を返します。
func requireColumns(stage, table string, cols model.ColumnSet, required []string) error {
	missing := cols.Missing(required)
	if len(missing) == 0 {
		return nil
	}
	return &MissingColumnError{Stage: stage, Table: table, Columns: missing}
}
