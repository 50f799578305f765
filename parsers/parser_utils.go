package parsers

import (
	"bufio"
	"io"
	"strings"

	"golang.org/x/text/encoding/japanese"
	"golang.org/x/text/transform"
)

// SkipBOM はUTF-8 BOMをスキップします。
func SkipBOM(r io.Reader) io.Reader {
	br := bufio.NewReader(r)
	bom := []byte{0xEF, 0xBB, 0xBF}
	peeked, err := br.Peek(3)
	if err != nil {
		return br
	}
	isBOM := true
	for i, b := range bom {
		if peeked[i] != b {
			isBOM = false
			break
		}
	}
	if isBOM {
		br.Read(make([]byte, 3))
	}
	return br
}

// DecodeReader は指定の文字コードでUTF-8へ変換するReaderを返します。
// cp932 / shift_jis / sjis / windows-31j はShift-JIS系として扱い、
// それ以外（utf-8、未指定を含む）はBOMスキップのみ行います。
func DecodeReader(r io.Reader, encoding string) io.Reader {
	switch strings.ToLower(strings.TrimSpace(encoding)) {
	case "cp932", "shift_jis", "shift-jis", "sjis", "windows-31j", "ms932":
		return transform.NewReader(r, japanese.ShiftJIS.NewDecoder())
	default:
		return SkipBOM(r)
	}
}

// getColIndex はヘッダー名から列インデックスを取得するヘルパーです。
// 列の欠落はここではエラーにせず、必須判定は各ステージに委ねます。
func getColIndex(header []string) map[string]int {
	colIndex := make(map[string]int)
	for i, colName := range header {
		colIndex[strings.TrimSpace(colName)] = i
	}
	return colIndex
}
