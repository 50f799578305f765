package storage

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDirStoreRoundTrip(t *testing.T) {
	store := NewDirStore(t.TempDir())
	ctx := context.Background()

	data := []byte("メーカ名,小計\n日本IBM,100\n")
	require.NoError(t, store.Put(ctx, "outputs/forecast.xlsx", data, "text/csv"))

	got, err := store.Get(ctx, "outputs/forecast.xlsx")
	require.NoError(t, err)
	assert.Equal(t, data, got)
}

func TestDirStoreGetMissingKey(t *testing.T) {
	store := NewDirStore(t.TempDir())
	_, err := store.Get(context.Background(), "inputs/quotes.csv")
	assert.Error(t, err)
}

func TestDirStorePutCreatesNestedDirs(t *testing.T) {
	store := NewDirStore(t.TempDir())
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, "a/b/c/needs_review.xlsx", []byte("x"), ""))
	got, err := store.Get(ctx, "a/b/c/needs_review.xlsx")
	require.NoError(t, err)
	assert.Equal(t, []byte("x"), got)
}

func TestNewCOSStoreRequiresCredentials(t *testing.T) {
	// 認証情報不足はテーブルI/Oより前に設定エラーとして検出する
	_, err := NewCOSStore("", "", "", "bucket")
	assert.Error(t, err)

	_, err = NewCOSStore("s3.jp-tok.cloud-object-storage.appdomain.cloud", "ak", "sk", "")
	assert.Error(t, err)
}

func TestSplitEndpoint(t *testing.T) {
	tests := []struct {
		in     string
		host   string
		secure bool
	}{
		{"https://s3.jp-tok.cloud-object-storage.appdomain.cloud", "s3.jp-tok.cloud-object-storage.appdomain.cloud", true},
		{"http://localhost:9000", "localhost:9000", false},
		{"s3.example.com", "s3.example.com", true},
	}
	for _, tt := range tests {
		host, secure := splitEndpoint(tt.in)
		assert.Equal(t, tt.host, host)
		assert.Equal(t, tt.secure, secure)
	}
}
