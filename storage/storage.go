// Package storage はオブジェクトストレージ/ローカルディスクの薄い入出力アダプタです。
// coreはデコード済みテーブルしか受け取らないため、ここにビジネスロジックは置きません。
package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// Store はキー指定のバイト列読み書きの契約です。
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, data []byte, contentType string) error
}

// COSStore はIBM Cloud Object StorageをS3互換APIで読み書きします。
type COSStore struct {
	client *minio.Client
	bucket string
}

// NewCOSStore はHMAC認証のCOSクライアントを作成します。
// 接続情報が未設定の場合は、テーブルI/Oを試みる前に設定エラーとして失敗します。
func NewCOSStore(endpoint, accessKeyID, secretAccessKey, bucket string) (*COSStore, error) {
	if endpoint == "" || accessKeyID == "" || secretAccessKey == "" {
		return nil, fmt.Errorf("COSの認証情報が環境変数に設定されていません (COS_ENDPOINT, COS_HMAC_ACCESS_KEY_ID, COS_HMAC_SECRET_ACCESS_KEY)")
	}
	if bucket == "" {
		return nil, fmt.Errorf("COSバケット名が設定されていません (COS_BUCKET)")
	}

	host, secure := splitEndpoint(endpoint)
	client, err := minio.New(host, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKeyID, secretAccessKey, ""),
		Secure: secure,
	})
	if err != nil {
		return nil, fmt.Errorf("COSクライアントの作成に失敗: %w", err)
	}
	return &COSStore{client: client, bucket: bucket}, nil
}

// splitEndpoint はエンドポイントURLをホストとTLS有無に分解します。スキーム無しはHTTPS扱いです。
func splitEndpoint(endpoint string) (host string, secure bool) {
	switch {
	case strings.HasPrefix(endpoint, "https://"):
		return strings.TrimPrefix(endpoint, "https://"), true
	case strings.HasPrefix(endpoint, "http://"):
		return strings.TrimPrefix(endpoint, "http://"), false
	default:
		return endpoint, true
	}
}

func (s *COSStore) Get(ctx context.Context, key string) ([]byte, error) {
	obj, err := s.client.GetObject(ctx, s.bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("COSオブジェクトの取得に失敗 (%s/%s): %w", s.bucket, key, err)
	}
	defer obj.Close()

	data, err := io.ReadAll(obj)
	if err != nil {
		return nil, fmt.Errorf("COSオブジェクトの読み取りに失敗 (%s/%s): %w", s.bucket, key, err)
	}
	return data, nil
}

func (s *COSStore) Put(ctx context.Context, key string, data []byte, contentType string) error {
	_, err := s.client.PutObject(ctx, s.bucket, key, bytes.NewReader(data), int64(len(data)),
		minio.PutObjectOptions{ContentType: contentType})
	if err != nil {
		return fmt.Errorf("COSオブジェクトの保存に失敗 (%s/%s): %w", s.bucket, key, err)
	}
	return nil
}

// DirStore はローカルディスク上のディレクトリをストアとして扱います。
// ワンショットのバッチ実行やテストで使います。
type DirStore struct {
	BaseDir string
}

func NewDirStore(baseDir string) *DirStore {
	return &DirStore{BaseDir: baseDir}
}

func (s *DirStore) Get(_ context.Context, key string) ([]byte, error) {
	path := filepath.Join(s.BaseDir, filepath.FromSlash(key))
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("ファイルの読み取りに失敗 (%s): %w", path, err)
	}
	return data, nil
}

func (s *DirStore) Put(_ context.Context, key string, data []byte, _ string) error {
	path := filepath.Join(s.BaseDir, filepath.FromSlash(key))
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("出力ディレクトリの作成に失敗 (%s): %w", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("ファイルの書き込みに失敗 (%s): %w", path, err)
	}
	return nil
}
