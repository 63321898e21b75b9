package archive

import (
	"bytes"
	"context"
	"io"

	"github.com/minio/minio-go/v7"
)

type MinioStore struct {
	client *minio.Client
}

func NewMinioStore(client *minio.Client) *MinioStore {
	return &MinioStore{client: client}
}

func (s *MinioStore) Put(ctx context.Context, bucket string, name string, data []byte) error {
	_, err := s.client.PutObject(ctx, bucket, name, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
		ContentType: "application/x-tar",
	})
	return err
}

func (s *MinioStore) Load(ctx context.Context, bucket string, name string) ([]byte, error) {
	object, err := s.client.GetObject(ctx, bucket, name, minio.GetObjectOptions{})
	if err != nil {
		return nil, err
	}
	defer object.Close()

	data, err := io.ReadAll(object)
	if err != nil {
		return nil, err
	}

	return data, nil
}

var _ Store = (*MinioStore)(nil)
