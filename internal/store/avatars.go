// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Ron Ogden

package store

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/therealrogden/taskkeeper/internal/config"
	"github.com/therealrogden/taskkeeper/internal/logger"
)

// avatarStore keeps avatar blobs in an S3-compatible object store, one
// object per user, keyed by the user's document ID.
type avatarStore struct {
	logger *logger.Logger
	client *minio.Client
	bucket string
}

// NewAvatarStore connects to the configured object storage endpoint and
// ensures the avatar bucket exists.
func NewAvatarStore(ctx context.Context, cfg config.Avatars, logger *logger.Logger) (AvatarStore, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("minio client: %w", err)
	}

	exists, err := client.BucketExists(ctx, cfg.Bucket)
	if err != nil {
		return nil, fmt.Errorf("minio bucket check: %w", err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, cfg.Bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("minio make bucket: %w", err)
		}
	}

	logger.Debug().Str("bucket", cfg.Bucket).Msg("creating avatar store")
	return &avatarStore{client: client, bucket: cfg.Bucket, logger: logger}, nil
}

func (s *avatarStore) Upload(ctx context.Context, key string, data []byte, contentType string) error {
	reader := bytes.NewReader(data)
	_, err := s.client.PutObject(ctx, s.bucket, key, reader, int64(len(data)), minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return fmt.Errorf("avatar upload: %w", err)
	}
	return nil
}

func (s *avatarStore) Download(ctx context.Context, key string) ([]byte, string, error) {
	obj, err := s.client.GetObject(ctx, s.bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, "", fmt.Errorf("avatar download: %w", err)
	}
	defer obj.Close()

	info, err := obj.Stat()
	if err != nil {
		if isMissingObject(err) {
			return nil, "", ErrAvatarNotFound
		}
		return nil, "", fmt.Errorf("avatar stat: %w", err)
	}

	data, err := io.ReadAll(obj)
	if err != nil {
		return nil, "", fmt.Errorf("avatar read: %w", err)
	}
	return data, info.ContentType, nil
}

func (s *avatarStore) Remove(ctx context.Context, key string) error {
	if err := s.client.RemoveObject(ctx, s.bucket, key, minio.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("avatar remove: %w", err)
	}
	return nil
}

func isMissingObject(err error) bool {
	var resp minio.ErrorResponse
	if errors.As(err, &resp) {
		return resp.Code == "NoSuchKey"
	}
	return false
}
