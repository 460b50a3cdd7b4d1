package storage_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"catalog-manager/core/storage"
	"catalog-manager/core/storage/mocks"

	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestNewClient(t *testing.T) {
	tests := []struct {
		name string
		cfg  storage.Config
	}{
		{"ValidConfig", storage.Config{Endpoint: "localhost:9000", AccessKey: "k", SecretKey: "s", Bucket: "catalog", Region: "us-east-1"}},
		{"EndpointWithHTTP", storage.Config{Endpoint: "http://localhost:9000", AccessKey: "k", SecretKey: "s"}},
		{"EndpointWithHTTPS", storage.Config{Endpoint: "https://s3.amazonaws.com", AccessKey: "k", SecretKey: "s", UseSSL: true, Region: "us-east-1"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, err := storage.NewClient(tt.cfg)
			assert.NoError(t, err)
			assert.NotNil(t, client)
		})
	}
}

func TestEnsureBucket(t *testing.T) {
	ctx := context.Background()

	t.Run("Exists", func(t *testing.T) {
		m := new(mocks.Client)
		m.On("BucketExists", ctx, "catalog").Return(true, nil)

		assert.NoError(t, storage.EnsureBucket(ctx, m, "catalog", ""))
		m.AssertNotCalled(t, "MakeBucket", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Creates", func(t *testing.T) {
		m := new(mocks.Client)
		m.On("BucketExists", ctx, "catalog").Return(false, nil)
		m.On("MakeBucket", ctx, "catalog", minio.MakeBucketOptions{Region: "eu"}).Return(nil)

		assert.NoError(t, storage.EnsureBucket(ctx, m, "catalog", "eu"))
		m.AssertExpectations(t)
	})

	t.Run("CheckFails", func(t *testing.T) {
		m := new(mocks.Client)
		m.On("BucketExists", ctx, "catalog").Return(false, errors.New("denied"))

		err := storage.EnsureBucket(ctx, m, "catalog", "")
		assert.ErrorContains(t, err, "denied")
	})
}

func TestIsNotFound(t *testing.T) {
	noKey := minio.ErrorResponse{Code: "NoSuchKey", Message: "gone"}

	assert.True(t, storage.IsNotFound(noKey))
	assert.True(t, storage.IsNotFound(fmt.Errorf("read: %w", noKey)))
	assert.False(t, storage.IsNotFound(minio.ErrorResponse{Code: "AccessDenied"}))
	assert.False(t, storage.IsNotFound(errors.New("boom")))
	assert.False(t, storage.IsNotFound(nil))
}
