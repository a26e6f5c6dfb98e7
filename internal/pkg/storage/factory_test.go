package storage

import (
	"context"
	"errors"
	"testing"
)

func TestNewFromDriver(t *testing.T) {
	t.Run("MinIOWithStaticCredentials", func(t *testing.T) {
		// Arrange
		opts := FactoryOptions{MinIO: MinIOOptions{
			Endpoint:     "localhost:9000",
			AccessKey:    "minio",
			SecretKey:    "minio123",
			SessionToken: "session-token",
		}}

		// Act
		st, err := NewFromDriver(context.Background(), DriverMinIO, opts)

		// Assert
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if st == nil {
			t.Fatalf("expected a storage client")
		}
	})

	t.Run("S3WithStaticCredentials", func(t *testing.T) {
		// Arrange
		opts := FactoryOptions{S3: S3Options{
			Region:       "us-east-1",
			AccessKey:    "key",
			SecretKey:    "secret",
			SessionToken: "session-token",
		}}

		// Act
		st, err := NewFromDriver(context.Background(), DriverS3, opts)

		// Assert
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if st == nil {
			t.Fatalf("expected a storage client")
		}
	})

	t.Run("UnknownDriver", func(t *testing.T) {
		// Act
		_, err := NewFromDriver(context.Background(), "ftp", FactoryOptions{})

		// Assert
		if !errors.Is(err, ErrUnknownDriver) {
			t.Fatalf("expected ErrUnknownDriver, got %v", err)
		}
	})
}
