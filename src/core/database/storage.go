package database

import (
	"errors"
	"os"

	"github.com/NicolasBonnefont/15-da-piettra/src/core/config"
	storage_go "github.com/supabase-community/storage-go"
)

// BucketName returns the bucket the photos live in.
func BucketName() string {
	return config.ConfigOr("STORAGE_BUCKET", "fotos")
}

// Storage initializes the object-storage client and returns it together
// with the bucket name the photos live in.
func Storage() (*storage_go.Client, string, error) {
	storageURL := os.Getenv("STORAGE_URL")
	serviceKey := os.Getenv("STORAGE_SERVICE_KEY")
	bucketName := BucketName()

	if storageURL == "" || serviceKey == "" {
		return nil, "", errors.New("missing STORAGE_URL or STORAGE_SERVICE_KEY in environment variables")
	}

	storageClient := storage_go.NewClient(storageURL, serviceKey, nil)
	return storageClient, bucketName, nil
}
