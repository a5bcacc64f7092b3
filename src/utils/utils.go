package utils

import (
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/NicolasBonnefont/15-da-piettra/src/core/database"
	storage_go "github.com/supabase-community/storage-go"
)

var unsafeKeyChars = regexp.MustCompile(`[^a-zA-Z0-9.]`)

// StorageKey derives a collision-resistant object key from the original
// filename: upload instant plus the name with every character outside
// [a-zA-Z0-9.] replaced by '_'.
func StorageKey(filename string) string {
	return fmt.Sprintf("%d-%s", time.Now().UnixMilli(), unsafeKeyChars.ReplaceAllString(filename, "_"))
}

// UploadToStorage uploads a file to the photos bucket and returns its
// public URL.
func UploadToStorage(file *multipart.FileHeader, key string) (string, error) {
	storageClient, bucketName, err := database.Storage()
	if err != nil {
		return "", err
	}

	fileBody, err := file.Open()
	if err != nil {
		return "", err
	}
	defer fileBody.Close()

	fileBytes, err := io.ReadAll(fileBody)
	if err != nil {
		return "", err
	}

	// Reset the file pointer to the beginning
	if _, err := fileBody.Seek(0, io.SeekStart); err != nil {
		return "", err
	}

	// Detect content type based on file contents
	contentType := http.DetectContentType(fileBytes)

	if _, err := storageClient.UploadFile(bucketName, key, fileBody, storage_go.FileOptions{ContentType: &contentType}); err != nil {
		return "", err
	}

	response := storageClient.GetPublicUrl(bucketName, key)
	return response.SignedURL, nil
}

// DeleteFromStorage deletes an object from the photos bucket given its key.
func DeleteFromStorage(key string) error {
	storageClient, bucketName, err := database.Storage()
	if err != nil {
		return err
	}

	if _, err := storageClient.RemoveFile(bucketName, []string{key}); err != nil {
		return err
	}
	return nil
}

// KeyFromURL extracts the object key from a public URL by locating the
// bucket-name path segment and returning everything after it. Falls back
// to the last path segment when the bucket does not appear in the path.
func KeyFromURL(rawURL, bucketName string) string {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return rawURL
	}

	parts := strings.Split(parsed.Path, "/")
	for i, part := range parts {
		if part == bucketName && i < len(parts)-1 {
			return strings.Join(parts[i+1:], "/")
		}
	}
	return parts[len(parts)-1]
}
