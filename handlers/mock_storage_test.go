package handlers

import (
	"fmt"
	"mime/multipart"
)

// mockStorage is an in-memory StorageClient for handler tests.
type mockStorage struct {
	uploads []string
	deletes []string
	failAll bool
}

func newMockStorage() *mockStorage {
	return &mockStorage{}
}

func (m *mockStorage) UploadMediaFile(file multipart.File, filename, contentType, folder string) (string, string, error) {
	if m.failAll {
		return "", "", fmt.Errorf("mock storage failure")
	}
	objectPath := fmt.Sprintf("media/%s/%s", folder, filename)
	m.uploads = append(m.uploads, objectPath)
	return "https://storage.example.com/test-bucket/" + objectPath, objectPath, nil
}

func (m *mockStorage) DeleteFile(objectPath string) error {
	if m.failAll {
		return fmt.Errorf("mock storage failure")
	}
	m.deletes = append(m.deletes, objectPath)
	return nil
}
