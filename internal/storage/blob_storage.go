package storage

import (
	"context"
	"fmt"
	"io"

	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob"
)

// AzureLabelStore downloads the vocabulary label list from Azure blob
// storage. It satisfies vocab.ListDownloader.
type AzureLabelStore struct {
	client    *azblob.Client
	container string
	blob      string
}

// NewAzureLabelStore creates a label store over a shared-key credential.
func NewAzureLabelStore(accountName, accountKey, container, blob string) (*AzureLabelStore, error) {
	credential, err := azblob.NewSharedKeyCredential(accountName, accountKey)
	if err != nil {
		return nil, fmt.Errorf("invalid azure credentials: %w", err)
	}

	client, err := azblob.NewClientWithSharedKeyCredential(
		fmt.Sprintf("https://%s.blob.core.windows.net", accountName),
		credential,
		nil,
	)
	if err != nil {
		return nil, fmt.Errorf("create azure client: %w", err)
	}

	return &AzureLabelStore{
		client:    client,
		container: container,
		blob:      blob,
	}, nil
}

// Download fetches the raw newline-delimited label list.
func (s *AzureLabelStore) Download(ctx context.Context) ([]byte, error) {
	resp, err := s.client.DownloadStream(ctx, s.container, s.blob, nil)
	if err != nil {
		return nil, fmt.Errorf("download labels blob: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read labels blob: %w", err)
	}
	return data, nil
}
