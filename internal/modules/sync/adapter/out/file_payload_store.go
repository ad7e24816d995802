package out

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"tsundoku/internal/modules/sync/domain"
	syncout "tsundoku/internal/modules/sync/port/out"
)

type FilePayloadStore struct{}

func NewFilePayloadStore() syncout.PayloadStore {
	return &FilePayloadStore{}
}

func (s *FilePayloadStore) Read(_ context.Context, path string) (domain.Payload, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return domain.Payload{}, fmt.Errorf("read payload: %w", err)
	}
	payload := domain.Payload{}
	if err := json.Unmarshal(raw, &payload); err != nil {
		return domain.Payload{}, fmt.Errorf("decode payload: %w", err)
	}
	return payload, nil
}

func (s *FilePayloadStore) Write(_ context.Context, path string, payload domain.Payload) error {
	raw, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return fmt.Errorf("encode payload: %w", err)
	}
	if err := os.WriteFile(path, raw, 0o644); err != nil {
		return fmt.Errorf("write payload: %w", err)
	}
	return nil
}
