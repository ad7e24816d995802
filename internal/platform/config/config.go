package config

import (
	"fmt"
	"path/filepath"
)

type Config struct {
	VaultPath string
	DataPath  string
	DBPath    string
}

func New(vaultPath string) (Config, error) {
	if vaultPath == "" {
		return Config{}, fmt.Errorf("vault path is required")
	}
	return Config{
		VaultPath: vaultPath,
		DataPath:  filepath.Join(vaultPath, ".tsundoku"),
		DBPath:    filepath.Join(vaultPath, ".tsundoku", "tsundoku.db"),
	}, nil
}
