// Package testutil provides shared test helpers for setting up vaults.
package testutil

import (
	"testing"

	"github.com/starford/fsk/internal/storage"
)

// TestVault creates a temporary vault directory with a storage.Vault.
func TestVault(t *testing.T) (string, storage.Vault) {
	t.Helper()
	vaultDir := t.TempDir()
	vault, err := storage.NewFS(vaultDir, nil)
	if err != nil {
		t.Fatal(err)
	}
	return vaultDir, vault
}
