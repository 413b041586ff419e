package files

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"os"

	"stockcli/internal/errors"
)

// Signature returns the hex SHA-256 digest of the file content.
func Signature(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", errors.NewStorageError(fmt.Sprintf("failed to open %s", path), err)
	}
	defer f.Close()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", errors.NewStorageError(fmt.Sprintf("failed to hash %s", path), err)
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}
