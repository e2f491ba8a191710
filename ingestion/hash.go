package ingestion

import (
	"fmt"
	"io"
	"os"

	"github.com/go-crypt/x/blake2b"
)

// hashFile returns the BLAKE2b-256 hex digest of a file's contents.
func hashFile(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("hashing %s: %w", path, err)
	}
	defer f.Close()

	h, _ := blake2b.New(32, nil) // 32 bytes = 256 bits
	if _, err := io.Copy(h, f); err != nil {
		return "", fmt.Errorf("hashing %s: %w", path, err)
	}
	return fmt.Sprintf("%x", h.Sum(nil)), nil
}

// computeHashes maps each file path to its content hash.
func computeHashes(files []string) (map[string]string, error) {
	hashes := make(map[string]string, len(files))
	for _, path := range files {
		digest, err := hashFile(path)
		if err != nil {
			return nil, err
		}
		hashes[path] = digest
	}
	return hashes, nil
}
