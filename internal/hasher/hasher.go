// Package hasher derives short content hashes for output filenames and
// the batch manifest.
package hasher

import (
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"io"
	"os"

	"github.com/cespare/xxhash/v2"
)

// FilenameLen is the hash length embedded in output names.
const FilenameLen = 8

// Sum returns the xxHash64 of data as hex, cut to hexLen characters when
// 0 < hexLen < 16.
func Sum(data []byte, hexLen int) string {
	return encode(xxhash.Sum64(data), hexLen)
}

// SumReader streams r through xxHash64.
func SumReader(r io.Reader, hexLen int) (string, error) {
	h := xxhash.New()
	if _, err := io.Copy(h, r); err != nil {
		return "", err
	}
	return encode(h.Sum64(), hexLen), nil
}

// SumFile hashes the file at path.
func SumFile(path string, hexLen int) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()
	sum, err := SumReader(f, hexLen)
	if err != nil {
		return "", fmt.Errorf("hash %s: %w", path, err)
	}
	return sum, nil
}

func encode(v uint64, hexLen int) string {
	var b [8]byte
	binary.BigEndian.PutUint64(b[:], v)
	full := hex.EncodeToString(b[:])
	if hexLen > 0 && hexLen < len(full) {
		return full[:hexLen]
	}
	return full
}
