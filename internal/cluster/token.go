package cluster

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// TokenPrefix marks tokens issued by this tool.
const TokenPrefix = "meshkube-"

// TokenFilename is where the master persists its join token.
const TokenFilename = "master-token.txt"

// tokenDigestLen is the number of hex characters kept from the digest.
const tokenDigestLen = 12

// GenerateToken mints an opaque join token: the fixed prefix plus a hex
// digest fragment over fresh entropy. Tokens carry no structure beyond
// uniqueness; workers on the local network auto-join, so the token only
// identifies which master issued the bring-up.
func GenerateToken() string {
	seed := uuid.NewString() + strconv.FormatInt(time.Now().UnixNano(), 10)
	sum := sha256.Sum256([]byte(seed))
	return TokenPrefix + hex.EncodeToString(sum[:])[:tokenDigestLen]
}

// IsToken reports whether s looks like a token issued by GenerateToken.
func IsToken(s string) bool {
	rest, ok := strings.CutPrefix(s, TokenPrefix)
	if !ok || len(rest) != tokenDigestLen {
		return false
	}
	_, err := hex.DecodeString(rest)
	return err == nil
}

// SaveToken writes the token file into dir and returns its path.
func SaveToken(dir, token string) (string, error) {
	path := filepath.Join(dir, TokenFilename)
	if err := os.WriteFile(path, []byte(token+"\n"), 0o600); err != nil {
		return "", fmt.Errorf("failed to write token file: %w", err)
	}
	return path, nil
}

// ReadToken loads a token file and trims surrounding whitespace.
func ReadToken(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read token file: %w", err)
	}
	token := strings.TrimSpace(string(data))
	if token == "" {
		return "", fmt.Errorf("token file %s is empty", path)
	}
	return token, nil
}
