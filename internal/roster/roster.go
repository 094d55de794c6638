// Package roster parses batches of usernames from the supported input
// shapes: newline-separated files and comma-separated lists. Tokens are
// trimmed and empty ones dropped before the batch cap is enforced, so blank
// lines and stray commas never count against the cap.
package roster

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// DefaultMaxBatch caps a batch when the caller passes no explicit limit.
const DefaultMaxBatch = 100

// Parse reads newline-separated usernames from r.
func Parse(r io.Reader, maxSize int) ([]string, error) {
	var usernames []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		if name := strings.TrimSpace(scanner.Text()); name != "" {
			usernames = append(usernames, name)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read usernames: %w", err)
	}
	return checkSize(usernames, maxSize)
}

// ParseList splits a comma-separated list of usernames.
func ParseList(s string, maxSize int) ([]string, error) {
	var usernames []string
	for _, tok := range strings.Split(s, ",") {
		if name := strings.TrimSpace(tok); name != "" {
			usernames = append(usernames, name)
		}
	}
	return checkSize(usernames, maxSize)
}

// FromFile reads newline-separated usernames from the file at path.
func FromFile(path string, maxSize int) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open usernames file: %w", err)
	}
	defer f.Close()
	return Parse(f, maxSize)
}

func checkSize(usernames []string, maxSize int) ([]string, error) {
	if maxSize <= 0 {
		maxSize = DefaultMaxBatch
	}
	if len(usernames) == 0 {
		return nil, fmt.Errorf("no usernames found in input")
	}
	if len(usernames) > maxSize {
		return nil, fmt.Errorf("the number of usernames cannot exceed %d", maxSize)
	}
	return usernames, nil
}
