// Package textfile implements the file-backed ballot source: it reads a
// vote file's header and ballot lines, translating file-system failures
// into the domain error taxonomy.
package textfile

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/codetown/votecount/internal/domain"
	"github.com/codetown/votecount/internal/ports"
)

var _ ports.BallotSource = (*Reader)(nil)

// Package-level validator instance for configuration validation.
var validate = validator.New()

// ReaderConfig holds the tunables of the file reader.
type ReaderConfig struct {
	// MaxLineBytes caps the length of a single line. Zero applies the
	// bufio.Scanner default. Lines beyond the cap fail the load with an
	// IOFailure rather than truncating.
	MaxLineBytes int `yaml:"max_line_bytes" validate:"omitempty,min=1"`
}

// Reader loads vote files from the local file system. It is stateless
// and safe for sequential reuse across file loads; the file handle is
// scoped to a single Load call and released on every exit path.
type Reader struct {
	config ReaderConfig
}

// NewReader creates a Reader with the given configuration.
func NewReader(config ReaderConfig) (*Reader, error) {
	if err := validate.Struct(config); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return &Reader{config: config}, nil
}

// Load opens the vote file at path and returns the trimmed header line
// and the trimmed lines that follow it. Failures map onto the domain
// taxonomy: NotFound when the path does not exist, PermissionDenied when
// the process lacks read access, and IOFailure for any other fault, each
// carrying the attempted path. No partial results are returned on
// failure.
func (r *Reader) Load(ctx context.Context, path string) (string, []string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", nil, mapOpenError(path, err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	if r.config.MaxLineBytes > 0 {
		scanner.Buffer(make([]byte, 0, r.config.MaxLineBytes), r.config.MaxLineBytes)
	}

	var header string
	var lines []string
	first := true
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if first {
			header = line
			first = false
			continue
		}
		lines = append(lines, line)
	}
	if err := scanner.Err(); err != nil {
		return "", nil, domain.NewLoadError(domain.KindIOFailure, path, err)
	}

	// An entirely empty file yields an empty header, which the header
	// validator rejects with its own diagnostic.
	return header, lines, nil
}

// mapOpenError translates an os.Open failure into a typed LoadError.
func mapOpenError(path string, err error) error {
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return domain.NewLoadError(domain.KindNotFound, path, err)
	case errors.Is(err, fs.ErrPermission):
		return domain.NewLoadError(domain.KindPermissionDenied, path, err)
	default:
		return domain.NewLoadError(domain.KindIOFailure, path, err)
	}
}

// ListVoteFiles returns the names of regular files in dir whose names end
// with ext (for example ".txt"), in lexical order. It exists for the
// presentation shell's file picker and never touches file contents.
func ListVoteFiles(dir, ext string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, mapOpenError(dir, err)
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if strings.HasSuffix(entry.Name(), ext) {
			names = append(names, entry.Name())
		}
	}
	return names, nil
}
