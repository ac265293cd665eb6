package genres

import (
	"bufio"
	"embed"
	"fmt"
	"io"
	"sort"
	"strings"
	"sync"
)

//go:embed data/genres.txt
var dataFS embed.FS

const defaultListPath = "data/genres.txt"

var (
	defaultOnce   sync.Once
	defaultGenres []string
	defaultErr    error
)

// DefaultGenres returns a copy of the embedded genre list, sorted.
func DefaultGenres() ([]string, error) {
	defaultOnce.Do(func() {
		f, err := dataFS.Open(defaultListPath)
		if err != nil {
			defaultErr = err
			return
		}
		defer func() { _ = f.Close() }()

		genres, err := LoadGenres(f)
		if err != nil {
			defaultErr = err
			return
		}
		defaultGenres = genres
	})

	if defaultErr != nil {
		return nil, defaultErr
	}
	return append([]string{}, defaultGenres...), nil
}

// LoadGenres reads one genre per line, skipping blanks and # comments.
// Duplicates are dropped case-insensitively, keeping the first spelling.
func LoadGenres(r io.Reader) ([]string, error) {
	if r == nil {
		return nil, fmt.Errorf("genres: missing reader")
	}

	scanner := bufio.NewScanner(r)
	genres := make([]string, 0, 32)
	seen := map[string]struct{}{}

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if strings.HasPrefix(line, "#") {
			continue
		}
		key := strings.ToLower(line)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		genres = append(genres, line)
	}

	if err := scanner.Err(); err != nil {
		return nil, err
	}

	sort.Strings(genres)
	return genres, nil
}
