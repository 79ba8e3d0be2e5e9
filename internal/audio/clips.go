package audio

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/sahilm/fuzzy"
)

// FindClips returns the .wav files in dir in playback order: grouped by
// name, sentence clips ordered by their numeric index (so _10 follows _9).
// A non-empty query keeps only clips whose name fuzzily matches it.
func FindClips(dir, query string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("unable to read clip directory: %w", err)
	}

	var names []string
	for _, e := range entries {
		if e.IsDir() || !strings.EqualFold(filepath.Ext(e.Name()), ".wav") {
			continue
		}
		names = append(names, e.Name())
	}
	sortClips(names)

	if query != "" {
		matched := make(map[int]bool)
		for _, m := range fuzzy.Find(query, names) {
			matched[m.Index] = true
		}
		kept := names[:0]
		for i, name := range names {
			if matched[i] {
				kept = append(kept, name)
			}
		}
		names = kept
	}

	paths := make([]string, len(names))
	for i, name := range names {
		paths[i] = filepath.Join(dir, name)
	}
	return paths, nil
}

// sortClips orders "{voice}_{label}_{n}.wav" names by stem, then by n.
func sortClips(names []string) {
	sort.SliceStable(names, func(i, j int) bool {
		si, ni := splitIndex(names[i])
		sj, nj := splitIndex(names[j])
		if si != sj {
			return si < sj
		}
		return ni < nj
	})
}

// splitIndex splits a clip name into its stem and trailing sentence index.
// Names without an index get 0, which sorts a single-shot clip first.
func splitIndex(name string) (string, int) {
	stem := strings.TrimSuffix(name, filepath.Ext(name))
	i := strings.LastIndexByte(stem, '_')
	if i < 0 {
		return stem, 0
	}
	n, err := strconv.Atoi(stem[i+1:])
	if err != nil || n <= 0 {
		return stem, 0
	}
	return stem[:i], n
}
