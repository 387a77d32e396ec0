// Package wordlist loads practice word corpora.
package wordlist

import (
	"bufio"
	_ "embed"
	"fmt"
	"io"
	"os"
	"strings"
)

//go:embed words.txt
var defaultWords string

// Default returns the built-in corpus.
func Default() []string {
	words, err := readWords(strings.NewReader(defaultWords))
	if err != nil {
		panic(fmt.Sprintf("embedded word list: %v", err))
	}
	return words
}

// LoadWords reads one word per line from the provided file path.
func LoadWords(path string) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := file.Close(); cerr != nil {
			// Best-effort close for read-only word list.
			_ = cerr
		}
	}()
	return readWords(file)
}

// Load returns the corpus at path, or the built-in corpus when path is
// empty. Words are lower-cased and anything outside a-z is dropped.
func Load(path string) ([]string, error) {
	if path == "" {
		return Default(), nil
	}
	words, err := LoadWords(path)
	if err != nil {
		return nil, err
	}
	words = Filter(words, FilterLowerASCII)
	if len(words) == 0 {
		return nil, fmt.Errorf("word list has no usable words")
	}
	return words, nil
}

func readWords(r io.Reader) ([]string, error) {
	var words []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		for _, field := range strings.Fields(scanner.Text()) {
			words = append(words, strings.ToLower(field))
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if len(words) == 0 {
		return nil, fmt.Errorf("word list is empty")
	}
	return words, nil
}
