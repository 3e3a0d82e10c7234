package wordfencer

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"io/ioutil"
	"os"
	"path/filepath"
	"strings"

	"github.com/edsrzf/mmap-go"
)

// WordSource supplies the reference word list of a variant.
// Implementations return an error wrapping ErrReferenceUnavailable when the list can't be read.
type WordSource interface {
	Words(ctx context.Context, v Variant) ([]string, error)
}

var (
	_ WordSource = WordList{}
	_ WordSource = &FileSource{}
	_ WordSource = &BlobSource{}
	_ WordSource = &DocstoreSource{}
)

// WordList is an in-memory word source.
type WordList map[Variant][]string

func (w WordList) Words(ctx context.Context, v Variant) ([]string, error) {
	words, ok := w[v]
	if !ok {
		return nil, fmt.Errorf("%w: no word list for '%s'", ErrReferenceUnavailable, v)
	}
	return words, nil
}

// FileSource reads "<Dir>/<variant>.txt" files that contain one word per line.
type FileSource struct {
	Dir string
}

func (f *FileSource) Words(ctx context.Context, v Variant) ([]string, error) {
	path := filepath.Join(f.Dir, v.ReferenceFile())
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: The reference file path '%s' can't be opened: %v", ErrReferenceUnavailable, path, err)
	}
	defer file.Close()
	info, err := file.Stat()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrReferenceUnavailable, err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%w: The reference file path '%s' is a directory", ErrReferenceUnavailable, path)
	}
	// an empty file can't be mapped
	if info.Size() == 0 {
		return []string{}, nil
	}
	m, err := mmap.Map(file, mmap.RDONLY, 0)
	if err != nil {
		return nil, fmt.Errorf("%w: can't map '%s': %v", ErrReferenceUnavailable, path, err)
	}
	defer m.Unmap()
	return parseWords(m), nil
}

// ReadWords reads a word list in the reference file format, one word per line.
func ReadWords(r io.Reader) ([]string, error) {
	data, err := ioutil.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return parseWords(data), nil
}

var utf8BOM = []byte{0xef, 0xbb, 0xbf}

// parseWords splits a reference file into words. The returned strings don't share memory with data.
// Only ASCII spaces, tabs and line terminators are trimmed; U+3000 and other spaces are kept.
func parseWords(data []byte) []string {
	data = bytes.TrimPrefix(data, utf8BOM)
	words := []string{}
	for len(data) > 0 {
		var line []byte
		if i := bytes.IndexByte(data, '\n'); i >= 0 {
			line, data = data[:i], data[i+1:]
		} else {
			line, data = data, nil
		}
		word := strings.Trim(string(line), " \t\r")
		if word != "" {
			words = append(words, word)
		}
	}
	return words
}
