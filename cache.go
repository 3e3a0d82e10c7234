package wordfencer

import (
	"bytes"
	"context"
	"encoding/gob"
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/future-architect/wordfencer/lexicon"
	"github.com/klauspost/compress/zstd"
	"github.com/shibukawa/compints"
)

// Cache keeps built lexicons so that the reference dictionary is parsed only once.
type Cache interface {
	// Load returns ErrCacheMiss when no lexicon is stored for the variant.
	Load(ctx context.Context, v Variant) (*lexicon.Lexicon, error)
	Store(ctx context.Context, v Variant, lex *lexicon.Lexicon) error
	Close() error
}

var (
	_ Cache = &blobCache{}
	_ Cache = &boltCache{}
)

const boltScheme = "bolt://"

// OpenCache opens a cache by URL. "bolt://path/to/file.db" opens a bolt database file,
// other URLs ("file:///var/cache/wordfencer", "mem://", "s3://bucket") open a blob bucket.
func OpenCache(ctx context.Context, url string) (Cache, error) {
	if strings.HasPrefix(url, boltScheme) {
		return openBoltCache(strings.TrimPrefix(url, boltScheme))
	}
	return openBlobCache(ctx, url)
}

func cacheKey(v Variant) string {
	return string(v) + ".lexicon"
}

// LoadOrBuild returns the cached lexicon of the variant, or builds it from the source and
// stores it. A failure to store the built lexicon is only logged. cache and logger can be nil.
func LoadOrBuild(ctx context.Context, v Variant, source WordSource, cache Cache, logger Logger) (*lexicon.Lexicon, error) {
	if cache != nil {
		lex, err := cache.Load(ctx, v)
		if err == nil {
			logger.printf("lexicon '%s' is loaded from cache (%d words)", v, lex.Len())
			return lex, nil
		}
		if !errors.Is(err, ErrCacheMiss) {
			logger.printf("can't load lexicon '%s' from cache, rebuilding: %v", v, err)
		}
	}
	words, err := source.Words(ctx, v)
	if err != nil {
		return nil, fmt.Errorf("can't build lexicon '%s': %w", v, err)
	}
	lex := lexicon.Build(words)
	if cache != nil {
		if err := cache.Store(ctx, v, lex); err != nil {
			logger.printf("can't store lexicon '%s' to cache: %v", v, err)
		}
	}
	return lex, nil
}

func encodeSnapshot(w io.Writer, v Variant, lex *lexicon.Lexicon) error {
	s := &snapshot{
		Variant: string(v),
		Count:   lex.Len(),
	}
	if s.Count > 0 {
		words := lex.Words()
		lengths := make([]uint32, len(words))
		var codePoints []uint32
		for i, word := range words {
			for _, r := range word {
				codePoints = append(codePoints, uint32(r))
				lengths[i]++
			}
		}
		s.Lengths = compints.CompressToBytes(lengths, false)
		s.CodePoints = compints.CompressToBytes(codePoints, false)
	}
	zw, err := zstd.NewWriter(w)
	if err != nil {
		return err
	}
	err = gob.NewEncoder(zw).Encode(s)
	if err != nil {
		zw.Close()
		return fmt.Errorf("can't encode lexicon '%s': %w", v, err)
	}
	return zw.Close()
}

func decodeSnapshot(r io.Reader, v Variant) (*lexicon.Lexicon, error) {
	zr, err := zstd.NewReader(r)
	if err != nil {
		return nil, err
	}
	defer zr.Close()
	var s snapshot
	err = gob.NewDecoder(zr).Decode(&s)
	if err != nil {
		return nil, fmt.Errorf("can't decode lexicon '%s': %w", v, err)
	}
	if s.Variant != string(v) {
		return nil, fmt.Errorf("cached lexicon is for '%s', not for '%s'", s.Variant, v)
	}
	if s.Count == 0 {
		return lexicon.New(), nil
	}
	lengths, err := compints.DecompressFromBytes(s.Lengths, false)
	if err != nil {
		return nil, fmt.Errorf("fail to decompress word lengths of '%s': %w", v, err)
	}
	codePoints, err := compints.DecompressFromBytes(s.CodePoints, false)
	if err != nil {
		return nil, fmt.Errorf("fail to decompress words of '%s': %w", v, err)
	}
	if len(lengths) != s.Count {
		return nil, fmt.Errorf("broken lexicon cache of '%s': %d words expected, %d found", v, s.Count, len(lengths))
	}
	lex := lexicon.New()
	offset := 0
	for _, length := range lengths {
		if uint64(length) > uint64(len(codePoints)-offset) {
			return nil, fmt.Errorf("broken lexicon cache of '%s': code points are truncated", v)
		}
		end := offset + int(length)
		word := make([]rune, 0, length)
		for _, codePoint := range codePoints[offset:end] {
			r := rune(codePoint)
			if codePoint > utf8.MaxRune || !utf8.ValidRune(r) {
				return nil, fmt.Errorf("broken lexicon cache of '%s': invalid code point %#x", v, codePoint)
			}
			word = append(word, r)
		}
		lex.Insert(string(word))
		offset = end
	}
	return lex, nil
}

func snapshotBytes(v Variant, lex *lexicon.Lexicon) ([]byte, error) {
	var buf bytes.Buffer
	err := encodeSnapshot(&buf, v, lex)
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
