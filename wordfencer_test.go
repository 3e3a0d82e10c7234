package wordfencer

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gocloud.dev/docstore/memdocstore"
)

var testWords = WordList{
	ChineseSimplified: {"鳳凰古城", "非政府", "政府", "时间"},
	Cantonese:         {"不計其數", "二鬼子"},
	Thai:              {"รูปสี่เหลี่ยมขนมเปียกปูน", "ทิ้งลูกทิ้งเมีย"},
}

func TestNewWordFencer(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	wf, err := NewWordFencer(ctx, Option{
		Variants: []Variant{Thai, ChineseSimplified},
		Source:   testWords,
	})
	require.Nil(t, err)
	defer wf.Close()

	assert.Equal(t, []Variant{ChineseSimplified, Thai}, wf.Variants())

	segments, err := wf.Segment(ChineseSimplified, "非政府组织")
	assert.Nil(t, err)
	assert.Equal(t, []string{"非政府", "组", "织"}, segments)

	segments, err = wf.Segment(Thai, "รูปสี่เหลี่ยมขนมเปียกปูน")
	assert.Nil(t, err)
	assert.Equal(t, []string{"รูปสี่เหลี่ยมขนมเปียกปูน"}, segments)

	matches, err := wf.AllMatches(ChineseSimplified, "非政府")
	assert.Nil(t, err)
	assert.Equal(t, []string{"非政府", "政府"}, matches)

	tokenizer, err := wf.Tokenizer(ChineseSimplified)
	require.Nil(t, err)
	tokens := tokenizer.Split("时间，政府")
	assert.Equal(t, []string{"时间", "政府"}, tokens)

	_, err = wf.Segment(Cantonese, "二鬼子")
	assert.True(t, errors.Is(err, ErrNotBuilt))
	_, err = wf.AllMatches(Cantonese, "二鬼子")
	assert.True(t, errors.Is(err, ErrNotBuilt))
	_, err = wf.Tokenizer(Cantonese)
	assert.True(t, errors.Is(err, ErrNotBuilt))
}

func TestNewWordFencer_MissingReference(t *testing.T) {
	_, err := NewWordFencer(context.Background(), Option{
		Variants: []Variant{Cantonese, ChineseTraditional, Thai},
		Source:   testWords,
	})
	assert.True(t, errors.Is(err, ErrReferenceUnavailable))
	var combined *CombinedError
	require.True(t, errors.As(err, &combined))
	assert.Len(t, combined.Errors, 1)
	assert.Contains(t, err.Error(), "zh-Hant")
}

func TestNewWordFencer_Option(t *testing.T) {
	t.Setenv("WORDFENCER_VARIANTS", "")
	t.Setenv("WORDFENCER_REFERENCE_URL", "")
	t.Setenv("WORDFENCER_REFERENCE_COLLECTION_URL", "")
	t.Setenv("WORDFENCER_CACHE_URL", "")

	_, err := NewWordFencer(context.Background(), Option{Source: testWords})
	assert.EqualError(t, err, "NewWordFencer: Variants is missing")

	_, err = NewWordFencer(context.Background(), Option{Variants: []Variant{Thai}})
	assert.EqualError(t, err, "NewWordFencer: ReferenceURL is missing")

	_, err = NewWordFencer(context.Background(), Option{Variants: []Variant{"ja"}, Source: testWords})
	assert.True(t, errors.Is(err, ErrUnknownVariant))

	t.Setenv("WORDFENCER_VARIANTS", "yue,klingon")
	_, err = NewWordFencer(context.Background(), Option{Source: testWords})
	assert.True(t, errors.Is(err, ErrUnknownVariant))
}

func TestNewWordFencer_Environment(t *testing.T) {
	dir := t.TempDir()
	writeReference(t, dir, Cantonese, "不計其數\n二鬼子\n")
	t.Setenv("WORDFENCER_VARIANTS", "yue")
	t.Setenv("WORDFENCER_REFERENCE_URL", dir)
	t.Setenv("WORDFENCER_REFERENCE_COLLECTION_URL", "")
	t.Setenv("WORDFENCER_CACHE_URL", "")

	wf, err := NewWordFencer(context.Background())
	require.Nil(t, err)
	defer wf.Close()
	segments, err := wf.Segment(Cantonese, "二鬼子不計其數")
	assert.Nil(t, err)
	assert.Equal(t, []string{"二鬼子", "不計其數"}, segments)
}

func TestNewWordFencer_Cache(t *testing.T) {
	dir := t.TempDir()
	writeReference(t, dir, ChineseSimplified, "非政府\n政府\n")
	cacheURL := "bolt://" + filepath.Join(t.TempDir(), "lexicons.db")
	option := Option{
		Variants:     []Variant{ChineseSimplified},
		ReferenceURL: dir,
		CacheURL:     cacheURL,
	}

	wf, err := NewWordFencer(context.Background(), option)
	require.Nil(t, err)
	require.Nil(t, wf.Close())

	// the reference dictionary is not read again
	require.Nil(t, os.Remove(filepath.Join(dir, ChineseSimplified.ReferenceFile())))
	wf, err = NewWordFencer(context.Background(), option)
	require.Nil(t, err)
	defer wf.Close()
	segments, err := wf.Segment(ChineseSimplified, "非政府")
	assert.Nil(t, err)
	assert.Equal(t, []string{"非政府"}, segments)
}

func TestNewWordFencer_BlobReference(t *testing.T) {
	dir := t.TempDir()
	writeReference(t, dir, Thai, "ทิ้งลูกทิ้งเมีย\n")
	wf, err := NewWordFencer(context.Background(), Option{
		Variants:     []Variant{Thai},
		ReferenceURL: "file://" + filepath.ToSlash(dir),
		CacheURL:     "mem://",
	})
	require.Nil(t, err)
	defer wf.Close()
	matches, err := wf.AllMatches(Thai, "ทิ้งลูกทิ้งเมีย")
	assert.Nil(t, err)
	assert.Equal(t, []string{"ทิ้งลูกทิ้งเมีย"}, matches)
}

func TestNewWordFencer_DocstoreReference(t *testing.T) {
	ctx := context.Background()
	collection, err := memdocstore.OpenCollection("id", nil)
	require.Nil(t, err)
	defer collection.Close()
	_, err = ImportWords(ctx, collection, CantoneseTraditional, []string{"人頭", "不計其數"})
	require.Nil(t, err)

	wf, err := NewWordFencer(ctx, Option{
		Variants: []Variant{CantoneseTraditional},
		Source:   NewDocstoreSource(collection),
	})
	require.Nil(t, err)
	defer wf.Close()
	segments, err := wf.Segment(CantoneseTraditional, "人頭不計其數")
	assert.Nil(t, err)
	assert.Equal(t, []string{"人頭", "不計其數"}, segments)
}

func TestWordFencer_Close(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	wf, err := NewWordFencer(ctx, Option{
		Variants: []Variant{Thai},
		Source:   testWords,
		CacheURL: "bolt://" + filepath.Join(t.TempDir(), "lexicons.db"),
	})
	require.Nil(t, err)
	cancel()
	assert.Nil(t, wf.Close())
	assert.Nil(t, wf.Close())
}
