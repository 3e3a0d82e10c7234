package wordfencer

import (
	"context"
	"fmt"
	"io"
	"sort"

	"github.com/future-architect/gocloudurls"
	"gocloud.dev/docstore"
	_ "gocloud.dev/docstore/memdocstore"
)

const (
	defaultWordCollection = "words"
	importBatchSize       = 500
)

// DocstoreSource reads words stored as WordEntity documents.
type DocstoreSource struct {
	collection *docstore.Collection
	owned      bool
}

// NewDocstoreSource wraps an opened collection. The caller keeps the ownership of it.
func NewDocstoreSource(collection *docstore.Collection) *DocstoreSource {
	return &DocstoreSource{
		collection: collection,
	}
}

// OpenDocstoreSource opens the word collection like "mem://", "mongo://my-db" or
// "firestore://projects/my-project/databases/(default)/documents".
func OpenDocstoreSource(ctx context.Context, url string) (*DocstoreSource, error) {
	collection, err := OpenWordCollection(ctx, url)
	if err != nil {
		return nil, err
	}
	return &DocstoreSource{
		collection: collection,
		owned:      true,
	}, nil
}

// WordCollectionURL returns the normalized URL of the word collection.
func WordCollectionURL(url string) (string, error) {
	return gocloudurls.NormalizeDocStoreURL(url, gocloudurls.Option{
		Collection: defaultWordCollection,
		KeyName:    "id",
	})
}

func OpenWordCollection(ctx context.Context, url string) (*docstore.Collection, error) {
	normalized, err := WordCollectionURL(url)
	if err != nil {
		return nil, fmt.Errorf("Can't parse collection URL: %w", err)
	}
	collection, err := docstore.OpenCollection(ctx, normalized)
	if err != nil {
		return nil, fmt.Errorf("Can't open collection: %w", err)
	}
	return collection, nil
}

func (d *DocstoreSource) Words(ctx context.Context, v Variant) ([]string, error) {
	iter := d.collection.Query().Where("variant", "=", string(v)).Get(ctx)
	defer iter.Stop()
	words := []string{}
	for {
		var entity WordEntity
		err := iter.Next(ctx, &entity)
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: can't query words of '%s': %v", ErrReferenceUnavailable, v, err)
		}
		if entity.Word != "" {
			words = append(words, entity.Word)
		}
	}
	sort.Strings(words)
	return words, nil
}

// Close closes the collection if it was opened by OpenDocstoreSource.
func (d *DocstoreSource) Close() error {
	if !d.owned {
		return nil
	}
	return d.collection.Close()
}

// ImportWords stores words of the variant in the collection and returns the number of stored words.
// Existing words are overwritten.
func ImportWords(ctx context.Context, collection *docstore.Collection, v Variant, words []string) (int, error) {
	actions := collection.Actions()
	pending := 0
	count := 0
	// an action list can't contain the same key twice
	seen := make(map[string]bool)
	for _, word := range words {
		if word == "" || seen[word] {
			continue
		}
		seen[word] = true
		actions = actions.Put(&WordEntity{
			ID:      wordEntityID(v, word),
			Variant: string(v),
			Word:    word,
		})
		pending++
		if pending == importBatchSize {
			if err := actions.Do(ctx); err != nil {
				return count, fmt.Errorf("fail to import words of '%s': %w", v, err)
			}
			count += pending
			pending = 0
			actions = collection.Actions()
		}
	}
	if pending > 0 {
		if err := actions.Do(ctx); err != nil {
			return count, fmt.Errorf("fail to import words of '%s': %w", v, err)
		}
		count += pending
	}
	return count, nil
}
