package wordfencer

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/boltdb/bolt"
	"github.com/future-architect/wordfencer/lexicon"
)

var lexiconBucket = []byte("lexicons")

type boltCache struct {
	db *bolt.DB
}

func openBoltCache(path string) (*boltCache, error) {
	db, err := bolt.Open(path, 0600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("Can't open cache file '%s': %w", path, err)
	}
	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(lexiconBucket)
		return err
	})
	if err != nil {
		db.Close()
		return nil, err
	}
	return &boltCache{
		db: db,
	}, nil
}

func (b *boltCache) Load(ctx context.Context, v Variant) (*lexicon.Lexicon, error) {
	var data []byte
	err := b.db.View(func(tx *bolt.Tx) error {
		value := tx.Bucket(lexiconBucket).Get([]byte(v))
		if value != nil {
			// value is only valid inside the transaction
			data = append([]byte(nil), value...)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if data == nil {
		return nil, ErrCacheMiss
	}
	return decodeSnapshot(bytes.NewReader(data), v)
}

func (b *boltCache) Store(ctx context.Context, v Variant, lex *lexicon.Lexicon) error {
	data, err := snapshotBytes(v, lex)
	if err != nil {
		return err
	}
	return b.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(lexiconBucket).Put([]byte(v), data)
	})
}

func (b *boltCache) Close() error {
	return b.db.Close()
}
