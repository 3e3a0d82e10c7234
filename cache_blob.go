package wordfencer

import (
	"bytes"
	"context"
	"fmt"

	"github.com/future-architect/wordfencer/lexicon"
	"gocloud.dev/blob"
	_ "gocloud.dev/blob/fileblob"
	_ "gocloud.dev/blob/memblob"
	"gocloud.dev/gcerrors"
)

type blobCache struct {
	bucket *blob.Bucket
}

func openBlobCache(ctx context.Context, url string) (*blobCache, error) {
	bucket, err := blob.OpenBucket(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("Can't open cache bucket: %w", err)
	}
	return &blobCache{
		bucket: bucket,
	}, nil
}

func (b *blobCache) Load(ctx context.Context, v Variant) (*lexicon.Lexicon, error) {
	data, err := b.bucket.ReadAll(ctx, cacheKey(v))
	if err != nil {
		if gcerrors.Code(err) == gcerrors.NotFound {
			return nil, ErrCacheMiss
		}
		return nil, err
	}
	return decodeSnapshot(bytes.NewReader(data), v)
}

func (b *blobCache) Store(ctx context.Context, v Variant, lex *lexicon.Lexicon) error {
	data, err := snapshotBytes(v, lex)
	if err != nil {
		return err
	}
	return b.bucket.WriteAll(ctx, cacheKey(v), data, &blob.WriterOptions{
		ContentType: "application/zstd",
	})
}

func (b *blobCache) Close() error {
	return b.bucket.Close()
}
