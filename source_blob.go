package wordfencer

import (
	"context"
	"fmt"

	"gocloud.dev/blob"
)

// BlobSource reads "<variant>.txt" objects from a blob bucket such as
// "file:///usr/share/wordfencer", "s3://my-bucket" or "mem://".
type BlobSource struct {
	URL string
}

func (b *BlobSource) Words(ctx context.Context, v Variant) ([]string, error) {
	bucket, err := blob.OpenBucket(ctx, b.URL)
	if err != nil {
		return nil, fmt.Errorf("%w: can't open bucket '%s': %v", ErrReferenceUnavailable, b.URL, err)
	}
	defer bucket.Close()
	data, err := bucket.ReadAll(ctx, v.ReferenceFile())
	if err != nil {
		return nil, fmt.Errorf("%w: can't read '%s' from '%s': %v", ErrReferenceUnavailable, v.ReferenceFile(), b.URL, err)
	}
	return parseWords(data), nil
}
