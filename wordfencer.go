package wordfencer

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/future-architect/wordfencer/lexicon"
	"github.com/future-architect/wordfencer/nlp"
	"golang.org/x/sync/errgroup"
)

// Logger receives messages that don't stop processing, like cache failures. log.Printf fits.
type Logger func(format string, args ...interface{})

func (l Logger) printf(format string, args ...interface{}) {
	if l != nil {
		l(format, args...)
	}
}

// WordFencer holds the lexicons of the configured variants.
type WordFencer struct {
	lexicons map[Variant]*lexicon.Lexicon
	closers  []func() error
	close    sync.Once
}

type Option struct {
	Variants               []Variant
	ReferenceURL           string
	ReferenceCollectionURL string
	CacheURL               string
	Source                 WordSource
	Cache                  Cache
	Logger                 Logger
}

func initOpt(opt ...Option) (Option, error) {
	var option Option
	if len(opt) > 0 {
		option = opt[0]
	}
	if len(option.Variants) == 0 {
		variants, err := ParseVariants(os.Getenv("WORDFENCER_VARIANTS"))
		if err != nil {
			return option, fmt.Errorf("WORDFENCER_VARIANTS: %w", err)
		}
		option.Variants = variants
	}
	if len(option.Variants) == 0 {
		return option, errors.New("NewWordFencer: Variants is missing")
	}
	for _, v := range option.Variants {
		if parsed, err := ParseVariant(string(v)); err != nil || parsed != v {
			return option, fmt.Errorf("%w: '%s'", ErrUnknownVariant, v)
		}
	}
	if option.ReferenceURL == "" {
		option.ReferenceURL = os.Getenv("WORDFENCER_REFERENCE_URL")
	}
	if option.ReferenceCollectionURL == "" {
		option.ReferenceCollectionURL = os.Getenv("WORDFENCER_REFERENCE_COLLECTION_URL")
	}
	if option.CacheURL == "" {
		option.CacheURL = os.Getenv("WORDFENCER_CACHE_URL")
	}
	if option.Source == nil && option.ReferenceURL == "" && option.ReferenceCollectionURL == "" {
		return option, errors.New("NewWordFencer: ReferenceURL is missing")
	}
	return option, nil
}

// referenceSource returns the word source for the option. The returned closer is nil
// when nothing has to be released.
func (o Option) referenceSource(ctx context.Context) (WordSource, func() error, error) {
	if o.Source != nil {
		return o.Source, nil, nil
	}
	if o.ReferenceCollectionURL != "" {
		source, err := OpenDocstoreSource(ctx, o.ReferenceCollectionURL)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: %v", ErrReferenceUnavailable, err)
		}
		return source, source.Close, nil
	}
	if strings.Contains(o.ReferenceURL, "://") {
		return &BlobSource{URL: o.ReferenceURL}, nil, nil
	}
	return &FileSource{Dir: o.ReferenceURL}, nil, nil
}

// NewWordFencer builds the lexicons of all variants. It fails when any of them can't be built.
// The instance is closed when ctx is done.
func NewWordFencer(ctx context.Context, opt ...Option) (*WordFencer, error) {
	option, err := initOpt(opt...)
	if err != nil {
		return nil, err
	}
	result := &WordFencer{
		lexicons: make(map[Variant]*lexicon.Lexicon),
	}
	source, closeSource, err := option.referenceSource(ctx)
	if err != nil {
		return nil, err
	}
	if closeSource != nil {
		result.closers = append(result.closers, closeSource)
	}
	cache := option.Cache
	if cache == nil && option.CacheURL != "" {
		cache, err = OpenCache(ctx, option.CacheURL)
		if err != nil {
			result.Close()
			return nil, err
		}
		result.closers = append(result.closers, cache.Close)
	}

	var group errgroup.Group
	var lock sync.Mutex
	buildErrors := &CombinedError{Message: "Can't build lexicons"}
	for _, v := range option.Variants {
		v := v
		group.Go(func() error {
			lex, err := LoadOrBuild(ctx, v, source, cache, option.Logger)
			lock.Lock()
			defer lock.Unlock()
			if err != nil {
				buildErrors.append(err)
				return err
			}
			result.lexicons[v] = lex
			return nil
		})
	}
	group.Wait()
	if err := buildErrors.errorOrNil(); err != nil {
		result.Close()
		return nil, err
	}
	go func() {
		<-ctx.Done()
		result.Close()
	}()
	return result, nil
}

// Variants returns the variants that have a lexicon.
func (wf *WordFencer) Variants() []Variant {
	var result []Variant
	for _, v := range variants {
		if _, ok := wf.lexicons[v]; ok {
			result = append(result, v)
		}
	}
	return result
}

func (wf *WordFencer) Lexicon(v Variant) (*lexicon.Lexicon, error) {
	lex, ok := wf.lexicons[v]
	if !ok {
		return nil, fmt.Errorf("%w: variant '%s' is not loaded", ErrNotBuilt, v)
	}
	return lex, nil
}

// Segment splits text with the lexicon of the variant. See nlp.Segment.
func (wf *WordFencer) Segment(v Variant, text string) ([]string, error) {
	lex, err := wf.Lexicon(v)
	if err != nil {
		return nil, err
	}
	return nlp.Segment(lex, text), nil
}

// AllMatches lists the dictionary words found at every position of text. See nlp.AllMatches.
func (wf *WordFencer) AllMatches(v Variant, text string) ([]string, error) {
	lex, err := wf.Lexicon(v)
	if err != nil {
		return nil, err
	}
	return nlp.AllMatches(lex, text), nil
}

func (wf *WordFencer) Tokenizer(v Variant) (*nlp.Tokenizer, error) {
	lex, err := wf.Lexicon(v)
	if err != nil {
		return nil, err
	}
	return nlp.NewTokenizer(lex), nil
}

// Close releases the cache and the reference collection.
func (wf *WordFencer) Close() (err error) {
	wf.close.Do(func() {
		closeErrors := &CombinedError{Message: "Can't close"}
		for _, closer := range wf.closers {
			closeErrors.appendIfError(closer())
		}
		err = closeErrors.errorOrNil()
	})
	return
}
