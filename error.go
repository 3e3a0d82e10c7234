package wordfencer

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrReferenceUnavailable = errors.New("reference dictionary is unavailable")
	ErrNotBuilt             = errors.New("lexicon is not built")
	ErrUnknownVariant       = errors.New("unknown variant")
	ErrCacheMiss            = errors.New("lexicon is not cached")
)

// CombinedError bundles the errors of operations that run per variant.
type CombinedError struct {
	Message string
	Errors  []error
}

func (c *CombinedError) append(err error) {
	c.Errors = append(c.Errors, err)
}

func (c *CombinedError) appendIfError(err error) {
	if err != nil {
		c.append(err)
	}
}

func (c *CombinedError) errorOrNil() error {
	if len(c.Errors) == 0 {
		return nil
	}
	return c
}

func (c CombinedError) Error() string {
	var result []string
	for _, err := range c.Errors {
		result = append(result, err.Error())
	}
	return fmt.Sprintf("%s: %s", c.Message, strings.Join(result, ", "))
}

// Is reports whether any bundled error matches target.
func (c CombinedError) Is(target error) bool {
	for _, err := range c.Errors {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
