package wordfencer

import (
	"fmt"
	"strings"

	"golang.org/x/text/language"
)

// Variant identifies a reference dictionary. Variants only differ in the word list they load.
type Variant string

const (
	Chinese              Variant = "zh"
	ChineseSimplified    Variant = "zh-Hans"
	ChineseTraditional   Variant = "zh-Hant"
	Cantonese            Variant = "yue"
	CantoneseSimplified  Variant = "yue-Hans"
	CantoneseTraditional Variant = "yue-Hant"
	Thai                 Variant = "th"
)

var variants = []Variant{
	Chinese,
	ChineseSimplified,
	ChineseTraditional,
	Cantonese,
	CantoneseSimplified,
	CantoneseTraditional,
	Thai,
}

// Variants returns all supported variants.
func Variants() []Variant {
	result := make([]Variant, len(variants))
	copy(result, variants)
	return result
}

// ParseVariant converts a language tag like "zh-hans" or "thai" into a Variant.
func ParseVariant(s string) (Variant, error) {
	s = strings.TrimSpace(s)
	if strings.EqualFold(s, "thai") {
		return Thai, nil
	}
	tag, err := language.Parse(s)
	if err != nil {
		return "", fmt.Errorf("%w: '%s'", ErrUnknownVariant, s)
	}
	canonical := tag.String()
	for _, v := range variants {
		if string(v) == canonical {
			return v, nil
		}
	}
	return "", fmt.Errorf("%w: '%s'", ErrUnknownVariant, s)
}

// ParseVariants parses a comma separated list of variants.
func ParseVariants(s string) ([]Variant, error) {
	var result []Variant
	for _, item := range strings.Split(s, ",") {
		if strings.TrimSpace(item) == "" {
			continue
		}
		v, err := ParseVariant(item)
		if err != nil {
			return nil, err
		}
		result = append(result, v)
	}
	return result, nil
}

// ReferenceFile returns the file name of the word list of the variant.
func (v Variant) ReferenceFile() string {
	return string(v) + ".txt"
}

func (v Variant) String() string {
	return string(v)
}
