package wordfencer

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v2"
)

type configFile struct {
	Variants               []string `yaml:"variants"`
	ReferenceURL           string   `yaml:"reference_url"`
	ReferenceCollectionURL string   `yaml:"reference_collection_url"`
	CacheURL               string   `yaml:"cache_url"`
}

// LoadConfig reads an Option from YAML like this:
//
//   variants: [zh-Hans, yue]
//   reference_url: /usr/share/wordfencer
//   cache_url: bolt:///var/cache/wordfencer.db
//
// Empty fields are filled from WORDFENCER_* environment variables by NewWordFencer.
func LoadConfig(r io.Reader) (Option, error) {
	var config configFile
	decoder := yaml.NewDecoder(r)
	decoder.SetStrict(true)
	err := decoder.Decode(&config)
	if err != nil && err != io.EOF {
		return Option{}, fmt.Errorf("Can't parse config: %w", err)
	}
	option := Option{
		ReferenceURL:           config.ReferenceURL,
		ReferenceCollectionURL: config.ReferenceCollectionURL,
		CacheURL:               config.CacheURL,
	}
	for _, name := range config.Variants {
		v, err := ParseVariant(name)
		if err != nil {
			return Option{}, err
		}
		option.Variants = append(option.Variants, v)
	}
	return option, nil
}
