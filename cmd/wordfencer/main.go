package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/future-architect/wordfencer"
	_ "gocloud.dev/docstore/memdocstore"
	_ "gocloud.dev/docstore/mongodocstore"
	"gopkg.in/alecthomas/kingpin.v2"
)

var (
	configFile             = kingpin.Flag("config", "YAML config file").Short('c').ExistingFile()
	variantNames           = kingpin.Flag("variant", "Variant like zh-Hans, yue, th").Short('v').Strings()
	referenceURL           = kingpin.Flag("reference-url", "Directory or bucket URL of <variant>.txt word lists").Envar("WORDFENCER_REFERENCE_URL").String()
	referenceCollectionURL = kingpin.Flag("reference-collection-url", "Docstore URL of word collection").Envar("WORDFENCER_REFERENCE_COLLECTION_URL").String()
	cacheURL               = kingpin.Flag("cache-url", "Lexicon cache like bolt://wordfencer.db").Envar("WORDFENCER_CACHE_URL").String()
	verbose                = kingpin.Flag("verbose", "Show cache messages").Bool()

	segmentCmd      = kingpin.Command("segment", "Split text into words")
	skipPunctuation = segmentCmd.Flag("skip-punctuation", "Drop punctuation and spaces").Bool()
	segmentTexts    = segmentCmd.Arg("TEXT", "Text to split. Lines of stdin are used when omitted").Strings()

	ambiguityCmd   = kingpin.Command("ambiguity", "List dictionary words found at every position")
	ambiguityTexts = ambiguityCmd.Arg("TEXT", "Text to check. Lines of stdin are used when omitted").Strings()

	statsCmd = kingpin.Command("stats", "Show word counts of lexicons")

	buildCacheCmd = kingpin.Command("build-cache", "Build lexicons and store them to the cache")

	importCmd        = kingpin.Command("import", "Import a word list file into a docstore collection")
	importCollection = importCmd.Flag("collection-url", "Docstore URL of word collection").Required().String()
	importVariant    = importCmd.Arg("VARIANT", "Variant of the word list").Required().String()
	importFile       = importCmd.Arg("FILE", "Word list file (one word per line)").Required().ExistingFile()
)

func option() (wordfencer.Option, error) {
	var result wordfencer.Option
	if *configFile != "" {
		f, err := os.Open(*configFile)
		if err != nil {
			return result, err
		}
		defer f.Close()
		result, err = wordfencer.LoadConfig(f)
		if err != nil {
			return result, err
		}
	}
	if len(*variantNames) > 0 {
		variants, err := wordfencer.ParseVariants(strings.Join(*variantNames, ","))
		if err != nil {
			return result, err
		}
		result.Variants = variants
	}
	if *referenceURL != "" {
		result.ReferenceURL = *referenceURL
	}
	if *referenceCollectionURL != "" {
		result.ReferenceCollectionURL = *referenceCollectionURL
	}
	if *cacheURL != "" {
		result.CacheURL = *cacheURL
	}
	if *verbose {
		result.Logger = func(format string, args ...interface{}) {
			color.Yellow(format, args...)
		}
	}
	return result, nil
}

func open(ctx context.Context) (*wordfencer.WordFencer, error) {
	opt, err := option()
	if err != nil {
		return nil, err
	}
	return wordfencer.NewWordFencer(ctx, opt)
}

const maxLineSize = 16 * 1024 * 1024

func texts(args []string, r io.Reader) ([]string, error) {
	if len(args) > 0 {
		return args, nil
	}
	var result []string
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	for scanner.Scan() {
		result = append(result, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("can't read stdin: %w", err)
	}
	return result, nil
}

func segment(ctx context.Context) error {
	wf, err := open(ctx)
	if err != nil {
		return err
	}
	defer wf.Close()
	inputs, err := texts(*segmentTexts, os.Stdin)
	if err != nil {
		return err
	}
	for _, v := range wf.Variants() {
		tokenizer, _ := wf.Tokenizer(v)
		lex, _ := wf.Lexicon(v)
		for _, text := range inputs {
			var words []string
			if *skipPunctuation {
				words = tokenizer.Split(text)
			} else {
				words, _ = wf.Segment(v, text)
			}
			color.Blue("# %s\n", v)
			for i, word := range words {
				if i != 0 {
					fmt.Print(" | ")
				}
				if lex.IsWord(word) {
					color.New(color.FgCyan).Print(word)
				} else {
					fmt.Print(word)
				}
			}
			fmt.Println()
		}
	}
	return nil
}

func ambiguity(ctx context.Context) error {
	wf, err := open(ctx)
	if err != nil {
		return err
	}
	defer wf.Close()
	inputs, err := texts(*ambiguityTexts, os.Stdin)
	if err != nil {
		return err
	}
	for _, v := range wf.Variants() {
		for _, text := range inputs {
			matches, _ := wf.AllMatches(v, text)
			color.Blue("# %s\n", v)
			if len(matches) == 0 {
				color.Cyan("No Match")
				continue
			}
			for _, match := range matches {
				color.Cyan("  %s", match)
			}
		}
	}
	return nil
}

func stats(ctx context.Context) error {
	wf, err := open(ctx)
	if err != nil {
		return err
	}
	defer wf.Close()
	for _, v := range wf.Variants() {
		lex, _ := wf.Lexicon(v)
		color.Blue("%-8s", v)
		fmt.Printf("  words: %d, longest: %d\n", lex.Len(), lex.MaxWordLen())
	}
	return nil
}

func buildCache(ctx context.Context) error {
	opt, err := option()
	if err != nil {
		return err
	}
	if opt.CacheURL == "" {
		return errors.New("--cache-url or WORDFENCER_CACHE_URL is required")
	}
	wf, err := wordfencer.NewWordFencer(ctx, opt)
	if err != nil {
		return err
	}
	defer wf.Close()
	for _, v := range wf.Variants() {
		lex, _ := wf.Lexicon(v)
		color.Green("  %s: %d words", v, lex.Len())
	}
	return nil
}

func importWords(ctx context.Context) error {
	v, err := wordfencer.ParseVariant(*importVariant)
	if err != nil {
		return err
	}
	f, err := os.Open(*importFile)
	if err != nil {
		return err
	}
	defer f.Close()
	words, err := wordfencer.ReadWords(f)
	if err != nil {
		return fmt.Errorf("read error: %w", err)
	}
	collection, err := wordfencer.OpenWordCollection(ctx, *importCollection)
	if err != nil {
		return err
	}
	defer collection.Close()
	count, err := wordfencer.ImportWords(ctx, collection, v, words)
	if err != nil {
		return err
	}
	color.Green("  %d words of %s are imported", count, v)
	return nil
}

func main() {
	ctx := context.Background()

	var err error
	switch kingpin.Parse() {
	case segmentCmd.FullCommand():
		err = segment(ctx)
	case ambiguityCmd.FullCommand():
		err = ambiguity(ctx)
	case statsCmd.FullCommand():
		err = stats(ctx)
	case buildCacheCmd.FullCommand():
		err = buildCache(ctx)
	case importCmd.FullCommand():
		err = importWords(ctx)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", err.Error())
		os.Exit(1)
	}
}
