package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/future-architect/gocloudurls"
	"github.com/future-architect/wordfencer"
	"github.com/future-architect/wordfencer/webapi"
	"github.com/jessevdk/go-flags"
	"gocloud.dev/docstore"

	_ "gocloud.dev/blob/gcsblob"
	_ "gocloud.dev/blob/s3blob"
	_ "gocloud.dev/docstore/awsdynamodb"
	_ "gocloud.dev/docstore/gcpfirestore"
	_ "gocloud.dev/docstore/memdocstore"
	_ "gocloud.dev/docstore/mongodocstore"
)

var options struct {
	Host                   string `long:"host" default:"localhost" description:"Host to listen"`
	Port                   int    `long:"port" short:"p" default:"8080" description:"Port to listen"`
	Config                 string `long:"config" short:"c" description:"YAML config file"`
	Variants               string `long:"variants" description:"Comma separated variants like zh-Hans,yue,th. Default value is WORDFENCER_VARIANTS envvar"`
	ReferenceURL           string `long:"reference-url" description:"Directory or bucket URL of <variant>.txt word lists. Default value is WORDFENCER_REFERENCE_URL envvar"`
	ReferenceCollectionURL string `long:"reference-collection-url" description:"Docstore URL of word collection like mongo://my-db. Default value is WORDFENCER_REFERENCE_COLLECTION_URL envvar"`
	CacheURL               string `long:"cache-url" description:"Lexicon cache like bolt:///var/cache/wordfencer.db or s3://bucket. Default value is WORDFENCER_CACHE_URL envvar"`
	CounterURL             string `long:"counter-url" description:"Docstore URL to keep request counters like mem:// or firestore://my-project"`
	MaxTextLength          int64  `long:"max-text-length" default:"100000" description:"Max characters of a request text"`
}

func loadOption() (wordfencer.Option, error) {
	var option wordfencer.Option
	if options.Config != "" {
		f, err := os.Open(options.Config)
		if err != nil {
			return option, err
		}
		defer f.Close()
		option, err = wordfencer.LoadConfig(f)
		if err != nil {
			return option, err
		}
	}
	if options.Variants != "" {
		variants, err := wordfencer.ParseVariants(options.Variants)
		if err != nil {
			return option, err
		}
		option.Variants = variants
	}
	if options.ReferenceURL != "" {
		option.ReferenceURL = options.ReferenceURL
	}
	if options.ReferenceCollectionURL != "" {
		option.ReferenceCollectionURL = options.ReferenceCollectionURL
	}
	if options.CacheURL != "" {
		option.CacheURL = options.CacheURL
	}
	option.Logger = log.Printf
	return option, nil
}

func openCounter(ctx context.Context) (*docstore.Collection, error) {
	if options.CounterURL == "" {
		return nil, nil
	}
	url, err := gocloudurls.NormalizeDocStoreURL(options.CounterURL, gocloudurls.Option{
		Collection: "counters",
		KeyName:    "id",
	})
	if err != nil {
		return nil, err
	}
	return docstore.OpenCollection(ctx, url)
}

func main() {
	parser := flags.NewParser(&options, flags.Default)
	parser.ShortDescription = "wordfencer server"
	parser.LongDescription = "HTTP server that segments Chinese, Cantonese and Thai text"
	if _, err := parser.Parse(); err != nil {
		if fe, ok := err.(*flags.Error); ok && fe.Type == flags.ErrHelp {
			os.Exit(0)
		}
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	option, err := loadOption()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config error: %v\n", err)
		os.Exit(1)
	}
	fencer, err := wordfencer.NewWordFencer(ctx, option)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Could not start wordfencer: %v\n", err)
		os.Exit(1)
	}
	defer fencer.Close()

	counter, err := openCounter(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Could not open counter collection '%s': %v\n", options.CounterURL, err)
		os.Exit(1)
	}
	if counter != nil {
		defer counter.Close()
	}
	handler, err := webapi.NewServer(ctx, fencer, webapi.Option{
		Counter:       counter,
		MaxTextLength: options.MaxTextLength,
		Logger:        log.Printf,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Could not start server: %v\n", err)
		os.Exit(1)
	}

	server := &http.Server{
		Addr:    fmt.Sprintf("%s:%d", options.Host, options.Port),
		Handler: handler,
	}
	go func() {
		signals := make(chan os.Signal, 1)
		signal.Notify(signals, os.Interrupt)
		<-signals
		shutdownCtx, stop := context.WithTimeout(ctx, 10*time.Second)
		defer stop()
		server.Shutdown(shutdownCtx)
	}()
	log.Printf("Serving wordfencer at http://%s (variants: %v)", server.Addr, fencer.Variants())
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		fmt.Fprintf(os.Stderr, "server error: %v\n", err)
	}
}
