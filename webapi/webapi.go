// Package webapi serves segmentation over HTTP.
package webapi

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/future-architect/wordfencer"
	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-openapi/errors"
	"github.com/go-openapi/runtime"
	"github.com/go-openapi/strfmt"
	"github.com/shibukawa/cloudcounter"
	"gocloud.dev/docstore"
)

type Option struct {
	// Counter is the collection that keeps request counts. Counting is disabled when nil.
	Counter            *docstore.Collection
	CounterConcurrency int
	// MaxTextLength limits the number of characters of the text. 0 means unlimited.
	MaxTextLength int64
	Logger        wordfencer.Logger
}

type Server struct {
	fencer        *wordfencer.WordFencer
	counter       *cloudcounter.Counter
	started       strfmt.DateTime
	maxTextLength int64
	logger        wordfencer.Logger
	consumer      runtime.Consumer
	producer      runtime.Producer
	router        chi.Router
}

func requestCounterKey(v wordfencer.Variant) cloudcounter.CounterKey {
	return cloudcounter.CounterKey("requests_" + string(v))
}

// NewServer creates the HTTP handler for the loaded variants of fencer.
func NewServer(ctx context.Context, fencer *wordfencer.WordFencer, opt ...Option) (*Server, error) {
	var option Option
	if len(opt) > 0 {
		option = opt[0]
	}
	if option.Logger == nil {
		option.Logger = log.Printf
	}
	if option.CounterConcurrency == 0 {
		option.CounterConcurrency = 5
	}
	s := &Server{
		fencer:        fencer,
		started:       strfmt.DateTime(time.Now()),
		maxTextLength: option.MaxTextLength,
		logger:        option.Logger,
		consumer:      runtime.JSONConsumer(),
		producer:      runtime.JSONProducer(),
	}
	if option.Counter != nil {
		s.counter = cloudcounter.NewCounter(option.Counter, cloudcounter.Option{
			Concurrency: option.CounterConcurrency,
			Prefix:      "wordfencer",
		})
		for _, v := range fencer.Variants() {
			if err := s.counter.Register(ctx, requestCounterKey(v)); err != nil {
				return nil, fmt.Errorf("Can't register request counter of '%s': %w", v, err)
			}
		}
	}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Get("/variants", s.getVariants)
	r.Get("/stats", s.getStats)
	r.Post("/{variant}/segment", s.postSegment)
	r.Post("/{variant}/ambiguity", s.postAmbiguity)
	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		errors.ServeError(w, r, errors.NotFound("path '%s' is not found", r.URL.Path))
	})
	s.router = r
	return s, nil
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) respond(w http.ResponseWriter, payload interface{}) {
	w.Header().Set(runtime.HeaderContentType, runtime.JSONMime)
	w.WriteHeader(http.StatusOK)
	if err := s.producer.Produce(w, payload); err != nil {
		s.logger("can't write response: %v", err)
	}
}

func (s *Server) countRequest(ctx context.Context, v wordfencer.Variant) {
	if s.counter == nil {
		return
	}
	if _, err := s.counter.Increment(ctx, requestCounterKey(v)); err != nil {
		s.logger("can't count request of '%s': %v", v, err)
	}
}
