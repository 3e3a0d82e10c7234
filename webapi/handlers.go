package webapi

import (
	stderrors "errors"
	"net/http"

	"github.com/future-architect/wordfencer"
	"github.com/go-chi/chi"
	"github.com/go-openapi/errors"
	"github.com/go-openapi/strfmt"
	"github.com/go-openapi/swag"
	"github.com/go-openapi/validate"
)

type SegmentRequest struct {
	Text *string `json:"text"`
	// SkipPunctuation drops tokens made only of spaces or punctuation.
	SkipPunctuation *bool `json:"skip_punctuation,omitempty"`
}

type SegmentResponse struct {
	Variant string   `json:"variant"`
	Words   []string `json:"words"`
}

type AmbiguityResponse struct {
	Variant string   `json:"variant"`
	Matches []string `json:"matches"`
}

type VariantsResponse struct {
	Variants []string `json:"variants"`
}

type StatsResponse struct {
	Started  strfmt.DateTime `json:"started"`
	Words    map[string]int  `json:"words"`
	Requests map[string]int  `json:"requests,omitempty"`
}

func (s *Server) getVariants(w http.ResponseWriter, r *http.Request) {
	result := VariantsResponse{
		Variants: []string{},
	}
	for _, v := range s.fencer.Variants() {
		result.Variants = append(result.Variants, v.String())
	}
	s.respond(w, &result)
}

func (s *Server) getStats(w http.ResponseWriter, r *http.Request) {
	result := StatsResponse{
		Started: s.started,
		Words:   make(map[string]int),
	}
	if s.counter != nil {
		result.Requests = make(map[string]int)
	}
	for _, v := range s.fencer.Variants() {
		lex, err := s.fencer.Lexicon(v)
		if err != nil {
			errors.ServeError(w, r, err)
			return
		}
		result.Words[v.String()] = lex.Len()
		if s.counter != nil {
			count, err := s.counter.Get(r.Context(), requestCounterKey(v))
			if err != nil {
				errors.ServeError(w, r, err)
				return
			}
			result.Requests[v.String()] = count
		}
	}
	s.respond(w, &result)
}

// readRequest parses the variant in the path and the JSON body.
func (s *Server) readRequest(r *http.Request) (wordfencer.Variant, *SegmentRequest, error) {
	v, err := wordfencer.ParseVariant(chi.URLParam(r, "variant"))
	if err != nil {
		return "", nil, errors.NotFound("%v", err)
	}
	if _, err := s.fencer.Lexicon(v); err != nil {
		return "", nil, errors.NotFound("%v", err)
	}
	var request SegmentRequest
	if err := s.consumer.Consume(r.Body, &request); err != nil {
		return "", nil, errors.New(http.StatusBadRequest, "can't parse request body: %v", err)
	}
	if err := validate.Required("text", "body", request.Text); err != nil {
		return "", nil, err
	}
	if s.maxTextLength > 0 {
		if err := validate.MaxLength("text", "body", *request.Text, s.maxTextLength); err != nil {
			return "", nil, err
		}
	}
	return v, &request, nil
}

func serveError(w http.ResponseWriter, r *http.Request, err error) {
	if stderrors.Is(err, wordfencer.ErrNotBuilt) {
		err = errors.NotFound("%v", err)
	}
	errors.ServeError(w, r, err)
}

func (s *Server) postSegment(w http.ResponseWriter, r *http.Request) {
	v, request, err := s.readRequest(r)
	if err != nil {
		serveError(w, r, err)
		return
	}
	var words []string
	if swag.BoolValue(request.SkipPunctuation) {
		tokenizer, err := s.fencer.Tokenizer(v)
		if err != nil {
			serveError(w, r, err)
			return
		}
		words = tokenizer.Split(swag.StringValue(request.Text))
	} else {
		words, err = s.fencer.Segment(v, swag.StringValue(request.Text))
		if err != nil {
			serveError(w, r, err)
			return
		}
	}
	s.countRequest(r.Context(), v)
	s.respond(w, &SegmentResponse{
		Variant: v.String(),
		Words:   words,
	})
}

func (s *Server) postAmbiguity(w http.ResponseWriter, r *http.Request) {
	v, request, err := s.readRequest(r)
	if err != nil {
		serveError(w, r, err)
		return
	}
	matches, err := s.fencer.AllMatches(v, swag.StringValue(request.Text))
	if err != nil {
		serveError(w, r, err)
		return
	}
	s.countRequest(r.Context(), v)
	s.respond(w, &AmbiguityResponse{
		Variant: v.String(),
		Matches: matches,
	})
}
