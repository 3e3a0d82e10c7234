package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"sync"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	"github.com/future-architect/wordfencer"
	_ "gocloud.dev/blob/s3blob"
	_ "gocloud.dev/docstore/awsdynamodb"
)

type Query struct {
	Text string `json:"text"`
	Lang string `json:"lang"`
	All  bool   `json:"all"`
}

type Result struct {
	Error   string   `json:"error,omitempty"`
	Variant string   `json:"variant,omitempty"`
	Words   []string `json:"words,omitempty"`
}

func errorResult(status int, err string) events.APIGatewayProxyResponse {
	b, _ := json.Marshal(&Result{
		Error: err,
	})
	return events.APIGatewayProxyResponse{
		StatusCode: status,
		Body:       string(b),
	}
}

var (
	fencer    *wordfencer.WordFencer
	fencerErr error
	initOnce  sync.Once
)

// WORDFENCER_* envvars configure the lexicons. They are built once per container.
func openFencer() (*wordfencer.WordFencer, error) {
	initOnce.Do(func() {
		fencer, fencerErr = wordfencer.NewWordFencer(context.Background(), wordfencer.Option{
			Logger: log.Printf,
		})
	})
	return fencer, fencerErr
}

func Handler(ctx context.Context, request events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	var query Query
	if strings.TrimSpace(request.Body) != "" {
		if err := json.Unmarshal([]byte(request.Body), &query); err != nil {
			return errorResult(400, fmt.Sprintf("can't parse request body: %v", err)), nil
		}
	}
	for key, values := range request.MultiValueQueryStringParameters {
		if key == "text" {
			query.Text = strings.Join(values, " ")
		} else if key == "lang" {
			query.Lang = strings.Join(values, ",")
		} else if key == "all" {
			query.All = len(values) > 0 && values[0] != "false"
		}
	}

	wf, err := openFencer()
	if err != nil {
		return errorResult(500, fmt.Sprintf("lexicon error: %v", err)), nil
	}
	var v wordfencer.Variant
	if query.Lang == "" {
		v = wf.Variants()[0]
	} else {
		v, err = wordfencer.ParseVariant(query.Lang)
		if err != nil {
			return errorResult(400, err.Error()), nil
		}
	}
	var words []string
	if query.All {
		words, err = wf.AllMatches(v, query.Text)
	} else {
		words, err = wf.Segment(v, query.Text)
	}
	if err != nil {
		return errorResult(404, err.Error()), nil
	}

	b, _ := json.Marshal(&Result{
		Variant: v.String(),
		Words:   words,
	})
	return events.APIGatewayProxyResponse{
		StatusCode: 200,
		Body:       string(b),
	}, nil
}

func main() {
	lambda.Start(Handler)
}
