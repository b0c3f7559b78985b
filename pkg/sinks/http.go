package sinks

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/samvad-hq/customers-demo/pkg/httpclient"
)

// httpSink sends each result as a JSON document to a webhook.
type httpSink struct {
	id      string
	method  string
	url     string
	headers map[string]string
	client  httpclient.Client
	log     Logger
}

func newHTTPSink(_ context.Context, cfg SinkConfig, opts BuildOptions) (Sink, error) {
	if cfg.HTTP == nil {
		return nil, fmt.Errorf("sink %q missing http configuration", cfg.ID)
	}

	headers := map[string]string{"Content-Type": "application/json"}
	for k, v := range cfg.HTTP.Headers {
		headers[k] = v
	}

	return &httpSink{
		id:      cfg.ID,
		method:  cfg.HTTP.Method,
		url:     cfg.HTTP.URL,
		headers: headers,
		client:  httpclient.NewRestyClient(time.Duration(cfg.HTTP.TimeoutSeconds) * time.Second),
		log:     ensureLogger(opts.Log),
	}, nil
}

func (h *httpSink) ID() string   { return h.id }
func (h *httpSink) Type() string { return TypeHTTP }

func (h *httpSink) Emit(ctx context.Context, res Result) error {
	var (
		resp httpclient.Response
		err  error
	)
	if h.method == http.MethodPut {
		resp, err = h.client.Put(ctx, h.url, h.headers, res)
	} else {
		resp, err = h.client.Post(ctx, h.url, h.headers, res)
	}
	if err != nil {
		return fmt.Errorf("%s %s: %w", h.method, h.url, err)
	}
	if code := resp.StatusCode(); code < 200 || code > 299 {
		body := resp.Body()
		if len(body) > 256 {
			body = body[:256]
		}
		return fmt.Errorf("%s %s: status %d: %s", h.method, h.url, code, strings.TrimSpace(string(body)))
	}
	h.log.DebugObj("http sink delivered result", "sink_http_delivery", map[string]any{
		"sink_id":     h.id,
		"operation":   res.Operation,
		"status_code": resp.StatusCode(),
	})
	return nil
}
