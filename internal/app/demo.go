package app

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/samvad-hq/customers-demo/internal/config"
	"github.com/samvad-hq/customers-demo/internal/domain"
	"github.com/samvad-hq/customers-demo/internal/logger"
	"github.com/samvad-hq/customers-demo/pkg/customers"
	"github.com/samvad-hq/customers-demo/pkg/httpclient"
	"github.com/samvad-hq/customers-demo/pkg/sinks"
)

// Demo runs the fixed customers sequence: fetch one customer, then create one.
type Demo struct {
	cfg        *config.Config
	client     *customers.Client
	fanout     *sinks.Fanout
	customerID int
	payload    domain.Customer
	log        logger.Logger
}

// Options overrides runtime collaborators; zero values use the defaults.
type Options struct {
	HTTPClient httpclient.Client
	Stdout     io.Writer
}

// NewDemo builds a demo runtime from config.
func NewDemo(ctx context.Context, cfg *config.Config, log logger.Logger, opts Options) (*Demo, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config must not be nil")
	}
	if log == nil {
		log = &logger.NopLogger{}
	}
	if ctx == nil {
		ctx = context.Background()
	}

	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = httpclient.NewRestyClient(cfg.RequestTimeout)
	}
	client, err := customers.NewClient(httpClient, cfg.BaseURL, log)
	if err != nil {
		return nil, fmt.Errorf("init customers client: %w", err)
	}

	payload := domain.DemoCustomer()
	if cfg.PayloadFile != "" {
		payload, err = domain.LoadCustomer(cfg.PayloadFile)
		if err != nil {
			return nil, fmt.Errorf("load payload: %w", err)
		}
		log.InfoObj("payload loaded", "payload_file", cfg.PayloadFile)
	}

	sinkCfgs := sinks.DefaultConfigs()
	if cfg.SinksFile != "" {
		reg, err := sinks.LoadRegistry(cfg.SinksFile)
		if err != nil {
			return nil, fmt.Errorf("load sinks registry: %w", err)
		}
		sinkCfgs = reg.Enabled()
	}
	if len(sinkCfgs) == 0 {
		return nil, fmt.Errorf("no sinks configured")
	}

	routes, err := sinks.BuildAll(ctx, sinkCfgs, sinks.BuildOptions{
		Stdout: opts.Stdout,
		Log:    log,
	})
	if err != nil {
		return nil, fmt.Errorf("build sinks: %w", err)
	}
	sinkSummaries := make([]map[string]string, 0, len(sinkCfgs))
	for _, sc := range sinkCfgs {
		ops := "all"
		if len(sc.Operations) > 0 {
			ops = strings.Join(sc.Operations, ",")
		}
		sinkSummaries = append(sinkSummaries, map[string]string{"id": sc.ID, "type": sc.Type, "operations": ops})
	}
	log.InfoObj("sinks loaded", "sinks_meta", map[string]any{
		"count": len(sinkSummaries),
		"sinks": sinkSummaries,
	})

	return &Demo{
		cfg:        cfg,
		client:     client,
		fanout:     sinks.NewFanout(routes),
		customerID: cfg.CustomerID,
		payload:    payload,
		log:        log,
	}, nil
}

// Run performs the GET operation and then the POST operation.
// The first failure aborts the run; later operations are not attempted.
func (d *Demo) Run(ctx context.Context) error {
	if d == nil || d.client == nil {
		return fmt.Errorf("demo is not initialized")
	}

	start := time.Now()
	if err := d.getCustomer(ctx); err != nil {
		return err
	}
	if err := d.createCustomer(ctx); err != nil {
		return err
	}
	d.log.InfoObj("demo completed", "demo_meta", map[string]any{
		"base_url":   d.cfg.BaseURL,
		"elapsed_ms": time.Since(start).Milliseconds(),
	})
	return nil
}

func (d *Demo) getCustomer(ctx context.Context) error {
	doc, err := d.client.GetCustomer(ctx, d.customerID)
	if err != nil {
		return fmt.Errorf("get customer %d: %w", d.customerID, err)
	}
	return d.emit(ctx, sinks.OperationGetCustomer, doc)
}

func (d *Demo) createCustomer(ctx context.Context) error {
	doc, err := d.client.CreateCustomer(ctx, d.payload)
	if err != nil {
		return fmt.Errorf("create customer: %w", err)
	}
	return d.emit(ctx, sinks.OperationCreateCustomer, doc)
}

// emit fails only when every sink subscribed to the operation failed.
func (d *Demo) emit(ctx context.Context, operation string, doc customers.Document) error {
	res := sinks.NewResult(operation, doc.Method, doc.URL, doc.StatusCode, doc.Raw)
	delivery, err := d.fanout.Emit(ctx, res)
	switch {
	case delivery.Routed == 0:
		d.log.WarnObj("no sink subscribed to operation", "emit_meta", map[string]any{
			"operation": operation,
			"sinks":     d.fanout.Size(),
		})
	case delivery.Delivered == 0:
		return fmt.Errorf("emit %s result: %w", operation, err)
	case err != nil:
		d.log.WarnObj("result partially delivered", "emit_meta", map[string]any{
			"operation": operation,
			"routed":    delivery.Routed,
			"delivered": delivery.Delivered,
			"error":     err.Error(),
		})
	}
	return nil
}
