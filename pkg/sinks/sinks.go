package sinks

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	// Supported sink types.
	TypeStdout = "stdout"
	TypeHTTP   = "http"
	TypeSQS    = "sqs"
	TypeSNS    = "sns"

	// Operations a sink can subscribe to.
	OperationGetCustomer    = "get_customer"
	OperationCreateCustomer = "create_customer"

	httpDefaultTimeoutSeconds = 5
)

var knownOperations = []string{OperationGetCustomer, OperationCreateCustomer}

type configFile struct {
	Sinks []SinkConfig `json:"sinks" yaml:"sinks"`
}

// SinkConfig represents a single sink entry declared in config files.
// An empty Operations list subscribes the sink to every operation.
type SinkConfig struct {
	ID         string            `json:"id" yaml:"id"`
	Type       string            `json:"type" yaml:"type"`
	Enabled    *bool             `json:"enabled" yaml:"enabled"`
	Operations []string          `json:"operations" yaml:"operations"`
	Stdout     *StdoutSinkConfig `json:"stdout" yaml:"stdout"`
	HTTP       *HTTPSinkConfig   `json:"http" yaml:"http"`
	SQS        *SQSSinkConfig    `json:"sqs" yaml:"sqs"`
	SNS        *SNSSinkConfig    `json:"sns" yaml:"sns"`
}

// StdoutSinkConfig controls how bodies are printed.
type StdoutSinkConfig struct {
	Pretty bool `json:"pretty" yaml:"pretty"`
}

// HTTPSinkConfig describes a webhook receiving each result as JSON.
type HTTPSinkConfig struct {
	URL            string            `json:"url" yaml:"url"`
	Method         string            `json:"method" yaml:"method"`
	Headers        map[string]string `json:"headers" yaml:"headers"`
	TimeoutSeconds int               `json:"timeout_seconds" yaml:"timeout_seconds"`
}

// SQSSinkConfig holds AWS SQS specific settings.
type SQSSinkConfig struct {
	QueueURL string `json:"uri" yaml:"uri"`
	Region   string `json:"region" yaml:"region"`
}

// SNSSinkConfig holds AWS SNS specific settings.
type SNSSinkConfig struct {
	TopicARN string `json:"topic_arn" yaml:"topic_arn"`
	Region   string `json:"region" yaml:"region"`
}

// DefaultConfigs is used when no sinks file is configured: print to stdout only.
func DefaultConfigs() []SinkConfig {
	return []SinkConfig{{ID: TypeStdout, Type: TypeStdout}}
}

// Registry is the validated content of a sinks file.
type Registry struct {
	sinks []SinkConfig
}

// LoadRegistry reads and validates a YAML or JSON sinks file.
func LoadRegistry(path string) (*Registry, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, errors.New("sinks file path is empty")
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read sinks file: %w", err)
	}

	file, err := parseSinksFile(raw, filepath.Ext(path))
	if err != nil {
		return nil, err
	}
	if len(file.Sinks) == 0 {
		return nil, errors.New("sinks file contains no sinks entries")
	}

	reg := &Registry{sinks: make([]SinkConfig, 0, len(file.Sinks))}
	seen := make(map[string]struct{}, len(file.Sinks))
	for i, entry := range file.Sinks {
		cfg, err := entry.normalize()
		if err != nil {
			return nil, fmt.Errorf("sinks[%d]: %w", i, err)
		}
		if _, dup := seen[cfg.ID]; dup {
			return nil, fmt.Errorf("duplicate sink id %q", cfg.ID)
		}
		seen[cfg.ID] = struct{}{}
		reg.sinks = append(reg.sinks, cfg)
	}
	return reg, nil
}

func parseSinksFile(data []byte, ext string) (configFile, error) {
	var file configFile
	var err error
	switch strings.ToLower(strings.TrimSpace(ext)) {
	case ".json":
		err = json.Unmarshal(data, &file)
	case ".yaml", ".yml", "":
		// YAML is a superset of JSON, so extensionless files go through it too.
		err = yaml.Unmarshal(data, &file)
	default:
		return configFile{}, fmt.Errorf("sinks file extension %q not supported (expected .yaml, .yml or .json)", ext)
	}
	if err != nil {
		return configFile{}, fmt.Errorf("parse sinks file: %w", err)
	}
	return file, nil
}

// Enabled returns the sinks not switched off with enabled: false, in file order.
func (r *Registry) Enabled() []SinkConfig {
	if r == nil {
		return nil
	}
	out := make([]SinkConfig, 0, len(r.sinks))
	for _, cfg := range r.sinks {
		if cfg.Enabled == nil || *cfg.Enabled {
			out = append(out, cfg)
		}
	}
	return out
}

// normalize trims the entry, fills per-type defaults and validates it.
func (cfg SinkConfig) normalize() (SinkConfig, error) {
	cfg.ID = strings.TrimSpace(cfg.ID)
	cfg.Type = strings.ToLower(strings.TrimSpace(cfg.Type))
	if cfg.ID == "" {
		return cfg, errors.New("id is required")
	}

	ops, err := normalizeOperations(cfg.Operations)
	if err != nil {
		return cfg, fmt.Errorf("sink %q: %w", cfg.ID, err)
	}
	cfg.Operations = ops

	switch cfg.Type {
	case "":
		return cfg, fmt.Errorf("type is required for sink %q", cfg.ID)
	case TypeStdout:
		return cfg, nil
	case TypeHTTP:
		if cfg.HTTP == nil {
			return cfg, fmt.Errorf("http config required for sink %q", cfg.ID)
		}
		c := *cfg.HTTP
		c.URL = strings.TrimSpace(c.URL)
		if c.URL == "" {
			return cfg, fmt.Errorf("http.url is required for sink %q", cfg.ID)
		}
		c.Method = strings.ToUpper(strings.TrimSpace(c.Method))
		switch c.Method {
		case "":
			c.Method = http.MethodPost
		case http.MethodPost, http.MethodPut:
		default:
			return cfg, fmt.Errorf("http.method %q not supported for sink %q (use POST or PUT)", c.Method, cfg.ID)
		}
		c.Headers = trimHeaders(c.Headers)
		if c.TimeoutSeconds <= 0 {
			c.TimeoutSeconds = httpDefaultTimeoutSeconds
		}
		cfg.HTTP = &c
	case TypeSQS:
		if cfg.SQS == nil {
			return cfg, fmt.Errorf("sqs config required for sink %q", cfg.ID)
		}
		c := SQSSinkConfig{
			QueueURL: strings.TrimSpace(cfg.SQS.QueueURL),
			Region:   strings.TrimSpace(cfg.SQS.Region),
		}
		if c.QueueURL == "" || c.Region == "" {
			return cfg, fmt.Errorf("sqs.uri and sqs.region are required for sink %q", cfg.ID)
		}
		cfg.SQS = &c
	case TypeSNS:
		if cfg.SNS == nil {
			return cfg, fmt.Errorf("sns config required for sink %q", cfg.ID)
		}
		c := SNSSinkConfig{
			TopicARN: strings.TrimSpace(cfg.SNS.TopicARN),
			Region:   strings.TrimSpace(cfg.SNS.Region),
		}
		if c.TopicARN == "" || c.Region == "" {
			return cfg, fmt.Errorf("sns.topic_arn and sns.region are required for sink %q", cfg.ID)
		}
		cfg.SNS = &c
	default:
		return cfg, fmt.Errorf("unsupported sink type %q for sink %q", cfg.Type, cfg.ID)
	}
	return cfg, nil
}

func normalizeOperations(ops []string) ([]string, error) {
	if len(ops) == 0 {
		return nil, nil
	}
	out := make([]string, 0, len(ops))
	for _, op := range ops {
		op = strings.ToLower(strings.TrimSpace(op))
		if !slices.Contains(knownOperations, op) {
			return nil, fmt.Errorf("unknown operation %q (known: %s)", op, strings.Join(knownOperations, ", "))
		}
		if !slices.Contains(out, op) {
			out = append(out, op)
		}
	}
	return out, nil
}

func trimHeaders(headers map[string]string) map[string]string {
	out := make(map[string]string, len(headers))
	for k, v := range headers {
		k, v = strings.TrimSpace(k), strings.TrimSpace(v)
		if k != "" && v != "" {
			out[k] = v
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
