package customers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/samvad-hq/customers-demo/internal/domain"
	"github.com/samvad-hq/customers-demo/pkg/httpclient"
)

const (
	// ExpectedStatus is the only status accepted from the customers endpoint.
	// 201 and other 2xx codes are rejected like any other status.
	ExpectedStatus = http.StatusOK

	customersPath = "customers"
)

// Client talks to the customers REST resource under a base URL.
type Client struct {
	http    httpclient.Client
	baseURL string
	log     Logger
}

// NewClient builds a customers client. baseURL is e.g. http://localhost:8080.
func NewClient(client httpclient.Client, baseURL string, log Logger) (*Client, error) {
	if client == nil {
		return nil, errors.New("http client must not be nil")
	}
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		return nil, errors.New("base url is empty")
	}
	return &Client{
		http:    client,
		baseURL: baseURL,
		log:     ensureLogger(log),
	}, nil
}

// GetCustomer fetches /customers/<id> and decodes the body.
func (c *Client) GetCustomer(ctx context.Context, id int) (Document, error) {
	if id <= 0 {
		return Document{}, fmt.Errorf("invalid customer id %d", id)
	}
	endpoint := c.endpoint(customersPath, strconv.Itoa(id))
	resp, err := c.http.Get(ctx, endpoint, jsonHeaders())
	return c.decode(http.MethodGet, endpoint, resp, err)
}

// CreateCustomer posts the full record to /customers and decodes the server's reply.
func (c *Client) CreateCustomer(ctx context.Context, cust domain.Customer) (Document, error) {
	endpoint := c.endpoint(customersPath)
	resp, err := c.http.Post(ctx, endpoint, jsonHeaders(), cust)
	return c.decode(http.MethodPost, endpoint, resp, err)
}

// ListCustomers fetches the whole /customers collection.
func (c *Client) ListCustomers(ctx context.Context) (Document, error) {
	endpoint := c.endpoint(customersPath)
	resp, err := c.http.Get(ctx, endpoint, jsonHeaders())
	return c.decode(http.MethodGet, endpoint, resp, err)
}

// FindByFirstName fetches customers whose first name matches, case-insensitively on the server.
func (c *Client) FindByFirstName(ctx context.Context, firstName string) (Document, error) {
	firstName = strings.TrimSpace(firstName)
	if firstName == "" {
		return Document{}, errors.New("first name is empty")
	}
	endpoint := c.endpoint(customersPath, "firstname", firstName)
	resp, err := c.http.Get(ctx, endpoint, jsonHeaders())
	return c.decode(http.MethodGet, endpoint, resp, err)
}

// UpdateCustomer replaces /customers/<id>. A body naming another id is rejected before sending.
func (c *Client) UpdateCustomer(ctx context.Context, id int, cust domain.Customer) (Document, error) {
	if id <= 0 {
		return Document{}, fmt.Errorf("invalid customer id %d", id)
	}
	if cust.ID != 0 && cust.ID != id {
		return Document{}, fmt.Errorf("update customer %d: %w (body id %d)", id, ErrIDMismatch, cust.ID)
	}
	cust.ID = id
	endpoint := c.endpoint(customersPath, strconv.Itoa(id))
	resp, err := c.http.Put(ctx, endpoint, jsonHeaders(), cust)
	return c.decode(http.MethodPut, endpoint, resp, err)
}

// DeleteCustomer removes /customers/<id> and returns the server's plain-text message.
func (c *Client) DeleteCustomer(ctx context.Context, id int) (string, error) {
	if id <= 0 {
		return "", fmt.Errorf("invalid customer id %d", id)
	}
	endpoint := c.endpoint(customersPath, strconv.Itoa(id))
	resp, err := c.http.Delete(ctx, endpoint, jsonHeaders())
	if err := c.check(http.MethodDelete, endpoint, resp, err); err != nil {
		return "", err
	}
	return strings.TrimSpace(string(resp.Body())), nil
}

func (c *Client) decode(method, endpoint string, resp httpclient.Response, err error) (Document, error) {
	if err := c.check(method, endpoint, resp, err); err != nil {
		return Document{}, err
	}
	doc, err := decodeDocument(resp.Body())
	if err != nil {
		return Document{}, fmt.Errorf("%s %s: %w", method, endpoint, err)
	}
	doc.Method = method
	doc.URL = endpoint
	doc.StatusCode = resp.StatusCode()
	return doc, nil
}

func (c *Client) check(method, endpoint string, resp httpclient.Response, err error) error {
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, endpoint, err)
	}
	c.log.DebugObj("customers response received", "response_meta", map[string]any{
		"method":      method,
		"url":         endpoint,
		"status_code": resp.StatusCode(),
		"bytes":       len(resp.Body()),
	})
	if resp.StatusCode() != ExpectedStatus {
		return &StatusError{
			Method: method,
			URL:    endpoint,
			Got:    resp.StatusCode(),
			Want:   ExpectedStatus,
			Detail: describeBody(resp.Header(), resp.Body()),
		}
	}
	return nil
}

func (c *Client) endpoint(segments ...string) string {
	escaped := make([]string, len(segments))
	for i, s := range segments {
		escaped[i] = url.PathEscape(s)
	}
	return c.baseURL + "/" + strings.Join(escaped, "/")
}

func jsonHeaders() map[string]string {
	return map[string]string{"Content-Type": "application/json"}
}
