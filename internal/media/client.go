package media

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/sayuryunur/storefront/internal/config"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

var (
	ErrForeignImage = errors.New("image is not hosted in the store bucket")
	ErrInvalidURL   = errors.New("image url is not a storage object url")
)

// Client removes product images from Firebase Storage through its REST API.
type Client struct {
	httpClient  *http.Client
	baseURL     string
	storageHost string
	bucket      string
	token       string
}

type Option func(*Client)

func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// WithBaseURL sends requests somewhere other than https://<storage host>.
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		if trimmed := strings.TrimSpace(baseURL); trimmed != "" {
			c.baseURL = strings.TrimRight(trimmed, "/")
		}
	}
}

func NewClient(cfg config.Media, opts ...Option) *Client {
	client := &Client{
		httpClient: &http.Client{
			Timeout:   10 * time.Second,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
		baseURL:     "https://" + cfg.StorageHost,
		storageHost: cfg.StorageHost,
		bucket:      cfg.Bucket,
		token:       cfg.AccessToken,
	}

	for _, opt := range opts {
		if opt != nil {
			opt(client)
		}
	}

	return client
}

// ObjectPath extracts the object name from a download URL of the form
// https://<host>/v0/b/<bucket>/o/<escaped name>?alt=media&token=...
func (c *Client) ObjectPath(imageURL string) (string, error) {

	u, err := url.Parse(imageURL)
	if err != nil || u.Host == "" {
		return "", ErrInvalidURL
	}

	if !strings.EqualFold(u.Host, c.storageHost) {
		return "", ErrForeignImage
	}

	prefix := "/v0/b/" + c.bucket + "/o/"

	escaped := u.EscapedPath()
	if !strings.HasPrefix(escaped, prefix) {
		return "", ErrForeignImage
	}

	name, err := url.PathUnescape(strings.TrimPrefix(escaped, prefix))
	if err != nil || name == "" {
		return "", ErrInvalidURL
	}

	return name, nil
}

// Remove deletes the object behind imageURL. An object that is already gone
// counts as removed.
func (c *Client) Remove(ctx context.Context, imageURL string) error {

	name, err := c.ObjectPath(imageURL)
	if err != nil {
		return err
	}

	endpoint := c.baseURL + "/v0/b/" + c.bucket + "/o/" + url.PathEscape(name)

	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, endpoint, nil)
	if err != nil {
		return fmt.Errorf("build delete request: %w", err)
	}

	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("delete image: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound || resp.StatusCode < 300 {
		return nil
	}

	body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))

	return fmt.Errorf("delete image: status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
}
