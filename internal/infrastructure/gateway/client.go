package gateway

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"credtrack/internal/config"

	"github.com/go-resty/resty/v2"
)

var ErrNotFound = errors.New("content not found on gateway")

// Client resolves content-addressed attachment pointers (CIDs) through a
// public gateway. Attachments live outside the primary store; only the
// pointer is persisted.
type Client struct {
	http    *resty.Client
	baseURL string
}

func NewClient(cfg config.GatewayConfig) *Client {
	base := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if base == "" {
		return &Client{}
	}

	rc := resty.New().
		SetBaseURL(base).
		SetTimeout(cfg.Timeout).
		SetRetryCount(0)

	return &Client{http: rc, baseURL: base}
}

// Enabled reports whether a gateway is configured; when false, CIDs are
// stored without verification.
func (c *Client) Enabled() bool {
	return c != nil && c.http != nil
}

// Stat checks that the gateway can serve the CID.
func (c *Client) Stat(ctx context.Context, cid string) error {
	if !c.Enabled() {
		return nil
	}
	cid = strings.TrimSpace(cid)
	if cid == "" {
		return ErrNotFound
	}

	resp, err := c.http.R().SetContext(ctx).Head("/ipfs/" + cid)
	if err != nil {
		return err
	}
	if resp.StatusCode() == 404 {
		return ErrNotFound
	}
	if resp.IsError() {
		return fmt.Errorf("gateway returned %d for %s", resp.StatusCode(), cid)
	}
	return nil
}

// ResolveURL builds the public URL for a stored pointer. Empty when no
// gateway is configured.
func (c *Client) ResolveURL(cid string) string {
	if !c.Enabled() || strings.TrimSpace(cid) == "" {
		return ""
	}
	return c.baseURL + "/ipfs/" + cid
}
