package wms

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"lavka-stub/internal/domain"
)

const productsPath = "/api/external/products/v1/products"

// FirstCursor starts a full walk of the product feed.
const FirstCursor = "1"

var ErrUnexpectedStatus = errors.New("wms: unexpected status")

type Catalog interface {
	// FetchProducts returns one page of the feed. An empty Page.Cursor means
	// the feed is exhausted.
	FetchProducts(ctx context.Context, cursor string) (Page, error)
}

type Page struct {
	Products []domain.Product
	Cursor   string
}

type Options struct {
	BaseURL            string
	Token              string
	Locale             string
	InsecureSkipVerify bool
	Timeout            time.Duration
}

type catalogClient struct {
	baseURL string
	token   string
	locale  string
	http    *http.Client
}

func NewCatalog(opts Options) Catalog {
	transport := http.DefaultTransport.(*http.Transport).Clone()
	if opts.InsecureSkipVerify {
		transport.TLSClientConfig = &tls.Config{InsecureSkipVerify: true} //nolint:gosec
	}
	return &catalogClient{
		baseURL: strings.TrimRight(opts.BaseURL, "/"),
		token:   opts.Token,
		locale:  opts.Locale,
		http:    &http.Client{Transport: transport, Timeout: opts.Timeout},
	}
}

type pageRequest struct {
	Cursor string `json:"cursor"`
	Locale string `json:"locale"`
}

type pageResponse struct {
	Products []struct {
		ProductID  string `json:"product_id"`
		ExternalID string `json:"external_id"`
	} `json:"products"`
	Cursor *string `json:"cursor"`
}

func (c *catalogClient) FetchProducts(ctx context.Context, cursor string) (Page, error) {
	body, err := json.Marshal(pageRequest{Cursor: cursor, Locale: c.locale})
	if err != nil {
		return Page{}, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+productsPath, bytes.NewReader(body))
	if err != nil {
		return Page{}, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.token)

	resp, err := c.http.Do(req)
	if err != nil {
		return Page{}, fmt.Errorf("fetch products (cursor %q): %w", cursor, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return Page{}, fmt.Errorf("%w %d: %s", ErrUnexpectedStatus, resp.StatusCode, bytes.TrimSpace(snippet))
	}

	var out pageResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return Page{}, fmt.Errorf("decode products page: %w", err)
	}

	page := Page{Products: make([]domain.Product, 0, len(out.Products))}
	for _, p := range out.Products {
		page.Products = append(page.Products, domain.Product{ProductID: p.ProductID, ExternalID: p.ExternalID})
	}
	if out.Cursor != nil {
		page.Cursor = *out.Cursor
	}
	return page, nil
}
