// Package nominatim geocodes free-form addresses via the OSM Nominatim API.
package nominatim

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/dailyvegies/api/internal/advisory/entity"
	"github.com/dailyvegies/api/internal/pkg/goerror"
	"github.com/dailyvegies/api/internal/pkg/instrument"
)

// userAgent identifies the application; Nominatim rejects anonymous clients.
const userAgent = "dailyvegies-api/1.0"

type Client struct {
	httpc   *http.Client
	baseURL string
	ins     instrument.Instrumentation
}

func NewClient(httpc *http.Client, baseURL string, ins instrument.Instrumentation) *Client {
	return &Client{httpc: httpc, baseURL: baseURL, ins: ins}
}

type searchResult struct {
	DisplayName string `json:"display_name"`
	Lat         string `json:"lat"`
	Lon         string `json:"lon"`
}

// Search resolves a query to its best-ranked place.
// Returns goerror.ErrNotFound when the provider has no match.
func (c *Client) Search(ctx context.Context, query string) (p *entity.Place, err error) {
	ctx, span := c.startSpan(ctx, "Search")
	defer func() { c.endSpan(span, err) }()

	q := url.Values{}
	q.Set("q", query)
	q.Set("format", "json")
	q.Set("limit", "1")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/search?"+q.Encode(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", userAgent)

	res, err := c.httpc.Do(req)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("nominatim: unexpected status %d", res.StatusCode)
	}

	var results []searchResult
	if err := json.NewDecoder(res.Body).Decode(&results); err != nil {
		return nil, fmt.Errorf("nominatim: decode response: %w", err)
	}

	if len(results) == 0 {
		return nil, goerror.ErrNotFound
	}

	lat, err := strconv.ParseFloat(results[0].Lat, 64)
	if err != nil {
		return nil, fmt.Errorf("nominatim: parse lat: %w", err)
	}

	lon, err := strconv.ParseFloat(results[0].Lon, 64)
	if err != nil {
		return nil, fmt.Errorf("nominatim: parse lon: %w", err)
	}

	return &entity.Place{Name: results[0].DisplayName, Lat: lat, Lon: lon}, nil
}

func (c *Client) startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	return c.ins.Tracer("advisory.outbound.nominatim").Start(ctx, name)
}

func (c *Client) endSpan(span trace.Span, err error) {
	if err != nil && !errors.Is(err, goerror.ErrNotFound) {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}

	span.End()
}
