// Package sentinel renders NDVI imagery through the Sentinel Hub WMS API.
package sentinel

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/dailyvegies/api/internal/pkg/instrument"
)

// bboxDelta is the half-width in degrees of the rendered area.
const bboxDelta = 0.01

type Client struct {
	httpc      *http.Client
	baseURL    string
	instanceID string
	ins        instrument.Instrumentation
}

func NewClient(httpc *http.Client, baseURL, instanceID string, ins instrument.Instrumentation) *Client {
	return &Client{httpc: httpc, baseURL: baseURL, instanceID: instanceID, ins: ins}
}

// NDVI renders a 512x512 PNG of the vegetation index around the coordinate.
func (c *Client) NDVI(ctx context.Context, lat, lon float64) (img []byte, err error) {
	ctx, span := c.startSpan(ctx, "NDVI")
	defer func() { c.endSpan(span, err) }()

	bbox := fmt.Sprintf("%s,%s,%s,%s",
		coord(lat-bboxDelta), coord(lon-bboxDelta),
		coord(lat+bboxDelta), coord(lon+bboxDelta))

	q := url.Values{}
	q.Set("SERVICE", "WMS")
	q.Set("REQUEST", "GetMap")
	q.Set("LAYERS", "NDVI")
	q.Set("MAXCC", "20")
	q.Set("WIDTH", "512")
	q.Set("HEIGHT", "512")
	q.Set("FORMAT", "image/png")
	q.Set("CRS", "EPSG:4326")
	q.Set("BBOX", bbox)

	endpoint := fmt.Sprintf("%s/ogc/wms/%s?%s", c.baseURL, c.instanceID, q.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}

	res, err := c.httpc.Do(req)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("sentinel: unexpected status %d", res.StatusCode)
	}

	img, err = io.ReadAll(res.Body)
	if err != nil {
		return nil, fmt.Errorf("sentinel: read image: %w", err)
	}

	return img, nil
}

func coord(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func (c *Client) startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	return c.ins.Tracer("advisory.outbound.sentinel").Start(ctx, name)
}

func (c *Client) endSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}

	span.End()
}
