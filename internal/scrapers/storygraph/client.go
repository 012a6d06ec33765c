package storygraph

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"storygraph-backend/internal/components/assert"
	"storygraph-backend/internal/components/telemetry"
	"time"

	"github.com/go-resty/resty/v2"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"golang.org/x/net/html/charset"
)

var tracer = otel.Tracer("storygraph-backend/internal/scrapers/storygraph")

const (
	report_fetcher_get  = "fetcher.get"
	report_fetcher_post = "fetcher.post"
)

const DefaultBaseUrl = "https://app.thestorygraph.com"

// Fetcher retrieves raw page content from the site. Implementations return a
// *RequestError for any transport failure or non-2xx response.
type Fetcher interface {
	Get(ctx context.Context, path string, query url.Values) ([]byte, error)
	Post(ctx context.Context, path string, form map[string]string) ([]byte, error)
}

type ClientOptions struct {
	BaseUrl   string
	Cookies   map[string]string
	Timeout   time.Duration
	UserAgent string
}

type restyFetcher struct {
	http *resty.Client
	tel  telemetry.API
}

// NewFetcher creates a Fetcher backed by resty. Cookies are installed once on
// the client's jar and sent with every request to the base url.
func NewFetcher(opts ClientOptions, tel telemetry.API) (Fetcher, error) {
	assert.NotNil(tel)
	tel = telemetry.NewScopedAPI("storygraph", tel)

	if opts.BaseUrl == "" {
		opts.BaseUrl = DefaultBaseUrl
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 30 * time.Second
	}
	if opts.UserAgent == "" {
		opts.UserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/123.0.0.0 Safari/537.36"
	}

	baseUrl, err := url.Parse(opts.BaseUrl)
	if err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}

	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, err
	}
	cookies := make([]*http.Cookie, 0, len(opts.Cookies))
	for name, value := range opts.Cookies {
		cookies = append(cookies, &http.Cookie{Name: name, Value: value})
	}
	jar.SetCookies(baseUrl, cookies)

	client := resty.New()
	client.SetBaseURL(opts.BaseUrl)
	client.SetCookieJar(jar)
	client.SetHeader("user-agent", opts.UserAgent)
	client.SetRedirectPolicy(resty.DomainCheckRedirectPolicy(baseUrl.Hostname()))
	client.SetTimeout(opts.Timeout)

	telemetry.InstrumentResty(client, tel)

	return restyFetcher{http: client, tel: tel}, nil
}

func (f restyFetcher) Get(ctx context.Context, path string, query url.Values) ([]byte, error) {
	ctx, span := tracer.Start(ctx, "Get")
	defer span.End()
	span.SetAttributes(
		attribute.String("path", path),
		attribute.String("query", query.Encode()),
	)

	res, err := f.http.R().
		SetContext(ctx).
		SetQueryParamsFromValues(query).
		Get(path)
	body, err := f.handle(res, err)
	if err != nil {
		f.tel.ReportWarning(report_fetcher_get, err, path)
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	return body, nil
}

func (f restyFetcher) Post(ctx context.Context, path string, form map[string]string) ([]byte, error) {
	ctx, span := tracer.Start(ctx, "Post")
	defer span.End()
	span.SetAttributes(attribute.String("path", path))

	res, err := f.http.R().
		SetContext(ctx).
		SetFormData(form).
		Post(path)
	body, err := f.handle(res, err)
	if err != nil {
		f.tel.ReportWarning(report_fetcher_post, err, path)
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	return body, nil
}

func (f restyFetcher) handle(res *resty.Response, err error) ([]byte, error) {
	if err != nil {
		return nil, &RequestError{Err: err}
	}
	if !res.IsSuccess() {
		return nil, &RequestError{
			Err: fmt.Errorf("%s %s: %s", res.Request.Method, res.Request.URL, res.Status()),
		}
	}
	body, err := decodeBody(res.Body(), res.Header().Get("content-type"))
	if err != nil {
		return nil, &RequestError{Err: fmt.Errorf("decode body: %w", err)}
	}
	return body, nil
}

// decodeBody converts a response body to UTF-8 using the charset named in its
// content type, sniffing the content when none is given.
func decodeBody(body []byte, contentType string) ([]byte, error) {
	reader, err := charset.NewReader(bytes.NewReader(body), contentType)
	if err != nil {
		return nil, err
	}
	return io.ReadAll(reader)
}
