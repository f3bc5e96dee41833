package athletics

import (
	"bytes"
	"context"
	"fmt"
	"net/http/cookiejar"
	"sync"
	"time"
	"outreach-backend/lib/telemetry"
	"outreach-backend/lib/timezone"

	cloudflarebp "github.com/DaRealFreak/cloudflare-bp-go"
	"github.com/PuerkitoBio/goquery"
	"github.com/go-resty/resty/v2"
	random "github.com/mazen160/go-random"
)

// Fetcher fetches one page and parses it. The production implementation
// is Client; tests substitute canned documents.
type Fetcher interface {
	Get(ctx context.Context, url string) (*goquery.Document, error)
}

// FetchError marks a transient failure (timeout, HTTP error, anti-bot
// block) as opposed to a page that fetched fine but held no data.
type FetchError struct {
	URL        string
	StatusCode int
	Err        error
}

func (e *FetchError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("fetch %s: %s", e.URL, e.Err.Error())
	}
	return fmt.Sprintf("fetch %s: status %d", e.URL, e.StatusCode)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

type ClientOptions struct {
	// how long a single page load may block, generous because some
	// athletics sites render slowly
	Timeout time.Duration
	// minimum pause between consecutive fetches, any host
	MinDelay time.Duration
	// upper bound of random extra delay stacked on MinDelay
	Jitter time.Duration
}

// Client is a rate-limited sequential page fetcher. All fetches go
// through a single gate on purpose: the pipeline respects implicit
// rate limits of third-party athletics sites.
type Client struct {
	http     *resty.Client
	minDelay time.Duration
	jitter   time.Duration

	mu        sync.Mutex
	lastFetch time.Time
}

func NewClient(opts ClientOptions) *Client {
	if opts.Timeout == 0 {
		opts.Timeout = time.Second * 30
	}
	if opts.MinDelay == 0 {
		opts.MinDelay = time.Second * 2
	}

	client := resty.New()
	jar, err := cookiejar.New(nil)
	if err == nil {
		client.SetCookieJar(jar)
	}
	client.GetClient().Transport = cloudflarebp.AddCloudFlareByPass(client.GetClient().Transport)
	client.SetHeader("user-agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/123.0.0.0 Safari/537.36")
	client.SetTimeout(opts.Timeout)

	telemetry.InstrumentResty(client, "scrapers/athletics/http")

	return &Client{
		http:     client,
		minDelay: opts.MinDelay,
		jitter:   opts.Jitter,
	}
}

func (c *Client) throttle(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	wait := c.minDelay
	if c.jitter > 0 {
		extra, err := random.IntRange(0, int(c.jitter.Milliseconds())+1)
		if err == nil {
			wait += time.Duration(extra) * time.Millisecond
		}
	}

	elapsed := timezone.Now().Sub(c.lastFetch)
	if !c.lastFetch.IsZero() && elapsed < wait {
		select {
		case <-time.After(wait - elapsed):
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	c.lastFetch = timezone.Now()
	return nil
}

func (c *Client) Get(ctx context.Context, url string) (*goquery.Document, error) {
	err := c.throttle(ctx)
	if err != nil {
		return nil, err
	}

	res, err := c.http.R().
		SetContext(ctx).
		Get(url)
	if err != nil {
		return nil, &FetchError{URL: url, Err: err}
	}
	if res.StatusCode() >= 400 {
		return nil, &FetchError{URL: url, StatusCode: res.StatusCode()}
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewBuffer(res.Body()))
	if err != nil {
		return nil, &FetchError{URL: url, Err: err}
	}
	return doc, nil
}
