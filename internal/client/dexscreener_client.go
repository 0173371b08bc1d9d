package client

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"momentum/internal/app/port"
	"momentum/internal/entity"
	"momentum/internal/pkg/metrics"

	jsoniter "github.com/json-iterator/go"
	"github.com/valyala/fasthttp"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const pairsPath = "/latest/dex/pairs"

// DEXScreenerClient fetches pair data from the DEX Screener API.
type DEXScreenerClient struct {
	client  *fasthttp.Client
	baseURL string
	timeout time.Duration
	limiter *rate.Limiter
	logger  *zap.Logger
}

var _ port.PriceClient = (*DEXScreenerClient)(nil)

// NewDEXScreenerClient creates a client. requestsPerMinute <= 0 disables throttling.
func NewDEXScreenerClient(baseURL string, timeout time.Duration, requestsPerMinute int, logger *zap.Logger) *DEXScreenerClient {
	limiter := rate.NewLimiter(rate.Inf, 1)
	if requestsPerMinute > 0 {
		limiter = rate.NewLimiter(rate.Limit(float64(requestsPerMinute)/60.0), 1)
	}
	return &DEXScreenerClient{
		client:  &fasthttp.Client{Name: "momentum"},
		baseURL: strings.TrimRight(baseURL, "/"),
		timeout: timeout,
		limiter: limiter,
		logger:  logger.Named("DEXScreenerClient"),
	}
}

// PairURL returns the API URL of one pair.
func (c *DEXScreenerClient) PairURL(chain, pairAddress string) string {
	return fmt.Sprintf("%s%s/%s/%s", c.baseURL, pairsPath, url.PathEscape(chain), url.PathEscape(pairAddress))
}

// GetPairsRaw implements port.PriceClient. A non-200 status is an error.
func (c *DEXScreenerClient) GetPairsRaw(ctx context.Context, chain, pairAddress string) ([]byte, error) {
	requestURL := c.PairURL(chain, pairAddress)

	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("waiting for rate limiter: %w", err)
	}

	c.logger.Debug("Requesting pair from DEX Screener", zap.String("url", requestURL))

	req := fasthttp.AcquireRequest()
	defer fasthttp.ReleaseRequest(req)
	req.SetRequestURI(requestURL)
	req.Header.SetMethod(fasthttp.MethodGet)
	req.Header.Set("Accept", "application/json")

	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseResponse(resp)

	var err error
	if deadline, ok := ctx.Deadline(); ok {
		err = c.client.DoDeadline(req, resp, deadline)
	} else {
		err = c.client.DoTimeout(req, resp, c.timeout)
	}
	if err != nil {
		metrics.PriceAPIRequests.WithLabelValues("error").Inc()
		c.logger.Error("Failed to execute request to DEX Screener", zap.String("url", requestURL), zap.Error(err))
		return nil, fmt.Errorf("failed to execute request to %s: %w", requestURL, err)
	}

	status := resp.StatusCode()
	metrics.PriceAPIRequests.WithLabelValues(strconv.Itoa(status)).Inc()
	if status != fasthttp.StatusOK {
		c.logger.Error("DEX Screener API request failed",
			zap.String("url", requestURL),
			zap.Int("statusCode", status),
			zap.ByteString("responseBody", resp.Body()),
		)
		return nil, fmt.Errorf("failed to fetch data from %s: status code %d", requestURL, status)
	}

	// resp is released on return.
	body := make([]byte, len(resp.Body()))
	copy(body, resp.Body())
	return body, nil
}

// GetPairs implements port.PriceClient.
func (c *DEXScreenerClient) GetPairs(ctx context.Context, chain, pairAddress string) (*entity.PairsResponse, error) {
	body, err := c.GetPairsRaw(ctx, chain, pairAddress)
	if err != nil {
		return nil, err
	}

	var out entity.PairsResponse
	if err := json.Unmarshal(body, &out); err != nil {
		c.logger.Error("Failed to unmarshal DEX Screener response",
			zap.String("chain", chain),
			zap.String("pairAddress", pairAddress),
			zap.ByteString("responseBody", body),
			zap.Error(err))
		return nil, fmt.Errorf("failed to unmarshal DEX Screener response for %s/%s: %w", chain, pairAddress, err)
	}
	if len(out.Pairs) == 0 {
		c.logger.Warn("DEX Screener returned 200 OK with 0 pairs",
			zap.String("chain", chain),
			zap.String("pairAddress", pairAddress))
	}
	return &out, nil
}
