// Package price quotes crypto prices from the Binance public ticker API.
package price

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

const (
	DefaultAPIBase = "https://api.binance.com"
	DefaultTimeout = 10 * time.Second
)

// Client looks up spot prices for a symbol, preferring the EUR pair and
// falling back to USDT when Binance does not list one.
type Client struct {
	http    *http.Client
	baseURL string
	log     *slog.Logger
}

type Config struct {
	APIBase string
	Timeout time.Duration
	Logger  *slog.Logger
}

func New(cfg Config) *Client {
	base := strings.TrimRight(strings.TrimSpace(cfg.APIBase), "/")
	if base == "" {
		base = DefaultAPIBase
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		http:    &http.Client{Timeout: timeout},
		baseURL: base,
		log:     logger,
	}
}

type tickerResponse struct {
	Symbol string `json:"symbol"`
	Price  string `json:"price"`
}

// Quote returns the user-facing price text for symbol. Failures are folded
// into chat-ready messages; Quote never returns an error to the caller.
func (c *Client) Quote(ctx context.Context, symbol string) string {
	symbol = strings.ToUpper(strings.TrimSpace(symbol))
	if symbol == "" {
		return "⚠️ Moeda '' não encontrada."
	}

	if value, ok, err := c.tickerPrice(ctx, symbol+"EUR"); err != nil {
		return c.classify(symbol, err)
	} else if ok {
		return fmt.Sprintf("💶 %s: %.8f EUR", symbol, value)
	}

	if value, ok, err := c.tickerPrice(ctx, symbol+"USDT"); err != nil {
		return c.classify(symbol, err)
	} else if ok {
		return fmt.Sprintf("💲 %s: %.8f USD", symbol, value)
	}

	return fmt.Sprintf("⚠️ Moeda '%s' não encontrada.", symbol)
}

// tickerPrice fetches one trading pair. ok is false when Binance does not
// know the pair; err is reserved for transport and decoding failures.
func (c *Client) tickerPrice(ctx context.Context, pair string) (float64, bool, error) {
	endpoint := fmt.Sprintf("%s/api/v3/ticker/price?symbol=%s", c.baseURL, url.QueryEscape(pair))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return 0, false, fmt.Errorf("price: build request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return 0, false, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return 0, false, fmt.Errorf("price: read response: %w", err)
	}

	// Binance answers 400 with an error payload for unknown pairs.
	if resp.StatusCode != http.StatusOK {
		c.log.Debug("ticker lookup miss", "pair", pair, "status", resp.StatusCode)
		return 0, false, nil
	}

	var ticker tickerResponse
	if err := json.Unmarshal(body, &ticker); err != nil {
		return 0, false, fmt.Errorf("price: decode response: %w", err)
	}
	if ticker.Price == "" {
		return 0, false, nil
	}

	value, err := strconv.ParseFloat(ticker.Price, 64)
	if err != nil {
		return 0, false, fmt.Errorf("price: parse %q: %w", ticker.Price, err)
	}
	return value, true, nil
}

func (c *Client) classify(symbol string, err error) string {
	c.log.Warn("price lookup failed", "symbol", symbol, "error", err)

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() || errors.Is(err, context.DeadlineExceeded) {
		return "⏳ Timeout ao contactar a Binance. Tente novamente mais tarde."
	}
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return "❌ Erro de rede ao tentar contactar a Binance."
	}
	return fmt.Sprintf("⚠️ Ocorreu um erro: %v", err)
}
