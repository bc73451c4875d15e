package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"fxreturns/internal/config"
	apperrors "fxreturns/internal/errors"
	"fxreturns/internal/fx"
	"fxreturns/internal/snapshot"
	"fxreturns/internal/timeseries"
)

// priceField is the provider field pulled for every ticker. Snapshot column
// names carry it as a suffix, which is what the engine's normalization keys
// on.
const priceField = "PX_LAST"

// historyResponse is the provider's history payload. Series values are
// positional against Dates; null marks a date where the ticker had no print.
type historyResponse struct {
	Dates  []string              `json:"dates"`
	Series map[string][]*float64 `json:"series"`
}

// Client talks to the market-data service's history API. Requests are rate
// limited client-side; the terminal backend throttles hard otherwise.
type Client struct {
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
	logger     *slog.Logger
}

// NewClient builds a history client from the provider configuration.
func NewClient(cfg config.ProviderConfig, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		httpClient: &http.Client{Timeout: cfg.Timeout},
		limiter:    rate.NewLimiter(rate.Limit(cfg.RateLimitRPS), cfg.RateBurst),
		logger:     logger,
	}
}

// History pulls daily history for the given tickers up to end (inclusive,
// zero means no bound) and returns it as a raw frame. Columns are named
// ticker plus the price-field suffix; series gaps become missing values.
func (c *Client) History(ctx context.Context, tickers []string, end time.Time) (*timeseries.Frame, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	params := url.Values{}
	params.Set("tickers", strings.Join(tickers, ","))
	params.Set("field", priceField)
	if !end.IsZero() {
		params.Set("end", end.Format(snapshot.DateLayout))
	}

	endpoint := c.baseURL + "/v1/history?" + params.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, apperrors.NewAcquisitionError("failed to build history request", err)
	}
	requestID := uuid.New().String()
	req.Header.Set("X-Request-ID", requestID)
	req.Header.Set("Accept", "application/json")

	c.logger.DebugContext(ctx, "requesting history",
		slog.String("request_id", requestID),
		slog.Int("ticker_count", len(tickers)))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, apperrors.NewAcquisitionError("history request failed", err).WithContext("request_id", requestID)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, apperrors.NewAcquisitionError(
			fmt.Sprintf("history request returned status %d", resp.StatusCode), nil).
			WithContext("request_id", requestID).
			WithContext("body", strings.TrimSpace(string(body)))
	}

	var payload historyResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, apperrors.NewParsingError("failed to decode history response", err).WithContext("request_id", requestID)
	}
	return frameFromHistory(payload)
}

// MarketData bundles one acquisition run's raw tables.
type MarketData struct {
	Spot  *timeseries.Frame
	Rates *timeseries.Frame
}

// FetchMarketData pulls the spot and interest-rate feeds for the universe
// concurrently. Either pull failing fails the whole acquisition.
func (c *Client) FetchMarketData(ctx context.Context, u fx.Universe, end time.Time) (*MarketData, error) {
	var md MarketData
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		frame, err := c.History(ctx, SpotTickers(u), end)
		if err != nil {
			return err
		}
		md.Spot = frame
		return nil
	})
	g.Go(func() error {
		frame, err := c.History(ctx, RateTickers(u), end)
		if err != nil {
			return err
		}
		md.Rates = frame
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &md, nil
}

func frameFromHistory(payload historyResponse) (*timeseries.Frame, error) {
	dates := make([]time.Time, len(payload.Dates))
	for i, s := range payload.Dates {
		d, err := snapshot.ParseDate(s)
		if err != nil {
			return nil, apperrors.NewParsingError(fmt.Sprintf("history date %q is invalid", s), err)
		}
		dates[i] = d
	}

	// Sort tickers so identical payloads always produce identical snapshots.
	tickers := make([]string, 0, len(payload.Series))
	for ticker := range payload.Series {
		tickers = append(tickers, ticker)
	}
	sort.Strings(tickers)

	columns := make([]string, 0, len(tickers))
	data := make(map[string][]float64, len(tickers))
	for _, ticker := range tickers {
		values := payload.Series[ticker]
		if len(values) != len(dates) {
			return nil, apperrors.NewParsingError(
				fmt.Sprintf("series %q has %d values for %d dates", ticker, len(values), len(dates)), nil)
		}
		col := make([]float64, len(values))
		for i, v := range values {
			if v == nil {
				col[i] = timeseries.Missing()
			} else {
				col[i] = *v
			}
		}
		name := ticker + "_" + priceField
		columns = append(columns, name)
		data[name] = col
	}

	frame, err := timeseries.New(dates, columns, data)
	if err != nil {
		return nil, apperrors.NewValidationError(err.Error())
	}
	return frame, nil
}
