package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"pocketbook/internal/config"

	"github.com/shopspring/decimal"
)

var (
	ErrConversionFailed    = errors.New("currency conversion failed")
	ErrUnsupportedCurrency = errors.New("unsupported currency code")
)

// convertResponse is the exchange-rate collaborator's reply shape
type convertResponse struct {
	Success bool    `json:"success"`
	Result  float64 `json:"result"`
}

// CurrencyService normalizes amounts into the base currency through an
// external rate API. Conversion happens before the transactional write, so a
// slow or failed call never holds a store-level lock. Failed conversions are
// not retried; each call scales money and is treated as at-most-once.
type CurrencyService struct {
	baseURL        string
	apiKey         string
	baseCurrency   string
	client         *http.Client
	circuitBreaker CircuitBreakerInterface
	metrics        MetricsRecorderInterface
	logger         *slog.Logger
}

// NewCurrencyService creates a currency service from exchange configuration
func NewCurrencyService(cfg *config.ExchangeConfig, circuitBreaker CircuitBreakerInterface, metrics MetricsRecorderInterface, logger *slog.Logger) CurrencyServiceInterface {
	return &CurrencyService{
		baseURL:        strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:         cfg.APIKey,
		baseCurrency:   cfg.BaseCurrency,
		client:         &http.Client{Timeout: cfg.Timeout},
		circuitBreaker: circuitBreaker,
		metrics:        metrics,
		logger:         logger,
	}
}

// BaseCurrency returns the currency every stored amount is held in
func (cs *CurrencyService) BaseCurrency() string {
	return cs.baseCurrency
}

// Normalize converts amount from fromCurrency into the base currency, rounded
// to 2 decimal places. A same-currency call short-circuits without any
// network traffic.
func (cs *CurrencyService) Normalize(ctx context.Context, amount decimal.Decimal, fromCurrency string) (decimal.Decimal, error) {
	from := strings.ToUpper(strings.TrimSpace(fromCurrency))
	if from == "" {
		from = cs.baseCurrency
	}
	if len(from) != 3 {
		return decimal.Zero, fmt.Errorf("%w: %q", ErrUnsupportedCurrency, fromCurrency)
	}

	if from == cs.baseCurrency {
		return amount, nil
	}

	if cs.circuitBreaker.IsOpen() {
		cs.metrics.IncrementCounter("currency.conversion.rejected", map[string]string{"reason": "circuit_open"})
		return decimal.Zero, fmt.Errorf("%w: %v", ErrConversionFailed, ErrCircuitBreakerOpen)
	}

	start := time.Now()
	converted, err := cs.convert(ctx, amount, from)
	cs.metrics.RecordProcessingTime("currency.conversion", time.Since(start))

	if err != nil {
		cs.circuitBreaker.RecordFailure()
		cs.metrics.IncrementCounter("currency.conversion.failed", map[string]string{"from": from})
		cs.logger.WarnContext(ctx, "currency conversion failed",
			slog.String("from", from),
			slog.String("to", cs.baseCurrency),
			slog.String("error", err.Error()),
		)
		return decimal.Zero, err
	}

	cs.circuitBreaker.RecordSuccess()
	cs.metrics.IncrementCounter("currency.conversion.success", map[string]string{"from": from})

	return converted.Round(2), nil
}

func (cs *CurrencyService) convert(ctx context.Context, amount decimal.Decimal, from string) (decimal.Decimal, error) {
	endpoint := fmt.Sprintf("%s/convert?%s", cs.baseURL, url.Values{
		"to":     {cs.baseCurrency},
		"from":   {from},
		"amount": {amount.String()},
	}.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: building request: %v", ErrConversionFailed, err)
	}
	req.Header.Set("apikey", cs.apiKey)

	resp, err := cs.client.Do(req)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %v", ErrConversionFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, resp.Body)
		return decimal.Zero, fmt.Errorf("%w: rate API returned status %d", ErrConversionFailed, resp.StatusCode)
	}

	var body convertResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return decimal.Zero, fmt.Errorf("%w: decoding response: %v", ErrConversionFailed, err)
	}
	if !body.Success {
		return decimal.Zero, fmt.Errorf("%w: rate API reported failure", ErrConversionFailed)
	}

	return decimal.NewFromFloat(body.Result), nil
}
