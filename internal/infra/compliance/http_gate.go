package compliance

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"freight-core/internal/pkg/errs"
	"freight-core/internal/usecase/shared"

	"github.com/google/uuid"
)

type httpStatusError struct {
	Code int
	Body string
}

func (e *httpStatusError) Error() string {
	return fmt.Sprintf("compliance service returned %d: %s", e.Code, e.Body)
}

// HTTPGate asks the external compliance service about a driver/vehicle pair.
// The caller owns the deadline; the gate never decides compliance itself.
type HTTPGate struct {
	client  *http.Client
	baseURL string
	logger  *slog.Logger
}

func NewHTTPGate(baseURL string, timeout time.Duration, logger *slog.Logger) *HTTPGate {
	return &HTTPGate{
		client:  &http.Client{Timeout: timeout},
		baseURL: strings.TrimRight(baseURL, "/"),
		logger:  logger,
	}
}

func (g *HTTPGate) Check(ctx context.Context, driverID, vehicleID uuid.UUID) (shared.ComplianceResult, error) {
	endpoint := fmt.Sprintf("%s/v1/compliance/drivers/%s/vehicles/%s",
		g.baseURL, url.PathEscape(driverID.String()), url.PathEscape(vehicleID.String()))

	start := time.Now()
	resp, err := g.doWithRetry(ctx, func() (*http.Request, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
		if err != nil {
			return nil, err
		}
		req.Header.Set("Accept", "application/json")
		return req, nil
	})
	if err != nil {
		return shared.ComplianceResult{}, errs.Wrap(err, "compliance check")
	}
	defer resp.Body.Close()

	var result shared.ComplianceResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return shared.ComplianceResult{}, errs.Wrap(err, "decode compliance response")
	}

	g.logger.Debug("compliance check finished",
		"driver_id", driverID,
		"vehicle_id", vehicleID,
		"compliant", result.Compliant,
		"elapsed_ms", time.Since(start).Milliseconds())
	return result, nil
}

func (g *HTTPGate) do(req *http.Request) (*http.Response, error) {
	resp, err := g.client.Do(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode >= 400 {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		resp.Body.Close()
		return nil, &httpStatusError{Code: resp.StatusCode, Body: strings.TrimSpace(string(b))}
	}
	return resp, nil
}

// doWithRetry retries transient failures once the context still has time left.
func (g *HTTPGate) doWithRetry(ctx context.Context, makeReq func() (*http.Request, error)) (*http.Response, error) {
	const maxAttempts = 2
	backoff := 100 * time.Millisecond

	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		req, err := makeReq()
		if err != nil {
			return nil, errs.Wrap(err, "make request")
		}

		resp, err := g.do(req)
		if err == nil {
			return resp, nil
		}
		lastErr = err

		if !isTransient(err) || attempt == maxAttempts {
			return nil, lastErr
		}

		timer := time.NewTimer(backoff)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}
	}
	return nil, lastErr
}

func isTransient(err error) bool {
	var he *httpStatusError
	if errs.As(err, &he) {
		switch he.Code {
		case http.StatusTooManyRequests, http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusGatewayTimeout:
			return true
		}
		return false
	}
	var netErr net.Error
	return errs.As(err, &netErr) && !errs.Is(err, context.DeadlineExceeded)
}
