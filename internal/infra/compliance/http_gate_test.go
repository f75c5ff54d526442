//go:build unit

package compliance_test

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"freight-core/internal/infra/compliance"
	"freight-core/internal/pkg/errs"
	"freight-core/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestHTTPGateCheck(t *testing.T) {
	t.Parallel()

	driverID, vehicleID := uuid.New(), uuid.New()

	t.Run("success: decodes the compliance result", func(t *testing.T) {
		t.Parallel()
		var gotPath, gotAccept string
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotPath = r.URL.Path
			gotAccept = r.Header.Get("Accept")
			_ = json.NewEncoder(w).Encode(map[string]any{
				"compliant":        false,
				"expiredDocuments": []string{"license", "insurance"},
				"missingDocuments": []string{},
				"reason":           "documents expired",
			})
		}))
		defer srv.Close()

		gate := compliance.NewHTTPGate(srv.URL+"/", time.Second, discardLogger())
		got, err := gate.Check(context.Background(), driverID, vehicleID)

		require.NoError(t, err)
		assert.Equal(t, "/v1/compliance/drivers/"+driverID.String()+"/vehicles/"+vehicleID.String(), gotPath)
		assert.Equal(t, "application/json", gotAccept)
		assert.Equal(t, shared.ComplianceResult{
			Compliant:        false,
			ExpiredDocuments: []string{"license", "insurance"},
			MissingDocuments: []string{},
			Reason:           "documents expired",
		}, got)
	})

	t.Run("success: retries once on a transient status", func(t *testing.T) {
		t.Parallel()
		var calls atomic.Int32
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			if calls.Add(1) == 1 {
				w.WriteHeader(http.StatusServiceUnavailable)
				return
			}
			_, _ = w.Write([]byte(`{"compliant":true,"expiredDocuments":[],"missingDocuments":[]}`))
		}))
		defer srv.Close()

		gate := compliance.NewHTTPGate(srv.URL, time.Second, discardLogger())
		got, err := gate.Check(context.Background(), driverID, vehicleID)

		require.NoError(t, err)
		assert.True(t, got.Compliant)
		assert.Equal(t, int32(2), calls.Load())
	})

	t.Run("error: client errors are not retried", func(t *testing.T) {
		t.Parallel()
		var calls atomic.Int32
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			calls.Add(1)
			http.Error(w, "unknown driver", http.StatusNotFound)
		}))
		defer srv.Close()

		gate := compliance.NewHTTPGate(srv.URL, time.Second, discardLogger())
		_, err := gate.Check(context.Background(), driverID, vehicleID)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "404")
		assert.Contains(t, err.Error(), "unknown driver")
		assert.True(t, errs.HasStack(err), "failure carries a stack for the error log")
		assert.Equal(t, int32(1), calls.Load())
	})

	t.Run("error: persistent outage gives up after two attempts", func(t *testing.T) {
		t.Parallel()
		var calls atomic.Int32
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			calls.Add(1)
			w.WriteHeader(http.StatusBadGateway)
		}))
		defer srv.Close()

		gate := compliance.NewHTTPGate(srv.URL, time.Second, discardLogger())
		_, err := gate.Check(context.Background(), driverID, vehicleID)

		require.Error(t, err)
		assert.Equal(t, int32(2), calls.Load())
	})

	t.Run("error: malformed body", func(t *testing.T) {
		t.Parallel()
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(`{"compliant":`))
		}))
		defer srv.Close()

		gate := compliance.NewHTTPGate(srv.URL, time.Second, discardLogger())
		_, err := gate.Check(context.Background(), driverID, vehicleID)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "decode compliance response")
		assert.True(t, errs.HasStack(err))
	})

	t.Run("error: caller deadline wins over a slow service", func(t *testing.T) {
		t.Parallel()
		release := make(chan struct{})
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			select {
			case <-release:
			case <-r.Context().Done():
			}
		}))
		defer srv.Close()
		defer close(release)

		ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
		defer cancel()

		gate := compliance.NewHTTPGate(srv.URL, 5*time.Second, discardLogger())
		start := time.Now()
		_, err := gate.Check(ctx, driverID, vehicleID)

		require.Error(t, err)
		assert.ErrorIs(t, err, context.DeadlineExceeded)
		assert.Less(t, time.Since(start), 2*time.Second)
	})
}

func TestStaticGate(t *testing.T) {
	t.Parallel()

	got, err := compliance.NewStaticGate().Check(context.Background(), uuid.New(), uuid.New())

	require.NoError(t, err)
	assert.True(t, got.Compliant)
	assert.Empty(t, got.ExpiredDocuments)
	assert.NotNil(t, got.MissingDocuments)
}
