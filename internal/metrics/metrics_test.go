package metrics

import (
	"errors"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObserveBalances(t *testing.T) {
	okBefore := testutil.ToFloat64(BalanceComputations.WithLabelValues("ok"))
	errBefore := testutil.ToFloat64(BalanceComputations.WithLabelValues("error"))

	ObserveBalances(3, nil)
	ObserveBalances(0, errors.New("boom"))

	assert.Equal(t, okBefore+1, testutil.ToFloat64(BalanceComputations.WithLabelValues("ok")))
	assert.Equal(t, errBefore+1, testutil.ToFloat64(BalanceComputations.WithLabelValues("error")))
}

func TestObserveEvent(t *testing.T) {
	before := testutil.ToFloat64(EventsPublished.WithLabelValues("expense.created", "error"))
	ObserveEvent("expense.created", errors.New("broker down"))
	assert.Equal(t, before+1, testutil.ToFloat64(EventsPublished.WithLabelValues("expense.created", "error")))
}

func TestHandlerExposesCollectors(t *testing.T) {
	ObserveBalances(1, nil)

	rec := httptest.NewRecorder()
	Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))

	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "groupledger_balance_computations_total")
	assert.Contains(t, string(body), "groupledger_settlement_transfers_bucket")
}
