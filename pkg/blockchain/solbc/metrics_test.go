package solbc

import (
	"context"
	"testing"
	"time"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
	"github.com/gagliardetto/solana-go/rpc/jsonrpc"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

// counterValue sums the counter series of name whose labels include want.
func counterValue(t *testing.T, reg *prometheus.Registry, name string, want map[string]string) float64 {
	t.Helper()
	families, err := reg.Gather()
	require.NoError(t, err)

	var total float64
	for _, family := range families {
		if family.GetName() != name {
			continue
		}
	metrics:
		for _, metric := range family.GetMetric() {
			labels := make(map[string]string, len(metric.GetLabel()))
			for _, pair := range metric.GetLabel() {
				labels[pair.GetName()] = pair.GetValue()
			}
			for key, value := range want {
				if labels[key] != value {
					continue metrics
				}
			}
			total += metric.GetCounter().GetValue()
		}
	}
	return total
}

func TestMetricsRecordEveryAttempt(t *testing.T) {
	reg := prometheus.NewRegistry()
	m, err := NewMetrics(reg)
	require.NoError(t, err)

	pubkey := solana.NewWallet().PublicKey()
	api := &mockAPI{}
	api.On("GetAccountInfoWithOpts", mock.Anything, pubkey, mock.Anything).
		Return(nil, &jsonrpc.HTTPError{Code: 503}).Once()
	api.On("GetAccountInfoWithOpts", mock.Anything, pubkey, mock.Anything).
		Return(&rpc.GetAccountInfoResult{Value: &rpc.Account{Owner: solana.SystemProgramID}}, nil).Once()
	api.On("GetAccountInfoWithOpts", mock.Anything, pubkey, mock.Anything).
		Return(nil, rpc.ErrNotFound).Once()
	t.Cleanup(func() { api.AssertExpectations(t) })

	client := newClient([]endpoint{{url: "http://node-0", api: api}}, zaptest.NewLogger(t),
		WithInitialBackoff(time.Millisecond),
		WithMetrics(m))

	_, err = client.GetAccountInfo(context.Background(), pubkey)
	require.NoError(t, err)
	_, err = client.GetAccountInfo(context.Background(), pubkey)
	require.ErrorIs(t, err, ErrAccountNotFound)

	method := map[string]string{"method": "getAccountInfo"}
	assert.Equal(t, 3.0, counterValue(t, reg, "dumpfun_rpc_requests_total", method))
	assert.Equal(t, 1.0, counterValue(t, reg, "dumpfun_rpc_requests_total", map[string]string{"status": "retryable"}))
	assert.Equal(t, 1.0, counterValue(t, reg, "dumpfun_rpc_requests_total", map[string]string{"status": "success"}))
	assert.Equal(t, 1.0, counterValue(t, reg, "dumpfun_rpc_requests_total", map[string]string{"status": "not_found"}))
}

func TestNewMetricsRejectsDuplicateRegistration(t *testing.T) {
	reg := prometheus.NewRegistry()
	_, err := NewMetrics(reg)
	require.NoError(t, err)

	_, err = NewMetrics(reg)
	assert.Error(t, err)
}
