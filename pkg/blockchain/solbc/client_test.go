package solbc

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
	"github.com/gagliardetto/solana-go/rpc/jsonrpc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

type mockAPI struct {
	mock.Mock
}

func (m *mockAPI) GetAccountInfoWithOpts(ctx context.Context, account solana.PublicKey, opts *rpc.GetAccountInfoOpts) (*rpc.GetAccountInfoResult, error) {
	args := m.Called(ctx, account, opts)
	result, _ := args.Get(0).(*rpc.GetAccountInfoResult)
	return result, args.Error(1)
}

func (m *mockAPI) GetMultipleAccountsWithOpts(ctx context.Context, accounts []solana.PublicKey, opts *rpc.GetMultipleAccountsOpts) (*rpc.GetMultipleAccountsResult, error) {
	args := m.Called(ctx, accounts, opts)
	result, _ := args.Get(0).(*rpc.GetMultipleAccountsResult)
	return result, args.Error(1)
}

func newTestClient(t *testing.T, apis ...*mockAPI) *Client {
	t.Helper()
	endpoints := make([]endpoint, 0, len(apis))
	for i, api := range apis {
		endpoints = append(endpoints, endpoint{url: fmt.Sprintf("http://node-%d", i), api: api})
		t.Cleanup(func() { api.AssertExpectations(t) })
	}
	return newClient(endpoints, zaptest.NewLogger(t),
		WithInitialBackoff(time.Millisecond),
		WithRetries(2))
}

func accountResult(owner solana.PublicKey, data []byte) *rpc.GetAccountInfoResult {
	return &rpc.GetAccountInfoResult{
		Value: &rpc.Account{Owner: owner, Data: rpc.DataBytesOrJSONFromBytes(data)},
	}
}

func TestNewClient(t *testing.T) {
	_, err := NewClient(nil, nil)
	assert.ErrorIs(t, err, ErrNoEndpoints)

	_, err = NewClient([]string{"not a url"}, nil)
	assert.Error(t, err)

	client, err := NewClient([]string{"https://api.mainnet-beta.solana.com", "http://localhost:8899"}, nil)
	require.NoError(t, err)
	assert.Equal(t, 2, client.pool.size())
	assert.Equal(t, rpc.CommitmentConfirmed, client.commitment)
}

func TestGetAccountInfo(t *testing.T) {
	ctx := context.Background()
	pubkey := solana.NewWallet().PublicKey()

	t.Run("found", func(t *testing.T) {
		api := &mockAPI{}
		api.On("GetAccountInfoWithOpts", mock.Anything, pubkey, mock.MatchedBy(func(opts *rpc.GetAccountInfoOpts) bool {
			return opts.Commitment == rpc.CommitmentConfirmed && opts.Encoding == solana.EncodingBase64
		})).Return(accountResult(solana.SystemProgramID, []byte{1, 2, 3}), nil).Once()

		account, err := newTestClient(t, api).GetAccountInfo(ctx, pubkey)
		require.NoError(t, err)
		assert.Equal(t, []byte{1, 2, 3}, account.Data.GetBinary())
	})

	t.Run("not found is not retried", func(t *testing.T) {
		api := &mockAPI{}
		api.On("GetAccountInfoWithOpts", mock.Anything, pubkey, mock.Anything).Return(nil, rpc.ErrNotFound).Once()

		_, err := newTestClient(t, api).GetAccountInfo(ctx, pubkey)
		assert.ErrorIs(t, err, ErrAccountNotFound)
		assert.True(t, IsAccountNotFoundError(err))
	})

	t.Run("retries rate limiting", func(t *testing.T) {
		api := &mockAPI{}
		api.On("GetAccountInfoWithOpts", mock.Anything, pubkey, mock.Anything).
			Return(nil, &jsonrpc.HTTPError{Code: 429}).Twice()
		api.On("GetAccountInfoWithOpts", mock.Anything, pubkey, mock.Anything).
			Return(accountResult(solana.SystemProgramID, nil), nil).Once()

		_, err := newTestClient(t, api).GetAccountInfo(ctx, pubkey)
		require.NoError(t, err)
	})

	t.Run("gives up after retries", func(t *testing.T) {
		api := &mockAPI{}
		nodeErr := &jsonrpc.RPCError{Code: codeNodeUnhealthy, Message: "Node is behind"}
		api.On("GetAccountInfoWithOpts", mock.Anything, pubkey, mock.Anything).Return(nil, nodeErr).Times(3)

		_, err := newTestClient(t, api).GetAccountInfo(ctx, pubkey)
		require.Error(t, err)

		var rpcErr *Error
		require.ErrorAs(t, err, &rpcErr)
		assert.Equal(t, "getAccountInfo", rpcErr.Method)
		assert.ErrorIs(t, err, nodeErr)
	})

	t.Run("permanent error", func(t *testing.T) {
		api := &mockAPI{}
		invalid := &jsonrpc.RPCError{Code: -32602, Message: "Invalid param"}
		api.On("GetAccountInfoWithOpts", mock.Anything, pubkey, mock.Anything).Return(nil, invalid).Once()

		_, err := newTestClient(t, api).GetAccountInfo(ctx, pubkey)
		assert.ErrorIs(t, err, invalid)
	})
}

func TestRoundRobin(t *testing.T) {
	pubkey := solana.NewWallet().PublicKey()

	first := &mockAPI{}
	second := &mockAPI{}
	first.On("GetAccountInfoWithOpts", mock.Anything, pubkey, mock.Anything).
		Return(nil, errors.New("connection refused")).Once()
	second.On("GetAccountInfoWithOpts", mock.Anything, pubkey, mock.Anything).
		Return(accountResult(solana.SystemProgramID, nil), nil).Once()

	_, err := newTestClient(t, first, second).GetAccountInfo(context.Background(), pubkey)
	require.NoError(t, err)
}

func TestGetMultipleAccounts(t *testing.T) {
	ctx := context.Background()

	t.Run("empty", func(t *testing.T) {
		accounts, err := newTestClient(t, &mockAPI{}).GetMultipleAccounts(ctx, nil)
		require.NoError(t, err)
		assert.Empty(t, accounts)
	})

	t.Run("keeps nil entries", func(t *testing.T) {
		keys := []solana.PublicKey{solana.NewWallet().PublicKey(), solana.NewWallet().PublicKey()}
		api := &mockAPI{}
		api.On("GetMultipleAccountsWithOpts", mock.Anything, keys, mock.Anything).Return(&rpc.GetMultipleAccountsResult{
			Value: []*rpc.Account{nil, {Owner: solana.TokenProgramID}},
		}, nil).Once()

		accounts, err := newTestClient(t, api).GetMultipleAccounts(ctx, keys)
		require.NoError(t, err)
		require.Len(t, accounts, 2)
		assert.Nil(t, accounts[0])
		assert.Equal(t, solana.TokenProgramID, accounts[1].Owner)
	})

	t.Run("batches large requests", func(t *testing.T) {
		keys := make([]solana.PublicKey, 150)
		for i := range keys {
			keys[i] = solana.NewWallet().PublicKey()
		}

		api := &mockAPI{}
		api.On("GetMultipleAccountsWithOpts", mock.Anything, keys[:100], mock.Anything).
			Return(&rpc.GetMultipleAccountsResult{Value: make([]*rpc.Account, 100)}, nil).Once()
		api.On("GetMultipleAccountsWithOpts", mock.Anything, keys[100:], mock.Anything).
			Return(&rpc.GetMultipleAccountsResult{Value: make([]*rpc.Account, 50)}, nil).Once()

		accounts, err := newTestClient(t, api).GetMultipleAccounts(ctx, keys)
		require.NoError(t, err)
		assert.Len(t, accounts, 150)
	})

	t.Run("short response", func(t *testing.T) {
		keys := []solana.PublicKey{solana.NewWallet().PublicKey()}
		api := &mockAPI{}
		api.On("GetMultipleAccountsWithOpts", mock.Anything, keys, mock.Anything).
			Return(&rpc.GetMultipleAccountsResult{}, nil).Once()

		_, err := newTestClient(t, api).GetMultipleAccounts(ctx, keys)
		assert.Error(t, err)
	})
}

func TestCanceledContextStopsRetries(t *testing.T) {
	pubkey := solana.NewWallet().PublicKey()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	// the limiter refuses a done context before any request is made
	_, err := newTestClient(t, &mockAPI{}).GetAccountInfo(ctx, pubkey)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestIsRetryableError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{name: "nil", err: nil, want: false},
		{name: "canceled", err: context.Canceled, want: false},
		{name: "deadline", err: fmt.Errorf("post: %w", context.DeadlineExceeded), want: true},
		{name: "not found", err: rpc.ErrNotFound, want: false},
		{name: "http 429", err: &jsonrpc.HTTPError{Code: 429}, want: true},
		{name: "http 502", err: &jsonrpc.HTTPError{Code: 502}, want: true},
		{name: "http 400", err: &jsonrpc.HTTPError{Code: 400}, want: false},
		{name: "node behind", err: &jsonrpc.RPCError{Code: codeNodeUnhealthy}, want: true},
		{name: "invalid params", err: &jsonrpc.RPCError{Code: -32602}, want: false},
		{name: "reset", err: errors.New("read: connection reset by peer"), want: true},
		{name: "other", err: errors.New("invalid base58"), want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsRetryableError(tt.err))
		})
	}
}
