// pkg/blockchain/solbc/client.go
package solbc

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/cenkalti/backoff/v5"
	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// maxAccountsPerRequest is the node's limit for getMultipleAccounts.
const maxAccountsPerRequest = 100

const (
	defaultRetries        = 3
	defaultRequestTimeout = 10 * time.Second
	defaultInitialBackoff = 200 * time.Millisecond
)

// Client – тонкий адаптер для чтения аккаунтов Solana через solana-go.
// Запросы проходят через rate limiter, узлы выбираются по кругу,
// временные ошибки повторяются с экспоненциальной задержкой.
type Client struct {
	pool           *endpointPool
	limiter        *rate.Limiter
	commitment     rpc.CommitmentType
	retries        uint
	requestTimeout time.Duration
	initialBackoff time.Duration
	metrics        *Metrics
	logger         *zap.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithCommitment sets the commitment of every read.
func WithCommitment(commitment rpc.CommitmentType) Option {
	return func(c *Client) {
		c.commitment = commitment
	}
}

// WithRateLimit caps requests per second across all endpoints. A
// non-positive rate disables limiting.
func WithRateLimit(perSecond float64, burst int) Option {
	return func(c *Client) {
		if perSecond <= 0 {
			c.limiter = rate.NewLimiter(rate.Inf, 0)
			return
		}
		c.limiter = rate.NewLimiter(rate.Limit(perSecond), max(burst, 1))
	}
}

// WithRetries sets how many times a retryable failure is retried.
func WithRetries(retries uint) Option {
	return func(c *Client) {
		c.retries = retries
	}
}

// WithRequestTimeout bounds a single attempt.
func WithRequestTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.requestTimeout = timeout
	}
}

// WithInitialBackoff sets the first retry delay.
func WithInitialBackoff(delay time.Duration) Option {
	return func(c *Client) {
		c.initialBackoff = delay
	}
}

// WithMetrics records every attempt in m.
func WithMetrics(m *Metrics) Option {
	return func(c *Client) {
		c.metrics = m
	}
}

// NewClient создаёт клиент для списка RPC URL, логгер передаётся через dependency injection.
func NewClient(rpcURLs []string, logger *zap.Logger, opts ...Option) (*Client, error) {
	if len(rpcURLs) == 0 {
		return nil, ErrNoEndpoints
	}

	endpoints := make([]endpoint, 0, len(rpcURLs))
	for _, rpcURL := range rpcURLs {
		if _, err := url.ParseRequestURI(rpcURL); err != nil {
			return nil, fmt.Errorf("invalid RPC URL %q: %w", rpcURL, err)
		}
		endpoints = append(endpoints, endpoint{url: rpcURL, api: rpc.New(rpcURL)})
	}

	return newClient(endpoints, logger, opts...), nil
}

func newClient(endpoints []endpoint, logger *zap.Logger, opts ...Option) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	c := &Client{
		pool:           newEndpointPool(endpoints),
		limiter:        rate.NewLimiter(rate.Inf, 0),
		commitment:     rpc.CommitmentConfirmed,
		retries:        defaultRetries,
		requestTimeout: defaultRequestTimeout,
		initialBackoff: defaultInitialBackoff,
		logger:         logger.Named("solbc-client"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// GetAccountInfo returns the account at pubkey. A missing account is
// reported as ErrAccountNotFound.
func (c *Client) GetAccountInfo(ctx context.Context, pubkey solana.PublicKey) (*rpc.Account, error) {
	opts := &rpc.GetAccountInfoOpts{
		Commitment: c.commitment,
		Encoding:   solana.EncodingBase64,
	}

	result, err := call(ctx, c, "getAccountInfo", func(ctx context.Context, api accountsAPI) (*rpc.GetAccountInfoResult, error) {
		return api.GetAccountInfoWithOpts(ctx, pubkey, opts)
	})
	if errors.Is(err, rpc.ErrNotFound) || (err == nil && (result == nil || result.Value == nil)) {
		return nil, fmt.Errorf("%s: %w", pubkey, ErrAccountNotFound)
	}
	if err != nil {
		c.logger.Debug("GetAccountInfo error",
			zap.String("pubkey", pubkey.String()),
			zap.Error(err))
		return nil, err
	}
	return result.Value, nil
}

// GetMultipleAccounts получает информацию о нескольких аккаунтах.
// Результат выровнен по pubkeys, отсутствующие аккаунты равны nil.
func (c *Client) GetMultipleAccounts(ctx context.Context, pubkeys []solana.PublicKey) ([]*rpc.Account, error) {
	if len(pubkeys) == 0 {
		return nil, nil
	}

	opts := &rpc.GetMultipleAccountsOpts{
		Commitment: c.commitment,
		Encoding:   solana.EncodingBase64,
	}

	accounts := make([]*rpc.Account, 0, len(pubkeys))
	for start := 0; start < len(pubkeys); start += maxAccountsPerRequest {
		batch := pubkeys[start:min(start+maxAccountsPerRequest, len(pubkeys))]

		result, err := call(ctx, c, "getMultipleAccounts", func(ctx context.Context, api accountsAPI) (*rpc.GetMultipleAccountsResult, error) {
			return api.GetMultipleAccountsWithOpts(ctx, batch, opts)
		})
		if err != nil {
			c.logger.Debug("GetMultipleAccounts error",
				zap.Int("count", len(batch)),
				zap.Error(err))
			return nil, err
		}
		if result == nil || len(result.Value) != len(batch) {
			return nil, &Error{
				Err:    fmt.Errorf("expected %d accounts in response", len(batch)),
				Method: "getMultipleAccounts",
			}
		}
		accounts = append(accounts, result.Value...)
	}
	return accounts, nil
}

// call runs op against the next endpoint, waiting on the rate limiter before
// every attempt and retrying retryable errors with exponential backoff.
func call[T any](ctx context.Context, c *Client, method string, op func(context.Context, accountsAPI) (T, error)) (T, error) {
	operation := func() (T, error) {
		var zero T
		if err := c.limiter.Wait(ctx); err != nil {
			return zero, backoff.Permanent(err)
		}

		ep := c.pool.next()
		reqCtx, cancel := context.WithTimeout(ctx, c.requestTimeout)
		defer cancel()

		start := time.Now()
		result, err := op(reqCtx, ep.api)
		c.metrics.observe(method, ep.url, time.Since(start), err)
		if err == nil {
			return result, nil
		}

		wrapped := &Error{Err: err, NodeURL: ep.url, Method: method}
		if ctx.Err() != nil || !IsRetryableError(err) {
			return zero, backoff.Permanent(wrapped)
		}
		return zero, wrapped
	}

	policy := backoff.NewExponentialBackOff()
	policy.InitialInterval = c.initialBackoff

	result, err := backoff.Retry(ctx, operation,
		backoff.WithBackOff(policy),
		backoff.WithMaxTries(c.retries+1),
		backoff.WithNotify(func(err error, next time.Duration) {
			c.logger.Warn("Retrying RPC call",
				zap.String("method", method),
				zap.Duration("backoff", next),
				zap.Error(err))
		}),
	)
	if err != nil {
		var permanent *backoff.PermanentError
		if errors.As(err, &permanent) {
			err = permanent.Err
		}
		return result, err
	}
	return result, nil
}
