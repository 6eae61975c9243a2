// pkg/blockchain/solbc/pool.go
package solbc

import (
	"context"
	"sync"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
)

// accountsAPI is the subset of *rpc.Client the adapter calls.
type accountsAPI interface {
	GetAccountInfoWithOpts(ctx context.Context, account solana.PublicKey, opts *rpc.GetAccountInfoOpts) (*rpc.GetAccountInfoResult, error)
	GetMultipleAccountsWithOpts(ctx context.Context, accounts []solana.PublicKey, opts *rpc.GetMultipleAccountsOpts) (*rpc.GetMultipleAccountsResult, error)
}

type endpoint struct {
	url string
	api accountsAPI
}

// endpointPool раздаёт RPC узлы по кругу
type endpointPool struct {
	endpoints []endpoint
	mutex     sync.Mutex
	index     int
}

func newEndpointPool(endpoints []endpoint) *endpointPool {
	return &endpointPool{endpoints: endpoints}
}

// next возвращает следующий узел (круговой цикл)
func (p *endpointPool) next() endpoint {
	p.mutex.Lock()
	defer p.mutex.Unlock()

	ep := p.endpoints[p.index]
	p.index = (p.index + 1) % len(p.endpoints)
	return ep
}

func (p *endpointPool) size() int {
	return len(p.endpoints)
}
