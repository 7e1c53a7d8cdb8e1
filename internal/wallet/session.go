package wallet

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"sync"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"

	"github.com/Mohsinsiddi/stakeforms/internal/contract"
)

// ErrNoAccounts is returned by RequestAccounts when no signing wallet exists.
var ErrNoAccounts = errors.New("no signing wallet available")

// Session is the connection between the console and the local wallets. It
// is empty until RequestAccounts succeeds and read-only afterwards.
type Session struct {
	manager   *Manager
	chainID   *big.Int
	preferred string

	mu       sync.RWMutex
	accounts []common.Address
	signers  map[common.Address]*Signer
}

// NewSession creates a disconnected session. preferred names the wallet
// that should be the first account; empty means the manager's default.
func NewSession(m *Manager, chainID *big.Int, preferred string) *Session {
	return &Session{manager: m, chainID: chainID, preferred: preferred}
}

// RequestAccounts connects the session: every signing wallet becomes an
// account, the preferred (or default) one first.
func (s *Session) RequestAccounts(ctx context.Context) ([]common.Address, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	wallets, err := s.manager.List()
	if err != nil {
		return nil, fmt.Errorf("loading wallets: %w", err)
	}

	first := s.preferred
	if first == "" {
		if def := s.manager.Default(); def != nil {
			first = def.Name
		}
	}

	var accounts []common.Address
	signers := make(map[common.Address]*Signer)
	add := func(w *Wallet) {
		sg := NewSigner(w, s.manager.ks)
		if _, dup := signers[sg.Address()]; dup {
			return
		}
		signers[sg.Address()] = sg
		accounts = append(accounts, sg.Address())
	}
	for _, w := range wallets {
		if w.Name == first && w.CanSign() {
			add(w)
		}
	}
	for _, w := range wallets {
		if w.CanSign() {
			add(w)
		}
	}
	if len(accounts) == 0 {
		return nil, ErrNoAccounts
	}

	s.mu.Lock()
	s.accounts = accounts
	s.signers = signers
	s.mu.Unlock()
	return s.Accounts(), nil
}

// Accounts returns the connected accounts, or nil before RequestAccounts.
func (s *Session) Accounts() []common.Address {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if len(s.accounts) == 0 {
		return nil
	}
	out := make([]common.Address, len(s.accounts))
	copy(out, s.accounts)
	return out
}

// Connected reports whether RequestAccounts has succeeded.
func (s *Session) Connected() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.accounts) > 0
}

// ChainID is the chain transactions are signed for.
func (s *Session) ChainID() *big.Int { return s.chainID }

// TransactOpts signs for from. It fails with contract.ErrSignerUnavailable
// when from is not a connected account.
func (s *Session) TransactOpts(ctx context.Context, from common.Address) (*bind.TransactOpts, error) {
	s.mu.RLock()
	sg, ok := s.signers[from]
	s.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %s is not a connected account", contract.ErrSignerUnavailable, from.Hex())
	}
	opts, err := sg.TransactOpts(s.chainID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", contract.ErrSignerUnavailable, err)
	}
	opts.Context = ctx
	return opts, nil
}
