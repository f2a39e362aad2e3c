// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package balances implements the account balance ledger: transfers between
// accounts, privileged overrides and the existential deposit policy.
package balances

import (
	"sync"
	"time"

	"github.com/pkg/errors"

	"github.com/vechain/ledger/log"
	"github.com/vechain/ledger/state"
	"github.com/vechain/ledger/thor"
)

var logger = log.WithContext("pkg", "balances")

// Balances is the ledger. Operations are serialized and each of them is
// applied atomically: on failure, the state is left unchanged.
type Balances struct {
	mu    sync.Mutex
	st    *state.State
	ed    thor.Balance
	sinks []EventSink
}

// Option configures Balances.
type Option func(*Balances)

// WithEventSink registers a sink notified after every successful operation.
func WithEventSink(sink EventSink) Option {
	return func(b *Balances) {
		b.sinks = append(b.sinks, sink)
	}
}

// New creates the ledger over the given state.
// The existential deposit must be greater than zero.
func New(st *state.State, existentialDeposit thor.Balance, opts ...Option) (*Balances, error) {
	if existentialDeposit.IsZero() {
		return nil, errors.New("existential deposit must be greater than zero")
	}
	b := &Balances{
		st: st,
		ed: existentialDeposit,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b, nil
}

// ExistentialDeposit returns the minimum total balance of an existing account.
func (b *Balances) ExistentialDeposit() thor.Balance {
	return b.ed
}

// opContext collects the events of one operation.
type opContext struct {
	events []Event
}

func (c *opContext) emit(ev Event) {
	c.events = append(c.events, ev)
}

// exec runs fn atomically.
func (b *Balances) exec(op string, fn func(ctx *opContext) error) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	start := time.Now()
	defer func() {
		metricOpDuration().ObserveWithLabels(time.Since(start).Microseconds(), map[string]string{"op": op})
	}()

	var (
		ctx opContext
		chk = b.st.NewCheckpoint()
	)
	if err := fn(&ctx); err != nil {
		b.st.RevertTo(chk)
		metricOpCount().AddWithLabel(1, map[string]string{"op": op, "result": "failed"})
		logger.Debug("operation failed", "op", op, "err", err)
		return errors.WithMessage(err, op)
	}
	metricOpCount().AddWithLabel(1, map[string]string{"op": op, "result": "ok"})

	if len(ctx.events) > 0 {
		for _, sink := range b.sinks {
			if err := sink.Handle(ctx.events); err != nil {
				logger.Warn("failed to deliver events", "op", op, "err", err)
			}
		}
	}
	return nil
}

// Transfer moves amount from the signer's free balance to dest.
// The sender is reaped if left below the existential deposit.
func (b *Balances) Transfer(origin Origin, dest thor.Address, amount thor.Balance) error {
	from, ok := origin.Signer()
	if !ok {
		return errors.WithMessage(ErrBadOrigin, "transfer")
	}
	return b.exec("transfer", func(ctx *opContext) error {
		return b.transfer(ctx, from, dest, amount, false)
	})
}

// TransferKeepAlive is like Transfer, but fails with ErrKeepAlive instead of reaping the sender.
func (b *Balances) TransferKeepAlive(origin Origin, dest thor.Address, amount thor.Balance) error {
	from, ok := origin.Signer()
	if !ok {
		return errors.WithMessage(ErrBadOrigin, "transfer_keep_alive")
	}
	return b.exec("transfer_keep_alive", func(ctx *opContext) error {
		return b.transfer(ctx, from, dest, amount, true)
	})
}

// ForceTransfer moves amount from source to dest on behalf of root.
func (b *Balances) ForceTransfer(origin Origin, source, dest thor.Address, amount thor.Balance) error {
	if !origin.IsRoot() {
		return errors.WithMessage(ErrBadOrigin, "force_transfer")
	}
	return b.exec("force_transfer", func(ctx *opContext) error {
		return b.transfer(ctx, source, dest, amount, false)
	})
}

func (b *Balances) transfer(ctx *opContext, from, to thor.Address, amount thor.Balance, keepAlive bool) error {
	if amount.IsZero() || from == to {
		return nil
	}

	src, err := b.st.GetAccount(from)
	if err != nil {
		return err
	}
	srcFree, ok := src.Free.CheckedSub(amount)
	if !ok {
		return ErrInsufficientBalance
	}

	dst, dstExists, err := b.st.Get(to)
	if err != nil {
		return err
	}
	dstFree, ok := dst.Free.CheckedAdd(amount)
	if !ok {
		return ErrOverflow
	}
	if !dstExists && amount.Lt(b.ed) {
		return ErrExistentialDeposit
	}

	srcAfter := state.Account{Free: srcFree, Reserved: src.Reserved}
	if keepAlive && Evaluate(srcAfter, b.ed).Outcome == Reap {
		return ErrKeepAlive
	}

	if !dstExists {
		ctx.emit(&EndowedEvent{Account: to, Free: dstFree})
		metricEndowed().Add(1)
	}
	ctx.emit(&TransferEvent{From: from, To: to, Amount: amount})

	if err := b.settle(ctx, to, state.Account{Free: dstFree, Reserved: dst.Reserved}); err != nil {
		return err
	}
	return b.settle(ctx, from, srcAfter)
}

// settle stores the mutated account, or reaps it when it falls below the existential deposit.
func (b *Balances) settle(ctx *opContext, addr thor.Address, acc state.Account) error {
	dec := Evaluate(acc, b.ed)
	if dec.Outcome == Keep {
		b.st.SetAccount(addr, acc)
		return nil
	}
	return b.reap(ctx, addr, dec.Dust)
}

// reap removes the account and burns dust from the total issuance.
func (b *Balances) reap(ctx *opContext, addr thor.Address, dust thor.Balance) error {
	iss, err := b.st.GetIssuance()
	if err != nil {
		return err
	}
	b.st.SetIssuance(iss.SaturatingSub(dust))
	b.st.Remove(addr)

	ctx.emit(&ReapedEvent{Account: addr, Dust: dust})
	metricReaped().Add(1)
	logger.Debug("account reaped", "account", addr, "dust", dust)
	return nil
}

// SetBalance overwrites the balances of who on behalf of root.
// When the new total is below the existential deposit, the account ends up not existing.
// The total issuance follows the change of the account total; a change that would
// push the account total or the issuance past the maximum balance fails with ErrOverflow.
func (b *Balances) SetBalance(origin Origin, who thor.Address, newFree, newReserved thor.Balance) error {
	if !origin.IsRoot() {
		return errors.WithMessage(ErrBadOrigin, "set_balance")
	}
	return b.exec("set_balance", func(ctx *opContext) error {
		old, existed, err := b.st.Get(who)
		if err != nil {
			return err
		}

		if _, ok := newFree.CheckedAdd(newReserved); !ok {
			return ErrOverflow
		}
		next := state.Account{Free: newFree, Reserved: newReserved}
		wipeout := Evaluate(next, b.ed).Outcome == Reap
		if wipeout {
			// the requested balances never materialize
			next = state.Account{}
		}

		iss, err := b.st.GetIssuance()
		if err != nil {
			return err
		}
		oldTotal, newTotal := old.Total(), next.Total()
		if oldTotal.Lt(newTotal) {
			var ok bool
			if iss, ok = iss.CheckedAdd(newTotal.SaturatingSub(oldTotal)); !ok {
				return ErrOverflow
			}
		} else {
			iss = iss.SaturatingSub(oldTotal.SaturatingSub(newTotal))
		}
		b.st.SetIssuance(iss)

		if wipeout {
			b.st.Remove(who)
		} else {
			if !existed {
				ctx.emit(&EndowedEvent{Account: who, Free: next.Free})
				metricEndowed().Add(1)
			}
			b.st.SetAccount(who, next)
		}
		ctx.emit(&BalanceSetEvent{Who: who, Free: next.Free, Reserved: next.Reserved})

		if wipeout && existed {
			ctx.emit(&ReapedEvent{Account: who, Dust: oldTotal})
			metricReaped().Add(1)
		}
		return nil
	})
}

// Reserve moves amount from the free to the reserved balance of who.
func (b *Balances) Reserve(who thor.Address, amount thor.Balance) error {
	return b.exec("reserve", func(ctx *opContext) error {
		if amount.IsZero() {
			return nil
		}
		acc, err := b.st.GetAccount(who)
		if err != nil {
			return err
		}
		free, ok := acc.Free.CheckedSub(amount)
		if !ok {
			return ErrInsufficientBalance
		}
		reserved, ok := acc.Reserved.CheckedAdd(amount)
		if !ok {
			return ErrOverflow
		}
		b.st.SetAccount(who, state.Account{Free: free, Reserved: reserved})
		ctx.emit(&ReservedEvent{Who: who, Amount: amount})
		return nil
	})
}

// Unreserve moves up to amount from the reserved to the free balance of who.
// It returns the part of amount that could not be unreserved.
func (b *Balances) Unreserve(who thor.Address, amount thor.Balance) (remaining thor.Balance, err error) {
	err = b.exec("unreserve", func(ctx *opContext) error {
		remaining = amount
		if amount.IsZero() {
			return nil
		}
		acc, err := b.st.GetAccount(who)
		if err != nil {
			return err
		}
		actual := amount.Min(acc.Reserved)
		if actual.IsZero() {
			return nil
		}
		free, ok := acc.Free.CheckedAdd(actual)
		if !ok {
			return ErrOverflow
		}
		reserved, _ := acc.Reserved.CheckedSub(actual)
		b.st.SetAccount(who, state.Account{Free: free, Reserved: reserved})
		ctx.emit(&UnreservedEvent{Who: who, Amount: actual})

		remaining, _ = amount.CheckedSub(actual)
		return nil
	})
	if err != nil {
		return amount, err
	}
	return remaining, nil
}

// FreeBalance returns the free balance of addr, zero if the account does not exist.
func (b *Balances) FreeBalance(addr thor.Address) (thor.Balance, error) {
	acc, _, err := b.Account(addr)
	return acc.Free, err
}

// ReservedBalance returns the reserved balance of addr, zero if the account does not exist.
func (b *Balances) ReservedBalance(addr thor.Address) (thor.Balance, error) {
	acc, _, err := b.Account(addr)
	return acc.Reserved, err
}

// TotalBalance returns free plus reserved balance of addr.
func (b *Balances) TotalBalance(addr thor.Address) (thor.Balance, error) {
	acc, _, err := b.Account(addr)
	return acc.Total(), err
}

// Account returns the account record of addr and whether it exists.
func (b *Balances) Account(addr thor.Address) (state.Account, bool, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.st.Get(addr)
}

// TotalIssuance returns the sum of all account balances.
func (b *Balances) TotalIssuance() (thor.Balance, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.st.GetIssuance()
}

// ForEach iterates over existing accounts. fn must not call back into Balances.
func (b *Balances) ForEach(fn func(addr thor.Address, acc state.Account) bool) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.st.ForEach(fn)
}

// Commit persists all applied operations.
func (b *Balances) Commit() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.st.Commit()
}
