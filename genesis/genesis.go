// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package genesis

import (
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/vechain/ledger/log"
	"github.com/vechain/ledger/state"
	"github.com/vechain/ledger/thor"
)

var logger = log.WithContext("pkg", "genesis")

// Account is an account allocated at genesis.
type Account struct {
	Address  thor.Address `yaml:"address" json:"address"`
	Free     thor.Balance `yaml:"free" json:"free"`
	Reserved thor.Balance `yaml:"reserved,omitempty" json:"reserved"`
}

// Genesis describes the initial ledger.
type Genesis struct {
	Name               string       `yaml:"name" json:"name"`
	ExistentialDeposit thor.Balance `yaml:"existentialDeposit" json:"existentialDeposit"`
	Accounts           []Account    `yaml:"accounts" json:"accounts"`
}

// Load reads and validates a genesis file.
func Load(path string) (*Genesis, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "read genesis file")
	}
	gen, err := Parse(data)
	if err != nil {
		return nil, errors.WithMessage(err, path)
	}
	return gen, nil
}

// Parse decodes and validates genesis yaml.
func Parse(data []byte) (*Genesis, error) {
	var gen Genesis
	if err := yaml.Unmarshal(data, &gen); err != nil {
		return nil, errors.Wrap(err, "decode genesis")
	}
	if err := gen.Validate(); err != nil {
		return nil, err
	}
	return &gen, nil
}

// Validate checks that every account exists under the existential deposit,
// and that the total issuance is representable.
func (g *Genesis) Validate() error {
	if g.ExistentialDeposit.IsZero() {
		return errors.New("existentialDeposit must be greater than zero")
	}
	seen := make(map[thor.Address]struct{}, len(g.Accounts))
	if _, err := g.Issuance(); err != nil {
		return err
	}
	for _, a := range g.Accounts {
		if _, ok := seen[a.Address]; ok {
			return errors.Errorf("%v: duplicated account", a.Address)
		}
		seen[a.Address] = struct{}{}

		total, ok := a.Free.CheckedAdd(a.Reserved)
		if !ok {
			return errors.Errorf("%v: balance overflow", a.Address)
		}
		if total.Lt(g.ExistentialDeposit) {
			return errors.Errorf("%v: balance %v below existential deposit %v", a.Address, total, g.ExistentialDeposit)
		}
	}
	return nil
}

// Issuance returns the sum of all allocated balances.
func (g *Genesis) Issuance() (thor.Balance, error) {
	var (
		sum thor.Balance
		ok  bool
	)
	for _, a := range g.Accounts {
		if sum, ok = sum.CheckedAdd(a.Free); !ok {
			return thor.Balance{}, errors.New("total issuance overflow")
		}
		if sum, ok = sum.CheckedAdd(a.Reserved); !ok {
			return thor.Balance{}, errors.New("total issuance overflow")
		}
	}
	return sum, nil
}

// Build allocates the genesis accounts into an empty state and commits it,
// together with a marker naming the genesis.
// It returns false without touching the state if the marker is present,
// even when every account has since been destroyed.
func (g *Genesis) Build(st *state.State) (bool, error) {
	if err := g.Validate(); err != nil {
		return false, err
	}

	name, ok, err := st.GetGenesis()
	if err != nil {
		return false, err
	}
	if ok {
		logger.Debug("ledger already initialized", "genesis", name)
		return false, nil
	}

	for _, a := range g.Accounts {
		st.SetAccount(a.Address, state.Account{Free: a.Free, Reserved: a.Reserved})
	}
	iss, err := g.Issuance()
	if err != nil {
		return false, err
	}
	st.SetIssuance(iss)
	st.SetGenesis(g.Name)
	if err := st.Commit(); err != nil {
		return false, err
	}
	logger.Info("genesis allocated", "name", g.Name, "accounts", len(g.Accounts), "issuance", iss)
	return true, nil
}
