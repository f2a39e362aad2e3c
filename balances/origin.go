// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package balances

import (
	"github.com/vechain/ledger/thor"
)

// Origin is the already authorized caller of an operation.
// It's either a signed account or the privileged root.
type Origin struct {
	root   bool
	signer thor.Address
}

// Signed returns the origin of a call signed by addr.
func Signed(addr thor.Address) Origin {
	return Origin{signer: addr}
}

// Root returns the privileged origin.
func Root() Origin {
	return Origin{root: true}
}

// IsRoot returns whether the origin is privileged.
func (o Origin) IsRoot() bool {
	return o.root
}

// Signer returns the signing account, false for root.
func (o Origin) Signer() (thor.Address, bool) {
	if o.root {
		return thor.Address{}, false
	}
	return o.signer, true
}

func (o Origin) String() string {
	if o.root {
		return "root"
	}
	return "signed(" + o.signer.String() + ")"
}
