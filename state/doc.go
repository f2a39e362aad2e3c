// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package state manages the account records and the total issuance.
// Reads and writes flow through the layers below, from top to bottom:
//
//   - revertable state: accounts, issuance and the genesis marker
//   - stacked map: checkpoints of uncommitted changes, replayed as a journal
//   - stage: the journal collected into a kv bulk
//   - lru cache: committed accounts
//   - kv store: the account and meta buckets
//
// An account with zero free and zero reserved balance does not exist:
// it is never persisted and is deleted from the store on commit.
package state
