// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/davecgh/go-spew/spew"
	"github.com/pkg/errors"
	cli "gopkg.in/urfave/cli.v1"

	"github.com/vechain/ledger/balances"
	"github.com/vechain/ledger/state"
	"github.com/vechain/ledger/thor"
)

func inspectAction(ctx *cli.Context) error {
	initLogger(ctx)
	gene := selectGenesis(ctx)

	instanceDir := filepath.Join(ctx.String(dataDirFlag.Name), instanceDirName(gene))
	if _, err := os.Stat(filepath.Join(instanceDir, "main.db")); err != nil {
		return errors.Wrap(err, "ledger not found")
	}
	db := openMainDB(ctx, instanceDir, true)
	defer db.Close()

	ledger, err := balances.New(state.New(db), gene.ExistentialDeposit)
	if err != nil {
		return err
	}
	raw := ctx.Bool(rawFlag.Name)

	if s := ctx.String(addressFlag.Name); s != "" {
		addr, err := thor.ParseAddress(s)
		if err != nil {
			return errors.WithMessage(err, "address")
		}
		acc, exists, err := ledger.Account(addr)
		if err != nil {
			return err
		}
		if raw {
			spew.Dump(acc)
			return nil
		}
		fmt.Printf("%v exists=%v free=%v reserved=%v\n", addr, exists, acc.Free, acc.Reserved)
		return nil
	}

	var (
		count int
		sum   thor.Balance
	)
	if err := ledger.ForEach(func(addr thor.Address, acc state.Account) bool {
		count++
		sum = sum.SaturatingAdd(acc.Total())
		if raw {
			fmt.Print(addr.String(), " ", spew.Sdump(acc))
		} else {
			fmt.Printf("%v free=%v reserved=%v\n", addr, acc.Free, acc.Reserved)
		}
		return true
	}); err != nil {
		return err
	}

	issuance, err := ledger.TotalIssuance()
	if err != nil {
		return err
	}
	fmt.Printf("accounts=%d total=%v issuance=%v\n", count, sum, issuance)
	if raw {
		if stats, err := db.Stats(); err == nil {
			fmt.Println(stats)
		}
	}
	if sum != issuance {
		return errors.Errorf("issuance mismatch: accounts hold %v, issuance is %v", sum, issuance)
	}
	return nil
}
