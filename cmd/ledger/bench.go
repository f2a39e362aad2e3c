// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"fmt"
	"time"

	"github.com/pkg/errors"
	"gopkg.in/cheggaaa/pb.v1"
	cli "gopkg.in/urfave/cli.v1"

	"github.com/vechain/ledger/balances"
	"github.com/vechain/ledger/log"
	"github.com/vechain/ledger/state"
	"github.com/vechain/ledger/thor"
)

// commitInterval bounds the checkpoint journal of long runs.
const commitInterval = 100

type benchResult struct {
	name    string
	runs    int
	elapsed time.Duration
}

func benchAction(ctx *cli.Context) error {
	initLogger(ctx)

	iterations := ctx.Int(iterationsFlag.Name)
	if iterations <= 0 {
		return errors.New("iterations must be positive")
	}
	only := ctx.String(scenarioFlag.Name)

	var results []benchResult
	for _, sc := range balances.Scenarios() {
		if only != "" && sc.Name != only {
			continue
		}
		res, err := runScenario(sc, iterations)
		if err != nil {
			return errors.WithMessage(err, sc.Name)
		}
		results = append(results, res)
	}
	if len(results) == 0 {
		return errors.Errorf("unknown scenario %q", only)
	}

	fmt.Printf("%-24s %10s %14s\n", "scenario", "runs", "avg/op")
	for _, res := range results {
		fmt.Printf("%-24s %10d %14v\n", res.name, res.runs, res.elapsed/time.Duration(res.runs))
	}
	return nil
}

// runScenario replays sc against a fresh in-memory ledger, timing Run only.
func runScenario(sc balances.Scenario, iterations int) (benchResult, error) {
	db := openMemMainDB()
	defer db.Close()

	ledger, err := balances.New(state.New(db), thor.DefaultExistentialDeposit)
	if err != nil {
		return benchResult{}, err
	}

	bar := pb.New(iterations).
		Prefix(fmt.Sprintf("%-24s", sc.Name)).
		SetMaxWidth(90).
		Start()

	var elapsed time.Duration
	for i := range iterations {
		c, err := sc.Setup(ledger, uint32(i))
		if err != nil {
			return benchResult{}, errors.WithMessage(err, "setup")
		}
		start := time.Now()
		if err := c.Run(); err != nil {
			return benchResult{}, errors.WithMessage(err, "run")
		}
		elapsed += time.Since(start)

		if err := c.Verify(); err != nil {
			return benchResult{}, errors.WithMessage(err, "verify")
		}
		if (i+1)%commitInterval == 0 {
			if err := ledger.Commit(); err != nil {
				return benchResult{}, err
			}
		}
		bar.Increment()
	}
	bar.Finish()

	log.Debug("scenario done", "name", sc.Name, "runs", iterations, "elapsed", elapsed)
	return benchResult{sc.Name, iterations, elapsed}, nil
}
