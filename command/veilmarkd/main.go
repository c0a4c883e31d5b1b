// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2026 Veilmark Developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/bitmark-inc/exitwithstatus"
	"github.com/bitmark-inc/getoptions"
	"github.com/bitmark-inc/logger"
	"golang.org/x/time/rate"

	"github.com/veilmark/veilmarkd/batch"
	"github.com/veilmark/veilmarkd/chainstate"
	"github.com/veilmark/veilmarkd/configuration"
	"github.com/veilmark/veilmarkd/proof"
	"github.com/veilmark/veilmarkd/version"
	"github.com/veilmark/veilmarkd/vm"
)

// batching cadence
const (
	aggregationInterval = 10 * time.Second
	maximumBatchSize    = 256
)

// veilmarkd main program
func main() {
	// ensure exit handler is first
	defer exitwithstatus.Handler()

	flags := []getoptions.Option{
		{Long: "help", HasArg: getoptions.NO_ARGUMENT, Short: 'h'},
		{Long: "verbose", HasArg: getoptions.NO_ARGUMENT, Short: 'v'},
		{Long: "quiet", HasArg: getoptions.NO_ARGUMENT, Short: 'q'},
		{Long: "version", HasArg: getoptions.NO_ARGUMENT, Short: 'V'},
		{Long: "config-file", HasArg: getoptions.REQUIRED_ARGUMENT, Short: 'c'},
	}

	program, options, _, err := getoptions.GetOS(flags)
	if nil != err {
		exitwithstatus.Message("%s: getoptions error: %v", program, err)
	}

	if len(options["version"]) > 0 {
		exitwithstatus.Message("%s: version: %s", program, version.Version)
	}

	if len(options["help"]) > 0 {
		exitwithstatus.Message("usage: %s [--help] [--verbose] [--quiet] --config-file=FILE", program)
	}

	if 1 != len(options["config-file"]) {
		exitwithstatus.Message("%s: exactly one config-file option is required, %d were detected", program, len(options["config-file"]))
	}

	// read options and parse the configuration file
	configurationFile := options["config-file"][0]
	masterConfiguration, err := configuration.GetConfiguration(configurationFile)
	if nil != err {
		exitwithstatus.Message("%s: failed to read configuration from: %q  error: %v", program, configurationFile, err)
	}

	// start logging
	if err = logger.Initialise(masterConfiguration.Logging); nil != err {
		exitwithstatus.Message("%s: logger setup failed with error: %v", program, err)
	}
	defer logger.Finalise()

	// create a logger channel for the main program
	log := logger.New("main")
	defer log.Info("shutting down…")
	log.Info("starting…")
	log.Debugf("masterConfiguration: %v", masterConfiguration)

	// ------------------
	// start of real main
	// ------------------

	// optional PID file
	// use if not running under a supervisor program like daemon(8)
	if "" != masterConfiguration.PidFile {
		lockFile, err := os.OpenFile(masterConfiguration.PidFile, os.O_WRONLY|os.O_EXCL|os.O_CREATE, os.ModeExclusive|0600)
		if err != nil {
			if os.IsExist(err) {
				exitwithstatus.Message("%s: another instance is already running", program)
			}
			exitwithstatus.Message("%s: PID file: %q creation failed, error: %v", program, masterConfiguration.PidFile, err)
		}
		fmt.Fprintf(lockFile, "%d\n", os.Getpid())
		lockFile.Close()
		defer os.Remove(masterConfiguration.PidFile)
	}

	// open the chain state database
	databaseFile := filepath.Join(masterConfiguration.Database.Directory, masterConfiguration.Database.Name)
	data, err := chainstate.New(databaseFile)
	if nil != err {
		log.Criticalf("database open failed: %q  error: %v", databaseFile, err)
		exitwithstatus.Message("%s: database open failed: %q  error: %v", program, databaseFile, err)
	}
	defer data.Close()

	// proving pool and aggregation
	prover := vm.LocalProver{}
	pool := proof.NewPool(prover,
		masterConfiguration.Proofing.Workers,
		rate.Limit(masterConfiguration.Proofing.Rate))
	defer pool.Stop()

	aggregator := batch.NewAggregator(prover, data)
	pending := batch.NewPool()

	// collect proved transactions into the batch pool
	go func() {
		for result := range pool.Results() {
			if nil != result.Err {
				log.Warnf("txid: %v  prove error: %s", result.TxId, result.Err)
				continue
			}
			item := &batch.Item{Tx: result.Tx, Proof: result.Proof}
			if err := pending.Add(item); nil != err {
				log.Warnf("txid: %v  pool add error: %s", result.TxId, err)
			}
		}
	}()

	// periodically aggregate and commit whatever has accumulated
	stopAggregation := make(chan struct{})
	go func() {
		ticker := time.NewTicker(aggregationInterval)
		defer ticker.Stop()
		for {
			select {
			case <-stopAggregation:
				return
			case <-ticker.C:
				items := pending.Drain(maximumBatchSize)
				if 0 == len(items) {
					continue
				}
				b, err := aggregator.Aggregate(items)
				if nil != err {
					log.Errorf("aggregate error: %s", err)
					continue
				}
				if err := aggregator.Commit(b); nil != err {
					log.Errorf("commit error: %s", err)
				}
			}
		}
	}()
	defer close(stopAggregation)

	log.Infof("version: %s", version.Version)
	log.Infof("proofing workers: %d  rate: %d/s",
		masterConfiguration.Proofing.Workers, masterConfiguration.Proofing.Rate)

	// wait for termination
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, os.Interrupt, syscall.SIGTERM)
	sig := <-ch
	log.Infof("received signal: %v", sig)
}
