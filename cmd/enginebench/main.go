// enginebench feeds a stream of random limit orders through the matching
// engine and reports throughput. It doubles as a demo of the library
// surface: submit, cancel, and the book introspection helpers.
package main

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"os"
	"time"

	"github.com/jessevdk/go-flags"

	"code.openvenue.io/engine/config"
	"code.openvenue.io/engine/libs/num"
	"code.openvenue.io/engine/logging"
	"code.openvenue.io/engine/matching"
	"code.openvenue.io/engine/metrics"
	"code.openvenue.io/engine/types"
)

type options struct {
	Orders      int     `long:"orders" default:"50000" description:"Number of operations to run"`
	Instrument  string  `long:"instrument" default:"BTC/USD" description:"Instrument symbol to trade"`
	Uniform     bool    `long:"uniform" description:"Use the same size for all orders"`
	CancelRatio float64 `long:"cancel-ratio" default:"0.05" description:"Fraction of operations that cancel a resting order"`
	ReportEvery int     `long:"report-every" default:"10000" description:"Report throughput every n operations, 0 disables"`
	Seed        int64   `long:"seed" default:"42" description:"Seed for the order flow generator"`
	Metrics     bool    `long:"metrics" description:"Serve prometheus metrics while running"`
	ConfigDir   string  `long:"config-dir" description:"Directory holding a config.toml, watched for live reload"`
}

func main() {
	if err := run(); err != nil {
		var flagsErr *flags.Error
		if errors.As(err, &flagsErr) && flagsErr.Type == flags.ErrHelp {
			return
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	var opts options
	if _, err := flags.Parse(&opts); err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg := config.NewDefaultConfig()
	log := logging.NewLoggerFromEnv(cfg.Logging.Environment)
	defer log.AtExit()

	var watcher *config.Watcher
	if opts.ConfigDir != "" {
		var err error
		if watcher, err = config.NewWatcher(ctx, log, opts.ConfigDir); err != nil {
			return err
		}
		cfg = watcher.Get()
	}

	if opts.Metrics {
		cfg.Metrics.Enabled = true
		if err := metrics.Start(log, cfg.Metrics); err != nil {
			return err
		}
		log.Info("metrics enabled",
			logging.String("path", cfg.Metrics.Path),
			logging.Int("port", cfg.Metrics.Port))
	}

	engine := matching.NewEngine(log, cfg.Matching, nil)
	if watcher != nil {
		// pick up config.toml edits while the run is in flight
		watcher.OnConfigUpdate(func(c config.Config) {
			engine.ReloadConf(c.Matching)
		})
	}
	rng := rand.New(rand.NewSource(opts.Seed))

	var (
		resting   []uint64
		trades    int
		cancelled int
		start     = time.Now()
	)
	for i := 0; i < opts.Orders; i++ {
		if len(resting) > 0 && rng.Float64() < opts.CancelRatio {
			idx := rng.Intn(len(resting))
			// the order may have filled since it rested, a rejected
			// cancel is part of normal flow here
			if _, err := engine.CancelOrder(resting[idx], opts.Instrument); err == nil {
				cancelled++
			}
			resting[idx] = resting[len(resting)-1]
			resting = resting[:len(resting)-1]
			continue
		}

		size := uint64(50)
		if !opts.Uniform {
			size = uint64(rng.Intn(250) + 1)
		}
		side := types.SideBuy
		if rng.Intn(2) == 1 {
			side = types.SideSell
		}
		price := num.DecimalFromInt64(int64(rng.Intn(100) + 50))

		confirmation, err := engine.SubmitOrder(opts.Instrument, price, size, side)
		if err != nil {
			return err
		}
		trades += len(confirmation.Trades)
		if confirmation.Order.Remaining > 0 {
			resting = append(resting, confirmation.Order.ID)
		}

		if opts.ReportEvery > 0 && (i+1)%opts.ReportEvery == 0 {
			elapsed := time.Since(start)
			log.Info("progress",
				logging.Int("operations", i+1),
				logging.Int("trade-legs", trades),
				logging.Int("cancelled", cancelled),
				logging.Int64("ops-per-sec", int64(float64(i+1)/elapsed.Seconds())))
		}
	}

	elapsed := time.Since(start)
	book, err := engine.GetOrderBook(opts.Instrument)
	if err != nil {
		return err
	}

	log.Info("done",
		logging.Int("operations", opts.Orders),
		logging.Int("trade-legs", trades),
		logging.Int("cancelled", cancelled),
		logging.Int64("resting-orders", book.GetTotalNumberOfOrders()),
		logging.Int64("ops-per-sec", int64(float64(opts.Orders)/elapsed.Seconds())))

	if bid, vol, err := book.BestBidPriceAndVolume(); err == nil {
		log.Info("best bid", logging.Decimal("price", bid), logging.Uint64("volume", vol))
	}
	if ask, vol, err := book.BestAskPriceAndVolume(); err == nil {
		log.Info("best ask", logging.Decimal("price", ask), logging.Uint64("volume", vol))
	}
	return nil
}
