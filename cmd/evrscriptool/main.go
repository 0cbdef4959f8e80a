// Copyright (c) 2013-2020 The btcsuite developers
// Copyright (c) 2015-2020 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Command evrscriptool disassembles and classifies scripts supplied as hex
// on the command line, caching the result so repeated lookups of the same
// script (e.g. while tailing a mempool feed) skip re-tokenizing.
package main

import (
	"encoding/hex"
	"flag"
	"fmt"
	"os"

	badger "github.com/dgraph-io/badger/v2"
	"go.uber.org/zap"

	"github.com/evrmorecore/evrtxscript/chaincfg"
	"github.com/evrmorecore/evrtxscript/chainhash"
	"github.com/evrmorecore/evrtxscript/txscript"
)

func main() {
	net := flag.String("net", "main", "network to label output with (main, test)")
	cacheDir := flag.String("cachedir", "", "badger cache directory (empty disables the cache)")
	accurate := flag.Bool("accurate", true, "use accurate CHECKMULTISIG sigop weighting")
	flag.Parse()

	logger, err := zap.NewProduction()
	if err != nil {
		fmt.Fprintln(os.Stderr, "evrscriptool: logger init:", err)
		os.Exit(1)
	}
	defer logger.Sync()
	log := logger.Sugar()

	params, ok := chaincfg.ByName(*net)
	if !ok {
		log.Fatalw("unrecognized network", "net", *net)
	}
	log.Infow("starting evrscriptool", "network", params.Name, "magic", params.Net.String())

	var cache *badger.DB
	if *cacheDir != "" {
		opts := badger.DefaultOptions(*cacheDir).WithLogger(nil)
		cache, err = badger.Open(opts)
		if err != nil {
			log.Fatalw("opening disassembly cache", "dir", *cacheDir, "error", err)
		}
		defer cache.Close()
	}

	if flag.NArg() == 0 {
		fmt.Fprintln(os.Stderr, "usage: evrscriptool [flags] <hex-script>...")
		os.Exit(2)
	}

	for _, arg := range flag.Args() {
		if err := inspect(log, cache, *accurate, arg); err != nil {
			log.Errorw("inspecting script", "input", arg, "error", err)
		}
	}
}

func inspect(log *zap.SugaredLogger, cache *badger.DB, accurate bool, hexScript string) error {
	raw, err := hex.DecodeString(hexScript)
	if err != nil {
		return fmt.Errorf("decoding hex: %w", err)
	}

	if cache != nil {
		if cached, ok := lookupCache(cache, raw); ok {
			fmt.Println(cached)
			return nil
		}
	}

	script := txscript.NewScriptFromBytes(raw)
	class := txscript.ExtractScriptClass(script)
	sigOps := txscript.GetSigOpCount(script, accurate)

	out := fmt.Sprintf("class=%s sigops=%d valid=%t unspendable=%t canonical=%t disasm=%q",
		class, sigOps, txscript.IsValid(script), txscript.IsUnspendable(script),
		txscript.HasCanonicalPushes(script), script.String())

	log.Debugw("classified script", "class", class.String(), "sigops", sigOps)
	fmt.Println(out)

	if cache != nil {
		storeCache(cache, raw, out)
	}
	return nil
}

func lookupCache(cache *badger.DB, raw []byte) (string, bool) {
	var value string
	err := cache.View(func(txn *badger.Txn) error {
		item, err := txn.Get(cacheKey(raw))
		if err != nil {
			return err
		}
		return item.Value(func(v []byte) error {
			value = string(v)
			return nil
		})
	})
	return value, err == nil
}

func storeCache(cache *badger.DB, raw []byte, value string) {
	_ = cache.Update(func(txn *badger.Txn) error {
		return txn.Set(cacheKey(raw), []byte(value))
	})
}

func cacheKey(raw []byte) []byte {
	return []byte(fmt.Sprintf("script:%x", chainhash.HashB(raw)))
}
