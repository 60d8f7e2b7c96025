package main

import (
	"fmt"

	"github.com/urfave/cli"

	"github.com/btcgateway/chainmodel/chain"
	"github.com/btcgateway/chainmodel/txscript"
	"github.com/btcgateway/chainmodel/wire"
)

var decodeTxCommand = cli.Command{
	Name:      "decodetx",
	Usage:     "decode a raw hex-encoded transaction and print its identity",
	ArgsUsage: "<hex>",
	Flags: []cli.Flag{
		cli.BoolFlag{
			Name:  "bip16",
			Usage: "count P2SH redeem-script sigops (requires prevout scripts, unavailable standalone; this flag has no effect on the printed count)",
		},
		cli.BoolFlag{
			Name:  "bip141",
			Usage: "apply the BIP141 factor of 4 to output sigops (witness sigops require prevout scripts and are not counted)",
		},
	},
	Action: func(ctx *cli.Context) error {
		raw, err := readHexArg(ctx)
		if err != nil {
			return err
		}

		r := wire.NewReader(raw)
		tx := chain.DecodeTransaction(r)
		if !r.IsValid() || !tx.IsValid() {
			return fmt.Errorf("malformed transaction")
		}

		chinLog.Debugf("decoded transaction with %d inputs, %d outputs",
			len(tx.Inputs), len(tx.Outputs))

		fmt.Printf("txid:       %s\n", tx.TxID())
		fmt.Printf("wtxid:      %s\n", tx.WTxID())
		fmt.Printf("segwit:     %v\n", tx.IsSegwit())
		fmt.Printf("coinbase:   %v\n", tx.IsCoinbase())
		fmt.Printf("version:    %d\n", tx.Version)
		fmt.Printf("locktime:   %d\n", tx.LockTime)
		fmt.Printf("size:       %d bytes\n", tx.SerializeSize())
		fmt.Printf("sigops:     %d\n", tx.SignatureOperations(
			ctx.Bool("bip16"), ctx.Bool("bip141"), nil))

		for i, in := range tx.Inputs {
			fmt.Printf("input[%d]:   %s:%d classify=%s\n", i,
				in.Previous.Hash, in.Previous.Index,
				classifyScript(in.Script))
		}
		for i, out := range tx.Outputs {
			fmt.Printf("output[%d]:  %d sat classify=%s\n", i,
				out.Value, classifyScript(out.Script))
		}

		return nil
	},
}

func classifyScript(s txscript.Script) string {
	switch {
	case s.IsPrefailed():
		return "prefailed"
	case s.IsPayToPublicKeyHash():
		return "p2pkh"
	case s.IsPayToScriptHash():
		return "p2sh"
	case s.IsPayToWitnessPubKeyHash():
		return "p2wpkh"
	case s.IsPayToWitnessScriptHash():
		return "p2wsh"
	case s.IsMultisig():
		return "multisig"
	case s.IsNullData():
		return "null-data"
	case s.IsCommitmentPattern():
		return "witness-commitment"
	default:
		return "non-standard"
	}
}
