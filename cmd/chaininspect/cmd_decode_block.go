package main

import (
	"fmt"

	"github.com/urfave/cli"

	"github.com/btcgateway/chainmodel/chain"
	"github.com/btcgateway/chainmodel/wire"
)

var decodeBlockCommand = cli.Command{
	Name:      "decodeblock",
	Usage:     "decode a raw hex-encoded block and print its identity and witness commitment status",
	ArgsUsage: "<hex>",
	Action: func(ctx *cli.Context) error {
		raw, err := readHexArg(ctx)
		if err != nil {
			return err
		}

		r := wire.NewReader(raw)
		block := chain.DecodeBlock(r)
		if !r.IsValid() || !block.IsValid() {
			return fmt.Errorf("malformed block")
		}

		chinLog.Debugf("decoded block with %d transactions",
			len(block.Transactions))

		fmt.Printf("block hash:   %s\n", block.BlockHash())
		fmt.Printf("merkle root:  %s\n", chain.TransactionMerkleRoot(block.Transactions))
		fmt.Printf("transactions: %d\n", len(block.Transactions))
		fmt.Printf("size:         %d bytes\n", block.SerializeSize())

		valid, present := chain.VerifyWitnessCommitment(block)
		switch {
		case !present:
			fmt.Println("witness commitment: absent")
		case valid:
			fmt.Println("witness commitment: valid")
		default:
			fmt.Println("witness commitment: INVALID")
		}

		return nil
	},
}
