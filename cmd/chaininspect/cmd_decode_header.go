package main

import (
	"fmt"

	"github.com/urfave/cli"

	"github.com/btcgateway/chainmodel/chain"
	"github.com/btcgateway/chainmodel/wire"
)

var decodeHeaderCommand = cli.Command{
	Name:      "decodeheader",
	Usage:     "decode a raw hex-encoded 80-byte block header and print its hash",
	ArgsUsage: "<hex>",
	Action: func(ctx *cli.Context) error {
		raw, err := readHexArg(ctx)
		if err != nil {
			return err
		}
		if len(raw) != chain.HeaderSize {
			return fmt.Errorf("expected %d header bytes, got %d",
				chain.HeaderSize, len(raw))
		}

		r := wire.NewReader(raw)
		header := chain.DecodeHeader(r)
		if !r.IsValid() {
			return fmt.Errorf("malformed header")
		}

		fmt.Printf("block hash:  %s\n", header.BlockHash())
		fmt.Printf("version:     %d\n", header.Version)
		fmt.Printf("prev block:  %s\n", header.PrevBlock)
		fmt.Printf("merkle root: %s\n", header.MerkleRoot)
		fmt.Printf("timestamp:   %d\n", header.Timestamp)
		fmt.Printf("bits:        0x%08x\n", header.Bits)
		fmt.Printf("nonce:       %d\n", header.Nonce)

		return nil
	},
}
