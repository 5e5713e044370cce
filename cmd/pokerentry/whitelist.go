package main

import (
	"encoding/json"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/spf13/cobra"
	"github.com/weedbox/pokerentry/merkle"
)

var (
	addressesFile string
	proofAddress  string
)

var whitelistCmd = &cobra.Command{
	Use:   "whitelist",
	Short: "Build the whitelist Merkle root and per-player proofs",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		cmd.HelpFunc()(cmd, args)
	},
}

var whitelistRootCmd = &cobra.Command{
	Use:   "root",
	Short: "Print the Merkle root committed at deployment",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		tree, err := buildTree(addressesFile)
		if err != nil {
			return err
		}

		fmt.Fprintln(cmd.OutOrStdout(), tree.Root().Hex())
		return nil
	},
}

var whitelistProofCmd = &cobra.Command{
	Use:   "proof",
	Short: "Print the proof a whitelisted player passes to enroll",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		tree, err := buildTree(addressesFile)
		if err != nil {
			return err
		}

		addr, err := parseAddress(proofAddress)
		if err != nil {
			return err
		}

		proof, err := tree.Proof(addr)
		if err != nil {
			return fmt.Errorf("%s: %w", addr.Hex(), err)
		}

		return writeJSON(cmd, proofOutput{
			Address: addr,
			Root:    tree.Root(),
			Proof:   proof,
		})
	},
}

type proofOutput struct {
	Address common.Address `json:"address"`
	Root    common.Hash    `json:"root"`
	Proof   []common.Hash  `json:"proof"`
}

func init() {
	whitelistCmd.AddCommand(whitelistRootCmd)
	whitelistCmd.AddCommand(whitelistProofCmd)

	whitelistCmd.PersistentFlags().StringVarP(&addressesFile, "addresses", "a", "", "File with whitelisted addresses (JSON array or one per line)")
	whitelistCmd.MarkPersistentFlagRequired("addresses")
	whitelistProofCmd.Flags().StringVar(&proofAddress, "address", "", "Address to build the proof for")
	whitelistProofCmd.MarkFlagRequired("address")
}

func buildTree(path string) (*merkle.Tree, error) {
	addrs, err := loadAddresses(path)
	if err != nil {
		return nil, err
	}
	return merkle.NewTree(addrs)
}

func writeJSON(cmd *cobra.Command, v interface{}) error {
	encoded, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(encoded))
	return nil
}
