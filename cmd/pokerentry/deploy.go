package main

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/weedbox/pokerentry"
	"github.com/weedbox/pokerentry/currency"
)

var deployCmd = &cobra.Command{
	Use:   "deploy",
	Short: "Create a tournament from POKERENTRY_* environment variables and print its accessors",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := parseDeployEnv()
		if err != nil {
			return err
		}

		setting, err := cfg.setting()
		if err != nil {
			return err
		}

		options := pokerentry.NewTournamentEngineOptions()
		options.NotifyEnd = false

		te, err := pokerentry.NewTournamentEngine(options, setting, pokerentry.WithLogger(logrus.NewEntry(logrus.StandardLogger())))
		if err != nil {
			return err
		}
		defer te.Close()

		tournament := te.GetTournament()
		logrus.WithField("tournament_id", tournament.ID).Info("tournament deployed")

		return writeJSON(cmd, deployOutput{
			ID:                  tournament.ID,
			Owner:               te.Owner(),
			EntranceFee:         currency.FormatEther(te.EntranceFee()),
			EntranceFeeWei:      te.EntranceFee().String(),
			RakePercentage:      te.RakePercentage(),
			SeedCheckhash:       te.SeedCheckhash(),
			MerkleRoot:          te.MerkleRoot(),
			TournamentDuration:  te.TournamentDuration(),
			MaxEntriesPerPlayer: te.MaxEntriesPerPlayer(),
			WhitelistOnly:       te.WhitelistOnly(),
			StartAt:             tournament.State.StartAt,
			EndAt:               tournament.EndAt(),
		})
	},
}

type deployOutput struct {
	ID                  string         `json:"id"`
	Owner               common.Address `json:"owner"`
	EntranceFee         string         `json:"ENTRANCE_FEE"`
	EntranceFeeWei      string         `json:"entrance_fee_wei"`
	RakePercentage      uint8          `json:"RAKE_PERCENTAGE"`
	SeedCheckhash       common.Hash    `json:"SEED_CHECKHASH"`
	MerkleRoot          common.Hash    `json:"merkle_root"`
	TournamentDuration  int64          `json:"TOURNAMENT_DURATION"`
	MaxEntriesPerPlayer int            `json:"MAX_ENTRIES_PER_PLAYER"`
	WhitelistOnly       bool           `json:"whitelistOnly"`
	StartAt             int64          `json:"start_at"`
	EndAt               int64          `json:"end_at"`
}
