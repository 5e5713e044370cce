package main

import (
	"errors"
	"fmt"

	"github.com/caarlos0/env/v11"
	"github.com/ethereum/go-ethereum/common"
	"github.com/weedbox/pokerentry"
	"github.com/weedbox/pokerentry/currency"
	"github.com/weedbox/pokerentry/seed"
)

var errMissingMerkleRoot = errors.New("either POKERENTRY_MERKLE_ROOT or POKERENTRY_WHITELIST_FILE is required")

// deployEnv holds the constructor parameters of a tournament.
type deployEnv struct {
	ID             string `env:"POKERENTRY_ID"`
	Name           string `env:"POKERENTRY_NAME"            envDefault:"Poker Tournament"`
	Owner          string `env:"POKERENTRY_OWNER,required"`
	EntranceFee    string `env:"POKERENTRY_ENTRANCE_FEE"    envDefault:"0.02"`
	RakePercentage uint8  `env:"POKERENTRY_RAKE_PERCENTAGE" envDefault:"10"`
	SeedPhrase     string `env:"POKERENTRY_SEED_PHRASE"     envDefault:"Poker Tournament"`
	MerkleRoot     string `env:"POKERENTRY_MERKLE_ROOT"`
	WhitelistFile  string `env:"POKERENTRY_WHITELIST_FILE"`
}

func parseDeployEnv() (deployEnv, error) {
	var cfg deployEnv
	if err := env.Parse(&cfg); err != nil {
		return deployEnv{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}

func (cfg deployEnv) setting() (pokerentry.TournamentSetting, error) {
	owner, err := parseAddress(cfg.Owner)
	if err != nil {
		return pokerentry.TournamentSetting{}, fmt.Errorf("owner: %w", err)
	}

	fee, err := currency.ParseEther(cfg.EntranceFee)
	if err != nil {
		return pokerentry.TournamentSetting{}, fmt.Errorf("entrance fee: %w", err)
	}

	root, err := cfg.merkleRoot()
	if err != nil {
		return pokerentry.TournamentSetting{}, err
	}

	return pokerentry.TournamentSetting{
		ID:             cfg.ID,
		Name:           cfg.Name,
		Owner:          owner,
		EntranceFee:    fee,
		RakePercentage: cfg.RakePercentage,
		SeedCheckhash:  seed.CheckhashString(cfg.SeedPhrase),
		MerkleRoot:     root,
	}, nil
}

func (cfg deployEnv) merkleRoot() (common.Hash, error) {
	if cfg.MerkleRoot != "" {
		return common.HexToHash(cfg.MerkleRoot), nil
	}

	if cfg.WhitelistFile == "" {
		return common.Hash{}, errMissingMerkleRoot
	}

	tree, err := buildTree(cfg.WhitelistFile)
	if err != nil {
		return common.Hash{}, err
	}
	return tree.Root(), nil
}
