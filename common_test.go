package pokerentry

import (
	"crypto/rand"
	"io"
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
	"github.com/weedbox/pokerentry/merkle"
)

var (
	deployer = common.HexToAddress("0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266")
	outsider = common.HexToAddress("0x70997970C51812dc3A010C7d01b50e20d4dc79C8")
)

type whitelist struct {
	members []common.Address
	tree    *merkle.Tree
}

func (w whitelist) proof(t *testing.T, addr common.Address) []common.Hash {
	proof, err := w.tree.Proof(addr)
	require.NoError(t, err)
	return proof
}

func randomAddress(t *testing.T) common.Address {
	var b [common.AddressLength]byte
	_, err := rand.Read(b[:])
	require.NoError(t, err)
	return common.BytesToAddress(b[:])
}

// newWhitelist builds 15 random members plus the deployer.
func newWhitelist(t *testing.T) whitelist {
	members := []common.Address{deployer}
	for i := 0; i < 15; i++ {
		members = append(members, randomAddress(t))
	}

	tree, err := merkle.NewTree(members)
	require.NoError(t, err)

	return whitelist{members: members, tree: tree}
}

func quietLogger() *logrus.Entry {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return logrus.NewEntry(l)
}

func quietOptions() *TournamentEngineOptions {
	options := NewTournamentEngineOptions()
	options.NotifyEnd = false
	return options
}

func newTestEngine(t *testing.T, wl whitelist, opts ...TournamentEngineOpt) TournamentEngine {
	opts = append([]TournamentEngineOpt{WithLogger(quietLogger())}, opts...)
	te, err := NewTournamentEngine(quietOptions(), NewDefaultTournamentSetting(deployer, wl.tree.Root()), opts...)
	require.NoError(t, err)
	t.Cleanup(te.Close)
	return te
}

func fee(te TournamentEngine) *big.Int {
	return te.EntranceFee()
}
