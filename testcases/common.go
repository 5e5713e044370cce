package testcases

import (
	"crypto/rand"
	"io"

	"github.com/ethereum/go-ethereum/common"
	"github.com/sirupsen/logrus"
	"github.com/weedbox/pokerentry/merkle"
)

// NewRandomAddresses 產生 n 個隨機地址
func NewRandomAddresses(n int) ([]common.Address, error) {
	addrs := make([]common.Address, 0, n)
	for i := 0; i < n; i++ {
		var b [common.AddressLength]byte
		if _, err := rand.Read(b[:]); err != nil {
			return nil, err
		}
		addrs = append(addrs, common.BytesToAddress(b[:]))
	}
	return addrs, nil
}

// NewWhitelist builds the whitelist the deploy tooling would publish:
// randomCount random addresses plus the deployer.
func NewWhitelist(deployer common.Address, randomCount int) ([]common.Address, *merkle.Tree, error) {
	members, err := NewRandomAddresses(randomCount)
	if err != nil {
		return nil, nil, err
	}
	members = append(members, deployer)

	tree, err := merkle.NewTree(members)
	if err != nil {
		return nil, nil, err
	}
	return members, tree, nil
}

func NewQuietLogger() *logrus.Entry {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return logrus.NewEntry(l)
}
