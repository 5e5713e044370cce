package merkle

import (
	"bytes"
	"errors"
	"sort"

	"github.com/ethereum/go-ethereum/common"
	"github.com/thoas/go-funk"
)

var (
	ErrEmptyTree    = errors.New("merkle: no leaves to build tree")
	ErrLeafNotFound = errors.New("merkle: leaf not found")
)

// Tree is the off-chain side of the whitelist: it holds every member so it
// can hand out proofs, while the registry only keeps Root().
type Tree struct {
	layers [][]common.Hash // layers[0]: sorted leaves, last layer: root
}

/*
NewTree 由白名單地址建立 Merkle Tree
  - 葉節點: keccak256(address)，排序且去重
  - 內部節點: HashPair (sorted pair)
  - 單數節點直接升到上一層
*/
func NewTree(addrs []common.Address) (*Tree, error) {
	if len(addrs) == 0 {
		return nil, ErrEmptyTree
	}

	leaves := funk.Map(addrs, func(addr common.Address) common.Hash {
		return LeafHash(addr)
	}).([]common.Hash)

	return NewTreeFromLeaves(leaves)
}

func NewTreeFromLeaves(leaves []common.Hash) (*Tree, error) {
	if len(leaves) == 0 {
		return nil, ErrEmptyTree
	}

	sorted := funk.Uniq(leaves).([]common.Hash)
	sort.Slice(sorted, func(i, j int) bool {
		return bytes.Compare(sorted[i][:], sorted[j][:]) < 0
	})

	layers := [][]common.Hash{sorted}
	for current := sorted; len(current) > 1; {
		next := make([]common.Hash, 0, (len(current)+1)/2)
		for i := 0; i < len(current); i += 2 {
			if i+1 < len(current) {
				next = append(next, HashPair(current[i], current[i+1]))
			} else {
				next = append(next, current[i])
			}
		}
		layers = append(layers, next)
		current = next
	}

	return &Tree{layers: layers}, nil
}

func (t *Tree) Root() common.Hash {
	return t.layers[len(t.layers)-1][0]
}

func (t *Tree) Leaves() []common.Hash {
	leaves := make([]common.Hash, len(t.layers[0]))
	copy(leaves, t.layers[0])
	return leaves
}

func (t *Tree) Depth() int {
	return len(t.layers) - 1
}

func (t *Tree) Contains(addr common.Address) bool {
	return t.leafIndex(LeafHash(addr)) != -1
}

// Proof returns the sibling path for addr, bottom-up.
func (t *Tree) Proof(addr common.Address) ([]common.Hash, error) {
	return t.LeafProof(LeafHash(addr))
}

func (t *Tree) LeafProof(leaf common.Hash) ([]common.Hash, error) {
	idx := t.leafIndex(leaf)
	if idx == -1 {
		return nil, ErrLeafNotFound
	}

	proof := make([]common.Hash, 0, t.Depth())
	for _, layer := range t.layers[:len(t.layers)-1] {
		sibling := idx ^ 1
		if sibling < len(layer) {
			proof = append(proof, layer[sibling])
		}
		idx /= 2
	}

	return proof, nil
}

func (t *Tree) leafIndex(leaf common.Hash) int {
	leaves := t.layers[0]
	idx := sort.Search(len(leaves), func(i int) bool {
		return bytes.Compare(leaves[i][:], leaf[:]) >= 0
	})
	if idx < len(leaves) && leaves[idx] == leaf {
		return idx
	}
	return -1
}
