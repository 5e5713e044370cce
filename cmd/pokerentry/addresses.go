package main

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/ethereum/go-ethereum/common"
)

var errInvalidAddress = errors.New("invalid address")

func loadAddresses(path string) ([]common.Address, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return readAddresses(f)
}

// readAddresses accepts either a JSON array of hex strings or one address
// per line. Blank lines and lines starting with # are skipped.
func readAddresses(r io.Reader) ([]common.Address, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	var raw []string
	if trimmed := bytes.TrimSpace(data); len(trimmed) > 0 && trimmed[0] == '[' {
		if err := json.Unmarshal(trimmed, &raw); err != nil {
			return nil, fmt.Errorf("decode address list: %w", err)
		}
	} else {
		scanner := bufio.NewScanner(bytes.NewReader(data))
		for scanner.Scan() {
			line := strings.TrimSpace(scanner.Text())
			if line == "" || strings.HasPrefix(line, "#") {
				continue
			}
			raw = append(raw, line)
		}
		if err := scanner.Err(); err != nil {
			return nil, err
		}
	}

	addrs := make([]common.Address, 0, len(raw))
	for _, s := range raw {
		addr, err := parseAddress(s)
		if err != nil {
			return nil, err
		}
		addrs = append(addrs, addr)
	}
	return addrs, nil
}

func parseAddress(s string) (common.Address, error) {
	if !common.IsHexAddress(s) {
		return common.Address{}, fmt.Errorf("%w: %q", errInvalidAddress, s)
	}
	return common.HexToAddress(s), nil
}
