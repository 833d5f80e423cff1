package types

import (
	"encoding/json"
	"sort"
	"strconv"
	"strings"
)

const (
	MaxPort = 65535
)

type Peer struct {
	IP      string  `json:"ip"`
	Port    int     `json:"port"`
	Version string  `json:"version,omitempty"`
	Height  int64   `json:"height,omitempty"`
	Latency int64   `json:"latency,omitempty"`
	OS      string  `json:"os,omitempty"`
	Ports   PortMap `json:"ports,omitempty"`
}

type PeerList struct {
	Success bool    `json:"success"`
	Peers   []*Peer `json:"peers"`
}

type SyncStatus struct {
	Success bool   `json:"success"`
	Syncing bool   `json:"syncing"`
	Blocks  int64  `json:"blocks"`
	Height  int64  `json:"height"`
	ID      string `json:"id"`
}

// PortMap maps a plugin name (e.g. "@arkecosystem/core-wallet-api") to the port it listens on.
// Disabled plugins are reported with a port of -1; values that are not numbers are dropped.
type PortMap map[string]int

func (p *PortMap) UnmarshalJSON(data []byte) error {
	raw := map[string]json.RawMessage{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	ports := make(PortMap, len(raw))
	for name, value := range raw {
		s := strings.Trim(string(value), `"`)
		port, err := strconv.Atoi(s)
		if err != nil {
			continue
		}
		ports[name] = port
	}

	*p = ports
	return nil
}

// FindPlugin returns the port of the plugin whose name ends with the given final path segment.
// When several keys match, the lexically smallest key wins.
func (p PortMap) FindPlugin(plugin string) (int, bool) {
	keys := make([]string, 0, len(p))
	for key := range p {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		segments := strings.Split(key, "/")
		if segments[len(segments)-1] == plugin {
			return p[key], true
		}
	}

	return 0, false
}

func IsValidPort(port int) bool {
	return port > 0 && port <= MaxPort
}

type NodeConfiguration struct {
	Core struct {
		Version string `json:"version"`
	} `json:"core"`
	Nethash         string          `json:"nethash"`
	Slip44          int             `json:"slip44"`
	Wif             int             `json:"wif"`
	Token           string          `json:"token"`
	Symbol          string          `json:"symbol"`
	Explorer        string          `json:"explorer"`
	Version         int             `json:"version"`
	Ports           PortMap         `json:"ports"`
	Constants       json.RawMessage `json:"constants,omitempty"`
	TransactionPool json.RawMessage `json:"transactionPool,omitempty"`
	FeeStatistics   json.RawMessage `json:"feeStatistics,omitempty"`
}

type NodeCrypto struct {
	Network      CryptoNetwork   `json:"network"`
	Milestones   json.RawMessage `json:"milestones,omitempty"`
	Exceptions   json.RawMessage `json:"exceptions,omitempty"`
	GenesisBlock json.RawMessage `json:"genesisBlock,omitempty"`
}

type CryptoNetwork struct {
	Name          string `json:"name"`
	MessagePrefix string `json:"messagePrefix"`
	PubKeyHash    int    `json:"pubKeyHash"`
	Wif           int    `json:"wif"`
	Nethash       string `json:"nethash"`
	Slip44        int    `json:"slip44"`
	Client        struct {
		Token    string `json:"token"`
		Symbol   string `json:"symbol"`
		Explorer string `json:"explorer"`
	} `json:"client"`
}

// PeerConfig is the wallet-API /config answer of a peer together with the endpoint it was
// served from.
type PeerConfig struct {
	Data     NodeConfiguration `json:"data"`
	Host     string            `json:"host"`
	Port     int               `json:"port"`
	Protocol string            `json:"protocol"`
}
