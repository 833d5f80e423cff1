package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/kelseyhightower/envconfig"
	"github.com/sisu-network/lib/log"
)

const (
	EnvPrefix = "ark"

	DefaultNetwork          = "mainnet"
	DefaultServerPort       = 7788
	DefaultRequestTimeoutMs = 5000
	DefaultProbeTimeoutMs   = 2000
	DefaultWalletApiPort    = 4140
	DefaultActiveDelegates  = 51
	DefaultScanConcurrency  = 8
	DefaultBadPeerTtlMs     = 5 * 60 * 1000
)

// Network describes one blockchain network the client can talk to.
type Network struct {
	Name            string `toml:"name"`
	Host            string `toml:"host"`
	Protocol        string `toml:"protocol"`
	ActiveDelegates int    `toml:"active_delegates"`
	Premined        string `toml:"premined"`
}

type Ark struct {
	Network string `toml:"network" envconfig:"NETWORK"`
	// Host overrides the host of the selected network.
	Host string `toml:"host" envconfig:"HOST"`

	ServerPort     int  `toml:"server_port" envconfig:"SERVER_PORT"`
	MetricsEnabled bool `toml:"metrics_enabled" envconfig:"METRICS_ENABLED"`

	RequestTimeoutMs    int `toml:"request_timeout_ms" envconfig:"REQUEST_TIMEOUT_MS"`
	ProbeTimeoutMs      int `toml:"probe_timeout_ms" envconfig:"PROBE_TIMEOUT_MS"`
	WalletApiPort       int `toml:"wallet_api_port" envconfig:"WALLET_API_PORT"`
	MaxDiscoveryDepth   int `toml:"max_discovery_depth" envconfig:"MAX_DISCOVERY_DEPTH"`
	PeerScanConcurrency int `toml:"peer_scan_concurrency" envconfig:"PEER_SCAN_CONCURRENCY"`
	// BadPeerTtlMs is how long a peer that failed a probe is left out of scans.
	BadPeerTtlMs        int `toml:"bad_peer_ttl_ms" envconfig:"BAD_PEER_TTL_MS"`

	Networks map[string]Network `toml:"networks" ignored:"true"`
}

func Default() *Ark {
	return &Ark{
		Network:             DefaultNetwork,
		ServerPort:          DefaultServerPort,
		RequestTimeoutMs:    DefaultRequestTimeoutMs,
		ProbeTimeoutMs:      DefaultProbeTimeoutMs,
		WalletApiPort:       DefaultWalletApiPort,
		MaxDiscoveryDepth:   1,
		PeerScanConcurrency: DefaultScanConcurrency,
		BadPeerTtlMs:        DefaultBadPeerTtlMs,
		Networks: map[string]Network{
			"mainnet": {
				Name:            "mainnet",
				Host:            "http://127.0.0.1:4003",
				Protocol:        "http",
				ActiveDelegates: DefaultActiveDelegates,
				Premined:        "12500000000000000",
			},
			"devnet": {
				Name:            "devnet",
				Host:            "http://127.0.0.1:4003",
				Protocol:        "http",
				ActiveDelegates: DefaultActiveDelegates,
				Premined:        "12500000000000000",
			},
		},
	}
}

// Load builds the configuration from the defaults, then the TOML file at path (if any), then
// ARK_* environment variables.
func Load(path string) (*Ark, error) {
	cfg := Default()

	if path != "" {
		if _, err := os.Stat(path); err != nil {
			return nil, err
		}

		if _, err := toml.DecodeFile(path, cfg); err != nil {
			return nil, fmt.Errorf("cannot decode config file %s: %w", path, err)
		}
		log.Info("Loaded config file ", path)
	}

	if err := envconfig.Process(EnvPrefix, cfg); err != nil {
		return nil, err
	}

	for name, network := range cfg.Networks {
		if network.Name == "" {
			network.Name = name
			cfg.Networks[name] = network
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Ark) Validate() error {
	if c.Host == "" {
		network, ok := c.Networks[c.Network]
		if !ok {
			return fmt.Errorf("unknown network %s", c.Network)
		}
		if network.Host == "" {
			return fmt.Errorf("network %s has no host", c.Network)
		}
	}

	host := c.CurrentHost()
	if !strings.HasPrefix(host, "http://") && !strings.HasPrefix(host, "https://") {
		return fmt.Errorf("host %s must start with http:// or https://", host)
	}

	if c.RequestTimeoutMs < 0 || c.ProbeTimeoutMs < 0 || c.BadPeerTtlMs < 0 {
		return fmt.Errorf("timeouts cannot be negative")
	}

	for name, network := range c.Networks {
		if network.ActiveDelegates < 0 {
			return fmt.Errorf("network %s: active_delegates cannot be negative", name)
		}
	}

	if c.MaxDiscoveryDepth < 0 {
		return fmt.Errorf("max_discovery_depth cannot be negative")
	}

	return nil
}

// CurrentNetwork returns the selected network with the host override applied.
func (c *Ark) CurrentNetwork() Network {
	network := c.Networks[c.Network]
	if network.Name == "" {
		network.Name = c.Network
	}
	if c.Host != "" {
		network.Host = c.Host
	}
	if network.ActiveDelegates == 0 {
		network.ActiveDelegates = DefaultActiveDelegates
	}

	return network
}

func (c *Ark) CurrentHost() string {
	return strings.TrimRight(c.CurrentNetwork().Host, "/")
}

func (c *Ark) RequestTimeout() time.Duration {
	return time.Duration(c.RequestTimeoutMs) * time.Millisecond
}

func (c *Ark) BadPeerTtl() time.Duration {
	return time.Duration(c.BadPeerTtlMs) * time.Millisecond
}

func (c *Ark) ProbeTimeout() time.Duration {
	return time.Duration(c.ProbeTimeoutMs) * time.Millisecond
}
