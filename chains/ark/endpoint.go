package ark

import (
	"context"
	"fmt"
	"net"
	"strconv"
	"time"

	"github.com/sisu-network/arkeyes/chains/ark/types"
	"github.com/sisu-network/lib/log"
)

const (
	DefaultWalletApiPort     = 4140
	DefaultProbeTimeout      = 2 * time.Second
	DefaultMaxDiscoveryDepth = 1

	WalletApiPlugin = "core-wallet-api"

	ProtocolHttp  = "http"
	ProtocolHttps = "https"
)

// PeerProber is the node access the endpoint resolver needs.
type PeerProber interface {
	// ProbeConfig fetches {baseUrl}/config from a wallet API and fails unless the answer is a
	// usable configuration.
	ProbeConfig(ctx context.Context, baseUrl string, timeout time.Duration) (*types.PeerConfig, error)
	GetNodeConfiguration(ctx context.Context, host string) (*types.NodeConfiguration, error)
}

type EndpointResolver struct {
	prober        PeerProber
	walletApiPort int
	probeTimeout  time.Duration
	maxDepth      int
}

func NewEndpointResolver(prober PeerProber, walletApiPort int, probeTimeout time.Duration,
	maxDepth int) *EndpointResolver {
	if walletApiPort <= 0 {
		walletApiPort = DefaultWalletApiPort
	}
	if probeTimeout <= 0 {
		probeTimeout = DefaultProbeTimeout
	}
	if maxDepth < 0 {
		maxDepth = 0
	}

	return &EndpointResolver{
		prober:        prober,
		walletApiPort: walletApiPort,
		probeTimeout:  probeTimeout,
		maxDepth:      maxDepth,
	}
}

// strategy is one step of the cascade. Steps run in order until one succeeds.
type strategy struct {
	name string
	run  func(ctx context.Context) (*types.PeerConfig, error)
}

// ResolvePeerConfig finds the wallet API of a peer: the well-known port first, then the given
// port, then the port the node advertises for the wallet API plugin in its configuration.
func (r *EndpointResolver) ResolvePeerConfig(ctx context.Context, ip string, fallbackPort int,
	protocol string) (*types.PeerConfig, error) {
	if protocol == "" {
		protocol = ProtocolHttp
	}
	if protocol != ProtocolHttp && protocol != ProtocolHttps {
		return nil, ErrInvalidProtocol
	}

	return r.resolve(ctx, ip, fallbackPort, protocol, 0)
}

func (r *EndpointResolver) resolve(ctx context.Context, ip string, port int, protocol string,
	depth int) (*types.PeerConfig, error) {
	strategies := []strategy{
		r.probeStrategy(ip, r.walletApiPort, protocol),
		r.probeStrategy(ip, port, protocol),
	}
	if depth < r.maxDepth {
		strategies = append(strategies, r.discoveryStrategy(ip, port, protocol, depth))
	}

	return executeStrategies(ctx, ip, strategies)
}

func (r *EndpointResolver) probeStrategy(ip string, port int, protocol string) strategy {
	return strategy{
		name: fmt.Sprintf("probe port %d", port),
		run: func(ctx context.Context) (*types.PeerConfig, error) {
			if !types.IsValidPort(port) {
				return nil, fmt.Errorf("invalid port %d", port)
			}

			cfg, err := r.prober.ProbeConfig(ctx, baseUrl(protocol, ip, port), r.probeTimeout)
			if err != nil {
				return nil, err
			}

			cfg.Host = ip
			cfg.Port = port
			cfg.Protocol = protocol
			return cfg, nil
		},
	}
}

func (r *EndpointResolver) discoveryStrategy(ip string, port int, protocol string, depth int) strategy {
	return strategy{
		name: fmt.Sprintf("discover from node configuration on port %d", port),
		run: func(ctx context.Context) (*types.PeerConfig, error) {
			nodeCfg, err := r.prober.GetNodeConfiguration(ctx, baseUrl(protocol, ip, port))
			if err != nil {
				return nil, err
			}

			apiPort, ok := nodeCfg.Ports.FindPlugin(WalletApiPlugin)
			if !ok {
				return nil, fmt.Errorf("node does not advertise %s", WalletApiPlugin)
			}
			if !types.IsValidPort(apiPort) {
				return nil, fmt.Errorf("%s is disabled (port %d)", WalletApiPlugin, apiPort)
			}

			log.Verbosef("Peer %s advertises %s on port %d", ip, WalletApiPlugin, apiPort)

			return r.resolve(ctx, ip, apiPort, protocol, depth+1)
		},
	}
}

// executeStrategies runs the strategies in order and returns the first success. Every failure
// is kept so the caller can see why each step was rejected.
func executeStrategies(ctx context.Context, ip string, strategies []strategy) (*types.PeerConfig, error) {
	attempts := make([]*AttemptError, 0, len(strategies))
	for _, s := range strategies {
		if err := ctx.Err(); err != nil {
			attempts = append(attempts, &AttemptError{Strategy: s.name, Err: err})
			break
		}

		cfg, err := s.run(ctx)
		if err == nil {
			return cfg, nil
		}

		log.Verbosef("Peer %s: %s failed, err = %v", ip, s.name, err)
		attempts = append(attempts, &AttemptError{Strategy: s.name, Err: err})
	}

	return nil, NewResolutionError(ip, attempts)
}

func baseUrl(protocol, ip string, port int) string {
	return protocol + "://" + net.JoinHostPort(ip, strconv.Itoa(port))
}
