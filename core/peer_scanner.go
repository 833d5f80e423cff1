package core

import (
	"context"
	"fmt"
	"net"
	"sort"
	"strconv"
	"sync"
	"time"

	"github.com/golang/groupcache/lru"
	"github.com/sisu-network/arkeyes/chains/ark"
	"github.com/sisu-network/arkeyes/chains/ark/types"
	"github.com/sisu-network/arkeyes/config"
	"github.com/sisu-network/lib/log"
	"go.uber.org/atomic"
	"golang.org/x/sync/errgroup"
)

const (
	BadPeerCacheSize = 1_000
	CoreApiPlugin    = "core-api"
)

// ScanResult is the outcome of one peer scan.
type ScanResult struct {
	Peers   []*types.Peer `json:"peers"`
	Probed  int64         `json:"probed"`
	Skipped int64         `json:"skipped"`
	Failed  int64         `json:"failed"`
}

type PeerScanner interface {
	Scan(ctx context.Context) (*ScanResult, error)
}

type defaultPeerScanner struct {
	client       ark.Client
	protocol     string
	probeTimeout time.Duration
	concurrency  int

	// badPeers maps a peer host to the time its last probe failed. Entries older than
	// badPeerTtl are ignored.
	badPeers   *lru.Cache
	badPeerTtl time.Duration
	lock       *sync.Mutex
	now        func() time.Time
}

func NewPeerScanner(cfg *config.Ark, client ark.Client) PeerScanner {
	return newPeerScanner(cfg, client)
}

func newPeerScanner(cfg *config.Ark, client ark.Client) *defaultPeerScanner {
	concurrency := cfg.PeerScanConcurrency
	if concurrency <= 0 {
		concurrency = config.DefaultScanConcurrency
	}

	probeTimeout := cfg.ProbeTimeout()
	if probeTimeout <= 0 {
		probeTimeout = ark.DefaultProbeTimeout
	}

	badPeerTtl := cfg.BadPeerTtl()
	if badPeerTtl <= 0 {
		badPeerTtl = config.DefaultBadPeerTtlMs * time.Millisecond
	}

	protocol := cfg.CurrentNetwork().Protocol
	if protocol == "" {
		protocol = ark.ProtocolHttp
	}

	return &defaultPeerScanner{
		client:       client,
		protocol:     protocol,
		probeTimeout: probeTimeout,
		concurrency:  concurrency,
		badPeers:     lru.New(BadPeerCacheSize),
		badPeerTtl:   badPeerTtl,
		lock:         &sync.Mutex{},
		now:          time.Now,
	}
}

// Scan lists the peers of the default host and returns those answering node/syncing without
// syncing, highest first and then fastest first.
func (s *defaultPeerScanner) Scan(ctx context.Context) (*ScanResult, error) {
	list, err := s.client.GetPeerList(ctx)
	if err != nil {
		return nil, err
	}

	probed := atomic.NewInt64(0)
	skipped := atomic.NewInt64(0)
	failed := atomic.NewInt64(0)

	results := &sync.Map{}
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)

	for _, peer := range list.Peers {
		if peer == nil || peer.IP == "" {
			continue
		}

		if err := ctx.Err(); err != nil {
			g.Wait()
			return nil, err
		}

		host := s.peerHost(peer)
		if s.isBad(host) {
			skipped.Inc()
			continue
		}

		peer := peer
		g.Go(func() error {
			probed.Inc()
			start := time.Now()
			status, err := s.client.GetPeerSyncing(gctx, host, s.probeTimeout)
			if err != nil {
				log.Verbosef("Peer %s did not answer, err = %s", host, err)
				failed.Inc()
				s.markBad(host)
				return nil
			}
			if status.Syncing {
				log.Verbosef("Peer %s is syncing", host)
				return nil
			}

			scanned := *peer
			scanned.Height = status.Height
			scanned.Latency = time.Since(start).Milliseconds()
			results.Store(host, &scanned)
			return nil
		})
	}
	g.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	peers := make([]*types.Peer, 0)
	results.Range(func(key, value interface{}) bool {
		peers = append(peers, value.(*types.Peer))
		return true
	})

	SortPeers(peers)

	return &ScanResult{
		Peers:   peers,
		Probed:  probed.Load(),
		Skipped: skipped.Load(),
		Failed:  failed.Load(),
	}, nil
}

// peerHost is the API base url of a peer. Peers advertise their p2p port; the API port comes
// from the plugin list when present.
func (s *defaultPeerScanner) peerHost(peer *types.Peer) string {
	port := peer.Port
	if apiPort, ok := peer.Ports.FindPlugin(CoreApiPlugin); ok && types.IsValidPort(apiPort) {
		port = apiPort
	}

	return fmt.Sprintf("%s://%s", s.protocol, net.JoinHostPort(peer.IP, strconv.Itoa(port)))
}

func (s *defaultPeerScanner) isBad(host string) bool {
	s.lock.Lock()
	defer s.lock.Unlock()

	value, ok := s.badPeers.Get(host)
	if !ok {
		return false
	}

	if s.now().Sub(value.(time.Time)) >= s.badPeerTtl {
		s.badPeers.Remove(host)
		return false
	}

	return true
}

func (s *defaultPeerScanner) markBad(host string) {
	s.lock.Lock()
	defer s.lock.Unlock()

	s.badPeers.Add(host, s.now())
}

// SortPeers orders peers by height descending, then latency ascending.
func SortPeers(peers []*types.Peer) {
	sort.SliceStable(peers, func(i, j int) bool {
		if peers[i].Height != peers[j].Height {
			return peers[i].Height > peers[j].Height
		}

		return peers[i].Latency < peers[j].Latency
	})
}
