package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/sisu-network/arkeyes/chains/ark"
	"github.com/sisu-network/arkeyes/chains/ark/types"
	"github.com/sisu-network/arkeyes/config"
	"github.com/sisu-network/arkeyes/core"
	"github.com/sisu-network/arkeyes/network"
	"github.com/sisu-network/arkeyes/server"
	"github.com/sisu-network/lib/log"
	"github.com/spf13/cobra"
)

const (
	passphraseEnv       = "ARK_PASSPHRASE"
	secondPassphraseEnv = "ARK_SECOND_PASSPHRASE"
)

// app is what every command needs to talk to the node.
type app struct {
	cfg      *config.Ark
	client   *ark.DefaultClient
	registry *prometheus.Registry
}

func newApp() (*app, error) {
	cfg, err := config.Load(configFile)
	if err != nil {
		return nil, err
	}

	var networkHttp network.Http
	var registry *prometheus.Registry
	if cfg.MetricsEnabled {
		registry = prometheus.NewRegistry()
		metrics, err := network.NewMetrics(registry)
		if err != nil {
			return nil, err
		}
		networkHttp = network.NewHttpWithMetrics(metrics)
	} else {
		networkHttp = network.NewHttp()
	}

	log.Verbose("Using node ", cfg.CurrentHost(), " on network ", cfg.Network)

	return &app{
		cfg:      cfg,
		client:   ark.NewClient(cfg, networkHttp),
		registry: registry,
	}, nil
}

func printJson(v interface{}) error {
	bz, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}

	fmt.Println(string(bz))
	return nil
}

// runWithApp loads the configuration and runs f with a context cancelled on interrupt.
func runWithApp(f func(ctx context.Context, a *app, args []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		return f(ctx, a, args)
	}
}

func serveCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the node client over JSON-RPC",
		Args:  cobra.NoArgs,
		RunE: runWithApp(func(ctx context.Context, a *app, args []string) error {
			scanner := core.NewPeerScanner(a.cfg, a.client)
			handler, err := server.NewRpcServer(server.NewApi(a.client, scanner))
			if err != nil {
				return err
			}

			var gatherer prometheus.Gatherer
			if a.registry != nil {
				gatherer = a.registry
			}

			return server.NewServer(handler, gatherer, a.cfg.ServerPort).Run(ctx)
		}),
	}
}

func walletCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "wallet <address>",
		Short: "Show a wallet",
		Args:  cobra.ExactArgs(1),
		RunE: runWithApp(func(ctx context.Context, a *app, args []string) error {
			wallet, err := a.client.GetWallet(ctx, args[0])
			if err != nil {
				return err
			}

			return printJson(wallet)
		}),
	}
}

func votesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "votes <address>",
		Short: "Show the delegate a wallet currently votes for",
		Args:  cobra.ExactArgs(1),
		RunE: runWithApp(func(ctx context.Context, a *app, args []string) error {
			vote, err := a.client.GetWalletVotes(ctx, args[0])
			if err != nil {
				return err
			}

			return printJson(vote)
		}),
	}
}

func delegatesCommand() *cobra.Command {
	var page, limit int

	cmd := &cobra.Command{
		Use:   "delegates",
		Short: "List delegates by rank",
		Long: "Without --page the active delegates and as many standby delegates are fetched " +
			"and split into the two groups.",
		Args: cobra.NoArgs,
		RunE: runWithApp(func(ctx context.Context, a *app, args []string) error {
			if page > 0 {
				list, err := a.client.GetDelegateList(ctx, &types.DelegateListOptions{Page: page, Limit: limit})
				if err != nil {
					return err
				}

				return printJson(list)
			}

			seats := a.cfg.CurrentNetwork().ActiveDelegates
			delegates, err := ark.FetchDelegates(ctx, a.client, seats*2)
			if err != nil {
				return err
			}
			if err := types.ValidateRanks(delegates); err != nil {
				log.Warn("Delegate ranks are inconsistent: ", err)
			}

			active, standby := ark.PartitionDelegates(delegates, seats)
			out := map[string]interface{}{
				"active":  active,
				"standby": standby,
			}

			if premined := a.cfg.CurrentNetwork().Premined; premined != "" {
				amount, err := types.ParseAmount(premined)
				if err != nil {
					return fmt.Errorf("invalid premined amount for network %s: %w", a.cfg.Network, err)
				}

				forged, err := ark.ForgedSupply(ctx, a.client, amount)
				if err != nil {
					log.Warn("Cannot read the supply, err = ", err)
				} else {
					out["forged"] = forged.String()
				}
			}

			return printJson(out)
		}),
	}

	cmd.Flags().IntVar(&page, "page", 0, "page to fetch, starting at 1")
	cmd.Flags().IntVar(&limit, "limit", types.DefaultDelegateListOptions().Limit, "delegates per page")

	return cmd
}

func voteIntentCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "vote-intent <address> <delegate-public-key>",
		Short: "Show the vote transaction a wallet would send to vote for a delegate",
		Long: "The passphrase is read from ARK_PASSPHRASE and the optional second passphrase from " +
			"ARK_SECOND_PASSPHRASE. Neither is printed.",
		Args: cobra.ExactArgs(2),
		RunE: runWithApp(func(ctx context.Context, a *app, args []string) error {
			keys := types.WalletKeys{
				Key:       os.Getenv(passphraseEnv),
				SecondKey: os.Getenv(secondPassphraseEnv),
			}

			intent, err := ark.ResolveVoteIntent(ctx, a.client, args[0], args[1], keys)
			if err != nil {
				return err
			}

			return printJson(map[string]interface{}{
				"type":            intent.Type.String(),
				"asset":           intent.Asset(),
				"delegate":        intent.DelegatePublicKey,
				"fee":             intent.Fee,
				"secondSignature": intent.SecondPassphrase != "",
			})
		}),
	}
}

func feesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "fees",
		Short: "Show the static transaction fees",
		Args:  cobra.NoArgs,
		RunE: runWithApp(func(ctx context.Context, a *app, args []string) error {
			fees, err := a.client.GetTransactionFees(ctx)
			if err != nil {
				return err
			}

			return printJson(fees)
		}),
	}
}

func peerConfigCommand() *cobra.Command {
	var protocol string

	cmd := &cobra.Command{
		Use:   "peer-config <ip> <port>",
		Short: "Find the wallet API of a peer and show its configuration",
		Args:  cobra.ExactArgs(2),
		RunE: runWithApp(func(ctx context.Context, a *app, args []string) error {
			port, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("invalid port %s", args[1])
			}

			if protocol == "" {
				protocol = a.cfg.CurrentNetwork().Protocol
			}

			peerCfg, err := a.client.GetPeerConfig(ctx, args[0], port, protocol)
			if err != nil {
				return err
			}

			return printJson(peerCfg)
		}),
	}

	cmd.Flags().StringVar(&protocol, "protocol", "", "http or https, defaults to the network protocol")

	return cmd
}

func peersCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "peers",
		Short: "List responsive peers by height and latency",
		Args:  cobra.NoArgs,
		RunE: runWithApp(func(ctx context.Context, a *app, args []string) error {
			result, err := core.NewPeerScanner(a.cfg, a.client).Scan(ctx)
			if err != nil {
				return err
			}

			log.Infof("Probed %d peers, %d failed, %d skipped", result.Probed, result.Failed, result.Skipped)
			return printJson(result.Peers)
		}),
	}
}

func configTemplateCommand() *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "config-template",
		Short: "Print the default configuration file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if out != "" {
				return config.Write(out, config.Default())
			}

			bz, err := config.Render(config.Default())
			if err != nil {
				return err
			}

			fmt.Print(string(bz))
			return nil
		},
	}

	cmd.Flags().StringVar(&out, "out", "", "write the template to this file")

	return cmd
}
