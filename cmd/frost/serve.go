package main

import (
	"fmt"
	"net/http"

	"github.com/spf13/cobra"

	"github.com/frostlink/frost/internal/config"
	"github.com/frostlink/frost/internal/coordinator"
	"github.com/frostlink/frost/internal/frost"
	"github.com/frostlink/frost/internal/httpapi"
	"github.com/frostlink/frost/internal/logging"
	"github.com/frostlink/frost/internal/signer"
	"github.com/frostlink/frost/internal/store"
	"github.com/frostlink/frost/internal/transport"
)

// newServeCmd starts the HTTP dashboard and batch-sign API over the key
// material found in the data directory, generating a fresh one if none
// exists yet. All signers for the loaded group run in this one process,
// matching the coordinator's Orchestrate-based "/sign" code path.
func newServeCmd(cfg *config.Config) *cobra.Command {
	var threshold, maxSigners int

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP dashboard and batch-sign API",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := store.New(cfg.DataDir)
			if err != nil {
				return err
			}

			pub, err := s.ReadPubkey()
			var shares []*frost.KeyShare
			if err != nil {
				logging.HTTPLog.Infof("no existing key material in %s, generating a fresh %d-of-%d group", cfg.DataDir, threshold, maxSigners)
				shares, pub, err = frost.KeyGen(maxSigners, threshold)
				if err != nil {
					return err
				}
				for _, share := range shares {
					if err := s.WriteShare(share); err != nil {
						return err
					}
				}
				if err := s.WritePubkey(pub); err != nil {
					return err
				}
			} else {
				shares = make([]*frost.KeyShare, 0, pub.MaxSigners)
				for id := range pub.VerificationShares {
					share, err := s.ReadShare(id)
					if err != nil {
						return err
					}
					shares = append(shares, share)
				}
			}

			signers := make(map[frost.SignerID]*signer.Signer, len(shares))
			for _, share := range shares {
				signers[share.ID] = signer.New(share)
			}

			coord := coordinator.New(pub)
			defer coord.Close()

			link := transport.NewSimulatedLink(cfg.TransportConfig())

			server := httpapi.New(coord, signers, link)

			fmt.Printf("frost: serving on %s (%d-of-%d group)\n", cfg.HTTPAddr, pub.Threshold, pub.MaxSigners)
			return http.ListenAndServe(cfg.HTTPAddr, server)
		},
	}

	cmd.Flags().IntVarP(&threshold, "threshold", "t", 2, "signing threshold t, used only if no key material exists yet")
	cmd.Flags().IntVarP(&maxSigners, "max-signers", "n", 3, "total number of signers n, used only if no key material exists yet")
	cfg.BindTransportFlags(cmd.Flags())
	cfg.BindHTTPFlags(cmd.Flags())
	return cmd
}
