package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/frostlink/frost/internal/config"
	"github.com/frostlink/frost/internal/frost"
	"github.com/frostlink/frost/internal/frosterr"
	"github.com/frostlink/frost/internal/store"
)

func newAggregateCmd(cfg *config.Config) *cobra.Command {
	var sessionID string
	var signerIDs string

	cmd := &cobra.Command{
		Use:   "aggregate",
		Short: "Aggregate a threshold of signature shares into the final signature and write signature.json",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := store.New(cfg.DataDir)
			if err != nil {
				return err
			}

			pub, err := s.ReadPubkey()
			if err != nil {
				return err
			}

			packageSessionID, pkg, err := s.ReadSigningPackage()
			if err != nil {
				return err
			}
			if packageSessionID != sessionID {
				return frosterr.Wrapf(frosterr.ErrSessionMismatch, "signing package belongs to session %s, not %s", packageSessionID, sessionID)
			}

			ids, err := parseSignerIDList(signerIDs)
			if err != nil {
				return err
			}
			if len(ids) < pub.Threshold {
				return frosterr.Wrapf(frosterr.ErrInsufficientShares, "need %d shares, got %d", pub.Threshold, len(ids))
			}

			var rawIDs []uint32
			shares := make([]*frost.SignatureShare, 0, len(ids))
			for _, id := range ids {
				share, err := s.ReadSignatureShare(id)
				if err != nil {
					return err
				}
				ok, err := frost.VerifyShare(pub, pkg, share)
				if err != nil {
					return err
				}
				if !ok {
					return frosterr.Wrapf(frosterr.ErrInvalidShare, "signer %d: share failed verification", id)
				}
				shares = append(shares, share)
				rawIDs = append(rawIDs, uint32(id))
			}

			sig, err := frost.Aggregate(pub, pkg, shares)
			if err != nil {
				return err
			}

			if !frost.Verify(pub, pkg.Message, sig) {
				return frosterr.ErrVerificationFailed
			}

			if err := s.WriteSignature(sessionID, pkg.Message, rawIDs, sig); err != nil {
				return err
			}

			fmt.Printf("session %s: aggregated and verified signature from %d shares\n", sessionID, len(shares))
			return nil
		},
	}

	cmd.Flags().StringVar(&sessionID, "session-id", "", "session id to aggregate")
	cmd.Flags().StringVar(&signerIDs, "signer-ids", "", "comma-separated signer ids whose shares to include")
	cmd.MarkFlagRequired("session-id")
	cmd.MarkFlagRequired("signer-ids")
	return cmd
}
