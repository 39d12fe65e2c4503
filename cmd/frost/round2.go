package main

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/frostlink/frost/internal/config"
	"github.com/frostlink/frost/internal/frost"
	"github.com/frostlink/frost/internal/frosterr"
	"github.com/frostlink/frost/internal/store"
)

// newRound2Cmd recovers the nonce round1 persisted to the unsafe demo
// nonce file, consumes it exactly once, and removes the file afterward so
// it cannot be replayed into a second signature.
func newRound2Cmd(cfg *config.Config) *cobra.Command {
	var signerID int
	var sessionIDStr string

	cmd := &cobra.Command{
		Use:   "round2",
		Short: "Generate one signer's round-two signature share and write sig_share_{id}.json",
		RunE: func(cmd *cobra.Command, args []string) error {
			session, err := uuid.Parse(sessionIDStr)
			if err != nil {
				return err
			}

			s, err := store.New(cfg.DataDir)
			if err != nil {
				return err
			}

			share, err := s.ReadShare(frost.SignerID(signerID))
			if err != nil {
				return err
			}

			packageSessionID, pkg, err := s.ReadSigningPackage()
			if err != nil {
				return err
			}
			if packageSessionID != sessionIDStr {
				return frosterr.Wrapf(frosterr.ErrSessionMismatch, "signing package belongs to session %s, not %s", packageSessionID, sessionIDStr)
			}

			nonces, err := s.ReadUnsafeNonceFile(session, share.ID)
			if err != nil {
				return err
			}
			defer nonces.Zeroize()

			sigShare, err := frost.SignShare(share, nonces, pkg)
			if err != nil {
				return err
			}

			if err := s.RemoveUnsafeNonceFile(session, share.ID); err != nil {
				return err
			}
			if err := s.WriteSignatureShare(sessionIDStr, sigShare); err != nil {
				return err
			}

			fmt.Printf("session %s: signer %d produced signature share\n", sessionIDStr, share.ID)
			return nil
		},
	}

	cmd.Flags().IntVarP(&signerID, "signer-id", "i", 0, "signer id whose share to load")
	cmd.Flags().StringVar(&sessionIDStr, "session-id", "", "session id this share belongs to")
	cmd.MarkFlagRequired("signer-id")
	cmd.MarkFlagRequired("session-id")
	return cmd
}
