package main

import (
	"crypto/rand"
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/frostlink/frost/internal/api"
	"github.com/frostlink/frost/internal/config"
	"github.com/frostlink/frost/internal/frost"
	"github.com/frostlink/frost/internal/store"
)

// newRound1Cmd runs round one in a throwaway process: it calls frost.Commit
// directly rather than going through a signer.Signer, since the in-memory
// nonce store a Signer actor relies on cannot survive past this command's
// exit. The generated nonce is persisted to the gated unsafe demo nonce
// file so a later round2 invocation, in its own process, can recover it.
func newRound1Cmd(cfg *config.Config) *cobra.Command {
	var signerID int
	var sessionID string
	var messageHex string

	cmd := &cobra.Command{
		Use:   "round1",
		Short: "Generate one signer's round-one commitment and write commitment_{id}.json",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := store.New(cfg.DataDir)
			if err != nil {
				return err
			}

			share, err := s.ReadShare(frost.SignerID(signerID))
			if err != nil {
				return err
			}

			message, err := api.HexDecode(messageHex)
			if err != nil {
				return err
			}

			session := uuid.New()
			if sessionID != "" {
				session, err = uuid.Parse(sessionID)
				if err != nil {
					return err
				}
			}

			nonces, commitment, err := frost.Commit(rand.Reader, share)
			if err != nil {
				return err
			}

			if err := s.WriteUnsafeNonceFile(cfg.UnsafeDemoNonceFile, session, share.ID, nonces); err != nil {
				return err
			}
			if err := s.WriteCommitment(session.String(), message, commitment); err != nil {
				return err
			}

			fmt.Printf("session %s: signer %d committed\n", session, share.ID)
			return nil
		},
	}

	cmd.Flags().IntVarP(&signerID, "signer-id", "i", 0, "signer id whose share to load")
	cmd.Flags().StringVar(&sessionID, "session-id", "", "session id to commit under (generated if omitted)")
	cmd.Flags().StringVarP(&messageHex, "message", "m", "", "hex-encoded message this round is building toward (audit only, not signed in round one)")
	cmd.MarkFlagRequired("signer-id")
	cmd.MarkFlagRequired("message")
	return cmd
}
