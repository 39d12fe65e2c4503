package main

import (
	"context"
	"fmt"
	"math/rand"

	"github.com/spf13/cobra"

	"github.com/frostlink/frost/internal/api"
	"github.com/frostlink/frost/internal/config"
	"github.com/frostlink/frost/internal/coordinator"
	"github.com/frostlink/frost/internal/frost"
	"github.com/frostlink/frost/internal/signer"
	"github.com/frostlink/frost/internal/store"
)

// newDemoBasicCmd runs the entire protocol in one process: key generation,
// both signing rounds, aggregation and verification, without the split
// CLI's commitment, signing-package and signature-share files or the
// unsafe nonce file. It writes only pubkey.json and signature.json, so a
// later verify invocation can check the result. It exists to demonstrate
// the happy path end to end with a single command.
func newDemoBasicCmd(cfg *config.Config) *cobra.Command {
	var threshold, maxSigners int
	var messageHex string

	cmd := &cobra.Command{
		Use:   "demo-basic",
		Short: "Run a full in-process keygen + sign + verify demonstration",
		RunE: func(cmd *cobra.Command, args []string) error {
			shares, pub, err := frost.KeyGen(maxSigners, threshold)
			if err != nil {
				return err
			}

			signers := make(map[frost.SignerID]*signer.Signer, len(shares))
			for _, share := range shares {
				signers[share.ID] = signer.New(share)
			}

			message, err := api.HexDecode(messageHex)
			if err != nil {
				return err
			}

			participants := pickParticipants(signers, threshold)

			coord := coordinator.New(pub)
			defer coord.Close()

			session, sig, err := coord.Orchestrate(context.Background(), participants, message)
			if err != nil {
				return err
			}

			var signerIDs []uint32
			for id := range participants {
				signerIDs = append(signerIDs, uint32(id))
			}

			s, err := store.New(cfg.DataDir)
			if err != nil {
				return err
			}
			if err := s.WritePubkey(pub); err != nil {
				return err
			}
			if err := s.WriteSignature(session.String(), message, signerIDs, sig); err != nil {
				return err
			}

			hexSig, err := api.EncodeSignature(sig)
			if err != nil {
				return err
			}

			fmt.Printf("session %s: signed and verified with %d of %d signers\n", session, len(participants), maxSigners)
			fmt.Printf("signature: %s\n", hexSig)
			return nil
		},
	}

	cmd.Flags().IntVarP(&threshold, "threshold", "t", 2, "signing threshold t")
	cmd.Flags().IntVarP(&maxSigners, "max-signers", "n", 3, "total number of signers n")
	cmd.Flags().StringVarP(&messageHex, "message", "m", "", "hex-encoded message to sign")
	cmd.MarkFlagRequired("message")
	return cmd
}

// pickParticipants selects exactly threshold signers out of the full set,
// so demo-basic exercises the same "any qualifying subset" path a real
// deployment would rely on rather than always using every signer.
func pickParticipants(signers map[frost.SignerID]*signer.Signer, threshold int) map[frost.SignerID]*signer.Signer {
	ids := make([]frost.SignerID, 0, len(signers))
	for id := range signers {
		ids = append(ids, id)
	}
	rand.Shuffle(len(ids), func(i, j int) { ids[i], ids[j] = ids[j], ids[i] })

	if threshold > len(ids) {
		threshold = len(ids)
	}

	selected := make(map[frost.SignerID]*signer.Signer, threshold)
	for _, id := range ids[:threshold] {
		selected[id] = signers[id]
	}
	return selected
}
