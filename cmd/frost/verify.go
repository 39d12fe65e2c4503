package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/frostlink/frost/internal/api"
	"github.com/frostlink/frost/internal/config"
	"github.com/frostlink/frost/internal/frost"
	"github.com/frostlink/frost/internal/frosterr"
	"github.com/frostlink/frost/internal/store"
)

func newVerifyCmd(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "verify",
		Short: "Verify signature.json against pubkey.json and exit non-zero on failure",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := store.New(cfg.DataDir)
			if err != nil {
				return err
			}

			pub, err := s.ReadPubkey()
			if err != nil {
				return err
			}
			file, sig, err := s.ReadSignature()
			if err != nil {
				return err
			}

			message, err := api.HexDecode(file.MessageHex)
			if err != nil {
				return err
			}

			if !frost.Verify(pub, message, sig) {
				fmt.Fprintf(os.Stderr, "signature for session %s: INVALID\n", file.SessionID)
				return frosterr.ErrVerificationFailed
			}

			fmt.Printf("signature for session %s: VALID\n", file.SessionID)
			return nil
		},
	}
	return cmd
}
