package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/frostlink/frost/internal/api"
	"github.com/frostlink/frost/internal/config"
	"github.com/frostlink/frost/internal/frost"
	"github.com/frostlink/frost/internal/store"
)

func newKeygenCmd(cfg *config.Config) *cobra.Command {
	var threshold, maxSigners int

	cmd := &cobra.Command{
		Use:   "keygen",
		Short: "Run a trusted-dealer key generation and write share_{id}.json and pubkey.json",
		RunE: func(cmd *cobra.Command, args []string) error {
			shares, pub, err := frost.KeyGen(maxSigners, threshold)
			if err != nil {
				return err
			}

			s, err := store.New(cfg.DataDir)
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

			fmt.Printf("generated %d-of-%d key shares in %s\n", threshold, maxSigners, cfg.DataDir)
			fmt.Printf("group public key: %s\n", api.EncodeGroupPublicKey(pub))
			return nil
		},
	}

	cmd.Flags().IntVarP(&threshold, "threshold", "t", 2, "signing threshold t")
	cmd.Flags().IntVarP(&maxSigners, "max-signers", "n", 3, "total number of signers n")
	return cmd
}
