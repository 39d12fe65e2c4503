package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/frostlink/frost/internal/api"
	"github.com/frostlink/frost/internal/config"
	"github.com/frostlink/frost/internal/frost"
	"github.com/frostlink/frost/internal/store"
)

func newCreatePackageCmd(cfg *config.Config) *cobra.Command {
	var sessionID string
	var messageHex string
	var signerIDs string

	cmd := &cobra.Command{
		Use:   "create-package",
		Short: "Assemble the round-two signing package from a threshold of commitment files",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := store.New(cfg.DataDir)
			if err != nil {
				return err
			}

			ids, err := parseSignerIDList(signerIDs)
			if err != nil {
				return err
			}

			commitments := make([]*frost.SigningCommitment, 0, len(ids))
			for _, id := range ids {
				c, err := s.ReadCommitment(id)
				if err != nil {
					return err
				}
				commitments = append(commitments, c)
			}

			message, err := api.HexDecode(messageHex)
			if err != nil {
				return err
			}

			pkg, err := frost.ComputeSigningPackage(message, commitments)
			if err != nil {
				return err
			}

			if err := s.WriteSigningPackage(sessionID, pkg); err != nil {
				return err
			}

			fmt.Printf("session %s: signing package assembled from %d commitments\n", sessionID, len(commitments))
			return nil
		},
	}

	cmd.Flags().StringVar(&sessionID, "session-id", "", "session id this package belongs to")
	cmd.Flags().StringVarP(&messageHex, "message", "m", "", "hex-encoded message to sign")
	cmd.Flags().StringVar(&signerIDs, "signer-ids", "", "comma-separated signer ids whose commitments to include")
	cmd.MarkFlagRequired("session-id")
	cmd.MarkFlagRequired("message")
	cmd.MarkFlagRequired("signer-ids")
	return cmd
}

func parseSignerIDList(raw string) ([]frost.SignerID, error) {
	parts := strings.Split(raw, ",")
	ids := make([]frost.SignerID, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		n, err := strconv.Atoi(p)
		if err != nil {
			return nil, fmt.Errorf("invalid signer id %q: %w", p, err)
		}
		ids = append(ids, frost.SignerID(n))
	}
	return ids, nil
}
