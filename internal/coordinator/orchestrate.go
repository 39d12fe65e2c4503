package coordinator

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/frostlink/frost/internal/frost"
	"github.com/frostlink/frost/internal/frosterr"
	"github.com/frostlink/frost/internal/signer"
)

// Orchestrate runs the full high-level signing flow for a single process
// holding every participating signer directly:
// create_session; in parallel call each signer's commit; gather; build the
// signing package; in parallel call sign; aggregate; verify; delete the
// session. It is the demo-mode / CLI "demo-basic" and HTTP "/sign" code
// path — a production deployment would instead drive signers over the
// Transport from separate processes, calling the lower-level
// CreateSession/AddCommitment/SigningPackage/Aggregate/Verify methods
// directly as each transport message arrives.
//
// On any error, the session is removed and, for signers that may hold a
// live nonce, cleared. This is an errgroup fan-out over the signer map
// rather than a channel-driven goroutine pool, since the set of
// participants is known up front.
func (c *Coordinator) Orchestrate(
	ctx context.Context,
	signers map[frost.SignerID]*signer.Signer,
	message []byte,
) (SessionID, *frost.GroupSignature, error) {
	session := c.CreateSession(message)

	commitments, err := c.collectCommitments(ctx, session, signers)
	if err != nil {
		c.abort(session, signers)
		return session, nil, err
	}

	for _, commitment := range commitments {
		if err := c.AddCommitment(session, commitment); err != nil {
			c.abort(session, signers)
			return session, nil, err
		}
	}

	pkg, err := c.SigningPackage(session)
	if err != nil {
		c.abort(session, signers)
		return session, nil, err
	}

	// Only the signers named in pkg's sealed commitments are asked to sign;
	// any other participant that committed is left holding a nonce it will
	// never use. Clear it now rather than leaking it for the life of the
	// process.
	clearUnsealedCommitters(pkg, session, signers)

	shares, err := c.collectShares(ctx, session, pkg, signers)
	if err != nil {
		c.Remove(session)
		return session, nil, err
	}

	sig, err := c.Aggregate(pkg, shares)
	if err != nil {
		c.Remove(session)
		return session, nil, err
	}

	if !c.Verify(message, sig) {
		c.Remove(session)
		return session, nil, frosterr.Wrapf(frosterr.ErrVerificationFailed, "session %s", session)
	}

	c.Remove(session)
	return session, sig, nil
}

// clearUnsealedCommitters drops the round-one nonce of every participant
// that committed but was not among the ids pkg sealed into its signing
// package, so an over-supplied signer set never leaves secret nonce
// material resident in a signer's nonce store past this session.
func clearUnsealedCommitters(pkg *frost.SigningPackage, session SessionID, signers map[frost.SignerID]*signer.Signer) {
	sealed := make(map[frost.SignerID]struct{}, len(pkg.Commitments))
	for _, id := range pkg.SignerIDs() {
		sealed[id] = struct{}{}
	}
	for id, s := range signers {
		if _, ok := sealed[id]; !ok {
			s.Clear(session)
		}
	}
}

// collectCommitments fans out session's round-one commit call across
// signers in parallel. Commitments may arrive in any order; the caller
// serializes them into the session through AddCommitment.
func (c *Coordinator) collectCommitments(
	ctx context.Context,
	session SessionID,
	signers map[frost.SignerID]*signer.Signer,
) ([]*frost.SigningCommitment, error) {
	ids := make([]frost.SignerID, 0, len(signers))
	for id := range signers {
		ids = append(ids, id)
	}

	results := make([]*frost.SigningCommitment, len(ids))
	group, _ := errgroup.WithContext(ctx)

	for i, id := range ids {
		i, id := i, id
		group.Go(func() error {
			commitment, err := signers[id].Commit(session)
			if err != nil {
				return err
			}
			results[i] = commitment
			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// collectShares fans out round-two sign calls for pkg across the signers
// named in pkg.Commitments, in parallel.
func (c *Coordinator) collectShares(
	ctx context.Context,
	session SessionID,
	pkg *frost.SigningPackage,
	signers map[frost.SignerID]*signer.Signer,
) ([]*frost.SignatureShare, error) {
	ids := pkg.SignerIDs()
	results := make([]*frost.SignatureShare, len(ids))
	group, _ := errgroup.WithContext(ctx)

	for i, id := range ids {
		i, id := i, id
		group.Go(func() error {
			share, err := signers[id].Sign(session, pkg)
			if err != nil {
				return err
			}
			results[i] = share
			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// abort clears any nonce the participating signers may be holding for
// session and removes the session from the coordinator's map. Signers that
// never committed are unaffected, matching Clear's no-op semantics.
func (c *Coordinator) abort(session SessionID, signers map[frost.SignerID]*signer.Signer) {
	for _, s := range signers {
		s.Clear(session)
	}
	c.Remove(session)
}
