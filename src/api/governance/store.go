package governance

import (
	"context"
	"time"

	"github.com/bandhall/bandhall/src/api/types"
)

// Store is the relational backing for the engine. The MySQL
// implementation lives in src/api/data; tests use an in-memory fake.
type Store interface {
	Band(ctx context.Context, id string) (*types.Band, error)
	// Member returns nil, nil when the user has no row in the band.
	Member(ctx context.Context, bandID, userID string) (*types.BandMember, error)
	ActiveMembers(ctx context.Context, bandID string) ([]types.BandMember, error)

	CreateProposal(ctx context.Context, p *types.Proposal) error
	Proposal(ctx context.Context, id string) (*types.Proposal, error)
	BandProposals(ctx context.Context, bandID string) ([]types.Proposal, error)
	// PendingProposals lists OPEN proposals across every band where the
	// user is ACTIVE with a role in voterRoles and has not voted yet,
	// ordered by ascending voting_ends_at.
	PendingProposals(ctx context.Context, userID string, voterRoles []string) ([]types.Proposal, error)
	// CloseProposal transitions OPEN -> status atomically. Returns
	// false when the proposal was no longer OPEN, so concurrent closers
	// get exactly one winner.
	CloseProposal(ctx context.Context, id, status string, closedAt time.Time) (bool, error)

	// UpsertVote writes the single (proposal, voter) row, last write
	// wins under the store's unique index. Reports whether the row was
	// freshly created.
	UpsertVote(ctx context.Context, v *types.ProposalVote) (created bool, err error)
	Votes(ctx context.Context, proposalID string) ([]types.ProposalVote, error)
}

// Notifier is the outbound notification sink. Delivery is best effort,
// single attempt per recipient; failures are logged by the engine and
// never abort a lifecycle transition.
type Notifier interface {
	Notify(ctx context.Context, userID, event string, payload map[string]any) error
}

// Notification event types emitted by the engine.
const (
	EventProposalCreated  = "proposal_created"
	EventProposalResolved = "proposal_resolved"
)
