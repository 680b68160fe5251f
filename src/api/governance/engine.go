package governance

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/bandhall/bandhall/src/api/types"
)

// Engine owns the proposal lifecycle: create, vote, close, query. It
// holds no state across calls; the store is the single source of truth
// so that any number of API instances can serve the same band.
type Engine struct {
	store    Store
	notifier Notifier
	now      func() time.Time
}

func New(store Store, notifier Notifier) *Engine {
	return &Engine{store: store, notifier: notifier, now: time.Now}
}

// ProposalInput carries the caller-supplied fields for a new proposal.
// Free text is sanitized at the web layer, not here.
type ProposalInput struct {
	Title            string
	Description      string
	Type             string
	Priority         string
	ProblemStatement string
	ExpectedOutcome  string
	BudgetRequested  string
	Milestones       string
	StartsAt         *time.Time
	EndsAt           *time.Time
}

// CreateProposal opens a new proposal. The voting deadline is fixed
// here from the band's configured period and never recomputed, even if
// the band settings change later.
func (e *Engine) CreateProposal(ctx context.Context, bandID, creatorID string, in ProposalInput) (*types.Proposal, error) {
	band, err := e.store.Band(ctx, bandID)
	if err != nil {
		return nil, fmt.Errorf("load band: %w", err)
	}
	if band == nil {
		return nil, ErrNotFound
	}

	creator, err := e.store.Member(ctx, bandID, creatorID)
	if err != nil {
		return nil, fmt.Errorf("load member: %w", err)
	}
	if !CanCreate(band, creator) {
		return nil, ErrNotAuthorized
	}

	now := e.now()
	p := &types.Proposal{
		ID:               uuid.NewString(),
		BandID:           bandID,
		CreatedByID:      creatorID,
		Title:            in.Title,
		Description:      in.Description,
		Type:             in.Type,
		Priority:         in.Priority,
		ProblemStatement: in.ProblemStatement,
		ExpectedOutcome:  in.ExpectedOutcome,
		BudgetRequested:  in.BudgetRequested,
		Milestones:       in.Milestones,
		StartsAt:         in.StartsAt,
		EndsAt:           in.EndsAt,
		VotingEndsAt:     now.AddDate(0, 0, band.VotingPeriodDays),
		Status:           types.StatusOpen,
	}
	if p.Type == "" {
		p.Type = types.TypeGeneral
	}
	if p.Priority == "" {
		p.Priority = types.PriorityMedium
	}

	if err := e.store.CreateProposal(ctx, p); err != nil {
		return nil, fmt.Errorf("create proposal: %w", err)
	}

	// Fan out to eligible voters, creator excluded. Best effort: a
	// failed notification never rolls back the proposal.
	members, err := e.store.ActiveMembers(ctx, bandID)
	if err != nil {
		log.Printf("governance: list members for proposal %s: %v", p.ID, err)
		return p, nil
	}
	payload := map[string]any{
		"proposal_id": p.ID,
		"band_id":     bandID,
		"title":       p.Title,
	}
	for i := range members {
		m := members[i]
		if m.UserID == creatorID || !CanVote(&m) {
			continue
		}
		if err := e.notifier.Notify(ctx, m.UserID, EventProposalCreated, payload); err != nil {
			log.Printf("governance: notify %s about proposal %s: %v", m.UserID, p.ID, err)
		}
	}
	return p, nil
}

// CastVote records or overwrites the voter's ballot. Returns true when
// this was the member's first vote on the proposal, false on an
// overwrite; callers only use that for messaging.
func (e *Engine) CastVote(ctx context.Context, proposalID, voterID, value, comment string) (bool, error) {
	switch value {
	case types.VoteYes, types.VoteNo, types.VoteAbstain:
	default:
		return false, fmt.Errorf("invalid vote value %q", value)
	}

	p, err := e.store.Proposal(ctx, proposalID)
	if err != nil {
		return false, fmt.Errorf("load proposal: %w", err)
	}
	if p == nil {
		return false, ErrNotFound
	}
	if p.Status != types.StatusOpen {
		return false, ErrVotingClosed
	}
	// The deadline is enforced lazily, here. Past it the proposal still
	// reads OPEN until an explicit close, but no new votes land.
	if !e.now().Before(p.VotingEndsAt) {
		return false, ErrVotingClosed
	}

	voter, err := e.store.Member(ctx, p.BandID, voterID)
	if err != nil {
		return false, fmt.Errorf("load member: %w", err)
	}
	if !CanVote(voter) {
		return false, ErrNotAuthorized
	}

	created, err := e.store.UpsertVote(ctx, &types.ProposalVote{
		ProposalID: proposalID,
		UserID:     voterID,
		Vote:       value,
		Comment:    comment,
	})
	if err != nil {
		return false, fmt.Errorf("upsert vote: %w", err)
	}
	return created, nil
}

// CloseProposal resolves an OPEN proposal to APPROVED or REJECTED
// using the band's voting method. Close is never automatic; an expired
// proposal waits here. The store's conditional update guarantees a
// single winner when two closers race.
func (e *Engine) CloseProposal(ctx context.Context, proposalID, closerID string) (*types.Proposal, error) {
	p, err := e.store.Proposal(ctx, proposalID)
	if err != nil {
		return nil, fmt.Errorf("load proposal: %w", err)
	}
	if p == nil {
		return nil, ErrNotFound
	}
	if p.Status != types.StatusOpen {
		return nil, ErrAlreadyClosed
	}

	closer, err := e.store.Member(ctx, p.BandID, closerID)
	if err != nil {
		return nil, fmt.Errorf("load member: %w", err)
	}
	if !CanClose(p, closer) {
		return nil, ErrNotAuthorized
	}

	band, err := e.store.Band(ctx, p.BandID)
	if err != nil {
		return nil, fmt.Errorf("load band: %w", err)
	}
	if band == nil {
		return nil, ErrNotFound
	}

	votes, err := e.store.Votes(ctx, proposalID)
	if err != nil {
		return nil, fmt.Errorf("load votes: %w", err)
	}

	var yes, no int
	for _, v := range votes {
		switch v.Vote {
		case types.VoteYes:
			yes++
		case types.VoteNo:
			no++
		}
	}

	outcome, err := Resolve(yes, no, band.VotingMethod)
	if err != nil {
		// Misconfigured band: abort without committing anything.
		return nil, err
	}

	closedAt := e.now()
	won, err := e.store.CloseProposal(ctx, proposalID, outcome, closedAt)
	if err != nil {
		return nil, fmt.Errorf("close proposal: %w", err)
	}
	if !won {
		return nil, ErrAlreadyClosed
	}
	p.Status = outcome
	p.ClosedAt = &closedAt

	// Outcome fan-out goes to every active member, creator included.
	members, err := e.store.ActiveMembers(ctx, p.BandID)
	if err != nil {
		log.Printf("governance: list members for proposal %s: %v", p.ID, err)
		return p, nil
	}
	payload := map[string]any{
		"proposal_id": p.ID,
		"band_id":     p.BandID,
		"title":       p.Title,
		"outcome":     outcome,
	}
	for _, m := range members {
		if err := e.notifier.Notify(ctx, m.UserID, EventProposalResolved, payload); err != nil {
			log.Printf("governance: notify %s about outcome of %s: %v", m.UserID, p.ID, err)
		}
	}
	return p, nil
}

// Detail is the full read model for one proposal.
type Detail struct {
	Proposal types.Proposal       `json:"proposal"`
	Votes    []types.ProposalVote `json:"votes"`
	Tally    Tally                `json:"tally"`
	Expired  bool                 `json:"expired"`
}

// GetProposal returns the proposal, its votes and the tally. The
// caller must belong to the band (any active membership; voting rights
// are not required to read).
func (e *Engine) GetProposal(ctx context.Context, proposalID, userID string) (*Detail, error) {
	p, err := e.store.Proposal(ctx, proposalID)
	if err != nil {
		return nil, fmt.Errorf("load proposal: %w", err)
	}
	if p == nil {
		return nil, ErrNotFound
	}

	m, err := e.store.Member(ctx, p.BandID, userID)
	if err != nil {
		return nil, fmt.Errorf("load member: %w", err)
	}
	if m == nil || m.Status != types.MemberActive {
		return nil, ErrNotAuthorized
	}

	votes, err := e.store.Votes(ctx, proposalID)
	if err != nil {
		return nil, fmt.Errorf("load votes: %w", err)
	}

	eligible, err := e.eligibleVoters(ctx, p.BandID)
	if err != nil {
		return nil, err
	}

	return &Detail{
		Proposal: *p,
		Votes:    votes,
		Tally:    TallyVotes(votes, eligible),
		Expired:  p.Expired(e.now()),
	}, nil
}

// BandProposals lists a band's proposals for one of its members.
func (e *Engine) BandProposals(ctx context.Context, bandID, userID string) ([]types.Proposal, error) {
	m, err := e.store.Member(ctx, bandID, userID)
	if err != nil {
		return nil, fmt.Errorf("load member: %w", err)
	}
	if m == nil || m.Status != types.MemberActive {
		return nil, ErrNotAuthorized
	}
	return e.store.BandProposals(ctx, bandID)
}

// PendingVotes lists the OPEN proposals still waiting on this user,
// across all bands, soonest deadline first.
func (e *Engine) PendingVotes(ctx context.Context, userID string) ([]types.Proposal, error) {
	return e.store.PendingProposals(ctx, userID, VoterRoles())
}

func (e *Engine) eligibleVoters(ctx context.Context, bandID string) (int, error) {
	members, err := e.store.ActiveMembers(ctx, bandID)
	if err != nil {
		return 0, fmt.Errorf("load members: %w", err)
	}
	n := 0
	for i := range members {
		if CanVote(&members[i]) {
			n++
		}
	}
	return n, nil
}
