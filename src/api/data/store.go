package data

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/bandhall/bandhall/src/api/types"
)

// Store is the MySQL-backed implementation of governance.Store.
type Store struct {
	db *gorm.DB
}

func NewStore(db *gorm.DB) *Store { return &Store{db: db} }

func (s *Store) Band(ctx context.Context, id string) (*types.Band, error) {
	var band types.Band
	err := s.db.WithContext(ctx).First(&band, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &band, nil
}

func (s *Store) Member(ctx context.Context, bandID, userID string) (*types.BandMember, error) {
	var m types.BandMember
	err := s.db.WithContext(ctx).First(&m, "band_id = ? AND user_id = ?", bandID, userID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (s *Store) ActiveMembers(ctx context.Context, bandID string) ([]types.BandMember, error) {
	var members []types.BandMember
	err := s.db.WithContext(ctx).
		Where("band_id = ? AND status = ?", bandID, types.MemberActive).
		Find(&members).Error
	return members, err
}

func (s *Store) CreateProposal(ctx context.Context, p *types.Proposal) error {
	return s.db.WithContext(ctx).Create(p).Error
}

func (s *Store) Proposal(ctx context.Context, id string) (*types.Proposal, error) {
	var p types.Proposal
	err := s.db.WithContext(ctx).First(&p, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (s *Store) BandProposals(ctx context.Context, bandID string) ([]types.Proposal, error) {
	var out []types.Proposal
	err := s.db.WithContext(ctx).
		Where("band_id = ?", bandID).
		Order("created_at DESC").
		Find(&out).Error
	return out, err
}

func (s *Store) PendingProposals(ctx context.Context, userID string, voterRoles []string) ([]types.Proposal, error) {
	var out []types.Proposal
	err := s.db.WithContext(ctx).
		Table("proposals").
		Select("proposals.*").
		Joins("JOIN band_members ON band_members.band_id = proposals.band_id AND band_members.user_id = ? AND band_members.status = ? AND band_members.role IN ?",
			userID, types.MemberActive, voterRoles).
		Joins("LEFT JOIN proposal_votes ON proposal_votes.proposal_id = proposals.id AND proposal_votes.user_id = ?", userID).
		Where("proposals.status = ? AND proposal_votes.id IS NULL", types.StatusOpen).
		Order("proposals.voting_ends_at ASC").
		Find(&out).Error
	return out, err
}

// CloseProposal is the single-winner transition out of OPEN. The WHERE
// guard makes the database arbitrate concurrent closers; losers see
// zero rows affected.
func (s *Store) CloseProposal(ctx context.Context, id, status string, closedAt time.Time) (bool, error) {
	res := s.db.WithContext(ctx).
		Model(&types.Proposal{}).
		Where("id = ? AND status = ?", id, types.StatusOpen).
		Updates(map[string]any{"status": status, "closed_at": closedAt})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// UpsertVote rides the composite unique index: concurrent votes by the
// same member serialize to one row, last write wins. MySQL reports one
// affected row for an insert and two for an overwrite, which is how we
// tell the caller whether this was a fresh ballot.
func (s *Store) UpsertVote(ctx context.Context, v *types.ProposalVote) (bool, error) {
	res := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "proposal_id"}, {Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"vote", "comment", "updated_at"}),
	}).Create(v)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

func (s *Store) Votes(ctx context.Context, proposalID string) ([]types.ProposalVote, error) {
	var votes []types.ProposalVote
	err := s.db.WithContext(ctx).
		Where("proposal_id = ?", proposalID).
		Order("created_at ASC").
		Find(&votes).Error
	return votes, err
}

// User looks up an auth identity by email for login.
func (s *Store) User(ctx context.Context, email string) (*types.User, error) {
	var u types.User
	err := s.db.WithContext(ctx).First(&u, "email = ?", email).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}
