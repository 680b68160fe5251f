package types

import "time"

// Member roles, strongest first. OBSERVER is read-only.
const (
	RoleFounder      = "FOUNDER"
	RoleGovernor     = "GOVERNOR"
	RoleModerator    = "MODERATOR"
	RoleConductor    = "CONDUCTOR"
	RoleVotingMember = "VOTING_MEMBER"
	RoleObserver     = "OBSERVER"
)

// Membership statuses. Only ACTIVE members take part in governance.
const (
	MemberActive   = "ACTIVE"
	MemberPending  = "PENDING"
	MemberInvited  = "INVITED"
	MemberRejected = "REJECTED"
)

// Voting methods configured per band.
const (
	MethodSimpleMajority  = "SIMPLE_MAJORITY"
	MethodSupermajority66 = "SUPERMAJORITY_66"
	MethodSupermajority75 = "SUPERMAJORITY_75"
	MethodUnanimous       = "UNANIMOUS"
)

// Proposal statuses. StatusClosed is a legacy terminal alias that is
// never written anymore; the reachable terminal states are APPROVED
// and REJECTED.
const (
	StatusOpen     = "OPEN"
	StatusClosed   = "CLOSED"
	StatusApproved = "APPROVED"
	StatusRejected = "REJECTED"
)

// Proposal types and priorities. Opaque to the engine beyond storage.
const (
	TypeGeneral    = "GENERAL"
	TypeBudget     = "BUDGET"
	TypeProject    = "PROJECT"
	TypePolicy     = "POLICY"
	TypeMembership = "MEMBERSHIP"

	PriorityLow    = "LOW"
	PriorityMedium = "MEDIUM"
	PriorityHigh   = "HIGH"
	PriorityUrgent = "URGENT"
)

// Vote values.
const (
	VoteYes     = "YES"
	VoteNo      = "NO"
	VoteAbstain = "ABSTAIN"
)

// Platform users (auth identities)
type User struct {
	ID           string `gorm:"primaryKey;size:36"`
	Email        string `gorm:"size:256;unique;not null"`
	PasswordHash string `gorm:"size:128;not null"`
	DisplayName  string `gorm:"size:128"`
	IsAdmin      bool   `gorm:"default:false"`
	CreatedAt    time.Time
}

// Bands own the governance configuration
type Band struct {
	ID               string `gorm:"primaryKey;size:36"`
	Name             string `gorm:"size:128;not null"`
	VotingMethod     string `gorm:"size:32;not null;default:SIMPLE_MAJORITY"`
	VotingPeriodDays int    `gorm:"not null;default:7"`
	// Extra roles allowed to create proposals, comma separated.
	// Unioned with the platform default, never narrowing it.
	ProposalCreatorRoles string `gorm:"size:255"`
	// Roles allowed to approve membership requests. Proposal close does
	// not consult this; it hard-codes FOUNDER/GOVERNOR.
	ApproverRoles string `gorm:"size:255"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Band members, one row per (user, band)
type BandMember struct {
	UserID    string `gorm:"primaryKey;size:36"`
	BandID    string `gorm:"primaryKey;size:36"`
	Role      string `gorm:"size:32;not null;default:OBSERVER"`
	Status    string `gorm:"size:16;not null;default:PENDING"`
	Discord   string `gorm:"size:64"`
	CreatedAt time.Time
}

// Proposals under a timed community vote
type Proposal struct {
	ID          string `gorm:"primaryKey;size:36"`
	BandID      string `gorm:"index;size:36;not null"`
	CreatedByID string `gorm:"size:36;not null"`
	Title       string `gorm:"size:255;not null"`
	Description string `gorm:"type:text"`
	Type        string `gorm:"size:32;not null;default:GENERAL"`
	Priority    string `gorm:"size:16;not null;default:MEDIUM"`

	// Structured metadata, stored as-is and never interpreted.
	ProblemStatement string `gorm:"type:text"`
	ExpectedOutcome  string `gorm:"type:text"`
	BudgetRequested  string `gorm:"size:64"`
	Milestones       string `gorm:"type:text"`
	StartsAt         *time.Time
	EndsAt           *time.Time

	// Fixed at creation from the band's voting period, never recomputed.
	VotingEndsAt time.Time `gorm:"not null"`
	Status       string    `gorm:"size:16;index;not null;default:OPEN"`
	ClosedAt     *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Expired reports whether the voting window has elapsed. Display only:
// an expired proposal stays OPEN until someone closes it.
func (p Proposal) Expired(now time.Time) bool {
	return !now.Before(p.VotingEndsAt)
}

// Votes, at most one per (proposal, member)
type ProposalVote struct {
	ID         uint64 `gorm:"primaryKey"`
	ProposalID string `gorm:"size:36;not null;uniqueIndex:uniq_proposal_voter,priority:1"`
	UserID     string `gorm:"size:36;not null;uniqueIndex:uniq_proposal_voter,priority:2"`
	Vote       string `gorm:"size:8;not null"`
	Comment    string `gorm:"size:1024"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Settings
type Setting struct {
	ID    uint8  `gorm:"primaryKey"`
	Name  string `gorm:"size:32;not null"`
	Value string `gorm:"size:256;not null"`
}
