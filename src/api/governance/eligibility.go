package governance

import (
	"strings"

	"github.com/bandhall/bandhall/src/api/types"
)

// Platform-wide capability sets. Bands may widen the creator set via
// their own role list; they can never narrow it below these.
var (
	voterRoles = []string{
		types.RoleFounder,
		types.RoleGovernor,
		types.RoleModerator,
		types.RoleConductor,
		types.RoleVotingMember,
	}
	creatorRoles = []string{
		types.RoleFounder,
		types.RoleGovernor,
		types.RoleModerator,
		types.RoleConductor,
	}
)

// VoterRoles returns the fixed platform voter-role set.
func VoterRoles() []string {
	out := make([]string, len(voterRoles))
	copy(out, voterRoles)
	return out
}

func roleIn(role string, set []string) bool {
	for _, r := range set {
		if r == role {
			return true
		}
	}
	return false
}

// SplitRoles parses a comma-separated role list as stored on the band.
func SplitRoles(csv string) []string {
	if csv == "" {
		return nil
	}
	parts := strings.Split(csv, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// CanVote reports whether the member may cast votes in its band.
// OBSERVER never votes, regardless of band configuration.
func CanVote(m *types.BandMember) bool {
	if m == nil || m.Status != types.MemberActive {
		return false
	}
	return roleIn(m.Role, voterRoles)
}

// CanCreate reports whether the member may raise proposals. The band's
// own creator-role list is a union with the platform default, not an
// override.
func CanCreate(band *types.Band, m *types.BandMember) bool {
	if m == nil || m.Status != types.MemberActive {
		return false
	}
	if roleIn(m.Role, creatorRoles) {
		return true
	}
	return band != nil && roleIn(m.Role, SplitRoles(band.ProposalCreatorRoles))
}

// CanClose reports whether the member may close the given proposal.
// The creator always can; otherwise FOUNDER/GOVERNOR only. This does
// not read band.ApproverRoles even though the membership-approval path
// does; kept as-is until product says otherwise.
func CanClose(p *types.Proposal, m *types.BandMember) bool {
	if m == nil || m.Status != types.MemberActive {
		return false
	}
	if p != nil && p.CreatedByID == m.UserID {
		return true
	}
	return m.Role == types.RoleFounder || m.Role == types.RoleGovernor
}
