package governance

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bandhall/bandhall/src/api/types"
)

func member(role, status string) *types.BandMember {
	return &types.BandMember{UserID: "u1", BandID: "b1", Role: role, Status: status}
}

func TestCanVote(t *testing.T) {
	for _, role := range []string{
		types.RoleFounder, types.RoleGovernor, types.RoleModerator,
		types.RoleConductor, types.RoleVotingMember,
	} {
		assert.True(t, CanVote(member(role, types.MemberActive)), role)
	}

	assert.False(t, CanVote(member(types.RoleObserver, types.MemberActive)))
	assert.False(t, CanVote(member(types.RoleFounder, types.MemberPending)))
	assert.False(t, CanVote(member(types.RoleFounder, types.MemberInvited)))
	assert.False(t, CanVote(nil))
}

func TestCanCreate(t *testing.T) {
	band := &types.Band{ID: "b1"}

	assert.True(t, CanCreate(band, member(types.RoleFounder, types.MemberActive)))
	assert.True(t, CanCreate(band, member(types.RoleConductor, types.MemberActive)))
	assert.False(t, CanCreate(band, member(types.RoleVotingMember, types.MemberActive)))
	assert.False(t, CanCreate(band, member(types.RoleObserver, types.MemberActive)))
	assert.False(t, CanCreate(band, member(types.RoleFounder, types.MemberRejected)))
	assert.False(t, CanCreate(band, nil))
}

func TestCanCreateBandRolesWidenOnly(t *testing.T) {
	band := &types.Band{ID: "b1", ProposalCreatorRoles: "VOTING_MEMBER, OBSERVER"}

	// Band list adds roles on top of the platform default.
	assert.True(t, CanCreate(band, member(types.RoleVotingMember, types.MemberActive)))
	assert.True(t, CanCreate(band, member(types.RoleObserver, types.MemberActive)))
	// The platform default still applies even though the band list
	// does not mention these roles.
	assert.True(t, CanCreate(band, member(types.RoleFounder, types.MemberActive)))
	assert.True(t, CanCreate(band, member(types.RoleModerator, types.MemberActive)))
}

func TestCanClose(t *testing.T) {
	p := &types.Proposal{ID: "p1", CreatedByID: "creator"}

	creator := member(types.RoleVotingMember, types.MemberActive)
	creator.UserID = "creator"
	assert.True(t, CanClose(p, creator))

	assert.True(t, CanClose(p, member(types.RoleFounder, types.MemberActive)))
	assert.True(t, CanClose(p, member(types.RoleGovernor, types.MemberActive)))
	assert.False(t, CanClose(p, member(types.RoleModerator, types.MemberActive)))
	assert.False(t, CanClose(p, member(types.RoleVotingMember, types.MemberActive)))
	assert.False(t, CanClose(p, member(types.RoleFounder, types.MemberPending)))
	assert.False(t, CanClose(p, nil))
}

func TestSplitRoles(t *testing.T) {
	assert.Nil(t, SplitRoles(""))
	assert.Equal(t, []string{"VOTING_MEMBER"}, SplitRoles("VOTING_MEMBER"))
	assert.Equal(t, []string{"A", "B"}, SplitRoles(" A , B ,"))
}
