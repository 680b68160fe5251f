package governance

import (
	"fmt"

	"github.com/bandhall/bandhall/src/api/types"
)

// Resolve computes the terminal status for a closed vote set. ABSTAIN
// votes are excluded before calling this: only yes/no counts matter.
// Zero countable votes reject under every method. An unknown method
// fails closed: REJECTED plus ErrInvalidConfig, never approval.
func Resolve(yes, no int, method string) (string, error) {
	total := yes + no
	if total == 0 {
		return types.StatusRejected, nil
	}

	pct := float64(yes) / float64(total) * 100

	switch method {
	case types.MethodSimpleMajority:
		if pct > 50 {
			return types.StatusApproved, nil
		}
	case types.MethodSupermajority66:
		if pct >= 66 {
			return types.StatusApproved, nil
		}
	case types.MethodSupermajority75:
		if pct >= 75 {
			return types.StatusApproved, nil
		}
	case types.MethodUnanimous:
		if no == 0 && yes > 0 {
			return types.StatusApproved, nil
		}
	default:
		return types.StatusRejected, fmt.Errorf("%w: %q", ErrInvalidConfig, method)
	}

	return types.StatusRejected, nil
}

// Tally is the aggregated view of a proposal's votes. EligibleVoters
// is informational only; no quorum rule gates the outcome.
type Tally struct {
	Yes            int     `json:"yes"`
	No             int     `json:"no"`
	Abstain        int     `json:"abstain"`
	Total          int     `json:"total"`
	EligibleVoters int     `json:"eligibleVoters"`
	YesPercentage  float64 `json:"yesPercentage"`
	NoPercentage   float64 `json:"noPercentage"`
}

// TallyVotes folds a vote list into counts and percentages. Abstain
// ballots count toward Total but never toward the percentages.
func TallyVotes(votes []types.ProposalVote, eligible int) Tally {
	t := Tally{EligibleVoters: eligible}
	for _, v := range votes {
		switch v.Vote {
		case types.VoteYes:
			t.Yes++
		case types.VoteNo:
			t.No++
		case types.VoteAbstain:
			t.Abstain++
		}
	}
	t.Total = t.Yes + t.No + t.Abstain
	if counted := t.Yes + t.No; counted > 0 {
		t.YesPercentage = float64(t.Yes) / float64(counted) * 100
		t.NoPercentage = float64(t.No) / float64(counted) * 100
	}
	return t
}
