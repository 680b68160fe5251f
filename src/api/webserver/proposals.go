package webserver

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/microcosm-cc/bluemonday"

	"github.com/bandhall/bandhall/src/api/governance"
)

type Proposals struct {
	engine    *governance.Engine
	sanitizer *bluemonday.Policy
}

func NewProposals(engine *governance.Engine) Proposals {
	// Strict policy for free-text proposal fields; basic markdown
	// formatting survives, everything else is stripped.
	sanitizer := bluemonday.StrictPolicy()
	sanitizer.AllowElements("p", "br", "strong", "em", "code", "pre", "blockquote")
	sanitizer.AllowElements("ul", "ol", "li")
	return Proposals{engine: engine, sanitizer: sanitizer}
}

// errStatus maps the governance error taxonomy onto HTTP codes. Store
// failures fall through to 500.
func errStatus(err error) int {
	switch {
	case errors.Is(err, governance.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, governance.ErrNotAuthorized):
		return http.StatusForbidden
	case errors.Is(err, governance.ErrVotingClosed), errors.Is(err, governance.ErrAlreadyClosed):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func (p Proposals) Create(c *gin.Context) {
	var req struct {
		Title            string `json:"title" binding:"required,min=3,max=255"`
		Description      string `json:"description" binding:"max=10000"`
		Type             string `json:"type" binding:"omitempty,oneof=GENERAL BUDGET PROJECT POLICY MEMBERSHIP"`
		Priority         string `json:"priority" binding:"omitempty,oneof=LOW MEDIUM HIGH URGENT"`
		ProblemStatement string `json:"problemStatement" binding:"max=10000"`
		ExpectedOutcome  string `json:"expectedOutcome" binding:"max=10000"`
		BudgetRequested  string `json:"budgetRequested" binding:"max=64"`
		Milestones       string `json:"milestones" binding:"max=10000"`
		StartsAt         string `json:"startsAt"`
		EndsAt           string `json:"endsAt"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"err": err.Error()})
		return
	}

	in := governance.ProposalInput{
		Title:            p.sanitizer.Sanitize(req.Title),
		Description:      p.sanitizer.Sanitize(req.Description),
		Type:             req.Type,
		Priority:         req.Priority,
		ProblemStatement: p.sanitizer.Sanitize(req.ProblemStatement),
		ExpectedOutcome:  p.sanitizer.Sanitize(req.ExpectedOutcome),
		BudgetRequested:  req.BudgetRequested,
		Milestones:       p.sanitizer.Sanitize(req.Milestones),
	}
	var err error
	if in.StartsAt, err = parseDate(req.StartsAt); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"err": "bad startsAt"})
		return
	}
	if in.EndsAt, err = parseDate(req.EndsAt); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"err": "bad endsAt"})
		return
	}

	proposal, err := p.engine.CreateProposal(c, c.Param("id"), c.GetString("uid"), in)
	if err != nil {
		c.JSON(errStatus(err), gin.H{"err": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, proposal)
}

func (p Proposals) Get(c *gin.Context) {
	detail, err := p.engine.GetProposal(c, c.Param("id"), c.GetString("uid"))
	if err != nil {
		c.JSON(errStatus(err), gin.H{"err": err.Error()})
		return
	}
	c.JSON(http.StatusOK, detail)
}

func (p Proposals) List(c *gin.Context) {
	proposals, err := p.engine.BandProposals(c, c.Param("id"), c.GetString("uid"))
	if err != nil {
		c.JSON(errStatus(err), gin.H{"err": err.Error()})
		return
	}
	now := time.Now()
	out := make([]gin.H, 0, len(proposals))
	for _, pr := range proposals {
		out = append(out, gin.H{
			"proposal": pr,
			"expired":  pr.Expired(now),
		})
	}
	c.JSON(http.StatusOK, out)
}

func (p Proposals) Close(c *gin.Context) {
	proposal, err := p.engine.CloseProposal(c, c.Param("id"), c.GetString("uid"))
	if err != nil {
		c.JSON(errStatus(err), gin.H{"err": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"outcome":  proposal.Status,
		"proposal": proposal,
	})
}

func (p Proposals) Pending(c *gin.Context) {
	proposals, err := p.engine.PendingVotes(c, c.GetString("uid"))
	if err != nil {
		c.JSON(errStatus(err), gin.H{"err": err.Error()})
		return
	}
	c.JSON(http.StatusOK, proposals)
}

func parseDate(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
