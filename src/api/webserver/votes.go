package webserver

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/microcosm-cc/bluemonday"

	"github.com/bandhall/bandhall/src/api/governance"
)

type Votes struct {
	engine    *governance.Engine
	sanitizer *bluemonday.Policy
}

func NewVotes(engine *governance.Engine) Votes {
	return Votes{engine: engine, sanitizer: bluemonday.StrictPolicy()}
}

func (v Votes) Cast(c *gin.Context) {
	var req struct {
		Vote    string `json:"vote" binding:"required,oneof=YES NO ABSTAIN"`
		Comment string `json:"comment" binding:"max=1024"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"err": err.Error()})
		return
	}

	created, err := v.engine.CastVote(c, c.Param("id"), c.GetString("uid"), req.Vote, v.sanitizer.Sanitize(req.Comment))
	if err != nil {
		c.JSON(errStatus(err), gin.H{"err": err.Error()})
		return
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	c.JSON(status, gin.H{"created": created})
}
