package webserver

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/bandhall/bandhall/src/api/data"
	"github.com/bandhall/bandhall/src/api/types"
)

type Admin struct{ db *gorm.DB }

func NewAdmin(db *gorm.DB) Admin { return Admin{db: db} }

func (a Admin) ReloadSettings(c *gin.Context) {
	var user types.User
	if err := a.db.First(&user, "id = ?", c.GetString("uid")).Error; err != nil || !user.IsAdmin {
		c.JSON(http.StatusForbidden, gin.H{"err": "admin only"})
		return
	}

	if err := data.RefreshSettings(a.db); err != nil {
		log.Printf("admin: refresh settings: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"err": "reload failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"reloaded": true})
}
