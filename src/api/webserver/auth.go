package webserver

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"

	"github.com/bandhall/bandhall/src/api/data"
)

type Auth struct {
	store     *data.Store
	jwtSecret []byte
}

func NewAuth(store *data.Store, secret []byte) Auth {
	return Auth{store: store, jwtSecret: secret}
}

func (a Auth) Login(c *gin.Context) {
	var req struct {
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required,min=8,max=128"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"err": err.Error()})
		return
	}

	user, err := a.store.User(c, req.Email)
	if err != nil {
		log.Printf("auth: load user %s: %v", req.Email, err)
		c.JSON(http.StatusInternalServerError, gin.H{"err": "login failed"})
		return
	}
	// Same response for unknown email and wrong password.
	if user == nil || bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)) != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"err": "invalid credentials"})
		return
	}

	token, err := issueJWT(user.ID, a.jwtSecret)
	if err != nil {
		log.Printf("auth: issue token for %s: %v", user.ID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"err": "login failed"})
		return
	}

	log.Printf("auth: %s logged in from %s", user.ID, c.ClientIP())
	c.JSON(http.StatusOK, gin.H{"token": token})
}
