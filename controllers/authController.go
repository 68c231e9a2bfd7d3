package controllers

import (
	"context"
	"net/http"
	"time"

	"kasir-backend/models"
	"kasir-backend/store"
	"kasir-backend/utils"

	"github.com/gin-gonic/gin"
)

// DefaultPin действует, пока PIN ни разу не меняли (документа в auth нет).
const DefaultPin = "1234"

const pinDocName = "kasir"

type AuthController struct {
	DB store.Store
}

func NewAuthController(db store.Store) *AuthController {
	return &AuthController{DB: db}
}

func (ac *AuthController) checkPin(ctx context.Context, pin string) (bool, error) {
	doc, err := store.GetByIndex[models.KasirPin](ctx, ac.DB, store.CollAuth, "name", pinDocName)
	if err != nil {
		return false, err
	}
	if doc == nil {
		return pin == DefaultPin, nil
	}
	return utils.VerifyPin(doc.PinHash, pin) == nil, nil
}

// Login проверяет PIN и выдаёт токен сессии кассы.
func (ac *AuthController) Login(c *gin.Context) {
	var input models.LoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "PIN is required"})
		return
	}

	ok, err := ac.checkPin(context.TODO(), input.Pin)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to verify PIN"})
		return
	}
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "PIN salah"})
		return
	}

	token, err := utils.GenerateToken("kasir")
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"token": token})
}

// GantiPin меняет PIN после проверки старого.
func (ac *AuthController) GantiPin(c *gin.Context) {
	var input models.GantiPinInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Old and new PIN are required"})
		return
	}
	if len(input.NewPin) < 4 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "PIN baru minimal 4 digit"})
		return
	}

	ok, err := ac.checkPin(context.TODO(), input.OldPin)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to verify PIN"})
		return
	}
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "PIN lama salah"})
		return
	}

	hash, err := utils.HashPin(input.NewPin)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to hash PIN"})
		return
	}

	doc, err := store.GetByIndex[models.KasirPin](context.TODO(), ac.DB, store.CollAuth, "name", pinDocName)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read PIN"})
		return
	}
	if doc == nil {
		pin := models.KasirPin{Name: pinDocName, PinHash: hash, UpdatedAt: time.Now()}
		if _, err := ac.DB.Insert(context.TODO(), store.CollAuth, pin); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save PIN"})
			return
		}
	} else {
		doc.PinHash = hash
		doc.UpdatedAt = time.Now()
		if err := ac.DB.Update(context.TODO(), store.CollAuth, doc.ID.Hex(), doc); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save PIN"})
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{"message": "PIN berhasil diganti"})
}
