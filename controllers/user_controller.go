package controllers

import (
	"net/http"

	"dietchat-backend/models"
	"dietchat-backend/services"
	"dietchat-backend/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type UserController struct {
	db       *gorm.DB
	profiles *services.ProfileService
	auth     *services.AuthService
	uploader *utils.Uploader
}

func NewUserController(db *gorm.DB, profiles *services.ProfileService, auth *services.AuthService, uploader *utils.Uploader) *UserController {
	return &UserController{db: db, profiles: profiles, auth: auth, uploader: uploader}
}

func (ctl *UserController) Me(c *gin.Context) {
	userID := c.GetUint("userID")

	var user models.User
	if err := ctl.db.First(&user, userID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id":              user.ID,
		"email":           user.Email,
		"full_name":       user.FullName,
		"profile_picture": user.ProfilePicture,
		"mfa_enabled":     user.MFAEnabled,
	})
}

func (ctl *UserController) GetProfile(c *gin.Context) {
	userID := c.GetUint("userID")

	profile, err := ctl.profiles.Get(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load profile"})
		return
	}
	if profile == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "profile not set"})
		return
	}
	c.JSON(http.StatusOK, profile)
}

func (ctl *UserController) UpsertProfile(c *gin.Context) {
	userID := c.GetUint("userID")

	var input services.ProfileInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	profile, err := ctl.profiles.Upsert(userID, input)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, profile)
}

type avatarInput struct {
	Image string `json:"image" binding:"required"` // data:image/...;base64,...
}

func (ctl *UserController) UploadAvatar(c *gin.Context) {
	userID := c.GetUint("userID")

	if ctl.uploader == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "uploads not configured"})
		return
	}

	var input avatarInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	url, err := ctl.uploader.UploadBase64Image(input.Image, "avatars")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := ctl.db.Model(&models.User{}).
		Where("id = ?", userID).
		Update("profile_picture", url).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save picture"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"profile_picture": url})
}

type mfaToggleInput struct {
	Enabled *bool `json:"enabled" binding:"required"`
}

func (ctl *UserController) ToggleMFA(c *gin.Context) {
	userID := c.GetUint("userID")

	var input mfaToggleInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := ctl.auth.SetMFA(userID, *input.Enabled); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update mfa"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"mfa_enabled": *input.Enabled})
}
