package httpx

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kengraphic/tujengane-sacco/internal/service"
	"github.com/kengraphic/tujengane-sacco/internal/validation"
)

const maxAvatarBytes = 5 << 20 // matches the sign-up form limit

type AuthHandler struct {
	svc *service.AuthSvc
}

func NewAuthHandler(svc *service.AuthSvc) *AuthHandler {
	return &AuthHandler{svc: svc}
}

// Register handles the sign-up form: multipart so the avatar rides along.
func (h *AuthHandler) Register(c *gin.Context) {
	in := validation.SignUp{
		FullName: c.PostForm("fullName"),
		Email:    c.PostForm("email"),
		Phone:    c.PostForm("phone"),
		Password: c.PostForm("password"),
	}

	var avatar *service.AvatarUpload
	if fh, err := c.FormFile("avatar"); err == nil {
		if fh.Size > maxAvatarBytes {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Please select an image under 5MB"})
			return
		}
		f, err := fh.Open()
		if err == nil {
			data, rerr := io.ReadAll(f)
			_ = f.Close()
			if rerr == nil {
				avatar = &service.AvatarUpload{
					Filename:    fh.Filename,
					ContentType: fh.Header.Get("Content-Type"),
					Data:        data,
				}
			}
		}
		// unreadable upload: fall through with no avatar, same as a failed store
	}

	p, err := h.svc.Register(c.Request.Context(), in, avatar)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"profile": p,
		"message": "Please check your email to verify your account. Once verified, an admin will approve your membership.",
	})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var in struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	u, access, refresh, err := h.svc.Login(c.Request.Context(), validation.SignIn{Email: in.Email, Password: in.Password})
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"access_token":  access,
		"refresh_token": refresh,
		"user":          gin.H{"id": u.ID, "email": u.Email},
	})
}

func (h *AuthHandler) Refresh(c *gin.Context) {
	var in struct {
		RefreshToken string `json:"refresh_token" binding:"required"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	access, refresh, err := h.svc.Refresh(c.Request.Context(), in.RefreshToken)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"access_token":  access,
		"refresh_token": refresh,
	})
}

func (h *AuthHandler) Verify(c *gin.Context) {
	token := c.Query("token")
	if token == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing token"})
		return
	}
	if err := h.svc.Verify(c.Request.Context(), token); err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Email verified. An admin will approve your membership shortly."})
}

func (h *AuthHandler) Logout(c *gin.Context) {
	if err := h.svc.Logout(c.Request.Context(), SessionFrom(c)); err != nil {
		respondErr(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
