package auth

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type LoginRequest struct {
	Username string `json:"userName"`
	Password string `json:"password"`
}

type Handler struct {
	Verifier Verifier
	Secret   string

	// SecureCookies marks the session cookie Secure, for deployments
	// serving over HTTPS.
	SecureCookies bool
}

func NewHandler(verifier Verifier, secret string, secureCookies bool) *Handler {
	return &Handler{Verifier: verifier, Secret: secret, SecureCookies: secureCookies}
}

// Login verifies the submitted credentials and sets the session
// cookie. The response never says which part of the credential failed.
func (h *Handler) Login(c *gin.Context) {
	var body LoginRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "درخواست نامعتبر است"})
		return
	}

	principal, ok, err := h.Verifier.Verify(c.Request.Context(), body.Username, body.Password)
	if err != nil {
		logrus.WithError(err).Error("credential verification failed")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "خطا در ورود به سیستم"})
		return
	}
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "نام کاربری یا رمز عبور اشتباه است"})
		return
	}

	token, err := GenerateToken(h.Secret, principal)
	if err != nil {
		logrus.WithError(err).Error("could not sign session token")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "خطا در ورود به سیستم"})
		return
	}

	c.SetCookie(SessionCookie, token, int(SessionDuration.Seconds()), "/", "", h.SecureCookies, true)
	c.JSON(http.StatusOK, gin.H{
		"message": "ورود موفقیت‌آمیز بود",
		"user":    principal,
	})
}

// Logout clears the session cookie.
func (h *Handler) Logout(c *gin.Context) {
	c.SetCookie(SessionCookie, "", -1, "/", "", h.SecureCookies, true)
	c.JSON(http.StatusOK, gin.H{"message": "خروج انجام شد"})
}

// Me echoes the authenticated principal.
func (h *Handler) Me(c *gin.Context) {
	principal, ok := PrincipalFrom(c)
	if !ok {
		abortUnauthenticated(c)
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": principal})
}

// Register is permanently disabled; the operator account is configured
// out-of-band.
func (h *Handler) Register(c *gin.Context) {
	c.JSON(http.StatusForbidden, gin.H{"message": "ثبت‌نام کاربر جدید غیرفعال است"})
}
