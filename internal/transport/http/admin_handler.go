package httpx

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kengraphic/tujengane-sacco/internal/domain"
	"github.com/kengraphic/tujengane-sacco/internal/service"
)

type AdminHandler struct {
	membership *service.MembershipSvc
}

func NewAdminHandler(m *service.MembershipSvc) *AdminHandler {
	return &AdminHandler{membership: m}
}

func (h *AdminHandler) Applications(c *gin.Context) {
	status := domain.ProfileStatus(c.DefaultQuery("status", string(domain.StatusPending)))
	list, err := h.membership.ApplicationsByStatus(c.Request.Context(), status)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"applications": list})
}

func (h *AdminHandler) Members(c *gin.Context) {
	list, err := h.membership.AllMembers(c.Request.Context())
	if err != nil {
		respondErr(c, err)
		return
	}
	approved := 0
	for _, p := range list {
		if p.Status == domain.StatusApproved {
			approved++
		}
	}
	c.JSON(http.StatusOK, gin.H{"members": list, "approved_count": approved})
}

func (h *AdminHandler) Review(c *gin.Context) {
	var in struct {
		Decision string `json:"decision" binding:"required"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	p, err := h.membership.Review(c.Request.Context(), c.Param("id"), domain.ProfileStatus(in.Decision))
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

func (h *AdminHandler) Reconcile(c *gin.Context) {
	n, err := h.membership.ReconcileRoleGrants(c.Request.Context())
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"repaired": n})
}
