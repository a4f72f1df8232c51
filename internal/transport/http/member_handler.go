package httpx

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kengraphic/tujengane-sacco/internal/domain"
	"github.com/kengraphic/tujengane-sacco/internal/service"
)

type MemberHandler struct {
	membership    *service.MembershipSvc
	contributions *service.ContributionSvc
	treasuryPhone string
}

func NewMemberHandler(m *service.MembershipSvc, co *service.ContributionSvc, treasuryPhone string) *MemberHandler {
	return &MemberHandler{membership: m, contributions: co, treasuryPhone: treasuryPhone}
}

func (h *MemberHandler) Me(c *gin.Context) {
	p, err := h.membership.ProfileFor(c.Request.Context(), SessionFrom(c))
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

// Dashboard bundles everything the member screen shows in one fetch. The
// completed total is recomputed here on every call, never cached.
func (h *MemberHandler) Dashboard(c *gin.Context) {
	sess := SessionFrom(c)
	p, err := h.membership.ProfileFor(c.Request.Context(), sess)
	if err != nil {
		respondErr(c, err)
		return
	}
	list, err := h.contributions.List(c.Request.Context(), sess)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"profile":         p,
		"contributions":   list,
		"total_completed": domain.TotalCompleted(list),
	})
}

func (h *MemberHandler) ListContributions(c *gin.Context) {
	list, err := h.contributions.List(c.Request.Context(), SessionFrom(c))
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"contributions": list})
}

func (h *MemberHandler) SubmitContribution(c *gin.Context) {
	var in struct {
		Amount float64 `json:"amount" binding:"required"`
		Phone  string  `json:"phone"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	contrib, err := h.contributions.Submit(c.Request.Context(), SessionFrom(c), in.Amount, in.Phone)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"contribution": contrib,
		"message": fmt.Sprintf(
			"Please check your phone (%s) and enter your M-Pesa PIN to complete the payment of KES %.2f to %s.",
			contrib.PhoneNumber, contrib.Amount, h.treasuryPhone),
	})
}
