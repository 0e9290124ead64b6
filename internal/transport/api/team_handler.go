package api

import (
	"context"
	"net/http"

	"github.com/fsdevblog/lynx-sales/internal/money"
	"github.com/gin-gonic/gin"
)

type TeamHandler struct {
	teamSvs TeamServicer
}

func NewTeamHandler(teamSvs TeamServicer) *TeamHandler {
	return &TeamHandler{
		teamSvs: teamSvs,
	}
}

// Members GET RouteGroup + TeamMembersRoute.
func (h *TeamHandler) Members(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), DefaultServiceTimeout)
	defer cancel()

	members, err := h.teamSvs.ListTeamMembers(ctx)
	if err != nil {
		abortWithServiceError(c, "could not load team members", err)
		return
	}

	response := make([]TeamMemberResponse, len(members))
	for i, m := range members {
		response[i] = TeamMemberResponse{ID: m.ID, Name: m.Name, Role: m.Role}
	}
	c.JSON(http.StatusOK, response)
}

// EarningsThisMonth GET RouteGroup + MonthEarningsRoute.
func (h *TeamHandler) EarningsThisMonth(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), DefaultServiceTimeout)
	defer cancel()

	rows, err := h.teamSvs.EarningsThisMonth(ctx)
	if err != nil {
		abortWithServiceError(c, "could not load earnings", err)
		return
	}

	response := make([]MemberEarningsResponse, len(rows))
	for i, row := range rows {
		response[i] = MemberEarningsResponse{
			MemberID:      row.MemberID,
			MemberName:    row.MemberName,
			AmountCents:   row.AmountCents,
			AmountDisplay: money.FormatBs(row.AmountCents),
		}
	}
	c.JSON(http.StatusOK, response)
}
