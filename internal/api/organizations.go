package api

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/muhammadolammi/atcampus/internal/database"
	"github.com/muhammadolammi/atcampus/internal/pagination"
)

const (
	memberRoleOwner  = "owner"
	memberRoleMember = "member"
)

type createOrganizationRequest struct {
	Name        string `json:"name" binding:"required,notblank,max=200"`
	Description string `json:"description" binding:"max=5000"`
}

// GET /api/organizations?cursor=&limit=
func (s *Server) ListOrganizations(c *gin.Context) {
	page, err := pageRequest(c)
	if err != nil {
		s.fail(c, err)
		return
	}
	rows, err := s.store.ListOrganizations(c.Request.Context(), database.ListOrganizationsParams{Cursor: page.Cursor, Limit: page.Fetch()})
	if err != nil {
		s.fail(c, err)
		return
	}
	result := pagination.Build(rows, page.Limit, func(o database.Organization) uuid.UUID { return o.ID })
	c.JSON(http.StatusOK, pagination.Map(result, toOrganization))
}

// CreateOrganization creates a club with the caller as its owner member.
// POST /api/organizations
func (s *Server) CreateOrganization(c *gin.Context) {
	me := currentUser(c)
	var req createOrganizationRequest
	if err := bindJSON(c, &req); err != nil {
		s.fail(c, err)
		return
	}
	ctx := c.Request.Context()
	var org database.Organization
	err := s.store.ExecTx(ctx, func(q database.Querier) error {
		var err error
		org, err = q.CreateOrganization(ctx, database.CreateOrganizationParams{
			OwnerID:     me.ID,
			Name:        strings.TrimSpace(req.Name),
			Description: strings.TrimSpace(req.Description),
		})
		if err != nil {
			return err
		}
		_, err = q.AddMember(ctx, database.AddMemberParams{OrganizationID: org.ID, UserID: me.ID, Role: memberRoleOwner})
		return err
	})
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, toOrganization(org))
}

func (s *Server) loadOrganization(c *gin.Context) (database.Organization, error) {
	id, err := pathID(c, "id")
	if err != nil {
		return database.Organization{}, err
	}
	return s.store.GetOrganization(c.Request.Context(), id)
}

// GET /api/organizations/:id/members
func (s *Server) ListMembers(c *gin.Context) {
	org, err := s.loadOrganization(c)
	if err != nil {
		s.fail(c, err)
		return
	}
	members, err := s.store.ListMembers(c.Request.Context(), org.ID)
	if err != nil {
		s.fail(c, err)
		return
	}
	out := make([]memberResponse, 0, len(members))
	for _, m := range members {
		out = append(out, toMember(m))
	}
	c.JSON(http.StatusOK, gin.H{"items": out})
}

// JoinOrganization adds the caller as a member and tells the owner.
// POST /api/organizations/:id/members
func (s *Server) JoinOrganization(c *gin.Context) {
	me := currentUser(c)
	org, err := s.loadOrganization(c)
	if err != nil {
		s.fail(c, err)
		return
	}
	ctx := c.Request.Context()
	out := &outbox{}
	var inserted int64
	err = s.store.ExecTx(ctx, func(q database.Querier) error {
		var err error
		inserted, err = q.AddMember(ctx, database.AddMemberParams{OrganizationID: org.ID, UserID: me.ID, Role: memberRoleMember})
		if err != nil || inserted == 0 {
			return err
		}
		return out.notify(ctx, q, org.OwnerID, me.ID, NotifyMemberJoined, org.ID,
			fmt.Sprintf("%s joined %s", me.Name, org.Name))
	})
	if err != nil {
		s.fail(c, err)
		return
	}
	if inserted == 0 {
		s.fail(c, conflict("Already a member"))
		return
	}
	s.flush(c, out)
	c.JSON(http.StatusCreated, gin.H{"organization_id": org.ID, "member": true})
}

// LeaveOrganization removes the caller's membership. Owners cannot leave.
// DELETE /api/organizations/:id/members
func (s *Server) LeaveOrganization(c *gin.Context) {
	me := currentUser(c)
	org, err := s.loadOrganization(c)
	if err != nil {
		s.fail(c, err)
		return
	}
	if org.OwnerID == me.ID {
		s.fail(c, errForbidden)
		return
	}
	removed, err := s.store.RemoveMember(c.Request.Context(), database.RemoveMemberParams{OrganizationID: org.ID, UserID: me.ID})
	if err != nil {
		s.fail(c, err)
		return
	}
	if removed == 0 {
		s.fail(c, errNotFound)
		return
	}
	c.JSON(http.StatusOK, gin.H{"organization_id": org.ID, "member": false})
}
