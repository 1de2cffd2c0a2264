package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/librarium/bibliotheque/internal/audit"
	"github.com/librarium/bibliotheque/internal/database/members"
	"github.com/librarium/bibliotheque/internal/entities"
)

// MemberRequest is the payload for creating or updating a member.
type MemberRequest struct {
	LastName  string `json:"last_name"`
	FirstName string `json:"first_name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
}

type MembersController struct {
	repo    *members.Repository
	auditor *audit.Service
}

func NewMembersController(repo *members.Repository, auditor *audit.Service) *MembersController {
	return &MembersController{
		repo:    repo,
		auditor: auditor,
	}
}

// ListMembers returns all members, or a filtered subset when the
// last_name or email query parameter is present.
func (controller *MembersController) ListMembers(c *gin.Context) {
	var (
		result []entities.Member
		err    error
	)
	switch {
	case c.Request.URL.Query().Has("last_name"):
		result, err = controller.repo.FindByLastName(c.Query("last_name"))
	case c.Request.URL.Query().Has("email"):
		result, err = controller.repo.FindByEmail(c.Query("email"))
	default:
		result, err = controller.repo.ListAll()
	}
	if err != nil {
		respondInternalError(c, err, "list members")
		return
	}
	c.IndentedJSON(http.StatusOK, gin.H{"members": result, "count": len(result)})
}

// GetMember returns one member by id.
func (controller *MembersController) GetMember(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	member, err := controller.repo.GetByID(id)
	if err != nil {
		respondInternalError(c, err, "get member")
		return
	}
	if member == nil {
		respondNotFound(c, "member")
		return
	}
	c.IndentedJSON(http.StatusOK, member)
}

// CreateMember registers a new member. A duplicate email yields 409.
func (controller *MembersController) CreateMember(c *gin.Context) {
	var req MemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid request body")
		return
	}

	member := &entities.Member{
		LastName:  req.LastName,
		FirstName: req.FirstName,
		Email:     req.Email,
		Phone:     req.Phone,
	}
	err := controller.repo.Add(member)
	controller.auditor.LogCatalog("create", "member", member.ID, member.Email, err)
	if err != nil {
		respondStoreError(c, err, "member")
		return
	}
	respondCreated(c, member)
}

// UpdateMember rewrites every field of one member.
func (controller *MembersController) UpdateMember(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req MemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid request body")
		return
	}

	member := &entities.Member{
		ID:        id,
		LastName:  req.LastName,
		FirstName: req.FirstName,
		Email:     req.Email,
		Phone:     req.Phone,
	}
	err := controller.repo.Update(member)
	controller.auditor.LogCatalog("update", "member", id, member.Email, err)
	if err != nil {
		respondStoreError(c, err, "member")
		return
	}
	c.IndentedJSON(http.StatusOK, member)
}

// DeleteMember removes a member. Loans referencing them are left in place.
func (controller *MembersController) DeleteMember(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	err := controller.repo.Delete(id)
	controller.auditor.LogCatalog("delete", "member", id, "", err)
	if err != nil {
		respondStoreError(c, err, "member")
		return
	}
	respondSuccess(c, "member deleted")
}
