package handlers

import (
	"empylo_backend/internal/services"
	"empylo_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type CompanyHandler struct {
	*BaseHandler
	companyService services.CompanyService
}

func NewCompanyHandler(base *BaseHandler, companyService services.CompanyService) *CompanyHandler {
	return &CompanyHandler{
		BaseHandler:    base,
		companyService: companyService,
	}
}

func (h *CompanyHandler) RegisterRoutes(rg *gin.RouterGroup) {
	company := rg.Group("/company")
	{
		company.POST("/add-user-to-company", h.AddMember)
		company.GET("/members", h.ListMembers)
		company.GET("/members/:id", h.GetMember)
		company.PATCH("/members/:id", h.UpdateMember)
		company.DELETE("/members/:id", h.RemoveMember)
	}
}

func (h *CompanyHandler) AddMember(c *gin.Context) {
	companyID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.AddCompanyMemberRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	db := h.GetDB(c)

	member, err := h.companyService.AddMember(db, companyID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	h.RespondCreated(c, "User added to company successfully", member)
}

func (h *CompanyHandler) ListMembers(c *gin.Context) {
	companyID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	db := h.GetDB(c)

	members, err := h.companyService.ListMembers(db, companyID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	h.RespondOK(c, "Company members fetched successfully", members)
}

func (h *CompanyHandler) GetMember(c *gin.Context) {
	companyID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	memberID, err := ParseParamID(c, "id")
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	db := h.GetDB(c)

	member, err := h.companyService.GetMember(db, companyID, memberID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	h.RespondOK(c, "Company member fetched successfully", member)
}

func (h *CompanyHandler) UpdateMember(c *gin.Context) {
	companyID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	memberID, err := ParseParamID(c, "id")
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	var req dto.UpdateCompanyMemberRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	db := h.GetDB(c)

	member, err := h.companyService.UpdateMember(db, companyID, memberID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	h.RespondOK(c, "Company member updated successfully", member)
}

func (h *CompanyHandler) RemoveMember(c *gin.Context) {
	companyID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	memberID, err := ParseParamID(c, "id")
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	db := h.GetDB(c)

	if err := h.companyService.RemoveMember(db, companyID, memberID); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	h.RespondOK(c, "User removed from company successfully", nil)
}
