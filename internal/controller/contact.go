package controller

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/japb1998/wacrm/internal/dto"
	"github.com/japb1998/wacrm/internal/service"
)

func abortContactErr(c *gin.Context, err error) {
	contactLogger.Error("contact request failed", slog.String("path", c.FullPath()), slog.String("error", err.Error()))

	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, service.ErrContactNotFound):
		status = http.StatusNotFound
	case errors.Is(err, service.ErrContactExists):
		status = http.StatusConflict
	case errors.Is(err, service.ErrInvalidPhone):
		status = http.StatusBadRequest
	}

	c.AbortWithStatusJSON(status, gin.H{
		"error": err.Error(),
	})
}

// GetContacts list contacts.
// @Tags CONTACTS
// @Summary list contacts.
// @Param Authorization header string true "Bearer token"
// @Param page query integer false "Zero indexed" default(0)
// @Param limit query integer false "limit" default(10)
// @Produce json
// @Success 200 {object} dto.PaginatedResponse[dto.ContactDto]
// @Router /contacts [get]
func GetContacts(c *gin.Context) {
	userEmail := c.MustGet("email").(string)

	ops, ok := bindPagination(c)

	if !ok {
		return
	}

	res, err := contactSvc.GetPaginatedContacts(c.Request.Context(), userEmail, ops)

	if err != nil {
		abortContactErr(c, err)
		return
	}

	c.JSON(http.StatusOK, res)
}

// CreateContact create contact.
// @Tags CONTACTS
// @Summary create contact.
// @Schemes
// @Description create contact.
// @Param Authorization header string true "Bearer token"
// @Param request body dto.CreateContactDto true "create contact dto"
// @Accept json
// @Produce json
// @Success 201 {object} dto.ContactDto
// @Router /contacts [post]
func CreateContact(c *gin.Context) {
	userEmail := c.MustGet("email").(string)
	var contactDto dto.CreateContactDto

	if err := c.ShouldBindJSON(&contactDto); err != nil {
		abortWithBindError(c, contactLogger, err, "error creating contact")
		return
	}

	if contact, err := contactSvc.CreateContact(c.Request.Context(), userEmail, contactDto); err != nil {
		abortContactErr(c, err)
		return
	} else {
		c.JSON(http.StatusCreated, contact)
	}
}

// GetContact get contact by id.
// @Tags CONTACTS
// @Summary get contact.
// @Param Authorization header string true "Bearer token"
// @Param id path string true "contact id"
// @Produce json
// @Success 200 {object} dto.ContactDto
// @Router /contacts/{id} [get]
func GetContact(c *gin.Context) {
	userEmail := c.MustGet("email").(string)

	contact, err := contactSvc.GetContactById(c.Request.Context(), userEmail, c.Param("id"))

	if err != nil {
		abortContactErr(c, err)
		return
	}

	c.JSON(http.StatusOK, contact)
}

// UpdateContact update contact.
// @Tags CONTACTS
// @Summary update contact.
// @Param Authorization header string true "Bearer token"
// @Param id path string true "contact id"
// @Param request body dto.PatchContactDto true "patch contact dto"
// @Accept json
// @Produce json
// @Success 200 {object} dto.ContactDto
// @Router /contacts/{id} [patch]
func UpdateContact(c *gin.Context) {
	userEmail := c.MustGet("email").(string)
	contactId, _ := c.Params.Get("id")
	var patch dto.PatchContactDto

	if err := c.ShouldBindJSON(&patch); err != nil {
		abortWithBindError(c, contactLogger, err, "error updating contact")
		return
	}

	contact, err := contactSvc.UpdateContact(c.Request.Context(), userEmail, contactId, patch)

	if err != nil {
		abortContactErr(c, err)
		return
	}

	c.JSON(http.StatusOK, contact)
}

// DeleteContact delete contact.
// @Tags CONTACTS
// @Summary delete contact.
// @Param Authorization header string true "Bearer token"
// @Param id path string true "contact id"
// @Success 204
// @Router /contacts/{id} [delete]
func DeleteContact(c *gin.Context) {
	userEmail := c.MustGet("email").(string)

	if err := contactSvc.DeleteContact(c.Request.Context(), userEmail, c.Param("id")); err != nil {
		abortContactErr(c, err)
		return
	}

	c.AbortWithStatus(http.StatusNoContent)
}

// GetContactFields lists the fields template variables can be mapped to.
// @Tags CONTACTS
// @Summary available contact fields.
// @Description standard fields plus every custom_data key in use
// @Param Authorization header string true "Bearer token"
// @Produce json
// @Success 200 {object} dto.FieldCatalog
// @Router /contacts/fields [get]
func GetContactFields(c *gin.Context) {
	userEmail := c.MustGet("email").(string)

	catalog, err := contactSvc.FieldCatalog(c.Request.Context(), userEmail)

	if err != nil {
		abortContactErr(c, err)
		return
	}

	c.JSON(http.StatusOK, catalog)
}
