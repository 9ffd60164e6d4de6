package controller

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/japb1998/wacrm/internal/dto"
	"github.com/japb1998/wacrm/internal/service"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

type PaginationOps struct {
	Page  int  `form:"page" json:"page" binding:"omitempty,min=0"`
	Limit *int `form:"limit" json:"limit" binding:"omitempty,min=1,max=100"`
}

// bindPagination reads page and limit from the query, limit defaults to 10.
func bindPagination(c *gin.Context) (*dto.PaginationOps, bool) {
	var ops = PaginationOps{
		Limit: aws.Int(10),
		Page:  0,
	}

	if err := c.ShouldBindWith(&ops, binding.Query); err != nil {
		abortWithBindError(c, templateLogger, err, "failed to validate query parameters")
		return nil, false
	}

	svcOps := dto.PaginationOps{
		Page: ops.Page,
	}
	if ops.Limit == nil {
		svcOps.Limit = aws.Int(10)
	} else {
		svcOps.Limit = ops.Limit
	}

	return &svcOps, true
}

// templateStatus maps service errors to a response code.
func templateStatus(err error) int {
	switch {
	case errors.Is(err, service.ErrTemplateNotFound), errors.Is(err, service.ErrContactNotFound):
		return http.StatusNotFound
	case errors.Is(err, service.ErrTemplateExists):
		return http.StatusConflict
	case errors.Is(err, service.ErrInvalidMapping), errors.Is(err, service.ErrTemplateNotSendable), errors.Is(err, service.ErrInvalidPhone):
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

func abortTemplateErr(c *gin.Context, err error) {
	templateLogger.Error("template request failed", slog.String("path", c.FullPath()), slog.String("error", err.Error()))
	c.AbortWithStatusJSON(templateStatus(err), gin.H{
		"error": err.Error(),
	})
}

// @BasePath /

// GetTemplates get templates by creator.
// @Summary get templates by creator.
// @Schemes
// @Description gets the templates of the user email obtained in the JWT token
// @Tags TEMPLATES
// @Param Authorization header string true "Bearer token"
// @Param page query integer false "Zero indexed" default(0)
// @Param limit query integer false "limit" default(10)
// @Accept json
// @Produce json
// @Success 200 {object} dto.PaginatedResponse[dto.TemplateListDto]
// @Router /templates [get]
func GetTemplates(c *gin.Context) {

	userEmail := c.MustGet("email").(string)

	ops, ok := bindPagination(c)

	if !ok {
		return
	}

	templateLogger.Info("pagination ops", slog.Int("page", ops.Page), slog.Int("limit", *ops.Limit))

	res, err := templateSvc.GetPaginatedTemplates(c.Request.Context(), userEmail, ops)

	if err != nil {
		abortTemplateErr(c, err)
		return
	}

	c.JSON(http.StatusOK, res)
}

// CreateTemplate create template.
// @Summary create template.
// @Schemes
// @Tags TEMPLATES
// @Param Authorization header string true "Bearer token"
// @Param request body dto.CreateTemplateDto true "create template dto"
// @Accept json
// @Produce json
// @Success 201 {object} dto.TemplateDto
// @Router /templates [post]
func CreateTemplate(c *gin.Context) {

	requestor := c.MustGet("email").(string)

	var template dto.CreateTemplateDto

	if err := c.ShouldBindJSON(&template); err != nil {
		abortWithBindError(c, templateLogger, err, "failed to create template")
		return
	}

	t, err := templateSvc.CreateTemplate(c.Request.Context(), requestor, template)

	if err != nil {
		abortTemplateErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, t)
}

// GetTemplate get template by id.
// @Summary get template.
// @Tags TEMPLATES
// @Param Authorization header string true "Bearer token"
// @Param id path string true "template id"
// @Produce json
// @Success 200 {object} dto.TemplateDto
// @Router /templates/{id} [get]
func GetTemplate(c *gin.Context) {
	requestor := c.MustGet("email").(string)

	t, err := templateSvc.GetTemplate(c.Request.Context(), requestor, c.Param("id"))

	if err != nil {
		abortTemplateErr(c, err)
		return
	}
	c.JSON(http.StatusOK, t)
}

// DeleteTemplate delete template by id.
// @Summary delete template.
// @Tags TEMPLATES
// @Param Authorization header string true "Bearer token"
// @Param id path string true "template id"
// @Success 204
// @Router /templates/{id} [delete]
func DeleteTemplate(c *gin.Context) {
	requestor := c.MustGet("email").(string)

	err := templateSvc.DeleteTemplate(c.Request.Context(), requestor, c.Param("id"))

	if err != nil {
		abortTemplateErr(c, err)
		return
	}
	c.AbortWithStatus(http.StatusNoContent)
}

// GetTemplateVariables lists the placeholders of the template body.
// @Summary get template variables.
// @Description distinct placeholder indices of the BODY component, in numeric order
// @Tags TEMPLATES
// @Param Authorization header string true "Bearer token"
// @Param id path string true "template id"
// @Produce json
// @Success 200 {object} dto.VariablesDto
// @Router /templates/{id}/variables [get]
func GetTemplateVariables(c *gin.Context) {
	requestor := c.MustGet("email").(string)

	v, err := templateSvc.GetVariables(c.Request.Context(), requestor, c.Param("id"))

	if err != nil {
		abortTemplateErr(c, err)
		return
	}
	c.JSON(http.StatusOK, v)
}

// UpdateTemplateMapping replaces the variable mapping of a template.
// @Summary set template variable mapping.
// @Description null or an empty object clears the mapping
// @Tags TEMPLATES
// @Param Authorization header string true "Bearer token"
// @Param id path string true "template id"
// @Param request body dto.UpdateMappingDto true "mapping"
// @Accept json
// @Produce json
// @Success 200 {object} dto.TemplateDto
// @Router /templates/{id}/mapping [put]
func UpdateTemplateMapping(c *gin.Context) {
	requestor := c.MustGet("email").(string)
	id := c.Param("id")

	ctx, span := tracer.Start(c.Request.Context(), "update-template-mapping", trace.WithAttributes(attribute.String("template.id", id)))
	defer span.End()

	var body dto.UpdateMappingDto

	if err := c.ShouldBindJSON(&body); err != nil {
		abortWithBindError(c, templateLogger, err, "failed to update mapping")
		return
	}

	t, err := templateSvc.SaveMapping(ctx, requestor, id, body.VariableMapping)

	if err != nil {
		span.RecordError(err)
		abortTemplateErr(c, err)
		return
	}
	c.JSON(http.StatusOK, t)
}

// PrefillTemplate renders the mapping of a template against a contact.
// @Summary prefill template parameters.
// @Tags TEMPLATES
// @Param Authorization header string true "Bearer token"
// @Param id path string true "template id"
// @Param contactId path string true "contact id"
// @Produce json
// @Success 200 {object} dto.PrefillDto
// @Router /templates/{id}/prefill/{contactId} [get]
func PrefillTemplate(c *gin.Context) {
	requestor := c.MustGet("email").(string)

	p, err := templateSvc.Prefill(c.Request.Context(), requestor, c.Param("id"), c.Param("contactId"))

	if err != nil {
		abortTemplateErr(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

// SendTemplate sends the template to a contact over whatsapp.
// @Summary send template.
// @Tags TEMPLATES
// @Param Authorization header string true "Bearer token"
// @Param id path string true "template id"
// @Param request body dto.SendTemplateDto true "recipient"
// @Accept json
// @Success 202
// @Router /templates/{id}/send [post]
func SendTemplate(c *gin.Context) {
	requestor := c.MustGet("email").(string)

	var body dto.SendTemplateDto

	if err := c.ShouldBindJSON(&body); err != nil {
		abortWithBindError(c, templateLogger, err, "failed to send template")
		return
	}

	if err := templateSvc.Send(c.Request.Context(), requestor, c.Param("id"), body.ContactId); err != nil {
		abortTemplateErr(c, err)
		return
	}
	c.AbortWithStatus(http.StatusAccepted)
}
