package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/makingbetter/serveconnect-backend/internal/catalog"
	"github.com/makingbetter/serveconnect-backend/internal/pkg/response"
)

type Handler struct {
	catalog catalog.Catalog
}

func NewHandler(c catalog.Catalog) *Handler {
	return &Handler{catalog: c}
}

func (h *Handler) ListServices(c *gin.Context) {
	var req ListServicesRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid query parameters", "details": err.Error()})
		return
	}

	filter := catalog.ServiceFilter{
		Category: catalog.Category(req.Category),
		Keyword:  req.Keyword,
		Page:     req.Page,
		PageSize: req.PageSize,
	}

	services, total, err := h.catalog.ListServices(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]ServiceResponse, len(services))
	for i, s := range services {
		items[i] = NewServiceResponse(s)
	}

	c.JSON(http.StatusOK, response.NewPageResponse(items, filter.Page, filter.PageSize, total))
}

func (h *Handler) GetService(c *gin.Context) {
	s, err := h.catalog.GetService(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, NewServiceResponse(s))
}

func (h *Handler) CreateService(c *gin.Context) {
	var body CreateServiceBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	s, err := h.catalog.CreateService(c.Request.Context(), catalog.CreateServiceRequest{
		Title:           body.Title,
		Category:        body.Category,
		Price:           body.Price,
		DurationMinutes: body.DurationMinutes,
		Description:     body.Description,
		Location:        body.Location,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, NewServiceResponse(s))
}

func (h *Handler) UpdateService(c *gin.Context) {
	var body UpdateServiceBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	s, err := h.catalog.UpdateService(c.Request.Context(), c.Param("id"), catalog.UpdateServiceRequest{
		Title:           body.Title,
		Category:        body.Category,
		Price:           body.Price,
		DurationMinutes: body.DurationMinutes,
		Description:     body.Description,
		Location:        body.Location,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewServiceResponse(s))
}

func (h *Handler) DeleteService(c *gin.Context) {
	if err := h.catalog.DeleteService(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) ListProviders(c *gin.Context) {
	var req ListProvidersRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid query parameters", "details": err.Error()})
		return
	}

	filter := catalog.ProviderFilter{
		ServiceID: req.ServiceID,
		Page:      req.Page,
		PageSize:  req.PageSize,
	}

	providers, total, err := h.catalog.ListProviders(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]ProviderResponse, len(providers))
	for i, p := range providers {
		items[i] = NewProviderResponse(p)
	}

	c.JSON(http.StatusOK, response.NewPageResponse(items, filter.Page, filter.PageSize, total))
}

func (h *Handler) GetProvider(c *gin.Context) {
	p, err := h.catalog.GetProvider(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, NewProviderResponse(p))
}

func (h *Handler) CreateProvider(c *gin.Context) {
	var body CreateProviderBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	p, err := h.catalog.CreateProvider(c.Request.Context(), catalog.CreateProviderRequest{
		DisplayName: body.DisplayName,
		ServiceIDs:  body.ServiceIDs,
		Rating:      body.Rating,
		Location:    body.Location,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, NewProviderResponse(p))
}

func (h *Handler) UpdateProvider(c *gin.Context) {
	var body UpdateProviderBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	p, err := h.catalog.UpdateProvider(c.Request.Context(), c.Param("id"), catalog.UpdateProviderRequest{
		DisplayName: body.DisplayName,
		ServiceIDs:  body.ServiceIDs,
		Location:    body.Location,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewProviderResponse(p))
}

func (h *Handler) DeleteProvider(c *gin.Context) {
	if err := h.catalog.DeleteProvider(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
