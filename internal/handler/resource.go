package handler

import (
	"net/http"

	"github.com/bienestar-app/bienestar/internal/render"
	"github.com/bienestar-app/bienestar/internal/service"
)

type ResourceHandler struct {
	resourceService *service.ResourceService
}

func NewResourceHandler(resourceService *service.ResourceService) *ResourceHandler {
	return &ResourceHandler{
		resourceService: resourceService,
	}
}

func (h *ResourceHandler) List(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, http.StatusOK, map[string]any{"resources": h.resourceService.List()})
}

func (h *ResourceHandler) Show(w http.ResponseWriter, r *http.Request) {
	resource, err := h.resourceService.BySlug(r.PathValue("slug"))
	if err != nil {
		writeServiceError(w, err, "load resource", "slug", r.PathValue("slug"))
		return
	}

	render.JSON(w, http.StatusOK, resource)
}
