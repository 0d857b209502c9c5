package chi

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/vitrine-cloud/vitrine/internal/domain/attribute"
)

type variantRequest struct {
	Value  string `json:"value"`
	Label  string `json:"label,omitempty"`
	Active *bool  `json:"active,omitempty"`
}

type createGroupRequest struct {
	Key      string           `json:"key"`
	Name     string           `json:"name"`
	Type     string           `json:"type,omitempty"`
	Variants []variantRequest `json:"variants,omitempty"`
}

type variantResponse struct {
	Value  string `json:"value"`
	Label  string `json:"label"`
	Active bool   `json:"active"`
}

type groupResponse struct {
	ID       string            `json:"id,omitempty"`
	Key      string            `json:"key"`
	Name     string            `json:"name"`
	Type     string            `json:"type"`
	Variants []variantResponse `json:"variants"`
}

func groupToResponse(g attribute.Group) groupResponse {
	variants := make([]variantResponse, 0, len(g.Variants()))
	for _, v := range g.Variants() {
		variants = append(variants, variantResponse{
			Value:  v.Value(),
			Label:  v.DisplayLabel(),
			Active: v.Active(),
		})
	}
	return groupResponse{
		ID:       g.ID(),
		Key:      g.Key(),
		Name:     g.Name(),
		Type:     string(g.SelectionType()),
		Variants: variants,
	}
}

// CreateAttributeGroup handles POST /api/v1/attribute-groups.
func (s *Server) CreateAttributeGroup(w http.ResponseWriter, r *http.Request) {
	var req createGroupRequest
	if !decodeBody(w, r, &req) {
		return
	}

	variants := make([]attribute.Variant, 0, len(req.Variants))
	for _, vr := range req.Variants {
		active := true
		if vr.Active != nil {
			active = *vr.Active
		}
		v, err := attribute.NewVariant(vr.Value, vr.Label, active)
		if err != nil {
			writeError(w, http.StatusBadRequest, fmt.Sprintf("variant %q: %v", vr.Value, err))
			return
		}
		variants = append(variants, v)
	}

	group, err := s.attrs.Create(r.Context(), req.Key, req.Name, attribute.Selection(req.Type), variants)
	if err != nil {
		s.handleError(w, err)
		return
	}

	writeSuccess(w, http.StatusCreated, groupToResponse(group), "attribute group created")
}

// ListAttributeGroups handles GET /api/v1/attribute-groups.
func (s *Server) ListAttributeGroups(w http.ResponseWriter, r *http.Request) {
	groups, err := s.attrs.List(r.Context())
	if err != nil {
		s.handleError(w, err)
		return
	}

	items := make([]groupResponse, 0, len(groups))
	for _, g := range groups {
		items = append(items, groupToResponse(g))
	}
	writeSuccess(w, http.StatusOK, items, "attribute groups")
}

// GetAttributeGroup handles GET /api/v1/attribute-groups/{key}.
func (s *Server) GetAttributeGroup(w http.ResponseWriter, r *http.Request) {
	group, err := s.attrs.Get(r.Context(), chi.URLParam(r, "key"))
	if err != nil {
		s.handleError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, groupToResponse(group), "attribute group")
}

// AddVariant handles POST /api/v1/attribute-groups/{key}/variants.
func (s *Server) AddVariant(w http.ResponseWriter, r *http.Request) {
	var req variantRequest
	if !decodeBody(w, r, &req) {
		return
	}

	active := true
	if req.Active != nil {
		active = *req.Active
	}

	v, err := s.attrs.AddVariant(r.Context(), chi.URLParam(r, "key"), req.Value, req.Label, active)
	if err != nil {
		s.handleError(w, err)
		return
	}

	writeSuccess(w, http.StatusCreated, variantResponse{
		Value:  v.Value(),
		Label:  v.DisplayLabel(),
		Active: v.Active(),
	}, "variant added")
}

type updateVariantRequest struct {
	Label  *string `json:"label,omitempty"`
	Active *bool   `json:"active,omitempty"`
}

// UpdateVariant handles PATCH /api/v1/attribute-groups/{key}/variants/{value}.
func (s *Server) UpdateVariant(w http.ResponseWriter, r *http.Request) {
	var req updateVariantRequest
	if !decodeBody(w, r, &req) {
		return
	}

	key := chi.URLParam(r, "key")
	value := chi.URLParam(r, "value")
	if err := s.attrs.UpdateVariant(r.Context(), key, value, req.Label, req.Active); err != nil {
		s.handleError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, nil, "variant updated")
}

// RemoveVariant handles DELETE /api/v1/attribute-groups/{key}/variants/{value}.
func (s *Server) RemoveVariant(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "key")
	value := chi.URLParam(r, "value")
	if err := s.attrs.RemoveVariant(r.Context(), key, value); err != nil {
		s.handleError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, nil, "variant removed")
}
