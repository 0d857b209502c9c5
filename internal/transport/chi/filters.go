package chi

import (
	"net/http"

	"github.com/vitrine-cloud/vitrine/internal/domain/filter"
	"github.com/vitrine-cloud/vitrine/internal/domain/profile"
	"github.com/vitrine-cloud/vitrine/internal/usecase/listing"
)

// pageResponse is the data payload of a filter search.
type pageResponse struct {
	Profiles    []profile.Profile `json:"profiles"`
	CurrentPage int               `json:"currentPage"`
	TotalPages  int               `json:"totalPages"`
	TotalCount  int64             `json:"totalCount"`
	HasNextPage bool              `json:"hasNextPage"`
	HasPrevPage bool              `json:"hasPrevPage"`
	Limit       int               `json:"limit"`
}

func pageToResponse(p *listing.Page) pageResponse {
	profiles := p.Profiles
	if profiles == nil {
		profiles = []profile.Profile{}
	}
	return pageResponse{
		Profiles:    profiles,
		CurrentPage: p.CurrentPage,
		TotalPages:  p.TotalPages,
		TotalCount:  p.TotalCount,
		HasNextPage: p.HasNextPage,
		HasPrevPage: p.HasPrevPage,
		Limit:       p.Limit,
	}
}

// FilterProfiles handles POST /api/v1/filters/profiles.
func (s *Server) FilterProfiles(w http.ResponseWriter, r *http.Request) {
	var payload filter.Payload
	if !decodeBody(w, r, &payload) {
		return
	}

	spec, err := filter.Normalize(payload)
	if err != nil {
		s.handleError(w, err)
		return
	}

	page, err := s.listing.Search(r.Context(), &spec)
	if err != nil {
		s.handleError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, pageToResponse(page), "profiles filtered")
}

// CountProfiles handles POST /api/v1/filters/profiles/count. The body
// is a filter payload without pagination; any pagination sent is
// discarded before normalization since a count has no page window.
func (s *Server) CountProfiles(w http.ResponseWriter, r *http.Request) {
	var payload filter.Payload
	if !decodeBody(w, r, &payload) {
		return
	}

	payload.Page = 0
	payload.Limit = 0
	payload.Fields = nil

	spec, err := filter.Normalize(payload)
	if err != nil {
		s.handleError(w, err)
		return
	}

	total, err := s.listing.Count(r.Context(), &spec)
	if err != nil {
		s.handleError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, map[string]int64{"totalCount": total}, "profiles counted")
}

// FilterOptions handles GET /api/v1/filters/options.
func (s *Server) FilterOptions(w http.ResponseWriter, r *http.Request) {
	opts, err := s.options.Get(r.Context())
	if err != nil {
		s.handleError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, opts, "filter options")
}
