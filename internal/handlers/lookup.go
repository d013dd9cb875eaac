package handlers

import (
	"log"
	"net/http"
	"strings"
)

// LookupItem resolves one id to a display name. Name is null when the seed
// table has no name for the id or the id is unknown.
type LookupItem struct {
	ID   string  `json:"id"`
	Name *string `json:"name"`
}

// LookupResponse is the body of GET /lookup/{kind}
type LookupResponse struct {
	Items []LookupItem `json:"items"`
}

// HandleLookup handles GET /lookup/{kind}?ids=a,b,c. It resolves names from
// the seed tables without touching the ids-only planning contract.
func (h *Handler) HandleLookup(w http.ResponseWriter, r *http.Request) {
	kind := strings.ToLower(strings.TrimSpace(r.PathValue("kind")))
	if kind != "poi" && kind != "hotel" && kind != "restaurant" {
		h.handleValidationError(w, "kind must be poi|hotel|restaurant")
		return
	}

	var ids []string
	for _, raw := range strings.Split(r.URL.Query().Get("ids"), ",") {
		if s := strings.TrimSpace(raw); s != "" {
			ids = append(ids, s)
		}
	}
	if len(ids) == 0 {
		h.handleValidationError(w, "ids must be a non-empty comma-separated string")
		return
	}

	tables, err := h.seeds()
	if err != nil {
		h.handleValidationError(w, "Seed file not found: "+err.Error())
		return
	}

	index := map[string]string{}
	switch kind {
	case "poi":
		for _, p := range tables.POIs {
			index[p.ID] = p.Name
		}
	case "hotel":
		for _, hl := range tables.Hotels {
			index[hl.ID] = hl.Name
		}
	case "restaurant":
		for _, rs := range tables.Restaurants {
			index[rs.ID] = rs.Name
		}
	}

	log.Printf("[HTTP] GET /lookup/%s: ids=%d", kind, len(ids))

	items := make([]LookupItem, 0, len(ids))
	for _, id := range ids {
		item := LookupItem{ID: id}
		if name, ok := index[id]; ok && name != "" {
			item.Name = &name
		}
		items = append(items, item)
	}
	h.writeJSON(w, http.StatusOK, LookupResponse{Items: items})
}
