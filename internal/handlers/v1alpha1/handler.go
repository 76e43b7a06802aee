package v1alpha1

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/selector-project/selector-manager/api/v1alpha1"
	"github.com/selector-project/selector-manager/internal/service"
)

// Handler implements the public selector API
type Handler struct {
	selectorService   service.SelectorService
	evaluationService service.EvaluationService
}

// NewHandler creates a new API handler
func NewHandler(selectorService service.SelectorService, evaluationService service.EvaluationService) *Handler {
	return &Handler{
		selectorService:   selectorService,
		evaluationService: evaluationService,
	}
}

// CreateSelector handles POST /selectors. An optional ?id= query
// parameter supplies a client-chosen ID.
func (h *Handler) CreateSelector(w http.ResponseWriter, r *http.Request) {
	var sel v1alpha1.Selector
	if !h.decodeBody(w, r, selectorWriteSchema, &sel) {
		return
	}

	var clientID *string
	if id := r.URL.Query().Get("id"); id != "" {
		clientID = &id
	}

	created, err := h.selectorService.CreateSelector(r.Context(), sel, clientID)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	h.writeJSON(w, http.StatusCreated, created)
}

// GetSelector handles GET /selectors/{id}.
func (h *Handler) GetSelector(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	sel, err := h.selectorService.GetSelector(r.Context(), id)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	h.writeJSON(w, http.StatusOK, sel)
}

// ListSelectors handles GET /selectors with optional filter, order_by,
// page_token and page_size query parameters.
func (h *Handler) ListSelectors(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	var filter, orderBy, pageToken *string
	if v := query.Get("filter"); v != "" {
		filter = &v
	}
	if v := query.Get("order_by"); v != "" {
		orderBy = &v
	}
	if v := query.Get("page_token"); v != "" {
		pageToken = &v
	}

	pageSize, ok := h.parsePageSize(w, r, query.Get("page_size"))
	if !ok {
		return
	}

	list, err := h.selectorService.ListSelectors(r.Context(), filter, orderBy, pageToken, pageSize)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	h.writeJSON(w, http.StatusOK, list)
}

// UpdateSelector handles PATCH /selectors/{id} with RFC 7396 merge semantics.
func (h *Handler) UpdateSelector(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var patch v1alpha1.Selector
	if !h.decodeBody(w, r, selectorWriteSchema, &patch) {
		return
	}

	updated, err := h.selectorService.UpdateSelector(r.Context(), id, &patch)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	h.writeJSON(w, http.StatusOK, updated)
}

// DeleteSelector handles DELETE /selectors/{id}.
func (h *Handler) DeleteSelector(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.selectorService.DeleteSelector(r.Context(), id); err != nil {
		h.writeError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// EvaluateSelector handles POST /selectors/{id}:evaluate.
func (h *Handler) EvaluateSelector(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req v1alpha1.EvaluateRequest
	if !h.decodeBody(w, r, evaluateSchema, &req) {
		return
	}

	matched, err := h.evaluationService.EvaluateSelector(r.Context(), id, req.Labels)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	h.writeJSON(w, http.StatusOK, v1alpha1.EvaluateResponse{Matched: matched})
}

// EvaluateAdHoc handles POST /selectors:evaluate for selectors supplied
// inline rather than stored.
func (h *Handler) EvaluateAdHoc(w http.ResponseWriter, r *http.Request) {
	var req v1alpha1.AdHocEvaluateRequest
	if !h.decodeBody(w, r, adHocEvaluateSchema, &req) {
		return
	}

	matched, err := h.evaluationService.EvaluateAdHoc(r.Context(), &req)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	h.writeJSON(w, http.StatusOK, v1alpha1.EvaluateResponse{Matched: matched})
}

// MatchLabels handles POST /labels:match, returning the enabled stored
// selectors the given labels satisfy.
func (h *Handler) MatchLabels(w http.ResponseWriter, r *http.Request) {
	var req v1alpha1.LabelMatchRequest
	if !h.decodeBody(w, r, labelMatchSchema, &req) {
		return
	}

	ids, err := h.evaluationService.MatchLabels(r.Context(), req.Labels)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	h.writeJSON(w, http.StatusOK, v1alpha1.LabelMatchResponse{MatchingSelectors: ids})
}
