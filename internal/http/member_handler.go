package httpapi

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/Laye1997/malika-bi-nu-begg-d/internal/domain"
	"github.com/Laye1997/malika-bi-nu-begg-d/internal/models"
	"go.uber.org/zap"
)

// MemberStore is the registry the handlers serve.
type MemberStore interface {
	ListAll(ctx context.Context) (*domain.Snapshot, error)
	Append(ctx context.Context, m domain.Member) (*domain.Member, error)
	GroupByNeighborhood(snap *domain.Snapshot) (*domain.NeighborhoodStats, error)
}

type MemberHandler struct {
	Store   MemberStore
	Metrics *Metrics
	logger  *zap.Logger
}

func NewMemberHandler(s MemberStore, m *Metrics, logger *zap.Logger) *MemberHandler {
	return &MemberHandler{Store: s, Metrics: m, logger: logger}
}

type registerRequest struct {
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name"`
	Phone        string `json:"phone"`
	Neighborhood string `json:"neighborhood"`
	NationalID   string `json:"national_id"`
	Profession   string `json:"profession"`
	Committee    string `json:"committee"`
	Notes        string `json:"notes"`
}

func (req registerRequest) member() domain.Member {
	return domain.Member{
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Phone:        req.Phone,
		Neighborhood: req.Neighborhood,
		NationalID:   req.NationalID,
		Profession:   req.Profession,
		Committee:    req.Committee,
		Notes:        req.Notes,
	}
}

// Register POST /api/v1/members
func (h *MemberHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := readBodyJSON(r, 1<<16, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, Fail("Requête invalide."))
		return
	}
	m, err := h.Store.Append(r.Context(), req.member())
	if err != nil {
		status, msg := memberErrorStatus(err)
		h.Metrics.registration(outcomeLabel(err))
		if status >= http.StatusInternalServerError {
			h.logger.Error("member registration failed", zap.Error(err))
		}
		writeJSON(w, status, Fail(msg))
		return
	}
	h.Metrics.registration("ok")
	writeJSON(w, http.StatusCreated, Ok(m))
}

// List GET /admin/api/v1/members?neighborhood=&q=&page=&size=
func (h *MemberHandler) List(w http.ResponseWriter, r *http.Request) {
	snap, err := h.Store.ListAll(r.Context())
	if err != nil {
		h.logger.Warn("list members failed", zap.Error(err))
		status, msg := memberErrorStatus(err)
		writeJSON(w, status, Fail(msg))
		return
	}

	neighborhood := strings.TrimSpace(r.URL.Query().Get("neighborhood"))
	q := strings.ToLower(strings.TrimSpace(r.URL.Query().Get("q")))
	filtered := make([]domain.Member, 0, len(snap.Members))
	for _, m := range snap.Members {
		if neighborhood != "" && !strings.EqualFold(strings.TrimSpace(m.Neighborhood), neighborhood) {
			continue
		}
		if q != "" && !memberMatches(m, q) {
			continue
		}
		filtered = append(filtered, m)
	}

	page := parseInt(r.URL.Query().Get("page"), 1)
	size := parseInt(r.URL.Query().Get("size"), 50)
	if page < 1 {
		page = 1
	}
	if size <= 0 || size > 500 {
		size = 50
	}
	start := (page - 1) * size
	if start > len(filtered) {
		start = len(filtered)
	}
	end := start + size
	if end > len(filtered) {
		end = len(filtered)
	}

	writeJSON(w, http.StatusOK, Ok(models.MemberListModel{
		Items: filtered[start:end],
		Pagination: models.BackendPagination{
			Size:  size,
			Page:  page,
			Count: len(filtered),
		},
	}))
}

// Stats GET /admin/api/v1/members/stats
func (h *MemberHandler) Stats(w http.ResponseWriter, r *http.Request) {
	snap, err := h.Store.ListAll(r.Context())
	if err != nil {
		h.logger.Warn("stats: list members failed", zap.Error(err))
		status, msg := memberErrorStatus(err)
		writeJSON(w, status, Fail(msg))
		return
	}
	stats, err := h.Store.GroupByNeighborhood(snap)
	if errors.Is(err, domain.ErrColumnNotFound) {
		writeJSON(w, http.StatusOK, Warn("Aucune colonne quartier dans la source.", stats))
		return
	}
	if err != nil {
		status, msg := memberErrorStatus(err)
		writeJSON(w, status, Fail(msg))
		return
	}
	writeJSON(w, http.StatusOK, Ok(stats))
}

// Export GET /admin/api/v1/members/export
func (h *MemberHandler) Export(w http.ResponseWriter, r *http.Request) {
	snap, err := h.Store.ListAll(r.Context())
	if err != nil {
		h.logger.Warn("export: list members failed", zap.Error(err))
		status, msg := memberErrorStatus(err)
		writeJSON(w, status, Fail(msg))
		return
	}
	data, err := GenerateMembersExport(snap)
	if err != nil {
		h.logger.Error("export members failed", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, Fail("Export impossible."))
		return
	}
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="membres_mbb.xlsx"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

func memberMatches(m domain.Member, q string) bool {
	for _, v := range []string{m.FirstName, m.LastName, m.Phone, m.Neighborhood, m.Committee} {
		if strings.Contains(strings.ToLower(v), q) {
			return true
		}
	}
	if d := domain.NormalizePhone(q); d != "" && strings.Contains(domain.NormalizePhone(m.Phone), d) {
		return true
	}
	return false
}

// memberErrorStatus maps registry errors to an HTTP status and a message
// shown to the registrant.
func memberErrorStatus(err error) (int, string) {
	switch {
	case errors.Is(err, domain.ErrValidationFailed):
		return http.StatusBadRequest, "Veuillez remplir le prénom, le nom et le téléphone."
	case errors.Is(err, domain.ErrDuplicatePhone):
		return http.StatusConflict, "Ce numéro de téléphone est déjà inscrit."
	case errors.Is(err, domain.ErrDataUnavailable):
		return http.StatusServiceUnavailable, "Les données des membres sont momentanément indisponibles."
	case errors.Is(err, domain.ErrWriteFailed):
		return http.StatusBadGateway, "L'inscription n'a pas pu être enregistrée. Veuillez réessayer."
	case errors.Is(err, domain.ErrColumnNotFound):
		return http.StatusInternalServerError, "La source de données ne contient pas la colonne requise."
	}
	return http.StatusInternalServerError, "Erreur interne."
}

func outcomeLabel(err error) string {
	switch {
	case errors.Is(err, domain.ErrValidationFailed):
		return "validation_failed"
	case errors.Is(err, domain.ErrDuplicatePhone):
		return "duplicate_phone"
	case errors.Is(err, domain.ErrDataUnavailable):
		return "data_unavailable"
	case errors.Is(err, domain.ErrWriteFailed):
		return "write_failed"
	case errors.Is(err, domain.ErrColumnNotFound):
		return "column_not_found"
	}
	return "error"
}
