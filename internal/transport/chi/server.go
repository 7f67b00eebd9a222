// Package chi exposes the HTTP API: public catalog reads, the search
// endpoint, the session surface and the guarded provider mutations.
package chi

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/Smartstaychur/smartstaychur-website/internal/db"
	"github.com/Smartstaychur/smartstaychur-website/internal/domain"
	domcat "github.com/Smartstaychur/smartstaychur-website/internal/domain/catalog"
	"github.com/Smartstaychur/smartstaychur-website/internal/domain/identity"
	authuc "github.com/Smartstaychur/smartstaychur-website/internal/usecase/auth"
	cataloguc "github.com/Smartstaychur/smartstaychur-website/internal/usecase/catalog"
	searchuc "github.com/Smartstaychur/smartstaychur-website/internal/usecase/search"
)

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error) bool

// Server routes HTTP requests to the use case services.
type Server struct {
	catalog       *cataloguc.Service
	search        *searchuc.Engine
	auth          *authuc.Service
	pinger        db.Pinger
	logger        *zap.Logger
	sessionTTL    time.Duration
	cookieSecure  bool
	errorHandlers []errorHandler
}

// NewServer creates an HTTP API server.
func NewServer(
	catalog *cataloguc.Service,
	search *searchuc.Engine,
	auth *authuc.Service,
	pinger db.Pinger,
	sessionTTL time.Duration,
	cookieSecure bool,
	logger *zap.Logger,
) *Server {
	s := &Server{
		catalog:      catalog,
		search:       search,
		auth:         auth,
		pinger:       pinger,
		logger:       logger,
		sessionTTL:   sessionTTL,
		cookieSecure: cookieSecure,
	}
	s.errorHandlers = []errorHandler{
		fieldErrorHandler,
		sentinelHandler(domain.ErrUnauthenticated, http.StatusUnauthorized, "unauthenticated"),
		sentinelHandler(domain.ErrNotOwner, http.StatusForbidden, "forbidden"),
		sentinelHandler(domain.ErrUnknownRole, http.StatusForbidden, "forbidden"),
		sentinelHandler(domain.ErrNotFound, http.StatusNotFound, "not_found"),
		sentinelHandler(domain.ErrAlreadyExists, http.StatusConflict, "already_exists"),
		sentinelHandler(domain.ErrStoreUnavailable, http.StatusServiceUnavailable, "store_unavailable"),
	}
	return s
}

// Routes mounts all endpoints on the router.
func (s *Server) Routes(r chi.Router) {
	r.Get("/health", s.healthCheck)
	r.Get("/metrics", promhttp.Handler().ServeHTTP)

	r.Route("/api", func(r chi.Router) {
		r.Get("/search", s.searchRecords)

		r.Get("/hotels", s.listHotels)
		r.Get("/hotels/{slug}", s.getHotel)
		r.Get("/restaurants", s.listRestaurants)
		r.Get("/restaurants/{slug}", s.getRestaurant)
		r.Get("/experiences", s.listExperiences)
		r.Get("/experiences/{slug}", s.getExperience)
		r.Get("/daily-specials/today", s.listTodaysSpecials)

		r.Post("/auth/login", s.login)
		r.Post("/auth/logout", s.logout)
		r.Get("/auth/me", s.me)
		r.Post("/auth/change-password", s.changePassword)

		r.Post("/hotels", s.createHotel)
		r.Patch("/hotels/{id}", s.updateHotel)
		r.Post("/restaurants", s.createRestaurant)
		r.Patch("/restaurants/{id}", s.updateRestaurant)
		r.Post("/experiences", s.createExperience)
		r.Post("/daily-specials", s.createDailySpecial)
		r.Delete("/daily-specials/{id}", s.deleteDailySpecial)

		r.Route("/admin/providers", func(r chi.Router) {
			r.Get("/", s.listProviders)
			r.Post("/", s.createProvider)
			r.Patch("/{id}/active", s.setProviderActive)
		})
	})
}

// --- Search ---

// searchRecords handles GET /api/search?q=.
func (s *Server) searchRecords(w http.ResponseWriter, r *http.Request) {
	resp := s.search.Search(r.Context(), r.URL.Query().Get("q"))
	writeJSON(w, http.StatusOK, resp)
}

// --- Public catalog reads ---

func (s *Server) listHotels(w http.ResponseWriter, r *http.Request) {
	hotels, err := s.catalog.ListHotels(r.Context())
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, hotels)
}

func (s *Server) getHotel(w http.ResponseWriter, r *http.Request) {
	hotel, err := s.catalog.GetHotelBySlug(r.Context(), chi.URLParam(r, "slug"))
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, hotel)
}

func (s *Server) listRestaurants(w http.ResponseWriter, r *http.Request) {
	restaurants, err := s.catalog.ListRestaurants(r.Context())
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, restaurants)
}

func (s *Server) getRestaurant(w http.ResponseWriter, r *http.Request) {
	restaurant, err := s.catalog.GetRestaurantBySlug(r.Context(), chi.URLParam(r, "slug"))
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, restaurant)
}

func (s *Server) listExperiences(w http.ResponseWriter, r *http.Request) {
	experiences, err := s.catalog.ListExperiences(r.Context())
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, experiences)
}

func (s *Server) getExperience(w http.ResponseWriter, r *http.Request) {
	experience, err := s.catalog.GetExperienceBySlug(r.Context(), chi.URLParam(r, "slug"))
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, experience)
}

func (s *Server) listTodaysSpecials(w http.ResponseWriter, r *http.Request) {
	specials, err := s.catalog.ListTodaysDailySpecials(r.Context())
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, specials)
}

// --- Session ---

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type meResponse struct {
	ID                 int64         `json:"id"`
	Username           string        `json:"username"`
	DisplayName        string        `json:"displayName,omitempty"`
	Role               identity.Role `json:"role"`
	LinkedHotelID      *int64        `json:"linkedHotelId,omitempty"`
	LinkedRestaurantID *int64        `json:"linkedRestaurantId,omitempty"`
}

func toMeResponse(id *identity.Identity) meResponse {
	return meResponse{
		ID:                 id.ID,
		Username:           id.Username,
		DisplayName:        id.DisplayName,
		Role:               id.Role,
		LinkedHotelID:      id.LinkedHotelID,
		LinkedRestaurantID: id.LinkedRestaurantID,
	}
}

func (s *Server) login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", "Invalid request body: "+err.Error())
		return
	}

	caller, token, err := s.auth.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	s.setSessionCookie(w, token, s.sessionTTL)
	writeJSON(w, http.StatusOK, toMeResponse(caller))
}

func (s *Server) logout(w http.ResponseWriter, _ *http.Request) {
	s.clearSessionCookie(w)
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) me(w http.ResponseWriter, r *http.Request) {
	caller := callerFromContext(r.Context())
	if caller == nil {
		s.handleDomainError(w, domain.ErrUnauthenticated)
		return
	}
	writeJSON(w, http.StatusOK, toMeResponse(caller))
}

type changePasswordRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

func (s *Server) changePassword(w http.ResponseWriter, r *http.Request) {
	var req changePasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", "Invalid request body: "+err.Error())
		return
	}

	caller := callerFromContext(r.Context())
	if err := s.auth.ChangePassword(r.Context(), caller, req.CurrentPassword, req.NewPassword); err != nil {
		s.handleDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// --- Guarded catalog writes ---

func (s *Server) createHotel(w http.ResponseWriter, r *http.Request) {
	var hotel domcat.Hotel
	if err := json.NewDecoder(r.Body).Decode(&hotel); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", "Invalid request body: "+err.Error())
		return
	}

	created, err := s.catalog.CreateHotel(r.Context(), callerFromContext(r.Context()), hotel)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (s *Server) updateHotel(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var patch domcat.HotelPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", "Invalid request body: "+err.Error())
		return
	}

	hotel, err := s.catalog.UpdateHotel(r.Context(), callerFromContext(r.Context()), id, patch)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, hotel)
}

func (s *Server) createRestaurant(w http.ResponseWriter, r *http.Request) {
	var restaurant domcat.Restaurant
	if err := json.NewDecoder(r.Body).Decode(&restaurant); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", "Invalid request body: "+err.Error())
		return
	}

	created, err := s.catalog.CreateRestaurant(r.Context(), callerFromContext(r.Context()), restaurant)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (s *Server) updateRestaurant(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var patch domcat.RestaurantPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", "Invalid request body: "+err.Error())
		return
	}

	restaurant, err := s.catalog.UpdateRestaurant(r.Context(), callerFromContext(r.Context()), id, patch)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, restaurant)
}

func (s *Server) createExperience(w http.ResponseWriter, r *http.Request) {
	var experience domcat.Experience
	if err := json.NewDecoder(r.Body).Decode(&experience); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", "Invalid request body: "+err.Error())
		return
	}

	created, err := s.catalog.CreateExperience(r.Context(), callerFromContext(r.Context()), experience)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

type createDailySpecialRequest struct {
	RestaurantID int64  `json:"restaurantId"`
	Date         string `json:"date"`
	Name         string `json:"name"`
	Description  string `json:"description"`
	Price        string `json:"price"`
	IsVegetarian bool   `json:"isVegetarian"`
	IsVegan      bool   `json:"isVegan"`
}

func (s *Server) createDailySpecial(w http.ResponseWriter, r *http.Request) {
	var req createDailySpecialRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", "Invalid request body: "+err.Error())
		return
	}

	special, err := s.catalog.CreateDailySpecial(r.Context(), callerFromContext(r.Context()),
		cataloguc.NewDailySpecialInput{
			RestaurantID: req.RestaurantID,
			Date:         req.Date,
			Name:         req.Name,
			Description:  req.Description,
			Price:        req.Price,
			IsVegetarian: req.IsVegetarian,
			IsVegan:      req.IsVegan,
		})
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, special)
}

func (s *Server) deleteDailySpecial(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	if err := s.catalog.DeleteDailySpecial(r.Context(), callerFromContext(r.Context()), id); err != nil {
		s.handleDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// --- Provider administration ---

type createProviderRequest struct {
	Username           string        `json:"username"`
	Password           string        `json:"password"`
	DisplayName        string        `json:"displayName"`
	Email              string        `json:"email"`
	Role               identity.Role `json:"role"`
	LinkedHotelID      *int64        `json:"linkedHotelId"`
	LinkedRestaurantID *int64        `json:"linkedRestaurantId"`
}

func (s *Server) createProvider(w http.ResponseWriter, r *http.Request) {
	var req createProviderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", "Invalid request body: "+err.Error())
		return
	}

	id, err := s.auth.CreateProvider(r.Context(), callerFromContext(r.Context()), authuc.NewProviderInput{
		Username:           req.Username,
		Password:           req.Password,
		DisplayName:        req.DisplayName,
		Email:              req.Email,
		Role:               req.Role,
		LinkedHotelID:      req.LinkedHotelID,
		LinkedRestaurantID: req.LinkedRestaurantID,
	})
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]int64{"id": id})
}

func (s *Server) listProviders(w http.ResponseWriter, r *http.Request) {
	accounts, err := s.auth.ListProviders(r.Context(), callerFromContext(r.Context()))
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	// Password hashes stay server-side.
	type providerItem struct {
		ID                 int64         `json:"id"`
		PublicID           string        `json:"publicId"`
		Username           string        `json:"username"`
		DisplayName        string        `json:"displayName,omitempty"`
		Email              string        `json:"email,omitempty"`
		Role               identity.Role `json:"role"`
		LinkedHotelID      *int64        `json:"linkedHotelId,omitempty"`
		LinkedRestaurantID *int64        `json:"linkedRestaurantId,omitempty"`
		IsActive           bool          `json:"isActive"`
	}
	items := make([]providerItem, len(accounts))
	for i, a := range accounts {
		items[i] = providerItem{
			ID:                 a.ID,
			PublicID:           a.PublicID,
			Username:           a.Username,
			DisplayName:        a.DisplayName,
			Email:              a.Email,
			Role:               a.Role,
			LinkedHotelID:      a.LinkedHotelID,
			LinkedRestaurantID: a.LinkedRestaurantID,
			IsActive:           a.IsActive,
		}
	}
	writeJSON(w, http.StatusOK, items)
}

type setActiveRequest struct {
	IsActive bool `json:"isActive"`
}

func (s *Server) setProviderActive(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var req setActiveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", "Invalid request body: "+err.Error())
		return
	}

	if err := s.auth.SetProviderActive(r.Context(), callerFromContext(r.Context()), id, req.IsActive); err != nil {
		s.handleDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// --- Health ---

func (s *Server) healthCheck(w http.ResponseWriter, r *http.Request) {
	status := "healthy"
	httpStatus := http.StatusOK
	checks := map[string]string{"database": "ok"}

	if err := s.pinger.Ping(r.Context()); err != nil {
		status = "unhealthy"
		httpStatus = http.StatusServiceUnavailable
		checks["database"] = "unavailable"
	}

	writeJSON(w, httpStatus, map[string]any{
		"status": status,
		"checks": checks,
	})
}

// --- Helpers ---

func pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		writeError(w, http.StatusBadRequest, "bad_request", "invalid id")
		return 0, false
	}
	return id, true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, map[string]string{
		"code":    code,
		"message": message,
	})
}

// sentinelHandler returns an errorHandler matching a single sentinel. The
// response carries the sentinel message only, never wrapped detail.
func sentinelHandler(sentinel error, status int, code string) errorHandler {
	return func(w http.ResponseWriter, err error) bool {
		if !errors.Is(err, sentinel) {
			return false
		}
		writeError(w, status, code, sentinel.Error())
		return true
	}
}

// fieldErrorHandler returns the field and its user-facing message for
// validation failures.
func fieldErrorHandler(w http.ResponseWriter, err error) bool {
	var fe *domain.FieldError
	if !errors.As(err, &fe) {
		if !errors.Is(err, domain.ErrValidation) {
			return false
		}
		writeError(w, http.StatusBadRequest, "validation_failed", domain.ErrValidation.Error())
		return true
	}
	writeJSON(w, http.StatusBadRequest, map[string]string{
		"code":    "validation_failed",
		"field":   fe.Field,
		"message": fe.Message,
	})
	return true
}

func (s *Server) handleDomainError(w http.ResponseWriter, err error) {
	s.logger.Warn("domain error", zap.Error(err))
	for _, h := range s.errorHandlers {
		if h(w, err) {
			return
		}
	}
	s.logger.Error("internal error", zap.Error(err))
	writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
}
