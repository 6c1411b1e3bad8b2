package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/mail"
	"time"

	"github.com/fluxpad/fluxpad/internal/common"
	"github.com/fluxpad/fluxpad/internal/server/models"
	"github.com/go-chi/chi/v5"
)

const minPasswordLen = 8

type errorResponse struct {
	Error string `json:"error"`
}

type userResponse struct {
	UserID    string    `json:"user_id"`
	Email     string    `json:"email"`
	FullName  string    `json:"full_name"`
	CreatedAt time.Time `json:"created_at"`
}

type tokenResponse struct {
	User         userResponse `json:"user"`
	AccessToken  string       `json:"access_token"`
	RefreshToken string       `json:"refresh_token"`
	TokenType    string       `json:"token_type"`
	ExpiresIn    int64        `json:"expires_in"`
}

type refreshResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int64  `json:"expires_in"`
}

type datasetResponse struct {
	DatasetID   string    `json:"dataset_id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	FileName    string    `json:"file_name"`
	FileSize    int64     `json:"file_size"`
	ColumnsInfo string    `json:"columns_info"`
	RowCount    int64     `json:"row_count"`
	CreatedAt   time.Time `json:"created_at"`
}

type queryResponse struct {
	QueryID      string    `json:"query_id"`
	DatasetID    string    `json:"dataset_id"`
	Prompt       string    `json:"prompt"`
	GeneratedSQL string    `json:"generated_sql"`
	ResultData   string    `json:"result_data"`
	CreatedAt    time.Time `json:"created_at"`
}

func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func respondError(w http.ResponseWriter, status int, msg string) {
	respondJSON(w, status, errorResponse{Error: msg})
}

func toUserResponse(u *models.User) userResponse {
	return userResponse{UserID: u.ID, Email: u.Email, FullName: u.FullName, CreatedAt: u.CreatedAt}
}

func toDatasetResponse(d *models.Dataset) datasetResponse {
	return datasetResponse{
		DatasetID:   d.ID,
		Name:        d.Name,
		Description: d.Description,
		FileName:    d.FileName,
		FileSize:    d.FileSize,
		ColumnsInfo: d.ColumnsInfo,
		RowCount:    d.RowCount,
		CreatedAt:   d.CreatedAt,
	}
}

func toQueryResponse(q *models.QueryRecord) queryResponse {
	return queryResponse{
		QueryID:      q.ID,
		DatasetID:    q.DatasetID,
		Prompt:       q.Prompt,
		GeneratedSQL: q.GeneratedSQL,
		ResultData:   q.ResultData,
		CreatedAt:    q.CreatedAt,
	}
}

func isValidEmail(email string) bool {
	addr, err := mail.ParseAddress(email)
	return err == nil && addr.Address == email
}

// GET /ping
func (s *Server) handlePing(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "pong"})
}

// POST /auth/register
func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	log := s.logger.With("op", "handleRegister")

	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
		FullName string `json:"full_name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if !isValidEmail(req.Email) {
		respondError(w, http.StatusBadRequest, "invalid email")
		return
	}
	if len(req.Password) < minPasswordLen {
		respondError(w, http.StatusBadRequest, "password too short")
		return
	}
	if req.FullName == "" {
		respondError(w, http.StatusBadRequest, "full name required")
		return
	}

	user, pair, err := s.users.Register(r.Context(), req.Email, req.Password, req.FullName)
	if err != nil {
		if errors.Is(err, common.ErrorDuplicateEmail) {
			respondError(w, http.StatusConflict, "email already registered")
			return
		}
		log.Error(r.Context(), "registration failed", "error", err.Error())
		respondError(w, http.StatusInternalServerError, "internal error")
		return
	}

	log.Info(r.Context(), "user registered", "user_id", user.ID)

	respondJSON(w, http.StatusCreated, tokenResponse{
		User:         toUserResponse(user),
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		TokenType:    "bearer",
		ExpiresIn:    int64(s.users.AccessTokenTTL().Seconds()),
	})
}

// POST /auth/login
func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	log := s.logger.With("op", "handleLogin")

	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	user, pair, err := s.users.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, common.ErrorInvalidCredentials) {
			// identical response whether the email is unknown or the
			// password is wrong
			respondError(w, http.StatusUnauthorized, "incorrect email or password")
			return
		}
		log.Error(r.Context(), "login failed", "error", err.Error())
		respondError(w, http.StatusInternalServerError, "internal error")
		return
	}

	respondJSON(w, http.StatusOK, tokenResponse{
		User:         toUserResponse(user),
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		TokenType:    "bearer",
		ExpiresIn:    int64(s.users.AccessTokenTTL().Seconds()),
	})
}

// POST /auth/refresh
func (s *Server) handleRefresh(w http.ResponseWriter, r *http.Request) {
	var req struct {
		RefreshToken string `json:"refresh_token"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	access, err := s.users.RefreshAccessToken(req.RefreshToken)
	if err != nil {
		if errors.Is(err, common.ErrorInternal) {
			respondError(w, http.StatusInternalServerError, "internal error")
			return
		}
		respondError(w, http.StatusUnauthorized, "invalid refresh token")
		return
	}

	respondJSON(w, http.StatusOK, refreshResponse{
		AccessToken: access,
		TokenType:   "bearer",
		ExpiresIn:   int64(s.users.AccessTokenTTL().Seconds()),
	})
}

// GET /auth/me
func (s *Server) handleMe(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "invalid token")
		return
	}

	user, err := s.users.GetByID(r.Context(), userID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			// token still validates but the subject is gone
			respondError(w, http.StatusUnauthorized, "invalid token")
			return
		}
		respondError(w, http.StatusInternalServerError, "internal error")
		return
	}

	respondJSON(w, http.StatusOK, toUserResponse(user))
}

// DELETE /auth/delete
func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	log := s.logger.With("op", "handleDelete")

	userID, ok := userIDFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "invalid token")
		return
	}

	if err := s.users.Delete(r.Context(), userID); err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			respondError(w, http.StatusNotFound, "user not found")
			return
		}
		log.Error(r.Context(), "account deletion failed", "error", err.Error())
		respondError(w, http.StatusInternalServerError, "internal error")
		return
	}

	log.Info(r.Context(), "account deleted", "user_id", userID)

	respondJSON(w, http.StatusOK, map[string]string{"message": "account deleted"})
}

// GET /datasets
func (s *Server) handleListDatasets(w http.ResponseWriter, r *http.Request) {
	userID, _ := userIDFromContext(r.Context())

	list, err := s.datasets.ListByUser(r.Context(), userID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "internal error")
		return
	}

	resp := make([]datasetResponse, 0, len(list))
	for _, d := range list {
		resp = append(resp, toDatasetResponse(d))
	}
	respondJSON(w, http.StatusOK, resp)
}

// POST /datasets
func (s *Server) handleCreateDataset(w http.ResponseWriter, r *http.Request) {
	userID, _ := userIDFromContext(r.Context())

	var req struct {
		Name        string `json:"name"`
		Description string `json:"description"`
		FileName    string `json:"file_name"`
		FileSize    int64  `json:"file_size"`
		ColumnsInfo string `json:"columns_info"`
		RowCount    int64  `json:"row_count"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Name == "" || req.FileName == "" {
		respondError(w, http.StatusBadRequest, "name and file_name required")
		return
	}

	dataset, err := s.datasets.Create(r.Context(), &models.Dataset{
		UserID:      userID,
		Name:        req.Name,
		Description: req.Description,
		FileName:    req.FileName,
		FileSize:    req.FileSize,
		ColumnsInfo: req.ColumnsInfo,
		RowCount:    req.RowCount,
	})
	if err != nil {
		respondError(w, http.StatusInternalServerError, "internal error")
		return
	}

	respondJSON(w, http.StatusCreated, toDatasetResponse(dataset))
}

// GET /datasets/{id}
func (s *Server) handleGetDataset(w http.ResponseWriter, r *http.Request) {
	userID, _ := userIDFromContext(r.Context())

	dataset, err := s.datasets.GetByID(r.Context(), userID, chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			respondError(w, http.StatusNotFound, "dataset not found")
			return
		}
		respondError(w, http.StatusInternalServerError, "internal error")
		return
	}

	respondJSON(w, http.StatusOK, toDatasetResponse(dataset))
}

// GET /queries
func (s *Server) handleQueryHistory(w http.ResponseWriter, r *http.Request) {
	userID, _ := userIDFromContext(r.Context())

	list, err := s.queries.History(r.Context(), userID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "internal error")
		return
	}

	resp := make([]queryResponse, 0, len(list))
	for _, q := range list {
		resp = append(resp, toQueryResponse(q))
	}
	respondJSON(w, http.StatusOK, resp)
}

// POST /queries
func (s *Server) handleRecordQuery(w http.ResponseWriter, r *http.Request) {
	userID, _ := userIDFromContext(r.Context())

	var req struct {
		DatasetID    string `json:"dataset_id"`
		Prompt       string `json:"prompt"`
		GeneratedSQL string `json:"generated_sql"`
		ResultData   string `json:"result_data"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.DatasetID == "" || req.Prompt == "" {
		respondError(w, http.StatusBadRequest, "dataset_id and prompt required")
		return
	}

	record, err := s.queries.Record(r.Context(), &models.QueryRecord{
		UserID:       userID,
		DatasetID:    req.DatasetID,
		Prompt:       req.Prompt,
		GeneratedSQL: req.GeneratedSQL,
		ResultData:   req.ResultData,
	})
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			respondError(w, http.StatusNotFound, "dataset not found")
			return
		}
		respondError(w, http.StatusInternalServerError, "internal error")
		return
	}

	respondJSON(w, http.StatusCreated, toQueryResponse(record))
}
