package http

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/dmitrijs2005/usersvc/internal/common"
	"github.com/dmitrijs2005/usersvc/internal/logging"
	"github.com/dmitrijs2005/usersvc/internal/server/models"
	"github.com/dmitrijs2005/usersvc/internal/server/services"
	"github.com/go-chi/chi/v5"
)

const maxBodyBytes = 1 << 20

// UserService is the part of services.UserService the handlers call.
type UserService interface {
	Register(ctx context.Context, in services.RegisterInput) (*models.User, error)
	Login(ctx context.Context, in services.LoginInput) (*services.LoginResult, error)
	List(ctx context.Context) ([]*models.User, error)
	Get(ctx context.Context, id int64) (*models.User, error)
	Update(ctx context.Context, id int64, in services.UpdateInput) error
	Delete(ctx context.Context, id int64) error
}

type handlers struct {
	users        UserService
	logger       logging.Logger
	jwtSecret    []byte
	exposeErrors bool
}

var errBadBody = errors.New("invalid request body")

func (h *handlers) index(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("User service is running"))
}

func (h *handlers) register(w http.ResponseWriter, r *http.Request) {
	var in services.RegisterInput
	if !h.decode(w, r, &in) {
		return
	}

	user, err := h.users.Register(r.Context(), in)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	h.logger.Info(r.Context(), "user registered", "id", user.ID, "username", user.Username)
	writeJSON(w, http.StatusCreated, registerResponse{
		Message: "User registered successfully",
		User:    toUserResponse(user),
	})
}

func (h *handlers) login(w http.ResponseWriter, r *http.Request) {
	var in services.LoginInput
	if !h.decode(w, r, &in) {
		return
	}

	res, err := h.users.Login(r.Context(), in)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, loginResponse{
		Message: "Login successful",
		Token:   res.Token,
		User:    loginUser{ID: res.User.ID, Fullname: res.User.Fullname},
	})
}

func (h *handlers) logout(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, messageResponse{Message: "Logged out successfully"})
}

func (h *handlers) listUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.users.List(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	resp := make([]userResponse, 0, len(users))
	for _, u := range users {
		resp = append(resp, toUserResponse(u))
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *handlers) getUser(w http.ResponseWriter, r *http.Request) {
	id, ok := h.userID(w, r)
	if !ok {
		return
	}

	user, err := h.users.Get(r.Context(), id)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toUserResponse(user))
}

func (h *handlers) updateUser(w http.ResponseWriter, r *http.Request) {
	id, ok := h.userID(w, r)
	if !ok {
		return
	}

	var in services.UpdateInput
	if !h.decode(w, r, &in) {
		return
	}

	if err := h.users.Update(r.Context(), id, in); err != nil {
		h.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, messageResponse{Message: "User updated successfully"})
}

func (h *handlers) deleteUser(w http.ResponseWriter, r *http.Request) {
	id, ok := h.userID(w, r)
	if !ok {
		return
	}

	if err := h.users.Delete(r.Context(), id); err != nil {
		h.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, messageResponse{Message: "User deleted successfully"})
}

// userID parses the {id} path segment. Anything that is not a positive
// integer cannot name a row and is reported as not found.
func (h *handlers) userID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		h.writeError(w, r, common.ErrNotFound)
		return 0, false
	}
	return id, true
}

func (h *handlers) decode(w http.ResponseWriter, r *http.Request, v any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	dec := json.NewDecoder(r.Body)

	if err := dec.Decode(v); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Message: errBadBody.Error()})
		return false
	}

	// exactly one JSON value per body
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		writeJSON(w, http.StatusBadRequest, errorResponse{Message: errBadBody.Error()})
		return false
	}
	return true
}

func (h *handlers) writeError(w http.ResponseWriter, r *http.Request, err error) {
	code, msg := errorStatus(err)
	resp := errorResponse{Message: msg}

	var ve *common.ValidationError
	if errors.As(err, &ve) {
		resp.Fields = ve.Fields
	}

	if code == http.StatusInternalServerError {
		h.logger.Error(r.Context(), "request failed",
			"error", err.Error(),
			"request_id", RequestIDFromContext(r.Context()),
		)
		if h.exposeErrors {
			resp.Detail = err.Error()
		}
	}

	writeJSON(w, code, resp)
}
