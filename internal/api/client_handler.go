package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/acmebank/clientms/internal/api/shared"
	"github.com/acmebank/clientms/internal/domain"
	"github.com/acmebank/clientms/internal/service"
)

// CreateClientRequest represents the request body for registering a client.
type CreateClientRequest struct {
	FirstName string `json:"firstName" validate:"required"`
	LastName  string `json:"lastName"  validate:"required"`
	DNI       string `json:"dni"       validate:"required"`
	Email     string `json:"email"     validate:"required,email"`
}

// UpdateClientRequest represents the request body for a full update.
// All fields are required; use PATCH for partial changes.
type UpdateClientRequest struct {
	FirstName string `json:"firstName" validate:"required"`
	LastName  string `json:"lastName"  validate:"required"`
	DNI       string `json:"dni"       validate:"required"`
	Email     string `json:"email"     validate:"required,email"`
}

// PatchClientRequest represents the request body for a partial update.
// Absent fields keep their stored value; a supplied blank field is rejected
// by the service layer, which distinguishes absent from empty.
type PatchClientRequest struct {
	FirstName *string `json:"firstName"`
	LastName  *string `json:"lastName"`
	DNI       *string `json:"dni"`
	Email     *string `json:"email" validate:"omitempty,email"`
}

// ClientResponse represents the response data for a client.
type ClientResponse struct {
	ID        string    `json:"id"`
	FirstName string    `json:"firstName"`
	LastName  string    `json:"lastName"`
	DNI       string    `json:"dni"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ClientHandler handles client-related HTTP requests.
type ClientHandler struct {
	clientService service.ClientService
}

// NewClientHandler creates a new ClientHandler.
func NewClientHandler(clientService service.ClientService) *ClientHandler {
	return &ClientHandler{
		clientService: clientService,
	}
}

// Create handles POST /clientes requests.
func (h *ClientHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateClientRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	client, err := h.clientService.Register(r.Context(), req.FirstName, req.LastName, req.DNI, req.Email)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r,
			MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	// The upstream contract answers a successful registration with 200,
	// not 201; consumers depend on it.
	shared.RespondWithJSON(w, r, http.StatusOK, clientToResponse(client))
}

// Get handles GET /clientes/{id} requests.
func (h *ClientHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := h.clientID(w, r)
	if !ok {
		return
	}

	client, err := h.clientService.GetByID(r.Context(), id)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r,
			MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, clientToResponse(client))
}

// List handles GET /clientes requests.
func (h *ClientHandler) List(w http.ResponseWriter, r *http.Request) {
	clients, err := h.clientService.ListAll(r.Context())
	if err != nil {
		shared.RespondWithErrorAndLog(w, r,
			MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	// An empty collection serializes as [], not null.
	responses := make([]ClientResponse, 0, len(clients))
	for _, client := range clients {
		responses = append(responses, clientToResponse(client))
	}

	shared.RespondWithJSON(w, r, http.StatusOK, responses)
}

// Update handles PUT /clientes/{id} requests.
func (h *ClientHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := h.clientID(w, r)
	if !ok {
		return
	}

	var req UpdateClientRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	client, err := h.clientService.Update(r.Context(), id, req.FirstName, req.LastName, req.DNI, req.Email)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r,
			MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, clientToResponse(client))
}

// Patch handles PATCH /clientes/{id} requests.
func (h *ClientHandler) Patch(w http.ResponseWriter, r *http.Request) {
	id, ok := h.clientID(w, r)
	if !ok {
		return
	}

	var req PatchClientRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	patch := service.ClientPatch{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		DNI:       req.DNI,
		Email:     req.Email,
	}

	client, err := h.clientService.Patch(r.Context(), id, patch)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r,
			MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, clientToResponse(client))
}

// Delete handles DELETE /clientes/{id} requests.
func (h *ClientHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := h.clientID(w, r)
	if !ok {
		return
	}

	if err := h.clientService.Delete(r.Context(), id); err != nil {
		shared.RespondWithErrorAndLog(w, r,
			MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusNoContent, nil)
}

// clientID extracts and parses the {id} path parameter. On failure it writes
// a 400 response and returns ok=false.
func (h *ClientHandler) clientID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	raw := chi.URLParam(r, "id")
	id, err := uuid.Parse(raw)
	if err != nil || id == uuid.Nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid client ID")
		return uuid.Nil, false
	}
	return id, true
}

// clientToResponse converts a domain.Client to a ClientResponse.
func clientToResponse(client *domain.Client) ClientResponse {
	return ClientResponse{
		ID:        client.ID.String(),
		FirstName: client.FirstName,
		LastName:  client.LastName,
		DNI:       client.DNI,
		Email:     client.Email,
		CreatedAt: client.CreatedAt,
		UpdatedAt: client.UpdatedAt,
	}
}
