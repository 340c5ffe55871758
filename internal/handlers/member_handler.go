package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"

	"chit-backend/internal/models"
	"chit-backend/internal/repositories"
	"chit-backend/internal/services"
	"chit-backend/pkg/utils"

	"github.com/gorilla/mux"
)

type MemberHandler struct {
	Service *services.MemberService
}

func NewMemberHandler(s *services.MemberService) *MemberHandler {
	return &MemberHandler{Service: s}
}

func (h *MemberHandler) ListMembers(w http.ResponseWriter, r *http.Request) {
	members, err := h.Service.ListMembers(r.Context())
	if err != nil {
		log.Printf("[Members] list failed: %v", err)
		utils.Error(w, http.StatusInternalServerError, "Database error")
		return
	}
	utils.JSON(w, http.StatusOK, members)
}

// ListPendingMembers serves the repayment eligibility screen: members whose
// pending balance is still above zero
func (h *MemberHandler) ListPendingMembers(w http.ResponseWriter, r *http.Request) {
	members, err := h.Service.ListPendingMembers(r.Context())
	if err != nil {
		log.Printf("[Members] pending list failed: %v", err)
		utils.Error(w, http.StatusInternalServerError, "Database error")
		return
	}
	utils.JSON(w, http.StatusOK, members)
}

func (h *MemberHandler) GetMember(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid member ID")
		return
	}

	member, err := h.Service.GetMember(r.Context(), id)
	if errors.Is(err, repositories.ErrNotFound) {
		utils.Error(w, http.StatusNotFound, "Member not found")
		return
	}
	if err != nil {
		log.Printf("[Members] get %d failed: %v", id, err)
		utils.Error(w, http.StatusInternalServerError, "Database error")
		return
	}
	utils.JSON(w, http.StatusOK, member)
}

func (h *MemberHandler) CreateMember(w http.ResponseWriter, r *http.Request) {
	var req models.CreateMemberRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	member, err := h.Service.CreateMember(r.Context(), &req)
	if errors.Is(err, services.ErrMissingFields) || errors.Is(err, services.ErrInvalidStatus) {
		utils.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	if err != nil {
		log.Printf("[Members] create failed: %v", err)
		utils.Error(w, http.StatusInternalServerError, "Database error")
		return
	}
	utils.JSON(w, http.StatusCreated, member)
}

func (h *MemberHandler) UpdateMember(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid member ID")
		return
	}

	var req models.UpdateMemberRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	member, err := h.Service.UpdateMember(r.Context(), id, &req)
	if errors.Is(err, services.ErrMissingFields) || errors.Is(err, services.ErrInvalidStatus) {
		utils.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	if errors.Is(err, repositories.ErrNotFound) {
		utils.Error(w, http.StatusNotFound, "Member not found")
		return
	}
	if err != nil {
		log.Printf("[Members] update %d failed: %v", id, err)
		utils.Error(w, http.StatusInternalServerError, "Database error")
		return
	}
	utils.JSON(w, http.StatusOK, member)
}

func (h *MemberHandler) RenameMember(w http.ResponseWriter, r *http.Request) {
	h.patchField(w, r, "name", h.Service.RenameMember)
}

func (h *MemberHandler) ChangeMemberPhone(w http.ResponseWriter, r *http.Request) {
	h.patchField(w, r, "phone", h.Service.ChangeMemberPhone)
}

func (h *MemberHandler) patchField(w http.ResponseWriter, r *http.Request, field string,
	apply func(ctx context.Context, id int, value string) (*models.Member, error)) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid member ID")
		return
	}

	var body map[string]string
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	member, err := apply(r.Context(), id, body[field])
	if errors.Is(err, services.ErrMissingFields) {
		utils.Error(w, http.StatusBadRequest, field+" is required")
		return
	}
	if errors.Is(err, repositories.ErrNotFound) {
		utils.Error(w, http.StatusNotFound, "Member not found")
		return
	}
	if err != nil {
		log.Printf("[Members] patch %s on %d failed: %v", field, id, err)
		utils.Error(w, http.StatusInternalServerError, "Database error")
		return
	}
	utils.JSON(w, http.StatusOK, member)
}

func (h *MemberHandler) DeleteMember(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid member ID")
		return
	}

	if err := h.Service.DeleteMember(r.Context(), id); err != nil {
		log.Printf("[Members] delete %d failed: %v", id, err)
		utils.Error(w, http.StatusInternalServerError, "Database error")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
