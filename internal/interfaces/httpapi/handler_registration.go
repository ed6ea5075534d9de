package httpapi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"

	"github.com/ligaops/competition-engine/internal/domain/registration"
	"github.com/ligaops/competition-engine/internal/usecase"
)

type inviteTeamRequest struct {
	TeamID string `json:"team_id" validate:"required"`
}

type sendInvitationsRequest struct {
	RegistrationIDs []string `json:"registration_ids" validate:"required,min=1,dive,required"`
}

type respondToInvitationRequest struct {
	Accept bool   `json:"accept"`
	Note   string `json:"note" validate:"max=500"`
}

type submitRegistrationRequest struct {
	Payload map[string]any `json:"payload" validate:"required"`
}

type reviewRegistrationRequest struct {
	Outcome string `json:"outcome" validate:"required,oneof=APPROVE REJECT REQUEST_CHANGE"`
	Note    string `json:"note" validate:"max=500"`
}

type registrationDTO struct {
	ID           string          `json:"id"`
	SeasonID     string          `json:"season_id"`
	TeamID       string          `json:"team_id"`
	Status       string          `json:"status"`
	ReviewerNote string          `json:"reviewer_note,omitempty"`
	Payload      json.RawMessage `json:"payload,omitempty"`
	Version      int64           `json:"version"`
	CreatedAtUTC string          `json:"created_at_utc"`
	UpdatedAtUTC string          `json:"updated_at_utc"`
}

type sendInvitationsDTO struct {
	Sent     []registrationDTO       `json:"sent"`
	Failures []sendInvitationFailDTO `json:"failures,omitempty"`
}

type sendInvitationFailDTO struct {
	RegistrationID string `json:"registration_id"`
	Error          string `json:"error"`
}

type readinessDTO struct {
	Ready    bool `json:"ready"`
	Approved int  `json:"approved"`
	Required int  `json:"required"`
	Deficit  int  `json:"deficit"`
}

func (h *Handler) InviteTeam(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.InviteTeam")
	defer span.End()

	seasonID := strings.TrimSpace(r.PathValue("seasonID"))
	var req inviteTeamRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	item, err := h.registrationService.Invite(ctx, seasonID, req.TeamID)
	if err != nil {
		h.logger.WarnContext(ctx, "invite team failed", "season_id", seasonID, "team_id", req.TeamID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, registrationToDTO(ctx, item))
}

func (h *Handler) SendInvitations(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SendInvitations")
	defer span.End()

	var req sendInvitationsRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	result, err := h.registrationService.SendInvitations(ctx, req.RegistrationIDs)
	if err != nil {
		h.logger.WarnContext(ctx, "send invitations failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	sent := make([]registrationDTO, 0, len(result.Sent))
	for _, item := range result.Sent {
		sent = append(sent, registrationToDTO(ctx, item))
	}
	failures := make([]sendInvitationFailDTO, 0, len(result.Failures))
	for _, failure := range result.Failures {
		failures = append(failures, sendInvitationFailDTO{
			RegistrationID: failure.RegistrationID,
			Error:          failure.Err.Error(),
		})
	}

	writeSuccess(ctx, w, http.StatusOK, sendInvitationsDTO{
		Sent:     sent,
		Failures: failures,
	})
}

func (h *Handler) RespondToInvitation(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RespondToInvitation")
	defer span.End()

	registrationID := strings.TrimSpace(r.PathValue("registrationID"))
	var req respondToInvitationRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	item, err := h.registrationService.Respond(ctx, registrationID, req.Accept, req.Note)
	if err != nil {
		h.logger.WarnContext(ctx, "respond to invitation failed", "registration_id", registrationID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, registrationToDTO(ctx, item))
}

func (h *Handler) SubmitRegistration(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SubmitRegistration")
	defer span.End()

	registrationID := strings.TrimSpace(r.PathValue("registrationID"))
	var req submitRegistrationRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	payload, err := sonic.Marshal(req.Payload)
	if err != nil {
		writeError(ctx, w, fmt.Errorf("%w: cannot encode payload: %v", usecase.ErrInvalidInput, err))
		return
	}

	item, err := h.registrationService.Submit(ctx, registrationID, payload)
	if err != nil {
		h.logger.WarnContext(ctx, "submit registration failed", "registration_id", registrationID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, registrationToDTO(ctx, item))
}

func (h *Handler) ReviewRegistration(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ReviewRegistration")
	defer span.End()

	registrationID := strings.TrimSpace(r.PathValue("registrationID"))
	var req reviewRegistrationRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	item, err := h.registrationService.Review(ctx, registrationID, usecase.ReviewOutcome(req.Outcome), req.Note)
	if err != nil {
		h.logger.WarnContext(ctx, "review registration failed", "registration_id", registrationID, "outcome", req.Outcome, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, registrationToDTO(ctx, item))
}

func (h *Handler) GetRegistration(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetRegistration")
	defer span.End()

	registrationID := strings.TrimSpace(r.PathValue("registrationID"))
	item, err := h.registrationService.GetByID(ctx, registrationID)
	if err != nil {
		h.logger.WarnContext(ctx, "get registration failed", "registration_id", registrationID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, registrationToDTO(ctx, item))
}

func (h *Handler) ListRegistrationsBySeason(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListRegistrationsBySeason")
	defer span.End()

	seasonID := strings.TrimSpace(r.PathValue("seasonID"))
	items, err := h.registrationService.ListBySeason(ctx, seasonID)
	if err != nil {
		h.logger.WarnContext(ctx, "list registrations failed", "season_id", seasonID, "error", err)
		writeError(ctx, w, err)
		return
	}

	out := make([]registrationDTO, 0, len(items))
	for _, item := range items {
		out = append(out, registrationToDTO(ctx, item))
	}

	writeSuccess(ctx, w, http.StatusOK, out)
}

func (h *Handler) GetSchedulingReadiness(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetSchedulingReadiness")
	defer span.End()

	seasonID := strings.TrimSpace(r.PathValue("seasonID"))
	readiness, err := h.registrationService.SchedulingReadiness(ctx, seasonID)
	if err != nil {
		h.logger.WarnContext(ctx, "scheduling readiness failed", "season_id", seasonID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, readinessDTO{
		Ready:    readiness.Ready,
		Approved: readiness.Approved,
		Required: readiness.Required,
		Deficit:  readiness.Deficit,
	})
}

func registrationToDTO(ctx context.Context, v registration.Registration) registrationDTO {
	ctx, span := startSpan(ctx, "httpapi.registrationToDTO")
	defer span.End()

	return registrationDTO{
		ID:           v.ID,
		SeasonID:     v.SeasonID,
		TeamID:       v.TeamID,
		Status:       string(v.Status),
		ReviewerNote: v.ReviewerNote,
		Payload:      json.RawMessage(v.Payload),
		Version:      v.Version,
		CreatedAtUTC: v.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAtUTC: v.UpdatedAt.UTC().Format(time.RFC3339),
	}
}
