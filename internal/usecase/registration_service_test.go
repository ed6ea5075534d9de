package usecase

import (
	"errors"
	"strconv"
	"testing"

	"github.com/ligaops/competition-engine/internal/domain/registration"
	"github.com/ligaops/competition-engine/internal/infrastructure/repository/memory"
)

type staticIDGenerator struct {
	id string
}

func (g staticIDGenerator) NewID() (string, error) {
	return g.id, nil
}

type sequenceIDGenerator struct {
	prefix string
	next   int
}

func (g *sequenceIDGenerator) NewID() (string, error) {
	g.next++
	return g.prefix + strconv.Itoa(g.next), nil
}

func newRegistrationFixture(t *testing.T) (*RegistrationService, *memory.RegistrationRepository) {
	t.Helper()
	seasonRepo := memory.NewSeasonRepository(memory.SeedSeasons())
	registrationRepo := memory.NewRegistrationRepository()
	service := NewRegistrationService(seasonRepo, registrationRepo, &sequenceIDGenerator{prefix: "reg-"})
	return service, registrationRepo
}

func TestRegistrationService_FullApprovalPath(t *testing.T) {
	service, _ := newRegistrationFixture(t)

	item, err := service.Invite(t.Context(), memory.SeasonIDLiga1Indonesia, memory.TeamIDPersija)
	if err != nil {
		t.Fatalf("invite failed: %v", err)
	}
	if item.Status != registration.StatusDraftInvite {
		t.Fatalf("expected DRAFT_INVITE, got %s", item.Status)
	}

	batch, err := service.SendInvitations(t.Context(), []string{item.ID})
	if err != nil {
		t.Fatalf("send invitations failed: %v", err)
	}
	if len(batch.Sent) != 1 || len(batch.Failures) != 0 {
		t.Fatalf("unexpected batch result: %+v", batch)
	}

	if _, err := service.Respond(t.Context(), item.ID, true, ""); err != nil {
		t.Fatalf("respond failed: %v", err)
	}
	if _, err := service.Submit(t.Context(), item.ID, []byte(`{"stadium":"GBK"}`)); err != nil {
		t.Fatalf("submit failed: %v", err)
	}

	approved, err := service.Review(t.Context(), item.ID, ReviewApprove, "complete dossier")
	if err != nil {
		t.Fatalf("review failed: %v", err)
	}
	if approved.Status != registration.StatusApproved {
		t.Fatalf("expected APPROVED, got %s", approved.Status)
	}
	if approved.ReviewerNote != "complete dossier" {
		t.Fatalf("unexpected reviewer note: %q", approved.ReviewerNote)
	}
}

func TestRegistrationService_RequestChangeLoop(t *testing.T) {
	service, _ := newRegistrationFixture(t)

	item, err := service.Invite(t.Context(), memory.SeasonIDLiga1Indonesia, memory.TeamIDPersib)
	if err != nil {
		t.Fatalf("invite failed: %v", err)
	}
	if _, err := service.SendInvitations(t.Context(), []string{item.ID}); err != nil {
		t.Fatalf("send invitations failed: %v", err)
	}
	if _, err := service.Respond(t.Context(), item.ID, true, ""); err != nil {
		t.Fatalf("respond failed: %v", err)
	}
	if _, err := service.Submit(t.Context(), item.ID, []byte(`{"kit":"blue"}`)); err != nil {
		t.Fatalf("submit failed: %v", err)
	}

	changed, err := service.Review(t.Context(), item.ID, ReviewRequestChange, "stadium certificate missing")
	if err != nil {
		t.Fatalf("request change failed: %v", err)
	}
	if changed.Status != registration.StatusRequestChange {
		t.Fatalf("expected REQUEST_CHANGE, got %s", changed.Status)
	}

	resubmitted, err := service.Submit(t.Context(), item.ID, []byte(`{"kit":"blue","stadium":"GBLA"}`))
	if err != nil {
		t.Fatalf("resubmit failed: %v", err)
	}
	if resubmitted.Status != registration.StatusSubmitted {
		t.Fatalf("expected SUBMITTED after resubmission, got %s", resubmitted.Status)
	}
}

func TestRegistrationService_InvalidTransition(t *testing.T) {
	service, _ := newRegistrationFixture(t)

	item, err := service.Invite(t.Context(), memory.SeasonIDLiga1Indonesia, memory.TeamIDBaliUtd)
	if err != nil {
		t.Fatalf("invite failed: %v", err)
	}

	_, err = service.Review(t.Context(), item.ID, ReviewApprove, "")
	if !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("expected invalid transition, got %v", err)
	}

	var transitionErr *InvalidTransitionError
	if !errors.As(err, &transitionErr) {
		t.Fatalf("expected typed transition error, got %T", err)
	}
	if transitionErr.From != string(registration.StatusDraftInvite) {
		t.Fatalf("unexpected source state: %s", transitionErr.From)
	}

	stored, err := service.GetByID(t.Context(), item.ID)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if stored.Status != registration.StatusDraftInvite {
		t.Fatalf("rejected transition must not mutate state, got %s", stored.Status)
	}
}

func TestRegistrationService_DeclinedIsTerminal(t *testing.T) {
	service, _ := newRegistrationFixture(t)

	item, err := service.Invite(t.Context(), memory.SeasonIDLiga1Indonesia, memory.TeamIDPersebaya)
	if err != nil {
		t.Fatalf("invite failed: %v", err)
	}
	if _, err := service.SendInvitations(t.Context(), []string{item.ID}); err != nil {
		t.Fatalf("send invitations failed: %v", err)
	}
	declined, err := service.Respond(t.Context(), item.ID, false, "budget constraints")
	if err != nil {
		t.Fatalf("decline failed: %v", err)
	}
	if declined.Status != registration.StatusDeclined {
		t.Fatalf("expected DECLINED, got %s", declined.Status)
	}

	if _, err := service.Submit(t.Context(), item.ID, []byte(`{}`)); !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("expected terminal state to reject submit, got %v", err)
	}
}

func TestRegistrationService_DuplicateInviteRejected(t *testing.T) {
	service, _ := newRegistrationFixture(t)

	if _, err := service.Invite(t.Context(), memory.SeasonIDLiga1Indonesia, memory.TeamIDPersija); err != nil {
		t.Fatalf("invite failed: %v", err)
	}
	if _, err := service.Invite(t.Context(), memory.SeasonIDLiga1Indonesia, memory.TeamIDPersija); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected duplicate invite rejection, got %v", err)
	}
}

func TestRegistrationService_SendInvitationsPartialFailure(t *testing.T) {
	service, _ := newRegistrationFixture(t)

	item, err := service.Invite(t.Context(), memory.SeasonIDLiga1Indonesia, memory.TeamIDPersija)
	if err != nil {
		t.Fatalf("invite failed: %v", err)
	}

	batch, err := service.SendInvitations(t.Context(), []string{item.ID, "reg-missing"})
	if err != nil {
		t.Fatalf("send invitations failed: %v", err)
	}
	if len(batch.Sent) != 1 {
		t.Fatalf("expected one sent invitation, got %d", len(batch.Sent))
	}
	if len(batch.Failures) != 1 || !errors.Is(batch.Failures[0].Err, ErrNotFound) {
		t.Fatalf("expected one not-found failure, got %+v", batch.Failures)
	}
}

func TestRegistrationService_SchedulingReadiness(t *testing.T) {
	service, _ := newRegistrationFixture(t)

	teams := []string{memory.TeamIDPersija, memory.TeamIDPersib, memory.TeamIDPersebaya, memory.TeamIDBaliUtd}
	for i, teamID := range teams {
		item, err := service.Invite(t.Context(), memory.SeasonIDLiga1Indonesia, teamID)
		if err != nil {
			t.Fatalf("invite %s failed: %v", teamID, err)
		}
		if _, err := service.SendInvitations(t.Context(), []string{item.ID}); err != nil {
			t.Fatalf("send failed: %v", err)
		}
		if _, err := service.Respond(t.Context(), item.ID, true, ""); err != nil {
			t.Fatalf("respond failed: %v", err)
		}
		if _, err := service.Submit(t.Context(), item.ID, []byte(`{}`)); err != nil {
			t.Fatalf("submit failed: %v", err)
		}
		// Approve all but the last team.
		if i < len(teams)-1 {
			if _, err := service.Review(t.Context(), item.ID, ReviewApprove, ""); err != nil {
				t.Fatalf("approve failed: %v", err)
			}
		}
	}

	readiness, err := service.SchedulingReadiness(t.Context(), memory.SeasonIDLiga1Indonesia)
	if err != nil {
		t.Fatalf("readiness failed: %v", err)
	}
	if readiness.Ready {
		t.Fatal("expected not ready with one approval missing")
	}
	if readiness.Approved != 3 || readiness.Required != 4 || readiness.Deficit != 1 {
		t.Fatalf("unexpected readiness: %+v", readiness)
	}
}
