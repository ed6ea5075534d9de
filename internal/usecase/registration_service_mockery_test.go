package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/mock"

	"github.com/ligaops/competition-engine/internal/domain/registration"
	"github.com/ligaops/competition-engine/internal/domain/season"
	registrationmock "github.com/ligaops/competition-engine/internal/mocks/domain/registration"
	seasonmock "github.com/ligaops/competition-engine/internal/mocks/domain/season"
	idgen "github.com/ligaops/competition-engine/internal/platform/id"
)

func TestRegistrationService_Invite_SuccessUsingMockery(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	seasonRepo := seasonmock.NewRepository(t)
	registrationRepo := registrationmock.NewRepository(t)

	service := NewRegistrationService(seasonRepo, registrationRepo, idgen.NewRandomGenerator())
	seasonID := "idn-liga-1-2025"
	teamID := "idn-persija"

	seasonRepo.
		On("GetByID", mock.MatchedBy(func(v context.Context) bool { return v == ctx }), seasonID).
		Return(season.Season{ID: seasonID, RequiredTeamCount: 4, Rules: season.DefaultRules()}, true, nil).
		Once()
	registrationRepo.
		On("GetBySeasonAndTeam", mock.MatchedBy(func(v context.Context) bool { return v == ctx }), seasonID, teamID).
		Return(registration.Registration{}, false, nil).
		Once()
	registrationRepo.
		On("Create", mock.MatchedBy(func(v context.Context) bool { return v == ctx }), mock.MatchedBy(func(item registration.Registration) bool {
			return item.SeasonID == seasonID && item.TeamID == teamID && item.Status == registration.StatusDraftInvite
		})).
		Return(nil).
		Once()

	got, err := service.Invite(ctx, seasonID, teamID)
	if err != nil {
		t.Fatalf("invite team: %v", err)
	}
	if got.ID == "" {
		t.Fatalf("expected generated registration id")
	}
	if got.Status != registration.StatusDraftInvite {
		t.Fatalf("unexpected status: %s", got.Status)
	}
}

func TestRegistrationService_Invite_SeasonNotFoundUsingMockery(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	seasonRepo := seasonmock.NewRepository(t)
	registrationRepo := registrationmock.NewRepository(t)

	service := NewRegistrationService(seasonRepo, registrationRepo, idgen.NewRandomGenerator())
	seasonID := "missing-season"

	seasonRepo.
		On("GetByID", mock.MatchedBy(func(v context.Context) bool { return v == ctx }), seasonID).
		Return(season.Season{}, false, nil).
		Once()

	_, err := service.Invite(ctx, seasonID, "idn-persija")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestRegistrationService_Invite_DuplicateTeamUsingMockery(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	seasonRepo := seasonmock.NewRepository(t)
	registrationRepo := registrationmock.NewRepository(t)

	service := NewRegistrationService(seasonRepo, registrationRepo, idgen.NewRandomGenerator())
	seasonID := "idn-liga-1-2025"
	teamID := "idn-persija"

	seasonRepo.
		On("GetByID", mock.MatchedBy(func(v context.Context) bool { return v == ctx }), seasonID).
		Return(season.Season{ID: seasonID, RequiredTeamCount: 4, Rules: season.DefaultRules()}, true, nil).
		Once()
	registrationRepo.
		On("GetBySeasonAndTeam", mock.MatchedBy(func(v context.Context) bool { return v == ctx }), seasonID, teamID).
		Return(registration.Registration{ID: "reg-1", SeasonID: seasonID, TeamID: teamID}, true, nil).
		Once()

	_, err := service.Invite(ctx, seasonID, teamID)
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for duplicate invite, got %v", err)
	}
}
