package services

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/Dosada05/zone-cup/models"
	"github.com/Dosada05/zone-cup/repositories"
	"github.com/Dosada05/zone-cup/storage"
)

const teamLogoPathFormat = "teams/%s/logo%s"

type TeamService interface {
	CreateTeam(ctx context.Context, name string) (*models.Team, error)
	GetTeam(ctx context.Context, id string) (*models.Team, error)
	ListTeams(ctx context.Context) ([]*models.Team, error)
	UploadLogo(ctx context.Context, teamID, contentType string, file io.Reader) (*models.Team, error)
}

type teamService struct {
	teamRepo repositories.TeamRepository
	uploader storage.FileUploader
	logger   *slog.Logger
}

// NewTeamService: uploader может быть nil, тогда загрузка логотипов отключена.
func NewTeamService(teamRepo repositories.TeamRepository, uploader storage.FileUploader, logger *slog.Logger) TeamService {
	return &teamService{
		teamRepo: teamRepo,
		uploader: uploader,
		logger:   loggerOrDefault(logger),
	}
}

func (s *teamService) CreateTeam(ctx context.Context, name string) (*models.Team, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrTeamNameRequired
	}
	team := &models.Team{Name: name}
	if err := s.teamRepo.Create(ctx, nil, team); err != nil {
		return nil, handleRepositoryError(err)
	}
	s.logger.InfoContext(ctx, "team created", slog.String("team_id", team.ID), slog.String("name", team.Name))
	return team, nil
}

func (s *teamService) GetTeam(ctx context.Context, id string) (*models.Team, error) {
	team, err := s.teamRepo.GetByID(ctx, nil, id)
	if err != nil {
		return nil, handleRepositoryError(err)
	}
	populateTeamLogoURL(team, s.uploader)
	return team, nil
}

func (s *teamService) ListTeams(ctx context.Context) ([]*models.Team, error) {
	teams, err := s.teamRepo.List(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to list teams: %w", err)
	}
	for _, t := range teams {
		populateTeamLogoURL(t, s.uploader)
	}
	return teams, nil
}

// UploadLogo загружает новый логотип и удаляет старый объект, если ключ изменился.
func (s *teamService) UploadLogo(ctx context.Context, teamID, contentType string, file io.Reader) (*models.Team, error) {
	if s.uploader == nil {
		return nil, ErrLogoStorageDisabled
	}
	ext, err := GetExtensionFromContentType(contentType)
	if err != nil {
		return nil, err
	}
	team, err := s.teamRepo.GetByID(ctx, nil, teamID)
	if err != nil {
		return nil, handleRepositoryError(err)
	}

	oldKey := team.LogoKey
	newKey := fmt.Sprintf(teamLogoPathFormat, team.ID, ext)
	if _, err = s.uploader.Upload(ctx, newKey, contentType, file); err != nil {
		return nil, fmt.Errorf("failed to upload logo for team %s: %w", team.ID, err)
	}

	if err = s.teamRepo.UpdateLogoKey(ctx, nil, team.ID, &newKey); err != nil {
		if delErr := s.uploader.Delete(ctx, newKey); delErr != nil {
			s.logger.ErrorContext(ctx, "failed to clean up uploaded logo", slog.String("key", newKey), slog.Any("error", delErr))
		}
		return nil, handleRepositoryError(err)
	}

	if oldKey != nil && *oldKey != "" && *oldKey != newKey {
		if delErr := s.uploader.Delete(ctx, *oldKey); delErr != nil {
			s.logger.WarnContext(ctx, "failed to delete old team logo", slog.String("key", *oldKey), slog.Any("error", delErr))
		}
	}

	team.LogoKey = &newKey
	populateTeamLogoURL(team, s.uploader)
	s.logger.InfoContext(ctx, "team logo updated", slog.String("team_id", team.ID), slog.String("key", newKey))
	return team, nil
}
