package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/Dosada05/zone-cup/brackets"
	"github.com/Dosada05/zone-cup/models"
	"github.com/Dosada05/zone-cup/repositories"
	"github.com/Dosada05/zone-cup/storage"
)

// EventPublisher рассылает события подписчикам. Реализуется brackets.Hub.
type EventPublisher interface {
	BroadcastToRoom(roomID string, message interface{})
}

func publish(publisher EventPublisher, room, eventType string, payload interface{}) {
	if publisher == nil {
		return
	}
	publisher.BroadcastToRoom(room, brackets.WebSocketMessage{Type: eventType, Payload: payload, RoomID: room})
}

func loggerOrDefault(logger *slog.Logger) *slog.Logger {
	if logger == nil {
		return slog.Default()
	}
	return logger
}

// runInTx выполняет fn в одной транзакции: коммит при успехе, откат при ошибке или панике.
// Внутри fn все запросы должны идти через tx.
func runInTx(ctx context.Context, db *sql.DB, logger *slog.Logger, operation string, fn func(tx *sql.Tx) error) (txErr error) {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
		if txErr != nil {
			if IsExpected(txErr) {
				logger.InfoContext(ctx, "operation rejected", slog.String("operation", operation), slog.String("reason", txErr.Error()))
			} else {
				logger.ErrorContext(ctx, "rolling back transaction", slog.String("operation", operation), slog.Any("error", txErr))
			}
			if rbErr := tx.Rollback(); rbErr != nil {
				logger.ErrorContext(ctx, "rollback failed", slog.String("operation", operation), slog.Any("error", rbErr))
				txErr = fmt.Errorf("transaction processing error: %w (rollback also failed: %v)", txErr, rbErr)
			}
			return
		}
		if cErr := tx.Commit(); cErr != nil {
			logger.ErrorContext(ctx, "commit failed", slog.String("operation", operation), slog.Any("error", cErr))
			txErr = fmt.Errorf("failed to commit transaction: %w", cErr)
		}
	}()

	return fn(tx)
}

// handleRepositoryError переводит ошибки репозиториев в ошибки сервисов.
func handleRepositoryError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, repositories.ErrTeamNotFound):
		return ErrTeamNotFound
	case errors.Is(err, repositories.ErrTeamNameConflict):
		return ErrTeamNameConflict
	case errors.Is(err, repositories.ErrZoneNotFound):
		return ErrZoneNotFound
	case errors.Is(err, repositories.ErrFixtureNotFound):
		return ErrFixtureNotFound
	case errors.Is(err, repositories.ErrTeamAlreadyAssigned):
		return ErrTeamAlreadyInZone
	case errors.Is(err, repositories.ErrTeamAssignmentAbsent):
		return ErrTeamNotInZone
	case errors.Is(err, repositories.ErrSeedingStateConflict):
		return ErrStateConflict
	default:
		return err
	}
}

// loadSettings читает настройки; если строки еще нет, возвращает правила по умолчанию.
func loadSettings(ctx context.Context, repo repositories.SettingsRepository, exec repositories.SQLExecutor) (*models.TournamentSettings, error) {
	settings, err := repo.Get(ctx, exec)
	if err != nil {
		if errors.Is(err, repositories.ErrSettingsNotFound) {
			return &models.TournamentSettings{Rules: *models.DefaultRules(), State: models.SeedingUnseeded}, nil
		}
		return nil, fmt.Errorf("failed to load tournament settings: %w", err)
	}
	return settings, nil
}

func loadTeamIndex(ctx context.Context, repo repositories.TeamRepository, exec repositories.SQLExecutor) (map[string]*models.Team, error) {
	teams, err := repo.List(ctx, exec)
	if err != nil {
		return nil, fmt.Errorf("failed to list teams: %w", err)
	}
	index := make(map[string]*models.Team, len(teams))
	for _, t := range teams {
		index[t.ID] = t
	}
	return index, nil
}

// teamRefs собирает ссылки на команды зоны. Если команда пропала из каталога,
// в качестве имени используется ее идентификатор.
func teamRefs(ids []string, index map[string]*models.Team) []models.TeamRef {
	refs := make([]models.TeamRef, 0, len(ids))
	for _, id := range ids {
		if t, ok := index[id]; ok {
			refs = append(refs, t.Ref())
			continue
		}
		refs = append(refs, models.TeamRef{ID: id, Name: id})
	}
	return refs
}

func completedResults(fixtures []*models.Fixture) []models.MatchResult {
	results := make([]models.MatchResult, 0, len(fixtures))
	for _, f := range fixtures {
		if r, ok := f.Result(); ok {
			results = append(results, r)
		}
	}
	return results
}

func sortTeamsByName(teams []*models.Team) {
	sort.Slice(teams, func(i, j int) bool {
		if teams[i].Name != teams[j].Name {
			return teams[i].Name < teams[j].Name
		}
		return teams[i].ID < teams[j].ID
	})
}

func populateTeamLogoURL(team *models.Team, uploader storage.FileUploader) {
	if team == nil || team.LogoKey == nil || *team.LogoKey == "" || uploader == nil {
		return
	}
	if url := uploader.GetPublicURL(*team.LogoKey); url != "" {
		team.LogoURL = &url
	}
}

func GetExtensionFromContentType(contentType string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(strings.SplitN(contentType, ";", 2)[0])) {
	case "image/jpeg", "image/jpg":
		return ".jpg", nil
	case "image/png":
		return ".png", nil
	case "image/gif":
		return ".gif", nil
	case "image/webp":
		return ".webp", nil
	case "image/svg+xml":
		return ".svg", nil
	default:
		return "", fmt.Errorf("%w: '%s'", ErrUnsupportedLogoType, contentType)
	}
}
