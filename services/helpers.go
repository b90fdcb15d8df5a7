package services

import (
	"fmt"
	"math"
	"time"

	"github.com/esportshub/arena/models"
	"github.com/esportshub/arena/storage"
)

func validateTournamentDates(start, end time.Time) error {
	if start.IsZero() || end.IsZero() {
		return fmt.Errorf("%w: start and end dates are required", ErrValidationFailed)
	}
	if end.Before(start) {
		return fmt.Errorf("%w: end date (%s) is before start date (%s)",
			ErrTournamentInvalidDateRange, end.Format(time.RFC3339), start.Format(time.RFC3339))
	}
	return nil
}

// round2 rounds to two decimal places, the precision leaderboard percentages
// and averages are reported at.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func populateTeamLogoURL(team *models.Team, uploader storage.FileUploader) {
	if team == nil || uploader == nil || team.LogoKey == nil || *team.LogoKey == "" {
		return
	}
	url := uploader.GetPublicURL(*team.LogoKey)
	if url != "" {
		team.LogoURL = &url
	}
}

// GetExtensionFromContentType maps the content types accepted for logo uploads
// to a file extension.
func GetExtensionFromContentType(contentType string) (string, error) {
	switch contentType {
	case "image/png":
		return ".png", nil
	case "image/jpeg":
		return ".jpg", nil
	case "image/webp":
		return ".webp", nil
	case "image/svg+xml":
		return ".svg", nil
	default:
		return "", fmt.Errorf("%w: unsupported content type %q", ErrValidationFailed, contentType)
	}
}
