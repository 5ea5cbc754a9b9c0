package handlers

import (
	"time"

	"github.com/BruksfildServices01/petgroom-scheduler/internal/models"
	"github.com/BruksfildServices01/petgroom-scheduler/internal/timezone"
)

// parseDate interpreta YYYY-MM-DD no fuso padrão; os use cases refazem
// o recorte do dia no fuso do petshop
func parseDate(dateStr string) (time.Time, error) {
	return time.ParseInLocation(
		"2006-01-02",
		dateStr,
		timezone.Location(timezone.DefaultTimezone),
	)
}

func parseDateInShop(shop *models.Petshop, dateStr string) (time.Time, error) {
	return time.ParseInLocation(
		"2006-01-02",
		dateStr,
		timezone.Location(shop.Timezone),
	)
}
