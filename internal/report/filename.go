package report

import (
	"fmt"
	"strings"
	"time"

	"freight-backoffice/pkg/utils"
)

// Filename builds {prefix}_{entity}_{YYYYMMDD}.{ext} with every non-alphanumeric
// character stripped from the entity name.
func Filename(prefix, entity string, date time.Time, ext string) string {
	name := utils.SanitizeFilenamePart(entity)
	if name == "" {
		name = "Report"
	}
	return fmt.Sprintf("%s_%s_%s.%s", prefix, name, date.UTC().Format("20060102"), strings.TrimPrefix(ext, "."))
}
