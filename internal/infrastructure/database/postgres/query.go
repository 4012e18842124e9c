package postgres

import (
	"strings"

	"gorm.io/gorm"
)

// paginate applies LIMIT/OFFSET. A non-positive pageSize returns every row.
func paginate(db *gorm.DB, page, pageSize int) *gorm.DB {
	if pageSize <= 0 {
		return db
	}
	if page <= 0 {
		page = 1
	}
	return db.Limit(pageSize).Offset((page - 1) * pageSize)
}

// orderBy resolves a caller-supplied sort key against a whitelist of columns.
func orderBy(sortBy, sortOrder string, allowed map[string]string, fallback string) string {
	column, ok := allowed[sortBy]
	if !ok {
		column = fallback
	}
	direction := "DESC"
	if strings.ToLower(sortOrder) == "asc" {
		direction = "ASC"
	}
	return column + " " + direction + ", id " + direction
}

func likePattern(search string) string {
	replacer := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return "%" + replacer.Replace(search) + "%"
}
