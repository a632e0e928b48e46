package specification

import (
	"strings"

	"gorm.io/gorm"
)

// likePattern escapes LIKE wildcards so a typed "%" or "_" matches literally.
func likePattern(q string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return "%" + r.Replace(strings.TrimSpace(q)) + "%"
}

// CitizenSearch matches first name, last name, the full name or phone.
type CitizenSearch struct {
	Query string
}

func (s CitizenSearch) Apply(db *gorm.DB) *gorm.DB {
	pattern := likePattern(s.Query)
	return db.Where(
		"first_name ILIKE ? OR last_name ILIKE ? OR (first_name || ' ' || last_name) ILIKE ? OR phone ILIKE ?",
		pattern, pattern, pattern, pattern,
	)
}

// OfficerSearch matches callsign, name or badge number.
type OfficerSearch struct {
	Query string
}

func (s OfficerSearch) Apply(db *gorm.DB) *gorm.DB {
	pattern := likePattern(s.Query)
	return db.Where("callsign ILIKE ? OR name ILIKE ? OR badge ILIKE ?", pattern, pattern, pattern)
}

// ActiveOfficers hides officers that left the department.
type ActiveOfficers struct{}

func (s ActiveOfficers) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("active = ?", true)
}
