package util

import "strconv"

// ParseInt parses a string to an integer, returning defaultValue if parsing fails
func ParseInt(s string, defaultValue int) int {
	if val, err := strconv.Atoi(s); err == nil {
		return val
	}
	return defaultValue
}

// ParsePagination reads "page" and "per_page" query values with sane bounds.
// page starts at 1; per_page is clamped to [1, maxPerPage].
func ParsePagination(pageStr, perPageStr string, maxPerPage int) (page, perPage int) {
	page = ParseInt(pageStr, 1)
	if page < 1 {
		page = 1
	}
	perPage = ParseInt(perPageStr, 20)
	if perPage < 1 {
		perPage = 20
	}
	if perPage > maxPerPage {
		perPage = maxPerPage
	}
	return page, perPage
}
