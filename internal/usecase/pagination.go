package usecase

const (
	defaultPageLimit = 10
	maxPageLimit     = 100
)

type Pagination struct {
	Limit  int   `json:"limit"`
	Offset int   `json:"offset"`
	Total  int64 `json:"total"`
}

// limit=0は既定値
func normalizePage(limit, offset int) (int, int, error) {
	if limit == 0 {
		limit = defaultPageLimit
	}
	if limit < 0 || limit > maxPageLimit {
		return 0, 0, validationError("limit must be between 1 and %d", maxPageLimit)
	}
	if offset < 0 {
		return 0, 0, validationError("offset must be >= 0")
	}
	return limit, offset, nil
}
