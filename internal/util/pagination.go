package util

const DefaultPageSize = 50

// Calculate clamps limit/offset query values the way the public API expects:
// limit defaults to 50 and never exceeds 100, offset is never negative.
func Calculate(limit, offset int) (int, int) {
	if limit <= 0 || limit > 100 {
		limit = DefaultPageSize
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}

// Page converts page/size style parameters into from/limit for search.
func Page(page, size int) (from, limit int) {
	if page < 1 {
		page = 1
	}
	if size <= 0 || size > 100 {
		size = 10
	}
	from = (page - 1) * size
	return from, size
}
