// Package pagepkg turns page based listing parameters into SQL limits and back.
package pagepkg

// MaxLimit caps the page size for every listing.
const MaxLimit = 100

// Meta describes a returned page of records.
type Meta struct {
	Total      int64 `json:"total"`
	Page       int32 `json:"page"`
	Limit      int32 `json:"limit"`
	TotalPages int64 `json:"totalPages"`
}

// Params holds the requested page and page size.
type Params struct {
	Page  int32
	Limit int32
}

// New normalizes page and limit: page falls back to 1 and limit to defaultLimit
// when not positive, limit is capped by MaxLimit.
func New(page, limit, defaultLimit int32) Params {
	if page < 1 {
		page = 1
	}

	if limit < 1 {
		limit = defaultLimit
	}

	if limit > MaxLimit {
		limit = MaxLimit
	}

	return Params{Page: page, Limit: limit}
}

// Offset returns the number of rows to skip.
//
// It is computed in int64, so a huge page yields a far offset and an empty page.
func (p Params) Offset() int64 {
	return int64(p.Page-1) * int64(p.Limit)
}

// Meta builds the page envelope for the given total number of rows.
func (p Params) Meta(total int64) Meta {
	return Meta{
		Total:      total,
		Page:       p.Page,
		Limit:      p.Limit,
		TotalPages: TotalPages(total, p.Limit),
	}
}

// TotalPages returns ceil(total / limit).
func TotalPages(total int64, limit int32) int64 {
	if limit < 1 || total < 1 {
		return 0
	}

	l := int64(limit)

	return (total + l - 1) / l
}
