package pagination

// PageSize is the fixed page size every admin table uses.
const PageSize = 15

// Page describes one slice of a filtered listing.
type Page struct {
	Number     int
	Size       int
	Total      int
	TotalPages int
}

// NormalizePage clamps a requested page number to at least 1.
func NormalizePage(page int) int {
	if page < 1 {
		return 1
	}
	return page
}

// Slice returns the bounds [start, end) of the given page over a list of
// total items, plus the page descriptor. A page past the end yields an
// empty slice rather than an error, matching how the tables behave when a
// filter shrinks the result set under the current page.
func Slice(total, page int) (start, end int, p Page) {
	page = NormalizePage(page)

	totalPages := total / PageSize
	if total%PageSize != 0 {
		totalPages++
	}
	if totalPages == 0 {
		totalPages = 1
	}

	start = (page - 1) * PageSize
	if start > total {
		start = total
	}
	end = start + PageSize
	if end > total {
		end = total
	}

	return start, end, Page{
		Number:     page,
		Size:       PageSize,
		Total:      total,
		TotalPages: totalPages,
	}
}
