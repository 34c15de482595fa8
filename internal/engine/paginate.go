package engine

import "strconv"

// Page describes one slice of a filtered collection
type Page struct {
	Number     int
	Size       int
	TotalPages int
	Start      int
	End        int
}

// Paginate computes the slice bounds for a 1-indexed page over n records.
// TotalPages is never below 1; an out-of-range page is clamped.
func Paginate(n, page, size int) Page {
	if size < 1 {
		size = 1
	}

	totalPages := (n + size - 1) / size
	if totalPages < 1 {
		totalPages = 1
	}

	if page < 1 {
		page = 1
	}
	if page > totalPages {
		page = totalPages
	}

	start := (page - 1) * size
	if start > n {
		start = n
	}
	end := start + size
	if end > n {
		end = n
	}

	return Page{Number: page, Size: size, TotalPages: totalPages, Start: start, End: end}
}

// Ellipsis marks compressed ranges in the page-number window
const Ellipsis = "..."

// PageNumbers renders the navigation window: at most 5 page slots, with
// ellipsis compression keeping the first and last page visible and a sliding
// window around the current page.
func PageNumbers(current, total int) []string {
	var pages []string

	if total <= 5 {
		for i := 1; i <= total; i++ {
			pages = append(pages, strconv.Itoa(i))
		}
		return pages
	}

	switch {
	case current <= 3:
		for i := 1; i <= 4; i++ {
			pages = append(pages, strconv.Itoa(i))
		}
		pages = append(pages, Ellipsis, strconv.Itoa(total))
	case current >= total-2:
		pages = append(pages, "1", Ellipsis)
		for i := total - 3; i <= total; i++ {
			pages = append(pages, strconv.Itoa(i))
		}
	default:
		pages = append(pages, "1", Ellipsis)
		for i := current - 1; i <= current+1; i++ {
			pages = append(pages, strconv.Itoa(i))
		}
		pages = append(pages, Ellipsis, strconv.Itoa(total))
	}

	return pages
}
