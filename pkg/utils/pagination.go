package utils

func CalculateTotalPages(total int64, perPage int) int {
	if perPage <= 0 || total <= 0 {
		return 0
	}
	return int((total + int64(perPage) - 1) / int64(perPage))
}

// ClampPage keeps page inside [1, totalPages]. totalPages below 1 counts as 1.
func ClampPage(page, totalPages int) int {
	if totalPages < 1 {
		totalPages = 1
	}
	if page < 1 {
		return 1
	}
	if page > totalPages {
		return totalPages
	}
	return page
}

// PageNumbers returns 1..totalPages for page buttons.
func PageNumbers(totalPages int) []int {
	if totalPages < 1 {
		return nil
	}
	pages := make([]int, totalPages)
	for i := range pages {
		pages[i] = i + 1
	}
	return pages
}
