package utils

// Page is a resolved 1-based page request.
type Page struct {
	Number int
	Size   int
}

// NewPage clamps a requested page. Non-positive numbers fall back to the
// first page and the default size; sizes above maxSize are capped.
func NewPage(number, size, defaultSize, maxSize int) Page {
	if number < 1 {
		number = 1
	}
	if size < 1 {
		size = defaultSize
	}
	if maxSize > 0 && size > maxSize {
		size = maxSize
	}
	return Page{Number: number, Size: size}
}

func (p Page) Offset() int {
	return (p.Number - 1) * p.Size
}

// TotalPages is ceil(total/size).
func (p Page) TotalPages(total int64) int {
	if p.Size <= 0 {
		return 0
	}
	return int((total + int64(p.Size) - 1) / int64(p.Size))
}
