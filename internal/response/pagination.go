package response

import (
	"fmt"
	"math"
	"net/http"
	"net/url"
	"strconv"
)

const (
	DefaultPageSize = 10
	MaxPageSize     = 100
)

// Pageable is a zero-based page request.
type Pageable struct {
	Page int
	Size int
}

// Offset is the number of rows to skip. It saturates at math.MaxInt so a
// huge page number reads as a page past the data.
func (p Pageable) Offset() int {
	if p.Size > 0 && p.Page > math.MaxInt/p.Size {
		return math.MaxInt
	}
	return p.Page * p.Size
}

// ParsePageable reads page/size from the query. Missing values fall back to
// page 0 and DefaultPageSize; size is capped at MaxPageSize.
func ParsePageable(q url.Values) (Pageable, error) {
	p := Pageable{Page: 0, Size: DefaultPageSize}
	if pageStr := q.Get("page"); pageStr != "" {
		page, err := strconv.Atoi(pageStr)
		if err != nil || page < 0 {
			return p, fmt.Errorf("invalid page parameter. Must be a non-negative integer")
		}
		p.Page = page
	}
	if sizeStr := q.Get("size"); sizeStr != "" {
		size, err := strconv.Atoi(sizeStr)
		if err != nil || size <= 0 {
			return p, fmt.Errorf("invalid size parameter. Must be a positive integer")
		}
		if size > MaxPageSize {
			size = MaxPageSize
		}
		p.Size = size
	}
	return p, nil
}

// Page is the paged payload shape: content plus totals.
type Page[T any] struct {
	Content       []T `json:"content"`
	TotalElements int `json:"totalElements"`
	TotalPages    int `json:"totalPages"`
	Size          int `json:"size"`
	Number        int `json:"number"`
}

func NewPage[T any](content []T, p Pageable, total int) Page[T] {
	if content == nil {
		content = []T{}
	}
	return Page[T]{
		Content:       content,
		TotalElements: total,
		TotalPages:    TotalPages(total, p.Size),
		Size:          p.Size,
		Number:        p.Page,
	}
}

func TotalPages(total, size int) int {
	if size <= 0 {
		return 0
	}
	return int(math.Ceil(float64(total) / float64(size)))
}

type Link struct {
	Href string `json:"href"`
}

type PageMetadata struct {
	Size          int `json:"size"`
	TotalElements int `json:"totalElements"`
	TotalPages    int `json:"totalPages"`
	Number        int `json:"number"`
}

// HateoasPage is the hypermedia flavored page: metadata under "page" and
// navigation links under "_links".
type HateoasPage[T any] struct {
	Content []T             `json:"content"`
	Page    PageMetadata    `json:"page"`
	Links   map[string]Link `json:"_links"`
}

// NewHateoasPage builds self/first/last and, when they exist, prev/next links
// relative to the request URL.
func NewHateoasPage[T any](r *http.Request, content []T, p Pageable, total int) HateoasPage[T] {
	if content == nil {
		content = []T{}
	}
	totalPages := TotalPages(total, p.Size)
	links := map[string]Link{
		"self":  {Href: pageURL(r, p.Page, p.Size)},
		"first": {Href: pageURL(r, 0, p.Size)},
	}
	if totalPages > 0 {
		links["last"] = Link{Href: pageURL(r, totalPages-1, p.Size)}
	}
	if p.Page > 0 {
		links["prev"] = Link{Href: pageURL(r, p.Page-1, p.Size)}
	}
	if p.Page < totalPages-1 {
		links["next"] = Link{Href: pageURL(r, p.Page+1, p.Size)}
	}
	return HateoasPage[T]{
		Content: content,
		Page: PageMetadata{
			Size:          p.Size,
			TotalElements: total,
			TotalPages:    totalPages,
			Number:        p.Page,
		},
		Links: links,
	}
}

func pageURL(r *http.Request, page, size int) string {
	u := *r.URL
	q := u.Query()
	q.Set("page", strconv.Itoa(page))
	q.Set("size", strconv.Itoa(size))
	u.RawQuery = q.Encode()
	return u.RequestURI()
}
