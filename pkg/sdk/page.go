package sdk

import (
	"net/url"
	"strconv"
)

// Page is a Spring-style paginated response.
type Page[T any] struct {
	Content       []T   `json:"content"`
	TotalElements int64 `json:"totalElements"`
	TotalPages    int   `json:"totalPages"`
	Size          int   `json:"size"`
	Number        int   `json:"number"`
}

// PageQuery is the common paging and sorting input.
type PageQuery struct {
	Page    int
	Size    int
	SortBy  string
	SortDir string
}

func (q PageQuery) values() url.Values {
	v := url.Values{}
	q.apply(v)
	return v
}

func (q PageQuery) apply(v url.Values) {
	if q.Page > 0 {
		v.Set("page", strconv.Itoa(q.Page))
	}
	if q.Size > 0 {
		v.Set("size", strconv.Itoa(q.Size))
	}
	setIfNotEmpty(v, "sortBy", q.SortBy)
	setIfNotEmpty(v, "sortDir", q.SortDir)
}

func setIfNotEmpty(v url.Values, key, value string) {
	if value != "" {
		v.Set(key, value)
	}
}
