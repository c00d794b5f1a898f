package query

// SearchOptions echoes the applied paging and ordering.
//
// TotalCount is the number of rows in this page, not across all pages.
type SearchOptions struct {
	Ordering   string `json:"ordering"`
	Page       int    `json:"page"`
	PageSize   any    `json:"page_size"`
	TotalCount int    `json:"total_count"`
}

// Page is the list envelope returned by every list endpoint.
type Page[T any] struct {
	Founds        []T           `json:"founds"`
	SearchOptions SearchOptions `json:"search_options"`
}
