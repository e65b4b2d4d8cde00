package ds

// PaginationInfo представляет метаданные пагинации
type PaginationInfo struct {
	Page       int `json:"page"`
	PageSize   int `json:"page_size"`
	Total      int `json:"total"`
	TotalPages int `json:"total_pages"`
}

// QueryResponse ответ на запрос поиска без сессии
type QueryResponse struct {
	Query      CanonicalQuery `json:"query"`
	Result     *QueryResult   `json:"result"`
	Pagination PaginationInfo `json:"pagination"`
}
