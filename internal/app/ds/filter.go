package ds

// FilterState текущие значения элементов управления поиском.
// Значения хранятся как есть и могут быть временно невалидными,
// нормализация происходит при кодировании в CanonicalQuery.
type FilterState struct {
	Title          string `json:"title"`
	EntryType      string `json:"entry_type"`
	MediaType      string `json:"media_type,omitempty"`
	SFW            bool   `json:"sfw"`
	NSFW           bool   `json:"nsfw"`
	ApprovedStatus string `json:"approved_status"`
	OrderBy        string `json:"order_by"`
	Sort           string `json:"sort"`
	Page           int    `json:"page"`
	Limit          int    `json:"limit"`
}

// DefaultFilterState начальное состояние формы поиска
func DefaultFilterState() FilterState {
	return FilterState{
		EntryType:      string(DefaultEntryType),
		SFW:            true,
		ApprovedStatus: string(DefaultApprovedStatus),
		OrderBy:        string(DefaultOrderBy),
		Sort:           string(DefaultSort),
		Page:           0,
		Limit:          DefaultPageSize,
	}
}
