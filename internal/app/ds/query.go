package ds

// CanonicalQuery нормализованный запрос к бэкенду данных
type CanonicalQuery struct {
	Title          string         `json:"title,omitempty"`
	EntryType      EntryType      `json:"entry_type,omitempty" validate:"omitempty,oneof=anime manga"`
	MediaType      string         `json:"media_type,omitempty"`
	NSFW           *bool          `json:"nsfw,omitempty"`
	ApprovedStatus ApprovedStatus `json:"approved_status" validate:"required,oneof=approved denied unapproved deleted all"`
	Offset         int            `json:"offset" validate:"gte=0"`
	Limit          int            `json:"limit" validate:"oneof=10 25 50 100 250"`
	OrderBy        OrderBy        `json:"order_by" validate:"required,oneof=id title start_date end_date status_updated_at metadata_updated_at member_count average_episode_duration"`
	Sort           SortDirection  `json:"sort" validate:"required,oneof=asc desc"`
}

// QueryEntry одна запись в ответе бэкенда
type QueryEntry struct {
	ID                     int64                  `json:"id"`
	Title                  string                 `json:"title"`
	NSFW                   *bool                  `json:"nsfw,omitempty"`
	ImageURL               *string                `json:"image_url,omitempty"`
	MediaType              *string                `json:"media_type,omitempty"`
	AlternateTitles        map[string]interface{} `json:"alternate_titles,omitempty"`
	JSONData               map[string]interface{} `json:"json_data"`
	ApprovedStatus         ApprovedStatus         `json:"approved_status"`
	StartDate              *string                `json:"start_date,omitempty"`
	EndDate                *string                `json:"end_date,omitempty"`
	MemberCount            *int64                 `json:"member_count,omitempty"`
	AverageEpisodeDuration *int64                 `json:"average_episode_duration,omitempty"`
	MetadataUpdatedAt      float64                `json:"metadata_updated_at"`
	StatusUpdatedAt        float64                `json:"status_updated_at"`
}

// QueryResult ответ бэкенда на запрос поиска.
// Порядок Results задаёт бэкенд, здесь он не меняется.
type QueryResult struct {
	EntryType  EntryType    `json:"entry_type"`
	TotalCount int          `json:"total_count"`
	Results    []QueryEntry `json:"results"`
}

// Empty ответ без совпадений, это не ошибка
func (r *QueryResult) Empty() bool {
	return r.TotalCount == 0
}
