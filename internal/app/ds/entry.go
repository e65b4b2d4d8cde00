package ds

// EntryType тип записи каталога
type EntryType string

const (
	EntryTypeAnime EntryType = "anime"
	EntryTypeManga EntryType = "manga"
)

// ApprovedStatus положение записи в жизненном цикле модерации
type ApprovedStatus string

const (
	StatusApproved   ApprovedStatus = "approved"
	StatusDenied     ApprovedStatus = "denied"
	StatusUnapproved ApprovedStatus = "unapproved"
	StatusDeleted    ApprovedStatus = "deleted"
	StatusAll        ApprovedStatus = "all"
)

// OrderBy поле сортировки
type OrderBy string

const (
	OrderByID                     OrderBy = "id"
	OrderByTitle                  OrderBy = "title"
	OrderByStartDate              OrderBy = "start_date"
	OrderByEndDate                OrderBy = "end_date"
	OrderByStatusUpdatedAt        OrderBy = "status_updated_at"
	OrderByMetadataUpdatedAt      OrderBy = "metadata_updated_at"
	OrderByMemberCount            OrderBy = "member_count"
	OrderByAverageEpisodeDuration OrderBy = "average_episode_duration"
)

// SortDirection направление сортировки
type SortDirection string

const (
	SortAsc  SortDirection = "asc"
	SortDesc SortDirection = "desc"
)

const (
	DefaultApprovedStatus = StatusAll
	DefaultOrderBy        = OrderByID
	DefaultSort           = SortDesc
	DefaultPageSize       = 100
	DefaultEntryType      = EntryTypeAnime

	// MediaTypeAll значение селектора, означающее отсутствие фильтра
	MediaTypeAll = "all"
)

var (
	EntryTypes = []EntryType{EntryTypeAnime, EntryTypeManga}

	ApprovedStatuses = []ApprovedStatus{
		StatusApproved, StatusDenied, StatusUnapproved, StatusDeleted, StatusAll,
	}

	// EntryStatuses статусы, которые может иметь сама запись (без "all")
	EntryStatuses = []ApprovedStatus{
		StatusApproved, StatusDenied, StatusUnapproved, StatusDeleted,
	}

	OrderByFields = []OrderBy{
		OrderByID,
		OrderByTitle,
		OrderByStartDate,
		OrderByEndDate,
		OrderByStatusUpdatedAt,
		OrderByMetadataUpdatedAt,
		OrderByMemberCount,
		OrderByAverageEpisodeDuration,
	}

	SortDirections = []SortDirection{SortAsc, SortDesc}

	PageSizes = []int{10, 25, 50, 100, 250}

	AnimeMediaTypes = []string{"tv", "ova", "movie", "special", "ona", "music", "unknown"}

	MangaMediaTypes = []string{
		"manga", "novel", "one_shot", "doujinshi", "manhwa", "manhua", "oel", "light_novel", "unknown",
	}
)

func (e EntryType) Valid() bool {
	return e == EntryTypeAnime || e == EntryTypeManga
}

func (s ApprovedStatus) Valid() bool {
	for _, v := range ApprovedStatuses {
		if s == v {
			return true
		}
	}
	return false
}

func (o OrderBy) Valid() bool {
	for _, v := range OrderByFields {
		if o == v {
			return true
		}
	}
	return false
}

func (s SortDirection) Valid() bool {
	return s == SortAsc || s == SortDesc
}

// ValidPageSize проверяет, что размер страницы входит в допустимый набор
func ValidPageSize(size int) bool {
	for _, v := range PageSizes {
		if size == v {
			return true
		}
	}
	return false
}

// MediaTypesFor возвращает подтипы, допустимые для типа записи
func MediaTypesFor(entryType EntryType) []string {
	switch entryType {
	case EntryTypeAnime:
		return AnimeMediaTypes
	case EntryTypeManga:
		return MangaMediaTypes
	default:
		return nil
	}
}

// ValidMediaType проверяет подтип относительно типа записи
func ValidMediaType(entryType EntryType, mediaType string) bool {
	for _, v := range MediaTypesFor(entryType) {
		if mediaType == v {
			return true
		}
	}
	return false
}
