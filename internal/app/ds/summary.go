package ds

// StatusCount количество записей в одном статусе
type StatusCount struct {
	Status ApprovedStatus `json:"status" validate:"required"`
	Count  int            `json:"count" validate:"gte=0"`
}

// SummaryResponse агрегированная статистика по типам записей
type SummaryResponse struct {
	Anime []StatusCount `json:"anime" validate:"required,dive"`
	Manga []StatusCount `json:"manga" validate:"required,dive"`
}

// SummaryItem строка статистики со ссылкой на поиск
type SummaryItem struct {
	Status    ApprovedStatus `json:"status"`
	Count     int            `json:"count"`
	SearchURL string         `json:"search_url"`
}

// SummaryView статистика для главной страницы
type SummaryView struct {
	Anime []SummaryItem `json:"anime"`
	Manga []SummaryItem `json:"manga"`
}
