// Package query переводит состояние формы поиска и параметры URL
// в канонический запрос к бэкенду данных.
package query

import (
	"fmt"
	"math"
	"net/url"

	"DBsentinel-Gateway/internal/app/ds"

	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"
)

// Параметры URL, которые читаются при загрузке страницы поиска
const (
	ParamEntryType = "entry_type"
	ParamStatus    = "status"
	ParamOrderBy   = "order_by"
	ParamSort      = "sort"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// Encode строит канонический запрос из состояния формы.
// Никогда не возвращает ошибку: невалидные значения заменяются значениями по умолчанию.
func Encode(state ds.FilterState) ds.CanonicalQuery {
	q := ds.CanonicalQuery{
		Title:          state.Title,
		ApprovedStatus: ds.DefaultApprovedStatus,
		OrderBy:        ds.DefaultOrderBy,
		Sort:           ds.DefaultSort,
		Limit:          ds.DefaultPageSize,
	}

	entryType := ds.EntryType(state.EntryType)
	if entryType.Valid() {
		q.EntryType = entryType
		if state.MediaType != ds.MediaTypeAll && ds.ValidMediaType(entryType, state.MediaType) {
			q.MediaType = state.MediaType
		}
	}

	q.NSFW = encodeSafety(state.SFW, state.NSFW)

	if status := ds.ApprovedStatus(state.ApprovedStatus); status.Valid() {
		q.ApprovedStatus = status
	}
	if orderBy := ds.OrderBy(state.OrderBy); orderBy.Valid() {
		q.OrderBy = orderBy
	}
	if sort := ds.SortDirection(state.Sort); sort.Valid() {
		q.Sort = sort
	}
	if ds.ValidPageSize(state.Limit) {
		q.Limit = state.Limit
	}

	// offset не должен переполниться
	page := state.Page
	if page < 0 {
		page = 0
	}
	if maxPage := math.MaxInt / q.Limit; page > maxPage {
		page = maxPage
	}
	q.Offset = page * q.Limit

	return q
}

// encodeSafety: ровно один флажок задаёт значение, оба или ни одного - без ограничения
func encodeSafety(sfw, nsfw bool) *bool {
	switch {
	case sfw && !nsfw:
		v := false
		return &v
	case nsfw && !sfw:
		v := true
		return &v
	case sfw && nsfw:
		logrus.Debug("both sfw and nsfw selected, safety filter left unconstrained")
	}
	return nil
}

// Validate проверяет канонический запрос по схеме перед отправкой
func Validate(q ds.CanonicalQuery) error {
	if err := validate.Struct(q); err != nil {
		return fmt.Errorf("invalid canonical query: %w", err)
	}
	return nil
}

// DecodeURL переносит распознанные параметры URL в состояние формы.
// Неизвестные и невалидные значения молча игнорируются.
func DecodeURL(values url.Values, state ds.FilterState) ds.FilterState {
	if v := values.Get(ParamEntryType); ds.EntryType(v).Valid() {
		if v != state.EntryType {
			state.MediaType = ""
		}
		state.EntryType = v
	}
	if v := values.Get(ParamStatus); ds.ApprovedStatus(v).Valid() {
		state.ApprovedStatus = v
	}
	if v := values.Get(ParamOrderBy); ds.OrderBy(v).Valid() {
		state.OrderBy = v
	}
	if v := values.Get(ParamSort); ds.SortDirection(v).Valid() {
		state.Sort = v
	}
	return state
}

// EncodeURL строит параметры URL для полей, которые читает DecodeURL
func EncodeURL(state ds.FilterState) url.Values {
	values := url.Values{}
	if ds.EntryType(state.EntryType).Valid() {
		values.Set(ParamEntryType, state.EntryType)
	}
	if ds.ApprovedStatus(state.ApprovedStatus).Valid() {
		values.Set(ParamStatus, state.ApprovedStatus)
	}
	if ds.OrderBy(state.OrderBy).Valid() {
		values.Set(ParamOrderBy, state.OrderBy)
	}
	if ds.SortDirection(state.Sort).Valid() {
		values.Set(ParamSort, state.Sort)
	}
	return values
}

// SearchLink ссылка на страницу поиска с заданными типом и статусом
func SearchLink(entryType ds.EntryType, status ds.ApprovedStatus) string {
	values := url.Values{}
	if entryType.Valid() {
		values.Set(ParamEntryType, string(entryType))
	}
	if status.Valid() {
		values.Set(ParamStatus, string(status))
	}
	return "/search/?" + values.Encode()
}
