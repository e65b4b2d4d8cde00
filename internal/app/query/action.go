package query

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"DBsentinel-Gateway/internal/app/ds"
)

// ActionType одно действие пользователя над формой поиска
type ActionType string

const (
	ActionSetTitle          ActionType = "set_title"
	ActionSetEntryType      ActionType = "set_entry_type"
	ActionSetMediaType      ActionType = "set_media_type"
	ActionSetSFW            ActionType = "set_sfw"
	ActionSetNSFW           ActionType = "set_nsfw"
	ActionSetApprovedStatus ActionType = "set_approved_status"
	ActionSetOrderBy        ActionType = "set_order_by"
	ActionSetSort           ActionType = "set_sort"
	ActionSetPage           ActionType = "set_page"
	ActionSetLimit          ActionType = "set_limit"
)

var ErrInvalidAction = errors.New("invalid search action")

type Action struct {
	Type  ActionType      `json:"type" binding:"required"`
	Value json.RawMessage `json:"value"`
}

// ResetsPagination все действия, кроме смены страницы, сбрасывают пагинацию
func (a Action) ResetsPagination() bool {
	return a.Type != ActionSetPage
}

// Debounced ввод заголовка отправляется с задержкой
func (a Action) Debounced() bool {
	return a.Type == ActionSetTitle
}

// Apply применяет действие к состоянию и возвращает новое состояние.
// Исходное значение не изменяется.
func Apply(state ds.FilterState, a Action) (ds.FilterState, error) {
	switch a.Type {
	case ActionSetTitle:
		v, err := stringValue(a.Value)
		if err != nil {
			return state, err
		}
		return SetTitle(state, v), nil
	case ActionSetEntryType:
		v, err := stringValue(a.Value)
		if err != nil {
			return state, err
		}
		return SetEntryType(state, v), nil
	case ActionSetMediaType:
		v, err := stringValue(a.Value)
		if err != nil {
			return state, err
		}
		return SetMediaType(state, v), nil
	case ActionSetSFW:
		v, err := boolValue(a.Value)
		if err != nil {
			return state, err
		}
		return SetSFW(state, v), nil
	case ActionSetNSFW:
		v, err := boolValue(a.Value)
		if err != nil {
			return state, err
		}
		return SetNSFW(state, v), nil
	case ActionSetApprovedStatus:
		v, err := stringValue(a.Value)
		if err != nil {
			return state, err
		}
		return SetApprovedStatus(state, v), nil
	case ActionSetOrderBy:
		v, err := stringValue(a.Value)
		if err != nil {
			return state, err
		}
		return SetOrderBy(state, v), nil
	case ActionSetSort:
		v, err := stringValue(a.Value)
		if err != nil {
			return state, err
		}
		return SetSort(state, v), nil
	case ActionSetPage:
		v, err := intValue(a.Value)
		if err != nil {
			return state, err
		}
		return SetPage(state, v), nil
	case ActionSetLimit:
		v, err := intValue(a.Value)
		if err != nil {
			return state, err
		}
		return SetLimit(state, v), nil
	default:
		return state, fmt.Errorf("%w: unknown type %q", ErrInvalidAction, a.Type)
	}
}

// SetTitle заголовок хранится без обрезки пробелов
func SetTitle(state ds.FilterState, title string) ds.FilterState {
	state.Title = title
	state.Page = 0
	return state
}

// SetEntryType меняет тип записи и сбрасывает подтип
func SetEntryType(state ds.FilterState, entryType string) ds.FilterState {
	state.EntryType = strings.ToLower(entryType)
	state.MediaType = ""
	state.Page = 0
	return state
}

func SetMediaType(state ds.FilterState, mediaType string) ds.FilterState {
	if strings.EqualFold(mediaType, ds.MediaTypeAll) {
		mediaType = ""
	}
	state.MediaType = mediaType
	state.Page = 0
	return state
}

// SetSFW при выборе SFW снимает NSFW в том же обновлении
func SetSFW(state ds.FilterState, checked bool) ds.FilterState {
	state.SFW = checked
	if checked {
		state.NSFW = false
	}
	state.Page = 0
	return state
}

// SetNSFW при выборе NSFW снимает SFW в том же обновлении
func SetNSFW(state ds.FilterState, checked bool) ds.FilterState {
	state.NSFW = checked
	if checked {
		state.SFW = false
	}
	state.Page = 0
	return state
}

func SetApprovedStatus(state ds.FilterState, status string) ds.FilterState {
	state.ApprovedStatus = strings.ToLower(status)
	state.Page = 0
	return state
}

func SetOrderBy(state ds.FilterState, orderBy string) ds.FilterState {
	state.OrderBy = strings.ToLower(orderBy)
	state.Page = 0
	return state
}

func SetSort(state ds.FilterState, sort string) ds.FilterState {
	state.Sort = strings.ToLower(sort)
	state.Page = 0
	return state
}

func SetPage(state ds.FilterState, page int) ds.FilterState {
	if page < 0 {
		page = 0
	}
	state.Page = page
	return state
}

// SetLimit смена размера страницы делает текущий offset бессмысленным
func SetLimit(state ds.FilterState, limit int) ds.FilterState {
	state.Limit = limit
	state.Page = 0
	return state
}

func stringValue(raw json.RawMessage) (string, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return "", nil
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return "", fmt.Errorf("%w: expected string value", ErrInvalidAction)
	}
	return s, nil
}

func boolValue(raw json.RawMessage) (bool, error) {
	var b bool
	if err := json.Unmarshal(raw, &b); err == nil {
		return b, nil
	}
	s, err := stringValue(raw)
	if err != nil {
		return false, fmt.Errorf("%w: expected boolean value", ErrInvalidAction)
	}
	b, err = strconv.ParseBool(s)
	if err != nil {
		return false, fmt.Errorf("%w: expected boolean value", ErrInvalidAction)
	}
	return b, nil
}

func intValue(raw json.RawMessage) (int, error) {
	var n int
	if err := json.Unmarshal(raw, &n); err == nil {
		return n, nil
	}
	s, err := stringValue(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: expected integer value", ErrInvalidAction)
	}
	n, err = strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%w: expected integer value", ErrInvalidAction)
	}
	return n, nil
}
