// Package pagination согласует отображаемое число страниц с последним
// успешным ответом бэкенда.
//
// Счётчик поколений запросов гарантирует, что применяется только ответ на
// последний отправленный запрос, независимо от порядка прихода ответов.
package pagination

import "sync"

// Ticket выдаётся при отправке запроса и предъявляется при получении ответа
type Ticket struct {
	Generation uint64
	Limit      int
}

type Reconciler struct {
	mu         sync.Mutex
	pageIndex  int
	pageCount  int
	suppressed bool
	generation uint64
}

// NewReconciler создаёт согласователь в холодном состоянии
func NewReconciler() *Reconciler {
	return &Reconciler{pageCount: 1}
}

// PageCount число страниц для total записей при размере страницы limit, не меньше 1
func PageCount(total, limit int) int {
	if limit <= 0 || total <= 0 {
		return 1
	}
	return (total + limit - 1) / limit
}

// FilterChanged вызывается при изменении любого фильтра, кроме номера страницы
func (r *Reconciler) FilterChanged() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.pageIndex = 0
	if !r.suppressed {
		r.pageCount = 1
	}
}

// Interact отмечает первое взаимодействие пользователя с формой.
// После этого число страниц больше не сбрасывается в 1 до прихода ответа.
func (r *Reconciler) Interact() {
	r.mu.Lock()
	r.suppressed = true
	r.mu.Unlock()
}

// SetPage ограничивает номер страницы текущим числом страниц
func (r *Reconciler) SetPage(page int) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	if page >= r.pageCount {
		page = r.pageCount - 1
	}
	if page < 0 {
		page = 0
	}
	r.pageIndex = page
	return page
}

// Begin регистрирует новый запрос; все ранее выданные билеты становятся устаревшими
func (r *Reconciler) Begin(limit int) Ticket {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.generation++
	return Ticket{Generation: r.generation, Limit: limit}
}

// Resolve применяет ответ, если он относится к последнему запросу.
// Возвращает false для устаревшего ответа, который нужно отбросить.
func (r *Reconciler) Resolve(t Ticket, totalCount int) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if t.Generation != r.generation {
		return false
	}
	r.pageCount = PageCount(totalCount, t.Limit)
	return true
}

// IsCurrent проверяет, что билет принадлежит последнему запросу
func (r *Reconciler) IsCurrent(t Ticket) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return t.Generation == r.generation
}

func (r *Reconciler) PageIndex() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.pageIndex
}

func (r *Reconciler) PageCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.pageCount
}

func (r *Reconciler) Suppressed() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.suppressed
}
