package workflow

import "github.com/polkiloo/freightdesk/internal/domain/model"

// Entry pairs a status with its display and recommended admin action.
type Entry struct {
	Status      model.LoadStatus
	Display     Display
	AdminAction *AdminAction
}

// Catalog lists every known status in workflow order.
func Catalog() []Entry {
	entries := make([]Entry, 0, len(model.LoadStatuses))
	for _, s := range model.LoadStatuses {
		e := Entry{Status: s, Display: DisplayFor(s)}
		if a, ok := AdminActionFor(s); ok {
			e.AdminAction = &a
		}
		entries = append(entries, e)
	}
	return entries
}
