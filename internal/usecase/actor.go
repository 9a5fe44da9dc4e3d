package usecase

import (
	"github.com/polkiloo/freightdesk/internal/domain/model"
)

// Actor is the authenticated caller of an operation.
type Actor struct {
	UserID int64
	Role   model.Role
}

// canView reports whether the actor may read the load. Shippers only see their own loads.
func (a Actor) canView(l *model.Load) bool {
	switch a.Role {
	case model.RoleAdmin, model.RoleCarrier:
		return true
	case model.RoleShipper:
		return l.ShipperID == a.UserID
	default:
		return false
	}
}

