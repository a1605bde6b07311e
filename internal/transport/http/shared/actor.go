package shared

import (
	"ptotracker/internal/domain/auth"
	"ptotracker/internal/domain/pto"
)

// ActorFrom converts the authenticated manager into the ledger's actor.
func ActorFrom(manager auth.ManagerContext) pto.Actor {
	return pto.Actor{ManagerID: manager.ManagerID, Role: manager.Role}
}
