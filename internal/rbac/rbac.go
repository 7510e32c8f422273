// Package rbac derives what a user may do from their position.
package rbac

type Position string
type Action string

const (
	PositionAdmin    Position = "admin"
	PositionManager  Position = "manager"
	PositionEngineer Position = "engineer"
	PositionStaff    Position = "staff"
)

const (
	ActionRead           Action = "read"
	ActionEditTables     Action = "edit_tables"
	ActionManageProjects Action = "manage_projects"
	ActionManageUsers    Action = "manage_users"
)

var allActions = []Action{ActionRead, ActionEditTables, ActionManageProjects, ActionManageUsers}

func Can(position Position, action Action) bool {
	switch position {
	case PositionAdmin:
		return true
	case PositionManager:
		return action == ActionRead || action == ActionEditTables || action == ActionManageProjects
	case PositionEngineer:
		return action == ActionRead || action == ActionEditTables
	case PositionStaff:
		return action == ActionRead
	default:
		return false
	}
}

// Normalize maps unknown or empty positions to staff.
func Normalize(position string) Position {
	switch Position(position) {
	case PositionAdmin, PositionManager, PositionEngineer, PositionStaff:
		return Position(position)
	default:
		return PositionStaff
	}
}

// Permissions lists the actions allowed for position, in a stable order.
func Permissions(position Position) []Action {
	out := make([]Action, 0, len(allActions))
	for _, action := range allActions {
		if Can(position, action) {
			out = append(out, action)
		}
	}
	return out
}
