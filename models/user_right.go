package models

// Menus a right can be granted on
const (
	MenuDashboard   = "Dashboard"
	MenuUser        = "User"
	MenuPurpose     = "Purpose"
	MenuContact     = "Contact"
	MenuDistributor = "Distributor"
	MenuVisit       = "Visit"
	MenuOrder       = "Order"
)

// Actions a right can allow
const (
	ActionCreate = "create"
	ActionView   = "view"
	ActionUpdate = "update"
	ActionDelete = "delete"
	ActionPrint  = "print"
)

// Menus lists every menu in display order
var Menus = []string{MenuDashboard, MenuUser, MenuPurpose, MenuContact, MenuDistributor, MenuVisit, MenuOrder}

// Actions lists every action in display order
var Actions = []string{ActionCreate, ActionView, ActionUpdate, ActionDelete, ActionPrint}

// UserRight represents the rights of a role on one menu
type UserRight struct {
	Role   string `json:"role"`
	Menu   string `json:"menu"`
	Create bool   `json:"create"`
	View   bool   `json:"view"`
	Update bool   `json:"update"`
	Delete bool   `json:"delete"`
	Print  bool   `json:"print"`
}

// Allowed returns the actions this right grants
func (r UserRight) Allowed() []string {
	flags := []bool{r.Create, r.View, r.Update, r.Delete, r.Print}
	var actions []string
	for i, ok := range flags {
		if ok {
			actions = append(actions, Actions[i])
		}
	}
	return actions
}

// Grant sets the flag for action; unknown actions are ignored
func (r *UserRight) Grant(action string) {
	switch action {
	case ActionCreate:
		r.Create = true
	case ActionView:
		r.View = true
	case ActionUpdate:
		r.Update = true
	case ActionDelete:
		r.Delete = true
	case ActionPrint:
		r.Print = true
	}
}

// RoleRightsResponse represents the rights of one role
type RoleRightsResponse struct {
	Role   string      `json:"role"`
	Rights []UserRight `json:"rights"`
}
