package models

// Group is a shared ledger: its members, the expenses logged between them
// and the history of changes made to it.
type Group struct {
	// ID is the unique identifier for the group (UUID format).
	ID string `json:"id"`

	// Name is the display name of the group (e.g., "Goa Trip", "Flat 4B").
	// Unique across groups, compared case-insensitively.
	Name string `json:"name"`

	// Description is an optional free-text note.
	Description string `json:"description"`

	// Members lists every member ever added, in insertion order.
	// Inactive members are kept for expense history.
	Members []Member `json:"members"`

	// Expenses lists every expense logged in the group.
	Expenses []Expense `json:"expenses"`

	// History is the append-only audit log, oldest first.
	History []HistoryEvent `json:"history"`

	// CreatedAt is the Unix timestamp when the group was created.
	CreatedAt int64 `json:"createdAt"`
}

// Member represents one person inside a group.
type Member struct {
	// ID is the unique identifier for the member (UUID format).
	ID string `json:"id"`

	// Name is the display name of the member.
	Name string `json:"name"`

	// IsActive reports whether the member can take part in new expenses and
	// balance computations. Members referenced by an expense are deactivated
	// instead of deleted.
	IsActive bool `json:"isActive"`
}

// HistoryEvent is one line of a group's audit log.
type HistoryEvent struct {
	ID        string `json:"id"`
	Timestamp int64  `json:"timestamp"`
	Message   string `json:"message"`
}

// FindMember returns the member with the given ID, or nil.
func (g *Group) FindMember(memberID string) *Member {
	for i := range g.Members {
		if g.Members[i].ID == memberID {
			return &g.Members[i]
		}
	}
	return nil
}

// FindExpense returns the expense with the given ID, or nil.
func (g *Group) FindExpense(expenseID string) *Expense {
	for i := range g.Expenses {
		if g.Expenses[i].ID == expenseID {
			return &g.Expenses[i]
		}
	}
	return nil
}

// IsActiveMember reports whether memberID refers to an active member.
func (g *Group) IsActiveMember(memberID string) bool {
	m := g.FindMember(memberID)
	return m != nil && m.IsActive
}

// ActiveMembers returns the active members in insertion order.
func (g *Group) ActiveMembers() []Member {
	active := make([]Member, 0, len(g.Members))
	for _, m := range g.Members {
		if m.IsActive {
			active = append(active, m)
		}
	}
	return active
}

// IsReferenced reports whether any expense names memberID as payer or
// participant.
func (g *Group) IsReferenced(memberID string) bool {
	for _, e := range g.Expenses {
		if e.PaidBy == memberID {
			return true
		}
		for _, p := range e.Participants {
			if p == memberID {
				return true
			}
		}
	}
	return false
}
