package domain

type Group struct {
	ID   string
	Name string
}

// GroupNames extracts the names of groups in order.
func GroupNames(groups []Group) []string {
	names := make([]string, len(groups))
	for i, g := range groups {
		names[i] = g.Name
	}
	return names
}
