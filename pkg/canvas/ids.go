package canvas

// FillMissingIDs gives every node and edge with an empty id a fresh one from
// newID, skipping values already in use. It returns the assigned ids in
// document order, nodes first.
func FillMissingIDs(d *Document, newID func() string) []string {
	used := make(map[string]struct{}, len(d.Nodes)+len(d.Edges))
	for _, n := range d.Nodes {
		used[n.ID] = struct{}{}
	}
	for _, e := range d.Edges {
		used[e.ID] = struct{}{}
	}

	next := func() string {
		for {
			id := newID()
			if _, exists := used[id]; !exists && id != "" {
				used[id] = struct{}{}
				return id
			}
		}
	}

	var assigned []string
	for i := range d.Nodes {
		if d.Nodes[i].ID == "" {
			d.Nodes[i].ID = next()
			assigned = append(assigned, d.Nodes[i].ID)
		}
	}
	for i := range d.Edges {
		if d.Edges[i].ID == "" {
			d.Edges[i].ID = next()
			assigned = append(assigned, d.Edges[i].ID)
		}
	}
	return assigned
}
