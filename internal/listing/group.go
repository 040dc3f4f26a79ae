// Package listing turns a raw sequence of deployments into an ordered,
// grouped, human-readable report. It is pure: no I/O besides the writer
// handed to Render.
package listing

import (
	"sort"

	"shipls/internal/api"
)

// AppGroup is the set of deployments sharing an application name.
// Deployments are ordered newest-first once GroupByApp returns.
type AppGroup struct {
	Name        string
	Deployments []api.Deployment
}

// Newest returns the created timestamp of the group's first deployment,
// which is the newest one after ordering.
func (g AppGroup) Newest() int64 {
	if len(g.Deployments) == 0 {
		return 0
	}
	return g.Deployments[0].Created
}

// GroupByApp partitions deployments by application name and orders the
// result for display. Within a group deployments are sorted by creation
// time, newest first. The group whose name equals localName (the project in
// the current working directory, empty if none) is pinned ahead of all
// others; the rest are ordered by their newest deployment, newest first.
//
// Every input record lands in exactly one group. Both sorts are stable, so
// records with equal timestamps keep their arrival order and the group
// ordering is deterministic.
func GroupByApp(deployments []api.Deployment, localName string) []AppGroup {
	index := make(map[string]int)
	var groups []AppGroup

	for _, d := range deployments {
		i, ok := index[d.Name]
		if !ok {
			i = len(groups)
			index[d.Name] = i
			groups = append(groups, AppGroup{Name: d.Name})
		}
		groups[i].Deployments = append(groups[i].Deployments, d)
	}

	for i := range groups {
		ds := groups[i].Deployments
		sort.SliceStable(ds, func(a, b int) bool {
			return ds[a].Created > ds[b].Created
		})
	}

	sort.SliceStable(groups, func(a, b int) bool {
		if localName != "" && groups[a].Name != groups[b].Name {
			if groups[a].Name == localName {
				return true
			}
			if groups[b].Name == localName {
				return false
			}
		}
		return groups[a].Newest() > groups[b].Newest()
	})

	return groups
}
