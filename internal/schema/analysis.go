package schema

import (
	"fmt"
	"strings"
)

// Component is a set of tables connected by relationships, ignoring direction.
type Component struct {
	Tables []string
}

// Components groups tables into connected components using undirected BFS.
// Components and their members follow enumeration order.
func (s *Schema) Components() []Component {
	adjacency := make(map[string][]string)
	for _, rel := range s.relationships {
		adjacency[rel.From] = append(adjacency[rel.From], rel.To)
		adjacency[rel.To] = append(adjacency[rel.To], rel.From)
	}

	visited := make(map[string]bool)
	var components []Component

	for _, start := range s.TableIDs() {
		if visited[start] {
			continue
		}
		visited[start] = true
		queue := []string{start}
		var members []string

		for len(queue) > 0 {
			table := queue[0]
			queue = queue[1:]
			members = append(members, table)

			for _, neighbor := range adjacency[table] {
				if !visited[neighbor] {
					visited[neighbor] = true
					queue = append(queue, neighbor)
				}
			}
		}

		components = append(components, Component{Tables: s.SortTables(members)})
	}

	return components
}

// CycleInfo describes tables that Kahn's algorithm could not peel off the
// directed table graph. Traces terminate regardless; cycles only mean a trace
// can come back around to a table it already visited.
type CycleInfo struct {
	TotalTables     int      // Total number of tables in the schema
	ProcessedTables int      // Tables removed by Kahn's algorithm
	CyclicTables    []string // Tables on or downstream of a cycle, enumeration order
	SelfLinked      []string // Tables with a relationship pointing at themselves
}

func (c *CycleInfo) String() string {
	msg := fmt.Sprintf("%d of %d tables are on or behind a relationship cycle: %s",
		len(c.CyclicTables), c.TotalTables, strings.Join(c.CyclicTables, ", "))
	if len(c.SelfLinked) > 0 {
		msg += fmt.Sprintf(" (self-linked: %s)", strings.Join(c.SelfLinked, ", "))
	}
	return msg
}

// calculateInDegrees computes incoming relationship counts per table.
// Parallel relationships between the same pair of tables each count.
func (s *Schema) calculateInDegrees() map[string]int {
	inDegree := make(map[string]int, s.tables.Len())
	for _, id := range s.TableIDs() {
		inDegree[id] = 0
	}
	for _, rel := range s.relationships {
		inDegree[rel.To]++
	}
	return inDegree
}

// DetectCycles runs Kahn's algorithm over the from -> to table graph.
// Returns nil when the schema is acyclic.
func (s *Schema) DetectCycles() *CycleInfo {
	inDegree := s.calculateInDegrees()

	var queue []string
	for _, id := range s.TableIDs() {
		if inDegree[id] == 0 {
			queue = append(queue, id)
		}
	}

	processed := make(map[string]bool)
	for len(queue) > 0 {
		table := queue[0]
		queue = queue[1:]
		processed[table] = true

		for _, rel := range s.Outgoing(table) {
			inDegree[rel.To]--
			if inDegree[rel.To] == 0 {
				queue = append(queue, rel.To)
			}
		}
	}

	if len(processed) == s.tables.Len() {
		return nil
	}

	info := &CycleInfo{
		TotalTables:     s.tables.Len(),
		ProcessedTables: len(processed),
	}
	for _, id := range s.TableIDs() {
		if !processed[id] {
			info.CyclicTables = append(info.CyclicTables, id)
		}
	}
	seenSelf := make(map[string]bool)
	for _, rel := range s.relationships {
		if rel.From == rel.To && !seenSelf[rel.From] {
			seenSelf[rel.From] = true
			info.SelfLinked = append(info.SelfLinked, rel.From)
		}
	}
	return info
}
