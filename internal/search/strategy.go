package search

import (
	"fmt"
	"strings"
)

// Strategy selects the traversal discipline.
type Strategy string

const (
	StrategyBFS           Strategy = "bfs"
	StrategyDFS           Strategy = "dfs"
	StrategyDeterministic Strategy = "deterministic"
)

// Strategies lists the accepted strategy names.
var Strategies = []Strategy{StrategyBFS, StrategyDFS, StrategyDeterministic}

// ParseStrategy resolves a strategy name. An empty name selects BFS.
func ParseStrategy(name string) (Strategy, error) {
	if name == "" {
		return StrategyBFS, nil
	}
	switch s := Strategy(strings.ToLower(name)); s {
	case StrategyBFS, StrategyDFS, StrategyDeterministic:
		return s, nil
	case "dtm":
		return StrategyDeterministic, nil
	}
	return "", fmt.Errorf("unknown strategy %q: must be one of %v", name, Strategies)
}
