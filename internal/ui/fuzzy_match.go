package ui

import "strings"

// FuzzyMatch pairs a SlashCommand with its match score against the current
// input, so callers can render candidates in best-match-first order.
type FuzzyMatch struct {
	Command SlashCommand
	Score   int
}

// FuzzyMatchCommands filters commands (matched against their name and
// aliases) by query and returns them ranked best-match-first. A command
// whose name or an alias starts with query ranks above one that merely
// contains query as a subsequence, matching the way shell completion
// popups usually prioritize prefix hits.
func FuzzyMatchCommands(query string, commands []SlashCommand) []FuzzyMatch {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		matches := make([]FuzzyMatch, len(commands))
		for i, cmd := range commands {
			matches[i] = FuzzyMatch{Command: cmd, Score: 0}
		}
		return matches
	}

	var matches []FuzzyMatch
	for _, cmd := range commands {
		if score, ok := fuzzyScoreCommand(query, cmd); ok {
			matches = append(matches, FuzzyMatch{Command: cmd, Score: score})
		}
	}

	sortFuzzyMatches(matches)
	return matches
}

func fuzzyScoreCommand(query string, cmd SlashCommand) (int, bool) {
	best := -1
	for _, candidate := range append([]string{cmd.Name}, cmd.Aliases...) {
		if score, ok := fuzzyScoreString(query, strings.ToLower(candidate)); ok {
			if best == -1 || score > best {
				best = score
			}
		}
	}
	if best == -1 {
		return 0, false
	}
	return best, true
}

// fuzzyScoreString scores query against candidate: an exact prefix match
// scores highest, a subsequence match (characters of query appear in order,
// not necessarily contiguous) scores lower but still matches.
func fuzzyScoreString(query, candidate string) (int, bool) {
	if strings.HasPrefix(candidate, query) {
		return 1000 - len(candidate), true
	}
	if strings.Contains(candidate, query) {
		return 500 - len(candidate), true
	}

	qi := 0
	for ci := 0; ci < len(candidate) && qi < len(query); ci++ {
		if candidate[ci] == query[qi] {
			qi++
		}
	}
	if qi == len(query) {
		return 100 - len(candidate), true
	}
	return 0, false
}

func sortFuzzyMatches(matches []FuzzyMatch) {
	for i := 1; i < len(matches); i++ {
		for j := i; j > 0 && matches[j].Score > matches[j-1].Score; j-- {
			matches[j], matches[j-1] = matches[j-1], matches[j]
		}
	}
}
