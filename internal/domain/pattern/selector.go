package pattern

import "sort"

// Dedupe keeps the first pattern seen for each unordered body set.
func Dedupe(ps []Pattern) []Pattern {
	seen := make(map[string]bool, len(ps))
	out := make([]Pattern, 0, len(ps))
	for _, p := range ps {
		k := p.Key()
		if seen[k] {
			continue
		}
		seen[k] = true
		out = append(out, p)
	}
	return out
}

// Select applies the resolution rule for typ to raw detector output.
func Select(typ Type, raw []Pattern, cfg Config) []Pattern {
	switch typ {
	case Yod:
		return SelectYods(raw, cfg)
	case Cradle:
		return SelectCradles(raw, cfg)
	case Stellium:
		return SelectStelliums(raw)
	case ClusteredSquare:
		return SelectClusteredSquares(raw, cfg)
	default:
		return Dedupe(raw)
	}
}

// SelectYods keeps the largest set of mutually disjoint significant yods
// (average orb below YodMaxAvgOrb). Among sets of that size the highest total
// composite score wins; the earliest set wins exact ties. The result is
// ordered by composite score, highest first.
func SelectYods(raw []Pattern, cfg Config) []Pattern {
	var candidates []Pattern
	for _, p := range Dedupe(raw) {
		if p.AvgOrb < cfg.YodMaxAvgOrb {
			candidates = append(candidates, p)
		}
	}
	if len(candidates) == 0 {
		return nil
	}

	var (
		best      []int
		bestScore float64
		current   []int
	)
	var search func(start int, total float64)
	search = func(start int, total float64) {
		if len(current) > 0 && (len(current) > len(best) || (len(current) == len(best) && total > bestScore)) {
			best = append(best[:0], current...)
			bestScore = total
		}
		for i := start; i < len(candidates); i++ {
			if disjointFrom(candidates, current, i) {
				current = append(current, i)
				search(i+1, total+candidates[i].Score)
				current = current[:len(current)-1]
			}
		}
	}
	search(0, 0)

	out := make([]Pattern, len(best))
	for i, idx := range best {
		out[i] = candidates[idx]
	}
	sortByScore(out)
	return out
}

func disjointFrom(ps []Pattern, chosen []int, i int) bool {
	for _, c := range chosen {
		if ps[c].Shared(ps[i]) > 0 {
			return false
		}
	}
	return true
}

// SelectCradles drops the weaker of any two cradles sharing exactly three
// bodies, then keeps the CradleLimit best by composite score whose average
// orb is below CradleMaxAvgOrb.
func SelectCradles(raw []Pattern, cfg Config) []Pattern {
	unique := Dedupe(raw)
	excluded := make([]bool, len(unique))
	for i := range unique {
		if excluded[i] {
			continue
		}
		for j := i + 1; j < len(unique); j++ {
			if excluded[j] || unique[i].Shared(unique[j]) != 3 {
				continue
			}
			if unique[i].Score >= unique[j].Score {
				excluded[j] = true
			} else {
				excluded[i] = true
				break
			}
		}
	}

	var survivors []Pattern
	for i, p := range unique {
		if !excluded[i] {
			survivors = append(survivors, p)
		}
	}
	sortByScore(survivors)

	var out []Pattern
	for _, p := range survivors {
		if len(out) >= cfg.CradleLimit {
			break
		}
		if p.AvgOrb < cfg.CradleMaxAvgOrb {
			out = append(out, p)
		}
	}
	return out
}

// SelectStelliums keeps every stellium of the maximum size.
func SelectStelliums(raw []Pattern) []Pattern {
	unique := Dedupe(raw)
	largest := 0
	for _, p := range unique {
		if len(p.Bodies) > largest {
			largest = len(p.Bodies)
		}
	}
	var out []Pattern
	for _, p := range unique {
		if len(p.Bodies) == largest {
			out = append(out, p)
		}
	}
	return out
}

// SelectClusteredSquares ranks pairings by square count, then combined group
// size, and keeps the first ClusteredSquareLimit distinct ones.
func SelectClusteredSquares(raw []Pattern, cfg Config) []Pattern {
	ranked := append([]Pattern(nil), raw...)
	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].SquareCount != ranked[j].SquareCount {
			return ranked[i].SquareCount > ranked[j].SquareCount
		}
		return len(ranked[i].Bodies) > len(ranked[j].Bodies)
	})
	unique := Dedupe(ranked)
	if cfg.ClusteredSquareLimit < 0 {
		return nil
	}
	if len(unique) > cfg.ClusteredSquareLimit {
		unique = unique[:cfg.ClusteredSquareLimit]
	}
	return unique
}

func sortByScore(ps []Pattern) {
	sort.SliceStable(ps, func(i, j int) bool { return ps[i].Score > ps[j].Score })
}

//Personal.AI order the ending
