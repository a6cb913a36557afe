package alns

import "github.com/katalvlaran/routekit/rng"

// MoveSelector chooses one element from a non-empty, best-first ordered
// candidate slice. Selectors inject controlled randomness into the greedy
// cache-driven operators.
type MoveSelector[M any] func(moves []M) M

// SelectFirst returns the best (first) candidate.
func SelectFirst[M any](moves []M) M { return moves[0] }

// SelectLast returns the worst (last) candidate.
func SelectLast[M any](moves []M) M { return moves[len(moves)-1] }

// SelectNth returns a selector for the n-th best candidate (1-based),
// clamped to the last one when fewer exist.
func SelectNth[M any](n int) MoveSelector[M] {
	return func(moves []M) M {
		if n > len(moves) {
			return moves[len(moves)-1]
		}
		return moves[n-1]
	}
}

// SelectBlink returns a selector that skips each candidate with the blink
// probability p: the best is chosen with probability 1−p, the second with
// (1−p)·p, and so on; the last candidate absorbs the remainder.
func SelectBlink[M any](blinkProbability float64, rand *rng.RNG) MoveSelector[M] {
	return func(moves []M) M {
		for i, move := range moves {
			if i < len(moves)-1 && rand.Uniform(0, 1) <= blinkProbability {
				continue
			}
			return move
		}
		return moves[len(moves)-1]
	}
}

// SelectRandom returns a selector drawing uniformly from the candidates.
func SelectRandom[M any](rand *rng.RNG) MoveSelector[M] {
	return func(moves []M) M { return moves[rand.IntN(len(moves))] }
}
