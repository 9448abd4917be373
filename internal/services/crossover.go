package services

import (
	"math/rand"
	"slices"
)

// OrderCrossover (OX1) builds a child keeping p2's window [a,b) in place and
// the remaining genes in p1's relative order.
//
// Genes of p1 that occur in the window are holes. Non-holes are copied in
// order; when the hole count reaches the window width a block of width
// placeholders is spliced in, the sequence is rotated so the block sits at
// [a,b), and the block is overwritten with p2's window.
// Genes must be ids in [1, len(p1)] and 0 <= a < b <= len(p1).
func OrderCrossover(p1, p2 []int, a, b int) []int {
	n := len(p1)
	width := b - a

	hole := make([]bool, n+1)
	for _, v := range p2[a:b] {
		hole[v] = true
	}

	child := make([]int, 0, n)
	holes := 0
	blockAt := 0
	for _, v := range p1 {
		if !hole[v] {
			child = append(child, v)
			continue
		}
		holes++
		if holes == width {
			blockAt = len(child)
			for k := 0; k < width; k++ {
				child = append(child, 0)
			}
		}
	}

	switch {
	case blockAt < a:
		rotateRight(child, a-blockAt)
	case blockAt > a:
		rotateLeft(child, blockAt-a)
	}
	copy(child[a:b], p2[a:b])

	return child
}

func rotateLeft(s []int, k int) {
	if len(s) == 0 {
		return
	}
	k %= len(s)
	slices.Reverse(s[:k])
	slices.Reverse(s[k:])
	slices.Reverse(s)
}

func rotateRight(s []int, k int) {
	if len(s) == 0 {
		return
	}
	rotateLeft(s, len(s)-k%len(s))
}

// randomWindow draws a crossover window [a,b) over n genes. Equal draws are
// rejected rather than redrawn, ok reports whether the window is usable.
func randomWindow(rng *rand.Rand, n int) (a, b int, ok bool) {
	a = rng.Intn(n + 1)
	b = rng.Intn(n + 1)
	switch {
	case a == b:
		return 0, 0, false
	case a > b:
		a, b = b, a
	}
	return a, b, true
}

// swapMutation returns a copy of genes with two random positions exchanged.
// Both positions may coincide.
func swapMutation(genes []int, rng *rand.Rand) []int {
	out := slices.Clone(genes)
	i := rng.Intn(len(out))
	j := rng.Intn(len(out))
	out[i], out[j] = out[j], out[i]
	return out
}
