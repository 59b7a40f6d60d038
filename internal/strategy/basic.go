package strategy

// Basic returns the built-in strategy for six decks, dealer hits soft 17,
// late surrender allowed, with a count-driven spread of 1 to 32 units.
func Basic() *Strategy {
	s, err := New("basic-h17", basicTables(), basicBetting())
	if err != nil {
		panic(err)
	}
	return s
}

func basicBetting() BettingPolicy {
	b, err := NewBettingPolicy(
		[]float64{1, 1, 1, 1, 1, 1, 8, 16, 32},
		[]float64{-3, -2, -1, 0, 0, 1, 2, 3},
	)
	if err != nil {
		panic(err)
	}
	return b
}

func basicTables() Tables {
	allDealers := span(2, 11)

	hard := builder{}
	hard.set(span(4, 8), allDealers, Hit)
	hard.set([]int{9}, append([]int{2}, span(7, 11)...), Hit)
	hard.set([]int{10}, span(10, 11), Hit)
	hard.set(span(12, 16), span(7, 11), Hit)
	hard.set([]int{12}, []int{2, 3}, Hit)
	hard.set([]int{9}, span(3, 6), DoubleHit)
	hard.set([]int{10}, span(2, 9), DoubleHit)
	hard.set([]int{11}, allDealers, DoubleHit)
	hard.set(span(15, 16), span(10, 11), SurrenderHit)
	hard.set([]int{16}, []int{9}, SurrenderHit)
	hard.set([]int{17}, []int{11}, SurrenderStand)

	soft := builder{}
	soft.set(span(13, 17), allDealers, Hit)
	soft.set([]int{18}, span(9, 11), Hit)
	soft.set(span(13, 17), span(5, 6), DoubleHit)
	soft.set(span(15, 17), []int{4}, DoubleHit)
	soft.set([]int{17}, []int{3}, DoubleHit)
	soft.set([]int{18}, span(2, 6), DoubleStand)
	soft.set([]int{19}, []int{6}, DoubleStand)

	split := builder{}
	split.set(span(2, 11), allDealers, Split)
	// Fives play as a hard ten and tens never split.
	split[5] = hard.row(10)
	split[10] = hard.row(20)
	split.set([]int{2, 3, 4, 6, 7}, span(8, 11), Hit)
	split.set([]int{4}, span(2, 4), Hit)
	split.set([]int{4, 6}, []int{7}, Hit)
	split.set([]int{4}, span(5, 6), SplitIfDouble)
	split.set(span(2, 3), span(2, 3), SplitIfDouble)
	split.set([]int{6}, []int{2}, SplitIfDouble)
	split.set([]int{9}, []int{7, 10, 11}, Stand)
	split.set([]int{8}, []int{11}, SurrenderSplit)

	return Tables{Hard: hard, Soft: soft, Split: split}
}
