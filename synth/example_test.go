package synth_test

import (
	"fmt"

	"github.com/cwbudde/algo-synth/synth"
)

func ExampleOverflowScores_PriorityScore() {
	scores := synth.DefaultOverflowScores()
	held := scores.PriorityScore(2, 0.8, false, false, false)
	released := scores.PriorityScore(2, 0.8, false, true, false)
	fmt.Printf("held %.0f, released %.0f\n", held, released)
	// Output: held 900, released -1100
}
