package amp_test

import (
	"fmt"

	"github.com/cwbudde/algo-synth/dsp/effects/amp"
)

func ExampleGuitarAmpSimulator_SetDrive() {
	a, err := amp.New(44100, amp.WithCurveResolution(4096))
	if err != nil {
		panic(err)
	}
	a.SetDrive(2000)
	fmt.Println(a.Drive())
	// Output:
	// 1500
}
