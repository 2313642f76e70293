package utils_test

import (
	"fmt"

	"fixture-generator/utils"
)

func ExampleStem() {
	st := utils.NewStem("arg", nil)
	fmt.Println(st.Next(), st.Next(), st.Next())

	st = utils.NewStem("val", map[string]struct{}{"val2": {}})
	fmt.Println(st.Next(), st.Next(), st.Next())

	// Output:
	// arg1 arg2 arg3
	// val1 val3 val4
}

func ExampleUnpack2() {
	a, b := utils.Unpack2([]string{"store", "NewOrder"})
	fmt.Printf("%q %q\n", a, b)

	a, b = utils.Unpack2([]string{"main"})
	fmt.Printf("%q %q\n", a, b)

	// Output:
	// "store" "NewOrder"
	// "main" ""
}

func ExampleIsInRange() {
	fmt.Println(utils.IsInRange(33, 'a', 126))
	fmt.Println(utils.IsInRange(-128, 127, 126))

	// Output:
	// true
	// false
}
