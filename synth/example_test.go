package synth_test

import (
	"errors"
	"fmt"

	"fixture-generator/store"
	"fixture-generator/strategy"
	"fixture-generator/synth"

	"github.com/google/uuid"
)

func ExampleMake() {
	s := synth.New(synth.DefaultConfig())

	synth.Register(s, strategy.Func[string](func() (string, error) { return "Widget", nil }))
	synth.Register(s, strategy.Func[int16](func() (int16, error) { return 3, nil }))
	synth.Register(s, strategy.Func[int64](func() (int64, error) { return 1999, nil }))
	synth.Register(s, strategy.Func[uuid.UUID](func() (uuid.UUID, error) {
		return uuid.MustParse("0f8fad5b-d9cb-469f-a165-70867728950e"), nil
	}))

	item, err := synth.Make[store.OrderItem](s)
	if err != nil {
		fmt.Println(err)
		return
	}

	fmt.Println(item.ProductID, item.Name, item.Quantity, item.UnitPrice)

	// Output:
	// 0f8fad5b-d9cb-469f-a165-70867728950e Widget 3 1999
}

func ExampleMake_unsupported() {
	s := synth.New(synth.DefaultConfig())

	_, err := synth.Make[chan int](s)
	fmt.Println(err)
	fmt.Println(errors.Is(err, synth.ErrUnsupportedType))

	// Output:
	// synth: unsupported type "chan int" at chan int
	// true
}
