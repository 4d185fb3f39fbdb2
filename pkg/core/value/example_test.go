package value_test

import (
	"fmt"

	"github.com/matzehuels/graphkit/pkg/core/value"
)

func ExampleEncode() {
	fmt.Println(value.Encode(value.Bool(true)))
	fmt.Println(value.Encode(value.Float64(0.1)))
	fmt.Println(value.Encode(value.VectorInt64{1, 2, 3}))
	// Output:
	// 1
	// 0x1.999999999999ap-04
	// 1, 2, 3
}

func ExampleDecode() {
	v, err := value.Decode("float", "0x1.8p+01")
	if err != nil {
		fmt.Println("Error:", err)
		return
	}
	fmt.Println(v.Kind(), v)

	_, err = value.Decode("float", "three")
	fmt.Println(err != nil)
	// Output:
	// float64 3
	// true
}
