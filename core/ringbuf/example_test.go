package ringbuf_test

import (
	"fmt"

	"github.com/momentics/hioload-ring/core/ringbuf"
)

func ExampleRingBuffer() {
	storage := make([]byte, 16)
	rb, err := ringbuf.New(storage)
	if err != nil {
		panic(err)
	}

	n := rb.Write([]byte("0123456789abcdefXYZ"))
	fmt.Println("written:", n, "full:", rb.Full())

	out := make([]byte, 16)
	n = rb.Read(out)
	fmt.Println("read:", string(out[:n]), "empty:", rb.Empty())
	// Output:
	// written: 15 full: true
	// read: 0123456789abcde empty: true
}
