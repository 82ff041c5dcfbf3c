// Package stream
// Author: momentics <momentics@gmail.com>
//
// Caller-side policies layered on api.ByteRing. The ring itself never blocks
// and drops whatever does not fit; this package supplies the retry, backlog
// and drain loops a producer or consumer builds around it.
//
// Producer and WriteAll belong to the producer goroutine; ReadFull and Drain
// to the consumer goroutine.
package stream
