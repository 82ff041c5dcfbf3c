// Package pool
// Author: momentics <momentics@gmail.com>
//
// Storage provisioning for byte rings. A ring never allocates: callers take a
// power-of-two Region from here (an off-heap mapping on Linux, a heap slice
// elsewhere), bind a ring to it and release the Region once the ring is no
// longer used.
package pool
