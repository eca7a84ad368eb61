//go:build unix || linux || darwin || freebsd || openbsd || netbsd

package arena

import "golang.org/x/sys/unix"

// newPool reserves size bytes via an anonymous, private memory mapping: a
// single large mapping that never moves and is returned to the OS in one
// call on close.
func newPool(size int) ([]byte, func() error, error) {
	data, err := unix.Mmap(-1, 0, size, unix.PROT_READ|unix.PROT_WRITE, unix.MAP_ANON|unix.MAP_PRIVATE)
	if err != nil {
		return nil, nil, err
	}
	closer := func() error {
		return unix.Munmap(data)
	}
	return data, closer, nil
}
