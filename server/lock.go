package server

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"syscall"

	"github.com/fwojciec/cmdmend"
)

// Lock is an exclusive pid-stamped lock file enforcing the
// single-instance invariant: at most one session server per machine.
// Exclusion is backed by flock(2) on the open file descriptor, so a
// lock left behind by a dead process is released by the kernel and
// taken over without a racy remove-and-retry.
type Lock struct {
	path string
	f    *os.File
}

// NewLock creates a lock for the given path without acquiring it.
func NewLock(path string) *Lock {
	return &Lock{path: path}
}

// Acquire takes the lock, writing the current pid. Returns ECONFLICT
// when another live process holds it.
func (l *Lock) Acquire() error {
	f, err := os.OpenFile(l.path, os.O_CREATE|os.O_RDWR, 0o644)
	if err != nil {
		return fmt.Errorf("failed to open lock file: %w", err)
	}

	if err := syscall.Flock(int(f.Fd()), syscall.LOCK_EX|syscall.LOCK_NB); err != nil {
		f.Close()
		if pid, perr := l.readPid(); perr == nil {
			return cmdmend.Errorf(cmdmend.ECONFLICT, "server already running (pid %d)", pid)
		}
		return cmdmend.Errorf(cmdmend.ECONFLICT, "server already running")
	}

	if err := f.Truncate(0); err != nil {
		f.Close()
		return fmt.Errorf("failed to truncate lock file: %w", err)
	}
	if _, err := f.WriteAt([]byte(strconv.Itoa(os.Getpid())+"\n"), 0); err != nil {
		f.Close()
		return fmt.Errorf("failed to write lock file: %w", err)
	}

	l.f = f
	return nil
}

// Release drops the lock and removes the lock file if held.
func (l *Lock) Release() error {
	if l.f == nil {
		return nil
	}
	f := l.f
	l.f = nil
	// Remove before closing: the flock is held until close, so no
	// competitor can acquire a lock we are about to delete.
	if err := os.Remove(l.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		f.Close()
		return err
	}
	return f.Close()
}

// Pid returns the pid recorded in the lock file, whether or not this
// process holds it.
func (l *Lock) Pid() (int, error) {
	return l.readPid()
}

func (l *Lock) readPid() (int, error) {
	b, err := os.ReadFile(l.path)
	if err != nil {
		return 0, err
	}
	pid, err := strconv.Atoi(strings.TrimSpace(string(b)))
	if err != nil {
		return 0, fmt.Errorf("malformed lock file %s: %w", l.path, err)
	}
	return pid, nil
}
