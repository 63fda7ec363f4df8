// Copyright 2025 The go-highway Authors. SPDX-License-Identifier: Apache-2.0

//go:build linux

package workerpool

import "golang.org/x/sys/unix"

// pinThread binds the calling OS thread to one CPU. The caller must hold
// runtime.LockOSThread.
func pinThread(cpu int) error {
	var set unix.CPUSet
	set.Zero()
	set.Set(cpu)
	return unix.SchedSetaffinity(0, &set)
}
