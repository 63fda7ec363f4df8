// Copyright 2025 The go-highway Authors. SPDX-License-Identifier: Apache-2.0

//go:build !linux

package workerpool

// pinThread is a no-op where thread affinity is not exposed.
func pinThread(int) error { return nil }
