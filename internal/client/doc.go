// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package client implements the field-sync client process runtime.
//
// It ties the background workers (connectivity probe, periodic sync and
// history retention) to the local control API and to a single process
// lifecycle.
package client
