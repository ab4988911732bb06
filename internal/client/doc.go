// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Obscura Labs

// Package client implements the interactive operator client runtime.
//
// It wires terminal UI flows, client services, and the background decryption
// refresh job into a single process lifecycle.
package client
