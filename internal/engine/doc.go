// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Obscura Labs

// Package engine defines the ciphertext-engine boundary the payroll core
// computes against: encrypted 64-bit integers referenced by opaque handles,
// a fixed set of branchless primitives (add, sub, min, max, comparisons,
// select, shift), explicit per-handle access grants, and one governed
// decryption path.
//
// Every primitive yields a NEW handle with an empty access list. Nothing in
// this package or its consumers branches on an encrypted value; encrypted
// booleans exist only to be combined algebraically and fed into Select.
//
// The in-process MemEngine is the reference implementation: it enforces the
// same access rules a remote threshold-decryption network would, backs
// handles with cleartext for test oracles, and records an operation-type
// trace so property tests can assert data-independent execution.
package engine
