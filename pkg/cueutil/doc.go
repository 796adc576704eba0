// SPDX-License-Identifier: MPL-2.0

// Package cueutil provides shared CUE parsing utilities.
//
// The package consolidates the parsing pattern used by the config layer:
//
//  1. Compile the embedded schema
//  2. Compile user data and unify with schema
//  3. Validate and decode
//
// Errors carry the CUE path to the offending field in JSON-path notation so
// users can locate the problem in their file.
package cueutil
