// Package domain provides the value types of the hotel back office.
//
// This package contains type definitions and key normalization only. All
// other internal packages import domain; domain imports nothing internal.
//
// Key design constraints:
//   - Entities never hold pointers to other entities; relations are keys
//   - Names are matched by Key, never by raw string comparison
//   - Room ids and levels are plain ints; no float types anywhere
package domain
