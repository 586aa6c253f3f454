// Package dispatch turns raw command lines into applied hotel mutations.
//
// A line flows through four steps, and the first failure stops it:
//
//	keyword lookup -> grammar.Parse -> validate.Validate -> apply
//
// Lookup and parse failures are *grammar.ParseError values; rule failures are
// *validate.Error values. Neither touches a store. After a mutating command
// applies, the Persister receives the hotel and the kinds of store that
// changed. A failed Save is returned as *PersistError and is the only
// condition a caller should treat as fatal.
package dispatch
