// Package contacts implements the address-book operations on top of the
// macOS Contacts application's scripting interface.
//
// Every operation is one stateless round trip: generate a script, run it,
// decode the output. Read operations return errors; write operations fold
// failures into a MutationResult.
package contacts
