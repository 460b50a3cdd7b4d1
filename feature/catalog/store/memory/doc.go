// Package memory implements the catalog store on process-local maps.
//
// Data lives only as long as the Store value. Books hold author and genre ids
// and are joined on read, mirroring how the SQL backends behave.
package memory
