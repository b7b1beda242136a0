// Package state records completed installs.
//
// Every install that writes to a game directory leaves an InstallRecord
// behind: which layout matched, the instruction digest, and the
// instructions that were carried out. Records are persisted as JSON files
// in the installs directory under the modlayout root and are keyed by a
// stable ID derived from the mod name and the target directory, so
// reinstalling the same mod into the same target replaces its record.
//
// Key concepts:
//   - InstallRecord: what one install put where
//   - RecordID: stable identifier derived from mod name and target
//   - RecordStore: interface for persisting and loading records
package state
