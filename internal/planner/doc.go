// Package planner turns recognized archive files into install instructions.
//
// The planner produces deterministic, ordered instruction lists for the
// external install executor. It never touches the filesystem: a Plan only
// says which archive file goes where and which directories must exist.
//
// Key responsibilities:
//   - Identity copies (source and destination are the same relative path)
//   - Relocated copies for layouts that re-root files under a mod directory
//   - Directory-creation instructions for layouts that need an empty folder
//   - Destination collision detection before a Plan leaves the planner
package planner
