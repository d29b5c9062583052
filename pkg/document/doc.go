// Package document reads and writes the projdump output format.
//
// Each dumped file becomes one section:
//
//	## relative/path
//
//	```
//	file content, trailing newlines removed
//	```
//
// [WriteSection] produces a section, [Sections] lists the sections of an
// existing document and [WriteDiff] reports how two renderings differ.
package document
