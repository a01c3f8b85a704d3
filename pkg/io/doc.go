// Package io provides JSON import and export for L-system definitions.
//
// # JSON Format
//
// A system is an object with an axiom, an ordered rule list, and a
// generation count:
//
//	{
//	  "axiom": "A",
//	  "rules": [
//	    {"match": "A", "replacement": "-BF+AFA+FB-"},
//	    {"match": "B", "replacement": "+AF-BFB-FA+"}
//	  ],
//	  "generations": 5
//	}
//
// Each match must be exactly one symbol. Rule order is preserved: when two
// rules share a match symbol, the first one wins. A missing generations
// field means zero.
//
// # Usage
//
//	sys, err := io.ImportJSON("hilbert.json")
//	if err != nil {
//	    return err
//	}
//	program := sys.Generate()
package io
