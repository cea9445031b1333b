// Package keypath classifies keys and slash-delimited paths used to address
// nodes in a statebox tree.
//
// A key is one of:
//   - Index: a Go integer, an integral float, or a decimal string without a
//     leading zero ("0", "12" but not "01")
//   - Key: any other string without a separator
//   - Path: a string containing "/", split into Index and Key segments
//   - Invalid: anything else
//
// # Usage
//
//	segs, err := keypath.Parse("items/0/name")
//	// [Key "items", Index 0, Key "name"]
//
//	keypath.Classify("01") // Key: leading zeros are significant
//	keypath.Classify(3)    // Index
package keypath
