// Package extract turns a set of SubRip files into one delimited subtitle
// table, labelling every row with the episode parsed from its file name.
package extract
