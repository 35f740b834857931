// Package subtitles reads SubRip (.srt) files and turns their entries into
// plain dialogue text.
//
// Parsing tolerates CRLF line endings, a UTF-8 byte order mark, and blocks
// without an index line. Open decodes legacy single-byte encodings such as
// ISO-8859-2 before parsing. The cleaning helpers strip dialogue dashes and
// markup tags, and EpisodeLabel derives an S<season>E<episode> tag from a
// file name.
package subtitles
