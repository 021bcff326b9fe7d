// Package formatter defines how events are serialized into text.
//
// The default format is one line per event:
//
//	<ISO-8601 UTC, millisecond precision> [<LEVEL>] [<tag>] <message> :: <param> :: <param>
//
// Every param is JSON-encoded (without HTML escaping) and cut to 250 runes
// with a trailing "..." when longer. Values JSON cannot encode fall back to a
// plain string so formatting never fails. Stringify and StringifyBase use a
// shared process-wide Config that can be replaced with SetShared and
// restored with ResetShared.
//
// TextFormatter and JSONFormatter implement Formatter, WriterFormatter and
// BufferFormatter. They use a pooled bytes.Buffer internally; buffers
// larger than 64 KiB are not returned to the pool so a single huge line
// does not permanently inflate memory usage.
package formatter
