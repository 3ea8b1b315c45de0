// Package jsonfile reads and writes video dumps: a pretty-printed JSON
// array of domain.Video, as produced by `tssearch fetch --out-json`.
//
// Provider serves a dump through driven.VideoProvider so a dump can be
// indexed with the same pipeline as live provider data. Watch reports
// changes to a dump file.
package jsonfile
