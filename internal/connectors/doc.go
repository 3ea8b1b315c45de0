// Package connectors holds the video sources ingestion reads from. Each
// subpackage implements driven.VideoProvider: youtube calls the YouTube
// Data API and jsonfile serves a dump written by an earlier fetch.
package connectors
