// Package audio finds generated clips on disk and plays them back in order
// through oto/v3, so a batch can be reviewed before it ships.
package audio
