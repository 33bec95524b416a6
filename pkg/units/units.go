// Package units names byte sizes used for message and buffer limits.
package units

const (
	Kilobyte = 1000
	Kb       = Kilobyte
	Megabyte = Kilobyte * Kilobyte
	Mb       = Megabyte
	Gigabyte = Megabyte * Kilobyte
	Gb       = Gigabyte

	Kibibyte = 1 << 10
	KiB      = Kibibyte
	Mebibyte = Kibibyte << 10
	MiB      = Mebibyte
)
