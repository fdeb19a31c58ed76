// Package endian provides byte order utilities for binary encoding and decoding.
//
// This package extends Go's standard encoding/binary package by combining
// ByteOrder and AppendByteOrder interfaces into a unified EndianEngine interface.
// This enables cleaner API design and improved performance for binary data operations.
//
// # Basic Usage
//
// The wire format this decoder reads is little-endian only (spec §4.9), so
// package wire constructs its Reader with GetLittleEndianEngine():
//
//	engine := endian.GetLittleEndianEngine()
//	reader := wire.NewReader(data) // internally uses GetLittleEndianEngine()
//
// # Thread Safety
//
// All functions and methods in this package are safe for concurrent use.
// The returned EndianEngine instances are immutable and stateless.
package endian

import "encoding/binary"

// EndianEngine combines ByteOrder and AppendByteOrder interfaces from encoding/binary
// into a single interface for convenient byte order operations.
//
// This interface is satisfied by binary.LittleEndian and binary.BigEndian from
// the standard library, making it fully compatible with existing Go code while
// providing access to both read/write and append operations.
type EndianEngine interface {
	binary.ByteOrder
	binary.AppendByteOrder
}

// GetLittleEndianEngine returns the little-endian engine, the only byte
// order the wire format this module decodes ever uses (spec §4.9).
func GetLittleEndianEngine() EndianEngine {
	return binary.LittleEndian
}
