package h5ad

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"
)

// Variable-length string datasets store one heap reference per element:
// a 4-byte length, a collection address and a 4-byte object index. The
// strings themselves live in global heap collections ("GCOL"), which the
// hdf5 package only resolves for attributes.

const classVarLen = 9

var signature = []byte("\x89HDF\r\n\x1a\n")

// heapReader resolves global heap references against the raw file.
type heapReader struct {
	f          *os.File
	lengthSize int
	cols       map[uint64]map[uint32][]byte
}

func openHeapReader(path string) (*heapReader, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	n, err := superblockLengthSize(f)
	if err != nil {
		f.Close()
		return nil, err
	}
	return &heapReader{f: f, lengthSize: n, cols: map[uint64]map[uint32][]byte{}}, nil
}

func (r *heapReader) Close() error { return r.f.Close() }

// superblockLengthSize locates the superblock (offset 0, 512, 1024, ...)
// and returns its "size of lengths" field.
func superblockLengthSize(f io.ReaderAt) (int, error) {
	var buf [16]byte
	for off := int64(0); ; off = max(512, off*2) {
		if _, err := f.ReadAt(buf[:], off); err != nil {
			return 0, fmt.Errorf("superblock not found: %w", err)
		}
		if !bytes.Equal(buf[:8], signature) {
			continue
		}
		var n byte
		switch buf[8] {
		case 0, 1:
			n = buf[14]
		case 2, 3:
			n = buf[10]
		default:
			return 0, fmt.Errorf("superblock version %d", buf[8])
		}
		if n != 2 && n != 4 && n != 8 {
			return 0, fmt.Errorf("size of lengths %d", n)
		}
		return int(n), nil
	}
}

// strings decodes raw variable-length references of refSize bytes each.
func (r *heapReader) strings(raw []byte, refSize int) ([]string, error) {
	offsetSize := refSize - 8
	if offsetSize != 2 && offsetSize != 4 && offsetSize != 8 {
		return nil, fmt.Errorf("reference size %d", refSize)
	}
	if len(raw)%refSize != 0 {
		return nil, fmt.Errorf("%d bytes is not a whole number of %d-byte references", len(raw), refSize)
	}
	out := make([]string, len(raw)/refSize)
	for i := range out {
		ref := raw[i*refSize : (i+1)*refSize]
		n := binary.LittleEndian.Uint32(ref)
		addr := leUint(ref[4 : 4+offsetSize])
		idx := binary.LittleEndian.Uint32(ref[4+offsetSize:])
		if addr == 0 || addr == undefined(offsetSize) || n == 0 {
			continue
		}
		col, err := r.collection(addr)
		if err != nil {
			return nil, err
		}
		obj, ok := col[idx]
		if !ok {
			return nil, fmt.Errorf("heap object %d missing from collection at %#x", idx, addr)
		}
		if int(n) < len(obj) {
			obj = obj[:n]
		}
		out[i] = string(bytes.TrimRight(obj, "\x00"))
	}
	return out, nil
}

func (r *heapReader) collection(addr uint64) (map[uint32][]byte, error) {
	if col, ok := r.cols[addr]; ok {
		return col, nil
	}
	head := make([]byte, 8+r.lengthSize)
	if _, err := r.f.ReadAt(head, int64(addr)); err != nil {
		return nil, fmt.Errorf("heap collection at %#x: %w", addr, err)
	}
	if string(head[:4]) != "GCOL" || head[4] != 1 {
		return nil, fmt.Errorf("no version 1 heap collection at %#x", addr)
	}
	size := leUint(head[8:])
	if size < uint64(len(head)) || size > 1<<32 {
		return nil, fmt.Errorf("heap collection at %#x: size %d", addr, size)
	}
	buf := make([]byte, size)
	if _, err := r.f.ReadAt(buf, int64(addr)); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("heap collection at %#x: %w", addr, err)
	}

	col := map[uint32][]byte{}
	objHead := 8 + r.lengthSize
	for pos := len(head); pos+objHead <= len(buf); {
		idx := binary.LittleEndian.Uint16(buf[pos:])
		if idx == 0 {
			break
		}
		n := leUint(buf[pos+8 : pos+objHead])
		start := uint64(pos + objHead)
		if start+n > uint64(len(buf)) {
			return nil, fmt.Errorf("heap object %d overruns collection at %#x", idx, addr)
		}
		col[uint32(idx)] = buf[start : start+n]
		pos = int(start + (n+7)&^7)
	}
	r.cols[addr] = col
	return col, nil
}

// leUint reads a little-endian unsigned integer of 2, 4 or 8 bytes.
func leUint(b []byte) uint64 {
	switch len(b) {
	case 2:
		return uint64(binary.LittleEndian.Uint16(b))
	case 4:
		return uint64(binary.LittleEndian.Uint32(b))
	default:
		return binary.LittleEndian.Uint64(b)
	}
}

func undefined(size int) uint64 {
	return 1<<(8*size) - 1
}
