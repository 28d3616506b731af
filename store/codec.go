package store

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
	"time"

	"github.com/plaindb/plaindb/core"
)

// Snapshot wire format, before compression:
//
//	magic "PDB1", version byte
//	uvarint table count, tables in creation order:
//	  string name, string primary key ("" when none)
//	  uvarint column count: string name, type byte
//	  uvarint row count: per row, per declared column, one tagged value
//
// Strings are uvarint length + bytes. Ints and dates are zigzag varints,
// floats are 8 fixed little-endian bytes of the IEEE 754 bits, so every
// supported value round-trips exactly.

var snapshotMagic = []byte("PDB1")

const snapshotVersion = 1

const (
	tagNull byte = iota
	tagInt
	tagFloat
	tagBool
	tagDate
	tagString
)

var ErrCorruptStorage = errors.New("corrupt storage")

func Encode(db *core.Database) ([]byte, error) {
	buf := &bytes.Buffer{}
	buf.Write(snapshotMagic)
	buf.WriteByte(snapshotVersion)

	writeUvarint(buf, uint64(len(db.Order)))
	for _, name := range db.Order {
		table := db.Tables[name]

		writeString(buf, table.Name)
		writeString(buf, table.PrimaryKey)

		writeUvarint(buf, uint64(len(table.Columns)))
		for _, column := range table.Columns {
			writeString(buf, column.Name)
			buf.WriteByte(byte(column.Type))
		}

		writeUvarint(buf, uint64(len(table.Rows)))
		for _, row := range table.Rows {
			for _, column := range table.Columns {
				if err := writeValue(buf, row[column.Name]); err != nil {
					return nil, fmt.Errorf("table %q, column %q: %w", table.Name, column.Name, err)
				}
			}
		}
	}

	return buf.Bytes(), nil
}

func Decode(data []byte) (*core.Database, error) {
	r := bytes.NewReader(data)

	magic := make([]byte, len(snapshotMagic))
	if _, err := io.ReadFull(r, magic); err != nil || !bytes.Equal(magic, snapshotMagic) {
		return nil, fmt.Errorf("%w: bad magic", ErrCorruptStorage)
	}
	version, err := r.ReadByte()
	if err != nil {
		return nil, fmt.Errorf("%w: missing version", ErrCorruptStorage)
	}
	if version != snapshotVersion {
		return nil, fmt.Errorf("%w: unsupported snapshot version %d", ErrCorruptStorage, version)
	}

	db := core.NewDatabase()

	tableCount, err := readUvarint(r)
	if err != nil {
		return nil, err
	}
	for range tableCount {
		name, err := readString(r)
		if err != nil {
			return nil, err
		}
		primaryKey, err := readString(r)
		if err != nil {
			return nil, err
		}

		columnCount, err := readUvarint(r)
		if err != nil {
			return nil, err
		}
		columns := make([]core.Column, 0, columnCount)
		for range columnCount {
			columnName, err := readString(r)
			if err != nil {
				return nil, err
			}
			typeByte, err := r.ReadByte()
			if err != nil || typeByte > byte(core.StringType) {
				return nil, fmt.Errorf("%w: bad column type for %q", ErrCorruptStorage, columnName)
			}
			columns = append(columns, core.Column{Name: columnName, Type: core.ColumnType(typeByte)})
		}

		table, err := db.CreateTable(name, columns, primaryKey)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrCorruptStorage, err)
		}

		rowCount, err := readUvarint(r)
		if err != nil {
			return nil, err
		}
		for range rowCount {
			row := make(core.Row, len(columns))
			for _, column := range columns {
				value, err := readValue(r)
				if err != nil {
					return nil, err
				}
				row[column.Name] = value
			}
			table.Rows = append(table.Rows, row)
		}
		table.Reindex()
	}

	if r.Len() != 0 {
		return nil, fmt.Errorf("%w: %d trailing bytes", ErrCorruptStorage, r.Len())
	}

	return db, nil
}

func writeValue(buf *bytes.Buffer, v any) error {
	switch x := v.(type) {
	case nil:
		buf.WriteByte(tagNull)
	case int64:
		buf.WriteByte(tagInt)
		writeVarint(buf, x)
	case float64:
		buf.WriteByte(tagFloat)
		var bits [8]byte
		binary.LittleEndian.PutUint64(bits[:], math.Float64bits(x))
		buf.Write(bits[:])
	case bool:
		buf.WriteByte(tagBool)
		if x {
			buf.WriteByte(1)
		} else {
			buf.WriteByte(0)
		}
	case time.Time:
		buf.WriteByte(tagDate)
		writeVarint(buf, x.Unix())
	case string:
		buf.WriteByte(tagString)
		writeString(buf, x)
	default:
		return fmt.Errorf("unencodable value of type %T", v)
	}
	return nil
}

func readValue(r *bytes.Reader) (any, error) {
	tag, err := r.ReadByte()
	if err != nil {
		return nil, fmt.Errorf("%w: missing value tag", ErrCorruptStorage)
	}

	switch tag {
	case tagNull:
		return nil, nil
	case tagInt:
		return readVarint(r)
	case tagFloat:
		bits := make([]byte, 8)
		if _, err := io.ReadFull(r, bits); err != nil {
			return nil, fmt.Errorf("%w: truncated float", ErrCorruptStorage)
		}
		return math.Float64frombits(binary.LittleEndian.Uint64(bits)), nil
	case tagBool:
		b, err := r.ReadByte()
		if err != nil {
			return nil, fmt.Errorf("%w: truncated bool", ErrCorruptStorage)
		}
		return b == 1, nil
	case tagDate:
		sec, err := readVarint(r)
		if err != nil {
			return nil, err
		}
		return time.Unix(sec, 0).UTC(), nil
	case tagString:
		return readString(r)
	default:
		return nil, fmt.Errorf("%w: unknown value tag %d", ErrCorruptStorage, tag)
	}
}

func writeUvarint(buf *bytes.Buffer, n uint64) {
	var tmp [binary.MaxVarintLen64]byte
	buf.Write(tmp[:binary.PutUvarint(tmp[:], n)])
}

func writeVarint(buf *bytes.Buffer, n int64) {
	var tmp [binary.MaxVarintLen64]byte
	buf.Write(tmp[:binary.PutVarint(tmp[:], n)])
}

func writeString(buf *bytes.Buffer, s string) {
	writeUvarint(buf, uint64(len(s)))
	buf.WriteString(s)
}

func readUvarint(r *bytes.Reader) (uint64, error) {
	n, err := binary.ReadUvarint(r)
	if err != nil {
		return 0, fmt.Errorf("%w: truncated varint", ErrCorruptStorage)
	}
	return n, nil
}

func readVarint(r *bytes.Reader) (int64, error) {
	n, err := binary.ReadVarint(r)
	if err != nil {
		return 0, fmt.Errorf("%w: truncated varint", ErrCorruptStorage)
	}
	return n, nil
}

func readString(r *bytes.Reader) (string, error) {
	length, err := readUvarint(r)
	if err != nil {
		return "", err
	}
	if length > uint64(r.Len()) {
		return "", fmt.Errorf("%w: string length %d exceeds remaining data", ErrCorruptStorage, length)
	}
	b := make([]byte, length)
	if _, err := io.ReadFull(r, b); err != nil {
		return "", fmt.Errorf("%w: truncated string", ErrCorruptStorage)
	}
	return string(b), nil
}
