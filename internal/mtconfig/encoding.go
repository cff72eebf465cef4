package mtconfig

import (
	"encoding/binary"
	"errors"
	"fmt"

	"golang.org/x/text/encoding/unicode"
)

// fileEncoding is the on-disk encoding of terminal configuration files.
// Encoding writes a little-endian BOM; decoding honours a BOM if present
// and otherwise assumes little endian.
var fileEncoding = unicode.UTF16(unicode.LittleEndian, unicode.UseBOM)

var errOddLength = errors.New("odd byte count")

func decodeFile(data []byte) (string, error) {
	if len(data)%2 != 0 {
		return "", errOddLength
	}
	// The decoder silently substitutes U+FFFD for unpaired surrogates, so
	// they are caught on the raw code units. A literal U+FFFD is valid.
	if err := checkSurrogates(data); err != nil {
		return "", err
	}
	out, err := fileEncoding.NewDecoder().Bytes(data)
	if err != nil {
		return "", err
	}
	return string(out), nil
}

// checkSurrogates reports the first unpaired surrogate in even-length
// UTF-16 data, using the byte order selected by the BOM.
func checkSurrogates(data []byte) error {
	var order binary.ByteOrder = binary.LittleEndian
	if len(data) >= 2 && data[0] == 0xFE && data[1] == 0xFF {
		order = binary.BigEndian
	}

	n := len(data) / 2
	for i := 0; i < n; i++ {
		u := order.Uint16(data[2*i:])
		switch {
		case isHighSurrogate(u):
			if i+1 >= n || !isLowSurrogate(order.Uint16(data[2*(i+1):])) {
				return fmt.Errorf("unpaired high surrogate at byte %d", 2*i)
			}
			i++
		case isLowSurrogate(u):
			return fmt.Errorf("unpaired low surrogate at byte %d", 2*i)
		}
	}
	return nil
}

func isHighSurrogate(u uint16) bool { return u >= 0xD800 && u <= 0xDBFF }
func isLowSurrogate(u uint16) bool  { return u >= 0xDC00 && u <= 0xDFFF }

func encodeFile(text string) ([]byte, error) {
	return fileEncoding.NewEncoder().Bytes([]byte(text))
}
