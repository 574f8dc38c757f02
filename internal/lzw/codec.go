package lzw

import "fmt"

// Encode runs the classic LZW encode loop: extend current by one byte
// while the combined string is in the dictionary, otherwise emit the
// code for current, insert the combined string (if there's room), and
// restart current from the unmatched byte.
func Encode(input []byte) Result {
	result := Result{Metadata: Metadata{OriginalSize: uint64(len(input))}}
	if len(input) == 0 {
		return result
	}

	dictionary := make(map[string]uint16, MaxDictionarySize)
	for code := 0; code < InitialDictionarySize; code++ {
		dictionary[string([]byte{byte(code)})] = uint16(code)
	}

	nextCode := uint16(InitialDictionarySize)
	var current []byte

	for _, b := range input {
		combined := append(append([]byte(nil), current...), b)
		if _, ok := dictionary[string(combined)]; ok {
			current = combined
			continue
		}

		result.Codes = append(result.Codes, dictionary[string(current)])
		if nextCode < MaxDictionarySize {
			dictionary[string(combined)] = nextCode
			nextCode++
		}
		current = []byte{b}
	}

	if len(current) > 0 {
		result.Codes = append(result.Codes, dictionary[string(current)])
	}

	result.Metadata.DictionarySize = nextCode
	return result
}

// Decode reverses Encode. It rebuilds a dense, vector-indexed
// dictionary, resolving the cScSc special case when a code equals the
// next code to be allocated. Decoded output longer than the declared
// original size is truncated rather than treated as a fault; output
// shorter than declared is a fault.
func Decode(metadata Metadata, codes []uint16) ([]byte, error) {
	if metadata.OriginalSize == 0 {
		return []byte{}, nil
	}
	if len(codes) == 0 {
		return nil, ErrEmptyCodeStream
	}

	dictionary := make([][]byte, InitialDictionarySize, MaxDictionarySize)
	for code := 0; code < InitialDictionarySize; code++ {
		dictionary[code] = []byte{byte(code)}
	}
	nextCode := uint16(InitialDictionarySize)

	firstCode := codes[0]
	if int(firstCode) >= len(dictionary) {
		return nil, fmt.Errorf("%w: first code %d", ErrInvalidCode, firstCode)
	}

	output := make([]byte, 0, metadata.OriginalSize)
	current := dictionary[firstCode]
	output = append(output, current...)

	for _, code := range codes[1:] {
		var entry []byte
		switch {
		case int(code) < len(dictionary):
			entry = dictionary[code]
		case code == nextCode:
			entry = append(append([]byte(nil), current...), current[0])
		default:
			return nil, fmt.Errorf("%w: code %d", ErrInvalidCode, code)
		}

		output = append(output, entry...)

		if nextCode < MaxDictionarySize {
			next := append(append([]byte(nil), current...), entry[0])
			dictionary = append(dictionary, next)
			nextCode++
		}

		current = entry
	}

	if uint64(len(output)) > metadata.OriginalSize {
		output = output[:metadata.OriginalSize]
	} else if uint64(len(output)) < metadata.OriginalSize {
		return nil, fmt.Errorf("%w: got %d, want %d", ErrTruncatedOutput, len(output), metadata.OriginalSize)
	}

	return output, nil
}
