package main

import (
	"encoding/hex"
	"strconv"
	"strings"

	"github.com/chabad360/oscwire/osc"
	"github.com/pkg/errors"
)

// parseArguments turns command line words into message arguments. A word is
// either a bare tag (T, F, N, I), a bracket ([ or ]) opening or closing an
// array, or tag:value, for example i:255, f:0.5, s:hello or b:0a0b. Words
// without a tag become an int32, a float32 or a string, whichever parses
// first.
func parseArguments(words []string) ([]interface{}, error) {
	args, rest, err := parseList(words, 0)
	if err != nil {
		return nil, err
	}
	if len(rest) > 0 {
		return nil, errors.Errorf("unexpected %q", rest[0])
	}
	return args, nil
}

func parseList(words []string, depth int) ([]interface{}, []string, error) {
	args := []interface{}{}
	for len(words) > 0 {
		w := words[0]
		words = words[1:]
		switch w {
		case "[":
			arr, rest, err := parseList(words, depth+1)
			if err != nil {
				return nil, nil, err
			}
			args = append(args, arr)
			words = rest
			continue
		case "]":
			if depth == 0 {
				return nil, nil, errors.New("unexpected ]")
			}
			return args, words, nil
		}

		v, err := parseArgument(w)
		if err != nil {
			return nil, nil, errors.Wrapf(err, "argument %q", w)
		}
		args = append(args, v)
	}
	if depth > 0 {
		return nil, nil, errors.New("missing ]")
	}
	return args, nil, nil
}

func parseArgument(w string) (interface{}, error) {
	switch w {
	case "T":
		return true, nil
	case "F":
		return false, nil
	case "N":
		return nil, nil
	case "I":
		return osc.Impulse{}, nil
	}

	tag, value, ok := strings.Cut(w, ":")
	if !ok || len(tag) != 1 {
		return guessArgument(w), nil
	}

	switch osc.TypeTag(tag[0]) {
	case osc.TypeInt32:
		v, err := strconv.ParseInt(value, 0, 32)
		return int32(v), err
	case osc.TypeInt64:
		v, err := strconv.ParseInt(value, 0, 64)
		return v, err
	case osc.TypeFloat32:
		v, err := strconv.ParseFloat(value, 32)
		return float32(v), err
	case osc.TypeFloat64:
		return strconv.ParseFloat(value, 64)
	case osc.TypeString:
		return value, nil
	case osc.TypeSymbol:
		return osc.Symbol(value), nil
	case osc.TypeChar:
		if len(value) != 1 {
			return nil, errors.New("a char is exactly one character")
		}
		return osc.Char(value[0]), nil
	case osc.TypeBlob:
		return hex.DecodeString(value)
	case osc.TypeTimeTag:
		v, err := strconv.ParseUint(value, 0, 64)
		return osc.Timetag(v), err
	case osc.TypeMIDI:
		b, err := hex.DecodeString(value)
		if err != nil {
			return nil, err
		}
		if len(b) != 4 {
			return nil, errors.New("a MIDI message is exactly 4 bytes")
		}
		return osc.MIDI{Port: b[0], Status: b[1], Data1: b[2], Data2: b[3]}, nil
	}
	return guessArgument(w), nil
}

func guessArgument(w string) interface{} {
	if v, err := strconv.ParseInt(w, 10, 32); err == nil {
		return int32(v)
	}
	if v, err := strconv.ParseFloat(w, 32); err == nil {
		return float32(v)
	}
	return w
}
