package osc

import (
	"encoding/hex"
	"strings"
)

const zero = string(byte(0))

// nulls returns a string of `i` nulls.
func nulls(i int) string {
	return strings.Repeat(zero, i)
}

// hb decodes hex, ignoring spaces.
func hb(s string) []byte {
	b, err := hex.DecodeString(strings.ReplaceAll(s, " ", ""))
	if err != nil {
		panic(err)
	}
	return b
}

func cat(parts ...[]byte) []byte {
	var out []byte
	for _, p := range parts {
		out = append(out, p...)
	}
	return out
}

type testCase struct {
	name    string
	obj     Packet
	raw     []byte
	wantErr bool
}

var messageTestCases = []testCase{
	{
		name: "int32",
		obj:  NewMessage("/testaddress", int32(255)),
		raw:  hb("2F746573 74616464 72657373 00000000 2C690000 000000FF"),
	},
	{
		name: "no_arguments",
		obj:  NewMessage("/a"),
		raw:  []byte("/a" + nulls(2) + "," + nulls(3)),
	},
	{
		name: "padded_address",
		obj:  NewMessage("/abc", "x"),
		raw:  []byte("/abc" + nulls(4) + ",s" + nulls(2) + "x" + nulls(3)),
	},
	{
		name: "all_types",
		obj: NewMessage("/all",
			int32(1), float32(0.5), "hi", []byte{1, 2, 3}, int64(-2), Timetag(1), float64(0.25),
			Symbol("sym"), Char('x'), MIDI{Port: 1, Status: 0x90, Data1: 60, Data2: 127},
			true, false, nil, Impulse{}, []interface{}{int32(7), "a"},
		),
		raw: hb("2F616C6C 00000000" +
			"2C696673 62687464 53636D54 464E495B 69735D00" +
			"00000001" +
			"3F000000" +
			"68690000" +
			"00000003 01020300" +
			"FFFFFFFF FFFFFFFE" +
			"00000000 00000001" +
			"3FD00000 00000000" +
			"73796D00" +
			"00000078" +
			"01903C7F" +
			"00000007" +
			"61000000"),
	},
	{
		name: "blob_aligned",
		obj:  NewMessage("/b", []byte{1, 2, 3, 4}),
		raw:  cat([]byte("/b"+nulls(2)+",b"+nulls(2)), hb("00000004 01020304")),
	},
	{
		name: "empty_blob",
		obj:  NewMessage("/b", []byte{}),
		raw:  cat([]byte("/b"+nulls(2)+",b"+nulls(2)), hb("00000000")),
	},
	{
		name: "nested_arrays",
		obj:  NewMessage("/n", []interface{}{[]interface{}{}, []interface{}{true}}),
		raw:  []byte("/n" + nulls(2) + ",[[][T]]" + nulls(4)),
	},
}

var bundleTestCases = []testCase{
	{
		name: "empty",
		obj:  NewBundle(),
		raw:  cat([]byte("#bundle"+zero), hb("00000000 00000001")),
	},
	{
		name: "one_message",
		obj:  &Bundle{Timetag: 5, Elements: []Packet{NewMessage("/a", int32(1))}},
		raw: cat([]byte("#bundle"+zero), hb("00000000 00000005"),
			hb("0000000C"), []byte("/a"+nulls(2)+",i"+nulls(2)), hb("00000001")),
	},
	{
		name: "nested",
		obj: &Bundle{Timetag: 1, Elements: []Packet{
			&Bundle{Timetag: 2, Elements: []Packet{NewMessage("/a", int32(1))}},
			NewMessage("/b"),
		}},
		raw: cat([]byte("#bundle"+zero), hb("00000000 00000001"),
			hb("00000020"),
			[]byte("#bundle"+zero), hb("00000000 00000002"),
			hb("0000000C"), []byte("/a"+nulls(2)+",i"+nulls(2)), hb("00000001"),
			hb("00000008"), []byte("/b"+nulls(2)+","+nulls(3))),
	},
}
