package osc

import (
	"errors"
	"math"
	"reflect"
	"testing"
)

func TestMessage_Append(t *testing.T) {
	oscAddress := "/address"
	message := NewMessage(oscAddress)

	message.Append("string argument")
	message.Append(int32(123456789))
	message.Append(true)

	if len(message.Arguments) != 3 {
		t.Errorf("Number of arguments should be %d and is %d", 3, len(message.Arguments))
	}

	if err := message.Append(int32(1), struct{}{}); err == nil {
		t.Error("Append() should reject an unsupported type")
	}
	if len(message.Arguments) != 3 {
		t.Errorf("Append() added arguments despite failing: %v", message.Arguments)
	}
}

func TestOscMessageMatch(t *testing.T) {
	tc := []struct {
		desc        string
		addr        string
		addrPattern string
		want        bool
	}{
		{
			"match everything",
			"/*/*",
			"/a/b",
			true,
		},
		{
			"don't match",
			"/a/b",
			"/a",
			false,
		},
		{
			"match alternatives",
			"/a/{foo,bar}",
			"/a/foo",
			true,
		},
		{
			"don't match if address is not part of the alternatives",
			"/a/{foo,bar}",
			"/a/bob",
			false,
		},
		{
			"wildcards don't cross parts",
			"/*",
			"/a/b",
			false,
		},
		{
			"not a pattern",
			"*",
			"/a/b",
			false,
		},
	}

	for _, tt := range tc {
		msg := NewMessage(tt.addr)

		got := msg.Match(tt.addrPattern)
		if got != tt.want {
			t.Errorf("%s: msg.Match('%s') = '%t', want = '%t'", tt.desc, tt.addrPattern, got, tt.want)
		}
	}
}

func TestMessage_MarshalBinary(t *testing.T) {
	for _, tt := range messageTestCases {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.obj.MarshalBinary()
			if (err != nil) != tt.wantErr {
				t.Errorf("MarshalBinary() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if !reflect.DeepEqual(got, tt.raw) {
				t.Errorf("MarshalBinary() got = %x, want %x", got, tt.raw)
			}
		})
	}
}

func TestMessage_UnmarshalBinary(t *testing.T) {
	for _, tt := range messageTestCases {
		t.Run(tt.name, func(t *testing.T) {
			m := new(Message)
			if err := m.UnmarshalBinary(tt.raw); (err != nil) != tt.wantErr {
				t.Errorf("UnmarshalBinary() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !reflect.DeepEqual(m, tt.obj) {
				t.Errorf("UnmarshalBinary() got = %v, want %v", m, tt.obj)
			}
		})
	}
}

func TestMessage_RoundTrip(t *testing.T) {
	values := []interface{}{
		int32(math.MinInt32),
		float32(-1.25),
		float32(math.NaN()),
		"",
		"four",
		[]byte{0xff},
		int64(math.MaxInt64),
		Timetag(0xdeadbeef00000001),
		math.Inf(-1),
		Symbol("alt"),
		Char(0),
		MIDI{Port: 2, Status: 0xb0, Data1: 7, Data2: 100},
		true,
		false,
		nil,
		Impulse{},
		[]interface{}{},
		[]interface{}{int32(1), []interface{}{"deep", Symbol("er")}, nil},
	}

	for _, v := range values {
		want := NewMessage("/round/trip", v)
		b, err := want.MarshalBinary()
		if err != nil {
			t.Errorf("MarshalBinary(%#v) error = %v", v, err)
			continue
		}
		if len(b)%4 != 0 {
			t.Errorf("MarshalBinary(%#v) is %d bytes, not 4 byte aligned", v, len(b))
		}
		got, err := NewMessageFromData(b)
		if err != nil {
			t.Errorf("NewMessageFromData(%#v) error = %v", v, err)
			continue
		}
		if !got.Equal(want) {
			t.Errorf("round trip of %#v got = %v, want %v", v, got, want)
		}
	}
}

func TestMessage_Truncated(t *testing.T) {
	for _, tt := range messageTestCases {
		for cut := 1; cut <= 3 && cut < len(tt.raw); cut++ {
			_, err := NewMessageFromData(tt.raw[:len(tt.raw)-cut])
			if !errors.Is(err, ErrMalformed) {
				t.Errorf("%s cut by %d: error = %v, want ErrMalformed", tt.name, cut, err)
			}
		}
	}
}

func TestMessage_DecodeErrors(t *testing.T) {
	tests := []struct {
		name string
		raw  []byte
		want error
	}{
		{"empty", nil, ErrMalformed},
		{"no_slash", []byte("abc" + zero), ErrMalformed},
		{"unaligned", []byte("/a" + zero), ErrMalformed},
		{"no_terminator", []byte("/abc"), ErrMalformed},
		{"bad_string_padding", []byte("/a" + zero + "x" + "," + nulls(3)), ErrMalformed},
		{"non_ascii_address", []byte("/\xe9" + nulls(2) + "," + nulls(3)), ErrMalformed},
		{"tags_without_comma", []byte("/a" + nulls(2) + "i" + nulls(3) + nulls(4)), ErrMalformed},
		{"short_int32", []byte("/a" + nulls(2) + ",ii" + zero + nulls(4)), ErrMalformed},
		{"short_float64", []byte("/a" + nulls(2) + ",d" + nulls(2) + nulls(4)), ErrMalformed},
		{"unknown_tag", []byte("/a" + nulls(2) + ",x" + nulls(2)), ErrUnexpectedType},
		{"stray_array_close", []byte("/a" + nulls(2) + ",]" + nulls(2)), ErrUnexpectedType},
		{"unterminated_array", []byte("/a" + nulls(2) + ",[i" + zero + nulls(4)), ErrMalformed},
		{"trailing_bytes", []byte("/a" + nulls(2) + "," + nulls(3) + nulls(4)), ErrMalformed},
		{"blob_overrun", cat([]byte("/a"+nulls(2)+",b"+nulls(2)), hb("00000008 01020304")), ErrMalformed},
		{"blob_too_large", cat([]byte("/a"+nulls(2)+",b"+nulls(2)), hb("7FFFFFFF")), ErrMalformed},
		{"blob_bad_padding", cat([]byte("/a"+nulls(2)+",b"+nulls(2)), hb("00000001 01020304")), ErrMalformed},
		{"char_not_ascii", cat([]byte("/a"+nulls(2)+",c"+nulls(2)), hb("000000E9")), ErrMalformed},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := NewMessageFromData(tt.raw)
			if !errors.Is(err, tt.want) {
				t.Errorf("NewMessageFromData() error = %v, want %v", err, tt.want)
			}
			if m != nil {
				t.Errorf("NewMessageFromData() returned a partial message: %v", m)
			}
		})
	}
}

func TestMessage_UnexpectedTypeTag(t *testing.T) {
	_, err := NewMessageFromData([]byte("/a" + nulls(2) + ",ix" + zero + nulls(4)))
	var ute *UnexpectedTypeError
	if !errors.As(err, &ute) {
		t.Fatalf("error = %v, want *UnexpectedTypeError", err)
	}
	if ute.Tag != 'x' {
		t.Errorf("Tag = %q, want 'x'", ute.Tag)
	}
}

func TestMessage_NoTypeTags(t *testing.T) {
	m, err := NewMessageFromData([]byte("/old" + nulls(4)))
	if err != nil {
		t.Fatal(err)
	}
	if m.Address != "/old" || len(m.Arguments) != 0 {
		t.Errorf("got = %v, want /old without arguments", m)
	}
}

func TestMessage_IgnoresExtraCommas(t *testing.T) {
	m, err := NewMessageFromData(cat([]byte("/a"+nulls(2)+",i,i"+nulls(4)), hb("00000001 00000002")))
	if err != nil {
		t.Fatal(err)
	}
	if want := NewMessage("/a", int32(1), int32(2)); !m.Equal(want) {
		t.Errorf("got = %v, want %v", m, want)
	}
}

func TestMessage_EncodeErrors(t *testing.T) {
	tests := []struct {
		name string
		msg  *Message
	}{
		{"empty_address", NewMessage("")},
		{"no_slash", NewMessage("address")},
		{"non_ascii_address", NewMessage("/caf\xc3\xa9")},
		{"non_ascii_string", NewMessage("/a", "caf\xc3\xa9")},
		{"nul_in_string", NewMessage("/a", "a"+zero+"b")},
		{"non_ascii_char", NewMessage("/a", Char('é'))},
		{"unsupported_type", NewMessage("/a", 42)},
		{"unsupported_in_array", NewMessage("/a", []interface{}{int32(1), uint8(2)})},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, err := tt.msg.MarshalBinary()
			if !errors.Is(err, ErrEncode) {
				t.Errorf("MarshalBinary() error = %v, want ErrEncode", err)
			}
			if b != nil {
				t.Errorf("MarshalBinary() returned %x on error", b)
			}
		})
	}
}

func TestMessage_TypeTags(t *testing.T) {
	m := NewMessage("/a", int32(1), true, []interface{}{"x", nil}, Impulse{})
	got, err := m.TypeTags()
	if err != nil {
		t.Fatal(err)
	}
	if want := ",iT[sN]I"; got != want {
		t.Errorf("TypeTags() = %q, want %q", got, want)
	}

	if _, err := NewMessage("/a", 1).TypeTags(); err == nil {
		t.Error("TypeTags() should fail for an int")
	}
}

func TestMessage_String(t *testing.T) {
	tests := []struct {
		msg  *Message
		want string
	}{
		{NewMessage("/a"), "/a"},
		{NewMessage("/a", int32(1), "s", nil, []byte{1, 2}), "/a ,isNb 1 s Nil blob(2)"},
		{NewMessage("/a", []interface{}{true, Symbol("x")}, Char('c')), "/a ,[TS]c [true 'x] 'c'"},
	}
	for _, tt := range tests {
		if got := tt.msg.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}

func TestMessage_Equal(t *testing.T) {
	a := NewMessage("/a", int32(1), []byte{1}, []interface{}{float64(math.NaN())})
	b := NewMessage("/a", int32(1), []byte{1}, []interface{}{float64(math.NaN())})
	if !a.Equal(b) {
		t.Error("Equal() = false for identical messages")
	}
	if a.Equal(NewMessage("/b", int32(1), []byte{1}, []interface{}{float64(math.NaN())})) {
		t.Error("Equal() = true for different addresses")
	}
	if a.Equal(NewMessage("/a", int64(1), []byte{1}, []interface{}{float64(math.NaN())})) {
		t.Error("Equal() = true for different argument types")
	}
	if a.Equal(NewMessage("/a", int32(1))) {
		t.Error("Equal() = true for different argument counts")
	}
}

var result interface{}

func BenchmarkMessageMarshalBinary(b *testing.B) {
	var buf []byte
	b.ReportAllocs()
	b.ResetTimer()
	for n := 0; n < b.N; n++ {
		buf, _ = temp.MarshalBinary()
	}
	result = buf
}
