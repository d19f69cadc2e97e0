package main

import (
	"bytes"
	"strings"
	"testing"
)

// run executes the command line args and returns what it wrote to stdout.
func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	encodeFlags.bundle, encodeFlags.raw = false, false
	decodeRaw = false

	var out bytes.Buffer
	RootCmd.SetArgs(args)
	RootCmd.SetIn(strings.NewReader(stdin))
	RootCmd.SetOut(&out)
	RootCmd.SetErr(&bytes.Buffer{})
	err := RootCmd.Execute()
	return out.String(), err
}

func TestEncodeCmd(t *testing.T) {
	got, err := run(t, "", "encode", "/testaddress", "i:255")
	if err != nil {
		t.Fatal(err)
	}
	if want := "2f7465737461646472657373000000002c690000000000ff\n"; got != want {
		t.Errorf("encode printed %q, want %q", got, want)
	}

	got, err = run(t, "", "encode", "--bundle", "/a")
	if err != nil {
		t.Fatal(err)
	}
	if want := "2362756e646c6500" + "0000000000000001" + "00000008" + "2f610000" + "2c000000\n"; got != want {
		t.Errorf("encode --bundle printed %q, want %q", got, want)
	}

	if _, err := run(t, "", "encode", "no-slash"); err == nil {
		t.Error("encode should fail for an address without '/'")
	}
}

func TestDecodeCmd(t *testing.T) {
	got, err := run(t, "", "decode", "2f746573 74616464 72657373 00000000", "2c690000 000000ff")
	if err != nil {
		t.Fatal(err)
	}
	if want := "/testaddress ,i 255\n"; got != want {
		t.Errorf("decode printed %q, want %q", got, want)
	}

	got, err = run(t, "2362756e646c65000000000000000001\n000000082f6100002c000000\n", "decode")
	if err != nil {
		t.Fatal(err)
	}
	if want := "#bundle immediate (1 elements)\n\t/a\n"; got != want {
		t.Errorf("decode printed %q, want %q", got, want)
	}

	if _, err := run(t, "", "decode", "2f61"); err == nil {
		t.Error("decode should fail for a truncated packet")
	}
}

func TestMatchCmd(t *testing.T) {
	got, err := run(t, "", "match", "/synth/{1,2}/freq*", "/synth/1/freq", "/synth/3/freq", "/synth/2/frequency")
	if err != nil {
		t.Fatal(err)
	}
	want := "/synth/1/freq\ttrue\n/synth/3/freq\tfalse\n/synth/2/frequency\ttrue\n"
	if got != want {
		t.Errorf("match printed %q, want %q", got, want)
	}

	if _, err := run(t, "", "match", "/a", "/b"); err == nil {
		t.Error("match should fail when nothing matches")
	}
}
