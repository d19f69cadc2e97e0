// Copyright 2013 - 2015 Sebastian Ruml <sebastian.ruml@gmail.com>
// Copyright 2021 - 2022 Mendel Greenberg <mendel@chabad360.me>

//Package osc encodes, decodes and matches OpenSoundControl packets.
//
//This implementation is based on the Open Sound Control 1.0 Specification (http://opensoundcontrol.org/spec-1_0.html),
//including the additional types of OSC 1.1.
//
//Open Sound Control (OSC) is an open, transport-independent, message-based protocol developed for communication among computers,
//sound synthesizers, and other multimedia devices.
//
//Features
//
//- Supports OSC messages with the following TypeTags:
//
//	'i' (int32)
//	'f' (float32)
//	's' (string)
//	'b' ([]byte)
//	'h' (int64)
//	't' (Timetag)
//	'd' (float64)
//	'S' (Symbol)
//	'c' (Char)
//	'm' (MIDI)
//	'T' (true)
//	'F' (false)
//	'N' (nil)
//	'I' (Impulse)
//	'[' ... ']' ([]interface{})
//
//- User defined argument types, through a Registry.
//
//- Supports OSC bundles, including TimeTags.
//
//- OSC 1.0 address pattern matching ('*', '?', '[...]' and '{...}').
//
//- UDP, and TCP with SLIP or size-prefixed framing.
//
//Packets
//
//The unit of transmission of OSC is an OSC Packet. Any application that sends OSC Packets is an OSC Client;
//any application that receives OSC Packets is an OSC Server.
//
//An OSC packet consists of its contents, a contiguous block of binary data.
//The size of an OSC packet is always 32-bit aligned.
//
//OSC packets come in two flavors:
//
//OSC Messages: An OSC message consists of an OSC address pattern and  zero or more OSC arguments.
//
//OSC Bundles: An OSC Bundle consists of an OSC Timetag, followed by zero or more OSC bundle elements.
//Each bundle element can be another OSC bundle (note this recursive definition: a bundle may contain bundles) or OSC message.
//
//Usage
//
//OSC client example:
//  client, _ := osc.Dial("localhost:8765")
//  msg := osc.NewMessage("/osc/address", int32(111), true, "hello")
//  client.Send(msg)
//
//OSC server example:
//  osc.ListenAndServe("127.0.0.1:8765", func(p osc.Packet, addr net.Addr) {
//      if m, ok := p.(*osc.Message); ok && m.Match("/synth/1/freq") {
//          fmt.Println(m)
//      }
//  })
package osc
