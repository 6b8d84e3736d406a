/*
Copyright (c) Facebook, Inc. and its affiliates.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package console

import (
	"bytes"
	"fmt"
	"io"

	"go.bug.st/serial"
)

// DefaultBaudRate matches the usual Arduino serial monitor setting
const DefaultBaudRate = 9600

// Serial is a line sink writing to a serial console.
// Line feeds are sent as CRLF.
type Serial struct {
	device string
	port   io.WriteCloser
	buf    bytes.Buffer
}

// OpenSerial opens device at the given baud rate
func OpenSerial(device string, baud int) (*Serial, error) {
	if baud <= 0 {
		baud = DefaultBaudRate
	}
	mode := &serial.Mode{
		BaudRate: baud,
		DataBits: 8,
		Parity:   serial.NoParity,
		StopBits: serial.OneStopBit,
	}

	port, err := serial.Open(device, mode)
	if err != nil {
		return nil, fmt.Errorf("opening serial port %s: %w", device, err)
	}
	s := NewSerial(port)
	s.device = device
	return s, nil
}

// NewSerial wraps an already open port
func NewSerial(port io.WriteCloser) *Serial {
	return &Serial{port: port}
}

// Device returns the device path, empty when the port was not opened by OpenSerial
func (s *Serial) Device() string {
	return s.device
}

// Write implements io.Writer
func (s *Serial) Write(p []byte) (int, error) {
	s.buf.Reset()
	for _, b := range p {
		if b == '\n' {
			s.buf.WriteByte('\r')
		}
		s.buf.WriteByte(b)
	}
	n, err := s.port.Write(s.buf.Bytes())
	if err != nil {
		return 0, err
	}
	if n != s.buf.Len() {
		return 0, io.ErrShortWrite
	}
	return len(p), nil
}

// Close is to close serial port
func (s *Serial) Close() error {
	return s.port.Close()
}
