// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package op defines the operations driving the state machine and their
// YAML form. An op is a flat mapping keyed by its "type":
//
//	- type: stake
//	  time: 1700000000
//	  sender: 0x7567d83b7b8d80addcb281a71d54fc7b3364ffed
//	  amount: 1000000000
package op

import (
	"fmt"
	"io"
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/fresacoin/fresa/fresa"
)

// Op is one state transition request.
type Op struct {
	// Time overrides the executor clock when set.
	Time   *int64
	Sender fresa.Address
	Body   Body
}

// New creates an op for sender.
func New(sender fresa.Address, body Body) *Op {
	return &Op{Sender: sender, Body: body}
}

// At pins the op to the given timestamp.
func (o *Op) At(t int64) *Op {
	o.Time = &t
	return o
}

// Type returns the body type, or empty if there is no body.
func (o *Op) Type() Type {
	if o.Body == nil {
		return ""
	}
	return o.Body.Type()
}

// Now returns the op's timestamp, falling back to clock.
func (o *Op) Now(clock fresa.Clock) int64 {
	if o.Time != nil {
		return *o.Time
	}
	return clock.Now()
}

func (o *Op) String() string {
	return fmt.Sprintf("Op(%v from %v)", o.Type(), o.Sender)
}

type header struct {
	Type   Type          `yaml:"type"`
	Time   *int64        `yaml:"time,omitempty"`
	Sender fresa.Address `yaml:"sender"`
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (o *Op) UnmarshalYAML(value *yaml.Node) error {
	var h header
	if err := value.Decode(&h); err != nil {
		return err
	}
	body, ok := NewBody(h.Type)
	if !ok {
		return fmt.Errorf("line %d: unknown op type %q", value.Line, h.Type)
	}
	if err := value.Decode(body); err != nil {
		return errors.Wrapf(err, "decode %s", h.Type)
	}
	*o = Op{Time: h.Time, Sender: h.Sender, Body: body}
	return nil
}

// MarshalYAML implements yaml.Marshaler.
func (o *Op) MarshalYAML() (any, error) {
	if o.Body == nil {
		return nil, errors.New("op without body")
	}
	var node yaml.Node
	if err := node.Encode(&header{Type: o.Type(), Time: o.Time, Sender: o.Sender}); err != nil {
		return nil, err
	}
	var body yaml.Node
	if err := body.Encode(o.Body); err != nil {
		return nil, err
	}
	// an empty body encodes as an empty mapping
	if body.Kind == yaml.MappingNode {
		node.Content = append(node.Content, body.Content...)
	}
	return &node, nil
}

// Script is an ordered list of ops.
type Script struct {
	Ops []*Op `yaml:"ops"`
}

// DecodeScript reads a YAML script.
func DecodeScript(r io.Reader) (*Script, error) {
	var s Script
	if err := yaml.NewDecoder(r).Decode(&s); err != nil {
		if errors.Is(err, io.EOF) {
			return &s, nil
		}
		return nil, errors.Wrap(err, "decode script")
	}
	return &s, nil
}

// LoadScript reads a YAML script from path.
func LoadScript(path string) (*Script, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "open script")
	}
	defer f.Close()
	return DecodeScript(f)
}
