package goquery

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

type jsonKind int

const (
	jsonScalar jsonKind = iota
	jsonObject
	jsonArray
)

// jsonNode is a parsed JSON value that keeps object members in document
// order, so walks visit offers in the order a page lists them.
type jsonNode struct {
	kind    jsonKind
	members []jsonMember // jsonObject
	items   []*jsonNode  // jsonArray
	value   any          // jsonScalar: string, json.Number, bool or nil
}

type jsonMember struct {
	key   string
	value *jsonNode
}

var errTrailingData = errors.New("unexpected data after top-level value")

// parseJSON decodes a single JSON document.
func parseJSON(raw string) (*jsonNode, error) {
	dec := json.NewDecoder(strings.NewReader(raw))
	dec.UseNumber()

	root, err := decodeNode(dec)
	if err != nil {
		return nil, err
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, errTrailingData
	}
	return root, nil
}

func decodeNode(dec *json.Decoder) (*jsonNode, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}

	delim, ok := tok.(json.Delim)
	if !ok {
		return &jsonNode{kind: jsonScalar, value: tok}, nil
	}

	switch delim {
	case '{':
		n := &jsonNode{kind: jsonObject}
		for dec.More() {
			keyTok, err := dec.Token()
			if err != nil {
				return nil, err
			}
			key, ok := keyTok.(string)
			if !ok {
				return nil, fmt.Errorf("object key is %T", keyTok)
			}
			value, err := decodeNode(dec)
			if err != nil {
				return nil, err
			}
			n.set(key, value)
		}
		if _, err := dec.Token(); err != nil {
			return nil, err
		}
		return n, nil
	case '[':
		n := &jsonNode{kind: jsonArray}
		for dec.More() {
			item, err := decodeNode(dec)
			if err != nil {
				return nil, err
			}
			n.items = append(n.items, item)
		}
		if _, err := dec.Token(); err != nil {
			return nil, err
		}
		return n, nil
	}
	return nil, fmt.Errorf("unexpected delimiter %q", delim)
}

// set stores a member; a repeated key replaces the earlier value in place.
func (n *jsonNode) set(key string, value *jsonNode) {
	for i := range n.members {
		if n.members[i].key == key {
			n.members[i].value = value
			return
		}
	}
	n.members = append(n.members, jsonMember{key: key, value: value})
}

// get returns the member named key, or nil.
func (n *jsonNode) get(key string) *jsonNode {
	for _, m := range n.members {
		if m.key == key {
			return m.value
		}
	}
	return nil
}

// walk visits every object and array element depth-first, parents before
// children. It stops as soon as visit returns false and reports whether the
// walk ran to completion.
func (n *jsonNode) walk(visit func(*jsonNode) bool) bool {
	switch n.kind {
	case jsonObject:
		if !visit(n) {
			return false
		}
		for _, m := range n.members {
			if !m.value.walk(visit) {
				return false
			}
		}
	case jsonArray:
		for _, item := range n.items {
			if !item.walk(visit) {
				return false
			}
		}
	}
	return true
}

// text renders the value the way a price field is read: strings verbatim,
// numbers in plain decimal notation (empty when out of range), anything
// else as JSON.
func (n *jsonNode) text() string {
	if n.kind == jsonScalar {
		switch v := n.value.(type) {
		case string:
			return v
		case json.Number:
			f, err := v.Float64()
			if err != nil {
				return ""
			}
			return strconv.FormatFloat(f, 'f', -1, 64)
		}
	}
	return n.String()
}

// String renders the node as compact JSON.
func (n *jsonNode) String() string {
	var sb strings.Builder
	n.writeTo(&sb)
	return sb.String()
}

func (n *jsonNode) writeTo(sb *strings.Builder) {
	switch n.kind {
	case jsonObject:
		sb.WriteByte('{')
		for i, m := range n.members {
			if i > 0 {
				sb.WriteByte(',')
			}
			writeJSONString(sb, m.key)
			sb.WriteByte(':')
			m.value.writeTo(sb)
		}
		sb.WriteByte('}')
	case jsonArray:
		sb.WriteByte('[')
		for i, item := range n.items {
			if i > 0 {
				sb.WriteByte(',')
			}
			item.writeTo(sb)
		}
		sb.WriteByte(']')
	default:
		switch v := n.value.(type) {
		case string:
			writeJSONString(sb, v)
		case json.Number:
			sb.WriteString(v.String())
		case bool:
			sb.WriteString(strconv.FormatBool(v))
		default:
			sb.WriteString("null")
		}
	}
}

func writeJSONString(sb *strings.Builder, s string) {
	b, err := json.Marshal(s)
	if err != nil {
		sb.WriteString(strconv.Quote(s))
		return
	}
	sb.Write(b)
}
