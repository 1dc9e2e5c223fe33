// Copyright 2020-2021 Dolthub, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package loader parses a PMML document into the plain data bag pmml.Load
// assembles into a Model: a MiningSchema, the dispatched model.Model, its
// Target, and its OutputDictionary. Grounded on core/xmlnode.h (the document
// is walked as a generic attributed tree, not unmarshaled into per-element
// Go structs, mirroring the original's own XmlNode wrapper over its DOM),
// core/predicatebuilder.h, core/datadictionary.h and core/internal_model.h.
package loader

import (
	"encoding/xml"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/amadeus-pmml/go-pmml/core"
)

// doubleMin is the sentinel GetDoubleAttribute returns for an absent or
// unparsable attribute, mirroring core/xmlnode.h's double_min().
const doubleMin = -math.MaxFloat64

// nullAttribute is the sentinel GetAttribute returns for an absent
// attribute, mirroring core/xmlnode.h's "null" string return.
const nullAttribute = "null"

// xmlNode is a generic, attributed XML element: the Go analogue of
// core/xmlnode.h's wrapper over the document's DOM tree.
type xmlNode struct {
	Tag      string
	Attrs    map[string]string
	Children []*xmlNode
	Text     string
}

// parseXML decodes r into a tree of xmlNode rooted at the document element.
func parseXML(r io.Reader) (*xmlNode, error) {
	dec := xml.NewDecoder(r)
	var stack []*xmlNode
	var root *xmlNode

	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, core.WrapParsing(errors.Wrap(err, "decoding xml"), "malformed XML")
		}

		switch t := tok.(type) {
		case xml.StartElement:
			node := &xmlNode{Tag: t.Name.Local, Attrs: make(map[string]string, len(t.Attr))}
			for _, a := range t.Attr {
				node.Attrs[a.Name.Local] = a.Value
			}
			if len(stack) > 0 {
				parent := stack[len(stack)-1]
				parent.Children = append(parent.Children, node)
			}
			stack = append(stack, node)
		case xml.EndElement:
			if len(stack) == 0 {
				continue
			}
			node := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			if len(stack) == 0 {
				root = node
			}
		case xml.CharData:
			if len(stack) > 0 {
				stack[len(stack)-1].Text += string(t)
			}
		}
	}

	if root == nil {
		return nil, core.ErrParsing.New("empty or malformed PMML document")
	}
	return root, nil
}

// GetAttribute returns name's value, or the "null" sentinel when absent.
func (n *xmlNode) GetAttribute(name string) string {
	if v, ok := n.Attrs[name]; ok {
		return v
	}
	return nullAttribute
}

// ExistsAttribute reports whether name is declared on n.
func (n *xmlNode) ExistsAttribute(name string) bool {
	_, ok := n.Attrs[name]
	return ok
}

// GetDoubleAttribute parses name's value as a float64, returning doubleMin
// when the attribute is absent or not numeric.
func (n *xmlNode) GetDoubleAttribute(name string) float64 {
	v, ok := n.Attrs[name]
	if !ok {
		return doubleMin
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
	if err != nil {
		return doubleMin
	}
	return f
}

// GetChild returns the first direct child named tag (case-insensitive).
func (n *xmlNode) GetChild(tag string) (*xmlNode, bool) {
	for _, c := range n.Children {
		if strings.EqualFold(c.Tag, tag) {
			return c, true
		}
	}
	return nil, false
}

// GetChildByList returns the first direct child whose tag matches any entry
// of tags, in document order. Used to dispatch a DerivedField's single
// expression child among the several possible expression element names.
func (n *xmlNode) GetChildByList(tags []string) (*xmlNode, bool) {
	for _, c := range n.Children {
		for _, t := range tags {
			if strings.EqualFold(c.Tag, t) {
				return c, true
			}
		}
	}
	return nil, false
}

// GetChilds returns every direct child named tag, in document order.
func (n *xmlNode) GetChilds(tag string) []*xmlNode {
	var result []*xmlNode
	for _, c := range n.Children {
		if strings.EqualFold(c.Tag, tag) {
			result = append(result, c)
		}
	}
	return result
}

// GetChildByPattern returns the first direct child whose tag contains
// pattern, case-insensitively, mirroring core/xmlnode.h's
// get_child_bypattern. Predicate dispatch does not use it (True/False share
// no common substring with the other predicate tags); see predicateNames.
func (n *xmlNode) GetChildByPattern(pattern string) (*xmlNode, bool) {
	lower := strings.ToLower(pattern)
	for _, c := range n.Children {
		if strings.Contains(strings.ToLower(c.Tag), lower) {
			return c, true
		}
	}
	return nil, false
}

// GetChildsByAttribute returns every direct child named tag whose attrName
// attribute equals attrValue.
func (n *xmlNode) GetChildsByAttribute(tag, attrName, attrValue string) []*xmlNode {
	var result []*xmlNode
	for _, c := range n.GetChilds(tag) {
		if c.GetAttribute(attrName) == attrValue {
			result = append(result, c)
		}
	}
	return result
}
