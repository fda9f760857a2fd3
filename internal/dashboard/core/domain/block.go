package domain

import (
	"encoding/json"
	"sort"

	"github.com/tidwall/gjson"
)

// StarterType is the block type every new workflow is created with.
const StarterType = "starter"

type Block struct {
	ID   string         `json:"id"`
	Type string         `json:"type"`
	Data map[string]any `json:"data,omitempty"`
}

type CollectionKind int

const (
	CollectionEmpty CollectionKind = iota
	CollectionSequence
	CollectionKeyed
)

type keyedBlock struct {
	key   string
	block Block
}

// BlockCollection is the block set of a workflow state. Upstream stores it
// either as an ordered list or as an object keyed by block id; the shape is
// fixed when the collection is built and never inspected again downstream.
type BlockCollection struct {
	kind  CollectionKind
	seq   []Block
	keyed []keyedBlock
}

func Sequence(blocks ...Block) BlockCollection {
	return BlockCollection{kind: CollectionSequence, seq: blocks}
}

// Keyed builds a keyed collection. Entries are kept in key order so that
// repeated runs over the same input produce the same output.
func Keyed(m map[string]Block) BlockCollection {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	entries := make([]keyedBlock, 0, len(keys))
	for _, k := range keys {
		entries = append(entries, keyedBlock{key: k, block: m[k]})
	}
	return BlockCollection{kind: CollectionKeyed, keyed: entries}
}

func (c BlockCollection) Kind() CollectionKind {
	return c.kind
}

func (c BlockCollection) Len() int {
	switch c.kind {
	case CollectionSequence:
		return len(c.seq)
	case CollectionKeyed:
		return len(c.keyed)
	default:
		return 0
	}
}

// Blocks returns the collection as a list. The returned slice must not be
// modified by callers.
func (c BlockCollection) Blocks() []Block {
	switch c.kind {
	case CollectionSequence:
		return c.seq
	case CollectionKeyed:
		out := make([]Block, 0, len(c.keyed))
		for _, e := range c.keyed {
			out = append(out, e.block)
		}
		return out
	default:
		return nil
	}
}

func (c BlockCollection) MarshalJSON() ([]byte, error) {
	switch c.kind {
	case CollectionSequence:
		return json.Marshal(c.seq)
	case CollectionKeyed:
		m := make(map[string]Block, len(c.keyed))
		for _, e := range c.keyed {
			m[e.key] = e.block
		}
		return json.Marshal(m)
	default:
		return []byte("null"), nil
	}
}

// UnmarshalJSON never fails: shapes other than a list or an object, and
// elements that are not block objects, are dropped.
func (c *BlockCollection) UnmarshalJSON(raw []byte) error {
	*c = parseBlockCollection(gjson.ParseBytes(raw))
	return nil
}

func parseBlockCollection(v gjson.Result) BlockCollection {
	switch {
	case v.IsArray():
		blocks := make([]Block, 0)
		v.ForEach(func(_, item gjson.Result) bool {
			if b, ok := parseBlock(item); ok {
				blocks = append(blocks, b)
			}
			return true
		})
		return BlockCollection{kind: CollectionSequence, seq: blocks}
	case v.IsObject():
		entries := make([]keyedBlock, 0)
		v.ForEach(func(key, item gjson.Result) bool {
			if b, ok := parseBlock(item); ok {
				entries = append(entries, keyedBlock{key: key.String(), block: b})
			}
			return true
		})
		return BlockCollection{kind: CollectionKeyed, keyed: entries}
	default:
		return BlockCollection{}
	}
}

func parseBlock(item gjson.Result) (Block, bool) {
	if !item.IsObject() {
		return Block{}, false
	}
	b := Block{
		ID:   item.Get("id").String(),
		Type: item.Get("type").String(),
	}
	if data := item.Get("data"); data.IsObject() {
		if m, ok := data.Value().(map[string]any); ok {
			b.Data = m
		}
	}
	return b, true
}

type WorkflowState struct {
	Blocks BlockCollection `json:"blocks"`
}

func (s *WorkflowState) UnmarshalJSON(raw []byte) error {
	s.Blocks = parseBlockCollection(gjson.ParseBytes(raw).Get("blocks"))
	return nil
}
