// Package cache keeps generated class names keyed by declaration content.
//
// Cache is an append-only log: the same key may hold several items inserted
// at different ranks, so a declaration can legitimately be re-inserted later
// in a sheet when source order requires it. Items are never evicted.
package cache

import (
	"slices"
	"strconv"
	"strings"

	"github.com/cespare/xxhash/v2"

	"aesthetic/common"
	"aesthetic/css"
	"aesthetic/format"
)

// NoRank marks items without ordering information (at-rules, grouped rules)
// and ranks of rules the target surface refused to accept.
const NoRank = -1

// Item is a single generated result.
type Item struct {
	ClassName string
	Rank      int
}

// HasRank reports whether the item carries an insertion position.
func (i Item) HasRank() bool {
	return i.Rank > NoRank
}

// Cache maps keys to the items generated for them in insertion order.
// NOTE: not safe for concurrent use, engine serializes all access.
type Cache struct {
	items map[string][]Item
}

// New returns empty cache.
func New() *Cache {
	return &Cache{items: make(map[string][]Item)}
}

// Read returns the first (primary) item for key.
func (c *Cache) Read(key string) (Item, bool) {
	items := c.items[key]
	if len(items) == 0 {
		return Item{}, false
	}
	return items[0], true
}

// ReadMin returns the first item for key with rank not lower than minimum.
func (c *Cache) ReadMin(key string, minimum int) (Item, bool) {
	for _, item := range c.items[key] {
		if item.Rank >= minimum {
			return item, true
		}
	}
	return Item{}, false
}

// Write appends item to the list for key. It never overwrites or dedupes,
// callers write only after reading nothing suitable.
func (c *Cache) Write(key string, item Item) {
	c.items[key] = append(c.items[key], item)
}

// Count returns number of items stored for key.
func (c *Cache) Count(key string) int {
	return len(c.items[key])
}

// Len returns number of distinct keys.
func (c *Cache) Len() int {
	return len(c.items)
}

// Keys returns all keys in sorted order.
func (c *Cache) Keys() []string {
	keys := make([]string, 0, len(c.items))
	for k := range c.items {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

// Purge drops everything. Only meant to be used by tests.
func (c *Cache) Purge() {
	clear(c.items)
}

// Hash returns short base36 content hash of text.
func Hash(text string) string {
	return strconv.FormatUint(xxhash.Sum64String(text), 36)
}

// DeclarationKey builds key of an atomic declaration: property and value
// under the selector and condition context. Direction is a part of the key
// only for right-to-left rendering.
func DeclarationKey(property, value, selector string, conds []common.Condition, dir common.Direction) string {
	return property + ":" + format.CollapseSpace(value) + ScopeKey(selector, conds, dir)
}

// ScopeKey returns context part of keys: nested selector, condition stack
// and direction. It is empty for plain left-to-right context.
func ScopeKey(selector string, conds []common.Condition, dir common.Direction) string {
	var sb strings.Builder
	if selector != "" {
		sb.WriteString("&")
		sb.WriteString(selector)
	}
	if len(conds) > 0 {
		sb.WriteString("@")
		sb.WriteString(common.JoinConditions(conds))
	}
	if dir == common.DirectionRtl {
		sb.WriteString("~rtl")
	}
	return sb.String()
}

// AtRuleKey builds existence key for a whole rule text (imports, font faces,
// keyframes, root variables). Formatting differences do not change the key.
func AtRuleKey(text string) string {
	return "@" + Hash(css.Normalize(text))
}

// GroupKey builds existence key for rules rendered as a single grouped class.
func GroupKey(class string) string {
	return "#" + class
}
