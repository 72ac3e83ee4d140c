package route

import (
	"sync"

	"github.com/google/btree"

	"github.com/nuru-cli/nuru/pkg/errs"
)

// btreeDegree mirrors peco's selection.Set, which also keeps a
// mutable, always-ordered set of items in a btree.BTree(32) rather than
// re-sorting a slice on every mutation.
const btreeDegree = 32

// sortKey orders endpoints: order asc, specificity desc,
// declarationIndex asc.
type sortKey struct {
	order            int
	specificity      int
	declarationIndex int
	endpoint         *Endpoint
}

// Less implements btree.Item.
func (k *sortKey) Less(than btree.Item) bool {
	o := than.(*sortKey)
	if k.order != o.order {
		return k.order < o.order
	}
	if k.specificity != o.specificity {
		return k.specificity > o.specificity // descending
	}
	return k.declarationIndex < o.declarationIndex
}

// Collection accumulates endpoints and, once frozen, exposes them in
// match-priority order. Add fails once the collection is
// frozen.
type Collection struct {
	mutex    sync.Mutex
	tree     *btree.BTree
	byPat    map[string]*sortKey // last-added-wins duplicate detection, keyed by original pattern
	nextDecl int
	frozen   bool

	// OnDuplicate is called (if non-nil) when an endpoint is added whose
	// CompiledRoute.OriginalPattern already exists in the collection:
	// two endpoints with identical originalPattern fields emit a
	// warning through this sink, and the last one added wins.
	OnDuplicate func(pattern string)
}

// NewCollection creates an empty, mutable Collection.
func NewCollection() *Collection {
	return &Collection{
		tree:  btree.New(btreeDegree),
		byPat: map[string]*sortKey{},
	}
}

// Add registers an endpoint. Returns CollectionFrozenError if the
// collection was already frozen.
func (c *Collection) Add(e *Endpoint) error {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	if c.frozen {
		return &errs.CollectionFrozenError{}
	}

	pat := e.Route.OriginalPattern
	if old, ok := c.byPat[pat]; ok {
		c.tree.Delete(old)
		if c.OnDuplicate != nil {
			c.OnDuplicate(pat)
		}
	}

	e.declarationIndex = c.nextDecl
	c.nextDecl++

	key := &sortKey{
		order:            e.Order,
		specificity:      e.Route.Specificity,
		declarationIndex: e.declarationIndex,
		endpoint:         e,
	}
	c.tree.ReplaceOrInsert(key)
	c.byPat[pat] = key
	return nil
}

// Freeze sorts and locks the collection, returning a Frozen view safe
// to share across goroutines.
func (c *Collection) Freeze() *Frozen {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	c.frozen = true

	ordered := make([]*Endpoint, 0, c.tree.Len())
	c.tree.Ascend(func(it btree.Item) bool {
		ordered = append(ordered, it.(*sortKey).endpoint)
		return true
	})
	return &Frozen{endpoints: ordered}
}

// Frozen is an immutable, sorted view of a Collection's endpoints,
// produced by Collection.Freeze. It is safe for concurrent reads.
type Frozen struct {
	endpoints []*Endpoint
}

// Endpoints returns the endpoints in match-priority order. The returned
// slice must not be mutated by callers.
func (f *Frozen) Endpoints() []*Endpoint {
	return f.endpoints
}

// Len returns the number of endpoints.
func (f *Frozen) Len() int { return len(f.endpoints) }
