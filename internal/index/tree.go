package index

type nodeColor bool

const (
	red   nodeColor = true
	black nodeColor = false
)

// node is one tree node. Nodes are immutable once linked into a published
// tree; every mutation path rebuilds the nodes it touches.
type node struct {
	color nodeColor
	rec   *Record
	left  *node
	right *node
}

// Tree is a persistent red-black tree mapping terms to records. The zero
// value is the empty tree. Mutating methods return a new tree and leave the
// receiver usable; unmodified subtrees are shared between versions.
type Tree struct {
	root *node
}

// New returns an empty tree.
func New() Tree {
	return Tree{}
}

// Empty reports whether the tree holds no records.
func (t Tree) Empty() bool {
	return t.root == nil
}

// Len returns the number of distinct terms in the tree.
func (t Tree) Len() int {
	var count func(*node) int
	count = func(n *node) int {
		if n == nil {
			return 0
		}
		return 1 + count(n.left) + count(n.right)
	}
	return count(t.root)
}

// Insert adds rec to the tree. If a record with the same term already exists
// its occurrences are merged (existing occurrences first), leaving color and
// children untouched; otherwise a red leaf is spliced in and red-red
// violations are repaired on the way back up. Insert is additive, not
// idempotent: inserting an identical record again doubles its occurrences.
func (t Tree) Insert(rec *Record) Tree {
	if rec == nil {
		return t
	}
	root := insert(t.root, rec)
	if root.color == red {
		root = &node{color: black, rec: root.rec, left: root.left, right: root.right}
	}
	return Tree{root: root}
}

func insert(n *node, rec *Record) *node {
	if n == nil {
		return &node{color: red, rec: rec}
	}
	switch c := rec.Compare(n.rec); {
	case c < 0:
		return balance(n.color, n.rec, insert(n.left, rec), n.right)
	case c > 0:
		return balance(n.color, n.rec, n.left, insert(n.right, rec))
	default:
		merged, err := n.rec.Merge(rec)
		if err != nil {
			// Compare just reported equal terms, so Merge cannot refuse.
			panic(err)
		}
		return &node{color: n.color, rec: merged, left: n.left, right: n.right}
	}
}

// balance repairs a black node whose child and grandchild are both red,
// rotating the middle key up and recoloring. The four cases cover outer and
// inner red grandchildren on either side; anything else is rebuilt as-is.
func balance(c nodeColor, rec *Record, left, right *node) *node {
	if c == black {
		switch {
		case isRed(left) && isRed(left.left):
			l, ll := left, left.left
			return &node{
				color: red,
				rec:   l.rec,
				left:  &node{color: black, rec: ll.rec, left: ll.left, right: ll.right},
				right: &node{color: black, rec: rec, left: l.right, right: right},
			}
		case isRed(left) && isRed(left.right):
			l, lr := left, left.right
			return &node{
				color: red,
				rec:   lr.rec,
				left:  &node{color: black, rec: l.rec, left: l.left, right: lr.left},
				right: &node{color: black, rec: rec, left: lr.right, right: right},
			}
		case isRed(right) && isRed(right.left):
			r, rl := right, right.left
			return &node{
				color: red,
				rec:   rl.rec,
				left:  &node{color: black, rec: rec, left: left, right: rl.left},
				right: &node{color: black, rec: r.rec, left: rl.right, right: r.right},
			}
		case isRed(right) && isRed(right.right):
			r, rr := right, right.right
			return &node{
				color: red,
				rec:   r.rec,
				left:  &node{color: black, rec: rec, left: left, right: r.left},
				right: &node{color: black, rec: rr.rec, left: rr.left, right: rr.right},
			}
		}
	}
	return &node{color: c, rec: rec, left: left, right: right}
}

func isRed(n *node) bool {
	return n != nil && n.color == red
}

// Remove deletes the record for term, if present, by replacing the matching
// node with the union of its children. No deletion rebalancing is performed;
// the tree stays ordered but its balance after removal is only as good as the
// union happens to produce.
func (t Tree) Remove(term Term) Tree {
	return Tree{root: remove(t.root, term)}
}

func remove(n *node, term Term) *node {
	if n == nil {
		return nil
	}
	switch c := term.Compare(n.rec.Term()); {
	case c < 0:
		return &node{color: n.color, rec: n.rec, left: remove(n.left, term), right: n.right}
	case c > 0:
		return &node{color: n.color, rec: n.rec, left: n.left, right: remove(n.right, term)}
	default:
		return unionNodes(n.left, n.right)
	}
}

// unionNodes folds every record of b into a via repeated insertion, so
// colliding terms merge occurrences. Either side may be nil.
func unionNodes(a, b *node) *node {
	if a == nil {
		return b
	}
	out := a
	eachRecord(b, func(rec *Record) {
		out = insert(out, rec)
		if out.color == red {
			out = &node{color: black, rec: out.rec, left: out.left, right: out.right}
		}
	})
	return out
}

func eachRecord(n *node, fn func(*Record)) {
	if n == nil {
		return
	}
	eachRecord(n.left, fn)
	fn(n.rec)
	eachRecord(n.right, fn)
}

// Union returns a tree holding every record of t and other; records with the
// same term merge their occurrence lists (t's occurrences first).
func (t Tree) Union(other Tree) Tree {
	if t.root == nil {
		return other
	}
	if other.root == nil {
		return t
	}
	out := t
	eachRecord(other.root, func(rec *Record) {
		out = out.Insert(rec)
	})
	return out
}

// Difference returns a freshly built tree keeping only the records of t whose
// term is absent from other.
func (t Tree) Difference(other Tree) Tree {
	return t.Filter(func(rec *Record) bool {
		return !other.ContainsRecord(rec, (*Record).Compare)
	})
}

// Filter rebuilds the tree from scratch, keeping only records for which keep
// returns true. The result is rebalanced by its own insertions rather than
// patched in place.
func (t Tree) Filter(keep func(*Record) bool) Tree {
	out := New()
	eachRecord(t.root, func(rec *Record) {
		if keep(rec) {
			out = out.Insert(rec)
		}
	})
	return out
}

// Contains walks the tree directed by pred's three-way result: zero means
// found, a positive result (visited record greater than the sought key)
// descends left, a negative result descends right.
func (t Tree) Contains(pred func(*Record) int) bool {
	n := t.root
	for n != nil {
		switch c := pred(n.rec); {
		case c == 0:
			return true
		case c > 0:
			n = n.left
		default:
			n = n.right
		}
	}
	return false
}

// ContainsRecord reports whether a record matching rec under cmp exists.
// cmp is called with the visited record first.
func (t Tree) ContainsRecord(rec *Record, cmp func(a, b *Record) int) bool {
	return t.Contains(func(candidate *Record) int {
		return cmp(candidate, rec)
	})
}

// Records returns all records in ascending term order.
func (t Tree) Records() []*Record {
	out := make([]*Record, 0, t.Len())
	eachRecord(t.root, func(rec *Record) {
		out = append(out, rec)
	})
	return out
}

// Scorer inspects a visited record against the query record. When stop is
// true the search returns match immediately; otherwise match is kept as the
// local candidate for that node (nil for no candidate).
type Scorer func(query, candidate *Record) (stop bool, match *Record)

// Search walks the tree looking for the best match for query. At each node
// the scorer runs first; a non-stopping visit then descends into exactly one
// subtree, chosen by comparing the case-folded forms of the node's term and
// the query's term. If the chosen side is empty the search ends there and
// returns nil, discarding any local candidate. Subtree results and local
// candidates are combined by total occurrence score, ties favoring the local
// candidate.
//
// Because the descent direction uses case-folded comparison while the tree
// orders terms case-sensitively, the chosen subtree may not contain the true
// best match when case differs from the canonical order. Kept as-is:
// callers that need case-insensitive matching sanitize terms instead.
func (t Tree) Search(scorer Scorer, query *Record) *Record {
	if query == nil {
		return nil
	}
	return searchNode(t.root, scorer, query, query.Term().Fold())
}

func searchNode(n *node, scorer Scorer, query *Record, folded string) *Record {
	if n == nil {
		return nil
	}
	stop, local := scorer(query, n.rec)
	if stop {
		return local
	}
	var next *node
	if n.rec.Term().Fold() > folded {
		next = n.left
	} else {
		next = n.right
	}
	if next == nil {
		return nil
	}
	descended := searchNode(next, scorer, query, folded)
	return better(local, descended)
}

// better picks the candidate with the higher total score; ties go to local.
func better(local, descended *Record) *Record {
	if local == nil {
		return descended
	}
	if descended == nil {
		return local
	}
	if descended.TotalScore() > local.TotalScore() {
		return descended
	}
	return local
}
