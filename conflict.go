package dynopath

// trieNode is one segment of the conflict-detection prefix trie.
// A terminal node marks the end of a previously accepted path.
type trieNode struct {
	children map[string]*trieNode
	terminal bool
}

func newTrieNode() *trieNode {
	return &trieNode{children: make(map[string]*trieNode)}
}

// tryFindConflict checks a batch of token paths for overlap: a path
// conflicts when it extends a previously accepted full path, duplicates
// one, or stops at an ancestor of one (which would mask the deeper
// attribute). Paths are inserted in input order and the first conflict
// found wins; nil means the batch is pairwise disjoint.
func tryFindConflict(paths [][]string) *ConflictError {
	root := newTrieNode()
	for _, tokens := range paths {
		node := root
		for i, tok := range tokens {
			child, ok := node.children[tok]
			if !ok {
				child = newTrieNode()
				node.children[tok] = child
				if i == len(tokens)-1 {
					child.terminal = true
				}
				node = child
				continue
			}
			if child.terminal || i == len(tokens)-1 {
				return &ConflictError{
					Path:   renderTokens(tokens),
					Prefix: renderTokens(tokens[:i+1]),
				}
			}
			node = child
		}
	}
	return nil
}
