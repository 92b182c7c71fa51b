package explorer

import (
	"context"
	"path"
	"path/filepath"
)

// Tree builds the directory tree under the current directory, expanding at most depth levels.
// depth <= 0 uses explorer.tree_depth from the config.
func (e *Explorer) Tree(ctx context.Context, depth int) (*Node, error) {
	if depth <= 0 {
		depth = e.config.Explorer.TreeDepth
	}
	cwd := e.Cwd()
	name := path.Base(cwd)
	if cwd == "" {
		name = filepath.Base(e.Root())
	}

	root := &Node{Name: name, Path: cwd, Type: EntryDirectory}
	if err := e.expand(ctx, root, depth); err != nil {
		return nil, err
	}
	return root, nil
}

func (e *Explorer) expand(ctx context.Context, node *Node, depth int) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if depth == 0 {
		node.Truncated = true
		return nil
	}

	abs, err := e.resolver.Abs(filepath.FromSlash(node.Path))
	if err != nil {
		return err
	}
	entries, err := e.list(abs)
	if err != nil {
		return err
	}

	for _, entry := range entries {
		child := &Node{
			Name: entry.Name,
			Path: path.Join(node.Path, entry.Name),
			Type: entry.Type,
		}
		if entry.Type == EntryDirectory {
			if err := e.expand(ctx, child, depth-1); err != nil {
				return err
			}
		}
		node.Children = append(node.Children, child)
	}
	return nil
}

// Walk visits every node depth-first, parents before children.
func (n *Node) Walk(fn func(node *Node, level int)) {
	n.walk(fn, 0)
}

func (n *Node) walk(fn func(*Node, int), level int) {
	fn(n, level)
	for _, child := range n.Children {
		child.walk(fn, level+1)
	}
}
