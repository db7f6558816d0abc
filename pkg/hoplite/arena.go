// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package hoplite

// nodeID addresses a Command in the tree it belongs to.
type nodeID int

const noNode nodeID = -1

// tree holds every Command of one command tree. Commands refer to their
// parent and children by index, never by pointer.
type tree struct {
	nodes []*Command
}

func newTree(root *Command) *tree {
	t := &tree{nodes: []*Command{root}}
	root.tree = t
	root.id = 0
	root.parent = noNode
	root.selected = noNode
	return t
}

func (t *tree) node(id nodeID) *Command {
	if id == noNode {
		return nil
	}
	return t.nodes[id]
}

// adopt moves every node of child's tree into t, under parent. child must
// be the root of its own tree.
func (t *tree) adopt(parent, child *Command) error {
	if child.tree == t {
		return definitionErrorf("command %q is already part of this command tree", child.name)
	}
	if child.parent != noNode {
		return definitionErrorf("command %q already has a parent command", child.name)
	}

	offset := nodeID(len(t.nodes))
	for _, n := range child.tree.nodes {
		n.tree = t
		n.id += offset
		if n.parent != noNode {
			n.parent += offset
		}
		if n.selected != noNode {
			n.selected += offset
		}
		for name, id := range n.subCommands {
			n.subCommands[name] = id + offset
		}
		t.nodes = append(t.nodes, n)
	}
	child.parent = parent.id
	return nil
}
