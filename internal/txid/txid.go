// Package txid issues transaction identifiers ("TXN" + snowflake id).
package txid

import (
	"fmt"

	"github.com/bwmarrin/snowflake"
)

const Prefix = "TXN"

// Generator is safe for concurrent use; snowflake.Node locks internally.
type Generator struct {
	node *snowflake.Node
}

// New creates a generator for the given node number (0–1023).
func New(node int64) (*Generator, error) {
	n, err := snowflake.NewNode(node)
	if err != nil {
		return nil, fmt.Errorf("txid: node %d: %w", node, err)
	}
	return &Generator{node: n}, nil
}

// Next returns a new, time-ordered transaction id.
func (g *Generator) Next() string {
	return Prefix + g.node.Generate().String()
}
