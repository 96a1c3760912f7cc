package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRouteGroupOrder(t *testing.T) {
	group := NewRouteGroup()
	group.Add("app.Zebra", Route{Path: "/z"})
	group.Add("app.Alpha", Route{Path: "/a"})
	group.Add("app.Zebra", Route{Path: "/z2"})

	// First-seen order, not lexical order.
	assert.Equal(t, []string{"app.Zebra", "app.Alpha"}, group.Types())
	assert.Equal(t, 3, group.RouteCount())

	zebra := group.Routes("app.Zebra")
	assert.Len(t, zebra, 2)
	assert.Equal(t, "/z", zebra[0].Path)
	assert.Equal(t, "/z2", zebra[1].Path)

	assert.Empty(t, group.Routes("app.Unknown"))
}
