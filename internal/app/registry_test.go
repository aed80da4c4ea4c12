package app

import (
	"fmt"
	"testing"

	"github.com/dkeye/patchbay/internal/core"
	"github.com/dkeye/patchbay/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type nopConn struct{}

func (nopConn) TrySend(core.Frame) error { return nil }
func (nopConn) Close()                   {}

func TestRegistryRegister(t *testing.T) {
	r := NewRegistry()

	a := r.Register(nopConn{}, "left", false)
	o := r.Register(nopConn{}, "", true)
	b := r.Register(nopConn{}, "right", false)

	require.NotEqual(t, a, b)
	assert.Equal(t, 3, r.Len())

	c, ok := r.Get(a)
	require.True(t, ok)
	assert.Equal(t, "left", c.Name)
	assert.False(t, c.Privileged)

	assert.True(t, r.IsPrivileged(o))
	assert.False(t, r.IsPrivileged(a))
	assert.False(t, r.IsPrivileged("missing"))

	assert.Equal(t, []domain.ConnID{a, o, b}, r.AllIDs(false))
	assert.Equal(t, []domain.ConnID{a, b}, r.AllIDs(true))
	assert.Equal(t, []domain.ConnID{o}, r.PrivilegedIDs())
}

func TestRegistryRegisterSkipsLiveIDs(t *testing.T) {
	r := NewRegistry()
	ids := []domain.ConnID{"dup", "dup", "fresh"}
	n := 0
	r.newID = func() domain.ConnID {
		id := ids[n]
		n++
		return id
	}

	first := r.Register(nopConn{}, "", false)
	second := r.Register(nopConn{}, "", false)

	assert.Equal(t, domain.ConnID("dup"), first)
	assert.Equal(t, domain.ConnID("fresh"), second)
}

func TestRegistryDeregister(t *testing.T) {
	r := NewRegistry()
	id := r.Register(nopConn{}, "", false)

	assert.True(t, r.Deregister(id))
	assert.False(t, r.Deregister(id))
	assert.False(t, r.Has(id))
	_, ok := r.Conn(id)
	assert.False(t, ok)
	assert.Empty(t, r.AllIDs(false))
}

func TestRegistrySetDisplayName(t *testing.T) {
	r := NewRegistry()
	id := r.Register(nopConn{}, "", false)

	assert.True(t, r.SetDisplayName(id, "booth"))
	c, _ := r.Get(id)
	assert.Equal(t, "booth", c.Name)

	assert.False(t, r.SetDisplayName("missing", "x"))
}

func TestRegistryOrderIsRegistrationOrder(t *testing.T) {
	r := NewRegistry()
	var want []domain.ConnID
	for i := 0; i < 20; i++ {
		want = append(want, r.Register(nopConn{}, fmt.Sprintf("c%d", i), false))
	}
	assert.Equal(t, want, r.AllIDs(true))
}
