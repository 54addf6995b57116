package ecs

import "fmt"

// Entity identifies an object in a World. It combines a recyclable id
// with a version, so a stale Entity never refers to a newer entity
// that reuses the same id.
type Entity struct {
	ID      uint32
	Version uint32
}

func (e Entity) IsZero() bool {
	return e == Entity{}
}

func (e Entity) String() string {
	return fmt.Sprintf("%dv%d", e.ID, e.Version)
}

type entityMeta struct {
	version uint32
	alive   bool
}

type entityRegistry struct {
	metas   []entityMeta
	freeIDs []uint32
	alive   int
}

func (r *entityRegistry) reserve() Entity {
	var id uint32

	if n := len(r.freeIDs); n > 0 {
		id = r.freeIDs[n-1]
		r.freeIDs = r.freeIDs[:n-1]
		r.metas[id].version++
	} else {
		id = uint32(len(r.metas))
		r.metas = append(r.metas, entityMeta{version: 1})
	}

	r.metas[id].alive = true
	r.alive++

	return Entity{ID: id, Version: r.metas[id].version}
}

func (r *entityRegistry) isAlive(e Entity) bool {
	if int(e.ID) >= len(r.metas) {
		return false
	}

	meta := r.metas[e.ID]
	return meta.alive && meta.version == e.Version
}

func (r *entityRegistry) release(e Entity) bool {
	if !r.isAlive(e) {
		return false
	}

	r.metas[e.ID].alive = false
	r.freeIDs = append(r.freeIDs, e.ID)
	r.alive--

	return true
}
