//go:build !ios && !android && (amd64 || arm64)

package newtongo

import (
	"unsafe"

	"github.com/obinnaokechukwu/newtongo/capi"
)

// unsafePointer rebuilds the C pointer a pointer handle was created from.
// Only valid while the referent is alive; handle staleness is checked by
// the callers.
func unsafePointer(p uintptr) unsafe.Pointer {
	return *(*unsafe.Pointer)(unsafe.Pointer(&p))
}

// CreateCompound creates an empty compound shape and opens it for mutation.
// Children are added and removed through the returned builder; the mutation
// commits when the builder closes. The compound only accepts convex
// children.
func (w *World) CreateCompound() (*Collision, *CompoundBuilder, error) {
	release, err := w.lock.tryWrite("World.CreateCompound")
	if err != nil {
		return nil, nil, err
	}
	defer release()

	c, err := w.wrapCollision(capi.CreateCompoundCollision(w.raw, 0))
	if err != nil {
		return nil, nil, err
	}
	capi.CompoundCollisionBeginAddRemove(c.raw)
	return c, &CompoundBuilder{compound: c}, nil
}

// BeginAddRemove reopens an existing compound for mutation.
func (c *Collision) BeginAddRemove() (*CompoundBuilder, error) {
	release, err := c.acquireWrite("Collision.BeginAddRemove")
	if err != nil {
		return nil, err
	}
	defer release()
	capi.CompoundCollisionBeginAddRemove(c.raw)
	return &CompoundBuilder{compound: c}, nil
}

// CompoundBuilder scopes the mutation bracket of a compound shape. Children
// can only be added or removed through a live builder; Close commits the
// mutation and rebuilds the compound's acceleration structure. Every
// operation after Close fails with ErrBuilderClosed, which is what keeps
// "mutation outside the bracket" unrepresentable.
type CompoundBuilder struct {
	compound *Collision
	done     bool
}

// Add inserts a convex child and returns its node handle. Children can also
// be removed positionally through RemoveByIndex with an index handle.
func (b *CompoundBuilder) Add(child *Collision) (Handle, error) {
	if b.done {
		return Handle{}, ErrBuilderClosed
	}
	if child == nil || child.raw == nil {
		return Handle{}, ErrNotFound
	}
	release, err := b.compound.acquireWrite("CompoundBuilder.Add")
	if err != nil {
		return Handle{}, err
	}
	defer release()
	node := capi.CompoundCollisionAddSubCollision(b.compound.raw, child.raw)
	if node == nil {
		return Handle{}, ErrNotLoaded
	}
	return HandleFromPointer(uintptr(node)), nil
}

// Remove deletes the child at the given node handle.
func (b *CompoundBuilder) Remove(h Handle) error {
	if b.done {
		return ErrBuilderClosed
	}
	p, ok := h.Pointer()
	if !ok {
		return ErrNotFound
	}
	release, err := b.compound.acquireWrite("CompoundBuilder.Remove")
	if err != nil {
		return err
	}
	defer release()
	capi.CompoundCollisionRemoveSubCollision(b.compound.raw, capi.CompoundNode(unsafePointer(p)))
	return nil
}

// RemoveByIndex deletes the child at the given positional index.
func (b *CompoundBuilder) RemoveByIndex(h Handle) error {
	if b.done {
		return ErrBuilderClosed
	}
	i, ok := h.Index()
	if !ok {
		return ErrNotFound
	}
	release, err := b.compound.acquireWrite("CompoundBuilder.RemoveByIndex")
	if err != nil {
		return err
	}
	defer release()
	capi.CompoundCollisionRemoveSubCollisionByIndex(b.compound.raw, int32(i))
	return nil
}

// Close commits the mutation bracket. Idempotent.
func (b *CompoundBuilder) Close() error {
	if b.done {
		return nil
	}
	b.done = true
	release, err := b.compound.acquireWrite("CompoundBuilder.Close")
	if err != nil {
		return err
	}
	defer release()
	capi.CompoundCollisionEndAddRemove(b.compound.raw)
	return nil
}

// ChildByIndex returns a non-owning view of the compound child at the given
// positional index handle.
func (c *Collision) ChildByIndex(h Handle) (*Collision, error) {
	i, ok := h.Index()
	if !ok {
		return nil, ErrNotFound
	}
	release, err := c.acquireRead("Collision.ChildByIndex")
	if err != nil {
		return nil, err
	}
	defer release()
	node := capi.CompoundCollisionGetNodeByIndex(c.raw, int32(i))
	if node == nil {
		return nil, ErrNotFound
	}
	raw := capi.CompoundCollisionGetCollisionFromNode(c.raw, node)
	if raw == nil {
		return nil, ErrNotFound
	}
	return c.world.borrowCollision(raw), nil
}

// ForEachChild visits the compound's children, stopping early when fn
// returns false. Views are non-owning.
func (c *Collision) ForEachChild(fn func(Handle, *Collision) bool) error {
	release, err := c.acquireRead("Collision.ForEachChild")
	if err != nil {
		return err
	}
	defer release()
	for node := capi.CompoundCollisionGetFirstNode(c.raw); node != nil; node = capi.CompoundCollisionGetNextNode(c.raw, node) {
		raw := capi.CompoundCollisionGetCollisionFromNode(c.raw, node)
		if raw == nil {
			continue
		}
		if !fn(HandleFromPointer(uintptr(node)), c.world.borrowCollision(raw)) {
			break
		}
	}
	return nil
}

// CreateScene creates an empty scene shape and opens it for mutation. Unlike
// a compound, a scene accepts non-convex children such as trees and height
// fields, making it the usual container for static level geometry.
func (w *World) CreateScene() (*Collision, *SceneBuilder, error) {
	release, err := w.lock.tryWrite("World.CreateScene")
	if err != nil {
		return nil, nil, err
	}
	defer release()

	c, err := w.wrapCollision(capi.CreateSceneCollision(w.raw, 0))
	if err != nil {
		return nil, nil, err
	}
	capi.SceneCollisionBeginAddRemove(c.raw)
	return c, &SceneBuilder{scene: c}, nil
}

// BeginSceneAddRemove reopens an existing scene for mutation.
func (c *Collision) BeginSceneAddRemove() (*SceneBuilder, error) {
	release, err := c.acquireWrite("Collision.BeginSceneAddRemove")
	if err != nil {
		return nil, err
	}
	defer release()
	capi.SceneCollisionBeginAddRemove(c.raw)
	return &SceneBuilder{scene: c}, nil
}

// SceneBuilder scopes the mutation bracket of a scene shape.
type SceneBuilder struct {
	scene *Collision
	done  bool
}

// Add inserts a child and returns its node handle.
func (b *SceneBuilder) Add(child *Collision) (Handle, error) {
	if b.done {
		return Handle{}, ErrBuilderClosed
	}
	if child == nil || child.raw == nil {
		return Handle{}, ErrNotFound
	}
	release, err := b.scene.acquireWrite("SceneBuilder.Add")
	if err != nil {
		return Handle{}, err
	}
	defer release()
	node := capi.SceneCollisionAddSubCollision(b.scene.raw, child.raw)
	if node == nil {
		return Handle{}, ErrNotLoaded
	}
	return HandleFromPointer(uintptr(node)), nil
}

// Remove deletes the child at the given node handle.
func (b *SceneBuilder) Remove(h Handle) error {
	if b.done {
		return ErrBuilderClosed
	}
	p, ok := h.Pointer()
	if !ok {
		return ErrNotFound
	}
	release, err := b.scene.acquireWrite("SceneBuilder.Remove")
	if err != nil {
		return err
	}
	defer release()
	capi.SceneCollisionRemoveSubCollision(b.scene.raw, capi.CompoundNode(unsafePointer(p)))
	return nil
}

// RemoveByIndex deletes the child at the given positional index.
func (b *SceneBuilder) RemoveByIndex(h Handle) error {
	if b.done {
		return ErrBuilderClosed
	}
	i, ok := h.Index()
	if !ok {
		return ErrNotFound
	}
	release, err := b.scene.acquireWrite("SceneBuilder.RemoveByIndex")
	if err != nil {
		return err
	}
	defer release()
	capi.SceneCollisionRemoveSubCollisionByIndex(b.scene.raw, int32(i))
	return nil
}

// Close commits the mutation bracket. Idempotent.
func (b *SceneBuilder) Close() error {
	if b.done {
		return nil
	}
	b.done = true
	release, err := b.scene.acquireWrite("SceneBuilder.Close")
	if err != nil {
		return err
	}
	defer release()
	capi.SceneCollisionEndAddRemove(b.scene.raw)
	return nil
}
