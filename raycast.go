//go:build !ios && !android && (amd64 || arm64)

package newtongo

import (
	"container/heap"
	"sync"
	"unsafe"

	"github.com/ebitengine/purego"

	"github.com/obinnaokechukwu/newtongo/capi"
	"github.com/obinnaokechukwu/newtongo/internal/handles"
)

// RayHit describes one intersection found by a ray cast. Body and Shape are
// borrowed views valid only while the query that produced them runs.
type RayHit struct {
	Body        *Body
	Shape       *Collision
	Position    Vector3
	Normal      Vector3
	CollisionID int64
	// Param is the intersection distance as a fraction of the ray, 0 at
	// the origin and 1 at the end point.
	Param float32
}

// RayFilter is called for every intersection along a ray, in engine order
// (not sorted by distance). The return value clips the remaining ray: return
// hit.Param to ignore everything farther, 0 to stop the query, or 1 to keep
// scanning the full ray.
type RayFilter func(hit RayHit) float32

// RayPrefilter runs before a body is tested for intersection. Return false
// to skip the body entirely.
type RayPrefilter func(body *Body, shape *Collision) bool

type rayQuery struct {
	world     *World
	filter    RayFilter
	prefilter RayPrefilter
}

var (
	rayCallbacksOnce sync.Once
	rayFilterPtr     uintptr
	rayPrefilterPtr  uintptr
	aabbIteratorPtr  uintptr
)

func initRayCallbacks() {
	rayCallbacksOnce.Do(func() {
		// NewtonWorldRayFilterCallback:
		// dFloat (*)(const NewtonBody*, const NewtonCollision*,
		//            const dFloat* hitContact, const dFloat* hitNormal,
		//            dLong collisionID, void* userData, dFloat intersectParam)
		rayFilterPtr = purego.NewCallback(func(_ purego.CDecl, body unsafe.Pointer, shape unsafe.Pointer, hitContact, hitNormal *float32, collisionID int64, userData uintptr, intersectParam float32) float32 {
			q, ok := handles.LookupAs[*rayQuery](userData)
			if !ok || q.filter == nil {
				return intersectParam
			}
			contact := unsafe.Slice(hitContact, 3)
			normal := unsafe.Slice(hitNormal, 3)
			hit := RayHit{
				Body:        q.world.borrowBody(body, false),
				Shape:       q.world.borrowCollision(shape),
				Position:    Vector3{contact[0], contact[1], contact[2]},
				Normal:      Vector3{normal[0], normal[1], normal[2]},
				CollisionID: collisionID,
				Param:       intersectParam,
			}
			clip := intersectParam
			func() {
				defer q.world.recordCallbackPanic("ray filter")
				clip = q.filter(hit)
			}()
			return clip
		})

		// NewtonWorldRayPrefilterCallback:
		// unsigned (*)(const NewtonBody*, const NewtonCollision*, void* userData)
		rayPrefilterPtr = purego.NewCallback(func(_ purego.CDecl, body unsafe.Pointer, shape unsafe.Pointer, userData uintptr) uint32 {
			q, ok := handles.LookupAs[*rayQuery](userData)
			if !ok || q.prefilter == nil {
				return 1
			}
			keep := true
			func() {
				defer q.world.recordCallbackPanic("ray prefilter")
				keep = q.prefilter(q.world.borrowBody(body, false), q.world.borrowCollision(shape))
			}()
			if keep {
				return 1
			}
			return 0
		})

		// NewtonBodyIterator: int (*)(const NewtonBody*, void* userData)
		aabbIteratorPtr = purego.NewCallback(func(_ purego.CDecl, body unsafe.Pointer, userData uintptr) int32 {
			it, ok := handles.LookupAs[*aabbIteration](userData)
			if !ok {
				return 0
			}
			keep := false
			func() {
				defer it.world.recordCallbackPanic("aabb iterator")
				keep = it.fn(it.world.borrowBody(body, false))
			}()
			return boolToInt32(keep)
		})
	})
}

// RayCast shoots a ray from p0 to p1 and reports every intersection to
// filter. prefilter may be nil. Hits arrive in engine order; use
// RayCastClosest or RayCastNClosest for distance-sorted results.
func (w *World) RayCast(p0, p1 Vector3, filter RayFilter, prefilter RayPrefilter) error {
	if filter == nil {
		return ErrNotFound
	}
	release, err := w.lock.tryRead("World.RayCast")
	if err != nil {
		return err
	}
	defer release()
	return w.rayCastLocked(p0, p1, filter, prefilter)
}

func (w *World) rayCastLocked(p0, p1 Vector3, filter RayFilter, prefilter RayPrefilter) error {
	initRayCallbacks()
	q := &rayQuery{world: w, filter: filter, prefilter: prefilter}
	id := handles.Register(q)
	defer handles.Unregister(id)

	from := [4]float32{p0[0], p0[1], p0[2], 0}
	to := [4]float32{p1[0], p1[1], p1[2], 0}
	var pre uintptr
	if prefilter != nil {
		pre = rayPrefilterPtr
	}
	capi.WorldRayCast(w.raw, &from[0], &to[0], rayFilterPtr, id, pre, 0)
	return w.takeCallbackPanic()
}

// RayCastClosest returns the nearest intersection along the ray, or
// ErrNotFound when the ray hits nothing.
func (w *World) RayCastClosest(p0, p1 Vector3) (RayHit, error) {
	var best RayHit
	found := false
	err := w.RayCast(p0, p1, func(hit RayHit) float32 {
		if !found || hit.Param < best.Param {
			best = hit
			found = true
		}
		// Clip the ray so only nearer hits keep arriving.
		return hit.Param
	}, nil)
	if err != nil {
		return RayHit{}, err
	}
	if !found {
		return RayHit{}, ErrNotFound
	}
	return best, nil
}

// RayCastAny reports whether the ray intersects anything, stopping at the
// first hit found.
func (w *World) RayCastAny(p0, p1 Vector3) (bool, error) {
	found := false
	err := w.RayCast(p0, p1, func(RayHit) float32 {
		found = true
		return 0
	}, nil)
	return found, err
}

// RayCastAll returns every intersection along the ray sorted by distance.
func (w *World) RayCastAll(p0, p1 Vector3) ([]RayHit, error) {
	var hits rayHitHeap
	err := w.RayCast(p0, p1, func(hit RayHit) float32 {
		hits = append(hits, hit)
		return 1
	}, nil)
	if err != nil {
		return nil, err
	}
	heap.Init(&hits)
	sorted := make([]RayHit, 0, len(hits))
	for hits.Len() > 0 {
		sorted = append(sorted, heap.Pop(&hits).(RayHit))
	}
	return sorted, nil
}

// RayCastNClosest returns up to n intersections nearest to p0, sorted by
// distance.
func (w *World) RayCastNClosest(p0, p1 Vector3, n int) ([]RayHit, error) {
	if n <= 0 {
		return nil, nil
	}
	// Max-heap of the n nearest seen so far; the root is the worst
	// candidate and gets evicted by anything nearer.
	var worst maxRayHitHeap
	err := w.RayCast(p0, p1, func(hit RayHit) float32 {
		if worst.Len() < n {
			heap.Push(&worst, hit)
		} else if hit.Param < worst[0].Param {
			worst[0] = hit
			heap.Fix(&worst, 0)
		}
		if worst.Len() == n {
			// Everything past the current worst is useless.
			return worst[0].Param
		}
		return 1
	}, nil)
	if err != nil {
		return nil, err
	}
	sorted := make([]RayHit, worst.Len())
	for i := len(sorted) - 1; i >= 0; i-- {
		sorted[i] = heap.Pop(&worst).(RayHit)
	}
	return sorted, nil
}

type rayHitHeap []RayHit

func (h rayHitHeap) Len() int { return len(h) }
func (h rayHitHeap) Less(i, j int) bool { return h[i].Param < h[j].Param }
func (h rayHitHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }
func (h *rayHitHeap) Push(x any) { *h = append(*h, x.(RayHit)) }
func (h *rayHitHeap) Pop() any {
	old := *h
	n := len(old)
	hit := old[n-1]
	*h = old[:n-1]
	return hit
}

type maxRayHitHeap []RayHit

func (h maxRayHitHeap) Len() int { return len(h) }
func (h maxRayHitHeap) Less(i, j int) bool { return h[i].Param > h[j].Param }
func (h maxRayHitHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }
func (h *maxRayHitHeap) Push(x any) { *h = append(*h, x.(RayHit)) }
func (h *maxRayHitHeap) Pop() any {
	old := *h
	n := len(old)
	hit := old[n-1]
	*h = old[:n-1]
	return hit
}

// ConvexCastContact describes one contact found by a convex cast.
type ConvexCastContact struct {
	Body        *Body
	Position    Vector3
	Normal      Vector3
	CollisionID int64
	Penetration float32
}

var convexCastPool = sync.Pool{
	New: func() any {
		buf := make([]capi.ConvexCastReturnInfo, 16)
		return &buf
	},
}

// ConvexCast sweeps shape from matrix toward target and returns the contacts
// at the first point of impact together with the hit parameter along the
// sweep. maxContacts caps the result; values above 16 are clamped.
func (w *World) ConvexCast(matrix Matrix4, target Vector3, shape *Collision, maxContacts int, prefilter RayPrefilter) ([]ConvexCastContact, float32, error) {
	if shape == nil {
		return nil, 0, ErrNotFound
	}
	release, err := w.lock.tryRead("World.ConvexCast")
	if err != nil {
		return nil, 0, err
	}
	defer release()

	initRayCallbacks()
	q := &rayQuery{world: w, prefilter: prefilter}
	id := handles.Register(q)
	defer handles.Unregister(id)

	bufp := convexCastPool.Get().(*[]capi.ConvexCastReturnInfo)
	defer convexCastPool.Put(bufp)
	buf := *bufp
	if maxContacts <= 0 || maxContacts > len(buf) {
		maxContacts = len(buf)
	}

	to := [4]float32{target[0], target[1], target[2], 0}
	var pre uintptr
	if prefilter != nil {
		pre = rayPrefilterPtr
	}
	var param float32
	n := capi.WorldConvexCast(w.raw, &matrix[0], &to[0], shape.raw, &param, id, pre, &buf[0], int32(maxContacts), 0)
	if err := w.takeCallbackPanic(); err != nil {
		return nil, 0, err
	}

	contacts := make([]ConvexCastContact, 0, n)
	for i := int32(0); i < n; i++ {
		info := &buf[i]
		contacts = append(contacts, ConvexCastContact{
			Body:        w.borrowBody(info.HitBody, false),
			Position:    Vector3{info.Point[0], info.Point[1], info.Point[2]},
			Normal:      Vector3{info.Normal[0], info.Normal[1], info.Normal[2]},
			CollisionID: info.ContactID,
			Penetration: info.Penetration,
		})
	}
	return contacts, param, nil
}

type aabbIteration struct {
	world *World
	fn    func(*Body) bool
}

// ForEachBodyInAABB visits every body whose bounding box overlaps the given
// box, stopping early when fn returns false. The views are valid only inside
// fn.
func (w *World) ForEachBodyInAABB(min, max Vector3, fn func(*Body) bool) error {
	if fn == nil {
		return nil
	}
	release, err := w.lock.tryRead("World.ForEachBodyInAABB")
	if err != nil {
		return err
	}
	defer release()

	initRayCallbacks()
	it := &aabbIteration{world: w, fn: fn}
	id := handles.Register(it)
	defer handles.Unregister(id)

	p0 := [4]float32{min[0], min[1], min[2], 0}
	p1 := [4]float32{max[0], max[1], max[2], 0}
	capi.WorldForEachBodyInAABBDo(w.raw, &p0[0], &p1[0], aabbIteratorPtr, id)
	return w.takeCallbackPanic()
}
