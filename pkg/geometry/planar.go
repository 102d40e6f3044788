package geometry

import (
	"math"

	"github.com/df07/go-bvh-raytracer/pkg/core"
	"github.com/df07/go-bvh-raytracer/pkg/material"
)

// parallelTolerance rejects rays whose direction is (nearly) parallel to the plane
const parallelTolerance = 1e-8

// planarBase holds the plane math shared by quads, triangles and discs.
// The plane passes through Q and is spanned by U and V; a point on it is
// Q + alpha*U + beta*V.
type planarBase struct {
	Q      core.Vec3
	U      core.Vec3
	V      core.Vec3
	Normal core.Vec3 // unit(U × V)
	D      float64   // Plane equation constant: Normal·x = D
	W      core.Vec3 // (U × V) / ((U × V)·(U × V)), projects hit points onto (alpha, beta)
}

// planeHit is the result of intersecting a ray with the infinite plane
type planeHit struct {
	T     float64
	Point core.Vec3
	Alpha float64
	Beta  float64
}

func newPlanarBase(q, u, v core.Vec3) planarBase {
	n := u.Cross(v)
	normal := n.Normalize()
	return planarBase{
		Q:      q,
		U:      u,
		V:      v,
		Normal: normal,
		D:      normal.Dot(q),
		W:      n.Divide(n.Dot(n)),
	}
}

// hitPlane intersects the ray with the plane and projects the hit point into
// plane coordinates. Degenerate planes and NaN directions produce NaN values
// that fail the interval test.
func (p *planarBase) hitPlane(ray core.Ray, rayT core.Interval) (planeHit, bool) {
	denom := p.Normal.Dot(ray.Direction)
	if math.Abs(denom) < parallelTolerance {
		return planeHit{}, false
	}

	t := (p.D - p.Normal.Dot(ray.Origin)) / denom
	if !rayT.Surrounds(t) {
		return planeHit{}, false
	}

	point := ray.At(t)
	hitVector := point.Subtract(p.Q)

	return planeHit{
		T:     t,
		Point: point,
		Alpha: p.W.Dot(hitVector.Cross(p.V)),
		Beta:  p.W.Dot(p.U.Cross(hitVector)),
	}, true
}

// record builds the hit record for an accepted plane hit
func (p *planarBase) record(ray core.Ray, hit planeHit, mat material.Material) *material.HitRecord {
	hitRecord := &material.HitRecord{
		T:        hit.T,
		Point:    hit.Point,
		Material: mat,
		UV:       core.NewVec2(hit.Alpha, hit.Beta),
	}
	hitRecord.SetFaceNormal(ray, p.Normal)
	return hitRecord
}
