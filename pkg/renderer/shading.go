package renderer

import (
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/lights"
	"github.com/df07/go-whitted-raytracer/pkg/material"
	"github.com/df07/go-whitted-raytracer/pkg/scene"
)

// DefaultMaxDepth is the number of reflection and refraction bounces
// followed before a path is cut off
const DefaultMaxDepth = 5

// surfaceOffset nudges shading points off the surface to avoid acne
const surfaceOffset = 1e-4

// Computations holds the state of a hit precomputed for shading
type Computations struct {
	T      float64
	Object *geometry.Object

	Point       core.Tuple4 // World-space hit point
	OverPoint   core.Tuple4 // Point nudged along the normal, for shadow and reflection rays
	UnderPoint  core.Tuple4 // Point nudged against the normal, for refraction rays
	ObjectPoint core.Tuple4 // OverPoint in the object's own space, for patterns

	EyeV     core.Tuple4
	NormalV  core.Tuple4 // Faces the eye
	ReflectV core.Tuple4
	Inside   bool // The ray started inside the object

	N1, N2 float64 // Refractive indices on the incoming and outgoing sides
}

// Lighting evaluates the Phong model at a point. lightFactor scales the
// diffuse and specular terms: 0 is full shadow, 1 is fully lit.
func Lighting(mat material.Material, objectPoint core.Tuple4, light lights.RadialLight,
	point, eyev, normalv core.Tuple4, lightFactor float64) core.Color {

	effective := mat.ColorAt(objectPoint).Hadamard(light.Intensity)
	ambient := effective.Multiply(mat.Ambient)

	lightv := light.Position.Subtract(point).Normalize()
	lightDotNormal := lightv.Dot(normalv)

	// Light on the other side of the surface
	if lightDotNormal < 0 || lightFactor <= 0 {
		return ambient
	}

	diffuse := effective.Multiply(mat.Diffuse * lightDotNormal)

	specular := core.Black
	reflectv := lightv.Negate().Reflect(normalv)
	if reflectDotEye := reflectv.Dot(eyev); reflectDotEye > 0 {
		factor := math.Pow(reflectDotEye, mat.Shininess)
		specular = light.Intensity.Multiply(mat.Specular * factor)
	}

	return ambient.Add(diffuse.Add(specular).Multiply(lightFactor))
}

// LightFactor returns how much of the light reaches point. Every surface
// crossed on the way to the light scales the result by its transparency.
func LightFactor(world *scene.World, point core.Tuple4, light lights.RadialLight) float64 {
	direction, distance := light.Toward(point)
	xs := world.Intersect(core.NewRay(point, direction))

	factor := 1.0
	for _, x := range xs {
		if x.T <= 0 {
			continue
		}
		if x.T >= distance {
			break
		}
		factor *= x.Object.Material().Transparency
		if factor == 0 {
			break
		}
	}
	return factor
}

// PrepareComputations precomputes the shading state for hit. xs is the
// sorted list of intersections of the same ray and is used to find the
// refractive indices on either side of the surface.
func PrepareComputations(hit geometry.Intersection, ray core.Ray, xs []geometry.Intersection) Computations {
	comps := Computations{
		T:      hit.T,
		Object: hit.Object,
		Point:  ray.Position(hit.T),
		EyeV:   ray.Direction.Negate(),
	}

	comps.NormalV = hit.NormalAt(comps.Point)
	if comps.NormalV.Dot(comps.EyeV) < 0 {
		comps.Inside = true
		comps.NormalV = comps.NormalV.Negate()
	}

	comps.ReflectV = ray.Direction.Reflect(comps.NormalV)
	comps.OverPoint = comps.Point.Add(comps.NormalV.Multiply(surfaceOffset))
	comps.UnderPoint = comps.Point.Subtract(comps.NormalV.Multiply(surfaceOffset))
	comps.ObjectPoint = hit.ToObject().MultiplyTuple(comps.OverPoint)

	comps.N1, comps.N2 = refractiveIndices(hit, xs)
	return comps
}

// refractiveIndices walks the intersections up to hit, tracking which
// objects the ray is inside
func refractiveIndices(hit geometry.Intersection, xs []geometry.Intersection) (n1, n2 float64) {
	n1, n2 = material.Vacuum, material.Vacuum
	var containers []*geometry.Object

	outermost := func() float64 {
		if len(containers) == 0 {
			return material.Vacuum
		}
		return containers[len(containers)-1].Material().RefractiveIndex
	}

	for _, x := range xs {
		isHit := x.T == hit.T && x.Object == hit.Object
		if isHit {
			n1 = outermost()
		}

		// Leaving an object removes it, entering adds it
		exited := false
		for i, c := range containers {
			if c == x.Object {
				containers = append(containers[:i], containers[i+1:]...)
				exited = true
				break
			}
		}
		if !exited {
			containers = append(containers, x.Object)
		}

		if isHit {
			n2 = outermost()
			break
		}
	}
	return n1, n2
}

// ShadeHit returns the color at a precomputed hit: direct light from every
// light plus the reflected and refracted contributions.
func ShadeHit(world *scene.World, comps Computations, remaining int) core.Color {
	mat := comps.Object.Material()

	surface := core.Black
	for _, light := range world.Lights {
		factor := LightFactor(world, comps.OverPoint, light)
		surface = surface.Add(Lighting(mat, comps.ObjectPoint, light,
			comps.OverPoint, comps.EyeV, comps.NormalV, factor))
	}

	reflected := ReflectedColor(world, comps, remaining)
	refracted := RefractedColor(world, comps, remaining)
	return surface.Add(reflected).Add(refracted)
}

// ColorAt traces a ray into the world and returns the color it sees.
// remaining bounds the reflection and refraction recursion.
func ColorAt(world *scene.World, ray core.Ray, remaining int) core.Color {
	xs := world.Intersect(ray)
	hit, ok := geometry.Hit(xs)
	if !ok {
		return core.Black
	}
	return ShadeHit(world, PrepareComputations(hit, ray, xs), remaining)
}

// ReflectedColor follows the reflection ray of a reflective surface
func ReflectedColor(world *scene.World, comps Computations, remaining int) core.Color {
	reflective := comps.Object.Material().Reflective
	if remaining <= 0 || reflective == 0 {
		return core.Black
	}

	ray := core.NewRay(comps.OverPoint, comps.ReflectV)
	return ColorAt(world, ray, remaining-1).Multiply(reflective)
}

// RefractedColor follows the refraction ray of a transparent surface.
// Total internal reflection contributes black.
func RefractedColor(world *scene.World, comps Computations, remaining int) core.Color {
	transparency := comps.Object.Material().Transparency
	if remaining <= 0 || transparency == 0 {
		return core.Black
	}

	// Snell's law
	nRatio := comps.N1 / comps.N2
	cosI := comps.EyeV.Dot(comps.NormalV)
	sin2T := nRatio * nRatio * (1 - cosI*cosI)
	if sin2T > 1 {
		return core.Black
	}

	cosT := math.Sqrt(1 - sin2T)
	direction := comps.NormalV.Multiply(nRatio*cosI - cosT).
		Subtract(comps.EyeV.Multiply(nRatio))

	ray := core.NewRay(comps.UnderPoint, direction)
	return ColorAt(world, ray, remaining-1).Multiply(transparency)
}
