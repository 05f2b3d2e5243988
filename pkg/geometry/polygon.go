package geometry

// PolygonArea returns the area of a planar polygon given by its corners
// in order. Concave polygons are handled; the winding does not matter.
func PolygonArea(corners []Vector3) float64 {
	if len(corners) < 3 {
		return 0
	}
	var sum Vector3
	for i, c := range corners {
		sum = sum.Add(c.Cross(corners[(i+1)%len(corners)]))
	}
	return sum.Length() / 2
}
