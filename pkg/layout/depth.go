package layout

// DepthBand is the z extent of a series' extrusion.
type DepthBand struct {
	Start, End float64
}

// Delta returns the band thickness.
func (d DepthBand) Delta() float64 {
	return d.End - d.Start
}

// DepthBandFor allocates the depth band of the series at index among count
// depth layers. Separate layers are two spaces thick with a one space gap
// and a leading margin. With shared set, every series gets the same
// centered band.
func DepthBandFor(totalDepth float64, index, count int, shared bool) DepthBand {
	if shared {
		return DepthBand{Start: totalDepth / 4, End: totalDepth * 3 / 4}
	}
	if count <= 0 {
		count, index = 1, 0
	}
	space := totalDepth / float64(count*2+count+1)
	start := space + space*float64(index)*3
	return DepthBand{Start: start, End: start + space*2}
}
