package lattice

// stream pushes every post-collision population one node along its
// direction into the second buffer and swaps the buffers. Each worker owns a
// range of source nodes, and every destination slot has exactly one source,
// so workers never write the same slot.
//
// A population leaving the grid along a non-periodic axis is reflected into
// the opposite direction of its own node. That slot has no in-grid source,
// so this keeps every slot written exactly once.
func (lat *Lattice) stream() {
	lat.parallel(func(start, end int) {
		for idx := start; idx < end; idx++ {
			x, y, z := lat.Coords(idx)
			src := lat.f[idx*Q : (idx+1)*Q]

			lat.tmp[idx*Q] = src[0]
			for i := 1; i < Q; i++ {
				next, ok := lat.Neighbor(x, y, z, C[i], lat.periodic)
				if ok {
					lat.tmp[next*Q+i] = src[i]
				} else {
					lat.tmp[idx*Q+Opposite[i]] = src[i]
				}
			}
		}
	})

	lat.f, lat.tmp = lat.tmp, lat.f
}
