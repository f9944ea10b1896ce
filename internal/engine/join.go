package engine

// Pair holds the two sibling completion tokens of one activation.
type Pair struct {
	CPU    Token
	Device Token
}

// Join pairs completion tokens from the CPU and device paths by activation
// sequence number. Whichever sibling arrives first is held until the other
// shows up; pairs are emitted in activation order, exactly once per
// activation, and never partially. The returned channel closes after k pairs.
func Join(cpu, dev <-chan Token, k int) <-chan Pair {
	out := make(chan Pair)
	go func() {
		defer close(out)

		heldCPU := make(map[int]Token)
		heldDev := make(map[int]Token)
		next := 0

		for next < k {
			select {
			case t := <-cpu:
				heldCPU[t.Seq] = t
			case t := <-dev:
				heldDev[t.Seq] = t
			}

			for next < k {
				c, okc := heldCPU[next]
				d, okd := heldDev[next]
				if !okc || !okd {
					break
				}
				delete(heldCPU, next)
				delete(heldDev, next)
				out <- Pair{CPU: c, Device: d}
				next++
			}
		}
	}()
	return out
}
