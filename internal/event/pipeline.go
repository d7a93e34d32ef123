package event

import "context"

// Run drains in (the event source, unbounded and in-order) through a
// fresh Hydrator and sends every produced ErrorInfo to out (bounded,
// §5). Run returns once in is closed or ctx is canceled, after which
// out is closed. The BuildCompleted sentinel itself is not forwarded —
// only the reset it causes.
func Run(ctx context.Context, in <-chan Raw, out chan<- ErrorInfo) {
	defer close(out)
	h := NewHydrator()
	for {
		select {
		case <-ctx.Done():
			return
		case raw, ok := <-in:
			if !ok {
				return
			}
			infos, _ := h.Hydrate(raw)
			for _, info := range infos {
				select {
				case out <- info:
				case <-ctx.Done():
					return
				}
			}
		}
	}
}
