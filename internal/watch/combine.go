package watch

import "context"

// CombineLatest merges two streams into one: once both inputs have produced a
// value, every arrival on either side yields combine(latestA, latestB). The
// combined value is built and published in one step, so observers never see a
// fresh value from one side paired with anything but the latest from the
// other. Output is conflated and closes when ctx ends or both inputs close.
func CombineLatest[A, B, C any](ctx context.Context, a <-chan A, b <-chan B, combine func(A, B) C) <-chan C {
	out := make(chan C, 1)

	go func() {
		defer close(out)

		var (
			latestA A
			latestB B
			haveA   bool
			haveB   bool
		)

		for {
			if a == nil && b == nil {
				return
			}
			select {
			case <-ctx.Done():
				return
			case v, ok := <-a:
				if !ok {
					a = nil
					continue
				}
				latestA, haveA = v, true
			case v, ok := <-b:
				if !ok {
					b = nil
					continue
				}
				latestB, haveB = v, true
			}
			if haveA && haveB {
				SendLatest(out, combine(latestA, latestB))
			}
		}
	}()

	return out
}
